/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package guard

import (
	"context"
	"log/slog"
)

type loggerKey struct{}

// WithLogger attaches l to ctx. Guarded calls made with the returned context
// log translated failures at debug level.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// LoggerFrom returns the logger attached with WithLogger, if any.
func LoggerFrom(ctx context.Context) (*slog.Logger, bool) {
	l, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	return l, ok && l != nil
}

func logFailure(ctx context.Context, e *Error) {
	l, ok := LoggerFrom(ctx)
	if !ok {
		return
	}
	l.LogAttrs(ctx, slog.LevelDebug, "guarded call failed",
		slog.String("category", string(e.Category)),
		slog.String("operation", string(e.Operation)),
		slog.String("message", e.Message),
	)
}
