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

// Package inotify provides error-returning filesystem change notifications.
package inotify

import (
	"context"

	"dirpx.dev/guard"
	"dirpx.dev/guard/category"
	rt "dirpx.dev/guard/internal/native/inotify"
	"dirpx.dev/guard/sentinel"
)

// Err matches every error returned by this package.
var Err = guard.Kind(category.Inotify)

// Instance is an open notification instance. Release it with Close.
type Instance = rt.Instance

// Event is a filesystem notification.
type Event = rt.Event

// Event masks.
const (
	InModify    = rt.InModify
	InAttrib    = rt.InAttrib
	InMovedFrom = rt.InMovedFrom
	InCreate    = rt.InCreate
	InDelete    = rt.InDelete
	InAllEvents = rt.InAllEvents
)

var (
	inotifyInit     = guard.Define(category.Inotify, "inotify.inotify_init", sentinel.False())
	inotifyAddWatch = guard.Define(category.Inotify, "inotify.inotify_add_watch", sentinel.False())
	inotifyRmWatch  = guard.Define(category.Inotify, "inotify.inotify_rm_watch", sentinel.False())
	inotifyRead     = guard.Define(category.Inotify, "inotify.inotify_read", sentinel.False())
	inotifyQueueLen = guard.Define(category.Inotify, "inotify.inotify_queue_len", sentinel.False())
)

// InotifyInit opens an instance.
func InotifyInit(ctx context.Context) (*Instance, error) {
	return guard.Invoke[*Instance](ctx, inotifyInit, rt.InotifyInit, nil)
}

// InotifyAddWatch watches path for the events in mask and returns the
// watch descriptor.
func InotifyAddWatch(ctx context.Context, in *Instance, path string, mask uint32) (int, error) {
	return guard.Invoke[int](ctx, inotifyAddWatch, rt.InotifyAddWatch, []any{in, path, mask})
}

// InotifyRmWatch removes the watch wd.
func InotifyRmWatch(ctx context.Context, in *Instance, wd int) error {
	_, err := guard.Invoke[bool](ctx, inotifyRmWatch, rt.InotifyRmWatch, []any{in, wd})
	return err
}

// InotifyRead blocks until events are queued or ctx ends.
func InotifyRead(ctx context.Context, in *Instance) ([]Event, error) {
	return guard.Invoke[[]Event](ctx, inotifyRead, rt.InotifyRead, []any{in})
}

// InotifyQueueLen returns the number of queued events.
func InotifyQueueLen(ctx context.Context, in *Instance) (int, error) {
	return guard.Invoke[int](ctx, inotifyQueueLen, rt.InotifyQueueLen, []any{in})
}
