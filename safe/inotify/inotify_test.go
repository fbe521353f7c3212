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

package inotify

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchCreate(t *testing.T) {
	ctx := context.Background()
	in, err := InotifyInit(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = in.Close() })

	dir := t.TempDir()
	wd, err := InotifyAddWatch(ctx, in, dir, InCreate|InModify)
	require.NoError(t, err)
	require.Equal(t, 1, wd)

	again, err := InotifyAddWatch(ctx, in, dir, InCreate)
	require.NoError(t, err)
	require.Equal(t, wd, again, "re-adding a path keeps its descriptor")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x"), 0o644))

	readCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	events, err := InotifyRead(readCtx, in)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	require.Equal(t, Event{Wd: wd, Mask: InCreate, Name: "new.txt"}, events[0])

	require.NoError(t, InotifyRmWatch(ctx, in, wd))
	err = InotifyRmWatch(ctx, in, wd)
	require.EqualError(t, err, "inotify:inotify.inotify_rm_watch: inotify_rm_watch(): The file descriptor is not an inotify instance or the watch descriptor is invalid")
}

func TestReadTimeout(t *testing.T) {
	ctx := context.Background()
	in, err := InotifyInit(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = in.Close() })

	n, err := InotifyQueueLen(ctx, in)
	require.NoError(t, err)
	require.Zero(t, n, "an empty queue is not a failure")

	readCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	events, err := InotifyRead(readCtx, in)
	require.Nil(t, events)
	require.ErrorIs(t, err, Err)
	require.ErrorContains(t, err, "context deadline exceeded")
}

func TestAddWatchMissing(t *testing.T) {
	ctx := context.Background()
	in, err := InotifyInit(ctx)
	require.NoError(t, err)

	_, err = InotifyAddWatch(ctx, in, filepath.Join(t.TempDir(), "missing"), InAllEvents)
	require.ErrorIs(t, err, Err)
	require.ErrorContains(t, err, "No such file or directory")

	require.NoError(t, in.Close())
	_, err = InotifyQueueLen(ctx, in)
	require.ErrorIs(t, err, Err)
}
