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

package shmop

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSegmentLifecycle(t *testing.T) {
	ctx := context.Background()
	s, err := ShmopOpen(ctx, Private, ModeCreate, 0o600, 64)
	if err != nil {
		t.Skipf("shared memory unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = ShmopDelete(ctx, s)
		_ = ShmopClose(ctx, s)
	})
	require.Equal(t, 64, s.Size())

	n, err := ShmopWrite(ctx, s, []byte("guarded"), 4)
	require.NoError(t, err)
	require.Equal(t, 7, n)

	got, err := ShmopRead(ctx, s, 4, 7)
	require.NoError(t, err)
	require.Equal(t, "guarded", string(got))

	n, err = ShmopWrite(ctx, s, make([]byte, 100), 60)
	require.NoError(t, err)
	require.Equal(t, 4, n, "writes are truncated at the segment end")

	_, err = ShmopRead(ctx, s, 65, 1)
	require.EqualError(t, err, "shmop:shmop.shmop_read: shmop_read(): Argument #2 ($offset) must be between 0 and the segment size")
	_, err = ShmopRead(ctx, s, 60, 10)
	require.ErrorContains(t, err, "Argument #3 ($size) is out of range")

	_, err = ShmopWrite(ctx, s, []byte("x"), -1)
	require.ErrorIs(t, err, Err)
}

func TestOpenArguments(t *testing.T) {
	ctx := context.Background()

	_, err := ShmopOpen(ctx, Private, "z", 0o600, 8)
	require.EqualError(t, err, "shmop:shmop.shmop_open: shmop_open(): Argument #2 ($mode) must be a valid access mode")

	_, err = ShmopOpen(ctx, Private, ModeCreateNew, 0o600, 0)
	require.ErrorContains(t, err, `must be greater than 0 for the "c" and "n" access modes`)
	require.ErrorIs(t, err, Err)
}

func TestClosedSegment(t *testing.T) {
	ctx := context.Background()
	s, err := ShmopOpen(ctx, Private, ModeCreate, 0o600, 16)
	if err != nil {
		t.Skipf("shared memory unavailable: %v", err)
	}
	require.NoError(t, ShmopDelete(ctx, s))
	require.NoError(t, ShmopClose(ctx, s))

	_, err = ShmopRead(ctx, s, 0, 1)
	require.ErrorContains(t, err, "has already been closed")
	require.ErrorIs(t, ShmopClose(ctx, s), Err)
}
