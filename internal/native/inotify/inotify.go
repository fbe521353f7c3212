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

// Package inotify is the native filesystem notification runtime on
// fsnotify. Events are queued per instance and drained by InotifyRead.
package inotify

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"dirpx.dev/guard/args"
	"dirpx.dev/guard/internal/native"
)

// Event masks.
const (
	InModify    uint32 = 0x002
	InAttrib    uint32 = 0x004
	InMovedFrom uint32 = 0x040
	InCreate    uint32 = 0x100
	InDelete    uint32 = 0x200
	InAllEvents uint32 = InModify | InAttrib | InMovedFrom | InCreate | InDelete
)

// Event is one queued notification. Name is relative to the watched
// directory and empty for events on the watched path itself.
type Event struct {
	Wd     int    `json:"wd"`
	Mask   uint32 `json:"mask"`
	Cookie uint32 `json:"cookie"`
	Name   string `json:"name"`
}

type watch struct {
	path string
	mask uint32
}

// Instance is an inotify instance.
type Instance struct {
	watcher *fsnotify.Watcher

	mu     sync.Mutex
	next   int
	wds    map[int]watch
	byPath map[string]int
	queue  []Event
	ready  chan struct{}

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// InotifyInit creates an instance. argv: none.
func InotifyInit(ctx context.Context, argv ...any) any {
	const fn = "inotify_init"
	if err := args.Check(fn, argv, 0, 0); err != nil {
		return native.Bad(ctx, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return native.Fail(ctx, "%s(): %v", fn, err)
	}
	in := &Instance{
		watcher: w,
		wds:     make(map[int]watch),
		byPath:  make(map[string]int),
		ready:   make(chan struct{}, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go in.loop()
	return in
}

// InotifyAddWatch watches path for the events in mask and returns a watch
// descriptor. Watching the same path again updates its mask.
// argv: inotify_instance, pathname, mask.
func InotifyAddWatch(ctx context.Context, argv ...any) any {
	const fn = "inotify_add_watch"
	if err := args.Check(fn, argv, 3, 3); err != nil {
		return native.Bad(ctx, err)
	}
	in, ok := instance(ctx, fn, argv)
	if !ok {
		return false
	}
	name, err := native.String(fn, argv, 1)
	if err != nil {
		return native.Bad(ctx, err)
	}
	mask, err := args.Arg(fn, argv, 2, uint32(0))
	if err != nil {
		return native.Bad(ctx, err)
	}
	name = filepath.Clean(name)

	in.mu.Lock()
	defer in.mu.Unlock()
	if wd, ok := in.byPath[name]; ok {
		in.wds[wd] = watch{path: name, mask: mask}
		return wd
	}
	if err := in.watcher.Add(name); err != nil {
		return native.Fail(ctx, "%s(): %s", fn, native.Reason(err))
	}
	in.next++
	in.wds[in.next] = watch{path: name, mask: mask}
	in.byPath[name] = in.next
	return in.next
}

// InotifyRmWatch removes a watch. argv: inotify_instance, watch_descriptor.
func InotifyRmWatch(ctx context.Context, argv ...any) any {
	const fn = "inotify_rm_watch"
	if err := args.Check(fn, argv, 2, 2); err != nil {
		return native.Bad(ctx, err)
	}
	in, ok := instance(ctx, fn, argv)
	if !ok {
		return false
	}
	wd, err := native.Int(fn, argv, 1, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	w, ok := in.wds[wd]
	if !ok {
		return native.Fail(ctx, "%s(): The file descriptor is not an inotify instance or the watch descriptor is invalid", fn)
	}
	if err := in.watcher.Remove(w.path); err != nil {
		return native.Fail(ctx, "%s(): %v", fn, err)
	}
	delete(in.wds, wd)
	delete(in.byPath, w.path)
	return true
}

// InotifyQueueLen returns the number of queued events.
// argv: inotify_instance.
func InotifyQueueLen(ctx context.Context, argv ...any) any {
	const fn = "inotify_queue_len"
	if err := args.Check(fn, argv, 1, 1); err != nil {
		return native.Bad(ctx, err)
	}
	in, ok := instance(ctx, fn, argv)
	if !ok {
		return false
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.queue)
}

// InotifyRead blocks until at least one event is queued and returns all
// queued events. It fails when ctx ends first. argv: inotify_instance.
func InotifyRead(ctx context.Context, argv ...any) any {
	const fn = "inotify_read"
	if err := args.Check(fn, argv, 1, 1); err != nil {
		return native.Bad(ctx, err)
	}
	in, ok := instance(ctx, fn, argv)
	if !ok {
		return false
	}
	for {
		in.mu.Lock()
		if len(in.queue) > 0 {
			out := in.queue
			in.queue = nil
			in.mu.Unlock()
			return out
		}
		in.mu.Unlock()

		select {
		case <-in.ready:
		case <-in.done:
			return native.Fail(ctx, "%s(): inotify instance has been closed", fn)
		case <-ctx.Done():
			return native.Fail(ctx, "%s(): %v", fn, ctx.Err())
		}
	}
}

// Close releases the instance. It is safe to call more than once.
func (in *Instance) Close() error {
	var err error
	in.closeOnce.Do(func() {
		close(in.stop)
		err = in.watcher.Close()
		<-in.done
	})
	return err
}

func (in *Instance) loop() {
	defer close(in.done)
	for {
		select {
		case <-in.stop:
			return
		case ev, ok := <-in.watcher.Events:
			if !ok {
				return
			}
			in.enqueue(ev)
		case _, ok := <-in.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (in *Instance) enqueue(ev fsnotify.Event) {
	mask := toMask(ev.Op)
	name := filepath.Clean(ev.Name)

	in.mu.Lock()
	wd, ok := in.byPath[name]
	rel := ""
	if !ok {
		wd, ok = in.byPath[filepath.Dir(name)]
		rel = filepath.Base(name)
	}
	if ok && in.wds[wd].mask&mask != 0 {
		in.queue = append(in.queue, Event{Wd: wd, Mask: mask & in.wds[wd].mask, Name: rel})
	}
	in.mu.Unlock()

	select {
	case in.ready <- struct{}{}:
	default:
	}
}

func toMask(op fsnotify.Op) uint32 {
	var m uint32
	if op.Has(fsnotify.Create) {
		m |= InCreate
	}
	if op.Has(fsnotify.Write) {
		m |= InModify
	}
	if op.Has(fsnotify.Remove) {
		m |= InDelete
	}
	if op.Has(fsnotify.Rename) {
		m |= InMovedFrom
	}
	if op.Has(fsnotify.Chmod) {
		m |= InAttrib
	}
	return m
}

func instance(ctx context.Context, fn string, argv []any) (*Instance, bool) {
	in, err := args.Arg[*Instance](fn, argv, 0, nil)
	if err != nil {
		native.Bad(ctx, err)
		return nil, false
	}
	if in == nil {
		native.Fail(ctx, "%s(): Argument #1 ($inotify_instance) must be of type resource, null given", fn)
		return nil, false
	}
	select {
	case <-in.done:
		native.Fail(ctx, "%s(): supplied resource is not a valid stream resource", fn)
		return nil, false
	default:
	}
	return in, true
}
