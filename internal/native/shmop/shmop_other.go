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

//go:build !linux

package shmop

import "errors"

var errUnsupported = errors.New("shared memory is not supported on this platform")

func shmGet(int, int, int, bool, bool) (int, error) { return 0, errUnsupported }

func shmAttach(int, bool) ([]byte, error) { return nil, errUnsupported }

func shmDetach([]byte) error { return errUnsupported }

func shmRemove(int) error { return errUnsupported }
