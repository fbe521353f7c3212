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

//go:build linux

package shmop

import "golang.org/x/sys/unix"

func shmGet(key, size, perm int, create, exclusive bool) (int, error) {
	flag := perm & 0o777
	if create {
		flag |= unix.IPC_CREAT
	}
	if exclusive {
		flag |= unix.IPC_EXCL
	}
	return unix.SysvShmGet(key, size, flag)
}

func shmAttach(id int, readOnly bool) ([]byte, error) {
	flag := 0
	if readOnly {
		flag = unix.SHM_RDONLY
	}
	return unix.SysvShmAttach(id, 0, flag)
}

func shmDetach(data []byte) error {
	return unix.SysvShmDetach(data)
}

func shmRemove(id int) error {
	_, err := unix.SysvShmCtl(id, unix.IPC_RMID, nil)
	return err
}
