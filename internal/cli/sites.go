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

package cli

// Linking a safe package registers its call sites in the catalog.
import (
	_ "dirpx.dev/guard/safe/dir"
	_ "dirpx.dev/guard/safe/exec"
	_ "dirpx.dev/guard/safe/inotify"
	_ "dirpx.dev/guard/safe/openssl"
	_ "dirpx.dev/guard/safe/shmop"
	_ "dirpx.dev/guard/safe/sqlite"
	_ "dirpx.dev/guard/safe/xml"
)
