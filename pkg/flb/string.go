// SPDX-License-Identifier: Apache-2.0
/*
Copyright (C) 2024 The Fluent Bit Go Plugin SDK Authors.

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

package flb

/*
#include <stdlib.h>
*/
import "C"
import (
	"unicode/utf8"
	"unsafe"
)

// GoString copies the NUL-terminated C string pointed by charPtr into a
// Go string. The boolean is false if charPtr is nil or if the string is
// not valid UTF-8.
func GoString(charPtr unsafe.Pointer) (string, bool) {
	if charPtr == nil {
		return "", false
	}
	s := C.GoString((*C.char)(charPtr))
	if !utf8.ValidString(s) {
		return "", false
	}
	return s, true
}

// GoBytes returns a slice viewing the length bytes pointed by data,
// without copying them. The slice aliases C memory: it must not be
// used once the memory is released by its owner.
func GoBytes(data unsafe.Pointer, length int) []byte {
	if data == nil || length <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(data), length)
}
