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

package cgo

import (
	"errors"
	"sync/atomic"
	"unsafe"
)

// Handle is an opaque token that stands for a Go value owned by C code.
// It is a variant of cgo.Handle (see https://pkg.go.dev/runtime/cgo)
// tailored to the plugin instance lifecycle of Fluent Bit: a value is
// moved in once with NewHandle, borrowed any number of times with Load,
// and moved out exactly once with Take.
//
// Like the original implementation, this provides a way to pass values that
// contain Go pointers between Go and C without breaking the cgo pointer
// passing rules. The underlying type of Handle fits in a uintptr_t, so
// it can be stored in a void* slot of a C struct. The zero value of a
// Handle is never valid and is safe to use as a sentinel in C APIs.
//
// The number of simultaneously valid handles is capped to MaxHandle.
// Since a handle is only used for one instance of an output plugin
// (one per [OUTPUT] section of the Fluent Bit configuration), this hard
// limit is considered acceptable.
//
// Slots are claimed and released with atomic operations, so instances
// of different outputs can be created and flushed from different threads.
// Borrowing the same value from two threads at once is safe for the table
// but not for the value itself, which the callers must serialize.
type Handle uintptr

const (
	// MaxHandle is the largest value that a Handle can hold
	MaxHandle = 256 - 1

	// max number of times we're willing to iterate over the vector of reusable
	// handles to do compare-and-swap before giving up
	maxNewHandleRounds = 20
)

// ErrNoHandle is returned by NewHandle when all the handles are in use.
var ErrNoHandle = errors.New("plugin-sdk-go/cgo: no handle available")

var (
	handles  [MaxHandle + 1]unsafe.Pointer // [int]*interface{}
	noHandle unsafe.Pointer                = nil
)

func init() {
	resetHandles()
}

// NewHandle moves v into the table and returns the handle for it.
//
// The handle is valid until the program calls Take on it. The handle
// uses resources, and this package assumes that C code may hold on to
// the handle, so a program must explicitly call Take when the handle
// is no longer needed.
func NewHandle(v interface{}) (Handle, error) {
	rounds := 0
	for h := uintptr(1); ; h++ {
		// note: we attempt accessing slots 1..MaxHandle (included)
		if atomic.CompareAndSwapPointer(&handles[h], noHandle, (unsafe.Pointer)(&v)) {
			return Handle(h), nil
		}

		if h < MaxHandle {
			continue
		}

		// all slots were busy, start over until we give up
		h = uintptr(0) // note: will be incremented when continuing
		if rounds < maxNewHandleRounds {
			rounds++
			continue
		}
		return 0, ErrNoHandle
	}
}

// Load returns the value associated with h, leaving it in place.
// The boolean is false if h is zero, out of range or has been taken.
func (h Handle) Load() (interface{}, bool) {
	if h == 0 || h > MaxHandle {
		return nil, false
	}
	p := atomic.LoadPointer(&handles[h])
	if p == noHandle {
		return nil, false
	}
	return *(*interface{})(p), true
}

// Take returns the value associated with h and invalidates h.
// Only one of many concurrent Take calls on the same handle obtains
// the value; the others, like any later call, report false.
func (h Handle) Take() (interface{}, bool) {
	if h == 0 || h > MaxHandle {
		return nil, false
	}
	p := atomic.SwapPointer(&handles[h], noHandle)
	if p == noHandle {
		return nil, false
	}
	return *(*interface{})(p), true
}

func resetHandles() {
	for i := 0; i <= MaxHandle; i++ {
		atomic.StorePointer(&handles[i], noHandle)
	}
}
