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

// Package output exports the C symbols that the Fluent Bit Go proxy
// resolves in an output plugin: FLBPluginRegister, FLBPluginUnregister,
// FLBPluginInit, FLBPluginFlushCtx and FLBPluginExitCtx.
//
// Importing this package includes the symbols in the plugin. They do
// nothing but forward their arguments to the Proxy set with SetProxy,
// which is normally done by sdk/plugins/output.Register. If one of these
// symbols is also defined by the plugin, linking fails due to multiple
// definitions of the same symbol.
//
// The host must not call FLBPluginFlushCtx or FLBPluginExitCtx
// concurrently for the same context: no lock is taken around the
// plugin instance.
package output

/*
#include <stdint.h>
*/
import "C"
import (
	"unsafe"

	"github.com/fluentbit-go/plugin-sdk-go/pkg/flb"
)

// Proxy receives the calls of the exported symbols. Pointers are passed
// through as they are; contexts are the integers stored by Init in the
// remote context of the plugin record.
type Proxy interface {
	Register(def unsafe.Pointer) int
	Unregister(def unsafe.Pointer) int
	Init(plugin unsafe.Pointer) int
	Flush(ctx uintptr, data unsafe.Pointer, length int, tag unsafe.Pointer) int
	Exit(ctx uintptr) int
}

var proxy Proxy

// SetProxy sets the Proxy the exported symbols forward to.
func SetProxy(p Proxy) {
	if p == nil {
		panic("plugin-sdk-go/flb/symbols/output.SetProxy: p must not be nil")
	}
	proxy = p
}

//export FLBPluginRegister
func FLBPluginRegister(def unsafe.Pointer) C.int {
	if proxy == nil {
		return C.int(flb.RegisterFailure)
	}
	return C.int(proxy.Register(def))
}

//export FLBPluginUnregister
func FLBPluginUnregister(def unsafe.Pointer) C.int {
	if proxy == nil {
		return C.int(flb.RegisterSuccess)
	}
	return C.int(proxy.Unregister(def))
}

//export FLBPluginInit
func FLBPluginInit(plugin unsafe.Pointer) C.int {
	if proxy == nil {
		return C.int(flb.FLBError)
	}
	return C.int(proxy.Init(plugin))
}

//export FLBPluginFlushCtx
func FLBPluginFlushCtx(ctx C.uintptr_t, data unsafe.Pointer, length C.int, tag *C.char) C.int {
	if proxy == nil {
		return C.int(flb.FLBError)
	}
	return C.int(proxy.Flush(uintptr(ctx), data, int(length), unsafe.Pointer(tag)))
}

//export FLBPluginExitCtx
func FLBPluginExitCtx(ctx C.uintptr_t) C.int {
	if proxy == nil {
		return C.int(flb.FLBError)
	}
	return C.int(proxy.Exit(uintptr(ctx)))
}
