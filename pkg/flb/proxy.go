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
#include "flb_proxy.h"

static int flbgo_set_remote_context(struct flbgo_output_plugin *p, uintptr_t ctx)
{
	if (!p->context) return 0;
	p->context->remote_context = (void *) ctx;
	return 1;
}
*/
import "C"
import (
	"sync"
	"unsafe"
)

var (
	cStringsMu sync.Mutex
	cStrings   = map[string]*C.char{}
)

// cString returns a C copy of s that lives as long as the process.
// The host keeps the name and description pointers of the registration
// record without copying them, so those must never be freed.
func cString(s string) *C.char {
	cStringsMu.Lock()
	defer cStringsMu.Unlock()
	if p, ok := cStrings[s]; ok {
		return p
	}
	p := C.CString(s)
	cStrings[s] = p
	return p
}

// SetOutputDefinition fills the struct flb_plugin_proxy_def pointed by
// def so that the host registers an output plugin driven by the Go proxy.
// It returns false if def is nil.
func SetOutputDefinition(def unsafe.Pointer, name, description string) bool {
	if def == nil {
		return false
	}
	d := (*C.struct_flb_plugin_proxy_def)(def)
	d._type = C.FLB_PROXY_OUTPUT_PLUGIN
	d.proxy = C.FLB_PROXY_GOLANG
	d.flags = 0
	d.name = cString(name)
	d.description = cString(description)
	return true
}

// SetRemoteContext stores ctx in the context of the struct
// flbgo_output_plugin pointed by plugin. The host hands it back as the
// first argument of FLBPluginFlushCtx and FLBPluginExitCtx.
// It returns false if plugin or its context are nil.
func SetRemoteContext(plugin unsafe.Pointer, ctx uintptr) bool {
	if plugin == nil {
		return false
	}
	return C.flbgo_set_remote_context((*C.struct_flbgo_output_plugin)(plugin), C.uintptr_t(ctx)) != 0
}

// HasRemoteContext reports whether plugin points to a plugin record
// whose context slot can be written.
func HasRemoteContext(plugin unsafe.Pointer) bool {
	return plugin != nil && (*C.struct_flbgo_output_plugin)(plugin).context != nil
}
