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

// cgo cannot call function pointers
static char *flbgo_output_get_property(struct flbgo_output_plugin *p, char *key)
{
	if (!p->api || !p->api->output_get_property) return NULL;
	return p->api->output_get_property(key, p->o_ins);
}
*/
import "C"
import (
	"strings"
	"unsafe"
)

// Config gives read access to the properties of the output instance
// being initialized, as written in its [OUTPUT] section.
type Config interface {
	// Property returns the value of the property named key. The boolean
	// is false if the property is not set.
	Property(key string) (string, bool)
}

// OutputConfig is the Config backed by the plugin record that the host
// passes to FLBPluginInit. It is only valid for the duration of that
// call, after which Release must be invoked.
type OutputConfig struct {
	plugin *C.struct_flbgo_output_plugin
}

// NewOutputConfig returns an OutputConfig reading from the
// struct flbgo_output_plugin pointed by plugin, which can be nil.
func NewOutputConfig(plugin unsafe.Pointer) *OutputConfig {
	return &OutputConfig{plugin: (*C.struct_flbgo_output_plugin)(plugin)}
}

// Property returns the value of the property named key.
//
// The property is reported as absent if the host has no value for it,
// if the accessor has been released or is not backed by a valid plugin
// record, if key contains a NUL character, or if the value is not valid
// UTF-8. The returned string is a copy and can be retained.
func (c *OutputConfig) Property(key string) (string, bool) {
	if c == nil || c.plugin == nil || strings.IndexByte(key, 0) >= 0 {
		return "", false
	}
	cKey := C.CString(key)
	defer C.free(unsafe.Pointer(cKey))
	return GoString(unsafe.Pointer(C.flbgo_output_get_property(c.plugin, cKey)))
}

// Release detaches the accessor from the plugin record. Every
// subsequent lookup reports the property as absent.
func (c *OutputConfig) Release() {
	c.plugin = nil
}

// ConfigMap is an in-memory Config, useful to test plugin constructors.
type ConfigMap map[string]string

// Property returns the value associated to key.
func (m ConfigMap) Property(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}
