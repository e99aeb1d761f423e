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

// Package host emulates the side of Fluent Bit that a Go output plugin
// talks to. It allocates, in C memory, the records the host passes to
// the plugin entry points: the registration record of FLBPluginRegister
// and the plugin record of FLBPluginInit, including the property table
// served through the output_get_property callback.
//
// This is meant to test plugins and the SDK itself without running
// Fluent Bit. Records must be released with Free.
package host

// note: cgo does not support function pointers, so the callback and
// the record setup live in C

/*
#cgo CFLAGS: -I${SRCDIR}/../flb

#include <stdlib.h>
#include <strings.h>
#include "flb_proxy.h"

typedef struct host_properties {
	size_t len;
	char **keys;
	char **values;
} host_properties;

// Property keys are case insensitive, as in flb_output_get_property.
static char *host_output_get_property(char *key, void *ins)
{
	host_properties *props = (host_properties *) ins;
	size_t i;

	if (!props || !key) return NULL;
	for (i = 0; i < props->len; i++) {
		if (strcasecmp(props->keys[i], key) == 0) return props->values[i];
	}
	return NULL;
}

static host_properties *host_new_properties(size_t len)
{
	host_properties *props = calloc(1, sizeof(host_properties));
	props->len = len;
	props->keys = calloc(len + 1, sizeof(char *));
	props->values = calloc(len + 1, sizeof(char *));
	return props;
}

static void host_set_property(host_properties *props, size_t i, char *key, char *value)
{
	props->keys[i] = key;
	props->values[i] = value;
}

static void host_free_properties(host_properties *props)
{
	size_t i;

	for (i = 0; i < props->len; i++) {
		free(props->keys[i]);
		free(props->values[i]);
	}
	free(props->keys);
	free(props->values);
	free(props);
}

static struct flbgo_output_plugin *host_new_output_plugin(host_properties *props)
{
	struct flbgo_output_plugin *p = calloc(1, sizeof(struct flbgo_output_plugin));
	p->api = calloc(1, sizeof(struct flb_api));
	p->api->output_get_property = host_output_get_property;
	p->context = calloc(1, sizeof(struct flb_plugin_proxy_context));
	p->o_ins = props;
	return p;
}

static void host_free_output_plugin(struct flbgo_output_plugin *p)
{
	free(p->api);
	free(p->context);
	free(p);
}

static uintptr_t host_remote_context(struct flbgo_output_plugin *p)
{
	if (!p->context) return 0;
	return (uintptr_t) p->context->remote_context;
}
*/
import "C"
import (
	"unsafe"
)

// Definition is a struct flb_plugin_proxy_def as allocated by the host
// before calling FLBPluginRegister.
type Definition struct {
	def *C.struct_flb_plugin_proxy_def
}

// NewDefinition returns a zeroed registration record.
func NewDefinition() *Definition {
	return &Definition{def: (*C.struct_flb_plugin_proxy_def)(C.calloc(1, C.sizeof_struct_flb_plugin_proxy_def))}
}

// Ptr returns the address of the record, to be passed to FLBPluginRegister.
func (d *Definition) Ptr() unsafe.Pointer {
	return unsafe.Pointer(d.def)
}

// Type returns the plugin type set by the plugin.
func (d *Definition) Type() int {
	return int(d.def._type)
}

// Proxy returns the proxy kind set by the plugin.
func (d *Definition) Proxy() int {
	return int(d.def.proxy)
}

// Flags returns the flags set by the plugin.
func (d *Definition) Flags() int {
	return int(d.def.flags)
}

// Name returns the plugin name set by the plugin.
func (d *Definition) Name() string {
	if d.def.name == nil {
		return ""
	}
	return C.GoString(d.def.name)
}

// Description returns the plugin description set by the plugin.
func (d *Definition) Description() string {
	if d.def.description == nil {
		return ""
	}
	return C.GoString(d.def.description)
}

// Free releases the record. The name and description strings belong
// to the plugin and are not released.
func (d *Definition) Free() {
	C.free(unsafe.Pointer(d.def))
	d.def = nil
}

// OutputInstance is a struct flbgo_output_plugin as allocated by the host
// for one [OUTPUT] section before calling FLBPluginInit.
type OutputInstance struct {
	plugin *C.struct_flbgo_output_plugin
	props  *C.host_properties
}

// NewOutputInstance returns a plugin record whose output_get_property
// callback serves props. Keys are matched case insensitively. Values are
// handed to the plugin byte by byte, so they may hold invalid UTF-8.
func NewOutputInstance(props map[string]string) *OutputInstance {
	cProps := C.host_new_properties(C.size_t(len(props)))
	i := 0
	for k, v := range props {
		C.host_set_property(cProps, C.size_t(i), C.CString(k), C.CString(v))
		i++
	}
	return &OutputInstance{
		plugin: C.host_new_output_plugin(cProps),
		props:  cProps,
	}
}

// Ptr returns the address of the record, to be passed to FLBPluginInit.
func (o *OutputInstance) Ptr() unsafe.Pointer {
	return unsafe.Pointer(o.plugin)
}

// RemoteContext returns the value the plugin stored in the context of
// the record. It is the first argument of FLBPluginFlushCtx and
// FLBPluginExitCtx.
func (o *OutputInstance) RemoteContext() uintptr {
	return uintptr(C.host_remote_context(o.plugin))
}

// DetachAPI removes the host API table from the record, as a host that
// does not expose output_get_property would do.
func (o *OutputInstance) DetachAPI() {
	C.free(unsafe.Pointer(o.plugin.api))
	o.plugin.api = nil
}

// DetachContext removes the context slot from the record.
func (o *OutputInstance) DetachContext() {
	C.free(unsafe.Pointer(o.plugin.context))
	o.plugin.context = nil
}

// Free releases the record and its property table.
func (o *OutputInstance) Free() {
	C.host_free_output_plugin(o.plugin)
	C.host_free_properties(o.props)
	o.plugin = nil
	o.props = nil
}

// Tag is a NUL-terminated C copy of a tag, as passed to
// FLBPluginFlushCtx.
type Tag struct {
	ptr *C.char
}

// NewTag copies tag into C memory. The bytes are copied as they are,
// so tag may hold invalid UTF-8.
func NewTag(tag string) *Tag {
	return &Tag{ptr: C.CString(tag)}
}

// Ptr returns the address of the C string.
func (t *Tag) Ptr() unsafe.Pointer {
	return unsafe.Pointer(t.ptr)
}

// Free releases the C string.
func (t *Tag) Free() {
	C.free(unsafe.Pointer(t.ptr))
	t.ptr = nil
}

// Chunk is a copy in C memory of the payload of a flush.
type Chunk struct {
	ptr unsafe.Pointer
	len int
}

// NewChunk copies data into C memory.
func NewChunk(data []byte) *Chunk {
	return &Chunk{ptr: C.CBytes(data), len: len(data)}
}

// Ptr returns the address of the payload.
func (c *Chunk) Ptr() unsafe.Pointer {
	return c.ptr
}

// Len returns the size of the payload.
func (c *Chunk) Len() int {
	return c.len
}

// Free releases the payload.
func (c *Chunk) Free() {
	C.free(c.ptr)
	c.ptr = nil
}
