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

package output

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"

	"github.com/fluentbit-go/plugin-sdk-go/pkg/flb"
	"github.com/fluentbit-go/plugin-sdk-go/pkg/host"
)

type call struct {
	name   string
	ptr    unsafe.Pointer
	ctx    uintptr
	data   unsafe.Pointer
	length int
	tag    unsafe.Pointer
}

type recordingProxy struct {
	calls []call
	ret   int
}

func (r *recordingProxy) Register(def unsafe.Pointer) int {
	r.calls = append(r.calls, call{name: "register", ptr: def})
	return r.ret
}

func (r *recordingProxy) Unregister(def unsafe.Pointer) int {
	r.calls = append(r.calls, call{name: "unregister", ptr: def})
	return r.ret
}

func (r *recordingProxy) Init(plugin unsafe.Pointer) int {
	r.calls = append(r.calls, call{name: "init", ptr: plugin})
	return r.ret
}

func (r *recordingProxy) Flush(ctx uintptr, data unsafe.Pointer, length int, tag unsafe.Pointer) int {
	r.calls = append(r.calls, call{name: "flush", ctx: ctx, data: data, length: length, tag: tag})
	return r.ret
}

func (r *recordingProxy) Exit(ctx uintptr) int {
	r.calls = append(r.calls, call{name: "exit", ctx: ctx})
	return r.ret
}

func assertPanic(t *testing.T, fun func()) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic")
		}
	}()
	fun()
}

func TestNoProxy(t *testing.T) {
	proxy = nil

	assert.Equal(t, flb.RegisterFailure, int(FLBPluginRegister(nil)))
	assert.Equal(t, flb.RegisterSuccess, int(FLBPluginUnregister(nil)))
	assert.Equal(t, flb.FLBError, int(FLBPluginInit(nil)))
	assert.Equal(t, flb.FLBError, int(FLBPluginFlushCtx(1, nil, 0, nil)))
	assert.Equal(t, flb.FLBError, int(FLBPluginExitCtx(1)))

	assertPanic(t, func() {
		SetProxy(nil)
	})
}

func TestForwarding(t *testing.T) {
	p := &recordingProxy{ret: flb.FLBRetry}
	SetProxy(p)
	defer func() { proxy = nil }()

	def := host.NewDefinition()
	defer def.Free()
	ins := host.NewOutputInstance(nil)
	defer ins.Free()
	tag := host.NewTag("app.log")
	defer tag.Free()
	chunk := host.NewChunk([]byte{1, 2, 3})
	defer chunk.Free()

	assert.Equal(t, flb.FLBRetry, int(FLBPluginRegister(def.Ptr())))
	assert.Equal(t, flb.FLBRetry, int(FLBPluginUnregister(def.Ptr())))
	assert.Equal(t, flb.FLBRetry, int(FLBPluginInit(ins.Ptr())))
	assert.Equal(t, flb.FLBRetry, int(FLBPluginFlushCtx(
		_Ctype_uintptr_t(5),
		chunk.Ptr(),
		_Ctype_int(chunk.Len()),
		(*_Ctype_char)(tag.Ptr()))))
	assert.Equal(t, flb.FLBRetry, int(FLBPluginExitCtx(_Ctype_uintptr_t(5))))

	assert.Equal(t, []call{
		{name: "register", ptr: def.Ptr()},
		{name: "unregister", ptr: def.Ptr()},
		{name: "init", ptr: ins.Ptr()},
		{name: "flush", ctx: 5, data: chunk.Ptr(), length: 3, tag: tag.Ptr()},
		{name: "exit", ctx: 5},
	}, p.calls)
}
