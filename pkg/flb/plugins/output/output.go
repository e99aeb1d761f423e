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

// Package output turns a Go type into a Fluent Bit output plugin.
//
// A plugin is registered in the init function of its main package and
// built with -buildmode=c-shared:
//
//	type Hello struct{}
//
//	func newHello(config flb.Config) *Hello {
//		return &Hello{}
//	}
//
//	func (h *Hello) Flush(tag string, data []byte) error { return nil }
//
//	func (h *Hello) Exit() error { return nil }
//
//	func init() {
//		output.Register(output.Info{Name: "hello", Description: "hello plugin"}, newHello)
//	}
//
//	func main() {}
package output

import (
	"github.com/fluentbit-go/plugin-sdk-go/pkg/flb"
	symbols "github.com/fluentbit-go/plugin-sdk-go/pkg/flb/symbols/output"
)

var registered = false

// Info describes a plugin to the host.
type Info struct {
	// Name is the name used in the [OUTPUT] sections of the configuration.
	Name string
	// Description is shown by the host in the plugin list.
	Description string
	// Schema is an optional JSON Schema for the properties of the plugin
	// (see package pkg/flb/schema). Properties not satisfying it are
	// reported in the logs when an instance is initialized.
	Schema string
}

// Plugin is the state of one instance of an output plugin, built by
// a constructor from the properties of an [OUTPUT] section.
//
// The constructor cannot fail, as the host offers no way to report an
// error at that stage. It must handle invalid properties by itself, for
// example by falling back to default values, and must not retain the
// flb.Config it receives.
type Plugin interface {
	// Flush handles one chunk of events routed to the instance. data is
	// a MessagePack buffer (see package pkg/flb/record) owned by the host:
	// it must not be used after Flush returns. Returning an error wrapping
	// flb.RetryableFailure asks the host to deliver the chunk again later;
	// any other error drops it. In both cases the instance must remain
	// usable for the next Flush.
	Flush(tag string, data []byte) error
	// Exit releases the resources of the instance. It is called at most
	// once, after the last Flush.
	Exit() error
}

// Register makes the plugin built by newFn the one driven by the
// exported C symbols.
// It can be called only once, usually in the init function of the
// plugin main package.
func Register[P Plugin](info Info, newFn func(config flb.Config) P, opts ...Option) {
	if registered {
		panic("plugin-sdk-go/flb/plugins/output: register can be called only once")
	}
	symbols.SetProxy(NewProxy(info, newFn, opts...))
	registered = true
}
