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

// Package sdk is the root of the Fluent Bit Go plugin SDK. It exports
// nothing: plugins are written against the packages below it.
//
//   - pkg/flb/plugins/output turns a Go type into an output plugin and
//     drives its instances
//   - pkg/flb/symbols/output exports the C entry points loaded by the
//     Fluent Bit Go proxy (FLBPluginRegister, FLBPluginInit,
//     FLBPluginFlushCtx, FLBPluginExitCtx, FLBPluginUnregister)
//   - pkg/flb holds the host constants, the error taxonomy and the
//     property accessor
//   - pkg/flb/record decodes the MessagePack chunks passed to Flush
//   - pkg/host emulates the host records, to test plugins without
//     running Fluent Bit
//
// See examples/hello for a complete plugin.
package sdk
