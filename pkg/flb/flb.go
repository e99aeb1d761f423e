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
#include "flb_proxy.h"
*/
import "C"

// Plugin callbacks (FLBPluginInit, FLBPluginFlushCtx, FLBPluginExitCtx)
// return one of these values.
const (
	FLBError int = C.FLB_ERROR
	FLBOk    int = C.FLB_OK
	FLBRetry int = C.FLB_RETRY
)

// One of these values is set as the type of the registration record.
const (
	FLBProxyInputPlugin  int = C.FLB_PROXY_INPUT_PLUGIN
	FLBProxyOutputPlugin int = C.FLB_PROXY_OUTPUT_PLUGIN
)

// FLBProxyGolang is the proxy kind telling the host to drive the plugin
// through its Go proxy.
const FLBProxyGolang int = C.FLB_PROXY_GOLANG

// RegisterSuccess and RegisterFailure are the status values of
// FLBPluginRegister and FLBPluginUnregister.
const (
	RegisterSuccess int = 0
	RegisterFailure int = -1
)
