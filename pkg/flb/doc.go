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

// Package flb provides definitions and constructs for developers that
// would like to write Fluent Bit output plugins
// (https://docs.fluentbit.io/manual/development/golang-output-plugins)
// in Go.
//
// It mirrors the C definitions of the Fluent Bit Go proxy (result codes,
// proxy kinds, registration and plugin records), defines the error
// taxonomy plugins use to report failures, and provides the Config
// accessor through which plugins read their properties.
//
// Most plugins only need this package together with the
// sdk/plugins/output package, which registers a plugin and exports the
// C symbols the host resolves.
package flb
