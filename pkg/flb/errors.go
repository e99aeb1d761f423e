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

import "errors"

// Error is the kind of failure a plugin reports to Fluent Bit.
// It carries no message: the host only understands a result code.
// Plugins can still add context by wrapping one of the values:
//
//	return fmt.Errorf("sending batch: %w", flb.RetryableFailure)
type Error int

const (
	// Failure tells the host that the chunk failed permanently
	// and must not be delivered again.
	Failure Error = iota + 1
	// RetryableFailure tells the host to deliver the chunk again later.
	RetryableFailure
)

func (e Error) Error() string {
	switch e {
	case Failure:
		return "failure"
	case RetryableFailure:
		return "retryable failure"
	default:
		return "unknown failure"
	}
}

// ResultCode maps the outcome of a plugin callback to the result
// code returned to the host. A nil error is FLBOk, an error wrapping
// RetryableFailure is FLBRetry, and any other error is FLBError.
func ResultCode(err error) int {
	if err == nil {
		return FLBOk
	}
	var kind Error
	if errors.As(err, &kind) && kind == RetryableFailure {
		return FLBRetry
	}
	return FLBError
}
