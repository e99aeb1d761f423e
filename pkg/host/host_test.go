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

package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefinition(t *testing.T) {
	def := NewDefinition()
	defer def.Free()

	assert.NotNil(t, def.Ptr())
	assert.Zero(t, def.Type())
	assert.Zero(t, def.Proxy())
	assert.Empty(t, def.Name())
	assert.Empty(t, def.Description())
}

func TestOutputInstance(t *testing.T) {
	ins := NewOutputInstance(map[string]string{"a": "1"})
	assert.NotNil(t, ins.Ptr())
	assert.Zero(t, ins.RemoteContext())

	ins.DetachContext()
	assert.Zero(t, ins.RemoteContext())
	ins.DetachAPI()
	ins.Free()
}

func TestChunk(t *testing.T) {
	c := NewChunk([]byte("abc"))
	defer c.Free()
	assert.Equal(t, 3, c.Len())
	assert.NotNil(t, c.Ptr())

	tag := NewTag("app.log")
	defer tag.Free()
	assert.NotNil(t, tag.Ptr())
}
