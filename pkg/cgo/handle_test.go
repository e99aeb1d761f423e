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

package cgo

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countHandles() int {
	siz := 0
	for i := 0; i <= MaxHandle; i++ {
		if atomic.LoadPointer(&handles[i]) != noHandle {
			siz++
		}
	}
	return siz
}

func TestHandle(t *testing.T) {
	v := 42

	tests := []struct {
		v1 interface{}
		v2 interface{}
	}{
		{v1: v, v2: v},
		{v1: &v, v2: &v},
		{v1: nil, v2: nil},
	}

	for _, tt := range tests {
		h1, err := NewHandle(tt.v1)
		require.NoError(t, err)
		h2, err := NewHandle(tt.v2)
		require.NoError(t, err)

		assert.NotZero(t, uintptr(h1))
		assert.NotZero(t, uintptr(h2))
		assert.NotEqual(t, h1, h2, "duplicated Go values should have different handles")

		h1v, ok := h1.Load()
		require.True(t, ok)
		h2v, ok := h2.Load()
		require.True(t, ok)
		assert.Equal(t, tt.v1, h1v)
		assert.Equal(t, tt.v2, h2v)

		// loading twice does not consume the value
		_, ok = h1.Load()
		assert.True(t, ok)

		taken, ok := h1.Take()
		require.True(t, ok)
		assert.Equal(t, tt.v1, taken)
		_, ok = h2.Take()
		require.True(t, ok)
	}

	assert.Zero(t, countHandles(), "handles are not cleared")
}

func TestInvalidHandle(t *testing.T) {
	t.Run("zero", func(t *testing.T) {
		_, ok := Handle(0).Load()
		assert.False(t, ok)
		_, ok = Handle(0).Take()
		assert.False(t, ok)
	})

	t.Run("out-of-range", func(t *testing.T) {
		_, ok := Handle(MaxHandle + 1).Load()
		assert.False(t, ok)
		_, ok = Handle(MaxHandle + 1).Take()
		assert.False(t, ok)
	})

	t.Run("taken", func(t *testing.T) {
		h, err := NewHandle(42)
		require.NoError(t, err)
		_, ok := h.Take()
		require.True(t, ok)

		_, ok = h.Load()
		assert.False(t, ok, "a taken handle must not be readable")
		_, ok = h.Take()
		assert.False(t, ok, "a handle must not be taken twice")
	})
}

func TestMaxHandle(t *testing.T) {
	defer resetHandles()

	hs := make([]Handle, 0, MaxHandle)
	for i := 1; i <= MaxHandle; i++ {
		v := i
		h, err := NewHandle(&v)
		require.NoError(t, err)
		hs = append(hs, h)
	}

	_, err := NewHandle(0)
	assert.ErrorIs(t, err, ErrNoHandle)

	// releasing one slot makes it available again
	_, ok := hs[10].Take()
	require.True(t, ok)
	h, err := NewHandle(0)
	require.NoError(t, err)
	assert.Equal(t, hs[10], h)
}

func TestConcurrentTake(t *testing.T) {
	h, err := NewHandle("instance")
	require.NoError(t, err)

	var wg sync.WaitGroup
	var winners int32
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := h.Take(); ok {
				atomic.AddInt32(&winners, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), winners)
}

func BenchmarkHandle(b *testing.B) {
	b.Run("non-concurrent", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			h, err := NewHandle(i)
			if err != nil {
				b.Fatal(err)
			}
			_, _ = h.Load()
			_, _ = h.Take()
		}
	})
}
