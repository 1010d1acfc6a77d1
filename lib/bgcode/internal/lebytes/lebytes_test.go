// Copyright 2019 The Wuffs Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// ----------------

package lebytes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint16RoundTrip(t *testing.T) {
	buf := PutUint16(nil, 0xBEEF)
	got, err := Uint16(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xBEEF), got)
}

func TestUint32RoundTrip(t *testing.T) {
	buf := PutUint32(nil, 0xDEADBEEF)
	got, err := Uint32(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), got)
}

func TestUint16ShortBuffer(t *testing.T) {
	_, err := Uint16([]byte{1}, 0)
	assert.ErrorIs(t, err, ErrShortBuffer)
}

func TestUint32ShortBuffer(t *testing.T) {
	_, err := Uint32([]byte{1, 2, 3}, 0)
	assert.ErrorIs(t, err, ErrShortBuffer)
}

func TestUint32OffsetOutOfRange(t *testing.T) {
	_, err := Uint32([]byte{1, 2, 3, 4}, 4)
	assert.ErrorIs(t, err, ErrShortBuffer)
}
