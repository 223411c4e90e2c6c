package bx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLittleEndianReadWrite verifies that PutU16/U32/U64 and U16/U32/U64
// correctly round-trip values using little-endian encoding.
func TestLittleEndianReadWrite(t *testing.T) {
	// ---- U16 ----
	{
		b := make([]byte, 2)
		var v uint16 = 0x1234 // 4660 decimal

		// write v -> b (little-endian)
		PutU16(b, v)

		// in LE, least-significant byte goes first
		assert.Equal(t, []byte{0x34, 0x12}, b)
		// read back
		assert.Equal(t, v, U16(b))
	}

	// ---- U32 ----
	{
		b := make([]byte, 4)
		var v uint32 = 0x01020304

		PutU32(b, v)
		// LE: 04 03 02 01
		assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, b)
		assert.Equal(t, v, U32(b))
	}

	// ---- U64 ----
	{
		b := make([]byte, 8)
		var v uint64 = 0x0102030405060708

		PutU64(b, v)
		// LE: 08 07 06 05 04 03 02 01
		assert.Equal(t, []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}, b)
		assert.Equal(t, v, U64(b))
	}
}

// TestIntAliases checks I16/I32/I64 wrappers around U16/U32/U64.
func TestIntAliases(t *testing.T) {
	b := make([]byte, 8)

	PutU16(b, uint16(0xFFFF))
	assert.Equal(t, int16(-1), I16(b))

	PutU32(b, uint32(0xFFFFFFFE))
	assert.Equal(t, int32(-2), I32(b))

	PutU64(b, uint64(0xFFFFFFFFFFFFFFFD))
	assert.Equal(t, int64(-3), I64(b))
}

// TestFloats verifies the bit-pattern round-trip of F32/F64.
func TestFloats(t *testing.T) {
	b := make([]byte, 8)

	PutF64(b, 3.14159)
	assert.Equal(t, 3.14159, F64(b))

	PutF32(b, float32(1.5))
	assert.Equal(t, float32(1.5), F32(b))

	PutF64(b, math.Inf(1))
	assert.True(t, math.IsInf(F64(b), 1))
}

// TestAppend verifies the append-style writers used by the codecs.
func TestAppend(t *testing.T) {
	var b []byte
	b = AppendU16(b, 0x1234)
	b = AppendI64(b, -1)
	b = AppendF64(b, 2.5)
	b = AppendUvarint(b, 300)

	assert.Equal(t, uint16(0x1234), U16(b[0:]))
	assert.Equal(t, int64(-1), I64(b[2:]))
	assert.Equal(t, 2.5, F64(b[10:]))
	assert.Equal(t, []byte{0xAC, 0x02}, b[18:])
}
