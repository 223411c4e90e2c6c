// stand for bytes helper
package bx

import (
	"encoding/binary"
	"math"
)

var LE = binary.LittleEndian

// --- LE: read ---
func U16(b []byte) uint16  { return LE.Uint16(b) }
func U32(b []byte) uint32  { return LE.Uint32(b) }
func U64(b []byte) uint64  { return LE.Uint64(b) }
func I16(b []byte) int16   { return int16(U16(b)) }
func I32(b []byte) int32   { return int32(U32(b)) }
func I64(b []byte) int64   { return int64(U64(b)) }
func F32(b []byte) float32 { return math.Float32frombits(U32(b)) }
func F64(b []byte) float64 { return math.Float64frombits(U64(b)) }

// --- LE: write ---
func PutU16(b []byte, v uint16)  { LE.PutUint16(b, v) }
func PutU32(b []byte, v uint32)  { LE.PutUint32(b, v) }
func PutU64(b []byte, v uint64)  { LE.PutUint64(b, v) }
func PutF32(b []byte, v float32) { PutU32(b, math.Float32bits(v)) }
func PutF64(b []byte, v float64) { PutU64(b, math.Float64bits(v)) }

// --- LE: append (codec write path) ---
func AppendU16(b []byte, v uint16) []byte  { return LE.AppendUint16(b, v) }
func AppendU32(b []byte, v uint32) []byte  { return LE.AppendUint32(b, v) }
func AppendU64(b []byte, v uint64) []byte  { return LE.AppendUint64(b, v) }
func AppendI16(b []byte, v int16) []byte   { return AppendU16(b, uint16(v)) }
func AppendI32(b []byte, v int32) []byte   { return AppendU32(b, uint32(v)) }
func AppendI64(b []byte, v int64) []byte   { return AppendU64(b, uint64(v)) }
func AppendF32(b []byte, v float32) []byte { return AppendU32(b, math.Float32bits(v)) }
func AppendF64(b []byte, v float64) []byte { return AppendU64(b, math.Float64bits(v)) }

// --- uvarint ---
func AppendUvarint(b []byte, v uint64) []byte { return binary.AppendUvarint(b, v) }
