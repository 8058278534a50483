// Package endian provides the byte order engines used by protocol-1 tables.
//
// A table records its byte order in its header flag; every multi-byte field of
// the table (header, row entries, nucpath ids, composition fractions) is then
// read and written through the matching EndianEngine. Container superblocks and
// directories are always little-endian.
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, rowCount)
//	buf = endian.AppendFloat64(engine, buf, fraction)
//
// All functions are safe for concurrent use; engines are stateless.
package endian

import (
	"encoding/binary"
	"math"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// ForFlag returns the big-endian engine when bigEndian is set, otherwise the
// little-endian engine.
func ForFlag(bigEndian bool) EndianEngine {
	if bigEndian {
		return GetBigEndianEngine()
	}

	return GetLittleEndianEngine()
}

// PutFloat64 writes the IEEE-754 bits of v into b[0:8].
func PutFloat64(engine EndianEngine, b []byte, v float64) {
	engine.PutUint64(b, math.Float64bits(v))
}

// Float64 reads IEEE-754 bits from b[0:8].
func Float64(engine EndianEngine, b []byte) float64 {
	return math.Float64frombits(engine.Uint64(b))
}

// AppendFloat64 appends the IEEE-754 bits of v to b.
func AppendFloat64(engine EndianEngine, b []byte, v float64) []byte {
	return engine.AppendUint64(b, math.Float64bits(v))
}
