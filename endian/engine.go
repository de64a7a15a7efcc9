// Package endian provides byte order utilities for the fleece binary format.
//
// The format stores every multi-byte payload (float bodies, general-integer
// bodies, varints) little-endian regardless of the host byte order, so the
// encoder always works through an explicit EndianEngine rather than host
// memory layout. The package combines the ByteOrder and AppendByteOrder
// interfaces from encoding/binary into one interface so encoders can both
// read back and append without an intermediate scratch buffer.
//
// Most callers want GetLittleEndianEngine, the format's standard:
//
//	engine := endian.GetLittleEndianEngine()
//	enc := fleece.NewEncoder(fleece.WithEndianEngine(engine))
//
// All functions and returned engines are immutable, stateless, and safe for
// concurrent use.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface for convenient byte order operations.
//
// It is satisfied by binary.LittleEndian and binary.BigEndian, so it stays
// fully compatible with existing code while exposing both read/write and
// append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine, the byte order
// the fleece wire format uses for all embedded payloads.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
