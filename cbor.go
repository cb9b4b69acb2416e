//  Copyright (c) 2015 Couchbase, Inc.

package cborm

import "encoding/binary"

const cborMaxSmallInt = 23

const ( // major types.
	cborType0 byte = iota << 5 // unsigned integer
	cborType1                  // negative integer
	cborType2                  // byte string
	cborType3                  // text string
	cborType4                  // array
	cborType5                  // map
	cborType6                  // tagged data-item
	cborType7                  // floating-point, simple-types and break-stop
)

const ( // associated information, common to all major types.
	// 0..23 actual value
	cborInfo24 byte = iota + 24 // followed by 1-byte data-item
	cborInfo25                  // followed by 2-byte data-item
	cborInfo26                  // followed by 4-byte data-item
	cborInfo27                  // followed by 8-byte data-item
	// 28..30 reserved
	cborIndefiniteLength = 31 // for byte-string, string, arr, map
)

const ( // simple types for type7
	// 0..19 unassigned
	cborSimpleTypeFalse byte = iota + 20
	cborSimpleTypeTrue
	cborSimpleTypeNil
	cborSimpleUndefined
	cborSimpleTypeByte // the actual type in next byte 32..255
	cborFlt16          // IEEE 754 Half-Precision Float
	cborFlt32          // IEEE 754 Single-Precision Float
	cborFlt64          // IEEE 754 Double-Precision Float
	// 28..30 reserved
	cborItemBreak = 31 // stop-code for indefinite-length items
)

func cborMajor(b byte) byte {
	return b & 0xe0
}

func cborInfo(b byte) byte {
	return b & 0x1f
}

func cborHdr(major, info byte) byte {
	return (major & 0xe0) | (info & 0x1f)
}

var brkstp byte = cborHdr(cborType7, cborItemBreak)

var hdrIndefiniteBytes = cborHdr(cborType2, cborIndefiniteLength)
var hdrIndefiniteText = cborHdr(cborType3, cborIndefiniteLength)
var hdrIndefiniteArray = cborHdr(cborType4, cborIndefiniteLength)
var hdrIndefiniteMap = cborHdr(cborType5, cborIndefiniteLength)

// readHead decodes one head from buf: the major type, the raw
// additional-information bits, the argument and the number of bytes
// the head occupies. For additional-information 31 the argument is
// zero and the caller interprets the head as indefinite-length or
// break-stop by major type.
func readHead(buf []byte) (major, info byte, arg uint64, n int, err error) {
	if len(buf) == 0 {
		return 0, 0, 0, 0, ErrorUnexpectedEof
	}
	major, info = cborMajor(buf[0]), cborInfo(buf[0])
	switch {
	case info < cborInfo24:
		return major, info, uint64(info), 1, nil

	case info == cborInfo24:
		if len(buf) < 2 {
			return 0, 0, 0, 0, ErrorUnexpectedEof
		}
		return major, info, uint64(buf[1]), 2, nil

	case info == cborInfo25:
		if len(buf) < 3 {
			return 0, 0, 0, 0, ErrorUnexpectedEof
		}
		return major, info, uint64(binary.BigEndian.Uint16(buf[1:])), 3, nil

	case info == cborInfo26:
		if len(buf) < 5 {
			return 0, 0, 0, 0, ErrorUnexpectedEof
		}
		return major, info, uint64(binary.BigEndian.Uint32(buf[1:])), 5, nil

	case info == cborInfo27:
		if len(buf) < 9 {
			return 0, 0, 0, 0, ErrorUnexpectedEof
		}
		return major, info, binary.BigEndian.Uint64(buf[1:]), 9, nil

	case info == cborIndefiniteLength:
		return major, info, 0, 1, nil
	}
	// 28..30
	return 0, 0, 0, 0, ErrorReservedEncoding
}

// writeHead encodes major-type and argument into buf using the
// shortest form that represents the argument exactly, and returns the
// number of bytes written. buf shall be at least 9 bytes.
func writeHead(major byte, arg uint64, buf []byte) int {
	switch {
	case arg <= cborMaxSmallInt:
		buf[0] = cborHdr(major, byte(arg))
		return 1

	case arg <= 0xff:
		buf[0] = cborHdr(major, cborInfo24)
		buf[1] = byte(arg)
		return 2

	case arg <= 0xffff:
		buf[0] = cborHdr(major, cborInfo25)
		binary.BigEndian.PutUint16(buf[1:], uint16(arg))
		return 3

	case arg <= 0xffffffff:
		buf[0] = cborHdr(major, cborInfo26)
		binary.BigEndian.PutUint32(buf[1:], uint32(arg))
		return 5
	}
	buf[0] = cborHdr(major, cborInfo27)
	binary.BigEndian.PutUint64(buf[1:], arg)
	return 9
}

// writeIndefiniteHead encodes the indefinite-length head for major.
func writeIndefiniteHead(major byte, buf []byte) int {
	buf[0] = cborHdr(major, cborIndefiniteLength)
	return 1
}

// writeBreakStop encodes the break-stop byte 0xff.
func writeBreakStop(buf []byte) int {
	buf[0] = brkstp
	return 1
}

// IsBreakstop checks whether b is the break-stop byte terminating an
// indefinite-length item. Can be used by libraries that build on top
// of cborm.
func IsBreakstop(b byte) bool {
	return b == brkstp
}

// IsIndefiniteBytes checks for the indefinite-length byte-string head.
// Can be used by libraries that build on top of cborm.
func IsIndefiniteBytes(b byte) bool {
	return b == hdrIndefiniteBytes
}

// IsIndefiniteText checks for the indefinite-length text-string head.
// Can be used by libraries that build on top of cborm.
func IsIndefiniteText(b byte) bool {
	return b == hdrIndefiniteText
}

// IsIndefiniteArray checks for the indefinite-length array head.
// Can be used by libraries that build on top of cborm.
func IsIndefiniteArray(b byte) bool {
	return b == hdrIndefiniteArray
}

// IsIndefiniteMap checks for the indefinite-length map head.
// Can be used by libraries that build on top of cborm.
func IsIndefiniteMap(b byte) bool {
	return b == hdrIndefiniteMap
}
