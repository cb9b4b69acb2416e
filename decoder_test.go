package cborm

import "bytes"
import "io"
import "testing"

import s "github.com/bnclabs/gosettings"

// decodeAll drains the decoder, failing the test on malformed input.
func decodeAll(t *testing.T, buf []byte) []Event {
	t.Helper()
	dec, events := NewDecoder(buf, nil), []Event{}
	for {
		ev, err := dec.DecodeEvent()
		if err == io.EOF {
			return events
		} else if err != nil {
			t.Fatalf("DecodeEvent: %v", err)
		}
		events = append(events, ev)
	}
}

func TestDecodeIntegers(t *testing.T) {
	events := decodeAll(t, []byte{0x0b, 0x18, 0x8c, 0x39, 0xb9, 0x37})
	if len(events) != 3 {
		t.Fatalf("expected %v, got %v", 3, len(events))
	} else if ev := events[0]; ev.Kind != EventUnsignedInteger || ev.Num != 0x0b {
		t.Errorf("got %v", ev)
	} else if ev := events[1]; ev.Kind != EventUnsignedInteger || ev.Num != 0x8c {
		t.Errorf("got %v", ev)
	} else if ev := events[2]; ev.Kind != EventNegativeInteger || ev.Num != 0xb937 {
		t.Errorf("got %v", ev)
	} else if v := events[2].Int64Value(); v != -0xb938 {
		t.Errorf("expected %v, got %v", -0xb938, v)
	}
}

func TestDecodeStrings(t *testing.T) {
	buf := []byte{0x43, 0x9d, 0x1b, 0x22, 0x78, 0x01, 0x4e}
	events := decodeAll(t, buf)
	if len(events) != 2 {
		t.Fatalf("expected %v, got %v", 2, len(events))
	}
	ev := events[0]
	if ev.Kind != EventByteString {
		t.Errorf("got %v", ev)
	} else if bytes.Equal(ev.Bytes, []byte{0x9d, 0x1b, 0x22}) == false {
		t.Errorf("got %x", ev.Bytes)
	} else if &ev.Bytes[0] != &buf[1] {
		t.Errorf("content was copied, expected a borrowed slice")
	}
	ev = events[1]
	if ev.Kind != EventTextString || string(ev.Bytes) != "N" {
		t.Errorf("got %v", ev)
	}
}

// A1 182A 65 68656C6C6F is {42: "hello"}.
func TestDecodeMapScenario(t *testing.T) {
	buf := []byte{0xa1, 0x18, 0x2a, 0x65, 0x68, 0x65, 0x6c, 0x6c, 0x6f}
	events := decodeAll(t, buf)
	if len(events) != 4 {
		t.Fatalf("expected %v, got %v", 4, len(events))
	} else if ev := events[0]; ev.Kind != EventMap || ev.Num != 1 {
		t.Errorf("got %v", ev)
	} else if ev := events[1]; ev.Kind != EventUnsignedInteger || ev.Num != 42 {
		t.Errorf("got %v", ev)
	} else if ev := events[2]; ev.Kind != EventTextString || string(ev.Bytes) != "hello" {
		t.Errorf("got %v", ev)
	} else if ev := events[3]; ev.Kind != EventEnd {
		t.Errorf("got %v", ev)
	}
}

// 9F 01 02 FF is [_ 1, 2].
func TestDecodeIndefiniteArray(t *testing.T) {
	events := decodeAll(t, []byte{0x9f, 0x01, 0x02, 0xff})
	if len(events) != 4 {
		t.Fatalf("expected %v, got %v", 4, len(events))
	} else if ev := events[0]; ev.Kind != EventArrayIndefinite {
		t.Errorf("got %v", ev)
	} else if ev := events[1]; ev.Kind != EventUnsignedInteger || ev.Num != 1 {
		t.Errorf("got %v", ev)
	} else if ev := events[2]; ev.Kind != EventUnsignedInteger || ev.Num != 2 {
		t.Errorf("got %v", ev)
	} else if ev := events[3]; ev.Kind != EventEnd {
		t.Errorf("got %v", ev)
	}
}

// 82 81 01 02 is [[1], 2]: each definite frame closes with its own End.
func TestDecodeNestedDefinite(t *testing.T) {
	events := decodeAll(t, []byte{0x82, 0x81, 0x01, 0x02})
	kinds := []EventKind{
		EventArray, EventArray, EventUnsignedInteger, EventEnd,
		EventUnsignedInteger, EventEnd,
	}
	if len(events) != len(kinds) {
		t.Fatalf("expected %v, got %v", len(kinds), len(events))
	}
	for i, kind := range kinds {
		if events[i].Kind != kind {
			t.Errorf("event %v: got %v", i, events[i])
		}
	}
}

// A tag wraps the next item without disturbing the parent count.
func TestDecodeTagged(t *testing.T) {
	events := decodeAll(t, []byte{0x81, 0xd9, 0x5e, 0xd2, 0x01})
	kinds := []EventKind{EventArray, EventTag, EventUnsignedInteger, EventEnd}
	if len(events) != len(kinds) {
		t.Fatalf("expected %v, got %v", len(kinds), len(events))
	}
	for i, kind := range kinds {
		if events[i].Kind != kind {
			t.Errorf("event %v: got %v", i, events[i])
		}
	}
	if events[1].Num != 0x5ed2 {
		t.Errorf("expected %v, got %v", 0x5ed2, events[1].Num)
	}
}

func TestDecodeIndefiniteText(t *testing.T) {
	events := decodeAll(t, []byte{0x7f, 0x62, 0x61, 0x62, 0x61, 0x63, 0xff})
	if len(events) != 4 {
		t.Fatalf("expected %v, got %v", 4, len(events))
	} else if ev := events[0]; ev.Kind != EventTextStringIndefinite {
		t.Errorf("got %v", ev)
	} else if ev := events[1]; ev.Kind != EventTextString || string(ev.Bytes) != "ab" {
		t.Errorf("got %v", ev)
	} else if ev := events[2]; ev.Kind != EventTextString || string(ev.Bytes) != "c" {
		t.Errorf("got %v", ev)
	} else if ev := events[3]; ev.Kind != EventEnd {
		t.Errorf("got %v", ev)
	}
}

func TestDecodeSimple(t *testing.T) {
	events := decodeAll(t, []byte{0xe7, 0xf8, 0x5e, 0xf4, 0xf5, 0xf6, 0xf7})
	if len(events) != 6 {
		t.Fatalf("expected %v, got %v", 6, len(events))
	} else if ev := events[0]; ev.Kind != EventSimple || ev.Num != 0x07 {
		t.Errorf("got %v", ev)
	} else if ev := events[1]; ev.Kind != EventSimple || ev.Num != 0x5e {
		t.Errorf("got %v", ev)
	} else if ev := events[2]; ev.Kind != EventBool || ev.BoolValue() != false {
		t.Errorf("got %v", ev)
	} else if ev := events[3]; ev.Kind != EventBool || ev.BoolValue() != true {
		t.Errorf("got %v", ev)
	} else if ev := events[4]; ev.Kind != EventNull {
		t.Errorf("got %v", ev)
	} else if ev := events[5]; ev.Kind != EventUndefined {
		t.Errorf("got %v", ev)
	}
}

func TestDecodeSimpleReserved(t *testing.T) {
	// two-byte form of code-points below 32 is invalid.
	dec := NewDecoder([]byte{0xf8, 0x14}, nil)
	if _, err := dec.DecodeEvent(); err != ErrorReservedEncoding {
		t.Errorf("expected %v, got %v", ErrorReservedEncoding, err)
	}
	dec = NewDecoder([]byte{0xf8, 0x1f}, nil)
	if _, err := dec.DecodeEvent(); err != ErrorReservedEncoding {
		t.Errorf("expected %v, got %v", ErrorReservedEncoding, err)
	}
}

func TestDecodeIndefiniteInfoReserved(t *testing.T) {
	// additional-info 31 on the integer and tag major types is not an
	// indefinite length, it has no meaning at all.
	for _, b := range []byte{0x1f, 0x3f, 0xdf} {
		dec := NewDecoder([]byte{b}, nil)
		if _, err := dec.DecodeEvent(); err != ErrorReservedEncoding {
			t.Errorf("head %x: expected %v, got %v", b, ErrorReservedEncoding, err)
		} else if dec.Pos() != 0 {
			t.Errorf("head %x: cursor moved to %v", b, dec.Pos())
		}
	}
}

func TestDecodeFloats(t *testing.T) {
	events := decodeAll(t, []byte{
		0xf9, 0x7c, 0x00,
		0xfa, 0x7f, 0x80, 0x00, 0x00,
		0xfb, 0x7f, 0xf0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	})
	if len(events) != 3 {
		t.Fatalf("expected %v, got %v", 3, len(events))
	} else if ev := events[0]; ev.Kind != EventFloat16 || ev.Num != 0x7c00 {
		t.Errorf("got %v", ev)
	} else if ev := events[1]; ev.Kind != EventFloat32 || ev.Num != 0x7f800000 {
		t.Errorf("got %v", ev)
	} else if ev := events[2]; ev.Kind != EventFloat64 || ev.Num != 0x7ff0000000000000 {
		t.Errorf("got %v", ev)
	}
}

func TestDecodeTruncated(t *testing.T) {
	for _, buf := range [][]byte{
		{0x18},             // head promises one byte, none present
		{0x43, 0x01, 0x02}, // byte-string content short
		{0x82, 0x01},       // array exhausted mid-frame
		{0x9f, 0x01},       // indefinite array with no break-stop
		{0xc1},             // tag with no wrapped item
	} {
		dec := NewDecoder(buf, nil)
		var err error
		for err == nil {
			_, err = dec.DecodeEvent()
		}
		if err != ErrorUnexpectedEof {
			t.Errorf("%x: expected %v, got %v", buf, ErrorUnexpectedEof, err)
		}
	}
}

func TestDecodeUnexpectedBreak(t *testing.T) {
	dec := NewDecoder([]byte{0xff}, nil)
	if _, err := dec.DecodeEvent(); err != ErrorUnexpectedBreak {
		t.Errorf("expected %v, got %v", ErrorUnexpectedBreak, err)
	}

	// break-stop inside a definite-length array.
	dec = NewDecoder([]byte{0x82, 0xff}, nil)
	if _, err := dec.DecodeEvent(); err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	if _, err := dec.DecodeEvent(); err != ErrorUnexpectedBreak {
		t.Errorf("expected %v, got %v", ErrorUnexpectedBreak, err)
	}
}

func TestDecodeOddMapLength(t *testing.T) {
	// {_ 1: } with a dangling key.
	dec := NewDecoder([]byte{0xbf, 0x01, 0xff}, nil)
	if _, err := dec.DecodeEvent(); err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	if _, err := dec.DecodeEvent(); err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	if _, err := dec.DecodeEvent(); err != ErrorOddMapLength {
		t.Errorf("expected %v, got %v", ErrorOddMapLength, err)
	}
}

func TestDecodeDepthExceeded(t *testing.T) {
	setts := DefaultSettings()
	setts["maxdepth"] = uint64(4)
	buf := []byte{0x9f, 0x9f, 0x9f, 0x9f, 0x9f} // five nested arrays
	dec := NewDecoder(buf, setts)
	var err error
	for err == nil {
		_, err = dec.DecodeEvent()
	}
	if err != ErrorDepthExceeded {
		t.Errorf("expected %v, got %v", ErrorDepthExceeded, err)
	}
}

func TestDecodeMultipleTopLevel(t *testing.T) {
	events := decodeAll(t, []byte{0x01, 0x81, 0x02, 0x03})
	kinds := []EventKind{
		EventUnsignedInteger, EventArray, EventUnsignedInteger, EventEnd,
		EventUnsignedInteger,
	}
	if len(events) != len(kinds) {
		t.Fatalf("expected %v, got %v", len(kinds), len(events))
	}
	for i, kind := range kinds {
		if events[i].Kind != kind {
			t.Errorf("event %v: got %v", i, events[i])
		}
	}
}

func TestSkipItem(t *testing.T) {
	// {42: "hello"} followed by 7.
	buf := []byte{
		0xa1, 0x18, 0x2a, 0x65, 0x68, 0x65, 0x6c, 0x6c, 0x6f,
		0x07,
	}
	dec := NewDecoder(buf, nil)
	if err := dec.SkipItem(); err != nil {
		t.Fatalf("SkipItem: %v", err)
	} else if dec.Pos() != 9 {
		t.Errorf("expected %v, got %v", 9, dec.Pos())
	}
	if ev, err := dec.DecodeEvent(); err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	} else if ev.Kind != EventUnsignedInteger || ev.Num != 7 {
		t.Errorf("got %v", ev)
	}

	// skip a tagged item: the tag and its wrapped item go together.
	dec = NewDecoder([]byte{0xc1, 0x81, 0x01, 0x02}, nil)
	if err := dec.SkipItem(); err != nil {
		t.Fatalf("SkipItem: %v", err)
	} else if dec.Pos() != 3 {
		t.Errorf("expected %v, got %v", 3, dec.Pos())
	}
}

func TestDecodeDepth(t *testing.T) {
	dec := NewDecoder([]byte{0x82, 0x9f, 0xff, 0x01}, nil)
	depths := []int{1, 2, 1, 1, 0}
	for i, depth := range depths {
		if _, err := dec.DecodeEvent(); err != nil {
			t.Fatalf("event %v: %v", i, err)
		} else if d := dec.Depth(); d != depth {
			t.Errorf("event %v: expected depth %v, got %v", i, depth, d)
		}
	}
}

func TestDecoderSettings(t *testing.T) {
	setts := s.Settings{"maxdepth": uint64(1)}
	dec := NewDecoder([]byte{0x81, 0x81, 0x01}, setts)
	if _, err := dec.DecodeEvent(); err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	if _, err := dec.DecodeEvent(); err != ErrorDepthExceeded {
		t.Errorf("expected %v, got %v", ErrorDepthExceeded, err)
	}
}

func BenchmarkDecodeEvent(b *testing.B) {
	buf := []byte{0xa1, 0x18, 0x2a, 0x65, 0x68, 0x65, 0x6c, 0x6c, 0x6f}
	dec := NewDecoder(buf, nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dec.n, dec.ns.depth = 0, 0
		for {
			if _, err := dec.DecodeEvent(); err != nil {
				break
			}
		}
	}
}
