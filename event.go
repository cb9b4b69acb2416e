package cborm

import "fmt"
import "math"

import "github.com/x448/float16"

// EventKind identifies the data-item kind carried by an Event. The
// set is closed: CBOR defines exactly eight major types and no new
// ones will appear.
type EventKind byte

const (
	EventUnsignedInteger EventKind = iota + 1 // major type 0
	EventNegativeInteger                      // major type 1, value is -1-n
	EventByteString                           // major type 2, definite
	EventByteStringIndefinite                 // major type 2, chunked
	EventTextString                           // major type 3, definite
	EventTextStringIndefinite                 // major type 3, chunked
	EventArray                                // major type 4, definite
	EventArrayIndefinite                      // major type 4
	EventMap                                  // major type 5, definite
	EventMapIndefinite                        // major type 5
	EventTag                                  // major type 6
	EventSimple                               // major type 7, codes 0..19 and 32..255
	EventBool                                 // major type 7, codes 20 and 21
	EventNull                                 // major type 7, code 22
	EventUndefined                            // major type 7, code 23
	EventFloat16                              // major type 7, info 25
	EventFloat32                              // major type 7, info 26
	EventFloat64                              // major type 7, info 27
	EventEnd                                  // synthetic, closes the innermost frame
)

// Event is one decoded, or to-be-encoded, data-item.
type Event struct {
	Kind EventKind

	// Num holds the integer value for UnsignedInteger and
	// NegativeInteger, the length argument for Array and Map (map
	// argument counts pairs), the tag number for Tag, the code-point
	// for Simple, 0/1 for Bool, and the raw IEEE-754 bit pattern for
	// the float kinds. Float bits are preserved exactly so that NaN
	// payloads and signed zeroes survive a round-trip.
	Num uint64

	// Bytes is the string content for ByteString and TextString. It
	// is borrowed from the decoder's input buffer, never copied; it
	// remains valid for the buffer's lifetime, not the decoder's.
	Bytes []byte
}

func UnsignedInteger(v uint64) Event {
	return Event{Kind: EventUnsignedInteger, Num: v}
}

// NegativeInteger event for the value -1-n.
func NegativeInteger(n uint64) Event {
	return Event{Kind: EventNegativeInteger, Num: n}
}

func ByteString(content []byte) Event {
	return Event{Kind: EventByteString, Bytes: content}
}

func ByteStringIndefinite() Event {
	return Event{Kind: EventByteStringIndefinite}
}

func TextString(content []byte) Event {
	return Event{Kind: EventTextString, Bytes: content}
}

func TextStringIndefinite() Event {
	return Event{Kind: EventTextStringIndefinite}
}

func Array(n uint64) Event {
	return Event{Kind: EventArray, Num: n}
}

func ArrayIndefinite() Event {
	return Event{Kind: EventArrayIndefinite}
}

// Map event for a definite-length map of n key,value pairs.
func Map(n uint64) Event {
	return Event{Kind: EventMap, Num: n}
}

func MapIndefinite() Event {
	return Event{Kind: EventMapIndefinite}
}

func Tag(n uint64) Event {
	return Event{Kind: EventTag, Num: n}
}

func Simple(code byte) Event {
	return Event{Kind: EventSimple, Num: uint64(code)}
}

func Bool(v bool) Event {
	if v {
		return Event{Kind: EventBool, Num: 1}
	}
	return Event{Kind: EventBool, Num: 0}
}

func Null() Event {
	return Event{Kind: EventNull}
}

func Undefined() Event {
	return Event{Kind: EventUndefined}
}

func Float16(bits uint16) Event {
	return Event{Kind: EventFloat16, Num: uint64(bits)}
}

func Float32(bits uint32) Event {
	return Event{Kind: EventFloat32, Num: uint64(bits)}
}

func Float64(bits uint64) Event {
	return Event{Kind: EventFloat64, Num: bits}
}

func End() Event {
	return Event{Kind: EventEnd}
}

// BoolValue for Bool events.
func (ev Event) BoolValue() bool {
	return ev.Num != 0
}

// Int64Value returns the semantic integer value: Num for
// UnsignedInteger, -1-Num for NegativeInteger.
func (ev Event) Int64Value() int64 {
	if ev.Kind == EventNegativeInteger {
		return -1 - int64(ev.Num)
	}
	return int64(ev.Num)
}

// Float16Value converts the stored half-precision bit pattern.
func (ev Event) Float16Value() float32 {
	return float16.Frombits(uint16(ev.Num)).Float32()
}

// Float32Value converts the stored single-precision bit pattern.
func (ev Event) Float32Value() float32 {
	return math.Float32frombits(uint32(ev.Num))
}

// Float64Value converts the stored double-precision bit pattern.
func (ev Event) Float64Value() float64 {
	return math.Float64frombits(ev.Num)
}

// IsContainerOpen is whether this event opens a frame, that is,
// starts an item the decoder will later close with End.
func (ev Event) IsContainerOpen() bool {
	switch ev.Kind {
	case EventByteStringIndefinite, EventTextStringIndefinite,
		EventArray, EventArrayIndefinite, EventMap, EventMapIndefinite:
		return true
	}
	return false
}

// IsIndefinite is whether this event opens an indefinite-length item.
func (ev Event) IsIndefinite() bool {
	switch ev.Kind {
	case EventByteStringIndefinite, EventTextStringIndefinite,
		EventArrayIndefinite, EventMapIndefinite:
		return true
	}
	return false
}

// String representation of this event, used for logging.
func (ev Event) String() string {
	switch ev.Kind {
	case EventUnsignedInteger:
		return fmt.Sprintf("UnsignedInteger(%v)", ev.Num)
	case EventNegativeInteger:
		return fmt.Sprintf("NegativeInteger(%v)", ev.Int64Value())
	case EventByteString:
		return fmt.Sprintf("ByteString(%v bytes)", len(ev.Bytes))
	case EventByteStringIndefinite:
		return "ByteStringIndefinite"
	case EventTextString:
		return fmt.Sprintf("TextString(%q)", string(ev.Bytes))
	case EventTextStringIndefinite:
		return "TextStringIndefinite"
	case EventArray:
		return fmt.Sprintf("Array(%v)", ev.Num)
	case EventArrayIndefinite:
		return "ArrayIndefinite"
	case EventMap:
		return fmt.Sprintf("Map(%v)", ev.Num)
	case EventMapIndefinite:
		return "MapIndefinite"
	case EventTag:
		return fmt.Sprintf("Tag(%v)", ev.Num)
	case EventSimple:
		return fmt.Sprintf("Simple(%v)", ev.Num)
	case EventBool:
		return fmt.Sprintf("Bool(%v)", ev.BoolValue())
	case EventNull:
		return "Null"
	case EventUndefined:
		return "Undefined"
	case EventFloat16:
		return fmt.Sprintf("Float16(%v)", ev.Float16Value())
	case EventFloat32:
		return fmt.Sprintf("Float32(%v)", ev.Float32Value())
	case EventFloat64:
		return fmt.Sprintf("Float64(%v)", ev.Float64Value())
	case EventEnd:
		return "End"
	}
	return fmt.Sprintf("Event(%v)", byte(ev.Kind))
}
