package cborm

import "io"
import "math"

import s "github.com/bnclabs/gosettings"

// Decoder pulls a stream of events out of one contiguous buffer. A
// decoder is scoped to its buffer; create a new one per buffer. Not
// safe for concurrent use, independent decoders over disjoint buffers
// are.
type Decoder struct {
	buf    []byte
	n      int
	ns     nesting
	tagged bool // last event was a Tag, its wrapped item is still owed
}

// NewDecoder over buf. Pass nil settings to use DefaultSettings().
// String content in decoded events is borrowed from buf; buf shall
// stay alive and unmutated for as long as those events are used.
func NewDecoder(buf []byte, setts s.Settings) *Decoder {
	if setts == nil {
		setts = DefaultSettings()
	}
	d := &Decoder{buf: buf}
	d.ns.init(int(setts.Uint64("maxdepth")))
	return d
}

// Depth is the number of currently open frames.
func (d *Decoder) Depth() int {
	return d.ns.depth
}

// Pos is the read cursor, the offset of the next undecoded byte.
func (d *Decoder) Pos() int {
	return d.n
}

// DecodeEvent returns the next event. A definite-length frame whose
// expected children have all been decoded closes first: End is
// returned and no bytes are consumed. At clean exhaustion of the
// buffer between top-level items the error is io.EOF; running out of
// bytes anywhere else, a dangling tag included, is ErrorUnexpectedEof.
// On any error the cursor and the nesting stack are left unchanged.
func (d *Decoder) DecodeEvent() (Event, error) {
	if f := d.ns.top(); f != nil && f.definite && f.remaining == 0 {
		d.ns.pop()
		return Event{Kind: EventEnd}, nil
	}
	if d.n >= len(d.buf) {
		if d.ns.depth > 0 || d.tagged {
			return Event{}, ErrorUnexpectedEof
		}
		return Event{}, io.EOF
	}
	d.tagged = false

	major, info, arg, hn, err := readHead(d.buf[d.n:])
	if err != nil {
		return Event{}, err
	}

	switch major {
	case cborType0:
		// additional-info 31 has no meaning for integers and tags.
		if info == cborIndefiniteLength {
			return Event{}, ErrorReservedEncoding
		}
		d.ns.childItem()
		d.n += hn
		return Event{Kind: EventUnsignedInteger, Num: arg}, nil

	case cborType1:
		if info == cborIndefiniteLength {
			return Event{}, ErrorReservedEncoding
		}
		d.ns.childItem()
		d.n += hn
		return Event{Kind: EventNegativeInteger, Num: arg}, nil

	case cborType2, cborType3:
		if info == cborIndefiniteLength {
			fk, ek := frameBytesChunks, EventByteStringIndefinite
			if major == cborType3 {
				fk, ek = frameTextChunks, EventTextStringIndefinite
			}
			if d.ns.full() {
				return Event{}, ErrorDepthExceeded
			}
			d.ns.childItem()
			d.ns.push(fk, false, 0)
			d.n += hn
			return Event{Kind: ek}, nil
		}
		if arg > uint64(len(d.buf)-d.n-hn) {
			return Event{}, ErrorUnexpectedEof
		}
		content := d.buf[d.n+hn : d.n+hn+int(arg)]
		ek := EventByteString
		if major == cborType3 {
			ek = EventTextString
		}
		d.ns.childItem()
		d.n += hn + int(arg)
		return Event{Kind: ek, Bytes: content}, nil

	case cborType4:
		if d.ns.full() {
			return Event{}, ErrorDepthExceeded
		}
		if info == cborIndefiniteLength {
			d.ns.childItem()
			d.ns.push(frameArray, false, 0)
			d.n += hn
			return Event{Kind: EventArrayIndefinite}, nil
		}
		d.ns.childItem()
		d.ns.push(frameArray, true, arg)
		d.n += hn
		return Event{Kind: EventArray, Num: arg}, nil

	case cborType5:
		if d.ns.full() {
			return Event{}, ErrorDepthExceeded
		}
		if info == cborIndefiniteLength {
			d.ns.childItem()
			d.ns.push(frameMap, false, 0)
			d.n += hn
			return Event{Kind: EventMapIndefinite}, nil
		}
		if arg > math.MaxUint64/2 {
			return Event{}, ErrorLengthOverflow
		}
		d.ns.childItem()
		d.ns.push(frameMap, true, 2*arg) // arg pairs, 2*arg child events
		d.n += hn
		return Event{Kind: EventMap, Num: arg}, nil

	case cborType6:
		if info == cborIndefiniteLength {
			return Event{}, ErrorReservedEncoding
		}
		// a tag is transparent to frame bookkeeping, the wrapped
		// item performs the parent-decrement.
		d.n += hn
		d.tagged = true
		return Event{Kind: EventTag, Num: arg}, nil
	}

	// major type 7
	switch {
	case info < cborSimpleTypeFalse:
		d.ns.childItem()
		d.n += hn
		return Event{Kind: EventSimple, Num: uint64(info)}, nil

	case info == cborSimpleTypeFalse, info == cborSimpleTypeTrue:
		num := uint64(0)
		if info == cborSimpleTypeTrue {
			num = 1
		}
		d.ns.childItem()
		d.n += hn
		return Event{Kind: EventBool, Num: num}, nil

	case info == cborSimpleTypeNil:
		d.ns.childItem()
		d.n += hn
		return Event{Kind: EventNull}, nil

	case info == cborSimpleUndefined:
		d.ns.childItem()
		d.n += hn
		return Event{Kind: EventUndefined}, nil

	case info == cborSimpleTypeByte:
		if arg < 32 { // two-byte form of codes 0..31 is invalid
			return Event{}, ErrorReservedEncoding
		}
		d.ns.childItem()
		d.n += hn
		return Event{Kind: EventSimple, Num: arg}, nil

	case info == cborFlt16:
		d.ns.childItem()
		d.n += hn
		return Event{Kind: EventFloat16, Num: arg}, nil

	case info == cborFlt32:
		d.ns.childItem()
		d.n += hn
		return Event{Kind: EventFloat32, Num: arg}, nil

	case info == cborFlt64:
		d.ns.childItem()
		d.n += hn
		return Event{Kind: EventFloat64, Num: arg}, nil
	}

	// break-stop, legal only inside an indefinite-length item.
	f := d.ns.top()
	if f == nil || f.definite {
		return Event{}, ErrorUnexpectedBreak
	}
	if f.kind == frameMap && f.count%2 == 1 {
		return Event{}, ErrorOddMapLength
	}
	d.ns.pop()
	d.n += hn
	return Event{Kind: EventEnd}, nil
}

// SkipItem consumes events until the current top-level item is
// complete, leaving the cursor at the start of the next one. Called
// between top-level items it skips one whole item. This is the
// resynchronization move after application-level rejection of an
// item; it does not recover from malformed input.
func (d *Decoder) SkipItem() error {
	for {
		ev, err := d.DecodeEvent()
		if err != nil {
			return err
		}
		if d.ns.depth == 0 && ev.Kind != EventTag {
			return nil
		}
	}
}
