package cborm

import "encoding/binary"
import "math"

import s "github.com/bnclabs/gosettings"

// Sink is an append-only byte sink for the encoder. Implementations
// shall either accept p in full or reject it with ErrorOutOfSpace
// without mutating the sink.
type Sink interface {
	WriteBytes(p []byte) error
}

// Buffer is a growable Sink.
type Buffer struct {
	data []byte
}

// NewBuffer with an initial capacity of size bytes.
func NewBuffer(size int) *Buffer {
	return &Buffer{data: make([]byte, 0, size)}
}

// WriteBytes implements Sink{} interface.
func (b *Buffer) WriteBytes(p []byte) error {
	b.data = append(b.data, p...)
	return nil
}

// Bytes encoded so far.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Reset the buffer for reuse, retaining its capacity.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
}

// FixedSink is a bounded Sink over a caller-supplied buffer. Writes
// that do not fit fail with ErrorOutOfSpace and leave the sink
// unchanged.
type FixedSink struct {
	data []byte
	n    int
}

func NewFixedSink(buf []byte) *FixedSink {
	return &FixedSink{data: buf}
}

// WriteBytes implements Sink{} interface.
func (fs *FixedSink) WriteBytes(p []byte) error {
	if fs.n+len(p) > len(fs.data) {
		return ErrorOutOfSpace
	}
	copy(fs.data[fs.n:], p)
	fs.n += len(p)
	return nil
}

// Bytes encoded so far.
func (fs *FixedSink) Bytes() []byte {
	return fs.data[:fs.n]
}

// Encoder pushes a stream of events into a Sink, mirroring the
// decoder's nesting bookkeeping. An encoder is scoped to its sink;
// create a new one per sink. Not safe for concurrent use.
type Encoder struct {
	sink    Sink
	ns      nesting
	scratch [9]byte
	work    []byte // head+content composition for string events
}

// NewEncoder over sink. Pass nil settings to use DefaultSettings().
func NewEncoder(sink Sink, setts s.Settings) *Encoder {
	if setts == nil {
		setts = DefaultSettings()
	}
	e := &Encoder{sink: sink}
	e.ns.init(int(setts.Uint64("maxdepth")))
	e.work = make([]byte, 0, setts.Uint64("buffersize"))
	return e
}

// Depth is the number of currently open frames.
func (e *Encoder) Depth() int {
	return e.ns.depth
}

// Bytes encoded so far, when the sink is a Buffer or a FixedSink,
// nil for other sinks.
func (e *Encoder) Bytes() []byte {
	switch sk := e.sink.(type) {
	case *Buffer:
		return sk.Bytes()
	case *FixedSink:
		return sk.Bytes()
	}
	return nil
}

// EncodeEvent validates ev against the open frames and writes its
// bytes. End writes the break-stop for an indefinite frame and writes
// nothing for a definite frame, where it only confirms the expected
// child count was met. A definite frame whose count has been met
// accepts nothing but End: the encoder requires the explicit End the
// decoder always emits, it never routes an event past a filled frame
// to the parent. An event reaches the sink as one WriteBytes call, so
// a rejected write leaves no partial event in the sink.
func (e *Encoder) EncodeEvent(ev *Event) error {
	if ev.Kind == EventEnd {
		return e.end()
	}
	if f := e.ns.top(); f != nil && f.definite && f.remaining == 0 {
		return ErrorFrameOverflow
	}

	switch ev.Kind {
	case EventUnsignedInteger:
		return e.leaf(cborType0, ev.Num, nil)

	case EventNegativeInteger:
		return e.leaf(cborType1, ev.Num, nil)

	case EventByteString:
		return e.leaf(cborType2, uint64(len(ev.Bytes)), ev.Bytes)

	case EventTextString:
		return e.leaf(cborType3, uint64(len(ev.Bytes)), ev.Bytes)

	case EventByteStringIndefinite:
		return e.openIndefinite(cborType2, frameBytesChunks)

	case EventTextStringIndefinite:
		return e.openIndefinite(cborType3, frameTextChunks)

	case EventArray:
		return e.openDefinite(cborType4, frameArray, ev.Num, ev.Num)

	case EventArrayIndefinite:
		return e.openIndefinite(cborType4, frameArray)

	case EventMap:
		if ev.Num > math.MaxUint64/2 {
			return ErrorLengthOverflow
		}
		return e.openDefinite(cborType5, frameMap, ev.Num, 2*ev.Num)

	case EventMapIndefinite:
		return e.openIndefinite(cborType5, frameMap)

	case EventTag:
		// transparent to frame bookkeeping, like the decoder.
		n := writeHead(cborType6, ev.Num, e.scratch[:])
		return e.sink.WriteBytes(e.scratch[:n])

	case EventSimple:
		if ev.Num >= uint64(cborSimpleTypeByte) && ev.Num <= cborItemBreak {
			return ErrorReservedEncoding // codes 24..31 are not simple values
		}
		return e.leaf(cborType7, ev.Num, nil)

	case EventBool:
		code := cborSimpleTypeFalse
		if ev.Num != 0 {
			code = cborSimpleTypeTrue
		}
		return e.leaf(cborType7, uint64(code), nil)

	case EventNull:
		return e.leaf(cborType7, uint64(cborSimpleTypeNil), nil)

	case EventUndefined:
		return e.leaf(cborType7, uint64(cborSimpleUndefined), nil)

	case EventFloat16:
		e.scratch[0] = cborHdr(cborType7, cborFlt16)
		binary.BigEndian.PutUint16(e.scratch[1:], uint16(ev.Num))
		return e.leafRaw(e.scratch[:3])

	case EventFloat32:
		e.scratch[0] = cborHdr(cborType7, cborFlt32)
		binary.BigEndian.PutUint32(e.scratch[1:], uint32(ev.Num))
		return e.leafRaw(e.scratch[:5])

	case EventFloat64:
		e.scratch[0] = cborHdr(cborType7, cborFlt64)
		binary.BigEndian.PutUint64(e.scratch[1:], ev.Num)
		return e.leafRaw(e.scratch[:9])
	}
	return ErrorUnknownEvent
}

func (e *Encoder) end() error {
	f := e.ns.top()
	if f == nil {
		return ErrorUnbalancedEnd
	}
	if f.definite {
		if f.remaining != 0 {
			return ErrorPrematureEnd
		}
		e.ns.pop()
		return nil
	}
	if f.kind == frameMap && f.count%2 == 1 {
		return ErrorOddMapLength
	}
	n := writeBreakStop(e.scratch[:])
	if err := e.sink.WriteBytes(e.scratch[:n]); err != nil {
		return err
	}
	e.ns.pop()
	return nil
}

// leaf writes one head, with content for string events, as a single
// sink write: a rejected event leaves no partial bytes behind.
func (e *Encoder) leaf(major byte, arg uint64, content []byte) error {
	n := writeHead(major, arg, e.scratch[:])
	if len(content) == 0 {
		if err := e.sink.WriteBytes(e.scratch[:n]); err != nil {
			return err
		}
		e.ns.childItem()
		return nil
	}
	e.work = append(e.work[:0], e.scratch[:n]...)
	e.work = append(e.work, content...)
	if err := e.sink.WriteBytes(e.work); err != nil {
		return err
	}
	e.ns.childItem()
	return nil
}

// leafRaw writes pre-composed head+content bytes, used for floats
// where the width is fixed by the event kind, never shortened.
func (e *Encoder) leafRaw(b []byte) error {
	if err := e.sink.WriteBytes(b); err != nil {
		return err
	}
	e.ns.childItem()
	return nil
}

func (e *Encoder) openDefinite(major, fk byte, arg, children uint64) error {
	if e.ns.full() {
		return ErrorDepthExceeded
	}
	n := writeHead(major, arg, e.scratch[:])
	if err := e.sink.WriteBytes(e.scratch[:n]); err != nil {
		return err
	}
	e.ns.childItem()
	e.ns.push(fk, true, children)
	return nil
}

func (e *Encoder) openIndefinite(major, fk byte) error {
	if e.ns.full() {
		return ErrorDepthExceeded
	}
	n := writeIndefiniteHead(major, e.scratch[:])
	if err := e.sink.WriteBytes(e.scratch[:n]); err != nil {
		return err
	}
	e.ns.childItem()
	e.ns.push(fk, false, 0)
	return nil
}
