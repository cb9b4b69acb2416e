// Package cborm implements a low-level, event-driven codec for CBOR,
// the Concise Binary Object Representation (RFC 8949).
//
// Unlike object-mapping codecs, cborm exposes the byte stream as a
// flat sequence of events: one event per data-item head, with a
// synthetic End event closing every container. Decoding never
// allocates and never copies payload bytes - byte-string and
// text-string content is returned as a sub-slice of the caller's
// buffer, valid for as long as that buffer is.
//
// decoding a buffer:
//
//	dec := cborm.NewDecoder(buf, nil)
//	for {
//		ev, err := dec.DecodeEvent()
//		if err == io.EOF {
//			break
//		} else if err != nil {
//			// malformed input
//		}
//		// consume ev
//	}
//
// encoding the same event stream back:
//
//	sink := cborm.NewBuffer(512)
//	enc := cborm.NewEncoder(sink, nil)
//	enc.EncodeEvent(&ev) // for each event
//	out := sink.Bytes()
//
// the encoder always emits the shortest head encoding, so re-encoding
// the event stream of a canonically encoded buffer reproduces that
// buffer byte for byte. Nesting is tracked with a fixed capacity frame
// stack, configured via the "maxdepth" setting; exceeding it is a
// recoverable error, never a crash.
package cborm
