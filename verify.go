package cborm

import "io"

import s "github.com/bnclabs/gosettings"

// Verify walks one top-level item at the start of buf and returns the
// number of bytes it occupies. On malformed input the error is one of
// the decode errors and the offset points at the failed item. An
// empty buffer returns io.EOF.
func Verify(buf []byte, setts s.Settings) (n int, err error) {
	d := NewDecoder(buf, setts)
	for {
		ev, err := d.DecodeEvent()
		if err == io.EOF {
			return d.n, io.EOF
		} else if err != nil {
			return d.n, err
		}
		if d.ns.depth == 0 && ev.Kind != EventTag {
			return d.n, nil
		}
	}
}

// VerifyAll walks every top-level item in buf and returns the number
// of items found.
func VerifyAll(buf []byte, setts s.Settings) (items int, err error) {
	for n := 0; n < len(buf); {
		m, err := Verify(buf[n:], setts)
		if err != nil {
			return items, err
		}
		n += m
		items++
	}
	return items, nil
}
