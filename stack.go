package cborm

const ( // frame kinds.
	frameArray byte = iota + 1
	frameMap
	frameBytesChunks
	frameTextChunks
)

// frame records one open container during decode or encode. Definite
// frames count down the child events still expected; indefinite
// frames count up the child events seen, so that a dangling map key
// can be detected at the break-stop.
type frame struct {
	kind      byte
	definite  bool
	remaining uint64 // definite frames only
	count     uint64 // indefinite frames only
}

// nesting is a fixed-capacity stack of open frames. The backing array
// is allocated once at construction; push and pop never allocate.
type nesting struct {
	frames []frame
	depth  int
}

func (ns *nesting) init(maxdepth int) {
	ns.frames = make([]frame, maxdepth)
	ns.depth = 0
}

func (ns *nesting) full() bool {
	return ns.depth == len(ns.frames)
}

// push an open frame, caller shall check full() first.
func (ns *nesting) push(kind byte, definite bool, remaining uint64) {
	ns.frames[ns.depth] = frame{kind: kind, definite: definite, remaining: remaining}
	ns.depth++
}

func (ns *nesting) pop() {
	ns.depth--
}

// top returns the innermost open frame, nil at depth zero.
func (ns *nesting) top() *frame {
	if ns.depth == 0 {
		return nil
	}
	return &ns.frames[ns.depth-1]
}

// childItem accounts one child event against the innermost frame. Tag
// events never call this; the item a tag wraps performs the
// parent-decrement when it arrives.
func (ns *nesting) childItem() {
	if ns.depth == 0 {
		return
	}
	f := &ns.frames[ns.depth-1]
	if f.definite {
		f.remaining--
	} else {
		f.count++
	}
}
