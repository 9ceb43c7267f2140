package script

import (
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/quill-lang/quill/value"
)

// Frame is spec §3.4's Frame record: a lexical scope pushed on block
// entry and popped on exit, including abnormal exits via
// return/break/continue.
type Frame struct {
	Type      string
	Variables map[string]*value.Value
	Globals   []string
}

func newFrame(typ string) *Frame {
	return &Frame{Type: typ, Variables: make(map[string]*value.Value)}
}

// FrameStack is the script state's frame stack (spec §3.4), backed by
// gods/arraystack the way the retrieval pack's npillmayer-pmmp module
// backs its parser's scope stack — Push/Pop/Top instead of raw slice
// indexing, with the bottom (global) frame always present and never
// popped.
type FrameStack struct {
	stack  *arraystack.Stack
	bottom *Frame
}

func newFrameStack() *FrameStack {
	bottom := newFrame("")
	s := &FrameStack{stack: arraystack.New(), bottom: bottom}
	s.stack.Push(bottom)
	return s
}

func (fs *FrameStack) Push(f *Frame) { fs.stack.Push(f) }

func (fs *FrameStack) Pop() *Frame {
	v, ok := fs.stack.Pop()
	if !ok {
		return nil
	}
	return v.(*Frame)
}

func (fs *FrameStack) Top() *Frame {
	v, _ := fs.stack.Peek()
	if v == nil {
		return fs.bottom
	}
	return v.(*Frame)
}

func (fs *FrameStack) Bottom() *Frame { return fs.bottom }

// Walk visits frames from the top (innermost, most recently pushed)
// down to the bottom, calling visit(frame) for each; visit returns
// false to stop early. arraystack.Values() already returns the frames
// top-first (LIFO order), so this walks it front to back.
func (fs *FrameStack) Walk(visit func(*Frame) bool) {
	values := fs.stack.Values()
	for i := 0; i < len(values); i++ {
		if !visit(values[i].(*Frame)) {
			return
		}
	}
}
