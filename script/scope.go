package script

import "github.com/quill-lang/quill/value"

// scriptScope implements exprs.Scope over a FrameStack, per spec
// §4.9's read/write/check rule: walk frames top-to-bottom; stop at a
// def frame unless the name is in that frame's globals, in which
// case the search jumps straight to the bottom (global) frame.
type scriptScope struct {
	frames *FrameStack
}

func newScriptScope(frames *FrameStack) *scriptScope {
	return &scriptScope{frames: frames}
}

// find returns the existing binding for name, or nil if none exists.
func (s *scriptScope) find(name string) *value.Value {
	var found *value.Value
	var stoppedAtDef *Frame

	s.frames.Walk(func(f *Frame) bool {
		if ref, ok := f.Variables[name]; ok {
			found = ref
			return false
		}
		if f.Type == "def" {
			stoppedAtDef = f
			return false
		}
		return true
	})
	if found != nil {
		return found
	}
	if stoppedAtDef == nil {
		return nil
	}
	for _, g := range stoppedAtDef.Globals {
		if g == name {
			if ref, ok := s.frames.Bottom().Variables[name]; ok {
				return ref
			}
			return nil
		}
	}
	return nil
}

// Ref implements exprs.Scope.Ref: find the binding by the read rule,
// auto-creating a number-0 binding on the top frame if none exists
// anywhere reachable.
func (s *scriptScope) Ref(name string) *value.Value {
	if ref := s.find(name); ref != nil {
		return ref
	}
	v := value.Zero()
	top := s.frames.Top()
	top.Variables[name] = &v
	return top.Variables[name]
}

// Check implements exprs.Scope.Check: like Ref but without
// auto-creation.
func (s *scriptScope) Check(name string) bool {
	return s.find(name) != nil
}
