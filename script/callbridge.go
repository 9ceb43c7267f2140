package script

import "github.com/quill-lang/quill/value"

// scriptFunc is component I, the call bridge: it lets the expression
// evaluator invoke a def'd script function exactly like a host
// function, by registering one of these as the function's
// value.Callable (spec §4.8: "when the expression evaluator calls a
// script function, the executor pushes a def frame, binds positional
// args by arg name ..., runs the body, pops the frame, and yields
// returnvalue").
type scriptFunc struct {
	exec *Executor
	fd   *FuncDef
}

func (f *scriptFunc) Call(args []value.Value) (value.Value, error) {
	e := f.exec
	frame := newFrame("def")
	for i, name := range f.fd.Args {
		var v value.Value
		if i < len(args) {
			v = args[i]
		} else {
			v = value.Zero()
		}
		frame.Variables[name] = &v
	}
	e.frames.Push(frame)

	savedInFn, savedReturn := e.inFn, e.returnValue
	e.inFn = f.fd.LineNo
	e.returnValue = value.Num(0)

	body := e.prog.Lines[f.fd.LineNo]
	sig := e.executeBlock(f.fd.LineNo+1, f.fd.LineNo+1+body.NumChildLines)

	result := e.returnValue
	e.inFn, e.returnValue = savedInFn, savedReturn
	e.frames.Pop()

	if sig.kind == sigAbort && e.forceAbort == nil {
		e.forceAbort = sig.err
	}
	return result, nil
}
