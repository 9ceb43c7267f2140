// Package script's executor implements spec §4.8's control-flow
// state machine. It is grounded on the teacher's run.Run (top-level
// recover/loop driver) and exec.Context (the frame/symtab owner),
// generalized from ivy's single flat statement loop into the
// sentinel-propagating block walker spec §4.8's table describes —
// ivy has no nested block structure to walk, so the goto-driven
// executeBlock/executeLine split below is new, built the way the
// teacher structures a small interpreter loop (explicit state struct,
// counters advanced one statement at a time). Nothing here recovers
// panics; faults travel up as sigAbort signals.
package script

import (
	"fmt"
	"strings"
	"time"

	"github.com/quill-lang/quill/exprs"
	"github.com/quill-lang/quill/registry"
	"github.com/quill-lang/quill/value"
)

type signalKind int

const (
	sigNextLine signalKind = iota
	sigEndOfBlock
	sigEndOfFn
	sigAbort
	sigAbortLoop
	sigContinueLoop
	sigGoto
)

type signal struct {
	kind    signalKind
	gotoIdx int
	err     error
}

// RuntimeError is returned by Run when a statement itself cannot run
// (a for loop over a value that is not iterable), carrying the script
// line number (spec §7: "script errors set errortext and
// errorlineno"). Aborts for max_lines, max_microseconds or stop_script
// are returned as plain errors without a line number, and an
// expression that evaluates to an error Value does not abort the
// script.
type RuntimeError struct {
	LineNo int
	Msg    string
}

func (e *RuntimeError) Error() string { return fmt.Sprintf("line %d: %s", e.LineNo, e.Msg) }

// Executor is spec §3.4's "script state": the loaded program, the
// frame stack, resource counters and the currently-executing
// function's def-line index (or -1 for top level).
type Executor struct {
	prog  *Program
	reg   *registry.Registry
	frames *FrameStack
	scope *scriptScope

	returnValue   value.Value
	inFn          int
	executedLines int64
	startTime     time.Time
	forceAbort    error
}

// NewExecutor builds an executor over prog against reg, and registers
// every def as a callable function in reg so the expression
// evaluator's ordinary function-call atom dispatches into script
// bodies transparently (spec §4.8's "call bridge", component I).
func NewExecutor(prog *Program, reg *registry.Registry) *Executor {
	frames := newFrameStack()
	e := &Executor{
		prog:   prog,
		reg:    reg,
		frames: frames,
		scope:  newScriptScope(frames),
		inFn:   -1,
	}
	for name, fd := range prog.Functions {
		reg.RegisterFunction(name, 0, len(fd.Args), &scriptFunc{exec: e, fd: fd})
	}
	return e
}

// Run executes the loaded program's top-level lines to completion or
// abort (spec §4.8/§4.10).
func (e *Executor) Run() (value.Value, error) {
	e.startTime = time.Now()
	e.executedLines = 0
	sig := e.executeBlock(0, len(e.prog.Lines))
	if sig.kind == sigAbort && sig.err != nil {
		return e.returnValue, sig.err
	}
	return e.returnValue, nil
}

func (e *Executor) tick() *signal {
	e.executedLines++
	cfg := e.reg.Config()
	if cfg.StopScript() {
		return &signal{kind: sigAbort, err: fmt.Errorf("stopped by host")}
	}
	if cfg.MaxLines() > 0 && e.executedLines > cfg.MaxLines() {
		return &signal{kind: sigAbort, err: fmt.Errorf("exceeded max_lines (%d)", cfg.MaxLines())}
	}
	if cfg.MaxMicroseconds() > 0 && time.Since(e.startTime) > time.Duration(cfg.MaxMicroseconds())*time.Microsecond {
		return &signal{kind: sigAbort, err: fmt.Errorf("exceeded max_microseconds (%d)", cfg.MaxMicroseconds())}
	}
	if e.forceAbort != nil {
		return &signal{kind: sigAbort, err: e.forceAbort}
	}
	return nil
}

// executeBlock runs the sibling lines in [start,end) — spec §4.8's
// "determines the range [start,last] ... then loops executing
// execute_line". Nested block-starter siblings consume their own
// children internally (via their own NumChildLines), so the driver
// only needs to skip by (1+NumChildLines) on ordinary completion, or
// jump to an explicit goto target for if/elseif/else chains.
func (e *Executor) executeBlock(start, end int) signal {
	idx := start
	for idx < end {
		sig := e.executeLine(idx)
		switch sig.kind {
		case sigNextLine, sigEndOfBlock:
			idx += 1 + e.prog.Lines[idx].NumChildLines
		case sigGoto:
			idx = sig.gotoIdx
		default:
			return sig
		}
	}
	return signal{kind: sigNextLine}
}

func (e *Executor) executeLine(idx int) signal {
	if abort := e.tick(); abort != nil {
		return *abort
	}
	ln := e.prog.Lines[idx]
	switch ln.Type {
	case "":
		return signal{kind: sigNextLine}
	case "global":
		names := globalNames(ln)
		e.frames.Top().Globals = append(e.frames.Top().Globals, names...)
		return signal{kind: sigNextLine}
	case "return":
		var v value.Value
		if len(ln.Tokens) > 1 {
			v = e.evalExpr(strings.Join(ln.Tokens[1:], " "))
		} else {
			v = value.Num(0)
		}
		e.returnValue = v
		if e.inFn >= 0 {
			return signal{kind: sigEndOfFn}
		}
		return signal{kind: sigAbort}
	case "if", "elseif":
		return e.execIfChain(idx)
	case "while":
		return e.execWhile(idx)
	case "for":
		return e.execFor(idx)
	case "break":
		return signal{kind: sigAbortLoop}
	case "continue":
		return signal{kind: sigContinueLoop}
	case "def":
		return signal{kind: sigEndOfBlock}
	default:
		e.evalExpr(ln.Raw)
		return signal{kind: sigNextLine}
	}
}

// evalExpr runs an expression through the shared evaluator. An abort
// inside a script-function call (crossing the call bridge) is stored
// in forceAbort by the bridge and noticed by tick at the next line
// boundary, since exprs.Eval itself always returns a Value rather
// than propagating the abort.
func (e *Executor) evalExpr(src string) value.Value {
	return exprs.Eval(src, e.reg, e.scope)
}

func globalNames(ln *Line) []string {
	var names []string
	for _, tok := range ln.Tokens[1:] {
		if tok == "," {
			continue
		}
		names = append(names, tok)
	}
	return names
}

// chainEnd returns the index of the first line after the contiguous
// if/elseif/else chain starting at idx.
func (e *Executor) chainEnd(idx int) int {
	lines := e.prog.Lines
	level := lines[idx].Level
	pos := idx + 1 + lines[idx].NumChildLines
	for pos < len(lines) {
		if lines[pos].Type == "" {
			pos++
			continue
		}
		if lines[pos].Level != level {
			break
		}
		if lines[pos].Type != "elseif" && lines[pos].Type != "else" {
			break
		}
		pos = pos + 1 + lines[pos].NumChildLines
	}
	return pos
}

func (e *Executor) execIfChain(idx int) signal {
	ln := e.prog.Lines[idx]
	cond := e.evalExpr(strings.Join(ln.Tokens[1:], " "))
	if cond.Truthy() {
		e.frames.Push(newFrame(ln.Type))
		sig := e.executeBlock(idx+1, idx+1+ln.NumChildLines)
		e.frames.Pop()
		switch sig.kind {
		case sigEndOfFn, sigAbort, sigAbortLoop, sigContinueLoop:
			return sig
		default:
			return signal{kind: sigGoto, gotoIdx: e.chainEnd(idx)}
		}
	}

	lines := e.prog.Lines
	pos := idx + 1 + ln.NumChildLines
	for pos < len(lines) {
		if lines[pos].Type == "" {
			pos++
			continue
		}
		if lines[pos].Level != ln.Level {
			break
		}
		switch lines[pos].Type {
		case "elseif":
			return signal{kind: sigGoto, gotoIdx: pos}
		case "else":
			e.frames.Push(newFrame("else"))
			sig := e.executeBlock(pos+1, pos+1+lines[pos].NumChildLines)
			e.frames.Pop()
			switch sig.kind {
			case sigEndOfFn, sigAbort, sigAbortLoop, sigContinueLoop:
				return sig
			default:
				return signal{kind: sigGoto, gotoIdx: e.chainEnd(idx)}
			}
		default:
			return signal{kind: sigGoto, gotoIdx: pos}
		}
	}
	return signal{kind: sigGoto, gotoIdx: pos}
}

func (e *Executor) execWhile(idx int) signal {
	ln := e.prog.Lines[idx]
	cond := strings.Join(ln.Tokens[1:], " ")
	for {
		if abort := e.tick(); abort != nil {
			return *abort
		}
		if !e.evalExpr(cond).Truthy() {
			return signal{kind: sigNextLine}
		}
		e.frames.Push(newFrame("while"))
		sig := e.executeBlock(idx+1, idx+1+ln.NumChildLines)
		e.frames.Pop()
		switch sig.kind {
		case sigAbortLoop:
			return signal{kind: sigNextLine}
		case sigContinueLoop, sigNextLine, sigEndOfBlock:
			continue
		default:
			return sig
		}
	}
}

func (e *Executor) execFor(idx int) signal {
	ln := e.prog.Lines[idx]
	varName := ln.Tokens[1]

	// The iterator lives in a local, not on ln, so a recursive script
	// call whose body re-enters this same for line gets its own
	// iterator rather than clobbering this call's position in it.
	src := e.evalExpr(strings.Join(ln.Tokens[3:], " "))
	it, err := buildIterator(src)
	if err != nil {
		return signal{kind: sigAbort, err: &RuntimeError{LineNo: ln.LineNo, Msg: "for: " + err.Error()}}
	}

	for {
		if abort := e.tick(); abort != nil {
			return *abort
		}
		nextVal, ok := it.Next()
		if !ok {
			return signal{kind: sigNextLine}
		}
		ref := e.scope.Ref(varName)
		*ref = nextVal

		e.frames.Push(newFrame("for"))
		sig := e.executeBlock(idx+1, idx+1+ln.NumChildLines)
		e.frames.Pop()
		switch sig.kind {
		case sigAbortLoop:
			return signal{kind: sigNextLine}
		case sigContinueLoop, sigNextLine, sigEndOfBlock:
			continue
		default:
			return sig
		}
	}
}
