package exprs

import (
	"github.com/quill-lang/quill/lexer"
	"github.com/quill-lang/quill/ops"
	"github.com/quill-lang/quill/value"
)

// parseDotChain parses an Atom followed by zero or more accesses —
// '.name' or '[expr]' — per spec §4.3.2. Dict and object accept the
// dot form; array and dict accept the bracket form; after each access
// the chain continues only while the result is still object or dict
// (spec: "if the resulting Value is still object or dict, the chain
// continues; otherwise the chain terminates").
func (p *Parser) parseDotChain() (value.Value, *assignRef) {
	base, ref := p.parseAtom()
	for {
		if _, ok := p.cur.ConsumeChar("."); ok {
			name, ok := p.parseDotKey()
			if !ok {
				value.Errorf(value.ErrMissingDictName, "missing name after '.'")
			}
			base, ref = p.accessByName(base, name)
		} else if p.cur.Peek() == '[' {
			p.cur.ConsumeChar("[")
			idxVal, _ := p.parseLevel1()
			if _, ok := p.cur.ConsumeChar("]"); !ok {
				value.Errorf(value.ErrParseFailure, "missing closing ]")
			}
			base, ref = p.accessByValue(base, idxVal)
		} else {
			return base, ref
		}
		if !base.IsObject() && !base.IsDict() {
			return base, ref
		}
	}
}

// accessByName handles the '.name' form: a fixed/dynamic object
// property, or a dict key.
func (p *Parser) accessByName(base value.Value, name string) (value.Value, *assignRef) {
	switch {
	case base.IsObject():
		obj := base.AsObject()
		v, found := ops.ObjectProperty(obj, name)
		if !found {
			value.Errorf(value.ErrInvalidObject, "object has no property %q", name)
		}
		if v.IsFunction() && p.cur.Peek() == '(' {
			p.cur.ConsumeChar("(")
			return p.parseFunctionCallValue(v), nil
		}
		return v, nil
	case base.IsDict():
		dictVal := base
		return ops.DictGet(dictVal, name), dictElemRef(dictVal, name)
	default:
		value.Errorf(value.ErrInvalidObject, "'.' not valid on this value")
		return value.Value{}, nil
	}
}

// accessByValue handles the '[expr]' form: array index or dict key
// (the index must be a string for a dict, per spec §4.3.2).
func (p *Parser) accessByValue(base value.Value, idxVal value.Value) (value.Value, *assignRef) {
	switch {
	case base.IsArray():
		arr := base.AsArray()
		return ops.IndexArray(arr, idxVal), arrayElemRef(arr, idxVal)
	case base.IsDict():
		if !idxVal.IsString() {
			value.Errorf(value.ErrMissingDictName, "dict index must be a string")
		}
		dictVal := base
		key := idxVal.AsString()
		return ops.DictGet(dictVal, key), dictElemRef(dictVal, key)
	default:
		value.Errorf(value.ErrInvalidObject, "'[' not valid on this value")
		return value.Value{}, nil
	}
}

func (p *Parser) parseDotKey() (string, bool) {
	if p.cur.Peek() == '"' {
		s := p.parseString()
		return s.AsString(), true
	}
	return p.cur.ConsumeRegex(lexer.Identifier)
}

// parseFunctionCallValue invokes a function-tagged Value discovered
// via object property dispatch (spec §4.3.2: "a function-typed
// property followed by '(' consumes an arg list and invokes it").
// The '(' has already been consumed by the caller.
func (p *Parser) parseFunctionCallValue(fnVal value.Value) value.Value {
	args := p.parseExprList(')')
	if _, ok := p.cur.ConsumeChar(")"); !ok {
		value.Errorf(value.ErrParseFailure, "missing closing ) in method call")
	}
	fn := fnVal.AsFunc()
	if fn == nil || fn.Call == nil {
		value.Errorf(value.ErrInvalidObject, "value is not callable")
	}
	if len(args) < fn.Min || (fn.Max >= 0 && len(args) > fn.Max) {
		value.Errorf(value.ErrBadArity, "method %q takes %d..%d args, got %d", fn.Name, fn.Min, fn.Max, len(args))
	}
	result, err := fn.Call.Call(args)
	if err != nil {
		value.Errorf(value.ErrInvalidArgument, "%s: %s", fn.Name, err.Error())
	}
	return result
}

func arrayElemRef(arr []value.Value, idxVal value.Value) *assignRef {
	if !idxVal.IsNumber() {
		return nil
	}
	i := int(idxVal.AsNumber())
	if i < 0 || i >= len(arr) {
		return nil
	}
	return &assignRef{
		get: func() value.Value { return arr[i] },
		set: func(v value.Value) { arr[i] = v },
	}
}

func dictElemRef(d value.Value, key string) *assignRef {
	return &assignRef{
		get: func() value.Value { return ops.DictGet(d, key) },
		set: func(v value.Value) { ops.DictSet(d, key, v) },
	}
}
