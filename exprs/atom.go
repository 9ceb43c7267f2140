package exprs

import (
	"strconv"
	"strings"

	"github.com/quill-lang/quill/lexer"
	"github.com/quill-lang/quill/ops"
	"github.com/quill-lang/quill/registry"
	"github.com/quill-lang/quill/value"
)

// parseAtom parses spec §4.3.1's Atom production: number, string,
// function call, array literal, dict literal, parenthesized
// expression, or variable/constant/object reference. It returns the
// evaluated Value plus an assignRef when the atom is itself
// assignable (a bare variable reference) — array/dict atoms only
// become assignable once the DOT chain in dotchain.go resolves a
// specific element or key; object properties never do.
func (p *Parser) parseAtom() (value.Value, *assignRef) {
	if tok, ok := p.cur.ConsumeRegex(lexer.Number); ok {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			value.Errorf(value.ErrParseFailure, "bad number %q", tok)
		}
		return value.Num(f), nil
	}
	if p.cur.Peek() == '"' {
		return p.parseString(), nil
	}
	if p.cur.Peek() == '(' {
		p.cur.ConsumeChar("(")
		v, _ := p.parseLevel1()
		if _, ok := p.cur.ConsumeChar(")"); !ok {
			value.Errorf(value.ErrParseFailure, "missing closing parenthesis")
		}
		return v, nil
	}
	if p.cur.Peek() == '[' {
		return p.parseArrayLiteral(), nil
	}
	if p.cur.Peek() == '{' {
		return p.parseDictLiteral(), nil
	}
	if ident, ok := p.cur.ConsumeRegex(lexer.Identifier); ok {
		if _, ok := p.cur.ConsumeChar("("); ok {
			return p.parseFunctionCall(ident), nil
		}
		return p.parseReference(ident)
	}
	value.Errorf(value.ErrParseFailure, "unexpected input: %q", p.cur.Remaining())
	return value.Value{}, nil
}

// parseString parses a double-quoted string literal, processing the
// escapes spec §4.3.1 and §6.2 name: \n \r \t \b \" \\ and \uXXXX.
func (p *Parser) parseString() value.Value {
	if _, ok := p.cur.ConsumeChar("\""); !ok {
		value.Errorf(value.ErrParseFailure, "expected string")
	}
	var b strings.Builder
	for {
		if p.cur.AtEnd() {
			value.Errorf(value.ErrDanglingQuote, "dangling quote")
		}
		ch := p.cur.Peek()
		if ch == '"' {
			p.cur.ConsumeChar("\"")
			break
		}
		if ch == '\\' {
			p.cur.ConsumeChar("\\")
			if p.cur.AtEnd() {
				value.Errorf(value.ErrDanglingBackslash, "dangling backslash")
			}
			esc := p.cur.Peek()
			switch esc {
			case 'n':
				p.cur.ConsumeChar("n")
				b.WriteByte('\n')
			case 'r':
				p.cur.ConsumeChar("r")
				b.WriteByte('\r')
			case 't':
				p.cur.ConsumeChar("t")
				b.WriteByte('\t')
			case 'b':
				p.cur.ConsumeChar("b")
				b.WriteByte('\b')
			case '"':
				p.cur.ConsumeChar("\"")
				b.WriteByte('"')
			case '\\':
				p.cur.ConsumeChar("\\")
				b.WriteByte('\\')
			case 'u':
				p.cur.ConsumeChar("u")
				hex := p.cur.Remaining()
				if len(hex) < 4 {
					value.Errorf(value.ErrParseFailure, "bad \\u escape")
				}
				code, err := strconv.ParseUint(hex[:4], 16, 32)
				if err != nil {
					value.Errorf(value.ErrParseFailure, "bad \\u escape")
				}
				for i := 0; i < 4; i++ {
					p.cur.ConsumeChar(hex[i : i+1])
				}
				b.WriteRune(rune(code))
			default:
				value.Errorf(value.ErrParseFailure, "unknown escape \\%c", esc)
			}
			continue
		}
		p.cur.ConsumeChar(string(ch))
		b.WriteByte(ch)
	}
	return value.Str(b.String())
}

// parseExprList parses a comma-separated list of expressions up to
// (but not consuming) the closing delimiter the caller checks for.
func (p *Parser) parseExprList(close byte) []value.Value {
	var out []value.Value
	if p.cur.Peek() == close {
		return out
	}
	for {
		v, _ := p.parseLevel1()
		out = append(out, v)
		if _, ok := p.cur.ConsumeChar(","); ok {
			continue
		}
		break
	}
	return out
}

func (p *Parser) parseArrayLiteral() value.Value {
	p.cur.ConsumeChar("[")
	items := p.parseExprList(']')
	if _, ok := p.cur.ConsumeChar("]"); !ok {
		value.Errorf(value.ErrParseFailure, "missing closing ]")
	}
	return value.Arr(items)
}

// parseDictLiteral parses '{' (name|number|string) ':' expr (',' ...)* '}'.
func (p *Parser) parseDictLiteral() value.Value {
	p.cur.ConsumeChar("{")
	d := value.NewDict()
	if p.cur.Peek() != '}' {
		for {
			key, ok := p.parseDictKey()
			if !ok {
				value.Errorf(value.ErrMissingDictName, "missing dict key")
			}
			if _, ok := p.cur.ConsumeChar(":"); !ok {
				value.Errorf(value.ErrMissingDictColon, "missing ':' after dict key %q", key)
			}
			v, _ := p.parseLevel1()
			ops.DictSet(d, key, v)
			if _, ok := p.cur.ConsumeChar(","); ok {
				continue
			}
			break
		}
	}
	if _, ok := p.cur.ConsumeChar("}"); !ok {
		value.Errorf(value.ErrParseFailure, "missing closing }")
	}
	return d
}

func (p *Parser) parseDictKey() (string, bool) {
	if p.cur.Peek() == '"' {
		s := p.parseString()
		return s.AsString(), true
	}
	if tok, ok := p.cur.ConsumeRegex(lexer.Number); ok {
		return tok, true
	}
	if tok, ok := p.cur.ConsumeRegex(lexer.Identifier); ok {
		return tok, true
	}
	return "", false
}

func (p *Parser) parseFunctionCall(name string) value.Value {
	args := p.parseExprList(')')
	if _, ok := p.cur.ConsumeChar(")"); !ok {
		value.Errorf(value.ErrParseFailure, "missing closing ) in call to %s", name)
	}
	fn, ok := p.reg.Function(name)
	if !ok {
		value.Errorf(value.ErrUnknownFunction, "unknown function %q", name)
	}
	if len(args) < fn.Min || (fn.Max >= 0 && len(args) > fn.Max) {
		value.Errorf(value.ErrBadArity, "function %q takes %d..%d args, got %d", name, fn.Min, fn.Max, len(args))
	}
	result, err := fn.Call.Call(args)
	if err != nil {
		value.Errorf(value.ErrInvalidArgument, "%s: %s", name, err.Error())
	}
	return result
}

// parseReference resolves a bare identifier per spec §4.3.1: try
// constants, then the host variable callback (op=read), then script
// variable tables — and if the identifier names a registered object,
// wrap it as an object Value so the DOT chain can continue.
func (p *Parser) parseReference(name string) (value.Value, *assignRef) {
	if obj, ok := p.reg.Object(name); ok {
		return value.Obj(obj), nil
	}
	if v, ok := p.reg.Constant(name); ok {
		return v, nil
	}
	if _, claimed := p.reg.CallVariableFunc(registry.VarCheck, name, value.Value{}); claimed {
		v, _ := p.reg.CallVariableFunc(registry.VarRead, name, value.Value{})
		return v, hostRef(p.reg, name)
	}
	ref := p.scope.Ref(name)
	return *ref, varRef(ref)
}

// hostRef routes assignment to a host-claimed name through the
// variable callback's VarSet op rather than through script scope,
// mirroring VarRead's precedence on the read side.
func hostRef(reg *registry.Registry, name string) *assignRef {
	return &assignRef{
		get: func() value.Value {
			v, _ := reg.CallVariableFunc(registry.VarRead, name, value.Value{})
			return v
		},
		set: func(v value.Value) {
			reg.CallVariableFunc(registry.VarSet, name, v)
		},
	}
}
