package exprs

import (
	"github.com/quill-lang/quill/lexer"
	"github.com/quill-lang/quill/ops"
	"github.com/quill-lang/quill/registry"
	"github.com/quill-lang/quill/value"
)

// Parser drives the precedence-climbing descent spec §4.3 lays out:
// six levels from loosest ('||') to tightest ('*','/','%',':'), each
// implemented as "parse next-higher level, then while an operator of
// this level is next, consume it and fold". Level4 also carries the
// assignment operators, since spec §4.4 places '=' and the compound
// forms at the same precedence as the comparisons.
type Parser struct {
	cur   *lexer.Cursor
	reg   *registry.Registry
	scope Scope
}

// NewParser returns a Parser reading from src against reg and scope.
func NewParser(src string, reg *registry.Registry, scope Scope) *Parser {
	return &Parser{cur: lexer.New(src), reg: reg, scope: scope}
}

// level1Ops .. level6Ops are tried longest-match-first so that e.g.
// "==" is not mistaken for "=" followed by "=".
var (
	level1Ops = []string{"||"}
	level2Ops = []string{"&&"}
	level3Ops = []string{"|", "&", "^"}
	level4Ops = []string{
		"===", "!==", "==", "!=", "<=", ">=", "<", ">",
		"+=", "-=", "*=", "/=", "&=", "|=", "^=", "=",
	}
	level5Ops = []string{"+", "-"}
	level6Ops = []string{"*", "/", "%", ":"}
)

func (p *Parser) parseLevel1() (value.Value, *assignRef) {
	return p.foldLevel(level1Ops, p.parseLevel2)
}

func (p *Parser) parseLevel2() (value.Value, *assignRef) {
	return p.foldLevel(level2Ops, p.parseLevel3)
}

func (p *Parser) parseLevel3() (value.Value, *assignRef) {
	return p.foldLevel(level3Ops, p.parseLevel4)
}

// parseLevel4 handles both comparisons and assignment: if the next
// operator is an assignment form and the left side is a valid
// binding reference, it desugars and applies the assignment instead
// of folding through ops.Binary (spec §4.4).
func (p *Parser) parseLevel4() (value.Value, *assignRef) {
	left, ref := p.parseLevel5()
	for {
		op, ok := p.matchOp(level4Ops)
		if !ok {
			return left, ref
		}
		if isAssignOp(op) {
			if ref == nil {
				value.Errorf(value.ErrParseFailure, "left side of %q is not assignable", op)
			}
			right, _ := p.parseLevel5()
			left = applyAssign(ref, op, right, p.reg)
			ref = nil
			continue
		}
		right, _ := p.parseLevel5()
		left = ops.Binary(p.reg, left, op, right)
		ref = nil
	}
}

func (p *Parser) parseLevel5() (value.Value, *assignRef) {
	return p.foldLevel(level5Ops, p.parseLevel6)
}

func (p *Parser) parseLevel6() (value.Value, *assignRef) {
	return p.foldLevel(level6Ops, p.parseDotChain)
}

// foldLevel implements the generic "left op right, left-associative"
// loop shared by every non-assignment level.
func (p *Parser) foldLevel(opSet []string, next func() (value.Value, *assignRef)) (value.Value, *assignRef) {
	left, ref := next()
	for {
		op, ok := p.matchOp(opSet)
		if !ok {
			return left, ref
		}
		right, _ := next()
		left = ops.Binary(p.reg, left, op, right)
		ref = nil
	}
}

// matchOp tries each candidate operator in order (callers pass them
// longest-first) and consumes the first that matches at the cursor. A
// candidate is only taken when it is the longest operator of any level
// starting at the cursor, so e.g. the '+' level never splits "+=" and
// the '|' level never splits "||".
func (p *Parser) matchOp(candidates []string) (string, bool) {
	save := p.cur.Pos()
	rest := p.cur.Remaining()
	longest := 0
	for _, set := range [][]string{level1Ops, level2Ops, level3Ops, level4Ops, level5Ops, level6Ops} {
		for _, op := range set {
			if len(op) > longest && len(rest) >= len(op) && rest[:len(op)] == op {
				longest = len(op)
			}
		}
	}
	for _, op := range candidates {
		if len(op) != longest {
			continue
		}
		ok := true
		for i := 0; i < len(op); i++ {
			if _, matched := p.cur.ConsumeChar(string(op[i])); !matched {
				ok = false
				break
			}
		}
		if ok {
			return op, true
		}
		p.cur.SetPos(save)
	}
	return "", false
}

func isAssignOp(op string) bool {
	switch op {
	case "=", "+=", "-=", "*=", "/=", "&=", "|=", "^=":
		return true
	default:
		return false
	}
}
