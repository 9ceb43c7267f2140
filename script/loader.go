package script

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/quill-lang/quill/config"
)

// reservedWords is spec §4.7's exact list: these identifiers cannot
// name a function, a def argument, or a for-loop variable.
var reservedWords = map[string]bool{
	"def": true, "for": true, "in": true, "while": true, "return": true,
	"if": true, "else": true, "elseif": true, "break": true, "continue": true,
	"float": true, "int": true, "array": true, "string": true, "object": true,
	"const": true, "var": true, "global": true, "class": true, "new": true,
	"include": true,
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var blockStarters = map[string]bool{
	"if": true, "elseif": true, "else": true, "while": true, "for": true, "def": true,
}

// Program is the loaded line array plus the function-name index spec
// §3.4 and §4.7 describe.
type Program struct {
	Lines     []*Line
	Functions map[string]*FuncDef
}

// FuncDef is a loaded def's header: where its body starts and what
// positional names it binds (spec §4.8's call bridge).
type FuncDef struct {
	LineNo int
	Args   []string
}

// LoadError is a script-layer error (spec §7: "script errors set
// errortext and errorlineno"), carrying the offending line number.
type LoadError struct {
	LineNo int
	Msg    string
}

func (e *LoadError) Error() string { return fmt.Sprintf("line %d: %s", e.LineNo, e.Msg) }

func loadErr(lineno int, format string, args ...interface{}) error {
	return &LoadError{LineNo: lineno, Msg: fmt.Sprintf(format, args...)}
}

// Load implements spec §4.7: split src into lines, compute
// indentation levels against cfg's configured width, tokenize each
// line, compute each line's NumChildLines, then run the structural
// validator described below.
func Load(src string, cfg *config.Config) (*Program, error) {
	indent := cfg.IndentSpaces()
	if indent <= 0 {
		indent = config.DefaultIndentSpaces
	}

	rawLines := strings.Split(src, "\n")
	lines := make([]*Line, 0, len(rawLines))
	for i, raw := range rawLines {
		raw = strings.TrimRight(raw, "\t\r ")
		spaceCount := 0
		for spaceCount < len(raw) && raw[spaceCount] == ' ' {
			spaceCount++
		}
		if spaceCount < len(raw) && raw[spaceCount] == '\t' {
			return nil, loadErr(i+1, "tab indentation is not permitted")
		}
		if spaceCount%indent != 0 {
			return nil, loadErr(i+1, "indentation is not a multiple of %d spaces", indent)
		}
		level := spaceCount / indent
		content := raw[spaceCount:]
		tokens := Tokenize(content)
		typ := ""
		if len(tokens) > 0 {
			typ = tokens[0]
		}
		lines = append(lines, &Line{
			LineNo: i + 1,
			Tokens: tokens,
			Raw:    strings.Join(tokens, " "),
			Type:   typ,
			Level:  level,
		})
	}

	computeChildCounts(lines)

	prog := &Program{Lines: lines, Functions: make(map[string]*FuncDef)}
	if err := validate(prog); err != nil {
		return nil, err
	}
	return prog, nil
}

// computeChildCounts fills NumChildLines: the contiguous run of
// following lines more indented than self. Blank lines never
// terminate that run (they carry no indentation of their own) but do
// count as children, matching the natural reading of "contiguous".
func computeChildCounts(lines []*Line) {
	for i, ln := range lines {
		if ln.Type == "" {
			continue
		}
		n := 0
		for j := i + 1; j < len(lines); j++ {
			if lines[j].Type == "" {
				n++
				continue
			}
			if lines[j].Level > ln.Level {
				n++
				continue
			}
			break
		}
		ln.NumChildLines = n
	}
}

// validate implements the rest of spec §4.7's structural checks,
// walking the line array once while tracking the block-starter type
// that owns each indentation depth (ancestorTypes) and the most
// recent if/elseif/else seen at each level (for chain validation).
func validate(prog *Program) error {
	lines := prog.Lines
	var ancestorTypes []string
	lastChainAtLevel := map[int]string{}

	for idx, ln := range lines {
		if ln.Type == "" {
			continue
		}
		if len(ancestorTypes) > ln.Level {
			ancestorTypes = ancestorTypes[:ln.Level]
		}
		insideDef := false
		for _, t := range ancestorTypes {
			if t == "def" {
				insideDef = true
				break
			}
		}

		switch ln.Type {
		case "def":
			if ln.Level != 0 {
				return loadErr(ln.LineNo, "def must be at top level")
			}
			fd, err := parseDefHeader(ln)
			if err != nil {
				return err
			}
			if _, dup := prog.Functions[ln.Tokens[1]]; dup {
				return loadErr(ln.LineNo, "duplicate function %q", ln.Tokens[1])
			}
			fd.LineNo = idx
			prog.Functions[ln.Tokens[1]] = fd
		case "global":
			if !insideDef {
				return loadErr(ln.LineNo, "global is only valid inside a def")
			}
			if err := validateGlobalTokens(ln); err != nil {
				return err
			}
		case "for":
			if err := validateForTokens(ln); err != nil {
				return err
			}
		case "elseif":
			switch lastChainAtLevel[ln.Level] {
			case "":
				return loadErr(ln.LineNo, "elseif with no preceding if")
			case "else":
				return loadErr(ln.LineNo, "elseif may not follow else in the same chain")
			}
		case "else":
			if lastChainAtLevel[ln.Level] == "" {
				return loadErr(ln.LineNo, "else with no preceding if")
			}
		}

		if blockStarters[ln.Type] {
			if ln.NumChildLines == 0 {
				return loadErr(ln.LineNo, "%s has an empty block", ln.Type)
			}
			for len(ancestorTypes) <= ln.Level {
				ancestorTypes = append(ancestorTypes, "")
			}
			ancestorTypes = ancestorTypes[:ln.Level]
			ancestorTypes = append(ancestorTypes, ln.Type)
		}

		switch ln.Type {
		case "if", "elseif", "else":
			lastChainAtLevel[ln.Level] = ln.Type
		default:
			lastChainAtLevel[ln.Level] = ""
		}
	}
	return nil
}

// parseDefHeader validates "def NAME ( ARG (, ARG)* )" and rejects
// duplicate or reserved argument names (spec §4.7).
func parseDefHeader(ln *Line) (*FuncDef, error) {
	t := ln.Tokens
	if len(t) < 4 || !identPattern.MatchString(t[1]) || t[2] != "(" || t[len(t)-1] != ")" {
		return nil, loadErr(ln.LineNo, "malformed def header")
	}
	if reservedWords[t[1]] {
		return nil, loadErr(ln.LineNo, "function name %q is reserved", t[1])
	}
	seen := map[string]bool{}
	var args []string
	inner := t[3 : len(t)-1]
	expectName := true
	for _, tok := range inner {
		if tok == "," {
			if expectName {
				return nil, loadErr(ln.LineNo, "malformed argument list")
			}
			expectName = true
			continue
		}
		if !expectName {
			return nil, loadErr(ln.LineNo, "malformed argument list")
		}
		if !identPattern.MatchString(tok) {
			return nil, loadErr(ln.LineNo, "invalid argument name %q", tok)
		}
		if reservedWords[tok] {
			return nil, loadErr(ln.LineNo, "argument name %q is reserved", tok)
		}
		if seen[tok] {
			return nil, loadErr(ln.LineNo, "duplicate argument name %q", tok)
		}
		seen[tok] = true
		args = append(args, tok)
		expectName = false
	}
	if len(inner) > 0 && expectName {
		return nil, loadErr(ln.LineNo, "trailing comma in argument list")
	}
	return &FuncDef{Args: args}, nil
}

// validateGlobalTokens checks "global NAME (, NAME)*".
func validateGlobalTokens(ln *Line) error {
	t := ln.Tokens
	if len(t) < 2 {
		return loadErr(ln.LineNo, "global requires at least one name")
	}
	expectName := true
	for _, tok := range t[1:] {
		if tok == "," {
			if expectName {
				return loadErr(ln.LineNo, "malformed global statement")
			}
			expectName = true
			continue
		}
		if !expectName || !identPattern.MatchString(tok) {
			return loadErr(ln.LineNo, "malformed global statement")
		}
		expectName = false
	}
	if expectName {
		return loadErr(ln.LineNo, "trailing comma in global statement")
	}
	return nil
}

// validateForTokens checks "for NAME in EXPR…".
func validateForTokens(ln *Line) error {
	t := ln.Tokens
	if len(t) < 4 || !identPattern.MatchString(t[1]) || t[2] != "in" {
		return loadErr(ln.LineNo, "malformed for statement, want 'for NAME in EXPR'")
	}
	if reservedWords[t[1]] {
		return loadErr(ln.LineNo, "for variable name %q is reserved", t[1])
	}
	return nil
}
