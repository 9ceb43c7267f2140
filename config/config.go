// Package config holds the engine-wide options a host chooses when it
// constructs a Quill engine: resource limits, debug tracing gates, the
// REPL prompt, the helper-function family switches, and the logger the
// ambient stack writes to. It deliberately stays a plain struct with explicit setters, the
// same shape the teacher's own config package uses.
package config

import "go.uber.org/zap"

// Default resource limits, per spec §4.10.
const (
	DefaultMaxLines        = 10_000_000
	DefaultMaxMicroseconds = 10_000_000
	DefaultIndentSpaces    = 2
)

// Config is the mutable configuration shared by a Registry and the
// Script state it drives. Zero value is usable: it has no line or time
// bound, a two-space indent and a no-op logger. New returns one with
// the spec's default resource limits.
type Config struct {
	prompt        string
	debug         map[string]bool
	logger        *zap.Logger
	maxLines      int64
	maxMicros     int64
	indentSpaces  int
	stopScript    bool

	enableMathsFns  bool
	enableTimeFns   bool
	enableStringFns bool
	enableMiscFns   bool
	disabledFns     []string
}

// New returns a Config initialized with the spec's default resource
// limits and a no-op logger (so embedding hosts pay nothing for logging
// unless they call SetLogger).
func New() *Config {
	return &Config{
		logger:       zap.NewNop(),
		maxLines:     DefaultMaxLines,
		maxMicros:    DefaultMaxMicroseconds,
		indentSpaces: DefaultIndentSpaces,
	}
}

// Debug reports whether tracing is enabled for the named subsystem
// ("tokens", "exec", "scope", ...), mirroring the teacher's
// Config.Debug(word) gate.
func (c *Config) Debug(word string) bool {
	return c.debug[word]
}

// SetDebug enables or disables tracing for the named subsystem.
func (c *Config) SetDebug(word string, state bool) {
	if c.debug == nil {
		c.debug = make(map[string]bool)
	}
	c.debug[word] = state
}

// Logger returns the structured logger debug tracing writes to.
func (c *Config) Logger() *zap.Logger {
	if c.logger == nil {
		return zap.NewNop()
	}
	return c.logger
}

// SetLogger installs a structured logger. Passing nil restores the
// no-op logger.
func (c *Config) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	c.logger = l
}

// MaxLines is the executed_lines bound from spec §4.10.
func (c *Config) MaxLines() int64 {
	return c.maxLines
}

// SetMaxLines overrides the executed_lines bound. A value <= 0 means
// "no bound".
func (c *Config) SetMaxLines(n int64) {
	c.maxLines = n
}

// MaxMicroseconds is the wall-clock bound from spec §4.10.
func (c *Config) MaxMicroseconds() int64 {
	return c.maxMicros
}

// SetMaxMicroseconds overrides the wall-clock bound. A value <= 0 means
// "no bound".
func (c *Config) SetMaxMicroseconds(n int64) {
	c.maxMicros = n
}

// IndentSpaces is the number of ASCII spaces that make up one
// indentation level (spec §4.7, default 2).
func (c *Config) IndentSpaces() int {
	if c.indentSpaces <= 0 {
		return DefaultIndentSpaces
	}
	return c.indentSpaces
}

// SetIndentSpaces overrides the indentation width.
func (c *Config) SetIndentSpaces(n int) {
	c.indentSpaces = n
}

// StopScript reports whether the host has asked the running script to
// halt cooperatively (spec §4.10).
func (c *Config) StopScript() bool {
	return c.stopScript
}

// SetStopScript sets or clears the cooperative halt flag. A host calls
// this from outside the evaluation call stack (e.g. from another
// goroutine watching a deadline) to ask the executor to abort at its
// next line boundary.
func (c *Config) SetStopScript(stop bool) {
	c.stopScript = stop
}

// Prompt is the REPL prompt string used by cmd/quill.
func (c *Config) Prompt() string {
	if c.prompt == "" {
		return "> "
	}
	return c.prompt
}

// SetPrompt overrides the REPL prompt string.
func (c *Config) SetPrompt(p string) {
	c.prompt = p
}

// EnableMathsFns, EnableTimeFns, EnableStringFns and EnableMiscFns
// gate the optional built-in function families (spec §6.1:
// enablemathsfns, enabletimefns, enablestringfns, enablemiscfns). All
// default to false — a host opts in explicitly.
func (c *Config) EnableMathsFns() bool  { return c.enableMathsFns }
func (c *Config) EnableTimeFns() bool   { return c.enableTimeFns }
func (c *Config) EnableStringFns() bool { return c.enableStringFns }
func (c *Config) EnableMiscFns() bool   { return c.enableMiscFns }

func (c *Config) SetEnableMathsFns(v bool)  { c.enableMathsFns = v }
func (c *Config) SetEnableTimeFns(v bool)   { c.enableTimeFns = v }
func (c *Config) SetEnableStringFns(v bool) { c.enableStringFns = v }
func (c *Config) SetEnableMiscFns(v bool)   { c.enableMiscFns = v }

// DisabledFns lists function names removed after registration (spec
// §6.1 disabledfns).
func (c *Config) DisabledFns() []string { return c.disabledFns }

// SetDisabledFns overrides the disabled-function list.
func (c *Config) SetDisabledFns(names []string) { c.disabledFns = names }
