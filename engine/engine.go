// Package engine is the public façade a host links against: it wires
// config, value, registry, lexer, exprs, ops, script and builtins
// into the single entry point spec §1 describes ("the host registers
// variables, constants, objects, and callback functions; users submit
// text; the engine returns a tagged runtime value").
//
// Grounded on the teacher's top-level ivy.go/run.go pairing — ivy.go
// owns a *config.Config and a *value.Context and hands text to
// run.Run; Engine plays the same role, adding the correlation id and
// script-source cache the SPEC_FULL ambient/domain stack sections
// call for.
package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/bluele/gcache"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"github.com/quill-lang/quill/builtins"
	"github.com/quill-lang/quill/config"
	"github.com/quill-lang/quill/exprs"
	"github.com/quill-lang/quill/registry"
	"github.com/quill-lang/quill/script"
	"github.com/quill-lang/quill/value"
)

// cachedProgram is what the script-source cache (SPEC_FULL §4.11)
// stores per distinct script text.
type cachedProgram struct {
	prog *script.Program
}

// Engine is one interpreter instance: a registry of host-supplied
// constants/functions/objects/callbacks, a loaded-script cache, and a
// correlation id for log correlation across many embedded instances.
type Engine struct {
	cfg   *config.Config
	reg   *registry.Registry
	id    uuid.UUID
	cache gcache.Cache
}

// New constructs an Engine. If cfg is nil, config.New()'s defaults are
// used. Built-in constants and the optional helper function families
// (spec §6.1) are installed immediately.
func New(cfg *config.Config) *Engine {
	if cfg == nil {
		cfg = config.New()
	}
	reg := registry.New(cfg)
	reg.InstallDefaultConstants()
	builtins.Register(reg)

	id, err := uuid.NewV4()
	if err != nil {
		id = uuid.Nil
	}

	e := &Engine{
		cfg: cfg,
		reg: reg,
		id:  id,
		cache: gcache.New(64).
			LRU().
			Build(),
	}
	cfg.Logger().Debug("engine constructed", zap.String("engine_id", e.id.String()))
	return e
}

// ID returns the engine's correlation id (SPEC_FULL §2.1).
func (e *Engine) ID() uuid.UUID { return e.id }

// Registry exposes the underlying registry so a host can call
// SetConstant/RegisterFunction/RegisterObject/SetVariableFunc/
// SetOverloadFunc (spec §3.2, §6.1) before evaluating anything.
func (e *Engine) Registry() *registry.Registry { return e.reg }

// Config returns the shared configuration.
func (e *Engine) Config() *config.Config { return e.cfg }

// Eval evaluates a single expression against a fresh, throwaway scope
// (spec §4.2-§4.5). Use Run for script text that needs persistent
// variables and control flow.
func (e *Engine) Eval(raw string) value.Value {
	return exprs.Eval(raw, e.reg, exprs.NewMapScope())
}

// LoadScript implements spec §4.6/§4.7 plus SPEC_FULL §4.11's cache:
// a script text that was already loaded successfully is served from
// cache without re-tokenizing; load errors are never cached, so a
// fixed-and-resubmitted script is always freshly validated.
func (e *Engine) LoadScript(src string) (*script.Program, error) {
	key := hashScript(src)
	if v, err := e.cache.Get(key); err == nil {
		return v.(*cachedProgram).prog, nil
	}
	prog, err := script.Load(src, e.cfg)
	if err != nil {
		return nil, err
	}
	e.cache.Set(key, &cachedProgram{prog: prog})
	return prog, nil
}

// Run loads (or fetches from cache) src and executes it to completion
// (spec §4.8/§4.10), returning the script's returnvalue.
func (e *Engine) Run(src string) (value.Value, error) {
	prog, err := e.LoadScript(src)
	if err != nil {
		return value.Value{}, err
	}
	start := time.Now()
	exec := script.NewExecutor(prog, e.reg)
	result, err := exec.Run()
	e.cfg.Logger().Debug("script run complete",
		zap.String("engine_id", e.id.String()),
		zap.Duration("elapsed", time.Since(start)),
		zap.Bool("error", err != nil),
	)
	return result, err
}

func hashScript(src string) string {
	sum := sha256.Sum256([]byte(src))
	return hex.EncodeToString(sum[:])
}
