package builtins

import "github.com/quill-lang/quill/registry"

// Register installs every enabled helper family against reg and then
// removes any name in the host's disabledfns list (spec §6.1's
// registration order: "register math helpers", "... disabledfns:
// remove named functions after registration").
func Register(reg *registry.Registry) {
	cfg := reg.Config()
	if cfg.EnableMathsFns() {
		registerMaths(reg)
	}
	if cfg.EnableTimeFns() {
		registerTime(reg)
	}
	if cfg.EnableStringFns() {
		registerStrings(reg)
	}
	if cfg.EnableMiscFns() {
		registerMisc(reg)
	}
	reg.DisableFunctions(cfg.DisabledFns())
}
