package exprs

import (
	"github.com/quill-lang/quill/ops"
	"github.com/quill-lang/quill/registry"
	"github.com/quill-lang/quill/value"
)

// applyAssign implements spec §4.4: a plain '=' overwrites the
// binding outright; a compound form desugars to
// assign(L, binop(L, baseOp, R)) before writing it back. The write
// goes through ref.set: for a name the host variable callback claimed,
// that is the callback's VarSet op (see hostRef); otherwise the script
// binding, array element or dict entry is mutated directly.
func applyAssign(ref *assignRef, op string, rhs value.Value, reg *registry.Registry) value.Value {
	var result value.Value
	if op == "=" {
		result = rhs
	} else {
		base := op[:len(op)-1]
		result = ops.Binary(reg, ref.get(), base, rhs)
	}
	ref.set(result)
	return result
}
