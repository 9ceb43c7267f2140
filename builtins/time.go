package builtins

import (
	"time"

	"github.com/quill-lang/quill/registry"
	"github.com/quill-lang/quill/value"
)

// registerTime installs the time/date helper family (spec §6.1
// enabletimefns).
func registerTime(reg *registry.Registry) {
	reg.RegisterFunction("now", 0, 0, Func(func(a []value.Value) (value.Value, error) {
		return value.Num(float64(time.Now().Unix())), nil
	}))
	reg.RegisterFunction("nowmillis", 0, 0, Func(func(a []value.Value) (value.Value, error) {
		return value.Num(float64(time.Now().UnixMilli())), nil
	}))
	reg.RegisterFunction("formatunixtime", 2, 2, Func(func(a []value.Value) (value.Value, error) {
		sec, err := wantNumber(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		layout, err := wantString(a, 1)
		if err != nil {
			return value.Value{}, err
		}
		t := time.Unix(int64(sec), 0).UTC()
		return value.Str(t.Format(goLayout(layout))), nil
	}))
}

// goLayout translates the handful of strftime-style directives a
// script is likely to pass into Go's reference-time layout, falling
// back to treating the input as already a Go layout string.
func goLayout(layout string) string {
	switch layout {
	case "%Y-%m-%d":
		return "2006-01-02"
	case "%Y-%m-%d %H:%M:%S":
		return "2006-01-02 15:04:05"
	case "%H:%M:%S":
		return "15:04:05"
	default:
		return layout
	}
}
