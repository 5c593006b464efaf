package evaluator

import (
	"math"
	"strconv"
)

// Value is a runtime value. Every implementation is a comparable struct, so
// two Values are equal exactly when they have the same type and contents.
type Value interface{ repr() string }

type (
	Number struct{ V float64 }
	Str    struct{ V string }
	Bool   struct{ V bool }
	Nil    struct{}
)

func (v Number) repr() string { return formatNumber(v.V) }
func (v Str) repr() string    { return v.V }
func (v Bool) repr() string {
	if v.V {
		return "true"
	}
	return "false"
}
func (v Nil) repr() string { return "nil" }

// Format produces the text a print statement writes for v.
func Format(v Value) string { return v.repr() }

// formatNumber prints the shortest decimal that round-trips, without a
// trailing ".0" for integral values.
func formatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// fromLiteral converts a parser literal into a runtime value.
func fromLiteral(v any) Value {
	switch x := v.(type) {
	case nil:
		return Nil{}
	case float64:
		return Number{V: x}
	case string:
		return Str{V: x}
	case bool:
		return Bool{V: x}
	default:
		panic("evaluator: unsupported literal type")
	}
}

func isTruthy(v Value) bool {
	switch x := v.(type) {
	case Nil:
		return false
	case Bool:
		return x.V
	default:
		return true
	}
}

func equal(a, b Value) bool { return a == b }
