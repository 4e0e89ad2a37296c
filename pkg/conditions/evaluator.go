// Package conditions evaluates workflow conditions against deal fields.
package conditions

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/dealclarity/clarity/pkg/dotpath"
	"github.com/dealclarity/clarity/pkg/models"
)

// Evaluate reports whether fields satisfy every condition in the list.
// An empty or nil list always passes. Missing fields resolve to nil and an
// unknown operator fails closed; evaluation never errors.
func Evaluate(fields map[string]any, conds []models.Condition) bool {
	for _, cond := range conds {
		if !evaluateOne(fields, cond) {
			return false
		}
	}

	return true
}

func evaluateOne(fields map[string]any, cond models.Condition) bool {
	value, _ := dotpath.Resolve(fields, cond.Field)

	switch cond.Operator {
	case models.OpEquals:
		return strictEquals(value, cond.Value)
	case models.OpNotEquals:
		return !strictEquals(value, cond.Value)
	case models.OpGreaterThan:
		left, leftOK := toNumber(value)
		right, rightOK := toNumber(cond.Value)

		return leftOK && rightOK && left > right
	case models.OpLessThan:
		left, leftOK := toNumber(value)
		right, rightOK := toNumber(cond.Value)

		return leftOK && rightOK && left < right
	case models.OpContains:
		return strings.Contains(toString(value), toString(cond.Value))
	case models.OpNotContains:
		return !strings.Contains(toString(value), toString(cond.Value))
	case models.OpIsEmpty:
		return isEmpty(value)
	case models.OpIsNotEmpty:
		return !isEmpty(value)
	default:
		return false
	}
}

// strictEquals compares without cross-type coercion: two numeric values
// compare numerically, everything else requires matching types. A numeric
// string never equals a number.
func strictEquals(a, b any) bool {
	aNum, aIsNum := numericValue(a)
	bNum, bIsNum := numericValue(b)

	if aIsNum || bIsNum {
		return aIsNum && bIsNum && aNum == bNum
	}

	return reflect.DeepEqual(a, b)
}

// numericValue unwraps genuinely numeric types. Strings are not numbers here.
func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// toNumber coerces for ordered comparison: numeric types directly, numeric
// strings via parsing, booleans as 0/1. Anything else does not coerce.
func toNumber(v any) (float64, bool) {
	if n, ok := numericValue(v); ok {
		return n, true
	}

	switch t := v.(type) {
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}

		return n, true
	case bool:
		if t {
			return 1, true
		}

		return 0, true
	default:
		return 0, false
	}
}

func toString(v any) string {
	if v == nil {
		return ""
	}

	if s, ok := v.(string); ok {
		return s
	}

	return fmt.Sprintf("%v", v)
}

// isEmpty mirrors falsy semantics: nil, zero numbers, empty string, false.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}

	if n, ok := numericValue(v); ok {
		return n == 0
	}

	switch t := v.(type) {
	case string:
		return t == ""
	case bool:
		return !t
	default:
		return false
	}
}
