// Package template renders {{variable}} placeholders in action configuration.
package template

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dealclarity/clarity/pkg/models"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_.]+)\s*\}\}`)

// Interpolate replaces every {{name}} placeholder in input with the matching
// variable's string representation. Unknown placeholders are left in place so
// misconfigured templates stay visible in the rendered output.
func Interpolate(input string, vars map[string]any) string {
	return placeholderPattern.ReplaceAllStringFunc(input, func(match string) string {
		name := strings.TrimSpace(strings.Trim(match, "{}"))

		value, ok := vars[name]
		if !ok {
			return match
		}

		if value == nil {
			return ""
		}

		return fmt.Sprintf("%v", value)
	})
}

// DealVariables builds the built-in variable set exposed to email, Slack, and
// webhook templates.
func DealVariables(deal *models.Deal) map[string]any {
	vars := map[string]any{
		"dealName":        deal.Fields["name"],
		"dealAmount":      deal.Fields["amount"],
		"dealStage":       deal.Fields["stage"],
		"dealProbability": deal.Fields["probability"],
		"dealCloseDate":   deal.Fields["closeDate"],
	}

	return vars
}

// MergeVariables overlays extra onto base without mutating either. Extra
// variables win on key collisions.
func MergeVariables(base map[string]any, extra map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(extra))

	for k, v := range base {
		merged[k] = v
	}

	for k, v := range extra {
		merged[k] = v
	}

	return merged
}
