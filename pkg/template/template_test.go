package template_test

import (
	"testing"

	"github.com/dealclarity/clarity/pkg/models"
	"github.com/dealclarity/clarity/pkg/template"
	"github.com/stretchr/testify/assert"
)

func TestInterpolate(t *testing.T) {
	t.Parallel()

	vars := map[string]any{
		"dealName":   "Acme renewal",
		"dealAmount": 15000.0,
		"emptyVar":   nil,
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "single placeholder",
			input: "Deal {{dealName}} updated",
			want:  "Deal Acme renewal updated",
		},
		{
			name:  "multiple placeholders",
			input: "{{dealName}}: {{dealAmount}}",
			want:  "Acme renewal: 15000",
		},
		{
			name:  "whitespace inside braces",
			input: "Deal {{ dealName }} updated",
			want:  "Deal Acme renewal updated",
		},
		{
			name:  "unknown placeholder left in place",
			input: "Hello {{unknownVar}}",
			want:  "Hello {{unknownVar}}",
		},
		{
			name:  "nil variable renders empty",
			input: "Value: {{emptyVar}}.",
			want:  "Value: .",
		},
		{
			name:  "no placeholders",
			input: "plain text",
			want:  "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, template.Interpolate(tt.input, vars))
		})
	}
}

func TestDealVariables(t *testing.T) {
	t.Parallel()

	deal := &models.Deal{
		ID:     "d-1",
		TeamID: "t-1",
		Fields: map[string]any{
			"name":        "Acme renewal",
			"amount":      15000.0,
			"stage":       "negotiation",
			"probability": 60,
			"closeDate":   "2026-09-30",
		},
	}

	vars := template.DealVariables(deal)

	assert.Equal(t, "Acme renewal", vars["dealName"])
	assert.Equal(t, 15000.0, vars["dealAmount"])
	assert.Equal(t, "negotiation", vars["dealStage"])
	assert.Equal(t, 60, vars["dealProbability"])
	assert.Equal(t, "2026-09-30", vars["dealCloseDate"])
}

func TestMergeVariables(t *testing.T) {
	t.Parallel()

	base := map[string]any{"dealName": "Acme", "dealStage": "won"}
	extra := map[string]any{"dealStage": "lost", "ownerName": "Dana"}

	merged := template.MergeVariables(base, extra)

	assert.Equal(t, "Acme", merged["dealName"])
	assert.Equal(t, "lost", merged["dealStage"], "config variables override built-ins")
	assert.Equal(t, "Dana", merged["ownerName"])
	assert.Equal(t, "won", base["dealStage"], "inputs are not mutated")
}
