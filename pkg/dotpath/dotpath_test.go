package dotpath_test

import (
	"testing"

	"github.com/dealclarity/clarity/pkg/dotpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	fields := map[string]any{
		"name":   "Acme renewal",
		"amount": 15000.0,
		"owner": map[string]any{
			"id":   "u-1",
			"name": "Dana",
		},
		"velocity": map[string]any{
			"stage": map[string]any{
				"days": 12,
			},
		},
	}

	tests := []struct {
		name      string
		path      string
		wantValue any
		wantFound bool
	}{
		{name: "top level field", path: "name", wantValue: "Acme renewal", wantFound: true},
		{name: "nested field", path: "owner.name", wantValue: "Dana", wantFound: true},
		{name: "deeply nested field", path: "velocity.stage.days", wantValue: 12, wantFound: true},
		{name: "missing top level", path: "closed_at", wantFound: false},
		{name: "missing nested", path: "owner.email", wantFound: false},
		{name: "segment through scalar", path: "name.first", wantFound: false},
		{name: "empty path", path: "", wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			value, found := dotpath.Resolve(fields, tt.path)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func TestSet(t *testing.T) {
	t.Parallel()

	t.Run("creates intermediate maps", func(t *testing.T) {
		t.Parallel()

		fields := map[string]any{"name": "Acme renewal"}

		dotpath.Set(fields, "velocity.totalDays", 12)

		value, found := dotpath.Resolve(fields, "velocity.totalDays")
		require.True(t, found)
		assert.Equal(t, 12, value)
		assert.Equal(t, "Acme renewal", fields["name"], "sibling fields must be untouched")
	})

	t.Run("overwrites existing value", func(t *testing.T) {
		t.Parallel()

		fields := map[string]any{"stage": "qualified"}

		dotpath.Set(fields, "stage", "won")

		assert.Equal(t, "won", fields["stage"])
	})

	t.Run("replaces scalar intermediate", func(t *testing.T) {
		t.Parallel()

		fields := map[string]any{"velocity": 3}

		dotpath.Set(fields, "velocity.totalDays", 12)

		value, found := dotpath.Resolve(fields, "velocity.totalDays")
		require.True(t, found)
		assert.Equal(t, 12, value)
	})
}
