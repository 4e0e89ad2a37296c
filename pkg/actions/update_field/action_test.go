package update_field

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dealclarity/clarity/pkg/mocks"
	"github.com/dealclarity/clarity/pkg/models"
	"github.com/dealclarity/clarity/pkg/protocol"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewAction_RequiresField(t *testing.T) {
	_, err := NewAction(map[string]any{"value": 1}, &mocks.MockDealRepository{})
	require.Error(t, err)
}

func TestAction_Execute_SetsTopLevelField(t *testing.T) {
	deals := &mocks.MockDealRepository{}
	deal := &models.Deal{ID: "deal-1", Fields: map[string]any{"probability": 20}}
	deals.On("Save", mock.Anything, deal).Return(nil)

	action, err := NewAction(map[string]any{"field": "probability", "value": 75}, deals)
	require.NoError(t, err)

	result, err := action.Execute(context.Background(), protocol.ExecutionContext{Deal: deal}, testLogger())
	require.NoError(t, err)

	assert.Equal(t, 75, deal.Fields["probability"])
	assert.Equal(t, "probability", result["field"])
	deals.AssertExpectations(t)
}

func TestAction_Execute_CreatesNestedPath(t *testing.T) {
	deals := &mocks.MockDealRepository{}
	deal := &models.Deal{ID: "deal-1"}
	deals.On("Save", mock.Anything, deal).Return(nil)

	action, err := NewAction(map[string]any{"field": "velocity.totalDays", "value": 12}, deals)
	require.NoError(t, err)

	_, err = action.Execute(context.Background(), protocol.ExecutionContext{Deal: deal}, testLogger())
	require.NoError(t, err)

	velocity, ok := deal.Fields["velocity"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 12, velocity["totalDays"])
}
