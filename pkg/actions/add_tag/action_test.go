package add_tag

import (
	"context"
	"errors"
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

func TestNewFactory(t *testing.T) {
	factory := NewFactory(&mocks.MockDealRepository{})
	assert.Equal(t, models.ActionAddTag, factory.ID())
	assert.NotNil(t, factory.Schema())
}

func TestNewAction_RequiresTag(t *testing.T) {
	_, err := NewAction(map[string]any{}, &mocks.MockDealRepository{})
	require.Error(t, err)
}

func TestAction_Execute_AddsTag(t *testing.T) {
	deals := &mocks.MockDealRepository{}
	deal := &models.Deal{ID: "deal-1", Fields: map[string]any{}}
	deals.On("Save", mock.Anything, deal).Return(nil)

	action, err := NewAction(map[string]any{"tag": "hot"}, deals)
	require.NoError(t, err)

	result, err := action.Execute(context.Background(), protocol.ExecutionContext{Deal: deal}, testLogger())
	require.NoError(t, err)

	assert.Equal(t, "hot", result["tag"])
	assert.Contains(t, deal.Tags(), "hot")
	deals.AssertExpectations(t)
}

func TestAction_Execute_ExistingTagSkipsSave(t *testing.T) {
	deals := &mocks.MockDealRepository{}
	deal := &models.Deal{ID: "deal-1", Fields: map[string]any{"tags": []any{"hot"}}}

	action, err := NewAction(map[string]any{"tag": "hot"}, deals)
	require.NoError(t, err)

	_, err = action.Execute(context.Background(), protocol.ExecutionContext{Deal: deal}, testLogger())
	require.NoError(t, err)

	assert.Equal(t, []string{"hot"}, deal.Tags())
	deals.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAction_Execute_SaveError(t *testing.T) {
	deals := &mocks.MockDealRepository{}
	deal := &models.Deal{ID: "deal-1", Fields: map[string]any{}}
	deals.On("Save", mock.Anything, deal).Return(errors.New("disk full"))

	action, err := NewAction(map[string]any{"tag": "hot"}, deals)
	require.NoError(t, err)

	_, err = action.Execute(context.Background(), protocol.ExecutionContext{Deal: deal}, testLogger())
	require.Error(t, err)
}
