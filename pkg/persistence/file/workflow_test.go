package file_test

import (
	"context"
	"testing"
	"time"

	"github.com/dealclarity/clarity/pkg/models"
	"github.com/dealclarity/clarity/pkg/persistence"
	"github.com/dealclarity/clarity/pkg/persistence/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *file.Persistence {
	t.Helper()

	return file.NewPersistence(t.TempDir())
}

func sampleWorkflow(teamID string, triggerType models.TriggerType, enabled bool) *models.Workflow {
	return &models.Workflow{
		TeamID:  teamID,
		Name:    "Big deal alert",
		Enabled: enabled,
		Trigger: models.WorkflowTrigger{Type: triggerType},
		Conditions: []models.Condition{
			{Field: "amount", Operator: models.OpGreaterThan, Value: 10000},
		},
		Actions: []models.ActionItem{
			{Type: models.ActionAddTag, Config: map[string]any{"tag": "big-deal"}},
		},
	}
}

func TestWorkflowRepository_SaveAndByID(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	workflow := sampleWorkflow("team-1", models.TriggerDealStageChanged, true)
	require.NoError(t, store.Workflows().Save(ctx, workflow))
	require.NotEmpty(t, workflow.ID)
	assert.False(t, workflow.CreatedAt.IsZero())

	loaded, err := store.Workflows().ByID(ctx, workflow.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.Name, loaded.Name)
	assert.Equal(t, workflow.TeamID, loaded.TeamID)
	assert.Equal(t, models.TriggerDealStageChanged, loaded.Trigger.Type)
	assert.Len(t, loaded.Conditions, 1)
	assert.Len(t, loaded.Actions, 1)
}

func TestWorkflowRepository_ByID_NotFound(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	_, err := store.Workflows().ByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, persistence.IsWorkflowNotFound(err))
}

func TestWorkflowRepository_ListFilters(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	enabled := sampleWorkflow("team-1", models.TriggerDealStageChanged, true)
	disabled := sampleWorkflow("team-1", models.TriggerDealStageChanged, false)
	otherTrigger := sampleWorkflow("team-1", models.TriggerDealCreated, true)
	otherTeam := sampleWorkflow("team-2", models.TriggerDealStageChanged, true)

	for _, w := range []*models.Workflow{enabled, disabled, otherTrigger, otherTeam} {
		require.NoError(t, store.Workflows().Save(ctx, w))
	}

	isEnabled := true
	triggerType := models.TriggerDealStageChanged

	matches, err := store.Workflows().List(ctx, persistence.ListWorkflowsOptions{
		TeamID:      "team-1",
		Enabled:     &isEnabled,
		TriggerType: &triggerType,
	})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, enabled.ID, matches[0].ID)

	all, err := store.Workflows().List(ctx, persistence.ListWorkflowsOptions{TeamID: "team-1"})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestWorkflowRepository_Delete(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	workflow := sampleWorkflow("team-1", models.TriggerDealCreated, true)
	require.NoError(t, store.Workflows().Save(ctx, workflow))

	require.NoError(t, store.Workflows().Delete(ctx, workflow.ID))

	_, err := store.Workflows().ByID(ctx, workflow.ID)
	assert.True(t, persistence.IsWorkflowNotFound(err))

	err = store.Workflows().Delete(ctx, workflow.ID)
	assert.True(t, persistence.IsWorkflowNotFound(err))
}

func TestWorkflowRepository_RecordExecution(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	workflow := sampleWorkflow("team-1", models.TriggerDealStageChanged, true)
	require.NoError(t, store.Workflows().Save(ctx, workflow))

	update := models.ExecutionUpdate{
		Entry: models.ExecutionEntry{
			DealID:          "deal-1",
			ExecutedAt:      time.Now().UTC(),
			Status:          models.ExecutionFailed,
			ActionsExecuted: 2,
		},
		SuccessfulActions: 1,
		FailedActions:     1,
	}
	require.NoError(t, store.Workflows().RecordExecution(ctx, workflow.ID, update))

	loaded, err := store.Workflows().ByID(ctx, workflow.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), loaded.Stats.TotalExecutions)
	assert.Equal(t, int64(1), loaded.Stats.SuccessfulExecutions)
	assert.Equal(t, int64(1), loaded.Stats.FailedExecutions)
	require.NotNil(t, loaded.Stats.LastExecuted)
	require.Len(t, loaded.History, 1)
	assert.Equal(t, models.ExecutionFailed, loaded.History[0].Status)
	assert.Equal(t, 2, loaded.History[0].ActionsExecuted)
}

func TestWorkflowRepository_RecordExecution_HistoryCap(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	workflow := sampleWorkflow("team-1", models.TriggerDealUpdated, true)
	require.NoError(t, store.Workflows().Save(ctx, workflow))

	for i := 0; i < models.MaxExecutionHistory+1; i++ {
		update := models.ExecutionUpdate{
			Entry: models.ExecutionEntry{
				DealID:          "deal-" + string(rune('a'+i%26)),
				ExecutedAt:      time.Now().UTC(),
				Status:          models.ExecutionSuccess,
				ActionsExecuted: 1,
			},
			SuccessfulActions: 1,
		}
		require.NoError(t, store.Workflows().RecordExecution(ctx, workflow.ID, update))
	}

	loaded, err := store.Workflows().ByID(ctx, workflow.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.History, models.MaxExecutionHistory)
	assert.Equal(t, int64(models.MaxExecutionHistory+1), loaded.Stats.TotalExecutions,
		"counters keep growing past the history cap")
}

func TestDealRepository_SaveAndByID(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	deal := &models.Deal{
		TeamID: "team-1",
		Fields: map[string]any{"name": "Acme renewal", "amount": 15000.0, "stage": "negotiation"},
	}
	require.NoError(t, store.Deals().Save(ctx, deal))
	require.NotEmpty(t, deal.ID)

	loaded, err := store.Deals().ByID(ctx, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme renewal", loaded.Fields["name"])
	assert.Equal(t, "negotiation", loaded.Stage())

	_, err = store.Deals().ByID(ctx, "missing")
	assert.True(t, persistence.IsDealNotFound(err))
}

func TestDealRepository_List(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Deals().Save(ctx, &models.Deal{TeamID: "team-1", Fields: map[string]any{"name": "A"}}))
	require.NoError(t, store.Deals().Save(ctx, &models.Deal{TeamID: "team-1", Fields: map[string]any{"name": "B"}}))
	require.NoError(t, store.Deals().Save(ctx, &models.Deal{TeamID: "team-2", Fields: map[string]any{"name": "C"}}))

	all, err := store.Deals().List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	teamDeals, err := store.Deals().List(ctx, "team-1")
	require.NoError(t, err)
	assert.Len(t, teamDeals, 2)

	empty, err := store.Deals().List(ctx, "team-9")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTaskRepository_Create(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	task := &models.Task{
		TeamID: "team-1",
		DealID: "deal-1",
		Title:  "Follow up with Acme",
	}
	require.NoError(t, store.Tasks().Create(ctx, task))
	assert.NotEmpty(t, task.ID)
	assert.False(t, task.CreatedAt.IsZero())
}
