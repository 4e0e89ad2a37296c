package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealclarity/clarity/pkg/mocks"
	"github.com/dealclarity/clarity/pkg/models"
	"github.com/dealclarity/clarity/pkg/persistence"
	"github.com/dealclarity/clarity/pkg/persistence/file"
	"github.com/dealclarity/clarity/pkg/registry"
	"github.com/dealclarity/clarity/pkg/services"
)

func newWorkflowService(t *testing.T) (*services.Workflow, *file.Persistence) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := file.NewPersistence(t.TempDir())
	reg := registry.NewDefaultRegistry(logger, store, &mocks.MockMailer{}, &mocks.MockNotifier{})

	return services.NewWorkflow(store, reg), store
}

func validWorkflow() *models.Workflow {
	return &models.Workflow{
		TeamID:  "team-1",
		Name:    "Stale deal nudge",
		Enabled: true,
		Trigger: models.WorkflowTrigger{Type: models.TriggerDealStageChanged},
		Conditions: []models.Condition{
			{Field: "stage", Operator: models.OpEquals, Value: "proposal"},
		},
		Actions: []models.ActionItem{
			{Type: models.ActionAddTag, Config: map[string]any{"tag": "stale"}},
		},
	}
}

func TestWorkflowService_Create(t *testing.T) {
	svc, _ := newWorkflowService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validWorkflow())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	fetched, err := svc.FetchByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Stale deal nudge", fetched.Name)
}

func TestWorkflowService_Create_ResetsStatsAndHistory(t *testing.T) {
	svc, _ := newWorkflowService(t)

	workflow := validWorkflow()
	workflow.Stats = models.WorkflowStats{TotalExecutions: 99}
	workflow.History = []models.ExecutionEntry{{DealID: "smuggled"}}

	created, err := svc.Create(context.Background(), workflow)
	require.NoError(t, err)
	assert.Zero(t, created.Stats.TotalExecutions)
	assert.Empty(t, created.History)
}

func TestWorkflowService_Create_Validation(t *testing.T) {
	svc, _ := newWorkflowService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.Workflow)
	}{
		{
			name:   "missing name",
			mutate: func(w *models.Workflow) { w.Name = "" },
		},
		{
			name:   "missing team",
			mutate: func(w *models.Workflow) { w.TeamID = "" },
		},
		{
			name:   "unknown trigger type",
			mutate: func(w *models.Workflow) { w.Trigger.Type = "deal_levitated" },
		},
		{
			name: "unknown condition operator",
			mutate: func(w *models.Workflow) {
				w.Conditions[0].Operator = "resembles"
			},
		},
		{
			name: "unknown action type",
			mutate: func(w *models.Workflow) {
				w.Actions[0].Type = "teleport"
			},
		},
		{
			name: "bad action config",
			mutate: func(w *models.Workflow) {
				w.Actions[0].Config = map[string]any{}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workflow := validWorkflow()
			tt.mutate(workflow)

			_, err := svc.Create(ctx, workflow)
			require.Error(t, err)
			assert.True(t, services.IsValidationError(err), "expected validation error, got %v", err)
		})
	}
}

func TestWorkflowService_Update_PreservesStats(t *testing.T) {
	svc, store := newWorkflowService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validWorkflow())
	require.NoError(t, err)

	require.NoError(t, store.Workflows().RecordExecution(ctx, created.ID, models.ExecutionUpdate{
		Entry:             models.ExecutionEntry{DealID: "deal-1", Status: models.ExecutionSuccess, ActionsExecuted: 1},
		SuccessfulActions: 1,
	}))

	replacement := validWorkflow()
	replacement.Name = "Renamed"

	updated, err := svc.Update(ctx, created.ID, replacement)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, int64(1), updated.Stats.TotalExecutions)
	assert.Len(t, updated.History, 1)
}

func TestWorkflowService_Update_NotFound(t *testing.T) {
	svc, _ := newWorkflowService(t)

	_, err := svc.Update(context.Background(), "missing", validWorkflow())
	assert.True(t, persistence.IsWorkflowNotFound(err))
}

func TestWorkflowService_SetEnabled(t *testing.T) {
	svc, _ := newWorkflowService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validWorkflow())
	require.NoError(t, err)

	disabled, err := svc.SetEnabled(ctx, created.ID, false)
	require.NoError(t, err)
	assert.False(t, disabled.Enabled)
}

func TestWorkflowService_List_FiltersByTrigger(t *testing.T) {
	svc, _ := newWorkflowService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, validWorkflow())
	require.NoError(t, err)

	other := validWorkflow()
	other.Trigger.Type = models.TriggerDealCreated
	_, err = svc.Create(ctx, other)
	require.NoError(t, err)

	triggerType := models.TriggerDealCreated

	workflows, err := svc.List(ctx, services.ListWorkflowsRequest{TeamID: "team-1", TriggerType: &triggerType})
	require.NoError(t, err)
	require.Len(t, workflows, 1)
	assert.Equal(t, models.TriggerDealCreated, workflows[0].Trigger.Type)
}

func TestWorkflowService_Delete(t *testing.T) {
	svc, _ := newWorkflowService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validWorkflow())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.FetchByID(ctx, created.ID)
	assert.True(t, persistence.IsWorkflowNotFound(err))
}
