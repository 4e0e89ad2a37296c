package send_email

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

func TestNewAction_RequiresRecipient(t *testing.T) {
	_, err := NewAction(map[string]any{"subject": "hi"}, &mocks.MockMailer{})
	require.Error(t, err)
}

func TestAction_Execute_InterpolatesDealVariables(t *testing.T) {
	mailer := &mocks.MockMailer{}

	var sent protocol.Email

	mailer.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(1).(protocol.Email)
	}).Return(nil)

	deal := &models.Deal{ID: "deal-1", Fields: map[string]any{
		"name":  "Acme renewal",
		"stage": "negotiation",
	}}

	action, err := NewAction(map[string]any{
		"to":       "rep@example.com",
		"subject":  "{{dealName}} moved",
		"template": "<p>{{dealName}} is now in {{dealStage}}</p>",
	}, mailer)
	require.NoError(t, err)

	result, err := action.Execute(context.Background(), protocol.ExecutionContext{Deal: deal}, testLogger())
	require.NoError(t, err)

	assert.Equal(t, "rep@example.com", result["recipient"])
	assert.Equal(t, "Acme renewal moved", sent.Subject)
	assert.Equal(t, "<p>Acme renewal is now in negotiation</p>", sent.HTML)
	mailer.AssertExpectations(t)
}

func TestAction_Execute_ConfigVariablesWin(t *testing.T) {
	mailer := &mocks.MockMailer{}

	var sent protocol.Email

	mailer.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(1).(protocol.Email)
	}).Return(nil)

	deal := &models.Deal{ID: "deal-1", Fields: map[string]any{"name": "Acme renewal"}}

	action, err := NewAction(map[string]any{
		"to":       "rep@example.com",
		"template": "{{dealName}} / {{owner}}",
		"variables": map[string]any{
			"dealName": "Override",
			"owner":    "sam",
		},
	}, mailer)
	require.NoError(t, err)

	_, err = action.Execute(context.Background(), protocol.ExecutionContext{Deal: deal}, testLogger())
	require.NoError(t, err)

	assert.Equal(t, "Override / sam", sent.HTML)
}

func TestAction_Execute_MailerError(t *testing.T) {
	mailer := &mocks.MockMailer{}
	mailer.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	action, err := NewAction(map[string]any{"to": "rep@example.com"}, mailer)
	require.NoError(t, err)

	_, err = action.Execute(context.Background(), protocol.ExecutionContext{Deal: &models.Deal{ID: "d"}}, testLogger())
	require.Error(t, err)
}
