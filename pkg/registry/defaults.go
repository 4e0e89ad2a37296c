package registry

import (
	"log/slog"

	"github.com/dealclarity/clarity/pkg/actions/add_tag"
	"github.com/dealclarity/clarity/pkg/actions/change_stage"
	"github.com/dealclarity/clarity/pkg/actions/create_task"
	"github.com/dealclarity/clarity/pkg/actions/notify_user"
	"github.com/dealclarity/clarity/pkg/actions/send_email"
	"github.com/dealclarity/clarity/pkg/actions/slack_notification"
	"github.com/dealclarity/clarity/pkg/actions/update_field"
	"github.com/dealclarity/clarity/pkg/actions/webhook"
	"github.com/dealclarity/clarity/pkg/persistence"
	"github.com/dealclarity/clarity/pkg/protocol"
)

// NewDefaultRegistry builds a registry with every built-in action wired to
// its collaborators.
func NewDefaultRegistry(
	logger *slog.Logger,
	store persistence.Persistence,
	mailer protocol.Mailer,
	notifier protocol.Notifier,
) *Registry {
	r := NewRegistry(logger)

	r.RegisterAction(send_email.NewFactory(mailer))
	r.RegisterAction(create_task.NewFactory(store.Tasks()))
	r.RegisterAction(update_field.NewFactory(store.Deals()))
	r.RegisterAction(change_stage.NewFactory(store.Deals()))
	r.RegisterAction(add_tag.NewFactory(store.Deals()))
	r.RegisterAction(notify_user.NewFactory(notifier))
	r.RegisterAction(webhook.NewFactory())
	r.RegisterAction(slack_notification.NewFactory())

	return r
}
