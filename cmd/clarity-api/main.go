package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/dealclarity/clarity/pkg/cmd"
	"github.com/dealclarity/clarity/pkg/log"
	"github.com/dealclarity/clarity/pkg/registry"
)

const defaultPort = 9080

func main() {
	logger := log.WithModule("api")

	command := &cli.Command{
		Name:                  "clarity-api",
		Usage:                 "Manage deals and workflow automations",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Database connection URL for persistence",
				Required: true,
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus type (kafka, gochannel)",
				Value:   "kafka",
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
			},
			&cli.StringFlag{
				Name:    "redis-url",
				Usage:   "Redis URL for user notifications (noop notifier when empty)",
				Sources: cli.EnvVars("REDIS_URL"),
			},
			&cli.StringFlag{
				Name:    "mail-api-url",
				Usage:   "Mail delivery API endpoint (noop mailer when empty)",
				Sources: cli.EnvVars("MAIL_API_URL"),
			},
			&cli.StringFlag{
				Name:    "mail-api-key",
				Usage:   "Mail delivery API key",
				Sources: cli.EnvVars("MAIL_API_KEY"),
			},
			&cli.StringFlag{
				Name:    "mail-from",
				Usage:   "Sender address for workflow emails",
				Value:   "noreply@clarity.dev",
				Sources: cli.EnvVars("MAIL_FROM"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger.InfoContext(ctx, "Initializing Clarity API")

			persistence := cmd.NewPersistence(ctx, logger, command.String("database-url"))

			defer func() {
				if err := persistence.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			eventBus := cmd.NewEventBus(command.String("event-bus"), "api", logger)
			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			mailer := cmd.NewMailer(
				command.String("mail-api-url"),
				command.String("mail-api-key"),
				command.String("mail-from"),
				logger,
			)
			notifier := cmd.NewNotifier(command.String("redis-url"), logger)

			reg := registry.NewDefaultRegistry(logger, persistence, mailer, notifier)

			api := NewAPI(logger, persistence, reg, eventBus)

			if err := api.Start(command.Int("port")); err != nil {
				logger.ErrorContext(ctx, "Failed to start API server", "error", err)
			}

			return nil
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}
