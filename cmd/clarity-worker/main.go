package main

import (
	"context"
	"os"

	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"

	"github.com/dealclarity/clarity/pkg/cmd"
	"github.com/dealclarity/clarity/pkg/log"
	"github.com/dealclarity/clarity/pkg/otelhelper"
	"github.com/dealclarity/clarity/pkg/registry"
	"github.com/dealclarity/clarity/pkg/runner"
)

func main() {
	command := &cli.Command{
		Name:                  "clarity-worker",
		Usage:                 "Run workflows in response to deal events",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "worker-id",
				Aliases: []string{"id"},
				Usage:   "Custom worker ID (auto-generated if not provided)",
				Value:   "",
				Sources: cli.EnvVars("WORKER_ID"),
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

			workerID := command.String("worker-id")
			if workerID == "" {
				workerID = "worker-" + uuid.New().String()[:8]
			}

			logger := log.WithModule("clarity-worker").With("worker_id", workerID)

			logger.InfoContext(ctx, "Initializing Clarity Worker")

			persistence := cmd.NewPersistence(ctx, logger, command.String("database-url"))
			defer func() {
				if err := persistence.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			eventBus := cmd.NewEventBus(command.String("event-bus"), "worker", logger)
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
			workflowRunner := runner.NewRunner(logger, persistence, reg)

			tracer, err := otelhelper.NewTracer(ctx, "clarity-worker")
			if err != nil {
				logger.ErrorContext(ctx, "Failed to initialize tracer", "error", err)

				return err
			}

			worker := NewWorker(workerID, workflowRunner, eventBus, tracer, logger)

			if err := worker.Start(ctx); err != nil {
				logger.ErrorContext(ctx, "Failed to start worker", "error", err)
			}

			return nil
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}
