package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/dealclarity/clarity/pkg/cmd"
	"github.com/dealclarity/clarity/pkg/log"
	"github.com/dealclarity/clarity/pkg/registry"
	"github.com/dealclarity/clarity/pkg/runner"
)

func main() {
	command := &cli.Command{
		Name:                  "clarity-scheduler",
		Usage:                 "Run workflows with time-based triggers",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Database connection URL for persistence",
				Required: true,
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "cron-spec",
				Usage:   "Cron spec for the scheduled trigger scan",
				Value:   "0 7 * * *",
				Sources: cli.EnvVars("SCHEDULER_CRON_SPEC"),
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

			logger := log.WithModule("clarity-scheduler")

			logger.InfoContext(ctx, "Initializing Clarity Scheduler")

			persistence := cmd.NewPersistence(ctx, logger, command.String("database-url"))
			defer func() {
				if err := persistence.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
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

			scheduler := NewScheduler(persistence, workflowRunner, logger)

			if err := scheduler.Start(ctx, command.String("cron-spec")); err != nil {
				logger.ErrorContext(ctx, "Failed to start scheduler", "error", err)

				return err
			}

			return nil
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}
