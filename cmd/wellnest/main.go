package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/wellnest/internal/api"
	"github.com/terraincognita07/wellnest/internal/cli"
	"github.com/terraincognita07/wellnest/internal/config"
	"github.com/terraincognita07/wellnest/internal/db"
	"github.com/terraincognita07/wellnest/internal/i18n"
	"github.com/terraincognita07/wellnest/internal/logging"
	"github.com/terraincognita07/wellnest/internal/notify"
	"github.com/terraincognita07/wellnest/internal/scheduler"
	"github.com/terraincognita07/wellnest/internal/services"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "wellnest",
		Short:         "Cycle, nutrition and daily routine tracker",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cmd.ErrOrStderr())
		},
	}
	root.AddCommand(newServeCommand(), newMigrateCommand(), newResetPasswordCommand())
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the reminder scheduler",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cmd.ErrOrStderr())
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openEnvironment(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer env.close()
			env.log.WithField("db_path", env.cfg.DBPath).Info("database is up to date")
			return nil
		},
	}
}

func newResetPasswordCommand() *cobra.Command {
	var email string
	var generate bool

	command := &cobra.Command{
		Use:   "reset-password",
		Short: "Replace the password of an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openEnvironment(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer env.close()

			var source cli.PasswordSource
			if !generate {
				source = cli.TerminalPasswordSource(os.Stdin, cmd.OutOrStdout())
			}
			return cli.ResetPassword(db.NewUserRepository(env.database), email, source, cmd.OutOrStdout())
		},
	}
	command.Flags().StringVar(&email, "email", "", "email of the account to reset")
	command.Flags().BoolVar(&generate, "generate", false, "generate a temporary password instead of prompting")
	_ = command.MarkFlagRequired("email")
	return command
}

type environment struct {
	cfg      config.Config
	log      *logrus.Logger
	database *gorm.DB
}

func openEnvironment(logOutput io.Writer) (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logging.New(cfg.LogLevel, cfg.Environment, logOutput)
	if cfg.SecretKeyGenerated {
		log.Warn("SECRET_KEY is not set; using a random key, sessions end on restart")
	}

	database, err := db.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	return &environment{cfg: cfg, log: log, database: database}, nil
}

func (env *environment) close() {
	sqlDB, err := env.database.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		env.log.WithError(err).Warn("close database")
	}
}

func runServe(parent context.Context, logOutput io.Writer) error {
	env, err := openEnvironment(logOutput)
	if err != nil {
		return err
	}
	defer env.close()
	cfg, log := env.cfg, env.log

	i18nManager, err := i18n.NewEmbeddedManager(cfg.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}
	notifier, err := buildNotifier(cfg, log)
	if err != nil {
		return err
	}

	handler, err := api.NewHandler(env.database, cfg.SecretKey, cfg.Location, i18nManager, cfg.CookieSecure)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	handler.WithLogger(log.WithField("component", "api")).WithNotifier(notifier)
	app := api.NewApp(handler)

	repositories := db.NewRepositories(env.database)
	reminders := services.NewReminderService(
		repositories.Users,
		repositories.CycleSettings,
		notifier,
		i18nManager,
		cfg.Location,
		log.WithField("component", "reminders"),
	)
	reminderScheduler := scheduler.NewReminderScheduler(reminders, cfg.ReminderCron, cfg.Location, log.WithField("component", "scheduler"))

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return reminderScheduler.Run(groupCtx)
	})
	group.Go(func() error {
		log.WithFields(logrus.Fields{
			"port":    cfg.Port,
			"db_path": cfg.DBPath,
			"tz":      cfg.Location.String(),
		}).Info("wellnest listening")
		if err := app.Listen(":" + cfg.Port); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("wellnest stopped with error")
		return err
	}
	log.Info("wellnest stopped")
	return nil
}

// buildNotifier sends reminders through Telegram when a bot token is
// configured and logs them otherwise.
func buildNotifier(cfg config.Config, log *logrus.Logger) (services.Notifier, error) {
	if cfg.TelegramToken == "" {
		log.Info("TELEGRAM_TOKEN is not set; reminders are written to the log")
		return notify.NewLogNotifier(log.WithField("component", "notify")), nil
	}
	notifier, err := notify.NewTelegramNotifier(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("telegram init failed: %w", err)
	}
	return notifier, nil
}
