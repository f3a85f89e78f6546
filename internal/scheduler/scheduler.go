// Package scheduler runs periodic background jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/wellnest/internal/services"
)

const reminderJobTimeout = 5 * time.Minute

type ReminderSender interface {
	SendDueReminders(ctx context.Context, now time.Time) (services.ReminderRunSummary, error)
}

type ReminderScheduler struct {
	cronEngine *cron.Cron
	reminders  ReminderSender
	spec       string
	now        func() time.Time
	log        *logrus.Entry
}

func NewReminderScheduler(reminders ReminderSender, spec string, location *time.Location, log *logrus.Entry) *ReminderScheduler {
	if location == nil {
		location = time.UTC
	}
	return &ReminderScheduler{
		cronEngine: cron.New(cron.WithLocation(location)),
		reminders:  reminders,
		spec:       spec,
		now:        time.Now,
		log:        log,
	}
}

// Run registers the reminder job and blocks until ctx is done, then waits for
// a running job to finish.
func (scheduler *ReminderScheduler) Run(ctx context.Context) error {
	if _, err := scheduler.cronEngine.AddFunc(scheduler.spec, func() {
		scheduler.RunOnce(ctx)
	}); err != nil {
		return fmt.Errorf("add reminder job %q: %w", scheduler.spec, err)
	}

	scheduler.cronEngine.Start()
	scheduler.log.WithField("spec", scheduler.spec).Info("reminder scheduler started")

	<-ctx.Done()
	stopped := scheduler.cronEngine.Stop()
	<-stopped.Done()
	scheduler.log.Info("reminder scheduler stopped")
	return nil
}

func (scheduler *ReminderScheduler) RunOnce(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, reminderJobTimeout)
	defer cancel()

	if _, err := scheduler.reminders.SendDueReminders(ctx, scheduler.now()); err != nil {
		scheduler.log.WithError(err).Error("reminder job failed")
	}
}
