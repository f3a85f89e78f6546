package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/wellnest/internal/cycle"
	"github.com/terraincognita07/wellnest/internal/models"
)

type ReminderUserStore interface {
	ListReminderRecipients() ([]models.User, error)
}

type ReminderSettingsStore interface {
	FindByUser(userID uint) (models.CycleSettings, bool, error)
	MarkReminded(userID uint, periodStart time.Time) error
}

type Notifier interface {
	Send(ctx context.Context, chatID int64, text string) error
}

type ReminderRunSummary struct {
	Checked int
	Sent    int
	Skipped int
	Failed  int
}

type ReminderService struct {
	users      ReminderUserStore
	settings   ReminderSettingsStore
	notifier   Notifier
	translator Translator
	location   *time.Location
	log        *logrus.Entry
}

func NewReminderService(
	users ReminderUserStore,
	settings ReminderSettingsStore,
	notifier Notifier,
	translator Translator,
	location *time.Location,
	log *logrus.Entry,
) *ReminderService {
	if location == nil {
		location = time.UTC
	}
	return &ReminderService{
		users:      users,
		settings:   settings,
		notifier:   notifier,
		translator: translator,
		location:   location,
		log:        log,
	}
}

// SendDueReminders announces each predicted period start at most once. Only
// context cancellation ends a run early.
func (service *ReminderService) SendDueReminders(ctx context.Context, now time.Time) (ReminderRunSummary, error) {
	summary := ReminderRunSummary{}
	users, err := service.users.ListReminderRecipients()
	if err != nil {
		return summary, fmt.Errorf("list reminder recipients: %w", err)
	}

	today := StorageDay(now, service.location)
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Checked++

		sent, err := service.remindUser(ctx, user, today)
		entry := service.log.WithField("user_id", user.ID)
		switch {
		case err != nil:
			summary.Failed++
			entry.WithError(err).Warn("reminder failed")
		case sent:
			summary.Sent++
			entry.Debug("reminder sent")
		default:
			summary.Skipped++
		}
	}

	service.log.WithFields(logrus.Fields{
		"checked": summary.Checked,
		"sent":    summary.Sent,
		"skipped": summary.Skipped,
		"failed":  summary.Failed,
	}).Info("reminder run finished")
	return summary, nil
}

func (service *ReminderService) remindUser(ctx context.Context, user models.User, today time.Time) (bool, error) {
	if !user.RemindersEnabled || user.TelegramChatID == nil {
		return false, nil
	}
	settings, found, err := service.settings.FindByUser(user.ID)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}

	upcoming, err := cycle.UpcomingPeriodStart(CycleConfig(settings), today)
	if err != nil {
		return false, err
	}
	daysUntil := cycle.DaysBetween(today, upcoming)
	if daysUntil != user.ReminderDaysBefore {
		return false, nil
	}
	if settings.LastReminderFor != nil && cycle.DaysBetween(*settings.LastReminderFor, upcoming) == 0 {
		return false, nil
	}

	text := service.reminderText(user.Language, daysUntil, upcoming)
	if err := service.notifier.Send(ctx, *user.TelegramChatID, text); err != nil {
		return false, fmt.Errorf("send reminder: %w", err)
	}
	// The message is out; a failed mark only risks a repeat on the next run.
	if err := service.settings.MarkReminded(user.ID, upcoming); err != nil {
		service.log.WithError(err).WithField("user_id", user.ID).Error("mark reminder sent")
	}
	return true, nil
}

func (service *ReminderService) reminderText(language string, daysUntil int, periodStart time.Time) string {
	day := FormatDay(periodStart)
	switch daysUntil {
	case 0:
		return service.translator.Translatef(language, "reminder.period.today", day)
	case 1:
		return service.translator.Translatef(language, "reminder.period.tomorrow", day)
	default:
		return service.translator.Translatef(language, "reminder.period.days", daysUntil, day)
	}
}
