package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/wellnest/internal/cycle"
	"github.com/terraincognita07/wellnest/internal/models"
)

var ErrCycleCountOutOfRange = errors.New("cycle count out of range")

const (
	DefaultFeedCycles   = 6
	MaxFeedCycles       = 12
	upcomingCycleCount  = 3
	calendarProductID   = "-//wellnest//Cycle Calendar//EN"
	calendarEventDomain = "wellnest"
)

var calendarNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://wellnest.app/cycle-calendar"))

type CycleSettingsStore interface {
	FindByUser(userID uint) (models.CycleSettings, bool, error)
	Save(settings *models.CycleSettings) error
	DeleteByUser(userID uint) (bool, error)
}

type Translator interface {
	Translate(language string, key string) string
	Translatef(language string, key string, args ...any) string
}

type CyclePredictions struct {
	cycle.PredictedDates
	Upcoming []cycle.PredictedCycle `json:"upcoming"`
}

type CycleService struct {
	settings   CycleSettingsStore
	translator Translator
	location   *time.Location
	log        *logrus.Entry
}

func NewCycleService(settings CycleSettingsStore, translator Translator, location *time.Location, log *logrus.Entry) *CycleService {
	if location == nil {
		location = time.UTC
	}
	return &CycleService{settings: settings, translator: translator, location: location, log: log}
}

func (service *CycleService) Settings(userID uint) (models.CycleSettings, error) {
	settings, found, err := service.settings.FindByUser(userID)
	if err != nil {
		return models.CycleSettings{}, err
	}
	if !found {
		return models.CycleSettings{}, ErrCycleSettingsNotFound
	}
	return settings, nil
}

func (service *CycleService) SaveSettings(userID uint, input CycleSettingsInput, now time.Time) (models.CycleSettings, error) {
	update, err := ValidateCycleSettings(input, now, service.location)
	if err != nil {
		return models.CycleSettings{}, err
	}

	settings, found, err := service.settings.FindByUser(userID)
	if err != nil {
		return models.CycleSettings{}, err
	}
	if !found {
		settings = models.CycleSettings{UserID: userID}
	}
	if !settings.StartDate.Equal(update.StartDate) || settings.CycleLength != update.CycleLength {
		settings.LastReminderFor = nil
	}
	settings.StartDate = update.StartDate
	settings.CycleLength = update.CycleLength
	settings.MenstrualLength = update.MenstrualLength

	if err := service.settings.Save(&settings); err != nil {
		return models.CycleSettings{}, fmt.Errorf("save cycle settings: %w", err)
	}
	return settings, nil
}

func (service *CycleService) DeleteSettings(userID uint) error {
	deleted, err := service.settings.DeleteByUser(userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCycleSettingsNotFound
	}
	return nil
}

func (service *CycleService) Phase(userID uint, day time.Time) (mo.Option[cycle.PhaseInfo], error) {
	settings, err := service.Settings(userID)
	if err != nil {
		return mo.None[cycle.PhaseInfo](), err
	}
	info, err := cycle.ResolvePhase(CycleConfig(settings), day)
	if err != nil {
		service.warnInvalid(userID, settings, err)
		return mo.None[cycle.PhaseInfo](), err
	}
	return info, nil
}

func (service *CycleService) Predictions(userID uint, today time.Time) (CyclePredictions, error) {
	settings, err := service.Settings(userID)
	if err != nil {
		return CyclePredictions{}, err
	}
	cfg := CycleConfig(settings)

	dates, err := cycle.PredictDates(cfg)
	if err != nil {
		service.warnInvalid(userID, settings, err)
		return CyclePredictions{}, err
	}
	upcoming, err := cycle.UpcomingCycles(cfg, today, upcomingCycleCount)
	if err != nil {
		return CyclePredictions{}, err
	}
	return CyclePredictions{PredictedDates: dates, Upcoming: upcoming}, nil
}

func (service *CycleService) MonthOverlay(userID uint, month time.Time, today time.Time) ([]cycle.OverlayDay, error) {
	settings, err := service.Settings(userID)
	if err != nil {
		return nil, err
	}
	days, err := cycle.BuildMonthOverlay(CycleConfig(settings), month, today)
	if err != nil {
		service.warnInvalid(userID, settings, err)
		return nil, err
	}
	return days, nil
}

// Event UIDs depend only on user, kind and date so subscribers update in place.
func (service *CycleService) CalendarFeed(userID uint, language string, today time.Time, cycles int, stamp time.Time) (*ical.Calendar, error) {
	if cycles < 1 || cycles > MaxFeedCycles {
		return nil, ErrCycleCountOutOfRange
	}
	settings, err := service.Settings(userID)
	if err != nil {
		return nil, err
	}
	upcoming, err := cycle.UpcomingCycles(CycleConfig(settings), today, cycles)
	if err != nil {
		service.warnInvalid(userID, settings, err)
		return nil, err
	}

	calendar := ical.NewCalendar()
	calendar.Props.SetText(ical.PropProductID, calendarProductID)
	calendar.Props.SetText(ical.PropVersion, "2.0")
	calendar.Props.SetText(ical.PropName, service.text(language, "calendar.name", "Cycle predictions"))

	periodTitle := service.text(language, "calendar.event.period", "Predicted period")
	fertileTitle := service.text(language, "calendar.event.fertile", "Fertile window")
	ovulationTitle := service.text(language, "calendar.event.ovulation", "Ovulation")
	for _, predicted := range upcoming {
		calendar.Children = append(calendar.Children,
			service.allDayEvent(userID, "period", periodTitle, predicted.Start, predicted.MenstrualEnd, stamp),
			service.allDayEvent(userID, "fertile", fertileTitle, predicted.FertileWindowStart, predicted.FertileWindowEnd, stamp),
			service.allDayEvent(userID, "ovulation", ovulationTitle, predicted.Ovulation, predicted.Ovulation, stamp),
		)
	}
	return calendar, nil
}

func (service *CycleService) text(language string, key string, fallback string) string {
	if service.translator == nil {
		return fallback
	}
	return service.translator.Translate(language, key)
}

func (service *CycleService) allDayEvent(userID uint, kind string, summary string, first time.Time, last time.Time, stamp time.Time) *ical.Component {
	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, CalendarEventUID(userID, kind, first))
	event.Props.SetText(ical.PropSummary, summary)
	event.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	event.Props.SetDate(ical.PropDateTimeStart, first)
	event.Props.SetDate(ical.PropDateTimeEnd, last.AddDate(0, 0, 1))
	event.Props.SetText(ical.PropTransparency, "TRANSPARENT")
	return event.Component
}

func CalendarEventUID(userID uint, kind string, day time.Time) string {
	name := fmt.Sprintf("%d/%s/%s", userID, kind, FormatDay(day))
	return uuid.NewSHA1(calendarNamespace, []byte(name)).String() + "@" + calendarEventDomain
}

func (service *CycleService) warnInvalid(userID uint, settings models.CycleSettings, err error) {
	if !errors.Is(err, cycle.ErrInvalidConfig) || service.log == nil {
		return
	}
	service.log.WithFields(logrus.Fields{
		"user_id":          userID,
		"cycle_length":     settings.CycleLength,
		"menstrual_length": settings.MenstrualLength,
	}).WithError(err).Warn("cycle configuration cannot be resolved")
}

func CycleConfig(settings models.CycleSettings) cycle.Config {
	return cycle.Config{
		LastPeriodStart: settings.StartDate,
		CycleLength:     settings.CycleLength,
		MenstrualLength: settings.MenstrualLength,
	}
}
