package api

import (
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/wellnest/internal/db"
	"github.com/terraincognita07/wellnest/internal/i18n"
	"github.com/terraincognita07/wellnest/internal/services"
	"gorm.io/gorm"
)

const (
	authCookieName  = "wellnest_auth"
	contextUserKey  = "user"
	authTokenTTL    = 30 * 24 * time.Hour
	loginBurst      = 5
	loginRefillRate = time.Minute
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	i18n         *i18n.Manager
	log          *logrus.Entry
	notifier     services.Notifier
	loginLimiter *attemptLimiter
	now          func() time.Time

	repositories     *db.Repositories
	authService      *services.AuthService
	cycleService     *services.CycleService
	nutritionService *services.NutritionService
	routineService   *services.RoutineService
}

func NewHandler(database *gorm.DB, secretKey string, location *time.Location, i18nManager *i18n.Manager, cookieSecure bool) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if strings.TrimSpace(secretKey) == "" {
		return nil, errors.New("secret key is required")
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if location == nil {
		location = time.UTC
	}

	handler := &Handler{
		db:           database,
		secretKey:    []byte(secretKey),
		location:     location,
		cookieSecure: cookieSecure,
		i18n:         i18nManager,
		log:          logrus.NewEntry(logrus.StandardLogger()),
		loginLimiter: newAttemptLimiter(loginRefillRate, loginBurst),
		now:          time.Now,
	}
	return handler.withDependencies(database), nil
}

// WithLogger replaces the entry used for request-independent logs.
func (handler *Handler) WithLogger(log *logrus.Entry) *Handler {
	if log != nil {
		handler.log = log
		handler.cycleService = services.NewCycleService(handler.repositories.CycleSettings, handler.i18n, handler.location, log.WithField("component", "cycle"))
	}
	return handler
}

// WithNotifier enables the notification test endpoint.
func (handler *Handler) WithNotifier(notifier services.Notifier) *Handler {
	handler.notifier = notifier
	return handler
}

func (handler *Handler) today() time.Time {
	return services.StorageDay(handler.now(), handler.location)
}
