package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/wellnest/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUnsupportedLanguage    = errors.New("unsupported language")
	ErrReminderDaysOutOfRange = errors.New("reminder days out of range")
	ErrTelegramChatRequired   = errors.New("telegram chat id required for reminders")
)

const maxReminderDaysBefore = 7

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
	UpdateByID(userID uint, updates map[string]any) error
}

type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	Language    string
}

type NotificationSettingsInput struct {
	TelegramChatID     *int64
	RemindersEnabled   bool
	ReminderDaysBefore int
	Language           string
}

type AuthService struct {
	users           AuthUserRepository
	languages       map[string]struct{}
	defaultLanguage string
}

func NewAuthService(users AuthUserRepository, defaultLanguage string, supportedLanguages []string) *AuthService {
	languages := make(map[string]struct{}, len(supportedLanguages))
	for _, language := range supportedLanguages {
		languages[language] = struct{}{}
	}
	return &AuthService{users: users, languages: languages, defaultLanguage: defaultLanguage}
}

func (service *AuthService) Register(input RegisterInput, now time.Time) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(input.Email, input.Password)
	if err != nil {
		return models.User{}, err
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}
	displayName, err := NormalizeDisplayName(input.DisplayName)
	if err != nil {
		return models.User{}, err
	}
	language, err := service.resolveLanguage(input.Language)
	if err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Email:              email,
		PasswordHash:       string(hash),
		DisplayName:        displayName,
		Language:           language,
		ReminderDaysBefore: models.DefaultReminderDaysBefore,
		CreatedAt:          now.UTC(),
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (service *AuthService) Authenticate(emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, err
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	if err != nil {
		return models.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

func (service *AuthService) UpdateNotificationSettings(userID uint, input NotificationSettingsInput) (models.User, error) {
	if input.ReminderDaysBefore < 0 || input.ReminderDaysBefore > maxReminderDaysBefore {
		return models.User{}, ErrReminderDaysOutOfRange
	}
	if input.RemindersEnabled && input.TelegramChatID == nil {
		return models.User{}, ErrTelegramChatRequired
	}

	updates := map[string]any{
		"telegram_chat_id":     input.TelegramChatID,
		"reminders_enabled":    input.RemindersEnabled,
		"reminder_days_before": input.ReminderDaysBefore,
	}
	if strings.TrimSpace(input.Language) != "" {
		language, err := service.resolveLanguage(input.Language)
		if err != nil {
			return models.User{}, err
		}
		updates["language"] = language
	}

	if _, err := service.FindByID(userID); err != nil {
		return models.User{}, err
	}
	if err := service.users.UpdateByID(userID, updates); err != nil {
		return models.User{}, err
	}
	return service.FindByID(userID)
}

func (service *AuthService) resolveLanguage(raw string) (string, error) {
	language := strings.ToLower(strings.TrimSpace(raw))
	if language == "" {
		return service.defaultLanguage, nil
	}
	if _, ok := service.languages[language]; !ok {
		return "", ErrUnsupportedLanguage
	}
	return language, nil
}
