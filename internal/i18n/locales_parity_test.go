package i18n

import (
	"sort"
	"strings"
	"testing"
)

// Keys looked up by the reminder service, the calendar feed and the phase endpoint.
var requiredKeys = []string{
	"phase.menstrual",
	"phase.follicular",
	"phase.ovulatory",
	"phase.luteal",
	"reminder.period.today",
	"reminder.period.tomorrow",
	"reminder.period.days",
	"reminder.test",
	"calendar.name",
	"calendar.event.period",
	"calendar.event.fertile",
	"calendar.event.ovulation",
}

func TestEmbeddedLocalesShareKeys(t *testing.T) {
	manager, err := NewEmbeddedManager(LangEN)
	if err != nil {
		t.Fatalf("load embedded locales: %v", err)
	}

	reference := manager.locales[LangEN]
	for _, language := range manager.SupportedLanguages() {
		messages := manager.locales[language]
		if missing := missingKeys(reference, messages); len(missing) > 0 {
			t.Errorf("keys missing in %s locale: %s", language, strings.Join(missing, ", "))
		}
		if extra := missingKeys(messages, reference); len(extra) > 0 {
			t.Errorf("keys only in %s locale: %s", language, strings.Join(extra, ", "))
		}
	}
}

func TestEmbeddedLocalesCoverRequiredKeys(t *testing.T) {
	manager, err := NewEmbeddedManager(LangEN)
	if err != nil {
		t.Fatalf("load embedded locales: %v", err)
	}

	for _, language := range manager.SupportedLanguages() {
		for _, key := range requiredKeys {
			if strings.TrimSpace(manager.locales[language][key]) == "" {
				t.Errorf("%s locale has no text for %q", language, key)
			}
		}
	}
}

func missingKeys(source map[string]string, target map[string]string) []string {
	missing := make([]string, 0)
	for key := range source {
		if _, ok := target[key]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}
