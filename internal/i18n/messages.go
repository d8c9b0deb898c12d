package i18n

import (
	"fmt"

	"golang.org/x/text/language"
)

// Message keys consumed by the controllers.
const KeyPageNotFound = "controller.page_not_found"

var catalogs = map[language.Tag]map[string]string{
	language.English: {
		KeyPageNotFound: "Page %d not found, %d page(s) available",
	},
	language.French: {
		KeyPageNotFound: "Page %d introuvable, %d page(s) disponible(s)",
	},
	language.Russian: {
		KeyPageNotFound: "Страница %d не найдена, доступно страниц: %d",
	},
}

// Source renders localized messages. Locale resolution goes through a
// language matcher so region variants (en-US, fr-CA) fall back to their
// base language, and anything unknown falls back to English.
type Source struct {
	matcher language.Matcher
	tags    []language.Tag
}

func NewSource() *Source {
	tags := []language.Tag{language.English, language.French, language.Russian}
	return &Source{
		matcher: language.NewMatcher(tags),
		tags:    tags,
	}
}

// Lookup formats the message registered under key for the given locale.
// Unknown keys come back as the key itself, so a missing translation is
// visible instead of silent.
func (s *Source) Lookup(locale, key string, args ...any) string {
	_, idx := language.MatchStrings(s.matcher, locale)
	catalog := catalogs[s.tags[idx]]

	format, ok := catalog[key]
	if !ok {
		return key
	}
	return fmt.Sprintf(format, args...)
}
