// Package i18n picks the site language of a request and holds the
// translated messages returned by the API.
package i18n

import (
	"golang.org/x/text/language"

	"github.com/MrSnakeDoc/pitch/internal/domain"
)

// Default is used when nothing in the request matches a site language.
const Default = domain.LangEN

var matcher = language.NewMatcher([]language.Tag{
	language.English, // first: fallback of the matcher
	language.Russian,
	language.French,
	language.Spanish,
})

// Negotiate returns the site language for an explicit choice (ex: ?lang=fr)
// and an Accept-Language header. The explicit choice wins when it matches.
func Negotiate(explicit, acceptLanguage string) string {
	tag, _ := language.MatchStrings(matcher, explicit, acceptLanguage)
	base, conf := tag.Base()
	if conf == language.No {
		return Default
	}
	switch lang := base.String(); lang {
	case domain.LangEN, domain.LangRU, domain.LangFR, domain.LangES:
		return lang
	default:
		return Default
	}
}

// Translations maps a message key to its text in one language.
type Translations map[string]string

// T returns the translations of lang, English when lang is unknown.
func T(lang string) Translations {
	if t, ok := catalog[lang]; ok {
		return t
	}
	return catalog[Default]
}

// Message returns the text of key in lang, falling back to English and then to the key.
func Message(lang, key string) string {
	if s, ok := T(lang)[key]; ok {
		return s
	}
	if s, ok := catalog[Default][key]; ok {
		return s
	}
	return key
}
