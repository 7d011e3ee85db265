package domain

import (
	"bytes"
	"encoding/json"
)

// Supported site languages. English is the reference language and the
// fallback for every other one.
const (
	LangEN = "en"
	LangRU = "ru"
	LangFR = "fr"
	LangES = "es"
)

// Languages lists the site languages in display order.
var Languages = []string{LangEN, LangRU, LangFR, LangES}

// LocalizedText holds one string per site language.
// All four keys are always materialized; a missing translation is "".
type LocalizedText struct {
	En string `json:"en"`
	Ru string `json:"ru"`
	Fr string `json:"fr"`
	Es string `json:"es"`
}

// UnmarshalJSON accepts the object form, a bare string (stored as En) and null.
func (t *LocalizedText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*t = LocalizedText{}
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		return json.Unmarshal(b, &t.En)
	}

	type plain LocalizedText
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*t = LocalizedText(p)
	return nil
}

// In returns the text for lang, falling back to English when the
// translation is missing or the language is unknown.
func (t LocalizedText) In(lang string) string {
	var s string
	switch lang {
	case LangRU:
		s = t.Ru
	case LangFR:
		s = t.Fr
	case LangES:
		s = t.Es
	}
	if s == "" {
		return t.En
	}
	return s
}

// IsZero reports whether no language has any text.
func (t LocalizedText) IsZero() bool {
	return t == LocalizedText{}
}
