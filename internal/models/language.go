package models

import "fmt"

// Language is the closed set of interface languages a user can choose from.
type Language string

const (
	LanguageKO Language = "KO"
	LanguageEN Language = "EN"
	LanguageJA Language = "JA"
)

var languageDisplayNames = map[Language]string{
	LanguageKO: "한국어",
	LanguageEN: "영어",
	LanguageJA: "일본어",
}

// ParseLanguage validates a language code received at the API boundary.
func ParseLanguage(code string) (Language, error) {
	lang := Language(code)
	if !lang.Valid() {
		return "", fmt.Errorf("unknown language code %q", code)
	}
	return lang, nil
}

// DisplayName returns the human-readable name shown to clients.
func (l Language) DisplayName() string {
	return languageDisplayNames[l]
}

// Valid reports whether l is one of the supported codes.
func (l Language) Valid() bool {
	_, ok := languageDisplayNames[l]
	return ok
}
