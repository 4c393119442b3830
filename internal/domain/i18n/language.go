package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is one of the supported UI languages.
type Language string

const (
	English Language = "en"
	Malay   Language = "ms"
	Chinese Language = "zh"
)

// Fallback is used whenever a language has no entry for a key.
const Fallback = English

// Languages lists the supported languages in selector order.
var Languages = []Language{English, Malay, Chinese}

// ParseLanguage accepts a language code such as "zh" or "ZH".
func ParseLanguage(raw string) (Language, bool) {
	switch Language(strings.ToLower(strings.TrimSpace(raw))) {
	case English:
		return English, true
	case Malay:
		return Malay, true
	case Chinese:
		return Chinese, true
	default:
		return "", false
	}
}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	_, ok := ParseLanguage(string(l))
	return ok
}

// Detect maps a host locale (e.g. "ms-MY", "zh-CN", "en-US") to a language.
// Malay wins over Chinese when both markers appear, then English.
func Detect(locale string) Language {
	lower := strings.ToLower(locale)
	switch {
	case strings.Contains(lower, "ms") || strings.Contains(lower, "my"):
		return Malay
	case strings.Contains(lower, "zh") || strings.Contains(lower, "cn"):
		return Chinese
	default:
		return English
	}
}

// DetectAcceptLanguage picks the language for the highest priority tag of an
// Accept-Language header. Malformed or empty headers resolve to English.
func DetectAcceptLanguage(header string) Language {
	if strings.TrimSpace(header) == "" {
		return English
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return English
	}
	return Detect(tags[0].String())
}
