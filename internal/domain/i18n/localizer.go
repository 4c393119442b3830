package i18n

// Localizer resolves UI strings for a language with an English fallback.
type Localizer interface {
	Text(lang Language, key string) string
	Dictionary(lang Language) map[string]string
}

type catalog struct {
	entries map[Language]map[string]string
}

// NewLocalizer returns the built-in en/ms/zh catalog.
func NewLocalizer() Localizer {
	return &catalog{entries: dictionaries}
}

// Text looks the key up in lang first, then in English. Unknown keys are
// returned verbatim so a missing translation never renders as blank.
func (c *catalog) Text(lang Language, key string) string {
	if value, ok := c.entries[lang][key]; ok {
		return value
	}
	if value, ok := c.entries[Fallback][key]; ok {
		return value
	}
	return key
}

// Dictionary returns a fresh copy of the English dictionary overlaid with lang.
func (c *catalog) Dictionary(lang Language) map[string]string {
	base := c.entries[Fallback]
	out := make(map[string]string, len(base))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range c.entries[lang] {
		out[key] = value
	}
	return out
}
