package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

//go:embed messages/*.json
var messagesFS embed.FS

// Supported locales
const (
	LocaleEnglish = "en"
	LocaleSpanish = "es"
	DefaultLocale = LocaleEnglish
)

var supportedLocales = []string{LocaleEnglish, LocaleSpanish}

// Context key for locale
type localeKey struct{}

var (
	messages     map[string]map[string]interface{}
	messagesOnce sync.Once
)

// loadMessages loads all message files from embedded filesystem
func loadMessages() {
	messagesOnce.Do(func() {
		messages = make(map[string]map[string]interface{})

		for _, locale := range supportedLocales {
			data, err := messagesFS.ReadFile("messages/" + locale + ".json")
			if err != nil {
				continue
			}

			var msg map[string]interface{}
			if err := json.Unmarshal(data, &msg); err != nil {
				continue
			}

			messages[locale] = msg
		}
	})
}

// IsSupported reports whether locale has a message catalog.
func IsSupported(locale string) bool {
	for _, l := range supportedLocales {
		if l == locale {
			return true
		}
	}
	return false
}

// Localizer handles message localization
type Localizer struct {
	locale string
}

// NewLocalizer creates a new localizer for the given locale.
// Unsupported locales fall back to English.
func NewLocalizer(locale string) *Localizer {
	loadMessages()

	locale = strings.ToLower(locale)
	if !IsSupported(locale) {
		locale = DefaultLocale
	}

	return &Localizer{locale: locale}
}

// LocalizerFromContext creates a localizer from context
func LocalizerFromContext(ctx context.Context) *Localizer {
	return NewLocalizer(GetLocaleFromContext(ctx))
}

// T translates a message key with optional parameters.
// Missing keys are returned unchanged.
func (l *Localizer) T(key string, params ...map[string]string) string {
	msg, ok := l.Lookup(key)
	if !ok {
		return key
	}
	return interpolate(msg, params...)
}

// TOr translates key or returns fallback when no catalog has it.
func (l *Localizer) TOr(key, fallback string, params ...map[string]string) string {
	msg, ok := l.Lookup(key)
	if !ok {
		msg = fallback
	}
	return interpolate(msg, params...)
}

// Lookup finds key in the localizer's catalog, then in the default catalog.
func (l *Localizer) Lookup(key string) (string, bool) {
	loadMessages()

	if msg := getMessage(key, l.locale); msg != "" {
		return msg, true
	}
	if msg := getMessage(key, DefaultLocale); msg != "" {
		return msg, true
	}
	return "", false
}

// MonthYear renders the month and year of t, e.g. "October 2024" or "octubre de 2024".
func (l *Localizer) MonthYear(t time.Time) string {
	month := l.T("months." + strconv.Itoa(int(t.Month())))
	return l.T("formats.month_year", map[string]string{
		"month": month,
		"year":  strconv.Itoa(t.Year()),
	})
}

func interpolate(msg string, params ...map[string]string) string {
	if len(params) > 0 {
		for k, v := range params[0] {
			msg = strings.ReplaceAll(msg, "{"+k+"}", v)
		}
	}
	return msg
}

// getMessage retrieves a nested message by dot-notation key
func getMessage(key string, locale string) string {
	current, ok := messages[locale]
	if !ok {
		return ""
	}

	parts := strings.Split(key, ".")
	for i, part := range parts {
		if i == len(parts)-1 {
			str, _ := current[part].(string)
			return str
		}

		nested, ok := current[part].(map[string]interface{})
		if !ok {
			return ""
		}
		current = nested
	}

	return ""
}

// GetLocale returns the current locale
func (l *Localizer) GetLocale() string {
	return l.locale
}

// WithLocale adds locale to context
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey{}, locale)
}

// GetLocaleFromContext retrieves locale from context
func GetLocaleFromContext(ctx context.Context) string {
	if locale, ok := ctx.Value(localeKey{}).(string); ok && locale != "" {
		return locale
	}
	return DefaultLocale
}

// ParseAcceptLanguage returns the supported locale with the highest quality
// in an Accept-Language header, or the default locale.
func ParseAcceptLanguage(header string) string {
	if locale, ok := MatchAcceptLanguage(header); ok {
		return locale
	}
	return DefaultLocale
}

// MatchAcceptLanguage returns the supported locale with the highest quality
// in an Accept-Language header. ok is false when none is supported.
func MatchAcceptLanguage(header string) (locale string, ok bool) {
	if header == "" {
		return "", false
	}

	type candidate struct {
		locale string
		q      float64
	}
	var candidates []candidate

	for _, part := range strings.Split(header, ",") {
		fields := strings.Split(strings.TrimSpace(part), ";")
		tag := strings.ToLower(strings.TrimSpace(fields[0]))
		if i := strings.IndexAny(tag, "-_"); i > 0 {
			tag = tag[:i]
		}
		if !IsSupported(tag) {
			continue
		}

		q := 1.0
		for _, param := range fields[1:] {
			param = strings.TrimSpace(param)
			if strings.HasPrefix(param, "q=") {
				if v, err := strconv.ParseFloat(strings.TrimPrefix(param, "q="), 64); err == nil {
					q = v
				}
			}
		}
		if q > 0 {
			candidates = append(candidates, candidate{locale: tag, q: q})
		}
	}

	if len(candidates) == 0 {
		return "", false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].q > candidates[j].q
	})
	return candidates[0].locale, true
}

// Global convenience functions

// T translates using the default locale
func T(key string, params ...map[string]string) string {
	return NewLocalizer(DefaultLocale).T(key, params...)
}

// TWithLocale translates using the specified locale
func TWithLocale(locale, key string, params ...map[string]string) string {
	return NewLocalizer(locale).T(key, params...)
}

// TFromContext translates using locale from context
func TFromContext(ctx context.Context, key string, params ...map[string]string) string {
	return LocalizerFromContext(ctx).T(key, params...)
}
