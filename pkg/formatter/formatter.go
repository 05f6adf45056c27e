package formatter

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Number renders n with the thousands separators of the given locale.
// Example: Number(language.English, 1234567) -> "1,234,567". The locale is
// an explicit parameter on purpose; nothing here reads process-global
// locale state.
func Number(tag language.Tag, n int) string {
	p := message.NewPrinter(tag)
	return p.Sprint(number.Decimal(n))
}

// ParseLocale resolves a BCP 47 locale string, falling back to English for
// empty or unparseable input.
func ParseLocale(raw string) language.Tag {
	if raw == "" {
		return language.English
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return language.English
	}
	return tag
}

// SafeFilename squashes s down to its alphanumeric characters so it can be
// used as a file name regardless of what the source URL contained.
func SafeFilename(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
