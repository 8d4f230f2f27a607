package helpers

import (
	"net/url"
	"strings"
	"unicode"
)

// WhatsAppLink builds a wa.me chat link. Local numbers starting with 0 are
// rewritten to the +62 country code.
func WhatsAppLink(number, text string) (string, bool) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, number)
	if strings.HasPrefix(digits, "0") {
		digits = "62" + strings.TrimPrefix(digits, "0")
	}
	if len(digits) < 8 {
		return "", false
	}

	link := "https://wa.me/" + digits
	if text != "" {
		link += "?text=" + url.QueryEscape(text)
	}
	return link, true
}
