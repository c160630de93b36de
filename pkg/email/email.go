package email

import (
	"strings"
	"unicode"
)

// DisplayNameFromEmail derives a presentable display name from the local part
// of an email address. Used when the identity provider supplies no display
// name and for demo fallback profiles.
func DisplayNameFromEmail(addr string) string {
	localPart := addr
	if at := strings.IndexByte(addr, '@'); at > 0 {
		localPart = addr[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})

	if len(parts) == 0 {
		return "Cabinet User"
	}

	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
