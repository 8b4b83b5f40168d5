package validators

import (
	"strings"
)

// entityUnescaper reverts the escaping bluemonday applies to text.
var entityUnescaper = strings.NewReplacer("&#34;", `"`, "&#39;", "'", "&lt;", "<", "&gt;", ">", "&amp;", "&", "&#13;", "\r")

// maxSanitizePasses bounds the strip loop. Each pass either strips markup or decodes a level of escaping.
const maxSanitizePasses = 8

// SanitizeString trims s and strips all markup from it. Text comes back unescaped, so "Ratchet & Clank" is kept as
// typed. Stripping repeats until nothing changes, which makes sanitizing an already sanitized string a no-op.
func SanitizeString(s string) string {
	s = strings.TrimSpace(s)
	for i := 0; i < maxSanitizePasses; i++ {
		stripped := strings.TrimSpace(entityUnescaper.Replace(GetValidator().Policy.Sanitize(s)))
		if stripped == s {
			break
		}
		s = stripped
	}
	return s
}

// ValidateEmail trims email and checks its syntax. It does not check length or deliverability.
func ValidateEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", InvalidArgument("email is empty or insecure")
	}

	if err := GetValidator().Validate.Var(email, "email"); err != nil {
		return "", InvalidArgument("email %q is not valid", email)
	}
	return email, nil
}

// IsHex reports whether s is non-empty and consists of lower-case hexadecimal digits only.
func IsHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
