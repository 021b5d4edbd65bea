package respond

import (
	"regexp"
)

var (
	// Anthropic keys must be masked before the generic OpenAI pattern,
	// which would otherwise match their "sk-" prefix.
	anthropicKeyPattern = regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`)
	openaiKeyPattern    = regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`)

	// Passwords embedded in database DSNs.
	dbPasswordPattern = regexp.MustCompile(`://([^:]+):([^@]+)@`)
)

// SanitizeError returns the error message with API keys and DSN
// passwords masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	msg = anthropicKeyPattern.ReplaceAllString(msg, "sk-ant-****")
	msg = openaiKeyPattern.ReplaceAllString(msg, "sk-****")
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")

	return msg
}
