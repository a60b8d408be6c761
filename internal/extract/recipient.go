package extract

import (
	"regexp"
	"strings"

	"github.com/beeleads/replysift/internal/message"
)

// addr is the address-shaped capture used inside the recipient patterns.
// The body is lower-cased before matching, so lower-case classes suffice.
const addr = `([a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,})`

// recipientPatterns are tried in priority order against the lower-cased
// body. Bounce and notification messages phrase the failed recipient in
// many ways; the earlier patterns are the more specific ones.
var recipientPatterns = []*regexp.Regexp{
	// "The following message to <email@example.com>"
	regexp.MustCompile(`the following message to\s*<?` + addr + `>?`),
	// "Your message to email@example.com"
	regexp.MustCompile(`your message to\s+` + addr),
	// "Your email to email@example.com"
	regexp.MustCompile(`your email to\s+` + addr),
	// "message to email@example.com failed"
	regexp.MustCompile(`message to\s+` + addr + `\s+(?:failed|could not)`),
	// "Delivery to email@example.com failed"
	regexp.MustCompile(`delivery (?:to|of your message to)\s+` + addr),
	// "recipient address rejected: email@example.com"
	regexp.MustCompile(`recipient address rejected:\s+` + addr),
	// "To: <email@example.com>" quoted in the body
	regexp.MustCompile(`to:\s*<?` + addr + `>?`),
	// "email inbox email@example.com is no longer"
	regexp.MustCompile(`email inbox\s+` + addr + `\s+is no longer`),
	// "This email inbox email@example.com"
	regexp.MustCompile(`this email inbox\s+` + addr),
	// "to email@example.com with the Subject"
	regexp.MustCompile(`to\s+` + addr + `\s+with the subject`),
	// "delivering your message to email@example.com"
	regexp.MustCompile(`delivering your message to\s+` + addr),
}

// recipientHeaders are consulted when no body pattern matches.
var recipientHeaders = []string{
	"X-Failed-Recipients",
	"Original-Recipient",
	"Final-Recipient",
}

var headerAddrPattern = regexp.MustCompile(`([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)

// OriginalRecipient extracts the address the original outbound message was
// sent to, from bounce/notification-style messages. Captured addresses
// matching the configured exclusion list (our own senders) are rejected
// and the next pattern is tried. Returns "" if nothing qualifies.
func (e *Extractor) OriginalRecipient(v *message.View) string {
	body := strings.ToLower(v.Body())

	if body != "" {
		for _, pattern := range recipientPatterns {
			m := pattern.FindStringSubmatch(body)
			if m == nil {
				continue
			}
			if e.excluded(m[1]) {
				continue
			}
			return m[1]
		}
	}

	for _, header := range recipientHeaders {
		value := v.Header(header)
		if value == "" {
			continue
		}
		m := headerAddrPattern.FindStringSubmatch(value)
		if m == nil {
			continue
		}
		captured := strings.ToLower(m[1])
		if e.excluded(captured) {
			continue
		}
		return captured
	}

	return ""
}

func (e *Extractor) excluded(address string) bool {
	for _, excl := range e.exclusions {
		if strings.Contains(address, excl) {
			return true
		}
	}
	return false
}
