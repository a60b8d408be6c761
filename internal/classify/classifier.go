package classify

import (
	"strings"

	"github.com/beeleads/replysift/internal/message"
)

// Body prefixes used for content matching. Matching the full body would be
// wasted work and tends to hit quoted-reply tails, so signals are only
// looked for near the top of the message.
const (
	bounceBodyPrefix      = 1000
	outOfOfficeBodyPrefix = 500
	rawHeaderPrefix       = 1000
)

// Classifier assigns each message exactly one category via an ordered
// predicate cascade. It is pure: the same view always yields the same
// category, and no state is carried between calls.
type Classifier struct {
	vocab Vocabulary
}

// New returns a Classifier using the given vocabulary.
func New(vocab Vocabulary) *Classifier {
	return &Classifier{vocab: vocab}
}

// Classify maps a message view to a category. The first matching rule
// group wins; messages matching nothing fall through to CategoryOther.
// Missing headers and an undecodable body degrade to empty strings.
func (c *Classifier) Classify(v *message.View) Category {
	subject := strings.ToLower(v.Subject())
	from := strings.ToLower(v.Header("From"))
	autoSubmitted := strings.ToLower(v.AutoSubmitted())
	body := strings.ToLower(v.Body())

	switch {
	case c.isBounce(subject, from, body):
		return CategoryBounces
	case strings.Contains(subject, "delivery status notification (delay)"):
		return CategoryDeliveryDelays
	case c.isOutOfOffice(subject, body):
		return CategoryOutOfOffice
	case c.isAutomaticReply(subject, autoSubmitted, v.RawHeaders()):
		return CategoryAutomaticReplies
	case containsAny(subject, c.vocab.ContactSubjects):
		return CategoryContactInfo
	case containsAny(subject, c.vocab.VerificationSubjects):
		return CategoryVerification
	case containsAny(subject, c.vocab.ActionSubjects):
		return CategoryActionRequired
	case c.isUnsubscribe(subject, body):
		return CategoryUnsubscribe
	case containsAny(subject, c.vocab.SpamSubjects) || containsAny(from, c.vocab.SpamSenders):
		return CategorySpamFilters
	case containsAny(subject, c.vocab.SecuritySubjects):
		return CategorySecurityAlerts
	case c.isReply(subject, autoSubmitted):
		return CategoryReplies
	default:
		return CategoryOther
	}
}

func (c *Classifier) isBounce(subject, from, body string) bool {
	return containsAny(subject, c.vocab.BounceSubjects) ||
		(containsAny(from, c.vocab.BounceSenderMarkers) &&
			containsAny(subject, c.vocab.BounceSubjectKeywords)) ||
		containsAny(prefix(body, bounceBodyPrefix), c.vocab.BounceBodies)
}

func (c *Classifier) isOutOfOffice(subject, body string) bool {
	return containsAny(subject, c.vocab.OutOfOfficeSubjects) ||
		(strings.Contains(subject, "automatic reply") && containsAny(body, c.vocab.AwayKeywords)) ||
		containsAny(prefix(body, outOfOfficeBodyPrefix), c.vocab.OutOfOfficeBodies)
}

func (c *Classifier) isAutomaticReply(subject, autoSubmitted, rawHeaders string) bool {
	return containsAny(subject, c.vocab.AutoReplySubjects) ||
		autoSubmitted == "auto-replied" ||
		strings.Contains(strings.ToLower(prefix(rawHeaders, rawHeaderPrefix)), "x-autoresponder")
}

func (c *Classifier) isUnsubscribe(subject, body string) bool {
	return containsAny(subject, c.vocab.UnsubscribeSubjects) ||
		(strings.Contains(subject, "subscription") && strings.Contains(body, "remove"))
}

func (c *Classifier) isReply(subject, autoSubmitted string) bool {
	return (strings.HasPrefix(subject, "re:") || strings.HasPrefix(subject, "re ")) &&
		autoSubmitted != "auto-replied"
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
