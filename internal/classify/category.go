package classify

import "strings"

// Category is one label from the fixed classification set.
type Category string

const (
	CategoryBounces          Category = "bounces"
	CategoryDeliveryDelays   Category = "delivery_delays"
	CategoryOutOfOffice      Category = "out_of_office"
	CategoryAutomaticReplies Category = "automatic_replies"
	CategoryContactInfo      Category = "contact_info"
	CategoryVerification     Category = "verification_requests"
	CategoryActionRequired   Category = "action_required"
	CategoryUnsubscribe      Category = "unsubscribe"
	CategorySpamFilters      Category = "spam_filters"
	CategorySecurityAlerts   Category = "security_alerts"
	CategoryReplies          Category = "replies"
	CategoryOther            Category = "other"
)

// Categories lists every category in cascade priority order. The order is
// load-bearing: it is both the evaluation order of the classifier and the
// canonical traversal order fed into contact fusion.
var Categories = []Category{
	CategoryBounces,
	CategoryDeliveryDelays,
	CategoryOutOfOffice,
	CategoryAutomaticReplies,
	CategoryContactInfo,
	CategoryVerification,
	CategoryActionRequired,
	CategoryUnsubscribe,
	CategorySpamFilters,
	CategorySecurityAlerts,
	CategoryReplies,
	CategoryOther,
}

// Valid reports whether c is a member of the fixed category set.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// DisplayName returns the human-readable form used in exports,
// e.g. "out_of_office" -> "Out Of Office".
func (c Category) DisplayName() string {
	words := strings.Split(string(c), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
