package classify

// Vocabulary holds the phrase tables driving the classification cascade.
// It is immutable once handed to a Classifier; tests substitute smaller
// tables to pin individual rules.
type Vocabulary struct {
	// Bounce signals.
	BounceSubjects        []string
	BounceSenderMarkers   []string
	BounceSubjectKeywords []string
	BounceBodies          []string

	// Out-of-office signals.
	OutOfOfficeSubjects []string
	AwayKeywords        []string
	OutOfOfficeBodies   []string

	// Automatic replies.
	AutoReplySubjects []string

	// Contact info updates.
	ContactSubjects []string

	// Verification requests.
	VerificationSubjects []string

	// Action required.
	ActionSubjects []string

	// Unsubscribe.
	UnsubscribeSubjects []string

	// Spam filter and security gateway vendors.
	SpamSubjects []string
	SpamSenders  []string

	// Security alerts.
	SecuritySubjects []string
}

// DefaultVocabulary returns the production phrase tables. The lists were
// tuned against a large corpus of real campaign replies; recall is favored
// over precision, embedded-substring false positives are tolerated.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		BounceSubjects: []string{
			"mailer-daemon",
			"delivery failure",
			"delivery status notification",
			"undeliverable",
			"returned mail",
			"mail delivery failed",
			"bounce",
			"message was not delivered",
			"message couldn't be delivered",
			"your message couldn't be delivered",
			"undelivered mail",
			"invalid email address",
			"your email to",
			"mail not delivered",
			"message not delivered",
			"failed",
			"delivery notification",
			"blocked sender",
			"spam detection",
			"incumplimiento de política", // Spanish: policy violation
			"no longer employed",
			"is no longer with",
			"deprecated domain",
		},
		BounceSenderMarkers: []string{
			"mailer-daemon",
			"postmaster",
			"no-reply",
			"noreply",
		},
		BounceSubjectKeywords: []string{
			"delivery",
			"failed",
			"undeliv",
			"bounce",
			"message",
		},
		BounceBodies: []string{
			"hop count exceeded",
			"user unknown",
			"mailbox unavailable",
			"recipient address rejected",
			"delivery has failed",
			"delivery has been delayed",
			"permanently failed",
			"recipient not found",
		},
		OutOfOfficeSubjects: []string{
			"out of office",
			"out of the office",
			"ooo",
			"maternity leave",
			"parental leave",
		},
		AwayKeywords: []string{
			"vacation",
			"away",
			"office",
		},
		OutOfOfficeBodies: []string{
			"away from office",
			"currently out of office",
			"will be out of the office",
		},
		AutoReplySubjects: []string{
			"automatic reply",
			"autoresponse",
			"auto-reply",
		},
		ContactSubjects: []string{
			"new contact",
			"updated contact",
			"contact information",
			"email address change",
			"new email address",
			"contact details",
		},
		VerificationSubjects: []string{
			"verification",
			"verify your email",
			"confirm your email",
			"email verification",
			"validate",
		},
		ActionSubjects: []string{
			"action required",
			"action needed",
			"urgent",
		},
		UnsubscribeSubjects: []string{
			"unsubscribe",
			"opt out",
			"opt-out",
		},
		SpamSubjects: []string{
			"spam detection",
			"blocked sender",
			"seg-az notification",
		},
		SpamSenders: []string{
			"cold email shield",
			"shield@mixmax",
			"yooz@invitations",
			"proofpoint",
			"trustwave",
		},
		SecuritySubjects: []string{
			"security alert",
			"suspicious activity",
			"login attempt",
		},
	}
}
