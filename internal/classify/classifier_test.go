package classify

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beeleads/replysift/internal/message"
)

// view builds a parsed message view from header values and a body.
func view(t *testing.T, headers map[string]string, body string) *message.View {
	t.Helper()

	var b strings.Builder
	for _, key := range []string{"From", "To", "Subject", "Auto-Submitted", "X-Autoresponder"} {
		if value, ok := headers[key]; ok {
			fmt.Fprintf(&b, "%s: %s\r\n", key, value)
		}
	}
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(body)

	v, err := message.Parse(strings.NewReader(b.String()))
	require.NoError(t, err)
	return v
}

func TestClassifyCategories(t *testing.T) {
	c := New(DefaultVocabulary())

	tests := []struct {
		name    string
		headers map[string]string
		body    string
		want    Category
	}{
		{
			name:    "bounce by subject",
			headers: map[string]string{"From": "mx@relay.example", "Subject": "Undeliverable: Partnership opportunity"},
			want:    CategoryBounces,
		},
		{
			name:    "bounce by sender marker plus subject keyword",
			headers: map[string]string{"From": "no-reply@relay.example", "Subject": "Delivery report"},
			want:    CategoryBounces,
		},
		{
			name:    "bounce by body phrase",
			headers: map[string]string{"From": "mx@relay.example", "Subject": "Hello"},
			body:    "550 5.1.1 user unknown in virtual mailbox table",
			want:    CategoryBounces,
		},
		{
			name:    "out of office subject",
			headers: map[string]string{"From": "jane@acme.example", "Subject": "Out of Office: Intro"},
			want:    CategoryOutOfOffice,
		},
		{
			name:    "automatic reply with away keyword",
			headers: map[string]string{"From": "jane@acme.example", "Subject": "Automatic reply: Intro"},
			body:    "I am on vacation until Monday.",
			want:    CategoryOutOfOffice,
		},
		{
			name:    "out of office body phrase",
			headers: map[string]string{"From": "jane@acme.example", "Subject": "Intro"},
			body:    "I am currently out of office and will respond when I return.",
			want:    CategoryOutOfOffice,
		},
		{
			name:    "plain automatic reply",
			headers: map[string]string{"From": "jane@acme.example", "Subject": "Automatic reply: Intro"},
			body:    "Thank you for your message. I will respond shortly.",
			want:    CategoryAutomaticReplies,
		},
		{
			name:    "auto-submitted header beats reply prefix",
			headers: map[string]string{"From": "jane@acme.example", "Subject": "Re: Intro", "Auto-Submitted": "auto-replied"},
			body:    "Thanks for your email.",
			want:    CategoryAutomaticReplies,
		},
		{
			name:    "autoresponder raw header",
			headers: map[string]string{"From": "jane@acme.example", "Subject": "Intro", "X-Autoresponder": "enabled"},
			want:    CategoryAutomaticReplies,
		},
		{
			name:    "contact info update",
			headers: map[string]string{"From": "jane@acme.example", "Subject": "New contact details"},
			want:    CategoryContactInfo,
		},
		{
			name:    "verification request",
			headers: map[string]string{"From": "system@client.example", "Subject": "Please verify your email"},
			want:    CategoryVerification,
		},
		{
			name:    "action required",
			headers: map[string]string{"From": "system@client.example", "Subject": "Action required: approve sender"},
			want:    CategoryActionRequired,
		},
		{
			name:    "unsubscribe subject",
			headers: map[string]string{"From": "jane@acme.example", "Subject": "Unsubscribe me please"},
			want:    CategoryUnsubscribe,
		},
		{
			name:    "subscription subject with remove in body",
			headers: map[string]string{"From": "jane@acme.example", "Subject": "Subscription notice"},
			body:    "Please remove me from your list.",
			want:    CategoryUnsubscribe,
		},
		{
			name:    "spam filter vendor sender",
			headers: map[string]string{"From": "Cold Email Shield <shield@gateway.example>", "Subject": "Your message was quarantined"},
			want:    CategorySpamFilters,
		},
		{
			name:    "security alert",
			headers: map[string]string{"From": "alerts@client.example", "Subject": "Security alert for your account"},
			want:    CategorySecurityAlerts,
		},
		{
			name:    "genuine reply",
			headers: map[string]string{"From": "jane@acme.example", "Subject": "Re: Partnership opportunity"},
			body:    "Happy to set up a call next week.",
			want:    CategoryReplies,
		},
		{
			name:    "reply prefix is case-insensitive",
			headers: map[string]string{"From": "jane@acme.example", "Subject": "RE: Partnership opportunity"},
			want:    CategoryReplies,
		},
		{
			name:    "unmatched falls through to other",
			headers: map[string]string{"From": "news@client.example", "Subject": "Quarterly newsletter"},
			body:    "Here is what happened this quarter.",
			want:    CategoryOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(view(t, tt.headers, tt.body))
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestClassifyBounceBeatsReplyPrefix(t *testing.T) {
	c := New(DefaultVocabulary())
	v := view(t, map[string]string{
		"From":    "mailer-daemon@relay.example",
		"Subject": "Re: Undeliverable: Partnership opportunity",
	}, "")

	assert.Equal(t, CategoryBounces, c.Classify(v))
}

func TestClassifyDeliveryDelay(t *testing.T) {
	v := view(t, map[string]string{
		"From":    "mx@relay.example",
		"Subject": "Delivery Status Notification (Delay)",
	}, "")

	// The production bounce table contains "delivery status notification",
	// so with the default vocabulary the bounce rule sees this phrase first.
	assert.Equal(t, CategoryBounces, New(DefaultVocabulary()).Classify(v))

	// The structural delay rule itself fires once phrase tables are empty.
	assert.Equal(t, CategoryDeliveryDelays, New(Vocabulary{}).Classify(v))
}

func TestClassifyIsPure(t *testing.T) {
	c := New(DefaultVocabulary())
	v := view(t, map[string]string{
		"From":    "jane@acme.example",
		"Subject": "Re: Partnership opportunity",
	}, "Sounds interesting.")

	first := c.Classify(v)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, c.Classify(v))
	}
}

func TestClassifyEmptyView(t *testing.T) {
	c := New(DefaultVocabulary())
	assert.Equal(t, CategoryOther, c.Classify(message.Empty()))
}

func TestCategoryValid(t *testing.T) {
	for _, cat := range Categories {
		assert.True(t, cat.Valid(), string(cat))
	}
	assert.False(t, Category("nonsense").Valid())
}

func TestCategoryDisplayName(t *testing.T) {
	assert.Equal(t, "Out Of Office", CategoryOutOfOffice.DisplayName())
	assert.Equal(t, "Bounces", CategoryBounces.DisplayName())
	assert.Equal(t, "Verification Requests", CategoryVerification.DisplayName())
}
