package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beeleads/replysift/internal/classify"
	"github.com/beeleads/replysift/internal/fuse"
)

func TestInferName(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"john.doe@acme.example", "John Doe"},
		{"john_doe@acme.example", "John Doe"},
		{"jdoe@acme.example", "Jdoe"},
		{"info@acme.example", ""},
		{"support.emea@acme.example", ""},
		{"j.d@acme.example", ""},
		{"ab@acme.example", ""},
		{"john2@acme.example", ""},
		{"not-an-address", ""},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, InferName(tt.email))
		})
	}
}

func TestDomainInfo(t *testing.T) {
	tests := []struct {
		email       string
		wantDomain  string
		wantFree    bool
		wantCompany string
	}{
		{"jane@gmail.com", "gmail.com", true, ""},
		{"jane@Acme.example", "acme.example", false, "Acme"},
		// Multi-label TLDs are not special-cased; legacy consumers
		// depend on the "Co" result.
		{"jane@widgets.co.uk", "widgets.co.uk", false, "Co"},
		{"no-at-sign", "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			domain, free, company := domainInfo(tt.email)
			assert.Equal(t, tt.wantDomain, domain)
			assert.Equal(t, tt.wantFree, free)
			assert.Equal(t, tt.wantCompany, company)
		})
	}
}

func TestResponseType(t *testing.T) {
	tests := []struct {
		name     string
		category classify.Category
		subject  string
		want     string
	}{
		{"parental leave", classify.CategoryOutOfOffice, "Automatic reply: Maternity leave", ResponseOOOParental},
		{"parental keyword", classify.CategoryOutOfOffice, "OOO - parental leave", ResponseOOOParental},
		{"vacation", classify.CategoryOutOfOffice, "Out of office: vacation", ResponseOOOVacation},
		{"general ooo", classify.CategoryOutOfOffice, "Out of office", ResponseOOOGeneral},
		{"interested reply", classify.CategoryReplies, "Re: interested in a demo", ResponseInterested},
		{"meeting reply", classify.CategoryReplies, "Re: setting up a meeting", ResponseInterested},
		{"general reply", classify.CategoryReplies, "Re: your note", ResponseGeneral},
		{"auto reply", classify.CategoryAutomaticReplies, "Automatic reply", ResponseAutoReply},
		{"contact info", classify.CategoryContactInfo, "New contact details", ResponseContactInfo},
		{"anything else", classify.CategoryBounces, "Undeliverable", ResponseOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, responseType(tt.category, tt.subject))
		})
	}
}

func TestEnrichFullContact(t *testing.T) {
	e := New()
	c := &fuse.Contact{
		PrimaryEmail: "jane.doe@acme.example",
		Emails:       []string{"jane.doe@acme.example"},
		Phones:       []string{"4155550134", "4155550199"},
		Names:        []string{"Jane", "Jane Doe"},
		Title:        "VP of Sales",
		Company:      "Acme Inc",
		Category:     classify.CategoryReplies,
		Subject:      "Re: interested in a chat",
	}

	out := e.Enrich(c)

	assert.Equal(t, "Jane Doe", out.Name, "longest extracted name wins")
	assert.Equal(t, "", out.InferredName, "no inference when names were extracted")
	assert.Equal(t, "4155550134", out.PrimaryPhone)
	assert.Equal(t, "Acme Inc", out.Company, "extracted company beats domain-derived")
	assert.Equal(t, "acme.example", out.Domain)
	assert.False(t, out.FreeEmail)
	assert.Equal(t, "Acme", out.CompanyFromDomain)
	assert.Equal(t, "Jane Doe Acme Inc", out.SearchHint)
	assert.Equal(t, ResponseInterested, out.ResponseType)

	// base 10 + reply 30 + phone 15 + name 10 + title 15 + company 10 + corporate 20
	assert.Equal(t, 110, out.LeadScore)
}

func TestEnrichMinimalContact(t *testing.T) {
	e := New()
	c := &fuse.Contact{
		PrimaryEmail: "info@gmail.com",
		Emails:       []string{"info@gmail.com"},
		Category:     classify.CategoryBounces,
	}

	out := e.Enrich(c)

	assert.Equal(t, "", out.Name)
	assert.Equal(t, "", out.Company)
	assert.True(t, out.FreeEmail)
	assert.Equal(t, ResponseOther, out.ResponseType)
	assert.Equal(t, scoreBase, out.LeadScore)
}

func TestEnrichInfersNameFromAddress(t *testing.T) {
	e := New()
	c := &fuse.Contact{
		PrimaryEmail: "john.smith@acme.example",
		Emails:       []string{"john.smith@acme.example"},
		Category:     classify.CategoryOutOfOffice,
		Subject:      "Out of office",
	}

	out := e.Enrich(c)

	assert.Equal(t, "John Smith", out.InferredName)
	assert.Equal(t, "John Smith", out.Name)
	assert.Equal(t, ResponseOOOGeneral, out.ResponseType)

	// base 10 + ooo 20 + name 10 + company(from domain) 10 + corporate 20
	assert.Equal(t, 70, out.LeadScore)
}

func TestLeadScoreSignalsOnlyAdd(t *testing.T) {
	e := New()
	base := &fuse.Contact{
		PrimaryEmail: "jane@acme.example",
		Emails:       []string{"jane@acme.example"},
		Category:     classify.CategoryReplies,
	}
	withPhone := &fuse.Contact{
		PrimaryEmail: "jane@acme.example",
		Emails:       []string{"jane@acme.example"},
		Phones:       []string{"4155550134"},
		Category:     classify.CategoryReplies,
	}

	assert.Greater(t, e.Enrich(withPhone).LeadScore, e.Enrich(base).LeadScore)
}
