// Package enrich augments canonical contacts with derived attributes:
// domain classification, inferred names, a response-type label and a
// heuristic lead score for sales triage.
package enrich

import (
	"strings"

	"github.com/beeleads/replysift/internal/classify"
	"github.com/beeleads/replysift/internal/fuse"
)

// Response type labels. The hyphenated spelling is part of the export
// format consumed by downstream tooling; do not restyle.
const (
	ResponseOOOParental = "Out of Office - Parental Leave"
	ResponseOOOVacation = "Out of Office - Vacation"
	ResponseOOOGeneral  = "Out of Office - General"
	ResponseInterested  = "Reply - Interested"
	ResponseGeneral     = "Reply - General"
	ResponseAutoReply   = "Auto-Reply"
	ResponseContactInfo = "Contact Info Update"
	ResponseOther       = "Other"
)

// Lead score contributions. The score has no upper bound; quality buckets
// (high/medium/low) are thresholds applied by the caller, not structure.
const (
	scoreBase           = 10
	scoreReply          = 30
	scoreOutOfOffice    = 20
	scorePhone          = 15
	scoreName           = 10
	scoreTitle          = 15
	scoreCompany        = 10
	scoreCorporateEmail = 20
)

// freeEmailProviders is the fixed set of consumer mail domains that never
// yield a company name.
var freeEmailProviders = map[string]bool{
	"gmail.com":      true,
	"yahoo.com":      true,
	"hotmail.com":    true,
	"outlook.com":    true,
	"aol.com":        true,
	"icloud.com":     true,
	"protonmail.com": true,
	"mail.com":       true,
	"yandex.com":     true,
	"zoho.com":       true,
	"gmx.com":        true,
	"inbox.com":      true,
}

// genericMailboxMarkers disqualify a local part from name inference.
var genericMailboxMarkers = []string{
	"info", "admin", "support", "contact", "sales", "marketing",
	"noreply", "no-reply", "donotreply", "postmaster", "webmaster",
	"help", "service", "team", "group",
}

// Contact is a scored contact: the canonical contact plus every derived
// attribute. Enrichment is additive; no canonical field is dropped.
type Contact struct {
	LeadScore         int               `json:"lead_score"`
	Name              string            `json:"enriched_name"`
	PrimaryEmail      string            `json:"primary_email"`
	Emails            []string          `json:"emails"`
	PrimaryPhone      string            `json:"primary_phone"`
	Phones            []string          `json:"phones"`
	Names             []string          `json:"names"`
	Title             string            `json:"title"`
	Company           string            `json:"company_enriched"`
	ExtractedCompany  string            `json:"company"`
	Domain            string            `json:"domain"`
	FreeEmail         bool              `json:"is_free_email"`
	CompanyFromDomain string            `json:"company_from_domain"`
	InferredName      string            `json:"inferred_name"`
	SearchHint        string            `json:"linkedin_search"`
	ResponseType      string            `json:"response_type"`
	Category          classify.Category `json:"category"`
	Source            string            `json:"filename"`
	Subject           string            `json:"original_subject"`
	Date              string            `json:"date"`
	To                string            `json:"to"`
	Body              string            `json:"body"`
}

// Enricher derives scored contacts from canonical ones. It carries no
// mutable state and is safe for concurrent use.
type Enricher struct{}

// New returns an Enricher.
func New() *Enricher {
	return &Enricher{}
}

// Enrich derives the scored contact for c.
func (e *Enricher) Enrich(c *fuse.Contact) Contact {
	out := Contact{
		PrimaryEmail:     c.PrimaryEmail,
		Emails:           c.Emails,
		Phones:           c.Phones,
		Names:            c.Names,
		Title:            c.Title,
		ExtractedCompany: c.Company,
		Category:         c.Category,
		Source:           c.Source,
		Subject:          c.Subject,
		Date:             c.Date,
		To:               c.To,
		Body:             c.Body,
	}

	out.Domain, out.FreeEmail, out.CompanyFromDomain = domainInfo(c.PrimaryEmail)

	if len(c.Names) == 0 {
		out.InferredName = InferName(c.PrimaryEmail)
	}

	// Best name: the longest extracted name (ties resolve to the one seen
	// first), falling back to the inferred one.
	if len(c.Names) > 0 {
		out.Name = longest(c.Names)
	} else {
		out.Name = out.InferredName
	}

	// Best company: explicitly extracted beats domain-derived.
	if c.Company != "" {
		out.Company = c.Company
	} else {
		out.Company = out.CompanyFromDomain
	}

	out.SearchHint = searchHint(out.Name, out.Company)
	out.ResponseType = responseType(c.Category, c.Subject)
	out.LeadScore = leadScore(&out)

	if len(c.Phones) > 0 {
		out.PrimaryPhone = c.Phones[0]
	}

	return out
}

// domainInfo splits the address at '@' and classifies the domain.
// For corporate domains the second-to-last dot label is capitalized into a
// company candidate. Multi-label TLDs are not special-cased, so
// "foo.co.uk" yields "Co"; legacy consumers depend on this.
func domainInfo(email string) (domain string, free bool, company string) {
	at := strings.Index(email, "@")
	if at < 0 {
		return "", false, ""
	}
	domain = strings.ToLower(email[at+1:])
	free = freeEmailProviders[domain]
	if !free {
		parts := strings.Split(domain, ".")
		if len(parts) >= 2 {
			company = capitalize(parts[len(parts)-2])
		}
	}
	return domain, free, company
}

// InferName guesses a display name from the local part of an address.
// Generic mailboxes (info@, support@, ...) infer nothing.
func InferName(email string) string {
	at := strings.Index(email, "@")
	if at < 0 {
		return ""
	}
	local := strings.ToLower(email[:at])

	for _, marker := range genericMailboxMarkers {
		if strings.Contains(local, marker) {
			return ""
		}
	}

	// firstname.lastname
	if parts := strings.Split(local, "."); strings.Contains(local, ".") &&
		len(parts) == 2 && len(parts[0]) > 1 && len(parts[1]) > 1 {
		return capitalize(parts[0]) + " " + capitalize(parts[1])
	}

	// firstname_lastname
	if parts := strings.Split(local, "_"); strings.Contains(local, "_") &&
		len(parts) == 2 && len(parts[0]) > 1 && len(parts[1]) > 1 {
		return capitalize(parts[0]) + " " + capitalize(parts[1])
	}

	// firstnamelastname, if it looks like a plausible single token
	if len(local) >= 4 && len(local) <= 20 && isAlpha(local) {
		return capitalize(local)
	}

	return ""
}

// responseType is a secondary cascade keyed by category plus subject
// keywords.
func responseType(category classify.Category, subject string) string {
	subject = strings.ToLower(subject)

	switch category {
	case classify.CategoryOutOfOffice:
		switch {
		case strings.Contains(subject, "maternity") || strings.Contains(subject, "parental"):
			return ResponseOOOParental
		case strings.Contains(subject, "vacation"):
			return ResponseOOOVacation
		default:
			return ResponseOOOGeneral
		}
	case classify.CategoryReplies:
		if strings.Contains(subject, "interested") ||
			strings.Contains(subject, "meeting") ||
			strings.Contains(subject, "call") {
			return ResponseInterested
		}
		return ResponseGeneral
	case classify.CategoryAutomaticReplies:
		return ResponseAutoReply
	case classify.CategoryContactInfo:
		return ResponseContactInfo
	default:
		return ResponseOther
	}
}

// leadScore sums the signal bonuses. Each optional signal only ever adds,
// so adding information never lowers a contact's score.
func leadScore(c *Contact) int {
	score := scoreBase

	if strings.HasPrefix(c.ResponseType, "Reply") {
		score += scoreReply
	} else if strings.HasPrefix(c.ResponseType, "Out of Office") {
		score += scoreOutOfOffice
	}

	if len(c.Phones) > 0 {
		score += scorePhone
	}
	if c.Name != "" {
		score += scoreName
	}
	if c.Title != "" {
		score += scoreTitle
	}
	if c.Company != "" {
		score += scoreCompany
	}
	if !c.FreeEmail {
		score += scoreCorporateEmail
	}

	return score
}

func searchHint(name, company string) string {
	switch {
	case name != "" && company != "":
		return name + " " + company
	case name != "":
		return name
	default:
		return company
	}
}

func longest(names []string) string {
	best := names[0]
	for _, n := range names[1:] {
		if len(n) > len(best) {
			best = n
		}
	}
	return best
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return s != ""
}
