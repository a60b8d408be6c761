package extract

import (
	"regexp"
	"strings"

	"github.com/beeleads/replysift/internal/classify"
	"github.com/beeleads/replysift/internal/message"
)

const (
	// Body snippet length carried on each record.
	bodySnippetLen = 2000
	// Signature scanning window.
	signatureLines   = 15
	signatureLineMax = 100
)

var (
	// Phone candidate patterns, matched independently over the full body.
	// The grouped North-American pattern intentionally drops the country
	// code during normalization (only the captured groups are kept).
	phoneGroupedPattern = regexp.MustCompile(`\+?1?\s*\(?(\d{3})\)?[\s.-]?(\d{3})[\s.-]?(\d{4})`)
	phonePatterns       = []*regexp.Regexp{
		regexp.MustCompile(`\+\d{1,3}\s*\d{1,14}`),
		regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`),
	}
	phoneJunk = regexp.MustCompile(`[^0-9+]`)

	// Generic address-shaped pattern for alternate email discovery.
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// Lower-cased substrings that mark system/automation mailboxes; matches
	// are dropped from alternate email extraction.
	systemMailboxMarkers = []string{
		"noreply", "no-reply", "mailer-daemon", "postmaster",
		"donotreply", "do-not-reply", "bounce", "notification",
	}

	nameQuotes      = regexp.MustCompile(`["']`)
	nameWhitespace  = regexp.MustCompile(`\s+`)
	titleKeywords   = regexp.MustCompile(`(?i)\b(CEO|CTO|CFO|COO|CMO|VP|Director|Manager|Lead|Head|Chief|President|Senior|Junior|Specialist|Engineer|Developer|Analyst|Coordinator|Administrator)\b`)
	companyPattern  = regexp.MustCompile(`(?:at|@)\s+([A-Z][A-Za-z0-9\s&.,]+(?:Inc|LLC|Ltd|Corp|Co|Company)?)`)
	snippetLineFold = strings.NewReplacer("\n", " ", "\r", " ")
)

// Extractor pulls contact identity information out of a classified message.
type Extractor struct {
	exclusions []string
}

// New returns an Extractor. exclusions is a list of lower-cased substrings
// identifying known outbound sender addresses/domains; captured recipient
// addresses matching any of them are rejected.
func New(exclusions []string) *Extractor {
	lowered := make([]string, len(exclusions))
	for i, e := range exclusions {
		lowered[i] = strings.ToLower(e)
	}
	return &Extractor{exclusions: lowered}
}

// Extract builds a raw contact record from a message view. It returns nil
// when no email, phone or name could be extracted.
func (e *Extractor) Extract(v *message.View, category classify.Category, source string) *Record {
	rec := &Record{
		Category: category,
		Source:   source,
		Subject:  v.Subject(),
		Date:     v.Date(),
		To:       v.To(),
	}

	fromName, fromAddr := v.From()
	if strings.Contains(fromAddr, "@") {
		rec.Emails = appendUnique(rec.Emails, strings.ToLower(fromAddr))
	}
	if name := cleanName(fromName); name != "" && !strings.EqualFold(name, fromAddr) {
		rec.Names = appendUnique(rec.Names, name)
	}

	replyName, replyAddr := v.ReplyTo()
	if strings.Contains(replyAddr, "@") && !strings.EqualFold(replyAddr, fromAddr) {
		rec.Emails = appendUnique(rec.Emails, strings.ToLower(replyAddr))
	}
	if replyName != replyAddr && replyName != fromName {
		if name := cleanName(replyName); name != "" {
			rec.Names = appendUnique(rec.Names, name)
		}
	}

	if body := v.Body(); body != "" {
		rec.Body = snippet(body, bodySnippetLen)

		for _, phone := range extractPhones(body) {
			rec.Phones = appendUnique(rec.Phones, phone)
		}
		for _, addr := range extractAlternateEmails(body) {
			rec.Emails = appendUnique(rec.Emails, addr)
		}

		title, company := extractSignature(body)
		rec.Title = title
		rec.Company = company
	}

	if len(rec.Emails) == 0 && len(rec.Phones) == 0 && len(rec.Names) == 0 {
		return nil
	}
	return rec
}

// cleanName strips quote characters and collapses whitespace. Names of
// three characters or fewer are discarded as noise.
func cleanName(name string) string {
	name = nameQuotes.ReplaceAllString(name, "")
	name = strings.TrimSpace(nameWhitespace.ReplaceAllString(name, " "))
	if len(name) <= 2 {
		return ""
	}
	return name
}

// extractPhones returns normalized phone candidates with at least ten
// digits, deduplicated in match order.
func extractPhones(text string) []string {
	var phones []string
	seen := make(map[string]bool)

	keep := func(raw string) {
		normalized := phoneJunk.ReplaceAllString(raw, "")
		if len(normalized) < 10 || seen[normalized] {
			return
		}
		seen[normalized] = true
		phones = append(phones, normalized)
	}

	for _, m := range phoneGroupedPattern.FindAllStringSubmatch(text, -1) {
		keep(m[1] + m[2] + m[3])
	}
	for _, pattern := range phonePatterns {
		for _, m := range pattern.FindAllString(text, -1) {
			keep(m)
		}
	}
	return phones
}

// extractAlternateEmails returns lower-cased addresses found in the text,
// excluding system/automation mailboxes.
func extractAlternateEmails(text string) []string {
	var addrs []string
	seen := make(map[string]bool)
	for _, m := range emailPattern.FindAllString(text, -1) {
		addr := strings.ToLower(m)
		if seen[addr] || containsAnyMarker(addr, systemMailboxMarkers) {
			continue
		}
		seen[addr] = true
		addrs = append(addrs, addr)
	}
	return addrs
}

// extractSignature scans the first lines of the body for a job title and a
// company mention. Later matches overwrite earlier ones: the signature
// block usually sits below quoted boilerplate, so the last hit wins.
func extractSignature(body string) (title, company string) {
	scanned := 0
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		scanned++
		if scanned > signatureLines {
			break
		}
		if len(line) > signatureLineMax {
			continue
		}

		if titleKeywords.MatchString(line) {
			title = line
		}
		if m := companyPattern.FindStringSubmatch(line); m != nil {
			company = strings.TrimSpace(m[1])
		}
	}
	return title, company
}

func snippet(body string, n int) string {
	if len(body) > n {
		body = body[:n]
	}
	return strings.TrimSpace(snippetLineFold.Replace(body))
}

func containsAnyMarker(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
