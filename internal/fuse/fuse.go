// Package fuse merges raw per-message contact records into canonical
// contacts keyed by primary email address.
//
// The merge is order-sensitive: title and company use first-non-empty-wins
// semantics, so callers must hand records over in the canonical traversal
// order (category priority order, then ascending source path within a
// category) to get reproducible output.
package fuse

import (
	"github.com/beeleads/replysift/internal/classify"
	"github.com/beeleads/replysift/internal/extract"
)

// Contact is a canonical contact after fusion. Emails, Phones and Names
// are insertion-ordered unions of the merged records; the remaining fields
// come from the earliest record seen for the key (title and company from
// the earliest record with a non-empty value).
type Contact struct {
	PrimaryEmail string
	Emails       []string
	Phones       []string
	Names        []string
	Title        string
	Company      string
	Category     classify.Category
	Source       string
	Subject      string
	Date         string
	To           string
	Body         string
}

// Merge folds records into canonical contacts. Records without any email
// address cannot be keyed and are dropped; that loss is a deliberate
// boundary of the pipeline, not an error. The returned slice preserves
// first-seen key order.
func Merge(records []*extract.Record) []*Contact {
	byEmail := make(map[string]*Contact)
	var ordered []*Contact

	for _, rec := range records {
		key := rec.PrimaryEmail()
		if key == "" {
			continue
		}

		existing, ok := byEmail[key]
		if !ok {
			contact := &Contact{
				PrimaryEmail: key,
				Emails:       append([]string(nil), rec.Emails...),
				Phones:       append([]string(nil), rec.Phones...),
				Names:        append([]string(nil), rec.Names...),
				Title:        rec.Title,
				Company:      rec.Company,
				Category:     rec.Category,
				Source:       rec.Source,
				Subject:      rec.Subject,
				Date:         rec.Date,
				To:           rec.To,
				Body:         rec.Body,
			}
			byEmail[key] = contact
			ordered = append(ordered, contact)
			continue
		}

		for _, e := range rec.Emails {
			existing.Emails = appendUnique(existing.Emails, e)
		}
		for _, p := range rec.Phones {
			existing.Phones = appendUnique(existing.Phones, p)
		}
		for _, n := range rec.Names {
			existing.Names = appendUnique(existing.Names, n)
		}
		if existing.Title == "" && rec.Title != "" {
			existing.Title = rec.Title
		}
		if existing.Company == "" && rec.Company != "" {
			existing.Company = rec.Company
		}
	}

	return ordered
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
