package extract

import "github.com/beeleads/replysift/internal/classify"

// Record is the raw per-message contact record produced by the Extractor.
// Emails, Names and Phones are insertion-ordered sets; the first email is
// the merge key downstream. JSON field names match the legacy export
// format consumed by existing tooling.
type Record struct {
	Category classify.Category `json:"category"`
	Source   string            `json:"filename"`
	Emails   []string          `json:"emails"`
	Phones   []string          `json:"phones"`
	Names    []string          `json:"names"`
	Title    string            `json:"title"`
	Company  string            `json:"company"`
	Subject  string            `json:"original_subject"`
	Date     string            `json:"date"`
	To       string            `json:"to"`
	Body     string            `json:"body"`
}

// PrimaryEmail returns the first email address of the record, the key used
// for contact fusion, or "" if the record carries no email.
func (r *Record) PrimaryEmail() string {
	if len(r.Emails) == 0 {
		return ""
	}
	return r.Emails[0]
}

// appendUnique appends s to list if an equal element is not already
// present, preserving insertion order.
func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
