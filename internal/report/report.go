// Package report serializes pipeline results into the CSV/JSON artifacts
// and human-readable summaries consumed by downstream tooling. Column
// layouts and file names match the legacy export format.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/beeleads/replysift/internal/classify"
	"github.com/beeleads/replysift/internal/enrich"
	"github.com/beeleads/replysift/internal/extract"
)

// MessageDetail is one row of the comprehensive per-message export.
type MessageDetail struct {
	Source            string
	Category          classify.Category
	From              string
	To                string
	Subject           string
	Date              string
	BodyPreview       string
	OriginalRecipient string
}

// WriteCategoriesJSON writes the category -> source paths mapping.
func WriteCategoriesJSON(path string, categories map[classify.Category][]string) error {
	out := make(map[string][]string, len(categories))
	for cat, files := range categories {
		if files == nil {
			files = []string{}
		}
		out[string(cat)] = files
	}
	return writeJSON(path, out)
}

// ReadCategoriesJSON loads a mapping written by WriteCategoriesJSON.
func ReadCategoriesJSON(path string) (map[classify.Category][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read categories file: %w", err)
	}
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse categories file: %w", err)
	}
	categories := make(map[classify.Category][]string, len(raw))
	for name, files := range raw {
		categories[classify.Category(name)] = files
	}
	return categories, nil
}

// WriteCategoryCSV writes one row per message with its category.
func WriteCategoryCSV(path string, categories map[classify.Category][]string) error {
	rows := [][]string{{"Email Filename", "Category", "Category Name"}}
	for _, cat := range sortedCategories(categories) {
		files := append([]string(nil), categories[cat]...)
		sort.Strings(files)
		for _, file := range files {
			rows = append(rows, []string{file, string(cat), cat.DisplayName()})
		}
	}
	return writeCSV(path, rows)
}

// WriteComprehensiveCSV writes the full per-message detail export,
// including the extracted original recipient.
func WriteComprehensiveCSV(path string, details []MessageDetail) error {
	rows := [][]string{{
		"Email Filename", "Category", "Category Name", "From", "To",
		"Subject", "Date", "Body Preview", "Original_Recipient",
	}}
	for _, d := range details {
		rows = append(rows, []string{
			d.Source, string(d.Category), d.Category.DisplayName(),
			d.From, d.To, d.Subject, d.Date, d.BodyPreview, d.OriginalRecipient,
		})
	}
	return writeCSV(path, rows)
}

// WriteContactsCSV writes the raw extracted-contact export.
func WriteContactsCSV(path string, contacts []*extract.Record) error {
	rows := [][]string{{
		"Primary Email", "All Emails", "Name(s)", "Phone(s)", "Title",
		"Company", "Category", "Original Subject", "Date", "To", "Body",
	}}
	for _, c := range contacts {
		rows = append(rows, []string{
			c.PrimaryEmail(),
			strings.Join(c.Emails, "; "),
			strings.Join(c.Names, "; "),
			strings.Join(c.Phones, "; "),
			c.Title,
			c.Company,
			string(c.Category),
			c.Subject,
			c.Date,
			c.To,
			c.Body,
		})
	}
	return writeCSV(path, rows)
}

// WriteContactsJSON writes raw contacts for consumption by the enrich stage.
func WriteContactsJSON(path string, contacts []*extract.Record) error {
	if contacts == nil {
		contacts = []*extract.Record{}
	}
	return writeJSON(path, contacts)
}

// ReadContactsJSON loads contacts written by WriteContactsJSON.
func ReadContactsJSON(path string) ([]*extract.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read contacts file: %w", err)
	}
	var contacts []*extract.Record
	if err := json.Unmarshal(data, &contacts); err != nil {
		return nil, fmt.Errorf("failed to parse contacts file: %w", err)
	}
	return contacts, nil
}

// WriteEnrichedCSV writes scored contacts, expected pre-sorted by lead
// score descending.
func WriteEnrichedCSV(path string, contacts []enrich.Contact) error {
	rows := [][]string{{
		"Lead Score", "Name", "Primary Email", "All Emails", "Primary Phone",
		"All Phones", "Job Title", "Company", "Domain", "Is Free Email",
		"Response Type", "LinkedIn Search", "Category", "Original Subject",
		"Date", "To", "Body",
	}}
	for _, c := range contacts {
		rows = append(rows, []string{
			strconv.Itoa(c.LeadScore),
			c.Name,
			c.PrimaryEmail,
			strings.Join(c.Emails, "; "),
			c.PrimaryPhone,
			strings.Join(c.Phones, "; "),
			c.Title,
			c.Company,
			c.Domain,
			yesNo(c.FreeEmail),
			c.ResponseType,
			c.SearchHint,
			string(c.Category),
			c.Subject,
			c.Date,
			c.To,
			c.Body,
		})
	}
	return writeCSV(path, rows)
}

// WriteEnrichedJSON writes scored contacts as JSON.
func WriteEnrichedJSON(path string, contacts []enrich.Contact) error {
	if contacts == nil {
		contacts = []enrich.Contact{}
	}
	return writeJSON(path, contacts)
}

// WriteHighQualityCSV writes only contacts scoring at or above minScore.
func WriteHighQualityCSV(path string, contacts []enrich.Contact, minScore int) error {
	rows := [][]string{{
		"Lead Score", "Name", "Email", "Phone", "Job Title", "Company",
		"LinkedIn Search", "Response Type", "To", "Body",
	}}
	for _, c := range contacts {
		if c.LeadScore < minScore {
			continue
		}
		rows = append(rows, []string{
			strconv.Itoa(c.LeadScore),
			c.Name,
			c.PrimaryEmail,
			c.PrimaryPhone,
			c.Title,
			c.Company,
			c.SearchHint,
			c.ResponseType,
			c.To,
			c.Body,
		})
	}
	return writeCSV(path, rows)
}

func sortedCategories(categories map[classify.Category][]string) []classify.Category {
	cats := make([]classify.Category, 0, len(categories))
	for cat := range categories {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
