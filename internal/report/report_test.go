package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beeleads/replysift/internal/classify"
	"github.com/beeleads/replysift/internal/enrich"
	"github.com/beeleads/replysift/internal/extract"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCategoriesJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.json")
	categories := map[classify.Category][]string{
		classify.CategoryReplies: {"a.eml", "b.eml"},
		classify.CategoryBounces: {"c.eml"},
		classify.CategoryOther:   {},
	}

	require.NoError(t, WriteCategoriesJSON(path, categories))

	got, err := ReadCategoriesJSON(path)
	require.NoError(t, err)
	assert.Equal(t, categories, got)
}

func TestReadCategoriesJSONMissingFile(t *testing.T) {
	_, err := ReadCategoriesJSON(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestWriteCategoryCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "email_categories.csv")
	categories := map[classify.Category][]string{
		classify.CategoryReplies: {"b.eml", "a.eml"},
		classify.CategoryBounces: {"c.eml"},
	}

	require.NoError(t, WriteCategoryCSV(path, categories))

	rows := readCSV(t, path)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Email Filename", "Category", "Category Name"}, rows[0])
	// Categories are emitted alphabetically, files sorted within each.
	assert.Equal(t, []string{"c.eml", "bounces", "Bounces"}, rows[1])
	assert.Equal(t, []string{"a.eml", "replies", "Replies"}, rows[2])
	assert.Equal(t, []string{"b.eml", "replies", "Replies"}, rows[3])
}

func TestContactsJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.json")
	contacts := []*extract.Record{
		{
			Category: classify.CategoryReplies,
			Source:   "replies/a.eml",
			Emails:   []string{"jane@acme.example"},
			Names:    []string{"Jane Doe"},
			Phones:   []string{"4155550134"},
			Title:    "VP of Sales",
		},
	}

	require.NoError(t, WriteContactsJSON(path, contacts))

	got, err := ReadContactsJSON(path)
	require.NoError(t, err)
	assert.Equal(t, contacts, got)
}

func TestWriteEnrichedCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enriched.csv")
	contacts := []enrich.Contact{
		{
			LeadScore:    110,
			Name:         "Jane Doe",
			PrimaryEmail: "jane@acme.example",
			Emails:       []string{"jane@acme.example", "jd@acme.example"},
			PrimaryPhone: "4155550134",
			Phones:       []string{"4155550134"},
			Domain:       "acme.example",
			ResponseType: enrich.ResponseInterested,
			Category:     classify.CategoryReplies,
		},
	}

	require.NoError(t, WriteEnrichedCSV(path, contacts))

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 17)
	assert.Equal(t, "Lead Score", rows[0][0])
	assert.Equal(t, "110", rows[1][0])
	assert.Equal(t, "jane@acme.example; jd@acme.example", rows[1][3])
	assert.Equal(t, "No", rows[1][9])
}

func TestWriteHighQualityCSVFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.csv")
	contacts := []enrich.Contact{
		{LeadScore: 90, PrimaryEmail: "high@acme.example"},
		{LeadScore: 69, PrimaryEmail: "low@acme.example"},
	}

	require.NoError(t, WriteHighQualityCSV(path, contacts, 70))

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, "high@acme.example", rows[1][2])
}

func TestWriteAnalysisReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis_report.txt")
	categories := map[classify.Category][]string{
		classify.CategoryReplies: {"a.eml", "b.eml"},
		classify.CategoryBounces: {"c.eml"},
	}

	require.NoError(t, WriteAnalysisReport(path, categories))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "EMAIL ANALYSIS REPORT")
	assert.Contains(t, text, "Total emails analyzed: 3")
	assert.Contains(t, text, "REPLIES (2 emails)")
	assert.Contains(t, text, "a.eml")
}

func TestPrintCategorySummary(t *testing.T) {
	var b strings.Builder
	categories := map[classify.Category][]string{
		classify.CategoryReplies: {"a.eml", "b.eml", "c.eml"},
		classify.CategoryOther:   {"d.eml"},
	}

	PrintCategorySummary(&b, categories)
	out := b.String()

	assert.Contains(t, out, "Total emails analyzed: 4")
	assert.Contains(t, out, "Replies")
	assert.Contains(t, out, "75.00%")
}

func TestPrintEnrichmentSummary(t *testing.T) {
	var b strings.Builder
	contacts := []enrich.Contact{
		{LeadScore: 90, PrimaryPhone: "4155550134", Name: "Jane Doe", ResponseType: enrich.ResponseInterested},
		{LeadScore: 55, FreeEmail: true, ResponseType: enrich.ResponseOOOGeneral},
		{LeadScore: 10, FreeEmail: true, ResponseType: enrich.ResponseOther},
	}

	PrintEnrichmentSummary(&b, contacts, 70, 50)
	out := b.String()

	assert.Contains(t, out, "Total enriched contacts: 3")
	assert.Contains(t, out, enrich.ResponseInterested)
	assert.Contains(t, out, "CONTACT ENRICHMENT SUMMARY")
}

func TestPrintEnrichmentSummaryEmpty(t *testing.T) {
	var b strings.Builder
	PrintEnrichmentSummary(&b, nil, 70, 50)
	assert.Contains(t, b.String(), "No contacts to summarize.")
}
