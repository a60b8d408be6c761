package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/beeleads/replysift/internal/classify"
	"github.com/beeleads/replysift/internal/enrich"
)

const rule = "================================================================================"
const thinRule = "--------------------------------------------------------------------------------"

// Detailed-listing cap per category in the analysis report.
const reportListingLimit = 100

// WriteAnalysisReport writes the human-readable categorization report.
func WriteAnalysisReport(path string, categories map[classify.Category][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	total := 0
	for _, files := range categories {
		total += len(files)
	}

	fmt.Fprintf(f, "%s\nEMAIL ANALYSIS REPORT\n%s\n\n", rule, rule)
	fmt.Fprintf(f, "Total emails analyzed: %d\n\n", total)
	fmt.Fprintf(f, "SUMMARY BY CATEGORY:\n%s\n", thinRule)

	for _, cat := range categoriesByCount(categories) {
		count := len(categories[cat])
		fmt.Fprintf(f, "%-30s: %6d (%5.2f%%)\n", cat.DisplayName(), count, percent(count, total))
	}
	fmt.Fprintf(f, "\n%s\n\n", rule)

	for _, cat := range categoriesByCount(categories) {
		files := categories[cat]
		if len(files) == 0 {
			continue
		}
		fmt.Fprintf(f, "\n%s (%d emails)\n%s\n", strings.ToUpper(cat.DisplayName()), len(files), thinRule)
		sorted := append([]string(nil), files...)
		sort.Strings(sorted)
		for i, file := range sorted {
			if i == reportListingLimit {
				fmt.Fprintf(f, "  ... and %d more\n", len(sorted)-reportListingLimit)
				break
			}
			fmt.Fprintf(f, "  %s\n", file)
		}
		fmt.Fprintln(f)
	}

	return f.Close()
}

// PrintCategorySummary writes the categorization summary to w.
func PrintCategorySummary(w io.Writer, categories map[classify.Category][]string) {
	total := 0
	for _, files := range categories {
		total += len(files)
	}

	fmt.Fprintf(w, "\n%s\nANALYSIS SUMMARY\n%s\n\n", rule, rule)
	fmt.Fprintf(w, "Total emails analyzed: %d\n\n", total)
	for _, cat := range categoriesByCount(categories) {
		count := len(categories[cat])
		fmt.Fprintf(w, "%-30s: %6d (%5.2f%%)\n", cat.DisplayName(), count, percent(count, total))
	}
	fmt.Fprintf(w, "%s\n", rule)
}

// PrintEnrichmentSummary writes lead-quality statistics to w.
func PrintEnrichmentSummary(w io.Writer, contacts []enrich.Contact, highThreshold, mediumThreshold int) {
	total := len(contacts)
	if total == 0 {
		fmt.Fprintln(w, "No contacts to summarize.")
		return
	}

	var corporate, withPhone, withName, withTitle, withCompany int
	var high, medium, low int
	responseTypes := make(map[string]int)

	for _, c := range contacts {
		if !c.FreeEmail {
			corporate++
		}
		if c.PrimaryPhone != "" {
			withPhone++
		}
		if c.Name != "" {
			withName++
		}
		if c.Title != "" {
			withTitle++
		}
		if c.Company != "" {
			withCompany++
		}
		switch {
		case c.LeadScore >= highThreshold:
			high++
		case c.LeadScore >= mediumThreshold:
			medium++
		default:
			low++
		}
		responseTypes[c.ResponseType]++
	}

	fmt.Fprintf(w, "\n%s\nCONTACT ENRICHMENT SUMMARY\n%s\n\n", rule, rule)
	fmt.Fprintf(w, "Total enriched contacts: %d\n\n", total)

	fmt.Fprintln(w, "Data Completeness:")
	fmt.Fprintf(w, "  Corporate email addresses: %5d (%.1f%%)\n", corporate, percent(corporate, total))
	fmt.Fprintf(w, "  With phone numbers       : %5d (%.1f%%)\n", withPhone, percent(withPhone, total))
	fmt.Fprintf(w, "  With names               : %5d (%.1f%%)\n", withName, percent(withName, total))
	fmt.Fprintf(w, "  With job titles          : %5d (%.1f%%)\n", withTitle, percent(withTitle, total))
	fmt.Fprintf(w, "  With company names       : %5d (%.1f%%)\n", withCompany, percent(withCompany, total))

	fmt.Fprintln(w, "\nLead Quality Distribution:")
	fmt.Fprintf(w, "  High Quality (%d+)       : %5d (%.1f%%)\n", highThreshold, high, percent(high, total))
	fmt.Fprintf(w, "  Medium Quality (%d-%d)   : %5d (%.1f%%)\n", mediumThreshold, highThreshold-1, medium, percent(medium, total))
	fmt.Fprintf(w, "  Lower Quality (<%d)      : %5d (%.1f%%)\n", mediumThreshold, low, percent(low, total))

	fmt.Fprintln(w, "\nResponse Types:")
	for _, rt := range keysByCount(responseTypes) {
		fmt.Fprintf(w, "  %-30s: %5d\n", rt, responseTypes[rt])
	}
	fmt.Fprintf(w, "%s\n", rule)
}

func categoriesByCount(categories map[classify.Category][]string) []classify.Category {
	cats := make([]classify.Category, 0, len(categories))
	for cat := range categories {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool {
		if len(categories[cats[i]]) != len(categories[cats[j]]) {
			return len(categories[cats[i]]) > len(categories[cats[j]])
		}
		return cats[i] < cats[j]
	})
	return cats
}

func keysByCount(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
