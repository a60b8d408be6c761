package fuse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beeleads/replysift/internal/classify"
	"github.com/beeleads/replysift/internal/extract"
)

func TestMergeFirstNonEmptyTitleWins(t *testing.T) {
	first := &extract.Record{
		Emails: []string{"jane@acme.example"},
		Title:  "CEO",
	}
	second := &extract.Record{
		Emails: []string{"jane@acme.example"},
		Title:  "Engineer",
	}

	merged := Merge([]*extract.Record{first, second})
	require.Len(t, merged, 1)
	assert.Equal(t, "CEO", merged[0].Title)

	// Reversing the input changes the outcome: the merge is order-sensitive
	// and callers must supply records in canonical traversal order.
	reversed := Merge([]*extract.Record{second, first})
	require.Len(t, reversed, 1)
	assert.Equal(t, "Engineer", reversed[0].Title)
}

func TestMergeFillsEmptyTitleAndCompany(t *testing.T) {
	records := []*extract.Record{
		{Emails: []string{"jane@acme.example"}},
		{Emails: []string{"jane@acme.example"}, Title: "Director", Company: "Acme Inc"},
	}

	merged := Merge(records)
	require.Len(t, merged, 1)
	assert.Equal(t, "Director", merged[0].Title)
	assert.Equal(t, "Acme Inc", merged[0].Company)
}

func TestMergeUnionsMultiValuedFields(t *testing.T) {
	records := []*extract.Record{
		{
			Emails: []string{"jane@acme.example", "jane.doe@acme.example"},
			Phones: []string{"4155550134"},
			Names:  []string{"Jane Doe"},
		},
		{
			Emails: []string{"jane@acme.example", "jd@acme.example"},
			Phones: []string{"4155550134", "4155550199"},
			Names:  []string{"Jane Doe", "Jane"},
		},
	}

	merged := Merge(records)
	require.Len(t, merged, 1)

	c := merged[0]
	assert.Equal(t, []string{"jane@acme.example", "jane.doe@acme.example", "jd@acme.example"}, c.Emails)
	assert.Equal(t, []string{"4155550134", "4155550199"}, c.Phones)
	assert.Equal(t, []string{"Jane Doe", "Jane"}, c.Names)
}

func TestMergeDropsRecordsWithoutEmail(t *testing.T) {
	records := []*extract.Record{
		{Names: []string{"Jane Doe"}, Phones: []string{"4155550134"}},
		{Emails: []string{"bob@acme.example"}},
	}

	merged := Merge(records)
	require.Len(t, merged, 1)
	assert.Equal(t, "bob@acme.example", merged[0].PrimaryEmail)
}

func TestMergePreservesFirstSeenOrder(t *testing.T) {
	records := []*extract.Record{
		{Emails: []string{"a@acme.example"}, Category: classify.CategoryReplies},
		{Emails: []string{"b@acme.example"}, Category: classify.CategoryOutOfOffice},
		{Emails: []string{"a@acme.example"}, Category: classify.CategoryOutOfOffice},
	}

	merged := Merge(records)
	require.Len(t, merged, 2)
	assert.Equal(t, "a@acme.example", merged[0].PrimaryEmail)
	assert.Equal(t, "b@acme.example", merged[1].PrimaryEmail)

	// Scalar context fields come from the first record seen for the key.
	assert.Equal(t, classify.CategoryReplies, merged[0].Category)
}

func TestMergeEmptyInput(t *testing.T) {
	assert.Empty(t, Merge(nil))
	assert.Empty(t, Merge([]*extract.Record{}))
}
