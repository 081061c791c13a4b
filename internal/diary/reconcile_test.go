package diary

import (
	"testing"

	"github.com/dmitrijs2005/gophdiary/internal/models"
	"github.com/stretchr/testify/assert"
)

func ids(xs []models.Entry) []string {
	out := make([]string, len(xs))
	for i, e := range xs {
		out[i] = e.ID
	}
	return out
}

func TestSortForDisplay(t *testing.T) {
	in := []models.Entry{
		{ID: "a", Date: "2024-01-01"},
		{ID: "b", Date: "2024-03-01"},
		{ID: "c", Date: "2024-02-01"},
	}

	got := SortForDisplay(in)
	assert.Equal(t, []string{"b", "c", "a"}, ids(got))
	assert.Equal(t, []string{"a", "b", "c"}, ids(in), "input must not be reordered")
}

func TestSortForDisplay_TiesKeepOrder(t *testing.T) {
	in := []models.Entry{
		{ID: "x", Date: "2024-05-05"},
		{ID: "y", Date: "2024-05-05"},
		{ID: "z", Date: "2024-05-06"},
	}
	assert.Equal(t, []string{"z", "x", "y"}, ids(SortForDisplay(in)))
}

func TestSortForDisplay_InvalidDatesLast(t *testing.T) {
	in := []models.Entry{
		{ID: "bad1", Date: "yesterday"},
		{ID: "ok", Date: "2024-01-01"},
		{ID: "bad2", Date: ""},
		{ID: "ts", Date: "2024-01-02T08:00:00Z"},
	}
	assert.Equal(t, []string{"ts", "ok", "bad1", "bad2"}, ids(SortForDisplay(in)))
}

func TestSortForDisplay_Empty(t *testing.T) {
	assert.Empty(t, SortForDisplay(nil))
}

func TestFilter(t *testing.T) {
	in := []models.Entry{
		{ID: "1", Title: "Beach day", Content: "sun", Tags: []string{}},
		{ID: "2", Title: "Work", Content: "Meeting about the BEACH project", Tags: []string{}},
		{ID: "3", Title: "Misc", Content: "nothing", Tags: []string{"Travel", "summer"}},
		{ID: "4", Title: "Other", Content: "x", Tags: []string{}},
	}

	tests := []struct {
		name    string
		keyword string
		want    []string
	}{
		{"title and content", "beach", []string{"1", "2"}},
		{"trimmed and folded", "  BeAcH ", []string{"1", "2"}},
		{"tag substring", "trav", []string{"3"}},
		{"no match", "mountain", []string{}},
		{"blank", "   ", []string{"1", "2", "3", "4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(in, tt.keyword)))
		})
	}
}
