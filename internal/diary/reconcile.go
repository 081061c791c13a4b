package diary

import (
	"slices"
	"strings"

	"github.com/dmitrijs2005/gophdiary/internal/models"
	"github.com/dmitrijs2005/gophdiary/internal/timex"
)

// SortForDisplay returns a copy of entries ordered by date, newest first.
// Entries with equal dates keep their relative order. Entries whose date
// cannot be parsed go last.
func SortForDisplay(entries []models.Entry) []models.Entry {
	type keyed struct {
		e     models.Entry
		unix  int64
		valid bool
	}

	ks := make([]keyed, len(entries))
	for i, e := range entries {
		ks[i].e = e
		if t, err := timex.ParseDate(e.Date); err == nil {
			ks[i].unix, ks[i].valid = t.Unix(), true
		}
	}

	slices.SortStableFunc(ks, func(a, b keyed) int {
		switch {
		case a.valid && !b.valid:
			return -1
		case !a.valid && b.valid:
			return 1
		case !a.valid && !b.valid:
			return 0
		case a.unix > b.unix:
			return -1
		case a.unix < b.unix:
			return 1
		}
		return 0
	})

	out := make([]models.Entry, len(ks))
	for i := range ks {
		out[i] = ks[i].e
	}
	return out
}

// Filter keeps entries whose title, content or one of the tags contains
// keyword, ignoring case. A blank keyword returns entries unchanged.
func Filter(entries []models.Entry, keyword string) []models.Entry {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return entries
	}

	out := []models.Entry{}
	for _, e := range entries {
		if matches(e, kw) {
			out = append(out, e)
		}
	}
	return out
}

func matches(e models.Entry, kw string) bool {
	if strings.Contains(strings.ToLower(e.Title), kw) || strings.Contains(strings.ToLower(e.Content), kw) {
		return true
	}
	for _, t := range e.Tags {
		if strings.Contains(strings.ToLower(t), kw) {
			return true
		}
	}
	return false
}
