package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophdiary/internal/common"
	"github.com/dmitrijs2005/gophdiary/internal/timex"
)

// Draft is the editor input for a save. A non-empty ID marks an edit.
type Draft struct {
	ID      string   `json:"id,omitempty"`
	Date    string   `json:"date"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// ParseTags splits comma separated tag input, trimming blanks and
// dropping empty items.
func ParseTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Normalize trims the text fields and tags. A blank date becomes today.
func (d *Draft) Normalize(now time.Time) {
	d.ID = strings.TrimSpace(d.ID)
	d.Date = strings.TrimSpace(d.Date)
	d.Title = strings.TrimSpace(d.Title)
	d.Content = strings.TrimSpace(d.Content)
	if d.Date == "" {
		d.Date = timex.Today(now)
	}

	tags := make([]string, 0, len(d.Tags))
	for _, t := range d.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	d.Tags = tags
}

// Validate performs the non-empty checks on a normalized draft.
func (d *Draft) Validate() error {
	if d.Title == "" {
		return fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	if _, err := time.Parse(timex.DateLayout, d.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", common.ErrValidation)
	}
	return nil
}

// Entry converts the draft into an entry ready for saving.
func (d *Draft) Entry() Entry {
	return Entry{
		ID:      d.ID,
		Date:    d.Date,
		Title:   d.Title,
		Content: d.Content,
		Tags:    append([]string{}, d.Tags...),
	}
}

// DraftFrom builds a draft pre-filled from an existing entry.
func DraftFrom(e Entry) Draft {
	return Draft{
		ID:      e.ID,
		Date:    e.Date,
		Title:   e.Title,
		Content: e.Content,
		Tags:    append([]string{}, e.Tags...),
	}
}
