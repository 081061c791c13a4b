package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophdiary/internal/models"
)

const previewRunes = 100

// preview shortens content to its first previewRunes characters.
func preview(content string) string {
	r := []rune(content)
	if len(r) <= previewRunes {
		return content
	}
	return string(r[:previewRunes]) + "..."
}

func renderList(w io.Writer, xs []models.Entry) {
	if len(xs) == 0 {
		fmt.Fprintln(w, "No diaries yet.")
		return
	}
	for _, e := range xs {
		fmt.Fprintf(w, "[%s] %s  (id: %s)\n", e.Date, e.Title, e.ID)
		if p := preview(strings.ReplaceAll(e.Content, "\n", " ")); p != "" {
			fmt.Fprintf(w, "    %s\n", p)
		}
		if len(e.Tags) > 0 {
			fmt.Fprintf(w, "    #%s\n", strings.Join(e.Tags, " #"))
		}
	}
}

func renderEntry(w io.Writer, e models.Entry) {
	fmt.Fprintf(w, "ID:      %s\n", e.ID)
	fmt.Fprintf(w, "Date:    %s\n", e.Date)
	fmt.Fprintf(w, "Title:   %s\n", e.Title)
	if len(e.Tags) > 0 {
		fmt.Fprintf(w, "Tags:    %s\n", strings.Join(e.Tags, ", "))
	}
	if !e.CreatedAt.IsZero() {
		fmt.Fprintf(w, "Created: %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	if !e.UpdatedAt.IsZero() {
		fmt.Fprintf(w, "Updated: %s\n", e.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, e.Content)
}
