package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/gophdiary/internal/common"
	"github.com/dmitrijs2005/gophdiary/internal/filex"
	"github.com/dmitrijs2005/gophdiary/internal/models"
	"github.com/dmitrijs2005/gophdiary/internal/store"
	"github.com/dmitrijs2005/gophdiary/internal/timex"
	"github.com/dmitrijs2005/gophdiary/internal/transfer"
)

// List prints all entries. A failed listing is reported and rendered as an
// empty diary.
func (a *App) List(ctx context.Context) error {
	return a.Search(ctx, "")
}

func (a *App) Search(ctx context.Context, keyword string) error {
	xs, err := a.diary.Search(ctx, keyword)
	if err != nil {
		fmt.Fprintf(a.out, "Could not load diaries: %v\n", err)
		renderList(a.out, nil)
		return err
	}
	renderList(a.out, xs)
	return nil
}

func (a *App) Show(ctx context.Context, id string) error {
	e, err := a.lookup(ctx, id)
	if err != nil {
		return err
	}
	renderEntry(a.out, e)
	return nil
}

func (a *App) New(ctx context.Context) error {
	today := timex.Today(a.now())

	date, err := GetSimpleText(a.reader, fmt.Sprintf("Date (YYYY-MM-DD) [%s]", today), a.out)
	if err != nil {
		return err
	}
	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}
	tags, err := GetSimpleText(a.reader, "Tags (comma separated)", a.out)
	if err != nil {
		return err
	}

	return a.save(ctx, models.Draft{Date: date, Title: title, Content: content, Tags: models.ParseTags(tags)})
}

// Edit prompts for every field with the current value as default; an empty
// answer keeps it.
func (a *App) Edit(ctx context.Context, id string) error {
	e, err := a.lookup(ctx, id)
	if err != nil {
		return err
	}
	d := models.DraftFrom(e)

	keep := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	v, err := GetSimpleText(a.reader, fmt.Sprintf("Date [%s]", d.Date), a.out)
	if err != nil {
		return err
	}
	keep(&d.Date, v)

	if v, err = GetSimpleText(a.reader, fmt.Sprintf("Title [%s]", d.Title), a.out); err != nil {
		return err
	}
	keep(&d.Title, v)

	if v, err = GetMultiline(a.reader, "Content (empty keeps the current text)", a.out); err != nil {
		return err
	}
	keep(&d.Content, v)

	if v, err = GetSimpleText(a.reader, fmt.Sprintf("Tags [%s]", strings.Join(d.Tags, ", ")), a.out); err != nil {
		return err
	}
	if v != "" {
		d.Tags = models.ParseTags(v)
	}

	return a.save(ctx, d)
}

func (a *App) Delete(ctx context.Context, id string) error {
	e, err := a.lookup(ctx, id)
	if err != nil {
		return err
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete %q from %s?", e.Title, e.Date), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.diary.Delete(ctx, id); err != nil {
		fmt.Fprintf(a.out, "Could not delete the entry: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

// Export writes a backup to path, or to the dated default name when path
// is empty. The file is only written once the export succeeded, so an
// existing file survives a failed export.
func (a *App) Export(ctx context.Context, path string) error {
	if path == "" {
		path = transfer.FileName(a.now())
	}

	var buf bytes.Buffer
	n, err := a.transfer.Export(ctx, &buf)
	if err != nil {
		if errors.Is(err, common.ErrNothingToExport) {
			fmt.Fprintln(a.out, "There are no diaries to export.")
		} else {
			fmt.Fprintf(a.out, "Export failed: %v\n", err)
		}
		return err
	}

	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		fmt.Fprintf(a.out, "Could not write %s: %v\n", path, err)
		return err
	}

	fmt.Fprintf(a.out, "Exported %d entries to %s\n", n, path)
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place.
func writeFileAtomic(path string, data []byte) error {
	dir, err := filex.EnsureParentDir(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".diary-export-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (a *App) Import(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(a.out, "Could not open %s: %v\n", path, err)
		return err
	}
	xs, err := transfer.Decode(f)
	_ = f.Close()
	if err != nil {
		fmt.Fprintf(a.out, "Invalid file format: %v\n", err)
		return err
	}

	prompt := fmt.Sprintf("Import %d entries?", len(xs))
	if _, replaces := a.diary.Store().(store.Replacer); replaces {
		prompt = fmt.Sprintf("Import %d entries? This replaces all current entries.", len(xs))
	}
	ok, err := Confirm(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	res, err := a.transfer.ImportEntries(ctx, xs)
	if err != nil {
		fmt.Fprintf(a.out, "Import failed: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Imported: %d, failed: %d\n", res.Imported, res.Failed)
	return nil
}

func (a *App) lookup(ctx context.Context, id string) (models.Entry, error) {
	e, err := a.diary.Get(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		fmt.Fprintln(a.out, "entry not found")
		return models.Entry{}, err
	}
	if err != nil {
		fmt.Fprintf(a.out, "Could not load diaries: %v\n", err)
		return models.Entry{}, err
	}
	return e, nil
}

func (a *App) save(ctx context.Context, d models.Draft) error {
	e, err := a.diary.Save(ctx, d)
	if errors.Is(err, common.ErrValidation) {
		fmt.Fprintf(a.out, "Not saved: %v\n", err)
		return err
	}
	if err != nil {
		fmt.Fprintf(a.out, "Could not save the entry: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Saved %q (id: %s)\n", e.Title, e.ID)
	return nil
}
