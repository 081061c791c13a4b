// Package transfer exports the diary into a versioned JSON file and
// imports such files back.
package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/gophdiary/internal/common"
	"github.com/dmitrijs2005/gophdiary/internal/logging"
	"github.com/dmitrijs2005/gophdiary/internal/models"
	"github.com/dmitrijs2005/gophdiary/internal/store"
	"github.com/dmitrijs2005/gophdiary/internal/timex"
)

// Result summarizes an import.
type Result struct {
	Total    int  `json:"total"`
	Imported int  `json:"imported"`
	Failed   int  `json:"failed"`
	Replaced bool `json:"replaced"`
}

// FileName is the suggested name of an export made at now.
func FileName(now time.Time) string {
	return "diary-backup-" + timex.FormatDate(now) + ".json"
}

type Transcoder struct {
	store store.Store
	log   logging.Logger
	now   func() time.Time
}

func New(s store.Store, log logging.Logger) *Transcoder {
	return &Transcoder{store: s, log: log, now: time.Now}
}

// Export writes every stored entry to w and returns how many were written.
// An empty diary is refused with common.ErrNothingToExport.
func (t *Transcoder) Export(ctx context.Context, w io.Writer) (int, error) {
	xs, err := t.store.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(xs) == 0 {
		return 0, common.ErrNothingToExport
	}

	env := models.Envelope{
		Version:    common.EnvelopeVersion,
		ExportDate: t.now().UTC(),
		Diaries:    xs,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return 0, fmt.Errorf("write export: %w", err)
	}
	t.log.Info(ctx, "diary exported", "count", len(xs))
	return len(xs), nil
}

// Decode reads an export file and returns its entries with tags
// normalized. Any structural problem, repeated ids included, yields
// common.ErrFormat.
func Decode(r io.Reader) ([]models.Entry, error) {
	var raw struct {
		Version string          `json:"version"`
		Diaries json.RawMessage `json:"diaries"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrFormat, err)
	}

	body := bytes.TrimSpace(raw.Diaries)
	if len(body) == 0 || body[0] != '[' {
		return nil, fmt.Errorf("%w: diaries must be an array", common.ErrFormat)
	}

	var xs []models.Entry
	if err := json.Unmarshal(body, &xs); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrFormat, err)
	}
	if id, dup := models.DuplicateID(xs); dup {
		return nil, fmt.Errorf("%w: duplicate id %q", common.ErrFormat, id)
	}
	return models.NormalizeAll(xs), nil
}

// Import decodes r and loads its entries, see ImportEntries.
func (t *Transcoder) Import(ctx context.Context, r io.Reader) (Result, error) {
	xs, err := Decode(r)
	if err != nil {
		return Result{}, err
	}
	return t.ImportEntries(ctx, xs)
}

// ImportEntries overwrites the diary when the store supports it. Otherwise
// each entry is created anew, ids dropped, and failures are counted
// without stopping the batch.
func (t *Transcoder) ImportEntries(ctx context.Context, xs []models.Entry) (Result, error) {
	res := Result{Total: len(xs)}

	if r, ok := t.store.(store.Replacer); ok {
		if err := r.ReplaceAll(ctx, xs); err != nil {
			return res, err
		}
		res.Imported, res.Replaced = len(xs), true
		t.log.Info(ctx, "diary replaced from import", "count", len(xs))
		return res, nil
	}

	for i, e := range xs {
		e.ID = ""
		if _, err := t.store.Save(ctx, e); err != nil {
			res.Failed++
			t.log.Warn(ctx, "import record failed", "index", i, "title", e.Title, "error", err)
			continue
		}
		res.Imported++
	}
	t.log.Info(ctx, "diary imported", "imported", res.Imported, "failed", res.Failed)
	return res, nil
}
