// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pptx2pro/internal/convert"
)

// RecordSummary holds counts from recording one batch.
type RecordSummary struct {
	Recorded int
	Skipped  int
	Failed   int
}

// RecordBatch records every outcome of a finished batch. Outcomes without a
// song id cannot be keyed and are skipped. A failed write is logged and does
// not stop the rest.
func (s *Store) RecordBatch(ctx context.Context, prefix string, r convert.BatchResult, log zerolog.Logger) RecordSummary {
	var sum RecordSummary
	for _, o := range r.Outcomes {
		if o.Song.ID == "" {
			sum.Skipped++
			continue
		}
		if err := s.Record(ctx, FromOutcome(prefix, o)); err != nil {
			log.Warn().Err(err).Str("file", filepath.Base(o.Path)).Msg("catalog write failed")
			sum.Failed++
			continue
		}
		sum.Recorded++
	}
	log.Info().
		Str("prefix", prefix).
		Int("recorded", sum.Recorded).
		Int("skipped", sum.Skipped).
		Int("failed", sum.Failed).
		Msg("catalog updated")
	return sum
}

// FromOutcome converts a batch outcome into a catalog entry.
func FromOutcome(prefix string, o convert.Outcome) Entry {
	e := Entry{
		Prefix: prefix,
		ID:     o.Song.ID,
		Title:  o.Song.Title,
		Author: o.Song.Author,
		Year:   o.Song.Year,
		Source: filepath.Base(o.Path),
		Output: o.Output,
		Status: o.Status,
		Slides: o.Slides,
		Verses: o.Song.Verses,
	}
	if o.Err != nil {
		e.Error = o.Err.Error()
	}
	return e
}
