// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns a directory of hymn slide decks into ProPresenter
// documents, one per deck, converting decks concurrently.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/pptx2pro/internal/pptx"
	"github.com/pdiddy/pptx2pro/internal/render"
	"github.com/pdiddy/pptx2pro/internal/slidetext"
	"github.com/pdiddy/pptx2pro/internal/song"
	"github.com/pdiddy/pptx2pro/pkg/types"
)

// DeckExt is the extension of source decks.
const DeckExt = ".pptx"

// ErrDuplicateID is returned for a deck whose song id was already claimed
// by an earlier deck in the same batch.
var ErrDuplicateID = errors.New("duplicate song id")

// Deck is an open slide deck. Tree may be called from several goroutines.
type Deck interface {
	SlideCount() (int, error)
	Tree(part string) (pptx.Node, error)
	Close() error
}

// Opener opens the deck at path.
type Opener func(path string) (Deck, error)

// OpenPPTX opens a .pptx file from disk.
func OpenPPTX(path string) (Deck, error) {
	return pptx.Open(path)
}

// Job describes one batch: every deck in SourceDir is written to OutputDir.
type Job struct {
	Prefix      string
	SourceDir   string
	OutputDir   string
	Ext         string
	Concurrency int

	// Open defaults to OpenPPTX.
	Open Opener
	// NewID defaults to render.NewID.
	NewID func() string
}

// Outcome records what happened to one deck.
type Outcome struct {
	Path   string
	Output string
	Status types.DocumentStatus
	Song   types.Song
	Slides int
	Err    error
}

// BatchResult holds the outcome of a batch run.
type BatchResult struct {
	Converted int
	Empty     int
	Failed    int
	Outcomes  []Outcome
}

// Total returns the number of decks processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Empty + r.Failed
}

// HasFailures reports whether any deck failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Batch converts every deck in job.SourceDir. The output directory is
// cleared once the source directory has been listed. Errors are returned
// only for setup problems; a failing deck is recorded in the result and does
// not stop the others.
func Batch(ctx context.Context, job Job, log zerolog.Logger) (BatchResult, error) {
	job = withDefaults(job)
	log = log.With().Str("prefix", job.Prefix).Logger()

	log.Info().Str("dir", job.SourceDir).Msg("discovering source files")
	paths, err := Discover(job.SourceDir)
	if err != nil {
		return BatchResult{}, err
	}

	log.Info().Str("dir", job.OutputDir).Msg("setting up output directory")
	if err := PrepareOutput(job.OutputDir); err != nil {
		return BatchResult{}, err
	}

	log.Info().Int("files", len(paths)).Msg("processing files")
	ids := claimIDs(paths)

	outcomes := make([]Outcome, len(paths))
	var g errgroup.Group
	if job.Concurrency > 0 {
		g.SetLimit(job.Concurrency)
	}
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := ids[i]; err != nil {
				outcomes[i] = fail(log, Outcome{Path: p}, err)
				return nil
			}
			outcomes[i] = ConvertDocument(ctx, job, p, log)
			return nil
		})
	}
	_ = g.Wait()

	result := BatchResult{Outcomes: outcomes}
	for _, o := range outcomes {
		switch o.Status {
		case types.DocumentConverted:
			result.Converted++
		case types.DocumentEmpty:
			result.Empty++
		case types.DocumentFailed:
			result.Failed++
		}
	}
	log.Info().
		Int("converted", result.Converted).
		Int("empty", result.Empty).
		Int("failed", result.Failed).
		Int("total", result.Total()).
		Msg("batch summary")
	return result, nil
}

// ConvertDocument converts one deck and writes <id>.<ext> into the output
// directory.
func ConvertDocument(ctx context.Context, job Job, path string, log zerolog.Logger) Outcome {
	job = withDefaults(job)
	out := Outcome{Path: path}

	if err := ctx.Err(); err != nil {
		return fail(log, out, err)
	}

	id, err := song.ParseID(path)
	if err != nil {
		return fail(log, out, err)
	}
	out.Song.ID = id

	slides, err := readSlides(ctx, job.Open, path)
	if err != nil {
		return fail(log, out, err)
	}
	out.Slides = len(slides)

	docLog := log.With().Str("song", strings.ToUpper(job.Prefix)+id).Logger()
	out.Song = song.Assemble(id, slides, docLog)
	doc := render.Build(out.Song, render.Options{Prefix: job.Prefix}, docLog)

	data, err := doc.MarshalPro6(job.NewID)
	if err != nil {
		return fail(log, out, err)
	}

	out.Output = filepath.Join(job.OutputDir, id+"."+job.Ext)
	if err := os.WriteFile(out.Output, data, 0o644); err != nil {
		out.Output = ""
		return fail(log, out, fmt.Errorf("writing %s: %w", id, err))
	}

	if len(out.Song.Verses) == 0 {
		out.Status = types.DocumentEmpty
		docLog.Warn().Str("file", filepath.Base(path)).Msg("is blank")
		return out
	}

	out.Status = types.DocumentConverted
	docLog.Info().
		Str("file", filepath.Base(path)).
		Int("slides", out.Slides).
		Int("verses", len(out.Song.Verses)).
		Msg("converted")
	return out
}

// readSlides opens the deck and reads every slide concurrently. Results are
// returned in slide order.
func readSlides(ctx context.Context, open Opener, path string) ([]types.SlideText, error) {
	deck, err := open(path)
	if err != nil {
		return nil, err
	}
	defer deck.Close()

	n, err := deck.SlideCount()
	if err != nil {
		return nil, err
	}

	slides := make([]types.SlideText, n)
	g, ctx := errgroup.WithContext(ctx)
	for i := range slides {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tree, err := deck.Tree(pptx.SlidePart(i + 1))
			if err != nil {
				return fmt.Errorf("reading slide %d: %w", i+1, err)
			}
			slides[i] = slidetext.Blocks(tree)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slides, nil
}

// PrepareOutput removes dir and everything in it, then recreates it empty.
func PrepareOutput(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clearing output directory %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	return nil
}

// Discover lists the decks in dir in name order. Office lock files
// ("~$name.pptx") and subdirectories are ignored.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory: %w", err)
	}
	var paths []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "~$") || !strings.EqualFold(filepath.Ext(name), DeckExt) {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Strings(paths)
	return paths, nil
}

// claimIDs returns, per path, ErrDuplicateID when an earlier path maps to
// the same song id. Paths without an id are left to ConvertDocument.
func claimIDs(paths []string) []error {
	errs := make([]error, len(paths))
	owner := make(map[string]string, len(paths))
	for i, p := range paths {
		id, err := song.ParseID(p)
		if err != nil {
			continue
		}
		if first, ok := owner[id]; ok {
			errs[i] = fmt.Errorf("%s: id %s already used by %s: %w",
				filepath.Base(p), id, filepath.Base(first), ErrDuplicateID)
			continue
		}
		owner[id] = p
	}
	return errs
}

func fail(log zerolog.Logger, out Outcome, err error) Outcome {
	out.Status = types.DocumentFailed
	out.Err = err
	log.Error().Err(err).Str("file", filepath.Base(out.Path)).Str("id", out.Song.ID).Msg("failed")
	return out
}

func withDefaults(job Job) Job {
	if job.Open == nil {
		job.Open = OpenPPTX
	}
	if job.NewID == nil {
		job.NewID = render.NewID
	}
	if job.Ext == "" {
		job.Ext = "pro6"
	}
	return job
}
