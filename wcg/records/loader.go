package records

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/ZanzyTHEbar/wikigraph/wcg/indexing"
)

// maxLineSize bounds a single export line; titles and labels are short, but
// some dumps carry long content-model or language columns.
const maxLineSize = 16 * 1024 * 1024

// Stats summarises one source.
type Stats struct {
	Source   string
	Records  int
	Retained int
	Skipped  int
	Duration time.Duration
}

// Loader reads both export sources into indices sharing one symbol table.
type Loader struct {
	logger zerolog.Logger
	syms   *indexing.Symbols
}

type LoaderOption func(*Loader)

// WithLogger sets a custom logger
func WithLogger(logger zerolog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithSymbols interns into an existing table instead of a fresh one.
func WithSymbols(syms *indexing.Symbols) LoaderOption {
	return func(l *Loader) {
		if syms != nil {
			l.syms = syms
		}
	}
}

func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		logger: zerolog.Nop(),
		syms:   indexing.NewSymbols(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Symbols returns the table shared by every index this loader produces.
func (l *Loader) Symbols() *indexing.Symbols { return l.syms }

// LoadPages builds a Page Index, skipping records outside the retained namespaces.
func (l *Loader) LoadPages(r io.Reader, source string) (*indexing.PageIndex, Stats, error) {
	start := time.Now()
	idx := indexing.NewPageIndex(l.syms)
	stats := Stats{Source: source}

	err := scanLines(r, source, func(line string, lineNo int) error {
		stats.Records++
		rec, err := ParsePageRecord(line)
		if err != nil {
			recordsTotal.WithLabelValues("pages", "malformed").Inc()
			return locate(err, source, lineNo)
		}
		if !rec.Namespace.Retained() {
			stats.Skipped++
			recordsTotal.WithLabelValues("pages", "skipped").Inc()
			l.logger.Trace().Str("source", source).Int("line", lineNo).
				Int("namespace", int(rec.Namespace)).Msg("skipping metadata page")
			return nil
		}
		stats.Retained++
		recordsTotal.WithLabelValues("pages", "retained").Inc()
		return idx.Add(rec.ID, rec.Namespace, rec.Title)
	})
	stats.Duration = time.Since(start)
	loadDuration.WithLabelValues("pages").Observe(stats.Duration.Seconds())
	if err != nil {
		l.logger.Error().Err(err).Str("source", source).Msg("page ingestion failed")
		return nil, stats, err
	}

	l.logger.Info().Str("source", source).Int("records", stats.Records).
		Int("retained", stats.Retained).Int("skipped", stats.Skipped).
		Dur("duration", stats.Duration).Msg("pages loaded")
	return idx, stats, nil
}

// LoadCategoryLinks builds a Category-Link Index. Every record is kept.
func (l *Loader) LoadCategoryLinks(r io.Reader, source string) (*indexing.LinkIndex, Stats, error) {
	start := time.Now()
	idx := indexing.NewLinkIndex(l.syms)
	stats := Stats{Source: source}

	err := scanLines(r, source, func(line string, lineNo int) error {
		stats.Records++
		rec, err := ParseLinkRecord(line)
		if err != nil {
			recordsTotal.WithLabelValues("links", "malformed").Inc()
			return locate(err, source, lineNo)
		}
		if rec.Type == indexing.MembershipOther {
			l.logger.Debug().Str("source", source).Int("line", lineNo).
				Str("type", rec.RawType).Msg("unrecognised membership type kept as other")
		}
		stats.Retained++
		recordsTotal.WithLabelValues("links", "retained").Inc()
		return idx.Add(rec.ChildID, rec.Label, rec.Type)
	})
	stats.Duration = time.Since(start)
	loadDuration.WithLabelValues("links").Observe(stats.Duration.Seconds())
	if err != nil {
		l.logger.Error().Err(err).Str("source", source).Msg("category link ingestion failed")
		return nil, stats, err
	}

	l.logger.Info().Str("source", source).Int("records", stats.Records).
		Int("labels", idx.NumLabels()).Dur("duration", stats.Duration).Msg("category links loaded")
	return idx, stats, nil
}

// LoadFiles opens and loads both sources. Either path may end in ".gz".
func (l *Loader) LoadFiles(pagesPath, linksPath string) (*indexing.PageIndex, *indexing.LinkIndex, error) {
	pf, err := Open(pagesPath)
	if err != nil {
		return nil, nil, err
	}
	defer pf.Close()
	pages, _, err := l.LoadPages(pf, pagesPath)
	if err != nil {
		return nil, nil, err
	}

	lf, err := Open(linksPath)
	if err != nil {
		return nil, nil, err
	}
	defer lf.Close()
	links, _, err := l.LoadCategoryLinks(lf, linksPath)
	if err != nil {
		return nil, nil, err
	}
	return pages, links, nil
}

// Load reads both sources with a fresh Loader.
func Load(pagesSrc, linksSrc io.Reader) (*indexing.PageIndex, *indexing.LinkIndex, error) {
	l := NewLoader()
	pages, _, err := l.LoadPages(pagesSrc, "pages")
	if err != nil {
		return nil, nil, err
	}
	links, _, err := l.LoadCategoryLinks(linksSrc, "categorylinks")
	if err != nil {
		return nil, nil, err
	}
	return pages, links, nil
}

func scanLines(r io.Reader, source string, fn func(line string, lineNo int) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		if err := fn(sc.Text(), lineNo); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read %s after line %d: %w", source, lineNo, err)
	}
	return nil
}

func locate(err error, source string, lineNo int) error {
	var re *RecordError
	if errors.As(err, &re) {
		re.Source = source
		re.Line = lineNo
		return re
	}
	return fmt.Errorf("%s:%d: %w", source, lineNo, err)
}
