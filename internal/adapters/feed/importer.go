package feed

import (
	"context"
	"strings"
	"sync"
	"time"

	"pbl/internal/core/department"
	perr "pbl/internal/platform/errors"
	"pbl/internal/platform/logger"
	"pbl/internal/platform/metrics"
	pstrings "pbl/internal/platform/strings"
	ptime "pbl/internal/platform/time"
	ndomain "pbl/internal/services/notices/domain"

	"github.com/mmcdole/gofeed"
)

// Source is one department feed
type Source struct {
	Department string
	URL        string
}

// Sink stores imported notices, skipping ones it already has
type Sink interface {
	Import(ctx context.Context, items []ndomain.Notice) (int, error)
}

// Fetcher is the Client contract the importer needs
type Fetcher interface {
	Fetch(ctx context.Context, url string, cond Conditional) (Result, error)
}

// SourceReport is the outcome for one source
type SourceReport struct {
	Department  string `json:"department"`
	URL         string `json:"url"`
	Items       int    `json:"items"`
	Imported    int    `json:"imported"`
	NotModified bool   `json:"not_modified,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Importer pulls every source into the notice board
type Importer struct {
	fetch   Fetcher
	sink    Sink
	sources []Source
	metrics *metrics.Metrics
	clock   ptime.Clock
	log     *logger.Logger

	mu    sync.Mutex
	conds map[string]Conditional
}

// ParseSources reads DEPT=url pairs. Department codes are canonicalised;
// unknown departments and empty urls are errors
func ParseSources(pairs [][2]string) ([]Source, error) {
	out := make([]Source, 0, len(pairs))
	for _, p := range pairs {
		dept, url := strings.TrimSpace(p[0]), strings.TrimSpace(p[1])
		if dept != department.All {
			code, ok := department.Canonical(dept)
			if !ok {
				return nil, perr.WithField(perr.InvalidArgf("unknown feed department %q", dept), "FEED_URLS")
			}
			dept = code
		}
		if url == "" {
			return nil, perr.WithField(perr.InvalidArgf("empty feed url for %s", dept), "FEED_URLS")
		}
		out = append(out, Source{Department: dept, URL: url})
	}
	return out, nil
}

// NewImporter wires fetch and sink for sources. m and clock may be nil
func NewImporter(fetch Fetcher, sink Sink, sources []Source, m *metrics.Metrics, clock ptime.Clock) *Importer {
	if fetch == nil || sink == nil {
		panic("feed.NewImporter requires a fetcher and a sink")
	}
	if clock == nil {
		clock = ptime.System
	}
	return &Importer{
		fetch:   fetch,
		sink:    sink,
		sources: sources,
		metrics: m,
		clock:   clock,
		log:     logger.Named("feed"),
		conds:   map[string]Conditional{},
	}
}

// Sources returns the configured feeds
func (im *Importer) Sources() []Source { return append([]Source(nil), im.sources...) }

// RunOnce imports every source once. A failing source is reported and the
// rest still run; the error is the first failure
func (im *Importer) RunOnce(ctx context.Context) ([]SourceReport, error) {
	reports := make([]SourceReport, 0, len(im.sources))
	var first error
	for _, src := range im.sources {
		rep, err := im.one(ctx, src)
		if err != nil {
			im.metrics.FeedFailed(src.Department)
			im.log.Warn().Err(err).Str("department", src.Department).Str("url", src.URL).Msg("feed import failed")
			rep.Error = err.Error()
			if first == nil {
				first = err
			}
		}
		reports = append(reports, rep)
	}
	return reports, first
}

func (im *Importer) one(ctx context.Context, src Source) (SourceReport, error) {
	rep := SourceReport{Department: src.Department, URL: src.URL}

	im.mu.Lock()
	cond := im.conds[src.URL]
	im.mu.Unlock()

	res, err := im.fetch.Fetch(ctx, src.URL, cond)
	if err != nil {
		return rep, err
	}
	if res.NotModified {
		rep.NotModified = true
		return rep, nil
	}

	items := ToNotices(res.Feed, src.Department, im.clock.Now())
	rep.Items = len(items)
	n, err := im.sink.Import(ctx, items)
	rep.Imported = n
	if err != nil {
		return rep, err
	}
	im.metrics.FeedImported(src.Department, n)

	im.mu.Lock()
	im.conds[src.URL] = res.Validators
	im.mu.Unlock()
	return rep, nil
}

// Run imports every interval until ctx ends
func (im *Importer) Run(ctx context.Context, every time.Duration) error {
	if every <= 0 {
		return perr.InvalidArgf("feed interval must be positive")
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		if _, err := im.RunOnce(ctx); err != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

// ToNotices maps feed items to notices for dept, oldest first so the
// newest item ends up on top of the board. Items without a title are
// skipped; undated items take now
func ToNotices(f *gofeed.Feed, dept string, now time.Time) []ndomain.Notice {
	if f == nil {
		return nil
	}
	author := pstrings.FirstNonEmpty(strings.TrimSpace(f.Title), dept+" feed")
	out := make([]ndomain.Notice, 0, len(f.Items))
	for i := len(f.Items) - 1; i >= 0; i-- {
		it := f.Items[i]
		if it == nil {
			continue
		}
		title := strings.Join(strings.Fields(PlainText(it.Title)), " ")
		if title == "" {
			continue
		}
		at := now
		switch {
		case it.PublishedParsed != nil:
			at = *it.PublishedParsed
		case it.UpdatedParsed != nil:
			at = *it.UpdatedParsed
		}
		out = append(out, ndomain.Notice{
			Title:      pstrings.Clip(title, 200),
			Content:    pstrings.Clip(PlainText(pstrings.FirstNonEmpty(it.Description, it.Content, it.Link)), 5000),
			Department: dept,
			Priority:   ndomain.PriorityMedium,
			Author:     author,
			CreatedAt:  at.UTC(),
		})
	}
	return out
}
