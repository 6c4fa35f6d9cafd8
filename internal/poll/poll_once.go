package poll

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"jobscout/internal/alert"
	"jobscout/internal/config"
	"jobscout/internal/domain"
	"jobscout/internal/rank"
	"jobscout/internal/source"
	"jobscout/internal/store"
)

const fetchTimeout = 2 * time.Minute

// Deps is everything one search cycle needs. All of it is constructed at
// startup and handed in; there is no ambient shared state.
type Deps struct {
	Fetchers   []source.Fetcher
	Profile    config.Profile
	Store      *store.Store
	Dispatcher *alert.Dispatcher
	Log        *zap.Logger
}

// Report summarizes a cycle for the log line at the end.
type Report struct {
	Fetched   int // raw postings across all sources
	Malformed int // dropped at normalization
	Rejected  int // failed the interest profile
	Seen      int // already in the store
	Alerted   int // delivered successfully
	Failed    int // delivery attempted and failed (still persisted)
}

// RunOnce executes one search cycle: concurrent fetch across all sources,
// normalization, then strictly sequential filter → dedup-check → score →
// deliver → persist per record. A source failing, a record being malformed,
// or a single delivery failing never stops the rest of the cycle.
func RunOnce(ctx context.Context, deps Deps) Report {
	var rep Report

	// Fetch all sources concurrently. Results are kept indexed by fetcher so
	// processing order is the configured source order, not completion order.
	results := make([][]source.RawPosting, len(deps.Fetchers))

	var g errgroup.Group
	for i, f := range deps.Fetchers {
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(ctx, fetchTimeout)
			defer cancel()

			raws, err := f.Fetch(fctx)
			if err != nil {
				// isolated: this source contributes nothing this cycle
				deps.Log.Warn("source fetch failed",
					zap.String("source", string(f.Name())),
					zap.Error(err),
				)
				return nil
			}
			results[i] = raws
			return nil
		})
	}
	_ = g.Wait()

	// Normalize per source, flatten in fetch order.
	var jobs []domain.JobPosting
	for i, f := range deps.Fetchers {
		rep.Fetched += len(results[i])
		normalized, skipped := source.Normalize(f.Name(), results[i])
		rep.Malformed += skipped
		if skipped > 0 {
			deps.Log.Debug("dropped malformed postings",
				zap.String("source", string(f.Name())),
				zap.Int("skipped", skipped),
			)
		}
		jobs = append(jobs, normalized...)
	}

	// Sequential by design: delivery pacing and the at-most-once ordering
	// both depend on records going through one at a time.
	for _, j := range jobs {
		if ctx.Err() != nil {
			deps.Log.Info("cycle interrupted, remaining records left for next run")
			break
		}
		deps.processOne(ctx, j, &rep)
	}

	return rep
}

func (d Deps) processOne(ctx context.Context, j domain.JobPosting, rep *Report) {
	if !rank.Admits(d.Profile, j) {
		rep.Rejected++
		d.Log.Debug("rejected",
			zap.String("reason", rank.RejectReason(d.Profile, j)),
			zap.String("title", j.Title),
			zap.String("location", j.Location),
		)
		return
	}

	seen, err := d.Store.Has(ctx, j.URL)
	if err != nil {
		d.Log.Error("dedup lookup failed", zap.String("url", j.URL), zap.Error(err))
		return
	}
	if seen {
		rep.Seen++
		return
	}

	j.MatchScore = rank.Score(d.Profile, j)

	// Deliver, then persist no matter how delivery went. A posting gets one
	// delivery attempt ever; a failed alert is lost rather than re-sent.
	deliverErr := d.Dispatcher.Deliver(ctx, j)

	// Persist even if the process is shutting down mid-cycle: a record that
	// had its delivery attempt must never be left unpersisted.
	if err := d.Store.Put(context.WithoutCancel(ctx), j); err != nil {
		d.Log.Error("persist failed", zap.String("url", j.URL), zap.Error(err))
	}

	if deliverErr != nil {
		rep.Failed++
		d.Log.Warn("alert delivery failed",
			zap.String("url", j.URL),
			zap.String("title", j.Title),
			zap.Error(deliverErr),
		)
		return
	}

	rep.Alerted++
	d.Log.Info("alert sent",
		zap.String("title", j.Title),
		zap.String("company", j.Company),
		zap.Int("score", j.MatchScore),
		zap.String("source", string(j.Source)),
	)
}
