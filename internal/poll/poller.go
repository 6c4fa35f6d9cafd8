package poll

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Poller drives the recurring schedule: one cycle immediately at startup,
// then one per interval. A tick that fires while the previous cycle is still
// running is skipped, not queued; cycles never overlap, so store writes are
// naturally serialized.
type Poller struct {
	deps     Deps
	interval time.Duration
}

func NewPoller(deps Deps, interval time.Duration) *Poller {
	return &Poller{deps: deps, interval: interval}
}

// Run blocks until ctx is cancelled, then waits for any in-flight cycle to
// wind down before returning.
func (p *Poller) Run(ctx context.Context) error {
	lg := cronLogger{p.deps.Log}

	job := cron.NewChain(
		cron.Recover(lg),
		cron.SkipIfStillRunning(lg),
	).Then(cron.FuncJob(func() { p.cycle(ctx) }))

	c := cron.New()
	c.Schedule(cron.Every(p.interval), job)

	p.deps.Log.Info("poller started",
		zap.Duration("interval", p.interval),
		zap.Int("sources", len(p.deps.Fetchers)),
	)

	// immediate first run, through the same chain so a long first cycle
	// still excludes the first tick. Tracked separately: c.Stop only waits
	// for cron-launched jobs, and this one must not outlive Run.
	var startup sync.WaitGroup
	startup.Add(1)
	go func() {
		defer startup.Done()
		job.Run()
	}()

	c.Start()
	<-ctx.Done()

	stopped := c.Stop()
	<-stopped.Done()
	startup.Wait()
	return nil
}

func (p *Poller) cycle(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	start := time.Now()
	p.deps.Log.Info("starting job search cycle")

	rep := RunOnce(ctx, p.deps)

	p.deps.Log.Info("cycle complete",
		zap.Int("fetched", rep.Fetched),
		zap.Int("malformed", rep.Malformed),
		zap.Int("rejected", rep.Rejected),
		zap.Int("already_seen", rep.Seen),
		zap.Int("alerted", rep.Alerted),
		zap.Int("delivery_failures", rep.Failed),
		zap.Duration("took", time.Since(start)),
	)
}

// cronLogger adapts zap to the cron.Logger interface used by the job
// wrappers.
type cronLogger struct {
	log *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Infow(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
