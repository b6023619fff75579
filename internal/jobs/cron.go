package jobs

import (
    "context"
    "sync/atomic"
    "time"

    "github.com/robfig/cron/v3"
    "github.com/rs/zerolog"
)

type runner interface{ RunOnce(ctx context.Context) error }

// Cron drives unattended periodic extraction. Overlapping runs are
// skipped, not queued: a tick that fires while an export is still in
// flight does nothing.
type Cron struct {
    log     zerolog.Logger
    run     runner
    c       *cron.Cron
    timeout time.Duration
    busy    atomic.Bool
}

func NewCron(spec string, timeout time.Duration, log zerolog.Logger, run runner) (*Cron, error) {
    c := cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)))
    cr := &Cron{log: log, run: run, c: c, timeout: timeout}
    if _, err := c.AddFunc(spec, cr.tick); err != nil { return nil, err }
    return cr, nil
}

func (cr *Cron) Start() { cr.c.Start() }
func (cr *Cron) Stop()  { cr.c.Stop() }

func (cr *Cron) tick() {
    if !cr.busy.CompareAndSwap(false, true) {
        cr.log.Info().Msg("cron: previous extraction still running, skipping tick")
        return
    }
    defer cr.busy.Store(false)
    ctx, cancel := context.WithTimeout(context.Background(), cr.timeout)
    defer cancel()
    cr.log.Info().Msg("cron: extraction")
    if err := cr.run.RunOnce(ctx); err != nil {
        cr.log.Error().Err(err).Msg("cron: extraction failed")
    }
}
