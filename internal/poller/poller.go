package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github-stats/internal/models"
	"github-stats/internal/shared/loggers"
	"github-stats/internal/stores"
)

// pollState tags the phases of one polling cycle.
type pollState string

const (
	stateIdle       pollState = "idle"
	stateChecking   pollState = "checking"
	stateFetching   pollState = "fetching"
	statePersisting pollState = "persisting"
)

// Poller runs the upstream polling loop: one cycle at a time, sequential,
// never overlapping with itself. Every failure inside a cycle is caught at
// the top of the loop, logged and answered with a fixed-delay retry; the
// loop is never fatal to the process.
type Poller struct {
	client     Client
	eventStore stores.EventStore
	archive    stores.RawPayloadStore
	stateStore StateStore

	retryDelay         time.Duration
	rateLimitThreshold int

	state  *models.ClientState
	logger loggers.Logger

	wg       sync.WaitGroup
	stopOnce sync.Once
	stopCh   chan struct{}

	// now and sleep are indirected for tests
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) bool
}

func New(client Client, eventStore stores.EventStore, archive stores.RawPayloadStore, stateStore StateStore, retryDelay time.Duration, rateLimitThreshold int, logger loggers.Logger) *Poller {
	p := &Poller{
		client:             client,
		eventStore:         eventStore,
		archive:            archive,
		stateStore:         stateStore,
		retryDelay:         retryDelay,
		rateLimitThreshold: rateLimitThreshold,
		logger:             logger,
		stopCh:             make(chan struct{}),
		now:                func() time.Time { return time.Now().UTC() },
	}
	p.sleep = p.interruptibleSleep
	return p
}

// Start loads the persisted client state and spawns the polling goroutine.
func (p *Poller) Start(ctx context.Context) error {
	state, err := p.stateStore.Load(ctx)
	if err != nil {
		return err
	}
	p.state = state

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.run(ctx)
	}()
	return nil
}

// Stop waits for the in-flight cycle to finish (best called during app
// shutdown, after cancelling the context passed to Start).
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
	p.wg.Wait()
}

func (p *Poller) run(ctx context.Context) {
	p.logger.Info().Msgf("polling loop started (interval=%s, retry_delay=%s)", p.state.PollInterval(), p.retryDelay)

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopCh:
			return
		default:
		}

		if err := p.runCycle(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			metricPollCyclesTotal.WithLabelValues(outcomeError).Inc()
			p.logger.Error().Err(err).Msgf("polling cycle failed, retrying in %s", p.retryDelay)
			if !p.sleep(ctx, p.retryDelay) {
				return
			}
			continue
		}

		if !p.sleep(ctx, p.state.PollInterval()) {
			return
		}
	}
}

// runCycle drives one pass of the explicit state machine:
// IDLE -> CHECKING -> {NO_CHANGE | FETCHING} -> PERSISTING -> IDLE.
func (p *Poller) runCycle(ctx context.Context) error {
	var fetched *FetchResult
	state := stateChecking

	for {
		switch state {
		case stateChecking:
			if err := p.awaitRateLimit(ctx); err != nil {
				return err
			}
			changed, pollInterval, err := p.client.Check(ctx, p.state)
			if err != nil {
				return err
			}
			if !changed {
				return p.finishNoChange(ctx, pollInterval)
			}
			state = stateFetching

		case stateFetching:
			if err := p.awaitRateLimit(ctx); err != nil {
				return err
			}
			result, err := p.client.Fetch(ctx, p.state)
			if err != nil {
				return err
			}
			// lost the race with CHECKING: treat exactly like NO_CHANGE
			if result.NotModified {
				return p.finishNoChange(ctx, result.PollIntervalSec)
			}

			fetchedAt := p.now()
			if _, err := p.archive.Put(ctx, fetchedAt, result.Payload); err != nil {
				if !errors.Is(err, stores.ErrPayloadAlreadyArchived) {
					return err
				}
				p.logger.Warn().Msgf("payload for %s already archived, skipping archive write", fetchedAt)
			}

			p.state.ETag = result.ETag
			p.state.LastModified = result.LastModified
			if result.PollIntervalSec > 0 {
				p.state.PollIntervalSec = result.PollIntervalSec
			}
			metricEventsFetchedTotal.Add(float64(len(result.Events)))
			fetched = result
			state = statePersisting

		case statePersisting:
			batch := collapseFirstWins(fetched.Events)
			inserted, err := p.eventStore.Insert(ctx, batch)
			if err != nil {
				return err
			}
			p.logger.Info().
				Str(loggers.FieldPollState, string(statePersisting)).
				Msgf("fetched %d events (%d after batch collapse), %d newly persisted", len(fetched.Events), len(batch), inserted)

			now := p.now()
			p.state.LastPoll = now
			p.state.NextPoll = now.Add(p.state.PollInterval())
			if err := p.stateStore.Save(ctx, p.state); err != nil {
				return err
			}
			metricPollCyclesTotal.WithLabelValues(outcomePersisted).Inc()
			return nil
		}
	}
}

// finishNoChange updates scheduling state after a not-modified response; no
// fetch was consumed.
func (p *Poller) finishNoChange(ctx context.Context, pollIntervalSec int) error {
	if pollIntervalSec > 0 {
		p.state.PollIntervalSec = pollIntervalSec
	}
	now := p.now()
	p.state.LastPoll = now
	p.state.NextPoll = now.Add(p.state.PollInterval())
	if err := p.stateStore.Save(ctx, p.state); err != nil {
		return err
	}
	metricPollCyclesTotal.WithLabelValues(outcomeNoChange).Inc()
	p.logger.Debug().Str(loggers.FieldPollState, string(stateIdle)).Msg("no new events upstream")
	return nil
}

// awaitRateLimit sleeps until the upstream-reported reset when the remaining
// quota is below the safety threshold, instead of burning the last requests
// and getting blocked outright.
func (p *Poller) awaitRateLimit(ctx context.Context) error {
	rate := p.client.RateLimit()
	if rate.Remaining < 0 || rate.Remaining >= p.rateLimitThreshold {
		return nil
	}
	wait := rate.Reset.Sub(p.now())
	if wait <= 0 {
		return nil
	}

	metricRateLimitSleepsTotal.Inc()
	p.logger.Warn().Msgf("rate limit low (%d remaining), sleeping %s until reset", rate.Remaining, wait)
	if !p.sleep(ctx, wait) {
		return context.Canceled
	}
	return nil
}

// interruptibleSleep returns false when the poller is being shut down.
func (p *Poller) interruptibleSleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-p.stopCh:
		return false
	case <-timer.C:
		return true
	}
}

// collapseFirstWins dedups a fetched batch by event id, keeping the first
// occurrence. The store applies its own collapse and duplicate check on top.
func collapseFirstWins(events []models.RawEvent) []models.RawEvent {
	seen := make(map[string]struct{}, len(events))
	out := make([]models.RawEvent, 0, len(events))
	for _, event := range events {
		if _, dup := seen[event.ID]; dup {
			continue
		}
		seen[event.ID] = struct{}{}
		out = append(out, event)
	}
	return out
}
