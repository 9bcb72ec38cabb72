package sync

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// sendTimeout is the hard ceiling on one delivery attempt; afterwards
// the attempt is abandoned as a soft failure, never retried.
const sendTimeout = 15 * time.Second

// Agent is the phone-side sync engine. Sync is fire-and-forget: it
// returns immediately and delivery runs in the background. Starting a
// new attempt cancels any attempt still in flight; there is no queue.
type Agent struct {
	transport Transport
	gate      *Gate
	log       *slog.Logger
	now       func() time.Time
}

// NewAgent wires a transport and debounce gate. The logger may be nil.
func NewAgent(t Transport, g *Gate, log *slog.Logger) *Agent {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if g == nil {
		g = NewGate(time.Now)
	}
	return &Agent{transport: t, gate: g, now: time.Now, log: log}
}

// Sync builds the payload for snap and hands it to transport unless the
// debounce gate suppresses it. Returns true when a delivery attempt was
// started.
func (a *Agent) Sync(snap Snapshot) bool {
	payload := BuildPayload(snap, a.now())

	ctx, done, ok := a.gate.Admit(context.Background(), payload.Hash())
	if !ok {
		return false
	}

	body, err := payload.Marshal()
	if err != nil {
		done()
		a.log.Error("sync marshal failed", "err", err)
		return false
	}

	go a.deliver(ctx, done, body)
	return true
}

// deliver runs both channels inside the timeout. Channel failures are
// independent; either, both, or neither may land.
func (a *Agent) deliver(ctx context.Context, done context.CancelFunc, body []byte) {
	defer done()

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	dataErr := a.transport.SendData(ctx, body)
	msgErr := a.transport.SendMessage(ctx, body)

	for channel, err := range map[string]error{"data": dataErr, "message": msgErr} {
		switch {
		case err == nil:
		case errors.Is(err, context.Canceled):
			// Superseded by a newer sync; expected, not a failure.
			a.log.Debug("sync superseded", "channel", channel)
		case errors.Is(err, context.DeadlineExceeded):
			a.log.Warn("sync timed out", "channel", channel)
		default:
			a.log.Warn("sync transport failed", "channel", channel, "err", err)
		}
	}
}
