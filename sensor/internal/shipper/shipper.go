package shipper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/emberwatch/emberwatch/pkg/types"
	"github.com/emberwatch/emberwatch/sensor/internal/config"
)

const (
	backoffInitial    = 1 * time.Second
	backoffMax        = 60 * time.Second
	backoffMultiplier = 2.0
	sendTimeout       = 10 * time.Second
)

// ErrRejected marks a reading the server refused as invalid. Rejected
// readings are discarded instead of retried.
var ErrRejected = errors.New("reading rejected by server")

// sender delivers a single reading over one transport connection.
type sender interface {
	Send(ctx context.Context, r types.Reading) error
	Close()
}

// connectFunc opens a transport connection. Abstracted so tests can inject
// an in-memory sender.
type connectFunc func(ctx context.Context) (sender, error)

// Shipper buffers readings and ships them to the server.
// Ship() is non-blocking; when the buffer is full the oldest reading is
// evicted. Run() must be called in a goroutine to drain the buffer and
// handle reconnection.
type Shipper struct {
	cfg       config.SensorConfig
	buf       chan types.Reading
	connectFn connectFunc
}

// New creates a Shipper for the configured transport.
func New(cfg config.SensorConfig) (*Shipper, error) {
	s := &Shipper{
		cfg: cfg,
		buf: make(chan types.Reading, cfg.BufferSize),
	}
	switch cfg.Transport {
	case config.TransportHTTP:
		s.connectFn = func(ctx context.Context) (sender, error) {
			return newHTTPSender(cfg.ServerURL), nil
		}
	case config.TransportMQTT:
		s.connectFn = func(ctx context.Context) (sender, error) {
			return newMQTTSender(ctx, cfg.MQTT)
		}
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
	}
	return s, nil
}

// Ship enqueues a reading. If the buffer is full the oldest entry is
// evicted to make room.
func (s *Shipper) Ship(r types.Reading) {
	select {
	case s.buf <- r:
	default:
		select {
		case <-s.buf:
			slog.Warn("shipper: buffer full, evicted oldest reading",
				"buffer_cap", cap(s.buf))
		default:
		}
		s.buf <- r
	}
}

// Pending reports how many readings are waiting in the buffer.
func (s *Shipper) Pending() int {
	return len(s.buf)
}

// Run drains the buffer, sending readings to the server.
// It reconnects with exponential backoff when the transport fails.
// Run blocks until ctx is cancelled.
func (s *Shipper) Run(ctx context.Context) {
	bo := newBackoff()

	for {
		if ctx.Err() != nil {
			return
		}

		snd, err := s.connectFn(ctx)
		if err != nil {
			wait := bo.next()
			slog.Error("shipper: connect failed, will retry",
				"transport", s.cfg.Transport,
				"err", err,
				"retry_in", wait)
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
				continue
			}
		}

		slog.Info("shipper: connected", "transport", s.cfg.Transport)
		bo.reset()

		err = s.drain(ctx, snd)
		snd.Close()

		if ctx.Err() != nil {
			return
		}

		wait := bo.next()
		slog.Warn("shipper: transport lost, will reconnect",
			"transport", s.cfg.Transport,
			"err", err,
			"retry_in", wait)
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}

// drain reads from the buffer and sends readings until the transport fails
// or ctx is cancelled.
func (s *Shipper) drain(ctx context.Context, snd sender) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case r := <-s.buf:
			sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
			err := snd.Send(sendCtx, r)
			cancel()

			if err != nil {
				// The server will never accept an invalid reading, so do
				// not retry those.
				if errors.Is(err, ErrRejected) {
					slog.Error("shipper: reading rejected, discarding",
						"status", r.Status, "err", err)
					continue
				}

				// Put the reading back if there's room; otherwise it is
				// lost and the next cycle's data takes its place.
				select {
				case s.buf <- r:
				default:
				}
				return fmt.Errorf("send: %w", err)
			}

			slog.Debug("shipper: reading delivered", "status", r.Status)
		}
	}
}

// backoff implements truncated exponential backoff with jitter.
type backoff struct {
	current time.Duration
}

func newBackoff() *backoff {
	return &backoff{current: backoffInitial}
}

// next returns the current backoff duration and advances the internal state.
func (b *backoff) next() time.Duration {
	d := b.current
	// Apply ±25 % jitter.
	jitter := time.Duration(float64(b.current) * 0.25 * (rand.Float64()*2 - 1)) //nolint:gosec // not crypto
	d += jitter
	if d < 0 {
		d = 0
	}

	// Advance for next call.
	b.current = time.Duration(float64(b.current) * backoffMultiplier)
	if b.current > backoffMax {
		b.current = backoffMax
	}
	return d
}

func (b *backoff) reset() {
	b.current = backoffInitial
}
