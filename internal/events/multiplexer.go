package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	apperrors "github.com/kk-code-lab/mdir/internal/errors"
	"github.com/kk-code-lab/mdir/internal/logging"
)

const (
	DefaultTickInterval = 250 * time.Millisecond
	DefaultCapacity     = 100
)

// Source delivers raw terminal events. tcell.Screen satisfies it; the method
// must close ch when it returns.
type Source interface {
	ChannelEvents(ch chan<- tcell.Event, quit <-chan struct{})
}

// Options configures a Multiplexer.
type Options struct {
	TickInterval time.Duration
	Capacity     int
	Logger       *slog.Logger
}

// Multiplexer runs a single producer goroutine that races terminal input
// against the tick clock and publishes onto a bounded queue.
type Multiplexer struct {
	queue     chan Event
	interval  time.Duration
	logger    *slog.Logger
	now       func() time.Time
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

// New starts the producer. It stops when ctx is cancelled, when Close is
// called, or when src closes its channel.
func New(ctx context.Context, src Source, opts Options) *Multiplexer {
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultCapacity
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	ctx, cancel := context.WithCancel(ctx)
	m := &Multiplexer{
		queue:    make(chan Event, opts.Capacity),
		interval: opts.TickInterval,
		logger:   opts.Logger,
		now:      time.Now,
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	raw := make(chan tcell.Event)
	quit := make(chan struct{})
	go src.ChannelEvents(raw, quit)
	go m.produce(ctx, raw, quit)
	return m
}

// Next blocks until an event is available. Once the producer has exited and
// the queue is drained it returns ErrChannelClosed.
func (m *Multiplexer) Next() (Event, error) {
	ev, ok := <-m.queue
	if !ok {
		return nil, apperrors.ErrChannelClosed
	}
	return ev, nil
}

// Close stops the producer and waits for it to exit. Safe to call repeatedly.
func (m *Multiplexer) Close() {
	m.closeOnce.Do(m.cancel)
	<-m.done
}

func (m *Multiplexer) produce(ctx context.Context, raw <-chan tcell.Event, quit chan struct{}) {
	defer close(m.done)
	defer close(m.queue)
	defer close(quit)

	m.logger.Debug("event producer started", "tick", m.interval)
	defer m.logger.Debug("event producer stopped")

	timer := time.NewTimer(m.interval)
	defer timer.Stop()
	lastTick := m.now()

	for {
		// Input already waiting wins over a due tick.
		select {
		case ev, ok := <-raw:
			if !ok || !m.forward(ctx, ev) {
				return
			}
			continue
		default:
		}

		budget := max(m.interval-m.now().Sub(lastTick), 0)
		timer.Reset(budget)

		select {
		case <-ctx.Done():
			return
		case ev, ok := <-raw:
			if !ok || !m.forward(ctx, ev) {
				return
			}
			continue
		case <-timer.C:
		}

		now := m.now()
		if now.Sub(lastTick) < m.interval {
			continue
		}
		if !m.publish(ctx, Tick{At: now}) {
			return
		}
		lastTick = now
	}
}

// forward classifies raw and publishes it. Unsupported kinds are dropped.
// It returns false once the producer must stop.
func (m *Multiplexer) forward(ctx context.Context, raw tcell.Event) bool {
	ev, ok := Classify(raw)
	if !ok {
		m.logger.Debug("dropped unsupported event", "kind", fmt.Sprintf("%T", raw))
		return true
	}
	return m.publish(ctx, ev)
}

// publish blocks while the queue is full.
func (m *Multiplexer) publish(ctx context.Context, ev Event) bool {
	select {
	case m.queue <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
