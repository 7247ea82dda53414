package query

import (
	"context"
	"sync"
	"time"
)

// PollFunc performs one fetch. It must honour ctx cancellation.
type PollFunc func(ctx context.Context)

// Poller runs a fetch at a fixed interval inside a cancellable scope.
//
// At most one fetch runs at a time: ticks that arrive while a fetch is
// outstanding are dropped. Pause suspends scheduled fetches without tearing
// the poller down; Stop cancels the in-flight fetch and returns only after
// the poll goroutine has exited, so no PollFunc runs after Stop.
type Poller struct {
	interval time.Duration
	fn       PollFunc

	mu      sync.Mutex
	paused  bool
	cancel  context.CancelFunc
	done    chan struct{}
	trigger chan struct{}
	resume  chan struct{}
}

// NewPoller prepares a poller; nothing runs until Start.
func NewPoller(interval time.Duration, fn PollFunc) *Poller {
	return &Poller{
		interval: interval,
		fn:       fn,
		trigger:  make(chan struct{}, 1),
		resume:   make(chan struct{}, 1),
	}
}

// Start launches the poll loop bound to ctx. The first fetch happens
// immediately. Calling Start on a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.loop(ctx, p.done)
}

// Running reports whether the loop is active (possibly paused).
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done != nil
}

// Stop cancels the scope and waits for the loop to exit.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Pause suspends scheduled fetches; an in-flight fetch finishes normally.
func (p *Poller) Pause() {
	p.mu.Lock()
	p.paused = true
	p.mu.Unlock()
}

// Resume re-enables scheduled fetches and fetches at once.
func (p *Poller) Resume() {
	p.mu.Lock()
	was := p.paused
	p.paused = false
	p.mu.Unlock()
	if was {
		select {
		case p.resume <- struct{}{}:
		default:
		}
	}
}

// Paused reports whether scheduled fetches are suspended.
func (p *Poller) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Trigger asks for a fetch as soon as the current one (if any) settles.
// Multiple triggers before that point coalesce into one fetch.
func (p *Poller) Trigger() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

func (p *Poller) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if p.Paused() {
				continue
			}
		case <-p.trigger:
		case <-p.resume:
		}
		p.poll(ctx)
		// Ticks that fired while polling are stale.
		select {
		case <-ticker.C:
		default:
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	p.fn(ctx)
}
