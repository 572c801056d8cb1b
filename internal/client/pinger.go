package client

import (
	"log/slog"
	"sync"
	"time"
)

// Pinger calls send on a fixed interval while armed. Resume and Pause are
// idempotent so a repeated reconnection signal never arms a second timer.
type Pinger struct {
	interval time.Duration
	send     func() error
	logger   *slog.Logger

	mu    sync.Mutex
	armed bool
	stop  chan struct{}
}

// NewPinger creates a paused pinger.
func NewPinger(interval time.Duration, send func() error, logger *slog.Logger) *Pinger {
	return &Pinger{
		interval: interval,
		send:     send,
		logger:   logger,
	}
}

// Resume arms the timer. It reports false when it was already armed.
func (p *Pinger) Resume() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.armed {
		return false
	}
	p.armed = true
	p.stop = make(chan struct{})
	go p.loop(p.stop)

	return true
}

// Pause disarms the timer. It reports false when it was not armed.
func (p *Pinger) Pause() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.armed {
		return false
	}
	p.armed = false
	close(p.stop)

	return true
}

// Armed reports whether the timer is running.
func (p *Pinger) Armed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.armed
}

// Follow pauses and resumes with the client state. Register it with
// Client.OnStateChange.
func (p *Pinger) Follow(state State) {
	if state == StateConnected {
		p.Resume()

		return
	}
	p.Pause()
}

func (p *Pinger) loop(stop <-chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			// Pause may have raced the tick
			select {
			case <-stop:
				return
			default:
			}
			if err := p.send(); err != nil {
				p.logger.Debug("Location ping not sent", slog.Any("error", err))
			}
		}
	}
}
