// Package engine drives the combination space through the lookup client.
package engine

import (
	"sync"
	"time"
)

// Pacer spaces networked lookups at least Interval apart, batch-wide. It is
// the single piece of state shared between parallel lookups: each caller
// claims the next request slot under the lock and sleeps outside it.
type Pacer struct {
	Interval time.Duration

	// Clock and Sleep are swapped out in tests.
	Clock func() time.Time
	Sleep func(time.Duration)

	mu   sync.Mutex
	next time.Time
}

// Wait blocks until the caller's claimed request slot arrives. The first
// call never sleeps.
func (p *Pacer) Wait() {
	if p == nil || p.Interval <= 0 {
		return
	}

	p.mu.Lock()
	now := p.now()
	wait := p.next.Sub(now)
	if wait < 0 {
		wait = 0
	}
	p.next = now.Add(wait + p.Interval)
	p.mu.Unlock()

	if wait > 0 {
		p.sleep(wait)
	}
}

func (p *Pacer) now() time.Time {
	if p.Clock != nil {
		return p.Clock()
	}
	return time.Now()
}

func (p *Pacer) sleep(d time.Duration) {
	if p.Sleep != nil {
		p.Sleep(d)
		return
	}
	time.Sleep(d)
}
