// Package poller measures the active selection on a fixed cadence.
package poller

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/j2h4u/beeminder-wordcount/internal/host"
	"github.com/j2h4u/beeminder-wordcount/internal/wordcount"
)

// DefaultInterval is the time between two measurements.
const DefaultInterval = 500 * time.Millisecond

// Measurement is the word count of a selection and the title of its document.
type Measurement struct {
	WordCount int
	Title     string
}

// Poller ticks on an interval and emits a Measurement whenever the focused
// view has a non-empty selection.
type Poller struct {
	workspace host.Workspace
	interval  time.Duration

	out      chan Measurement
	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New creates a poller. A non-positive interval uses DefaultInterval.
func New(workspace host.Workspace, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		workspace: workspace,
		interval:  interval,
		out:       make(chan Measurement, 1),
	}
}

// Measurements delivers one value per tick that found a selection.
// A slow consumer only ever sees the newest measurement.
func (p *Poller) Measurements() <-chan Measurement { return p.out }

// Start launches the ticker. Calling Start on a running poller is a no-op.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	p.running = true
	p.stopChan = make(chan struct{})

	p.wg.Add(1)
	go p.loop(p.stopChan)
	log.Debug().Dur("interval", p.interval).Msg("selection poller started")
}

// Stop halts the ticker and waits for the current tick to finish.
// No measurement is emitted after Stop returns.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stopChan)
	p.mu.Unlock()

	p.wg.Wait()
	// Drop a measurement that was emitted but never consumed.
	select {
	case <-p.out:
	default:
	}
	log.Debug().Msg("selection poller stopped")
}

// Tick performs one measurement. ok is false when no view is focused or
// nothing is selected.
func (p *Poller) Tick() (Measurement, bool) {
	view, ok := p.workspace.ActiveView()
	if !ok {
		return Measurement{}, false
	}
	selection := view.Selection()
	if selection == "" {
		return Measurement{}, false
	}
	return Measurement{
		WordCount: wordcount.Count(selection),
		Title:     view.Title(),
	}, true
}

func (p *Poller) loop(stop <-chan struct{}) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m, ok := p.Tick()
			if !ok {
				continue
			}
			p.emit(m, stop)
		}
	}
}

// emit replaces any unread measurement with m.
func (p *Poller) emit(m Measurement, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case p.out <- m:
			return
		default:
		}
		select {
		case <-p.out:
		default:
		}
	}
}
