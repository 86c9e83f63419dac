// Package session runs the interactive word counting loop.
//
// DESIGN: A single goroutine owns the Settings value. Poller ticks, user
// commands, settings file reloads and finished submissions all arrive on
// channels and are handled one at a time, so no handler ever observes a
// half-applied change. A submission snapshots Settings inside the loop and
// performs its network call on its own goroutine; ticks keep being applied
// while the request is in flight.
package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/j2h4u/beeminder-wordcount/internal/host"
	"github.com/j2h4u/beeminder-wordcount/internal/poller"
	"github.com/j2h4u/beeminder-wordcount/internal/settings"
	"github.com/j2h4u/beeminder-wordcount/internal/submit"
)

// ErrStopped is returned by requests made after Run has returned.
var ErrStopped = errors.New("session stopped")

// Submitter posts a settings snapshot. *submit.Submitter implements it.
type Submitter interface {
	Submit(ctx context.Context, st settings.Settings) submit.Outcome
}

// Config wires a Session.
type Config struct {
	Store     settings.Store
	Poller    *poller.Poller
	Submitter Submitter
	Workspace host.Workspace

	// WatchPath is the settings file to watch for outside edits. Empty disables reloads.
	WatchPath string
	// AuthTokenOverride replaces the stored token in submissions; it is never persisted.
	AuthTokenOverride string

	// OnOutcome is called from the loop when a submission finishes.
	OnOutcome func(submit.Outcome)
	// OnNotice is called from the loop for user-facing notices.
	OnNotice func(msg string)
}

type commandKind int

const (
	cmdSubmit commandKind = iota
	cmdStatus
)

type command struct {
	kind  commandKind
	reply chan settings.Settings
}

// Session is the event loop. Create with New, drive with Run.
type Session struct {
	cfg      Config
	commands chan command
	results  chan submit.Outcome
	done     chan struct{}
	inflight sync.WaitGroup
}

// New creates a session.
func New(cfg Config) *Session {
	if cfg.OnOutcome == nil {
		cfg.OnOutcome = func(submit.Outcome) {}
	}
	if cfg.OnNotice == nil {
		cfg.OnNotice = func(string) {}
	}
	return &Session{
		cfg:      cfg,
		commands: make(chan command),
		results:  make(chan submit.Outcome),
		done:     make(chan struct{}),
	}
}

// RequestSubmit asks the loop to submit the current count.
func (s *Session) RequestSubmit(ctx context.Context) error {
	return s.send(ctx, command{kind: cmdSubmit})
}

// Status returns a copy of the loop's current Settings.
func (s *Session) Status(ctx context.Context) (settings.Settings, error) {
	reply := make(chan settings.Settings, 1)
	if err := s.send(ctx, command{kind: cmdStatus, reply: reply}); err != nil {
		return settings.Settings{}, err
	}
	select {
	case st := <-reply:
		return st, nil
	case <-ctx.Done():
		return settings.Settings{}, ctx.Err()
	case <-s.done:
		return settings.Settings{}, ErrStopped
	}
}

func (s *Session) send(ctx context.Context, c command) error {
	select {
	case s.commands <- c:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrStopped
	}
}

// Run loads Settings, starts the poller and handles events until ctx is
// cancelled. The poller and watcher are stopped before Run returns, and
// in-flight submissions are waited for.
func (s *Session) Run(ctx context.Context) error {
	st, err := s.cfg.Store.Load()
	if err != nil {
		close(s.done)
		return err
	}

	watcher, events, watchErrs := s.startWatcher()
	if watcher != nil {
		defer watcher.Close()
	}

	s.cfg.Poller.Start()
	defer s.cfg.Poller.Stop()

	submitCtx, cancelSubmits := context.WithCancel(ctx)
	defer func() {
		close(s.done)
		cancelSubmits()
		s.inflight.Wait()
	}()

	log.Info().
		Str("user", st.UserName).
		Str("goal", st.GoalName).
		Str("scope", st.Scope.String()).
		Msg("word count session started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("word count session stopped")
			return nil

		case m := <-s.cfg.Poller.Measurements():
			if st.Measure(m.WordCount, m.Title) {
				log.Debug().Int("words", m.WordCount).Str("title", m.Title).Msg("selection measured")
				// Saves the whole record: an outside edit not yet reloaded is overwritten.
				if err := s.cfg.Store.Save(st); err != nil {
					log.Error().Err(err).Msg("failed to persist measurement")
				}
			}

		case c := <-s.commands:
			switch c.kind {
			case cmdStatus:
				c.reply <- st
			case cmdSubmit:
				s.startSubmit(submitCtx, st)
			}

		case o := <-s.results:
			s.cfg.OnOutcome(o)

		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if s.isSettingsEvent(ev) {
				st = s.reload(st)
			}

		case err, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}
			log.Warn().Err(err).Msg("settings watcher error")
		}
	}
}

func (s *Session) startSubmit(ctx context.Context, st settings.Settings) {
	if s.cfg.Workspace != nil && !submit.Available(st.Scope, s.cfg.Workspace) {
		s.cfg.OnNotice("No active editor view; select some text first.")
		return
	}

	snapshot := st
	if s.cfg.AuthTokenOverride != "" {
		snapshot.AuthToken = s.cfg.AuthTokenOverride
	}

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		o := s.cfg.Submitter.Submit(ctx, snapshot)
		select {
		case s.results <- o:
		case <-s.done:
		}
	}()
}

func (s *Session) reload(current settings.Settings) settings.Settings {
	stored, err := s.cfg.Store.Load()
	if err != nil {
		log.Warn().Err(err).Msg("ignoring unreadable settings file")
		return current
	}
	next := current.WithUserFields(stored)
	if next != current {
		log.Info().
			Str("user", next.UserName).
			Str("goal", next.GoalName).
			Str("scope", next.Scope.String()).
			Msg("settings reloaded")
	}
	return next
}

// startWatcher watches the directory holding WatchPath; saves replace the
// file by rename, which a watch on the file itself would lose.
func (s *Session) startWatcher() (*fsnotify.Watcher, <-chan fsnotify.Event, <-chan error) {
	if s.cfg.WatchPath == "" {
		return nil, nil, nil
	}
	dir := filepath.Dir(s.cfg.WatchPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		log.Warn().Err(err).Str("path", s.cfg.WatchPath).Msg("settings reload disabled")
		return nil, nil, nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		log.Warn().Err(err).Msg("settings reload disabled")
		return nil, nil, nil
	}
	if err := w.Add(dir); err != nil {
		log.Warn().Err(err).Str("path", s.cfg.WatchPath).Msg("settings reload disabled")
		w.Close()
		return nil, nil, nil
	}
	return w, w.Events, w.Errors
}

func (s *Session) isSettingsEvent(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != filepath.Clean(s.cfg.WatchPath) {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
