// Package submit turns the current settings into one Beeminder datapoint.
//
// DESIGN: Submit never returns an error. Every failure (vault read, network,
// non-2xx) becomes an unsuccessful Outcome carrying the raw body or error
// text, which is what the user is shown. There is no retry.
package submit

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/j2h4u/beeminder-wordcount/internal/beeminder"
	"github.com/j2h4u/beeminder-wordcount/internal/history"
	"github.com/j2h4u/beeminder-wordcount/internal/host"
	"github.com/j2h4u/beeminder-wordcount/internal/settings"
	"github.com/j2h4u/beeminder-wordcount/internal/wordcount"
)

// commentTimeLayout matches a JavaScript Date.toISOString() timestamp.
const commentTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Poster creates datapoints. *beeminder.Client implements it.
type Poster interface {
	CreateDatapoint(ctx context.Context, dp beeminder.Datapoint) (*beeminder.Response, error)
}

// Outcome is what the user sees after a submission.
type Outcome struct {
	WordCount int
	Success   bool
	Body      string
	Comment   string
}

// Message renders the outcome for display.
func (o Outcome) Message() string {
	if o.Success {
		return fmt.Sprintf("%d word count sent to Beeminder. Good work!", o.WordCount)
	}
	return fmt.Sprintf("Failed to create datapoint. %s", o.Body)
}

// Submitter computes and posts datapoints.
type Submitter struct {
	vault    host.Vault
	poster   Poster
	recorder history.Recorder
	now      func() time.Time
}

// Option configures a Submitter.
type Option func(*Submitter)

// WithRecorder logs every attempt to r.
func WithRecorder(r history.Recorder) Option {
	return func(s *Submitter) { s.recorder = r }
}

// WithClock overrides the timestamp source used in comments.
func WithClock(now func() time.Time) Option {
	return func(s *Submitter) { s.now = now }
}

// New creates a submitter. vault may be nil when only SELECTION is used.
func New(vault host.Vault, poster Poster, opts ...Option) *Submitter {
	s := &Submitter{
		vault:  vault,
		poster: poster,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Available reports whether a submission makes sense right now: SELECTION
// needs a focused view, VAULT is always available.
func Available(scope settings.Scope, workspace host.Workspace) bool {
	return settings.MatchScope(scope,
		func() bool {
			_, ok := workspace.ActiveView()
			return ok
		},
		func() bool { return true },
	)
}

type datapointValue struct {
	count int
	label string
	err   error
}

// Submit posts the datapoint described by st. st is a snapshot; Submit does
// not modify any shared state.
func (s *Submitter) Submit(ctx context.Context, st settings.Settings) Outcome {
	stamp := s.now().UTC().Format(commentTimeLayout) + " - "

	v := settings.MatchScope(st.Scope,
		func() datapointValue {
			return datapointValue{count: st.CurrentWordCount, label: stamp + st.EditingFileTitle}
		},
		func() datapointValue {
			if s.vault == nil {
				return datapointValue{err: fmt.Errorf("no vault configured")}
			}
			n, err := wordcount.CountVault(ctx, s.vault)
			return datapointValue{count: n, label: stamp + "Vault " + s.vault.Name(), err: err}
		},
	)

	log.Info().
		Int("words", v.count).
		Str("scope", st.Scope.String()).
		Str("goal", st.GoalName).
		Msg("submitting word count")

	outcome := Outcome{WordCount: v.count, Comment: v.label}
	status := 0
	if v.err != nil {
		outcome.Body = v.err.Error()
	} else {
		resp, err := s.poster.CreateDatapoint(ctx, beeminder.Datapoint{
			UserName:  st.UserName,
			GoalName:  st.GoalName,
			AuthToken: st.AuthToken,
			Value:     v.count,
			Comment:   v.label,
		})
		if err != nil {
			outcome.Body = err.Error()
		} else {
			status = resp.StatusCode
			outcome.Success = resp.OK()
			outcome.Body = resp.Body
			if id := resp.DatapointID(); id != "" {
				log.Debug().Str("datapoint_id", id).Msg("datapoint created")
			}
		}
	}

	if !outcome.Success {
		log.Warn().Int("status", status).Str("body", truncate(outcome.Body, 200)).Msg("datapoint submission failed")
	}
	s.record(ctx, st, outcome, status)
	return outcome
}

func (s *Submitter) record(ctx context.Context, st settings.Settings, o Outcome, status int) {
	if s.recorder == nil {
		return
	}
	_, err := s.recorder.Record(ctx, history.Attempt{
		CreatedAt:  s.now(),
		UserName:   st.UserName,
		GoalName:   st.GoalName,
		Scope:      st.Scope.String(),
		Value:      o.WordCount,
		Comment:    o.Comment,
		Success:    o.Success,
		StatusCode: status,
		Body:       o.Body,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to record submission history")
	}
}

// truncate cuts s to at most n bytes on a rune boundary.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "... (truncated)"
}
