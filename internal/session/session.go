package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abhisek/kidscreen/internal/predict"
	"github.com/abhisek/kidscreen/internal/questionnaire"
)

// ErrorPlaceholder is stored as the prediction when a submission fails.
const ErrorPlaceholder = "An error occurred during prediction."

// ErrSubmitPending is returned when a submission is started while another
// one is still in flight.
var ErrSubmitPending = errors.New("a submission is already in flight")

// Session holds one questionnaire run: the answer set, the current step and
// the prediction once a submission resolves.
type Session struct {
	id         string
	predictor  predict.Predictor
	logger     zerolog.Logger
	answers    questionnaire.AnswerSet
	step       questionnaire.Step
	prediction *string
	pending    bool
	generation uint64
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// New creates a session at the first step with an empty answer set.
func New(predictor predict.Predictor, opts ...Option) *Session {
	s := &Session{
		id:        uuid.NewString(),
		predictor: predictor,
		logger:    zerolog.Nop(),
		answers:   questionnaire.NewAnswerSet(),
		step:      questionnaire.StepDemographics,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID identifies the session. Tickets from other sessions carry a
// different ID and are never applied here.
func (s *Session) ID() string {
	return s.id
}

// Step returns the current step.
func (s *Session) Step() questionnaire.Step {
	return s.step
}

// Answers returns a copy of the answer set.
func (s *Session) Answers() questionnaire.AnswerSet {
	return s.answers.Clone()
}

// Get returns the current value of one field.
func (s *Session) Get(name string) string {
	return s.answers.Get(name)
}

// Prediction returns the stored result and whether one is present.
func (s *Session) Prediction() (string, bool) {
	if s.prediction == nil {
		return "", false
	}
	return *s.prediction, true
}

// Pending reports whether a submission is in flight.
func (s *Session) Pending() bool {
	return s.pending
}

// SetField overwrites one answer. Values are not validated; names outside
// the answer set are ignored.
func (s *Session) SetField(name, value string) {
	if !s.answers.Set(name, value) {
		s.logger.Debug().Str("field", name).Msg("ignoring unknown field")
	}
}

// Advance moves one step forward. It is a no-op on the result step.
func (s *Session) Advance() {
	if s.step < questionnaire.LastStep {
		s.step++
	}
}

// Retreat moves one step back. It is a no-op on the first step.
func (s *Session) Retreat() {
	if s.step > questionnaire.StepDemographics {
		s.step--
	}
}

// Restart discards every answer and the prediction and returns to the
// first step. A submission still in flight is abandoned.
func (s *Session) Restart() {
	s.answers = questionnaire.NewAnswerSet()
	s.step = questionnaire.StepDemographics
	s.prediction = nil
	s.pending = false
	s.generation++
}

// Ticket identifies one submission and carries the answers it sends.
type Ticket struct {
	session    string
	generation uint64
	step       questionnaire.Step
	answers    questionnaire.AnswerSet
}

// Session returns the ID of the session that issued t.
func (t Ticket) Session() string {
	return t.session
}

// Answers returns the answer set captured when the submission began.
func (t Ticket) Answers() questionnaire.AnswerSet {
	return t.answers.Clone()
}

// BeginSubmit captures the answer set for a submission and marks the
// session pending.
func (s *Session) BeginSubmit() (Ticket, error) {
	if s.pending {
		return Ticket{}, ErrSubmitPending
	}
	s.pending = true
	return Ticket{
		session:    s.id,
		generation: s.generation,
		step:       s.step,
		answers:    s.answers.Clone(),
	}, nil
}

// Send performs the network call for t. It touches no session state and
// may run on another goroutine.
func (s *Session) Send(ctx context.Context, t Ticket) (string, error) {
	if s.predictor == nil {
		return "", &predict.ErrUnavailable{Err: errors.New("no predictor configured")}
	}
	return s.predictor.Predict(ctx, t.answers)
}

// Resolve applies the outcome of the submission t. On error the placeholder
// is stored in place of a label. The session advances only if it is still
// on the step the submission began from; a user who navigated away keeps
// their place but still gets the result. Outcomes of submissions abandoned
// by Restart, or issued by another session, are dropped and reported as
// false.
func (s *Session) Resolve(t Ticket, label string, err error) bool {
	if t.session != s.id {
		s.logger.Debug().Str("ticket_session", t.session).Msg("dropping prediction from another session")
		return false
	}
	if !s.pending || t.generation != s.generation {
		s.logger.Debug().Msg("dropping stale prediction")
		return false
	}
	s.pending = false

	result := label
	if err != nil {
		s.logger.Warn().Err(err).Msg("prediction failed")
		result = ErrorPlaceholder
	}
	s.prediction = &result

	if s.step == t.step {
		s.Advance()
	}
	return true
}

// Submit sends the answer set and applies the outcome in one call. The
// session state is always updated; the returned error is the prediction
// failure, if any, for callers that want to report it.
func (s *Session) Submit(ctx context.Context) error {
	t, err := s.BeginSubmit()
	if err != nil {
		return err
	}
	label, err := s.Send(ctx, t)
	s.Resolve(t, label, err)
	return err
}
