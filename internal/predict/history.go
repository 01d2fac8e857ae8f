package predict

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/kidscreen/internal/questionnaire"
	"github.com/abhisek/kidscreen/internal/store"
)

// HistoryPredictor is a decorator that records every prediction attempt in
// the submission history.
type HistoryPredictor struct {
	inner  Predictor
	repo   store.SubmissionRepo
	logger zerolog.Logger
}

// WithHistory wraps a Predictor with submission recording.
func WithHistory(p Predictor, repo store.SubmissionRepo, logger zerolog.Logger) Predictor {
	return &HistoryPredictor{inner: p, repo: repo, logger: logger}
}

func (h *HistoryPredictor) Predict(ctx context.Context, answers questionnaire.AnswerSet) (string, error) {
	start := time.Now()
	label, err := h.inner.Predict(ctx, answers)

	sub := &store.Submission{
		Answers:    answers.Map(),
		Prediction: label,
		Success:    err == nil,
		LatencyMs:  time.Since(start).Milliseconds(),
	}
	if err != nil {
		sub.ErrorMessage = err.Error()
	}

	// Record the attempt but don't fail the prediction if recording fails.
	// The caller's context may already be done; history still gets written.
	if logErr := h.repo.Append(context.WithoutCancel(ctx), sub); logErr != nil {
		h.logger.Warn().Err(logErr).Msg("failed to record submission")
	}

	return label, err
}
