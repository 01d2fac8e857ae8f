package predict

import (
	"context"
	"sync"

	"github.com/abhisek/kidscreen/internal/questionnaire"
)

// MockResponse is a canned outcome for the Mock predictor.
type MockResponse struct {
	Label string
	Err   error
}

// Mock is a deterministic Predictor for tests and offline runs.
// It returns canned responses in FIFO order and records every answer set.
// When the queue is empty it repeats Fallback, or fails with ErrUnavailable
// when Fallback is nil.
type Mock struct {
	mu        sync.Mutex
	responses []MockResponse
	Fallback  *MockResponse
	Calls     []questionnaire.AnswerSet
}

var _ Predictor = (*Mock)(nil)

// NewMock creates a Mock with the given canned responses.
func NewMock(responses ...MockResponse) *Mock {
	return &Mock{responses: responses}
}

func (m *Mock) Predict(ctx context.Context, answers questionnaire.AnswerSet) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, answers.Clone())

	if err := ctx.Err(); err != nil {
		return "", &ErrUnavailable{Err: err}
	}

	var resp MockResponse
	switch {
	case len(m.responses) > 0:
		resp = m.responses[0]
		m.responses = m.responses[1:]
	case m.Fallback != nil:
		resp = *m.Fallback
	default:
		return "", &ErrUnavailable{}
	}

	if resp.Err != nil {
		return "", resp.Err
	}
	return resp.Label, nil
}

// AddResponse appends a canned response to the queue.
func (m *Mock) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Predict calls made.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
