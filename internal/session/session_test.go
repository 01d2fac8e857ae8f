package session

import (
	"context"
	"errors"
	"maps"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abhisek/kidscreen/internal/predict"
	"github.com/abhisek/kidscreen/internal/questionnaire"
)

func atStep(t *testing.T, s *Session, step questionnaire.Step) {
	t.Helper()
	for s.Step() < step {
		s.Advance()
	}
	if s.Step() != step {
		t.Fatalf("step = %s, want %s", s.Step(), step)
	}
}

func wantPrediction(t *testing.T, s *Session, want string) {
	t.Helper()
	got, ok := s.Prediction()
	if !ok {
		t.Fatalf("no prediction stored, want %q", want)
	}
	if got != want {
		t.Errorf("prediction = %q, want %q", got, want)
	}
}

func TestNew_InitialState(t *testing.T) {
	s := New(predict.NewMock())

	if s.Step() != questionnaire.StepDemographics {
		t.Errorf("step = %s, want demographics", s.Step())
	}
	if got, want := s.Answers().Len(), len(questionnaire.FieldNames()); got != want {
		t.Errorf("answers len = %d, want %d", got, want)
	}
	if n := s.Answers().Answered(); n != 0 {
		t.Errorf("answered = %d, want 0", n)
	}
	if _, ok := s.Prediction(); ok {
		t.Error("new session should have no prediction")
	}
	if s.Pending() {
		t.Error("new session should not be pending")
	}
	if s.ID() == "" {
		t.Error("session ID is empty")
	}
	if New(nil).ID() == s.ID() {
		t.Error("two sessions share an ID")
	}
}

func TestSetField_RandomSequencesKeepEveryKey(t *testing.T) {
	names := append(questionnaire.FieldNames(), "unknown", "q11")
	values := []string{"", "Yes", "No", "24", "Asian", "garbage"}
	r := rand.New(rand.NewPCG(1, 2))

	s := New(predict.NewMock())
	want := questionnaire.NewAnswerSet().Map()

	for i := 0; i < 500; i++ {
		name := names[r.IntN(len(names))]
		value := values[r.IntN(len(values))]
		s.SetField(name, value)
		if _, ok := want[name]; ok {
			want[name] = value
		}

		if got := len(s.Answers().Map()); got != len(questionnaire.FieldNames()) {
			t.Fatalf("after SetField(%q) answer set has %d keys", name, got)
		}
	}
	if got := s.Answers().Map(); !maps.Equal(got, want) {
		t.Errorf("answers = %v, want %v", got, want)
	}
}

func TestAdvanceRetreat(t *testing.T) {
	s := New(predict.NewMock())

	for step := questionnaire.StepHistory; step <= questionnaire.StepResult; step++ {
		atStep(t, s, step)
		s.Retreat()
		if s.Step() != step-1 {
			t.Errorf("Retreat from %s = %s", step, s.Step())
		}
		s.Advance()
		if s.Step() != step {
			t.Errorf("Advance back = %s, want %s", s.Step(), step)
		}
	}
}

func TestAdvanceRetreat_Bounds(t *testing.T) {
	s := New(predict.NewMock())
	s.Retreat()
	if s.Step() != questionnaire.StepDemographics {
		t.Errorf("Retreat on first step = %s", s.Step())
	}

	atStep(t, s, questionnaire.StepResult)
	s.Advance()
	if s.Step() != questionnaire.StepResult {
		t.Errorf("Advance on result step = %s", s.Step())
	}
}

func TestRestart_ResetsEverything(t *testing.T) {
	s := New(predict.NewMock(predict.MockResponse{Label: "Low likelihood"}))
	s.SetField("age", "18")
	s.SetField("q7", "Yes")
	atStep(t, s, questionnaire.StepBehaviorSecond)
	if err := s.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	s.Restart()

	if s.Step() != questionnaire.StepDemographics {
		t.Errorf("step = %s, want demographics", s.Step())
	}
	for _, name := range questionnaire.FieldNames() {
		if v := s.Get(name); v != "" {
			t.Errorf("%s = %q after restart", name, v)
		}
	}
	if got, want := s.Answers().Len(), len(questionnaire.FieldNames()); got != want {
		t.Errorf("answers len = %d, want %d", got, want)
	}
	if _, ok := s.Prediction(); ok {
		t.Error("prediction survived restart")
	}
}

func TestSubmit_Success(t *testing.T) {
	mock := predict.NewMock(predict.MockResponse{Label: "Low likelihood"})
	s := New(mock)
	s.SetField("age", "30")
	atStep(t, s, questionnaire.StepBehaviorSecond)

	if err := s.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	wantPrediction(t, s, "Low likelihood")
	if s.Step() != questionnaire.StepResult {
		t.Errorf("step = %s, want result", s.Step())
	}
	if s.Pending() {
		t.Error("still pending after Submit")
	}
	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
	if got := mock.Calls[0].Get("age"); got != "30" {
		t.Errorf("sent age = %q, want 30", got)
	}
}

func TestSubmit_FailureStoresPlaceholder(t *testing.T) {
	s := New(predict.NewMock(predict.MockResponse{Err: &predict.ErrStatus{StatusCode: 500}}))
	atStep(t, s, questionnaire.StepBehaviorSecond)

	err := s.Submit(context.Background())
	var statusErr *predict.ErrStatus
	if !errors.As(err, &statusErr) {
		t.Errorf("err = %v, want *ErrStatus", err)
	}

	wantPrediction(t, s, ErrorPlaceholder)
	if s.Step() != questionnaire.StepResult {
		t.Errorf("step = %s, want result", s.Step())
	}
}

func TestSubmit_OverHTTP(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"ok", http.StatusOK, `{"prediction":"Low likelihood"}`, "Low likelihood"},
		{"server error", http.StatusInternalServerError, `{"prediction":"ignored"}`, ErrorPlaceholder},
		{"malformed", http.StatusOK, `{"label":"x"}`, ErrorPlaceholder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			s := New(predict.NewClient(srv.URL))
			atStep(t, s, questionnaire.StepBehaviorSecond)
			_ = s.Submit(context.Background())

			wantPrediction(t, s, tt.want)
			if s.Step() != questionnaire.StepResult {
				t.Errorf("step = %s, want result", s.Step())
			}
		})
	}
}

func TestSubmit_NilPredictorFailsSoft(t *testing.T) {
	s := New(nil)
	atStep(t, s, questionnaire.StepBehaviorSecond)

	if err := s.Submit(context.Background()); err == nil {
		t.Error("expected an error without a predictor")
	}
	wantPrediction(t, s, ErrorPlaceholder)
	if s.Step() != questionnaire.StepResult {
		t.Errorf("step = %s, want result", s.Step())
	}
}

func TestBeginSubmit_RejectsSecondInFlight(t *testing.T) {
	s := New(predict.NewMock())
	atStep(t, s, questionnaire.StepBehaviorSecond)

	if _, err := s.BeginSubmit(); err != nil {
		t.Fatalf("first BeginSubmit: %v", err)
	}
	if !s.Pending() {
		t.Error("not pending after BeginSubmit")
	}
	if _, err := s.BeginSubmit(); !errors.Is(err, ErrSubmitPending) {
		t.Errorf("second BeginSubmit err = %v, want ErrSubmitPending", err)
	}
}

func TestTicket_CapturesAnswersAtBegin(t *testing.T) {
	s := New(predict.NewMock())
	s.SetField("age", "12")
	ticket, err := s.BeginSubmit()
	if err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}

	s.SetField("age", "48")
	if got := ticket.Answers().Get("age"); got != "12" {
		t.Errorf("ticket age = %q, want 12", got)
	}
	if ticket.Session() != s.ID() {
		t.Errorf("ticket session = %q, want %q", ticket.Session(), s.ID())
	}
}

func TestResolve_AfterNavigatingAwayKeepsStep(t *testing.T) {
	s := New(predict.NewMock())
	atStep(t, s, questionnaire.StepBehaviorSecond)

	ticket, err := s.BeginSubmit()
	if err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	s.Retreat()

	if !s.Resolve(ticket, "Low likelihood", nil) {
		t.Fatal("Resolve rejected the session's own ticket")
	}
	wantPrediction(t, s, "Low likelihood")
	if s.Step() != questionnaire.StepBehaviorFirst {
		t.Errorf("step = %s, want behavior part 1", s.Step())
	}
}

func TestResolve_AfterRestartIsDropped(t *testing.T) {
	s := New(predict.NewMock())
	atStep(t, s, questionnaire.StepBehaviorSecond)

	ticket, err := s.BeginSubmit()
	if err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	s.Restart()
	s.SetField("age", "10")

	if s.Resolve(ticket, "Low likelihood", nil) {
		t.Error("Resolve accepted a ticket abandoned by Restart")
	}
	if _, ok := s.Prediction(); ok {
		t.Error("stale prediction stored")
	}
	if s.Step() != questionnaire.StepDemographics {
		t.Errorf("step = %s, want demographics", s.Step())
	}
	if got := s.Get("age"); got != "10" {
		t.Errorf("age = %q, want 10", got)
	}
	if s.Pending() {
		t.Error("pending after restart")
	}
}

func TestResolve_TicketFromAnotherSessionIsDropped(t *testing.T) {
	abandoned := New(predict.NewMock())
	abandoned.SetField("age", "12")
	atStep(t, abandoned, questionnaire.StepBehaviorSecond)
	oldTicket, err := abandoned.BeginSubmit()
	if err != nil {
		t.Fatalf("BeginSubmit on abandoned session: %v", err)
	}

	fresh := New(predict.NewMock())
	fresh.SetField("age", "40")
	atStep(t, fresh, questionnaire.StepBehaviorSecond)
	ownTicket, err := fresh.BeginSubmit()
	if err != nil {
		t.Fatalf("BeginSubmit on fresh session: %v", err)
	}

	if fresh.Resolve(oldTicket, "label-for-age-12", nil) {
		t.Fatal("Resolve accepted another session's ticket")
	}
	if _, ok := fresh.Prediction(); ok {
		t.Error("foreign prediction stored")
	}
	if !fresh.Pending() {
		t.Error("foreign ticket cleared the pending submission")
	}
	if fresh.Step() != questionnaire.StepBehaviorSecond {
		t.Errorf("step = %s, want behavior part 2", fresh.Step())
	}

	if !fresh.Resolve(ownTicket, "label-for-age-40", nil) {
		t.Fatal("Resolve rejected the session's own ticket")
	}
	wantPrediction(t, fresh, "label-for-age-40")
	if fresh.Step() != questionnaire.StepResult {
		t.Errorf("step = %s, want result", fresh.Step())
	}
}

func TestSend_RunsPredictorWithTicketAnswers(t *testing.T) {
	mock := predict.NewMock(predict.MockResponse{Label: "ok"})
	s := New(mock)
	s.SetField("jaundice", "Yes")

	ticket, err := s.BeginSubmit()
	if err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	label, err := s.Send(context.Background(), ticket)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if label != "ok" {
		t.Errorf("label = %q, want ok", label)
	}
	if got := mock.Calls[0].Get("jaundice"); got != "Yes" {
		t.Errorf("sent jaundice = %q, want Yes", got)
	}

	// Send alone does not touch the session.
	if !s.Pending() {
		t.Error("Send cleared pending")
	}
	if _, ok := s.Prediction(); ok {
		t.Error("Send stored a prediction")
	}
}
