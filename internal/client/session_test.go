package client

import (
	"errors"
	"testing"
)

func TestSessionSuccessfulExchange(t *testing.T) {
	s := NewSession()

	if err := s.Begin("  What does saliva do?  "); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if s.State() != StateSending {
		t.Errorf("state = %v, want StateSending", s.State())
	}
	if s.LastQuestion() != "What does saliva do?" {
		t.Errorf("question = %q, want trimmed", s.LastQuestion())
	}

	s.Dispatched()
	if s.State() != StateAwaitingResponse {
		t.Errorf("state = %v, want StateAwaitingResponse", s.State())
	}

	s.Complete(AskResponse{
		Answer:  "Saliva helps digestion [1].",
		Sources: []Source{{ID: "c1", Order: 1, Content: "chunk text"}},
	})
	if s.State() != StateIdle {
		t.Errorf("state = %v, want StateIdle", s.State())
	}

	msgs := s.Messages()
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Role != RoleUser || msgs[0].Content != "What does saliva do?" {
		t.Errorf("user message = %+v", msgs[0])
	}
	if msgs[1].Role != RoleAssistant || len(msgs[1].Sources) != 1 {
		t.Errorf("assistant message = %+v", msgs[1])
	}
}

func TestSessionRefusesOverlappingSend(t *testing.T) {
	s := NewSession()

	if err := s.Begin("first question"); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := s.Begin("second question"); !errors.Is(err, ErrBusy) {
		t.Errorf("overlapping Begin error = %v, want ErrBusy", err)
	}
	s.Dispatched()
	if err := s.Begin("second question"); !errors.Is(err, ErrBusy) {
		t.Errorf("in-flight Begin error = %v, want ErrBusy", err)
	}
	if len(s.Messages()) != 1 {
		t.Errorf("refused question must not be queued, got %d messages", len(s.Messages()))
	}
}

func TestSessionRefusesEmptyQuestion(t *testing.T) {
	s := NewSession()
	if err := s.Begin("   "); !errors.Is(err, ErrEmptyQuestion) {
		t.Errorf("error = %v, want ErrEmptyQuestion", err)
	}
	if len(s.Messages()) != 0 {
		t.Error("blank question must not enter the transcript")
	}
}

func TestSessionFailureAppendsWarningOnly(t *testing.T) {
	s := NewSession()

	_ = s.Begin("first")
	s.Dispatched()
	s.Complete(AskResponse{
		Answer:  "first answer",
		Sources: []Source{{ID: "c1", Order: 1}},
	})

	_ = s.Begin("second")
	s.Dispatched()
	s.Fail(errors.New("connection refused"))

	if s.State() != StateError {
		t.Errorf("state = %v, want StateError", s.State())
	}
	msgs := s.Messages()
	if len(msgs) != 4 {
		t.Fatalf("got %d messages, want 4", len(msgs))
	}
	last := msgs[3]
	if !last.Warning || last.Role != RoleAssistant {
		t.Errorf("failure message = %+v, want assistant warning", last)
	}
	if len(last.Sources) != 0 {
		t.Error("failure message must carry no sources")
	}
	if msgs[1].Content != "first answer" || len(msgs[1].Sources) != 1 {
		t.Errorf("earlier exchange was altered: %+v", msgs[1])
	}
}

func TestSessionRecoversAfterError(t *testing.T) {
	s := NewSession()

	_ = s.Begin("first")
	s.Dispatched()
	s.Fail(errors.New("boom"))
	if s.State() != StateError {
		t.Fatalf("state = %v, want StateError", s.State())
	}

	if err := s.Begin("second"); err != nil {
		t.Fatalf("Begin after error: %v", err)
	}
	s.Dispatched()
	s.Complete(AskResponse{Answer: "ok"})
	if s.State() != StateIdle {
		t.Errorf("state = %v, want StateIdle", s.State())
	}
}

func TestSessionBeginClosesPopover(t *testing.T) {
	s := NewSession()
	s.Popover().Toggle(0, Point{X: 400, Y: 300}, Viewport{Width: 1280, Height: 800})

	if err := s.Begin("new question"); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if s.Popover().IsOpen() {
		t.Error("accepting a question must close the source panel")
	}
}
