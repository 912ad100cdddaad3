package client

import (
	"errors"
	"fmt"
	"strings"
)

// State describes where the chat session is in its request cycle.
type State int

const (
	// StateIdle means the session can accept a new question.
	StateIdle State = iota
	// StateSending means a question was accepted and is being sent.
	StateSending
	// StateAwaitingResponse means the request is in flight.
	StateAwaitingResponse
	// StateError means the last request failed; the session is still
	// usable and the next send clears the error.
	StateError
)

// Role identifies who produced a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one entry in the session transcript.
type ChatMessage struct {
	Role    Role
	Content string
	// Sources holds the ranked passages backing an assistant answer.
	// Empty for user messages and failed requests.
	Sources []Source
	// Warning marks an assistant message that reports a failure
	// instead of an answer.
	Warning bool
}

// ErrBusy is returned when a send is attempted while a request is
// already in flight. The new question is refused, not queued.
var ErrBusy = errors.New("a request is already in flight")

// ErrEmptyQuestion is returned when the submitted question is blank.
var ErrEmptyQuestion = errors.New("question is empty")

// Session holds the transcript and request state of one chat. It is a
// plain state machine; performing the request is the caller's job. The
// transcript is append-only; failures add a warning message without
// touching earlier entries. Session is not safe for concurrent use.
type Session struct {
	state    State
	messages []ChatMessage
	popover  Popover
	// lastQuestion drives keyword highlighting in source panels.
	lastQuestion string
}

// NewSession creates an idle session with an empty transcript.
func NewSession() *Session {
	return &Session{}
}

// State returns the current request state.
func (s *Session) State() State {
	return s.state
}

// Messages returns the transcript. The returned slice must not be
// modified.
func (s *Session) Messages() []ChatMessage {
	return s.messages
}

// LastQuestion returns the most recently accepted question.
func (s *Session) LastQuestion() string {
	return s.lastQuestion
}

// Popover exposes the source panel state for the open answer.
func (s *Session) Popover() *Popover {
	return &s.popover
}

// Busy reports whether a request is currently in flight.
func (s *Session) Busy() bool {
	return s.state == StateSending || s.state == StateAwaitingResponse
}

// Begin accepts a question and moves the session into the sending
// state. It refuses blank questions and refuses to overlap requests.
// Accepting a question closes any open source panel.
func (s *Session) Begin(question string) error {
	if s.Busy() {
		return ErrBusy
	}
	trimmed := strings.TrimSpace(question)
	if trimmed == "" {
		return ErrEmptyQuestion
	}

	s.popover.Close()
	s.lastQuestion = trimmed
	s.messages = append(s.messages, ChatMessage{Role: RoleUser, Content: trimmed})
	s.state = StateSending
	return nil
}

// Dispatched records that the accepted question has gone out on the
// wire.
func (s *Session) Dispatched() {
	if s.state == StateSending {
		s.state = StateAwaitingResponse
	}
}

// Complete records a successful answer and returns the session to idle.
func (s *Session) Complete(resp AskResponse) {
	s.messages = append(s.messages, ChatMessage{
		Role:    RoleAssistant,
		Content: resp.Answer,
		Sources: resp.Sources,
	})
	s.state = StateIdle
}

// Fail records a request failure as a warning message. Earlier
// transcript entries and their sources are left untouched.
func (s *Session) Fail(err error) {
	s.messages = append(s.messages, ChatMessage{
		Role:    RoleAssistant,
		Content: fmt.Sprintf("Sorry, something went wrong: %v", err),
		Warning: true,
	})
	s.state = StateError
}
