package model

import (
	"context"
	"fmt"
	"sync"

	"github.com/studymesh/studymesh/core"
)

// MockModel is a scripted in-memory Model for tests and examples. Responses
// are consumed in FIFO order; when the script is exhausted it echoes the last
// user message so unscripted calls stay deterministic.
type MockModel struct {
	mu       sync.Mutex
	info     Info
	script   []mockTurn
	requests []Request
}

type mockTurn struct {
	resp *Response
	err  error
}

// NewMockModel constructs a MockModel with tool support enabled.
func NewMockModel() *MockModel {
	return &MockModel{
		info: Info{Name: "mock", Provider: "mock", SupportsTools: true},
	}
}

// Enqueue appends scripted responses consumed by subsequent Complete calls.
func (m *MockModel) Enqueue(resps ...*Response) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range resps {
		m.script = append(m.script, mockTurn{resp: r})
	}
	return m
}

// EnqueueText is shorthand for enqueueing a plain text response.
func (m *MockModel) EnqueueText(text string) *MockModel {
	return m.Enqueue(&Response{Text: text})
}

// EnqueueError appends a scripted failure.
func (m *MockModel) EnqueueError(err error) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, mockTurn{err: err})
	return m
}

// Complete implements Model, popping the next scripted turn.
func (m *MockModel) Complete(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if len(m.script) > 0 {
		turn := m.script[0]
		m.script = m.script[1:]
		if turn.err != nil {
			return nil, turn.err
		}
		return turn.resp, nil
	}
	return &Response{Text: fmt.Sprintf("Mock response to: %s", lastUserText(req))}, nil
}

// Requests returns a copy of every request seen so far, in call order.
func (m *MockModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	reqs := make([]Request, len(m.requests))
	copy(reqs, m.requests)
	return reqs
}

// Remaining reports how many scripted turns are still queued.
func (m *MockModel) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.script)
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }

func lastUserText(req Request) string {
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == core.RoleUser {
			return req.Messages[i].Content
		}
	}
	return ""
}
