package sheets

import (
	"context"
	"sync"
)

// Memory is an in-memory Appender for development and tests.
type Memory struct {
	mu   sync.Mutex
	rows [][]any
}

// NewMemory builds an empty in-memory appender.
func NewMemory() *Memory {
	return &Memory{}
}

// Append records the row.
func (m *Memory) Append(ctx context.Context, row []any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, append([]any(nil), row...))
	return nil
}

// Rows returns a copy of everything appended so far.
func (m *Memory) Rows() [][]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]any, len(m.rows))
	for i, row := range m.rows {
		out[i] = append([]any(nil), row...)
	}
	return out
}

var _ Appender = (*Memory)(nil)
