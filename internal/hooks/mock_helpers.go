package hooks

import (
	"github.com/michael-freling/claude-code-hooks/internal/audit"
	"github.com/stretchr/testify/mock"
)

// MockAuditSink is a mock implementation of AuditSink for testing.
type MockAuditSink struct {
	mock.Mock
}

// Log is a mock implementation of AuditSink.Log.
func (m *MockAuditSink) Log(entry audit.Entry) error {
	args := m.Called(entry)
	return args.Error(0)
}
