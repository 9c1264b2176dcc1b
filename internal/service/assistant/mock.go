package assistant

import "context"

// MockAssistantService implements Service for unit tests.
type MockAssistantService struct {
	// ReplyFunc, when set, handles Reply calls.
	ReplyFunc func(ctx context.Context, message, system string) (string, error)
	// Calls records every (message, system) pair received.
	Calls [][2]string
}

// NewMockAssistantService creates a mock that echoes the message back.
func NewMockAssistantService() *MockAssistantService {
	return &MockAssistantService{}
}

func (m *MockAssistantService) Reply(ctx context.Context, message, system string) (string, error) {
	m.Calls = append(m.Calls, [2]string{message, system})
	if m.ReplyFunc != nil {
		return m.ReplyFunc(ctx, message, system)
	}
	return "echo: " + message, nil
}

// Compile-time interface check
var _ Service = (*MockAssistantService)(nil)
