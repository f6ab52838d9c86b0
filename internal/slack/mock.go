package slack

import "context"

// MockChatClient provides a mock implementation for testing
type MockChatClient struct {
	// Error control
	postMessageError error

	// Call tracking
	PostMessageCalls []struct{ ChannelID, Text string }
}

// NewMockChatClient creates a new mock client
func NewMockChatClient() *MockChatClient {
	return &MockChatClient{}
}

func (m *MockChatClient) SetPostMessageError(err error) {
	m.postMessageError = err
}

func (m *MockChatClient) PostMessage(ctx context.Context, channelID, text string) error {
	m.PostMessageCalls = append(m.PostMessageCalls, struct{ ChannelID, Text string }{channelID, text})
	return m.postMessageError
}

// Ensure MockChatClient implements ChatClient
var _ ChatClient = (*MockChatClient)(nil)
