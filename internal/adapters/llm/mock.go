package llm

import "context"

// MockClient returns a canned tip. Useful for dev and tests.
type MockClient struct {
	Tip string
	Err error
}

func NewMockClient() *MockClient {
	return &MockClient{Tip: "Take a short walk and drink some water."}
}

func (m *MockClient) TipFor(ctx context.Context, mood int) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Tip, nil
}
