package credential

import "context"

// DefaultMockToken is the fixed development bearer token used when no
// explicit token is configured for the mock backend.
const DefaultMockToken = "local-dev-token"

// MockProvider returns the same fixed token for every request in the
// session. Acquisition is synchronous: there is nothing to refresh and
// nothing to suspend on.
type MockProvider struct {
	token string
}

// NewMock creates a mock provider issuing the given fixed token. An empty
// token falls back to DefaultMockToken.
func NewMock(token string) *MockProvider {
	if token == "" {
		token = DefaultMockToken
	}
	return &MockProvider{token: token}
}

// Acquire returns the fixed development credential. It never fails and
// never suspends.
func (p *MockProvider) Acquire(_ context.Context) (*Credential, error) {
	return &Credential{Token: p.token}, nil
}
