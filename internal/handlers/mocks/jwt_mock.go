package mocks

import "keyVaultAPI/internal/auth"

// MockJWTManager implements auth.JWT with canned results.
type MockJWTManager struct {
	Token       string
	GenerateErr error
	VerifyErr   error
	Claims      *auth.Claims

	VerifiedTokens []string
}

func (m *MockJWTManager) Generate(subject string) (string, error) {
	return m.Token, m.GenerateErr
}

func (m *MockJWTManager) Verify(token string) (*auth.Claims, error) {
	m.VerifiedTokens = append(m.VerifiedTokens, token)
	return m.Claims, m.VerifyErr
}
