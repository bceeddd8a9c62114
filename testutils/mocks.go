package testutils

import (
	"time"

	"github.com/stretchr/testify/mock"
)

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendVerificationCode(to, code, purpose string, expiry time.Duration) error {
	args := m.Called(to, code, purpose, expiry)
	return args.Error(0)
}
