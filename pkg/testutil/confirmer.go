package testutil

import "github.com/stretchr/testify/mock"

// MockConfirmer is a testify mock of confirmations.Confirmer.
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) Confirm(message string, defaultYes bool) (bool, error) {
	args := m.Called(message, defaultYes)
	return args.Bool(0), args.Error(1)
}
