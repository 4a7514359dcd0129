// Package mocks holds testify mocks for the auth interfaces.
package mocks

import (
	"quickbids/internal/auth"

	"github.com/stretchr/testify/mock"
)

type PasswordHasher struct {
	mock.Mock
}

var _ auth.PasswordHasher = (*PasswordHasher)(nil)

func (m *PasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Compare(hash, password string) error {
	args := m.Called(hash, password)
	return args.Error(0)
}

type TokenService struct {
	mock.Mock
}

var _ auth.TokenService = (*TokenService)(nil)

func (m *TokenService) Issue(userID int64) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *TokenService) Parse(token string) (int64, error) {
	args := m.Called(token)
	return args.Get(0).(int64), args.Error(1)
}
