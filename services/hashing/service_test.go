package hashing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/giang1412/ecom/testutils"
)

func TestService_HashAndCompare(t *testing.T) {
	service := NewService(testutils.GetTestConfig(), nil)

	hash, err := service.Hash("Password123")
	require.NoError(t, err)
	assert.NotEqual(t, "Password123", hash)

	assert.NoError(t, service.Compare(hash, "Password123"))
	assert.ErrorIs(t, service.Compare(hash, "wrong"), ErrPasswordMismatch)
}

func TestService_HashesAreSalted(t *testing.T) {
	service := NewService(testutils.GetTestConfig(), nil)

	first, err := service.Hash("Password123")
	require.NoError(t, err)
	second, err := service.Hash("Password123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestNewService_ClampsCost(t *testing.T) {
	cfg := testutils.GetTestConfig()
	cfg.Auth.BcryptCost = 99

	service := NewService(cfg, nil)
	assert.Equal(t, bcrypt.DefaultCost, service.cost)
}
