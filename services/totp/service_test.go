package totp

import (
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giang1412/ecom/testutils"
)

func TestService_Generate(t *testing.T) {
	service := NewService(testutils.GetTestConfig(), nil)

	key, err := service.Generate("a@x.com")
	require.NoError(t, err)
	assert.NotEmpty(t, key.Secret)
	assert.Contains(t, key.URI, "otpauth://totp/")
	assert.Contains(t, key.URI, "a@x.com")

	t.Run("secrets are unique", func(t *testing.T) {
		second, err := service.Generate("a@x.com")
		require.NoError(t, err)
		assert.NotEqual(t, key.Secret, second.Secret)
	})
}

func TestService_Verify(t *testing.T) {
	service := NewService(testutils.GetTestConfig(), nil)

	key, err := service.Generate("a@x.com")
	require.NoError(t, err)

	t.Run("current code is accepted", func(t *testing.T) {
		code, err := totp.GenerateCode(key.Secret, time.Now())
		require.NoError(t, err)
		assert.True(t, service.Verify(key.Secret, code))
	})

	t.Run("previous step within skew is accepted", func(t *testing.T) {
		code, err := totp.GenerateCode(key.Secret, time.Now().Add(-30*time.Second))
		require.NoError(t, err)
		assert.True(t, service.Verify(key.Secret, code))
	})

	t.Run("stale code outside skew is rejected", func(t *testing.T) {
		code, err := totp.GenerateCode(key.Secret, time.Now().Add(-5*time.Minute))
		require.NoError(t, err)
		assert.False(t, service.Verify(key.Secret, code))
	})

	t.Run("wrong code is rejected", func(t *testing.T) {
		assert.False(t, service.Verify(key.Secret, "000000"))
	})

	t.Run("garbage secret is rejected", func(t *testing.T) {
		assert.False(t, service.Verify("not-base32!", "123456"))
	})
}
