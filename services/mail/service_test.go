package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giang1412/ecom/config"
)

func TestNewService_RequiresFromAddress(t *testing.T) {
	_, err := NewService(&config.MailConfig{Host: "localhost", Port: 587}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FROM_ADDRESS")
}

func TestNewService_BuildsClient(t *testing.T) {
	for _, encryption := range []string{"starttls", "ssl", "none", ""} {
		svc, err := NewService(&config.MailConfig{
			Host:        "localhost",
			Port:        587,
			Encryption:  encryption,
			FromAddress: "noreply@example.com",
			FromName:    "ecom",
		}, nil)
		require.NoError(t, err, "encryption %q", encryption)
		assert.NotNil(t, svc.client)
	}
}

func TestNewService_WithCredentials(t *testing.T) {
	svc, err := NewService(&config.MailConfig{
		Host:        "localhost",
		Port:        587,
		Username:    "user",
		Password:    "pass",
		Encryption:  "starttls",
		FromAddress: "noreply@example.com",
	}, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}
