package totp

import (
	"errors"
	"fmt"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/giang1412/ecom/config"
	"github.com/giang1412/ecom/services/logging"
	"go.uber.org/zap"
)

var ErrGenerationFailed = errors.New("failed to generate TOTP key")

// Key is a freshly generated shared secret plus its provisioning URI,
// ready to be rendered as a QR code by the caller.
type Key struct {
	Secret string
	URI    string
}

type Service struct {
	config *config.Config
	logger *logging.Service
}

func NewService(cfg *config.Config, logger *logging.Service) *Service {
	return &Service{
		config: cfg,
		logger: logger,
	}
}

// Generate creates a new shared secret for the given account name.
// The secret is not persisted here; it lives on the user record.
func (s *Service) Generate(accountName string) (*Key, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer(),
		AccountName: accountName,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		s.logger.Error("TOTP key generation failed",
			zap.Error(err),
			zap.String("account_name", accountName))
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	return &Key{
		Secret: key.Secret(),
		URI:    key.URL(),
	}, nil
}

// Verify reports whether code is valid for secret within one time step
// of skew either side of now.
func (s *Service) Verify(secret, code string) bool {
	valid, err := totp.ValidateCustom(code, secret, time.Now(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		s.logger.Warn("TOTP validation error", zap.Error(err))
		return false
	}
	return valid
}

func (s *Service) issuer() string {
	if s.config.TOTP.Issuer == "" {
		return s.config.App.Name
	}
	return s.config.TOTP.Issuer
}
