package mail

import (
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/giang1412/ecom/config"
	"github.com/giang1412/ecom/services/logging"
	"go.uber.org/zap"
)

// Service delivers one-time verification codes over SMTP.
type Service struct {
	config *config.MailConfig
	client *mail.Client
	logger *logging.Service
}

func NewService(cfg *config.MailConfig, logger *logging.Service) (*Service, error) {
	if cfg.FromAddress == "" {
		logger.Error("mail service initialization failed: FROM_ADDRESS is required")
		return nil, fmt.Errorf("ECOM_MAIL_FROM_ADDRESS is required")
	}

	clientOpts := []mail.Option{
		mail.WithPort(cfg.Port),
	}

	if cfg.Username != "" {
		clientOpts = append(clientOpts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username))
	}
	if cfg.Password != "" {
		clientOpts = append(clientOpts, mail.WithPassword(cfg.Password))
	}

	switch cfg.Encryption {
	case "ssl":
		clientOpts = append(clientOpts, mail.WithSSL())
	case "none":
		clientOpts = append(clientOpts, mail.WithTLSPortPolicy(mail.NoTLS))
	default:
		clientOpts = append(clientOpts, mail.WithTLSPortPolicy(mail.TLSMandatory))
	}

	client, err := mail.NewClient(cfg.Host, clientOpts...)
	if err != nil {
		logger.Error("failed to create mail client",
			zap.Error(err),
			zap.String("host", cfg.Host),
			zap.Int("port", cfg.Port))
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	logger.Info("mail service initialized",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("encryption", cfg.Encryption))

	return &Service{
		config: cfg,
		client: client,
		logger: logger,
	}, nil
}

// SendVerificationCode mails a one-time code to the given address.
func (s *Service) SendVerificationCode(to, code, purpose string, expiry time.Duration) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(s.config.FromName, s.config.FromAddress); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject(fmt.Sprintf("Your %s verification code", purpose))
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Your verification code is %s. It expires in %s.\n\nIf you did not request this code, you can ignore this email.\n",
		code, expiry))

	if err := s.client.DialAndSend(msg); err != nil {
		s.logger.Error("failed to send verification code email",
			zap.Error(err),
			zap.String("to", to),
			zap.String("purpose", purpose))
		return fmt.Errorf("failed to send verification code email: %w", err)
	}

	s.logger.Info("verification code email sent",
		zap.String("to", to),
		zap.String("purpose", purpose))
	return nil
}
