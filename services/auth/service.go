package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/mileusna/useragent"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/giang1412/ecom/config"
	"github.com/giang1412/ecom/services/hashing"
	"github.com/giang1412/ecom/services/logging"
	"github.com/giang1412/ecom/services/token"
	"github.com/giang1412/ecom/services/totp"
)

// Mailer delivers one-time verification codes out-of-band. Delivery is
// best-effort: issuance succeeds even when the mailer is down.
type Mailer interface {
	SendVerificationCode(to, code, purpose string, expiry time.Duration) error
}

type Service struct {
	config  *config.Config
	db      *gorm.DB
	logger  *logging.Service
	hashing *hashing.Service
	tokens  *token.Service
	totp    *totp.Service
	mailer  Mailer
}

func NewService(cfg *config.Config, db *gorm.DB, logger *logging.Service, hashingSvc *hashing.Service, tokenSvc *token.Service, totpSvc *totp.Service) *Service {
	return &Service{
		config:  cfg,
		db:      db,
		logger:  logger,
		hashing: hashingSvc,
		tokens:  tokenSvc,
		totp:    totpSvc,
	}
}

func (s *Service) SetMailer(mailer Mailer) {
	s.mailer = mailer
}

type RegisterRequest struct {
	Email       string
	Name        string
	PhoneNumber string
	Password    string
	Code        string
}

type LoginRequest struct {
	Email     string
	Password  string
	TOTPCode  string
	Code      string
	UserAgent string
	IP        string
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type TwoFactorSetup struct {
	Secret string `json:"secret"`
	URI    string `json:"uri"`
}

// validateVerificationCode is the single predicate shared by register,
// login step-up, forgot-password and disable-2FA. It never consumes the
// code; deletion after use is the caller's responsibility.
func (s *Service) validateVerificationCode(db *gorm.DB, email, code string, purpose CodePurpose) (*VerificationCode, error) {
	var vc VerificationCode
	err := db.Where("email = ? AND purpose = ?", email, purpose).First(&vc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOTPInvalid
		}
		return nil, fmt.Errorf("failed to look up verification code: %w", err)
	}

	if vc.Code != code {
		return nil, ErrOTPInvalid
	}
	if time.Now().After(vc.ExpiresAt) {
		s.logger.Warn("expired verification code presented",
			zap.String("email", email),
			zap.String("purpose", string(purpose)))
		return nil, ErrOTPExpired
	}

	return &vc, nil
}

// Register creates a user from a pending REGISTER code. User creation and
// code consumption happen in one transaction so no partial state remains.
func (s *Service) Register(req RegisterRequest) (*User, error) {
	if _, err := s.validateVerificationCode(s.db, req.Email, req.Code, PurposeRegister); err != nil {
		return nil, err
	}

	role, err := s.clientRole()
	if err != nil {
		return nil, err
	}

	hashed, err := s.hashing.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := User{
		Email:       req.Email,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Password:    hashed,
		RoleID:      role.ID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailAlreadyExists
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		if err := tx.Where("email = ?", req.Email).Delete(&VerificationCode{}).Error; err != nil {
			return fmt.Errorf("failed to consume verification code: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.Uint("user_id", user.ID),
		zap.String("email", user.Email))

	user.Password = ""
	user.TOTPSecret = ""
	return &user, nil
}

// SendOTP issues a 6-digit code for the given purpose, overwriting any
// pending code for the same email regardless of its purpose.
func (s *Service) SendOTP(email string, purpose CodePurpose) (*VerificationCode, error) {
	var user User
	err := s.db.Where("email = ?", email).First(&user).Error
	exists := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if purpose == PurposeRegister && exists {
		return nil, ErrEmailAlreadyExists
	}
	if purpose == PurposeForgotPassword && !exists {
		return nil, ErrEmailNotFound
	}

	code, err := generateOTP()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP: %w", err)
	}

	vc := VerificationCode{
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(s.config.Auth.OTPExpiry),
	}

	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "purpose", "expires_at"}),
	}).Create(&vc).Error
	if err != nil {
		return nil, fmt.Errorf("failed to store verification code: %w", err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendVerificationCode(email, code, string(purpose), s.config.Auth.OTPExpiry); err != nil {
			s.logger.Error("failed to deliver verification code",
				zap.Error(err),
				zap.String("email", email),
				zap.String("purpose", string(purpose)))
		}
	}

	s.logger.Info("verification code issued",
		zap.String("email", email),
		zap.String("purpose", string(purpose)),
		zap.Time("expires_at", vc.ExpiresAt))
	return &vc, nil
}

// Login authenticates credentials, runs the TOTP/OTP step-up when the
// user has two-factor enabled, records a new device and issues a token
// pair bound to it.
func (s *Service) Login(req LoginRequest) (*TokenPair, error) {
	var user User
	if err := s.db.Preload("Role").Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmailNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.hashing.Compare(user.Password, req.Password); err != nil {
		s.logger.Warn("login failed: password mismatch", zap.String("email", req.Email))
		return nil, ErrInvalidPassword
	}

	if user.TOTPSecret != "" {
		switch {
		case req.TOTPCode == "" && req.Code == "":
			return nil, ErrTOTPAndCodeRequired
		case req.TOTPCode != "":
			if !s.totp.Verify(user.TOTPSecret, req.TOTPCode) {
				s.logger.Warn("login failed: invalid TOTP code", zap.Uint("user_id", user.ID))
				return nil, ErrInvalidTOTP
			}
		default:
			if _, err := s.validateVerificationCode(s.db, user.Email, req.Code, PurposeLogin); err != nil {
				return nil, err
			}
		}
	}

	device := newDevice(user.ID, req.UserAgent, req.IP)
	if err := s.db.Create(device).Error; err != nil {
		return nil, fmt.Errorf("failed to create device: %w", err)
	}

	s.logger.Info("login successful",
		zap.Uint("user_id", user.ID),
		zap.Uint("device_id", device.ID))

	return s.GenerateTokens(token.AccessPayload{
		UserID:   user.ID,
		DeviceID: device.ID,
		RoleID:   user.RoleID,
		RoleName: user.Role.Name,
	})
}

// GenerateTokens is the single choke point through which every token
// pair is minted; login and refresh both funnel through it.
func (s *Service) GenerateTokens(payload token.AccessPayload) (*TokenPair, error) {
	return s.generateTokens(s.db, payload)
}

func (s *Service) generateTokens(db *gorm.DB, payload token.AccessPayload) (*TokenPair, error) {
	var accessToken, refreshToken string

	var g errgroup.Group
	g.Go(func() error {
		var err error
		accessToken, err = s.tokens.SignAccessToken(payload)
		return err
	})
	g.Go(func() error {
		var err error
		refreshToken, err = s.tokens.SignRefreshToken(payload.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to decode refresh token expiry: %w", err)
	}

	row := RefreshToken{
		Token:     refreshToken,
		UserID:    payload.UserID,
		DeviceID:  payload.DeviceID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if err := db.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh rotates a refresh token: the presented token is verified,
// matched against its stored row, and replaced by a fresh pair while the
// owning device's user agent and IP are brought up to date. All three
// effects share one transaction. A signature-valid token without a row
// has already been consumed; any other failure is collapsed to a
// generic unauthorized so callers cannot probe token state.
func (s *Service) Refresh(tokenString, userAgent, ip string) (*TokenPair, error) {
	claims, err := s.tokens.VerifyRefreshToken(tokenString)
	if err != nil {
		return nil, ErrUnauthorized
	}

	var pair *TokenPair
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var row RefreshToken
		if err := tx.Preload("User.Role").Where("token = ?", tokenString).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Warn("refresh token replay detected",
					zap.Uint("user_id", claims.UserID))
				return ErrRefreshTokenAlreadyUsed
			}
			return fmt.Errorf("failed to look up refresh token: %w", err)
		}

		ua := useragent.Parse(userAgent)
		updates := map[string]any{
			"user_agent":  userAgent,
			"ip":          ip,
			"browser":     ua.Name,
			"os":          ua.OS,
			"last_active": time.Now(),
		}
		if err := tx.Model(&Device{}).Where("id = ?", row.DeviceID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update device: %w", err)
		}

		if err := tx.Where("token = ?", tokenString).Delete(&RefreshToken{}).Error; err != nil {
			return fmt.Errorf("failed to delete refresh token: %w", err)
		}

		pair, err = s.generateTokens(tx, token.AccessPayload{
			UserID:   row.UserID,
			DeviceID: row.DeviceID,
			RoleID:   row.User.RoleID,
			RoleName: row.User.Role.Name,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, ErrRefreshTokenAlreadyUsed) {
			return nil, ErrRefreshTokenAlreadyUsed
		}
		s.logger.Error("refresh failed", zap.Error(err))
		return nil, ErrUnauthorized
	}

	return pair, nil
}

// Logout deletes the refresh token row and marks the owning device
// inactive. A missing row means a replayed or stale token was presented
// and is surfaced as ErrRefreshTokenAlreadyUsed.
func (s *Service) Logout(tokenString string) error {
	if _, err := s.tokens.VerifyRefreshToken(tokenString); err != nil {
		return ErrUnauthorized
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var row RefreshToken
		if err := tx.Where("token = ?", tokenString).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Warn("logout with already-consumed refresh token")
				return ErrRefreshTokenAlreadyUsed
			}
			return fmt.Errorf("failed to look up refresh token: %w", err)
		}

		if err := tx.Where("token = ?", tokenString).Delete(&RefreshToken{}).Error; err != nil {
			return fmt.Errorf("failed to delete refresh token: %w", err)
		}

		if err := tx.Model(&Device{}).Where("id = ?", row.DeviceID).Update("is_active", false).Error; err != nil {
			return fmt.Errorf("failed to deactivate device: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrRefreshTokenAlreadyUsed) {
			return ErrRefreshTokenAlreadyUsed
		}
		s.logger.Error("logout failed", zap.Error(err))
		return ErrUnauthorized
	}

	s.logger.Info("logout successful")
	return nil
}

// ForgotPassword replaces the password after validating the
// FORGOT_PASSWORD code; update and code consumption share a transaction.
func (s *Service) ForgotPassword(email, code, newPassword string) error {
	var user User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmailNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if _, err := s.validateVerificationCode(s.db, email, code, PurposeForgotPassword); err != nil {
		return err
	}

	hashed, err := s.hashing.Hash(newPassword)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&User{}).Where("id = ?", user.ID).Update("password", hashed).Error; err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		if err := tx.Where("email = ?", email).Delete(&VerificationCode{}).Error; err != nil {
			return fmt.Errorf("failed to consume verification code: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("password reset completed", zap.Uint("user_id", user.ID))
	return nil
}

// SetupTwoFactor generates a fresh TOTP secret and provisioning URI for
// a user that does not have one yet.
func (s *Service) SetupTwoFactor(userID uint) (*TwoFactorSetup, error) {
	var user User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmailNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.TOTPSecret != "" {
		return nil, ErrTOTPAlreadyEnabled
	}

	key, err := s.totp.Generate(user.Email)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&User{}).Where("id = ?", userID).Update("totp_secret", key.Secret).Error; err != nil {
		return nil, fmt.Errorf("failed to store TOTP secret: %w", err)
	}

	s.logger.Info("TOTP enabled", zap.Uint("user_id", userID))
	return &TwoFactorSetup{Secret: key.Secret, URI: key.URI}, nil
}

// DisableTwoFactor clears the stored secret after a TOTP or emailed
// DISABLE_2FA code check, with the same either/or policy as login.
func (s *Service) DisableTwoFactor(userID uint, totpCode, code string) error {
	var user User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmailNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if user.TOTPSecret == "" {
		return ErrTOTPNotEnabled
	}

	switch {
	case totpCode == "" && code == "":
		return ErrTOTPAndCodeRequired
	case totpCode != "":
		if !s.totp.Verify(user.TOTPSecret, totpCode) {
			return ErrInvalidTOTP
		}
	default:
		if _, err := s.validateVerificationCode(s.db, user.Email, code, PurposeDisable2FA); err != nil {
			return err
		}
	}

	if err := s.db.Model(&User{}).Where("id = ?", userID).Update("totp_secret", "").Error; err != nil {
		return fmt.Errorf("failed to clear TOTP secret: %w", err)
	}

	s.logger.Info("TOTP disabled", zap.Uint("user_id", userID))
	return nil
}

func (s *Service) clientRole() (*Role, error) {
	var role Role
	if err := s.db.Where(Role{Name: RoleClient}).FirstOrCreate(&role).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve client role: %w", err)
	}
	return &role, nil
}

func newDevice(userID uint, userAgent, ip string) *Device {
	ua := useragent.Parse(userAgent)
	return &Device{
		UserID:     userID,
		UserAgent:  userAgent,
		IP:         ip,
		Browser:    ua.Name,
		OS:         ua.OS,
		IsActive:   true,
		LastActive: time.Now(),
	}
}

// generateOTP returns a 6-digit code uniformly random over
// [100000, 999999].
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
