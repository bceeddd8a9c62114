package auth

import (
	"time"

	"gorm.io/gorm"
)

// CodePurpose is the closed set of flows a verification code can serve.
type CodePurpose string

const (
	PurposeRegister       CodePurpose = "REGISTER"
	PurposeLogin          CodePurpose = "LOGIN"
	PurposeForgotPassword CodePurpose = "FORGOT_PASSWORD"
	PurposeDisable2FA     CodePurpose = "DISABLE_2FA"
)

const RoleClient = "CLIENT"

type Role struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex;size:100;not null"`
}

type User struct {
	gorm.Model
	Email       string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Name        string `json:"name" gorm:"size:255"`
	PhoneNumber string `json:"phone_number" gorm:"size:50"`
	Password    string `json:"-" gorm:"size:255;not null"`
	TOTPSecret  string `json:"-" gorm:"size:255"`
	RoleID      uint   `json:"role_id" gorm:"not null;index"`
	Role        Role   `json:"role"`
}

// VerificationCode holds at most one live code per email: a new request
// overwrites code, purpose and expiry rather than appending.
type VerificationCode struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	Email     string      `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Code      string      `json:"-" gorm:"size:10;not null"`
	Purpose   CodePurpose `json:"purpose" gorm:"size:32;not null"`
	ExpiresAt time.Time   `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time   `json:"created_at"`
}

type Device struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null;index"`
	UserAgent  string    `json:"user_agent" gorm:"size:500"`
	IP         string    `json:"ip" gorm:"size:64"`
	Browser    string    `json:"browser" gorm:"size:100"`
	OS         string    `json:"os" gorm:"size:100"`
	IsActive   bool      `json:"is_active" gorm:"not null;default:true"`
	LastActive time.Time `json:"last_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// RefreshToken is exactly one row per issued refresh token. A successful
// refresh deletes the row and creates a new one; a signature-valid token
// with no matching row has already been consumed.
type RefreshToken struct {
	Token     string    `json:"-" gorm:"primaryKey;size:1000"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	DeviceID  uint      `json:"device_id" gorm:"not null;index"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `json:"-"`
}

// Models lists every table this package owns, for auto-migration.
func Models() []any {
	return []any{&Role{}, &User{}, &VerificationCode{}, &Device{}, &RefreshToken{}}
}
