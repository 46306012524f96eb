package models

import (
	"errors"
	"time"

	"github.com/jinzhu/gorm"
)

// Verification outcomes for a stored code.
var (
	ErrOTPNotFound = errors.New("no OTP generated for this email")
	ErrOTPExpired  = errors.New("OTP has expired")
	ErrOTPMismatch = errors.New("invalid OTP")
)

// OTPStore holds one issued code. Rows are append-only: issuing a new code for
// the same email supersedes older rows because lookups always take the latest.
type OTPStore struct {
	ID        int64     `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Email     string    `gorm:"not null;index" json:"email"`
	OTP       string    `gorm:"not null" json:"otp"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
}

func (OTPStore) TableName() string {
	return "otp_store"
}

// VerifyAndConsumeOTP checks the most recently issued code for the email and,
// on success, deletes it in the same transaction. A code is valid through
// exactly issued_at + window; anything later is expired.
func VerifyAndConsumeOTP(db *gorm.DB, email, code string, window time.Duration) error {
	return verifyAndConsumeOTPAt(db, email, code, window, time.Now())
}

func verifyAndConsumeOTPAt(db *gorm.DB, email, code string, window time.Duration, now time.Time) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var record OTPStore
	err := tx.Where("email = ?", email).
		Order("timestamp desc, id desc").
		First(&record).Error
	if err != nil {
		tx.Rollback()
		if gorm.IsRecordNotFoundError(err) {
			return ErrOTPNotFound
		}
		return err
	}

	if now.Sub(record.Timestamp) > window {
		tx.Rollback()
		return ErrOTPExpired
	}
	if record.OTP != code {
		tx.Rollback()
		return ErrOTPMismatch
	}

	// Consume-once: the code never validates a second request.
	if err := tx.Delete(&record).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// PurgeExpiredOTPs removes rows past the validity window. Superseded rows are
// unreachable for verification anyway; this keeps the table from growing.
func PurgeExpiredOTPs(db *gorm.DB, window time.Duration) (int64, error) {
	cutoff := time.Now().Add(-window)
	res := db.Where("timestamp < ?", cutoff).Delete(&OTPStore{})
	return res.RowsAffected, res.Error
}
