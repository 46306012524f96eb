package models

import (
	"testing"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.DB().SetMaxOpenConns(1)
	db.AutoMigrate(&OTPStore{})
	t.Cleanup(func() { db.Close() })
	return db
}

func issueOTP(t *testing.T, db *gorm.DB, email, code string, at time.Time) {
	t.Helper()
	record := OTPStore{Email: email, OTP: code, Timestamp: at}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("insert otp: %v", err)
	}
}

const otpWindow = 60 * time.Minute

func TestVerifyOTPNotFound(t *testing.T) {
	db := openTestDB(t)
	err := verifyAndConsumeOTPAt(db, "nobody@example.com", "123456", otpWindow, time.Now())
	if err != ErrOTPNotFound {
		t.Fatalf("err = %v, want ErrOTPNotFound", err)
	}
}

func TestVerifyOTPMismatch(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	issueOTP(t, db, "a@example.com", "111111", now)

	err := verifyAndConsumeOTPAt(db, "a@example.com", "222222", otpWindow, now)
	if err != ErrOTPMismatch {
		t.Fatalf("err = %v, want ErrOTPMismatch", err)
	}

	// A mismatch must not consume the stored code.
	if err := verifyAndConsumeOTPAt(db, "a@example.com", "111111", otpWindow, now); err != nil {
		t.Fatalf("correct code rejected after mismatch: %v", err)
	}
}

func TestVerifyOTPLatestWins(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	issueOTP(t, db, "a@example.com", "111111", now.Add(-10*time.Minute))
	issueOTP(t, db, "a@example.com", "222222", now)

	// The superseded code no longer validates.
	if err := verifyAndConsumeOTPAt(db, "a@example.com", "111111", otpWindow, now); err != ErrOTPMismatch {
		t.Fatalf("old code: err = %v, want ErrOTPMismatch", err)
	}
	if err := verifyAndConsumeOTPAt(db, "a@example.com", "222222", otpWindow, now); err != nil {
		t.Fatalf("latest code rejected: %v", err)
	}
}

func TestVerifyOTPExpiryBoundary(t *testing.T) {
	db := openTestDB(t)
	issued := time.Now()

	// Valid through exactly issued + window.
	issueOTP(t, db, "edge@example.com", "333333", issued)
	if err := verifyAndConsumeOTPAt(db, "edge@example.com", "333333", otpWindow, issued.Add(otpWindow)); err != nil {
		t.Fatalf("code at exact boundary rejected: %v", err)
	}

	issueOTP(t, db, "late@example.com", "444444", issued)
	err := verifyAndConsumeOTPAt(db, "late@example.com", "444444", otpWindow, issued.Add(otpWindow+time.Second))
	if err != ErrOTPExpired {
		t.Fatalf("past boundary: err = %v, want ErrOTPExpired", err)
	}
}

func TestVerifyOTPConsumeOnce(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	issueOTP(t, db, "a@example.com", "555555", now)

	if err := verifyAndConsumeOTPAt(db, "a@example.com", "555555", otpWindow, now); err != nil {
		t.Fatalf("first use rejected: %v", err)
	}
	err := verifyAndConsumeOTPAt(db, "a@example.com", "555555", otpWindow, now)
	if err != ErrOTPNotFound {
		t.Fatalf("second use: err = %v, want ErrOTPNotFound", err)
	}
}

func TestPurgeExpiredOTPs(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	issueOTP(t, db, "old@example.com", "111111", now.Add(-2*time.Hour))
	issueOTP(t, db, "fresh@example.com", "222222", now)

	purged, err := PurgeExpiredOTPs(db, otpWindow)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if purged != 1 {
		t.Fatalf("purged = %d, want 1", purged)
	}

	var count int
	db.Model(&OTPStore{}).Count(&count)
	if count != 1 {
		t.Fatalf("remaining rows = %d, want 1", count)
	}
}
