package tools

import (
	"strconv"
	"testing"
)

func TestOTPCodeRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code := OTPCode()
		if len(code) != 6 {
			t.Fatalf("OTPCode() = %q, want 6 digits", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("OTPCode() = %q, not numeric", code)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("OTPCode() = %d, out of [100000, 999999]", n)
		}
	}
}

func TestRandomNumbers(t *testing.T) {
	s := RandomNumbers(8)
	if len(s) != 8 {
		t.Fatalf("RandomNumbers(8) length = %d", len(s))
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			t.Fatalf("RandomNumbers(8) = %q, non-digit %q", s, r)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last+tag@example.com", "x_1%y@sub.domain.org"}
	for _, e := range valid {
		if !ValidateEmail(e) {
			t.Errorf("ValidateEmail(%q) = false, want true", e)
		}
	}
	invalid := []string{"", "plain", "@example.com", "a@b", "a b@example.com"}
	for _, e := range invalid {
		if ValidateEmail(e) {
			t.Errorf("ValidateEmail(%q) = true, want false", e)
		}
	}
}

func TestValidateStageText(t *testing.T) {
	if !ValidateStageText("Needs Analysis") {
		t.Error("'Needs Analysis' should be valid")
	}
	invalid := []string{"", "Stage-1", "Stage/Quote", "123"}
	for _, s := range invalid {
		if ValidateStageText(s) {
			t.Errorf("ValidateStageText(%q) = true, want false", s)
		}
	}
}
