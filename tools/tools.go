package tools

import (
	"math/rand"
	"time"
)

const numbers = "0123456789"

var seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// OTPCode returns a 6-digit numeric code in [100000, 999999]. The first digit
// is drawn from 1-9 so a leading zero can never shrink the code.
func OTPCode() string {
	first := numbers[1+seededRand.Intn(9)]
	return string(first) + RandomNumbers(5)
}

func RandomNumbers(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = numbers[seededRand.Intn(len(numbers))]
	}
	return string(b)
}
