package helpers

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

const (
	verificationCodeMin = 100000
	verificationCodeMax = 999999
)

// GenVerificationCode returns a uniformly random 6-digit code in 100000-999999.
// Codes are independent per call; two users may receive the same code.
func GenVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(verificationCodeMax-verificationCodeMin+1))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+verificationCodeMin, 10), nil
}

// IsVerificationCode reports whether s has the shape of a generated code.
func IsVerificationCode(s string) bool {
	if len(s) != 6 {
		return false
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= verificationCodeMin && n <= verificationCodeMax
}
