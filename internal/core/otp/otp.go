// Package otp issues the short numeric codes used for sign-up email
// confirmation and password-reset OTPs. One issuer serves both purposes;
// only the storage of the issued code differs between the flows.
package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
)

// CodeLength is the number of digits in an issued code.
const CodeLength = 6

var codeSpace = new(big.Int).Exp(big.NewInt(10), big.NewInt(CodeLength), nil)

// Issue returns a uniformly random, zero-padded numeric code.
func Issue() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("otp: %w", err)
	}
	return fmt.Sprintf("%0*d", CodeLength, n), nil
}

// Matches compares a submitted code against the stored one in constant
// time. An empty stored code never matches.
func Matches(submitted, stored string) bool {
	if stored == "" || len(submitted) != len(stored) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(stored)) == 1
}
