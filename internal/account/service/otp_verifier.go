// Package service provides supporting services for account operations.
package service

import (
	"context"
	"crypto/subtle"

	"github.com/google/uuid"

	accountDomain "github.com/allisson/notevault/internal/account/domain"
)

// StaticOTPVerifier verifies one-time codes against a single preconfigured
// code. Code generation and delivery live outside this module; deployments
// with a real OTP provider plug it in behind the usecase.OTPVerifier
// interface. An empty configured code rejects every rotation attempt.
type StaticOTPVerifier struct {
	code string
}

// NewStaticOTPVerifier creates a verifier for the given code.
func NewStaticOTPVerifier(code string) *StaticOTPVerifier {
	return &StaticOTPVerifier{code: code}
}

// Verify checks the presented code in constant time.
func (v *StaticOTPVerifier) Verify(_ context.Context, _ uuid.UUID, code string) error {
	if v.code == "" || subtle.ConstantTimeCompare([]byte(v.code), []byte(code)) != 1 {
		return accountDomain.ErrOTPRequired
	}
	return nil
}
