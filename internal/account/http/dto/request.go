// Package dto provides data transfer objects for account HTTP request and
// response handling. Key material travels base64-encoded; the passphrase and
// the KEK never appear on the wire.
package dto

import (
	validation "github.com/jellydator/validation"

	cryptoDomain "github.com/allisson/notevault/internal/crypto/domain"
	customValidation "github.com/allisson/notevault/internal/validation"
)

// algorithmRule validates the AEAD algorithm identifier.
var algorithmRule = validation.In(
	string(cryptoDomain.AESGCM),
	string(cryptoDomain.ChaCha20),
)

// SignupRequest contains the client-prepared key material for account
// creation: the derived auth key, the KDF salt and parameters, and the DEK
// wrapped under the client-held KEK.
type SignupRequest struct {
	Email               string `json:"email"`
	AuthKey             string `json:"auth_key"`
	KdfSalt             string `json:"kdf_salt"`
	KdfTime             uint32 `json:"kdf_time"`
	KdfMemory           uint32 `json:"kdf_memory"`
	KdfThreads          uint8  `json:"kdf_threads"`
	KdfSaltLength       uint32 `json:"kdf_salt_length"`
	WrappedDek          string `json:"wrapped_dek"`
	WrappedDekNonce     string `json:"wrapped_dek_nonce"`
	WrappedDekAlgorithm string `json:"wrapped_dek_algorithm"`
}

// Validate checks if the signup request is valid.
func (r *SignupRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, customValidation.Email),
		validation.Field(&r.AuthKey, validation.Required, customValidation.Base64),
		validation.Field(&r.KdfSalt, validation.Required, customValidation.Base64),
		validation.Field(&r.KdfTime, validation.Required),
		validation.Field(&r.KdfMemory, validation.Required),
		validation.Field(&r.KdfThreads, validation.Required),
		validation.Field(&r.KdfSaltLength, validation.Required),
		validation.Field(&r.WrappedDek, validation.Required, customValidation.Base64),
		validation.Field(&r.WrappedDekNonce, validation.Required, customValidation.Base64),
		validation.Field(&r.WrappedDekAlgorithm, validation.Required, algorithmRule),
	)
}

// LoginRequest contains the credentials for login: the email and the
// client-derived authentication key.
type LoginRequest struct {
	Email   string `json:"email"`
	AuthKey string `json:"auth_key"`
}

// Validate checks if the login request is valid.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, customValidation.Email),
		validation.Field(&r.AuthKey, validation.Required, customValidation.Base64),
	)
}

// RotateRequest contains the replacement credential set for a passphrase
// rotation plus the one-time code gating it. ExpectedKeyVersion is the key
// version the client last saw.
type RotateRequest struct {
	AuthKey             string `json:"auth_key"`
	KdfSalt             string `json:"kdf_salt"`
	KdfTime             uint32 `json:"kdf_time"`
	KdfMemory           uint32 `json:"kdf_memory"`
	KdfThreads          uint8  `json:"kdf_threads"`
	KdfSaltLength       uint32 `json:"kdf_salt_length"`
	WrappedDek          string `json:"wrapped_dek"`
	WrappedDekNonce     string `json:"wrapped_dek_nonce"`
	WrappedDekAlgorithm string `json:"wrapped_dek_algorithm"`
	ExpectedKeyVersion  uint   `json:"expected_key_version"`
	OTPCode             string `json:"otp_code"`
}

// Validate checks if the rotation request is valid.
func (r *RotateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.AuthKey, validation.Required, customValidation.Base64),
		validation.Field(&r.KdfSalt, validation.Required, customValidation.Base64),
		validation.Field(&r.KdfTime, validation.Required),
		validation.Field(&r.KdfMemory, validation.Required),
		validation.Field(&r.KdfThreads, validation.Required),
		validation.Field(&r.KdfSaltLength, validation.Required),
		validation.Field(&r.WrappedDek, validation.Required, customValidation.Base64),
		validation.Field(&r.WrappedDekNonce, validation.Required, customValidation.Base64),
		validation.Field(&r.WrappedDekAlgorithm, validation.Required, algorithmRule),
		validation.Field(&r.ExpectedKeyVersion, validation.Required),
		validation.Field(&r.OTPCode, validation.Required),
	)
}
