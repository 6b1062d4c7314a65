package dto

import (
	"encoding/base64"
	"time"

	accountDomain "github.com/allisson/notevault/internal/account/domain"
	accountUseCase "github.com/allisson/notevault/internal/account/usecase"
)

// AccountResponse represents an account in API responses. Key material is
// omitted; the login and kdf-params endpoints return it explicitly.
type AccountResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	KeyVersion uint      `json:"key_version"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// KdfParamsResponse is the pre-login key derivation bundle: everything the
// client needs to re-derive its keys from the passphrase.
type KdfParamsResponse struct {
	KdfSalt       string `json:"kdf_salt"`
	KdfTime       uint32 `json:"kdf_time"`
	KdfMemory     uint32 `json:"kdf_memory"`
	KdfThreads    uint8  `json:"kdf_threads"`
	KdfSaltLength uint32 `json:"kdf_salt_length"`
	KeyVersion    uint   `json:"key_version"`
}

// LoginResponse carries the bearer token and the wrapped key material the
// client unwraps locally.
type LoginResponse struct {
	Token               string    `json:"token"`
	ExpiresAt           time.Time `json:"expires_at"`
	AccountID           string    `json:"account_id"`
	WrappedDek          string    `json:"wrapped_dek"`
	WrappedDekNonce     string    `json:"wrapped_dek_nonce"`
	WrappedDekAlgorithm string    `json:"wrapped_dek_algorithm"`
	KeyVersion          uint      `json:"key_version"`
}

// MapAccountToResponse converts a domain account to its API representation.
func MapAccountToResponse(account *accountDomain.Account) AccountResponse {
	return AccountResponse{
		ID:         account.ID.String(),
		Email:      account.Email,
		KeyVersion: account.KeyVersion,
		CreatedAt:  account.CreatedAt,
		UpdatedAt:  account.UpdatedAt,
	}
}

// MapKdfParamsToResponse converts a KDF parameter bundle to its API representation.
func MapKdfParamsToResponse(output *accountUseCase.KdfParamsOutput) KdfParamsResponse {
	return KdfParamsResponse{
		KdfSalt:       base64.StdEncoding.EncodeToString(output.KdfSalt),
		KdfTime:       output.KdfParams.Time,
		KdfMemory:     output.KdfParams.Memory,
		KdfThreads:    output.KdfParams.Threads,
		KdfSaltLength: output.KdfParams.SaltLength,
		KeyVersion:    output.KeyVersion,
	}
}

// MapLoginToResponse converts a login result to its API representation.
func MapLoginToResponse(output *accountUseCase.LoginOutput) LoginResponse {
	return LoginResponse{
		Token:               output.PlainToken,
		ExpiresAt:           output.Token.ExpiresAt,
		AccountID:           output.Account.ID.String(),
		WrappedDek:          base64.StdEncoding.EncodeToString(output.Account.WrappedDek),
		WrappedDekNonce:     base64.StdEncoding.EncodeToString(output.Account.WrappedDekNonce),
		WrappedDekAlgorithm: string(output.Account.WrappedDekAlgorithm),
		KeyVersion:          output.Account.KeyVersion,
	}
}
