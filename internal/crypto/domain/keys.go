// Package domain defines the core cryptographic domain models for the vault's
// envelope encryption scheme.
//
// The key hierarchy is passphrase → KEK → DEK → note plaintext. The KEK is
// derived from the account passphrase with Argon2id and never persisted; the
// DEK is generated once per account and only ever stored wrapped under the
// KEK. Both keys are 256 bits and are used with AESGCM or ChaCha20 AEADs.
package domain

// KdfParams holds the Argon2id parameters used to derive an account's keys
// from its passphrase. The parameters are persisted with the account record so
// the work factor can be tuned per-account without breaking existing accounts.
type KdfParams struct {
	// Time is the Argon2id time cost (number of passes).
	Time uint32
	// Memory is the Argon2id memory cost in KiB.
	Memory uint32
	// Threads is the Argon2id parallelism degree.
	Threads uint8
	// SaltLength is the salt length in bytes for newly generated salts.
	SaltLength uint32
}

// MinSaltLength is the minimum accepted salt length in bytes.
const MinSaltLength = 16

// Validate checks the parameters are usable for key derivation.
func (p KdfParams) Validate() error {
	if p.Time == 0 || p.Memory == 0 || p.Threads == 0 || p.SaltLength < MinSaltLength {
		return ErrInvalidKdfParams
	}
	return nil
}

// WrappedDek is the only form of the Data Encryption Key allowed to leave
// memory: the DEK encrypted under the passphrase-derived KEK. It is stored in
// the account record together with the salt and KDF parameters needed to
// recompute the KEK at login.
type WrappedDek struct {
	// Ciphertext is the DEK encrypted with the KEK (includes the auth tag).
	Ciphertext []byte
	// Nonce is the unique nonce used for the wrapping operation.
	Nonce []byte
	// Algorithm is the AEAD algorithm used for the wrap.
	Algorithm Algorithm
}
