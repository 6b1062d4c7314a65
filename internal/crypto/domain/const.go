package domain

// Algorithm represents the cryptographic algorithm used for encryption.
//
// All supported algorithms provide Authenticated Encryption with Associated Data
// (AEAD), ensuring both confidentiality and authenticity of encrypted data.
//
// Algorithm selection guidelines:
//   - Use AESGCM on modern CPUs with AES-NI hardware acceleration
//   - Use ChaCha20 on mobile devices or systems without AES-NI
//   - Both provide equivalent 256-bit security when used correctly
type Algorithm string

const (
	// AESGCM represents the AES-256-GCM authenticated encryption algorithm.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents the ChaCha20-Poly1305 authenticated encryption algorithm.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

const (
	// KeySize is the required key length in bytes for all supported algorithms (256 bits).
	KeySize = 32

	// NonceSize is the nonce length in bytes for all supported algorithms (96 bits).
	NonceSize = 12

	// TagSize is the authentication tag length in bytes appended to ciphertexts (128 bits).
	TagSize = 16
)
