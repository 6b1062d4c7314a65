package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validSignupRequest() SignupRequest {
	return SignupRequest{
		Email:               "user@example.com",
		AuthKey:             "YXV0aC1rZXk=",
		KdfSalt:             "c2FsdC12YWx1ZQ==",
		KdfTime:             3,
		KdfMemory:           64 * 1024,
		KdfThreads:          4,
		KdfSaltLength:       16,
		WrappedDek:          "d3JhcHBlZC1kZWs=",
		WrappedDekNonce:     "bm9uY2U=",
		WrappedDekAlgorithm: "aes-gcm",
	}
}

func TestSignupRequestValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		req := validSignupRequest()
		assert.NoError(t, req.Validate())
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		req := validSignupRequest()
		req.Email = "not-an-email"
		assert.Error(t, req.Validate())
	})

	t.Run("AuthKeyNotBase64", func(t *testing.T) {
		req := validSignupRequest()
		req.AuthKey = "not base64!!!"
		assert.Error(t, req.Validate())
	})

	t.Run("MissingKdfParams", func(t *testing.T) {
		req := validSignupRequest()
		req.KdfTime = 0
		assert.Error(t, req.Validate())
	})

	t.Run("UnknownAlgorithm", func(t *testing.T) {
		req := validSignupRequest()
		req.WrappedDekAlgorithm = "rot13"
		assert.Error(t, req.Validate())
	})
}

func TestLoginRequestValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		req := LoginRequest{Email: "user@example.com", AuthKey: "YXV0aC1rZXk="}
		assert.NoError(t, req.Validate())
	})

	t.Run("MissingAuthKey", func(t *testing.T) {
		req := LoginRequest{Email: "user@example.com"}
		assert.Error(t, req.Validate())
	})
}

func validRotateRequest() RotateRequest {
	return RotateRequest{
		AuthKey:             "bmV3LWF1dGgta2V5",
		KdfSalt:             "bmV3LXNhbHQ=",
		KdfTime:             3,
		KdfMemory:           64 * 1024,
		KdfThreads:          4,
		KdfSaltLength:       16,
		WrappedDek:          "bmV3LXdyYXBwZWQ=",
		WrappedDekNonce:     "bmV3LW5vbmNl",
		WrappedDekAlgorithm: "chacha20-poly1305",
		ExpectedKeyVersion:  1,
		OTPCode:             "123456",
	}
}

func TestRotateRequestValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		req := validRotateRequest()
		assert.NoError(t, req.Validate())
	})

	t.Run("MissingOTPCode", func(t *testing.T) {
		req := validRotateRequest()
		req.OTPCode = ""
		assert.Error(t, req.Validate())
	})

	t.Run("MissingExpectedKeyVersion", func(t *testing.T) {
		req := validRotateRequest()
		req.ExpectedKeyVersion = 0
		assert.Error(t, req.Validate())
	})
}
