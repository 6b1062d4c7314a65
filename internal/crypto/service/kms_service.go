package service

import (
	"context"
	"fmt"

	"gocloud.dev/secrets"

	// Register KMS provider drivers
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KMSService opens gocloud.dev secrets keepers for server-side at-rest
// protection of stored key blobs. The client-side envelope already keeps the
// DEK confidential; the keeper additionally shields the stored wrapped-DEK
// blob from raw database dumps.
type KMSService interface {
	// OpenKeeper opens a secrets keeper for the given key URI.
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}

// kmsService implements KMSService using gocloud.dev/secrets.
type kmsService struct{}

// NewKMSService creates a new KMS service instance.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens a secrets.Keeper for the configured provider using the keyURI.
// Supports: hashivault://, base64key:// (local keys, used in development and tests).
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}
