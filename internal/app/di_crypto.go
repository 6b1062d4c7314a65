package app

import (
	"context"
	"fmt"

	cryptoService "github.com/allisson/notevault/internal/crypto/service"
)

// KMSKeeper returns the secrets keeper used to wrap stored key blobs at rest.
// Returns nil when no KMS key URI is configured; stored blobs are then kept
// as the client sent them.
func (c *Container) KMSKeeper() (cryptoService.KMSKeeper, error) {
	var err error
	c.kmsKeeperInit.Do(func() {
		c.kmsKeeper, err = c.initKMSKeeper()
		if err != nil {
			c.initErrors["kmsKeeper"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["kmsKeeper"]; exists {
		return nil, storedErr
	}
	return c.kmsKeeper, nil
}

// initKMSKeeper opens the configured gocloud.dev secrets keeper.
func (c *Container) initKMSKeeper() (cryptoService.KMSKeeper, error) {
	if c.config.KMSKeyURI == "" {
		return nil, nil
	}

	kmsService := cryptoService.NewKMSService()
	keeper, err := kmsService.OpenKeeper(context.Background(), c.config.KMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open kms keeper: %w", err)
	}

	return keeper, nil
}
