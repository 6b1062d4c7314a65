package app

import (
	"fmt"

	accountHTTP "github.com/allisson/notevault/internal/account/http"
	accountRepository "github.com/allisson/notevault/internal/account/repository"
	accountService "github.com/allisson/notevault/internal/account/service"
	accountUseCase "github.com/allisson/notevault/internal/account/usecase"
	authService "github.com/allisson/notevault/internal/auth/service"
)

// KeyHashService returns the service that hashes client-derived auth keys.
func (c *Container) KeyHashService() authService.KeyHashService {
	c.keyHashServiceInit.Do(func() {
		c.keyHashService = authService.NewKeyHashService()
	})
	return c.keyHashService
}

// OTPVerifier returns the one-time code verifier used to gate passphrase rotation.
func (c *Container) OTPVerifier() accountUseCase.OTPVerifier {
	c.otpVerifierInit.Do(func() {
		c.otpVerifier = accountService.NewStaticOTPVerifier(c.config.OTPStaticCode)
	})
	return c.otpVerifier
}

// AccountRepository returns the account repository based on the database driver.
func (c *Container) AccountRepository() (accountUseCase.AccountRepository, error) {
	var err error
	c.accountRepoInit.Do(func() {
		c.accountRepository, err = c.initAccountRepository()
		if err != nil {
			c.initErrors["accountRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accountRepository"]; exists {
		return nil, storedErr
	}
	return c.accountRepository, nil
}

// AccountUseCase returns the account use case.
func (c *Container) AccountUseCase() (accountUseCase.AccountUseCase, error) {
	var err error
	c.accountUseCaseInit.Do(func() {
		c.accountUC, err = c.initAccountUseCase()
		if err != nil {
			c.initErrors["accountUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accountUseCase"]; exists {
		return nil, storedErr
	}
	return c.accountUC, nil
}

// AccountHandler returns the HTTP handler for account operations.
func (c *Container) AccountHandler() (*accountHTTP.AccountHandler, error) {
	var err error
	c.accountHandlerInit.Do(func() {
		c.accountHandler, err = c.initAccountHandler()
		if err != nil {
			c.initErrors["accountHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accountHandler"]; exists {
		return nil, storedErr
	}
	return c.accountHandler, nil
}

// initAccountRepository creates the account repository based on the database driver.
func (c *Container) initAccountRepository() (accountUseCase.AccountRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for account repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return accountRepository.NewPostgreSQLAccountRepository(db), nil
	case "mysql":
		return accountRepository.NewMySQLAccountRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAccountUseCase creates the account use case with all its dependencies.
func (c *Container) initAccountUseCase() (accountUseCase.AccountUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for account use case: %w", err)
	}

	accountRepo, err := c.AccountRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get account repository for account use case: %w", err)
	}

	tokenUC, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for account use case: %w", err)
	}

	keeper, err := c.KMSKeeper()
	if err != nil {
		return nil, fmt.Errorf("failed to get kms keeper for account use case: %w", err)
	}

	baseUseCase := accountUseCase.NewAccountUseCase(
		txManager,
		accountRepo,
		tokenUC,
		c.KeyHashService(),
		c.OTPVerifier(),
		keeper,
		c.config.LoginMaxFailedAttempts,
		c.config.LoginLockoutDuration,
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for account use case: %w", err)
		}
		return accountUseCase.NewAccountUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initAccountHandler creates the account HTTP handler with all its dependencies.
func (c *Container) initAccountHandler() (*accountHTTP.AccountHandler, error) {
	accountUC, err := c.AccountUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get account use case for account handler: %w", err)
	}

	return accountHTTP.NewAccountHandler(accountUC, c.Logger()), nil
}
