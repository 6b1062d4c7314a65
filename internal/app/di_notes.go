package app

import (
	"fmt"

	notesHTTP "github.com/allisson/notevault/internal/notes/http"
	notesRepository "github.com/allisson/notevault/internal/notes/repository"
	notesUseCase "github.com/allisson/notevault/internal/notes/usecase"
)

// NoteRepository returns the note repository based on the database driver.
func (c *Container) NoteRepository() (notesUseCase.NoteRepository, error) {
	var err error
	c.noteRepoInit.Do(func() {
		c.noteRepository, err = c.initNoteRepository()
		if err != nil {
			c.initErrors["noteRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["noteRepository"]; exists {
		return nil, storedErr
	}
	return c.noteRepository, nil
}

// NoteSyncUseCase returns the note sync use case.
func (c *Container) NoteSyncUseCase() (notesUseCase.NoteSyncUseCase, error) {
	var err error
	c.noteSyncUseCaseInit.Do(func() {
		c.noteSyncUC, err = c.initNoteSyncUseCase()
		if err != nil {
			c.initErrors["noteSyncUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["noteSyncUseCase"]; exists {
		return nil, storedErr
	}
	return c.noteSyncUC, nil
}

// NoteHandler returns the HTTP handler for note sync operations.
func (c *Container) NoteHandler() (*notesHTTP.NoteHandler, error) {
	var err error
	c.noteHandlerInit.Do(func() {
		c.noteHandler, err = c.initNoteHandler()
		if err != nil {
			c.initErrors["noteHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["noteHandler"]; exists {
		return nil, storedErr
	}
	return c.noteHandler, nil
}

// initNoteRepository creates the note repository based on the database driver.
func (c *Container) initNoteRepository() (notesUseCase.NoteRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for note repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return notesRepository.NewPostgreSQLNoteRepository(db), nil
	case "mysql":
		return notesRepository.NewMySQLNoteRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initNoteSyncUseCase creates the note sync use case with all its dependencies.
func (c *Container) initNoteSyncUseCase() (notesUseCase.NoteSyncUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for note sync use case: %w", err)
	}

	noteRepo, err := c.NoteRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get note repository for note sync use case: %w", err)
	}

	baseUseCase := notesUseCase.NewNoteSyncUseCase(txManager, noteRepo)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for note sync use case: %w", err)
		}
		return notesUseCase.NewNoteSyncUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initNoteHandler creates the note HTTP handler with all its dependencies.
func (c *Container) initNoteHandler() (*notesHTTP.NoteHandler, error) {
	noteSyncUC, err := c.NoteSyncUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get note sync use case for note handler: %w", err)
	}

	return notesHTTP.NewNoteHandler(noteSyncUC, c.Logger()), nil
}
