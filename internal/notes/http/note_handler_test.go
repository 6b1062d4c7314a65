package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountDomain "github.com/allisson/notevault/internal/account/domain"
	authHTTP "github.com/allisson/notevault/internal/auth/http"
	notesDomain "github.com/allisson/notevault/internal/notes/domain"
	"github.com/allisson/notevault/internal/notes/http/dto"
)

// stubSyncUseCase implements notesUseCase.NoteSyncUseCase with injectable
// behavior per test.
type stubSyncUseCase struct {
	createFn func(ctx context.Context, note *notesDomain.Note) (*notesDomain.Note, error)
	getFn    func(ctx context.Context, accountID, noteID uuid.UUID) (*notesDomain.Note, error)
	listFn   func(ctx context.Context, accountID uuid.UUID, status notesDomain.Status, offset, limit int) ([]*notesDomain.Note, error)
	updateFn func(ctx context.Context, note *notesDomain.Note, expectedVersion uint) (*notesDomain.Note, error)
}

func (s *stubSyncUseCase) Create(ctx context.Context, note *notesDomain.Note) (*notesDomain.Note, error) {
	return s.createFn(ctx, note)
}

func (s *stubSyncUseCase) Get(ctx context.Context, accountID, noteID uuid.UUID) (*notesDomain.Note, error) {
	return s.getFn(ctx, accountID, noteID)
}

func (s *stubSyncUseCase) List(
	ctx context.Context,
	accountID uuid.UUID,
	status notesDomain.Status,
	offset, limit int,
) ([]*notesDomain.Note, error) {
	return s.listFn(ctx, accountID, status, offset, limit)
}

func (s *stubSyncUseCase) Update(
	ctx context.Context,
	note *notesDomain.Note,
	expectedVersion uint,
) (*notesDomain.Note, error) {
	return s.updateFn(ctx, note, expectedVersion)
}

func setupTestHandler(stub *stubSyncUseCase) *NoteHandler {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewNoteHandler(stub, logger)
}

func createTestContext(
	method, target string,
	body any,
	account *accountDomain.Account,
) (*gin.Context, *httptest.ResponseRecorder) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")

	if account != nil {
		c.Request = c.Request.WithContext(authHTTP.WithAccount(c.Request.Context(), account))
	}

	return c, recorder
}

func testAccount() *accountDomain.Account {
	return &accountDomain.Account{
		ID:    uuid.Must(uuid.NewV7()),
		Email: "owner@example.com",
	}
}

func TestNoteHandler_CreateHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		account := testAccount()
		noteID := uuid.Must(uuid.NewV7())
		now := time.Now().UTC()

		stub := &stubSyncUseCase{
			createFn: func(_ context.Context, note *notesDomain.Note) (*notesDomain.Note, error) {
				assert.Equal(t, account.ID, note.AccountID)
				assert.Equal(t, noteID, note.ID)
				return &notesDomain.Note{
					ID:         note.ID,
					AccountID:  note.AccountID,
					Ciphertext: note.Ciphertext,
					Nonce:      note.Nonce,
					Version:    1,
					Status:     notesDomain.StatusActive,
					CreatedAt:  now,
					UpdatedAt:  now,
				}, nil
			},
		}
		handler := setupTestHandler(stub)

		request := dto.CreateNoteRequest{
			ID:         noteID.String(),
			Ciphertext: base64.StdEncoding.EncodeToString([]byte("blob")),
			Nonce:      base64.StdEncoding.EncodeToString([]byte("nonce")),
		}
		c, recorder := createTestContext(http.MethodPost, "/v1/notes", request, account)

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var response dto.NoteResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, noteID.String(), response.ID)
		assert.Equal(t, uint(1), response.Version)
		assert.Equal(t, "active", response.Status)
	})

	t.Run("Unauthorized_NoAccount", func(t *testing.T) {
		handler := setupTestHandler(&stubSyncUseCase{})

		request := dto.CreateNoteRequest{
			ID:         uuid.Must(uuid.NewV7()).String(),
			Ciphertext: base64.StdEncoding.EncodeToString([]byte("blob")),
			Nonce:      base64.StdEncoding.EncodeToString([]byte("nonce")),
		}
		c, recorder := createTestContext(http.MethodPost, "/v1/notes", request, nil)

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("ValidationError_MissingCiphertext", func(t *testing.T) {
		handler := setupTestHandler(&stubSyncUseCase{})

		request := dto.CreateNoteRequest{
			ID:    uuid.Must(uuid.NewV7()).String(),
			Nonce: base64.StdEncoding.EncodeToString([]byte("nonce")),
		}
		c, recorder := createTestContext(http.MethodPost, "/v1/notes", request, testAccount())

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})

	t.Run("ValidationError_BadUUID", func(t *testing.T) {
		handler := setupTestHandler(&stubSyncUseCase{})

		request := dto.CreateNoteRequest{
			ID:         "not-a-uuid",
			Ciphertext: base64.StdEncoding.EncodeToString([]byte("blob")),
			Nonce:      base64.StdEncoding.EncodeToString([]byte("nonce")),
		}
		c, recorder := createTestContext(http.MethodPost, "/v1/notes", request, testAccount())

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})
}

func TestNoteHandler_GetHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		account := testAccount()
		noteID := uuid.Must(uuid.NewV7())

		stub := &stubSyncUseCase{
			getFn: func(_ context.Context, accountID, id uuid.UUID) (*notesDomain.Note, error) {
				assert.Equal(t, account.ID, accountID)
				assert.Equal(t, noteID, id)
				return &notesDomain.Note{
					ID:         noteID,
					AccountID:  accountID,
					Ciphertext: []byte("blob"),
					Nonce:      []byte("nonce"),
					Version:    2,
					Status:     notesDomain.StatusActive,
				}, nil
			},
		}
		handler := setupTestHandler(stub)

		c, recorder := createTestContext(http.MethodGet, "/v1/notes/"+noteID.String(), nil, account)
		c.Params = gin.Params{{Key: "id", Value: noteID.String()}}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var response dto.NoteResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("blob")), response.Ciphertext)
		assert.Equal(t, uint(2), response.Version)
	})

	t.Run("NotFound", func(t *testing.T) {
		noteID := uuid.Must(uuid.NewV7())
		stub := &stubSyncUseCase{
			getFn: func(_ context.Context, _, _ uuid.UUID) (*notesDomain.Note, error) {
				return nil, notesDomain.ErrNoteNotFound
			},
		}
		handler := setupTestHandler(stub)

		c, recorder := createTestContext(http.MethodGet, "/v1/notes/"+noteID.String(), nil, testAccount())
		c.Params = gin.Params{{Key: "id", Value: noteID.String()}}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("InvalidID", func(t *testing.T) {
		handler := setupTestHandler(&stubSyncUseCase{})

		c, recorder := createTestContext(http.MethodGet, "/v1/notes/oops", nil, testAccount())
		c.Params = gin.Params{{Key: "id", Value: "oops"}}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})
}

func TestNoteHandler_ListHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		account := testAccount()
		stub := &stubSyncUseCase{
			listFn: func(
				_ context.Context,
				accountID uuid.UUID,
				status notesDomain.Status,
				offset, limit int,
			) ([]*notesDomain.Note, error) {
				assert.Equal(t, account.ID, accountID)
				assert.Equal(t, notesDomain.StatusDeleted, status)
				assert.Equal(t, 10, offset)
				assert.Equal(t, 20, limit)
				return []*notesDomain.Note{
					{ID: uuid.Must(uuid.NewV7()), Version: 1, Status: notesDomain.StatusDeleted},
				}, nil
			},
		}
		handler := setupTestHandler(stub)

		c, recorder := createTestContext(
			http.MethodGet,
			"/v1/notes?status=deleted&offset=10&limit=20",
			nil,
			account,
		)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var response dto.ListNotesResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Len(t, response.Data, 1)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		handler := setupTestHandler(&stubSyncUseCase{})

		c, recorder := createTestContext(http.MethodGet, "/v1/notes?status=archived", nil, testAccount())

		handler.ListHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})
}

func TestNoteHandler_UpdateHandler(t *testing.T) {
	t.Run("Success_Transition", func(t *testing.T) {
		account := testAccount()
		noteID := uuid.Must(uuid.NewV7())

		stub := &stubSyncUseCase{
			updateFn: func(
				_ context.Context,
				note *notesDomain.Note,
				expectedVersion uint,
			) (*notesDomain.Note, error) {
				assert.Equal(t, notesDomain.StatusDeleted, note.Status)
				assert.Equal(t, uint(1), expectedVersion)
				return &notesDomain.Note{
					ID:      note.ID,
					Version: 2,
					Status:  notesDomain.StatusDeleted,
				}, nil
			},
		}
		handler := setupTestHandler(stub)

		request := dto.UpdateNoteRequest{
			Status:          "deleted",
			ExpectedVersion: 1,
		}
		c, recorder := createTestContext(http.MethodPut, "/v1/notes/"+noteID.String(), request, account)
		c.Params = gin.Params{{Key: "id", Value: noteID.String()}}

		handler.UpdateHandler(c)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var response dto.NoteResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, uint(2), response.Version)
		assert.Equal(t, "deleted", response.Status)
	})

	t.Run("Conflict", func(t *testing.T) {
		noteID := uuid.Must(uuid.NewV7())
		stub := &stubSyncUseCase{
			updateFn: func(
				_ context.Context,
				_ *notesDomain.Note,
				_ uint,
			) (*notesDomain.Note, error) {
				return nil, notesDomain.ErrNoteConflict
			},
		}
		handler := setupTestHandler(stub)

		request := dto.UpdateNoteRequest{
			Ciphertext:      base64.StdEncoding.EncodeToString([]byte("blob")),
			Nonce:           base64.StdEncoding.EncodeToString([]byte("nonce")),
			Status:          "active",
			ExpectedVersion: 1,
		}
		c, recorder := createTestContext(http.MethodPut, "/v1/notes/"+noteID.String(), request, testAccount())
		c.Params = gin.Params{{Key: "id", Value: noteID.String()}}

		handler.UpdateHandler(c)

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("InvalidTransition", func(t *testing.T) {
		noteID := uuid.Must(uuid.NewV7())
		stub := &stubSyncUseCase{
			updateFn: func(
				_ context.Context,
				_ *notesDomain.Note,
				_ uint,
			) (*notesDomain.Note, error) {
				return nil, notesDomain.ErrInvalidTransition
			},
		}
		handler := setupTestHandler(stub)

		request := dto.UpdateNoteRequest{
			Status:          "purged",
			ExpectedVersion: 1,
		}
		c, recorder := createTestContext(http.MethodPut, "/v1/notes/"+noteID.String(), request, testAccount())
		c.Params = gin.Params{{Key: "id", Value: noteID.String()}}

		handler.UpdateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})
}
