// Package sync implements the HTTP client for the note sync API. It is the
// client-side half of the SyncStore boundary: notes leave this process
// encrypted and come back encrypted, with the bearer token as the only
// credential on the wire.
package sync

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/notevault/internal/errors"
	"github.com/allisson/notevault/internal/httputil"
	notesDomain "github.com/allisson/notevault/internal/notes/domain"
	"github.com/allisson/notevault/internal/notes/http/dto"
)

// Client is an HTTP implementation of the sync store.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a sync client for the given server. A nil httpClient
// falls back to a client with a 30 second timeout.
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: httpClient,
	}
}

// Create stores a new encrypted note on the server.
func (c *Client) Create(ctx context.Context, note *notesDomain.Note) error {
	payload := dto.CreateNoteRequest{
		ID:         note.ID.String(),
		Ciphertext: base64.StdEncoding.EncodeToString(note.Ciphertext),
		Nonce:      base64.StdEncoding.EncodeToString(note.Nonce),
	}

	var response dto.NoteResponse
	err := c.do(ctx, http.MethodPost, "/v1/notes", payload, &response)
	if err != nil {
		return err
	}

	return applyResponse(note, &response)
}

// Get fetches an encrypted note by id.
func (c *Client) Get(ctx context.Context, noteID uuid.UUID) (*notesDomain.Note, error) {
	var response dto.NoteResponse
	err := c.do(ctx, http.MethodGet, "/v1/notes/"+noteID.String(), nil, &response)
	if err != nil {
		return nil, err
	}

	return mapResponse(&response)
}

// List fetches notes filtered by status with pagination.
func (c *Client) List(
	ctx context.Context,
	status notesDomain.Status,
	offset, limit int,
) ([]*notesDomain.Note, error) {
	query := url.Values{}
	query.Set("status", string(status))
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(limit))

	var response dto.ListNotesResponse
	err := c.do(ctx, http.MethodGet, "/v1/notes?"+query.Encode(), nil, &response)
	if err != nil {
		return nil, err
	}

	notes := make([]*notesDomain.Note, 0, len(response.Data))
	for i := range response.Data {
		note, err := mapResponse(&response.Data[i])
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	return notes, nil
}

// Update sends a content update or lifecycle transition guarded by the
// expected version.
func (c *Client) Update(
	ctx context.Context,
	note *notesDomain.Note,
	expectedVersion uint,
) error {
	payload := dto.UpdateNoteRequest{
		Status:          string(note.Status),
		ExpectedVersion: expectedVersion,
	}
	if len(note.Ciphertext) > 0 {
		payload.Ciphertext = base64.StdEncoding.EncodeToString(note.Ciphertext)
		payload.Nonce = base64.StdEncoding.EncodeToString(note.Nonce)
	}

	var response dto.NoteResponse
	err := c.do(ctx, http.MethodPut, "/v1/notes/"+note.ID.String(), payload, &response)
	if err != nil {
		return err
	}

	return applyResponse(note, &response)
}

// do performs a request against the sync API, decoding a successful JSON body
// into out and mapping error statuses to domain errors.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return apperrors.Wrap(err, "failed to encode request body")
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return apperrors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(err, "sync request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return mapErrorResponse(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return apperrors.Wrap(err, "failed to decode response body")
		}
	}

	return nil
}

// mapErrorResponse converts an API error response to the domain error the
// rest of the client core expects.
func mapErrorResponse(resp *http.Response) error {
	var errorResponse httputil.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&errorResponse)

	message := errorResponse.Message
	if message == "" {
		message = fmt.Sprintf("sync request failed with status %d", resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return notesDomain.ErrNoteNotFound
	case http.StatusConflict:
		return notesDomain.ErrNoteConflict
	case http.StatusUnauthorized:
		return apperrors.Wrap(apperrors.ErrUnauthorized, message)
	case http.StatusForbidden:
		return apperrors.Wrap(apperrors.ErrForbidden, message)
	case http.StatusLocked:
		return apperrors.Wrap(apperrors.ErrLocked, message)
	case http.StatusUnprocessableEntity, http.StatusBadRequest:
		return apperrors.Wrap(apperrors.ErrInvalidInput, message)
	default:
		return apperrors.New("sync request failed: " + message)
	}
}

// mapResponse converts an API note response to a domain note.
func mapResponse(response *dto.NoteResponse) (*notesDomain.Note, error) {
	note := &notesDomain.Note{
		Version:   response.Version,
		Status:    notesDomain.Status(response.Status),
		CreatedAt: response.CreatedAt,
		UpdatedAt: response.UpdatedAt,
	}

	noteID, err := uuid.Parse(response.ID)
	if err != nil {
		return nil, apperrors.Wrap(err, "invalid note id in response")
	}
	note.ID = noteID

	if response.Ciphertext != "" {
		note.Ciphertext, err = base64.StdEncoding.DecodeString(response.Ciphertext)
		if err != nil {
			return nil, apperrors.Wrap(err, "invalid base64 ciphertext in response")
		}
	}
	if response.Nonce != "" {
		note.Nonce, err = base64.StdEncoding.DecodeString(response.Nonce)
		if err != nil {
			return nil, apperrors.Wrap(err, "invalid base64 nonce in response")
		}
	}

	return note, nil
}

// applyResponse copies the server-assigned fields back onto the caller's note.
func applyResponse(note *notesDomain.Note, response *dto.NoteResponse) error {
	mapped, err := mapResponse(response)
	if err != nil {
		return err
	}

	note.Version = mapped.Version
	note.Status = mapped.Status
	note.CreatedAt = mapped.CreatedAt
	note.UpdatedAt = mapped.UpdatedAt
	return nil
}
