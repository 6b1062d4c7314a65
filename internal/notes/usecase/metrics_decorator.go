package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/notevault/internal/metrics"
	notesDomain "github.com/allisson/notevault/internal/notes/domain"
)

// noteSyncUseCaseWithMetrics decorates NoteSyncUseCase with metrics instrumentation.
type noteSyncUseCaseWithMetrics struct {
	next    NoteSyncUseCase
	metrics metrics.BusinessMetrics
}

// NewNoteSyncUseCaseWithMetrics wraps a NoteSyncUseCase with metrics recording.
func NewNoteSyncUseCaseWithMetrics(useCase NoteSyncUseCase, m metrics.BusinessMetrics) NoteSyncUseCase {
	return &noteSyncUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for note creation operations.
func (n *noteSyncUseCaseWithMetrics) Create(
	ctx context.Context,
	note *notesDomain.Note,
) (*notesDomain.Note, error) {
	start := time.Now()
	created, err := n.next.Create(ctx, note)

	status := "success"
	if err != nil {
		status = "error"
	}

	n.metrics.RecordOperation(ctx, "note", "note_create", status)
	n.metrics.RecordDuration(ctx, "note", "note_create", time.Since(start), status)

	return created, err
}

// Get records metrics for note retrieval operations.
func (n *noteSyncUseCaseWithMetrics) Get(
	ctx context.Context,
	accountID, noteID uuid.UUID,
) (*notesDomain.Note, error) {
	start := time.Now()
	note, err := n.next.Get(ctx, accountID, noteID)

	status := "success"
	if err != nil {
		status = "error"
	}

	n.metrics.RecordOperation(ctx, "note", "note_get", status)
	n.metrics.RecordDuration(ctx, "note", "note_get", time.Since(start), status)

	return note, err
}

// List records metrics for note listing operations.
func (n *noteSyncUseCaseWithMetrics) List(
	ctx context.Context,
	accountID uuid.UUID,
	status notesDomain.Status,
	offset, limit int,
) ([]*notesDomain.Note, error) {
	start := time.Now()
	notes, err := n.next.List(ctx, accountID, status, offset, limit)

	opStatus := "success"
	if err != nil {
		opStatus = "error"
	}

	n.metrics.RecordOperation(ctx, "note", "note_list", opStatus)
	n.metrics.RecordDuration(ctx, "note", "note_list", time.Since(start), opStatus)

	return notes, err
}

// Update records metrics for note update operations.
func (n *noteSyncUseCaseWithMetrics) Update(
	ctx context.Context,
	note *notesDomain.Note,
	expectedVersion uint,
) (*notesDomain.Note, error) {
	start := time.Now()
	updated, err := n.next.Update(ctx, note, expectedVersion)

	status := "success"
	if err != nil {
		status = "error"
	}

	n.metrics.RecordOperation(ctx, "note", "note_update", status)
	n.metrics.RecordDuration(ctx, "note", "note_update", time.Since(start), status)

	return updated, err
}
