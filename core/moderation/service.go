package moderation

import (
	"context"
	"errors"
	"fmt"

	"github.com/TemaXo00/musium-web-application/model"
	"github.com/TemaXo00/musium-web-application/repository"
)

// Default reasons recorded on moderation decisions.
const (
	ApprovedReason = "Approved by admin"
	RejectedReason = "Rejected by admin"
)

var (
	// ErrAccessDenied is returned when a requester touches an entity they
	// do not own. Nothing is mutated in that case.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidType is returned for submissions whose type is not one of
	// Song, Album or EP.
	ErrInvalidType = errors.New("invalid entity type")
)

// Service implements the entity lifecycle: submission, author edits and
// the admin approval workflow. Legal status transitions are
// pending→approved, pending→declined, approved→removed, removed→pending
// (restore) and approved/declined→pending (author edit).
type Service struct {
	entities repository.EntityRepository
	authors  repository.AuthorRepository
}

// NewService creates a moderation service.
func NewService(entities repository.EntityRepository, authors repository.AuthorRepository) *Service {
	return &Service{entities: entities, authors: authors}
}

// Approve marks the entity approved. The update is scoped by (id,
// canonical type): a type mismatch affects zero rows and is reported as
// not-found. Approving an already-approved entity still matches the row,
// so the call stays an idempotent success.
func (s *Service) Approve(ctx context.Context, entityType string, id int64) error {
	affected, err := s.entities.SetStatus(ctx, id, model.CanonicalType(entityType), model.StatusApproved, ApprovedReason)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("approve entity %d: %w", id, repository.ErrNotFound)
	}
	return nil
}

// Reject marks the entity declined with the given reason (or the default
// when blank). Scoping rules match Approve.
func (s *Service) Reject(ctx context.Context, entityType string, id int64, reason string) error {
	if reason == "" {
		reason = RejectedReason
	}
	affected, err := s.entities.SetStatus(ctx, id, model.CanonicalType(entityType), model.StatusDeclined, reason)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("reject entity %d: %w", id, repository.ErrNotFound)
	}
	return nil
}

// Create submits a new entity for review. The stored type is canonical
// and the entity starts out pending.
func (s *Service) Create(ctx context.Context, authorID int64, sub *model.EntitySubmission) (int64, error) {
	sub.Type = model.CanonicalType(sub.Type)
	switch sub.Type {
	case model.TypeSong, model.TypeAlbum, model.TypeEP:
	default:
		return 0, ErrInvalidType
	}
	return s.authors.CreateEntityWithDetails(ctx, authorID, sub)
}

// Update applies an author edit. Ownership is verified before any
// mutation; the edit forces the entity back to pending and, for albums
// and EPs, replaces the whole track list in submitted order.
func (s *Service) Update(ctx context.Context, requesterID, id int64, sub *model.EntitySubmission) error {
	if _, err := s.requireOwner(ctx, requesterID, id); err != nil {
		return err
	}
	return s.authors.UpdateEntityWithTracks(ctx, id, sub)
}

// SoftDelete moves the entity to removed. Allowed for the owning author
// and for admins.
func (s *Service) SoftDelete(ctx context.Context, requesterID int64, admin bool, id int64) error {
	if !admin {
		if _, err := s.requireOwner(ctx, requesterID, id); err != nil {
			return err
		}
	}
	affected, err := s.authors.SetEntityStatus(ctx, id, model.StatusRemoved)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("soft delete entity %d: %w", id, repository.ErrNotFound)
	}
	return nil
}

// Restore moves a removed entity back to pending: restored content goes
// through review again instead of reappearing as approved.
func (s *Service) Restore(ctx context.Context, requesterID int64, admin bool, id int64) error {
	if !admin {
		if _, err := s.requireOwner(ctx, requesterID, id); err != nil {
			return err
		}
	}
	affected, err := s.authors.SetEntityStatus(ctx, id, model.StatusPending)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("restore entity %d: %w", id, repository.ErrNotFound)
	}
	return nil
}

// Detail returns the owner's view of an entity with its tracks.
func (s *Service) Detail(ctx context.Context, requesterID, id int64) (*model.EntityDetail, error) {
	if _, err := s.requireOwner(ctx, requesterID, id); err != nil {
		return nil, err
	}
	return s.authors.GetEntityWithTracks(ctx, id)
}

func (s *Service) requireOwner(ctx context.Context, requesterID, id int64) (*repository.EntityRecord, error) {
	rec, err := s.authors.GetEntityRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.AuthorID != requesterID {
		return nil, ErrAccessDenied
	}
	return rec, nil
}
