package registration

import (
	"context"
	"errors"
)

var ErrInvalidInput = errors.New("invalid input")

type Service interface {
	Create(ctx context.Context, reg *Registration) (*Registration, error)
	Count(ctx context.Context, eventID string) (int, error)
	List(ctx context.Context, eventID string) ([]Registration, error)
	Delete(ctx context.Context, id int64) error
	DeleteMany(ctx context.Context, ids []int64) error
	DeleteAll(ctx context.Context, eventID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

// Create persists a new registration. Capacity is deliberately not checked
// here: the form reads the count and disables itself when full, so the limit
// is advisory and concurrent submissions near the limit can both succeed.
func (s *service) Create(ctx context.Context, reg *Registration) (*Registration, error) {
	if reg.EventID == "" {
		reg.EventID = DefaultEventID
	}
	return s.repo.Create(ctx, reg)
}

// Count never fails on an unknown event; it simply counts zero rows.
func (s *service) Count(ctx context.Context, eventID string) (int, error) {
	return s.repo.CountByEvent(ctx, normalizeEventID(eventID))
}

func (s *service) List(ctx context.Context, eventID string) ([]Registration, error) {
	return s.repo.ListByEvent(ctx, normalizeEventID(eventID))
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) DeleteMany(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return ErrInvalidInput
	}
	return s.repo.DeleteMany(ctx, ids)
}

func (s *service) DeleteAll(ctx context.Context, eventID string) error {
	return s.repo.DeleteAll(ctx, normalizeEventID(eventID))
}

func normalizeEventID(eventID string) string {
	if eventID == "" {
		return DefaultEventID
	}
	return eventID
}
