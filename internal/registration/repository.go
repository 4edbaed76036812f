package registration

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// ErrUnavailable is returned by mutating operations when the service runs
// without a database. Reads degrade to empty results instead of failing.
var ErrUnavailable = errors.New("storage unavailable")

type Repository interface {
	Create(ctx context.Context, reg *Registration) (*Registration, error)
	CountByEvent(ctx context.Context, eventID string) (int, error)
	ListByEvent(ctx context.Context, eventID string) ([]Registration, error)
	Delete(ctx context.Context, id int64) error
	DeleteMany(ctx context.Context, ids []int64) error
	DeleteAll(ctx context.Context, eventID string) error
}

type repository struct {
	db *bun.DB
}

// NewRepository wraps the given database. A nil db is allowed and puts the
// repository in soft-offline mode: counts are zero, lists are empty and
// mutations fail with ErrUnavailable.
func NewRepository(db *bun.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, reg *Registration) (*Registration, error) {
	if r.db == nil {
		return nil, ErrUnavailable
	}

	now := time.Now().UTC()
	reg.CreatedAt = now
	reg.UpdatedAt = now

	if _, err := r.db.NewInsert().Model(reg).Exec(ctx); err != nil {
		return nil, err
	}
	return reg, nil
}

func (r *repository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	if r.db == nil {
		return 0, nil
	}

	return r.db.NewSelect().
		Model((*Registration)(nil)).
		Where("event_id = ?", eventID).
		Count(ctx)
}

func (r *repository) ListByEvent(ctx context.Context, eventID string) ([]Registration, error) {
	if r.db == nil {
		return []Registration{}, nil
	}

	var regs []Registration
	err := r.db.NewSelect().
		Model(&regs).
		Where("event_id = ?", eventID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	if regs == nil {
		regs = []Registration{}
	}
	return regs, nil
}

// Delete removes one registration. A missing id is a no-op, not an error:
// deleting the same id twice must stay safe.
func (r *repository) Delete(ctx context.Context, id int64) error {
	if r.db == nil {
		return ErrUnavailable
	}

	_, err := r.db.NewDelete().
		Model((*Registration)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// DeleteMany removes every registration whose id is in the set. Ids not
// present in the table are silently ignored.
func (r *repository) DeleteMany(ctx context.Context, ids []int64) error {
	if r.db == nil {
		return ErrUnavailable
	}

	_, err := r.db.NewDelete().
		Model((*Registration)(nil)).
		Where("id IN (?)", bun.In(ids)).
		Exec(ctx)
	return err
}

func (r *repository) DeleteAll(ctx context.Context, eventID string) error {
	if r.db == nil {
		return ErrUnavailable
	}

	_, err := r.db.NewDelete().
		Model((*Registration)(nil)).
		Where("event_id = ?", eventID).
		Exec(ctx)
	return err
}
