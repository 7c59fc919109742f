package seats

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// GormStore is the Postgres-backed Store implementation. The conditional
// transition maps onto a single UPDATE guarded by the current state, so the
// row lock taken by the database plays the role of the per-seat mutex in the
// in-memory store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (g *GormStore) Get(ctx context.Context, seatID string) (*Seat, error) {
	var seat Seat
	if err := g.db.WithContext(ctx).First(&seat, "id = ?", seatID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get seat: %w", err)
	}
	return &seat, nil
}

func (g *GormStore) List(ctx context.Context, filter ListFilter) ([]Seat, error) {
	query := g.db.WithContext(ctx).Model(&Seat{})
	if filter.SectionID != "" {
		query = query.Where("section_id = ?", filter.SectionID)
	}
	if filter.State != "" {
		query = query.Where("state = ?", filter.State)
	}

	var seats []Seat
	if err := query.Order("section_id ASC, position ASC").Find(&seats).Error; err != nil {
		return nil, fmt.Errorf("failed to list seats: %w", err)
	}
	return seats, nil
}

func (g *GormStore) Transition(ctx context.Context, seatID string, from, to SeatState, holder string) error {
	if !from.Valid() || !to.Valid() {
		return fmt.Errorf("%w: unknown seat state", ErrInvalidArgument)
	}

	result := g.db.WithContext(ctx).Model(&Seat{}).
		Where("id = ? AND state = ?", seatID, from).
		Updates(transitionColumns(to, holder))
	if result.Error != nil {
		return fmt.Errorf("failed to transition seat: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Distinguish a lost race from a missing seat.
		if _, err := g.Get(ctx, seatID); err != nil {
			return err
		}
		return ErrConflict
	}
	return nil
}

func (g *GormStore) AdminTransition(ctx context.Context, seatID string, to SeatState, holder string) error {
	if !to.Valid() {
		return fmt.Errorf("%w: unknown seat state", ErrInvalidArgument)
	}

	result := g.db.WithContext(ctx).Model(&Seat{}).
		Where("id = ?", seatID).
		Updates(transitionColumns(to, holder))
	if result.Error != nil {
		return fmt.Errorf("failed to transition seat: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormStore) SetPrice(ctx context.Context, seatID string, price float64) error {
	if price < 0 {
		return fmt.Errorf("%w: price must be >= 0, got %v", ErrInvalidArgument, price)
	}

	result := g.db.WithContext(ctx).Model(&Seat{}).
		Where("id = ?", seatID).
		Update("price", price)
	if result.Error != nil {
		return fmt.Errorf("failed to set seat price: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormStore) Remove(ctx context.Context, seatID string) error {
	result := g.db.WithContext(ctx).Delete(&Seat{}, "id = ?", seatID)
	if result.Error != nil {
		return fmt.Errorf("failed to remove seat: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormStore) Seed(ctx context.Context, inventory []Seat) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&Seat{}).Error; err != nil {
			return fmt.Errorf("failed to clear previous inventory: %w", err)
		}
		if len(inventory) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(inventory, 500).Error; err != nil {
			return fmt.Errorf("failed to insert inventory: %w", err)
		}
		return nil
	})
}

func (g *GormStore) Count(ctx context.Context) (int, error) {
	var count int64
	if err := g.db.WithContext(ctx).Model(&Seat{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count seats: %w", err)
	}
	return int(count), nil
}

func transitionColumns(to SeatState, holder string) map[string]interface{} {
	if to == StateAvailable {
		holder = ""
	}
	return map[string]interface{}{
		"state":  to,
		"holder": holder,
	}
}
