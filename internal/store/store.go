// Package store persists saved simulations per user.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/ptregime/internal/domain"
)

var (
	// ErrNotFound is returned when no simulation has the requested ID
	ErrNotFound = errors.New("simulation not found")
	// ErrInvalid is returned for records that cannot be stored
	ErrInvalid = errors.New("invalid simulation")
)

// Store saves and lists simulations. Implementations are safe for concurrent use.
type Store interface {
	// Save assigns an ID and creation time when missing and stores sim
	Save(ctx context.Context, sim *domain.SavedSimulation) error
	Get(ctx context.Context, id string) (domain.SavedSimulation, error)
	// List returns a user's simulations oldest first
	List(ctx context.Context, userID string) ([]domain.SavedSimulation, error)
}

func prepare(sim *domain.SavedSimulation, now func() time.Time) error {
	if sim == nil {
		return ErrInvalid
	}
	if sim.UserID == "" {
		return errors.Join(ErrInvalid, errors.New("user id is required"))
	}
	if sim.ID == "" {
		sim.ID = uuid.NewString()
	}
	if sim.CreatedAt.IsZero() {
		sim.CreatedAt = now().UTC()
	}
	return nil
}
