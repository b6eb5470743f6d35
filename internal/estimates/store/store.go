// Package store persists projects per owner. Implementations follow
// last-writer-wins semantics: Upsert replaces whatever is stored.
package store

import (
	"context"
	"errors"
	"sort"

	"github.com/7svn/smeta-backend/internal/estimates/domain"
)

var (
	ErrOwnerRequired = errors.New("owner id required")
	ErrNotOwner      = errors.New("project belongs to another owner")
)

// Store is the remote project store.
type Store interface {
	// List returns the owner's projects, most recently modified first.
	List(ctx context.Context, ownerID string) ([]domain.RenovationProject, error)
	Upsert(ctx context.Context, ownerID string, p domain.RenovationProject) error
	Delete(ctx context.Context, ownerID, projectID string) error
}

// Pinger is implemented by stores backed by a network service.
type Pinger interface {
	Ping(ctx context.Context) error
}

func sortByLastModified(ps []domain.RenovationProject) {
	sort.SliceStable(ps, func(i, j int) bool {
		return ps[i].LastModified > ps[j].LastModified
	})
}
