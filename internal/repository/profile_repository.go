package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/profile-registry/internal/domain"
)

const (
	recordsKey = "profiles:records"
	counterKey = "profiles:next_id"
)

// ErrNotFound is returned when no record matches the requested identifier.
var ErrNotFound = errors.New("profile not found")

// ProfileRepository is the single owner of the persisted record list. Every
// mutation is a full read-modify-write of the one storage key; concurrent
// writers from separate processes follow last-write-wins.
type ProfileRepository interface {
	LoadAll(ctx context.Context) ([]domain.Profile, error)
	Append(ctx context.Context, profile *domain.Profile) error
	Replace(ctx context.Context, id int64, patch domain.ProfilePatch) (*domain.Profile, error)
	Remove(ctx context.Context, id int64) (*domain.Profile, error)
	FindByID(ctx context.Context, id int64) (*domain.Profile, error)
}

type profileRepository struct {
	client *redis.Client
	mu     sync.Mutex
}

// NewProfileRepository instantiates the Redis-backed record store.
func NewProfileRepository(client *redis.Client) ProfileRepository {
	return &profileRepository{client: client}
}

// LoadAll reads the entire record list. A missing key is an empty store.
func (r *profileRepository) LoadAll(ctx context.Context) ([]domain.Profile, error) {
	return r.readAll(ctx)
}

// Append assigns the next identifier from the monotonic counter and writes
// the record list back with the new record at the end. Identifiers are never
// reused after a deletion.
func (r *profileRepository) Append(ctx context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.readAll(ctx)
	if err != nil {
		return err
	}

	id, err := r.client.Incr(ctx, counterKey).Result()
	if err != nil {
		return fmt.Errorf("next id: %w", err)
	}
	// Re-seat the counter when records were seeded past it.
	if max := maxID(records); id <= max {
		id = max + 1
		if err := r.client.Set(ctx, counterKey, id, 0).Err(); err != nil {
			return fmt.Errorf("reseat counter: %w", err)
		}
	}

	profile.ID = id
	return r.writeAll(ctx, append(records, *profile))
}

// Replace merges the patch into the matching record and rewrites the list.
func (r *profileRepository) Replace(ctx context.Context, id int64, patch domain.ProfilePatch) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].ID != id {
			continue
		}
		patch.Apply(&records[i])
		if err := r.writeAll(ctx, records); err != nil {
			return nil, err
		}
		updated := records[i]
		return &updated, nil
	}
	return nil, ErrNotFound
}

// Remove filters the matching record out and rewrites the list, returning
// the record it removed.
func (r *profileRepository) Remove(ctx context.Context, id int64) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}

	var removed *domain.Profile
	kept := records[:0]
	for _, record := range records {
		if record.ID == id {
			record := record
			removed = &record
			continue
		}
		kept = append(kept, record)
	}
	if removed == nil {
		return nil, ErrNotFound
	}
	if err := r.writeAll(ctx, kept); err != nil {
		return nil, err
	}
	return removed, nil
}

// FindByID does a linear search of the full stored list.
func (r *profileRepository) FindByID(ctx context.Context, id int64) (*domain.Profile, error) {
	records, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			record := records[i]
			return &record, nil
		}
	}
	return nil, ErrNotFound
}

func (r *profileRepository) readAll(ctx context.Context) ([]domain.Profile, error) {
	raw, err := r.client.Get(ctx, recordsKey).Result()
	if errors.Is(err, redis.Nil) {
		return []domain.Profile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	var records []domain.Profile
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}

func (r *profileRepository) writeAll(ctx context.Context, records []domain.Profile) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	if err := r.client.Set(ctx, recordsKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("write records: %w", err)
	}
	return nil
}

func maxID(records []domain.Profile) int64 {
	var max int64
	for _, record := range records {
		if record.ID > max {
			max = record.ID
		}
	}
	return max
}
