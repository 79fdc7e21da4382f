package profiles

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines row-level CRUD for profiles.
type Repository interface {
	Create(ctx context.Context, req *UpsertProfileRequest) (*Profile, error)
	GetByID(ctx context.Context, id string) (*Profile, error)
	Update(ctx context.Context, id string, req *UpsertProfileRequest) (*Profile, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Profile, error)
}

// InMemoryRepository is a mutex-guarded map store, used in development and
// tests when no database is configured.
type InMemoryRepository struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

// NewInMemoryRepository creates an empty in-memory store.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		profiles: make(map[string]*Profile),
	}
}

func (r *InMemoryRepository) Create(_ context.Context, req *UpsertProfileRequest) (*Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &Profile{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Age:         req.Age,
		Gender:      req.Gender,
		BloodType:   req.BloodType,
		Conditions:  req.Conditions,
		Medications: req.Medications,
		Allergies:   req.Allergies,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.ID] = p

	copied := *p
	return &copied, nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return nil, ErrProfileNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *InMemoryRepository) Update(_ context.Context, id string, req *UpsertProfileRequest) (*Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[id]
	if !ok {
		return nil, ErrProfileNotFound
	}

	p.Name = req.Name
	p.Age = req.Age
	p.Gender = req.Gender
	p.BloodType = req.BloodType
	p.Conditions = req.Conditions
	p.Medications = req.Medications
	p.Allergies = req.Allergies
	p.UpdatedAt = time.Now().UTC()

	copied := *p
	return &copied, nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[id]; !ok {
		return ErrProfileNotFound
	}
	delete(r.profiles, id)
	return nil
}

func (r *InMemoryRepository) List(_ context.Context) ([]*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}
