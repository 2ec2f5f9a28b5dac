package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"professor-registry/internal/domain/professor"
)

// MockProfessorRepository is an in-memory implementation of professor.Repository for testing/demo purposes.
// Deleting a professor removes its events, as the ON DELETE CASCADE constraint does.
type MockProfessorRepository struct {
	professors  map[uint]*professor.Professor
	events      map[uint]*professor.Event
	nextID      uint
	nextEventID uint
	mutex       sync.RWMutex
}

var _ professor.Repository = (*MockProfessorRepository)(nil)

// NewMockProfessorRepository creates an empty in-memory professor repository
func NewMockProfessorRepository() *MockProfessorRepository {
	return &MockProfessorRepository{
		professors:  make(map[uint]*professor.Professor),
		events:      make(map[uint]*professor.Event),
		nextID:      1,
		nextEventID: 1,
	}
}

func (r *MockProfessorRepository) GetAll(ctx context.Context) ([]*professor.Professor, error) {
	if err := ctx.Err(); err != nil {
		return nil, professor.RetrievalError(professor.EntityProfessors, 0, err)
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	professors := make([]*professor.Professor, 0, len(r.professors))
	for _, p := range r.professors {
		cp := *p
		professors = append(professors, &cp)
	}

	sort.Slice(professors, func(i, j int) bool {
		return professors[i].ID < professors[j].ID
	})

	return professors, nil
}

func (r *MockProfessorRepository) Get(ctx context.Context, id uint) (*professor.Professor, error) {
	if err := ctx.Err(); err != nil {
		return nil, professor.RetrievalError(professor.EntityProfessor, id, err)
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	p, exists := r.professors[id]
	if !exists {
		return nil, nil
	}

	cp := *p
	return &cp, nil
}

func (r *MockProfessorRepository) Insert(ctx context.Context, data *professor.Professor) (*professor.Professor, error) {
	if err := ctx.Err(); err != nil {
		return nil, professor.CreationError(professor.EntityProfessor, err)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	now := time.Now().UTC()
	p := &professor.Professor{
		ID:        r.nextID,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.nextID++
	r.professors[p.ID] = p

	cp := *p
	return &cp, nil
}

func (r *MockProfessorRepository) Update(ctx context.Context, id uint, changes professor.UpdateProfessorRequest) (*professor.Professor, error) {
	if err := ctx.Err(); err != nil {
		return nil, professor.UpdateError(professor.EntityProfessor, id, err)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	p, exists := r.professors[id]
	if !exists {
		return nil, professor.NotFoundError(professor.EntityProfessor, id)
	}

	changes.Apply(p)
	p.UpdatedAt = time.Now().UTC()

	cp := *p
	return &cp, nil
}

func (r *MockProfessorRepository) Delete(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return professor.DeletionError(professor.EntityProfessor, id, err)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.professors[id]; !exists {
		return professor.NotFoundError(professor.EntityProfessor, id)
	}

	delete(r.professors, id)
	for eventID, e := range r.events {
		if e.ProfessorID == id {
			delete(r.events, eventID)
		}
	}
	return nil
}

// SeedSampleData adds some sample professors and events for demonstration
func (r *MockProfessorRepository) SeedSampleData(ctx context.Context) error {
	samples := []professor.Professor{
		{FirstName: "Ada", LastName: "Lovelace"},
		{FirstName: "Alan", LastName: "Turing"},
		{FirstName: "Grace", LastName: "Hopper"},
	}

	events := NewMockProfessorEventRepository(r)
	for i := range samples {
		p, err := r.Insert(ctx, &samples[i])
		if err != nil {
			return err
		}

		start := time.Now().UTC().Add(time.Duration(i+1) * 24 * time.Hour).Truncate(time.Hour)
		end := start.Add(2 * time.Hour)
		_, err = events.Create(ctx, &professor.Event{
			ProfessorID: p.ID,
			Title:       "Office hours",
			StartsAt:    &start,
			EndsAt:      &end,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// MockProfessorEventRepository is an in-memory professor.EventRepository sharing storage with a MockProfessorRepository
type MockProfessorEventRepository struct {
	store *MockProfessorRepository
}

var _ professor.EventRepository = (*MockProfessorEventRepository)(nil)

func NewMockProfessorEventRepository(store *MockProfessorRepository) *MockProfessorEventRepository {
	return &MockProfessorEventRepository{store: store}
}

func (r *MockProfessorEventRepository) Create(ctx context.Context, event *professor.Event) (*professor.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, professor.CreationError(professor.EntityEvent, err)
	}

	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()

	if _, exists := r.store.professors[event.ProfessorID]; !exists {
		return nil, professor.CreationError(professor.EntityEvent, foreignKeyViolation(event.ProfessorID))
	}

	now := time.Now().UTC()
	e := &professor.Event{
		ID:          r.store.nextEventID,
		ProfessorID: event.ProfessorID,
		Title:       event.Title,
		StartsAt:    event.StartsAt,
		EndsAt:      event.EndsAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.store.nextEventID++
	r.store.events[e.ID] = e

	cp := *e
	return &cp, nil
}

func (r *MockProfessorEventRepository) ListByProfessor(ctx context.Context, professorID uint) ([]professor.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, professor.RetrievalError(professor.EntityEvents, professorID, err)
	}

	r.store.mutex.RLock()
	defer r.store.mutex.RUnlock()

	return r.eventsFor(professorID), nil
}

func (r *MockProfessorEventRepository) GetProfessorWithEvents(ctx context.Context, professorID uint) (*professor.WithEvents, error) {
	if err := ctx.Err(); err != nil {
		return nil, professor.RetrievalError(professor.EntityProfessor, professorID, err)
	}

	r.store.mutex.RLock()
	defer r.store.mutex.RUnlock()

	p, exists := r.store.professors[professorID]
	if !exists {
		return nil, nil
	}

	return &professor.WithEvents{
		Professor: *p,
		Events:    r.eventsFor(professorID),
	}, nil
}

func (r *MockProfessorEventRepository) Delete(ctx context.Context, professorID, eventID uint) error {
	if err := ctx.Err(); err != nil {
		return professor.DeletionError(professor.EntityEvent, eventID, err)
	}

	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()

	e, exists := r.store.events[eventID]
	if !exists || e.ProfessorID != professorID {
		return professor.NotFoundError(professor.EntityEvent, eventID)
	}

	delete(r.store.events, eventID)
	return nil
}

// eventsFor must be called with the store lock held
func (r *MockProfessorEventRepository) eventsFor(professorID uint) []professor.Event {
	events := []professor.Event{}
	for _, e := range r.store.events {
		if e.ProfessorID == professorID {
			events = append(events, *e)
		}
	}

	sort.Slice(events, func(i, j int) bool {
		a, b := events[i], events[j]
		switch {
		case a.StartsAt == nil && b.StartsAt == nil:
			return a.ID < b.ID
		case a.StartsAt == nil:
			return false
		case b.StartsAt == nil:
			return true
		case !a.StartsAt.Equal(*b.StartsAt):
			return a.StartsAt.Before(*b.StartsAt)
		default:
			return a.ID < b.ID
		}
	})

	return events
}
