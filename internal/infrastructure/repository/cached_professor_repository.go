package repository

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"professor-registry/internal/domain/professor"
	interfaces "professor-registry/internal/interfaces/infrastructure"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

var _ professor.Repository = (*CachedProfessorRepository)(nil)

const listLoadKey = "list"

// CachedProfessorRepository is a read-through cache in front of another professor.Repository.
// Writes go straight to the wrapped repository and then invalidate the affected keys.
// Cache failures are logged and never fail the call.
//
// Concurrent misses for the same key share one load from the wrapped repository.
// A load only stores its result if no write touched the key while it was running.
type CachedProfessorRepository struct {
	next  professor.Repository
	cache interfaces.ProfessorCache
	ttl   time.Duration
	log   logrus.FieldLogger
	group singleflight.Group

	// generations is bumped by every write to a key; guarded by mu together with cache stores
	mu          sync.Mutex
	generations map[string]uint64
}

func NewCachedProfessorRepository(next professor.Repository, cache interfaces.ProfessorCache, ttl time.Duration, log logrus.FieldLogger) *CachedProfessorRepository {
	return &CachedProfessorRepository{
		next:        next,
		cache:       cache,
		ttl:         ttl,
		log:         log.WithField("component", "professor_cache"),
		generations: make(map[string]uint64),
	}
}

func professorLoadKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func (r *CachedProfessorRepository) generation(key string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generations[key]
}

// storeIfCurrent runs store only while key is still at generation gen
func (r *CachedProfessorRepository) storeIfCurrent(key string, gen uint64, store func() error, action string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.generations[key] != gen {
		r.log.WithField("key", key).Debug("Skipping cache store after concurrent write")
		return
	}

	if err := store(); err != nil {
		r.logCacheError(err, action)
	}
}

// written marks keys as changed so in-flight loads neither store nor get shared with later callers
func (r *CachedProfessorRepository) written(keys ...string) {
	r.mu.Lock()
	for _, key := range keys {
		r.generations[key]++
	}
	r.mu.Unlock()

	for _, key := range keys {
		r.group.Forget(key)
	}
}

func (r *CachedProfessorRepository) GetAll(ctx context.Context) ([]*professor.Professor, error) {
	professors, err := r.cache.GetProfessorList(ctx)
	if err == nil {
		r.log.WithField("count", len(professors)).Debug("Professor list served from cache")
		return professors, nil
	}
	r.logCacheError(err, "read professor list")

	loadCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan(listLoadKey, func() (any, error) {
		gen := r.generation(listLoadKey)

		professors, err := r.next.GetAll(loadCtx)
		if err != nil {
			return nil, err
		}

		r.storeIfCurrent(listLoadKey, gen, func() error {
			return r.cache.SetProfessorList(loadCtx, professors, r.ttl)
		}, "store professor list")
		return professors, nil
	})

	select {
	case <-ctx.Done():
		return nil, professor.RetrievalError(professor.EntityProfessors, 0, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}

		shared := res.Val.([]*professor.Professor)
		professors = make([]*professor.Professor, 0, len(shared))
		for _, p := range shared {
			cp := *p
			professors = append(professors, &cp)
		}
		return professors, nil
	}
}

func (r *CachedProfessorRepository) Get(ctx context.Context, id uint) (*professor.Professor, error) {
	p, err := r.cache.GetProfessor(ctx, id)
	if err == nil {
		r.log.WithField("id", id).Debug("Professor served from cache")
		return p, nil
	}
	r.logCacheError(err, "read professor")

	key := professorLoadKey(id)
	loadCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan(key, func() (any, error) {
		gen := r.generation(key)

		p, err := r.next.Get(loadCtx, id)
		if err != nil || p == nil {
			return p, err
		}

		r.storeIfCurrent(key, gen, func() error {
			return r.cache.SetProfessor(loadCtx, p, r.ttl)
		}, "store professor")
		return p, nil
	})

	select {
	case <-ctx.Done():
		return nil, professor.RetrievalError(professor.EntityProfessor, id, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}

		shared, _ := res.Val.(*professor.Professor)
		if shared == nil {
			return nil, nil
		}
		cp := *shared
		return &cp, nil
	}
}

func (r *CachedProfessorRepository) Insert(ctx context.Context, data *professor.Professor) (*professor.Professor, error) {
	p, err := r.next.Insert(ctx, data)
	if err != nil {
		return nil, err
	}

	r.written(listLoadKey)
	if err := r.cache.InvalidateProfessorList(ctx); err != nil {
		r.logCacheError(err, "invalidate professor list")
	}
	return p, nil
}

func (r *CachedProfessorRepository) Update(ctx context.Context, id uint, changes professor.UpdateProfessorRequest) (*professor.Professor, error) {
	p, err := r.next.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}

	r.written(professorLoadKey(id), listLoadKey)
	if err := r.cache.InvalidateProfessor(ctx, id); err != nil {
		r.logCacheError(err, "invalidate professor")
	}
	return p, nil
}

func (r *CachedProfessorRepository) Delete(ctx context.Context, id uint) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}

	r.written(professorLoadKey(id), listLoadKey)
	if err := r.cache.InvalidateProfessor(ctx, id); err != nil {
		r.logCacheError(err, "invalidate professor")
	}
	return nil
}

func (r *CachedProfessorRepository) logCacheError(err error, action string) {
	if errors.Is(err, interfaces.ErrCacheMiss) {
		return
	}
	r.log.WithError(err).Warnf("Failed to %s", action)
}
