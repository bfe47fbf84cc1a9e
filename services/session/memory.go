package session

import (
	"context"
	"sync"
	"time"

	"placewise/models"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryContextStore is the in-process session backend for single-node and
// test deployments. go-cache handles idle expiry; a store-wide mutex makes
// Update a single logical read-modify-write per session.
type MemoryContextStore struct {
	cache      *gocache.Cache
	ttl        time.Duration
	maxHistory int
	mu         sync.Mutex
}

func NewMemoryContextStore(ttl time.Duration, maxHistory int) *MemoryContextStore {
	return &MemoryContextStore{
		cache:      gocache.New(ttl, 2*ttl),
		ttl:        ttl,
		maxHistory: maxHistory,
	}
}

func (s *MemoryContextStore) Get(ctx context.Context, sessionID string) (*models.SessionContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(sessionID)
}

func (s *MemoryContextStore) getLocked(sessionID string) (*models.SessionContext, error) {
	v, ok := s.cache.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	sc := v.(models.SessionContext)
	return &sc, nil
}

func (s *MemoryContextStore) Create(ctx context.Context, sessionID, userID string) (*models.SessionContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc := newSessionContext(sessionID, userID, time.Now().UTC())
	s.cache.Set(sessionID, *sc, s.ttl)
	return sc, nil
}

func (s *MemoryContextStore) Update(ctx context.Context, sessionID string, mutate func(*models.SessionContext)) (*models.SessionContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, err := s.getLocked(sessionID)
	if err == ErrSessionNotFound {
		sc = newSessionContext(sessionID, "", time.Now().UTC())
	} else if err != nil {
		return nil, err
	}
	mutate(sc)
	sc.LastAccessed = time.Now().UTC()
	applyCaps(sc, s.maxHistory)
	s.cache.Set(sessionID, *sc, s.ttl)
	return sc, nil
}

func (s *MemoryContextStore) Touch(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, err := s.getLocked(sessionID)
	if err != nil {
		return err
	}
	sc.LastAccessed = time.Now().UTC()
	s.cache.Set(sessionID, *sc, s.ttl)
	return nil
}

func (s *MemoryContextStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Delete(sessionID)
	return nil
}

func (s *MemoryContextStore) Ping(ctx context.Context) error {
	return nil
}
