// Package avatar derives the decorative avatar shown next to the form
// builder from a seed kept in an injected key-value store.
package avatar

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"net/url"
	"strings"
	"sync"
)

const (
	SeedKey        = "avatarSeed"
	DefaultBaseURL = "https://api.dicebear.com/6.x/bottts/svg"

	seedAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	seedLength   = 6
)

// Store persists opaque string values by key.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// SetIfAbsent stores value unless key already holds a non-empty value,
	// and returns whichever value the key holds afterwards.
	SetIfAbsent(ctx context.Context, key, value string) (string, error)
}

type Service struct {
	store   Store
	baseURL string
	newSeed func() (string, error)
}

type Option func(*Service)

func WithBaseURL(baseURL string) Option {
	return func(s *Service) {
		if baseURL != "" {
			s.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

func WithSeedGenerator(gen func() (string, error)) Option {
	return func(s *Service) {
		s.newSeed = gen
	}
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:   store,
		baseURL: DefaultBaseURL,
		newSeed: RandomSeed,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed returns the persisted seed for user, creating and storing one on first
// use. An empty user addresses the single local seed.
func (s *Service) Seed(ctx context.Context, user string) (string, error) {
	key := seedKey(user)

	seed, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to read avatar seed: %w", err)
	}
	if ok && seed != "" {
		return seed, nil
	}

	seed, err = s.newSeed()
	if err != nil {
		return "", fmt.Errorf("failed to generate avatar seed: %w", err)
	}
	stored, err := s.store.SetIfAbsent(ctx, key, seed)
	if err != nil {
		return "", fmt.Errorf("failed to store avatar seed: %w", err)
	}
	return stored, nil
}

// URL returns the avatar image URL for user.
func (s *Service) URL(ctx context.Context, user string) (string, error) {
	seed, err := s.Seed(ctx, user)
	if err != nil {
		return "", err
	}
	return s.URLForSeed(seed), nil
}

// URLForSeed builds the image URL for a known seed.
func (s *Service) URLForSeed(seed string) string {
	return s.baseURL + "?seed=" + url.QueryEscape(seed)
}

func seedKey(user string) string {
	if user == "" {
		return SeedKey
	}
	return SeedKey + ":" + user
}

// RandomSeed returns a short base-36 string.
func RandomSeed() (string, error) {
	var b strings.Builder
	limit := big.NewInt(int64(len(seedAlphabet)))
	for i := 0; i < seedLength; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b.WriteByte(seedAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// MemoryStore keeps values in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStore) SetIfAbsent(_ context.Context, key, value string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if current := m.values[key]; current != "" {
		return current, nil
	}
	m.values[key] = value
	return value, nil
}
