package memory

import (
	"context"
	"sync"
	"time"

	"github.com/hongminglow/user-auth-be/internal/models"
	"github.com/hongminglow/user-auth-be/internal/storage"
)

var _ storage.UserStore = (*Store)(nil)

// Store keeps users in process memory, keyed by email.
type Store struct {
	mu     sync.RWMutex
	users  map[string]models.User
	nextID int64
	now    func() time.Time
}

// NewUserStore returns a Store seeded with the given users.
func NewUserStore(seed ...models.User) *Store {
	s := &Store{
		users:  make(map[string]models.User, len(seed)),
		nextID: 1,
		now:    time.Now,
	}
	for _, u := range seed {
		s.users[u.Email] = u
		if u.ID >= s.nextID {
			s.nextID = u.ID + 1
		}
	}
	return s
}

// CreateUser inserts a user, rejecting duplicate emails.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Email]; ok {
		return models.User{}, storage.ErrAlreadyExists
	}
	now := s.now().UTC()
	user.ID = s.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	s.nextID++
	s.users[user.Email] = user
	return user, nil
}

// FindByEmail fetches a user by exact email match.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[email]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

// Count returns the number of stored users.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close() {}
