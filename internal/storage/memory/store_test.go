package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hongminglow/user-auth-be/internal/models"
	"github.com/hongminglow/user-auth-be/internal/storage"
)

func TestCreateAndFind(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()

	created, err := store.CreateUser(ctx, models.User{Email: "a@x.com", FirstName: "A", Role: models.RoleUser})
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)
	require.False(t, created.CreatedAt.IsZero())

	found, err := store.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, created, found)

	_, err = store.FindByEmail(ctx, "A@X.COM")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCreateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore(models.User{ID: 41, Email: "a@x.com"})

	_, err := store.CreateUser(ctx, models.User{Email: "a@x.com"})
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	next, err := store.CreateUser(ctx, models.User{Email: "b@x.com"})
	require.NoError(t, err)
	require.Equal(t, int64(42), next.ID)
}

func TestConcurrentCreateKeepsEmailUnique(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.CreateUser(ctx, models.User{Email: "race@x.com", FirstName: fmt.Sprint(i)})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, storage.ErrAlreadyExists):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, created)
	require.Equal(t, 31, conflicts)
	require.Equal(t, 1, store.Count())
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewUserStore()
	_, err := store.FindByEmail(ctx, "a@x.com")
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, store.Ping(ctx), context.Canceled)
}
