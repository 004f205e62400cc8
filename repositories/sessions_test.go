package repositories_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gemma-chat/models"
	"gemma-chat/repositories"
)

func TestMemorySessionRepositoryGetPut(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemorySessionRepository()

	_, err := repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, repositories.ErrSessionNotFound)

	in := &models.Session{ID: "1", Title: "first", CreatedAt: 1}
	require.NoError(t, repo.Put(ctx, in))

	got, err := repo.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)

	// the caller's value is not aliased after Put
	in.Title = "changed"
	got, err = repo.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)
}

func TestMemorySessionRepositoryRejectsMissingID(t *testing.T) {
	repo := repositories.NewMemorySessionRepository()
	assert.Error(t, repo.Put(context.Background(), &models.Session{}))
	assert.Error(t, repo.Put(context.Background(), nil))
}

func TestMemorySessionRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemorySessionRepository()
	require.NoError(t, repo.Put(ctx, &models.Session{
		ID:       "1",
		Messages: []models.Message{{Role: models.RoleUser, Content: "hi"}},
	}))

	got, err := repo.Get(ctx, "1")
	require.NoError(t, err)
	got.Messages[0].Content = "tampered"
	got.Messages = append(got.Messages, models.Message{Role: models.RoleAssistant, Content: "x"})

	again, err := repo.Get(ctx, "1")
	require.NoError(t, err)
	require.Len(t, again.Messages, 1)
	assert.Equal(t, "hi", again.Messages[0].Content)
}

func TestMemorySessionRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemorySessionRepository()
	require.NoError(t, repo.Put(ctx, &models.Session{ID: "1"}))

	updated, err := repo.Update(ctx, "1", func(s *models.Session) {
		s.Messages = append(s.Messages, models.Message{Role: models.RoleUser, Content: "hello"})
		s.ID = "ignored"
	})
	require.NoError(t, err)
	assert.Equal(t, "1", updated.ID)
	assert.Len(t, updated.Messages, 1)

	_, err = repo.Update(ctx, "missing", func(s *models.Session) {})
	assert.ErrorIs(t, err, repositories.ErrSessionNotFound)
}

func TestMemorySessionRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemorySessionRepository()
	require.NoError(t, repo.Put(ctx, &models.Session{ID: "1"}))

	require.NoError(t, repo.Delete(ctx, "1"))
	assert.ErrorIs(t, repo.Delete(ctx, "1"), repositories.ErrSessionNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemorySessionRepositoryListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemorySessionRepository()
	for _, s := range []*models.Session{
		{ID: "200", CreatedAt: 200},
		{ID: "100", CreatedAt: 100},
		{ID: "300", CreatedAt: 300},
	} {
		require.NoError(t, repo.Put(ctx, s))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"300", "200", "100"}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestMemorySessionRepositoryConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemorySessionRepository()
	require.NoError(t, repo.Put(ctx, &models.Session{ID: "1"}))

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Update(ctx, "1", func(s *models.Session) {
				s.Messages = append(s.Messages, models.Message{Role: models.RoleUser, Content: "m"})
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.Get(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, got.Messages, n)
}
