//go:build integration

package pg

import (
	"context"
	"testing"
	"time"

	"holocron/internal/logging"
	"holocron/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB поднимает PostgreSQL в контейнере и накатывает схему каталога.
func setupTestDB(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("holocron"),
		postgres.WithUsername("holocron"),
		postgres.WithPassword("holocron"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := Open(ctx, connStr)
	require.NoError(t, err)

	require.NoError(t, ApplyDDL(ctx, db, logging.Discard(), CatalogDDL))
	// повторный прогон не должен падать
	require.NoError(t, ApplyDDL(ctx, db, logging.Discard(), CatalogDDL))

	s := NewStore(db)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestIntegration_CatalogRoundTrip(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	tatooine, err := s.Planets().Insert(ctx, model.Planet{
		Name: "Tatooine", Diameter: 10465, RotationPeriod: 23, OrbitalPeriod: 304,
		Gravity: 1, Population: 200000, SurfaceWater: 1,
	})
	require.NoError(t, err)
	assert.NotZero(t, tatooine.ID)
	assert.False(t, tatooine.CreatedAt.IsZero())

	blue, err := s.Colors().Insert(ctx, model.Color{Name: "blue"})
	require.NoError(t, err)

	year := "19BBY"
	luke, err := s.Characters().Insert(ctx, model.Character{
		Name: "Luke Skywalker", BirthYear: &year, Height: 172, Mass: 77,
		HomeworldID: &tatooine.ID, EyeColorID: &blue.ID,
	})
	require.NoError(t, err)

	got, ok, err := s.Characters().Get(ctx, luke.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, tatooine.ID, *got.HomeworldID)
	assert.Equal(t, blue.ID, *got.EyeColorID)
	assert.Nil(t, got.GenderID)
	assert.Equal(t, "19BBY", *got.BirthYear)

	// удаление планеты не каскадирует: персонаж остаётся с висячей ссылкой
	require.NoError(t, s.Planets().Delete(ctx, tatooine.ID))
	require.NoError(t, s.Planets().Delete(ctx, tatooine.ID))
	got, ok, err = s.Characters().Get(ctx, luke.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, tatooine.ID, *got.HomeworldID)
}

func TestIntegration_UniqueConstraints(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	_, err := s.Colors().Insert(ctx, model.Color{Name: "red"})
	require.NoError(t, err)
	_, err = s.Colors().Insert(ctx, model.Color{Name: "red"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colors_name_key")

	u, err := s.Users().Insert(ctx, model.User{Email: "leia@alderaan.gov", PasswordHash: "x", IsActive: true})
	require.NoError(t, err)
	e, err := s.Entities().Insert(ctx, model.Entity{Name: "Planet", Path: "planets"})
	require.NoError(t, err)

	fav := model.Favorite{UserID: u.ID, EntityID: 1, EntityTypeID: e.ID}
	_, err = s.Favorites().Insert(ctx, fav)
	require.NoError(t, err)
	_, err = s.Favorites().Insert(ctx, fav)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "favorites_user_entity_key")

	all, err := s.Favorites().List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
