package reference

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"holocron/internal/catalog"
	"holocron/internal/logging"
	"holocron/internal/model"
	"holocron/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const catalogYAML = `
colors: [blue, red]
genders: [female]
planets:
  - name: Tatooine
    diameter: 10465
    rotation_period: 23
    orbital_period: 304
    gravity: 1
    population: 200000
    surface_water: 1
entities:
  - name: Character
    path: people
users:
  - name: Leia
    email: leia@alderaan.gov
    password: help-me-obi-wan
  - email: vader@empire.gov
    active: false
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_File(t *testing.T) {
	p := writeFile(t, t.TempDir(), "catalog.yaml", catalogYAML)

	seed, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"blue", "red"}, seed.Colors)
	assert.Equal(t, []string{"female"}, seed.Genders)
	require.Len(t, seed.Planets, 1)
	assert.Equal(t, int64(200000), seed.Planets[0].Population)
	assert.Equal(t, 23.0, seed.Planets[0].RotationPeriod)
	assert.Equal(t, []EntityItem{{Name: "Character", Path: "people"}}, seed.Entities)
	require.Len(t, seed.Users, 2)
	require.NotNil(t, seed.Users[1].Active)
	assert.False(t, *seed.Users[1].Active)
}

func TestLoad_DirectoryMergesInNameOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.yml", "colors: [red]\n")
	writeFile(t, dir, "a.yaml", "colors: [blue]\ngenders: [male]\n")
	writeFile(t, dir, "notes.txt", "colors: [green]\n")

	seed, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"blue", "red"}, seed.Colors)
	assert.Equal(t, []string{"male"}, seed.Genders)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	p := writeFile(t, t.TempDir(), "bad.yaml", "colors: {not: [a list")
	_, err = Load(p)
	assert.Error(t, err)
}

func TestApply_InsertsAndIsRepeatable(t *testing.T) {
	ctx := context.Background()
	p := writeFile(t, t.TempDir(), "catalog.yaml", catalogYAML)
	seed, err := Load(p)
	require.NoError(t, err)

	mem := store.NewMemory()
	stats, err := Apply(ctx, mem, seed, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, Stats{Inserted: 7}, stats)

	stats, err = Apply(ctx, mem, seed, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, Stats{Skipped: 7}, stats)

	colors, err := mem.Colors().List(ctx)
	require.NoError(t, err)
	require.Len(t, colors, 2)
	assert.Equal(t, "blue", colors[0].Name)

	users, err := mem.Users().List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	leia := users[0]
	assert.Equal(t, "Leia", leia.Name)
	assert.True(t, leia.IsActive)
	assert.NotEqual(t, "help-me-obi-wan", leia.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(leia.PasswordHash), []byte("help-me-obi-wan")))

	vader := users[1]
	assert.False(t, vader.IsActive)
	assert.Empty(t, vader.PasswordHash)
}

func TestApply_UserWithoutEmail(t *testing.T) {
	_, err := Apply(context.Background(), store.NewMemory(), Seed{Users: []UserItem{{Name: "ghost"}}}, logging.Discard())
	assert.ErrorContains(t, err, "email is required")
}

func TestApply_RejectsInvalidSeedAndWritesNothing(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name string
		seed Seed
		want string
	}{
		{
			name: "empty color name",
			seed: Seed{Colors: []string{"blue", ""}},
			want: `seed color ""`,
		},
		{
			name: "planet out of range",
			seed: Seed{Colors: []string{"blue"}, Planets: []PlanetItem{{Name: "Broken", SurfaceWater: 250, Population: -5}}},
			want: `seed planet "Broken"`,
		},
		{
			name: "entity without path",
			seed: Seed{Entities: []EntityItem{{Name: "Character"}}},
			want: `seed entity "Character"`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mem := store.NewMemory()
			stats, err := Apply(ctx, mem, tc.seed, logging.Discard())
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.want)
			assert.Equal(t, Stats{}, stats)

			colors, err := mem.Colors().List(ctx)
			require.NoError(t, err)
			assert.Empty(t, colors)
			planets, err := mem.Planets().List(ctx)
			require.NoError(t, err)
			assert.Empty(t, planets)
		})
	}
}

func TestValidate_PlanetErrorsMatchAPIRules(t *testing.T) {
	err := Validate(Seed{Planets: []PlanetItem{{Name: "Broken", SurfaceWater: 250, Population: -5}}})

	var vErr *catalog.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, map[string]string{
		"diameter":        "The diameter should be greater than 0",
		"rotation_period": "The rotation_period should be greater than 0",
		"orbital_period":  "The orbital_period should be greater than 0",
		"surface_water":   "The surface_water should be between 0 and 100",
		"population":      "The population should be greater than or equal to 0",
	}, vErr.Errors)
}

func TestApply_EntitySkippedWhenPathTaken(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	_, err := mem.Entities().Insert(ctx, model.Entity{Name: "Character", Path: "people"})
	require.NoError(t, err)

	stats, err := Apply(ctx, mem, Seed{Entities: []EntityItem{
		{Name: "Person", Path: "people"},
		{Name: "Planet", Path: "planets"},
	}}, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, Stats{Inserted: 1, Skipped: 1}, stats)

	entities, err := mem.Entities().List(ctx)
	require.NoError(t, err)
	require.Len(t, entities, 2)
	assert.Equal(t, "Character", entities[0].Name)
	assert.Equal(t, "planets", entities[1].Path)
}
