package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"holocron/internal/model"
)

// ErrDuplicate — нарушение уникальности в in-memory хранилище.
var ErrDuplicate = errors.New("duplicate key value")

type uniqueKey[T any] struct {
	constraint string
	key        func(T) string
}

type memTable[T any] struct {
	mu      sync.RWMutex
	rows    map[int64]T
	lastID  int64
	idOf    func(T) int64
	stamp   func(rec *T, id int64, now time.Time)
	uniques []uniqueKey[T]
}

func newMemTable[T any](idOf func(T) int64, stamp func(*T, int64, time.Time), uniques ...uniqueKey[T]) *memTable[T] {
	return &memTable[T]{
		rows:    make(map[int64]T),
		idOf:    idOf,
		stamp:   stamp,
		uniques: uniques,
	}
}

func (t *memTable[T]) List(_ context.Context) ([]T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out, nil
}

func (t *memTable[T]) Get(_ context.Context, id int64) (T, bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, ok := t.rows[id]
	return rec, ok, nil
}

func (t *memTable[T]) Insert(_ context.Context, rec T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// простая проверка уникальности перебором (как unique-индекс в БД)
	for _, u := range t.uniques {
		want := u.key(rec)
		for _, existing := range t.rows {
			if u.key(existing) == want {
				var zero T
				return zero, fmt.Errorf("%w violates unique constraint %q", ErrDuplicate, u.constraint)
			}
		}
	}

	t.lastID++
	t.stamp(&rec, t.lastID, time.Now().UTC())
	t.rows[t.idOf(rec)] = rec
	return rec, nil
}

func (t *memTable[T]) Delete(_ context.Context, id int64) error {
	t.mu.Lock()
	delete(t.rows, id)
	t.mu.Unlock()
	return nil
}

// Memory — хранилище в памяти процесса; используется, когда DB URL не задан.
type Memory struct {
	users      *memTable[model.User]
	colors     *memTable[model.Color]
	genders    *memTable[model.Gender]
	planets    *memTable[model.Planet]
	characters *memTable[model.Character]
	entities   *memTable[model.Entity]
	favorites  *memTable[model.Favorite]
}

func NewMemory() *Memory {
	return &Memory{
		users: newMemTable(
			func(u model.User) int64 { return u.ID },
			func(u *model.User, id int64, now time.Time) { u.ID, u.CreatedAt, u.UpdatedAt = id, now, now },
			uniqueKey[model.User]{"users_email_key", func(u model.User) string { return u.Email }},
		),
		colors: newMemTable(
			func(c model.Color) int64 { return c.ID },
			func(c *model.Color, id int64, now time.Time) { c.ID, c.CreatedAt, c.UpdatedAt = id, now, now },
			uniqueKey[model.Color]{"colors_name_key", func(c model.Color) string { return c.Name }},
		),
		genders: newMemTable(
			func(g model.Gender) int64 { return g.ID },
			func(g *model.Gender, id int64, now time.Time) { g.ID, g.CreatedAt, g.UpdatedAt = id, now, now },
			uniqueKey[model.Gender]{"genders_name_key", func(g model.Gender) string { return g.Name }},
		),
		planets: newMemTable(
			func(p model.Planet) int64 { return p.ID },
			func(p *model.Planet, id int64, now time.Time) { p.ID, p.CreatedAt, p.UpdatedAt = id, now, now },
			uniqueKey[model.Planet]{"planets_name_key", func(p model.Planet) string { return p.Name }},
		),
		characters: newMemTable(
			func(c model.Character) int64 { return c.ID },
			func(c *model.Character, id int64, now time.Time) { c.ID, c.CreatedAt, c.UpdatedAt = id, now, now },
		),
		entities: newMemTable(
			func(e model.Entity) int64 { return e.ID },
			func(e *model.Entity, id int64, now time.Time) { e.ID, e.CreatedAt, e.UpdatedAt = id, now, now },
			uniqueKey[model.Entity]{"entities_name_key", func(e model.Entity) string { return e.Name }},
			uniqueKey[model.Entity]{"entities_path_key", func(e model.Entity) string { return e.Path }},
		),
		favorites: newMemTable(
			func(f model.Favorite) int64 { return f.ID },
			func(f *model.Favorite, id int64, now time.Time) { f.ID, f.CreatedAt = id, now },
			uniqueKey[model.Favorite]{"favorites_user_entity_key", favoriteKey},
		),
	}
}

func favoriteKey(f model.Favorite) string {
	return strings.Join([]string{
		strconv.FormatInt(f.UserID, 10),
		strconv.FormatInt(f.EntityID, 10),
		strconv.FormatInt(f.EntityTypeID, 10),
	}, "/")
}

func (m *Memory) Users() Table[model.User]           { return m.users }
func (m *Memory) Colors() Table[model.Color]         { return m.colors }
func (m *Memory) Genders() Table[model.Gender]       { return m.genders }
func (m *Memory) Planets() Table[model.Planet]       { return m.planets }
func (m *Memory) Characters() Table[model.Character] { return m.characters }
func (m *Memory) Entities() Table[model.Entity]      { return m.entities }
func (m *Memory) Favorites() Table[model.Favorite]   { return m.favorites }
func (m *Memory) Close() error                       { return nil }
