package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"holocron/internal/model"
	"holocron/internal/store"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// table — store.Table поверх одной SQL-таблицы.
// columns[0] всегда id; insertColumns — то, что пишет клиент (id и timestamps выдаёт БД).
type table[T any] struct {
	db            *sql.DB
	name          string
	columns       []string
	insertColumns []string
	values        func(T) []any
	scan          func(rowScanner) (T, error)
}

func (t *table[T]) selectList() string { return strings.Join(t.columns, ", ") }

func (t *table[T]) List(ctx context.Context) ([]T, error) {
	query := "SELECT " + t.selectList() + " FROM " + t.name + " ORDER BY id"
	rows, err := t.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.name, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		rec, err := t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.name, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", t.name, err)
	}
	return out, nil
}

func (t *table[T]) Get(ctx context.Context, id int64) (T, bool, error) {
	query := "SELECT " + t.selectList() + " FROM " + t.name + " WHERE id = $1"
	rec, err := t.scan(t.db.QueryRowContext(ctx, query, id))
	if err != nil {
		var zero T
		if errors.Is(err, sql.ErrNoRows) {
			return zero, false, nil
		}
		return zero, false, fmt.Errorf("get %s: %w", t.name, err)
	}
	return rec, true, nil
}

func (t *table[T]) Insert(ctx context.Context, rec T) (T, error) {
	marks := make([]string, len(t.insertColumns))
	for i := range marks {
		marks[i] = "$" + strconv.Itoa(i+1)
	}
	query := "INSERT INTO " + t.name +
		" (" + strings.Join(t.insertColumns, ", ") + ")" +
		" VALUES (" + strings.Join(marks, ", ") + ")" +
		" RETURNING " + t.selectList()

	out, err := t.scan(t.db.QueryRowContext(ctx, query, t.values(rec)...))
	if err != nil {
		var zero T
		return zero, fmt.Errorf("insert into %s: %w", t.name, err)
	}
	return out, nil
}

func (t *table[T]) Delete(ctx context.Context, id int64) error {
	if _, err := t.db.ExecContext(ctx, "DELETE FROM "+t.name+" WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete from %s: %w", t.name, err)
	}
	return nil
}

// Store — store.Store на PostgreSQL.
type Store struct {
	db         *sql.DB
	users      *table[model.User]
	colors     *table[model.Color]
	genders    *table[model.Gender]
	planets    *table[model.Planet]
	characters *table[model.Character]
	entities   *table[model.Entity]
	favorites  *table[model.Favorite]
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
		users: &table[model.User]{
			db:            db,
			name:          "users",
			columns:       []string{"id", "name", "email", "hashed_password", "is_active", "created_at", "updated_at"},
			insertColumns: []string{"name", "email", "hashed_password", "is_active"},
			values: func(u model.User) []any {
				return []any{u.Name, u.Email, u.PasswordHash, u.IsActive}
			},
			scan: func(r rowScanner) (model.User, error) {
				var u model.User
				err := r.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
				return u, err
			},
		},
		colors: &table[model.Color]{
			db:            db,
			name:          "colors",
			columns:       []string{"id", "name", "created_at", "updated_at"},
			insertColumns: []string{"name"},
			values:        func(c model.Color) []any { return []any{c.Name} },
			scan: func(r rowScanner) (model.Color, error) {
				var c model.Color
				err := r.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
				return c, err
			},
		},
		genders: &table[model.Gender]{
			db:            db,
			name:          "genders",
			columns:       []string{"id", "name", "created_at", "updated_at"},
			insertColumns: []string{"name"},
			values:        func(g model.Gender) []any { return []any{g.Name} },
			scan: func(r rowScanner) (model.Gender, error) {
				var g model.Gender
				err := r.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt)
				return g, err
			},
		},
		planets: &table[model.Planet]{
			db:   db,
			name: "planets",
			columns: []string{"id", "name", "diameter", "rotation_period", "orbital_period",
				"gravity", "population", "surface_water", "created_at", "updated_at"},
			insertColumns: []string{"name", "diameter", "rotation_period", "orbital_period",
				"gravity", "population", "surface_water"},
			values: func(p model.Planet) []any {
				return []any{p.Name, p.Diameter, p.RotationPeriod, p.OrbitalPeriod, p.Gravity, p.Population, p.SurfaceWater}
			},
			scan: func(r rowScanner) (model.Planet, error) {
				var p model.Planet
				err := r.Scan(&p.ID, &p.Name, &p.Diameter, &p.RotationPeriod, &p.OrbitalPeriod,
					&p.Gravity, &p.Population, &p.SurfaceWater, &p.CreatedAt, &p.UpdatedAt)
				return p, err
			},
		},
		characters: &table[model.Character]{
			db:   db,
			name: "characters",
			columns: []string{"id", "homeworld", "eye_color_id", "hair_color_id", "skin_color_id",
				"gender_id", "name", "birth_year", "height", "mass", "created_at", "updated_at"},
			insertColumns: []string{"homeworld", "eye_color_id", "hair_color_id", "skin_color_id",
				"gender_id", "name", "birth_year", "height", "mass"},
			values: func(c model.Character) []any {
				return []any{
					nullInt(c.HomeworldID), nullInt(c.EyeColorID), nullInt(c.HairColorID), nullInt(c.SkinColorID),
					nullInt(c.GenderID), c.Name, nullString(c.BirthYear), c.Height, c.Mass,
				}
			},
			scan: scanCharacter,
		},
		entities: &table[model.Entity]{
			db:            db,
			name:          "entities",
			columns:       []string{"id", "name", "path", "created_at", "updated_at"},
			insertColumns: []string{"name", "path"},
			values:        func(e model.Entity) []any { return []any{e.Name, e.Path} },
			scan: func(r rowScanner) (model.Entity, error) {
				var e model.Entity
				err := r.Scan(&e.ID, &e.Name, &e.Path, &e.CreatedAt, &e.UpdatedAt)
				return e, err
			},
		},
		favorites: &table[model.Favorite]{
			db:            db,
			name:          "favorites",
			columns:       []string{"id", "user_id", "entity_id", "entity_type_id", "created_at"},
			insertColumns: []string{"user_id", "entity_id", "entity_type_id"},
			values: func(f model.Favorite) []any {
				return []any{f.UserID, f.EntityID, f.EntityTypeID}
			},
			scan: func(r rowScanner) (model.Favorite, error) {
				var f model.Favorite
				err := r.Scan(&f.ID, &f.UserID, &f.EntityID, &f.EntityTypeID, &f.CreatedAt)
				return f, err
			},
		},
	}
}

func scanCharacter(r rowScanner) (model.Character, error) {
	var (
		c                                    model.Character
		homeworld, eye, hair, skin, genderID sql.NullInt64
		birthYear                            sql.NullString
	)
	err := r.Scan(&c.ID, &homeworld, &eye, &hair, &skin, &genderID,
		&c.Name, &birthYear, &c.Height, &c.Mass, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return c, err
	}
	c.HomeworldID = fromNullInt(homeworld)
	c.EyeColorID = fromNullInt(eye)
	c.HairColorID = fromNullInt(hair)
	c.SkinColorID = fromNullInt(skin)
	c.GenderID = fromNullInt(genderID)
	if birthYear.Valid {
		c.BirthYear = &birthYear.String
	}
	return c, nil
}

func nullInt(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func fromNullInt(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func (s *Store) Users() store.Table[model.User]           { return s.users }
func (s *Store) Colors() store.Table[model.Color]         { return s.colors }
func (s *Store) Genders() store.Table[model.Gender]       { return s.genders }
func (s *Store) Planets() store.Table[model.Planet]       { return s.planets }
func (s *Store) Characters() store.Table[model.Character] { return s.characters }
func (s *Store) Entities() store.Table[model.Entity]      { return s.entities }
func (s *Store) Favorites() store.Table[model.Favorite]   { return s.favorites }
func (s *Store) Close() error                             { return s.db.Close() }
