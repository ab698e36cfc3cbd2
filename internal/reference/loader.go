// Package reference читает YAML-каталог начальных данных и заливает его в хранилище.
package reference

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"holocron/internal/catalog"
	"holocron/internal/logging"
	"holocron/internal/model"
	"holocron/internal/store"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// Load читает seed из файла или из всех *.yaml/*.yml в папке (по алфавиту).
func Load(path string) (Seed, error) {
	st, err := os.Stat(path)
	if err != nil {
		return Seed{}, err
	}
	if !st.IsDir() {
		return loadFile(path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return Seed{}, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && (strings.HasSuffix(e.Name(), ".yaml") || strings.HasSuffix(e.Name(), ".yml")) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var out Seed
	for _, name := range names {
		part, err := loadFile(filepath.Join(path, name))
		if err != nil {
			return Seed{}, err
		}
		out.merge(part)
	}
	return out, nil
}

func loadFile(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, err
	}
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Seed{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return s, nil
}

// Validate прогоняет записи seed через те же правила, что и POST в API.
// Первая неверная запись возвращается ошибкой с её именем.
func Validate(seed Seed) error {
	for _, name := range seed.Colors {
		if ok, errs := catalog.ValidateNamed(catalog.Payload{"name": name}); !ok {
			return fmt.Errorf("seed color %q: %w", name, &catalog.ValidationError{Errors: errs})
		}
	}
	for _, name := range seed.Genders {
		if ok, errs := catalog.ValidateNamed(catalog.Payload{"name": name}); !ok {
			return fmt.Errorf("seed gender %q: %w", name, &catalog.ValidationError{Errors: errs})
		}
	}
	for _, p := range seed.Planets {
		if ok, errs := catalog.ValidatePlanet(p.payload()); !ok {
			return fmt.Errorf("seed planet %q: %w", p.Name, &catalog.ValidationError{Errors: errs})
		}
	}
	for _, e := range seed.Entities {
		if e.Name == "" || e.Path == "" {
			return fmt.Errorf("seed entity %q: name and path are required", e.Name)
		}
	}
	return nil
}

// Apply добавляет записи seed, которых ещё нет (по уникальному ключу).
// Повторный вызов с тем же seed ничего не меняет. Невалидный seed не пишется вовсе.
func Apply(ctx context.Context, s store.Store, seed Seed, log logging.Logger) (Stats, error) {
	var stats Stats
	if err := Validate(seed); err != nil {
		return stats, err
	}

	for _, name := range seed.Colors {
		ok, err := insertMissing(ctx, s.Colors(), model.Color{Name: name}, colorName)
		if err != nil {
			return stats, fmt.Errorf("seed color %q: %w", name, err)
		}
		stats.add(ok)
	}
	for _, name := range seed.Genders {
		ok, err := insertMissing(ctx, s.Genders(), model.Gender{Name: name}, genderName)
		if err != nil {
			return stats, fmt.Errorf("seed gender %q: %w", name, err)
		}
		stats.add(ok)
	}
	for _, p := range seed.Planets {
		ok, err := insertMissing(ctx, s.Planets(), model.Planet{
			Name:           p.Name,
			Diameter:       p.Diameter,
			RotationPeriod: p.RotationPeriod,
			OrbitalPeriod:  p.OrbitalPeriod,
			Gravity:        p.Gravity,
			Population:     p.Population,
			SurfaceWater:   p.SurfaceWater,
		}, planetName)
		if err != nil {
			return stats, fmt.Errorf("seed planet %q: %w", p.Name, err)
		}
		stats.add(ok)
	}
	for _, e := range seed.Entities {
		ok, err := insertMissing(ctx, s.Entities(), model.Entity{Name: e.Name, Path: e.Path}, entityName, entityPath)
		if err != nil {
			return stats, fmt.Errorf("seed entity %q: %w", e.Name, err)
		}
		stats.add(ok)
	}
	for _, u := range seed.Users {
		rec, err := newUser(u)
		if err != nil {
			return stats, fmt.Errorf("seed user %q: %w", u.Email, err)
		}
		ok, err := insertMissing(ctx, s.Users(), rec, userEmail)
		if err != nil {
			return stats, fmt.Errorf("seed user %q: %w", u.Email, err)
		}
		stats.add(ok)
	}

	log.Info(ctx, "seed applied", "inserted", stats.Inserted, "skipped", stats.Skipped)
	return stats, nil
}

func newUser(u UserItem) (model.User, error) {
	if u.Email == "" {
		return model.User{}, fmt.Errorf("email is required")
	}
	active := true
	if u.Active != nil {
		active = *u.Active
	}
	rec := model.User{Name: u.Name, Email: u.Email, IsActive: active}
	if u.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return model.User{}, err
		}
		rec.PasswordHash = string(hash)
	}
	return rec, nil
}

// insertMissing вставляет rec, если ни по одному из уникальных ключей
// в таблице нет совпадающей записи.
func insertMissing[T any](ctx context.Context, t store.Table[T], rec T, keys ...func(T) string) (bool, error) {
	rows, err := t.List(ctx)
	if err != nil {
		return false, err
	}
	for _, key := range keys {
		want := key(rec)
		for _, r := range rows {
			if key(r) == want {
				return false, nil
			}
		}
	}
	if _, err := t.Insert(ctx, rec); err != nil {
		return false, err
	}
	return true, nil
}

func colorName(c model.Color) string   { return c.Name }
func genderName(g model.Gender) string { return g.Name }
func planetName(p model.Planet) string { return p.Name }
func entityName(e model.Entity) string { return e.Name }
func entityPath(e model.Entity) string { return e.Path }
func userEmail(u model.User) string    { return u.Email }
