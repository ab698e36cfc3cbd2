// Package store задаёт интерфейс репозитория каталога и in-memory реализацию.
package store

import (
	"context"

	"holocron/internal/model"
)

// Table — CRUD одной сущности. Частичного обновления нет.
//
// Get для отсутствующего id возвращает (zero, false, nil): отсутствие — не ошибка.
// Delete отсутствующего id — no-op.
type Table[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int64) (T, bool, error)
	Insert(ctx context.Context, rec T) (T, error)
	Delete(ctx context.Context, id int64) error
}

// Store — набор таблиц каталога.
type Store interface {
	Users() Table[model.User]
	Colors() Table[model.Color]
	Genders() Table[model.Gender]
	Planets() Table[model.Planet]
	Characters() Table[model.Character]
	Entities() Table[model.Entity]
	Favorites() Table[model.Favorite]
	Close() error
}
