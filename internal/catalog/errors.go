package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError — payload не прошёл правила полей. Errors отдаётся клиенту как есть (422).
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Errors[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ReferenceNotFoundError — ссылочное поле указывает на несуществующую запись.
type ReferenceNotFoundError struct {
	Kind string
	ID   int64
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found.", e.Kind, e.ID)
}

// NotFoundError — запрошенной записи нет.
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found.", e.Kind, e.ID)
}

// StoreError — любая ошибка хранилища. Текст не переводится и не скрывается.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string { return e.Err.Error() }
func (e *StoreError) Unwrap() error { return e.Err }
