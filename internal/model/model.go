// Package model описывает сущности каталога. JSON-теги задают публичное
// представление (view): всё, что помечено "-", наружу не отдаётся.
package model

import "time"

// Имена типов, которыми подписываются ошибки "<Type> with ID <id> not found."
const (
	KindUser      = "User"
	KindColor     = "Color"
	KindGender    = "Gender"
	KindPlanet    = "Planet"
	KindCharacter = "Character"
	KindEntity    = "Entity"
	KindFavorite  = "Favorite"
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"-"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

type Color struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Gender по форме совпадает с Color, но это отдельная таблица.
type Gender struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type Planet struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Diameter       float64   `json:"diameter"`
	RotationPeriod float64   `json:"rotation_period"`
	OrbitalPeriod  float64   `json:"orbital_period"`
	Gravity        float64   `json:"gravity"`
	Population     int64     `json:"population"`
	SurfaceWater   float64   `json:"surface_water"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

// Character — персонаж (маршрут /people). Ссылки опциональны: nil = не задано.
type Character struct {
	ID          int64     `json:"id"`
	HomeworldID *int64    `json:"homeworld"`
	EyeColorID  *int64    `json:"eye_color_id"`
	HairColorID *int64    `json:"hair_color_id"`
	SkinColorID *int64    `json:"skin_color_id"`
	Name        string    `json:"name"`
	BirthYear   *string   `json:"birth_year"`
	GenderID    *int64    `json:"gender_id"`
	Height      float64   `json:"height"`
	Mass        float64   `json:"mass"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// Entity — реестр типов ресурсов ("Character" -> "people") для избранного.
type Entity struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Favorite: EntityID — сырой id ресурса, его тип задаёт EntityTypeID.
// EntityID внешним ключом не является и на существование не проверяется.
type Favorite struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	EntityID     int64     `json:"entity_id"`
	EntityTypeID int64     `json:"entity_type_id"`
	CreatedAt    time.Time `json:"-"`
}
