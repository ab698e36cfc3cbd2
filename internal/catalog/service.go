// Package catalog — логика записи каталога: валидация payload, проверка
// ссылок и вызовы репозитория. Ошибки возвращаются типами из errors.go.
package catalog

import (
	"context"

	"holocron/internal/model"
	"holocron/internal/store"
)

// Payload — сырое тело запроса: имя поля -> значение.
type Payload = map[string]any

type Service struct {
	store store.Store
}

func NewService(s store.Store) *Service {
	return &Service{store: s}
}

// ==== обобщённые шаги ====

func listAll[T any](ctx context.Context, t store.Table[T]) ([]T, error) {
	rows, err := t.List(ctx)
	if err != nil {
		return nil, &StoreError{Err: err}
	}
	return rows, nil
}

func getOne[T any](ctx context.Context, t store.Table[T], kind string, id int64) (T, error) {
	rec, ok, err := t.Get(ctx, id)
	if err != nil {
		return rec, &StoreError{Err: err}
	}
	if !ok {
		return rec, &NotFoundError{Kind: kind, ID: id}
	}
	return rec, nil
}

func insert[T any](ctx context.Context, t store.Table[T], rec T) (T, error) {
	out, err := t.Insert(ctx, rec)
	if err != nil {
		return out, &StoreError{Err: err}
	}
	return out, nil
}

// remove идемпотентен: отсутствующий id — не ошибка.
func remove[T any](ctx context.Context, t store.Table[T], id int64) error {
	if err := t.Delete(ctx, id); err != nil {
		return &StoreError{Err: err}
	}
	return nil
}

// mustExist проверяет ссылку, если она задана.
func mustExist[T any](ctx context.Context, t store.Table[T], kind string, id *int64) error {
	if id == nil {
		return nil
	}
	_, ok, err := t.Get(ctx, *id)
	if err != nil {
		return &StoreError{Err: err}
	}
	if !ok {
		return &ReferenceNotFoundError{Kind: kind, ID: *id}
	}
	return nil
}

// ==== Colors ====

func (s *Service) ListColors(ctx context.Context) ([]model.Color, error) {
	return listAll(ctx, s.store.Colors())
}

func (s *Service) GetColor(ctx context.Context, id int64) (model.Color, error) {
	return getOne(ctx, s.store.Colors(), model.KindColor, id)
}

func (s *Service) CreateColor(ctx context.Context, p Payload) (model.Color, error) {
	if ok, errs := ValidateNamed(p); !ok {
		return model.Color{}, &ValidationError{Errors: errs}
	}
	return insert(ctx, s.store.Colors(), model.Color{Name: stringField(p, "name")})
}

func (s *Service) DeleteColor(ctx context.Context, id int64) error {
	return remove(ctx, s.store.Colors(), id)
}

// ==== Genders ====

func (s *Service) ListGenders(ctx context.Context) ([]model.Gender, error) {
	return listAll(ctx, s.store.Genders())
}

func (s *Service) GetGender(ctx context.Context, id int64) (model.Gender, error) {
	return getOne(ctx, s.store.Genders(), model.KindGender, id)
}

func (s *Service) CreateGender(ctx context.Context, p Payload) (model.Gender, error) {
	if ok, errs := ValidateNamed(p); !ok {
		return model.Gender{}, &ValidationError{Errors: errs}
	}
	return insert(ctx, s.store.Genders(), model.Gender{Name: stringField(p, "name")})
}

func (s *Service) DeleteGender(ctx context.Context, id int64) error {
	return remove(ctx, s.store.Genders(), id)
}

// ==== Planets ====

func (s *Service) ListPlanets(ctx context.Context) ([]model.Planet, error) {
	return listAll(ctx, s.store.Planets())
}

func (s *Service) GetPlanet(ctx context.Context, id int64) (model.Planet, error) {
	return getOne(ctx, s.store.Planets(), model.KindPlanet, id)
}

func (s *Service) CreatePlanet(ctx context.Context, p Payload) (model.Planet, error) {
	if ok, errs := ValidatePlanet(p); !ok {
		return model.Planet{}, &ValidationError{Errors: errs}
	}
	return insert(ctx, s.store.Planets(), model.Planet{
		Name:           stringField(p, "name"),
		Diameter:       realField(p, "diameter"),
		RotationPeriod: realField(p, "rotation_period"),
		OrbitalPeriod:  realField(p, "orbital_period"),
		Gravity:        realField(p, "gravity"),
		Population:     integerField(p, "population"),
		SurfaceWater:   realField(p, "surface_water"),
	})
}

// DeletePlanet не трогает персонажей, у которых эта планета указана как homeworld:
// ссылки остаются висячими, каскада и запрета нет.
func (s *Service) DeletePlanet(ctx context.Context, id int64) error {
	return remove(ctx, s.store.Planets(), id)
}

// ==== Characters ====

func (s *Service) ListCharacters(ctx context.Context) ([]model.Character, error) {
	return listAll(ctx, s.store.Characters())
}

func (s *Service) GetCharacter(ctx context.Context, id int64) (model.Character, error) {
	return getOne(ctx, s.store.Characters(), model.KindCharacter, id)
}

// CreateCharacter: валидация -> проверка ссылок -> запись.
// Первая ненайденная ссылка прерывает создание, ничего не сохраняется.
func (s *Service) CreateCharacter(ctx context.Context, p Payload) (model.Character, error) {
	if ok, errs := ValidateCharacter(p); !ok {
		return model.Character{}, &ValidationError{Errors: errs}
	}

	rec := model.Character{
		Name:        stringField(p, "name"),
		BirthYear:   optStringField(p, "birth_year"),
		Height:      realField(p, "height"),
		Mass:        realField(p, "mass"),
		HomeworldID: optIntegerField(p, "homeworld_id"),
		EyeColorID:  optIntegerField(p, "eye_color_id"),
		HairColorID: optIntegerField(p, "hair_color_id"),
		SkinColorID: optIntegerField(p, "skin_color_id"),
		GenderID:    optIntegerField(p, "gender_id"),
	}

	if err := mustExist(ctx, s.store.Planets(), model.KindPlanet, rec.HomeworldID); err != nil {
		return model.Character{}, err
	}
	for _, colorID := range []*int64{rec.EyeColorID, rec.HairColorID, rec.SkinColorID} {
		if err := mustExist(ctx, s.store.Colors(), model.KindColor, colorID); err != nil {
			return model.Character{}, err
		}
	}
	if err := mustExist(ctx, s.store.Genders(), model.KindGender, rec.GenderID); err != nil {
		return model.Character{}, err
	}

	return insert(ctx, s.store.Characters(), rec)
}

func (s *Service) DeleteCharacter(ctx context.Context, id int64) error {
	return remove(ctx, s.store.Characters(), id)
}

// ==== Users (только чтение) ====

func (s *Service) ListUsers(ctx context.Context) ([]model.User, error) {
	return listAll(ctx, s.store.Users())
}

func (s *Service) GetUser(ctx context.Context, id int64) (model.User, error) {
	return getOne(ctx, s.store.Users(), model.KindUser, id)
}

// ==== Entities (только чтение) ====

func (s *Service) ListEntities(ctx context.Context) ([]model.Entity, error) {
	return listAll(ctx, s.store.Entities())
}

func (s *Service) GetEntity(ctx context.Context, id int64) (model.Entity, error) {
	return getOne(ctx, s.store.Entities(), model.KindEntity, id)
}

// ==== Favorites ====

func (s *Service) ListFavorites(ctx context.Context) ([]model.Favorite, error) {
	return listAll(ctx, s.store.Favorites())
}

func (s *Service) GetFavorite(ctx context.Context, id int64) (model.Favorite, error) {
	return getOne(ctx, s.store.Favorites(), model.KindFavorite, id)
}

// CreateFavorite проверяет пользователя и тип сущности. entity_id не проверяется:
// это id ресурса того типа, на который указывает entity_type_id.
// Повтор тройки (user, entity, type) отсекается уникальным ключом хранилища.
func (s *Service) CreateFavorite(ctx context.Context, p Payload) (model.Favorite, error) {
	if ok, errs := ValidateFavorite(p); !ok {
		return model.Favorite{}, &ValidationError{Errors: errs}
	}

	rec := model.Favorite{
		UserID:       integerField(p, "user_id"),
		EntityID:     integerField(p, "entity_id"),
		EntityTypeID: integerField(p, "entity_type_id"),
	}
	if err := mustExist(ctx, s.store.Users(), model.KindUser, &rec.UserID); err != nil {
		return model.Favorite{}, err
	}
	if err := mustExist(ctx, s.store.Entities(), model.KindEntity, &rec.EntityTypeID); err != nil {
		return model.Favorite{}, err
	}

	return insert(ctx, s.store.Favorites(), rec)
}

func (s *Service) DeleteFavorite(ctx context.Context, id int64) error {
	return remove(ctx, s.store.Favorites(), id)
}

// ==== извлечение значений из уже провалидированного payload ====

func stringField(p Payload, key string) string {
	s, _ := p[key].(string)
	return s
}

func optStringField(p Payload, key string) *string {
	s, ok := p[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func realField(p Payload, key string) float64 {
	f, _ := toReal(p[key])
	return f
}

func integerField(p Payload, key string) int64 {
	n, _ := toInteger(p[key])
	return n
}

func optIntegerField(p Payload, key string) *int64 {
	n, ok := toInteger(p[key])
	if !ok {
		return nil
	}
	return &n
}
