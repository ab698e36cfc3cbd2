package pg

// CatalogDDL создаёт таблицы каталога. Внешних ключей в БД нет намеренно:
// ссылки проверяет сервис при записи, удаление не каскадирует и не запрещается.
// "user" — зарезервированное слово, поэтому таблицы во множественном числе.
var CatalogDDL = []Statement{
	{Name: "users", SQL: `
CREATE TABLE IF NOT EXISTS users (
    id              BIGSERIAL PRIMARY KEY,
    name            TEXT NOT NULL DEFAULT '',
    email           VARCHAR(120) NOT NULL UNIQUE,
    hashed_password VARCHAR(80) NOT NULL,
    is_active       BOOLEAN NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
)`},
	{Name: "colors", SQL: `
CREATE TABLE IF NOT EXISTS colors (
    id         BIGSERIAL PRIMARY KEY,
    name       TEXT NOT NULL UNIQUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`},
	{Name: "genders", SQL: `
CREATE TABLE IF NOT EXISTS genders (
    id         BIGSERIAL PRIMARY KEY,
    name       TEXT NOT NULL UNIQUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`},
	{Name: "planets", SQL: `
CREATE TABLE IF NOT EXISTS planets (
    id              BIGSERIAL PRIMARY KEY,
    name            TEXT NOT NULL UNIQUE,
    diameter        DOUBLE PRECISION NOT NULL,
    rotation_period DOUBLE PRECISION NOT NULL,
    orbital_period  DOUBLE PRECISION NOT NULL,
    gravity         DOUBLE PRECISION NOT NULL,
    population      BIGINT NOT NULL,
    surface_water   DOUBLE PRECISION NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
)`},
	{Name: "characters", SQL: `
CREATE TABLE IF NOT EXISTS characters (
    id            BIGSERIAL PRIMARY KEY,
    homeworld     BIGINT,
    eye_color_id  BIGINT,
    hair_color_id BIGINT,
    skin_color_id BIGINT,
    gender_id     BIGINT,
    name          TEXT NOT NULL,
    birth_year    TEXT,
    height        DOUBLE PRECISION NOT NULL,
    mass          DOUBLE PRECISION NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`},
	{Name: "entities", SQL: `
CREATE TABLE IF NOT EXISTS entities (
    id         BIGSERIAL PRIMARY KEY,
    name       TEXT NOT NULL UNIQUE,
    path       TEXT NOT NULL UNIQUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`},
	{Name: "favorites", SQL: `
CREATE TABLE IF NOT EXISTS favorites (
    id             BIGSERIAL PRIMARY KEY,
    user_id        BIGINT NOT NULL,
    entity_id      BIGINT NOT NULL,
    entity_type_id BIGINT NOT NULL,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT favorites_user_entity_key UNIQUE (user_id, entity_id, entity_type_id)
)`},
}
