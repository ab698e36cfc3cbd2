package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Ключи сводных ошибок в карте валидации.
const (
	KeyMissing = "missing_keys"
	KeyExtra   = "extra_keys"
)

// check возвращает текст ошибки или "" если значение подходит.
type check func(field string, v any) string

type fieldRule struct {
	name     string
	required bool
	check    check
}

// validate прогоняет payload по правилам и собирает ВСЕ ошибки, а не первую.
// Необязательное поле со значением null считается незаданным.
func validate(rules []fieldRule, payload map[string]any) (bool, map[string]string) {
	errs := make(map[string]string)

	byName := make(map[string]fieldRule, len(rules))
	missing := make(map[string]struct{})
	for _, r := range rules {
		byName[r.name] = r
		if r.required {
			missing[r.name] = struct{}{}
		}
	}

	var extra []string
	for key, val := range payload {
		r, ok := byName[key]
		if !ok {
			extra = append(extra, key)
			continue
		}
		if r.required {
			delete(missing, key)
		} else if val == nil {
			continue
		}
		if msg := r.check(key, val); msg != "" {
			errs[key] = msg
		}
	}

	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, r := range rules { // порядок объявления
			if _, ok := missing[r.name]; ok {
				names = append(names, r.name)
			}
		}
		errs[KeyMissing] = strings.Join(names, ",")
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		errs[KeyExtra] = strings.Join(extra, ",")
	}

	return len(errs) == 0, errs
}

var namedRules = []fieldRule{
	{name: "name", required: true, check: nonEmptyString},
}

// ValidateNamed — общий валидатор «именованных» справочников (Color, Gender):
// одно обязательное непустое строковое поле name.
func ValidateNamed(payload map[string]any) (bool, map[string]string) {
	return validate(namedRules, payload)
}

var characterRules = []fieldRule{
	{name: "name", required: true, check: nonEmptyString},
	{name: "height", required: true, check: realAtLeastZero},
	{name: "mass", required: true, check: realAtLeastZero},
	{name: "birth_year", check: nonEmptyString},
	{name: "homeworld_id", check: integer},
	{name: "eye_color_id", check: integer},
	{name: "hair_color_id", check: integer},
	{name: "skin_color_id", check: integer},
	{name: "gender_id", check: integer},
}

// ValidateCharacter проверяет только форму полей; существование ссылок
// проверяет Service.CreateCharacter.
func ValidateCharacter(payload map[string]any) (bool, map[string]string) {
	return validate(characterRules, payload)
}

var planetRules = []fieldRule{
	{name: "name", required: true, check: nonEmptyString},
	{name: "rotation_period", required: true, check: realPositive},
	{name: "orbital_period", required: true, check: realPositive},
	{name: "diameter", required: true, check: realPositive},
	{name: "gravity", required: true, check: realAtLeastZero},
	{name: "surface_water", required: true, check: realPercent},
	{name: "population", required: true, check: integerAtLeastZero},
}

func ValidatePlanet(payload map[string]any) (bool, map[string]string) {
	return validate(planetRules, payload)
}

var favoriteRules = []fieldRule{
	{name: "user_id", required: true, check: integer},
	{name: "entity_id", required: true, check: integer},
	{name: "entity_type_id", required: true, check: integer},
}

func ValidateFavorite(payload map[string]any) (bool, map[string]string) {
	return validate(favoriteRules, payload)
}

// ==== правила для отдельных значений ====

func nonEmptyString(field string, v any) string {
	s, ok := v.(string)
	if !ok {
		return fmt.Sprintf("The %s should be a string", field)
	}
	if len(s) == 0 {
		return fmt.Sprintf("The %s should be a non empty string", field)
	}
	return ""
}

func realPositive(field string, v any) string {
	f, ok := toReal(v)
	if !ok {
		return fmt.Sprintf("The %s should be a number", field)
	}
	if !(f > 0) {
		return fmt.Sprintf("The %s should be greater than 0", field)
	}
	return ""
}

func realAtLeastZero(field string, v any) string {
	f, ok := toReal(v)
	if !ok {
		return fmt.Sprintf("The %s should be a number", field)
	}
	if !(f >= 0) {
		return fmt.Sprintf("The %s should be greater than or equal to 0", field)
	}
	return ""
}

func realPercent(field string, v any) string {
	f, ok := toReal(v)
	if !ok {
		return fmt.Sprintf("The %s should be a number", field)
	}
	if !(f >= 0 && f <= 100) {
		return fmt.Sprintf("The %s should be between 0 and 100", field)
	}
	return ""
}

func integer(field string, v any) string {
	if _, ok := toInteger(v); !ok {
		return fmt.Sprintf("The %s should be an integer", field)
	}
	return ""
}

func integerAtLeastZero(field string, v any) string {
	n, ok := toInteger(v)
	if !ok {
		return fmt.Sprintf("The %s should be an integer", field)
	}
	if n < 0 {
		return fmt.Sprintf("The %s should be greater than or equal to 0", field)
	}
	return ""
}

// toReal принимает любое число: целое или вещественное. bool числом не считается.
func toReal(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}

// toInteger принимает только целые. json.Number вида "5.0" или "5e2" — не целое,
// float64 тоже (так приходит вещественное число из JSON без UseNumber).
func toInteger(v any) (int64, bool) {
	switch t := v.(type) {
	case json.Number:
		n, err := t.Int64()
		return n, err == nil
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	default:
		return 0, false
	}
}
