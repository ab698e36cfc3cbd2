package reference

// Seed — начальное наполнение каталога. Порядок применения: справочники,
// планеты, реестр сущностей, пользователи.
type Seed struct {
	Colors   []string     `yaml:"colors"`
	Genders  []string     `yaml:"genders"`
	Planets  []PlanetItem `yaml:"planets"`
	Entities []EntityItem `yaml:"entities"`
	Users    []UserItem   `yaml:"users"`
}

type PlanetItem struct {
	Name           string  `yaml:"name"`
	Diameter       float64 `yaml:"diameter"`
	RotationPeriod float64 `yaml:"rotation_period"`
	OrbitalPeriod  float64 `yaml:"orbital_period"`
	Gravity        float64 `yaml:"gravity"`
	Population     int64   `yaml:"population"`
	SurfaceWater   float64 `yaml:"surface_water"`
}

// payload — запись в форме тела POST /planets.
func (p PlanetItem) payload() map[string]any {
	return map[string]any{
		"name":            p.Name,
		"diameter":        p.Diameter,
		"rotation_period": p.RotationPeriod,
		"orbital_period":  p.OrbitalPeriod,
		"gravity":         p.Gravity,
		"population":      p.Population,
		"surface_water":   p.SurfaceWater,
	}
}

// EntityItem — тип ресурса для избранного: имя и путь маршрута ("Character" -> "people").
type EntityItem struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// UserItem: пароль в файле открытым текстом, в хранилище попадает только bcrypt-хеш.
type UserItem struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Active   *bool  `yaml:"active,omitempty"` // по умолчанию true
}

// Stats — сколько записей добавлено и пропущено (уже были).
type Stats struct {
	Inserted int
	Skipped  int
}

func (s *Stats) add(inserted bool) {
	if inserted {
		s.Inserted++
	} else {
		s.Skipped++
	}
}

// merge дописывает списки other в конец s.
func (s *Seed) merge(other Seed) {
	s.Colors = append(s.Colors, other.Colors...)
	s.Genders = append(s.Genders, other.Genders...)
	s.Planets = append(s.Planets, other.Planets...)
	s.Entities = append(s.Entities, other.Entities...)
	s.Users = append(s.Users, other.Users...)
}
