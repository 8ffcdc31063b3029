package refdata

import (
	"github.com/spf13/viper"

	"internhunt/internal/errors"
)

// fileTables mirrors the YAML override format. Each top-level key is
// optional; a key that is present replaces the corresponding built-in table
// wholesale, absent keys keep the defaults.
type fileTables struct {
	Version  string         `mapstructure:"version"`
	Sections []SectionEntry `mapstructure:"sections"`
	Skills   []SkillEntry   `mapstructure:"skills"`
	Roles    []RoleProfile  `mapstructure:"roles"`
	Keywords []string       `mapstructure:"keywords"`
}

// Load reads a reference-table override file and merges it over the built-in
// defaults. A table defined in the file replaces the default table entirely;
// partial edits are not merged entry-by-entry.
func Load(path string) (*Tables, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeTableLoad,
			"failed to read reference tables", err).WithContext("path", path)
	}

	var ft fileTables
	if err := v.Unmarshal(&ft); err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeTableLoad,
			"failed to parse reference tables", err).WithContext("path", path)
	}

	tables := Defaults()
	if ft.Version != "" {
		tables.Version = ft.Version
	}
	if len(ft.Sections) > 0 {
		tables.Sections = ft.Sections
	}
	if len(ft.Skills) > 0 {
		tables.Skills = ft.Skills
	}
	if len(ft.Roles) > 0 {
		tables.Roles = ft.Roles
	}
	if len(ft.Keywords) > 0 {
		tables.Keywords = ft.Keywords
	}

	if err := validate(tables); err != nil {
		return nil, err
	}
	return tables, nil
}

func validate(t *Tables) error {
	if len(t.Sections) == 0 {
		return errors.NewConfigError(errors.ErrCodeTableLoad, "section lexicon is empty", nil)
	}
	if len(t.Skills) == 0 {
		return errors.NewConfigError(errors.ErrCodeTableLoad, "skill taxonomy is empty", nil)
	}
	seen := make(map[string]bool, len(t.Skills))
	for _, s := range t.Skills {
		if s.Name == "" {
			return errors.NewConfigError(errors.ErrCodeTableLoad, "skill entry without a name", nil)
		}
		if seen[s.Name] {
			return errors.NewConfigError(errors.ErrCodeTableLoad, "duplicate skill entry", nil).
				WithContext("skill", s.Name)
		}
		seen[s.Name] = true
	}
	for _, r := range t.Roles {
		for _, skill := range r.Skills {
			if !seen[skill] {
				return errors.NewConfigError(errors.ErrCodeTableLoad,
					"role profile references unknown skill", nil).
					WithContext("role", r.Role).
					WithContext("skill", skill)
			}
		}
	}
	return nil
}
