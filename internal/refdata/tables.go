package refdata

import (
	"strings"
	"sync/atomic"

	"internhunt/internal/types"
)

// SectionEntry is one canonical resume section with the heading synonyms
// that mark it present.
type SectionEntry struct {
	Name     string   `mapstructure:"name"`
	Synonyms []string `mapstructure:"synonyms"`
}

// SkillEntry maps a canonical skill to its category and surface-form
// synonyms. Overlapping terms (java vs javascript) are disambiguated by
// whole-token matching in the extractor, so synonyms list exact tokens only.
type SkillEntry struct {
	Name     string              `mapstructure:"name"`
	Category types.SkillCategory `mapstructure:"category"`
	Synonyms []string            `mapstructure:"synonyms"`
}

// RoleProfile is the reference skill set for one target role, ordered by
// importance to the role.
type RoleProfile struct {
	Role   string   `mapstructure:"role"`
	Skills []string `mapstructure:"skills"`
}

// Tables bundles every static reference table the pipeline consumes. A
// Tables value is immutable after construction and safely shared across
// concurrent analyses.
type Tables struct {
	Version  string         `mapstructure:"version"`
	Sections []SectionEntry `mapstructure:"sections"`
	Skills   []SkillEntry   `mapstructure:"skills"`
	Roles    []RoleProfile  `mapstructure:"roles"`
	Keywords []string       `mapstructure:"keywords"`
}

// SectionNames returns the canonical section names in fixed order
func (t *Tables) SectionNames() []string {
	names := make([]string, len(t.Sections))
	for i, s := range t.Sections {
		names[i] = s.Name
	}
	return names
}

// Role looks up a role profile by name, case-insensitively
func (t *Tables) Role(name string) (RoleProfile, bool) {
	for _, r := range t.Roles {
		if strings.EqualFold(r.Role, name) {
			return r, true
		}
	}
	return RoleProfile{}, false
}

// RoleNames returns every known target role
func (t *Tables) RoleNames() []string {
	names := make([]string, len(t.Roles))
	for i, r := range t.Roles {
		names[i] = r.Role
	}
	return names
}

// Store holds the current Tables snapshot. Swapping is atomic so a running
// analysis always sees one consistent snapshot while serve mode hot-reloads
// the underlying file.
type Store struct {
	current atomic.Pointer[Tables]
}

// NewStore creates a store seeded with the given snapshot
func NewStore(t *Tables) *Store {
	s := &Store{}
	s.current.Store(t)
	return s
}

// Snapshot returns the current immutable tables
func (s *Store) Snapshot() *Tables {
	return s.current.Load()
}

// Swap replaces the current snapshot
func (s *Store) Swap(t *Tables) {
	s.current.Store(t)
}

// Defaults returns the built-in reference tables. Deployments override any
// of these through a YAML file (see Load); the defaults mirror the product's
// five role tracks.
func Defaults() *Tables {
	return &Tables{
		Version: "builtin-1",
		Sections: []SectionEntry{
			{Name: "Summary", Synonyms: []string{"summary", "professional summary", "profile", "objective", "about me"}},
			{Name: "Education", Synonyms: []string{"education", "academic background", "qualifications", "academics"}},
			{Name: "Experience", Synonyms: []string{"experience", "work experience", "employment history", "work history", "professional experience", "internships"}},
			{Name: "Skills", Synonyms: []string{"skills", "technical skills", "skill set", "core competencies", "technologies"}},
			{Name: "Projects", Synonyms: []string{"projects", "personal projects", "academic projects", "portfolio"}},
		},
		Skills: []SkillEntry{
			{Name: "Python", Category: types.CategoryProgramming, Synonyms: []string{"python", "python3"}},
			{Name: "Java", Category: types.CategoryProgramming, Synonyms: []string{"java"}},
			{Name: "JavaScript", Category: types.CategoryProgramming, Synonyms: []string{"javascript", "js", "ecmascript"}},
			{Name: "TypeScript", Category: types.CategoryProgramming, Synonyms: []string{"typescript", "ts"}},
			{Name: "Go", Category: types.CategoryProgramming, Synonyms: []string{"golang"}},
			{Name: "C++", Category: types.CategoryProgramming, Synonyms: []string{"c++", "cpp"}},
			{Name: "C#", Category: types.CategoryProgramming, Synonyms: []string{"c#", "csharp"}},
			{Name: "Kotlin", Category: types.CategoryProgramming, Synonyms: []string{"kotlin"}},
			{Name: "Swift", Category: types.CategoryProgramming, Synonyms: []string{"swift", "swiftui"}},
			{Name: "SQL", Category: types.CategoryData, Synonyms: []string{"sql", "mysql", "postgresql", "postgres"}},
			{Name: "R", Category: types.CategoryData, Synonyms: []string{"rstudio"}},
			{Name: "HTML", Category: types.CategoryProgramming, Synonyms: []string{"html", "html5"}},
			{Name: "CSS", Category: types.CategoryProgramming, Synonyms: []string{"css", "css3", "sass", "scss"}},
			{Name: "React", Category: types.CategoryFramework, Synonyms: []string{"react", "reactjs", "react.js"}},
			{Name: "Angular", Category: types.CategoryFramework, Synonyms: []string{"angular", "angularjs"}},
			{Name: "Vue", Category: types.CategoryFramework, Synonyms: []string{"vue", "vuejs", "vue.js"}},
			{Name: "Node.js", Category: types.CategoryFramework, Synonyms: []string{"node", "nodejs", "node.js"}},
			{Name: "Django", Category: types.CategoryFramework, Synonyms: []string{"django"}},
			{Name: "Flask", Category: types.CategoryFramework, Synonyms: []string{"flask"}},
			{Name: "Spring", Category: types.CategoryFramework, Synonyms: []string{"spring", "spring boot"}},
			{Name: "Flutter", Category: types.CategoryFramework, Synonyms: []string{"flutter", "dart"}},
			{Name: "Android", Category: types.CategoryFramework, Synonyms: []string{"android", "jetpack compose", "android studio"}},
			{Name: "iOS", Category: types.CategoryFramework, Synonyms: []string{"ios", "xcode", "uikit"}},
			{Name: "TensorFlow", Category: types.CategoryFramework, Synonyms: []string{"tensorflow", "keras"}},
			{Name: "PyTorch", Category: types.CategoryFramework, Synonyms: []string{"pytorch", "torch"}},
			{Name: "Pandas", Category: types.CategoryData, Synonyms: []string{"pandas"}},
			{Name: "NumPy", Category: types.CategoryData, Synonyms: []string{"numpy"}},
			{Name: "Machine Learning", Category: types.CategoryData, Synonyms: []string{"machine learning", "ml", "deep learning"}},
			{Name: "Data Analysis", Category: types.CategoryData, Synonyms: []string{"data analysis", "data analytics", "data visualization"}},
			{Name: "Git", Category: types.CategoryTool, Synonyms: []string{"git", "github", "gitlab"}},
			{Name: "Docker", Category: types.CategoryTool, Synonyms: []string{"docker", "containers"}},
			{Name: "Kubernetes", Category: types.CategoryTool, Synonyms: []string{"kubernetes", "k8s"}},
			{Name: "AWS", Category: types.CategoryTool, Synonyms: []string{"aws", "amazon web services"}},
			{Name: "Linux", Category: types.CategoryTool, Synonyms: []string{"linux", "unix", "bash"}},
			{Name: "Excel", Category: types.CategoryTool, Synonyms: []string{"excel", "spreadsheets"}},
			{Name: "Figma", Category: types.CategoryDesign, Synonyms: []string{"figma"}},
			{Name: "UI/UX", Category: types.CategoryDesign, Synonyms: []string{"ui/ux", "ux", "user experience", "wireframing", "prototyping"}},
			{Name: "Adobe XD", Category: types.CategoryDesign, Synonyms: []string{"adobe xd", "photoshop", "illustrator"}},
			{Name: "Communication", Category: types.CategorySoftSkill, Synonyms: []string{"communication", "presentation"}},
			{Name: "Leadership", Category: types.CategorySoftSkill, Synonyms: []string{"leadership", "mentoring"}},
			{Name: "Teamwork", Category: types.CategorySoftSkill, Synonyms: []string{"teamwork", "collaboration"}},
			{Name: "Project Management", Category: types.CategorySoftSkill, Synonyms: []string{"project management", "agile", "scrum"}},
		},
		Roles: []RoleProfile{
			{Role: "Data Science", Skills: []string{"Python", "Machine Learning", "SQL", "Pandas", "NumPy", "Data Analysis", "TensorFlow", "PyTorch", "Excel", "Communication"}},
			{Role: "Web Development", Skills: []string{"JavaScript", "HTML", "CSS", "React", "Node.js", "TypeScript", "SQL", "Git", "Docker", "Communication"}},
			{Role: "Android Development", Skills: []string{"Kotlin", "Java", "Android", "Flutter", "Git", "SQL", "Linux", "Teamwork"}},
			{Role: "iOS Development", Skills: []string{"Swift", "iOS", "Git", "SQL", "Teamwork", "Communication"}},
			{Role: "UI/UX Design", Skills: []string{"Figma", "UI/UX", "Adobe XD", "HTML", "CSS", "Communication", "Teamwork"}},
		},
		Keywords: []string{
			"Python", "SQL", "Git", "JavaScript", "Excel",
			"Communication", "Teamwork", "Leadership", "Project Management", "Data Analysis",
		},
	}
}
