package datasource

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/futurologia/internal/models"
)

//go:embed data/teams.yaml
var embeddedCatalog []byte

// DefaultStrength is used for teams missing from the catalog
const DefaultStrength = 0.5

type catalogFile struct {
	DefaultStrength *float64        `yaml:"default_strength"`
	Leagues         []models.League `yaml:"leagues"`
}

// Catalog is the static table of leagues and team strengths
type Catalog struct {
	leagues         []models.League
	byLeague        map[string]int
	teams           map[string]models.CatalogTeam
	defaultStrength float64
}

// LoadCatalog parses a YAML league catalog
func LoadCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse team catalog: %w", err)
	}

	c := &Catalog{
		leagues:         file.Leagues,
		byLeague:        make(map[string]int, len(file.Leagues)),
		teams:           make(map[string]models.CatalogTeam),
		defaultStrength: DefaultStrength,
	}
	if file.DefaultStrength != nil {
		c.defaultStrength = *file.DefaultStrength
	}

	for i, league := range file.Leagues {
		if league.Name == "" {
			return nil, fmt.Errorf("league %d has no name", i)
		}
		c.byLeague[normalizeName(league.Name)] = i
		for _, team := range league.Teams {
			if team.Strength < 0 || team.Strength > 1 {
				return nil, fmt.Errorf("team %s: strength %.2f outside [0, 1]", team.Name, team.Strength)
			}
			c.teams[normalizeName(team.Name)] = team
			for _, alias := range team.Aliases {
				c.teams[normalizeName(alias)] = team
			}
		}
	}

	return c, nil
}

// DefaultCatalog returns the catalog embedded in the binary
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(embeddedCatalog)
}

// Leagues returns every league in catalog order
func (c *Catalog) Leagues() []models.League {
	out := make([]models.League, len(c.leagues))
	copy(out, c.leagues)
	return out
}

// League looks up a league by name, case-insensitively
func (c *Catalog) League(name string) (*models.League, error) {
	idx, ok := c.byLeague[normalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("league %q: %w", name, models.ErrNotFound)
	}
	league := c.leagues[idx]
	return &league, nil
}

// Team looks up a team by name or alias across all leagues
func (c *Catalog) Team(name string) (models.CatalogTeam, bool) {
	team, ok := c.teams[normalizeName(name)]
	return team, ok
}

// Strength returns the strength of a team, or the default for unknown teams
func (c *Catalog) Strength(name string) float64 {
	if team, ok := c.Team(name); ok {
		return team.Strength
	}
	return c.defaultStrength
}

// SameTeam reports whether two names refer to the same catalog team
func (c *Catalog) SameTeam(a, b string) bool {
	if normalizeName(a) == normalizeName(b) {
		return true
	}
	ta, okA := c.Team(a)
	tb, okB := c.Team(b)
	return okA && okB && ta.Name == tb.Name
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
