package models

// CatalogTeam is a team entry of the embedded league catalog
type CatalogTeam struct {
	Name     string   `json:"name" yaml:"name"`
	Strength float64  `json:"strength" yaml:"strength"`
	Aliases  []string `json:"aliases,omitempty" yaml:"aliases"`
}

// League is a competition of the embedded catalog
type League struct {
	Name       string        `json:"name" yaml:"name"`
	UpstreamID int           `json:"upstreamId" yaml:"upstream_id"`
	Country    string        `json:"country" yaml:"country"`
	Teams      []CatalogTeam `json:"teams" yaml:"teams"`
}

// TeamNames returns the names of the league's teams in catalog order
func (l *League) TeamNames() []string {
	names := make([]string, 0, len(l.Teams))
	for _, t := range l.Teams {
		names = append(names, t.Name)
	}
	return names
}
