package datasource

import (
	"context"

	"github.com/yourusername/futurologia/internal/logger"
	"github.com/yourusername/futurologia/internal/metrics"
	"github.com/yourusername/futurologia/internal/models"
)

// Resolver produces a TeamStat for any team name. It prefers the upstream
// source and falls back to the static catalog or synthesized values; it
// never fails.
type Resolver struct {
	upstream TeamDataSource
	catalog  *Catalog
	synth    *Synthesizer
	log      *logger.AnalysisLogger
}

// NewResolver creates a resolver. upstream may be nil.
func NewResolver(upstream TeamDataSource, catalog *Catalog, synth *Synthesizer, log *logger.AnalysisLogger) *Resolver {
	return &Resolver{
		upstream: upstream,
		catalog:  catalog,
		synth:    synth,
		log:      log,
	}
}

// UpstreamEnabled reports whether an enabled upstream source is configured
func (r *Resolver) UpstreamEnabled() bool {
	return r.upstream != nil && r.upstream.IsEnabled()
}

// Resolve returns the statistics of a team in a league
func (r *Resolver) Resolve(ctx context.Context, league, team string) *models.TeamStat {
	strength := r.catalog.Strength(team)
	fallback := r.synth.Synthesize(team, strength)
	if _, known := r.catalog.Team(team); known {
		fallback.Source = models.SourceStatic
	}

	if r.UpstreamEnabled() {
		stat, err := r.upstream.FetchTeamStats(ctx, league, team)
		if err == nil {
			overlaySynthetic(stat, fallback)
			err = stat.Validate()
		}
		if err == nil {
			r.resolved(league, team, stat.Source)
			return stat
		}
		r.log.LogUpstreamFailure(r.upstream.Name(), league, team, ErrorCode(err), err)
	}

	r.resolved(league, team, fallback.Source)
	return fallback
}

func (r *Resolver) resolved(league, team string, source models.StatSource) {
	metrics.RecordStatSource(string(source))
	r.log.LogStatResolved(league, team, string(source))
}

// overlaySynthetic fills the figures standings do not carry
func overlaySynthetic(stat, synthetic *models.TeamStat) {
	stat.Corners = synthetic.Corners
	stat.YellowCards = synthetic.YellowCards
	stat.RedCards = synthetic.RedCards
	if stat.Strength == nil {
		stat.Strength = synthetic.Strength
	}
	if stat.Name == "" {
		stat.Name = synthetic.Name
	}
}
