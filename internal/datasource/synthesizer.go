package datasource

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/yourusername/futurologia/internal/models"
)

// Synthesizer fabricates plausible team statistics from a strength rating.
// The random source is guarded by a mutex so one synthesizer can serve
// concurrent requests.
type Synthesizer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSynthesizer creates a synthesizer over the given random source. A nil
// source is seeded from the clock.
func NewSynthesizer(src rand.Source) *Synthesizer {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Synthesizer{rng: rand.New(src)}
}

// Intn returns a random int in [0, n)
func (s *Synthesizer) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// Synthesize builds a full TeamStat for a team of the given strength
func (s *Synthesizer) Synthesize(name string, strength float64) *models.TeamStat {
	strength = math.Max(0, math.Min(1, strength))
	weakness := 1 - strength

	s.mu.Lock()
	defer s.mu.Unlock()

	return &models.TeamStat{
		Name:        name,
		Position:    maxInt(1, floor(weakness*18)+s.rng.Intn(3)),
		HomeWins:    floor(strength*12) + s.rng.Intn(4),
		AwayWins:    floor(strength*8) + s.rng.Intn(3),
		HomeGoals:   floor(strength*25) + s.rng.Intn(8) + 12,
		AwayGoals:   floor(strength*18) + s.rng.Intn(6) + 8,
		Corners:     floor(strength*60) + s.rng.Intn(20) + 30,
		YellowCards: maxInt(5, floor(weakness*30)+s.rng.Intn(10)),
		RedCards:    maxInt(0, floor(weakness*8)+s.rng.Intn(3)),
		Strength:    &strength,
		Source:      models.SourceSynthetic,
	}
}

func floor(v float64) int {
	return int(math.Floor(v))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
