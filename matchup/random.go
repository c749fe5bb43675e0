package matchup

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/Dosada05/matchup-generator/models"
)

// Picker draws teams uniformly at random. It is safe for concurrent use.
type Picker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewPicker(rng *rand.Rand) *Picker {
	return &Picker{rng: rng}
}

// NewSeededPicker seeds a PCG source from the current time.
func NewSeededPicker() *Picker {
	seed := uint64(time.Now().UnixNano())
	return NewPicker(rand.New(rand.NewPCG(seed, seed>>1|1)))
}

func (p *Picker) intN(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.IntN(n)
}

// PickOne returns a uniformly chosen candidate whose id differs from
// excludeID. An empty excludeID excludes nothing. ok is false when no
// candidate remains.
func (p *Picker) PickOne(candidates []models.Team, excludeID string) (models.Team, bool) {
	pool := candidates
	if excludeID != "" {
		pool = make([]models.Team, 0, len(candidates))
		for _, t := range candidates {
			if t.ID != excludeID {
				pool = append(pool, t)
			}
		}
	}
	if len(pool) == 0 {
		return models.Team{}, false
	}
	return pool[p.intN(len(pool))], true
}

// PickPair picks A uniformly from candidates and B uniformly from the rest,
// so every ordered pair of distinct candidates is equally likely.
func (p *Picker) PickPair(candidates []models.Team) (models.Team, models.Team, bool) {
	if len(candidates) < 2 {
		return models.Team{}, models.Team{}, false
	}
	a := candidates[p.intN(len(candidates))]
	b, ok := p.PickOne(candidates, a.ID)
	if !ok {
		return models.Team{}, models.Team{}, false
	}
	return a, b, true
}
