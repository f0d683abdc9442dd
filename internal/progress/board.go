// Package progress keeps the best result per challenge for the running
// process. Nothing is written to disk.
package progress

import (
	"sort"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/helixdojo/internal/log"
	"github.com/zjrosen/helixdojo/internal/scoring"
)

// DefaultCleanupInterval is how often expired entries are purged.
const DefaultCleanupInterval = 10 * time.Minute

// Entry is the best result recorded for one challenge.
type Entry struct {
	ChallengeID string
	Best        scoring.Result
	Score       int
	Stars       int
	// Completions counts every solve, not only improvements.
	Completions int
	UpdatedAt   time.Time
}

// Board is an in-memory best-result board backed by go-cache. A ttl of
// zero keeps entries for the life of the process.
type Board struct {
	mu    sync.Mutex
	cache *gocache.Cache
	ttl   time.Duration
	now   func() time.Time
}

// NewBoard creates an empty board.
func NewBoard(ttl time.Duration) *Board {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &Board{
		cache: gocache.New(ttl, DefaultCleanupInterval),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Record stores r for challengeID when it beats the current best: a
// higher score wins, then fewer keystrokes. It reports whether r became
// the new best.
func (b *Board) Record(challengeID string, r scoring.Result) bool {
	if !r.Completed {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, found := b.get(challengeID)
	entry.ChallengeID = challengeID
	entry.Completions++
	entry.UpdatedAt = b.now()

	improved := !found || better(r, entry.Best)
	if improved {
		entry.Best = r
		entry.Score = r.Score()
		entry.Stars = r.Stars()
	}
	b.cache.Set(challengeID, entry, b.ttl)

	log.Debug(log.CatProgress, "Recorded result",
		"challenge", challengeID, "score", r.Score(), "best", entry.Score, "improved", improved)
	return improved
}

func better(r, best scoring.Result) bool {
	if s, bs := r.Score(), best.Score(); s != bs {
		return s > bs
	}
	return r.Keystrokes < best.Keystrokes
}

// Best returns the entry for challengeID.
func (b *Board) Best(challengeID string) (Entry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.get(challengeID)
}

func (b *Board) get(challengeID string) (Entry, bool) {
	value, found := b.cache.Get(challengeID)
	if !found {
		return Entry{}, false
	}
	entry, ok := value.(Entry)
	if !ok {
		log.Error(log.CatProgress, "Unexpected board value", "challenge", challengeID)
		return Entry{}, false
	}
	return entry, true
}

// Entries returns every entry sorted by challenge id.
func (b *Board) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	items := b.cache.Items()
	out := make([]Entry, 0, len(items))
	for _, item := range items {
		if entry, ok := item.Object.(Entry); ok {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChallengeID < out[j].ChallengeID })
	return out
}

// TotalStars sums the best star rating of every solved challenge.
func (b *Board) TotalStars() int {
	total := 0
	for _, e := range b.Entries() {
		total += e.Stars
	}
	return total
}

// Len returns the number of solved challenges.
func (b *Board) Len() int {
	return b.cache.ItemCount()
}

// Clear removes every entry.
func (b *Board) Clear() {
	b.cache.Flush()
}
