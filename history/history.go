// Package history records how far each source was watched.
package history

import (
	"strings"
	"sync"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/playdeck/playdeck/filesystem"
	"github.com/playdeck/playdeck/util"
	"github.com/playdeck/playdeck/where"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

var (
	mu     sync.Mutex
	cacher = gache.New[map[string]*Entry](
		&gache.Options{
			Path:       where.History(),
			FileSystem: &filesystem.GacheFs{},
		},
	)
)

// now is replaced in tests.
var now = time.Now

func get() (map[string]*Entry, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Entry), nil
	}
	return cached, nil
}

// Get returns every recorded entry by key.
func Get() (map[string]*Entry, error) {
	mu.Lock()
	defer mu.Unlock()
	return get()
}

// Save records progress. The watched percentage never goes down and a completed
// entry stays completed, so re-watching the start of a movie keeps its record.
func Save(entry Entry) error {
	mu.Lock()
	defer mu.Unlock()

	saved, err := get()
	if err != nil {
		return err
	}

	if existing, ok := saved[entry.Key()]; ok {
		entry.Percentage = max(entry.Percentage, existing.Percentage)
		entry.Completed = entry.Completed || existing.Completed
		if entry.Poster == "" {
			entry.Poster = existing.Poster
		}
		if entry.Duration == 0 {
			entry.Duration = existing.Duration
		}
	}

	entry.Percentage = util.Clamp(entry.Percentage, 0, 100)
	entry.UpdatedAt = now()
	saved[entry.Key()] = &entry

	return cacher.Set(saved)
}

// List returns the entries, most recently updated first.
func List() ([]*Entry, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	entries := lo.Values(saved)
	slices.SortFunc(entries, func(a, b *Entry) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return entries, nil
}

// Filter keeps the entries whose title or id fuzzily matches query, best match first.
func Filter(entries []*Entry, query string) []*Entry {
	query = strings.TrimSpace(query)
	if query == "" {
		return entries
	}

	targets := lo.Map(entries, func(e *Entry, _ int) string {
		return e.label() + " " + e.ID
	})

	ranks := fuzzy.RankFindNormalizedFold(query, targets)
	slices.SortStableFunc(ranks, func(a, b fuzzy.Rank) int {
		return a.Distance - b.Distance
	})

	return lo.Map(ranks, func(r fuzzy.Rank, _ int) *Entry {
		return entries[r.OriginalIndex]
	})
}

// Remove deletes the entry.
func Remove(entry *Entry) error {
	mu.Lock()
	defer mu.Unlock()

	saved, err := get()
	if err != nil {
		return err
	}

	delete(saved, entry.Key())
	return cacher.Set(saved)
}

// Clear deletes every entry.
func Clear() error {
	mu.Lock()
	defer mu.Unlock()
	return cacher.Set(make(map[string]*Entry))
}
