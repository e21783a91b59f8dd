package stream

import (
	"sync"
	"time"

	"github.com/metafates/gache"
	"github.com/playdeck/playdeck/filesystem"
	"github.com/playdeck/playdeck/where"
	"github.com/samber/mo"
)

// Movie is the catalogue entry of a streamable movie.
type Movie struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Poster      string `json:"poster,omitempty"`
	Year        int    `json:"year,omitempty"`
}

// movieCache keeps catalogue entries for a day. Streaming URLs are never cached.
type movieCache struct {
	internal *gache.Cache[map[string]*Movie]
	mu       sync.Mutex
}

var movies = &movieCache{
	internal: gache.New[map[string]*Movie](
		&gache.Options{
			Path:       where.Movies(),
			Lifetime:   24 * time.Hour,
			FileSystem: &filesystem.GacheFs{},
		},
	),
}

func (c *movieCache) Get(id string) mo.Option[*Movie] {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[*Movie]()
	}

	if movie, ok := data[id]; ok {
		return mo.Some(movie)
	}
	return mo.None[*Movie]()
}

func (c *movieCache) Set(movie *Movie) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}
	if expired || data == nil {
		data = make(map[string]*Movie)
	}

	data[movie.ID] = movie
	return c.internal.Set(data)
}
