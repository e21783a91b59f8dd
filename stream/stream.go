// Package stream talks to the streaming API: catalogue lookups and authorized streaming URLs.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/playdeck/playdeck/auth"
	"github.com/playdeck/playdeck/constant"
	"github.com/playdeck/playdeck/log"
	"github.com/playdeck/playdeck/network"
	"github.com/playdeck/playdeck/playback"
)

var (
	// ErrUnauthorized means the API refused the token, or there is none.
	ErrUnauthorized = errors.New("not entitled to stream")

	// ErrNoBaseURL is returned when api.base_url is not configured.
	ErrNoBaseURL = errors.New("api.base_url is not set")
)

// APIError is a non-successful API response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %s", http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %s (%d)", e.Message, e.Status)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && (e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
}

// Resolver turns movie ids into playable sources.
type Resolver struct {
	BaseURL string
	Client  *http.Client

	// Token supplies the bearer token. Defaults to the keyring.
	Token func() (string, error)

	// RequireToken refuses catalogue lookups without a token too.
	RequireToken bool
}

// NewResolver returns a resolver for the API at baseURL using the shared client and the stored token.
func NewResolver(baseURL string) *Resolver {
	return &Resolver{
		BaseURL: baseURL,
		Client:  network.Client,
		Token:   auth.GetToken,
	}
}

func (r *Resolver) endpoint(parts ...string) (string, error) {
	if strings.TrimSpace(r.BaseURL) == "" {
		return "", ErrNoBaseURL
	}

	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return url.JoinPath(r.BaseURL, escaped...)
}

func (r *Resolver) token(required bool) (string, error) {
	if r.Token == nil {
		if required {
			return "", ErrUnauthorized
		}
		return "", nil
	}

	token, err := r.Token()
	if err != nil {
		if required {
			return "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
		}
		return "", nil
	}
	return token, nil
}

func (r *Resolver) get(ctx context.Context, endpoint, token string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", constant.UserAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := r.Client
	if client == nil {
		client = network.Client
	}

	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return err
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		var payload struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &payload)
		return &APIError{Status: res.StatusCode, Message: payload.Message}
	}

	return json.Unmarshal(body, out)
}

// Movie fetches the catalogue entry, from the cache when fresh.
func (r *Resolver) Movie(ctx context.Context, id string) (*Movie, error) {
	if cached, ok := movies.Get(id).Get(); ok {
		return cached, nil
	}

	endpoint, err := r.endpoint("movies", id)
	if err != nil {
		return nil, err
	}

	token, err := r.token(r.RequireToken)
	if err != nil {
		return nil, err
	}

	var movie Movie
	if err := r.get(ctx, endpoint, token, &movie); err != nil {
		return nil, fmt.Errorf("movie %s: %w", id, err)
	}
	if movie.ID == "" {
		movie.ID = id
	}

	if err := movies.Set(&movie); err != nil {
		log.Warnf("cache movie %s: %v", id, err)
	}
	return &movie, nil
}

// StreamingURL asks the API for the movie's streaming URL. A token is always required.
func (r *Resolver) StreamingURL(ctx context.Context, id string) (string, error) {
	endpoint, err := r.endpoint("movies", id, "watch")
	if err != nil {
		return "", err
	}

	token, err := r.token(true)
	if err != nil {
		return "", err
	}

	var payload struct {
		StreamingURL string `json:"streamingUrl"`
	}
	if err := r.get(ctx, endpoint, token, &payload); err != nil {
		return "", fmt.Errorf("streaming url for %s: %w", id, err)
	}
	if payload.StreamingURL == "" {
		return "", fmt.Errorf("streaming url for %s: empty response", id)
	}

	return payload.StreamingURL, nil
}

// Resolve builds the playback source of a movie. Failing catalogue lookups only cost the title.
func (r *Resolver) Resolve(ctx context.Context, id string) (playback.Source, error) {
	streamingURL, err := r.StreamingURL(ctx, id)
	if err != nil {
		return playback.Source{}, err
	}

	src := playback.Source{URL: streamingURL, MovieID: id}

	movie, err := r.Movie(ctx, id)
	if err != nil {
		log.Warnf("movie %s: %v", id, err)
		return src, nil
	}

	src.Title = movie.Title
	src.Poster = movie.Poster
	return src, nil
}
