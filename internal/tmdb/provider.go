// provider.go — the catalog Provider abstraction consumed by the discover
// handlers. Production uses the TMDB-backed provider with Redis caching and
// a local-catalog fallback; tests use a fake.
package tmdb

import (
	"context"
	"log"
	"sort"
	"strings"

	"github.com/blackgoldstudios/animax/internal/content"
	"github.com/blackgoldstudios/animax/internal/metrics"
)

// Provider supplies the catalog lists and lookups the discover layer needs.
// Implementations return unfiltered items; age eligibility is applied by
// each HTTP handler.
type Provider interface {
	Movies(ctx context.Context) ([]content.Item, error)
	Series(ctx context.Context) ([]content.Item, error)
	Animes(ctx context.Context) ([]content.Item, error)
	SearchMovies(ctx context.Context, query string) ([]content.Item, error)
	SearchSeries(ctx context.Context, query string) ([]content.Item, error)
	ItemByID(ctx context.Context, id string) (content.Item, bool, error)
}

// listLimit matches the original catalog page size for popular lists.
const listLimit = 60

const searchLimit = 20

// ── local provider ────────────────────────────────────────────────────────────

// LocalProvider serves the built-in seed catalog. It is the fallback when
// TMDB is unconfigured or unreachable, and the default in dev environments.
type LocalProvider struct{}

func (LocalProvider) Movies(ctx context.Context) ([]content.Item, error) {
	return append([]content.Item(nil), content.LocalMovies...), nil
}

func (LocalProvider) Series(ctx context.Context) ([]content.Item, error) {
	return append([]content.Item(nil), content.LocalSeries...), nil
}

func (LocalProvider) Animes(ctx context.Context) ([]content.Item, error) {
	return append([]content.Item(nil), content.LocalAnimes...), nil
}

func (p LocalProvider) SearchMovies(ctx context.Context, query string) ([]content.Item, error) {
	return localSearch(content.LocalMovies, query), nil
}

func (p LocalProvider) SearchSeries(ctx context.Context, query string) ([]content.Item, error) {
	series := append([]content.Item(nil), content.LocalSeries...)
	series = append(series, content.LocalAnimes...)
	return localSearch(series, query), nil
}

func (LocalProvider) ItemByID(ctx context.Context, id string) (content.Item, bool, error) {
	for _, it := range content.LocalAll() {
		if it.ID == id {
			return it, true, nil
		}
	}
	return content.Item{}, false, nil
}

// localSearch does a case-insensitive title match, rating-sorted.
func localSearch(items []content.Item, query string) []content.Item {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []content.Item
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Title), q) {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	return out
}

// ── TMDB provider with cache + fallback ───────────────────────────────────────

// CatalogProvider fetches from TMDB through a Redis cache and falls back to
// the local catalog when TMDB is unconfigured or a fetch fails.
type CatalogProvider struct {
	client *Client
	cache  *Cache
	local  LocalProvider
}

// NewProvider wires the production provider. client may be nil (TMDB
// unconfigured) and cache may be nil (no Redis); both degrade to local data.
func NewProvider(client *Client, cache *Cache) *CatalogProvider {
	return &CatalogProvider{client: client, cache: cache}
}

func (p *CatalogProvider) Movies(ctx context.Context) ([]content.Item, error) {
	return p.list(ctx, "movies", p.local.Movies, func(ctx context.Context) ([]content.Item, error) {
		return p.client.PopularMovies(ctx, listLimit)
	})
}

func (p *CatalogProvider) Series(ctx context.Context) ([]content.Item, error) {
	return p.list(ctx, "series", p.local.Series, func(ctx context.Context) ([]content.Item, error) {
		return p.client.PopularSeries(ctx, listLimit)
	})
}

func (p *CatalogProvider) Animes(ctx context.Context) ([]content.Item, error) {
	return p.list(ctx, "animes", p.local.Animes, func(ctx context.Context) ([]content.Item, error) {
		return p.client.PopularAnimes(ctx, listLimit)
	})
}

func (p *CatalogProvider) SearchMovies(ctx context.Context, query string) ([]content.Item, error) {
	if !p.client.Configured() {
		return p.local.SearchMovies(ctx, query)
	}
	items, err := p.client.SearchMovies(ctx, query, searchLimit)
	if err != nil {
		metrics.CatalogFallbacks.WithLabelValues("search_error").Inc()
		log.Printf("[catalog] tmdb movie search failed, using local: %v", err)
		return p.local.SearchMovies(ctx, query)
	}
	return items, nil
}

func (p *CatalogProvider) SearchSeries(ctx context.Context, query string) ([]content.Item, error) {
	if !p.client.Configured() {
		return p.local.SearchSeries(ctx, query)
	}
	items, err := p.client.SearchSeries(ctx, query, searchLimit)
	if err != nil {
		metrics.CatalogFallbacks.WithLabelValues("search_error").Inc()
		log.Printf("[catalog] tmdb series search failed, using local: %v", err)
		return p.local.SearchSeries(ctx, query)
	}
	return items, nil
}

func (p *CatalogProvider) ItemByID(ctx context.Context, id string) (content.Item, bool, error) {
	// Local IDs always resolve locally; TMDB IDs need the API.
	if it, ok, _ := p.local.ItemByID(ctx, id); ok {
		return it, true, nil
	}
	if !p.client.Configured() {
		return content.Item{}, false, nil
	}
	return p.client.ItemByID(ctx, id)
}

// list is the shared cache-then-fetch-then-fallback path for popular lists.
func (p *CatalogProvider) list(ctx context.Context, key string, localFn, fetchFn func(context.Context) ([]content.Item, error)) ([]content.Item, error) {
	if !p.client.Configured() {
		metrics.CatalogFallbacks.WithLabelValues("unconfigured").Inc()
		return localFn(ctx)
	}

	if items, ok := p.cache.GetItems(ctx, key); ok {
		return items, nil
	}

	items, err := fetchFn(ctx)
	if err != nil {
		metrics.CatalogFallbacks.WithLabelValues("fetch_error").Inc()
		log.Printf("[catalog] tmdb %s fetch failed, using local: %v", key, err)
		return localFn(ctx)
	}
	p.cache.SetItems(ctx, key, items)
	return items, nil
}
