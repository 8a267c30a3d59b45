package catalog_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solestyle/shop-backend/internal/modules/catalog"
	"github.com/solestyle/shop-backend/internal/pkg/apierror"
)

type fakeCatalogRepo struct {
	listCalls int
	result    *catalog.ListResult
	product   *catalog.Product
}

func (r *fakeCatalogRepo) ListProducts(context.Context, catalog.Collection, catalog.ListQuery) (*catalog.ListResult, error) {
	r.listCalls++
	return r.result, nil
}

func (r *fakeCatalogRepo) GetProduct(context.Context, catalog.Collection, string) (*catalog.Product, error) {
	if r.product == nil {
		return nil, errors.New("no rows")
	}
	return r.product, nil
}

func (r *fakeCatalogRepo) ListBlogPosts(context.Context) ([]*catalog.BlogPost, error) {
	return []*catalog.BlogPost{}, nil
}

type memoryCache struct {
	mu    sync.Mutex
	store map[string]string
}

func newMemoryCache() *memoryCache { return &memoryCache{store: map[string]string{}} }

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		c.store[key] = string(v)
	case string:
		c.store[key] = v
	}
	return nil
}

func (c *memoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store[key], nil
}

func (c *memoryCache) GenerateKey(operation, key string) string {
	return "test:" + operation + ":" + key
}

func sampleResult() *catalog.ListResult {
	return &catalog.ListResult{
		TotalDocuments: 1,
		Result: []*catalog.Product{{
			ID:         uuid.New(),
			Collection: catalog.CollectionShoes,
			Name:       "runner",
			Price:      79.99,
		}},
	}
}

func TestListProductsRejectsUnknownCollection(t *testing.T) {
	svc := catalog.NewService(&fakeCatalogRepo{result: sampleResult()}, nil)
	_, err := svc.ListProducts(context.Background(), "hats", catalog.ListQuery{})
	assert.True(t, apierror.IsCode(err, apierror.ErrBadRequest))
}

func TestListProductsWithoutCache(t *testing.T) {
	repo := &fakeCatalogRepo{result: sampleResult()}
	svc := catalog.NewService(repo, nil)

	res, err := svc.ListProducts(context.Background(), "shoes", catalog.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalDocuments)
	assert.Equal(t, 1, repo.listCalls)
}

func TestListProductsReadsThroughCache(t *testing.T) {
	repo := &fakeCatalogRepo{result: sampleResult()}
	svc := catalog.NewService(repo, newMemoryCache())

	q := catalog.ListQuery{Type: "sneaker", Page: 1, Limit: 10}
	first, err := svc.ListProducts(context.Background(), "shoes", q)
	require.NoError(t, err)
	second, err := svc.ListProducts(context.Background(), "shoes", q)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.listCalls, "second listing must hit the cache")
	assert.Equal(t, first.TotalDocuments, second.TotalDocuments)
	require.Len(t, second.Result, 1)
	assert.Equal(t, "runner", second.Result[0].Name)
}

func TestListProductsCacheKeyVariesWithQuery(t *testing.T) {
	repo := &fakeCatalogRepo{result: sampleResult()}
	svc := catalog.NewService(repo, newMemoryCache())

	_, err := svc.ListProducts(context.Background(), "shoes", catalog.ListQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	_, err = svc.ListProducts(context.Background(), "shoes", catalog.ListQuery{Page: 2, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, 2, repo.listCalls, "different pages must not share a cache entry")
}

func TestGetProductNotFound(t *testing.T) {
	svc := catalog.NewService(&fakeCatalogRepo{}, nil)
	_, err := svc.GetProduct(context.Background(), "bags", uuid.NewString())
	assert.True(t, apierror.IsCode(err, apierror.ErrNotFound))
}
