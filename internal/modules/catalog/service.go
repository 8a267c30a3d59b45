package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/solestyle/shop-backend/internal/pkg/apierror"
	"github.com/solestyle/shop-backend/internal/pkg/cache"
)

// listCacheTTL keeps listing pages hot without letting price edits go stale
// for long.
const listCacheTTL = time.Minute

// Service defines the catalog read operations.
type Service interface {
	ListProducts(ctx context.Context, collection string, q ListQuery) (*ListResult, error)
	GetProduct(ctx context.Context, collection, id string) (*Product, error)
	ListBlogPosts(ctx context.Context) ([]*BlogPost, error)
}

type service struct {
	repo  Repository
	cache cache.Cache
}

// NewService creates a new catalog service. The cache may be nil, in which
// case every listing hits the repository.
func NewService(repo Repository, c cache.Cache) Service {
	return &service{repo: repo, cache: c}
}

func (s *service) ListProducts(ctx context.Context, collection string, q ListQuery) (*ListResult, error) {
	col, err := parseCollection(collection)
	if err != nil {
		return nil, err
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	if q.SortOrder != "asc" {
		q.SortOrder = "desc"
	}

	key := s.listCacheKey(col, q)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
			var res ListResult
			if err := json.Unmarshal([]byte(cached), &res); err == nil {
				return &res, nil
			}
		}
	}

	res, err := s.repo.ListProducts(ctx, col, q)
	if err != nil {
		return nil, apierror.New(apierror.ErrInternalServer, "list products", err.Error())
	}

	if s.cache != nil {
		if payload, err := json.Marshal(res); err == nil {
			if err := s.cache.Set(ctx, key, payload, listCacheTTL); err != nil {
				logrus.WithError(err).Warn("catalog cache write failed")
			}
		}
	}
	return res, nil
}

func (s *service) GetProduct(ctx context.Context, collection, id string) (*Product, error) {
	col, err := parseCollection(collection)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.GetProduct(ctx, col, id)
	if err != nil {
		return nil, apierror.New(apierror.ErrNotFound, "product not found", nil)
	}
	return p, nil
}

func (s *service) ListBlogPosts(ctx context.Context) ([]*BlogPost, error) {
	return s.repo.ListBlogPosts(ctx)
}

func (s *service) listCacheKey(col Collection, q ListQuery) string {
	min, max := "", ""
	if q.MinPrice != nil {
		min = fmt.Sprintf("%.2f", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		max = fmt.Sprintf("%.2f", *q.MaxPrice)
	}
	shape := fmt.Sprintf("%s:%s:%s:%s:%s:%d:%d", col, q.Type, min, max, q.SortOrder, q.Page, q.Limit)
	if s.cache == nil {
		return shape
	}
	return s.cache.GenerateKey("catalog", shape)
}

func parseCollection(collection string) (Collection, error) {
	for _, c := range Collections {
		if string(c) == collection {
			return c, nil
		}
	}
	return "", apierror.New(apierror.ErrBadRequest, "unknown collection: "+collection, nil)
}
