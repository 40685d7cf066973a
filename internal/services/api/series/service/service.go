// Package service contains series catalog workflows
package service

import (
	"context"
	"strings"

	"tsdash/internal/modkit/repokit"
	"tsdash/internal/platform/cache"
	perr "tsdash/internal/platform/errors"
	str "tsdash/internal/platform/strings"
	"tsdash/internal/services/api/series/domain"
	"tsdash/internal/services/api/series/repo"
)

// Service defines the series service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the series service
type Svc struct {
	Repo  repo.Repo
	cache *cache.Cache[domain.Series]
}

// New constructs a series service; c may be nil for no caching
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], c *cache.Cache[domain.Series]) *Svc {
	if db == nil {
		panic("series.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("series.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), cache: c}
}

// List returns numeric series sorted by name then id
func (s *Svc) List(ctx context.Context, limit int) (domain.ListResult, error) {
	if limit <= 0 {
		limit = domain.DefaultLimit
	}
	limit = min(limit, domain.MaxLimit)

	rows, err := s.Repo.ListNumeric(ctx, limit)
	if err != nil {
		return domain.ListResult{}, err
	}
	out := domain.ListResult{
		Items:   make([]domain.Series, 0, len(rows)),
		Options: make([]domain.Option, 0, len(rows)),
	}
	for _, r := range rows {
		it := toDomain(r)
		out.Items = append(out.Items, it)
		out.Options = append(out.Options, domain.Option{Label: it.Name, Value: it.ExternalID})
		s.cache.Set(it.ExternalID, it)
	}
	return out, nil
}

// Get returns one series or NOT_FOUND
func (s *Svc) Get(ctx context.Context, externalID string) (domain.Series, error) {
	got, err := s.RetrieveMultiple(ctx, []string{externalID})
	if err != nil {
		return domain.Series{}, err
	}
	return got[0], nil
}

// RetrieveMultiple resolves ids in input order; any unknown id is NOT_FOUND
// repeated ids are returned repeatedly
func (s *Svc) RetrieveMultiple(ctx context.Context, ids []string) ([]domain.Series, error) {
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return nil, perr.WithField(perr.InvalidArgf("series id must not be blank"), "external_id")
		}
	}

	found := make(map[string]domain.Series, len(ids))
	var missing []string
	for _, id := range str.Unique(ids) {
		if v, ok := s.cache.Get(id); ok {
			found[id] = v
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) > 0 {
		rows, err := s.Repo.ByIDs(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			it := toDomain(r)
			found[it.ExternalID] = it
			s.cache.Set(it.ExternalID, it)
		}
	}

	out := make([]domain.Series, 0, len(ids))
	var unknown []string
	for _, id := range ids {
		v, ok := found[id]
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		out = append(out, v)
	}
	if len(unknown) > 0 {
		return nil, perr.WithField(perr.NotFoundf("unknown series: %s", strings.Join(str.Unique(unknown), ", ")), "external_id")
	}
	return out, nil
}

func toDomain(r repo.Row) domain.Series {
	return domain.Series{
		ExternalID:  r.ExternalID,
		Name:        r.Name,
		Unit:        r.Unit,
		Description: r.Description,
		IsString:    r.IsString,
	}
}
