// Package service contains color session workflows
package service

import (
	"context"
	"strings"

	"tsdash/internal/core/palette"
	"tsdash/internal/modkit/repokit"
	perr "tsdash/internal/platform/errors"
	"tsdash/internal/services/api/sessions/domain"
	"tsdash/internal/services/api/sessions/repo"

	"github.com/google/uuid"
)

// Service defines the sessions service contract
type Service interface {
	domain.ServicePort
	domain.Port
}

// Svc implements the sessions service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	newID  func() uuid.UUID
}

// New constructs a sessions service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("sessions.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("sessions.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, newID: uuid.New}
}

// Create starts a session with an empty lookup
func (s *Svc) Create(ctx context.Context) (domain.Session, error) {
	row, err := s.Repo.Create(ctx, s.newID())
	if err != nil {
		return domain.Session{}, err
	}
	return toDomain(row)
}

// Colors returns the stored lookup blob
func (s *Svc) Colors(ctx context.Context, id string) (domain.Session, error) {
	uid, err := parseID(id)
	if err != nil {
		return domain.Session{}, err
	}
	row, err := s.Repo.Get(ctx, uid)
	if err != nil {
		return domain.Session{}, err
	}
	return toDomain(row)
}

// PutColors validates blob and replaces the stored lookup
func (s *Svc) PutColors(ctx context.Context, id, blob string) (domain.Session, error) {
	uid, err := parseID(id)
	if err != nil {
		return domain.Session{}, err
	}
	lk, err := palette.UnmarshalLookup([]byte(blob))
	if err != nil {
		return domain.Session{}, err
	}
	return s.put(ctx, s.Repo, uid, lk)
}

// ResetColors empties the lookup; the next render starts the palette over
func (s *Svc) ResetColors(ctx context.Context, id string) (domain.Session, error) {
	uid, err := parseID(id)
	if err != nil {
		return domain.Session{}, err
	}
	return s.put(ctx, s.Repo, uid, palette.Lookup{})
}

// Load returns the decoded lookup
func (s *Svc) Load(ctx context.Context, id string) (palette.Lookup, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	row, err := s.Repo.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	return palette.UnmarshalLookup(row.Lookup)
}

// Update runs fn against the locked lookup and stores its result in the same tx
func (s *Svc) Update(ctx context.Context, id string, fn func(palette.Lookup) (palette.Lookup, error)) (palette.Lookup, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var out palette.Lookup
	err = repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		r := repokit.MustBind(s.binder, q)
		row, err := r.GetForUpdate(ctx, uid)
		if err != nil {
			return err
		}
		prior, err := palette.UnmarshalLookup(row.Lookup)
		if err != nil {
			return err
		}
		next, err := fn(prior)
		if err != nil {
			return err
		}
		if _, err := s.put(ctx, r, uid, next); err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Svc) put(ctx context.Context, r repo.Repo, id uuid.UUID, lk palette.Lookup) (domain.Session, error) {
	blob, err := palette.MarshalLookup(lk)
	if err != nil {
		return domain.Session{}, perr.Wrap(err, perr.ErrorCodeUnknown, "encode color lookup")
	}
	row, err := r.Put(ctx, id, blob)
	if err != nil {
		return domain.Session{}, err
	}
	return toDomain(row)
}

func parseID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return uuid.Nil, perr.WithField(perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "session id %q is not a uuid", id), "session_id")
	}
	return uid, nil
}

// toDomain canonicalizes the jsonb text so the blob is byte stable
func toDomain(r repo.Row) (domain.Session, error) {
	lk, err := palette.UnmarshalLookup(r.Lookup)
	if err != nil {
		return domain.Session{}, err
	}
	blob, err := palette.MarshalLookup(lk)
	if err != nil {
		return domain.Session{}, perr.Wrap(err, perr.ErrorCodeUnknown, "encode color lookup")
	}
	return domain.Session{ID: r.ID.String(), Colors: string(blob), UpdatedAt: r.UpdatedAt}, nil
}
