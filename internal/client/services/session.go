package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/growflow/internal/client/client"
	"github.com/dmitrijs2005/growflow/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/growflow/internal/dbx"
)

// session keeps the token in the API client and in the local store in step.
type session struct {
	client client.Client
	db     *sql.DB
}

func (s *session) repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (s *session) save(ctx context.Context, email, token string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := s.repo(tx)
		if err := r.Set(ctx, metadata.KeyEmail, []byte(email)); err != nil {
			return err
		}
		return r.Set(ctx, metadata.KeyToken, []byte(token))
	})
	if err != nil {
		return err
	}
	s.client.SetToken(token)
	return nil
}

// restore loads a saved session into the client. ok is false when there is none.
func (s *session) restore(ctx context.Context) (email string, ok bool, err error) {
	r := s.repo(s.db)

	token, err := r.Get(ctx, metadata.KeyToken)
	if err != nil {
		return "", false, err
	}
	if len(token) == 0 {
		return "", false, nil
	}

	e, err := r.Get(ctx, metadata.KeyEmail)
	if err != nil {
		return "", false, err
	}

	s.client.SetToken(string(token))
	return string(e), true, nil
}

func (s *session) clear(ctx context.Context) error {
	s.client.SetToken("")
	return s.repo(s.db).Clear(ctx)
}

// check drops the stored session when the server rejected the token.
func (s *session) check(ctx context.Context, err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		if cerr := s.clear(ctx); cerr != nil {
			return errors.Join(err, cerr)
		}
	}
	return err
}
