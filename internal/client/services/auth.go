// Package services contains the terminal client's application services:
// session handling on top of the REST client and the local metadata store.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/growflow/internal/client/client"
	"github.com/dmitrijs2005/growflow/internal/client/models"
	"github.com/dmitrijs2005/growflow/internal/common"
)

// AuthService manages the user's session.
//
// Contract:
//   - Register / Login: authenticate against the server and persist the token.
//   - Restore: load a previously saved session, reporting the email it belongs to.
//   - Logout: forget the session locally (tokens are stateless on the server).
//   - WhoAmI: fetch the current account; a rejected token ends the session.
type AuthService interface {
	Register(ctx context.Context, username, email string, password []byte) error
	Login(ctx context.Context, email string, password []byte) error
	Restore(ctx context.Context) (string, bool, error)
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) (*models.User, error)
}

type authService struct {
	session
}

func NewAuthService(c client.Client, db *sql.DB) AuthService {
	return &authService{session{client: c, db: db}}
}

func (a *authService) Register(ctx context.Context, username, email string, password []byte) error {
	email = common.NormalizeEmail(email)

	token, err := a.client.Register(ctx, strings.TrimSpace(username), email, string(password))
	if err != nil {
		return err
	}
	if err := a.save(ctx, email, token); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	email = common.NormalizeEmail(email)

	token, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return err
	}
	if err := a.save(ctx, email, token); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

func (a *authService) Restore(ctx context.Context) (string, bool, error) {
	return a.restore(ctx)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.clear(ctx)
}

func (a *authService) WhoAmI(ctx context.Context) (*models.User, error) {
	u, err := a.client.CurrentUser(ctx)
	if err != nil {
		return nil, a.check(ctx, err)
	}
	return u, nil
}
