package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/growflow/internal/common"
)

// Indirections over the interactive input helpers, swapped in tests.
var (
	getSimpleText   = GetSimpleText
	getRequiredText = GetRequiredText
	getPassword     = GetPassword
)

func (a *App) Register(ctx context.Context) error {
	username, err := getRequiredText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getRequiredText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, username, email, password); err != nil {
		return a.report(err)
	}

	a.ok()
	a.email = common.NormalizeEmail(email)
	fmt.Fprintf(a.out, "Welcome, %s! Your garden is ready.\n", username)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getRequiredText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, email, password); err != nil {
		return a.report(err)
	}

	a.ok()
	a.email = common.NormalizeEmail(email)
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// Logout forgets the local session. Tokens are stateless, so the server is
// not contacted.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}
	a.email = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.authService.WhoAmI(ctx)
	if err != nil {
		return a.report(err)
	}
	a.ok()
	fmt.Fprintf(a.out, "%s <%s>, gardening since %s\n", u.UserName, u.Email, u.CreatedAt.Format("2006-01-02"))
	return nil
}
