package cli

import (
	"context"
	"errors"
	"fmt"
)

// getSimpleText and getPassword are swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errNotLoggedIn = errors.New("please log in first")

func (a *App) requireLogin() error {
	if !a.isLoggedIn() {
		return a.report(errNotLoggedIn)
	}
	return nil
}

// SignUp creates an account. It does not sign in.
func (a *App) SignUp(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	acc, err := a.client.SignUp(ctx, username, email, password)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Account %s created, you can log in now\n", acc.Username)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	acc, err := a.client.SignIn(ctx, email, password)
	if err != nil {
		return a.report(err)
	}
	a.account = acc
	fmt.Fprintf(a.out, "Signed in as %s\n", acc.Username)
	return nil
}

// Logout revokes the session on the server. The local session is dropped
// even when the server call fails.
func (a *App) Logout(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	err := a.client.SignOut(ctx)
	a.account = nil
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}
