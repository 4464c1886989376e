package cli

import (
	"context"
	"fmt"
	"strings"

	"studypilot/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials, authenticates against the backend, and on
// success stores the session. The REPL reacts to the state change (the
// prompt switches to the signed-in command set); the store itself performs
// no navigation.
//
// The password byte slice is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	result, err := a.api.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintln(a.out, errorStyle.Render(err.Error()))
		return err
	}

	if err := a.session.Login(ctx, result.AccessToken, result.User); err != nil {
		fmt.Fprintln(a.out, errorStyle.Render(err.Error()))
		return err
	}

	fmt.Fprintln(a.out, successStyle.Render("Welcome back, "+firstName(result.User.Name)+"!"))
	return nil
}

// Signup prompts for the new account's details and, like the original
// signup flow, authenticates immediately on success.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", a.out)
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
	defer common.WipeByteArray(password)

	result, err := a.api.Signup(ctx, name, email, password)
	if err != nil {
		fmt.Fprintln(a.out, errorStyle.Render(err.Error()))
		return err
	}

	if err := a.session.Login(ctx, result.AccessToken, result.User); err != nil {
		fmt.Fprintln(a.out, errorStyle.Render(err.Error()))
		return err
	}

	fmt.Fprintln(a.out, successStyle.Render("Account created. Welcome, "+firstName(result.User.Name)+"!"))
	return nil
}

// Logout clears the durable credential pair and the in-memory session.
// Safe to call when not signed in.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, errorStyle.Render(err.Error()))
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

func firstName(full string) string {
	if i := strings.IndexByte(full, ' '); i > 0 {
		return full[:i]
	}
	return full
}
