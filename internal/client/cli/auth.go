package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/moviedeck/internal/client/models"
	"github.com/dmitrijs2005/moviedeck/internal/common"
)

// getSimpleText, getPassword and getMultiline are swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// fail reports err to the user and hands it back.
func (a *App) fail(err error) error {
	a.printf("Error: %s\n", messageFor(err))
	return err
}

func (a *App) requireLogin(op string) error {
	if a.isLoggedIn() {
		return nil
	}
	return a.fail(common.E(common.KindUnauthorized, op, nil))
}

func (a *App) welcome(id *models.Identity) {
	a.screens.reset()
	name := id.DisplayName
	if name == "" {
		name = id.Email
	}
	a.printf("Welcome, %s!\n", name)
}

// Register prompts for email, display name and password and creates an
// account. The password is checked locally before any request is sent.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter display name", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := checkCredentials(email, string(password)); err != nil {
		return a.fail(err)
	}

	id, err := run(ctx, a, a.screens.auth, func(ctx context.Context) (*models.Identity, error) {
		return a.auth.SignUp(ctx, email, string(password), name)
	})
	if err != nil {
		return err
	}
	a.welcome(id)
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := checkCredentials(email, string(password)); err != nil {
		return a.fail(err)
	}

	id, err := run(ctx, a, a.screens.auth, func(ctx context.Context) (*models.Identity, error) {
		return a.auth.SignIn(ctx, email, string(password))
	})
	if err != nil {
		return err
	}
	a.welcome(id)
	return nil
}

// Google signs in with an ID token issued by the federated provider.
func (a *App) Google(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Paste the ID token from the identity provider", a.out)
	if err != nil {
		return err
	}
	if token == "" {
		return a.fail(common.E(common.KindValidation, "google", errEmptyToken))
	}

	id, err := run(ctx, a, a.screens.auth, func(ctx context.Context) (*models.Identity, error) {
		return a.auth.SignInWithFederatedToken(ctx, token)
	})
	if err != nil {
		return err
	}
	a.welcome(id)
	return nil
}

// Reset asks the server to send a password reset token to an email.
func (a *App) Reset(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	if err := checkEmail(email); err != nil {
		return a.fail(err)
	}

	_, err = run(ctx, a, a.screens.account, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, a.auth.RequestPasswordReset(ctx, email)
	})
	if err != nil {
		return err
	}
	a.printf("A reset token has been sent to %s.\n", email)
	return nil
}

// ConfirmReset sets a new password using a token from Reset.
func (a *App) ConfirmReset(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Enter reset token", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if token == "" {
		return a.fail(common.E(common.KindValidation, "confirm-reset", errEmptyToken))
	}
	if err := checkPassword(string(password)); err != nil {
		return a.fail(err)
	}

	_, err = run(ctx, a, a.screens.account, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, a.auth.ConfirmPasswordReset(ctx, token, string(password))
	})
	if err != nil {
		return err
	}
	a.printf("Password changed, you can log in now.\n")
	return nil
}

// Logout forgets the local identity and revokes the session on the server
// when it can.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.printf("You are not logged in.\n")
		return nil
	}
	a.auth.SignOut(ctx)
	a.screens.reset()
	a.printf("Logged out.\n")
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	if err := a.requireLogin("profile"); err != nil {
		return err
	}

	p, err := run(ctx, a, a.screens.profile, a.auth.Profile)
	if err != nil {
		return err
	}

	lastLogin := "never"
	if p.LastLogin != nil {
		lastLogin = p.LastLogin.Local().Format(time.DateTime)
	}
	a.printf("Email:      %s\n", p.Identity.Email)
	a.printf("Name:       %s\n", p.Identity.DisplayName)
	a.printf("Favorites:  %d\n", p.FavoritesCount)
	a.printf("Last login: %s\n", lastLogin)
	return nil
}

// Rename changes the display name. An empty name is prompted for.
func (a *App) Rename(ctx context.Context, name string) error {
	if err := a.requireLogin("rename"); err != nil {
		return err
	}
	if name == "" {
		var err error
		if name, err = getSimpleText(a.reader, "Enter new display name", a.out); err != nil {
			return err
		}
	}
	if err := checkDisplayName(name); err != nil {
		return a.fail(err)
	}

	id, err := run(ctx, a, a.screens.auth, func(ctx context.Context) (*models.Identity, error) {
		return a.auth.Rename(ctx, name)
	})
	if err != nil {
		return err
	}
	a.printf("Display name set to %s.\n", id.DisplayName)
	return nil
}
