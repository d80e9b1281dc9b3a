// Package services contains the application facades of the MovieDeck CLI.
// They sit between the presentation layer and the transport client and
// keep the session holder in step with the identity provider.
package services

import (
	"context"

	"github.com/dmitrijs2005/moviedeck/internal/client/client"
	"github.com/dmitrijs2005/moviedeck/internal/client/models"
	"github.com/dmitrijs2005/moviedeck/internal/client/session"
	"github.com/dmitrijs2005/moviedeck/internal/logging"
)

// AuthService wraps the identity operations. Input validation (email shape,
// password length) is done by the caller before any method is invoked.
// Failures carry a common.Kind.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (*models.Identity, error)
	SignUp(ctx context.Context, email, password, displayName string) (*models.Identity, error)
	SignInWithFederatedToken(ctx context.Context, token string) (*models.Identity, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
	SignOut(ctx context.Context)
	Profile(ctx context.Context) (*models.Profile, error)
	Rename(ctx context.Context, displayName string) (*models.Identity, error)
	Ping(ctx context.Context) error
	Close() error
}

type authService struct {
	client  client.Client
	session *session.Holder
	log     logging.Logger
}

func NewAuthService(c client.Client, s *session.Holder, log logging.Logger) AuthService {
	return &authService{client: c, session: s, log: log.With("module", "auth")}
}

func (a *authService) signedIn(ctx context.Context, res *models.AuthResult, err error) (*models.Identity, error) {
	if err != nil {
		return nil, err
	}
	a.session.Set(res.Identity)
	a.log.Debug(ctx, "signed in", "user_id", res.Identity.ID, "new_user", res.IsNewUser)
	return a.session.Current(), nil
}

func (a *authService) SignIn(ctx context.Context, email, password string) (*models.Identity, error) {
	res, err := a.client.SignIn(ctx, email, password)
	return a.signedIn(ctx, res, err)
}

// SignUp creates the account and signs it in.
func (a *authService) SignUp(ctx context.Context, email, password, displayName string) (*models.Identity, error) {
	res, err := a.client.SignUp(ctx, email, password, displayName)
	return a.signedIn(ctx, res, err)
}

// SignInWithFederatedToken exchanges an identity token from an external
// provider. The account is created on first sight of the subject.
func (a *authService) SignInWithFederatedToken(ctx context.Context, token string) (*models.Identity, error) {
	res, err := a.client.SignInFederated(ctx, token)
	return a.signedIn(ctx, res, err)
}

func (a *authService) RequestPasswordReset(ctx context.Context, email string) error {
	return a.client.RequestPasswordReset(ctx, email)
}

func (a *authService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	return a.client.ConfirmPasswordReset(ctx, token, newPassword)
}

// SignOut clears the local session and revokes the refresh token on a
// best-effort basis.
func (a *authService) SignOut(ctx context.Context) {
	a.session.SignOut()
	if err := a.client.SignOut(ctx); err != nil {
		a.log.Debug(ctx, "sign out not confirmed by server", "error", err)
	}
}

func (a *authService) Profile(ctx context.Context) (*models.Profile, error) {
	p, err := a.client.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	a.session.Set(p.Identity)
	return p, nil
}

func (a *authService) Rename(ctx context.Context, displayName string) (*models.Identity, error) {
	id, err := a.client.UpdateProfile(ctx, displayName)
	if err != nil {
		return nil, err
	}
	a.session.Set(*id)
	return a.session.Current(), nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close() error {
	return a.client.Close()
}
