// Package services contains server-side business logic. This file implements
// UserService, the identity provider: sign-up, password and federated
// sign-in, refresh token rotation, password reset and profile management.
package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/moviedeck/internal/common"
	"github.com/dmitrijs2005/moviedeck/internal/dbx"
	"github.com/dmitrijs2005/moviedeck/internal/logging"
	"github.com/dmitrijs2005/moviedeck/internal/server/auth"
	"github.com/dmitrijs2005/moviedeck/internal/server/config"
	"github.com/dmitrijs2005/moviedeck/internal/server/models"
	"github.com/dmitrijs2005/moviedeck/internal/server/repositories/repomanager"
	"github.com/go-playground/validator/v10"
)

// DefaultFederatedProvider is recorded for ID tokens without an issuer.
const DefaultFederatedProvider = "google"

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Session is the outcome of a successful sign-in.
type Session struct {
	Profile   *models.Profile
	Tokens    TokenPair
	IsNewUser bool
}

type signInInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

type UserService struct {
	store                        dbx.Store
	repomanager                  repomanager.RepositoryManager
	mailer                       Mailer
	log                          logging.Logger
	validate                     *validator.Validate
	jwtSecret                    []byte
	federationSecret             []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	resetTokenValidityDuration   time.Duration
	now                          func() time.Time
}

func NewUserService(store dbx.Store, m repomanager.RepositoryManager, cfg *config.Config, mailer Mailer, log logging.Logger) *UserService {
	return &UserService{
		store:                        store,
		repomanager:                  m,
		mailer:                       mailer,
		log:                          log.With("module", "users"),
		validate:                     validator.New(validator.WithRequiredStructEnabled()),
		jwtSecret:                    []byte(cfg.SecretKey),
		federationSecret:             []byte(cfg.FederationSecret),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		resetTokenValidityDuration:   cfg.ResetTokenValidityDuration,
		now:                          time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) checkCredentials(op, email, password string) error {
	if err := s.validate.Struct(signInInput{Email: email, Password: password}); err != nil {
		return common.E(common.KindValidation, op, fmt.Errorf("%w: %v", common.ErrValidation, err))
	}
	return nil
}

// SignUp creates a password account and signs it in.
func (s *UserService) SignUp(ctx context.Context, email, password, displayName string) (*Session, error) {
	const op = "users.SignUp"

	email = normalizeEmail(email)
	if err := s.checkCredentials(op, email, password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.E(common.KindInternal, op, err)
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName, _, _ = strings.Cut(email, "@")
	}

	var sess *Session
	err = s.store.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		u, err := s.repomanager.Users(tx).Create(ctx, &models.User{
			Email:        email,
			DisplayName:  displayName,
			PasswordHash: hash,
		})
		if err != nil {
			return err
		}
		sess, err = s.openSession(ctx, tx, u, true)
		return err
	})
	if errors.Is(err, common.ErrAlreadyExists) {
		return nil, common.E(common.KindAlreadyExists, op, err)
	}
	if err != nil {
		return nil, s.internal(ctx, op, err)
	}

	s.log.Info(ctx, "user signed up", "user_id", sess.Profile.User.ID)
	return sess, nil
}

// SignIn verifies email and password.
func (s *UserService) SignIn(ctx context.Context, email, password string) (*Session, error) {
	const op = "users.SignIn"

	email = normalizeEmail(email)
	if err := s.checkCredentials(op, email, password); err != nil {
		return nil, err
	}

	u, err := s.repomanager.Users(s.store.DB()).GetByEmail(ctx, email)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.E(common.KindUserNotFound, op, nil)
	}
	if err != nil {
		return nil, s.internal(ctx, op, err)
	}

	if len(u.PasswordHash) == 0 {
		return nil, common.E(common.KindInvalidCredentials, op, nil)
	}
	if err := auth.CheckPassword(u.PasswordHash, password); err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			return nil, common.E(common.KindInvalidCredentials, op, nil)
		}
		return nil, s.internal(ctx, op, err)
	}

	sess, err := s.openSession(ctx, s.store.DB(), u, false)
	if err != nil {
		return nil, s.internal(ctx, op, err)
	}
	return sess, nil
}

// SignInFederated exchanges a federated ID token for a session. The first
// sighting of a subject links it to the account with the same email, or
// creates a new account.
func (s *UserService) SignInFederated(ctx context.Context, idToken string) (*Session, error) {
	const op = "users.SignInFederated"

	claims, err := auth.ParseFederatedToken(idToken, s.federationSecret)
	if err != nil {
		return nil, common.E(common.KindInvalidCredentials, op, err)
	}
	provider := claims.Issuer
	if provider == "" {
		provider = DefaultFederatedProvider
	}
	email := normalizeEmail(claims.Email)

	var sess *Session
	err = s.store.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		u, err := repo.GetByFederatedSubject(ctx, provider, claims.Subject)
		if err == nil {
			sess, err = s.openSession(ctx, tx, u, false)
			return err
		}
		if !errors.Is(err, common.ErrNotFound) {
			return err
		}

		u, err = repo.GetByEmail(ctx, email)
		switch {
		case err == nil:
			if err := repo.LinkFederated(ctx, u.ID, provider, claims.Subject); err != nil {
				return err
			}
			u.FederatedProvider, u.FederatedSubject = provider, claims.Subject
			sess, err = s.openSession(ctx, tx, u, false)
			return err
		case !errors.Is(err, common.ErrNotFound):
			return err
		}

		name := strings.TrimSpace(claims.Name)
		if name == "" {
			name, _, _ = strings.Cut(email, "@")
		}
		u, err = repo.Create(ctx, &models.User{
			Email:             email,
			DisplayName:       name,
			FederatedProvider: provider,
			FederatedSubject:  claims.Subject,
		})
		if err != nil {
			return err
		}
		sess, err = s.openSession(ctx, tx, u, true)
		return err
	})
	if err != nil {
		return nil, s.internal(ctx, op, err)
	}
	return sess, nil
}

// RefreshToken validates a refresh token, rotates it transactionally and
// returns a fresh TokenPair.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	const op = "users.RefreshToken"

	token, err := s.repomanager.RefreshTokens(s.store.DB()).Find(ctx, refreshToken)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.E(common.KindUnauthorized, op, common.ErrInvalidToken)
	}
	if err != nil {
		return nil, s.internal(ctx, op, err)
	}
	if token.Expires.Before(s.now()) {
		return nil, common.E(common.KindUnauthorized, op, common.ErrRefreshTokenExpired)
	}

	// The delete claims the token. A concurrent refresh with the same token
	// finds nothing to delete and is rejected.
	var pair *TokenPair
	err = s.store.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		deleted, err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken)
		if err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		if !deleted {
			return common.ErrInvalidToken
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.UserID, tx)
		return genErr
	})
	if errors.Is(err, common.ErrInvalidToken) {
		return nil, common.E(common.KindUnauthorized, op, common.ErrInvalidToken)
	}
	if err != nil {
		return nil, s.internal(ctx, op, err)
	}
	return pair, nil
}

// RequestPasswordReset mails a one-time token. Unknown emails succeed
// silently so that accounts cannot be enumerated.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	const op = "users.RequestPasswordReset"

	email = normalizeEmail(email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return common.E(common.KindValidation, op, fmt.Errorf("%w: %v", common.ErrValidation, err))
	}

	u, err := s.repomanager.Users(s.store.DB()).GetByEmail(ctx, email)
	if errors.Is(err, common.ErrNotFound) {
		s.log.Debug(ctx, "password reset for unknown email")
		return nil
	}
	if err != nil {
		return s.internal(ctx, op, err)
	}

	token, err := common.MakeRandHexString(32)
	if err != nil {
		return s.internal(ctx, op, err)
	}
	now := s.now()
	err = s.repomanager.ResetTokens(s.store.DB()).Create(ctx, &models.ResetToken{
		Token:   token,
		UserID:  u.ID,
		Expires: now.Add(s.resetTokenValidityDuration),
	})
	if err != nil {
		return s.internal(ctx, op, err)
	}

	if err := s.mailer.SendPasswordReset(ctx, email, token); err != nil {
		return common.E(common.KindUnavailable, op, err)
	}
	return nil
}

// ConfirmPasswordReset sets a new password and revokes every refresh token
// of the user.
func (s *UserService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	const op = "users.ConfirmPasswordReset"

	if err := s.validate.Var(newPassword, "required,min=6"); err != nil {
		return common.E(common.KindValidation, op, fmt.Errorf("%w: %v", common.ErrValidation, err))
	}

	rt, err := s.repomanager.ResetTokens(s.store.DB()).Find(ctx, token)
	if errors.Is(err, common.ErrNotFound) {
		return common.E(common.KindUnauthorized, op, common.ErrInvalidToken)
	}
	if err != nil {
		return s.internal(ctx, op, err)
	}
	if rt.Expires.Before(s.now()) {
		_, _ = s.repomanager.ResetTokens(s.store.DB()).Delete(ctx, token)
		return common.E(common.KindUnauthorized, op, common.ErrInvalidToken)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return s.internal(ctx, op, err)
	}

	err = s.store.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		deleted, err := s.repomanager.ResetTokens(tx).Delete(ctx, token)
		if err != nil {
			return err
		}
		if !deleted {
			return common.ErrInvalidToken
		}
		if err := s.repomanager.Users(tx).UpdatePassword(ctx, rt.UserID, hash); err != nil {
			return err
		}
		return s.repomanager.RefreshTokens(tx).DeleteByUser(ctx, rt.UserID)
	})
	if errors.Is(err, common.ErrInvalidToken) {
		return common.E(common.KindUnauthorized, op, common.ErrInvalidToken)
	}
	if err != nil {
		return s.internal(ctx, op, err)
	}
	s.log.Info(ctx, "password reset completed", "user_id", rt.UserID)
	return nil
}

// SignOut revokes a refresh token of userID. Tokens of other users and
// unknown tokens are ignored.
func (s *UserService) SignOut(ctx context.Context, userID, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	repo := s.repomanager.RefreshTokens(s.store.DB())
	t, err := repo.Find(ctx, refreshToken)
	if err != nil || t.UserID != userID {
		return nil
	}
	if _, err := repo.Delete(ctx, refreshToken); err != nil {
		return s.internal(ctx, "users.SignOut", err)
	}
	return nil
}

// GetProfile returns the user with favorites ids and count.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	const op = "users.GetProfile"

	u, err := s.repomanager.Users(s.store.DB()).GetByID(ctx, userID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.E(common.KindUserNotFound, op, nil)
	}
	if err != nil {
		return nil, s.internal(ctx, op, err)
	}

	p, err := s.profile(ctx, s.store.DB(), u)
	if err != nil {
		return nil, s.internal(ctx, op, err)
	}
	return p, nil
}

// UpdateProfile changes the display name.
func (s *UserService) UpdateProfile(ctx context.Context, userID, displayName string) (*models.Profile, error) {
	const op = "users.UpdateProfile"

	displayName = strings.TrimSpace(displayName)
	if err := s.validate.Var(displayName, "required,max=100"); err != nil {
		return nil, common.E(common.KindValidation, op, fmt.Errorf("%w: %v", common.ErrValidation, err))
	}

	u, err := s.repomanager.Users(s.store.DB()).UpdateDisplayName(ctx, userID, displayName)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.E(common.KindUserNotFound, op, nil)
	}
	if err != nil {
		return nil, s.internal(ctx, op, err)
	}

	p, err := s.profile(ctx, s.store.DB(), u)
	if err != nil {
		return nil, s.internal(ctx, op, err)
	}
	return p, nil
}

// PurgeExpired deletes refresh and reset tokens that expired before now.
func (s *UserService) PurgeExpired(ctx context.Context) (refresh, reset int64, err error) {
	now := s.now()
	refresh, err = s.repomanager.RefreshTokens(s.store.DB()).DeleteExpired(ctx, now)
	if err != nil {
		return 0, 0, err
	}
	reset, err = s.repomanager.ResetTokens(s.store.DB()).DeleteExpired(ctx, now)
	return refresh, reset, err
}

// UserIDFromAccessToken validates an access token minted by this service.
func (s *UserService) UserIDFromAccessToken(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

// --- helpers below ---

func (s *UserService) internal(ctx context.Context, op string, err error) error {
	if k := common.KindOf(err); k != common.KindUnknown && k != common.KindInternal {
		return err
	}
	s.log.Error(ctx, "operation failed", "op", op, "error", err)
	return common.E(common.KindInternal, op, err)
}

func (s *UserService) openSession(ctx context.Context, db dbx.DBTX, u *models.User, isNew bool) (*Session, error) {
	now := s.now()
	if err := s.repomanager.Users(db).TouchLastLogin(ctx, u.ID, now); err != nil {
		return nil, err
	}
	u.LastLoginAt = &now

	pair, err := s.generateTokenPair(ctx, u.ID, db)
	if err != nil {
		return nil, err
	}
	p, err := s.profile(ctx, db, u)
	if err != nil {
		return nil, err
	}
	return &Session{Profile: p, Tokens: *pair, IsNewUser: isNew}, nil
}

func (s *UserService) profile(ctx context.Context, db dbx.DBTX, u *models.User) (*models.Profile, error) {
	fav, err := s.repomanager.Favorites(db).Get(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	ids := fav.IDs()
	slices.Sort(ids)
	return &models.Profile{User: u, FavoriteIDs: ids, FavoritesCount: len(ids)}, nil
}

func (s *UserService) generateTokenPair(ctx context.Context, userID string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, err
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, err
	}
	if err := s.repomanager.RefreshTokens(tx).Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
