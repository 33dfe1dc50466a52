package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/talkweave/forum-backend-go/internal/domain/auth"
	"github.com/talkweave/forum-backend-go/internal/domain/member"
	"github.com/talkweave/forum-backend-go/internal/pkg/database"
	"github.com/talkweave/forum-backend-go/internal/pkg/jwt"
	"github.com/talkweave/forum-backend-go/internal/pkg/oauth"
	"github.com/talkweave/forum-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db *database.DB
	member.Repository
	groupRepo member.GroupRepository
	jwt.Service
	postgresql.JWTRepository
	googleService oauth.GoogleService
}

func NewAuthService(
	db *database.DB,
	memberRepository member.Repository,
	groupRepository member.GroupRepository,
	jwtService jwt.Service,
	jwtRepository postgresql.JWTRepository,
	googleService oauth.GoogleService,
) auth.AuthService {
	return &AuthServiceImpl{
		db:            db,
		Repository:    memberRepository,
		groupRepo:     groupRepository,
		Service:       jwtService,
		JWTRepository: jwtRepository,
		googleService: googleService,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService. The new member joins the built-in
// everyone group, so site-wide group preferences apply from the first login.
func (a *AuthServiceImpl) Register(ctx context.Context, siteID string, req auth.RegisterRequest, sessionReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if _, err := a.Repository.GetByEmail(ctx, siteID, req.Email); err == nil {
		return auth.TokenResponse{}, member.ErrEmailExists
	} else if !errors.Is(err, member.ErrMemberNotFound) {
		return auth.TokenResponse{}, fmt.Errorf("failed to get member by email: %w", err)
	}

	if _, err := a.Repository.GetByUsername(ctx, siteID, req.Username); err == nil {
		return auth.TokenResponse{}, member.ErrUsernameExists
	} else if !errors.Is(err, member.ErrMemberNotFound) {
		return auth.TokenResponse{}, fmt.Errorf("failed to get member by username: %w", err)
	}

	hashed, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var tokenResponse auth.TokenResponse
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		newMember, err := a.Repository.Create(txCtx, member.Member{
			SiteID:       siteID,
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: &hashed,
		})
		if err != nil {
			return err
		}

		everyone, err := a.groupRepo.GetByName(txCtx, siteID, member.EveryoneGroupName)
		if err != nil {
			return fmt.Errorf("failed to get everyone group: %w", err)
		}
		if err := a.groupRepo.AddMember(txCtx, siteID, everyone.ID, newMember.ID); err != nil {
			return fmt.Errorf("failed to add member to everyone group: %w", err)
		}

		tokenResponse, err = a.issueTokens(txCtx, newMember, sessionReq)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, siteID string, req auth.LoginRequest, sessionReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	memberData, err := a.Repository.GetByEmail(ctx, siteID, req.Email)
	if err != nil {
		if errors.Is(err, member.ErrMemberNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get member by email: %w", err)
	}

	if memberData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*memberData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	var tokenResponse auth.TokenResponse
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)
		tokenResponse, err = a.issueTokens(txCtx, memberData, sessionReq)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// LoginWithGoogle implements auth.AuthService. Returns the URL to send the
// browser to.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, userAgent string) string {
	state := a.googleService.GenerateState(userAgent)
	return a.googleService.RedirectURL(state)
}

// OAuthCallbackGoogle implements auth.AuthService. Creates the member on
// first login; links the Google account to an existing password account with
// the same email.
func (a *AuthServiceImpl) OAuthCallbackGoogle(ctx context.Context, siteID, code string, sessionReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	token, err := a.googleService.Exchange(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	info, err := a.googleService.FetchProfile(ctx, token)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	memberData, err := a.Repository.GetByEmail(ctx, siteID, info.Email)
	switch {
	case err == nil:
		if memberData.OAuthProvider == nil || memberData.OAuthProviderID == nil {
			memberData, err = a.Repository.LinkGoogleAccount(ctx, siteID, info.Email, info.GoogleID)
			if err != nil {
				return auth.TokenResponse{}, fmt.Errorf("failed to link google account: %w", err)
			}
		}
	case errors.Is(err, member.ErrMemberNotFound):
		memberData, err = a.createGoogleMember(ctx, siteID, info)
		if err != nil {
			return auth.TokenResponse{}, err
		}
	default:
		return auth.TokenResponse{}, fmt.Errorf("failed to get member by email: %w", err)
	}

	var tokenResponse auth.TokenResponse
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)
		tokenResponse, err = a.issueTokens(txCtx, memberData, sessionReq)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

func (a *AuthServiceImpl) createGoogleMember(ctx context.Context, siteID string, info oauth.GoogleProfile) (member.Member, error) {
	provider := "google"
	googleID := info.GoogleID
	username := usernameFromEmail(info.Email)

	// Usernames must be unique; disambiguate with the google id suffix.
	if _, err := a.Repository.GetByUsername(ctx, siteID, username); err == nil {
		username = username + "." + shortID(googleID)
	} else if !errors.Is(err, member.ErrMemberNotFound) {
		return member.Member{}, fmt.Errorf("failed to get member by username: %w", err)
	}

	var created member.Member
	err := postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		var err error
		created, err = a.Repository.Create(txCtx, member.Member{
			SiteID:          siteID,
			Username:        username,
			Email:           info.Email,
			OAuthProvider:   &provider,
			OAuthProviderID: &googleID,
		})
		if err != nil {
			return err
		}

		everyone, err := a.groupRepo.GetByName(txCtx, siteID, member.EveryoneGroupName)
		if err != nil {
			return fmt.Errorf("failed to get everyone group: %w", err)
		}
		return a.groupRepo.AddMember(txCtx, siteID, everyone.ID, created.ID)
	})
	if err != nil {
		return member.Member{}, err
	}

	return created, nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, siteID string, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	memberID, err := a.Service.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	revoked, err := a.JWTRepository.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if revoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	memberData, err := a.Repository.GetByID(ctx, siteID, memberID)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrMemberNotFound
	}

	var resp auth.AccessTokenResponse
	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(
		memberData.ID, memberData.SiteID, memberData.Email, memberData.IsAdmin)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return resp, nil
}

// Logout implements auth.AuthService. Revoking an already revoked token is a
// no-op.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	return postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		revoked, err := a.JWTRepository.IsRefreshTokenRevoked(txCtx, refreshToken)
		if err != nil {
			return fmt.Errorf("failed to check refresh token: %w", err)
		}
		if !revoked {
			if err := a.JWTRepository.RevokeRefreshToken(txCtx, refreshToken); err != nil {
				return fmt.Errorf("failed to revoke refresh token: %w", err)
			}
		}
		return nil
	})
}

// issueTokens generates the access/refresh pair and records the refresh token.
func (a *AuthServiceImpl) issueTokens(ctx context.Context, m member.Member, sessionReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	var resp auth.TokenResponse
	var err error

	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(m.ID, m.SiteID, m.Email, m.IsAdmin)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	resp.RefreshToken, resp.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(m.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	if err := a.CreateRefreshToken(ctx, m.ID, resp.RefreshToken, resp.RefreshTokenExpiresIn, sessionReq); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to save refresh token: %w", err)
	}

	return resp, nil
}

func usernameFromEmail(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			return email[:i]
		}
	}
	return email
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
