package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/strengthscope-backend/internal/data/repos"
	types "github.com/yungbote/strengthscope-backend/internal/domain"
	"github.com/yungbote/strengthscope-backend/internal/pkg/ctxutil"
	"github.com/yungbote/strengthscope-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/strengthscope-backend/internal/pkg/errors"
	"github.com/yungbote/strengthscope-backend/internal/pkg/logger"
)

type AuthService interface {
	RegisterUser(ctx context.Context, user *types.User) error
	LoginUser(ctx context.Context, email, password string) (string, string, error)
	RefreshUser(ctx context.Context, refreshToken string) (string, string, error)
	LogoutUser(ctx context.Context) error

	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type JWTClaims struct {
	jwt.RegisteredClaims
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) error {
	if user == nil {
		return fmt.Errorf("user payload missing: %w", pkgerrors.ErrInvalidArgument)
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Email == "" || !strings.Contains(user.Email, "@") {
		return fmt.Errorf("valid email required: %w", pkgerrors.ErrInvalidArgument)
	}
	if len(user.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters: %w", pkgerrors.ErrInvalidArgument)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hashed)

	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := as.userRepo.GetByEmail(ctx, tx, user.Email)
		if err != nil {
			return fmt.Errorf("error checking existing user: %w", err)
		}
		if existing != nil {
			return fmt.Errorf("email already registered: %w", pkgerrors.ErrAlreadyExists)
		}
		if _, err := as.userRepo.Create(ctx, tx, user); err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}
		return nil
	})
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", "", fmt.Errorf("email and password required: %w", pkgerrors.ErrInvalidArgument)
	}

	foundUser, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return "", "", fmt.Errorf("error fetching user: %w", err)
	}
	if foundUser == nil {
		return "", "", fmt.Errorf("invalid credentials: %w", pkgerrors.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.Password), []byte(password)); err != nil {
		return "", "", fmt.Errorf("invalid credentials: %w", pkgerrors.ErrUnauthorized)
	}

	var accessToken, refreshToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		// One live token row per user.
		if err := as.userTokenRepo.FullDeleteByUserIDs(dbc, []uuid.UUID{foundUser.ID}); err != nil {
			return fmt.Errorf("error clearing old tokens: %w", err)
		}

		tokenID := uuid.New()
		var gErr error
		accessToken, refreshToken, gErr = as.generateTokenPair(foundUser, tokenID)
		if gErr != nil {
			return gErr
		}

		userToken := &types.UserToken{
			ID:           tokenID,
			UserID:       foundUser.ID,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, err := as.userTokenRepo.Create(dbc, []*types.UserToken{userToken}); err != nil {
			return fmt.Errorf("error storing user token: %w", err)
		}
		return nil
	}); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (as *authService) RefreshUser(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", fmt.Errorf("refresh token required: %w", pkgerrors.ErrInvalidArgument)
	}

	claims, err := as.parseToken(refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("invalid refresh token: %w", pkgerrors.ErrUnauthorized)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return "", "", fmt.Errorf("invalid refresh token subject: %w", pkgerrors.ErrUnauthorized)
	}

	var newAccess, newRefresh string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		found, err := as.userTokenRepo.GetByRefreshTokens(dbc, []string{refreshToken})
		if err != nil {
			return fmt.Errorf("error fetching user token: %w", err)
		}
		if len(found) == 0 || found[0] == nil || found[0].UserID != userID {
			return fmt.Errorf("refresh token not recognized: %w", pkgerrors.ErrUnauthorized)
		}
		existing := found[0]
		if time.Now().After(existing.ExpiresAt) {
			return fmt.Errorf("refresh token expired: %w", pkgerrors.ErrUnauthorized)
		}

		theUser, err := as.userRepo.GetByID(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("error fetching user: %w", err)
		}
		if theUser == nil {
			return fmt.Errorf("user no longer exists: %w", pkgerrors.ErrUnauthorized)
		}

		if err := as.userTokenRepo.FullDeleteByIDs(dbc, []uuid.UUID{existing.ID}); err != nil {
			return fmt.Errorf("error rotating token: %w", err)
		}

		tokenID := uuid.New()
		var gErr error
		newAccess, newRefresh, gErr = as.generateTokenPair(theUser, tokenID)
		if gErr != nil {
			return gErr
		}

		userToken := &types.UserToken{
			ID:           tokenID,
			UserID:       userID,
			AccessToken:  newAccess,
			RefreshToken: newRefresh,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, err := as.userTokenRepo.Create(dbc, []*types.UserToken{userToken}); err != nil {
			return fmt.Errorf("error storing rotated token: %w", err)
		}
		return nil
	}); err != nil {
		return "", "", err
	}

	return newAccess, newRefresh, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.TokenID == uuid.Nil {
		return fmt.Errorf("not logged in: %w", pkgerrors.ErrUnauthorized)
	}
	dbc := dbctx.Context{Ctx: ctx}
	if err := as.userTokenRepo.FullDeleteByIDs(dbc, []uuid.UUID{rd.TokenID}); err != nil {
		return fmt.Errorf("error deleting user token: %w", err)
	}
	return nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, nil
	}
	claims, err := as.parseToken(tokenString)
	if err != nil {
		return ctx, fmt.Errorf("failed to parse token: %w", pkgerrors.ErrUnauthorized)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("invalid user id in token: %w", pkgerrors.ErrUnauthorized)
	}
	tokenID, err := uuid.Parse(claims.ID)
	if err != nil {
		return ctx, fmt.Errorf("invalid token id in token: %w", pkgerrors.ErrUnauthorized)
	}

	rd := &ctxutil.RequestData{
		TokenString: tokenString,
		UserID:      userID,
		TokenID:     tokenID,
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

func (as *authService) generateTokenPair(user *types.User, tokenID uuid.UUID) (string, string, error) {
	access, err := as.signToken(user.ID, tokenID, as.accessTTL)
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := as.signToken(user.ID, tokenID, as.refreshTTL)
	if err != nil {
		return "", "", fmt.Errorf("sign refresh token: %w", err)
	}
	return access, refresh, nil
}

func (as *authService) signToken(userID, tokenID uuid.UUID, ttl time.Duration) (string, error) {
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        tokenID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) parseToken(tokenString string) (*JWTClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}
	return claims, nil
}
