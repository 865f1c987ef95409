package auth

import (
	"context"
	"database/sql"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/pouya-gh/MyLibrary/pkg/config"
	"github.com/pouya-gh/MyLibrary/pkg/errcodes"
	"github.com/pouya-gh/MyLibrary/pkg/models"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing.
	BcryptCost = 12
	// DefaultTokenExpiry is used when no TTL is configured. The login flow
	// passes the configured expiry (30 minutes by default) instead.
	DefaultTokenExpiry = 15 * time.Minute
)

// JWTClaims represents the claims in an access token. Scopes are frozen at
// issuance; they are not re-checked against the live user record until the
// next login.
type JWTClaims struct {
	Scopes []string `json:"scopes"`
	jwt.RegisteredClaims
}

// HasScope reports whether the token was granted the given scope.
func (c *JWTClaims) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// Service handles authentication operations.
type Service struct {
	db          *bun.DB
	jwtSecret   []byte
	tokenExpiry time.Duration
}

// NewService creates a new auth service. tokenExpiry is the TTL used by the
// login flow; zero falls back to DefaultTokenExpiry.
func NewService(db *bun.DB, jwtSecret string, tokenExpiry time.Duration) *Service {
	if tokenExpiry == 0 {
		tokenExpiry = DefaultTokenExpiry
	}
	return &Service{
		db:          db,
		jwtSecret:   []byte(jwtSecret),
		tokenExpiry: tokenExpiry,
	}
}

// Authenticate validates credentials and returns the user if valid. It does
// not check is_active; deactivated users still authenticate but are rejected
// by the active-user middleware.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user := &models.User{}
	err := s.db.NewSelect().
		Model(user).
		Where("u.username = ?", username).
		Scan(ctx)
	if err != nil {
		return nil, errcodes.Unauthorized("Incorrect username or password")
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, errcodes.Unauthorized("Incorrect username or password")
	}

	return user, nil
}

// GenerateToken creates a signed access token for the user with the given
// TTL (zero means DefaultTokenExpiry). The super scope is granted iff the
// user is a superuser right now.
func (s *Service) GenerateToken(user *models.User, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = DefaultTokenExpiry
	}

	now := time.Now()
	claims := JWTClaims{
		Scopes: user.Scopes(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return signedToken, nil
}

// GenerateAccessToken creates a token with the configured login TTL.
func (s *Service) GenerateAccessToken(user *models.User) (string, error) {
	return s.GenerateToken(user, s.tokenExpiry)
}

// ValidateToken validates a token and returns the claims. It is a purely
// cryptographic/structural check; no storage is consulted.
func (s *Service) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// GetUserByUsername retrieves a user by username.
func (s *Service) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := s.db.NewSelect().
		Model(user).
		Where("u.username = ?", username).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("User")
		}
		return nil, errors.WithStack(err)
	}
	return user, nil
}

// BootstrapSuperuser creates the configured superuser at startup if no
// superuser exists yet. It seeds the "exactly one superuser" invariant once;
// later mutations are not re-checked.
func (s *Service) BootstrapSuperuser(ctx context.Context, cfg *config.Config) (*models.User, error) {
	count, err := s.db.NewSelect().
		Model((*models.User)(nil)).
		Where("is_superuser = ?", true).
		Count(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if count > 0 {
		return nil, nil
	}

	if cfg.SuperuserPassword == "" {
		return nil, errors.New("no superuser exists and superuser_password is not configured")
	}

	hashedPassword, err := HashPassword(cfg.SuperuserPassword)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		CreatedAt:    now,
		UpdatedAt:    now,
		Username:     cfg.SuperuserUsername,
		Email:        cfg.SuperuserEmail,
		PasswordHash: hashedPassword,
		IsActive:     true,
		IsSuperuser:  true,
	}

	_, err = s.db.NewInsert().Model(user).Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return user, nil
}

// HashPassword hashes a password using bcrypt. The salt is random, so the
// same input produces a different hash on each call.
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(hashedPassword), nil
}

// CheckPassword compares a password with a hash.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
