package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	intdb "armada/internal/db"
	"armada/internal/domain"
	"armada/internal/domain/models"
	"armada/internal/repositories"
	"armada/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("email atau password salah")

type tokenClaims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	DB        *sql.DB
	Secret    []byte
	TTL       time.Duration
	RequestID string
}

// Login checks the bcrypt hash and issues an HS256 token carrying user_id and role.
func (s AuthService) Login(ctx context.Context, email, password string) (string, models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", models.User{}, domain.FieldErrors{"email": "email dan password wajib diisi"}.Err()
	}
	db, err := pickDB(s.DB)
	if err != nil {
		return "", models.User{}, err
	}

	u, err := repositories.UserRepository{DB: db}.GetByEmail(ctx, email)
	if intdb.IsNoRows(err) {
		return "", models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		utils.LogEvent(s.RequestID, "auth", "login_failed", fmt.Sprintf("user=%d", u.ID))
		return "", models.User{}, ErrInvalidCredentials
	}

	token, err := IssueToken(s.Secret, domain.Principal{UserID: u.ID, Role: u.Role}, s.TTL)
	if err != nil {
		return "", models.User{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user=%d role=%s", u.ID, u.Role))
	return token, u, nil
}

func IssueToken(secret []byte, p domain.Principal, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("jwt secret kosong")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := utils.Now()
	claims := tokenClaims{
		UserID: p.UserID,
		Role:   p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken verifies signature and expiry and returns the principal.
func ParseToken(secret []byte, raw string) (domain.Principal, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.Principal{}, err
	}
	if claims.UserID <= 0 {
		return domain.Principal{}, errors.New("token tanpa user_id")
	}
	return domain.Principal{UserID: claims.UserID, Role: claims.Role}, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
