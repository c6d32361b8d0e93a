package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"armada/internal/domain"
	"armada/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"
)

var userCols = []string{"id", "name", "email", "password_hash", "role", "created_at", "updated_at"}

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("rahasia")
	token, err := IssueToken(secret, domain.Principal{UserID: 3, Role: "owner"}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	p, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.UserID != 3 || p.Role != "owner" {
		t.Fatalf("unexpected principal %+v", p)
	}

	if _, err := ParseToken([]byte("lain"), token); err == nil {
		t.Fatalf("token signed with another secret must be rejected")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	secret := []byte("rahasia")
	orig := utils.Now
	defer func() { utils.Now = orig }()
	past := time.Now().Add(-48 * time.Hour)
	utils.Now = func() time.Time { return past }

	token, err := IssueToken(secret, domain.Principal{UserID: 1, Role: "staff"}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	utils.Now = orig
	if _, err := ParseToken(secret, token); err == nil {
		t.Fatalf("expired token must be rejected")
	}
}

func TestLogin(t *testing.T) {
	db, mock := newMock(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("12345678"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	now := time.Now()
	svc := AuthService{DB: db, Secret: []byte("rahasia"), TTL: time.Hour}

	mock.ExpectQuery(`SELECT id, name, email, password_hash, role`).WithArgs("owner@tan.com").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "Owner TAN", "owner@tan.com", string(hash), "owner", now, now))

	token, u, err := svc.Login(context.Background(), " Owner@tan.com ", "12345678")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" || u.Role != "owner" {
		t.Fatalf("token=%q user=%+v", token, u)
	}

	mock.ExpectQuery(`SELECT id, name, email, password_hash, role`).WithArgs("owner@tan.com").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "Owner TAN", "owner@tan.com", string(hash), "owner", now, now))
	if _, _, err := svc.Login(context.Background(), "owner@tan.com", "salah"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	mock.ExpectQuery(`SELECT id, name, email, password_hash, role`).WithArgs("nobody@tan.com").
		WillReturnRows(sqlmock.NewRows(userCols))
	if _, _, err := svc.Login(context.Background(), "nobody@tan.com", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
