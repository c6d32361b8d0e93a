package db

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		t.Fatal(err)
	}
	if len(names) == 0 || len(names)%2 != 0 {
		t.Fatalf("unexpected migration files: %v", names)
	}
	set := map[string]bool{}
	for _, n := range names {
		set[n] = true
	}
	for _, n := range names {
		if strings.HasSuffix(n, ".up.sql") && !set[strings.TrimSuffix(n, ".up.sql")+".down.sql"] {
			t.Fatalf("%s has no down migration", n)
		}
	}
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE trips`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := WithTx(context.Background(), db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(context.Background(), "UPDATE trips SET status='ongoing' WHERE id=1")
		return err
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestWithTxRollsBackAndReturnsFnError(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	if err := WithTx(context.Background(), db, func(*sql.Tx) error { return boom }); err != boom {
		t.Fatalf("expected fn error unchanged, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestWithTxWithoutDB(t *testing.T) {
	if err := WithTx(context.Background(), nil, func(*sql.Tx) error { return nil }); err == nil {
		t.Fatal("expected error for nil db")
	}
}

func TestExistsLive(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM vehicles WHERE id=\? AND deleted_at IS NULL`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	ok, err := ExistsLive(context.Background(), db, "vehicles", 3)
	if err != nil || !ok {
		t.Fatalf("ExistsLive = %v, %v", ok, err)
	}
	if ok, _ := ExistsLive(context.Background(), db, "vehicles", 0); ok {
		t.Fatal("non-positive id must not exist")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestMissingTables(t *testing.T) {
	db, mock := newMock(t)
	for _, table := range RequiredTables {
		q := mock.ExpectQuery(`FROM information_schema.tables`).WithArgs(table)
		if table == "delivery_checklists" {
			q.WillReturnError(sql.ErrNoRows)
			continue
		}
		q.WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow(table))
	}

	missing := MissingTables(context.Background(), db)
	if len(missing) != 1 || missing[0] != "delivery_checklists" {
		t.Fatalf("missing = %v", missing)
	}
}

func TestNullHelpers(t *testing.T) {
	if NullIfEmpty("") != nil || NullIfEmpty("x") != "x" {
		t.Fatal("NullIfEmpty")
	}
	zero := int64(0)
	if NullInt64(nil) != nil || NullInt64(&zero) != nil {
		t.Fatal("NullInt64 should map empty ids to NULL")
	}
	if p := Int64Ptr(sql.NullInt64{Int64: 7, Valid: true}); p == nil || *p != 7 {
		t.Fatal("Int64Ptr")
	}
	if Live("t") != "t.deleted_at IS NULL" {
		t.Fatal("Live alias")
	}
	if !IsDuplicateKey(&mysql.MySQLError{Number: 1062}) || IsDuplicateKey(errors.New("x")) {
		t.Fatal("IsDuplicateKey")
	}
}
