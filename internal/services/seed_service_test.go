package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestSeedSkipsExistingRows(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO users`).WillReturnResult(sqlmock.NewResult(1, 1))
	for range seedVehicles {
		mock.ExpectExec(`INSERT INTO vehicles`).WillReturnError(&mysql.MySQLError{Number: 1062})
	}
	for _, city := range seedCities {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM locations WHERE city_name = \?`).WithArgs(city).
			WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	}
	for i, c := range seedCategories {
		n := 1
		if i == 0 {
			n = 0
		}
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM expense_categories WHERE name = \?`).WithArgs(c.name).
			WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(n))
		if n == 0 {
			mock.ExpectExec(`INSERT INTO expense_categories`).
				WithArgs(c.name, "maintenance", nil, true).
				WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
		}
	}
	mock.ExpectCommit()

	res, err := SeedService{DB: db}.Run(context.Background())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if res.Vehicles != 0 || res.Locations != 0 || res.Categories != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
