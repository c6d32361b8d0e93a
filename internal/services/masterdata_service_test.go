package services

import (
	"context"
	"testing"

	"armada/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
)

func TestDeleteReferencedVehicle(t *testing.T) {
	db, mock := newMock(t)
	svc := VehicleService{DB: db}

	mock.ExpectBegin()
	expectExists(mock, "vehicles", 1, 1)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM trips WHERE \(vehicle_id = \?\)`).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(2))
	mock.ExpectRollback()

	err := svc.Delete(context.Background(), 1)
	if !domain.IsReferentialIntegrity(err) {
		t.Fatalf("expected ReferentialIntegrityError, got %v", err)
	}

	// once the trips are gone the delete goes through
	mock.ExpectBegin()
	expectExists(mock, "vehicles", 1, 1)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM trips WHERE \(vehicle_id = \?\)`).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(`UPDATE vehicles SET deleted_at = NOW\(\)`).WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("delete vehicle: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteMissingVehicle(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	expectExists(mock, "vehicles", 5, 0)
	mock.ExpectRollback()

	if err := (VehicleService{DB: db}).Delete(context.Background(), 5); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestDeleteLocationChecksBothEnds(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	expectExists(mock, "locations", 3, 1)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM trips WHERE \(origin_id = \? OR destination_id = \?\)`).
		WithArgs(int64(3), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectRollback()

	err := LocationService{DB: db}.Delete(context.Background(), 3)
	if !domain.IsReferentialIntegrity(err) {
		t.Fatalf("expected ReferentialIntegrityError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateVehicleDuplicatePlate(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(`INSERT INTO vehicles`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'B 1234 CD'"})

	_, err := VehicleService{DB: db}.Create(context.Background(), VehicleInput{
		PlateNumber:  "b 1234 cd",
		Type:         "Tronton",
		CapacityTons: ptr(decimal.RequireFromString("8.00")),
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestVehicleInputValidation(t *testing.T) {
	_, err := VehicleInput{
		PlateNumber:  "  ",
		Type:         "Engkel",
		Year:         ptr(1850),
		CapacityTons: ptr(decimal.NewFromInt(-1)),
	}.toModel()
	fields := domain.Fields(err)
	for _, f := range []string{"plate_number", "year", "capacity_tons"} {
		if _, ok := fields[f]; !ok {
			t.Fatalf("expected %s field error, got %v", f, fields)
		}
	}

	v, err := VehicleInput{PlateNumber: " b  5678   ef ", Type: "Engkel"}.toModel()
	if err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
	if v.PlateNumber != "B 5678 EF" || !v.IsActive {
		t.Fatalf("unexpected vehicle %+v", v)
	}
}

func TestCustomerPhoneNormalized(t *testing.T) {
	c, err := CustomerInput{Name: "PT Maju", Phone: "0812 3456 789"}.toModel()
	if err != nil {
		t.Fatalf("toModel: %v", err)
	}
	if c.Phone != "08123456789" {
		t.Fatalf("phone = %q", c.Phone)
	}
}

func TestCategoryKindMustBeEnabled(t *testing.T) {
	svc := CategoryService{Kinds: domain.NewKindSet([]string{"maintenance"})}
	_, err := svc.toModel(CategoryInput{Name: "Gaji Staff", Kind: "general"})
	if _, ok := domain.Fields(err)["kind"]; !ok {
		t.Fatalf("expected kind field error, got %v", err)
	}

	c, err := CategoryService{}.toModel(CategoryInput{Name: "Ganti Oli", Kind: "Maintenance"})
	if err != nil {
		t.Fatalf("toModel: %v", err)
	}
	if c.Kind != "maintenance" {
		t.Fatalf("kind = %q", c.Kind)
	}
}
