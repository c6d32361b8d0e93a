package services

import (
	"context"
	"database/sql"
	"fmt"

	intdb "armada/internal/db"
	"armada/internal/domain"
	"armada/internal/domain/models"
	"armada/internal/repositories"
	"armada/internal/utils"

	"github.com/shopspring/decimal"
)

type seedVehicle struct {
	plate, typ, brand string
	year              int
	capacity          string
}

var (
	seedVehicles = []seedVehicle{
		{"B 1234 CD", "Tronton", "Hino", 2020, "8.00"},
		{"B 5678 EF", "Engkel", "Mitsubishi", 2021, "3.50"},
		{"B 9012 GH", "CDE", "Isuzu", 2019, "5.00"},
	}
	seedCities     = []string{"Jakarta", "Surabaya", "Bandung", "Semarang", "Yogyakarta"}
	seedCategories = []struct {
		name string
		kind domain.CategoryKind
	}{
		{"Ganti Oli", domain.KindMaintenance},
		{"Servis Rutin", domain.KindMaintenance},
		{"Ganti Ban", domain.KindMaintenance},
		{"Ganti Aki", domain.KindMaintenance},
		{"Sparepart", domain.KindMaintenance},
		{"Listrik Kantor", domain.KindGeneral},
		{"Sewa Kantor", domain.KindGeneral},
		{"Gaji Staff", domain.KindGeneral},
	}
)

// SeedResult counts rows that were actually inserted.
type SeedResult struct {
	Vehicles   int
	Locations  int
	Categories int
}

// SeedService loads the starter dataset. Running it twice inserts nothing new.
type SeedService struct {
	DB            *sql.DB
	OwnerEmail    string
	OwnerPassword string
	RequestID     string
}

func (s SeedService) Run(ctx context.Context) (SeedResult, error) {
	var res SeedResult
	db, err := pickDB(s.DB)
	if err != nil {
		return res, err
	}
	email := s.OwnerEmail
	if email == "" {
		email = "owner@tan.com"
	}
	password := s.OwnerPassword
	if password == "" {
		password = "12345678"
	}
	hash, err := HashPassword(password)
	if err != nil {
		return res, err
	}

	err = intdb.WithTx(ctx, db, func(tx *sql.Tx) error {
		if err := (repositories.UserRepository{DB: tx}).Upsert(ctx, models.User{
			Name:         "Owner TAN",
			Email:        email,
			PasswordHash: hash,
			Role:         "owner",
		}); err != nil {
			return fmt.Errorf("seed owner: %w", err)
		}

		vehicles := repositories.VehicleRepository{DB: tx}
		for _, v := range seedVehicles {
			year := v.year
			_, err := vehicles.Insert(ctx, models.Vehicle{
				PlateNumber:  v.plate,
				Type:         v.typ,
				Brand:        v.brand,
				Year:         &year,
				CapacityTons: decimal.NewNullDecimal(decimal.RequireFromString(v.capacity)),
				IsActive:     true,
			})
			if intdb.IsDuplicateKey(err) {
				continue
			}
			if err != nil {
				return fmt.Errorf("seed vehicle %s: %w", v.plate, err)
			}
			res.Vehicles++
		}

		locations := repositories.LocationRepository{DB: tx}
		for _, city := range seedCities {
			ok, err := locations.CityExists(ctx, city)
			if err != nil {
				return err
			}
			if ok {
				continue
			}
			if _, err := locations.Insert(ctx, models.Location{CityName: city, IsActive: true}); err != nil {
				return fmt.Errorf("seed location %s: %w", city, err)
			}
			res.Locations++
		}

		categories := repositories.CategoryRepository{DB: tx}
		for _, c := range seedCategories {
			ok, err := categories.NameExists(ctx, c.name)
			if err != nil {
				return err
			}
			if ok {
				continue
			}
			if _, err := categories.Insert(ctx, models.ExpenseCategory{Name: c.name, Kind: string(c.kind), IsActive: true}); err != nil {
				return fmt.Errorf("seed category %s: %w", c.name, err)
			}
			res.Categories++
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}
	utils.LogEvent(s.RequestID, "seed", "run", fmt.Sprintf("vehicles=%d locations=%d categories=%d", res.Vehicles, res.Locations, res.Categories))
	return res, nil
}
