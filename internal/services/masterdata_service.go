package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intdb "armada/internal/db"
	"armada/internal/domain"
	"armada/internal/domain/models"
	"armada/internal/repositories"
	"armada/internal/utils"

	"github.com/shopspring/decimal"
)

// guardedDelete soft-deletes a live row unless a live trip still references it
// through one of refColumns.
func guardedDelete(ctx context.Context, db *sql.DB, resource, table string, id int64, refColumns []string, del func(q intdb.DBTX) (int64, error)) error {
	return intdb.WithTx(ctx, db, func(tx *sql.Tx) error {
		ok, err := intdb.ExistsLive(ctx, tx, table, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NotFoundError{Resource: resource}
		}
		if len(refColumns) > 0 {
			n, err := repositories.TripRepository{DB: tx}.CountReferencing(ctx, id, refColumns...)
			if err != nil {
				return err
			}
			if n > 0 {
				return domain.ReferentialIntegrityError{Resource: resource, ReferencedBy: fmt.Sprintf("%d trip", n)}
			}
		}
		n, err := del(tx)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.NotFoundError{Resource: resource}
		}
		return nil
	})
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func requireText(fe domain.FieldErrors, field, raw, label string, max int) string {
	v := utils.NormalizeSpace(raw)
	switch {
	case v == "":
		fe.Add(field, label+" wajib diisi")
	case utils.TooLong(v, max):
		fe.Add(field, fmt.Sprintf("%s maksimal %d karakter", label, max))
	}
	return v
}

func optionalText(fe domain.FieldErrors, field, raw, label string, max int) string {
	v := strings.TrimSpace(raw)
	if max > 0 && utils.TooLong(v, max) {
		fe.Add(field, fmt.Sprintf("%s maksimal %d karakter", label, max))
	}
	return v
}

// ---- vehicles

type VehicleInput struct {
	PlateNumber  string           `json:"plate_number"`
	Type         string           `json:"type"`
	Brand        string           `json:"brand"`
	Year         *int             `json:"year"`
	CapacityTons *decimal.Decimal `json:"capacity_tons"`
	IsActive     *bool            `json:"is_active"`
	Notes        string           `json:"notes"`
}

type VehicleService struct {
	DB        *sql.DB
	RequestID string
}

func (in VehicleInput) toModel() (models.Vehicle, error) {
	fe := domain.FieldErrors{}
	v := models.Vehicle{
		PlateNumber: strings.ToUpper(requireText(fe, "plate_number", in.PlateNumber, "nomor polisi", 20)),
		Type:        requireText(fe, "type", in.Type, "jenis", 50),
		Brand:       optionalText(fe, "brand", in.Brand, "merk", 50),
		IsActive:    boolOr(in.IsActive, true),
		Notes:       strings.TrimSpace(in.Notes),
		Year:        in.Year,
	}
	if in.Year != nil {
		maxYear := utils.Now().Year() + 1
		if *in.Year < 1900 || *in.Year > maxYear {
			fe.Add("year", fmt.Sprintf("tahun harus antara 1900 dan %d", maxYear))
		}
	}
	if in.CapacityTons != nil {
		if in.CapacityTons.IsNegative() {
			fe.Add("capacity_tons", "kapasitas tidak boleh negatif")
		}
		v.CapacityTons = decimal.NewNullDecimal(in.CapacityTons.Round(2))
	}
	return v, fe.Err()
}

func vehicleConflict(err error) error {
	if intdb.IsDuplicateKey(err) {
		return domain.ConflictError{Resource: "vehicle", Msg: "nomor polisi sudah terdaftar", Err: err}
	}
	return err
}

func (s VehicleService) List(ctx context.Context, activeOnly bool) ([]models.Vehicle, error) {
	db, err := pickDB(s.DB)
	if err != nil {
		return nil, err
	}
	return repositories.VehicleRepository{DB: db}.List(ctx, activeOnly)
}

func (s VehicleService) Get(ctx context.Context, id int64) (models.Vehicle, error) {
	db, err := pickDB(s.DB)
	if err != nil {
		return models.Vehicle{}, err
	}
	v, err := repositories.VehicleRepository{DB: db}.GetByID(ctx, id)
	return v, notFound(err, "vehicle")
}

func (s VehicleService) Create(ctx context.Context, in VehicleInput) (models.Vehicle, error) {
	v, err := in.toModel()
	if err != nil {
		return v, err
	}
	db, err := pickDB(s.DB)
	if err != nil {
		return v, err
	}
	id, err := repositories.VehicleRepository{DB: db}.Insert(ctx, v)
	if err != nil {
		return v, vehicleConflict(err)
	}
	v.ID = id
	utils.LogEvent(s.RequestID, "vehicle", "create", fmt.Sprintf("id=%d plate=%s", id, v.PlateNumber))
	return v, nil
}

func (s VehicleService) Update(ctx context.Context, id int64, in VehicleInput) (models.Vehicle, error) {
	v, err := in.toModel()
	if err != nil {
		return v, err
	}
	db, err := pickDB(s.DB)
	if err != nil {
		return v, err
	}
	v.ID = id
	n, err := repositories.VehicleRepository{DB: db}.Update(ctx, v)
	if err != nil {
		return v, vehicleConflict(err)
	}
	if n == 0 {
		return v, domain.NotFoundError{Resource: "vehicle"}
	}
	utils.LogEvent(s.RequestID, "vehicle", "update", fmt.Sprintf("id=%d", id))
	return v, nil
}

func (s VehicleService) Delete(ctx context.Context, id int64) error {
	db, err := pickDB(s.DB)
	if err != nil {
		return err
	}
	err = guardedDelete(ctx, db, "vehicle", "vehicles", id, []string{"vehicle_id"}, func(q intdb.DBTX) (int64, error) {
		return repositories.VehicleRepository{DB: q}.SoftDelete(ctx, id)
	})
	if err == nil {
		utils.LogEvent(s.RequestID, "vehicle", "delete", fmt.Sprintf("id=%d", id))
	}
	return err
}

// ---- customers

type CustomerInput struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	IsActive *bool  `json:"is_active"`
}

type CustomerService struct {
	DB        *sql.DB
	RequestID string
}

func (in CustomerInput) toModel() (models.Customer, error) {
	fe := domain.FieldErrors{}
	c := models.Customer{
		Name:     requireText(fe, "name", in.Name, "nama", 255),
		Phone:    strings.ReplaceAll(requireText(fe, "phone", in.Phone, "telepon", 30), " ", ""),
		Address:  strings.TrimSpace(in.Address),
		IsActive: boolOr(in.IsActive, true),
	}
	return c, fe.Err()
}

func customerConflict(err error) error {
	if intdb.IsDuplicateKey(err) {
		return domain.ConflictError{Resource: "customer", Msg: "nomor telepon sudah terdaftar", Err: err}
	}
	return err
}

func (s CustomerService) List(ctx context.Context, activeOnly bool) ([]models.Customer, error) {
	db, err := pickDB(s.DB)
	if err != nil {
		return nil, err
	}
	return repositories.CustomerRepository{DB: db}.List(ctx, activeOnly)
}

func (s CustomerService) Get(ctx context.Context, id int64) (models.Customer, error) {
	db, err := pickDB(s.DB)
	if err != nil {
		return models.Customer{}, err
	}
	c, err := repositories.CustomerRepository{DB: db}.GetByID(ctx, id)
	return c, notFound(err, "customer")
}

func (s CustomerService) Create(ctx context.Context, in CustomerInput) (models.Customer, error) {
	c, err := in.toModel()
	if err != nil {
		return c, err
	}
	db, err := pickDB(s.DB)
	if err != nil {
		return c, err
	}
	id, err := repositories.CustomerRepository{DB: db}.Insert(ctx, c)
	if err != nil {
		return c, customerConflict(err)
	}
	c.ID = id
	utils.LogEvent(s.RequestID, "customer", "create", fmt.Sprintf("id=%d", id))
	return c, nil
}

func (s CustomerService) Update(ctx context.Context, id int64, in CustomerInput) (models.Customer, error) {
	c, err := in.toModel()
	if err != nil {
		return c, err
	}
	db, err := pickDB(s.DB)
	if err != nil {
		return c, err
	}
	c.ID = id
	n, err := repositories.CustomerRepository{DB: db}.Update(ctx, c)
	if err != nil {
		return c, customerConflict(err)
	}
	if n == 0 {
		return c, domain.NotFoundError{Resource: "customer"}
	}
	utils.LogEvent(s.RequestID, "customer", "update", fmt.Sprintf("id=%d", id))
	return c, nil
}

func (s CustomerService) Delete(ctx context.Context, id int64) error {
	db, err := pickDB(s.DB)
	if err != nil {
		return err
	}
	err = guardedDelete(ctx, db, "customer", "customers", id, []string{"customer_id"}, func(q intdb.DBTX) (int64, error) {
		return repositories.CustomerRepository{DB: q}.SoftDelete(ctx, id)
	})
	if err == nil {
		utils.LogEvent(s.RequestID, "customer", "delete", fmt.Sprintf("id=%d", id))
	}
	return err
}

// ---- locations

type LocationInput struct {
	CityName string `json:"city_name"`
	IsActive *bool  `json:"is_active"`
}

type LocationService struct {
	DB        *sql.DB
	RequestID string
}

func (in LocationInput) toModel() (models.Location, error) {
	fe := domain.FieldErrors{}
	l := models.Location{
		CityName: requireText(fe, "city_name", in.CityName, "nama kota", 100),
		IsActive: boolOr(in.IsActive, true),
	}
	return l, fe.Err()
}

func (s LocationService) List(ctx context.Context, activeOnly bool) ([]models.Location, error) {
	db, err := pickDB(s.DB)
	if err != nil {
		return nil, err
	}
	return repositories.LocationRepository{DB: db}.List(ctx, activeOnly)
}

func (s LocationService) Get(ctx context.Context, id int64) (models.Location, error) {
	db, err := pickDB(s.DB)
	if err != nil {
		return models.Location{}, err
	}
	l, err := repositories.LocationRepository{DB: db}.GetByID(ctx, id)
	return l, notFound(err, "location")
}

func (s LocationService) Create(ctx context.Context, in LocationInput) (models.Location, error) {
	l, err := in.toModel()
	if err != nil {
		return l, err
	}
	db, err := pickDB(s.DB)
	if err != nil {
		return l, err
	}
	id, err := repositories.LocationRepository{DB: db}.Insert(ctx, l)
	if err != nil {
		return l, err
	}
	l.ID = id
	utils.LogEvent(s.RequestID, "location", "create", fmt.Sprintf("id=%d", id))
	return l, nil
}

func (s LocationService) Update(ctx context.Context, id int64, in LocationInput) (models.Location, error) {
	l, err := in.toModel()
	if err != nil {
		return l, err
	}
	db, err := pickDB(s.DB)
	if err != nil {
		return l, err
	}
	l.ID = id
	n, err := repositories.LocationRepository{DB: db}.Update(ctx, l)
	if err != nil {
		return l, err
	}
	if n == 0 {
		return l, domain.NotFoundError{Resource: "location"}
	}
	return l, nil
}

func (s LocationService) Delete(ctx context.Context, id int64) error {
	db, err := pickDB(s.DB)
	if err != nil {
		return err
	}
	err = guardedDelete(ctx, db, "location", "locations", id, []string{"origin_id", "destination_id"}, func(q intdb.DBTX) (int64, error) {
		return repositories.LocationRepository{DB: q}.SoftDelete(ctx, id)
	})
	if err == nil {
		utils.LogEvent(s.RequestID, "location", "delete", fmt.Sprintf("id=%d", id))
	}
	return err
}

// ---- expense categories

type CategoryInput struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Notes    string `json:"notes"`
	IsActive *bool  `json:"is_active"`
}

type CategoryService struct {
	DB        *sql.DB
	Kinds     domain.KindSet
	RequestID string
}

func (s CategoryService) toModel(in CategoryInput) (models.ExpenseCategory, error) {
	fe := domain.FieldErrors{}
	c := models.ExpenseCategory{
		Name:     requireText(fe, "name", in.Name, "nama kategori", 100),
		Notes:    strings.TrimSpace(in.Notes),
		IsActive: boolOr(in.IsActive, true),
	}
	kind, ok := s.Kinds.ParseKind(in.Kind)
	if !ok {
		fe.Add("kind", "tipe harus salah satu dari: "+strings.Join(s.Kinds.Names(), ", "))
	}
	c.Kind = string(kind)
	return c, fe.Err()
}

func (s CategoryService) List(ctx context.Context, f repositories.CategoryFilter) ([]models.ExpenseCategory, error) {
	db, err := pickDB(s.DB)
	if err != nil {
		return nil, err
	}
	return repositories.CategoryRepository{DB: db}.List(ctx, f)
}

func (s CategoryService) Get(ctx context.Context, id int64) (models.ExpenseCategory, error) {
	db, err := pickDB(s.DB)
	if err != nil {
		return models.ExpenseCategory{}, err
	}
	c, err := repositories.CategoryRepository{DB: db}.GetByID(ctx, id)
	return c, notFound(err, "expense category")
}

func (s CategoryService) Create(ctx context.Context, in CategoryInput) (models.ExpenseCategory, error) {
	c, err := s.toModel(in)
	if err != nil {
		return c, err
	}
	db, err := pickDB(s.DB)
	if err != nil {
		return c, err
	}
	id, err := repositories.CategoryRepository{DB: db}.Insert(ctx, c)
	if err != nil {
		return c, err
	}
	c.ID = id
	utils.LogEvent(s.RequestID, "category", "create", fmt.Sprintf("id=%d kind=%s", id, c.Kind))
	return c, nil
}

func (s CategoryService) Update(ctx context.Context, id int64, in CategoryInput) (models.ExpenseCategory, error) {
	c, err := s.toModel(in)
	if err != nil {
		return c, err
	}
	db, err := pickDB(s.DB)
	if err != nil {
		return c, err
	}
	c.ID = id
	n, err := repositories.CategoryRepository{DB: db}.Update(ctx, c)
	if err != nil {
		return c, err
	}
	if n == 0 {
		return c, domain.NotFoundError{Resource: "expense category"}
	}
	return c, nil
}

// Delete is a plain soft delete; existing expenses keep their category id.
func (s CategoryService) Delete(ctx context.Context, id int64) error {
	db, err := pickDB(s.DB)
	if err != nil {
		return err
	}
	n, err := repositories.CategoryRepository{DB: db}.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "expense category"}
	}
	utils.LogEvent(s.RequestID, "category", "delete", fmt.Sprintf("id=%d", id))
	return nil
}
