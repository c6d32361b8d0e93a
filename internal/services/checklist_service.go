package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"armada/internal/domain"
	"armada/internal/domain/models"
	"armada/internal/repositories"
	"armada/internal/utils"
)

type ChecklistInput struct {
	DocumentNumber string `json:"document_number"`
	DocumentDate   string `json:"document_date"`
	Notes          string `json:"notes"`
}

// ChecklistService tracks delivery notes (surat jalan) until they are returned signed.
type ChecklistService struct {
	DB        *sql.DB
	RequestID string
}

func (in ChecklistInput) toModel() (models.DeliveryChecklist, error) {
	fe := domain.FieldErrors{}
	c := models.DeliveryChecklist{
		DocumentNumber: requireText(fe, "document_number", in.DocumentNumber, "nomor surat jalan", 255),
		DocumentDate:   parseRequiredDate(fe, "document_date", in.DocumentDate, "tanggal surat"),
		Notes:          strings.TrimSpace(in.Notes),
	}
	return c, fe.Err()
}

func (s ChecklistService) List(ctx context.Context, f repositories.ChecklistFilter) ([]models.DeliveryChecklist, error) {
	if st := strings.TrimSpace(f.Status); st != "" && st != "all" {
		parsed, ok := domain.ParseChecklistStatus(st)
		if !ok {
			return nil, domain.NewValidation("status", "status tidak valid")
		}
		f.Status = string(parsed)
	}
	db, err := pickDB(s.DB)
	if err != nil {
		return nil, err
	}
	return repositories.ChecklistRepository{DB: db}.List(ctx, f)
}

func (s ChecklistService) Get(ctx context.Context, id int64) (models.DeliveryChecklist, error) {
	db, err := pickDB(s.DB)
	if err != nil {
		return models.DeliveryChecklist{}, err
	}
	c, err := repositories.ChecklistRepository{DB: db}.GetByID(ctx, id)
	return c, notFound(err, "checklist")
}

func (s ChecklistService) Create(ctx context.Context, in ChecklistInput) (models.DeliveryChecklist, error) {
	c, err := in.toModel()
	if err != nil {
		return c, err
	}
	db, err := pickDB(s.DB)
	if err != nil {
		return c, err
	}
	c.Status = string(domain.ChecklistPending)
	id, err := repositories.ChecklistRepository{DB: db}.Insert(ctx, c)
	if err != nil {
		return c, err
	}
	c.ID = id
	utils.LogEvent(s.RequestID, "checklist", "create", fmt.Sprintf("id=%d number=%s", id, c.DocumentNumber))
	return c, nil
}

func (s ChecklistService) Update(ctx context.Context, id int64, in ChecklistInput) (models.DeliveryChecklist, error) {
	c, err := in.toModel()
	if err != nil {
		return c, err
	}
	db, err := pickDB(s.DB)
	if err != nil {
		return c, err
	}
	c.ID = id
	n, err := repositories.ChecklistRepository{DB: db}.Update(ctx, c)
	if err != nil {
		return c, err
	}
	if n == 0 {
		return c, domain.NotFoundError{Resource: "checklist"}
	}
	return c, nil
}

// Complete marks a pending checklist as done. Completing twice is a lifecycle error.
func (s ChecklistService) Complete(ctx context.Context, id int64) (models.DeliveryChecklist, error) {
	db, err := pickDB(s.DB)
	if err != nil {
		return models.DeliveryChecklist{}, err
	}
	repo := repositories.ChecklistRepository{DB: db}

	c, err := repo.GetByID(ctx, id)
	if err != nil {
		return c, notFound(err, "checklist")
	}
	if domain.ChecklistStatus(c.Status) != domain.ChecklistPending {
		return c, domain.InvalidTransitionError{Resource: "checklist", From: c.Status, To: string(domain.ChecklistCompleted)}
	}

	at := utils.Now()
	n, err := repo.MarkCompleted(ctx, id, at)
	if err != nil {
		return c, err
	}
	if n == 0 {
		return c, domain.InvalidTransitionError{Resource: "checklist", From: c.Status, To: string(domain.ChecklistCompleted)}
	}
	c.Status = string(domain.ChecklistCompleted)
	c.CompletedAt = &at
	utils.LogEvent(s.RequestID, "checklist", "complete", fmt.Sprintf("id=%d", id))
	return c, nil
}

func (s ChecklistService) Delete(ctx context.Context, id int64) error {
	db, err := pickDB(s.DB)
	if err != nil {
		return err
	}
	n, err := repositories.ChecklistRepository{DB: db}.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "checklist"}
	}
	utils.LogEvent(s.RequestID, "checklist", "delete", fmt.Sprintf("id=%d", id))
	return nil
}
