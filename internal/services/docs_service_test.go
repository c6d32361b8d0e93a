package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"armada/internal/domain/models"

	"github.com/shopspring/decimal"
)

func TestDocsServiceGenerate(t *testing.T) {
	trip := models.Trip{
		ID:               7,
		TripDate:         "2026-01-21",
		PlateNumber:      "B 1234 CD",
		VehicleType:      "Tronton",
		OriginName:       "Jakarta",
		DestinationName:  "Surabaya",
		Status:           "ongoing",
		Allowance:        decimal.NewFromInt(2000000),
		TotalExpense:     decimal.NewFromInt(800000),
		RemainingBalance: decimal.NewFromInt(1200000),
		TripNotes:        "Pengiriman barang ke Surabaya",
	}

	svc := DocsService{
		TripLoader: func(_ context.Context, id int64) (models.Trip, error) {
			trip.ID = id
			return trip, nil
		},
		ReportLoader: func(_ context.Context, f AllowanceReportFilter) (AllowanceReport, error) {
			trips := []models.Trip{trip}
			sum, per := summarizeAllowance(trips)
			return AllowanceReport{StartDate: "2026-01-01", EndDate: "2026-01-31", Trips: trips, Summary: sum, PerVehicle: per}, nil
		},
	}

	pdf, filename, err := svc.GenerateSuratJalan(context.Background(), 7)
	if err != nil {
		t.Fatalf("GenerateSuratJalan returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("surat jalan is not a pdf")
	}
	if filename != "SURAT_JALAN_SJ-20260121-0007.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}

	report, name, err := svc.GenerateAllowanceReport(context.Background(), AllowanceReportFilter{})
	if err != nil {
		t.Fatalf("GenerateAllowanceReport returned error: %v", err)
	}
	if len(report) == 0 || !strings.HasPrefix(name, "REKAP_UANG_SANGU_2026-01-01") {
		t.Fatalf("unexpected report output len=%d name=%q", len(report), name)
	}
}
