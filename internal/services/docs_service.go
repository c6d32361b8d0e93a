package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"armada/internal/domain/models"
	"armada/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the trip delivery note (surat jalan) and the allowance recap as PDF.
type DocsService struct {
	Trips     TripService
	Reports   ReportService
	RequestID string

	TripLoader   func(ctx context.Context, id int64) (models.Trip, error)
	ReportLoader func(ctx context.Context, f AllowanceReportFilter) (AllowanceReport, error)
}

func (s DocsService) loadTrip(ctx context.Context, id int64) (models.Trip, error) {
	if s.TripLoader != nil {
		return s.TripLoader(ctx, id)
	}
	return s.Trips.GetTrip(ctx, id)
}

func (s DocsService) loadReport(ctx context.Context, f AllowanceReportFilter) (AllowanceReport, error) {
	if s.ReportLoader != nil {
		return s.ReportLoader(ctx, f)
	}
	return s.Reports.Allowance(ctx, f)
}

func (s DocsService) GenerateSuratJalan(ctx context.Context, tripID int64) ([]byte, string, error) {
	t, err := s.loadTrip(ctx, tripID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "surat_jalan", fmt.Sprintf("trip_id=%d", tripID))
	return buildSuratJalanPDF(t)
}

func (s DocsService) GenerateAllowanceReport(ctx context.Context, f AllowanceReportFilter) ([]byte, string, error) {
	rep, err := s.loadReport(ctx, f)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "allowance_report", rep.StartDate+".."+rep.EndDate)
	return buildAllowanceReportPDF(rep)
}

func buildSuratJalanPDF(t models.Trip) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Surat Jalan", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "SURAT JALAN")
	pdf.Ln(12)

	docNo := suratJalanNumber(t)
	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("No Surat Jalan : %s", docNo),
		fmt.Sprintf("Tanggal Trip   : %s", safe(t.TripDate, "-")),
		fmt.Sprintf("Kendaraan      : %s (%s)", safe(t.PlateNumber, "-"), safe(t.VehicleType, "-")),
		fmt.Sprintf("Pelanggan      : %s", safe(t.CustomerName, "-")),
		fmt.Sprintf("Rute           : %s -> %s", safe(t.OriginName, "-"), safe(t.DestinationName, "-")),
		fmt.Sprintf("Status         : %s", safe(t.Status, "-")),
		fmt.Sprintf("Uang Sangu     : %s", utils.FormatRupiah(t.Allowance)),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}

	if notes := strings.TrimSpace(t.TripNotes); notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Catatan:")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, notes, "", "", false)
	}

	pdf.Ln(16)
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(90, 6, "Pengirim,", "", 0, "C", false, 0, "")
	pdf.CellFormat(90, 6, "Penerima,", "", 1, "C", false, 0, "")
	pdf.Ln(20)
	pdf.CellFormat(90, 6, "(____________________)", "", 0, "C", false, 0, "")
	pdf.CellFormat(90, 6, "(____________________)", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("SURAT_JALAN_%s.pdf", utils.SafeFilenamePart(docNo))
	return buf.Bytes(), filename, nil
}

func buildAllowanceReportPDF(rep AllowanceReport) ([]byte, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Rekap Uang Sangu", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "REKAP UANG SANGU TRIP")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Periode: %s s/d %s", rep.StartDate, rep.EndDate))
	pdf.Ln(6)
	if rep.Status != "" {
		pdf.Cell(0, 6, "Status: "+rep.Status)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	widths := []float64{28, 35, 55, 30, 40, 40, 40}
	header := []string{"Tanggal", "Kendaraan", "Rute", "Status", "Uang Sangu", "Total Biaya", "Sisa"}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range header {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, t := range rep.Trips {
		row := []string{
			safe(t.TripDate, "-"),
			safe(t.PlateNumber, "-"),
			safe(t.OriginName, "-") + " -> " + safe(t.DestinationName, "-"),
			safe(t.Status, "-"),
			utils.FormatRupiah(t.Allowance),
			utils.FormatRupiah(t.TotalExpense),
			utils.FormatRupiah(t.RemainingBalance),
		}
		for i, v := range row {
			align := "L"
			if i >= 4 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 6, v, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 11)
	sum := rep.Summary
	pdf.Cell(0, 6, fmt.Sprintf("Total Trip: %d", sum.TotalTrips))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Total Uang Sangu: "+utils.FormatRupiah(sum.TotalAllowance))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Total Biaya: "+utils.FormatRupiah(sum.TotalExpense))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Total Sisa: "+utils.FormatRupiah(sum.TotalRemaining))
	pdf.Ln(6)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("REKAP_UANG_SANGU_%s_%s.pdf", utils.SafeFilenamePart(rep.StartDate), utils.SafeFilenamePart(rep.EndDate))
	return buf.Bytes(), filename, nil
}

// suratJalanNumber is SJ-<yyyymmdd>-<id>.
func suratJalanNumber(t models.Trip) string {
	return fmt.Sprintf("SJ-%s-%04d", strings.ReplaceAll(safe(t.TripDate, "00000000"), "-", ""), t.ID)
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
