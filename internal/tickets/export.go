package tickets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Randidu/event-management-system/internal/models"

	"github.com/xuri/excelize/v2"
)

var ErrNothingToExport = errors.New("no bookings to export")

type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	case "":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

func (f ExportFormat) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Download is a generated file handed to the surface that asked for it.
type Download struct {
	FileName    string
	ContentType string
	Data        []byte
}

// SaveTo writes the file into dir and returns its path.
func (d *Download) SaveTo(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, d.FileName)
	if err := os.WriteFile(path, d.Data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

var exportHeader = []string{
	"Booking ID", "User Name", "User Email", "Event", "Quantity",
	"Total Price", "Status", "Payment Status", "Booked At",
}

const exportTimeLayout = "2006-01-02 15:04:05"

// ExportFileName embeds the UTC date of now.
func ExportFileName(now time.Time, f ExportFormat) string {
	return fmt.Sprintf("tickets_export_%s.%s", now.UTC().Format("2006-01-02"), f)
}

type exportRecord struct {
	id, quantity                  int64
	name, email, event            string
	price                         float64
	status, paymentStatus, booked string
}

func toRecord(b models.Booking, loc *time.Location) exportRecord {
	rec := exportRecord{
		id:            b.ID,
		quantity:      int64(b.Quantity),
		email:         notAvailable,
		event:         notAvailable,
		price:         b.ExportPrice(),
		status:        string(b.Status),
		paymentStatus: b.PaymentStatus,
		booked:        b.BookedAt,
	}
	if b.User != nil {
		rec.name = strings.TrimSpace(b.User.FirstName + " " + b.User.LastName)
		if b.User.Email != "" {
			rec.email = b.User.Email
		}
	}
	if title := b.EventTitle(); title != "" {
		rec.event = title
	}
	if rec.paymentStatus == "" {
		rec.paymentStatus = notAvailable
	}
	if t, ok := b.BookedTime(loc); ok {
		rec.booked = t.In(loc).Format(exportTimeLayout)
	}
	return rec
}

// Header returns the export column titles.
func Header() []string {
	return append([]string(nil), exportHeader...)
}

// Values is one booking as typed cells in Header order, for spreadsheet targets.
func Values(b models.Booking, loc *time.Location) []interface{} {
	rec := toRecord(b, loc)
	return []interface{}{
		rec.id, rec.name, rec.email, rec.event, rec.quantity,
		rec.price, rec.status, rec.paymentStatus, rec.booked,
	}
}

// ExportCSV serializes the whole store, one line per booking after the header.
// Text columns are quoted with embedded quotes doubled; numbers and enums are not.
// Lines are joined by "\n" without a trailing newline.
func ExportCSV(store []models.Booking, loc *time.Location) ([]byte, error) {
	if len(store) == 0 {
		return nil, ErrNothingToExport
	}

	lines := make([]string, 0, len(store)+1)
	lines = append(lines, strings.Join(exportHeader, ","))
	for _, b := range store {
		rec := toRecord(b, loc)
		fields := []string{
			strconv.FormatInt(rec.id, 10),
			quote(rec.name),
			quote(rec.email),
			quote(rec.event),
			strconv.FormatInt(rec.quantity, 10),
			strconv.FormatFloat(rec.price, 'f', -1, 64),
			rec.status,
			rec.paymentStatus,
			quote(rec.booked),
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	return []byte(strings.Join(lines, "\n")), nil
}

// quote wraps a text field. Line breaks become spaces so every booking stays
// on one line of the file.
func quote(s string) string {
	s = lineBreaks.Replace(s)
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

const exportSheet = "Tickets"

// ExportXLSX writes the same columns as ExportCSV into a single sheet workbook.
func ExportXLSX(store []models.Booking, loc *time.Location) ([]byte, error) {
	if len(store) == 0 {
		return nil, ErrNothingToExport
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	for i, h := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(exportSheet, cell, h)
	}

	for i, b := range store {
		row := i + 2
		for col, v := range Values(b, loc) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(exportSheet, cell, v)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err == nil {
		_ = f.SetCellStyle(exportSheet, "A1", "I1", headerStyle)
	}
	_ = f.SetColWidth(exportSheet, "A", "A", 12)
	_ = f.SetColWidth(exportSheet, "B", "D", 28)
	_ = f.SetColWidth(exportSheet, "E", "H", 16)
	_ = f.SetColWidth(exportSheet, "I", "I", 22)
	_ = f.SetPanes(exportSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	_ = f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildDownload dispatches on format and names the file after now.
func BuildDownload(store []models.Booking, format ExportFormat, loc *time.Location, now time.Time) (*Download, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatXLSX:
		data, err = ExportXLSX(store, loc)
	default:
		format = FormatCSV
		data, err = ExportCSV(store, loc)
	}
	if err != nil {
		return nil, err
	}
	return &Download{
		FileName:    ExportFileName(now, format),
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}
