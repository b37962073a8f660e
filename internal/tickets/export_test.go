package tickets

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Randidu/event-management-system/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportCSV(t *testing.T) {
	store := []models.Booking{
		booking(1, "John", `"Johnny" Doe`, "Jazz Night", models.BookingConfirmed, "2025-06-14T10:00:00"),
		{ID: 2, Quantity: 2, Status: models.BookingPending, BookedAt: "not a date"},
	}
	store[0].PaymentStatus = "PAID"

	data, err := ExportCSV(store, colombo)
	require.NoError(t, err)

	lines := strings.Split(string(data), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Booking ID,User Name,User Email,Event,Quantity,Total Price,Status,Payment Status,Booked At", lines[0])
	assert.Equal(t, `1,"John ""Johnny"" Doe","user1@ems.lk","Jazz Night",1,100,CONFIRMED,PAID,"2025-06-14 10:00:00"`, lines[1])
	assert.Equal(t, `2,"","N/A","N/A",2,0,PENDING,N/A,"not a date"`, lines[2])
}

func TestExportCSV_IgnoresFilterAndPage(t *testing.T) {
	store := sampleStore(23)
	data, err := ExportCSV(store, colombo)
	require.NoError(t, err)
	assert.Len(t, strings.Split(string(data), "\n"), len(store)+1)
}

func TestExportCSV_MultilineFields(t *testing.T) {
	store := sampleStore(3)
	store[0].Event.Title = "Jazz\nNight"
	store[1].User.LastName = "Silva\r\nPerera"
	store[2].Event.Title = "Rock\rFest"

	data, err := ExportCSV(store, colombo)
	require.NoError(t, err)

	lines := strings.Split(string(data), "\n")
	require.Len(t, lines, len(store)+1)
	assert.Contains(t, lines[1], `"Jazz Night"`)
	assert.Contains(t, lines[2], `"First2 Silva Perera"`)
	assert.NotContains(t, string(data), "\r")
}

func TestDownloadSaveTo(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	dl := &Download{FileName: "tickets_export_2025-06-15.csv", Data: []byte("Booking ID")}

	path, err := dl.SaveTo(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, dl.FileName), path)

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Booking ID", string(saved))
}

func TestExportCSV_Empty(t *testing.T) {
	_, err := ExportCSV(nil, colombo)
	assert.ErrorIs(t, err, ErrNothingToExport)

	_, err = ExportXLSX([]models.Booking{}, colombo)
	assert.ErrorIs(t, err, ErrNothingToExport)
}

func TestExportXLSX(t *testing.T) {
	store := sampleStore(3)
	data, err := ExportXLSX(store, colombo)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{exportSheet}, f.GetSheetList())
	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, exportHeader, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "First1 Last", rows[1][1])
}

func TestBuildDownload(t *testing.T) {
	now := time.Date(2025, 6, 15, 2, 0, 0, 0, colombo)

	dl, err := BuildDownload(sampleStore(2), FormatCSV, colombo, now)
	require.NoError(t, err)
	// 02:00 in Colombo is still the 14th in UTC
	assert.Equal(t, "tickets_export_2025-06-14.csv", dl.FileName)
	assert.Equal(t, "text/csv; charset=utf-8", dl.ContentType)

	dl, err = BuildDownload(sampleStore(2), FormatXLSX, colombo, now)
	require.NoError(t, err)
	assert.Equal(t, "tickets_export_2025-06-14.xlsx", dl.FileName)
	assert.NotEmpty(t, dl.Data)
}

func TestParseExportFormat(t *testing.T) {
	f, err := ParseExportFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseExportFormat(" XLSX ")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseExportFormat("pdf")
	assert.Error(t, err)
}
