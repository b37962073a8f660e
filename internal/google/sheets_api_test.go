package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Randidu/event-management-system/internal/models"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var colombo = time.FixedZone("Asia/Colombo", 5*3600+1800)

func setupMockServer(ctx context.Context) (*http.ServeMux, *httptest.Server, *SheetsService) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	srv, _ := sheets.NewService(ctx, option.WithEndpoint(server.URL), option.WithoutAuthentication())
	return mux, server, newSheetsService(srv, "tickets_tid", colombo, nil)
}

func TestSheetsService_TestConnection(t *testing.T) {
	ctx := context.Background()
	mux, server, s := setupMockServer(ctx)
	defer server.Close()
	mux.HandleFunc("/v4/spreadsheets/tickets_tid/values/Tickets!A1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sheets.ValueRange{Values: [][]interface{}{{"Booking ID"}}})
	})
	if err := s.TestConnection(ctx); err != nil {
		t.Errorf("TestConnection failed: %v", err)
	}
}

func TestSheetsService_TestConnection_Error(t *testing.T) {
	ctx := context.Background()
	mux, server, s := setupMockServer(ctx)
	defer server.Close()
	mux.HandleFunc("/v4/spreadsheets/tickets_tid/values/Tickets!A1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	if err := s.TestConnection(ctx); err == nil {
		t.Error("expected error for forbidden spreadsheet")
	}
}

func TestSheetsService_WarmUpCache(t *testing.T) {
	ctx := context.Background()
	mux, server, s := setupMockServer(ctx)
	defer server.Close()
	mux.HandleFunc("/v4/spreadsheets/tickets_tid/values/Tickets!A:A", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sheets.ValueRange{
			Values: [][]interface{}{{"Booking ID"}, {"123"}, {}, {"456"}},
		})
	})
	if err := s.WarmUpCache(ctx); err != nil {
		t.Fatalf("WarmUpCache failed: %v", err)
	}
	if row, ok := s.getCachedRow(123); !ok || row != 2 {
		t.Errorf("Expected row 2 for ID 123, got %d", row)
	}
	if row, ok := s.getCachedRow(456); !ok || row != 4 {
		t.Errorf("Expected row 4 for ID 456, got %d", row)
	}
}

func TestSheetsService_ReplaceTicketsSheet(t *testing.T) {
	ctx := context.Background()
	mux, server, s := setupMockServer(ctx)
	defer server.Close()

	cleared := false
	mux.HandleFunc("/v4/spreadsheets/tickets_tid/values/Tickets!A:I:clear", func(w http.ResponseWriter, r *http.Request) {
		cleared = true
		_ = json.NewEncoder(w).Encode(sheets.ClearValuesResponse{})
	})

	var written sheets.ValueRange
	mux.HandleFunc("/v4/spreadsheets/tickets_tid/values/Tickets!A1", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		_ = json.NewDecoder(r.Body).Decode(&written)
		_ = json.NewEncoder(w).Encode(sheets.UpdateValuesResponse{})
	})

	bookings := []models.Booking{
		{ID: 7, Quantity: 1, Status: models.BookingConfirmed, BookedAt: "2025-06-14T10:00:00"},
		{ID: 9, Quantity: 3, Status: models.BookingPending, BookedAt: "2025-06-13T10:00:00"},
	}
	if err := s.ReplaceTicketsSheet(ctx, bookings); err != nil {
		t.Fatalf("ReplaceTicketsSheet failed: %v", err)
	}
	if !cleared {
		t.Error("expected the sheet to be cleared first")
	}
	if len(written.Values) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(written.Values))
	}
	if written.Values[0][0] != "Booking ID" {
		t.Errorf("unexpected header cell %v", written.Values[0][0])
	}
	if row, _ := s.getCachedRow(9); row != 3 {
		t.Errorf("Expected cached row 3 for ID 9, got %d", row)
	}
}

func TestSheetsService_ReplaceTicketsSheet_ClearFails(t *testing.T) {
	ctx := context.Background()
	mux, server, s := setupMockServer(ctx)
	defer server.Close()
	mux.HandleFunc("/v4/spreadsheets/tickets_tid/values/Tickets!A:I:clear", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	s.setCachedRow(1, 2)

	if err := s.ReplaceTicketsSheet(ctx, []models.Booking{{ID: 1}}); err == nil {
		t.Fatal("expected error")
	}
	if row, ok := s.getCachedRow(1); !ok || row != 2 {
		t.Error("cache must survive a failed replace")
	}
}

func TestSheetsService_DeleteTicketRow(t *testing.T) {
	ctx := context.Background()
	mux, server, s := setupMockServer(ctx)
	defer server.Close()
	s.setCachedRow(456, 3)
	mux.HandleFunc("/v4/spreadsheets/tickets_tid/values/Tickets!A3:I3:clear", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sheets.ClearValuesResponse{})
	})
	if err := s.DeleteTicketRow(ctx, 456); err != nil {
		t.Errorf("DeleteTicketRow failed: %v", err)
	}
	if _, ok := s.getCachedRow(456); ok {
		t.Error("Expected 456 to be removed from cache")
	}
}

func TestSheetsService_DeleteTicketRow_Absent(t *testing.T) {
	ctx := context.Background()
	mux, server, s := setupMockServer(ctx)
	defer server.Close()
	mux.HandleFunc("/v4/spreadsheets/tickets_tid/values/Tickets!A:A", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sheets.ValueRange{Values: [][]interface{}{{"Booking ID"}, {"1"}}})
	})
	if err := s.DeleteTicketRow(ctx, 99); err != nil {
		t.Errorf("absent row should not be an error, got %v", err)
	}
}

func TestSheetsService_FindTicketRow(t *testing.T) {
	ctx := context.Background()
	mux, server, s := setupMockServer(ctx)
	defer server.Close()
	calls := 0
	mux.HandleFunc("/v4/spreadsheets/tickets_tid/values/Tickets!A:A", func(w http.ResponseWriter, r *http.Request) {
		calls++
		_ = json.NewEncoder(w).Encode(sheets.ValueRange{Values: [][]interface{}{{"Booking ID"}, {"5"}, {"12"}}})
	})

	row, err := s.FindTicketRow(ctx, 12)
	if err != nil || row != 3 {
		t.Fatalf("expected row 3, got %d (%v)", row, err)
	}
	if _, err := s.FindTicketRow(ctx, 12); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("second lookup should hit the cache, got %d calls", calls)
	}

	if _, err := s.FindTicketRow(ctx, 0); err == nil {
		t.Error("expected error for zero id")
	}
}

func TestSheetsService_SheetIDByName(t *testing.T) {
	ctx := context.Background()
	mux, server, s := setupMockServer(ctx)
	defer server.Close()
	mux.HandleFunc("/v4/spreadsheets/tickets_tid", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sheets.Spreadsheet{
			Sheets: []*sheets.Sheet{{Properties: &sheets.SheetProperties{Title: "Tickets", SheetId: 42}}},
		})
	})
	id, err := s.SheetIDByName(ctx, "Tickets")
	if err != nil || id != 42 {
		t.Errorf("expected 42, got %d (%v)", id, err)
	}
	if _, err := s.SheetIDByName(ctx, "Missing"); err == nil {
		t.Error("expected error for missing sheet")
	}
}

func TestSheetsService_FormatHeader(t *testing.T) {
	ctx := context.Background()
	mux, server, s := setupMockServer(ctx)
	defer server.Close()
	mux.HandleFunc("/v4/spreadsheets/tickets_tid", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sheets.Spreadsheet{
			Sheets: []*sheets.Sheet{{Properties: &sheets.SheetProperties{Title: "Tickets", SheetId: 1}}},
		})
	})
	batched := false
	mux.HandleFunc("/v4/spreadsheets/tickets_tid:batchUpdate", func(w http.ResponseWriter, r *http.Request) {
		batched = true
		_ = json.NewEncoder(w).Encode(sheets.BatchUpdateSpreadsheetResponse{})
	})
	if err := s.FormatHeader(ctx); err != nil {
		t.Fatalf("FormatHeader failed: %v", err)
	}
	if !batched {
		t.Error("expected a batch update")
	}
}

func TestServiceAccountEmail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")
	if err := os.WriteFile(path, []byte(`{"client_email":"ems@project.iam.gserviceaccount.com"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	email, err := ServiceAccountEmail(path)
	if err != nil || email != "ems@project.iam.gserviceaccount.com" {
		t.Errorf("unexpected %q (%v)", email, err)
	}
	if _, err := ServiceAccountEmail(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCellID(t *testing.T) {
	cases := []struct {
		row  []interface{}
		id   int64
		want bool
	}{
		{nil, 0, false},
		{[]interface{}{"Booking ID"}, 0, false},
		{[]interface{}{"17"}, 17, true},
		{[]interface{}{float64(3)}, 3, true},
		{[]interface{}{""}, 0, false},
	}
	for _, c := range cases {
		id, ok := cellID(c.row)
		if ok != c.want || (ok && id != c.id) {
			t.Errorf("cellID(%v) = %d, %v", c.row, id, ok)
		}
	}
}
