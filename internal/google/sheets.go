package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/Randidu/event-management-system/internal/models"
	"github.com/Randidu/event-management-system/internal/tickets"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	TicketsSheet = "Tickets"
	lastColumn   = "I"
)

var ErrRowNotFound = errors.New("ticket row not found")

// SheetsService mirrors the bookings store into the Tickets tab of a spreadsheet.
type SheetsService struct {
	service       *sheets.Service
	spreadsheetID string
	loc           *time.Location
	logger        *zerolog.Logger
	rowCache      map[int64]int
	cacheMu       sync.RWMutex
}

func NewSheetsService(ctx context.Context, credentialsFile, spreadsheetID string, loc *time.Location, logger *zerolog.Logger) (*SheetsService, error) {
	credentialsJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	config, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %w", err)
	}

	return newSheetsService(srv, spreadsheetID, loc, logger), nil
}

func newSheetsService(srv *sheets.Service, spreadsheetID string, loc *time.Location, logger *zerolog.Logger) *SheetsService {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &SheetsService{
		service:       srv,
		spreadsheetID: spreadsheetID,
		loc:           loc,
		logger:        logger,
		rowCache:      make(map[int64]int),
	}
}

// StartCacheRefresh warms the row cache now and then on every interval until ctx ends.
func (s *SheetsService) StartCacheRefresh(ctx context.Context, interval time.Duration) {
	refresh := func() {
		rctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := s.WarmUpCache(rctx); err != nil {
			s.logger.Warn().Err(err).Msg("Sheets row cache refresh failed")
		}
	}

	refresh()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refresh()
		}
	}
}

func (s *SheetsService) TestConnection(ctx context.Context) error {
	_, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, TicketsSheet+"!A1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	return nil
}

// ServiceAccountEmail is the address the spreadsheet has to be shared with.
func ServiceAccountEmail(credentialsFile string) (string, error) {
	file, err := os.ReadFile(credentialsFile)
	if err != nil {
		return "", err
	}

	var creds struct {
		ClientEmail string `json:"client_email"`
	}
	if err := json.Unmarshal(file, &creds); err != nil {
		return "", err
	}
	return creds.ClientEmail, nil
}

// WarmUpCache rebuilds the booking id to row index cache from column A.
func (s *SheetsService) WarmUpCache(ctx context.Context) error {
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, TicketsSheet+"!A:A").Context(ctx).Do()
	if err != nil {
		return err
	}

	cache := make(map[int64]int, len(resp.Values))
	for i, row := range resp.Values {
		if id, ok := cellID(row); ok {
			cache[id] = i + 1
		}
	}

	s.cacheMu.Lock()
	s.rowCache = cache
	s.cacheMu.Unlock()
	return nil
}

// ReplaceTicketsSheet clears the tab and writes the header plus one row per booking.
func (s *SheetsService) ReplaceTicketsSheet(ctx context.Context, bookings []models.Booking) error {
	_, err := s.service.Spreadsheets.Values.Clear(s.spreadsheetID, TicketsSheet+"!A:"+lastColumn, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear tickets sheet: %w", err)
	}

	values := make([][]interface{}, 0, len(bookings)+1)
	header := make([]interface{}, 0, len(tickets.Header()))
	for _, h := range tickets.Header() {
		header = append(header, h)
	}
	values = append(values, header)
	for _, b := range bookings {
		values = append(values, tickets.Values(b, s.loc))
	}

	_, err = s.service.Spreadsheets.Values.Update(s.spreadsheetID, TicketsSheet+"!A1", &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to update tickets sheet: %w", err)
	}

	cache := make(map[int64]int, len(bookings))
	for i, b := range bookings {
		cache[b.ID] = i + 2
	}
	s.cacheMu.Lock()
	s.rowCache = cache
	s.cacheMu.Unlock()

	return nil
}

// DeleteTicketRow blanks the row of bookingID. A booking that is not in the
// sheet is already in the desired state.
func (s *SheetsService) DeleteTicketRow(ctx context.Context, bookingID int64) error {
	rowIdx, err := s.FindTicketRow(ctx, bookingID)
	if errors.Is(err, ErrRowNotFound) {
		s.logger.Debug().Int64("booking_id", bookingID).Msg("Ticket row already absent")
		return nil
	}
	if err != nil {
		return err
	}

	rangeData := fmt.Sprintf("%s!A%d:%s%d", TicketsSheet, rowIdx, lastColumn, rowIdx)
	_, err = s.service.Spreadsheets.Values.Clear(s.spreadsheetID, rangeData, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear ticket row %d: %w", rowIdx, err)
	}
	s.deleteCachedRow(bookingID)
	return nil
}

// FindTicketRow returns the 1-based row of bookingID, scanning column A on a cache miss.
func (s *SheetsService) FindTicketRow(ctx context.Context, bookingID int64) (int, error) {
	if bookingID == 0 {
		return 0, fmt.Errorf("booking id is required")
	}
	if row, ok := s.getCachedRow(bookingID); ok {
		return row, nil
	}

	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, TicketsSheet+"!A:A").Context(ctx).Do()
	if err != nil {
		return 0, err
	}
	for i, row := range resp.Values {
		if id, ok := cellID(row); ok && id == bookingID {
			s.setCachedRow(bookingID, i+1)
			return i + 1, nil
		}
	}
	return 0, ErrRowNotFound
}

// FormatHeader makes the header row bold and frozen.
func (s *SheetsService) FormatHeader(ctx context.Context) error {
	sheetID, err := s.SheetIDByName(ctx, TicketsSheet)
	if err != nil {
		return err
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{Requests: []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{SheetId: sheetID, StartRowIndex: 0, EndRowIndex: 1},
				Cell: &sheets.CellData{UserEnteredFormat: &sheets.CellFormat{
					TextFormat:      &sheets.TextFormat{Bold: true},
					BackgroundColor: &sheets.Color{Red: 0.88, Green: 0.88, Blue: 0.88},
				}},
				Fields: "userEnteredFormat(backgroundColor,textFormat)",
			},
		},
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId:        sheetID,
					GridProperties: &sheets.GridProperties{FrozenRowCount: 1},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
	}}

	if _, err := s.service.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to format header: %w", err)
	}
	return nil
}

func (s *SheetsService) SheetIDByName(ctx context.Context, sheetName string) (int64, error) {
	spreadsheet, err := s.service.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("unable to get spreadsheet: %w", err)
	}
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == sheetName {
			return sheet.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("sheet '%s' not found", sheetName)
}

func (s *SheetsService) getCachedRow(id int64) (int, bool) {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()
	row, ok := s.rowCache[id]
	return row, ok
}

func (s *SheetsService) setCachedRow(id int64, row int) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.rowCache[id] = row
}

func (s *SheetsService) deleteCachedRow(id int64) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	delete(s.rowCache, id)
}

// cellID reads a booking id from the first cell of a row; the header and
// blanked rows yield false.
func cellID(row []interface{}) (int64, bool) {
	if len(row) == 0 {
		return 0, false
	}
	switch v := row[0].(type) {
	case float64:
		return int64(v), v > 0
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		return id, err == nil && id > 0
	default:
		return 0, false
	}
}
