package tickets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Randidu/event-management-system/internal/backend"
	"github.com/Randidu/event-management-system/internal/events"
	"github.com/Randidu/event-management-system/internal/i18n"
	"github.com/Randidu/event-management-system/internal/metrics"
	"github.com/Randidu/event-management-system/internal/models"

	"github.com/rs/zerolog"
)

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseLoading    Phase = "loading"
	PhaseLoaded     Phase = "loaded"
	PhaseLoadFailed Phase = "load_failed"
	PhaseFiltering  Phase = "filtering"
	PhaseDeleting   Phase = "deleting"
)

var (
	ErrNotLoaded       = errors.New("tickets are not loaded")
	ErrBookingNotFound = errors.New("booking not in store")
)

// Source is the backend as the tickets view sees it.
type Source interface {
	ListAllBookings(ctx context.Context, token string) ([]models.Booking, error)
	ListEvents(ctx context.Context) ([]models.EventOption, error)
	DeleteBooking(ctx context.Context, token string, id int64) error
}

// EventsInvalidator is a Source whose event options are cached.
type EventsInvalidator interface {
	InvalidateEvents(ctx context.Context)
}

type Publisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// Confirmer decides whether a destructive command goes ahead.
type Confirmer interface {
	Confirm(ctx context.Context, b models.Booking) bool
}

type ConfirmFunc func(ctx context.Context, b models.Booking) bool

func (f ConfirmFunc) Confirm(ctx context.Context, b models.Booking) bool { return f(ctx, b) }

// Confirmed is a fixed answer, used when the surface already asked the user.
type Confirmed bool

func (c Confirmed) Confirm(context.Context, models.Booking) bool { return bool(c) }

// Command is one user action on the tickets view.
type Command interface{ isCommand() }

type Load struct{}

type ApplyFilter struct{ Filter models.TicketFilter }

type GoToPage struct{ Page int }

type DeleteBooking struct {
	ID      int64
	Confirm Confirmer
}

type Export struct{ Format ExportFormat }

func (Load) isCommand()          {}
func (ApplyFilter) isCommand()   {}
func (GoToPage) isCommand()      {}
func (DeleteBooking) isCommand() {}
func (Export) isCommand()        {}

// Outcome tells the surface what to show after a command.
type Outcome struct {
	Notice   *i18n.Message
	IsError  bool
	Redirect string
	Download *Download
	Changed  bool
}

type Deps struct {
	Source    Source
	Renderer  *Renderer
	Publisher Publisher
	Logger    *zerolog.Logger
	Location  *time.Location
	Clock     func() time.Time
	PageSize  int
	LoginPath string
	// ExportDir keeps a copy of every export. Empty disables it.
	ExportDir string
}

// View owns the store, filter, page cursor and phase of one tickets view.
// It is not safe for concurrent use; surfaces serialize commands per session.
type View struct {
	deps  Deps
	token string
	actor string

	phase     Phase
	store     []models.Booking
	eventOpts []models.EventOption
	filter    models.TicketFilter
	filtered  []models.Booking
	page      int
	loadErr   string
	loadedAt  time.Time
}

func NewView(deps Deps, token, actor string) *View {
	if deps.Location == nil {
		deps.Location = time.Local
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.PageSize <= 0 {
		deps.PageSize = models.DefaultPageSize
	}
	if deps.Logger == nil {
		nop := zerolog.Nop()
		deps.Logger = &nop
	}
	return &View{deps: deps, token: token, actor: actor, phase: PhaseIdle, page: 1}
}

// Restore loads persisted state. A nil state leaves the view idle.
func (v *View) Restore(st *models.TicketsState) {
	if st == nil {
		return
	}
	v.phase = Phase(st.Phase)
	if v.phase == "" || v.phase == PhaseLoading || v.phase == PhaseFiltering || v.phase == PhaseDeleting {
		// a request died mid command; the store is still the last good one
		v.phase = PhaseLoaded
		if st.Store == nil {
			v.phase = PhaseIdle
		}
	}
	v.store = st.Store
	v.eventOpts = st.Events
	v.filter = st.Filter
	v.loadErr = st.LoadError
	v.loadedAt = st.LoadedAt
	v.rederive()
	v.page = ClampPage(st.Page, len(v.filtered), v.deps.PageSize)
}

func (v *View) State() *models.TicketsState {
	return &models.TicketsState{
		Phase:     string(v.phase),
		Store:     v.store,
		Events:    v.eventOpts,
		Filter:    v.filter,
		Page:      v.page,
		LoadError: v.loadErr,
		LoadedAt:  v.loadedAt,
	}
}

func (v *View) Phase() Phase                 { return v.phase }
func (v *View) Filter() models.TicketFilter  { return v.filter }
func (v *View) Page() int                    { return v.page }
func (v *View) Store() []models.Booking      { return v.store }
func (v *View) Filtered() []models.Booking   { return v.filtered }
func (v *View) Events() []models.EventOption { return v.eventOpts }

// Dispatch applies cmd. The error is informational: the outcome always carries
// what the user should see, and the view stays usable after any failure.
func (v *View) Dispatch(ctx context.Context, cmd Command) (Outcome, error) {
	switch c := cmd.(type) {
	case Load:
		return v.load(ctx)
	case ApplyFilter:
		return v.applyFilter(c.Filter)
	case GoToPage:
		return v.goToPage(c.Page)
	case DeleteBooking:
		return v.deleteBooking(ctx, c)
	case Export:
		return v.export(c.Format)
	default:
		return Outcome{}, fmt.Errorf("unknown command %T", cmd)
	}
}

func (v *View) load(ctx context.Context) (Outcome, error) {
	if v.token == "" {
		return Outcome{Notice: i18n.M(i18n.AuthRequired), IsError: true, Redirect: v.deps.LoginPath}, backend.ErrAuthMissing
	}

	prev := v.phase
	v.phase = PhaseLoading
	bookings, err := v.deps.Source.ListAllBookings(ctx, v.token)
	if err != nil {
		if backend.IsAuthError(err) {
			v.phase = prev
			return Outcome{Notice: i18n.M(i18n.AuthRequired), IsError: true, Redirect: v.deps.LoginPath}, err
		}
		v.deps.Logger.Error().Err(err).Msg("Error loading bookings")
		v.phase = PhaseLoadFailed
		v.loadErr = err.Error()
		return Outcome{Notice: i18n.M(i18n.TicketsLoadFailed), IsError: true, Changed: true}, err
	}

	if prev == PhaseLoaded || prev == PhaseLoadFailed {
		if inv, ok := v.deps.Source.(EventsInvalidator); ok {
			inv.InvalidateEvents(ctx)
		}
	}
	opts, err := v.deps.Source.ListEvents(ctx)
	if err != nil {
		v.deps.Logger.Warn().Err(err).Msg("Could not load events filter")
		opts = v.eventOpts
	}

	v.store = bookings
	v.eventOpts = opts
	v.loadErr = ""
	v.loadedAt = v.deps.Clock()
	v.phase = PhaseLoaded
	v.rederive()
	v.page = 1

	v.publish(events.EventTicketsLoaded, events.TicketsLoadedPayload{
		Count:    len(v.store),
		Actor:    v.actor,
		LoadedAt: v.loadedAt,
		Bookings: v.store,
	})
	return Outcome{Changed: true}, nil
}

func (v *View) applyFilter(f models.TicketFilter) (Outcome, error) {
	loaded := v.phase == PhaseLoaded
	if loaded {
		v.phase = PhaseFiltering
	}
	v.filter = f
	v.rederive()
	v.page = 1
	if loaded {
		v.phase = PhaseLoaded
	}
	return Outcome{Changed: loaded}, nil
}

func (v *View) goToPage(page int) (Outcome, error) {
	if page < 1 || page > PageCount(len(v.filtered), v.deps.PageSize) || page == v.page {
		return Outcome{}, nil
	}
	v.page = page
	return Outcome{Changed: true}, nil
}

func (v *View) deleteBooking(ctx context.Context, c DeleteBooking) (Outcome, error) {
	if v.phase != PhaseLoaded {
		return Outcome{Notice: i18n.M(i18n.TicketsLoadFailed), IsError: true}, ErrNotLoaded
	}
	idx := models.FindBooking(v.store, c.ID)
	if idx < 0 {
		return Outcome{Notice: i18n.M(i18n.BookingNotFound, c.ID), IsError: true}, ErrBookingNotFound
	}
	target := v.store[idx]

	if c.Confirm == nil || !c.Confirm.Confirm(ctx, target) {
		return Outcome{}, nil
	}
	if v.token == "" {
		return Outcome{Notice: i18n.M(i18n.AuthRequired), IsError: true, Redirect: v.deps.LoginPath}, backend.ErrAuthMissing
	}

	v.phase = PhaseDeleting
	err := v.deps.Source.DeleteBooking(ctx, v.token, c.ID)
	v.phase = PhaseLoaded
	if err != nil {
		metrics.IncDelete("failed")
		v.deps.Logger.Error().Err(err).Int64("booking_id", c.ID).Msg("Error deleting booking")
		return Outcome{Notice: i18n.M(i18n.ActionFailed, deleteErrorMessage(err)), IsError: true}, err
	}
	metrics.IncDelete("ok")

	v.store = removeBooking(v.store, c.ID)
	v.rederive()
	v.page = ClampPage(v.page, len(v.filtered), v.deps.PageSize)

	payload := events.BookingDeletedPayload{
		BookingID:  target.ID,
		EventTitle: target.EventTitle(),
		Status:     string(target.Status),
		Actor:      v.actor,
		DeletedAt:  v.deps.Clock(),
	}
	if target.User != nil {
		payload.UserName = target.User.FullName()
		payload.UserEmail = target.User.Email
	}
	v.publish(events.EventBookingDeleted, payload)

	return Outcome{Notice: i18n.M(i18n.DeleteSucceeded), Changed: true}, nil
}

func (v *View) export(format ExportFormat) (Outcome, error) {
	dl, err := BuildDownload(v.store, format, v.deps.Location, v.deps.Clock())
	if errors.Is(err, ErrNothingToExport) {
		return Outcome{Notice: i18n.M(i18n.NothingToExport)}, err
	}
	if err != nil {
		v.deps.Logger.Error().Err(err).Str("format", string(format)).Msg("Error exporting tickets")
		return Outcome{Notice: i18n.M(i18n.ActionFailed, err.Error()), IsError: true}, err
	}
	metrics.IncExport(string(format))

	if v.deps.ExportDir != "" {
		path, err := dl.SaveTo(v.deps.ExportDir)
		if err != nil {
			v.deps.Logger.Warn().Err(err).Str("dir", v.deps.ExportDir).Msg("Could not keep export copy")
		} else {
			v.deps.Logger.Info().Str("path", path).Int("count", len(v.store)).Msg("Export saved")
		}
	}

	v.publish(events.EventTicketsExported, events.TicketsExportedPayload{
		Format:   string(format),
		Count:    len(v.store),
		FileName: dl.FileName,
		Actor:    v.actor,
		At:       v.deps.Clock(),
	})
	return Outcome{Notice: i18n.M(i18n.ExportReady, len(v.store)), Download: dl}, nil
}

func (v *View) rederive() {
	now := v.deps.Clock().In(v.deps.Location)
	v.filtered = Apply(v.store, v.filter, now)
}

func (v *View) publish(eventType string, payload interface{}) {
	if v.deps.Publisher == nil {
		return
	}
	if err := v.deps.Publisher.PublishJSON(eventType, payload); err != nil {
		v.deps.Logger.Warn().Err(err).Str("event", eventType).Msg("event handler failed")
	}
}

// removeBooking drops the first booking with id into a fresh slice, so
// snapshots taken earlier keep their contents.
func removeBooking(store []models.Booking, id int64) []models.Booking {
	idx := models.FindBooking(store, id)
	if idx < 0 {
		return store
	}
	out := make([]models.Booking, 0, len(store)-1)
	out = append(out, store[:idx]...)
	return append(out, store[idx+1:]...)
}

// deleteErrorMessage prefers the server detail over a status line fallback.
func deleteErrorMessage(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return "Failed to delete booking: " + apiErr.StatusLine()
	}
	return err.Error()
}
