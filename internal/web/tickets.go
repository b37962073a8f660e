package web

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Randidu/event-management-system/internal/i18n"
	"github.com/Randidu/event-management-system/internal/models"
	"github.com/Randidu/event-management-system/internal/tickets"

	"github.com/gorilla/mux"
)

type bucketOption struct {
	Value string
	Label i18n.Key
}

var bucketOptions = []bucketOption{
	{Value: string(models.BucketToday), Label: i18n.BucketToday},
	{Value: string(models.BucketWeek), Label: i18n.BucketWeek},
	{Value: string(models.BucketMonth), Label: i18n.BucketMonth},
	{Value: string(models.BucketYear), Label: i18n.BucketYear},
}

var statusOptions = []models.BookingStatus{
	models.BookingPending,
	models.BookingConfirmed,
	models.BookingCancelled,
	models.BookingRefunded,
}

type ticketsPage struct {
	Snapshot tickets.Snapshot
	Statuses []models.BookingStatus
	Buckets  []bucketOption
}

type confirmPage struct {
	Row tickets.Row
}

// ticketsView rebuilds the session's tickets view for this request.
func (s *Server) ticketsView(r *http.Request, session *models.SessionState) *tickets.View {
	tok := token(r)
	s.currentUser(r.Context(), session, tok)
	view := tickets.NewView(tickets.Deps{
		Source:    s.Backend,
		Renderer:  s.Renderer,
		Publisher: s.Publisher,
		Logger:    &s.logger,
		Location:  s.Location,
		Clock:     s.Clock,
		PageSize:  s.cfg.Tickets.PageSize,
		LoginPath: s.cfg.Backend.LoginPath,
		ExportDir: s.cfg.Exports.Path,
	}, tok, s.actor(session))
	view.Restore(session.Tickets)
	return view
}

// follow applies an outcome's notice and redirect. It reports whether the
// response has been written.
func (s *Server) follow(w http.ResponseWriter, r *http.Request, session *models.SessionState, view *tickets.View, out tickets.Outcome, err error) bool {
	session.Tickets = view.State()
	if out.Redirect == s.cfg.Backend.LoginPath {
		s.redirectToLogin(w, r, session, err)
		return true
	}
	s.notify(session, out.Notice, out.IsError)
	if out.Redirect != "" {
		http.Redirect(w, r, out.Redirect, http.StatusSeeOther)
		return true
	}
	return false
}

func (s *Server) handleTickets(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	view := s.ticketsView(r, session)
	ctx := r.Context()

	if view.Phase() == tickets.PhaseIdle {
		out, err := view.Dispatch(ctx, tickets.Load{})
		if s.follow(w, r, session, view, out, err) {
			return
		}
	}

	q := r.URL.Query()
	if hasFilterParams(q) {
		if f := filterFromQuery(q); f != view.Filter() {
			_, _ = view.Dispatch(ctx, tickets.ApplyFilter{Filter: f})
		}
	}
	if p := q.Get("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			_, _ = view.Dispatch(ctx, tickets.GoToPage{Page: n})
		}
	}
	session.Tickets = view.State()

	s.render(w, r, http.StatusOK, "tickets", ticketsPage{
		Snapshot: view.Snapshot(),
		Statuses: statusOptions,
		Buckets:  bucketOptions,
	})
}

func (s *Server) handleTicketsReload(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	view := s.ticketsView(r, session)
	out, err := view.Dispatch(r.Context(), tickets.Load{})
	if s.follow(w, r, session, view, out, err) {
		return
	}
	http.Redirect(w, r, ticketsPath, http.StatusSeeOther)
}

func (s *Server) handleTicketsExport(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	format, err := tickets.ParseExportFormat(mux.Vars(r)["format"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view := s.ticketsView(r, session)
	if view.Phase() == tickets.PhaseIdle {
		out, err := view.Dispatch(r.Context(), tickets.Load{})
		if s.follow(w, r, session, view, out, err) {
			return
		}
	}

	out, err := view.Dispatch(r.Context(), tickets.Export{Format: format})
	if out.Download == nil {
		s.follow(w, r, session, view, out, err)
		http.Redirect(w, r, ticketsPath, http.StatusSeeOther)
		return
	}
	session.Tickets = view.State()

	dl := out.Download
	w.Header().Set("Content-Type", dl.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+dl.FileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(dl.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(dl.Data)
}

func (s *Server) handleDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	view := s.ticketsView(r, session)
	idx := models.FindBooking(view.Store(), id)
	if idx < 0 {
		s.notify(session, i18n.M(i18n.BookingNotFound, id), true)
		http.Redirect(w, r, ticketsPath, http.StatusSeeOther)
		return
	}
	s.render(w, r, http.StatusOK, "confirm_delete", confirmPage{Row: s.Renderer.Row(view.Store()[idx])})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	view := s.ticketsView(r, session)
	out, err := view.Dispatch(r.Context(), tickets.DeleteBooking{
		ID:      id,
		Confirm: tickets.Confirmed(r.FormValue("confirm") == "yes"),
	})
	if s.follow(w, r, session, view, out, err) {
		return
	}
	http.Redirect(w, r, ticketsPath, http.StatusSeeOther)
}

func hasFilterParams(q url.Values) bool {
	for _, k := range []string{"q", "status", "event", "date"} {
		if q.Has(k) {
			return true
		}
	}
	return false
}

// filterFromQuery reads the filter form. Missing or malformed values mean
// no constraint for that criterion.
func filterFromQuery(q url.Values) models.TicketFilter {
	eventID, err := strconv.ParseInt(strings.TrimSpace(q.Get("event")), 10, 64)
	if err != nil || eventID < 0 {
		eventID = 0
	}
	return models.TicketFilter{
		Status:  models.ParseBookingStatus(q.Get("status")),
		EventID: eventID,
		Bucket:  models.ParseDateBucket(q.Get("date")),
		Search:  q.Get("q"),
	}
}
