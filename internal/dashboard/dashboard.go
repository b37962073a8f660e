package dashboard

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Randidu/event-management-system/internal/backend"
	"github.com/Randidu/event-management-system/internal/i18n"
	"github.com/Randidu/event-management-system/internal/models"
	"github.com/Randidu/event-management-system/internal/profile"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DefaultRange = "30"
	AllRange     = "all"

	signupAvatarSize = 32
	dateLayout       = "Jan 2, 2006"
)

var ranges = []string{"7", "30", "90", AllRange}

// Ranges lists the selector values in display order.
func Ranges() []string {
	return append([]string(nil), ranges...)
}

// ParseRange maps a selector value to the days sent to the backend. Unknown
// values fall back to the default range.
func ParseRange(s string) (value string, days int) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case AllRange:
		return AllRange, models.AllTimeDays
	case "7", "30", "90":
		d, _ := strconv.Atoi(s)
		return s, d
	default:
		d, _ := strconv.Atoi(DefaultRange)
		return DefaultRange, d
	}
}

type StatsSource interface {
	DashboardStats(ctx context.Context, token string, days int) (*models.DashboardStats, error)
}

type Card struct {
	Label i18n.Key
	Value string
}

type Signup struct {
	Name      string
	Email     string
	AvatarURL string
	Joined    string
	Verified  bool
	Label     i18n.Key
}

type UpcomingEvent struct {
	Title     string
	PosterURL string
	When      string
	Location  string
}

type View struct {
	Range    string
	Days     int
	Cards    []Card
	Signups  []Signup
	Upcoming []UpcomingEvent
}

type Service struct {
	source   StatsSource
	resolver *profile.Resolver
	loc      *time.Location
	printer  *message.Printer
	logger   *zerolog.Logger
}

func NewService(source StatsSource, resolver *profile.Resolver, loc *time.Location, logger *zerolog.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Service{
		source:   source,
		resolver: resolver,
		loc:      loc,
		printer:  message.NewPrinter(language.English),
		logger:   logger,
	}
}

// Load fetches the stats for rangeValue. Auth failures come back as
// backend errors for which backend.IsAuthError holds.
func (s *Service) Load(ctx context.Context, token, rangeValue string) (*View, error) {
	value, days := ParseRange(rangeValue)
	if token == "" {
		return nil, backend.ErrAuthMissing
	}

	stats, err := s.source.DashboardStats(ctx, token, days)
	if err != nil {
		s.logger.Error().Err(err).Int("days", days).Msg("dashboard stats failed")
		return nil, err
	}
	return s.build(value, days, stats), nil
}

func (s *Service) build(value string, days int, stats *models.DashboardStats) *View {
	v := &View{
		Range: value,
		Days:  days,
		Cards: []Card{
			{Label: i18n.DashRevenue, Value: "Rs " + s.Number(stats.TotalRevenue)},
			{Label: i18n.DashActiveUsers, Value: s.printer.Sprintf("%d", stats.ActiveUsers)},
			{Label: i18n.DashOpenTickets, Value: s.printer.Sprintf("%d", stats.OpenTickets)},
			{Label: i18n.DashUpcomingEvents, Value: s.printer.Sprintf("%d", stats.UpcomingEventsCount)},
		},
		Signups:  make([]Signup, 0, len(stats.RecentSignups)),
		Upcoming: make([]UpcomingEvent, 0, len(stats.UpcomingEvents)),
	}

	for _, u := range stats.RecentSignups {
		signup := Signup{
			Name:      profile.DisplayName(&u),
			Email:     u.Email,
			AvatarURL: s.resolver.Avatar(u.ProfileImage, u.Email, signupAvatarSize),
			Joined:    s.date(u.CreatedAt),
			Verified:  u.IsActive,
			Label:     i18n.LabelPending,
		}
		if u.IsActive {
			signup.Label = i18n.LabelVerified
		}
		v.Signups = append(v.Signups, signup)
	}

	for _, e := range stats.UpcomingEvents {
		v.Upcoming = append(v.Upcoming, UpcomingEvent{
			Title:     e.Title,
			PosterURL: s.resolver.Poster(e.PosterURL),
			When:      s.date(e.StartsAt),
			Location:  e.Location,
		})
	}
	return v
}

// Number groups thousands and keeps at most two decimals: 12500 -> "12,500".
func (s *Service) Number(v float64) string {
	v = math.Round(v*100) / 100
	if v == math.Trunc(v) {
		return s.printer.Sprintf("%d", int64(v))
	}
	return strings.TrimRight(s.printer.Sprintf("%.2f", v), "0")
}

func (s *Service) date(raw string) string {
	t, ok := models.ParseTimestamp(raw, s.loc)
	if !ok {
		return "N/A"
	}
	return t.In(s.loc).Format(dateLayout)
}
