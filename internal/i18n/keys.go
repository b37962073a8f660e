package i18n

// Key identifies one translatable string. Every language table has an entry for every key.
type Key int

const (
	NavHome Key = iota
	NavEvents
	NavTickets
	NavWishlist
	NavSupport
	NavLogin
	NavSignup
	NavProfile
	NavLogout
	NavAdmin

	HeroTitle1
	HeroTitle2
	HeroSubtitle1
	HeroSubtitle2
	HeroCtaExplore
	HeroCtaCreate

	SearchPlaceholder
	SearchBtn

	SectionFeatured
	SectionUpcoming
	SectionCategories

	BtnBook
	BtnDetails
	BtnMore

	FooterAbout
	FooterContact
	FooterRights

	AISearchLabel
	AISearchPlaceholder
	AISearchBtn
	AISearchHint

	FilterDate
	FilterCategory
	FilterLocation
	FilterReset

	ChatHeader
	ChatGreeting
	ChatPlaceholder
	ChatOffline
	ChatError

	AdminTickets
	AdminTotalBookings
	AdminDashboard
	AdminActivity

	FilterStatus
	FilterEvent
	FilterAll
	FilterSearch
	BucketToday
	BucketWeek
	BucketMonth
	BucketYear

	ColBooking
	ColUser
	ColEvent
	ColQuantity
	ColPrice
	ColStatus
	ColBookedOn
	ColActions

	PagePrev
	PageNext

	BtnExportCSV
	BtnExportXLSX
	BtnDelete
	BtnCancel
	BtnReload

	TicketsEmpty
	TicketsLoadFailed
	TicketsLoadFailedRow
	NothingToExport
	ExportReady
	DeleteConfirm
	DeleteSucceeded
	ActionFailed
	BookingNotFound
	AuthRequired
	AccessDenied
	LoginTitle
	LoginEmail
	LoginPassword
	LoginFailed

	DashRevenue
	DashActiveUsers
	DashOpenTickets
	DashUpcomingEvents
	DashRecentSignups
	DashRange
	DashRangeAll
	LabelVerified
	LabelPending

	BotHelp
	BotOperatorsOnly
	BotRateLimited
	BotPageInfo
	BotStatusUsage

	keyCount
)

var keyNames = [keyCount]string{
	NavHome:     "nav_home",
	NavEvents:   "nav_events",
	NavTickets:  "nav_tickets",
	NavWishlist: "nav_wishlist",
	NavSupport:  "nav_support",
	NavLogin:    "nav_login",
	NavSignup:   "nav_signup",
	NavProfile:  "nav_profile",
	NavLogout:   "nav_logout",
	NavAdmin:    "nav_admin",

	HeroTitle1:     "hero_title_1",
	HeroTitle2:     "hero_title_2",
	HeroSubtitle1:  "hero_subtitle_1",
	HeroSubtitle2:  "hero_subtitle_2",
	HeroCtaExplore: "hero_cta_explore",
	HeroCtaCreate:  "hero_cta_create",

	SearchPlaceholder: "search_placeholder",
	SearchBtn:         "search_btn",

	SectionFeatured:   "section_featured",
	SectionUpcoming:   "section_upcoming",
	SectionCategories: "section_categories",

	BtnBook:    "btn_book",
	BtnDetails: "btn_details",
	BtnMore:    "btn_more",

	FooterAbout:   "footer_about",
	FooterContact: "footer_contact",
	FooterRights:  "footer_rights",

	AISearchLabel:       "ai_search_label",
	AISearchPlaceholder: "ai_search_placeholder",
	AISearchBtn:         "ai_search_btn",
	AISearchHint:        "ai_search_hint",

	FilterDate:     "filter_date",
	FilterCategory: "filter_category",
	FilterLocation: "filter_location",
	FilterReset:    "filter_reset",

	ChatHeader:      "chat_header",
	ChatGreeting:    "chat_greeting",
	ChatPlaceholder: "chat_placeholder",
	ChatOffline:     "chat_offline",
	ChatError:       "chat_error",

	AdminTickets:       "admin_tickets",
	AdminTotalBookings: "admin_total_bookings",
	AdminDashboard:     "admin_dashboard",
	AdminActivity:      "admin_activity",

	FilterStatus: "filter_status",
	FilterEvent:  "filter_event",
	FilterAll:    "filter_all",
	FilterSearch: "filter_search",
	BucketToday:  "bucket_today",
	BucketWeek:   "bucket_week",
	BucketMonth:  "bucket_month",
	BucketYear:   "bucket_year",

	ColBooking:  "col_booking",
	ColUser:     "col_user",
	ColEvent:    "col_event",
	ColQuantity: "col_quantity",
	ColPrice:    "col_price",
	ColStatus:   "col_status",
	ColBookedOn: "col_booked_on",
	ColActions:  "col_actions",

	PagePrev: "page_prev",
	PageNext: "page_next",

	BtnExportCSV:  "btn_export_csv",
	BtnExportXLSX: "btn_export_xlsx",
	BtnDelete:     "btn_delete",
	BtnCancel:     "btn_cancel",
	BtnReload:     "btn_reload",

	TicketsEmpty:         "tickets_empty",
	TicketsLoadFailed:    "tickets_load_failed",
	TicketsLoadFailedRow: "tickets_load_failed_row",
	NothingToExport:      "nothing_to_export",
	ExportReady:          "export_ready",
	DeleteConfirm:        "delete_confirm",
	DeleteSucceeded:      "delete_succeeded",
	ActionFailed:         "action_failed",
	BookingNotFound:      "booking_not_found",
	AuthRequired:         "auth_required",
	AccessDenied:         "access_denied",
	LoginTitle:           "login_title",
	LoginEmail:           "login_email",
	LoginPassword:        "login_password",
	LoginFailed:          "login_failed",

	DashRevenue:        "dash_revenue",
	DashActiveUsers:    "dash_active_users",
	DashOpenTickets:    "dash_open_tickets",
	DashUpcomingEvents: "dash_upcoming_events",
	DashRecentSignups:  "dash_recent_signups",
	DashRange:          "dash_range",
	DashRangeAll:       "dash_range_all",
	LabelVerified:      "label_verified",
	LabelPending:       "label_pending",

	BotHelp:          "bot_help",
	BotOperatorsOnly: "bot_operators_only",
	BotRateLimited:   "bot_rate_limited",
	BotPageInfo:      "bot_page_info",
	BotStatusUsage:   "bot_status_usage",
}

// String returns the stable key name, which is also what a failed lookup renders.
func (k Key) String() string {
	if k < 0 || k >= keyCount || keyNames[k] == "" {
		return "i18n_key_unknown"
	}
	return keyNames[k]
}

// Keys lists every defined key in declaration order.
func Keys() []Key {
	keys := make([]Key, 0, keyCount)
	for k := Key(0); k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

// ParseKey resolves a key name. Templates use names, code uses the constants.
func ParseKey(name string) (Key, bool) {
	for k, n := range keyNames {
		if n == name {
			return Key(k), true
		}
	}
	return 0, false
}
