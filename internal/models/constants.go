package models

const (
	ParseModeMarkdown = "Markdown"
	ParseModeHTML     = "HTML"
)

const (
	AuditBookingDeleted = "booking_deleted"
	AuditTicketsExport  = "tickets_exported"
)

const (
	SyncTaskReplaceTickets = "replace_tickets"
	SyncTaskDeleteTicket   = "delete_ticket"
)

const (
	// DefaultSessionTTL lifetime of a console session in redis, seconds
	DefaultSessionTTL = 12 * 60 * 60

	// DefaultPageSize rows per page of the tickets table
	DefaultPageSize = 10

	// BotPageSize rows per page of the tickets list in the bot
	BotPageSize = 5

	// DefaultEventsLimit limit passed to /events/ for the event filter
	DefaultEventsLimit = 100

	// WorkerQueueSize size of the sheets worker queue
	WorkerQueueSize = 1000

	// RateLimitMessages messages allowed per window in the bot
	RateLimitMessages = 20

	// RateLimitWindow bot rate limit window, seconds
	RateLimitWindow = 60

	// SheetsCacheTTL lifetime of the Sheets row cache, seconds
	SheetsCacheTTL = 60 * 60
)

// AllTimeDays is what the dashboard sends for the "all" range.
const AllTimeDays = 9999
