package i18n

type table [keyCount]string

var english = table{
	NavHome:     "Home",
	NavEvents:   "Events",
	NavTickets:  "My Tickets",
	NavWishlist: "Wishlist",
	NavSupport:  "Support",
	NavLogin:    "Login",
	NavSignup:   "Sign Up",
	NavProfile:  "My Profile",
	NavLogout:   "Logout",
	NavAdmin:    "Admin Panel",

	HeroTitle1:     "Discover",
	HeroTitle2:     "Events",
	HeroSubtitle1:  "Find your perfect musical experience from thousands of live events",
	HeroSubtitle2:  "Connecting artists and fans",
	HeroCtaExplore: "Explore Events",
	HeroCtaCreate:  "Create Event",

	SearchPlaceholder: "Search events, artists, or venues...",
	SearchBtn:         "Search",

	SectionFeatured:   "Featured Events",
	SectionUpcoming:   "Upcoming Events",
	SectionCategories: "Browse Categories",

	BtnBook:    "Book Now",
	BtnDetails: "View Details",
	BtnMore:    "Load More",

	FooterAbout:   "About Us",
	FooterContact: "Contact",
	FooterRights:  "All rights reserved.",

	AISearchLabel:       "AI Smart Search",
	AISearchPlaceholder: "Ask AI to find events (e.g. 'Upcoming music festivals in Colombo under 5000')",
	AISearchBtn:         "AI Search",
	AISearchHint:        "Try natural language queries to find exactly what you want.",

	FilterDate:     "Date",
	FilterCategory: "Category",
	FilterLocation: "Location",
	FilterReset:    "Reset Filters",

	ChatHeader:      "EMS Assistant",
	ChatGreeting:    "Hello! I'm your EMS AI Assistant. I can help you find events, answer payment questions, or guide you through booking. How can I help today?",
	ChatPlaceholder: "Type a message...",
	ChatOffline:     "Offline mode: Unable to connect to AI server.",
	ChatError:       "Sorry, I encountered an error.",

	AdminTickets:       "Tickets",
	AdminTotalBookings: "Total bookings",
	AdminDashboard:     "Dashboard",
	AdminActivity:      "Activity",

	FilterStatus: "Status",
	FilterEvent:  "Event",
	FilterAll:    "All",
	FilterSearch: "Search bookings...",
	BucketToday:  "Today",
	BucketWeek:   "This Week",
	BucketMonth:  "This Month",
	BucketYear:   "This Year",

	ColBooking:  "Booking",
	ColUser:     "User",
	ColEvent:    "Event",
	ColQuantity: "Qty",
	ColPrice:    "Price",
	ColStatus:   "Status",
	ColBookedOn: "Booked On",
	ColActions:  "Actions",

	PagePrev: "Previous",
	PageNext: "Next",

	BtnExportCSV:  "Export CSV",
	BtnExportXLSX: "Export Excel",
	BtnDelete:     "Delete",
	BtnCancel:     "Cancel",
	BtnReload:     "Reload",

	TicketsEmpty:         "No bookings found.",
	TicketsLoadFailed:    "Failed to load bookings.",
	TicketsLoadFailedRow: "Failed to load bookings. Please try again.",
	NothingToExport:      "No bookings to export",
	ExportReady:          "Exported %d bookings",
	DeleteConfirm:        "Are you sure you want to delete this booking? This action cannot be undone.",
	DeleteSucceeded:      "Booking deleted successfully",
	ActionFailed:         "Error: %s",
	BookingNotFound:      "Booking #%d is no longer in the list",
	AuthRequired:         "Authentication required",
	AccessDenied:         "Access denied. Admin privileges required.",
	LoginTitle:           "Admin Login",
	LoginEmail:           "Email",
	LoginPassword:        "Password",
	LoginFailed:          "Invalid email or password",

	DashRevenue:        "Total Revenue",
	DashActiveUsers:    "Active Users",
	DashOpenTickets:    "Open Tickets",
	DashUpcomingEvents: "Upcoming Events",
	DashRecentSignups:  "Recent Signups",
	DashRange:          "Last %d days",
	DashRangeAll:       "All time",
	LabelVerified:      "Verified",
	LabelPending:       "Pending",

	BotHelp:          "/tickets [text] - list bookings, optionally searching\n/status <STATUS|ALL> - filter by status\n/export [csv|xlsx] - download every booking\n/reload - fetch bookings again",
	BotOperatorsOnly: "This bot is for EMS operators only.",
	BotRateLimited:   "Too many requests. Please wait a moment.",
	BotPageInfo:      "Page %d of %d (%d of %d bookings)",
	BotStatusUsage:   "Usage: /status PENDING|CONFIRMED|CANCELLED|REFUNDED|ALL",
}

var sinhala = table{
	NavHome:     "මුල් පිටුව",
	NavEvents:   "සිදුවීම්",
	NavTickets:  "මගේ ටිකට්",
	NavWishlist: "සුරැකුම්",
	NavSupport:  "සහය",
	NavLogin:    "පිවිසෙන්න",
	NavSignup:   "ලියාපදිංචි වන්න",
	NavProfile:  "මගේ ගිණුම",
	NavLogout:   "ඉවත් වන්න",
	NavAdmin:    "පරිපාලක පැනලය",

	HeroTitle1:     "සොයාගන්න",
	HeroTitle2:     "සිදුවීම්",
	HeroSubtitle1:  "ඔබට ගැළපෙන හොඳම සංගීතමය අත්දැකීම් දහස් ගණනක් අතරින් සොයාගන්න",
	HeroSubtitle2:  "කලාකරුවන් සහ රසිකයින් යා කරන තැන",
	HeroCtaExplore: "සිදුවීම් සොයන්න",
	HeroCtaCreate:  "සිදුවීමක් එක් කරන්න",

	SearchPlaceholder: "සිදුවීම්, කලාකරුවන් හෝ ස්ථාන සොයන්න...",
	SearchBtn:         "සොයන්න",

	SectionFeatured:   "විශේෂාංග සිදුවීම්",
	SectionUpcoming:   "ඉදිරි සිදුවීම්",
	SectionCategories: "වර්ගීකරණයන්",

	BtnBook:    "වෙන්කරවා ගන්න",
	BtnDetails: "විස්තර බලන්න",
	BtnMore:    "තව පෙන්වන්න",

	FooterAbout:   "අප ගැන",
	FooterContact: "සම්බන්ධ වීමට",
	FooterRights:  "සියලුම හිමිකම් ඇවිරිණි.",

	AISearchLabel:       "AI ස්මාර්ට් සෙවුම",
	AISearchPlaceholder: "AI හරහා සොයන්න (උදා: 'කොළඹ රු.5000 ට අඩු සංගීත සංදර්ශන')",
	AISearchBtn:         "AI සෙවුම",
	AISearchHint:        "ඔබට අවශ්‍ය දේ හරියටම සොයා ගැනීමට ස්වාභාවික බසින් විමසන්න.",

	FilterDate:     "දිනය",
	FilterCategory: "වර්ගය",
	FilterLocation: "ස්ථානය",
	FilterReset:    "පෙරහන් ඉවත් කරන්න",

	ChatHeader:      "EMS සහයක",
	ChatGreeting:    "ආයුබෝවන්! මම ඔබගේ EMS AI සහයකයා. ඔබට සිදුවීම් සොයා ගැනීමට, ගෙවීම් ගැටළු විසඳීමට හෝ වෙන්කරවා ගැනීම සඳහා උදව් කිරීමට මට පුළුවන්. ඔබට කෙසේද උදව් කළ හැක්කේ?",
	ChatPlaceholder: "ඔබේ පණිවිඩය ටයිප් කරන්න...",
	ChatOffline:     "නොබැඳි මාදිලිය: AI සේවාදායකය හා සම්බන්ධ විය නොහැක.",
	ChatError:       "සමාවන්න, දෝෂයක් ඇති විය.",

	AdminTickets:       "ටිකට්",
	AdminTotalBookings: "මුළු වෙන්කිරීම්",
	AdminDashboard:     "උපකරණ පුවරුව",
	AdminActivity:      "ක්‍රියාකාරකම්",

	FilterStatus: "තත්ත්වය",
	FilterEvent:  "සිදුවීම",
	FilterAll:    "සියල්ල",
	FilterSearch: "වෙන්කිරීම් සොයන්න...",
	BucketToday:  "අද",
	BucketWeek:   "මෙම සතිය",
	BucketMonth:  "මෙම මාසය",
	BucketYear:   "මෙම වසර",

	ColBooking:  "වෙන්කිරීම",
	ColUser:     "පරිශීලක",
	ColEvent:    "සිදුවීම",
	ColQuantity: "ප්‍රමාණය",
	ColPrice:    "මිල",
	ColStatus:   "තත්ත්වය",
	ColBookedOn: "වෙන් කළ දිනය",
	ColActions:  "ක්‍රියා",

	PagePrev: "පෙර",
	PageNext: "ඊළඟ",

	BtnExportCSV:  "CSV අපනයනය",
	BtnExportXLSX: "Excel අපනයනය",
	BtnDelete:     "මකන්න",
	BtnCancel:     "අවලංගු කරන්න",
	BtnReload:     "නැවත පූරණය",

	TicketsEmpty:         "වෙන්කිරීම් හමු නොවීය.",
	TicketsLoadFailed:    "වෙන්කිරීම් පූරණය කිරීමට අසමත් විය.",
	TicketsLoadFailedRow: "වෙන්කිරීම් පූරණය කිරීමට අසමත් විය. කරුණාකර නැවත උත්සාහ කරන්න.",
	NothingToExport:      "අපනයනය කිරීමට වෙන්කිරීම් නැත",
	ExportReady:          "වෙන්කිරීම් %d ක් අපනයනය කරන ලදී",
	DeleteConfirm:        "මෙම වෙන්කිරීම මකා දැමීමට ඔබට විශ්වාසද? මෙය ආපසු හැරවිය නොහැක.",
	DeleteSucceeded:      "වෙන්කිරීම සාර්ථකව මකා දමන ලදී",
	ActionFailed:         "දෝෂය: %s",
	BookingNotFound:      "වෙන්කිරීම #%d ලැයිස්තුවේ තවදුරටත් නැත",
	AuthRequired:         "සත්‍යාපනය අවශ්‍යයි",
	AccessDenied:         "ප්‍රවේශය ප්‍රතික්ෂේප විය. පරිපාලක අවසර අවශ්‍යයි.",
	LoginTitle:           "පරිපාලක පිවිසුම",
	LoginEmail:           "ඊමේල්",
	LoginPassword:        "මුරපදය",
	LoginFailed:          "වලංගු නොවන ඊමේල් හෝ මුරපදය",

	DashRevenue:        "මුළු ආදායම",
	DashActiveUsers:    "සක්‍රිය පරිශීලකයින්",
	DashOpenTickets:    "විවෘත ටිකට්",
	DashUpcomingEvents: "ඉදිරි සිදුවීම්",
	DashRecentSignups:  "මෑත ලියාපදිංචි",
	DashRange:          "පසුගිය දින %d",
	DashRangeAll:       "සියලු කාලය",
	LabelVerified:      "තහවුරු කළ",
	LabelPending:       "පොරොත්තුවෙන්",

	BotHelp:          "/tickets [පෙළ] - වෙන්කිරීම් ලැයිස්තුව, සෙවුමක් සමඟ\n/status <STATUS|ALL> - තත්ත්වය අනුව පෙරන්න\n/export [csv|xlsx] - සියලු වෙන්කිරීම් බාගන්න\n/reload - වෙන්කිරීම් නැවත ලබාගන්න",
	BotOperatorsOnly: "මෙම බොට් එක EMS ක්‍රියාකරුවන් සඳහා පමණි.",
	BotRateLimited:   "ඉල්ලීම් වැඩියි. කරුණාකර මොහොතක් රැඳී සිටින්න.",
	BotPageInfo:      "පිටුව %d / %d (වෙන්කිරීම් %d / %d)",
	BotStatusUsage:   "භාවිතය: /status PENDING|CONFIRMED|CANCELLED|REFUNDED|ALL",
}

// catalogs maps a base language code to its table.
var catalogs = map[string]*table{
	"en": &english,
	"si": &sinhala,
}
