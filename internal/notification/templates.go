package notification

import (
	"time"

	"golang.org/x/text/language"

	bookingDomain "github.com/glambook/service-booking/internal/domain/booking"
)

// statusTemplate holds the title and a body format string for one status.
// The body takes the booking number and the locale-formatted scheduled date.
type statusTemplate struct {
	Title string
	Body  string
}

// supportedLocales lists the locales templates exist for, in priority order.
// The first entry is the fallback for unmatched locales.
var supportedLocales = []language.Tag{
	language.English,
	language.Malay,
}

// dateLayouts maps each supported locale to its appointment date layout.
var dateLayouts = map[language.Tag]string{
	language.English: "Mon, 2 Jan 2006 at 3:04 PM",
	language.Malay:   "2/1/2006, 3:04 PM",
}

// statusTemplates maps locale -> status -> template. Statuses without a
// template (in_progress) dispatch nothing.
var statusTemplates = map[language.Tag]map[bookingDomain.BookingStatus]statusTemplate{
	language.English: {
		bookingDomain.StatusPending: {
			Title: "Booking received",
			Body:  "Booking %s: your appointment on %s is waiting for the artist to confirm.",
		},
		bookingDomain.StatusConfirmed: {
			Title: "Booking confirmed",
			Body:  "Booking %s: your appointment on %s has been confirmed.",
		},
		bookingDomain.StatusDeclined: {
			Title: "Booking declined",
			Body:  "Booking %s: the artist is unable to take your appointment on %s.",
		},
		bookingDomain.StatusCompleted: {
			Title: "Booking completed",
			Body:  "Booking %s: your appointment on %s is complete. Thank you!",
		},
		bookingDomain.StatusCancelled: {
			Title: "Booking cancelled",
			Body:  "Booking %s: your appointment on %s has been cancelled.",
		},
	},
	language.Malay: {
		bookingDomain.StatusPending: {
			Title: "Tempahan diterima",
			Body:  "Tempahan %s: janji temu anda pada %s sedang menunggu pengesahan artis.",
		},
		bookingDomain.StatusConfirmed: {
			Title: "Tempahan disahkan",
			Body:  "Tempahan %s: janji temu anda pada %s telah disahkan.",
		},
		bookingDomain.StatusDeclined: {
			Title: "Tempahan ditolak",
			Body:  "Tempahan %s: artis tidak dapat menerima janji temu anda pada %s.",
		},
		bookingDomain.StatusCompleted: {
			Title: "Tempahan selesai",
			Body:  "Tempahan %s: janji temu anda pada %s telah selesai. Terima kasih!",
		},
		bookingDomain.StatusCancelled: {
			Title: "Tempahan dibatalkan",
			Body:  "Tempahan %s: janji temu anda pada %s telah dibatalkan.",
		},
	},
}

var localeMatcher = language.NewMatcher(supportedLocales)

// matchLocale resolves a BCP 47 locale string to a supported template locale.
func matchLocale(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil {
		return supportedLocales[0]
	}
	_, index, _ := localeMatcher.Match(tag)
	return supportedLocales[index]
}

// formatScheduledDate renders the appointment time in the locale's layout.
func formatScheduledDate(tag language.Tag, at time.Time) string {
	layout, ok := dateLayouts[tag]
	if !ok {
		layout = dateLayouts[supportedLocales[0]]
	}
	return at.Format(layout)
}
