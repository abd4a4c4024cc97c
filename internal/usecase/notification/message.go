package notification

import (
	"fmt"
	"strings"

	"venue-booking/internal/domain/booking"
)

type template struct {
	header, phone, email, message, id, status, test string
}

var templates = map[booking.Locale]template{
	booking.LocaleIT: {
		header:  "Nuova prenotazione",
		phone:   "Tel",
		email:   "Email",
		message: "Messaggio",
		id:      "ID",
		status:  "Stato",
		test:    "Messaggio di prova dal sistema di prenotazioni.",
	},
	booking.LocaleEN: {
		header:  "New booking",
		phone:   "Phone",
		email:   "Email",
		message: "Message",
		id:      "ID",
		status:  "Status",
		test:    "Test message from the booking system.",
	},
}

func templateFor(locale booking.Locale) template {
	if t, ok := templates[locale]; ok {
		return t
	}
	return templates[booking.LocaleIT]
}

// FormatBookingMessage renders the one-line summary followed by optional detail lines:
//
//	Nuova prenotazione: Mario Rossi, Matrimonio, 2030-06-15, Sera (18:00–22:00), 51-100 ospiti. Tel: 3331234567
func FormatBookingMessage(b *booking.Booking, locale booking.Locale) string {
	t := templateFor(locale)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s, %s, %s, %s, %s. %s: %s",
		t.header,
		b.Name().String(),
		b.EventType().Label(locale),
		b.Date().String(),
		b.Slot().Label(locale),
		b.Guests().Label(locale),
		t.phone,
		b.Phone().String(),
	)
	if !b.Email().IsEmpty() {
		fmt.Fprintf(&sb, "\n%s: %s", t.email, b.Email().String())
	}
	if !b.Message().IsEmpty() {
		fmt.Fprintf(&sb, "\n%s: %s", t.message, b.Message().String())
	}
	fmt.Fprintf(&sb, "\n%s: %s", t.id, b.ID())
	fmt.Fprintf(&sb, "\n%s: %s", t.status, b.Status().Label(locale))
	return sb.String()
}

func FormatTestMessage(locale booking.Locale) string {
	return templateFor(locale).test
}
