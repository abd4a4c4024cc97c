package booking

import "strings"

type Locale string

const (
	LocaleIT Locale = "it"
	LocaleEN Locale = "en"
)

// ParseLocale falls back to Italian, the venue's default language.
func ParseLocale(s string) Locale {
	if strings.EqualFold(strings.TrimSpace(s), string(LocaleEN)) {
		return LocaleEN
	}
	return LocaleIT
}

type label struct {
	it string
	en string
}

func (l label) in(locale Locale) string {
	if locale == LocaleEN {
		return l.en
	}
	return l.it
}

var slotWindows = map[TimeSlot]string{
	SlotMorning:   "9:00–12:00",
	SlotAfternoon: "13:00–17:00",
	SlotEvening:   "18:00–22:00",
	SlotNight:     "19:00–24:00",
}

var slotNames = map[TimeSlot]label{
	SlotMorning:   {it: "Mattina", en: "Morning"},
	SlotAfternoon: {it: "Pomeriggio", en: "Afternoon"},
	SlotEvening:   {it: "Sera", en: "Evening"},
	SlotNight:     {it: "Notte", en: "Night"},
}

var eventTypeLabels = map[EventType]label{
	EventWedding:     {it: "Matrimonio", en: "Wedding"},
	EventCorporate:   {it: "Evento Aziendale", en: "Corporate Event"},
	EventBirthday:    {it: "Festa di Compleanno", en: "Birthday Party"},
	EventAnniversary: {it: "Anniversario", en: "Anniversary"},
	EventGraduation:  {it: "Laurea", en: "Graduation"},
	EventOther:       {it: "Altro", en: "Other"},
}

var statusLabels = map[Status]label{
	StatusPending:   {it: "In attesa", en: "Pending"},
	StatusConfirmed: {it: "Confermata", en: "Confirmed"},
	StatusCancelled: {it: "Cancellata", en: "Cancelled"},
}

// Window is the fixed clock range of the slot, e.g. "13:00–17:00".
func (t TimeSlot) Window() string {
	if w, ok := slotWindows[t]; ok {
		return w
	}
	return string(t)
}

// Label renders "<name> (<window>)"; unknown slots render as their raw value.
func (t TimeSlot) Label(locale Locale) string {
	name, ok := slotNames[t]
	if !ok {
		return string(t)
	}
	return name.in(locale) + " (" + t.Window() + ")"
}

func (e EventType) Label(locale Locale) string {
	if l, ok := eventTypeLabels[e]; ok {
		return l.in(locale)
	}
	return string(e)
}

func (g GuestRange) Label(locale Locale) string {
	if locale == LocaleEN {
		return string(g) + " guests"
	}
	return string(g) + " ospiti"
}

func (s Status) Label(locale Locale) string {
	if l, ok := statusLabels[s]; ok {
		return l.in(locale)
	}
	return string(s)
}
