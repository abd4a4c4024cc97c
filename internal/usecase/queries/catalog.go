package queries

import "venue-booking/internal/domain/booking"

type Option struct {
	Value  string
	Label  string
	Window string
}

// CatalogView lists the choices offered by the booking form.
type CatalogView struct {
	Locale      string
	TimeSlots   []Option
	GuestRanges []Option
	EventTypes  []Option
	Statuses    []Option
}

type CatalogQueries interface {
	Catalog(locale booking.Locale) *CatalogView
}

type catalogQueriesImpl struct{}

func NewCatalogQueries() CatalogQueries {
	return catalogQueriesImpl{}
}

func (catalogQueriesImpl) Catalog(locale booking.Locale) *CatalogView {
	view := &CatalogView{Locale: string(locale)}
	for _, s := range booking.AllTimeSlots() {
		view.TimeSlots = append(view.TimeSlots, Option{Value: s.String(), Label: s.Label(locale), Window: s.Window()})
	}
	for _, g := range booking.AllGuestRanges() {
		view.GuestRanges = append(view.GuestRanges, Option{Value: g.String(), Label: g.Label(locale)})
	}
	for _, e := range booking.AllEventTypes() {
		view.EventTypes = append(view.EventTypes, Option{Value: e.String(), Label: e.Label(locale)})
	}
	for _, s := range booking.AllStatuses() {
		view.Statuses = append(view.Statuses, Option{Value: s.String(), Label: s.Label(locale)})
	}
	return view
}
