package repository

import (
	"context"
	"encoding/json"
	"log/slog"

	"venue-booking/internal/domain/booking"
	"venue-booking/internal/infra"
	"venue-booking/internal/infra/kvstore"
	"venue-booking/internal/infra/repository/converter"
)

// BookingsKey is the namespace key holding the whole booking collection.
const BookingsKey = "bookings"

type BookingRepository struct {
	store  kvstore.Store
	logger *slog.Logger
}

func NewBookingRepository(store kvstore.Store, logger *slog.Logger) *BookingRepository {
	return &BookingRepository{
		store:  store,
		logger: logger,
	}
}

// ListAll rereads storage on every call and keeps insertion order.
// Records that no longer decode into a booking are skipped and logged at error level.
func (r *BookingRepository) ListAll(ctx context.Context) ([]*booking.Booking, error) {
	records, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*booking.Booking, 0, len(records))
	for _, rec := range records {
		b, err := converter.RecordToBooking(rec)
		if err != nil {
			r.logger.Error("skipping unreadable booking record", slog.String("id", rec.ID), slog.String("error", err.Error()))
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*booking.Booking, error) {
	records, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(records, id)
	if i < 0 {
		return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "booking not found", nil)
	}
	b, err := converter.RecordToBooking(records[i])
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindCorrupted, "failed to decode booking", err)
	}
	return b, nil
}

func (r *BookingRepository) Append(ctx context.Context, b *booking.Booking) error {
	records, err := r.load(ctx)
	if err != nil {
		return err
	}

	records = append(records, converter.BookingToRecord(b))
	return r.save(ctx, records)
}

// UpdateStatus rewrites only the status of the matching record.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status booking.Status) (*booking.Booking, error) {
	records, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(records, id)
	if i < 0 {
		return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "booking not found", nil)
	}
	records[i].Status = string(status)

	if err := r.save(ctx, records); err != nil {
		return nil, err
	}

	updated, err := converter.RecordToBooking(records[i])
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindCorrupted, "failed to decode booking", err)
	}
	return updated, nil
}

func (r *BookingRepository) Remove(ctx context.Context, id string) error {
	records, err := r.load(ctx)
	if err != nil {
		return err
	}

	i := indexOf(records, id)
	if i < 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "booking not found", nil)
	}
	records = append(records[:i], records[i+1:]...)
	return r.save(ctx, records)
}

func (r *BookingRepository) load(ctx context.Context) ([]converter.Record, error) {
	raw, found, err := r.store.Get(ctx, BookingsKey)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to read bookings", err)
	}
	if !found || len(raw) == 0 {
		return []converter.Record{}, nil
	}

	var records []converter.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindCorrupted, "failed to decode bookings", err)
	}
	if records == nil {
		records = []converter.Record{}
	}
	return records, nil
}

func (r *BookingRepository) save(ctx context.Context, records []converter.Record) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to encode bookings", err)
	}
	if err := r.store.Put(ctx, BookingsKey, raw); err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to write bookings", err)
	}
	return nil
}

func indexOf(records []converter.Record, id string) int {
	for i, rec := range records {
		if rec.ID == id {
			return i
		}
	}
	return -1
}
