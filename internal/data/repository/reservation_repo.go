package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	Update(ctx context.Context, reservation *entity.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindByConfirmationNumber(ctx context.Context, confirmation string) (*entity.Reservation, error)
	ExistsByConfirmationNumber(ctx context.Context, confirmation string) (bool, error)
	FindByGuestID(ctx context.Context, guestID uuid.UUID, limit, offset int) ([]*entity.Reservation, error)

	// Business queries
	FindConflicts(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, excludeID *uuid.UUID) ([]*entity.Reservation, error)
	FindDueCheckIns(ctx context.Context, date time.Time) ([]*entity.Reservation, error)
	FindDueCheckOuts(ctx context.Context, date time.Time) ([]*entity.Reservation, error)
	FindOverdueCheckIns(ctx context.Context, before time.Time) ([]*entity.Reservation, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const reservationColumns = `id, confirmation_number, guest_id, room_id, check_in_date, check_out_date,
	adults, children, total_amount, currency, status, special_requests, booking_source,
	payment_method, payment_reference, cancellation_policy, cancellation_fee, refund_amount,
	cancelled_at, cancelled_by, cancellation_reason, check_in_details, check_out_details,
	additional_charges, created_at, updated_at`

func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	policy, checkIn, checkOut, charges, err := marshalReservationJSON(reservation)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO reservations (id, confirmation_number, guest_id, room_id, check_in_date, check_out_date,
			adults, children, total_amount, currency, status, special_requests, booking_source,
			payment_method, payment_reference, cancellation_policy, cancellation_fee, refund_amount,
			cancelled_at, cancelled_by, cancellation_reason, check_in_details, check_out_details,
			additional_charges, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23, $24, $25, $26)
	`

	_, err = r.db.Exec(ctx, query,
		reservation.ID,
		reservation.ConfirmationNumber,
		reservation.GuestID,
		reservation.RoomID,
		reservation.CheckInDate,
		reservation.CheckOutDate,
		reservation.Adults,
		reservation.Children,
		reservation.TotalAmount,
		reservation.Currency,
		reservation.Status,
		reservation.SpecialRequests,
		reservation.BookingSource,
		reservation.PaymentMethod,
		reservation.PaymentReference,
		policy,
		reservation.CancellationFee,
		reservation.RefundAmount,
		reservation.CancelledAt,
		reservation.CancelledBy,
		reservation.CancellationReason,
		checkIn,
		checkOut,
		charges,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("confirmation_number", reservation.ConfirmationNumber),
			zap.String("guest_id", reservation.GuestID.String()),
		)
		return fmt.Errorf("create reservation %s: %w", reservation.ConfirmationNumber, err)
	}

	return nil
}

func (r *reservationRepository) Update(ctx context.Context, reservation *entity.Reservation) error {
	policy, checkIn, checkOut, charges, err := marshalReservationJSON(reservation)
	if err != nil {
		return err
	}

	query := `
		UPDATE reservations
		SET room_id = $2, check_in_date = $3, check_out_date = $4, adults = $5, children = $6,
		    total_amount = $7, status = $8, special_requests = $9, payment_method = $10,
		    payment_reference = $11, cancellation_policy = $12, cancellation_fee = $13,
		    refund_amount = $14, cancelled_at = $15, cancelled_by = $16, cancellation_reason = $17,
		    check_in_details = $18, check_out_details = $19, additional_charges = $20, updated_at = $21
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.RoomID,
		reservation.CheckInDate,
		reservation.CheckOutDate,
		reservation.Adults,
		reservation.Children,
		reservation.TotalAmount,
		reservation.Status,
		reservation.SpecialRequests,
		reservation.PaymentMethod,
		reservation.PaymentReference,
		policy,
		reservation.CancellationFee,
		reservation.RefundAmount,
		reservation.CancelledAt,
		reservation.CancelledBy,
		reservation.CancellationReason,
		checkIn,
		checkOut,
		charges,
		reservation.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update reservation",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
		)
		return fmt.Errorf("update reservation %s: %w", reservation.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", reservation.ID.String())
	}

	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	reservation, err := scanReservation(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return reservation, nil
}

func (r *reservationRepository) FindByConfirmationNumber(ctx context.Context, confirmation string) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE confirmation_number = $1`

	reservation, err := scanReservation(r.db.QueryRow(ctx, query, confirmation))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by confirmation number",
			zap.Error(err),
			zap.String("confirmation_number", confirmation),
		)
		return nil, fmt.Errorf("find reservation by confirmation %s: %w", confirmation, err)
	}

	return reservation, nil
}

func (r *reservationRepository) ExistsByConfirmationNumber(ctx context.Context, confirmation string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM reservations WHERE confirmation_number = $1)`

	var exists bool
	err := r.db.QueryRow(ctx, query, confirmation).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check confirmation number existence",
			zap.Error(err),
			zap.String("confirmation_number", confirmation),
		)
		return false, fmt.Errorf("check confirmation %s exists: %w", confirmation, err)
	}

	return exists, nil
}

func (r *reservationRepository) FindByGuestID(ctx context.Context, guestID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE guest_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.queryReservations(ctx, "find reservations by guest ID", query, guestID, limit, offset)
}

func (r *reservationRepository) FindConflicts(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, excludeID *uuid.UUID) ([]*entity.Reservation, error) {
	// Half-open ranges: the checkout day itself is free.
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE room_id = $1
		  AND status = ANY($2)
		  AND check_in_date < $3
		  AND $4 < check_out_date
	`
	args := []any{roomID, entity.BlockingStatuses(), checkOut, checkIn}

	if excludeID != nil {
		args = append(args, *excludeID)
		query += fmt.Sprintf(" AND id <> $%d", len(args))
	}

	return r.queryReservations(ctx, "find conflicting reservations", query, args...)
}

func (r *reservationRepository) FindDueCheckIns(ctx context.Context, date time.Time) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE status = $1 AND check_in_date = $2
		ORDER BY created_at
	`

	return r.queryReservations(ctx, "find due check-ins", query, entity.StatusConfirmed, date)
}

func (r *reservationRepository) FindDueCheckOuts(ctx context.Context, date time.Time) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE status = $1 AND check_out_date = $2
		ORDER BY created_at
	`

	return r.queryReservations(ctx, "find due check-outs", query, entity.StatusCheckedIn, date)
}

func (r *reservationRepository) FindOverdueCheckIns(ctx context.Context, before time.Time) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE status = $1 AND check_in_date <= $2
		ORDER BY check_in_date
	`

	return r.queryReservations(ctx, "find overdue check-ins", query, entity.StatusConfirmed, before)
}

func (r *reservationRepository) queryReservations(ctx context.Context, operation, query string, args ...any) ([]*entity.Reservation, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+operation, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, reservation)
	}

	return reservations, nil
}

func marshalReservationJSON(reservation *entity.Reservation) (policy, checkIn, checkOut, charges []byte, err error) {
	if reservation.CancellationPolicy != nil {
		policy, err = json.Marshal(reservation.CancellationPolicy)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("marshal cancellation policy: %w", err)
		}
	}
	if reservation.CheckIn != nil {
		checkIn, err = json.Marshal(reservation.CheckIn)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("marshal check-in details: %w", err)
		}
	}
	if reservation.CheckOut != nil {
		checkOut, err = json.Marshal(reservation.CheckOut)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("marshal check-out details: %w", err)
		}
	}
	if len(reservation.AdditionalCharges) > 0 {
		charges, err = json.Marshal(reservation.AdditionalCharges)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("marshal additional charges: %w", err)
		}
	}
	return policy, checkIn, checkOut, charges, nil
}

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var reservation entity.Reservation
	var policy, checkIn, checkOut, charges []byte

	err := row.Scan(
		&reservation.ID,
		&reservation.ConfirmationNumber,
		&reservation.GuestID,
		&reservation.RoomID,
		&reservation.CheckInDate,
		&reservation.CheckOutDate,
		&reservation.Adults,
		&reservation.Children,
		&reservation.TotalAmount,
		&reservation.Currency,
		&reservation.Status,
		&reservation.SpecialRequests,
		&reservation.BookingSource,
		&reservation.PaymentMethod,
		&reservation.PaymentReference,
		&policy,
		&reservation.CancellationFee,
		&reservation.RefundAmount,
		&reservation.CancelledAt,
		&reservation.CancelledBy,
		&reservation.CancellationReason,
		&checkIn,
		&checkOut,
		&charges,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(policy) > 0 {
		reservation.CancellationPolicy = &entity.CancellationPolicy{}
		if err := json.Unmarshal(policy, reservation.CancellationPolicy); err != nil {
			return nil, fmt.Errorf("unmarshal cancellation policy: %w", err)
		}
	}
	if len(checkIn) > 0 {
		reservation.CheckIn = &entity.CheckInDetails{}
		if err := json.Unmarshal(checkIn, reservation.CheckIn); err != nil {
			return nil, fmt.Errorf("unmarshal check-in details: %w", err)
		}
	}
	if len(checkOut) > 0 {
		reservation.CheckOut = &entity.CheckOutDetails{}
		if err := json.Unmarshal(checkOut, reservation.CheckOut); err != nil {
			return nil, fmt.Errorf("unmarshal check-out details: %w", err)
		}
	}
	if len(charges) > 0 {
		if err := json.Unmarshal(charges, &reservation.AdditionalCharges); err != nil {
			return nil, fmt.Errorf("unmarshal additional charges: %w", err)
		}
	}

	return &reservation, nil
}
