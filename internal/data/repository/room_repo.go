package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	Update(ctx context.Context, room *entity.Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	FindByRoomNumber(ctx context.Context, roomNumber string) (*entity.Room, error)
	FindCandidates(ctx context.Context, minCapacity int, roomType string, accessible *bool) ([]*entity.Room, error)
	UpdateStatus(ctx context.Context, roomID uuid.UUID, status entity.RoomStatus) error
}

type roomRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoomRepository(db database.PgxIface, log *zap.Logger) RoomRepository {
	return &roomRepository{
		db:  db,
		log: log.With(zap.String("repository", "room")),
	}
}

const roomColumns = `id, room_number, room_type, capacity, bed_type, base_price, description,
	amenities, floor, accessible, status, active, seasonal_pricing, rules, created_at, updated_at`

func (r *roomRepository) Create(ctx context.Context, room *entity.Room) error {
	amenities, seasonal, rules, err := marshalRoomJSON(room)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO rooms (id, room_number, room_type, capacity, bed_type, base_price, description,
			amenities, floor, accessible, status, active, seasonal_pricing, rules, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err = r.db.Exec(ctx, query,
		room.ID,
		room.RoomNumber,
		room.RoomType,
		room.Capacity,
		room.BedType,
		room.BasePrice,
		room.Description,
		amenities,
		room.Floor,
		room.Accessible,
		room.Status,
		room.Active,
		seasonal,
		rules,
		room.CreatedAt,
		room.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create room",
			zap.Error(err),
			zap.String("room_number", room.RoomNumber),
		)
		return fmt.Errorf("create room %s: %w", room.RoomNumber, err)
	}

	return nil
}

func (r *roomRepository) Update(ctx context.Context, room *entity.Room) error {
	amenities, seasonal, rules, err := marshalRoomJSON(room)
	if err != nil {
		return err
	}

	query := `
		UPDATE rooms
		SET room_number = $2, room_type = $3, capacity = $4, bed_type = $5, base_price = $6,
		    description = $7, amenities = $8, floor = $9, accessible = $10, status = $11,
		    active = $12, seasonal_pricing = $13, rules = $14, updated_at = $15
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		room.ID,
		room.RoomNumber,
		room.RoomType,
		room.Capacity,
		room.BedType,
		room.BasePrice,
		room.Description,
		amenities,
		room.Floor,
		room.Accessible,
		room.Status,
		room.Active,
		seasonal,
		rules,
		room.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update room",
			zap.Error(err),
			zap.String("room_id", room.ID.String()),
		)
		return fmt.Errorf("update room %s: %w", room.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("room %s not found", room.ID.String())
	}

	return nil
}

func (r *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`

	room, err := scanRoom(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room by ID",
			zap.Error(err),
			zap.String("room_id", id.String()),
		)
		return nil, fmt.Errorf("find room by ID %s: %w", id.String(), err)
	}

	return room, nil
}

func (r *roomRepository) FindByRoomNumber(ctx context.Context, roomNumber string) (*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE room_number = $1`

	room, err := scanRoom(r.db.QueryRow(ctx, query, roomNumber))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room by number",
			zap.Error(err),
			zap.String("room_number", roomNumber),
		)
		return nil, fmt.Errorf("find room by number %s: %w", roomNumber, err)
	}

	return room, nil
}

func (r *roomRepository) FindCandidates(ctx context.Context, minCapacity int, roomType string, accessible *bool) ([]*entity.Room, error) {
	query := `
		SELECT ` + roomColumns + `
		FROM rooms
		WHERE active = true AND status = $1 AND capacity >= $2
	`
	args := []any{entity.RoomStatusAvailable, minCapacity}

	if roomType != "" {
		args = append(args, roomType)
		query += fmt.Sprintf(" AND room_type = $%d", len(args))
	}
	if accessible != nil {
		args = append(args, *accessible)
		query += fmt.Sprintf(" AND accessible = $%d", len(args))
	}

	query += " ORDER BY room_number"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find candidate rooms",
			zap.Error(err),
			zap.Int("min_capacity", minCapacity),
			zap.String("room_type", roomType),
		)
		return nil, fmt.Errorf("find candidate rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*entity.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			r.log.Error("Failed to scan room row", zap.Error(err))
			return nil, fmt.Errorf("scan room row: %w", err)
		}
		rooms = append(rooms, room)
	}

	return rooms, nil
}

func (r *roomRepository) UpdateStatus(ctx context.Context, roomID uuid.UUID, status entity.RoomStatus) error {
	query := `UPDATE rooms SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, roomID, status)
	if err != nil {
		r.log.Error("Failed to update room status",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update room %s status to %s: %w", roomID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("room %s not found", roomID.String())
	}

	return nil
}

func marshalRoomJSON(room *entity.Room) ([]byte, []byte, []byte, error) {
	amenities, err := json.Marshal(room.Amenities)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal room amenities: %w", err)
	}

	seasonal, err := json.Marshal(room.SeasonalPricing)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal seasonal pricing: %w", err)
	}

	var rules []byte
	if room.Rules != nil {
		rules, err = json.Marshal(room.Rules)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("marshal room rules: %w", err)
		}
	}

	return amenities, seasonal, rules, nil
}

func scanRoom(row pgx.Row) (*entity.Room, error) {
	var room entity.Room
	var amenities, seasonal, rules []byte

	err := row.Scan(
		&room.ID,
		&room.RoomNumber,
		&room.RoomType,
		&room.Capacity,
		&room.BedType,
		&room.BasePrice,
		&room.Description,
		&amenities,
		&room.Floor,
		&room.Accessible,
		&room.Status,
		&room.Active,
		&seasonal,
		&rules,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(amenities) > 0 {
		if err := json.Unmarshal(amenities, &room.Amenities); err != nil {
			return nil, fmt.Errorf("unmarshal room amenities: %w", err)
		}
	}
	if len(seasonal) > 0 {
		if err := json.Unmarshal(seasonal, &room.SeasonalPricing); err != nil {
			return nil, fmt.Errorf("unmarshal seasonal pricing: %w", err)
		}
	}
	if len(rules) > 0 {
		room.Rules = &entity.RoomRules{}
		if err := json.Unmarshal(rules, room.Rules); err != nil {
			return nil, fmt.Errorf("unmarshal room rules: %w", err)
		}
	}

	return &room, nil
}
