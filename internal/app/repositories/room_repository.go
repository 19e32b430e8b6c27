package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avelin/formatrack/internal/app/models"
	"github.com/avelin/formatrack/internal/pkg/apperrors"
)

// RoomRepository handles room database operations
type RoomRepository struct {
	db *pgxpool.Pool
}

// NewRoomRepository creates a new RoomRepository
func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{db: db}
}

// GetAll returns every room ordered by name
func (r *RoomRepository) GetAll(ctx context.Context) ([]models.Room, error) {
	query := `SELECT id, name, capacity, equipment, building, floor FROM rooms ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying rooms: %w", err)
	}
	defer rows.Close()

	var rooms []models.Room
	for rows.Next() {
		var room models.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Capacity, &room.Equipment, &room.Building, &room.Floor); err != nil {
			return nil, fmt.Errorf("error scanning room row: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating room rows: %w", err)
	}
	return rooms, nil
}

// GetByID fetches a room by id
func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*models.Room, error) {
	query := `SELECT id, name, capacity, equipment, building, floor FROM rooms WHERE id = $1`

	var room models.Room
	err := r.db.QueryRow(ctx, query, id).Scan(&room.ID, &room.Name, &room.Capacity, &room.Equipment, &room.Building, &room.Floor)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("error querying room ID=%d: %w", id, err)
	}
	return &room, nil
}

// Create inserts a new room
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) (int64, error) {
	query := `
		INSERT INTO rooms (name, capacity, equipment, building, floor)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query, room.Name, room.Capacity, room.Equipment, room.Building, room.Floor).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting room: %w", err)
	}
	return id, nil
}

// Update edits an existing room
func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	query := `
		UPDATE rooms
		SET name = $1, capacity = $2, equipment = $3, building = $4, floor = $5
		WHERE id = $6`

	cmdTag, err := r.db.Exec(ctx, query, room.Name, room.Capacity, room.Equipment, room.Building, room.Floor, room.ID)
	if err != nil {
		return fmt.Errorf("error updating room ID=%d: %w", room.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRoomNotFound
	}
	return nil
}

// Delete removes a room
func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting room ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRoomNotFound
	}
	return nil
}
