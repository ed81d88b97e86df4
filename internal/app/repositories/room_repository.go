package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/coursesched/internal/app/models"
)

// PgRoomRepository handles database operations for rooms
type PgRoomRepository struct {
	db *pgxpool.Pool
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db *pgxpool.Pool) *PgRoomRepository {
	return &PgRoomRepository{db: db}
}

// Create inserts a room. Room numbers are unique.
func (r *PgRoomRepository) Create(ctx context.Context, room *models.Room) error {
	if room.ID == uuid.Nil {
		room.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO rooms (id, room_number, description)
		VALUES ($1, $2, $3)`,
		room.ID, room.Number, room.Description)
	return mapError(err, "room", room.ID)
}

// GetAll retrieves all rooms ordered by number
func (r *PgRoomRepository) GetAll(ctx context.Context) ([]*models.Room, error) {
	rows, err := r.db.Query(ctx, `SELECT id, room_number, description FROM rooms ORDER BY room_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := []*models.Room{}
	for rows.Next() {
		var room models.Room
		if err := rows.Scan(&room.ID, &room.Number, &room.Description); err != nil {
			return nil, err
		}
		rooms = append(rooms, &room)
	}
	return rooms, rows.Err()
}

