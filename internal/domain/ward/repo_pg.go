package ward

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/HaadiMalik/Newark-Medical-Associates/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx, ok := db.TxFromContext(ctx); ok {
		return tx
	}
	if c, ok := db.ConnFromContext(ctx); ok {
		return c
	}
	return r.pool
}

const uniqueViolation = "23505"

const roomCols = `id, nursing_unit, wing, room_number, bed_label, occupied, created_at`

func (r *repoPG) Create(ctx context.Context, rm *Room) error {
	rm.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO room (id, nursing_unit, wing, room_number, bed_label, occupied)
		VALUES ($1, $2, $3, $4, $5, FALSE)`,
		rm.ID, rm.NursingUnit, rm.Wing, rm.RoomNumber, rm.BedLabel,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateBed
	}
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	rm, err := scanRoom(r.conn(ctx).QueryRow(ctx, `SELECT `+roomCols+` FROM room WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	return rm, err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Room, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM room`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+roomCols+` FROM room
		ORDER BY nursing_unit, wing, room_number, bed_label
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return collectRooms(rows, total)
}

func (r *repoPG) ListAvailable(ctx context.Context, limit, offset int) ([]*Room, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM room WHERE occupied = FALSE`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+roomCols+` FROM room WHERE occupied = FALSE
		ORDER BY nursing_unit, wing, room_number, bed_label
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return collectRooms(rows, total)
}

// Reserve flips a free bed to occupied in a single statement so two
// concurrent admissions cannot both claim the same bed.
func (r *repoPG) Reserve(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE room SET occupied = TRUE WHERE id = $1 AND occupied = FALSE`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Either the bed does not exist or it is already taken.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrRoomUnavailable
	}
	return nil
}

func (r *repoPG) Release(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `UPDATE room SET occupied = FALSE WHERE id = $1`, id)
	return err
}

func scanRoom(row pgx.Row) (*Room, error) {
	var rm Room
	err := row.Scan(&rm.ID, &rm.NursingUnit, &rm.Wing, &rm.RoomNumber, &rm.BedLabel, &rm.Occupied, &rm.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rm, nil
}

func collectRooms(rows pgx.Rows, total int) ([]*Room, int, error) {
	defer rows.Close()
	rooms := make([]*Room, 0)
	for rows.Next() {
		var rm Room
		if err := rows.Scan(&rm.ID, &rm.NursingUnit, &rm.Wing, &rm.RoomNumber, &rm.BedLabel, &rm.Occupied, &rm.CreatedAt); err != nil {
			return nil, 0, err
		}
		rooms = append(rooms, &rm)
	}
	return rooms, total, rows.Err()
}
