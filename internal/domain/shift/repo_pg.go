package shift

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

func (r *repoPG) Create(ctx context.Context, s *Shift) error {
	s.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO shift (id, staff_id, shift_date, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.StaffID, s.ShiftDate, s.StartTime, s.EndTime,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Shift, error) {
	var s Shift
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, staff_id, shift_date, start_time, end_time, created_at
		FROM shift WHERE id = $1`, id).
		Scan(&s.ID, &s.StaffID, &s.ShiftDate, &s.StartTime, &s.EndTime, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrShiftNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

const shiftDetailSelect = `
	SELECT sh.id, sh.staff_id, sh.shift_date, sh.start_time, sh.end_time, sh.created_at,
		st.name, st.job_type
	FROM shift sh
	JOIN staff st ON st.id = sh.staff_id`

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*ShiftDetail, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM shift`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		shiftDetailSelect+` ORDER BY sh.shift_date DESC, sh.start_time LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return collectDetails(rows, total)
}

func (r *repoPG) ListByStaff(ctx context.Context, staffID uuid.UUID, limit, offset int) ([]*ShiftDetail, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM shift WHERE staff_id = $1`, staffID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		shiftDetailSelect+` WHERE sh.staff_id = $1
		ORDER BY sh.shift_date DESC, sh.start_time LIMIT $2 OFFSET $3`,
		staffID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return collectDetails(rows, total)
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM shift WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrShiftNotFound
	}
	return nil
}

func collectDetails(rows pgx.Rows, total int) ([]*ShiftDetail, int, error) {
	defer rows.Close()
	details := make([]*ShiftDetail, 0)
	for rows.Next() {
		var d ShiftDetail
		err := rows.Scan(&d.ID, &d.StaffID, &d.ShiftDate, &d.StartTime, &d.EndTime, &d.CreatedAt,
			&d.StaffName, &d.JobType)
		if err != nil {
			return nil, 0, err
		}
		details = append(details, &d)
	}
	return details, total, rows.Err()
}
