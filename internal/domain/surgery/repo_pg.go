package surgery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

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

const surgeryCols = `id, patient_id, surgeon_id, surgery_type_id, scheduled_at,
	theatre, status, notes, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, s *Surgery) error {
	s.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO surgery (id, patient_id, surgeon_id, surgery_type_id, scheduled_at, theatre, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.PatientID, s.SurgeonID, s.SurgeryTypeID, s.ScheduledAt, s.Theatre, s.Status, s.Notes,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Surgery, error) {
	s, err := scanSurgery(r.conn(ctx).QueryRow(ctx,
		`SELECT `+surgeryCols+` FROM surgery WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSurgeryNotFound
	}
	return s, err
}

const surgeryDetailSelect = `
	SELECT s.id, s.patient_id, s.surgeon_id, s.surgery_type_id, s.scheduled_at,
		s.theatre, s.status, s.notes, s.created_at, s.updated_at,
		p.name, st.name, t.name, t.code
	FROM surgery s
	JOIN patient p ON p.id = s.patient_id
	JOIN staff st ON st.id = s.surgeon_id
	JOIN surgery_type t ON t.id = s.surgery_type_id`

func (r *repoPG) Query(ctx context.Context, f Filter, limit, offset int) ([]*SurgeryDetail, int, error) {
	var where []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.PatientID != nil {
		where = append(where, "s.patient_id = "+arg(*f.PatientID))
	}
	if f.SurgeonID != nil {
		where = append(where, "s.surgeon_id = "+arg(*f.SurgeonID))
	}
	if f.Date != nil {
		where = append(where, "s.scheduled_at::date = "+arg(*f.Date)+"::date")
	}
	if f.Status != nil {
		where = append(where, "s.status = "+arg(*f.Status))
	}
	if f.Theatre != nil {
		where = append(where, "s.theatre = "+arg(*f.Theatre))
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM surgery s`+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		surgeryDetailSelect+clause+
			fmt.Sprintf(" ORDER BY s.scheduled_at LIMIT %s OFFSET %s", arg(limit), arg(offset)),
		args...)
	if err != nil {
		return nil, 0, err
	}
	details, _, err := collectDetails(rows, total)
	return details, total, err
}

// ListByRoomAndDay resolves the bed's active admission to its patient and
// returns that patient's surgeries on the given day.
func (r *repoPG) ListByRoomAndDay(ctx context.Context, roomID uuid.UUID, day time.Time) ([]*SurgeryDetail, error) {
	rows, err := r.conn(ctx).Query(ctx,
		surgeryDetailSelect+`
		JOIN admission a ON a.patient_id = s.patient_id AND a.discharge_date IS NULL
		WHERE a.room_id = $1 AND s.scheduled_at::date = $2::date
		ORDER BY s.scheduled_at`, roomID, day)
	if err != nil {
		return nil, err
	}
	details, _, err := collectDetails(rows, 0)
	return details, err
}

func (r *repoPG) Update(ctx context.Context, s *Surgery) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE surgery
		SET scheduled_at = $2, theatre = $3, status = $4, notes = $5, updated_at = NOW()
		WHERE id = $1`,
		s.ID, s.ScheduledAt, s.Theatre, s.Status, s.Notes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSurgeryNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM surgery WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSurgeryNotFound
	}
	return nil
}

// -- Surgery types --

const typeCols = `id, code, name, category, anatomical_location, special_needs`

func (r *repoPG) CreateType(ctx context.Context, t *SurgeryType) error {
	t.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO surgery_type (id, code, name, category, anatomical_location, special_needs)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.Code, t.Name, t.Category, t.AnatomicalLocation, t.SpecialNeeds,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateTypeCode
	}
	return err
}

func (r *repoPG) GetType(ctx context.Context, id uuid.UUID) (*SurgeryType, error) {
	t, err := scanType(r.conn(ctx).QueryRow(ctx,
		`SELECT `+typeCols+` FROM surgery_type WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTypeNotFound
	}
	return t, err
}

func (r *repoPG) GetTypeByCode(ctx context.Context, code string) (*SurgeryType, error) {
	t, err := scanType(r.conn(ctx).QueryRow(ctx,
		`SELECT `+typeCols+` FROM surgery_type WHERE code = $1`, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTypeNotFound
	}
	return t, err
}

func (r *repoPG) ListTypes(ctx context.Context) ([]*SurgeryType, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+typeCols+` FROM surgery_type ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]*SurgeryType, 0)
	for rows.Next() {
		var t SurgeryType
		if err := rows.Scan(&t.ID, &t.Code, &t.Name, &t.Category, &t.AnatomicalLocation, &t.SpecialNeeds); err != nil {
			return nil, err
		}
		types = append(types, &t)
	}
	return types, rows.Err()
}

func scanSurgery(row pgx.Row) (*Surgery, error) {
	var s Surgery
	err := row.Scan(&s.ID, &s.PatientID, &s.SurgeonID, &s.SurgeryTypeID, &s.ScheduledAt,
		&s.Theatre, &s.Status, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanType(row pgx.Row) (*SurgeryType, error) {
	var t SurgeryType
	err := row.Scan(&t.ID, &t.Code, &t.Name, &t.Category, &t.AnatomicalLocation, &t.SpecialNeeds)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func collectDetails(rows pgx.Rows, total int) ([]*SurgeryDetail, int, error) {
	defer rows.Close()
	details := make([]*SurgeryDetail, 0)
	for rows.Next() {
		var d SurgeryDetail
		err := rows.Scan(&d.ID, &d.PatientID, &d.SurgeonID, &d.SurgeryTypeID, &d.ScheduledAt,
			&d.Theatre, &d.Status, &d.Notes, &d.CreatedAt, &d.UpdatedAt,
			&d.PatientName, &d.SurgeonName, &d.SurgeryTypeName, &d.SurgeryTypeCode)
		if err != nil {
			return nil, 0, err
		}
		details = append(details, &d)
	}
	return details, total, rows.Err()
}
