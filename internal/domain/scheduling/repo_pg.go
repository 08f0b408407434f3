package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strings"

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

const appointmentCols = `id, patient_id, provider_id, scheduled_at, reason, status, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO appointment (id, patient_id, provider_id, scheduled_at, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.PatientID, a.ProviderID, a.ScheduledAt, a.Reason, a.Status,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, err := scanAppointment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+appointmentCols+` FROM appointment WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	return a, err
}

// Query builds a WHERE clause from the set filter fields. The date filter
// matches the calendar day of scheduled_at.
func (r *repoPG) Query(ctx context.Context, f Filter, limit, offset int) ([]*AppointmentDetail, int, error) {
	var where []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.ProviderID != nil {
		where = append(where, "a.provider_id = "+arg(*f.ProviderID))
	}
	if f.PatientID != nil {
		where = append(where, "a.patient_id = "+arg(*f.PatientID))
	}
	if f.Date != nil {
		where = append(where, "a.scheduled_at::date = "+arg(*f.Date)+"::date")
	}
	if f.Status != nil {
		where = append(where, "a.status = "+arg(*f.Status))
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM appointment a`+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT a.id, a.patient_id, a.provider_id, a.scheduled_at, a.reason, a.status,
			a.created_at, a.updated_at, p.name, s.name
		FROM appointment a
		JOIN patient p ON p.id = a.patient_id
		JOIN staff s ON s.id = a.provider_id` + clause +
		fmt.Sprintf(" ORDER BY a.scheduled_at LIMIT %s OFFSET %s", arg(limit), arg(offset))

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	details := make([]*AppointmentDetail, 0)
	for rows.Next() {
		var d AppointmentDetail
		err := rows.Scan(&d.ID, &d.PatientID, &d.ProviderID, &d.ScheduledAt, &d.Reason, &d.Status,
			&d.CreatedAt, &d.UpdatedAt, &d.PatientName, &d.ProviderName)
		if err != nil {
			return nil, 0, err
		}
		details = append(details, &d)
	}
	return details, total, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, a *Appointment) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointment
		SET scheduled_at = $2, reason = $3, status = $4, updated_at = NOW()
		WHERE id = $1`,
		a.ID, a.ScheduledAt, a.Reason, a.Status,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM appointment WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.ProviderID, &a.ScheduledAt, &a.Reason, &a.Status,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
