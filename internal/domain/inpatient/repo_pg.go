package inpatient

import (
	"context"
	"errors"
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

const uniqueViolation = "23505"

const admissionCols = `id, patient_id, room_id, admission_date, discharge_date,
	doctor_id, nurse_id, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, a *Admission) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO admission (id, patient_id, room_id, admission_date, doctor_id, nurse_id)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.PatientID, a.RoomID, a.AdmissionDate, a.DoctorID, a.NurseID,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		// Partial unique indexes on (patient_id) and (room_id) where the
		// admission is still active; the constraint name tells the two apart.
		if strings.Contains(pgErr.ConstraintName, "room") {
			return ErrRoomUnavailable
		}
		return ErrAlreadyAdmitted
	}
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM admission WHERE id = $1`, id)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Admission, error) {
	a, err := scanAdmission(r.conn(ctx).QueryRow(ctx,
		`SELECT `+admissionCols+` FROM admission WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAdmissionNotFound
	}
	return a, err
}

func (r *repoPG) GetActiveByPatient(ctx context.Context, patientID uuid.UUID) (*Admission, error) {
	a, err := scanAdmission(r.conn(ctx).QueryRow(ctx,
		`SELECT `+admissionCols+` FROM admission WHERE patient_id = $1 AND discharge_date IS NULL`, patientID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAdmissionNotFound
	}
	return a, err
}

func (r *repoPG) GetActiveByRoom(ctx context.Context, roomID uuid.UUID) (*Admission, error) {
	a, err := scanAdmission(r.conn(ctx).QueryRow(ctx,
		`SELECT `+admissionCols+` FROM admission WHERE room_id = $1 AND discharge_date IS NULL`, roomID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAdmissionNotFound
	}
	return a, err
}

func (r *repoPG) Update(ctx context.Context, a *Admission) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE admission
		SET discharge_date = $2, doctor_id = $3, nurse_id = $4, updated_at = NOW()
		WHERE id = $1`,
		a.ID, a.DischargeDate, a.DoctorID, a.NurseID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAdmissionNotFound
	}
	return nil
}

const admissionDetailQuery = `
	SELECT a.id, a.patient_id, a.room_id, a.admission_date, a.discharge_date,
		a.doctor_id, a.nurse_id, a.created_at, a.updated_at,
		p.name, r.nursing_unit, r.wing, r.room_number, r.bed_label,
		d.name, n.name
	FROM admission a
	JOIN patient p ON p.id = a.patient_id
	JOIN room r ON r.id = a.room_id
	LEFT JOIN staff d ON d.id = a.doctor_id
	LEFT JOIN staff n ON n.id = a.nurse_id`

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*AdmissionDetail, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM admission`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		admissionDetailQuery+` ORDER BY a.admission_date DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return collectDetails(rows, total)
}

func (r *repoPG) ListActive(ctx context.Context, limit, offset int) ([]*AdmissionDetail, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM admission WHERE discharge_date IS NULL`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		admissionDetailQuery+` WHERE a.discharge_date IS NULL
		ORDER BY a.admission_date DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return collectDetails(rows, total)
}

func scanAdmission(row pgx.Row) (*Admission, error) {
	var a Admission
	err := row.Scan(&a.ID, &a.PatientID, &a.RoomID, &a.AdmissionDate, &a.DischargeDate,
		&a.DoctorID, &a.NurseID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectDetails(rows pgx.Rows, total int) ([]*AdmissionDetail, int, error) {
	defer rows.Close()
	details := make([]*AdmissionDetail, 0)
	for rows.Next() {
		var d AdmissionDetail
		err := rows.Scan(&d.ID, &d.PatientID, &d.RoomID, &d.AdmissionDate, &d.DischargeDate,
			&d.DoctorID, &d.NurseID, &d.CreatedAt, &d.UpdatedAt,
			&d.PatientName, &d.NursingUnit, &d.Wing, &d.RoomNumber, &d.BedLabel,
			&d.DoctorName, &d.NurseName)
		if err != nil {
			return nil, 0, err
		}
		details = append(details, &d)
	}
	return details, total, rows.Err()
}
