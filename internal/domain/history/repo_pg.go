package history

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

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (r *repoPG) AddIllness(ctx context.Context, pi *PatientIllness) error {
	pi.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient_illness (id, patient_id, illness_id, diagnosed_date)
		VALUES ($1, $2, $3, $4)`,
		pi.ID, pi.PatientID, pi.IllnessID, pi.DiagnosedDate,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateEntry
	}
	return err
}

func (r *repoPG) AddAllergy(ctx context.Context, pa *PatientAllergy) error {
	pa.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient_allergy (id, patient_id, allergy_id)
		VALUES ($1, $2, $3)`,
		pa.ID, pa.PatientID, pa.AllergyID,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateEntry
	}
	return err
}

func (r *repoPG) ListIllnesses(ctx context.Context, patientID uuid.UUID) ([]*PatientIllness, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT pi.id, pi.patient_id, pi.illness_id, i.code, i.description,
			pi.diagnosed_date, pi.recorded_at
		FROM patient_illness pi
		JOIN illness i ON i.id = pi.illness_id
		WHERE pi.patient_id = $1
		ORDER BY pi.recorded_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	illnesses := make([]*PatientIllness, 0)
	for rows.Next() {
		var pi PatientIllness
		err := rows.Scan(&pi.ID, &pi.PatientID, &pi.IllnessID, &pi.Code, &pi.Description,
			&pi.DiagnosedDate, &pi.RecordedAt)
		if err != nil {
			return nil, err
		}
		illnesses = append(illnesses, &pi)
	}
	return illnesses, rows.Err()
}

func (r *repoPG) ListAllergies(ctx context.Context, patientID uuid.UUID) ([]*PatientAllergy, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT pa.id, pa.patient_id, pa.allergy_id, a.code, a.name, pa.recorded_at
		FROM patient_allergy pa
		JOIN allergy a ON a.id = pa.allergy_id
		WHERE pa.patient_id = $1
		ORDER BY pa.recorded_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	allergies := make([]*PatientAllergy, 0)
	for rows.Next() {
		var pa PatientAllergy
		if err := rows.Scan(&pa.ID, &pa.PatientID, &pa.AllergyID, &pa.Code, &pa.Name, &pa.RecordedAt); err != nil {
			return nil, err
		}
		allergies = append(allergies, &pa)
	}
	return allergies, rows.Err()
}
