package directory

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

// -- Patients --

const patientCols = `id, name, ssn, gender, date_of_birth, phone, address, blood_type,
	cholesterol_hdl, cholesterol_ldl, cholesterol_triglycerides, blood_sugar,
	primary_care_physician_id, created_at, updated_at`

func (r *repoPG) CreatePatient(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient (
			id, name, ssn, gender, date_of_birth, phone, address, blood_type,
			cholesterol_hdl, cholesterol_ldl, cholesterol_triglycerides, blood_sugar,
			primary_care_physician_id
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		p.ID, p.Name, p.SSN, p.Gender, p.DateOfBirth, p.Phone, p.Address, p.BloodType,
		p.CholesterolHDL, p.CholesterolLDL, p.CholesterolTriglycerides, p.BloodSugar,
		p.PrimaryCarePhysicianID,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateSSN
	}
	return err
}

func (r *repoPG) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPatientNotFound
	}
	return p, err
}

func (r *repoPG) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patient ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var patients []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		patients = append(patients, p)
	}
	return patients, total, rows.Err()
}

func (r *repoPG) UpdatePatient(ctx context.Context, p *Patient) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET
			name=$2, ssn=$3, gender=$4, date_of_birth=$5, phone=$6, address=$7,
			blood_type=$8, cholesterol_hdl=$9, cholesterol_ldl=$10,
			cholesterol_triglycerides=$11, blood_sugar=$12,
			primary_care_physician_id=$13, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Name, p.SSN, p.Gender, p.DateOfBirth, p.Phone, p.Address,
		p.BloodType, p.CholesterolHDL, p.CholesterolLDL,
		p.CholesterolTriglycerides, p.BloodSugar,
		p.PrimaryCarePhysicianID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSSN
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPatientNotFound
	}
	return nil
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(
		&p.ID, &p.Name, &p.SSN, &p.Gender, &p.DateOfBirth, &p.Phone, &p.Address, &p.BloodType,
		&p.CholesterolHDL, &p.CholesterolLDL, &p.CholesterolTriglycerides, &p.BloodSugar,
		&p.PrimaryCarePhysicianID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// -- Staff --

const staffCols = `id, name, job_type, specialty, gender, phone, address,
	contract_type, grade, salary, employment_number, created_at, updated_at`

func (r *repoPG) CreateStaff(ctx context.Context, s *Staff) error {
	s.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO staff (
			id, name, job_type, specialty, gender, phone, address,
			contract_type, grade, salary, employment_number
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		s.ID, s.Name, s.JobType, s.Specialty, s.Gender, s.Phone, s.Address,
		s.ContractType, s.Grade, s.Salary, s.EmploymentNumber,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateEmploymentNumber
	}
	return err
}

func (r *repoPG) GetStaff(ctx context.Context, id uuid.UUID) (*Staff, error) {
	s, err := scanStaff(r.conn(ctx).QueryRow(ctx, `SELECT `+staffCols+` FROM staff WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	return s, err
}

func (r *repoPG) ListStaff(ctx context.Context, limit, offset int) ([]*Staff, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM staff`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+staffCols+` FROM staff ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectStaff(rows, total)
}

func (r *repoPG) ListStaffByJobType(ctx context.Context, jobType JobType, limit, offset int) ([]*Staff, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM staff WHERE job_type = $1`, jobType).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+staffCols+` FROM staff WHERE job_type = $1 ORDER BY name LIMIT $2 OFFSET $3`,
		jobType, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectStaff(rows, total)
}

func (r *repoPG) UpdateStaff(ctx context.Context, s *Staff) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE staff SET
			name=$2, job_type=$3, specialty=$4, gender=$5, phone=$6, address=$7,
			contract_type=$8, grade=$9, salary=$10, updated_at=NOW()
		WHERE id = $1`,
		s.ID, s.Name, s.JobType, s.Specialty, s.Gender, s.Phone, s.Address,
		s.ContractType, s.Grade, s.Salary,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStaffNotFound
	}
	return nil
}

func scanStaff(row pgx.Row) (*Staff, error) {
	var s Staff
	err := row.Scan(
		&s.ID, &s.Name, &s.JobType, &s.Specialty, &s.Gender, &s.Phone, &s.Address,
		&s.ContractType, &s.Grade, &s.Salary, &s.EmploymentNumber, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func collectStaff(rows pgx.Rows, total int) ([]*Staff, int, error) {
	var staff []*Staff
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, 0, err
		}
		staff = append(staff, s)
	}
	return staff, total, rows.Err()
}

// -- Catalogs --

func (r *repoPG) CreateIllness(ctx context.Context, i *Illness) error {
	i.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx,
		`INSERT INTO illness (id, code, description) VALUES ($1,$2,$3)`,
		i.ID, i.Code, i.Description,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateCode
	}
	return err
}

func (r *repoPG) GetIllnessByCode(ctx context.Context, code string) (*Illness, error) {
	var i Illness
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT id, code, description FROM illness WHERE code = $1`, code,
	).Scan(&i.ID, &i.Code, &i.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCatalogEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *repoPG) ListIllnesses(ctx context.Context) ([]*Illness, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT id, code, description FROM illness ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var illnesses []*Illness
	for rows.Next() {
		var i Illness
		if err := rows.Scan(&i.ID, &i.Code, &i.Description); err != nil {
			return nil, err
		}
		illnesses = append(illnesses, &i)
	}
	return illnesses, rows.Err()
}

func (r *repoPG) CreateAllergy(ctx context.Context, a *Allergy) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx,
		`INSERT INTO allergy (id, code, name) VALUES ($1,$2,$3)`,
		a.ID, a.Code, a.Name,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateCode
	}
	return err
}

func (r *repoPG) GetAllergyByCode(ctx context.Context, code string) (*Allergy, error) {
	var a Allergy
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT id, code, name FROM allergy WHERE code = $1`, code,
	).Scan(&a.ID, &a.Code, &a.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCatalogEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repoPG) ListAllergies(ctx context.Context) ([]*Allergy, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT id, code, name FROM allergy ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allergies []*Allergy
	for rows.Next() {
		var a Allergy
		if err := rows.Scan(&a.ID, &a.Code, &a.Name); err != nil {
			return nil, err
		}
		allergies = append(allergies, &a)
	}
	return allergies, rows.Err()
}
