package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrPatientNotFound      = errors.New("patient not found")
	ErrStaffNotFound        = errors.New("staff member not found")
	ErrCatalogEntryNotFound = errors.New("catalog entry not found")
	ErrNoChanges            = errors.New("no fields to update")

	ErrDuplicateSSN              = errors.New("a patient with this SSN already exists")
	ErrDuplicateEmploymentNumber = errors.New("a staff member with this employment number already exists")
	ErrDuplicateCode             = errors.New("a catalog entry with this code already exists")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// -- Patients --

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.PrimaryCarePhysicianID != nil {
		if err := s.checkPrimaryCarePhysician(ctx, *p.PrimaryCarePhysicianID); err != nil {
			return err
		}
	}
	return s.repo.CreatePatient(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetPatient(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.ListPatients(ctx, limit, offset)
}

// UpdatePatient applies a partial update. Only the fields set on upd change;
// an update that sets nothing is rejected with ErrNoChanges.
func (s *Service) UpdatePatient(ctx context.Context, id uuid.UUID, upd PatientUpdate) (*Patient, error) {
	if upd.IsEmpty() {
		return nil, ErrNoChanges
	}

	p, err := s.repo.GetPatient(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		if *upd.Name == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		p.Name = *upd.Name
	}
	if upd.SSN != nil {
		p.SSN = upd.SSN
	}
	if upd.Gender != nil {
		p.Gender = upd.Gender
	}
	if upd.DateOfBirth != nil {
		p.DateOfBirth = upd.DateOfBirth
	}
	if upd.Phone != nil {
		p.Phone = upd.Phone
	}
	if upd.Address != nil {
		p.Address = upd.Address
	}
	if upd.BloodType != nil {
		p.BloodType = upd.BloodType
	}
	if upd.CholesterolHDL != nil {
		p.CholesterolHDL = upd.CholesterolHDL
	}
	if upd.CholesterolLDL != nil {
		p.CholesterolLDL = upd.CholesterolLDL
	}
	if upd.CholesterolTriglycerides != nil {
		p.CholesterolTriglycerides = upd.CholesterolTriglycerides
	}
	if upd.BloodSugar != nil {
		p.BloodSugar = upd.BloodSugar
	}
	if upd.PrimaryCarePhysicianID != nil {
		if err := s.checkPrimaryCarePhysician(ctx, *upd.PrimaryCarePhysicianID); err != nil {
			return nil, err
		}
		p.PrimaryCarePhysicianID = upd.PrimaryCarePhysicianID
	}

	if err := s.repo.UpdatePatient(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// checkPrimaryCarePhysician verifies the referenced staff member exists and
// can act as a primary care physician.
func (s *Service) checkPrimaryCarePhysician(ctx context.Context, staffID uuid.UUID) error {
	st, err := s.repo.GetStaff(ctx, staffID)
	if err != nil {
		return fmt.Errorf("primary care physician: %w", err)
	}
	if !st.JobType.IsDoctor() {
		return fmt.Errorf("primary care physician must be a physician or surgeon, staff member is a %s", st.JobType)
	}
	return nil
}

// -- Staff --

func (s *Service) CreateStaff(ctx context.Context, st *Staff) error {
	if st.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !st.JobType.Valid() {
		return fmt.Errorf("invalid job type: %s", st.JobType)
	}
	return s.repo.CreateStaff(ctx, st)
}

func (s *Service) GetStaff(ctx context.Context, id uuid.UUID) (*Staff, error) {
	return s.repo.GetStaff(ctx, id)
}

func (s *Service) ListStaff(ctx context.Context, limit, offset int) ([]*Staff, int, error) {
	return s.repo.ListStaff(ctx, limit, offset)
}

func (s *Service) ListStaffByJobType(ctx context.Context, jobType JobType, limit, offset int) ([]*Staff, int, error) {
	if !jobType.Valid() {
		return nil, 0, fmt.Errorf("invalid job type: %s", jobType)
	}
	return s.repo.ListStaffByJobType(ctx, jobType, limit, offset)
}

// UpdateStaff applies a partial update to a staff member.
func (s *Service) UpdateStaff(ctx context.Context, id uuid.UUID, upd StaffUpdate) (*Staff, error) {
	if upd.IsEmpty() {
		return nil, ErrNoChanges
	}

	st, err := s.repo.GetStaff(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		if *upd.Name == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		st.Name = *upd.Name
	}
	if upd.JobType != nil {
		if !upd.JobType.Valid() {
			return nil, fmt.Errorf("invalid job type: %s", *upd.JobType)
		}
		st.JobType = *upd.JobType
	}
	if upd.Specialty != nil {
		st.Specialty = upd.Specialty
	}
	if upd.Gender != nil {
		st.Gender = upd.Gender
	}
	if upd.Phone != nil {
		st.Phone = upd.Phone
	}
	if upd.Address != nil {
		st.Address = upd.Address
	}
	if upd.ContractType != nil {
		st.ContractType = upd.ContractType
	}
	if upd.Grade != nil {
		st.Grade = upd.Grade
	}
	if upd.Salary != nil {
		st.Salary = upd.Salary
	}

	if err := s.repo.UpdateStaff(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// -- Catalogs --

func (s *Service) CreateIllness(ctx context.Context, i *Illness) error {
	if i.Code == "" || i.Description == "" {
		return fmt.Errorf("code and description are required")
	}
	return s.repo.CreateIllness(ctx, i)
}

func (s *Service) GetIllnessByCode(ctx context.Context, code string) (*Illness, error) {
	return s.repo.GetIllnessByCode(ctx, code)
}

func (s *Service) ListIllnesses(ctx context.Context) ([]*Illness, error) {
	return s.repo.ListIllnesses(ctx)
}

func (s *Service) CreateAllergy(ctx context.Context, a *Allergy) error {
	if a.Code == "" || a.Name == "" {
		return fmt.Errorf("code and name are required")
	}
	return s.repo.CreateAllergy(ctx, a)
}

func (s *Service) GetAllergyByCode(ctx context.Context, code string) (*Allergy, error) {
	return s.repo.GetAllergyByCode(ctx, code)
}

func (s *Service) ListAllergies(ctx context.Context) ([]*Allergy, error) {
	return s.repo.ListAllergies(ctx)
}
