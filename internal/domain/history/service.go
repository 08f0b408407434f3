package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrDuplicateEntry = errors.New("this entry is already on the patient's record")

type Service struct {
	repo Repository
	dir  Directory
}

func NewService(repo Repository, dir Directory) *Service {
	return &Service{repo: repo, dir: dir}
}

// AddIllness records a diagnosed illness for a patient by catalog code.
func (s *Service) AddIllness(ctx context.Context, patientID uuid.UUID, req AddIllnessRequest) (*PatientIllness, error) {
	if req.Code == "" {
		return nil, fmt.Errorf("code is required")
	}
	if _, err := s.dir.GetPatient(ctx, patientID); err != nil {
		return nil, fmt.Errorf("patient: %w", err)
	}
	illness, err := s.dir.GetIllnessByCode(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("illness %q: %w", req.Code, err)
	}

	pi := &PatientIllness{
		PatientID:     patientID,
		IllnessID:     illness.ID,
		Code:          illness.Code,
		Description:   illness.Description,
		DiagnosedDate: req.DiagnosedDate,
	}
	if err := s.repo.AddIllness(ctx, pi); err != nil {
		return nil, err
	}
	return pi, nil
}

// AddAllergy records an allergy for a patient by catalog code.
func (s *Service) AddAllergy(ctx context.Context, patientID uuid.UUID, req AddAllergyRequest) (*PatientAllergy, error) {
	if req.Code == "" {
		return nil, fmt.Errorf("code is required")
	}
	if _, err := s.dir.GetPatient(ctx, patientID); err != nil {
		return nil, fmt.Errorf("patient: %w", err)
	}
	allergy, err := s.dir.GetAllergyByCode(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("allergy %q: %w", req.Code, err)
	}

	pa := &PatientAllergy{
		PatientID: patientID,
		AllergyID: allergy.ID,
		Code:      allergy.Code,
		Name:      allergy.Name,
	}
	if err := s.repo.AddAllergy(ctx, pa); err != nil {
		return nil, err
	}
	return pa, nil
}

func (s *Service) ListIllnesses(ctx context.Context, patientID uuid.UUID) ([]*PatientIllness, error) {
	if _, err := s.dir.GetPatient(ctx, patientID); err != nil {
		return nil, err
	}
	return s.repo.ListIllnesses(ctx, patientID)
}

func (s *Service) ListAllergies(ctx context.Context, patientID uuid.UUID) ([]*PatientAllergy, error) {
	if _, err := s.dir.GetPatient(ctx, patientID); err != nil {
		return nil, err
	}
	return s.repo.ListAllergies(ctx, patientID)
}

// History returns the combined illness and allergy record for a patient.
func (s *Service) History(ctx context.Context, patientID uuid.UUID) (*MedicalHistory, error) {
	if _, err := s.dir.GetPatient(ctx, patientID); err != nil {
		return nil, err
	}
	illnesses, err := s.repo.ListIllnesses(ctx, patientID)
	if err != nil {
		return nil, err
	}
	allergies, err := s.repo.ListAllergies(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return &MedicalHistory{
		PatientID: patientID,
		Illnesses: illnesses,
		Allergies: allergies,
	}, nil
}
