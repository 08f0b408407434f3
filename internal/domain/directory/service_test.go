package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repository --

type mockRepo struct {
	patients  map[uuid.UUID]*Patient
	staff     map[uuid.UUID]*Staff
	illnesses map[string]*Illness
	allergies map[string]*Allergy
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		patients:  make(map[uuid.UUID]*Patient),
		staff:     make(map[uuid.UUID]*Staff),
		illnesses: make(map[string]*Illness),
		allergies: make(map[string]*Allergy),
	}
}

func (m *mockRepo) CreatePatient(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) GetPatient(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, ErrPatientNotFound
	}
	return p, nil
}

func (m *mockRepo) ListPatients(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for _, p := range m.patients {
		result = append(result, p)
	}
	return result, len(result), nil
}

func (m *mockRepo) UpdatePatient(_ context.Context, p *Patient) error {
	if _, ok := m.patients[p.ID]; !ok {
		return ErrPatientNotFound
	}
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) CreateStaff(_ context.Context, s *Staff) error {
	s.ID = uuid.New()
	m.staff[s.ID] = s
	return nil
}

func (m *mockRepo) GetStaff(_ context.Context, id uuid.UUID) (*Staff, error) {
	s, ok := m.staff[id]
	if !ok {
		return nil, ErrStaffNotFound
	}
	return s, nil
}

func (m *mockRepo) ListStaff(_ context.Context, limit, offset int) ([]*Staff, int, error) {
	var result []*Staff
	for _, s := range m.staff {
		result = append(result, s)
	}
	return result, len(result), nil
}

func (m *mockRepo) ListStaffByJobType(_ context.Context, jobType JobType, limit, offset int) ([]*Staff, int, error) {
	var result []*Staff
	for _, s := range m.staff {
		if s.JobType == jobType {
			result = append(result, s)
		}
	}
	return result, len(result), nil
}

func (m *mockRepo) UpdateStaff(_ context.Context, s *Staff) error {
	if _, ok := m.staff[s.ID]; !ok {
		return ErrStaffNotFound
	}
	m.staff[s.ID] = s
	return nil
}

func (m *mockRepo) CreateIllness(_ context.Context, i *Illness) error {
	if _, ok := m.illnesses[i.Code]; ok {
		return ErrDuplicateCode
	}
	i.ID = uuid.New()
	m.illnesses[i.Code] = i
	return nil
}

func (m *mockRepo) GetIllnessByCode(_ context.Context, code string) (*Illness, error) {
	i, ok := m.illnesses[code]
	if !ok {
		return nil, ErrCatalogEntryNotFound
	}
	return i, nil
}

func (m *mockRepo) ListIllnesses(_ context.Context) ([]*Illness, error) {
	var result []*Illness
	for _, i := range m.illnesses {
		result = append(result, i)
	}
	return result, nil
}

func (m *mockRepo) CreateAllergy(_ context.Context, a *Allergy) error {
	if _, ok := m.allergies[a.Code]; ok {
		return ErrDuplicateCode
	}
	a.ID = uuid.New()
	m.allergies[a.Code] = a
	return nil
}

func (m *mockRepo) GetAllergyByCode(_ context.Context, code string) (*Allergy, error) {
	a, ok := m.allergies[code]
	if !ok {
		return nil, ErrCatalogEntryNotFound
	}
	return a, nil
}

func (m *mockRepo) ListAllergies(_ context.Context) ([]*Allergy, error) {
	var result []*Allergy
	for _, a := range m.allergies {
		result = append(result, a)
	}
	return result, nil
}

// -- Tests --

func TestCreatePatient(t *testing.T) {
	svc := NewService(newMockRepo())

	p := &Patient{Name: "Amina Diallo"}
	if err := svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected ID to be assigned")
	}
}

func TestCreatePatient_RequiresName(t *testing.T) {
	svc := NewService(newMockRepo())

	err := svc.CreatePatient(context.Background(), &Patient{})
	if err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestCreatePatient_PCPMustBeDoctor(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	nurse := &Staff{Name: "N. Okafor", JobType: JobNurse}
	repo.CreateStaff(context.Background(), nurse)

	p := &Patient{Name: "Amina Diallo", PrimaryCarePhysicianID: &nurse.ID}
	err := svc.CreatePatient(context.Background(), p)
	if err == nil {
		t.Fatal("expected error for nurse as primary care physician")
	}
}

func TestCreatePatient_PCPMissing(t *testing.T) {
	svc := NewService(newMockRepo())

	missing := uuid.New()
	p := &Patient{Name: "Amina Diallo", PrimaryCarePhysicianID: &missing}
	err := svc.CreatePatient(context.Background(), p)
	if !errors.Is(err, ErrStaffNotFound) {
		t.Fatalf("expected ErrStaffNotFound, got %v", err)
	}
}

func TestCreatePatient_SurgeonAsPCP(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	surgeon := &Staff{Name: "S. Varga", JobType: JobSurgeon}
	repo.CreateStaff(context.Background(), surgeon)

	p := &Patient{Name: "Amina Diallo", PrimaryCarePhysicianID: &surgeon.ID}
	if err := svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("surgeon should be a valid primary care physician: %v", err)
	}
}

func TestUpdatePatient_NoChanges(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	p := &Patient{Name: "Amina Diallo"}
	repo.CreatePatient(context.Background(), p)

	_, err := svc.UpdatePatient(context.Background(), p.ID, PatientUpdate{})
	if !errors.Is(err, ErrNoChanges) {
		t.Fatalf("expected ErrNoChanges, got %v", err)
	}
}

func TestUpdatePatient_Partial(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	ssn := "123-45-6789"
	p := &Patient{Name: "Amina Diallo", SSN: &ssn}
	repo.CreatePatient(context.Background(), p)

	bloodType := "O+"
	updated, err := svc.UpdatePatient(context.Background(), p.ID, PatientUpdate{BloodType: &bloodType})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.BloodType == nil || *updated.BloodType != "O+" {
		t.Error("expected blood type to be updated")
	}
	if updated.SSN == nil || *updated.SSN != ssn {
		t.Error("expected untouched fields to be preserved")
	}
	if updated.Name != "Amina Diallo" {
		t.Errorf("expected name preserved, got %q", updated.Name)
	}
}

func TestUpdatePatient_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())

	name := "Someone"
	_, err := svc.UpdatePatient(context.Background(), uuid.New(), PatientUpdate{Name: &name})
	if !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}

func TestCreateStaff_InvalidJobType(t *testing.T) {
	svc := NewService(newMockRepo())

	err := svc.CreateStaff(context.Background(), &Staff{Name: "X", JobType: "Janitor"})
	if err == nil {
		t.Fatal("expected error for invalid job type")
	}
}

func TestListStaffByJobType(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	repo.CreateStaff(context.Background(), &Staff{Name: "Dr. A", JobType: JobPhysician})
	repo.CreateStaff(context.Background(), &Staff{Name: "Dr. B", JobType: JobSurgeon})
	repo.CreateStaff(context.Background(), &Staff{Name: "N. C", JobType: JobNurse})

	nurses, total, err := svc.ListStaffByJobType(context.Background(), JobNurse, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(nurses) != 1 {
		t.Fatalf("expected 1 nurse, got %d", len(nurses))
	}
	if nurses[0].Name != "N. C" {
		t.Errorf("unexpected staff member: %s", nurses[0].Name)
	}
}

func TestListStaffByJobType_Invalid(t *testing.T) {
	svc := NewService(newMockRepo())

	_, _, err := svc.ListStaffByJobType(context.Background(), "Wizard", 20, 0)
	if err == nil {
		t.Fatal("expected error for invalid job type")
	}
}

func TestUpdateStaff_JobTypeChange(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	st := &Staff{Name: "Dr. A", JobType: JobPhysician}
	repo.CreateStaff(context.Background(), st)

	jt := JobSurgeon
	updated, err := svc.UpdateStaff(context.Background(), st.ID, StaffUpdate{JobType: &jt})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.JobType != JobSurgeon {
		t.Errorf("expected Surgeon, got %s", updated.JobType)
	}
}

func TestJobTypeHelpers(t *testing.T) {
	tests := []struct {
		jt       JobType
		isDoctor bool
		isNurse  bool
		isSurgeon bool
	}{
		{JobPhysician, true, false, false},
		{JobSurgeon, true, false, true},
		{JobNurse, false, true, false},
		{JobSupportStaff, false, false, false},
		{JobTechnician, false, false, false},
		{JobPharmacist, false, false, false},
		{JobAdmin, false, false, false},
	}
	for _, tt := range tests {
		if got := tt.jt.IsDoctor(); got != tt.isDoctor {
			t.Errorf("%s.IsDoctor() = %v, want %v", tt.jt, got, tt.isDoctor)
		}
		if got := tt.jt.IsNurse(); got != tt.isNurse {
			t.Errorf("%s.IsNurse() = %v, want %v", tt.jt, got, tt.isNurse)
		}
		if got := tt.jt.IsSurgeon(); got != tt.isSurgeon {
			t.Errorf("%s.IsSurgeon() = %v, want %v", tt.jt, got, tt.isSurgeon)
		}
	}
}

func TestCatalogs(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.CreateIllness(ctx, &Illness{Code: "J45", Description: "Asthma"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.CreateIllness(ctx, &Illness{Code: "J45", Description: "Asthma again"}); !errors.Is(err, ErrDuplicateCode) {
		t.Fatalf("expected ErrDuplicateCode, got %v", err)
	}

	i, err := svc.GetIllnessByCode(ctx, "J45")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i.Description != "Asthma" {
		t.Errorf("unexpected description: %s", i.Description)
	}

	if _, err := svc.GetIllnessByCode(ctx, "Z99"); !errors.Is(err, ErrCatalogEntryNotFound) {
		t.Fatalf("expected ErrCatalogEntryNotFound, got %v", err)
	}

	if err := svc.CreateAllergy(ctx, &Allergy{Code: "PCN", Name: "Penicillin"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.CreateAllergy(ctx, &Allergy{Code: "PCN"}); err == nil {
		t.Fatal("expected error for allergy without name")
	}
}
