package surgery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/HaadiMalik/Newark-Medical-Associates/internal/domain/directory"
)

type mockRepo struct {
	surgeries map[uuid.UUID]*Surgery
	types     map[uuid.UUID]*SurgeryType
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		surgeries: make(map[uuid.UUID]*Surgery),
		types:     make(map[uuid.UUID]*SurgeryType),
	}
}

func (m *mockRepo) Create(_ context.Context, s *Surgery) error {
	s.ID = uuid.New()
	m.surgeries[s.ID] = s
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Surgery, error) {
	s, ok := m.surgeries[id]
	if !ok {
		return nil, ErrSurgeryNotFound
	}
	return s, nil
}

func (m *mockRepo) Query(_ context.Context, f Filter, limit, offset int) ([]*SurgeryDetail, int, error) {
	var result []*SurgeryDetail
	for _, s := range m.surgeries {
		if f.PatientID != nil && s.PatientID != *f.PatientID {
			continue
		}
		if f.SurgeonID != nil && s.SurgeonID != *f.SurgeonID {
			continue
		}
		if f.Status != nil && s.Status != *f.Status {
			continue
		}
		if f.Theatre != nil && (s.Theatre == nil || *s.Theatre != *f.Theatre) {
			continue
		}
		result = append(result, &SurgeryDetail{Surgery: *s})
	}
	return result, len(result), nil
}

func (m *mockRepo) ListByRoomAndDay(_ context.Context, roomID uuid.UUID, day time.Time) ([]*SurgeryDetail, error) {
	return nil, nil
}

func (m *mockRepo) Update(_ context.Context, s *Surgery) error {
	if _, ok := m.surgeries[s.ID]; !ok {
		return ErrSurgeryNotFound
	}
	m.surgeries[s.ID] = s
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.surgeries[id]; !ok {
		return ErrSurgeryNotFound
	}
	delete(m.surgeries, id)
	return nil
}

func (m *mockRepo) CreateType(_ context.Context, t *SurgeryType) error {
	for _, existing := range m.types {
		if existing.Code == t.Code {
			return ErrDuplicateTypeCode
		}
	}
	t.ID = uuid.New()
	m.types[t.ID] = t
	return nil
}

func (m *mockRepo) GetType(_ context.Context, id uuid.UUID) (*SurgeryType, error) {
	t, ok := m.types[id]
	if !ok {
		return nil, ErrTypeNotFound
	}
	return t, nil
}

func (m *mockRepo) GetTypeByCode(_ context.Context, code string) (*SurgeryType, error) {
	for _, t := range m.types {
		if t.Code == code {
			return t, nil
		}
	}
	return nil, ErrTypeNotFound
}

func (m *mockRepo) ListTypes(_ context.Context) ([]*SurgeryType, error) {
	var result []*SurgeryType
	for _, t := range m.types {
		result = append(result, t)
	}
	return result, nil
}

type mockDirectory struct {
	patients map[uuid.UUID]*directory.Patient
	staff    map[uuid.UUID]*directory.Staff
}

func newMockDirectory() *mockDirectory {
	return &mockDirectory{
		patients: make(map[uuid.UUID]*directory.Patient),
		staff:    make(map[uuid.UUID]*directory.Staff),
	}
}

func (m *mockDirectory) GetPatient(_ context.Context, id uuid.UUID) (*directory.Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, directory.ErrPatientNotFound
	}
	return p, nil
}

func (m *mockDirectory) GetStaff(_ context.Context, id uuid.UUID) (*directory.Staff, error) {
	s, ok := m.staff[id]
	if !ok {
		return nil, directory.ErrStaffNotFound
	}
	return s, nil
}

func (m *mockDirectory) addPatient() uuid.UUID {
	id := uuid.New()
	m.patients[id] = &directory.Patient{ID: id, Name: "Patient"}
	return id
}

func (m *mockDirectory) addStaff(jt directory.JobType) uuid.UUID {
	id := uuid.New()
	m.staff[id] = &directory.Staff{ID: id, Name: "Staff", JobType: jt}
	return id
}

type fixture struct {
	repo *mockRepo
	dir  *mockDirectory
	svc  *Service
}

func newFixture() *fixture {
	repo := newMockRepo()
	dir := newMockDirectory()
	return &fixture{repo: repo, dir: dir, svc: NewService(repo, dir)}
}

func (f *fixture) addType(code string) uuid.UUID {
	t := &SurgeryType{Code: code, Name: "Procedure " + code, Category: CategoryHospitalization}
	f.repo.CreateType(context.Background(), t)
	return t.ID
}

func TestBookSurgery(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	sg := &Surgery{
		PatientID:     f.dir.addPatient(),
		SurgeonID:     f.dir.addStaff(directory.JobSurgeon),
		SurgeryTypeID: f.addType("APP-01"),
		ScheduledAt:   time.Now().Add(24 * time.Hour),
	}
	if err := f.svc.Book(ctx, sg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sg.Status != StatusScheduled {
		t.Errorf("expected default status Scheduled, got %s", sg.Status)
	}
}

func TestBookSurgery_PhysicianRejected(t *testing.T) {
	f := newFixture()

	// A physician who is not a surgeon cannot operate.
	sg := &Surgery{
		PatientID:     f.dir.addPatient(),
		SurgeonID:     f.dir.addStaff(directory.JobPhysician),
		SurgeryTypeID: f.addType("APP-01"),
		ScheduledAt:   time.Now(),
	}
	if err := f.svc.Book(context.Background(), sg); err == nil {
		t.Fatal("expected error for non-surgeon")
	}
}

func TestBookSurgery_TypeNotFound(t *testing.T) {
	f := newFixture()

	sg := &Surgery{
		PatientID:     f.dir.addPatient(),
		SurgeonID:     f.dir.addStaff(directory.JobSurgeon),
		SurgeryTypeID: uuid.New(),
		ScheduledAt:   time.Now(),
	}
	err := f.svc.Book(context.Background(), sg)
	if !errors.Is(err, ErrTypeNotFound) {
		t.Fatalf("expected ErrTypeNotFound, got %v", err)
	}
}

func TestUpdateSurgery_StatusChange(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	sg := &Surgery{
		PatientID:     f.dir.addPatient(),
		SurgeonID:     f.dir.addStaff(directory.JobSurgeon),
		SurgeryTypeID: f.addType("APP-01"),
		ScheduledAt:   time.Now(),
	}
	f.svc.Book(ctx, sg)

	st := StatusCancelled
	out, err := f.svc.Update(ctx, sg.ID, Update{Status: &st})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != StatusCancelled {
		t.Errorf("expected Cancelled, got %s", out.Status)
	}
}

func TestUpdateSurgery_NoChanges(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	sg := &Surgery{
		PatientID:     f.dir.addPatient(),
		SurgeonID:     f.dir.addStaff(directory.JobSurgeon),
		SurgeryTypeID: f.addType("APP-01"),
		ScheduledAt:   time.Now(),
	}
	f.svc.Book(ctx, sg)

	_, err := f.svc.Update(ctx, sg.ID, Update{})
	if !errors.Is(err, ErrNoChanges) {
		t.Fatalf("expected ErrNoChanges, got %v", err)
	}
}

func TestQuerySurgeries_Filters(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	surgeon := f.dir.addStaff(directory.JobSurgeon)
	other := f.dir.addStaff(directory.JobSurgeon)
	typeID := f.addType("APP-01")
	theatreA := "OR-1"

	mk := func(sid uuid.UUID, theatre string) {
		th := theatre
		f.svc.Book(ctx, &Surgery{
			PatientID:     f.dir.addPatient(),
			SurgeonID:     sid,
			SurgeryTypeID: typeID,
			ScheduledAt:   time.Now().Add(time.Hour),
			Theatre:       &th,
		})
	}
	mk(surgeon, "OR-1")
	mk(surgeon, "OR-2")
	mk(other, "OR-1")

	bySurgeon, total, err := f.svc.Query(ctx, Filter{SurgeonID: &surgeon}, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(bySurgeon) != 2 {
		t.Errorf("expected 2 surgeries for surgeon, got %d", len(bySurgeon))
	}

	combined, total, err := f.svc.Query(ctx, Filter{SurgeonID: &surgeon, Theatre: &theatreA}, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(combined) != 1 {
		t.Fatalf("expected 1 surgery for combined filter, got %d", len(combined))
	}
}

func TestCreateType(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	typ := &SurgeryType{Code: "CARD-02", Name: "Bypass", Category: CategoryHospitalization}
	if err := f.svc.CreateType(ctx, typ); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dup := &SurgeryType{Code: "CARD-02", Name: "Bypass", Category: CategoryHospitalization}
	if err := f.svc.CreateType(ctx, dup); !errors.Is(err, ErrDuplicateTypeCode) {
		t.Fatalf("expected ErrDuplicateTypeCode, got %v", err)
	}
}

func TestCreateType_InvalidCategory(t *testing.T) {
	f := newFixture()

	typ := &SurgeryType{Code: "X-01", Name: "Thing", Category: "Z"}
	if err := f.svc.CreateType(context.Background(), typ); err == nil {
		t.Fatal("expected error for invalid category")
	}
}
