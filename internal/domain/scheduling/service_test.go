package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/HaadiMalik/Newark-Medical-Associates/internal/domain/directory"
)

type mockRepo struct {
	appointments map[uuid.UUID]*Appointment
}

func newMockRepo() *mockRepo {
	return &mockRepo{appointments: make(map[uuid.UUID]*Appointment)}
}

func (m *mockRepo) Create(_ context.Context, a *Appointment) error {
	a.ID = uuid.New()
	m.appointments[a.ID] = a
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := m.appointments[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	return a, nil
}

func (m *mockRepo) Query(_ context.Context, f Filter, limit, offset int) ([]*AppointmentDetail, int, error) {
	var result []*AppointmentDetail
	for _, a := range m.appointments {
		if f.ProviderID != nil && a.ProviderID != *f.ProviderID {
			continue
		}
		if f.PatientID != nil && a.PatientID != *f.PatientID {
			continue
		}
		if f.Date != nil {
			y1, m1, d1 := a.ScheduledAt.Date()
			y2, m2, d2 := f.Date.Date()
			if y1 != y2 || m1 != m2 || d1 != d2 {
				continue
			}
		}
		if f.Status != nil && a.Status != *f.Status {
			continue
		}
		result = append(result, &AppointmentDetail{Appointment: *a})
	}
	return result, len(result), nil
}

func (m *mockRepo) Update(_ context.Context, a *Appointment) error {
	if _, ok := m.appointments[a.ID]; !ok {
		return ErrAppointmentNotFound
	}
	m.appointments[a.ID] = a
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.appointments[id]; !ok {
		return ErrAppointmentNotFound
	}
	delete(m.appointments, id)
	return nil
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

func TestBook(t *testing.T) {
	dir := newMockDirectory()
	svc := NewService(newMockRepo(), dir)
	ctx := context.Background()

	a := &Appointment{
		PatientID:   dir.addPatient(),
		ProviderID:  dir.addStaff(directory.JobPhysician),
		ScheduledAt: time.Now().Add(24 * time.Hour),
	}
	if err := svc.Book(ctx, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != StatusScheduled {
		t.Errorf("expected default status Scheduled, got %s", a.Status)
	}
	if a.ID == uuid.Nil {
		t.Error("expected ID to be assigned")
	}
}

func TestBook_ProviderMustBeDoctor(t *testing.T) {
	dir := newMockDirectory()
	svc := NewService(newMockRepo(), dir)

	a := &Appointment{
		PatientID:   dir.addPatient(),
		ProviderID:  dir.addStaff(directory.JobNurse),
		ScheduledAt: time.Now(),
	}
	if err := svc.Book(context.Background(), a); err == nil {
		t.Fatal("expected error for nurse as provider")
	}
}

func TestBook_PatientNotFound(t *testing.T) {
	dir := newMockDirectory()
	svc := NewService(newMockRepo(), dir)

	a := &Appointment{
		PatientID:   uuid.New(),
		ProviderID:  dir.addStaff(directory.JobPhysician),
		ScheduledAt: time.Now(),
	}
	err := svc.Book(context.Background(), a)
	if !errors.Is(err, directory.ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}

func TestBook_RequiresScheduledAt(t *testing.T) {
	dir := newMockDirectory()
	svc := NewService(newMockRepo(), dir)

	a := &Appointment{
		PatientID:  dir.addPatient(),
		ProviderID: dir.addStaff(directory.JobPhysician),
	}
	if err := svc.Book(context.Background(), a); err == nil {
		t.Fatal("expected error for missing scheduled_at")
	}
}

func TestQuery_Filters(t *testing.T) {
	repo := newMockRepo()
	dir := newMockDirectory()
	svc := NewService(repo, dir)
	ctx := context.Background()

	drA := dir.addStaff(directory.JobPhysician)
	drB := dir.addStaff(directory.JobSurgeon)
	p1 := dir.addPatient()
	p2 := dir.addPatient()

	day1 := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 4, 11, 9, 0, 0, 0, time.UTC)

	mk := func(patient, provider uuid.UUID, at time.Time, st Status) {
		repo.Create(ctx, &Appointment{PatientID: patient, ProviderID: provider, ScheduledAt: at, Status: st})
	}
	mk(p1, drA, day1, StatusScheduled)
	mk(p2, drA, day2, StatusCompleted)
	mk(p2, drB, day1, StatusScheduled)

	byProvider, total, err := svc.Query(ctx, Filter{ProviderID: &drA}, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(byProvider) != 2 {
		t.Errorf("expected 2 appointments for provider, got %d", len(byProvider))
	}

	st := StatusScheduled
	combined, total, err := svc.Query(ctx, Filter{ProviderID: &drA, Date: &day1, Status: &st}, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(combined) != 1 {
		t.Fatalf("expected 1 appointment for combined filter, got %d", len(combined))
	}
	if combined[0].PatientID != p1 {
		t.Error("combined filter returned the wrong appointment")
	}
}

func TestQuery_InvalidStatus(t *testing.T) {
	svc := NewService(newMockRepo(), newMockDirectory())

	st := Status("Lost")
	_, _, err := svc.Query(context.Background(), Filter{Status: &st}, 20, 0)
	if err == nil {
		t.Fatal("expected error for invalid status filter")
	}
}

func TestUpdate(t *testing.T) {
	repo := newMockRepo()
	dir := newMockDirectory()
	svc := NewService(repo, dir)
	ctx := context.Background()

	a := &Appointment{
		PatientID:   dir.addPatient(),
		ProviderID:  dir.addStaff(directory.JobPhysician),
		ScheduledAt: time.Now(),
		Status:      StatusScheduled,
	}
	repo.Create(ctx, a)

	st := StatusCompleted
	out, err := svc.Update(ctx, a.ID, Update{Status: &st})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != StatusCompleted {
		t.Errorf("expected Completed, got %s", out.Status)
	}
}

func TestUpdate_NoChanges(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, newMockDirectory())
	ctx := context.Background()

	a := &Appointment{ScheduledAt: time.Now(), Status: StatusScheduled}
	repo.Create(ctx, a)

	_, err := svc.Update(ctx, a.ID, Update{})
	if !errors.Is(err, ErrNoChanges) {
		t.Fatalf("expected ErrNoChanges, got %v", err)
	}
}

func TestUpdate_InvalidStatus(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, newMockDirectory())
	ctx := context.Background()

	a := &Appointment{ScheduledAt: time.Now(), Status: StatusScheduled}
	repo.Create(ctx, a)

	st := Status("Teleported")
	if _, err := svc.Update(ctx, a.ID, Update{Status: &st}); err == nil {
		t.Fatal("expected error for invalid status")
	}
}

func TestDelete(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, newMockDirectory())
	ctx := context.Background()

	a := &Appointment{ScheduledAt: time.Now(), Status: StatusScheduled}
	repo.Create(ctx, a)

	if err := svc.Delete(ctx, a.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(ctx, a.ID); !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
}
