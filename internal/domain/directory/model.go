package directory

import (
	"time"

	"github.com/google/uuid"
)

// JobType classifies staff members. The values mirror the hospital's HR
// classification and drive every role check in the clinical workflows.
type JobType string

const (
	JobPhysician    JobType = "Physician"
	JobSurgeon      JobType = "Surgeon"
	JobNurse        JobType = "Nurse"
	JobSupportStaff JobType = "Support Staff"
	JobAdmin        JobType = "Admin"
	JobTechnician   JobType = "Technician"
	JobPharmacist   JobType = "Pharmacist"
)

var validJobTypes = map[JobType]bool{
	JobPhysician:    true,
	JobSurgeon:      true,
	JobNurse:        true,
	JobSupportStaff: true,
	JobAdmin:        true,
	JobTechnician:   true,
	JobPharmacist:   true,
}

// Valid reports whether j is a recognized job type.
func (j JobType) Valid() bool { return validJobTypes[j] }

// IsDoctor reports whether the job type may act as an attending doctor.
// Both physicians and surgeons qualify.
func (j JobType) IsDoctor() bool { return j == JobPhysician || j == JobSurgeon }

// IsSurgeon reports whether the job type may perform surgery.
func (j JobType) IsSurgeon() bool { return j == JobSurgeon }

// IsNurse reports whether the job type may fill a nursing slot.
func (j JobType) IsNurse() bool { return j == JobNurse }

// Patient maps to the patient table.
type Patient struct {
	ID                     uuid.UUID  `db:"id" json:"id"`
	Name                   string     `db:"name" json:"name"`
	SSN                    *string    `db:"ssn" json:"ssn,omitempty"`
	Gender                 *string    `db:"gender" json:"gender,omitempty"`
	DateOfBirth            *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Phone                  *string    `db:"phone" json:"phone,omitempty"`
	Address                *string    `db:"address" json:"address,omitempty"`
	BloodType              *string    `db:"blood_type" json:"blood_type,omitempty"`
	CholesterolHDL         *int       `db:"cholesterol_hdl" json:"cholesterol_hdl,omitempty"`
	CholesterolLDL         *int       `db:"cholesterol_ldl" json:"cholesterol_ldl,omitempty"`
	CholesterolTriglycerides *int     `db:"cholesterol_triglycerides" json:"cholesterol_triglycerides,omitempty"`
	BloodSugar             *int       `db:"blood_sugar" json:"blood_sugar,omitempty"`
	PrimaryCarePhysicianID *uuid.UUID `db:"primary_care_physician_id" json:"primary_care_physician_id,omitempty"`
	CreatedAt              time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time  `db:"updated_at" json:"updated_at"`
}

// PatientUpdate carries the fields of a partial patient update. Nil fields
// are left untouched.
type PatientUpdate struct {
	Name                   *string    `json:"name,omitempty"`
	SSN                    *string    `json:"ssn,omitempty"`
	Gender                 *string    `json:"gender,omitempty"`
	DateOfBirth            *time.Time `json:"date_of_birth,omitempty"`
	Phone                  *string    `json:"phone,omitempty"`
	Address                *string    `json:"address,omitempty"`
	BloodType              *string    `json:"blood_type,omitempty"`
	CholesterolHDL         *int       `json:"cholesterol_hdl,omitempty"`
	CholesterolLDL         *int       `json:"cholesterol_ldl,omitempty"`
	CholesterolTriglycerides *int     `json:"cholesterol_triglycerides,omitempty"`
	BloodSugar             *int       `json:"blood_sugar,omitempty"`
	PrimaryCarePhysicianID *uuid.UUID `json:"primary_care_physician_id,omitempty"`
}

// IsEmpty reports whether the update sets no fields.
func (u PatientUpdate) IsEmpty() bool {
	return u.Name == nil && u.SSN == nil && u.Gender == nil && u.DateOfBirth == nil &&
		u.Phone == nil && u.Address == nil && u.BloodType == nil &&
		u.CholesterolHDL == nil && u.CholesterolLDL == nil && u.CholesterolTriglycerides == nil &&
		u.BloodSugar == nil && u.PrimaryCarePhysicianID == nil
}

// Staff maps to the staff table.
type Staff struct {
	ID               uuid.UUID `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	JobType          JobType   `db:"job_type" json:"job_type"`
	Specialty        *string   `db:"specialty" json:"specialty,omitempty"`
	Gender           *string   `db:"gender" json:"gender,omitempty"`
	Phone            *string   `db:"phone" json:"phone,omitempty"`
	Address          *string   `db:"address" json:"address,omitempty"`
	ContractType     *string   `db:"contract_type" json:"contract_type,omitempty"`
	Grade            *string   `db:"grade" json:"grade,omitempty"`
	Salary           *float64  `db:"salary" json:"salary,omitempty"`
	EmploymentNumber *string   `db:"employment_number" json:"employment_number,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// StaffUpdate carries the fields of a partial staff update.
type StaffUpdate struct {
	Name         *string  `json:"name,omitempty"`
	JobType      *JobType `json:"job_type,omitempty"`
	Specialty    *string  `json:"specialty,omitempty"`
	Gender       *string  `json:"gender,omitempty"`
	Phone        *string  `json:"phone,omitempty"`
	Address      *string  `json:"address,omitempty"`
	ContractType *string  `json:"contract_type,omitempty"`
	Grade        *string  `json:"grade,omitempty"`
	Salary       *float64 `json:"salary,omitempty"`
}

// IsEmpty reports whether the update sets no fields.
func (u StaffUpdate) IsEmpty() bool {
	return u.Name == nil && u.JobType == nil && u.Specialty == nil && u.Gender == nil &&
		u.Phone == nil && u.Address == nil && u.ContractType == nil && u.Grade == nil &&
		u.Salary == nil
}

// Illness is a catalog entry for a diagnosable condition.
type Illness struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Code        string    `db:"code" json:"code"`
	Description string    `db:"description" json:"description"`
}

// Allergy is a catalog entry for a known allergen.
type Allergy struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Code string    `db:"code" json:"code"`
	Name string    `db:"name" json:"name"`
}
