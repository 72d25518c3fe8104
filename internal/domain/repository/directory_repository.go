package repository

import (
	"context"

	"github.com/oksasatya/campus-doctor-directory/internal/domain/entity"
)

// DirectoryRepository defines read and provisioning operations over doctors,
// specialties, insurances and their associations.
type DirectoryRepository interface {
	ListSpecialties(ctx context.Context) ([]entity.Specialty, error)
	ListInsurances(ctx context.Context) ([]entity.Insurance, error)

	// SearchDoctors returns the doctors matching every supplied filter, each
	// once, ordered by name. Specialties/Insurances are left empty.
	SearchDoctors(ctx context.Context, f entity.DoctorFilter) ([]entity.Doctor, error)
	// GetDoctor returns ErrNotFound when no doctor has the id.
	GetDoctor(ctx context.Context, id int64) (*entity.Doctor, error)

	// SpecialtyNames and InsuranceNames resolve the full association lists of
	// the given doctors, keyed by doctor id.
	SpecialtyNames(ctx context.Context, doctorIDs []int64) (map[int64][]string, error)
	InsuranceNames(ctx context.Context, doctorIDs []int64) (map[int64][]string, error)

	// Provision upserts a dataset atomically and returns the stored doctors.
	Provision(ctx context.Context, d entity.Directory) ([]entity.Doctor, error)
}
