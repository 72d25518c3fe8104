package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/oksasatya/campus-doctor-directory/internal/domain/entity"
	"github.com/oksasatya/campus-doctor-directory/internal/domain/repository"
)

// DirectoryRepository is an in-memory repository.DirectoryRepository seeded
// through Provision. *Func fields override single methods.
type DirectoryRepository struct {
	ListSpecialtiesFunc func(ctx context.Context) ([]entity.Specialty, error)
	ListInsurancesFunc  func(ctx context.Context) ([]entity.Insurance, error)
	SearchDoctorsFunc   func(ctx context.Context, f entity.DoctorFilter) ([]entity.Doctor, error)
	GetDoctorFunc       func(ctx context.Context, id int64) (*entity.Doctor, error)
	SpecialtyNamesFunc  func(ctx context.Context, ids []int64) (map[int64][]string, error)
	InsuranceNamesFunc  func(ctx context.Context, ids []int64) (map[int64][]string, error)
	ProvisionFunc       func(ctx context.Context, d entity.Directory) ([]entity.Doctor, error)

	mu          sync.Mutex
	specialties []entity.Specialty
	insurances  []entity.Insurance
	doctors     []entity.Doctor
	// NameCalls counts SpecialtyNames and InsuranceNames invocations.
	NameCalls int
}

func NewDirectoryRepository() *DirectoryRepository {
	return &DirectoryRepository{}
}

func (m *DirectoryRepository) ListSpecialties(ctx context.Context) ([]entity.Specialty, error) {
	if m.ListSpecialtiesFunc != nil {
		return m.ListSpecialtiesFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]entity.Specialty(nil), m.specialties...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *DirectoryRepository) ListInsurances(ctx context.Context) ([]entity.Insurance, error) {
	if m.ListInsurancesFunc != nil {
		return m.ListInsurancesFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]entity.Insurance(nil), m.insurances...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *DirectoryRepository) SearchDoctors(ctx context.Context, f entity.DoctorFilter) ([]entity.Doctor, error) {
	if m.SearchDoctorsFunc != nil {
		return m.SearchDoctorsFunc(ctx, f)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Doctor
	for _, d := range m.doctors {
		if f.Specialty != "" && !contains(d.Specialties, f.Specialty) {
			continue
		}
		if f.Insurance != "" && !contains(d.Insurances, f.Insurance) {
			continue
		}
		if f.Zipcode != "" && d.Zipcode != f.Zipcode {
			continue
		}
		out = append(out, bare(d))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *DirectoryRepository) GetDoctor(ctx context.Context, id int64) (*entity.Doctor, error) {
	if m.GetDoctorFunc != nil {
		return m.GetDoctorFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.doctors {
		if d.ID == id {
			b := bare(d)
			return &b, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *DirectoryRepository) SpecialtyNames(ctx context.Context, ids []int64) (map[int64][]string, error) {
	if m.SpecialtyNamesFunc != nil {
		return m.SpecialtyNamesFunc(ctx, ids)
	}
	return m.names(ids, func(d entity.Doctor) []string { return d.Specialties }), nil
}

func (m *DirectoryRepository) InsuranceNames(ctx context.Context, ids []int64) (map[int64][]string, error) {
	if m.InsuranceNamesFunc != nil {
		return m.InsuranceNamesFunc(ctx, ids)
	}
	return m.names(ids, func(d entity.Doctor) []string { return d.Insurances }), nil
}

func (m *DirectoryRepository) names(ids []int64, pick func(entity.Doctor) []string) map[int64][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NameCalls++
	out := make(map[int64][]string, len(ids))
	for _, id := range ids {
		for _, d := range m.doctors {
			if d.ID == id && len(pick(d)) > 0 {
				names := append([]string(nil), pick(d)...)
				sort.Strings(names)
				out[id] = names
			}
		}
	}
	return out
}

// Provision replaces the in-memory directory with d, assigning IDs in order.
func (m *DirectoryRepository) Provision(ctx context.Context, d entity.Directory) ([]entity.Doctor, error) {
	if m.ProvisionFunc != nil {
		return m.ProvisionFunc(ctx, d)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.specialties = m.specialties[:0]
	for i, name := range d.Specialties {
		m.specialties = append(m.specialties, entity.Specialty{ID: int64(i + 1), Name: name})
	}
	m.insurances = m.insurances[:0]
	for i, name := range d.Insurances {
		m.insurances = append(m.insurances, entity.Insurance{ID: int64(i + 1), Name: name})
	}
	m.doctors = m.doctors[:0]
	for i, doc := range d.Doctors {
		doc.ID = int64(i + 1)
		m.doctors = append(m.doctors, doc)
	}
	return append([]entity.Doctor(nil), m.doctors...), nil
}

func bare(d entity.Doctor) entity.Doctor {
	d.Specialties = nil
	d.Insurances = nil
	return d
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

var _ repository.DirectoryRepository = (*DirectoryRepository)(nil)
