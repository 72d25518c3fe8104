package postgres

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/oksasatya/campus-doctor-directory/internal/domain/entity"
)

var doctorColumns = []string{
	"d.id", "d.name", "d.address", "d.city", "d.state", "d.zipcode", "d.phone",
	"COALESCE(d.email, '')", "COALESCE(d.bio, '')", "COALESCE(d.affiliation, '')",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	hasSpecialty = "EXISTS (SELECT 1 FROM doctor_specialties ds JOIN specialties s ON s.id = ds.specialty_id WHERE ds.doctor_id = d.id AND s.name = ?)"
	hasInsurance = "EXISTS (SELECT 1 FROM doctor_insurances di JOIN insurances i ON i.id = di.insurance_id WHERE di.doctor_id = d.id AND i.name = ?)"
)

// selectDoctors is the base selection shared by search and lookup by id.
func selectDoctors() sq.SelectBuilder {
	return psql.Select(doctorColumns...).From("doctors d")
}

// buildSearchQuery composes the doctor search as a base selection narrowed by
// one EXISTS predicate per supplied filter. Association filters never join
// into the outer row set, so a doctor with several matching rows still
// appears once.
func buildSearchQuery(f entity.DoctorFilter) (string, []any, error) {
	q := selectDoctors()
	if f.Specialty != "" {
		q = q.Where(sq.Expr(hasSpecialty, f.Specialty))
	}
	if f.Insurance != "" {
		q = q.Where(sq.Expr(hasInsurance, f.Insurance))
	}
	if f.Zipcode != "" {
		q = q.Where(sq.Eq{"d.zipcode": f.Zipcode})
	}
	return q.OrderBy("d.name", "d.id").ToSql()
}
