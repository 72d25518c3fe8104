package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/campus-doctor-directory/internal/domain/entity"
	"github.com/oksasatya/campus-doctor-directory/internal/domain/repository"
)

type DirectoryRepository struct {
	pool *pgxpool.Pool
}

func NewDirectoryRepository(pool *pgxpool.Pool) *DirectoryRepository {
	return &DirectoryRepository{pool: pool}
}

func (r *DirectoryRepository) ListSpecialties(ctx context.Context) ([]entity.Specialty, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM specialties ORDER BY name`)
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Specialty, error) {
		var s entity.Specialty
		err := row.Scan(&s.ID, &s.Name)
		return s, err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *DirectoryRepository) ListInsurances(ctx context.Context) ([]entity.Insurance, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM insurances ORDER BY name`)
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Insurance, error) {
		var i entity.Insurance
		err := row.Scan(&i.ID, &i.Name)
		return i, err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *DirectoryRepository) SearchDoctors(ctx context.Context, f entity.DoctorFilter) ([]entity.Doctor, error) {
	query, args, err := buildSearchQuery(f)
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanDoctor)
}

func (r *DirectoryRepository) GetDoctor(ctx context.Context, id int64) (*entity.Doctor, error) {
	query, args, err := selectDoctors().Where(sq.Eq{"d.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	d, err := pgx.CollectExactlyOneRow(rows, scanDoctor)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DirectoryRepository) SpecialtyNames(ctx context.Context, doctorIDs []int64) (map[int64][]string, error) {
	return r.namesByDoctor(ctx, `
		SELECT ds.doctor_id, s.name
		FROM doctor_specialties ds
		JOIN specialties s ON s.id = ds.specialty_id
		WHERE ds.doctor_id = ANY($1)
		ORDER BY s.name
	`, doctorIDs)
}

func (r *DirectoryRepository) InsuranceNames(ctx context.Context, doctorIDs []int64) (map[int64][]string, error) {
	return r.namesByDoctor(ctx, `
		SELECT di.doctor_id, i.name
		FROM doctor_insurances di
		JOIN insurances i ON i.id = di.insurance_id
		WHERE di.doctor_id = ANY($1)
		ORDER BY i.name
	`, doctorIDs)
}

func (r *DirectoryRepository) namesByDoctor(ctx context.Context, query string, doctorIDs []int64) (map[int64][]string, error) {
	out := make(map[int64][]string, len(doctorIDs))
	if len(doctorIDs) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, query, doctorIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[id] = append(out[id], name)
	}
	return out, rows.Err()
}

// Provision upserts vocabularies, doctors and associations in one transaction,
// so a failure part-way leaves no partially associated doctor behind.
func (r *DirectoryRepository) Provision(ctx context.Context, d entity.Directory) ([]entity.Doctor, error) {
	stored := make([]entity.Doctor, 0, len(d.Doctors))
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		for _, name := range d.Specialties {
			if _, err := tx.Exec(ctx, `INSERT INTO specialties (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
				return fmt.Errorf("insert specialty %q: %w", name, err)
			}
		}
		for _, name := range d.Insurances {
			if _, err := tx.Exec(ctx, `INSERT INTO insurances (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
				return fmt.Errorf("insert insurance %q: %w", name, err)
			}
		}
		for _, doc := range d.Doctors {
			err := tx.QueryRow(ctx, `
				INSERT INTO doctors (name, address, city, state, zipcode, phone, email, bio, affiliation)
				VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''))
				ON CONFLICT (email) DO UPDATE SET
					name = EXCLUDED.name, address = EXCLUDED.address, city = EXCLUDED.city,
					state = EXCLUDED.state, zipcode = EXCLUDED.zipcode, phone = EXCLUDED.phone,
					bio = EXCLUDED.bio, affiliation = EXCLUDED.affiliation
				RETURNING id
			`, doc.Name, doc.Address, doc.City, doc.State, doc.Zipcode, doc.Phone, doc.Email, doc.Bio, doc.Affiliation).Scan(&doc.ID)
			if err != nil {
				return fmt.Errorf("upsert doctor %q: %w", doc.Email, err)
			}
			for _, name := range doc.Specialties {
				if _, err := tx.Exec(ctx, `
					INSERT INTO doctor_specialties (doctor_id, specialty_id)
					SELECT $1, id FROM specialties WHERE name = $2
					ON CONFLICT DO NOTHING
				`, doc.ID, name); err != nil {
					return fmt.Errorf("associate %q with specialty %q: %w", doc.Email, name, err)
				}
			}
			for _, name := range doc.Insurances {
				if _, err := tx.Exec(ctx, `
					INSERT INTO doctor_insurances (doctor_id, insurance_id)
					SELECT $1, id FROM insurances WHERE name = $2
					ON CONFLICT DO NOTHING
				`, doc.ID, name); err != nil {
					return fmt.Errorf("associate %q with insurance %q: %w", doc.Email, name, err)
				}
			}
			stored = append(stored, doc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func scanDoctor(row pgx.CollectableRow) (entity.Doctor, error) {
	var d entity.Doctor
	err := row.Scan(&d.ID, &d.Name, &d.Address, &d.City, &d.State, &d.Zipcode,
		&d.Phone, &d.Email, &d.Bio, &d.Affiliation)
	return d, err
}

var _ repository.DirectoryRepository = (*DirectoryRepository)(nil)
