package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-doctor-directory/internal/domain/entity"
	repo "github.com/oksasatya/campus-doctor-directory/internal/domain/repository"
	"github.com/oksasatya/campus-doctor-directory/internal/metrics"
)

// DirectoryService serves read access to the doctor directory and keeps the
// optional free-text lookup index in step with provisioning.
type DirectoryService struct {
	Repo           repo.DirectoryRepository
	Logger         *logrus.Logger
	ES             *elasticsearch.Client
	ESDoctorsIndex string
}

func NewDirectoryService(repo repo.DirectoryRepository, logger *logrus.Logger, es *elasticsearch.Client, esDoctorsIndex string) *DirectoryService {
	return &DirectoryService{
		Repo:           repo,
		Logger:         logger,
		ES:             es,
		ESDoctorsIndex: esDoctorsIndex,
	}
}

// ListSpecialties returns every specialty ordered by name.
func (s *DirectoryService) ListSpecialties(ctx context.Context) ([]entity.Specialty, error) {
	out, err := s.Repo.ListSpecialties(ctx)
	if err != nil {
		return nil, newError(KindStore, MsgSpecialtiesFailed, err)
	}
	if out == nil {
		out = []entity.Specialty{}
	}
	return out, nil
}

// ListInsurances returns every insurance plan ordered by name.
func (s *DirectoryService) ListInsurances(ctx context.Context) ([]entity.Insurance, error) {
	out, err := s.Repo.ListInsurances(ctx)
	if err != nil {
		return nil, newError(KindStore, MsgInsurancesFailed, err)
	}
	if out == nil {
		out = []entity.Insurance{}
	}
	return out, nil
}

// Search returns the doctors satisfying every supplied filter, each exactly
// once and carrying its complete specialty and insurance lists.
func (s *DirectoryService) Search(ctx context.Context, f entity.DoctorFilter) ([]entity.Doctor, error) {
	doctors, err := s.search(ctx, f)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues(KindStore.String()).Inc()
		return nil, newError(KindStore, MsgSearchFailed, err)
	}
	metrics.SearchesTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	return doctors, nil
}

func (s *DirectoryService) search(ctx context.Context, f entity.DoctorFilter) ([]entity.Doctor, error) {
	doctors, err := s.Repo.SearchDoctors(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(doctors) == 0 {
		return []entity.Doctor{}, nil
	}
	if err := s.attachNames(ctx, doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

// attachNames resolves association names for all doctors with one query per
// association kind.
func (s *DirectoryService) attachNames(ctx context.Context, doctors []entity.Doctor) error {
	ids := make([]int64, len(doctors))
	for i, d := range doctors {
		ids[i] = d.ID
	}
	specs, err := s.Repo.SpecialtyNames(ctx, ids)
	if err != nil {
		return fmt.Errorf("resolve specialties: %w", err)
	}
	ins, err := s.Repo.InsuranceNames(ctx, ids)
	if err != nil {
		return fmt.Errorf("resolve insurances: %w", err)
	}
	for i := range doctors {
		doctors[i].Specialties = nonNil(specs[doctors[i].ID])
		doctors[i].Insurances = nonNil(ins[doctors[i].ID])
	}
	return nil
}

// GetByID returns one doctor with its association lists.
func (s *DirectoryService) GetByID(ctx context.Context, id int64) (*entity.Doctor, error) {
	d, err := s.Repo.GetDoctor(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, newError(KindNotFound, MsgDoctorNotFound, err)
		}
		return nil, newError(KindStore, MsgDoctorFetchFailed, err)
	}
	one := []entity.Doctor{*d}
	if err := s.attachNames(ctx, one); err != nil {
		return nil, newError(KindStore, MsgDoctorFetchFailed, err)
	}
	return &one[0], nil
}

// Provision loads a dataset into the store and indexes the stored doctors.
// Index failures are logged and do not fail provisioning.
func (s *DirectoryService) Provision(ctx context.Context, d entity.Directory) ([]entity.Doctor, error) {
	stored, err := s.Repo.Provision(ctx, d)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"specialties": len(d.Specialties),
			"insurances":  len(d.Insurances),
			"doctors":     len(stored),
		}).Info("directory provisioned")
	}
	indexed := 0
	for i := range stored {
		if err := s.indexDoctor(ctx, &stored[i]); err == nil {
			indexed++
		}
	}
	if s.ES != nil && s.Logger != nil {
		s.Logger.WithField("indexed", indexed).Info("doctors indexed")
	}
	return stored, nil
}

func (s *DirectoryService) indexDoctor(ctx context.Context, d *entity.Doctor) error {
	if s.ES == nil || s.ESDoctorsIndex == "" {
		return nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      s.ESDoctorsIndex,
		DocumentID: strconv.FormatInt(d.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("doctor_id", d.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		if s.Logger != nil {
			s.Logger.WithField("status", res.Status()).WithField("doctor_id", d.ID).Warn("es index response error")
		}
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// Lookup runs a free-text match over the indexed doctor documents.
// Without a configured index it returns no results.
func (s *DirectoryService) Lookup(ctx context.Context, q string, size int) ([]entity.Doctor, error) {
	q = strings.TrimSpace(q)
	if s.ES == nil || s.ESDoctorsIndex == "" || q == "" {
		return []entity.Doctor{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "specialties", "affiliation", "bio"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESDoctorsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, newError(KindStore, MsgLookupFailed, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, newError(KindStore, MsgLookupFailed, fmt.Errorf("es search: %s", res.Status()))
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source entity.Doctor `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, newError(KindStore, MsgLookupFailed, err)
	}

	out := make([]entity.Doctor, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		d := h.Source
		d.Specialties = nonNil(d.Specialties)
		d.Insurances = nonNil(d.Insurances)
		out = append(out, d)
	}
	return out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
