package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinDataset(t *testing.T) {
	d := Builtin()
	require.NoError(t, Validate(d))
	assert.Len(t, d.Specialties, 16)
	assert.Len(t, d.Insurances, 13)
	require.Len(t, d.Doctors, 10)

	for _, doc := range d.Doctors {
		assert.Subset(t, doc.Insurances, []string{"Medicare", "Medicaid", "Blue Cross Blue Shield"}, doc.Name)
		assert.NotEmpty(t, doc.Specialties, doc.Name)
	}

	reid := d.Doctors[8]
	assert.Equal(t, "Dr. Omar Reid", reid.Name)
	assert.Equal(t, []string{"Orthopedics", "Surgery"}, reid.Specialties)
}

func TestValidateReportsProblems(t *testing.T) {
	d := Builtin()
	d.Doctors[0].Specialties = append(d.Doctors[0].Specialties, "Astrology")
	d.Doctors[1].Email = ""
	d.Doctors[2].Email = d.Doctors[3].Email

	err := Validate(d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown specialty "Astrology"`)
	assert.Contains(t, err.Error(), "email is required")
	assert.Contains(t, err.Error(), "duplicate email")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "directory.json")
	body := `{
		"specialties": ["Cardiology"],
		"insurances": ["Aetna"],
		"doctors": [{"name": "Dr. A", "email": "a@example.com", "zipcode": "30310",
			"specialties": ["Cardiology"], "insurances": ["Aetna"]}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	d, err := Load(context.Background(), path, nil)
	require.NoError(t, err)
	require.Len(t, d.Doctors, 1)
	assert.Equal(t, "30310", d.Doctors[0].Zipcode)
}

func TestLoadBuiltinAndErrors(t *testing.T) {
	d, err := Load(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Len(t, d.Doctors, 10)

	_, err = Load(context.Background(), "gs://bucket/data.json", nil)
	assert.Error(t, err)

	_, err = Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)

	_, err = Parse([]byte("{not json"))
	assert.Error(t, err)
}
