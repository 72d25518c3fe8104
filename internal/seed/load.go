package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/oksasatya/campus-doctor-directory/internal/domain/entity"
	"github.com/oksasatya/campus-doctor-directory/pkg/helpers"
)

// SourceBuiltin selects the dataset compiled into the binary.
const SourceBuiltin = "builtin"

// IsGCS reports whether src names a Cloud Storage object.
func IsGCS(src string) bool {
	return strings.HasPrefix(src, "gs://")
}

// Load resolves src to a validated dataset. src is "builtin" (or empty), a
// local JSON file path, or a gs://bucket/object URL. gcs is only used for
// gs:// sources.
func Load(ctx context.Context, src string, gcs *storage.Client) (entity.Directory, error) {
	var (
		raw []byte
		err error
	)
	switch {
	case src == "" || src == SourceBuiltin:
		d := Builtin()
		return d, Validate(d)
	case IsGCS(src):
		if gcs == nil {
			return entity.Directory{}, errors.New("gcs client required for " + src)
		}
		bucket, object, perr := helpers.ParseGCSURL(src)
		if perr != nil {
			return entity.Directory{}, perr
		}
		raw, err = helpers.ReadObject(ctx, gcs, bucket, object)
	default:
		raw, err = os.ReadFile(src)
	}
	if err != nil {
		return entity.Directory{}, fmt.Errorf("read dataset %s: %w", src, err)
	}
	return Parse(raw)
}

// Parse decodes a JSON dataset and validates it.
func Parse(raw []byte) (entity.Directory, error) {
	var d entity.Directory
	if err := json.Unmarshal(raw, &d); err != nil {
		return entity.Directory{}, fmt.Errorf("decode dataset: %w", err)
	}
	return d, Validate(d)
}

// Validate checks that every doctor has an email and refers only to
// vocabulary entries present in the dataset.
func Validate(d entity.Directory) error {
	specs := toSet(d.Specialties)
	ins := toSet(d.Insurances)
	emails := make(map[string]struct{}, len(d.Doctors))

	var errs []error
	for i, doc := range d.Doctors {
		if strings.TrimSpace(doc.Name) == "" {
			errs = append(errs, fmt.Errorf("doctor %d: name is required", i))
		}
		if strings.TrimSpace(doc.Email) == "" {
			errs = append(errs, fmt.Errorf("doctor %d (%s): email is required", i, doc.Name))
		} else if _, dup := emails[doc.Email]; dup {
			errs = append(errs, fmt.Errorf("doctor %d (%s): duplicate email %s", i, doc.Name, doc.Email))
		}
		emails[doc.Email] = struct{}{}
		for _, s := range doc.Specialties {
			if _, ok := specs[s]; !ok {
				errs = append(errs, fmt.Errorf("doctor %d (%s): unknown specialty %q", i, doc.Name, s))
			}
		}
		for _, s := range doc.Insurances {
			if _, ok := ins[s]; !ok {
				errs = append(errs, fmt.Errorf("doctor %d (%s): unknown insurance %q", i, doc.Name, s))
			}
		}
	}
	return errors.Join(errs...)
}

func toSet(names []string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}
