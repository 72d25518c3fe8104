package entity

// Doctor is reference data owned by the directory store. Specialties and
// Insurances hold the complete name lists of the doctor's associations.
type Doctor struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Zipcode     string   `json:"zipcode"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	Bio         string   `json:"bio"`
	Affiliation string   `json:"affiliation"`
	Specialties []string `json:"specialties"`
	Insurances  []string `json:"insurances"`
}

// Specialty is a medical specialty vocabulary entry, unique by name.
type Specialty struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Insurance is an insurance plan vocabulary entry, unique by name.
type Insurance struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DoctorFilter holds optional search criteria. An empty field imposes no constraint.
type DoctorFilter struct {
	Specialty string
	Insurance string
	Zipcode   string
}

// Directory is a full provisioning dataset. Doctors reference vocabulary
// entries by name through their Specialties and Insurances lists.
type Directory struct {
	Specialties []string `json:"specialties"`
	Insurances  []string `json:"insurances"`
	Doctors     []Doctor `json:"doctors"`
}
