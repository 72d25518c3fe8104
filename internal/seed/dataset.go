// Package seed provides the directory dataset loaded at provisioning time.
package seed

import "github.com/oksasatya/campus-doctor-directory/internal/domain/entity"

var (
	commonInsurances = []string{"Medicare", "Medicaid", "Blue Cross Blue Shield"}
	msmPlans         = []string{"Aetna", "Cigna", "UnitedHealthcare"}
	hospitalPlans    = []string{"Humana", "Kaiser Permanente"}
)

func plans(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// Builtin returns the Atlanta directory shipped with the application.
func Builtin() entity.Directory {
	const (
		msm     = "Morehouse School of Medicine"
		msmAddr = "720 Westview Drive SW"
	)
	return entity.Directory{
		Specialties: []string{
			"Family Medicine",
			"Internal Medicine",
			"Pediatrics",
			"Obstetrics and Gynecology",
			"Cardiology",
			"Dermatology",
			"Orthopedics",
			"Neurology",
			"Psychiatry",
			"Surgery",
			"Emergency Medicine",
			"Preventive Medicine",
			"Radiology",
			"Endocrinology",
			"Gastroenterology",
			"Pulmonology",
		},
		Insurances: []string{
			"Medicare",
			"Medicaid",
			"Blue Cross Blue Shield",
			"Aetna",
			"Cigna",
			"UnitedHealthcare",
			"Humana",
			"Kaiser Permanente",
			"Molina Healthcare",
			"Ambetter",
			"Peach State Health Plan",
			"WellCare",
			"Amerigroup",
		},
		Doctors: []entity.Doctor{
			{
				Name: "Dr. Valerie Montgomery Rice", Address: msmAddr, City: "Atlanta", State: "GA", Zipcode: "30310",
				Phone: "404-752-1500", Email: "vmontgomeryrice@msm.edu", Affiliation: msm,
				Bio:         "President and CEO of Morehouse School of Medicine. Board-certified in obstetrics and gynecology.",
				Specialties: []string{"Obstetrics and Gynecology"},
				Insurances:  plans(commonInsurances, msmPlans, []string{"Peach State Health Plan", "WellCare"}),
			},
			{
				Name: "Dr. Elizabeth Ofili", Address: msmAddr, City: "Atlanta", State: "GA", Zipcode: "30310",
				Phone: "404-752-1973", Email: "eofili@msm.edu", Affiliation: msm,
				Bio:         "Professor of Medicine and Director of Clinical Research Center. Specializes in cardiology and preventive health.",
				Specialties: []string{"Cardiology", "Preventive Medicine"},
				Insurances:  plans(commonInsurances, msmPlans),
			},
			{
				Name: "Dr. Camara Jones", Address: msmAddr, City: "Atlanta", State: "GA", Zipcode: "30310",
				Phone: "404-752-1500", Email: "cjones@msm.edu", Affiliation: msm,
				Bio:         "Research Director on Social Determinants of Health and Equity. Family physician and epidemiologist focusing on health disparities.",
				Specialties: []string{"Family Medicine"},
				Insurances:  plans(commonInsurances, msmPlans, []string{"Ambetter", "Amerigroup"}),
			},
			{
				Name: "Dr. David Satcher", Address: msmAddr, City: "Atlanta", State: "GA", Zipcode: "30310",
				Phone: "404-752-8654", Email: "dsatcher@msm.edu", Affiliation: msm,
				Bio:         "Founder of the Satcher Health Leadership Institute. Former US Surgeon General and expert in public health policy.",
				Specialties: []string{"Preventive Medicine"},
				Insurances:  plans(commonInsurances, msmPlans),
			},
			{
				Name: "Dr. Herman Taylor", Address: msmAddr, City: "Atlanta", State: "GA", Zipcode: "30310",
				Phone: "404-752-1980", Email: "htaylor@msm.edu", Affiliation: msm,
				Bio:         "Director of the Cardiovascular Research Institute. Specializes in preventive cardiology with focus on African American health.",
				Specialties: []string{"Cardiology"},
				Insurances:  plans(commonInsurances, msmPlans, []string{"Molina Healthcare", "Amerigroup"}),
			},
			{
				Name: "Dr. Winston Price", Address: msmAddr, City: "Atlanta", State: "GA", Zipcode: "30310",
				Phone: "404-752-1600", Email: "wprice@msm.edu", Affiliation: msm,
				Bio:         "Professor of Pediatrics focusing on adolescent health, immunizations, and health equity in underserved communities.",
				Specialties: []string{"Pediatrics"},
				Insurances:  plans(commonInsurances, msmPlans),
			},
			{
				Name: "Dr. Jamila Sanchez", Address: "80 Jesse Hill Jr Drive SE", City: "Atlanta", State: "GA", Zipcode: "30303",
				Phone: "404-616-4307", Email: "jsanchez@emory.edu", Affiliation: "Grady Memorial Hospital",
				Bio:         "Attending physician in emergency medicine with special interest in urban health disparities and trauma care.",
				Specialties: []string{"Emergency Medicine"},
				Insurances:  plans(commonInsurances, hospitalPlans),
			},
			{
				Name: "Dr. Patrice Harris", Address: "201 Dowman Drive", City: "Atlanta", State: "GA", Zipcode: "30322",
				Phone: "404-727-9000", Email: "pharris@emory.edu", Affiliation: "Emory University School of Medicine",
				Bio:         "Psychiatrist specializing in child and adolescent psychiatry. Former president of the American Medical Association.",
				Specialties: []string{"Psychiatry"},
				Insurances:  plans(commonInsurances, hospitalPlans, []string{"Peach State Health Plan", "Ambetter"}),
			},
			{
				Name: "Dr. Omar Reid", Address: "1968 Peachtree Road NW", City: "Atlanta", State: "GA", Zipcode: "30309",
				Phone: "404-605-3000", Email: "oreid@piedmont.org", Affiliation: "Piedmont Atlanta Hospital",
				Bio:         "Orthopedic surgeon specializing in sports medicine and minimally invasive joint replacement.",
				Specialties: []string{"Orthopedics", "Surgery"},
				Insurances:  plans(commonInsurances, hospitalPlans),
			},
			{
				Name: "Dr. Michelle Powers", Address: "35 Jesse Hill Jr Drive SE", City: "Atlanta", State: "GA", Zipcode: "30303",
				Phone: "404-616-8762", Email: "mpowers@gmh.edu", Affiliation: "Grady Health System",
				Bio:         "Pulmonologist with expertise in critical care, ARDS, and health disparities in respiratory disease.",
				Specialties: []string{"Pulmonology"},
				Insurances:  plans(commonInsurances, hospitalPlans),
			},
		},
	}
}
