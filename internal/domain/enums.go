package domain

import "slices"

// Closed sets accepted from the extraction service. A value outside its set
// is replaced by Empty.
var (
	Locations = []string{
		"remote",
		"Tashkent city",
		"Republic of Karakalpakstan",
		"Andijan region",
		"Bukhara region",
		"Jizzakh region",
		"Kashkadarya region",
		"Navoi region",
		"Namangan region",
		"Samarkand region",
		"Surkhandarya region",
		"Syrdarya region",
		"Tashkent region",
		"Ferghana region",
		"Khorezm region",
	}

	Experiences = []string{
		"No Experience",
		"1 Year <=",
		"1-3 Years",
		"3 Years >",
	}

	Categories = []string{
		"FullStack",
		"Backend",
		"Frontend",
		"Mobile",
		"Game Development",
		"Design",
		"Marketing",
		"Management",
		"Q/A Testing",
		"Data Science",
		"DevOps",
		"Cybersecurity",
		"Robotics Engineering",
		"No Code",
		"Developer",
		"Other",
	}
)

// InSetOrEmpty returns v if it belongs to set, otherwise Empty.
func InSetOrEmpty(v string, set []string) string {
	if slices.Contains(set, v) {
		return v
	}
	return Empty
}

// OrDefault substitutes def for the Empty sentinel.
func OrDefault(v, def string) string {
	if v == Empty || v == "" {
		return def
	}
	return v
}
