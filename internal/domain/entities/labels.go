package entities

// LabelSets holds the configurable gender and age-category vocabularies.
// Validation checks membership against these sets instead of a closed enum,
// so deployments can extend either list through configuration.
type LabelSets struct {
	Genders       []Gender
	AgeCategories []AgeCategory
}

// DefaultLabelSets returns the built-in label vocabularies.
func DefaultLabelSets() LabelSets {
	return LabelSets{
		Genders:       append([]Gender(nil), DefaultGenders...),
		AgeCategories: append([]AgeCategory(nil), DefaultAgeCategories...),
	}
}

// ValidGender reports whether g is an accepted gender label.
func (l LabelSets) ValidGender(g Gender) bool {
	for _, known := range l.Genders {
		if known == g {
			return true
		}
	}
	return false
}

// ValidAgeCategory reports whether a is an accepted age category label.
func (l LabelSets) ValidAgeCategory(a AgeCategory) bool {
	for _, known := range l.AgeCategories {
		if known == a {
			return true
		}
	}
	return false
}
