package entities

// TypeCategory groups standard relationship types for display.
type TypeCategory string

const (
	CategoryFamily  TypeCategory = "family"
	CategoryWork    TypeCategory = "work"
	CategoryStudy   TypeCategory = "study"
	CategoryRomance TypeCategory = "romance"
	CategorySocial  TypeCategory = "social"
	CategoryOther   TypeCategory = "other"
)

// StandardType is a built-in relationship type. Standard types are always
// present in suggestions even before first use; users extend the vocabulary
// with arbitrary custom labels per story.
type StandardType struct {
	Name     string       `json:"name"`
	Category TypeCategory `json:"category"`
}

// StandardTypes is the built-in relationship vocabulary.
var StandardTypes = []StandardType{
	{"Father", CategoryFamily}, {"Mother", CategoryFamily},
	{"Son", CategoryFamily}, {"Daughter", CategoryFamily},
	{"Brother", CategoryFamily}, {"Sister", CategoryFamily},
	{"Husband", CategoryFamily}, {"Wife", CategoryFamily},
	{"Grandfather", CategoryFamily}, {"Grandmother", CategoryFamily},
	{"Grandson", CategoryFamily}, {"Granddaughter", CategoryFamily},
	{"Uncle", CategoryFamily}, {"Aunt", CategoryFamily},
	{"Nephew", CategoryFamily}, {"Niece", CategoryFamily},
	{"Cousin", CategoryFamily},
	{"Step-father", CategoryFamily}, {"Step-mother", CategoryFamily},
	{"Step-son", CategoryFamily}, {"Step-daughter", CategoryFamily},
	{"Step-brother", CategoryFamily}, {"Step-sister", CategoryFamily},
	{"Parent", CategoryFamily}, {"Child", CategoryFamily},
	{"Sibling", CategoryFamily}, {"Spouse", CategoryFamily},
	{"Grandparent", CategoryFamily}, {"Grandchild", CategoryFamily},

	{"Boss", CategoryWork}, {"Employee", CategoryWork},
	{"Coworker", CategoryWork}, {"Colleague", CategoryWork},
	{"Assistant", CategoryWork}, {"Mentor", CategoryWork},
	{"Mentee", CategoryWork}, {"Supervisor", CategoryWork},
	{"Subordinate", CategoryWork}, {"Business partner", CategoryWork},

	{"Teacher", CategoryStudy}, {"Student", CategoryStudy},
	{"Classmate", CategoryStudy}, {"Schoolmate", CategoryStudy},
	{"Roommate", CategoryStudy},

	{"Boyfriend", CategoryRomance}, {"Girlfriend", CategoryRomance},
	{"Fiancé", CategoryRomance}, {"Fiancée", CategoryRomance},
	{"Lover", CategoryRomance},
	{"Ex-boyfriend", CategoryRomance}, {"Ex-girlfriend", CategoryRomance},
	{"Ex-husband", CategoryRomance}, {"Ex-wife", CategoryRomance},
	{"Partner", CategoryRomance}, {"Significant other", CategoryRomance},

	{"Friend", CategorySocial}, {"Best friend", CategorySocial},
	{"Acquaintance", CategorySocial}, {"Neighbor", CategorySocial},

	{"Rival", CategoryOther}, {"Enemy", CategoryOther},
	{"Ally", CategoryOther}, {"Guardian", CategoryOther},
	{"Ward", CategoryOther}, {"Caretaker", CategoryOther},
}

// IsStandardType reports whether a label (compared case-insensitively) is
// part of the built-in vocabulary.
func IsStandardType(label string) bool {
	normalized := NormalizeType(label)
	for _, st := range StandardTypes {
		if NormalizeType(st.Name) == normalized {
			return true
		}
	}
	return false
}
