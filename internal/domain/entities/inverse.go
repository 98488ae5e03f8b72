package entities

// inverseEntry describes the inverse role(s) of a relationship type. A
// gendered entry offers the Male or Female label depending on the target
// character's gender, or both when the gender is unspecified. A neutral
// entry always offers its single label regardless of gender.
type inverseEntry struct {
	Male    string
	Female  string
	Neutral string
}

// inverseRoles maps a normalized relationship type to its inverse entry.
// Custom types absent from this table yield no suggestion.
var inverseRoles = map[string]inverseEntry{
	// Family
	"father":        {Male: "Son", Female: "Daughter"},
	"mother":        {Male: "Son", Female: "Daughter"},
	"son":           {Male: "Father", Female: "Mother"},
	"daughter":      {Male: "Father", Female: "Mother"},
	"brother":       {Male: "Brother", Female: "Sister"},
	"sister":        {Male: "Brother", Female: "Sister"},
	"husband":       {Neutral: "Wife"},
	"wife":          {Neutral: "Husband"},
	"grandfather":   {Male: "Grandson", Female: "Granddaughter"},
	"grandmother":   {Male: "Grandson", Female: "Granddaughter"},
	"grandson":      {Male: "Grandfather", Female: "Grandmother"},
	"granddaughter": {Male: "Grandfather", Female: "Grandmother"},
	"uncle":         {Male: "Nephew", Female: "Niece"},
	"aunt":          {Male: "Nephew", Female: "Niece"},
	"nephew":        {Male: "Uncle", Female: "Aunt"},
	"niece":         {Male: "Uncle", Female: "Aunt"},
	"cousin":        {Neutral: "Cousin"},
	"step-father":   {Male: "Step-son", Female: "Step-daughter"},
	"step-mother":   {Male: "Step-son", Female: "Step-daughter"},
	"step-son":      {Male: "Step-father", Female: "Step-mother"},
	"step-daughter": {Male: "Step-father", Female: "Step-mother"},
	"step-brother":  {Male: "Step-brother", Female: "Step-sister"},
	"step-sister":   {Male: "Step-brother", Female: "Step-sister"},
	"parent":        {Neutral: "Child"},
	"child":         {Neutral: "Parent"},
	"sibling":       {Neutral: "Sibling"},
	"spouse":        {Neutral: "Spouse"},
	"grandparent":   {Neutral: "Grandchild"},
	"grandchild":    {Neutral: "Grandparent"},

	// Work
	"boss":             {Neutral: "Employee"},
	"employee":         {Neutral: "Boss"},
	"coworker":         {Neutral: "Coworker"},
	"colleague":        {Neutral: "Colleague"},
	"assistant":        {Neutral: "Boss"},
	"mentor":           {Neutral: "Mentee"},
	"mentee":           {Neutral: "Mentor"},
	"supervisor":       {Neutral: "Subordinate"},
	"subordinate":      {Neutral: "Supervisor"},
	"business partner": {Neutral: "Business partner"},

	// Study
	"teacher":    {Neutral: "Student"},
	"student":    {Neutral: "Teacher"},
	"classmate":  {Neutral: "Classmate"},
	"schoolmate": {Neutral: "Schoolmate"},
	"roommate":   {Neutral: "Roommate"},

	// Romance
	"boyfriend":     {Neutral: "Girlfriend"},
	"girlfriend":    {Neutral: "Boyfriend"},
	"fiancé":        {Neutral: "Fiancée"},
	"fiancée":       {Neutral: "Fiancé"},
	"lover":         {Neutral: "Lover"},
	"ex-boyfriend":  {Neutral: "Ex-girlfriend"},
	"ex-girlfriend": {Neutral: "Ex-boyfriend"},
	"ex-husband":    {Neutral: "Ex-wife"},
	"ex-wife":       {Neutral: "Ex-husband"},
	"partner":       {Neutral: "Partner"},

	// Social
	"friend":       {Neutral: "Friend"},
	"best friend":  {Neutral: "Best friend"},
	"acquaintance": {Neutral: "Acquaintance"},
	"neighbor":     {Neutral: "Neighbor"},

	// Other
	"rival":     {Neutral: "Rival"},
	"enemy":     {Neutral: "Enemy"},
	"ally":      {Neutral: "Ally"},
	"guardian":  {Neutral: "Ward"},
	"ward":      {Neutral: "Guardian"},
	"caretaker": {Neutral: "Ward"},
}

// InverseCandidates returns the inverse labels to suggest for an edge of the
// given type pointing at a character of the given gender. Neutral entries
// always yield one candidate. Gendered entries yield the matching label for
// a male or female target, and both labels (male first) when the target's
// gender is anything else. An unknown type yields nil.
func InverseCandidates(typeLabel string, targetGender Gender) []string {
	entry, ok := inverseRoles[NormalizeType(typeLabel)]
	if !ok {
		return nil
	}
	if entry.Neutral != "" {
		return []string{entry.Neutral}
	}
	switch targetGender {
	case GenderMale:
		return []string{entry.Male}
	case GenderFemale:
		return []string{entry.Female}
	default:
		return []string{entry.Male, entry.Female}
	}
}
