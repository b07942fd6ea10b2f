package contacts

// Defaults are the jurisdiction numbers pre-filled on a new sheet.
type Defaults struct {
	EmergencyNumber     string
	PoisonControlNumber string
}

// USDefaults are the United States numbers.
var USDefaults = Defaults{
	EmergencyNumber:     "911",
	PoisonControlNumber: "1-800-222-1222",
}

// Sheet is a flat contact sheet. Consumers fill and persist it themselves.
type Sheet struct {
	Emergency       string `json:"emergency"`
	PoisonControl   string `json:"poisonControl"`
	LocalHospital   string `json:"localHospital"`
	PrimaryDoctor   string `json:"primaryDoctor"`
	LocalUrgentCare string `json:"localUrgentCare"`
	Pharmacist      string `json:"pharmacist"`
	FamilyContact1  string `json:"familyContact1"`
	FamilyContact2  string `json:"familyContact2"`
}

// NewTemplate returns a blank sheet with the jurisdiction numbers filled in.
// Empty defaults fall back to USDefaults.
func NewTemplate(d Defaults) Sheet {
	if d.EmergencyNumber == "" {
		d.EmergencyNumber = USDefaults.EmergencyNumber
	}
	if d.PoisonControlNumber == "" {
		d.PoisonControlNumber = USDefaults.PoisonControlNumber
	}
	return Sheet{
		Emergency:     d.EmergencyNumber,
		PoisonControl: d.PoisonControlNumber,
	}
}
