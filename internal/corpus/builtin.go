package corpus

import (
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain/protocol"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain/redflag"
)

const emergencyNumber = "911"

// numbered assigns step numbers from 1 in slice order.
func numbered(steps ...protocol.Step) []protocol.Step {
	for i := range steps {
		steps[i].Number = i + 1
	}
	return steps
}

func sign(text string, sev protocol.SignSeverity) protocol.RecognitionSign {
	return protocol.RecognitionSign{Text: text, Severity: sev}
}

var recoveryPosition = protocol.RecoveryPosition{
	Name: "Recovery position",
	Instructions: []string{
		"Kneel beside the person and place the near arm at a right angle",
		"Bring the far arm across the chest and hold the back of the hand against the near cheek",
		"Bend the far knee and roll the person towards you onto their side",
		"Tilt the head back so the airway stays open and check breathing regularly",
	},
	Contraindications: []string{"Suspected spinal injury unless the airway is at risk"},
}

func builtinProtocols() []protocol.Protocol {
	rp := recoveryPosition

	return []protocol.Protocol{
		{
			ID:              "cardiac-arrest-adult",
			Name:            "Cardiac Arrest (Adult)",
			AlternateNames:  []string{"CPR", "Heart stopped"},
			Category:        domain.CategoryLifeThreatening,
			Priority:        domain.PriorityImmediate,
			AgeGroup:        domain.AgeGroupAdult,
			CallEmergency:   true,
			EmergencyNumber: emergencyNumber,
			RecognitionSigns: []protocol.RecognitionSign{
				sign("Unresponsive to voice or touch", protocol.SeverityCritical),
				sign("Not breathing or only gasping", protocol.SeverityCritical),
				sign("No pulse", protocol.SeverityCritical),
			},
			Steps: numbered(
				protocol.Step{Action: "Check the scene is safe and tap the shoulders while shouting"},
				protocol.Step{Action: "Call emergency services and send someone for an AED"},
				protocol.Step{
					Action:      "Give chest compressions in the centre of the chest",
					Technique:   "Push hard and fast, 5-6 cm deep at 100-120 per minute",
					Repetitions: 30,
				},
				protocol.Step{Action: "Open the airway with head tilt and chin lift and give two rescue breaths", Repetitions: 2},
				protocol.Step{Action: "Switch on the AED as soon as it arrives and follow its prompts"},
				protocol.Step{Action: "Continue cycles of 30 compressions and 2 breaths until help arrives", Duration: "until relieved"},
			),
			DoNot: []protocol.Prohibition{
				{Action: "Stop compressions to check for a pulse", Reason: "pauses cut blood flow to the brain"},
			},
			Supplies: []protocol.Supply{
				{Name: "AED", Quantity: "1", Usage: "Deliver a shock if advised", Alternatives: []string{"Continue CPR without one"}},
			},
			Visualization: &protocol.Visualization{AnatomyRegions: []string{"chest", "heart"}, HighlightColor: "#d32f2f"},
			References: []protocol.Reference{
				{Title: "Adult Basic Life Support Guidelines", Source: "American Heart Association", Year: 2020},
			},
		},
		{
			ID:              "choking-adult",
			Name:            "Choking (Adult)",
			AlternateNames:  []string{"Airway obstruction", "Heimlich maneuver"},
			Category:        domain.CategoryLifeThreatening,
			Priority:        domain.PriorityImmediate,
			AgeGroup:        domain.AgeGroupAdult,
			CallEmergency:   true,
			EmergencyNumber: emergencyNumber,
			RecognitionSigns: []protocol.RecognitionSign{
				sign("Hands clutching the throat", protocol.SeverityCritical),
				sign("Unable to speak, cough or breathe", protocol.SeverityCritical),
				sign("Lips turning blue", protocol.SeverityCritical),
			},
			Steps: numbered(
				protocol.Step{Action: "Ask \"Are you choking?\" and encourage coughing if they can"},
				protocol.Step{Action: "Give back blows between the shoulder blades", Repetitions: 5},
				protocol.Step{
					Action:      "Give abdominal thrusts",
					Technique:   "Fist above the navel, pull sharply inwards and upwards",
					Repetitions: 5,
				},
				protocol.Step{Action: "Alternate back blows and thrusts until the object comes out"},
				protocol.Step{Action: "If they become unresponsive, call emergency services and start CPR"},
			),
			DoNot: []protocol.Prohibition{
				{Action: "Sweep the mouth blindly", Reason: "it can push the object deeper"},
			},
			Aftercare: []string{"Anyone given abdominal thrusts should be checked by a clinician"},
		},
		{
			ID:              "choking-infant",
			Name:            "Choking (Infant)",
			Category:        domain.CategoryLifeThreatening,
			Priority:        domain.PriorityImmediate,
			AgeGroup:        domain.AgeGroupInfant,
			CallEmergency:   true,
			EmergencyNumber: emergencyNumber,
			RecognitionSigns: []protocol.RecognitionSign{
				sign("Unable to cry or make sound", protocol.SeverityCritical),
				sign("Weak or absent cough", protocol.SeverityCritical),
				sign("Bluish skin colour", protocol.SeverityCritical),
			},
			Steps: numbered(
				protocol.Step{Action: "Lay the infant face down along your forearm, head lower than the chest"},
				protocol.Step{Action: "Give back blows with the heel of your hand", Repetitions: 5},
				protocol.Step{
					Action:      "Turn the infant face up and give chest thrusts",
					Technique:   "Two fingers on the breastbone just below the nipple line",
					Repetitions: 5,
				},
				protocol.Step{Action: "Repeat until the object comes out or the infant becomes unresponsive"},
				protocol.Step{Action: "If unresponsive, call emergency services and begin infant CPR"},
			),
			DoNot: []protocol.Prohibition{
				{Action: "Give abdominal thrusts", Reason: "they can injure an infant's organs"},
				{Action: "Hold the infant upside down by the feet", Reason: "it can cause falls and neck injury"},
			},
		},
		{
			ID:              "severe-bleeding",
			Name:            "Severe Bleeding",
			AlternateNames:  []string{"Hemorrhage", "Haemorrhage"},
			Category:        domain.CategoryTrauma,
			Priority:        domain.PriorityImmediate,
			AgeGroup:        domain.AgeGroupAll,
			CallEmergency:   true,
			EmergencyNumber: emergencyNumber,
			RecognitionSigns: []protocol.RecognitionSign{
				sign("Blood spurting or pooling from a wound", protocol.SeverityCritical),
				sign("Pale, cold skin", protocol.SeveritySerious),
				sign("Confusion or drowsiness", protocol.SeveritySerious),
			},
			Steps: numbered(
				protocol.Step{Action: "Call emergency services"},
				protocol.Step{Action: "Apply firm direct pressure on the wound with a clean dressing", Duration: "at least 10 minutes"},
				protocol.Step{Action: "Add more dressings on top if blood soaks through"},
				protocol.Step{
					Action:    "Apply a tourniquet above a limb wound if pressure fails",
					Technique: "5-7 cm above the wound, tighten until bleeding stops",
					Warning:   "Note the time it was applied",
				},
				protocol.Step{Action: "Keep the person lying down and warm"},
			),
			DoNot: []protocol.Prohibition{
				{Action: "Remove soaked dressings", Reason: "it disturbs clots", Consequence: "bleeding restarts"},
				{Action: "Remove an embedded object", Reason: "it may be plugging the wound"},
			},
			Supplies: []protocol.Supply{
				{Name: "Sterile dressing", Quantity: "several", Usage: "Direct pressure", Alternatives: []string{"Clean cloth"}},
				{Name: "Tourniquet", Quantity: "1", Usage: "Limb bleeding not controlled by pressure", Alternatives: []string{"Belt with a windlass"}},
			},
			Visualization: &protocol.Visualization{AnatomyRegions: []string{"arm", "leg"}, HighlightColor: "#b71c1c"},
		},
		{
			ID:              "anaphylaxis",
			Name:            "Anaphylaxis",
			AlternateNames:  []string{"Severe allergic reaction"},
			Category:        domain.CategoryLifeThreatening,
			Priority:        domain.PriorityImmediate,
			AgeGroup:        domain.AgeGroupAll,
			CallEmergency:   true,
			EmergencyNumber: emergencyNumber,
			RecognitionSigns: []protocol.RecognitionSign{
				sign("Swelling of the lips, tongue or throat", protocol.SeverityCritical),
				sign("Difficulty breathing or wheezing", protocol.SeverityCritical),
				sign("Widespread hives", protocol.SeveritySerious),
				sign("Dizziness or collapse", protocol.SeverityCritical),
			},
			Steps: numbered(
				protocol.Step{
					Action:    "Give the adrenaline auto-injector into the outer thigh",
					Technique: "Hold in place for 3 seconds; it works through clothing",
				},
				protocol.Step{Action: "Call emergency services and say \"anaphylaxis\""},
				protocol.Step{Action: "Lay the person flat with legs raised, or sitting up if breathing is hard"},
				protocol.Step{Action: "Give a second injector if there is no improvement", Duration: "after 5 minutes"},
			),
			DoNot: []protocol.Prohibition{
				{Action: "Make the person stand or walk", Reason: "blood pressure can drop suddenly"},
			},
			Supplies: []protocol.Supply{
				{Name: "Adrenaline auto-injector", Quantity: "2", Usage: "Intramuscular injection"},
			},
			Aftercare: []string{"Symptoms can return hours later; hospital observation is needed"},
		},
		{
			ID:              "stroke",
			Name:            "Stroke",
			AlternateNames:  []string{"FAST", "Brain attack"},
			Category:        domain.CategoryMedical,
			Priority:        domain.PriorityImmediate,
			AgeGroup:        domain.AgeGroupAll,
			CallEmergency:   true,
			EmergencyNumber: emergencyNumber,
			RecognitionSigns: []protocol.RecognitionSign{
				sign("Face drooping on one side", protocol.SeverityCritical),
				sign("Arm weakness or numbness", protocol.SeverityCritical),
				sign("Slurred or confused speech", protocol.SeverityCritical),
				sign("Sudden severe headache", protocol.SeveritySerious),
			},
			Steps: numbered(
				protocol.Step{Action: "Check face, arms and speech"},
				protocol.Step{Action: "Call emergency services immediately"},
				protocol.Step{Action: "Note the time symptoms started"},
				protocol.Step{Action: "Keep the person comfortable and monitor breathing"},
			),
			DoNot: []protocol.Prohibition{
				{Action: "Give food, drink or medication", Reason: "swallowing may be impaired"},
			},
			RecoveryPosition: &rp,
		},
		{
			ID:              "heat-stroke",
			Name:            "Heat Stroke",
			AlternateNames:  []string{"Sun stroke", "Hyperthermia"},
			Category:        domain.CategoryEnvironmental,
			Priority:        domain.PriorityImmediate,
			AgeGroup:        domain.AgeGroupAll,
			CallEmergency:   true,
			EmergencyNumber: emergencyNumber,
			RecognitionSigns: []protocol.RecognitionSign{
				sign("Body temperature of 40 C or higher", protocol.SeverityCritical),
				sign("Hot, red skin that may be dry", protocol.SeveritySerious),
				sign("Confusion or slurred speech", protocol.SeverityCritical),
				sign("Seizures or loss of consciousness", protocol.SeverityCritical),
			},
			Steps: numbered(
				protocol.Step{Action: "Call emergency services"},
				protocol.Step{Action: "Move the person to shade or a cool room"},
				protocol.Step{
					Action:    "Cool the person as fast as possible",
					Technique: "Cold water immersion, or ice packs to neck, armpits and groin",
				},
				protocol.Step{Action: "Keep cooling until help arrives", Duration: "until relieved"},
			),
			DoNot: []protocol.Prohibition{
				{Action: "Give fluids to a confused or unconscious person", Reason: "they may choke"},
			},
		},
		{
			ID:       "heat-exhaustion",
			Name:     "Heat Exhaustion",
			Category: domain.CategoryEnvironmental,
			Priority: domain.PriorityUrgent,
			AgeGroup: domain.AgeGroupAll,
			RecognitionSigns: []protocol.RecognitionSign{
				sign("Heavy sweating", protocol.SeverityModerate),
				sign("Cool, clammy skin", protocol.SeverityModerate),
				sign("Nausea, dizziness or headache", protocol.SeverityModerate),
			},
			Steps: numbered(
				protocol.Step{Action: "Move the person to a cool place and loosen clothing"},
				protocol.Step{Action: "Give sips of water or an electrolyte drink"},
				protocol.Step{Action: "Apply cool wet cloths"},
				protocol.Step{Action: "Call emergency services if confusion develops or there is no improvement", Duration: "within 30 minutes"},
			),
		},
		{
			ID:              "hypothermia",
			Name:            "Hypothermia",
			Category:        domain.CategoryEnvironmental,
			Priority:        domain.PriorityUrgent,
			AgeGroup:        domain.AgeGroupAll,
			CallEmergency:   true,
			EmergencyNumber: emergencyNumber,
			RecognitionSigns: []protocol.RecognitionSign{
				sign("Shivering that may stop as it worsens", protocol.SeveritySerious),
				sign("Slurred speech and confusion", protocol.SeveritySerious),
				sign("Slow, shallow breathing", protocol.SeverityCritical),
			},
			Steps: numbered(
				protocol.Step{Action: "Call emergency services"},
				protocol.Step{Action: "Move the person out of the cold and remove wet clothing"},
				protocol.Step{Action: "Warm the trunk first with blankets and skin-to-skin contact"},
				protocol.Step{Action: "Give warm sweet drinks only if fully alert"},
			),
			DoNot: []protocol.Prohibition{
				{Action: "Rub the arms and legs", Reason: "cold blood is pushed to the heart"},
				{Action: "Use direct heat such as hot water bottles on the skin", Reason: "it causes burns"},
			},
		},
		{
			ID:       "seizure",
			Name:     "Seizure",
			Category: domain.CategoryMedical,
			Priority: domain.PriorityUrgent,
			AgeGroup: domain.AgeGroupAll,
			RecognitionSigns: []protocol.RecognitionSign{
				sign("Sudden collapse with jerking movements", protocol.SeveritySerious),
				sign("Rigid body and clenched jaw", protocol.SeveritySerious),
				sign("Confusion after the jerking stops", protocol.SeverityModerate),
			},
			Steps: numbered(
				protocol.Step{Action: "Clear hard objects away and cushion the head"},
				protocol.Step{Action: "Time the seizure"},
				protocol.Step{
					Action:  "Call emergency services if it lasts more than 5 minutes",
					Warning: "Also call for a first seizure, injury or repeated seizures",
				},
				protocol.Step{Action: "Once jerking stops, place the person in the recovery position"},
			),
			DoNot: []protocol.Prohibition{
				{Action: "Put anything in the mouth", Reason: "it can break teeth or block the airway"},
				{Action: "Restrain movements", Reason: "it can cause injury"},
			},
			RecoveryPosition: &rp,
		},
		{
			ID:       "burns",
			Name:     "Burns",
			Category: domain.CategoryTrauma,
			Priority: domain.PriorityUrgent,
			AgeGroup: domain.AgeGroupAll,
			RecognitionSigns: []protocol.RecognitionSign{
				sign("Red, painful skin", protocol.SeverityModerate),
				sign("Blisters", protocol.SeveritySerious),
				sign("White or charred skin", protocol.SeverityCritical),
			},
			Steps: numbered(
				protocol.Step{Action: "Cool the burn under cool running water", Duration: "20 minutes"},
				protocol.Step{Action: "Remove jewellery and clothing near the burn unless stuck"},
				protocol.Step{Action: "Cover loosely with cling film or a clean non-fluffy dressing"},
				protocol.Step{Action: "Call emergency services for large, deep, facial or electrical burns"},
			),
			DoNot: []protocol.Prohibition{
				{Action: "Apply ice, butter or creams", Reason: "they deepen the injury"},
				{Action: "Burst blisters", Reason: "infection risk rises"},
			},
			Supplies: []protocol.Supply{
				{Name: "Cling film", Quantity: "1 roll", Usage: "Loose covering", Alternatives: []string{"Clean plastic bag"}},
			},
		},
		{
			ID:              "poisoning",
			Name:            "Poisoning",
			Category:        domain.CategorySituational,
			Priority:        domain.PriorityUrgent,
			AgeGroup:        domain.AgeGroupAll,
			CallEmergency:   true,
			EmergencyNumber: emergencyNumber,
			RecognitionSigns: []protocol.RecognitionSign{
				sign("Empty pill bottles or chemical containers nearby", protocol.SeveritySerious),
				sign("Vomiting or burns around the mouth", protocol.SeveritySerious),
				sign("Drowsiness or unresponsiveness", protocol.SeverityCritical),
			},
			Steps: numbered(
				protocol.Step{Action: "Call poison control, or emergency services if the person is unresponsive"},
				protocol.Step{Action: "Identify the substance, the amount and the time taken"},
				protocol.Step{Action: "Follow the advice given and keep the container"},
				protocol.Step{Action: "Place an unresponsive breathing person in the recovery position"},
			),
			DoNot: []protocol.Prohibition{
				{Action: "Induce vomiting", Reason: "corrosives burn twice", Consequence: "airway damage"},
			},
			RecoveryPosition: &rp,
		},
		{
			ID:             "fracture",
			Name:           "Suspected Fracture",
			AlternateNames: []string{"Broken bone"},
			Category:       domain.CategoryTrauma,
			Priority:       domain.PriorityPrompt,
			AgeGroup:       domain.AgeGroupAll,
			RecognitionSigns: []protocol.RecognitionSign{
				sign("Deformity or abnormal angle of a limb", protocol.SeveritySerious),
				sign("Swelling and bruising", protocol.SeverityModerate),
				sign("Unable to bear weight", protocol.SeverityModerate),
			},
			Steps: numbered(
				protocol.Step{Action: "Keep the injured part still in the position found"},
				protocol.Step{Action: "Support it with padding or a sling"},
				protocol.Step{Action: "Apply a wrapped cold pack", Duration: "20 minutes"},
				protocol.Step{Action: "Get the person to urgent care, or call emergency services for an open fracture"},
			),
			DoNot: []protocol.Prohibition{
				{Action: "Try to straighten the limb", Reason: "it can damage nerves and vessels"},
			},
		},
		{
			ID:       "sprain",
			Name:     "Sprain or Strain",
			Category: domain.CategoryTrauma,
			Priority: domain.PriorityNonUrgent,
			AgeGroup: domain.AgeGroupAll,
			RecognitionSigns: []protocol.RecognitionSign{
				sign("Swelling around a joint", protocol.SeverityModerate),
				sign("Pain on movement", protocol.SeverityModerate),
			},
			Steps: numbered(
				protocol.Step{Action: "Rest the injured part"},
				protocol.Step{Action: "Apply a wrapped cold pack", Duration: "20 minutes", Repetitions: 3},
				protocol.Step{Action: "Support with a compression bandage"},
				protocol.Step{Action: "Elevate above heart level"},
			),
			Aftercare: []string{"See a clinician if unable to bear weight after 48 hours"},
		},
	}
}

func builtinRedFlags() []redflag.RedFlag {
	return []redflag.RedFlag{
		{
			ID:                 "rf-chest-pain",
			Symptom:            "chest pain",
			PossibleConditions: []string{"Heart attack", "Pulmonary embolism", "Aortic dissection"},
			Urgency:            domain.PriorityImmediate,
			Action:             "Call emergency services",
			TimeFrame:          "now",
			RelatedProtocols:   []string{"cardiac-arrest-adult"},
		},
		{
			ID:                 "rf-difficulty-breathing",
			Symptom:            "difficulty breathing",
			PossibleConditions: []string{"Anaphylaxis", "Asthma attack", "Choking"},
			Urgency:            domain.PriorityImmediate,
			Action:             "Call emergency services",
			TimeFrame:          "now",
			RelatedProtocols:   []string{"anaphylaxis", "choking-adult"},
		},
		{
			ID:                 "rf-face-drooping",
			Symptom:            "face drooping",
			PossibleConditions: []string{"Stroke"},
			Urgency:            domain.PriorityImmediate,
			Action:             "Call emergency services and note the time",
			TimeFrame:          "now",
			RelatedProtocols:   []string{"stroke"},
		},
		{
			ID:                 "rf-worst-headache",
			Symptom:            "worst headache of my life",
			PossibleConditions: []string{"Subarachnoid hemorrhage", "Stroke"},
			Urgency:            domain.PriorityImmediate,
			Action:             "Call emergency services",
			TimeFrame:          "now",
			RelatedProtocols:   []string{"stroke"},
		},
		{
			ID:                 "rf-unconscious",
			Symptom:            "unconscious",
			PossibleConditions: []string{"Cardiac arrest", "Poisoning", "Head injury"},
			Urgency:            domain.PriorityImmediate,
			Action:             "Check breathing and call emergency services",
			TimeFrame:          "now",
			RelatedProtocols:   []string{"cardiac-arrest-adult", "poisoning"},
		},
		{
			ID:                 "rf-stiff-neck-fever",
			Symptom:            "stiff neck with fever",
			PossibleConditions: []string{"Meningitis"},
			Urgency:            domain.PriorityUrgent,
			Action:             "Go to the emergency department",
			TimeFrame:          "within 1 hour",
		},
		{
			ID:                 "rf-seizure",
			Symptom:            "seizure",
			PossibleConditions: []string{"Epilepsy", "Head injury", "Heat stroke"},
			Urgency:            domain.PriorityUrgent,
			Action:             "Protect from injury and time it; call if over 5 minutes",
			TimeFrame:          "within minutes",
			RelatedProtocols:   []string{"seizure"},
		},
		{
			ID:                 "rf-vomiting-blood",
			Symptom:            "vomiting blood",
			PossibleConditions: []string{"Gastrointestinal bleeding"},
			Urgency:            domain.PriorityUrgent,
			Action:             "Go to the emergency department",
			TimeFrame:          "within 1 hour",
		},
		{
			ID:                 "rf-high-fever",
			Symptom:            "high fever",
			PossibleConditions: []string{"Infection", "Heat illness"},
			Urgency:            domain.PriorityPrompt,
			Action:             "Contact a clinician",
			TimeFrame:          "within 24 hours",
			RelatedProtocols:   []string{"heat-exhaustion"},
		},
		{
			ID:                 "rf-cannot-bear-weight",
			Symptom:            "cannot bear weight",
			PossibleConditions: []string{"Fracture", "Severe sprain"},
			Urgency:            domain.PriorityPrompt,
			Action:             "Visit urgent care for an x-ray",
			TimeFrame:          "same day",
			RelatedProtocols:   []string{"fracture"},
		},
		{
			ID:                 "rf-mild-rash",
			Symptom:            "mild rash",
			PossibleConditions: []string{"Contact dermatitis", "Viral rash"},
			Urgency:            domain.PriorityNonUrgent,
			Action:             "Book a routine appointment",
			TimeFrame:          "within a week",
		},
	}
}
