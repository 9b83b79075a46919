// Package registration implements the multi-step registration workflow:
// an explicit state machine whose forward transitions are gated by
// per-step validation, with seat reservation deferred to the single
// commit point so abandoned drafts never starve inventory.
package registration

// Step names a workflow state. The four data-collection steps advance
// in order; confirmed, abandoned and booking_failed are terminal.
type Step string

const (
	StepChildDetails  Step = "child_details"
	StepParentDetails Step = "parent_details"
	StepMedicalInfo   Step = "medical_info"
	StepReview        Step = "review"
	StepConfirmed     Step = "confirmed"
	StepAbandoned     Step = "abandoned"
	StepBookingFailed Step = "booking_failed"
)

// Valid reports whether s names a submittable data-collection step.
func (s Step) Valid() bool {
	switch s {
	case StepChildDetails, StepParentDetails, StepMedicalInfo, StepReview:
		return true
	}
	return false
}

// Terminal reports whether no further transitions leave s.
func (s Step) Terminal() bool {
	switch s {
	case StepConfirmed, StepAbandoned, StepBookingFailed:
		return true
	}
	return false
}

// previous returns the step behind s. Backward navigation is never
// validated; at the first step it stays put, matching the booking UI.
func (s Step) previous() Step {
	switch s {
	case StepParentDetails:
		return StepChildDetails
	case StepMedicalInfo:
		return StepParentDetails
	case StepReview:
		return StepMedicalInfo
	default:
		return s
	}
}

// ChildDetailsInput is the payload for the child_details step.
// Date of birth uses the YYYY-MM-DD form the booking form submits.
type ChildDetailsInput struct {
	ChildName   string `json:"child_name"`
	ChildDOB    string `json:"child_dob"`
	ChildGender string `json:"child_gender"`
	ChildGrade  string `json:"child_grade"`
}

// ParentDetailsInput is the payload for the parent_details step,
// covering guardian contact details and the emergency contact.
type ParentDetailsInput struct {
	ParentName        string `json:"parent_name"`
	ParentEmail       string `json:"parent_email"`
	ParentPhone       string `json:"parent_phone"`
	Address           string `json:"address"`
	City              string `json:"city"`
	Pincode           string `json:"pincode"`
	EmergencyName     string `json:"emergency_name"`
	EmergencyPhone    string `json:"emergency_phone"`
	EmergencyRelation string `json:"emergency_relation"`
}

// MedicalInfoInput is the payload for the medical_info step. The three
// mandatory fields must carry the literal "none" when not applicable;
// blank is rejected so the review step never renders an empty field.
type MedicalInfoInput struct {
	Allergies           string `json:"allergies"`
	MedicalConditions   string `json:"medical_conditions"`
	Medications         string `json:"medications"`
	SpecialInstructions string `json:"special_instructions"`
}

// ReviewInput records the consent checkbox. Submitting it does not
// advance the workflow; the review → confirmed transition belongs to
// Confirm, which enforces the consent gate.
type ReviewInput struct {
	TermsAccepted bool `json:"terms_accepted"`
}
