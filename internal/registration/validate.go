package registration

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/campverse/camp-booking/internal/model"
)

var (
	phoneRe   = regexp.MustCompile(`^[0-9]{10}$`)
	pincodeRe = regexp.MustCompile(`^[0-9]{6}$`)
)

const dobLayout = "2006-01-02"

// validateChild gates the child_details → parent_details transition.
// The camper's age is taken as of the unit's start date: the band
// restricts how old the child is during the camp, not at signup.
func validateChild(in ChildDetailsInput, unit *model.Unit) (model.ChildProfile, error) {
	name := strings.TrimSpace(in.ChildName)
	if name == "" {
		return model.ChildProfile{}, model.NewValidationError("child_name", "child name is required")
	}

	dob, err := time.Parse(dobLayout, in.ChildDOB)
	if err != nil {
		return model.ChildProfile{}, model.NewValidationError("child_dob", "date of birth must be YYYY-MM-DD")
	}
	if !dob.Before(time.Now()) {
		return model.ChildProfile{}, model.NewValidationError("child_dob", "date of birth must be in the past")
	}
	age := ageOn(dob, unit.StartDate)
	if age < unit.AgeMin || age > unit.AgeMax {
		return model.ChildProfile{}, model.NewValidationError("child_dob",
			fmt.Sprintf("this batch is for ages %d-%d; the child would be %d at camp start",
				unit.AgeMin, unit.AgeMax, age))
	}

	gender := model.Gender(in.ChildGender)
	if !gender.Valid() {
		return model.ChildProfile{}, model.NewValidationError("child_gender", "select a gender from the list")
	}
	grade := model.Grade(in.ChildGrade)
	if !grade.Valid() {
		return model.ChildProfile{}, model.NewValidationError("child_grade", "select a grade from the list")
	}

	return model.ChildProfile{
		Name:        name,
		DateOfBirth: dob,
		Gender:      gender,
		Grade:       grade,
	}, nil
}

// validateParent gates the parent_details → medical_info transition.
func validateParent(in ParentDetailsInput) (model.ParentProfile, model.EmergencyContact, error) {
	var (
		parent    model.ParentProfile
		emergency model.EmergencyContact
	)

	name := strings.TrimSpace(in.ParentName)
	if name == "" {
		return parent, emergency, model.NewValidationError("parent_name", "parent name is required")
	}
	email := strings.TrimSpace(strings.ToLower(in.ParentEmail))
	if !isValidEmail(email) {
		return parent, emergency, model.NewValidationError("parent_email", "enter a valid email address")
	}
	if !phoneRe.MatchString(in.ParentPhone) {
		return parent, emergency, model.NewValidationError("parent_phone", "enter a 10-digit mobile number")
	}
	address := strings.TrimSpace(in.Address)
	if address == "" {
		return parent, emergency, model.NewValidationError("address", "address is required")
	}
	city := strings.TrimSpace(in.City)
	if city == "" {
		return parent, emergency, model.NewValidationError("city", "city is required")
	}
	if !pincodeRe.MatchString(in.Pincode) {
		return parent, emergency, model.NewValidationError("pincode", "enter a 6-digit pincode")
	}

	emName := strings.TrimSpace(in.EmergencyName)
	if emName == "" {
		return parent, emergency, model.NewValidationError("emergency_name", "emergency contact name is required")
	}
	if !phoneRe.MatchString(in.EmergencyPhone) {
		return parent, emergency, model.NewValidationError("emergency_phone", "enter a 10-digit mobile number")
	}
	// An emergency contact reachable only at the parent's own number is
	// no emergency contact at all.
	if in.EmergencyPhone == in.ParentPhone {
		return parent, emergency, model.NewValidationError("emergency_phone",
			"emergency contact must have a different phone number than the parent")
	}
	relation := model.Relation(in.EmergencyRelation)
	if !relation.Valid() {
		return parent, emergency, model.NewValidationError("emergency_relation", "select a relation from the list")
	}

	parent = model.ParentProfile{
		Name:    name,
		Email:   email,
		Phone:   in.ParentPhone,
		Address: address,
		City:    city,
		Pincode: in.Pincode,
	}
	emergency = model.EmergencyContact{
		Name:     emName,
		Phone:    in.EmergencyPhone,
		Relation: relation,
	}
	return parent, emergency, nil
}

// validateMedical gates the medical_info → review transition. Nothing
// is mandatory content-wise, but allergies, conditions and medications
// must each be non-blank ("none" when not applicable). Blank special
// instructions normalize to "none".
func validateMedical(in MedicalInfoInput) (model.MedicalProfile, error) {
	allergies := strings.TrimSpace(in.Allergies)
	if allergies == "" {
		return model.MedicalProfile{}, model.NewValidationError("allergies", `enter allergies or "none"`)
	}
	conditions := strings.TrimSpace(in.MedicalConditions)
	if conditions == "" {
		return model.MedicalProfile{}, model.NewValidationError("medical_conditions", `enter medical conditions or "none"`)
	}
	medications := strings.TrimSpace(in.Medications)
	if medications == "" {
		return model.MedicalProfile{}, model.NewValidationError("medications", `enter medications or "none"`)
	}
	instructions := strings.TrimSpace(in.SpecialInstructions)
	if instructions == "" {
		instructions = "none"
	}

	return model.MedicalProfile{
		Allergies:           allergies,
		Conditions:          conditions,
		Medications:         medications,
		SpecialInstructions: instructions,
	}, nil
}

// ageOn returns full years completed between dob and ref.
func ageOn(dob, ref time.Time) int {
	age := ref.Year() - dob.Year()
	anniversary := dob.AddDate(age, 0, 0)
	if anniversary.After(ref) {
		age--
	}
	return age
}

// isValidEmail does a basic structural check (no external deps).
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
