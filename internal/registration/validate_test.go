package registration

import (
	"testing"
	"time"

	"github.com/campverse/camp-booking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bandUnit() *model.Unit {
	return &model.Unit{
		ID:        "u1",
		StartDate: time.Date(2025, time.June, 8, 0, 0, 0, 0, time.UTC),
		AgeMin:    12,
		AgeMax:    14,
	}
}

func validChild() ChildDetailsInput {
	return ChildDetailsInput{
		ChildName:   "Aarav Sharma",
		ChildDOB:    "2012-05-01",
		ChildGender: "male",
		ChildGrade:  "7",
	}
}

func TestValidateChild(t *testing.T) {
	child, err := validateChild(validChild(), bandUnit())
	require.NoError(t, err)
	assert.Equal(t, "Aarav Sharma", child.Name)
	assert.Equal(t, model.GenderMale, child.Gender)
	assert.Equal(t, model.Grade("7"), child.Grade)
}

func TestValidateChild_Failures(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*ChildDetailsInput)
		wantField string
	}{
		{"blank name", func(in *ChildDetailsInput) { in.ChildName = "   " }, "child_name"},
		{"bad dob format", func(in *ChildDetailsInput) { in.ChildDOB = "01/05/2012" }, "child_dob"},
		{"future dob", func(in *ChildDetailsInput) { in.ChildDOB = "2031-01-01" }, "child_dob"},
		{"too young", func(in *ChildDetailsInput) { in.ChildDOB = "2016-01-01" }, "child_dob"},
		{"too old", func(in *ChildDetailsInput) { in.ChildDOB = "2009-01-01" }, "child_dob"},
		{"bad gender", func(in *ChildDetailsInput) { in.ChildGender = "unknown" }, "child_gender"},
		{"bad grade", func(in *ChildDetailsInput) { in.ChildGrade = "13" }, "child_grade"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validChild()
			tt.mutate(&in)
			_, err := validateChild(in, bandUnit())
			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestValidateChild_AgeBandInclusive(t *testing.T) {
	// Turns 12 exactly on the camp start date: inside the band.
	in := validChild()
	in.ChildDOB = "2013-06-08"
	_, err := validateChild(in, bandUnit())
	require.NoError(t, err)

	// One day later: still 11 at camp start.
	in.ChildDOB = "2013-06-09"
	_, err = validateChild(in, bandUnit())
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "child_dob", verr.Field)

	// 14 for the whole camp: inside the band.
	in.ChildDOB = "2010-06-09"
	_, err = validateChild(in, bandUnit())
	require.NoError(t, err)
}

func validParent() ParentDetailsInput {
	return ParentDetailsInput{
		ParentName:        "Priya Sharma",
		ParentEmail:       "priya@example.com",
		ParentPhone:       "9876543210",
		Address:           "14 Lake View Road",
		City:              "Bangalore",
		Pincode:           "560038",
		EmergencyName:     "Ravi Sharma",
		EmergencyPhone:    "9876500001",
		EmergencyRelation: "grandparent",
	}
}

func TestValidateParent(t *testing.T) {
	parent, emergency, err := validateParent(validParent())
	require.NoError(t, err)
	assert.Equal(t, "priya@example.com", parent.Email)
	assert.Equal(t, model.RelationGrandparent, emergency.Relation)
}

func TestValidateParent_Failures(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*ParentDetailsInput)
		wantField string
	}{
		{"blank name", func(in *ParentDetailsInput) { in.ParentName = "" }, "parent_name"},
		{"bad email", func(in *ParentDetailsInput) { in.ParentEmail = "not-an-email" }, "parent_email"},
		{"email without domain dot", func(in *ParentDetailsInput) { in.ParentEmail = "a@b" }, "parent_email"},
		{"short phone", func(in *ParentDetailsInput) { in.ParentPhone = "98765" }, "parent_phone"},
		{"phone with letters", func(in *ParentDetailsInput) { in.ParentPhone = "98765abcde" }, "parent_phone"},
		{"blank address", func(in *ParentDetailsInput) { in.Address = " " }, "address"},
		{"blank city", func(in *ParentDetailsInput) { in.City = "" }, "city"},
		{"bad pincode", func(in *ParentDetailsInput) { in.Pincode = "5600" }, "pincode"},
		{"blank emergency name", func(in *ParentDetailsInput) { in.EmergencyName = "" }, "emergency_name"},
		{"bad emergency phone", func(in *ParentDetailsInput) { in.EmergencyPhone = "12345" }, "emergency_phone"},
		{"same phone as parent", func(in *ParentDetailsInput) { in.EmergencyPhone = in.ParentPhone }, "emergency_phone"},
		{"bad relation", func(in *ParentDetailsInput) { in.EmergencyRelation = "neighbour" }, "emergency_relation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validParent()
			tt.mutate(&in)
			_, _, err := validateParent(in)
			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestValidateMedical(t *testing.T) {
	medical, err := validateMedical(MedicalInfoInput{
		Allergies:         "peanuts",
		MedicalConditions: "none",
		Medications:       "none",
	})
	require.NoError(t, err)
	assert.Equal(t, "peanuts", medical.Allergies)
	assert.Equal(t, "none", medical.SpecialInstructions)
}

func TestValidateMedical_BlankFieldsRejected(t *testing.T) {
	tests := []struct {
		name      string
		in        MedicalInfoInput
		wantField string
	}{
		{"blank allergies", MedicalInfoInput{Allergies: "", MedicalConditions: "none", Medications: "none"}, "allergies"},
		{"blank conditions", MedicalInfoInput{Allergies: "none", MedicalConditions: "  ", Medications: "none"}, "medical_conditions"},
		{"blank medications", MedicalInfoInput{Allergies: "none", MedicalConditions: "none", Medications: ""}, "medications"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateMedical(tt.in)
			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestAgeOn(t *testing.T) {
	ref := time.Date(2025, time.June, 8, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 13, ageOn(time.Date(2012, time.May, 1, 0, 0, 0, 0, time.UTC), ref))
	assert.Equal(t, 12, ageOn(time.Date(2013, time.June, 8, 0, 0, 0, 0, time.UTC), ref))
	assert.Equal(t, 11, ageOn(time.Date(2013, time.June, 9, 0, 0, 0, 0, time.UTC), ref))
}
