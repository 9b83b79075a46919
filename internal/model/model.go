// Package model defines the core domain types for the camp booking system.
package model

import "time"

// CampType distinguishes day camps from residential (overnight) camps.
type CampType string

const (
	CampTypeDay         CampType = "DAY"
	CampTypeResidential CampType = "RESIDENTIAL"
)

// Camp represents a published summer camp. Units carry the bookable
// batches; the camp itself holds provider-level metadata and the tax
// rate applied at checkout.
type Camp struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Provider       string   `json:"provider"`
	Type           CampType `json:"type"`
	City           string   `json:"city"`
	Locality       string   `json:"locality"`
	AgeDescription string   `json:"age_description"`
	TaxRate        float64  `json:"tax_rate"`
}

// Unit is one bookable batch of a camp: a date range and an age band
// with a finite number of seats. Prices are in currency minor units.
// OriginalPrice is zero when the unit is not discounted.
type Unit struct {
	ID            string    `json:"id"`
	CampID        string    `json:"camp_id"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	AgeMin        int       `json:"age_min"`
	AgeMax        int       `json:"age_max"`
	Price         int64     `json:"price"`
	OriginalPrice int64     `json:"original_price,omitempty"`
	SeatsTotal    int       `json:"seats_total"`
	SeatsBooked   int       `json:"seats_booked"`
}

// SeatsLeft returns the number of available seats.
func (u *Unit) SeatsLeft() int {
	return u.SeatsTotal - u.SeatsBooked
}

// IsFull returns true when no seats remain.
func (u *Unit) IsFull() bool {
	return u.SeatsBooked >= u.SeatsTotal
}

// ReservationToken is the opaque handle returned by a successful seat
// reservation. It is required, exactly once, to release that seat.
type ReservationToken string

// Gender is the closed set offered on the child-details step.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Valid reports whether g is one of the enumerated genders.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Grade is the closed set of school grades, kindergarten through class 12.
type Grade string

// Valid reports whether g is one of the enumerated grades.
func (g Grade) Valid() bool {
	switch g {
	case "kg", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12":
		return true
	}
	return false
}

// Relation is the closed set of emergency-contact relationships.
type Relation string

const (
	RelationGrandparent Relation = "grandparent"
	RelationUncle       Relation = "uncle"
	RelationAunt        Relation = "aunt"
	RelationSibling     Relation = "sibling"
	RelationFriend      Relation = "friend"
	RelationOther       Relation = "other"
)

// Valid reports whether r is one of the enumerated relations.
func (r Relation) Valid() bool {
	switch r {
	case RelationGrandparent, RelationUncle, RelationAunt,
		RelationSibling, RelationFriend, RelationOther:
		return true
	}
	return false
}

// ChildProfile is the camper's identity collected on the first step.
type ChildProfile struct {
	Name        string    `json:"name"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Gender      Gender    `json:"gender"`
	Grade       Grade     `json:"grade"`
}

// ParentProfile is the guardian's contact information.
type ParentProfile struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
}

// EmergencyContact must be reachable at a number distinct from the parent's.
type EmergencyContact struct {
	Name     string   `json:"name"`
	Phone    string   `json:"phone"`
	Relation Relation `json:"relation"`
}

// MedicalProfile holds the camper's medical details. Fields default to
// the literal "none" rather than empty strings so the review step never
// renders a blank field.
type MedicalProfile struct {
	Allergies           string `json:"allergies"`
	Conditions          string `json:"conditions"`
	Medications         string `json:"medications"`
	SpecialInstructions string `json:"special_instructions"`
}

// NewMedicalProfile returns a profile with every field set to "none".
func NewMedicalProfile() MedicalProfile {
	return MedicalProfile{
		Allergies:           "none",
		Conditions:          "none",
		Medications:         "none",
		SpecialInstructions: "none",
	}
}

// RegistrationSession is the draft aggregate collected across the
// workflow steps. It is owned exclusively by the workflow that created
// it and is frozen into the ConfirmationRecord on commit.
type RegistrationSession struct {
	Child     ChildProfile     `json:"child"`
	Parent    ParentProfile    `json:"parent"`
	Emergency EmergencyContact `json:"emergency_contact"`
	Medical   MedicalProfile   `json:"medical"`
	Consent   bool             `json:"consent"`
}

// BookingQuote is the priced outcome of a unit at a moment in time.
// Derived, never stored: it is recomputed at commit so price changes
// between steps are reflected in the final charge.
type BookingQuote struct {
	BasePrice       int64   `json:"base_price"`
	DiscountPercent int     `json:"discount_percent"`
	TaxRate         float64 `json:"tax_rate"`
	TotalPrice      int64   `json:"total_price"`
}

// ConfirmationRecord is the immutable artifact produced when a
// registration session successfully commits a seat reservation.
type ConfirmationRecord struct {
	RegistrationID string              `json:"registration_id"`
	PaymentRef     string              `json:"payment_ref"`
	UnitID         string              `json:"unit_id"`
	CampID         string              `json:"camp_id"`
	Session        RegistrationSession `json:"session"`
	Quote          BookingQuote        `json:"quote"`
	ConfirmedAt    time.Time           `json:"confirmed_at"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error  string `json:"error"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason,omitempty"`
}
