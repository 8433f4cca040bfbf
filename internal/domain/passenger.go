package domain

// PassengerRecord holds the form data for one seat. Passport number and
// nationality are optional; the remaining five fields gate the booking flow.
type PassengerRecord struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	DateOfBirth    string `json:"dateOfBirth"`
	PassportNumber string `json:"passportNumber,omitempty"`
	Nationality    string `json:"nationality,omitempty"`
}

// Complete reports whether all mandatory fields are filled in.
func (p PassengerRecord) Complete() bool {
	return p.FirstName != "" && p.LastName != "" && p.Email != "" && p.Phone != "" && p.DateOfBirth != ""
}
