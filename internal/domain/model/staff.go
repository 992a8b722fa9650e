package model

// DefaultStaffPhoto is the image used for staff members without a photo.
const DefaultStaffPhoto = "assets/img/team/team-1.jpg"

// StaffRecord is one person's entry in the staff directory. Records carry no
// identifier; their position in the source array is their only ordering.
type StaffRecord struct {
	Name       string
	Department string
	Role       string
	Email      string // optional
	Photo      string // optional, URL relative to the site root
}

// HasEmail reports whether the record has a contact address.
func (s StaffRecord) HasEmail() bool {
	return s.Email != ""
}

// MailtoURL returns the mailto link for the record, or "#" when the record
// has no email.
func (s StaffRecord) MailtoURL() string {
	if s.Email == "" {
		return "#"
	}
	return "mailto:" + s.Email
}

// PhotoURL returns the record's photo or DefaultStaffPhoto when unset.
func (s StaffRecord) PhotoURL() string {
	if s.Photo == "" {
		return DefaultStaffPhoto
	}
	return s.Photo
}

// StaggerDelay returns the reveal-animation delay in milliseconds for the card
// at position index. Delays cycle through 100..600.
func StaggerDelay(index int) int {
	return ((index % 6) + 1) * 100
}
