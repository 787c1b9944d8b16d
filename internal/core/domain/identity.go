package domain

const (
	RoleConsultant = "consultant"
	RoleAdmin      = "admin"
)

// Identity is the resolved profile behind a credential. It is owned by the
// session service and replaced wholesale on every transition, never mutated.
type Identity struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Speciality string `json:"speciality"`
	Role       string `json:"role"`
	Verified   bool   `json:"verified"`
}

// FullName returns the display name used by list views.
func (i Identity) FullName() string {
	return i.FirstName + " " + i.LastName
}
