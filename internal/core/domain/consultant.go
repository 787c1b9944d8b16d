package domain

// PendingConsultant is a consultant registration awaiting an admin decision.
// The record exists only until it is approved or rejected; the client's copy
// is an optimistic projection of the server-side pending set.
type PendingConsultant struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	DoctorID   string `json:"doctorId"`
	Email      string `json:"email"`
	Speciality string `json:"speciality"`
}
