package api

import (
	"time"

	"github.com/consultation-platform/intake-client/internal/core/domain"
)

// --- Request / Response types ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type registerRequest struct {
	FirstName  string `json:"firstName"  validate:"required,min=2"`
	LastName   string `json:"lastName"   validate:"required,min=2"`
	Email      string `json:"email"      validate:"required,email"`
	Password   string `json:"password"   validate:"required,min=6"`
	Speciality string `json:"speciality" validate:"required"`
}

// authResponse tolerates both token field spellings the service has used.
type authResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"accessToken"`
}

func (r authResponse) token() string {
	if r.Token != "" {
		return r.Token
	}
	return r.AccessToken
}

type profileResponse struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Speciality string `json:"speciality"`
	Role       string `json:"role"`
	Verified   bool   `json:"verified"`
}

func (r profileResponse) identity() *domain.Identity {
	return &domain.Identity{
		ID:         r.ID,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Speciality: r.Speciality,
		Role:       r.Role,
		Verified:   r.Verified,
	}
}

type submitCaseRequest struct {
	Email       string `json:"email"       validate:"required,email"`
	Title       string `json:"title"       validate:"required,min=5"`
	Description string `json:"description" validate:"required,min=20"`
	Speciality  string `json:"speciality"  validate:"required"`
}

type caseResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      string            `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	Email       string            `json:"email"`
	Speciality  string            `json:"speciality"`
	Suggestions []suggestionEntry `json:"suggestions,omitempty"`
}

type suggestionEntry struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func (r caseResponse) toCase() domain.Case {
	return domain.Case{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Status:      domain.CaseStatus(r.Status),
		CreatedAt:   r.CreatedAt,
		Email:       r.Email,
		Speciality:  r.Speciality,
	}
}

func (r caseResponse) toDetail() *domain.CaseDetail {
	suggestions := make([]domain.Suggestion, 0, len(r.Suggestions))
	for _, s := range r.Suggestions {
		suggestions = append(suggestions, domain.Suggestion{ID: s.ID, Text: s.Text})
	}
	return &domain.CaseDetail{Case: r.toCase(), Suggestions: suggestions}
}

type pendingConsultantResponse struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	DoctorID   string `json:"doctorId"`
	Email      string `json:"email"`
	Speciality string `json:"speciality"`
}

func (r pendingConsultantResponse) toDomain() domain.PendingConsultant {
	return domain.PendingConsultant{
		ID:         r.ID,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		DoctorID:   r.DoctorID,
		Email:      r.Email,
		Speciality: r.Speciality,
	}
}
