package domain

import "time"

// CaseStatus represents the lifecycle state of a consultation case. The
// server owns transitions; the client only renders and gates on them.
type CaseStatus string

const (
	CaseNew           CaseStatus = "New"
	CaseAssigned      CaseStatus = "Assigned"
	CaseReadyToReview CaseStatus = "ReadyToReview"
	CaseCompleted     CaseStatus = "Completed"
)

// caseTransitions mirrors the server-side case state machine so the client
// can reason about what a consultant action is allowed to produce.
var caseTransitions = map[CaseStatus][]CaseStatus{
	CaseNew:           {CaseAssigned},
	CaseAssigned:      {CaseReadyToReview},
	CaseReadyToReview: {CaseCompleted},
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s CaseStatus) CanTransitionTo(next CaseStatus) bool {
	for _, allowed := range caseTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Reviewable reports whether a consultant may author a solution for a case
// in this status.
func (s CaseStatus) Reviewable() bool {
	return s.CanTransitionTo(CaseCompleted)
}

// Case is a read-only snapshot of a consultation case as the server reports
// it. Snapshots are fetched per view and never cached across navigations.
type Case struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      CaseStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	Email       string     `json:"email"`
	Speciality  string     `json:"speciality"`
}

// Suggestion is a server-proposed candidate resolution for a case. Text is
// not necessarily unique; the id is.
type Suggestion struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// CaseDetail is a Case enriched with the ordered suggestion list the
// consultant chooses from. Only present for cases whose status allows review.
type CaseDetail struct {
	Case
	Suggestions []Suggestion `json:"suggestions"`
}

// SuggestionByID returns the suggestion with the given id, or nil.
func (d *CaseDetail) SuggestionByID(id string) *Suggestion {
	for i := range d.Suggestions {
		if d.Suggestions[i].ID == id {
			return &d.Suggestions[i]
		}
	}
	return nil
}

// ReviewSubmission is the resolved outcome of a review: exactly one solution
// text, taken either from a selected suggestion or authored by the consultant.
type ReviewSubmission struct {
	CaseID   string
	Solution string
}
