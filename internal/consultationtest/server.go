// Package consultationtest provides an in-process fake of the consultation
// service for tests. It implements the same HTTP contract the real service
// exposes, with fixtures and fault injection controlled by the test.
package consultationtest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/consultation-platform/intake-client/internal/core/domain"
)

// Server is a fake consultation service bound to an httptest listener.
type Server struct {
	srv *httptest.Server

	mu         sync.Mutex
	passwords  map[string]string          // email -> password
	tokens     map[string]string          // email -> token issued on login/register
	identities map[string]domain.Identity // token -> identity
	cases      []domain.Case
	details    map[string]domain.CaseDetail
	pending    []domain.PendingConsultant
	solutions  map[string]string // case id -> submitted solution
	uploads    []string
	approved   []string
	rejected   []string
	failing    map[string]bool // route op -> force 500
}

// New starts a fake service. Callers must Close it.
func New() *Server {
	s := &Server{
		passwords:  make(map[string]string),
		tokens:     make(map[string]string),
		identities: make(map[string]domain.Identity),
		details:    make(map[string]domain.CaseDetail),
		solutions:  make(map[string]string),
		failing:    make(map[string]bool),
	}

	e := echo.New()
	e.HideBanner = true

	e.POST("/auth/login", s.login)
	e.POST("/auth/register", s.register)
	e.GET("/auth/profile", s.profile)
	e.GET("/consultants/assigned-cases", s.assignedCases)
	e.GET("/cases/:id", s.caseDetail)
	e.POST("/cases", s.submitCase)
	e.POST("/cases/:id/add-solution", s.addSolution)
	e.POST("/embedding/pdf", s.upload)
	e.GET("/admin/pending-consultants", s.pendingConsultants)
	e.POST("/admin/consultants/:id/approve", s.approve)
	e.POST("/admin/consultants/:id/reject", s.reject)

	s.srv = httptest.NewServer(e)
	return s
}

func (s *Server) URL() string { return s.srv.URL }
func (s *Server) Close()      { s.srv.Close() }

// --- fixtures ---

// AddUser registers an account that logs in with the given password and
// resolves to identity under the given token.
func (s *Server) AddUser(email, password, tok string, identity domain.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passwords[email] = password
	s.tokens[email] = tok
	s.identities[tok] = identity
}

// RevokeToken makes the server forget a token while leaving the account intact.
func (s *Server) RevokeToken(tok string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.identities, tok)
}

func (s *Server) AddCase(c domain.Case) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cases = append(s.cases, c)
}

func (s *Server) AddDetail(d domain.CaseDetail) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.details[d.ID] = d
}

func (s *Server) AddPending(p domain.PendingConsultant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, p)
}

// Fail forces the named operation to return 500 until cleared.
func (s *Server) Fail(op string, fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[op] = fail
}

// Solution returns the solution submitted for a case, if any.
func (s *Server) Solution(caseID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sol, ok := s.solutions[caseID]
	return sol, ok
}

// Uploads returns the filenames received on the embedding endpoint.
func (s *Server) Uploads() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.uploads...)
}

// Approved returns ids approved so far.
func (s *Server) Approved() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.approved...)
}

// Rejected returns ids rejected so far.
func (s *Server) Rejected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.rejected...)
}

// --- handlers ---

func (s *Server) failingOp(op string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failing[op]
}

func (s *Server) bearer(c echo.Context) (domain.Identity, bool) {
	h := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return domain.Identity{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.identities[strings.TrimPrefix(h, "Bearer ")]
	return id, ok
}

func (s *Server) login(c echo.Context) error {
	if s.failingOp("login") {
		return c.NoContent(http.StatusInternalServerError)
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.passwords[req.Email] == "" || s.passwords[req.Email] != req.Password {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
	}
	// The real service answers login with accessToken and register with token.
	return c.JSON(http.StatusOK, map[string]string{"accessToken": s.tokens[req.Email]})
}

func (s *Server) register(c echo.Context) error {
	if s.failingOp("register") {
		return c.NoContent(http.StatusInternalServerError)
	}
	var req struct {
		FirstName  string `json:"firstName"`
		LastName   string `json:"lastName"`
		Email      string `json:"email"`
		Password   string `json:"password"`
		Speciality string `json:"speciality"`
	}
	if err := c.Bind(&req); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	tok := "registered-" + req.Email
	s.mu.Lock()
	s.passwords[req.Email] = req.Password
	s.tokens[req.Email] = tok
	s.identities[tok] = domain.Identity{
		ID:         "u-" + req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Speciality: req.Speciality,
		Role:       domain.RoleConsultant,
		Verified:   false,
	}
	s.mu.Unlock()
	return c.JSON(http.StatusCreated, map[string]string{"token": tok})
}

func (s *Server) profile(c echo.Context) error {
	id, ok := s.bearer(c)
	if !ok {
		return c.NoContent(http.StatusUnauthorized)
	}
	return c.JSON(http.StatusOK, id)
}

func (s *Server) assignedCases(c echo.Context) error {
	if s.failingOp("assigned_cases") {
		return c.NoContent(http.StatusInternalServerError)
	}
	if _, ok := s.bearer(c); !ok {
		return c.NoContent(http.StatusUnauthorized)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, s.cases)
}

func (s *Server) caseDetail(c echo.Context) error {
	if s.failingOp("case_detail") {
		return c.NoContent(http.StatusInternalServerError)
	}
	if _, ok := s.bearer(c); !ok {
		return c.NoContent(http.StatusUnauthorized)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.details[c.Param("id")]
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	return c.JSON(http.StatusOK, d)
}

func (s *Server) submitCase(c echo.Context) error {
	if s.failingOp("submit_case") {
		return c.NoContent(http.StatusInternalServerError)
	}
	var req struct {
		Email       string `json:"email"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Speciality  string `json:"speciality"`
	}
	if err := c.Bind(&req); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	return c.NoContent(http.StatusCreated)
}

func (s *Server) addSolution(c echo.Context) error {
	if s.failingOp("add_solution") {
		return c.NoContent(http.StatusInternalServerError)
	}
	if _, ok := s.bearer(c); !ok {
		return c.NoContent(http.StatusUnauthorized)
	}
	var solution string
	if err := c.Bind(&solution); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	s.mu.Lock()
	s.solutions[c.Param("id")] = solution
	s.mu.Unlock()
	return c.NoContent(http.StatusOK)
}

func (s *Server) upload(c echo.Context) error {
	if s.failingOp("upload_reference") {
		return c.NoContent(http.StatusInternalServerError)
	}
	if _, ok := s.bearer(c); !ok {
		return c.NoContent(http.StatusUnauthorized)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	s.mu.Lock()
	s.uploads = append(s.uploads, fh.Filename)
	s.mu.Unlock()
	return c.NoContent(http.StatusOK)
}

func (s *Server) pendingConsultants(c echo.Context) error {
	if s.failingOp("pending_consultants") {
		return c.NoContent(http.StatusInternalServerError)
	}
	id, ok := s.bearer(c)
	if !ok {
		return c.NoContent(http.StatusUnauthorized)
	}
	if id.Role != domain.RoleAdmin {
		return c.NoContent(http.StatusForbidden)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, s.pending)
}

func (s *Server) approve(c echo.Context) error {
	if s.failingOp("approve_consultant") {
		return c.NoContent(http.StatusInternalServerError)
	}
	if _, ok := s.bearer(c); !ok {
		return c.NoContent(http.StatusUnauthorized)
	}
	s.mu.Lock()
	s.approved = append(s.approved, c.Param("id"))
	s.removePendingLocked(c.Param("id"))
	s.mu.Unlock()
	return c.NoContent(http.StatusOK)
}

func (s *Server) reject(c echo.Context) error {
	if s.failingOp("reject_consultant") {
		return c.NoContent(http.StatusInternalServerError)
	}
	if _, ok := s.bearer(c); !ok {
		return c.NoContent(http.StatusUnauthorized)
	}
	s.mu.Lock()
	s.rejected = append(s.rejected, c.Param("id"))
	s.removePendingLocked(c.Param("id"))
	s.mu.Unlock()
	return c.NoContent(http.StatusOK)
}

func (s *Server) removePendingLocked(id string) {
	for i := range s.pending {
		if s.pending[i].ID == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}
