// Package api implements the typed HTTP client for the external consultation
// service. It is the only place transport failures are classified: callers
// receive domain sentinel errors, never raw status codes.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/consultation-platform/intake-client/internal/api/metrics"
	"github.com/consultation-platform/intake-client/internal/core/domain"
	"github.com/consultation-platform/intake-client/internal/core/ports"
	"github.com/consultation-platform/intake-client/internal/infrastructure/token"
)

const defaultTimeout = 15 * time.Second

// TokenSource supplies the current credential for authenticated calls. An
// absent credential yields an empty string and the request goes out without
// an Authorization header; the server decides whether to reject it.
type TokenSource func(ctx context.Context) (string, error)

// Client implements ports.AuthGateway, ports.CaseGateway and
// ports.AdminGateway against the consultation service base URL.
type Client struct {
	baseURL  string
	http     *http.Client
	tokens   TokenSource
	validate *requestValidator
	log      zerolog.Logger
	now      func() time.Time
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: timeout},
		tokens:   tokens,
		validate: newRequestValidator(),
		log:      log,
		now:      time.Now,
	}
}

// --- AuthGateway ---

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	req := loginRequest{Email: email, Password: password}
	if err := c.validate.Struct(req); err != nil {
		return "", err
	}

	var res authResponse
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", "", req, &res); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrSessionExpired) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}
	if res.token() == "" {
		return "", fmt.Errorf("login: empty token in response")
	}
	return res.token(), nil
}

func (c *Client) Register(ctx context.Context, input ports.RegisterInput) (string, error) {
	req := registerRequest{
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      input.Email,
		Password:   input.Password,
		Speciality: input.Speciality,
	}
	if err := c.validate.Struct(req); err != nil {
		return "", err
	}

	var res authResponse
	if err := c.do(ctx, "register", http.MethodPost, "/auth/register", "", req, &res); err != nil {
		return "", err
	}
	if res.token() == "" {
		return "", fmt.Errorf("register: empty token in response")
	}
	return res.token(), nil
}

func (c *Client) Profile(ctx context.Context, tok string) (*domain.Identity, error) {
	var res profileResponse
	if err := c.do(ctx, "profile", http.MethodGet, "/auth/profile", tok, nil, &res); err != nil {
		return nil, err
	}
	return res.identity(), nil
}

// --- CaseGateway ---

func (c *Client) AssignedCases(ctx context.Context) ([]domain.Case, error) {
	var res []caseResponse
	if err := c.do(ctx, "assigned_cases", http.MethodGet, "/consultants/assigned-cases", c.credential(ctx), nil, &res); err != nil {
		return nil, err
	}
	cases := make([]domain.Case, 0, len(res))
	for _, r := range res {
		cases = append(cases, r.toCase())
	}
	return cases, nil
}

func (c *Client) CaseDetail(ctx context.Context, id string) (*domain.CaseDetail, error) {
	var res caseResponse
	path := "/cases/" + url.PathEscape(id)
	if err := c.do(ctx, "case_detail", http.MethodGet, path, c.credential(ctx), nil, &res); err != nil {
		return nil, err
	}
	return res.toDetail(), nil
}

func (c *Client) SubmitCase(ctx context.Context, input ports.SubmitCaseInput) error {
	req := submitCaseRequest{
		Email:       input.Email,
		Title:       input.Title,
		Description: input.Description,
		Speciality:  input.Speciality,
	}
	if err := c.validate.Struct(req); err != nil {
		return err
	}
	// Case submission is the one public write: patients are not logged in.
	return c.do(ctx, "submit_case", http.MethodPost, "/cases", "", req, nil)
}

func (c *Client) AddSolution(ctx context.Context, caseID, solution string) error {
	path := "/cases/" + url.PathEscape(caseID) + "/add-solution"
	// The body is the bare JSON-encoded solution string, not an object.
	return c.do(ctx, "add_solution", http.MethodPost, path, c.credential(ctx), solution, nil)
}

func (c *Client) UploadReference(ctx context.Context, filename string, content io.Reader) error {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("upload_reference: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("upload_reference: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("upload_reference: %w", err)
	}

	body := &rawBody{reader: buf, contentType: mw.FormDataContentType()}
	return c.do(ctx, "upload_reference", http.MethodPost, "/embedding/pdf", c.credential(ctx), body, nil)
}

// --- AdminGateway ---

func (c *Client) PendingConsultants(ctx context.Context) ([]domain.PendingConsultant, error) {
	var res []pendingConsultantResponse
	if err := c.do(ctx, "pending_consultants", http.MethodGet, "/admin/pending-consultants", c.credential(ctx), nil, &res); err != nil {
		return nil, err
	}
	pending := make([]domain.PendingConsultant, 0, len(res))
	for _, r := range res {
		pending = append(pending, r.toDomain())
	}
	return pending, nil
}

func (c *Client) ApproveConsultant(ctx context.Context, id string) error {
	path := "/admin/consultants/" + url.PathEscape(id) + "/approve"
	return c.do(ctx, "approve_consultant", http.MethodPost, path, c.credential(ctx), nil, nil)
}

func (c *Client) RejectConsultant(ctx context.Context, id string) error {
	path := "/admin/consultants/" + url.PathEscape(id) + "/reject"
	return c.do(ctx, "reject_consultant", http.MethodPost, path, c.credential(ctx), nil, nil)
}

// --- transport ---

// rawBody carries a pre-encoded request body with its content type.
type rawBody struct {
	reader      io.Reader
	contentType string
}

func (c *Client) credential(ctx context.Context) string {
	tok, err := c.tokens(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNoCredential) {
			c.log.Warn().Err(err).Msg("credential lookup failed, sending unauthenticated request")
		}
		return ""
	}
	return tok
}

// do sends one request and classifies the outcome into domain errors:
// 401 becomes ErrSessionExpired when the token visibly expired, otherwise
// ErrUnauthorized; 404 becomes ErrNotFound; any other non-2xx status or a
// network failure stays a plain transport error.
func (c *Client) do(ctx context.Context, op, method, path, tok string, body, out any) error {
	var reader io.Reader
	contentType := ""
	switch b := body.(type) {
	case nil:
	case *rawBody:
		reader = b.reader
		contentType = b.contentType
	default:
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(b); err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = buf
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	metrics.RequestsTotal.WithLabelValues(op).Inc()

	res, err := c.http.Do(req)
	if err != nil {
		metrics.RequestFailuresTotal.WithLabelValues(op, "transport").Inc()
		return fmt.Errorf("%s: %w", op, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		if out != nil {
			if err := json.NewDecoder(res.Body).Decode(out); err != nil {
				metrics.RequestFailuresTotal.WithLabelValues(op, "transport").Inc()
				return fmt.Errorf("%s: decode response: %w", op, err)
			}
		}
		return nil
	}

	switch res.StatusCode {
	case http.StatusUnauthorized:
		if tok != "" && token.Expired(tok, c.now()) {
			metrics.RequestFailuresTotal.WithLabelValues(op, "expired").Inc()
			return fmt.Errorf("%s: %w", op, domain.ErrSessionExpired)
		}
		metrics.RequestFailuresTotal.WithLabelValues(op, "unauthorized").Inc()
		return fmt.Errorf("%s: %w", op, domain.ErrUnauthorized)
	case http.StatusNotFound:
		metrics.RequestFailuresTotal.WithLabelValues(op, "not_found").Inc()
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	default:
		metrics.RequestFailuresTotal.WithLabelValues(op, "transport").Inc()
		c.log.Debug().Str("op", op).Int("status", res.StatusCode).Msg("request failed")
		return fmt.Errorf("%s: unexpected status %d", op, res.StatusCode)
	}
}
