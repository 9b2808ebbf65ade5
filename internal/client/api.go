package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
)

type NewUser struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Name     string      `json:"name"`
	Role     models.Role `json:"role"`
	ShipID   string      `json:"ship_id,omitempty"`
}

type UploadResult struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
}

type Dashboard struct {
	TemplateCount   int64                   `json:"template_count"`
	ManualCount     int64                   `json:"manual_count"`
	VesselCount     int64                   `json:"vessel_count"`
	SubmissionCount int64                   `json:"submission_count"`
	ByStatus        map[models.Status]int64 `json:"by_status"`
	NeedsAction     int64                   `json:"needs_action"`
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	if err := c.do(ctx, http.MethodGet, "/dashboard", nil, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Ships and users

func (c *Client) ListVessels(ctx context.Context) ([]models.Vessel, error) {
	var out []models.Vessel
	err := c.do(ctx, http.MethodGet, "/ships", nil, nil, &out)
	return out, err
}

func (c *Client) GetVessel(ctx context.Context, id string) (*models.Vessel, error) {
	var v models.Vessel
	if err := c.do(ctx, http.MethodGet, "/ships/"+url.PathEscape(id), nil, nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) CreateVessel(ctx context.Context, v models.Vessel) (*models.Vessel, error) {
	var out models.Vessel
	if err := c.do(ctx, http.MethodPost, "/ships", nil, v, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListUsers(ctx context.Context, shipID string, role models.Role) ([]models.User, error) {
	q := url.Values{}
	if shipID != "" {
		q.Set("ship_id", shipID)
	}
	if role != "" {
		q.Set("role", string(role))
	}
	var out []models.User
	err := c.do(ctx, http.MethodGet, "/users", q, nil, &out)
	return out, err
}

func (c *Client) CreateUser(ctx context.Context, u NewUser) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPost, "/users", nil, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Manuals

func (c *Client) ListManuals(ctx context.Context, manualType models.ManualType) ([]models.Manual, error) {
	q := url.Values{}
	if manualType != "" {
		q.Set("type", string(manualType))
	}
	var out []models.Manual
	err := c.do(ctx, http.MethodGet, "/documents/manuals", q, nil, &out)
	return out, err
}

func (c *Client) CreateManual(ctx context.Context, m models.Manual) (*models.Manual, error) {
	var out models.Manual
	if err := c.do(ctx, http.MethodPost, "/documents/manuals", nil, m, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Templates

func (c *Client) ListTemplates(ctx context.Context, category models.Category) ([]models.Template, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", string(category))
	}
	var out []models.Template
	err := c.do(ctx, http.MethodGet, "/documents/templates", q, nil, &out)
	return out, err
}

func (c *Client) GetTemplate(ctx context.Context, id string) (*models.Template, error) {
	var t models.Template
	if err := c.do(ctx, http.MethodGet, "/documents/templates/"+url.PathEscape(id), nil, nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) CreateTemplate(ctx context.Context, in models.TemplateInput) (*models.Template, error) {
	var t models.Template
	if err := c.do(ctx, http.MethodPost, "/documents/templates", nil, in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) UpdateTemplate(ctx context.Context, id string, in models.TemplateInput) (*models.Template, error) {
	var t models.Template
	if err := c.do(ctx, http.MethodPut, "/documents/templates/"+url.PathEscape(id), nil, in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Submissions

func (c *Client) ListSubmissions(ctx context.Context, f models.SubmissionFilter) ([]models.Submission, error) {
	q := url.Values{}
	if f.VesselID != "" {
		q.Set("vessel_id", f.VesselID)
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.TemplateID != "" {
		q.Set("template_id", f.TemplateID)
	}
	var out []models.Submission
	err := c.do(ctx, http.MethodGet, "/documents/submissions", q, nil, &out)
	return out, err
}

func (c *Client) GetSubmission(ctx context.Context, id string) (*models.Submission, error) {
	var s models.Submission
	if err := c.do(ctx, http.MethodGet, "/documents/submissions/"+url.PathEscape(id), nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) TriggerWork(ctx context.Context, req models.TriggerWorkRequest) ([]models.Submission, error) {
	var out []models.Submission
	err := c.do(ctx, http.MethodPost, "/documents/trigger-work", nil, req, &out)
	return out, err
}

func (c *Client) UpdateSubmission(ctx context.Context, id string, upd models.SubmissionUpdate) (*models.Submission, error) {
	var s models.Submission
	if err := c.do(ctx, http.MethodPut, "/documents/submissions/"+url.PathEscape(id), nil, upd, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) ApproveSubmission(ctx context.Context, id, notes string) (*models.Submission, error) {
	return c.review(ctx, id, "approve", notes)
}

func (c *Client) RejectSubmission(ctx context.Context, id, notes string) (*models.Submission, error) {
	return c.review(ctx, id, "reject", notes)
}

func (c *Client) review(ctx context.Context, id, verb, notes string) (*models.Submission, error) {
	var body any
	if notes != "" {
		body = map[string]string{"approval_notes": notes}
	}
	var s models.Submission
	path := "/documents/submissions/" + url.PathEscape(id) + "/" + verb
	if err := c.do(ctx, http.MethodPost, path, nil, body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ExportSubmissions streams the xlsx export of a template's submissions
// into w.
func (c *Client) ExportSubmissions(ctx context.Context, templateID string, w io.Writer) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/documents/submissions/export", url.Values{"template_id": {templateID}}, nil)
	if err != nil {
		return err
	}
	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, err = io.Copy(w, resp.Body)
	return err
}

// Upload sends one file as multipart form data under the given storage
// category and subcategory.
func (c *Client) Upload(ctx context.Context, category, subcategory, filename string, r io.Reader) (*UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("client: read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	q := url.Values{"category": {category}}
	if subcategory != "" {
		q.Set("subcategory", subcategory)
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/uploads", q, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var out UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("client: decode upload: %w", err)
	}
	return &out, nil
}
