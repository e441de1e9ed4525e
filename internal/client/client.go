package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"

	"github.com/mdouchement/novatech/internal/model"
	"github.com/mdouchement/novatech/internal/store"
	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
)

type (
	// A Client performs the content store operations against a novatech server.
	Client struct {
		http     *http.Client
		endpoint *url.URL
		bearer   string
	}

	p map[string]any
)

var _ store.Content = (*Client)(nil)

// NewDefaultClient returns a new Client with default HTTP client.
func NewDefaultClient(endpoint string) (*Client, error) {
	return New(endpoint, http.DefaultClient)
}

// New returns a new Client.
func New(endpoint string, c *http.Client) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse endpoint")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("invalid endpoint: %q", endpoint)
	}
	return &Client{http: c, endpoint: u}, nil
}

// BearerToken returns the authentication used for admin requests.
func (c *Client) BearerToken() string {
	return c.bearer
}

// SetBearerToken sets the authentication used for admin requests.
func (c *Client) SetBearerToken(token string) {
	c.bearer = token
}

//
// Leads
//

// FetchLeads returns all the leads, newest first.
func (c *Client) FetchLeads(ctx context.Context) ([]*model.Lead, error) {
	var leads []*model.Lead
	err := c.do(ctx, http.MethodGet, "/api/admin/leads", nil, &leads)
	return leads, err
}

// SubmitLead records a contact form submission.
func (c *Client) SubmitLead(ctx context.Context, lead *model.Lead) (string, error) {
	return c.create(ctx, "/api/leads", lead)
}

// DeleteLead removes a lead.
func (c *Client) DeleteLead(ctx context.Context, id string) error {
	return c.remove(ctx, "/api/admin/leads", id)
}

//
// Projects
//

// FetchProjects returns all the projects.
func (c *Client) FetchProjects(ctx context.Context) ([]*model.Project, error) {
	var projects []*model.Project
	err := c.do(ctx, http.MethodGet, "/api/projects", nil, &projects)
	return projects, err
}

// SaveProject creates or updates a project.
func (c *Client) SaveProject(ctx context.Context, project *model.Project) (string, error) {
	return c.save(ctx, "/api/admin/projects", project)
}

// DeleteProject removes a project.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.remove(ctx, "/api/admin/projects", id)
}

//
// Services
//

// FetchServices returns all the services.
func (c *Client) FetchServices(ctx context.Context) ([]*model.Service, error) {
	var services []*model.Service
	err := c.do(ctx, http.MethodGet, "/api/services", nil, &services)
	return services, err
}

// SaveService creates or updates a service.
func (c *Client) SaveService(ctx context.Context, service *model.Service) (string, error) {
	return c.save(ctx, "/api/admin/services", service)
}

// DeleteService removes a service.
func (c *Client) DeleteService(ctx context.Context, id string) error {
	return c.remove(ctx, "/api/admin/services", id)
}

//
// Tech stack
//

// FetchTechStack returns all the tech stack entries.
func (c *Client) FetchTechStack(ctx context.Context) ([]*model.TechItem, error) {
	var items []*model.TechItem
	err := c.do(ctx, http.MethodGet, "/api/techstack", nil, &items)
	return items, err
}

// SaveTechItem creates or updates a tech stack entry.
func (c *Client) SaveTechItem(ctx context.Context, item *model.TechItem) (string, error) {
	return c.save(ctx, "/api/admin/techstack", item)
}

// DeleteTechItem removes a tech stack entry.
func (c *Client) DeleteTechItem(ctx context.Context, id string) error {
	return c.remove(ctx, "/api/admin/techstack", id)
}

//
// Auth
//

// AdminLogin connects the Client as admin.
// Rejected credentials are not an error, an unsuccessful Login is returned.
func (c *Client) AdminLogin(ctx context.Context, email, password string) (model.Login, error) {
	var login model.Login

	err := c.do(ctx, http.MethodPost, "/api/admin/login", p{"email": email, "password": password}, &login)
	if err != nil {
		if IsStatus(err, http.StatusUnauthorized) {
			return model.Login{Success: false, Token: ""}, nil
		}
		return model.Login{}, errors.Wrap(err, "could not login")
	}

	c.bearer = login.Token
	return login, nil
}

// AdminLogout terminates the admin session.
func (c *Client) AdminLogout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/api/admin/session", nil, nil); err != nil {
		return errors.Wrap(err, "could not logout")
	}

	c.bearer = ""
	return nil
}

//
// Images
//

// EncodeImage uploads the image and returns its data URI.
func (c *Client) EncodeImage(ctx context.Context, r io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", "image")
	if err != nil {
		return "", errors.Wrap(err, "could not build multipart body")
	}
	if _, err = io.Copy(part, r); err != nil {
		return "", errors.Wrapf(store.ErrImageRead, "%s", err)
	}
	if err = mw.Close(); err != nil {
		return "", errors.Wrap(err, "could not build multipart body")
	}

	req, err := c.request(ctx, http.MethodPost, "/api/admin/uploads", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var upload struct {
		URI string `json:"uri"`
	}
	err = c.perform(req, &upload)
	return upload.URI, err
}

//
// Helpers
//

func (c *Client) save(ctx context.Context, collection string, r model.Model) (string, error) {
	if r.GetID() == "" {
		return c.create(ctx, collection, r)
	}

	route, err := member(collection, r.GetID())
	if err != nil {
		return "", err
	}

	// The server clears the fields sent empty, zero fields are left out to keep their values.
	payload, err := changes(r)
	if err != nil {
		return "", err
	}

	var saved struct {
		ID string `json:"_id"`
	}
	err = c.do(ctx, http.MethodPut, route, payload, &saved)
	return saved.ID, err
}

func (c *Client) create(ctx context.Context, collection string, r any) (string, error) {
	var saved struct {
		ID string `json:"_id"`
	}
	err := c.do(ctx, http.MethodPost, collection, r, &saved)
	return saved.ID, err
}

func (c *Client) remove(ctx context.Context, collection, id string) error {
	route, err := member(collection, id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, route, nil, nil)
}

func (c *Client) do(ctx context.Context, method, route string, params, v any) error {
	var body io.Reader
	if params != nil {
		payload, err := json.Marshal(params)
		if err != nil {
			return errors.Wrap(err, "could not serialize params")
		}
		body = bytes.NewReader(payload)
	}

	req, err := c.request(ctx, method, route, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}

	return c.perform(req, v)
}

// request builds a request on the given route, route must be escaped.
func (c *Client) request(ctx context.Context, method, route string, body io.Reader) (req *http.Request, err error) {
	u := *c.endpoint
	u.RawPath = path.Join(u.EscapedPath(), route)
	u.Path, err = url.PathUnescape(u.RawPath)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid route %s", route)
	}

	req, err = http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, errors.Wrap(err, "could not build request")
	}
	req.Header.Add("Accept", "application/json")
	if c.bearer != "" {
		req.Header.Add("Authorization", "Bearer "+c.bearer)
	}

	return req, nil
}

func (c *Client) perform(req *http.Request, v any) error {
	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "could not perform request")
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return parseError(res.Body, res.StatusCode)
	}

	if v == nil {
		_, err = io.Copy(io.Discard, res.Body)
		return errors.Wrap(err, "could not read response")
	}

	dec := json.NewDecoder(res.Body)
	return errors.Wrap(dec.Decode(v), "could not parse response")
}

// member returns the escaped route of a collection record.
func member(collection, id string) (string, error) {
	switch id {
	case "", ".", "..":
		return "", errors.Errorf("invalid id %q", id)
	}
	return collection + "/" + url.PathEscape(id), nil
}

// changes serializes r without its id and its empty fields.
func changes(r model.Model) (json.RawMessage, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return nil, errors.Wrap(err, "could not serialize params")
	}

	v, err := fastjson.ParseBytes(payload)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse params")
	}
	o, err := v.Object()
	if err != nil {
		return nil, errors.Wrap(err, "could not parse params")
	}

	var empty []string
	o.Visit(func(key []byte, value *fastjson.Value) {
		switch {
		case string(key) == "_id", value.Type() == fastjson.TypeNull:
			empty = append(empty, string(key))
		case value.Type() == fastjson.TypeString && len(value.GetStringBytes()) == 0:
			empty = append(empty, string(key))
		}
	})
	for _, key := range empty {
		o.Del(key)
	}

	return v.MarshalTo(nil), nil
}
