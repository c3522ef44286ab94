// Package api is a typed client for the demo JSON API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wattr-labs/wattr-demo/internal/domain"
	"github.com/wattr-labs/wattr-demo/internal/service"
	"github.com/wattr-labs/wattr-demo/internal/store"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Error is a non-2xx API response.
type Error struct {
	Status  int
	Message string            `json:"error"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api request failed: %d", e.Status)
	}
	return fmt.Sprintf("api request failed: %d %s", e.Status, e.Message)
}

func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	return nil
}

func (c *Client) Controls(ctx context.Context) (store.State, error) {
	var out store.State
	err := c.getJSON(ctx, "/controls", nil, &out)
	return out, err
}

func (c *Client) UpdateControls(ctx context.Context, u store.Update) (store.State, error) {
	var out store.State
	err := c.sendJSON(ctx, http.MethodPatch, "/controls", u, &out)
	return out, err
}

func (c *Client) Overview(ctx context.Context) (domain.Overview, error) {
	var out domain.Overview
	err := c.getJSON(ctx, "/overview", nil, &out)
	return out, err
}

func (c *Client) Dashboard(ctx context.Context) (domain.Snapshot, error) {
	var out domain.Snapshot
	err := c.getJSON(ctx, "/dashboard", nil, &out)
	return out, err
}

func (c *Client) Racks(ctx context.Context) (service.FacilityView, error) {
	var out service.FacilityView
	err := c.getJSON(ctx, "/facility/racks", nil, &out)
	return out, err
}

func (c *Client) SelectRack(ctx context.Context, id string) (store.State, error) {
	var out store.State
	err := c.sendJSON(ctx, http.MethodPost, "/facility/racks/"+url.PathEscape(id)+"/select", nil, &out)
	return out, err
}

func (c *Client) Plant(ctx context.Context) ([]domain.PlantUnit, error) {
	var out []domain.PlantUnit
	err := c.getJSON(ctx, "/facility/plant", nil, &out)
	return out, err
}

func (c *Client) Pipeline(ctx context.Context) (service.PipelineView, error) {
	var out service.PipelineView
	err := c.getJSON(ctx, "/pipeline", nil, &out)
	return out, err
}

// SubmitEnquiry posts a contact enquiry. clientIP, when set, is forwarded so
// the API rate limits the visitor rather than the web server.
func (c *Client) SubmitEnquiry(ctx context.Context, e domain.Enquiry, clientIP string) (service.Receipt, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return service.Receipt{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/contact", bytes.NewReader(b))
	if err != nil {
		return service.Receipt{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if clientIP != "" {
		req.Header.Set("X-Forwarded-For", clientIP)
	}
	var out service.Receipt
	err = c.do(req, &out)
	return out, err
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if q := params.Encode(); q != "" {
		u += "?" + q
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	e := &Error{Status: resp.StatusCode}
	_ = json.NewDecoder(resp.Body).Decode(e)
	return e
}
