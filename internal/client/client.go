// Package client is a typed HTTP client for the notes API. It keeps no
// session state: every call that needs authentication takes a Credential.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AlibekovAA/notes-app/backend/internal/common/dto"
)

const defaultTimeout = 10 * time.Second

// Credential is what a successful login returns.
type Credential struct {
	Token    string
	UserID   string
	Username string
	Name     string
}

func (c Credential) Valid() bool {
	return c.Token != ""
}

// APIError is a non-2xx response. Message is the server's error text, or
// the status text when the body carried none.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notes api: %d %s", e.Status, e.Message)
}

var ErrNoCredential = errors.New("no credential: log in first")

type NoteInput struct {
	Content   string
	Important bool
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for baseURL. A nil httpClient gets a default with a
// 10s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *Client) Login(ctx context.Context, username, password string) (Credential, error) {
	var res dto.Login
	err := c.do(ctx, http.MethodPost, "/api/login", nil, dto.Credentials{
		Username: username,
		Password: password,
	}, &res)
	if err != nil {
		return Credential{}, err
	}
	return Credential{
		Token:    res.Token,
		UserID:   res.ID,
		Username: res.Username,
		Name:     res.Name,
	}, nil
}

func (c *Client) CreateUser(ctx context.Context, username, name, password string) (dto.User, error) {
	var res dto.User
	err := c.do(ctx, http.MethodPost, "/api/users", nil, dto.Signup{
		Username: username,
		Name:     name,
		Password: password,
	}, &res)
	return res, err
}

func (c *Client) ListUsers(ctx context.Context) ([]dto.User, error) {
	var res []dto.User
	err := c.do(ctx, http.MethodGet, "/api/users", nil, nil, &res)
	return res, err
}

func (c *Client) ListNotes(ctx context.Context) ([]dto.NoteWithOwner, error) {
	var res []dto.NoteWithOwner
	err := c.do(ctx, http.MethodGet, "/api/notes", nil, nil, &res)
	return res, err
}

func (c *Client) GetNote(ctx context.Context, id string) (dto.Note, error) {
	var res dto.Note
	err := c.do(ctx, http.MethodGet, notePath(id), nil, nil, &res)
	return res, err
}

func (c *Client) CreateNote(ctx context.Context, cred Credential, input NoteInput) (dto.Note, error) {
	if !cred.Valid() {
		return dto.Note{}, ErrNoCredential
	}
	var res dto.Note
	err := c.do(ctx, http.MethodPost, "/api/notes", &cred, toBody(input), &res)
	return res, err
}

func (c *Client) UpdateNote(ctx context.Context, cred Credential, id string, input NoteInput) (dto.Note, error) {
	if !cred.Valid() {
		return dto.Note{}, ErrNoCredential
	}
	var res dto.Note
	err := c.do(ctx, http.MethodPut, notePath(id), &cred, toBody(input), &res)
	return res, err
}

// ToggleImportance flips the important flag of a note and keeps its content.
func (c *Client) ToggleImportance(ctx context.Context, cred Credential, id string) (dto.Note, error) {
	note, err := c.GetNote(ctx, id)
	if err != nil {
		return dto.Note{}, err
	}
	return c.UpdateNote(ctx, cred, id, NoteInput{
		Content:   note.Content,
		Important: !note.Important,
	})
}

func (c *Client) DeleteNote(ctx context.Context, cred Credential, id string) error {
	if !cred.Valid() {
		return ErrNoCredential
	}
	return c.do(ctx, http.MethodDelete, notePath(id), &cred, nil, nil)
}

func notePath(id string) string {
	return "/api/notes/" + url.PathEscape(id)
}

func toBody(input NoteInput) dto.NoteInput {
	important := input.Important
	return dto.NoteInput{Content: input.Content, Important: &important}
}

func (c *Client) do(ctx context.Context, method, path string, cred *Credential, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cred != nil {
		req.Header.Set("Authorization", "Bearer "+cred.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var payload dto.ErrorResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if len(raw) > 0 && json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
		apiErr.Message = payload.Error
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
