package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"missionboard/internal/config"
	"missionboard/internal/passport"
)

const (
	loginPath   = "/api/authentication/login"
	profilePath = "/api/brawler/profile"
	avatarPath  = "/api/brawler/avatar"

	maxBodyBytes = 10 << 20
)

var jsonAPI = sonic.Config{
	UseNumber:        true,
	EscapeHTML:       false,
	SortMapKeys:      false,
	CompactMarshaler: true,
}.Froze()

var _ passport.Backend = (*Client)(nil)

// Observer is told about every finished request. status is 0 when the
// request never got a response.
type Observer interface {
	ObserveRequest(endpoint string, status int, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveRequest(string, int, time.Duration) {}

type Options struct {
	BaseURL        string
	RegisterPath   string
	AvatarEncoding string
	HTTPClient     *http.Client
	Logger         zerolog.Logger
	Observer       Observer
}

// Client talks to the account REST API. It sets no timeout of its own; the
// caller's context and the transport defaults apply.
type Client struct {
	baseURL       string
	registerPath  string
	base64Avatars bool
	http          *http.Client
	log           zerolog.Logger
	obs           Observer
}

func New(opts Options) *Client {
	c := &Client{
		baseURL:       opts.BaseURL,
		registerPath:  opts.RegisterPath,
		base64Avatars: opts.AvatarEncoding == config.AvatarBase64,
		http:          opts.HTTPClient,
		log:           opts.Logger.With().Str("component", "backend").Logger(),
		obs:           opts.Observer,
	}
	if c.registerPath == "" {
		c.registerPath = "/api/authentication/register"
	}
	if c.http == nil {
		c.http = http.DefaultClient
	}
	if c.obs == nil {
		c.obs = nopObserver{}
	}
	return c
}

func (c *Client) Login(ctx context.Context, cr passport.Credentials) (passport.Record, error) {
	var rec passport.Record
	err := c.postJSON(ctx, loginPath, "", cr, &rec)
	return rec, err
}

func (c *Client) Register(ctx context.Context, r passport.Registration) (passport.Record, error) {
	var rec passport.Record
	err := c.postJSON(ctx, c.registerPath, "", r, &rec)
	return rec, err
}

type profileRequest struct {
	DisplayName string `json:"display_name"`
}

func (c *Client) UpdateProfile(ctx context.Context, token, displayName string) error {
	return c.postJSON(ctx, profilePath, token, profileRequest{DisplayName: displayName}, nil)
}

type avatarRequest struct {
	Base64String string `json:"base64_string"`
}

type avatarResponse struct {
	URL       string `json:"url"`
	AvatarURL string `json:"avatar_url"`
	PublicID  string `json:"public_id"`
}

// UploadAvatar sends the image as a multipart "avatar" field, or as a JSON
// data URL when the client is configured for base64.
func (c *Client) UploadAvatar(ctx context.Context, token string, a passport.Avatar) (string, error) {
	var out avatarResponse
	var err error
	if c.base64Avatars {
		err = c.postJSON(ctx, avatarPath, token, avatarRequest{Base64String: a.DataURL()}, &out)
	} else {
		err = c.postMultipart(ctx, token, a, &out)
	}
	if err != nil {
		return "", err
	}
	if out.URL != "" {
		return out.URL, nil
	}
	return out.AvatarURL, nil
}

func (c *Client) postJSON(ctx context.Context, endpoint, token string, in, out any) error {
	body, err := jsonAPI.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", endpoint, err)
	}
	return c.post(ctx, endpoint, token, "application/json", bytes.NewReader(body), out)
}

func (c *Client) postMultipart(ctx context.Context, token string, a passport.Avatar, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="avatar"; filename=%q`, a.Name))
	h.Set("Content-Type", a.MIME())
	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("build avatar form: %w", err)
	}
	if _, err := part.Write(a.Data); err != nil {
		return fmt.Errorf("build avatar form: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("build avatar form: %w", err)
	}
	return c.post(ctx, avatarPath, token, w.FormDataContentType(), &buf, out)
}

func (c *Client) post(ctx context.Context, endpoint, token, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("create %s request: %w", endpoint, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.obs.ObserveRequest(endpoint, 0, time.Since(start))
		c.log.Warn().Err(err).Str("endpoint", endpoint).Str("request_id", reqID).Msg("request failed")
		return fmt.Errorf("POST %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	elapsed := time.Since(start)
	c.obs.ObserveRequest(endpoint, resp.StatusCode, elapsed)
	c.log.Debug().
		Str("endpoint", endpoint).
		Str("request_id", reqID).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("request done")
	if err != nil {
		return fmt.Errorf("read %s response: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := jsonAPI.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}
