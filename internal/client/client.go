package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Mode selects how a submission is encoded on the wire.
type Mode string

const (
	// ModeMultipart posts multipart form fields "message" and "file".
	ModeMultipart Mode = "multipart"
	// ModeJSON posts {"message": ...} as application/json. Text only.
	ModeJSON Mode = "json"
)

// ParseMode validates a mode name from configuration or flags.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeMultipart, "":
		return ModeMultipart, nil
	case ModeJSON:
		return ModeJSON, nil
	default:
		return "", fmt.Errorf("unknown submission mode %q (want multipart or json)", s)
	}
}

// SupportsFiles reports whether the mode can carry an attachment.
func (m Mode) SupportsFiles() bool {
	return m == ModeMultipart
}

const (
	DefaultCSRFCookie = "csrftoken"
	DefaultCSRFHeader = "X-CSRFToken"
)

// File is an attachment as it goes on the wire.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Request is a single submission. At least one of Text or File is set.
type Request struct {
	Text string
	File *File
}

// Reply is the decoded JSON body returned by the endpoint.
type Reply struct {
	BotResponse string `json:"bot_response"`
	Error       string `json:"error"`
	Timestamp   string `json:"timestamp,omitempty"`
}

// Options configures a Client.
type Options struct {
	Endpoint   string
	Mode       Mode
	CSRFCookie string
	CSRFHeader string
	// Cookies are seeded into the jar for the endpoint before the first request.
	Cookies map[string]string
	// Timeout of zero keeps the transport default.
	Timeout    time.Duration
	HTTPClient *http.Client
	Tokens     TokenSource
}

// Client submits chat input to a single endpoint.
type Client struct {
	endpoint   *url.URL
	mode       Mode
	csrfHeader string
	httpClient *http.Client
	tokens     TokenSource
}

// New creates a client for the configured endpoint.
func New(opts Options) (*Client, error) {
	endpoint, err := url.Parse(opts.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", opts.Endpoint, err)
	}
	if endpoint.Scheme != "http" && endpoint.Scheme != "https" {
		return nil, fmt.Errorf("invalid endpoint %q: scheme must be http or https", opts.Endpoint)
	}
	if endpoint.Path == "" {
		endpoint.Path = "/"
	}

	mode := opts.Mode
	if mode == "" {
		mode = ModeMultipart
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	if httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		httpClient.Jar = jar
	}

	if len(opts.Cookies) > 0 {
		seeded := make([]*http.Cookie, 0, len(opts.Cookies))
		for name, value := range opts.Cookies {
			seeded = append(seeded, &http.Cookie{Name: name, Value: value, Path: "/"})
		}
		httpClient.Jar.SetCookies(endpoint, seeded)
	}

	csrfHeader := opts.CSRFHeader
	if csrfHeader == "" {
		csrfHeader = DefaultCSRFHeader
	}

	tokens := opts.Tokens
	if tokens == nil {
		cookieName := opts.CSRFCookie
		if cookieName == "" {
			cookieName = DefaultCSRFCookie
		}
		tokens = &JarTokenSource{Jar: httpClient.Jar, URL: endpoint, Name: cookieName}
	}

	return &Client{
		endpoint:   endpoint,
		mode:       mode,
		csrfHeader: csrfHeader,
		httpClient: httpClient,
		tokens:     tokens,
	}, nil
}

// Endpoint returns the absolute submission URL.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// Mode returns the wire encoding in use.
func (c *Client) Mode() Mode {
	return c.mode
}

// Prime issues a GET to the endpoint so the server can set its anti-forgery
// cookie in the jar, the way loading the chat page does in a browser.
func (c *Client) Prime(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create prime request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("prime request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	log.Debug("Primed endpoint", "url", c.endpoint.String(), "status", resp.StatusCode)
	return nil
}

// Submit posts the request and decodes the reply. Transport failures, non-2xx
// statuses and malformed bodies are returned as errors.
func (c *Client) Submit(ctx context.Context, r Request) (Reply, error) {
	if r.File != nil && !c.mode.SupportsFiles() {
		return Reply{}, fmt.Errorf("%s mode cannot carry file %q", c.mode, r.File.Name)
	}

	body, contentType, err := c.encode(r)
	if err != nil {
		return Reply{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), body)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if token, ok := c.tokens.Token(); ok {
		req.Header.Set(c.csrfHeader, token)
	} else {
		log.Debug("No anti-forgery token available", "header", c.csrfHeader)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Reply{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to read response: %w", err)
	}

	log.Debug("Submission finished",
		"url", c.endpoint.String(),
		"mode", c.mode,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Reply{}, &StatusError{Code: resp.StatusCode, Body: string(raw)}
	}

	return decodeReply(raw)
}

func (c *Client) encode(r Request) (io.Reader, string, error) {
	switch c.mode {
	case ModeJSON:
		payload, err := json.Marshal(map[string]string{"message": r.Text})
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode message: %w", err)
		}
		return bytes.NewReader(payload), "application/json", nil

	default:
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		if r.Text != "" {
			if err := w.WriteField("message", r.Text); err != nil {
				return nil, "", fmt.Errorf("failed to write message field: %w", err)
			}
		}
		if r.File != nil {
			if err := writeFilePart(w, r.File); err != nil {
				return nil, "", err
			}
		}
		if err := w.Close(); err != nil {
			return nil, "", fmt.Errorf("failed to finish multipart body: %w", err)
		}
		return &buf, w.FormDataContentType(), nil
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeFilePart(w *multipart.Writer, f *File) error {
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(f.Name)))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(f.Data); err != nil {
		return fmt.Errorf("failed to write file part: %w", err)
	}
	return nil
}

// decodeReply accepts any JSON value. Only objects carry a reply; fields of
// other types are read loosely and falsy values count as absent.
func decodeReply(raw []byte) (Reply, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Reply{}, nil
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return Reply{}, &DecodeError{Body: string(raw), Err: err}
	}

	fields, ok := value.(map[string]any)
	if !ok {
		return Reply{}, nil
	}
	return Reply{
		BotResponse: looseString(fields["bot_response"]),
		Error:       looseString(fields["error"]),
		Timestamp:   looseString(fields["timestamp"]),
	}, nil
}

func looseString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return ""
	case float64:
		if v == 0 {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}
