package validate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spetersoncode/a2actl/a2a"
)

// Method names an authentication placement under trial.
type Method string

const (
	// MethodTokenURL embeds the token in the URL path (/a2a/t-{token}).
	MethodTokenURL Method = "Token URL"
	// MethodBearer sends the token as a Bearer authorization header.
	MethodBearer Method = "Bearer"
	// MethodAPIKeyHeader sends the token in a custom X-API-KEY header.
	MethodAPIKeyHeader Method = "X-API-KEY"
	// MethodQueryParam sends the token as an api_key query parameter.
	MethodQueryParam Method = "Query param"
)

// Methods is the fixed trial order of the four placements.
var Methods = []Method{MethodTokenURL, MethodBearer, MethodAPIKeyHeader, MethodQueryParam}

// Result is the outcome of a single probe. Exactly one of three shapes:
// success (OK with Card set), rejected (StatusCode set from the server's
// non-200 reply), or errored (Err set from a network or parse failure).
type Result struct {
	Method     Method
	OK         bool
	Card       *a2a.AgentCard
	StatusCode int
	Err        error
}

// Detail returns the human-readable failure detail for a non-OK result.
func (r Result) Detail() string {
	if r.OK {
		return ""
	}
	if r.StatusCode != 0 {
		return fmt.Sprintf("HTTP %d", r.StatusCode)
	}
	if r.Err != nil {
		return r.Err.Error()
	}
	return "not attempted"
}

// Validator runs authentication probes against one endpoint.
type Validator struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithHTTPClient sets a custom HTTP client for the probes.
func WithHTTPClient(c *http.Client) Option {
	return func(v *Validator) {
		v.httpClient = c
	}
}

// WithProbeTimeout sets the per-probe timeout.
func WithProbeTimeout(d time.Duration) Option {
	return func(v *Validator) {
		v.httpClient.Timeout = d
	}
}

// WithLogger sets a logger for debug-level probe diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(v *Validator) {
		v.logger = l
	}
}

// New creates a Validator for the given base URL and token.
func New(baseURL, token string, opts ...Option) *Validator {
	v := &Validator{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Run executes the four probes in order and returns their results. With no
// token there is nothing to try: Run returns nil and the caller treats the
// endpoint as unvalidated.
func (v *Validator) Run(ctx context.Context) []Result {
	if v.token == "" {
		return nil
	}

	results := make([]Result, 0, len(Methods))
	for _, m := range Methods {
		results = append(results, v.probe(ctx, m))
	}
	return results
}

func (v *Validator) probe(ctx context.Context, m Method) Result {
	cardURL, headers := v.request(m)

	v.logger.Debug("probing", zap.String("method", string(m)), zap.String("url", cardURL))

	card, err := a2a.FetchAgentCard(ctx, v.httpClient, cardURL, headers)
	if err != nil {
		var httpErr *a2a.HTTPError
		if errors.As(err, &httpErr) {
			return Result{Method: m, StatusCode: httpErr.StatusCode}
		}
		return Result{Method: m, Err: err}
	}
	return Result{Method: m, OK: true, Card: card}
}

// request builds the card URL and headers for one placement.
func (v *Validator) request(m Method) (string, map[string]string) {
	wellKnown := "/.well-known/agent.json"
	switch m {
	case MethodTokenURL:
		return fmt.Sprintf("%s/a2a/t-%s%s", v.baseURL, v.token, wellKnown), nil
	case MethodBearer:
		return v.baseURL + "/a2a" + wellKnown, map[string]string{"Authorization": "Bearer " + v.token}
	case MethodAPIKeyHeader:
		return v.baseURL + "/a2a" + wellKnown, map[string]string{"X-API-KEY": v.token}
	case MethodQueryParam:
		return v.baseURL + "/a2a" + wellKnown + "?api_key=" + url.QueryEscape(v.token), nil
	default:
		return v.baseURL + "/a2a" + wellKnown, nil
	}
}

// Summary counts the passing probes out of those attempted.
func Summary(results []Result) (passed, attempted int) {
	for _, r := range results {
		attempted++
		if r.OK {
			passed++
		}
	}
	return passed, attempted
}

// DetectToken extracts a path-embedded token from a URL of the form
// {base}/a2a/t-{token}. It returns the token and the base URL with the
// token segment stripped. Used as a convenience default when no explicit
// token is supplied.
func DetectToken(rawURL string) (token, base string, ok bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", rawURL, false
	}
	const prefix = "/a2a/t-"
	if !strings.HasPrefix(u.Path, prefix) {
		return "", rawURL, false
	}
	token = strings.TrimRight(strings.TrimPrefix(u.Path, prefix), "/")
	if token == "" || strings.Contains(token, "/") {
		return "", rawURL, false
	}
	u.Path = ""
	u.RawQuery = ""
	return token, strings.TrimRight(u.String(), "/"), true
}
