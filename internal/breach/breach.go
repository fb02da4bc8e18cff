// Package breach checks passwords against the Have I Been Pwned range
// API using the k-anonymity model: only the first five characters of the
// SHA-1 hash ever leave the process.
package breach

import (
	"bufio"
	"context"
	"crypto/sha1"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.pwnedpasswords.com/range/"
	defaultTimeout = 5 * time.Second
	userAgent      = "phantom-credential-checker"
)

// Result is the outcome of a single lookup. Failures degrade to a valid
// not-breached result with Err set; they never propagate as errors so a
// failed lookup cannot invalidate the surrounding trace.
type Result struct {
	IsBreached  bool   `json:"is_breached"`
	BreachCount int    `json:"breach_count"`
	Err         string `json:"error,omitempty"`
}

// Analysis extends a lookup with a risk classification.
type Analysis struct {
	PasswordLength int    `json:"password_length"`
	IsBreached     bool   `json:"is_breached"`
	BreachCount    int    `json:"breach_count"`
	Err            string `json:"error,omitempty"`
	RiskLevel      string `json:"risk_level"`
	Recommendation string `json:"recommendation"`
}

// Client queries the range API. The base URL is injectable for tests.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	if !strings.HasSuffix(c.baseURL, "/") {
		c.baseURL += "/"
	}
	return c
}

// Check looks up a plaintext password. Only a 5-character hash prefix is
// sent; the full hash suffix is compared locally against the response.
func (c *Client) Check(ctx context.Context, password string) Result {
	sum := sha1.Sum([]byte(password))
	hash := strings.ToUpper(fmt.Sprintf("%x", sum))
	prefix, suffix := hash[:5], hash[5:]

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+prefix, nil)
	if err != nil {
		return Result{Err: fmt.Sprintf("request error: %v", err)}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{Err: fmt.Sprintf("network error: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{Err: fmt.Sprintf("API error: %d", resp.StatusCode)}
	}

	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		rest, ok := strings.CutPrefix(line, suffix+":")
		if !ok {
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			continue
		}
		return Result{IsBreached: true, BreachCount: count}
	}
	if err := sc.Err(); err != nil {
		return Result{Err: fmt.Sprintf("read error: %v", err)}
	}
	return Result{}
}

// Analyze checks a password and classifies the risk.
func (c *Client) Analyze(ctx context.Context, password string) Analysis {
	res := c.Check(ctx, password)
	a := Analysis{
		PasswordLength: len(password),
		IsBreached:     res.IsBreached,
		BreachCount:    res.BreachCount,
		Err:            res.Err,
	}
	switch {
	case res.IsBreached && res.BreachCount > 100000:
		a.RiskLevel = "CRITICAL"
		a.Recommendation = "This password has been seen in over 100k breaches. Change immediately!"
	case res.IsBreached && res.BreachCount > 10000:
		a.RiskLevel = "HIGH"
		a.Recommendation = "This password has been breached many times. Change it soon."
	case res.IsBreached:
		a.RiskLevel = "MEDIUM"
		a.Recommendation = "This password has been found in breaches. Consider changing it."
	default:
		a.RiskLevel = "LOW"
		a.Recommendation = "No breaches found for this password."
	}
	return a
}

// BatchResult pairs a masked password with its lookup result.
type BatchResult struct {
	PasswordMasked string `json:"password"`
	IsBreached     bool   `json:"is_breached"`
	BreachCount    int    `json:"breach_count"`
	Err            string `json:"error,omitempty"`
}

// BatchCheck looks up several passwords sequentially, masking each one
// in the returned results.
func (c *Client) BatchCheck(ctx context.Context, passwords []string) []BatchResult {
	out := make([]BatchResult, 0, len(passwords))
	for _, pwd := range passwords {
		res := c.Check(ctx, pwd)
		out = append(out, BatchResult{
			PasswordMasked: MaskPassword(pwd, 3),
			IsBreached:     res.IsBreached,
			BreachCount:    res.BreachCount,
			Err:            res.Err,
		})
	}
	return out
}

// MaskPassword keeps the first visible characters and masks the rest.
func MaskPassword(pwd string, visible int) string {
	if len(pwd) <= visible {
		return strings.Repeat("*", len(pwd))
	}
	return pwd[:visible] + strings.Repeat("*", len(pwd)-visible)
}
