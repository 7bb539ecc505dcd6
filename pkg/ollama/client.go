// Package ollama speaks the Ollama HTTP generate API. It knows nothing
// about benchmarking; it issues one synchronous generate call at a time
// and hands back the server's reply.
package ollama

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
)

// DefaultURL is the stock Ollama listen address.
const DefaultURL = "http://localhost:11434"

const generatePath = "/api/generate"

// generateRequest is the body of a non-streaming /api/generate call.
type generateRequest struct {
	Model     string `json:"model"`
	Prompt    string `json:"prompt"`
	Stream    bool   `json:"stream"`
	KeepAlive string `json:"keep_alive,omitempty"`
}

// Reply is the subset of the generate response this suite consumes.
// All durations are nanoseconds, as served by the endpoint.
type Reply struct {
	Response           string `json:"response"`
	Done               bool   `json:"done"`
	DoneReason         string `json:"done_reason"`
	TotalDuration      int64  `json:"total_duration"`
	PromptEvalDuration int64  `json:"prompt_eval_duration"`
	LoadDuration       int64  `json:"load_duration"`
}

// Generator is the endpoint surface the dispatcher depends on.
type Generator interface {
	Generate(model, prompt string) (*Reply, error)
}

// Client is a reusable HTTP client for a single Ollama endpoint.
type Client struct {
	client    fasthttp.Client
	url       string
	keepAlive time.Duration
}

// NewClient creates a Client for the endpoint at url. A positive
// keepAlive asks the server to keep the model loaded that long after
// each call.
func NewClient(url string, keepAlive time.Duration) *Client {
	return &Client{
		client: fasthttp.Client{
			Name: "lmbs_collect",
		},
		url:       url,
		keepAlive: keepAlive,
	}
}

// Generate sends one prompt to one model and blocks until the endpoint
// finishes generating. There is no timeout: a hung endpoint blocks the
// caller indefinitely.
func (c *Client) Generate(model, prompt string) (*Reply, error) {
	body := generateRequest{Model: model, Prompt: prompt}
	if c.keepAlive > 0 {
		body.KeepAlive = fmt.Sprintf("%ds", int(c.keepAlive.Seconds()))
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.Header.SetMethod("POST")
	req.Header.SetContentType("application/json")
	req.SetRequestURI(c.url + generatePath)
	req.SetBody(b)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)
	if err := c.client.Do(req, resp); err != nil {
		return nil, err
	}
	if sc := resp.StatusCode(); sc != fasthttp.StatusOK {
		return nil, fmt.Errorf("generate returned status %d: %s", sc, resp.Body())
	}

	var reply Reply
	if err := json.Unmarshal(resp.Body(), &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
