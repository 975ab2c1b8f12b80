package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/TrustWeave/proofdao/common/util"
	ext "github.com/TrustWeave/proofdao/config"
)

// APIKeyEnv is the single required credential for the inference provider,
// read once at startup.
const APIKeyEnv = "INFERENCE_API_KEY"

const (
	defaultBaseURL        = "https://api.openai.com/v1"
	defaultModel          = "gpt-4o-mini"
	defaultTimeoutSeconds = 60
)

// InferenceError marks transport/provider failures: auth, timeout, rate limit,
// malformed HTTP. These propagate to the caller; they are never absorbed into
// a fallback the way content errors are.
type InferenceError struct {
	Op  string
	Err error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference %s: %s", e.Op, e.Err.Error())
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

func IsInferenceError(err error) bool {
	var ie *InferenceError
	return errors.As(err, &ie)
}

type inferenceClient struct {
	client      *resty.Client
	baseURL     string
	model       string
	apiKey      string
	temperature float64
}

func newInferenceClient() *inferenceClient {
	cfg := ext.ExtConfig.Inference
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeoutSeconds := cfg.TimeoutSeconds
	if timeoutSeconds <= 0 {
		timeoutSeconds = defaultTimeoutSeconds
	}
	return &inferenceClient{
		client:      resty.New().SetTimeout(time.Duration(timeoutSeconds) * time.Second),
		baseURL:     baseURL,
		model:       model,
		apiKey:      os.Getenv(APIKeyEnv),
		temperature: cfg.Temperature,
	}
}

func (ic *inferenceClient) Configured() bool {
	return ic.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

// Complete issues one chat completion and returns the raw response text. The
// response is nominally JSON per the system instructions, but nothing here
// relies on that; interpreting the text is the parser's job.
func (ic *inferenceClient) Complete(ctx context.Context, instructions, prompt string) (string, error) {
	if !ic.Configured() {
		return "", ErrNotConfigured
	}
	var got struct {
		Choices util.DefaultSlice[chatChoice] `json:"choices"`
	}
	var provider struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	resp, err := ic.client.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+ic.apiKey).
		SetBody(map[string]any{
			"model":       ic.model,
			"temperature": ic.temperature,
			"messages": []chatMessage{
				{Role: "system", Content: instructions},
				{Role: "user", Content: prompt},
			},
		}).
		SetResult(&got).
		SetError(&provider).
		Post(ic.baseURL + "/chat/completions")
	if err != nil {
		return "", &InferenceError{Op: "chat", Err: err}
	}
	if resp.IsError() {
		if provider.Error.Message != "" {
			return "", &InferenceError{Op: "chat", Err: fmt.Errorf("provider status %d: %s", resp.StatusCode(), provider.Error.Message)}
		}
		return "", &InferenceError{Op: "chat", Err: fmt.Errorf("provider status %d", resp.StatusCode())}
	}
	content := got.Choices.At(0).Message.Content
	if content == "" {
		return "", &InferenceError{Op: "chat", Err: errors.New("empty completion")}
	}
	return content, nil
}

// Ping checks provider reachability for the health probe.
func (ic *inferenceClient) Ping(ctx context.Context) (time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	started := time.Now()
	resp, err := ic.client.R().SetContext(ctx).
		SetHeader("Authorization", "Bearer "+ic.apiKey).
		Get(ic.baseURL + "/models")
	if err != nil {
		return 0, &InferenceError{Op: "ping", Err: err}
	}
	if resp.IsError() {
		return 0, &InferenceError{Op: "ping", Err: fmt.Errorf("provider status %d", resp.StatusCode())}
	}
	return time.Since(started), nil
}
