package story

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"text/template"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"typing-tutor/internal/constants"
)

var log = logrus.New()

// SetLogger replaces the package logger.
func SetLogger(l *logrus.Logger) {
	if l != nil {
		log = l
	}
}

// CredentialSource supplies the stored API key when a request carries none.
type CredentialSource interface {
	Load(ctx context.Context) (string, bool)
}

// Config holds the story generator configuration
type Config struct {
	// Model is the chat model name; defaults to constants.DefaultModel
	Model string

	// BaseURL overrides the OpenAI API base URL (e.g. "https://api.openai.com/v1")
	BaseURL string

	// Prompt is the parsed story template; defaults to DefaultPromptTemplate
	Prompt *template.Template

	// Transport carries the upstream requests; defaults to a pooled transport
	Transport http.RoundTripper
}

// Request is one story generation call.
type Request struct {
	// APIKey is used instead of the stored credential when not blank
	APIKey string
	Length Length
}

// Generator turns a length category into a story via the upstream chat API.
// It keeps no per-request state.
type Generator struct {
	credentials CredentialSource
	model       string
	baseURL     string
	prompt      *template.Template
	transport   http.RoundTripper
}

// NewGenerator creates a Generator reading fallback credentials from credentials.
func NewGenerator(credentials CredentialSource, config Config) (*Generator, error) {
	if credentials == nil {
		return nil, errors.New("credential source is required")
	}

	g := &Generator{
		credentials: credentials,
		model:       config.Model,
		baseURL:     strings.TrimRight(config.BaseURL, "/"),
		prompt:      config.Prompt,
		transport:   config.Transport,
	}
	if g.model == "" {
		g.model = constants.DefaultModel
	}
	if g.prompt == nil {
		tmpl, err := ParsePromptTemplate(DefaultPromptTemplate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse default story template: %w", err)
		}
		g.prompt = tmpl
	}
	if g.transport == nil {
		g.transport = cleanhttp.DefaultPooledTransport()
	}
	return g, nil
}

// Model returns the configured chat model.
func (g *Generator) Model() string {
	return g.model
}

// Prompt renders the prompt sent upstream for length.
func (g *Generator) Prompt(length Length) (string, error) {
	return renderPrompt(g.prompt, ParseLength(string(length)))
}

// Generate resolves the credential, sends one completion request and returns
// the trimmed story text. Failures are ErrMissingCredential, *UpstreamError
// or a wrapped unexpected error.
func (g *Generator) Generate(ctx context.Context, req Request) (string, error) {
	apiKey := g.resolveAPIKey(ctx, req.APIKey)
	if apiKey == "" {
		return "", ErrMissingCredential
	}

	length := ParseLength(string(req.Length))
	logger := log.WithFields(logrus.Fields{
		"model":  g.model,
		"length": length,
	})

	prompt, err := g.Prompt(length)
	if err != nil {
		return "", err
	}
	logger.Debugf("Story prompt: %s", prompt)

	capture := &errorCapture{base: g.transport}
	opts := []openai.Option{
		openai.WithModel(g.model),
		openai.WithToken(apiKey),
		openai.WithHTTPClient(newUpstreamClient(capture)),
	}
	if g.baseURL != "" {
		opts = append(opts, openai.WithBaseURL(g.baseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create LLM client: %w", err)
	}

	completion, err := llm.GenerateContent(ctx, []llms.MessageContent{
		{
			Parts: []llms.ContentPart{
				llms.TextContent{
					Text: prompt,
				},
			},
			Role: llms.ChatMessageTypeHuman,
		},
	},
		llms.WithTemperature(constants.StoryTemperature),
		llms.WithMaxTokens(constants.StoryMaxTokens),
		openai.WithLegacyMaxTokensField(),
		llms.WithN(constants.StoryChoices),
	)
	if upstreamErr := capture.upstreamError(); upstreamErr != nil {
		logger.WithFields(logrus.Fields{
			"status_code": upstreamErr.StatusCode,
			"response":    upstreamErr.Body,
		}).Error("Received non-success status from OpenAI")
		return "", upstreamErr
	}
	if err != nil {
		return "", fmt.Errorf("error getting response from LLM: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("LLM returned no choices")
	}

	story := strings.TrimSpace(completion.Choices[0].Content)
	logger.WithField("content_length", len(story)).Info("Generated story")
	return story, nil
}

func (g *Generator) resolveAPIKey(ctx context.Context, inline string) string {
	if key := strings.TrimSpace(inline); key != "" {
		return key
	}
	if stored, ok := g.credentials.Load(ctx); ok {
		return stored
	}
	return ""
}
