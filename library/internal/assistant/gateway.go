package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/Astemirdum/lumina-library/library/internal/errs"
	"github.com/Astemirdum/lumina-library/pkg/circuit_breaker"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type Config struct {
	APIKey      string        `envconfig:"GEMINI_API_KEY"`
	Model       string        `envconfig:"ASSISTANT_MODEL" default:"gemini-3-flash-preview"`
	Temperature float32       `envconfig:"ASSISTANT_TEMPERATURE" default:"0.7"`
	Timeout     time.Duration `envconfig:"ASSISTANT_TIMEOUT" default:"30s"`
}

func (c Config) Enabled() bool {
	return c.APIKey != ""
}

// Gateway is the external language model behind the assistant.
type Gateway interface {
	// Recommend answers a free-text reader question given the flattened catalog.
	Recommend(ctx context.Context, query, catalog string) (string, error)
	// Analyze returns the raw JSON analysis of a book description.
	Analyze(ctx context.Context, description string) (string, error)
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type genAIGateway struct {
	models contentGenerator
	cfg    Config
	cb     circuit_breaker.CircuitBreaker
	log    *zap.Logger
}

func NewGenAIGateway(ctx context.Context, cfg Config, log *zap.Logger) (*genAIGateway, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "genai.NewClient")
	}
	return newGateway(client.Models, cfg, log), nil
}

func newGateway(models contentGenerator, cfg Config, log *zap.Logger) *genAIGateway {
	return &genAIGateway{
		models: models,
		cfg:    cfg,
		cb:     circuit_breaker.New(20, 30*time.Second, 0.5, 2),
		log:    log.Named("gateway"),
	}
}

func recommendPrompt(query, catalog string) string {
	return fmt.Sprintf("User asks: \"%s\". \n\nOur current library catalog: %s. \n\n"+
		"Act as a helpful librarian. Suggest 1-2 books from our catalog if relevant, "+
		"or suggest a new book we should buy for our collection if nothing matches. "+
		"Keep it friendly and concise.", query, catalog)
}

func analyzePrompt(description string) string {
	return fmt.Sprintf("Analyze this book description: \"%s\"", description)
}

var analysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"genre":        {Type: genai.TypeString},
		"summary":      {Type: genai.TypeString},
		"readingLevel": {Type: genai.TypeString},
		"potentialThemes": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{"genre", "summary", "readingLevel", "potentialThemes"},
}

func (g *genAIGateway) Recommend(ctx context.Context, query, catalog string) (string, error) {
	return g.generate(ctx, recommendPrompt(query, catalog), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.cfg.Temperature),
	})
}

func (g *genAIGateway) Analyze(ctx context.Context, description string) (string, error) {
	return g.generate(ctx, analyzePrompt(description), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   analysisSchema,
	})
}

func (g *genAIGateway) generate(ctx context.Context, prompt string, gc *genai.GenerateContentConfig) (string, error) {
	var text string
	err := g.cb.Call(ctx, func(ctx context.Context) error {
		if g.cfg.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
			defer cancel()
		}
		resp, err := g.models.GenerateContent(ctx, g.cfg.Model, genai.Text(prompt), gc)
		if err != nil {
			return err
		}
		text = resp.Text()
		return nil
	})
	if err != nil {
		g.log.Warn("GenerateContent", zap.String("model", g.cfg.Model), zap.Error(err))
		return "", errors.Wrap(errs.ErrGateway, err.Error())
	}
	return text, nil
}

type disabledGateway struct{}

// NewDisabledGateway is used when no API key is configured; every call fails with ErrGateway.
func NewDisabledGateway() Gateway {
	return disabledGateway{}
}

func (disabledGateway) Recommend(context.Context, string, string) (string, error) {
	return "", errors.Wrap(errs.ErrGateway, "no api key configured")
}

func (disabledGateway) Analyze(context.Context, string) (string, error) {
	return "", errors.Wrap(errs.ErrGateway, "no api key configured")
}
