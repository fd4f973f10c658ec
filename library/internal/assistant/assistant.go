package assistant

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/Astemirdum/lumina-library/library/internal/errs"
	"github.com/Astemirdum/lumina-library/library/internal/model"
	"github.com/Astemirdum/lumina-library/library/internal/query"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

const (
	Greeting = "Hello! I'm Lumina, your AI Librarian. I can help you find books in our collection " +
		"or suggest new additions based on your interests. What's on your mind?"
	EmptyReply   = "I'm sorry, I couldn't process that request."
	FailureReply = "I encountered an error while connecting to the neural library. Please try again."
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Catalog interface {
	ListBooks(ctx context.Context, f query.Filter) ([]model.Book, error)
}

// Assistant is the chat session with the AI librarian. One question is in flight at a time.
type Assistant struct {
	gateway Gateway
	catalog Catalog
	log     *zap.Logger

	busy    atomic.Bool
	mu      sync.RWMutex
	history []model.Message
}

func New(gateway Gateway, catalog Catalog, log *zap.Logger) *Assistant {
	return &Assistant{
		gateway: gateway,
		catalog: catalog,
		log:     log.Named("assistant"),
		history: []model.Message{{Role: model.RoleAssistant, Text: Greeting}},
	}
}

// History returns the conversation so far, oldest first.
func (a *Assistant) History() []model.Message {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]model.Message(nil), a.history...)
}

// Ask sends a reader question and returns the assistant reply. Blank text is ignored
// (ok is false). While another question is pending Ask fails with ErrAssistantBusy.
func (a *Assistant) Ask(ctx context.Context, text string) (reply model.Message, ok bool, err error) {
	if strings.TrimSpace(text) == "" {
		return model.Message{}, false, nil
	}
	if !a.busy.CompareAndSwap(false, true) {
		return model.Message{}, false, errs.ErrAssistantBusy
	}
	defer a.busy.Store(false)

	a.append(model.Message{Role: model.RoleUser, Text: text})

	reply = model.Message{Role: model.RoleAssistant, Text: a.recommend(ctx, text)}
	a.append(reply)
	return reply, true, nil
}

func (a *Assistant) recommend(ctx context.Context, text string) string {
	books, err := a.catalog.ListBooks(ctx, query.Filter{})
	if err != nil {
		a.log.Error("ListBooks", zap.Error(err))
		return FailureReply
	}
	answer, err := a.gateway.Recommend(ctx, text, CatalogSummary(books))
	if err != nil {
		a.log.Warn("Recommend", zap.Error(err))
		return FailureReply
	}
	if strings.TrimSpace(answer) == "" {
		return EmptyReply
	}
	return answer
}

func (a *Assistant) append(m model.Message) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history = append(a.history, m)
}

// Reset drops the conversation back to the greeting.
func (a *Assistant) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history = []model.Message{{Role: model.RoleAssistant, Text: Greeting}}
}

// Analyze never fails: gateway errors and malformed answers give the empty Analysis.
func (a *Assistant) Analyze(ctx context.Context, description string) model.Analysis {
	raw, err := a.gateway.Analyze(ctx, description)
	if err != nil {
		a.log.Warn("Analyze", zap.Error(err))
		return model.Analysis{}
	}
	return ParseAnalysis(raw)
}

// ParseAnalysis decodes a JSON analysis, yielding the empty Analysis on malformed input.
func ParseAnalysis(raw string) model.Analysis {
	var an model.Analysis
	if err := json.UnmarshalFromString(raw, &an); err != nil {
		return model.Analysis{}
	}
	return an
}

// CatalogSummary flattens the catalog into "title by author (category)" entries.
func CatalogSummary(books []model.Book) string {
	parts := make([]string, 0, len(books))
	for _, b := range books {
		parts = append(parts, b.Title+" by "+b.Author+" ("+b.Category+")")
	}
	return strings.Join(parts, ", ")
}
