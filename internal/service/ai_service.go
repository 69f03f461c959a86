package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"collabnote-be/internal/dto"
	"collabnote-be/internal/entity"
	"collabnote-be/internal/pkg/logger"
	"collabnote-be/pkg/llm"

	"github.com/patrickmn/go-cache"
)

const enhancePrompt = `You are an expert text editor and formatter for a block-based rich text editor. Enhance the given text.

CONTENT:
- Fix grammar, spelling and punctuation errors
- Improve clarity, word choice and sentence flow
- Preserve the original tone, voice and meaning

STRUCTURE:
- Turn an obvious title or topic into a markdown heading (#, ## or ###)
- Break long paragraphs into shorter ones separated by blank lines
- Format steps as numbered lists and enumerations as bullet points (-)
- Use **bold** for key terms and *italics* for subtle emphasis
- Keep short content as a single paragraph

Return only the enhanced markdown text.

Text to improve:
%s`

const translatePrompt = `Summarize the following note and write the summary in %s. Return only the translated summary.

Note:
%s`

const askPrompt = `You answer questions about a note. Use only the note content below. If the note does not contain the answer, say so.

Note:
%s

Question:
%s`

type IAIService interface {
	Enhance(ctx context.Context, req *dto.EnhanceTextRequest) (*dto.EnhanceTextResponse, error)
	Translate(ctx context.Context, req *dto.TranslateRequest) (*dto.TranslateResponse, error)
	Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error)
}

type aiService struct {
	provider llm.LLMProvider
	cache    *cache.Cache
	logger   logger.ILogger
}

func NewAIService(provider llm.LLMProvider, cacheTTL time.Duration, log logger.ILogger) IAIService {
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &aiService{
		provider: provider,
		cache:    cache.New(cacheTTL, 10*time.Minute),
		logger:   log,
	}
}

func cacheKey(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (s *aiService) generate(ctx context.Context, op, prompt string, keyParts ...string) (string, error) {
	key := cacheKey(append([]string{op}, keyParts...)...)
	if x, found := s.cache.Get(key); found {
		return x.(string), nil
	}

	if s.provider == nil {
		return "", entity.ErrAIUnavailable
	}
	out, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("AIService", op+" failed", map[string]interface{}{
			"error": err.Error(),
		})
		return "", entity.ErrAIUnavailable
	}

	out = strings.TrimSpace(out)
	s.cache.Set(key, out, cache.DefaultExpiration)
	return out, nil
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s cannot be empty: %w", field, entity.ErrInvalidArgument)
	}
	return nil
}

func (s *aiService) Enhance(ctx context.Context, req *dto.EnhanceTextRequest) (*dto.EnhanceTextResponse, error) {
	if err := requireText("text", req.Text); err != nil {
		return nil, err
	}
	out, err := s.generate(ctx, "Enhance", fmt.Sprintf(enhancePrompt, req.Text), req.Text)
	if err != nil {
		return nil, err
	}
	return &dto.EnhanceTextResponse{EnhancedText: out}, nil
}

func (s *aiService) Translate(ctx context.Context, req *dto.TranslateRequest) (*dto.TranslateResponse, error) {
	if err := requireText("text", req.Text); err != nil {
		return nil, err
	}
	if err := requireText("language", req.Language); err != nil {
		return nil, err
	}
	out, err := s.generate(ctx, "Translate", fmt.Sprintf(translatePrompt, req.Language, req.Text), req.Language, req.Text)
	if err != nil {
		return nil, err
	}
	return &dto.TranslateResponse{Translation: out}, nil
}

func (s *aiService) Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error) {
	if err := requireText("document", req.Document); err != nil {
		return nil, err
	}
	if err := requireText("question", req.Question); err != nil {
		return nil, err
	}
	out, err := s.generate(ctx, "Ask", fmt.Sprintf(askPrompt, req.Document, req.Question), req.Document, req.Question)
	if err != nil {
		return nil, err
	}
	return &dto.AskResponse{Answer: out}, nil
}
