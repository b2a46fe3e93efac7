// Package judge contains the fuzzy judges consulted when an answer does not match locally.
package judge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/aliskhannn/spicy-vs-sweet/internal/apperror"
	"github.com/aliskhannn/spicy-vs-sweet/internal/domain/entities"
)

const (
	DefaultModel   = "gemini-2.5-flash"
	DefaultTimeout = 15 * time.Second
)

var (
	ErrMissingAPIKey = errors.New("gemini API key is required")
	ErrEmptyResponse = errors.New("empty judge response")
)

// contentGenerator is the part of the GenAI client the judge needs.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// GeminiJudge asks a Gemini model whether two answers mean the same thing.
type GeminiJudge struct {
	models  contentGenerator
	model   string
	timeout time.Duration
}

// NewGeminiJudge creates a judge backed by the Gemini API.
func NewGeminiJudge(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiJudge, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newGeminiJudge(client.Models, model, timeout), nil
}

func newGeminiJudge(models contentGenerator, model string, timeout time.Duration) *GeminiJudge {
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &GeminiJudge{
		models:  models,
		model:   model,
		timeout: timeout,
	}
}

// Judge implements service.FuzzyJudge. Errors are tagged with an apperror.Kind.
func (j *GeminiJudge) Judge(ctx context.Context, c entities.AnswerComparison) (entities.JudgeResult, error) {
	const op = "gemini judge"

	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	resp, err := j.models.GenerateContent(ctx, j.model, genai.Text(BuildUserPrompt(c)), j.config())
	if err != nil {
		return entities.JudgeResult{}, apperror.New(classify(err), op, err)
	}

	res, err := decodeResult(resp.Text())
	if err != nil {
		return entities.JudgeResult{}, apperror.New(apperror.KindMalformed, op, err)
	}

	res.MatchedAlternative = knownAlternative(c, res.MatchedAlternative)
	return res, nil
}

func (j *GeminiJudge) config() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemPrompt(), genai.RoleUser),
		Temperature:       genai.Ptr[float32](0),
		ResponseMIMEType:  "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"accepted":            {Type: genai.TypeBoolean},
				"matched_alternative": {Type: genai.TypeString},
			},
			Required: []string{"accepted"},
		},
	}
}

// decodeResult parses the model output. Models sometimes wrap JSON in markdown fences.
func decodeResult(text string) (entities.JudgeResult, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	if text == "" {
		return entities.JudgeResult{}, ErrEmptyResponse
	}

	var raw struct {
		Accepted           *bool  `json:"accepted"`
		MatchedAlternative string `json:"matched_alternative"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return entities.JudgeResult{}, fmt.Errorf("decode judge response: %w", err)
	}
	if raw.Accepted == nil {
		return entities.JudgeResult{}, errors.New("judge response has no \"accepted\" field")
	}

	return entities.JudgeResult{
		Accepted:           *raw.Accepted,
		MatchedAlternative: raw.MatchedAlternative,
	}, nil
}

// knownAlternative drops a matched alternative the judge made up.
func knownAlternative(c entities.AnswerComparison, matched string) string {
	if matched == "" {
		return ""
	}
	if matched == c.CorrectAnswer {
		return matched
	}
	for _, alt := range c.Alternatives {
		if alt == matched {
			return matched
		}
	}
	return ""
}

// classify maps GenAI and transport errors to a kind.
func classify(err error) apperror.Kind {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.Code)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return classifyStatus(apiErrPtr.Code)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.KindTransient
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return apperror.KindTransient
	}

	return apperror.KindUnknown
}

func classifyStatus(code int) apperror.Kind {
	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return apperror.KindPermission
	case code == http.StatusRequestTimeout, code == http.StatusTooManyRequests, code >= 500:
		return apperror.KindTransient
	case code == http.StatusNotFound:
		return apperror.KindNotFound
	case code >= 400:
		return apperror.KindMalformed
	default:
		return apperror.KindUnknown
	}
}
