package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"guidesphere_backend/internal/config"
	"guidesphere_backend/internal/util"
)

// AIGenerator asks an OpenAI-compatible chat completion endpoint to write
// the exam. Any transport, status or schema problem comes back wrapped in
// util.ErrExternalService so the caller can fall back to the heuristic
// generator without inspecting the cause.
type AIGenerator struct {
	config config.AIConfig
	client *http.Client
}

func NewAIGenerator(cfg config.AIConfig) *AIGenerator {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &AIGenerator{
		config: cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether the generator is configured at all. Without a
// base URL there is nothing to call and the fallback runs directly.
func (g *AIGenerator) Enabled() bool {
	return g.config.BaseURL != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

const examSystemPrompt = "Eres un generador de exámenes. A partir del texto del curso que te " +
	"entrega el usuario, redacta preguntas de opción múltiple en español. " +
	"Responde ÚNICAMENTE con un objeto JSON con la forma " +
	`{"questions":[{"prompt":"...","options":[{"text":"...","is_correct":true}]}]}` +
	". Cada pregunta lleva exactamente cuatro opciones y exactamente una opción correcta. " +
	"No añadas texto fuera del JSON."

func (g *AIGenerator) Generate(ctx context.Context, text string, count int) (*GeneratedExam, error) {
	reqBody := map[string]interface{}{
		"model": g.config.Model,
		"messages": []chatMessage{
			{Role: "system", Content: examSystemPrompt},
			{Role: "user", Content: fmt.Sprintf("Genera %d preguntas sobre el siguiente texto:\n\n%s", count, text)},
		},
		"temperature": 0.2,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", util.ErrExternalService, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrExternalService, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.config.APIKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status %d: %s", util.ErrExternalService, resp.StatusCode, string(body))
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", util.ErrExternalService, err)
	}
	if completion.Error != nil {
		return nil, fmt.Errorf("%w: %s", util.ErrExternalService, completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", util.ErrExternalService)
	}

	exam, err := parseGeneratedExam(completion.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	if len(exam.Questions) > count {
		exam.Questions = exam.Questions[:count]
	}
	return exam, nil
}

// parseGeneratedExam validates the model output against the canonical
// schema. Models love to wrap JSON in markdown fences, so those are
// stripped before decoding.
func parseGeneratedExam(content string) (*GeneratedExam, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var exam GeneratedExam
	if err := json.Unmarshal([]byte(content), &exam); err != nil {
		return nil, fmt.Errorf("%w: malformed exam JSON: %v", util.ErrExternalService, err)
	}
	if len(exam.Questions) == 0 {
		return nil, fmt.Errorf("%w: completion contained no questions", util.ErrExternalService)
	}
	for i, q := range exam.Questions {
		if strings.TrimSpace(q.Prompt) == "" {
			return nil, fmt.Errorf("%w: question %d has an empty prompt", util.ErrExternalService, i+1)
		}
		if len(q.Options) < 2 {
			return nil, fmt.Errorf("%w: question %d has %d options", util.ErrExternalService, i+1, len(q.Options))
		}
		correct := 0
		for _, o := range q.Options {
			if o.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return nil, fmt.Errorf("%w: question %d marks %d options correct", util.ErrExternalService, i+1, correct)
		}
	}
	return &exam, nil
}
