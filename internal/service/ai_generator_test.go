package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"guidesphere_backend/internal/config"
	"guidesphere_backend/internal/util"
)

func TestParseGeneratedExamValid(t *testing.T) {
	content := "```json\n" + `{
		"questions": [
			{"prompt": "¿Qué es la fotosíntesis?", "options": [
				{"text": "un proceso", "is_correct": true},
				{"text": "un animal", "is_correct": false},
				{"text": "una roca", "is_correct": false},
				{"text": "un planeta", "is_correct": false}
			]}
		]
	}` + "\n```"

	exam, err := parseGeneratedExam(content)
	if err != nil {
		t.Fatalf("parseGeneratedExam: %v", err)
	}
	if len(exam.Questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(exam.Questions))
	}
	if !exam.Questions[0].Options[0].IsCorrect {
		t.Error("lost the is_correct flag")
	}
}

func TestParseGeneratedExamRejectsBadPayloads(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"not json", "lo siento, no puedo ayudar con eso"},
		{"no questions", `{"questions": []}`},
		{"empty prompt", `{"questions":[{"prompt":" ","options":[{"text":"a","is_correct":true},{"text":"b"}]}]}`},
		{"no correct option", `{"questions":[{"prompt":"p","options":[{"text":"a"},{"text":"b"}]}]}`},
		{"two correct options", `{"questions":[{"prompt":"p","options":[{"text":"a","is_correct":true},{"text":"b","is_correct":true}]}]}`},
		{"single option", `{"questions":[{"prompt":"p","options":[{"text":"a","is_correct":true}]}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseGeneratedExam(tc.content); !errors.Is(err, util.ErrExternalService) {
				t.Fatalf("got %v, want ErrExternalService", err)
			}
		})
	}
}

func completionServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestAIGeneratorServerError(t *testing.T) {
	srv := completionServer(t, http.StatusInternalServerError, "")
	defer srv.Close()

	g := NewAIGenerator(config.AIConfig{BaseURL: srv.URL, Model: "test"})
	if _, err := g.Generate(context.Background(), sampleText, 5); !errors.Is(err, util.ErrExternalService) {
		t.Fatalf("got %v, want ErrExternalService", err)
	}
}

func TestAIGeneratorSuccessAndTruncation(t *testing.T) {
	payload := `{"questions":[
		{"prompt":"p1","options":[{"text":"a","is_correct":true},{"text":"b"},{"text":"c"},{"text":"d"}]},
		{"prompt":"p2","options":[{"text":"a","is_correct":true},{"text":"b"},{"text":"c"},{"text":"d"}]},
		{"prompt":"p3","options":[{"text":"a","is_correct":true},{"text":"b"},{"text":"c"},{"text":"d"}]}
	]}`
	srv := completionServer(t, http.StatusOK, payload)
	defer srv.Close()

	g := NewAIGenerator(config.AIConfig{BaseURL: srv.URL, Model: "test"})
	exam, err := g.Generate(context.Background(), sampleText, 2)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(exam.Questions) != 2 {
		t.Fatalf("got %d questions, want truncation to 2", len(exam.Questions))
	}
}

func TestGenerateFallsBackToHeuristic(t *testing.T) {
	srv := completionServer(t, http.StatusBadGateway, "")
	defer srv.Close()

	svc := &GenerationService{
		External:  NewAIGenerator(config.AIConfig{BaseURL: srv.URL, Model: "test"}),
		Heuristic: fixedClockGenerator(),
	}

	result, err := svc.generate(context.Background(), sampleText, 5)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Source != GenerationSourceHeuristic {
		t.Errorf("source = %q, want heuristic", result.Source)
	}
	if result.FallbackReason == "" {
		t.Error("fallback reason missing")
	}
	if len(result.Exam.Questions) == 0 {
		t.Error("fallback produced no questions")
	}
}

func TestGenerateExternalDisabled(t *testing.T) {
	svc := &GenerationService{
		External:  NewAIGenerator(config.AIConfig{}),
		Heuristic: fixedClockGenerator(),
	}

	result, err := svc.generate(context.Background(), sampleText, 5)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Source != GenerationSourceHeuristic {
		t.Errorf("source = %q, want heuristic", result.Source)
	}
	if result.FallbackReason != "" {
		t.Errorf("fallback reason = %q, want empty when external is disabled", result.FallbackReason)
	}
}

func TestGenerateExternalWins(t *testing.T) {
	payload := `{"questions":[{"prompt":"p1","options":[{"text":"a","is_correct":true},{"text":"b"},{"text":"c"},{"text":"d"}]}]}`
	srv := completionServer(t, http.StatusOK, payload)
	defer srv.Close()

	svc := &GenerationService{
		External:  NewAIGenerator(config.AIConfig{BaseURL: srv.URL, Model: "test"}),
		Heuristic: fixedClockGenerator(),
	}

	result, err := svc.generate(context.Background(), sampleText, 5)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Source != GenerationSourceExternal {
		t.Errorf("source = %q, want external", result.Source)
	}
	if result.Exam.Fingerprint == "" {
		t.Error("external exam should still carry a fingerprint")
	}
}
