package service

import "context"

// GeneratedOption / GeneratedQuestion / GeneratedExam form the canonical
// output schema every question generator produces. Storage and grading only
// ever see this shape; which generator produced it is an implementation
// detail.
type GeneratedOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type GeneratedQuestion struct {
	Prompt  string            `json:"prompt"`
	Options []GeneratedOption `json:"options"`
}

type GeneratedExam struct {
	Fingerprint string              `json:"fingerprint"`
	Questions   []GeneratedQuestion `json:"questions"`
}

// QuestionGenerator turns raw course text into exam questions.
type QuestionGenerator interface {
	Generate(ctx context.Context, text string, count int) (*GeneratedExam, error)
}

const (
	GenerationSourceExternal  = "external"
	GenerationSourceHeuristic = "heuristic"
)

// GenerationResult says which generator actually ran. When the external
// service was tried and failed, Source is heuristic and FallbackReason keeps
// the error text so callers and tests can assert on the path taken.
type GenerationResult struct {
	Exam           *GeneratedExam `json:"exam"`
	Source         string         `json:"source"`
	FallbackReason string         `json:"fallbackReason,omitempty"`
}
