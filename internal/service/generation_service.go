package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"guidesphere_backend/internal/model"
	"guidesphere_backend/internal/repository"
	"guidesphere_backend/internal/util"
	"guidesphere_backend/pkg/logger"
	"guidesphere_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// Minimum usable source text, in runes. Transcripts tolerate more noise
	// so their floor is higher.
	minDocumentTextLen   = 50
	minTranscriptTextLen = 80

	defaultGeneratedCount = 5
)

// GenerationService runs the whole pipeline from stored course material to a
// saved quiz: fetch, extract text, generate questions (external service
// first, deterministic heuristics as fallback), persist.
type GenerationService struct {
	External    *AIGenerator
	Heuristic   *HeuristicGenerator
	QuizSvc     *QuizService
	ContentRepo *repository.ContentRepository
	Storage     StorageProvider
	Transcriber *Transcriber
}

func NewGenerationService(external *AIGenerator, heuristic *HeuristicGenerator, quizSvc *QuizService, contentRepo *repository.ContentRepository, storage StorageProvider, transcriber *Transcriber) *GenerationService {
	return &GenerationService{
		External:    external,
		Heuristic:   heuristic,
		QuizSvc:     quizSvc,
		ContentRepo: contentRepo,
		Storage:     storage,
		Transcriber: transcriber,
	}
}

// GeneratedQuizView is what the generation endpoints return: the saved quiz
// plus which generator produced it.
type GeneratedQuizView struct {
	Quiz           *QuizView `json:"quiz"`
	Source         string    `json:"source"`
	FallbackReason string    `json:"fallbackReason,omitempty"`
}

// generate tries the external generator and falls back to the heuristic one
// on any failure. The fallback is silent towards the caller of the endpoint;
// the result records which path ran.
func (s *GenerationService) generate(ctx context.Context, text string, count int) (*GenerationResult, error) {
	if s.External != nil && s.External.Enabled() {
		exam, err := s.External.Generate(ctx, text, count)
		if err == nil {
			exam.Fingerprint = s.Heuristic.Fingerprint(text)
			monitoring.QuizGenerationTotal.WithLabelValues(GenerationSourceExternal).Inc()
			return &GenerationResult{Exam: exam, Source: GenerationSourceExternal}, nil
		}
		logger.Log.Warn("external generation failed, using heuristic fallback", zap.Error(err))
		exam, herr := s.Heuristic.Generate(ctx, text, count)
		if herr != nil {
			return nil, herr
		}
		monitoring.QuizGenerationTotal.WithLabelValues(GenerationSourceHeuristic).Inc()
		return &GenerationResult{
			Exam:           exam,
			Source:         GenerationSourceHeuristic,
			FallbackReason: err.Error(),
		}, nil
	}

	exam, err := s.Heuristic.Generate(ctx, text, count)
	if err != nil {
		return nil, err
	}
	monitoring.QuizGenerationTotal.WithLabelValues(GenerationSourceHeuristic).Inc()
	return &GenerationResult{Exam: exam, Source: GenerationSourceHeuristic}, nil
}

// CreateFromDocument builds and saves the quiz for a content item out of an
// uploaded document.
func (s *GenerationService) CreateFromDocument(ctx context.Context, docID, contentID string, count int) (*GeneratedQuizView, error) {
	if count <= 0 {
		count = defaultGeneratedCount
	}
	asset, err := s.findDocumentAsset(docID)
	if err != nil {
		return nil, err
	}

	file, err := s.Storage.Fetch(ctx, asset.URI)
	if err != nil {
		return nil, fmt.Errorf("%w: document %s", util.ErrContentNotFound, docID)
	}
	defer file.Close()

	text, err := ExtractDocumentText(asset.URI, file)
	if err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minDocumentTextLen {
		return nil, fmt.Errorf("%w: document %s yields %d characters, need %d",
			util.ErrInputTooShort, docID, utf8.RuneCountInString(strings.TrimSpace(text)), minDocumentTextLen)
	}

	if contentID == "" {
		contentID = asset.ContentID
	}
	return s.generateAndSave(ctx, contentID, text, count)
}

// CreateFromVideo builds and saves the quiz for a video content item from
// its transcript.
func (s *GenerationService) CreateFromVideo(ctx context.Context, contentID string, count int) (*GeneratedQuizView, error) {
	if count <= 0 {
		count = defaultGeneratedCount
	}
	content, err := s.ContentRepo.FindContentByID(contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: content %s", util.ErrContentNotFound, contentID)
		}
		return nil, err
	}
	if content.Type != model.ContentTypeVideo {
		return nil, fmt.Errorf("%w: content %s is not a video", util.ErrContentNotFound, contentID)
	}
	asset, err := s.ContentRepo.FindMediaAsset(contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no media for content %s", util.ErrContentNotFound, contentID)
		}
		return nil, err
	}

	transcript, err := s.Transcriber.TranscriptForMedia(ctx, asset.URI)
	if err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(strings.TrimSpace(transcript)) < minTranscriptTextLen {
		return nil, fmt.Errorf("%w: transcript of content %s yields %d characters, need %d",
			util.ErrInputTooShort, contentID, utf8.RuneCountInString(strings.TrimSpace(transcript)), minTranscriptTextLen)
	}

	return s.generateAndSave(ctx, contentID, transcript, count)
}

func (s *GenerationService) generateAndSave(ctx context.Context, contentID, text string, count int) (*GeneratedQuizView, error) {
	result, err := s.generate(ctx, text, count)
	if err != nil {
		return nil, err
	}
	if _, err := s.QuizSvc.SaveGeneratedQuiz(contentID, result.Exam); err != nil {
		return nil, err
	}
	view, err := s.QuizSvc.GetQuizByContent(contentID)
	if err != nil {
		return nil, err
	}
	return &GeneratedQuizView{
		Quiz:           view,
		Source:         result.Source,
		FallbackReason: result.FallbackReason,
	}, nil
}

func (s *GenerationService) findDocumentAsset(docID string) (*model.DocumentAsset, error) {
	asset, err := s.ContentRepo.FindDocumentAssetByID(docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: document %s", util.ErrContentNotFound, docID)
		}
		return nil, err
	}
	return asset, nil
}
