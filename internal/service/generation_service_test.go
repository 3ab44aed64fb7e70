package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"guidesphere_backend/internal/config"
	"guidesphere_backend/internal/model"
	"guidesphere_backend/internal/repository"
	"guidesphere_backend/internal/util"

	"gorm.io/gorm"
)

func TestExtractDocumentTextPlain(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "notes-*.txt")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("hola mundo"); err != nil {
		t.Fatal(err)
	}
	f.Seek(0, 0)

	text, err := ExtractDocumentText(f.Name(), f)
	if err != nil {
		t.Fatalf("ExtractDocumentText: %v", err)
	}
	if text != "hola mundo" {
		t.Errorf("text = %q", text)
	}
}

type docFixture struct {
	db      *gorm.DB
	svc     *GenerationService
	content model.ContentItem
	docID   string
	root    string
}

func newDocFixture(t *testing.T, docText string) *docFixture {
	t.Helper()
	db := newTestDB(t)
	root := t.TempDir()

	contentRepo := repository.NewContentRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	certSvc := NewCertificateService(repository.NewCertificateRepository(db), contentRepo)
	quizSvc := NewQuizService(db, quizRepo, contentRepo, certSvc,
		Capabilities{QuizAttempts: true, Certificates: true}, 0.60)

	storage := &LocalStorageProvider{Config: &config.StorageConfig{Type: "local", LocalPath: root}}

	course := model.Course{Title: "Geografía"}
	if err := db.Create(&course).Error; err != nil {
		t.Fatal(err)
	}
	content := model.ContentItem{CourseID: course.ID, Type: model.ContentTypeDocument, Title: "Apuntes"}
	if err := db.Create(&content).Error; err != nil {
		t.Fatal(err)
	}
	asset := model.DocumentAsset{ContentID: content.ID, URI: "docs/apuntes.txt"}
	if err := db.Create(&asset).Error; err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "docs"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "docs", "apuntes.txt"), []byte(docText), 0644); err != nil {
		t.Fatal(err)
	}

	svc := NewGenerationService(
		NewAIGenerator(config.AIConfig{}), // disabled, heuristic path
		fixedClockGenerator(),
		quizSvc,
		contentRepo,
		storage,
		nil,
	)
	return &docFixture{db: db, svc: svc, content: content, docID: asset.ID, root: root}
}

func TestCreateFromDocumentSavesQuiz(t *testing.T) {
	f := newDocFixture(t, sampleText)

	view, err := f.svc.CreateFromDocument(context.Background(), f.docID, "", 5)
	if err != nil {
		t.Fatalf("CreateFromDocument: %v", err)
	}
	if view.Source != GenerationSourceHeuristic {
		t.Errorf("source = %q, want heuristic", view.Source)
	}
	if view.Quiz == nil || len(view.Quiz.Questions) == 0 {
		t.Fatal("expected a saved quiz with questions")
	}
	if view.Quiz.ContentID != f.content.ID {
		t.Errorf("quiz attached to %q, want %q", view.Quiz.ContentID, f.content.ID)
	}

	var quizzes int64
	f.db.Model(&model.Quiz{}).Count(&quizzes)
	if quizzes != 1 {
		t.Errorf("quiz rows = %d, want 1", quizzes)
	}
}

func TestCreateFromDocumentTooShort(t *testing.T) {
	f := newDocFixture(t, "demasiado corto")

	if _, err := f.svc.CreateFromDocument(context.Background(), f.docID, "", 5); !errors.Is(err, util.ErrInputTooShort) {
		t.Fatalf("got %v, want ErrInputTooShort", err)
	}
}

func TestCreateFromDocumentUnknownDoc(t *testing.T) {
	f := newDocFixture(t, sampleText)

	if _, err := f.svc.CreateFromDocument(context.Background(), "missing", "", 5); !errors.Is(err, util.ErrContentNotFound) {
		t.Fatalf("got %v, want ErrContentNotFound", err)
	}
}

func TestCreateFromVideoRequiresVideoContent(t *testing.T) {
	f := newDocFixture(t, sampleText)

	// the fixture's content item is a document
	if _, err := f.svc.CreateFromVideo(context.Background(), f.content.ID, 5); !errors.Is(err, util.ErrContentNotFound) {
		t.Fatalf("got %v, want ErrContentNotFound", err)
	}
}
