package service

import (
	"context"
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"guidesphere_backend/internal/util"
)

func newTestRand() *rand.Rand {
	return util.SeededRand(7)
}

const sampleText = "La fotosíntesis es el proceso mediante el cual las plantas transforman " +
	"la energía luminosa en energía química aprovechable. " +
	"Los cloroplastos contienen clorofila, el pigmento responsable de capturar " +
	"la luz solar durante la primera fase del proceso. " +
	"El resultado final incluye glucosa y oxígeno, compuestos fundamentales " +
	"para la vida de casi todos los organismos del planeta."

func fixedClockGenerator() *HeuristicGenerator {
	return &HeuristicGenerator{Now: func() time.Time { return time.Unix(1_700_000_000, 0) }}
}

func TestHeuristicGenerateDeterministic(t *testing.T) {
	g := fixedClockGenerator()

	first, err := g.Generate(context.Background(), sampleText, 5)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := g.Generate(context.Background(), sampleText, 5)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("same text and clock produced different exams")
	}
}

func TestHeuristicGenerateQuestionShape(t *testing.T) {
	g := fixedClockGenerator()

	exam, err := g.Generate(context.Background(), sampleText, 5)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(exam.Questions) == 0 {
		t.Fatal("expected questions from sample text")
	}
	if exam.Fingerprint == "" {
		t.Fatal("fingerprint is empty")
	}

	for i, q := range exam.Questions {
		if q.Prompt == "" {
			t.Errorf("question %d has empty prompt", i)
		}
		correct := 0
		for _, o := range q.Options {
			if o.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			t.Errorf("question %d marks %d options correct, want 1", i, correct)
		}
		isCloze := strings.Contains(q.Prompt, "____")
		if isCloze && len(q.Options) != 4 {
			t.Errorf("cloze question %d has %d options, want 4", i, len(q.Options))
		}
		if !isCloze && len(q.Options) != 2 {
			t.Errorf("true/false question %d has %d options, want 2", i, len(q.Options))
		}
	}
}

func TestFingerprintMinuteBucket(t *testing.T) {
	base := time.Unix(1_700_000_000, 0)

	sameMinute := &HeuristicGenerator{Now: func() time.Time { return base.Add(30 * time.Second) }}
	atBase := &HeuristicGenerator{Now: func() time.Time { return base }}
	nextMinute := &HeuristicGenerator{Now: func() time.Time { return base.Add(90 * time.Second) }}

	// 1_700_000_000 is not minute-aligned, so +30s may cross the bucket
	// boundary; compare bucket arithmetic instead of wall offsets.
	if base.Unix()/60 == base.Add(30*time.Second).Unix()/60 {
		if atBase.Fingerprint(sampleText) != sameMinute.Fingerprint(sampleText) {
			t.Error("same minute bucket produced different fingerprints")
		}
	}
	if atBase.Fingerprint(sampleText) == nextMinute.Fingerprint(sampleText) {
		t.Error("different minute buckets produced the same fingerprint")
	}
	if atBase.Fingerprint(sampleText) == atBase.Fingerprint(sampleText+" extra") {
		t.Error("different texts produced the same fingerprint")
	}
}

func TestSplitSentencesDropsShortOnes(t *testing.T) {
	text := "Corta. " +
		"Esta oración en cambio es suficientemente larga como para superar el umbral mínimo establecido. " +
		"Otra corta!"
	got := splitSentences(text)
	if len(got) != 1 {
		t.Fatalf("got %d sentences, want 1: %q", len(got), got)
	}
	if utf8.RuneCountInString(got[0]) < minSentenceLen {
		t.Fatalf("kept sentence shorter than %d runes: %q", minSentenceLen, got[0])
	}
}

func TestExtractKeywords(t *testing.T) {
	sentence := "Los cloroplastos contienen clorofila para capturar energía durante este proceso biológico natural extenso adicional"
	got := extractKeywords(sentence)

	if len(got) > maxKeywords {
		t.Fatalf("got %d keywords, cap is %d", len(got), maxKeywords)
	}
	for _, k := range got {
		if _, stop := stopwords[strings.ToLower(k)]; stop {
			t.Errorf("stopword %q kept as keyword", k)
		}
		if utf8.RuneCountInString(k) < 4 {
			t.Errorf("keyword %q shorter than 4 runes", k)
		}
	}
	want := "cloroplastos"
	found := false
	for _, k := range got {
		if k == want {
			found = true
		}
	}
	if !found {
		t.Errorf("expected keyword %q in %v", want, got)
	}
}

func TestBuildTrueFalseTruncates(t *testing.T) {
	long := strings.Repeat("palabra ", 40) + "final."

	q := buildTrueFalse(long, newTestRand())
	if got := utf8.RuneCountInString(q.Prompt); got > maxStatementLen+60 {
		t.Errorf("prompt unexpectedly long: %d runes", got)
	}

	labels := map[string]bool{}
	correct := 0
	for _, o := range q.Options {
		labels[o.Text] = true
		if o.IsCorrect {
			correct++
		}
	}
	if !labels["Verdadero"] || !labels["Falso"] {
		t.Errorf("options = %v, want Verdadero and Falso", q.Options)
	}
	if correct != 1 {
		t.Errorf("%d options marked correct, want 1", correct)
	}
}

func TestBuildClozeNeedsKeywords(t *testing.T) {
	if _, ok := buildCloze("para con una los las del que", newTestRand()); ok {
		t.Fatal("sentence of stopwords should not yield a cloze question")
	}

	sentence := "Los cloroplastos contienen clorofila, el pigmento responsable de capturar la luz solar."
	q, ok := buildCloze(sentence, newTestRand())
	if !ok {
		t.Fatal("expected a cloze question")
	}
	if !strings.Contains(q.Prompt, "____") {
		t.Errorf("prompt %q has no blank", q.Prompt)
	}
	if len(q.Options) != 4 {
		t.Errorf("got %d options, want 4", len(q.Options))
	}
}

func TestBuildClozeSingleKeywordPadsDistractors(t *testing.T) {
	sentence := "La fotosíntesis es lo que se da con más luz del sol en las que hay por ese fin."
	q, ok := buildCloze(sentence, newTestRand())
	if !ok {
		t.Fatal("expected a cloze from a single-keyword sentence")
	}
	if len(q.Options) != 4 {
		t.Fatalf("got %d options, want 4", len(q.Options))
	}
	correct := 0
	for _, o := range q.Options {
		if o.IsCorrect {
			correct++
			if o.Text != "fotosíntesis" {
				t.Errorf("correct option = %q, want the lone keyword", o.Text)
			}
		}
	}
	if correct != 1 {
		t.Errorf("%d options marked correct, want 1", correct)
	}
}
