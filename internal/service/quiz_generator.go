package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"guidesphere_backend/internal/util"
)

const (
	minSentenceLen  = 60
	maxKeywords     = 8
	maxStatementLen = 140
)

var keywordPattern = regexp.MustCompile(`[0-9A-Za-zÁÉÍÓÚÜÑáéíóúüñ-]{4,}`)

// Spanish function words that make useless cloze targets.
var stopwords = map[string]struct{}{
	"para": {}, "por": {}, "con": {}, "una": {}, "uno": {}, "los": {},
	"las": {}, "del": {}, "que": {}, "este": {}, "esta": {}, "estos": {},
	"estas": {}, "como": {}, "pero": {}, "más": {}, "mas": {}, "sus": {},
	"ser": {}, "son": {}, "está": {}, "están": {}, "entre": {}, "sobre": {},
	"también": {}, "cuando": {}, "donde": {}, "desde": {}, "hasta": {},
	"muy": {}, "sin": {}, "porque": {}, "cada": {}, "todo": {}, "toda": {},
	"todos": {}, "todas": {}, "otro": {}, "otra": {}, "tiene": {},
	"tienen": {}, "puede": {}, "pueden": {}, "hay": {}, "fue": {},
	"era": {}, "han": {}, "sido": {}, "misma": {}, "mismo": {},
}

// HeuristicGenerator builds exams from text with deterministic, purely
// local rules. Given the same text within the same minute it always
// produces the same exam, which is what makes regenerated quizzes stable
// enough to replace in place.
type HeuristicGenerator struct {
	// Now is the clock used for the fingerprint minute bucket. Tests pin it.
	Now func() time.Time
}

func NewHeuristicGenerator() *HeuristicGenerator {
	return &HeuristicGenerator{Now: time.Now}
}

// Fingerprint identifies a (text, minute) pair. It doubles as the RNG seed
// for every random choice the generator makes.
func (g *HeuristicGenerator) Fingerprint(text string) string {
	sum := md5.Sum([]byte(text))
	bucket := g.Now().Unix() / 60
	return hex.EncodeToString(sum[:]) + ":" + strconv.FormatInt(bucket, 10)
}

func (g *HeuristicGenerator) Generate(_ context.Context, text string, count int) (*GeneratedExam, error) {
	fingerprint := g.Fingerprint(text)
	rnd := util.SeededRand(util.SeedFromString(fingerprint))

	sentences := splitSentences(text)
	rnd.Shuffle(len(sentences), func(i, j int) {
		sentences[i], sentences[j] = sentences[j], sentences[i]
	})

	exam := &GeneratedExam{Fingerprint: fingerprint}
	for _, sentence := range sentences {
		if len(exam.Questions) >= count {
			break
		}
		if q, ok := buildCloze(sentence, rnd); ok {
			exam.Questions = append(exam.Questions, q)
		}
	}
	for i := 0; len(exam.Questions) < count && i < len(sentences); i++ {
		exam.Questions = append(exam.Questions, buildTrueFalse(sentences[i], rnd))
	}
	return exam, nil
}

// splitSentences cuts on terminal punctuation followed by whitespace and
// keeps only sentences long enough to carry a question.
func splitSentences(text string) []string {
	var out []string
	var b strings.Builder
	runes := []rune(strings.TrimSpace(text))
	flush := func() {
		s := strings.TrimSpace(b.String())
		if utf8.RuneCountInString(s) >= minSentenceLen {
			out = append(out, s)
		}
		b.Reset()
	}
	for i, r := range runes {
		b.WriteRune(r)
		if (r == '.' || r == '?' || r == '!') && (i+1 == len(runes) || unicode.IsSpace(runes[i+1])) {
			flush()
		}
	}
	flush()
	return out
}

// extractKeywords returns up to maxKeywords candidate cloze targets.
func extractKeywords(sentence string) []string {
	var out []string
	for _, w := range keywordPattern.FindAllString(sentence, -1) {
		if _, skip := stopwords[strings.ToLower(w)]; skip {
			continue
		}
		out = append(out, w)
		if len(out) == maxKeywords {
			break
		}
	}
	return out
}

// buildCloze blanks one keyword out of the sentence and surrounds the
// answer with three distractors drawn from the remaining keywords. When the
// sentence is too poor in keywords, distractors are padded with case and
// spelling mutations of the target.
func buildCloze(sentence string, rnd *rand.Rand) (GeneratedQuestion, bool) {
	keywords := extractKeywords(sentence)
	if len(keywords) == 0 {
		return GeneratedQuestion{}, false
	}
	target := keywords[rnd.Intn(len(keywords))]

	var pool []string
	for _, k := range keywords {
		if k != target {
			pool = append(pool, k)
		}
	}
	rnd.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > 3 {
		pool = pool[:3]
	}
	for _, mut := range []string{reverseString(target), strings.ToLower(target), strings.ToUpper(target)} {
		if len(pool) >= 3 {
			break
		}
		if mut != target && !containsString(pool, mut) {
			pool = append(pool, mut)
		}
	}
	for len(pool) < 3 {
		pool = append(pool, reverseString(target))
	}

	options := []GeneratedOption{{Text: target, IsCorrect: true}}
	for _, d := range pool {
		options = append(options, GeneratedOption{Text: d})
	}
	rnd.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	return GeneratedQuestion{
		Prompt:  "Completa la frase: " + strings.Replace(sentence, target, "____", 1),
		Options: options,
	}, true
}

// buildTrueFalse restates a sentence verbatim and flips a seeded coin for
// which of Verdadero/Falso is graded as correct.
func buildTrueFalse(sentence string, rnd *rand.Rand) GeneratedQuestion {
	stmt := strings.Join(strings.Fields(sentence), " ")
	if utf8.RuneCountInString(stmt) > maxStatementLen {
		stmt = string([]rune(stmt)[:maxStatementLen])
	}
	trueWins := rnd.Intn(2) == 1
	return GeneratedQuestion{
		Prompt: fmt.Sprintf("Según el documento, es correcto que: %q", stmt),
		Options: []GeneratedOption{
			{Text: "Verdadero", IsCorrect: trueWins},
			{Text: "Falso", IsCorrect: !trueWins},
		},
	}
}

func reverseString(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
