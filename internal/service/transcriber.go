package service

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"guidesphere_backend/internal/config"
	"guidesphere_backend/internal/util"
	"guidesphere_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SpeechToText turns an audio file into a transcript.
type SpeechToText interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// WhisperClient talks to a whisper-compatible transcription HTTP endpoint.
type WhisperClient struct {
	config config.STTConfig
	client *http.Client
}

func NewWhisperClient(cfg config.STTConfig) *WhisperClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &WhisperClient{config: cfg, client: &http.Client{Timeout: timeout}}
}

func (w *WhisperClient) Transcribe(ctx context.Context, audioPath string) (string, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	_ = writer.WriteField("model", w.config.Model)
	if w.config.Language != "" {
		_ = writer.WriteField("language", w.config.Language)
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.config.BaseURL+"/audio/transcriptions", body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrExternalService, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if w.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+w.config.APIKey)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: transcription status %d: %s", util.ErrExternalService, resp.StatusCode, string(msg))
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode transcription: %v", util.ErrExternalService, err)
	}
	return out.Text, nil
}

// Transcriber owns the video-to-transcript pipeline: fetch the video from
// storage, strip its audio track with ffmpeg, send it to the speech service
// and cache the result. It is built once at startup and shared.
type Transcriber struct {
	STT      SpeechToText
	Storage  StorageProvider
	Redis    *redis.Client
	CacheDir string
}

func NewTranscriber(stt SpeechToText, storage StorageProvider, redisClient *redis.Client, cacheDir string) *Transcriber {
	return &Transcriber{
		STT:      stt,
		Storage:  storage,
		Redis:    redisClient,
		CacheDir: cacheDir,
	}
}

const transcriptTTL = 7 * 24 * time.Hour

// TranscriptForMedia returns the transcript of a stored video, serving from
// the redis or file cache when the same object was transcribed before.
func (t *Transcriber) TranscriptForMedia(ctx context.Context, objectName string) (string, error) {
	key := transcriptKey(objectName)

	if t.Redis != nil {
		if cached, err := t.Redis.Get(ctx, "transcript:"+key).Result(); err == nil {
			return cached, nil
		} else if err != redis.Nil {
			logger.Log.Warn("transcript redis lookup failed", zap.Error(err))
		}
	}
	if cached, err := os.ReadFile(t.cachePath(key)); err == nil {
		return string(cached), nil
	}

	text, err := t.transcribeObject(ctx, objectName)
	if err != nil {
		return "", err
	}
	t.storeCache(ctx, key, text)
	return text, nil
}

func (t *Transcriber) transcribeObject(ctx context.Context, objectName string) (string, error) {
	src, err := t.Storage.Fetch(ctx, objectName)
	if err != nil {
		return "", err
	}
	defer src.Close()

	tmpDir, err := os.MkdirTemp("", "transcribe-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(tmpDir)

	videoPath := filepath.Join(tmpDir, filepath.Base(objectName))
	out, err := os.Create(videoPath)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}

	if info, err := util.GetVideoInfo(videoPath); err == nil {
		logger.Log.Info("transcribing video",
			zap.String("object", objectName),
			zap.Float64("durationSec", info.Duration),
			zap.String("format", info.Format))
	}

	wavPath := filepath.Join(tmpDir, "audio.wav")
	if err := util.ExtractAudio(videoPath, wavPath); err != nil {
		return "", fmt.Errorf("%w: audio extraction: %v", util.ErrExternalService, err)
	}
	return t.STT.Transcribe(ctx, wavPath)
}

// storeCache writes both cache tiers best effort. A failed cache write is
// not worth failing the request over.
func (t *Transcriber) storeCache(ctx context.Context, key, text string) {
	if t.Redis != nil {
		if err := t.Redis.Set(ctx, "transcript:"+key, text, transcriptTTL).Err(); err != nil {
			logger.Log.Warn("transcript redis store failed", zap.Error(err))
		}
	}
	if t.CacheDir != "" {
		if err := os.MkdirAll(t.CacheDir, 0755); err == nil {
			if err := os.WriteFile(t.cachePath(key), []byte(text), 0644); err != nil {
				logger.Log.Warn("transcript file store failed", zap.Error(err))
			}
		}
	}
}

func (t *Transcriber) cachePath(key string) string {
	return filepath.Join(t.CacheDir, key+".txt")
}

func transcriptKey(objectName string) string {
	sum := md5.Sum([]byte(objectName))
	return hex.EncodeToString(sum[:])
}
