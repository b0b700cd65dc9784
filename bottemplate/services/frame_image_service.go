package services

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"github.com/PieceOfFire/cats/internal/domain/frames"
	"github.com/chromedp/chromedp"
)

//go:embed templates/frame.html
var frameTemplate string

// FrameScene is everything needed to draw one frame.
type FrameScene struct {
	Width      int
	Height     int
	Background string
	Cards      []FrameCard
}

type FrameCard struct {
	frames.Rect
	ImageURL string
}

// FrameImageService renders frames with headless Chrome.
type FrameImageService struct {
	logger  *slog.Logger
	tmpl    *template.Template
	timeout time.Duration
}

func NewFrameImageService(timeout time.Duration) (*FrameImageService, error) {
	tmpl, err := template.New("frame").Parse(frameTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse frame template: %w", err)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &FrameImageService{
		logger:  slog.With(slog.String("service", "frame_image")),
		tmpl:    tmpl,
		timeout: timeout,
	}, nil
}

func (s *FrameImageService) html(scene FrameScene) (string, error) {
	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, scene); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	content := strings.ReplaceAll(buf.String(), "#", "%23")
	return strings.ReplaceAll(content, "\n", ""), nil
}

// Render returns the frame as PNG.
func (s *FrameImageService) Render(ctx context.Context, scene FrameScene) ([]byte, error) {
	start := time.Now()
	content, err := s.html(scene)
	if err != nil {
		return nil, err
	}

	chromedpCtx, cancel := chromedp.NewContext(ctx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancel()
	chromedpCtx, cancel = context.WithTimeout(chromedpCtx, s.timeout)
	defer cancel()

	var image []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(int64(scene.Width), int64(scene.Height)),
		chromedp.Navigate("data:text/html,"+content),
		chromedp.WaitVisible("#frame", chromedp.ByID),
		chromedp.Sleep(500*time.Millisecond),
		chromedp.Screenshot("#frame", &image, chromedp.ByID),
	)
	if err != nil {
		s.logger.Error("Failed to render frame",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)))
		return nil, fmt.Errorf("failed to render frame: %w", err)
	}

	s.logger.Debug("Frame rendered",
		slog.Int("cards", len(scene.Cards)),
		slog.Int("image_size", len(image)),
		slog.Duration("elapsed", time.Since(start)))
	return image, nil
}
