package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/PieceOfFire/cats/internal/domain/frames"
	"github.com/PieceOfFire/cats/internal/domain/rewards"
)

// FrameRenderer draws a scene to PNG.
type FrameRenderer interface {
	Render(ctx context.Context, scene FrameScene) ([]byte, error)
}

// FrameStorage holds rendered frames and background art.
type FrameStorage interface {
	UploadFrame(ctx context.Context, name string, png []byte) (string, error)
	BackgroundURL(background int) string
}

// FrameView is what the chat layer sends. URL wins over Image; when both are
// empty only the slot list can be shown.
type FrameView struct {
	Slots      frames.Slots
	Background int
	Cards      map[int]rewards.Card
	URL        string
	Image      []byte
}

// Frames manages the winter showcase of five owned cards.
type Frames struct {
	game     *Game
	renderer FrameRenderer
	storage  FrameStorage
	timeout  time.Duration
}

func NewFrames(game *Game, renderer FrameRenderer, storage FrameStorage, timeout time.Duration) *Frames {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Frames{game: game, renderer: renderer, storage: storage, timeout: timeout}
}

// Search suggests owned cards for a slot query.
func (f *Frames) Search(ctx context.Context, userID, query string, limit int) ([]rewards.Card, error) {
	catalog, err := f.game.Catalog.Cards(ctx)
	if err != nil {
		return nil, err
	}
	p, err := f.game.Players.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return frames.SearchOwned(catalog, p.Owned(), query, limit), nil
}

// Set places the owned card best matching query into the 1-based slot.
func (f *Frames) Set(ctx context.Context, userID string, slot int, query string) (frames.Slots, rewards.Card, error) {
	catalog, err := f.game.Catalog.Cards(ctx)
	if err != nil {
		return frames.Slots{}, rewards.Card{}, err
	}

	var (
		slots frames.Slots
		card  rewards.Card
	)
	err = f.game.Players.With(ctx, userID, func(p *Player) error {
		owned := p.Owned()
		found := frames.SearchOwned(catalog, owned, query, 1)
		if len(found) == 0 {
			return fmt.Errorf("%w: %s", frames.ErrCardNotOwned, query)
		}
		card = found[0]

		next, err := frames.ParseSlots(p.Record.String(ColFrame)).Set(slot-1, card.ID, owned)
		if err != nil {
			return err
		}
		slots = next
		return f.commit(ctx, p, "frame_set", slots, fmt.Sprintf("slot=%d card=%s", slot, card.ID))
	})
	return slots, card, err
}

// Clear empties the 1-based slot.
func (f *Frames) Clear(ctx context.Context, userID string, slot int) (frames.Slots, error) {
	var slots frames.Slots
	err := f.game.Players.With(ctx, userID, func(p *Player) error {
		next, err := frames.ParseSlots(p.Record.String(ColFrame)).Set(slot-1, frames.Empty, nil)
		if err != nil {
			return err
		}
		slots = next
		return f.commit(ctx, p, "frame_clear", slots, fmt.Sprintf("slot=%d", slot))
	})
	return slots, err
}

// commit writes FRAME and drops the cached artifact.
func (f *Frames) commit(ctx context.Context, p *Player, action string, slots frames.Slots, details string) error {
	c := begin(ctx, f.game.journal, f.game.Players.Store(), p, action, details)
	if err := c.write(ctx, ColFrame, slots.String()); err != nil {
		return err
	}
	if err := c.write(ctx, ColFrameFile, ""); err != nil {
		return err
	}
	c.done(ctx)
	return nil
}

// View resolves the frame image: the cached artifact, else a fresh render
// uploaded and cached, else the raw render, else nothing.
func (f *Frames) View(ctx context.Context, userID string) (FrameView, error) {
	catalog, err := f.game.Catalog.Cards(ctx)
	if err != nil && !errors.Is(err, ErrCatalogUnavailable) {
		return FrameView{}, err
	}

	var view FrameView
	err = f.game.Players.With(ctx, userID, func(p *Player) error {
		view = FrameView{
			Slots:      frames.ParseSlots(p.Record.String(ColFrame)),
			Background: FrameBackground(p),
			Cards:      make(map[int]rewards.Card),
		}
		byID := make(map[string]rewards.Card, len(catalog))
		for _, c := range catalog {
			byID[c.ID] = c
		}
		for i, id := range view.Slots.Filled() {
			if c, ok := byID[id]; ok {
				view.Cards[i] = c
			}
		}

		if cached := p.Record.String(ColFrameFile); cached != "" {
			view.URL = cached
			return nil
		}
		if f.renderer == nil {
			return nil
		}

		image, err := f.render(ctx, view)
		if err != nil {
			slog.Warn("Frame render failed, sending text",
				slog.String("type", "sys"),
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
			return nil
		}
		view.Image = image

		url, err := f.upload(ctx, userID, image)
		if err != nil {
			slog.Warn("Frame upload failed, sending bytes",
				slog.String("type", "sys"),
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
			return nil
		}
		view.URL = url
		if err := f.game.Players.Store().Write(ctx, p.Row, ColFrameFile, url); err != nil {
			slog.Warn("Failed to cache frame url",
				slog.String("type", "db"),
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
		}
		return nil
	})
	return view, err
}

func (f *Frames) render(ctx context.Context, view FrameView) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	layout := frames.LayoutFor(view.Background)
	scene := FrameScene{Width: frames.Width, Height: frames.Height}
	if f.storage != nil {
		scene.Background = f.storage.BackgroundURL(view.Background)
	}
	for i := 0; i < frames.SlotCount; i++ {
		c, ok := view.Cards[i]
		if !ok || c.ImageURL == "" {
			continue
		}
		scene.Cards = append(scene.Cards, FrameCard{Rect: layout[i], ImageURL: c.ImageURL})
	}
	return f.renderer.Render(ctx, scene)
}

func (f *Frames) upload(ctx context.Context, userID string, image []byte) (string, error) {
	if f.storage == nil {
		return "", errors.New("no frame storage configured")
	}
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	// A new key per render, the URL itself is the cache handle.
	name := fmt.Sprintf("%s-%d", userID, time.Now().UnixNano())
	return f.storage.UploadFrame(ctx, name, image)
}
