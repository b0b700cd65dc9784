package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/PieceOfFire/cats/bottemplate/services"
	"github.com/PieceOfFire/cats/internal/domain/calendar"
	"github.com/PieceOfFire/cats/internal/domain/shop"
)

func TestClassify(t *testing.T) {
	partial := &services.PartialWriteError{
		Action:    "spin",
		UserID:    "42",
		Completed: []string{"CATS_ID"},
		Err:       errors.New("quota exceeded"),
	}

	tests := []struct {
		name string
		err  error
		kind ErrorType
		text string
	}{
		{
			name: "no spins",
			err:  services.ErrNoSpins,
			kind: BusinessLogicError,
			text: "You have no spins left. Come back for your daily reward!",
		},
		{
			name: "wrapped shop error",
			err:  fmt.Errorf("buy frame: %w", shop.ErrInsufficientFunds),
			kind: BusinessLogicError,
			text: "You don't have enough currency for this.",
		},
		{
			name: "bonus game wins over already claimed",
			err:  services.ErrNoBonusPending,
			kind: BusinessLogicError,
			text: "There is no bonus game waiting for you.",
		},
		{
			name: "plain already claimed",
			err:  calendar.ErrAlreadyClaimed,
			kind: BusinessLogicError,
			text: "You have already claimed this.",
		},
		{
			name: "partial write hides its cause",
			err:  partial,
			kind: SystemError,
			text: "Something went wrong halfway through. Part of the reward may be missing, an admin has been notified.",
		},
		{
			name: "unknown error",
			err:  errors.New("boom"),
			kind: SystemError,
			text: "An unexpected error occurred, try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, text := Classify(tt.err)
			if kind != tt.kind {
				t.Errorf("kind = %v, want %v", kind, tt.kind)
			}
			if text != tt.text {
				t.Errorf("text = %q, want %q", text, tt.text)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1 000"},
		{-1234567, "-1 234 567"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatProgress(t *testing.T) {
	tests := []struct {
		owned, total int
		want         string
	}{
		{0, 0, "0/0"},
		{3, 40, "3/40 (7%)"},
		{40, 40, "40/40 (100%)"},
	}
	for _, tt := range tests {
		if got := FormatProgress(tt.owned, tt.total); got != tt.want {
			t.Errorf("FormatProgress(%d, %d) = %q, want %q", tt.owned, tt.total, got, tt.want)
		}
	}
}
