package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ImVadimush/brawl-stars-tournament-bot/models"
)

// BracketArchiver сохраняет снимок завершённого турнира в объектное хранилище.
type BracketArchiver struct {
	uploader FileUploader
}

func NewBracketArchiver(uploader FileUploader) *BracketArchiver {
	return &BracketArchiver{uploader: uploader}
}

// Archive загружает JSON-снимок турнира и возвращает публичный URL (если
// у хранилища настроен публичный базовый адрес).
func (a *BracketArchiver) Archive(ctx context.Context, t *models.Tournament) (string, error) {
	raw, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal tournament snapshot: %w", err)
	}

	finishedAt := time.Now().UTC()
	if t.FinishedAt != nil {
		finishedAt = t.FinishedAt.UTC()
	}
	key := fmt.Sprintf("brackets/%d/%s.json", t.ChatID, finishedAt.Format("20060102T150405Z"))

	result, err := a.uploader.Upload(ctx, key, "application/json", bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	return result.Location, nil
}
