// Package service holds business logic that spans more than one handler
package service

import (
	"context"
	"errors"
	"fmt"

	"studydeck/study-api/model"

	"gorm.io/gorm"
)

// ErrDocumentNotFound covers both a missing document and one owned by
// somebody else, so a caller can't probe which documents exist
var ErrDocumentNotFound = errors.New("document not found")

// Summarizer is the upstream capability the workflow needs. Satisfied by
// *openai.Client, faked in tests
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// SummarizeDocument loads a document owned by userID, asks the summarizer
// for a summary and persists it on the row. A failed upstream call leaves
// the document untouched, including any summary from an earlier run.
// Only the summary column is written, so a concurrent title or content
// edit isn't clobbered
func SummarizeDocument(ctx context.Context, db *gorm.DB, s Summarizer, userID, documentID uint) (*model.Document, error) {
	var doc model.Document

	err := db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, documentID).
		First(&doc).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}

		return nil, fmt.Errorf("failed to load document, %w", err)
	}

	summary, err := s.Summarize(ctx, doc.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to generate summary, %w", err)
	}

	err = db.WithContext(ctx).
		Model(&doc).
		Update("summary", summary).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to persist summary, %w", err)
	}

	doc.Summary = &summary
	return &doc, nil
}
