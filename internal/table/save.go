package table

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/gofrs/flock"

	"tgrid/internal/praat"
)

// Save writes every document owning a dirty cell back to its own path,
// each document at most once. Failures are partitioned per document: the
// cells of a document whose write failed stay in the modified set so the
// save can be retried, while documents that flushed cleanly are cleared.
// The returned error joins one entry per failed file.
func (m *Model) Save(ctx context.Context) error {
	if len(m.modified) == 0 {
		return nil
	}

	if m.lockPath != "" {
		lock := flock.New(m.lockPath)
		locked, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("acquire save lock: %w", err)
		}
		if !locked {
			return fmt.Errorf("save lock %s held by another process", m.lockPath)
		}
		defer func() { _ = lock.Unlock() }()
	}

	byDoc := make(map[*praat.Document][]CellID)
	for id := range m.modified {
		cell, err := m.cellAt(id.Row, id.Col)
		if err != nil {
			// Coordinate no longer resolves; nothing to write for it.
			delete(m.modified, id)
			continue
		}
		byDoc[cell.Doc] = append(byDoc[cell.Doc], id)
	}

	docs := make([]*praat.Document, 0, len(byDoc))
	for doc := range byDoc {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })

	var failures []error
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			failures = append(failures, err)
			break
		}
		if err := doc.WriteFile(doc.Path); err != nil {
			m.logger.Error("save failed", "path", doc.Path, "error", err)
			failures = append(failures, fmt.Errorf("save %s: %w", doc.Path, err))
			continue
		}
		m.logger.Info("saved annotation file", "path", doc.Path, "cells", len(byDoc[doc]))
		for _, id := range byDoc[doc] {
			delete(m.modified, id)
		}
		clearModifiedFlags(doc)
	}
	return errors.Join(failures...)
}

func clearModifiedFlags(doc *praat.Document) {
	for t := range doc.Tiers {
		for i := range doc.Tiers[t].Intervals {
			doc.Tiers[t].Intervals[i].Modified = false
		}
	}
}
