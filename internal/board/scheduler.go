package board

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/juanbolano/mini-trello/internal/converters"
	"github.com/juanbolano/mini-trello/internal/models"
	"github.com/juanbolano/mini-trello/internal/remote"
)

func boardScope(boardID string) string   { return "board:" + boardID }
func columnScope(columnID string) string { return "column:" + columnID }

func isStale(err error) bool {
	return errors.Is(err, ErrStaleRefresh)
}

// issueLocked starts a new request for scope and returns its sequence number.
// Callers hold mu.
func (s *Session) issueLocked(scope string) uint64 {
	s.seq[scope]++
	return s.seq[scope]
}

// invalidateLocked makes every refresh already issued for scope stale.
// Local writes call it so an older snapshot cannot undo them. Callers hold mu.
func (s *Session) invalidateLocked(scope string) {
	s.seq[scope]++
}

// RefreshColumns pulls the columns of boardID and, if it is the active board,
// replaces the column cache with them.
func (s *Session) RefreshColumns(ctx context.Context, boardID string) ([]models.Column, error) {
	s.mu.Lock()
	scope := boardScope(boardID)
	seq := s.issueLocked(scope)
	gen := s.generation
	sessionCtx := s.ctx
	s.mu.Unlock()

	callCtx, cancel := withSessionContext(ctx, sessionCtx)
	defer cancel()

	raw, err := s.remote.Query(callCtx, remote.OpColumns, map[string]any{"board": boardID})
	if err != nil {
		if sessionCtx.Err() != nil && ctx.Err() == nil {
			return nil, ErrStaleRefresh
		}
		return nil, fetchError(remote.OpColumns, err)
	}
	columns, err := converters.DecodeColumns(raw)
	if err != nil {
		return nil, fetchError(remote.OpColumns, err)
	}
	models.SortColumns(columns)

	s.mu.Lock()
	if s.generation != gen || s.seq[scope] != seq {
		s.mu.Unlock()
		s.logger.Debug("discarding stale column refresh", "board_id", boardID, "seq", seq)
		return nil, ErrStaleRefresh
	}
	activeID, _, ok := s.activeLocked()
	if !ok || activeID != boardID {
		s.mu.Unlock()
		return columns, nil
	}
	s.coll.LoadColumns(columns, s.pinnedLocked)
	s.mu.Unlock()

	s.notify(Change{Kind: ColumnsChanged, BoardID: boardID})
	return columns, nil
}

// RefreshCards pulls the cards of a cached column and merges them into the cache.
//
// A card under a pending move keeps its optimistic column while its other
// fields are updated. A pending card missing from the response is kept.
func (s *Session) RefreshCards(ctx context.Context, columnID string) ([]models.Card, error) {
	s.mu.Lock()
	scope := columnScope(columnID)
	seq := s.issueLocked(scope)
	gen := s.generation
	sessionCtx := s.ctx
	s.mu.Unlock()

	callCtx, cancel := withSessionContext(ctx, sessionCtx)
	defer cancel()

	raw, err := s.remote.Query(callCtx, remote.OpCards, map[string]any{"column": columnID})
	if err != nil {
		if sessionCtx.Err() != nil && ctx.Err() == nil {
			return nil, ErrStaleRefresh
		}
		return nil, fetchError(remote.OpCards, err)
	}
	cards, err := converters.DecodeCards(raw)
	if err != nil {
		return nil, fetchError(remote.OpCards, err)
	}

	s.mu.Lock()
	if s.generation != gen || s.seq[scope] != seq {
		s.mu.Unlock()
		s.logger.Debug("discarding stale card refresh", "column_id", columnID, "seq", seq)
		return nil, ErrStaleRefresh
	}
	if _, ok := s.coll.Column(columnID); !ok {
		s.mu.Unlock()
		return nil, &NotFoundError{Kind: "column", ID: columnID}
	}
	if err := s.coll.LoadCards(columnID, s.mergeCardsLocked(columnID, cards)); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	boardID := s.coll.BoardID()
	snapshot := s.coll.CardsFor(columnID)
	s.mu.Unlock()

	s.notify(Change{Kind: CardsChanged, BoardID: boardID, ColumnID: columnID})
	return snapshot, nil
}

// mergeCardsLocked applies the pending-move rules to a fetched card list.
// Callers hold mu.
func (s *Session) mergeCardsLocked(columnID string, fetched []models.Card) []models.Card {
	merged := make([]models.Card, 0, len(fetched))
	seen := make(map[string]bool, len(fetched))
	for _, card := range fetched {
		seen[card.ID] = true
		if card.ColumnID == "" {
			card.ColumnID = columnID
		}
		if tx, ok := s.inFlight[card.ID]; ok {
			if _, known := s.coll.Column(tx.Dest); !known {
				continue
			}
			card.ColumnID = tx.Dest
		}
		if _, known := s.coll.Column(card.ColumnID); !known {
			continue
		}
		merged = append(merged, card)
	}

	for cardID, tx := range s.inFlight {
		if tx.Dest != columnID || seen[cardID] {
			continue
		}
		if card, ok := s.coll.Card(cardID); ok && card.ColumnID == columnID {
			merged = append(merged, card)
		}
	}
	return merged
}

// refreshAll pulls every column's cards concurrently. Stale results are not errors.
func (s *Session) refreshAll(ctx context.Context, columns []models.Column) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, col := range columns {
		g.Go(func() error {
			if _, err := s.RefreshCards(gctx, col.ID); err != nil && !isStale(err) {
				return err
			}
			return nil
		})
	}
	return g.Wait()
}
