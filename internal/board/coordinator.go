package board

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/juanbolano/mini-trello/internal/converters"
	"github.com/juanbolano/mini-trello/internal/remote"
)

// BeginDrag records that a card was picked up from sourceColumnID.
// It never changes the cache.
func (s *Session) BeginDrag(cardID, sourceColumnID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.coll.Card(cardID)
	if !ok {
		return &NotFoundError{Kind: "card", ID: cardID}
	}
	if card.ColumnID != sourceColumnID {
		return &ConflictError{CardID: cardID, Reason: "card is no longer in the source column"}
	}
	s.drags[cardID] = sourceColumnID
	return nil
}

// Dragging returns the source column of a card that was picked up
func (s *Session) Dragging(cardID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	source, ok := s.drags[cardID]
	return source, ok
}

// CancelDrag forgets a picked up card
func (s *Session) CancelDrag(cardID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drags, cardID)
}

// EndDrag drops a card on dest.
//
// Dropping on the source column (or nowhere) is a no-op that returns an Idle
// transaction. Otherwise the card moves locally at once and exactly one
// updateCardStatus mutation is sent. The returned transaction is Committed on
// success. On failure or after the pending timeout the card returns to source
// and the transaction is RolledBack with a *FetchError. Either way the source
// and destination columns are refreshed afterwards.
func (s *Session) EndDrag(ctx context.Context, cardID, source, dest string) (Transaction, error) {
	idle := Transaction{CardID: cardID, Source: source, Dest: dest, State: Idle}

	s.mu.Lock()
	delete(s.drags, cardID)
	if dest == "" || dest == source {
		s.mu.Unlock()
		return idle, nil
	}
	boardID, gen, ok := s.activeLocked()
	if !ok {
		s.mu.Unlock()
		return idle, ErrNoActiveBoard
	}
	if pending, ok := s.inFlight[cardID]; ok {
		s.mu.Unlock()
		return idle, &ConflictError{
			CardID: cardID,
			Reason: fmt.Sprintf("move to column %s is already in flight", pending.Dest),
		}
	}
	if err := s.coll.MoveCard(cardID, source, dest); err != nil {
		s.mu.Unlock()
		return idle, err
	}
	s.nextTxID++
	tx := &Transaction{
		ID:        s.nextTxID,
		CardID:    cardID,
		Source:    source,
		Dest:      dest,
		State:     Pending,
		StartedAt: time.Now(),
	}
	s.inFlight[cardID] = tx
	s.mu.Unlock()

	s.logger.Debug("move pending", "tx", tx.ID, "card_id", cardID, "from", source, "to", dest)
	s.notify(Change{Kind: TransactionChanged, BoardID: boardID, ColumnID: dest, CardID: cardID, State: Pending})

	callCtx, cancel := context.WithTimeout(ctx, s.pendingTimeout)
	raw, err := s.remote.Mutate(callCtx, remote.OpUpdateCardStatus, map[string]any{
		"id":     cardID,
		"column": dest,
	})
	timedOut := errors.Is(callCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil
	cancel()
	if err != nil && timedOut {
		err = fmt.Errorf("move pending longer than %s: %w", s.pendingTimeout, err)
	}

	s.mu.Lock()
	if s.generation != gen || s.inFlight[cardID] != tx {
		final := *tx
		s.mu.Unlock()
		s.logger.Debug("discarding move result after board switch", "tx", tx.ID, "card_id", cardID)
		return final, ErrSuperseded
	}
	delete(s.inFlight, cardID)
	// refreshes issued while the move was pending predate its outcome
	s.invalidateLocked(columnScope(source))
	s.invalidateLocked(columnScope(dest))
	tx.EndedAt = time.Now()
	if err == nil {
		tx.State = Committed
		moved, decodeErr := converters.DecodeCardPayload(raw)
		switch {
		case decodeErr != nil:
			s.logger.Warn("move committed with unreadable payload", "card_id", cardID, "error", decodeErr)
		case moved.ID == cardID && moved.ColumnID == dest:
			_ = s.coll.UpsertCard(moved)
		}
	} else {
		tx.State = RolledBack
		tx.Err = fetchError(remote.OpUpdateCardStatus, err)
		s.rollbackLocked(tx)
	}
	final := *tx
	s.mu.Unlock()

	if final.State == RolledBack {
		s.logger.Warn("move rolled back", "tx", final.ID, "card_id", cardID, "error", final.Err)
	} else {
		s.logger.Info("move committed", "tx", final.ID, "card_id", cardID, "to", dest)
	}
	s.notify(Change{Kind: TransactionChanged, BoardID: boardID, ColumnID: dest, CardID: cardID, State: final.State})

	s.settle(ctx, final)
	return final, final.Err
}

// rollbackLocked returns a card to its source column. Callers hold mu.
func (s *Session) rollbackLocked(tx *Transaction) {
	card, ok := s.coll.Card(tx.CardID)
	if !ok || card.ColumnID != tx.Dest {
		return
	}
	if _, ok := s.coll.Column(tx.Source); !ok {
		_ = s.coll.RemoveCard(tx.CardID)
		return
	}
	_ = s.coll.MoveCard(tx.CardID, tx.Dest, tx.Source)
}

// settle pulls both columns a finished move touched
func (s *Session) settle(ctx context.Context, tx Transaction) {
	for _, columnID := range []string{tx.Source, tx.Dest} {
		if _, err := s.RefreshCards(ctx, columnID); err != nil && !isStale(err) {
			s.logger.Warn("refresh after move failed", "column_id", columnID, "error", err)
		}
	}
}
