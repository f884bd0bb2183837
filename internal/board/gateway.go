package board

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/juanbolano/mini-trello/internal/converters"
	"github.com/juanbolano/mini-trello/internal/models"
	"github.com/juanbolano/mini-trello/internal/remote"
)

func validateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", &ValidationError{Field: "title", Message: "must not be empty"}
	}
	return trimmed, nil
}

func requireID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}

// ParseOrder parses a column order typed by a user
func ParseOrder(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, &ValidationError{Field: "order", Message: "is required"}
	}
	order, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, &ValidationError{Field: "order", Message: fmt.Sprintf("%q is not an integer", raw)}
	}
	return order, nil
}

// ListBoards returns every board known to the store
func (s *Session) ListBoards(ctx context.Context) ([]models.Board, error) {
	raw, err := s.remote.Query(ctx, remote.OpBoards, nil)
	if err != nil {
		return nil, fetchError(remote.OpBoards, err)
	}
	boards, err := converters.DecodeBoards(raw)
	if err != nil {
		return nil, fetchError(remote.OpBoards, err)
	}
	return boards, nil
}

// AddBoard creates a board. The active board does not change.
func (s *Session) AddBoard(ctx context.Context, title string) (models.Board, error) {
	title, err := validateTitle(title)
	if err != nil {
		return models.Board{}, err
	}

	raw, err := s.remote.Mutate(ctx, remote.OpAddBoard, map[string]any{"title": title})
	if err != nil {
		return models.Board{}, fetchError(remote.OpAddBoard, err)
	}
	created, err := converters.DecodeBoardPayload(raw)
	if err != nil {
		return models.Board{}, fetchError(remote.OpAddBoard, err)
	}

	s.logger.Info("board added", "board_id", created.ID)
	s.notify(Change{Kind: BoardChanged, BoardID: created.ID})
	return created, nil
}

// AddColumn creates a column and folds it into the cache when it belongs to
// the active board.
func (s *Session) AddColumn(ctx context.Context, boardID, title string, order int) (models.Column, error) {
	if err := requireID("board", boardID); err != nil {
		return models.Column{}, err
	}
	title, err := validateTitle(title)
	if err != nil {
		return models.Column{}, err
	}

	gen := s.currentGeneration()
	raw, err := s.remote.Mutate(ctx, remote.OpAddColumn, map[string]any{
		"title": title,
		"board": boardID,
		"order": order,
	})
	if err != nil {
		return models.Column{}, fetchError(remote.OpAddColumn, err)
	}
	created, err := converters.DecodeColumnPayload(raw)
	if err != nil {
		return models.Column{}, fetchError(remote.OpAddColumn, err)
	}
	if created.BoardID == "" {
		created.BoardID = boardID
	}

	s.mu.Lock()
	activeID, current, ok := s.activeLocked()
	applied := ok && current == gen && activeID == created.BoardID
	if applied {
		s.coll.UpsertColumn(created)
		s.invalidateLocked(boardScope(created.BoardID))
	}
	s.mu.Unlock()

	if applied {
		s.notify(Change{Kind: ColumnsChanged, BoardID: created.BoardID})
	}
	return created, nil
}

// AddCard creates a card in columnID
func (s *Session) AddCard(ctx context.Context, columnID, title, content string) (models.Card, error) {
	if err := requireID("column", columnID); err != nil {
		return models.Card{}, err
	}
	title, err := validateTitle(title)
	if err != nil {
		return models.Card{}, err
	}

	gen := s.currentGeneration()
	raw, err := s.remote.Mutate(ctx, remote.OpAddCard, map[string]any{
		"title":   title,
		"content": content,
		"column":  columnID,
	})
	if err != nil {
		return models.Card{}, fetchError(remote.OpAddCard, err)
	}
	created, err := converters.DecodeCardPayload(raw)
	if err != nil {
		return models.Card{}, fetchError(remote.OpAddCard, err)
	}
	if created.ColumnID == "" {
		created.ColumnID = columnID
	}

	s.mu.Lock()
	applied := s.generation == gen && s.coll.UpsertCard(created) == nil
	if applied {
		s.invalidateLocked(columnScope(created.ColumnID))
	}
	boardID := s.coll.BoardID()
	s.mu.Unlock()

	if applied {
		s.notify(Change{Kind: CardsChanged, BoardID: boardID, ColumnID: created.ColumnID, CardID: created.ID})
	}
	return created, nil
}

// EditCard replaces a card's title and content. A card under a pending move
// stays in its optimistic column.
func (s *Session) EditCard(ctx context.Context, cardID, title, content string) (models.Card, error) {
	if err := requireID("id", cardID); err != nil {
		return models.Card{}, err
	}
	title, err := validateTitle(title)
	if err != nil {
		return models.Card{}, err
	}

	gen := s.currentGeneration()
	raw, err := s.remote.Mutate(ctx, remote.OpEditCard, map[string]any{
		"id":      cardID,
		"title":   title,
		"content": content,
	})
	if err != nil {
		return models.Card{}, fetchError(remote.OpEditCard, err)
	}
	edited, err := converters.DecodeCardPayload(raw)
	if err != nil {
		return models.Card{}, fetchError(remote.OpEditCard, err)
	}

	s.mu.Lock()
	applied := false
	if s.generation == gen {
		if cached, ok := s.coll.Card(edited.ID); ok {
			if _, pending := s.inFlight[edited.ID]; pending || edited.ColumnID == "" {
				edited.ColumnID = cached.ColumnID
			}
			applied = s.coll.UpsertCard(edited) == nil
			if applied {
				s.invalidateLocked(columnScope(edited.ColumnID))
				if cached.ColumnID != edited.ColumnID {
					s.invalidateLocked(columnScope(cached.ColumnID))
				}
			}
		}
	}
	boardID := s.coll.BoardID()
	s.mu.Unlock()

	if applied {
		s.notify(Change{Kind: CardsChanged, BoardID: boardID, ColumnID: edited.ColumnID, CardID: edited.ID})
	}
	return edited, nil
}

// RemoveCard deletes a card. A card with a pending move cannot be removed.
func (s *Session) RemoveCard(ctx context.Context, cardID string) error {
	if err := requireID("id", cardID); err != nil {
		return err
	}

	s.mu.Lock()
	if s.pinnedLocked(cardID) {
		s.mu.Unlock()
		return &ConflictError{CardID: cardID, Reason: "card has a move in flight"}
	}
	gen := s.generation
	s.mu.Unlock()

	raw, err := s.remote.Mutate(ctx, remote.OpRemoveCard, map[string]any{"id": cardID})
	if err != nil {
		return fetchError(remote.OpRemoveCard, err)
	}
	if err := converters.DecodeOK(raw); err != nil {
		return fetchError(remote.OpRemoveCard, err)
	}

	s.mu.Lock()
	var columnID string
	applied := false
	if s.generation == gen {
		if card, ok := s.coll.Card(cardID); ok {
			columnID = card.ColumnID
			applied = s.coll.RemoveCard(cardID) == nil
			s.invalidateLocked(columnScope(columnID))
		}
	}
	boardID := s.coll.BoardID()
	s.mu.Unlock()

	if applied {
		s.notify(Change{Kind: CardsChanged, BoardID: boardID, ColumnID: columnID, CardID: cardID})
	}
	return nil
}

// RemoveColumn deletes a column and its cards. A column that is the source
// or destination of a pending move cannot be removed.
func (s *Session) RemoveColumn(ctx context.Context, columnID string) error {
	if err := requireID("id", columnID); err != nil {
		return err
	}

	s.mu.Lock()
	for cardID, tx := range s.inFlight {
		if tx.Source == columnID || tx.Dest == columnID {
			s.mu.Unlock()
			return &ConflictError{CardID: cardID, Reason: "column has a move in flight"}
		}
	}
	gen := s.generation
	s.mu.Unlock()

	raw, err := s.remote.Mutate(ctx, remote.OpRemoveColumn, map[string]any{"id": columnID})
	if err != nil {
		return fetchError(remote.OpRemoveColumn, err)
	}
	if err := converters.DecodeOK(raw); err != nil {
		return fetchError(remote.OpRemoveColumn, err)
	}

	s.mu.Lock()
	applied := s.generation == gen && s.coll.RemoveColumn(columnID) == nil
	boardID := s.coll.BoardID()
	if applied {
		s.invalidateLocked(boardScope(boardID))
	}
	s.mu.Unlock()

	if applied {
		s.notify(Change{Kind: ColumnsChanged, BoardID: boardID, ColumnID: columnID})
	}
	return nil
}

func (s *Session) currentGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}
