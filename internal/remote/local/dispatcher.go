// Package local serves board operations from the sqlite store. The dispatcher
// is used in-process by the CLI and behind the socket daemon and HTTP API.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/juanbolano/mini-trello/internal/converters"
	"github.com/juanbolano/mini-trello/internal/database"
	"github.com/juanbolano/mini-trello/internal/models"
	"github.com/juanbolano/mini-trello/internal/remote"
	boardservice "github.com/juanbolano/mini-trello/internal/services/board"
	cardservice "github.com/juanbolano/mini-trello/internal/services/card"
	columnservice "github.com/juanbolano/mini-trello/internal/services/column"
)

// Dispatcher runs named operations against the services
type Dispatcher struct {
	boards  boardservice.Service
	columns columnservice.Service
	cards   cardservice.Service
}

var _ remote.Store = (*Dispatcher)(nil)

// New creates a dispatcher over explicit services
func New(boards boardservice.Service, columns columnservice.Service, cards cardservice.Service) *Dispatcher {
	return &Dispatcher{boards: boards, columns: columns, cards: cards}
}

// NewFromRepository wires the services over one repository
func NewFromRepository(repo *database.Repository) *Dispatcher {
	return New(
		boardservice.NewService(repo),
		columnservice.NewService(repo),
		cardservice.NewService(repo),
	)
}

// Query runs a read operation
func (d *Dispatcher) Query(ctx context.Context, name string, args map[string]any) (json.RawMessage, error) {
	var (
		result any
		err    error
	)

	switch name {
	case remote.OpBoards:
		result, err = d.listBoards(ctx)
	case remote.OpColumns:
		result, err = d.listColumns(ctx, args)
	case remote.OpCards:
		result, err = d.listCards(ctx, args)
	default:
		return nil, &remote.RemoteError{Code: remote.CodeBadRequest, Message: fmt.Sprintf("unknown query %q", name)}
	}
	if err != nil {
		return nil, classify(name, err)
	}
	return encode(result)
}

// Mutate runs a write operation
func (d *Dispatcher) Mutate(ctx context.Context, name string, args map[string]any) (json.RawMessage, error) {
	var (
		result any
		err    error
	)

	switch name {
	case remote.OpAddBoard:
		result, err = d.addBoard(ctx, args)
	case remote.OpAddColumn:
		result, err = d.addColumn(ctx, args)
	case remote.OpAddCard:
		result, err = d.addCard(ctx, args)
	case remote.OpEditCard:
		result, err = d.editCard(ctx, args)
	case remote.OpUpdateCardStatus:
		result, err = d.updateCardStatus(ctx, args)
	case remote.OpRemoveCard:
		result, err = d.removeCard(ctx, args)
	case remote.OpRemoveColumn:
		result, err = d.removeColumn(ctx, args)
	default:
		return nil, &remote.RemoteError{Code: remote.CodeBadRequest, Message: fmt.Sprintf("unknown mutation %q", name)}
	}
	if err != nil {
		return nil, classify(name, err)
	}
	return encode(result)
}

func (d *Dispatcher) listBoards(ctx context.Context) (any, error) {
	boards, err := d.boards.ListBoards(ctx)
	if err != nil {
		return nil, err
	}
	return converters.BoardsFromModels(boards), nil
}

func (d *Dispatcher) listColumns(ctx context.Context, args map[string]any) (any, error) {
	boardID, err := remote.StringArg(args, "board")
	if err != nil {
		return nil, err
	}
	columns, err := d.columns.GetColumnsByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	return converters.ColumnsFromModels(columns), nil
}

func (d *Dispatcher) listCards(ctx context.Context, args map[string]any) (any, error) {
	columnID, err := remote.StringArg(args, "column")
	if err != nil {
		return nil, err
	}
	cards, err := d.cards.GetCardsByColumn(ctx, columnID)
	if err != nil {
		return nil, err
	}
	return converters.CardsFromModels(cards), nil
}

func (d *Dispatcher) addBoard(ctx context.Context, args map[string]any) (any, error) {
	title, err := remote.StringArg(args, "title")
	if err != nil {
		return nil, err
	}
	b, err := d.boards.CreateBoard(ctx, boardservice.CreateBoardRequest{Title: title})
	if err != nil {
		return nil, err
	}
	dto := converters.BoardFromModel(*b)
	return converters.BoardPayload{Board: &dto}, nil
}

func (d *Dispatcher) addColumn(ctx context.Context, args map[string]any) (any, error) {
	title, err := remote.StringArg(args, "title")
	if err != nil {
		return nil, err
	}
	boardID, err := remote.StringArg(args, "board")
	if err != nil {
		return nil, err
	}
	order, err := remote.IntArg(args, "order")
	if err != nil {
		return nil, err
	}
	col, err := d.columns.CreateColumn(ctx, columnservice.CreateColumnRequest{
		Title:   title,
		BoardID: boardID,
		Order:   order,
	})
	if err != nil {
		return nil, err
	}
	dto := converters.ColumnFromModel(*col)
	return converters.ColumnPayload{Column: &dto}, nil
}

func (d *Dispatcher) addCard(ctx context.Context, args map[string]any) (any, error) {
	title, err := remote.StringArg(args, "title")
	if err != nil {
		return nil, err
	}
	content, err := remote.OptionalStringArg(args, "content")
	if err != nil {
		return nil, err
	}
	columnID, err := remote.StringArg(args, "column")
	if err != nil {
		return nil, err
	}
	c, err := d.cards.CreateCard(ctx, cardservice.CreateCardRequest{
		Title:    title,
		Content:  content,
		ColumnID: columnID,
	})
	if err != nil {
		return nil, err
	}
	return cardPayload(c), nil
}

func (d *Dispatcher) editCard(ctx context.Context, args map[string]any) (any, error) {
	id, err := remote.StringArg(args, "id")
	if err != nil {
		return nil, err
	}
	title, err := remote.StringArg(args, "title")
	if err != nil {
		return nil, err
	}
	content, err := remote.OptionalStringArg(args, "content")
	if err != nil {
		return nil, err
	}
	c, err := d.cards.UpdateCard(ctx, cardservice.UpdateCardRequest{ID: id, Title: title, Content: content})
	if err != nil {
		return nil, err
	}
	return cardPayload(c), nil
}

func (d *Dispatcher) updateCardStatus(ctx context.Context, args map[string]any) (any, error) {
	id, err := remote.StringArg(args, "id")
	if err != nil {
		return nil, err
	}
	columnID, err := remote.StringArg(args, "column")
	if err != nil {
		return nil, err
	}
	c, err := d.cards.MoveCard(ctx, id, columnID)
	if err != nil {
		return nil, err
	}
	return cardPayload(c), nil
}

func (d *Dispatcher) removeCard(ctx context.Context, args map[string]any) (any, error) {
	id, err := remote.StringArg(args, "id")
	if err != nil {
		return nil, err
	}
	if err := d.cards.DeleteCard(ctx, id); err != nil {
		return nil, err
	}
	return converters.OKPayload{OK: true}, nil
}

func (d *Dispatcher) removeColumn(ctx context.Context, args map[string]any) (any, error) {
	id, err := remote.StringArg(args, "id")
	if err != nil {
		return nil, err
	}
	if err := d.columns.DeleteColumn(ctx, id); err != nil {
		return nil, err
	}
	return converters.OKPayload{OK: true}, nil
}

func cardPayload(c *models.Card) converters.CardPayload {
	dto := converters.CardFromModel(*c)
	return converters.CardPayload{Card: &dto}
}

func encode(v any) (json.RawMessage, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, &remote.RemoteError{Code: remote.CodeInternal, Message: err.Error()}
	}
	return raw, nil
}

var notFound = []error{
	boardservice.ErrBoardNotFound,
	columnservice.ErrBoardNotFound,
	columnservice.ErrColumnNotFound,
	cardservice.ErrCardNotFound,
	cardservice.ErrColumnNotFound,
}

var invalid = []error{
	boardservice.ErrEmptyTitle,
	boardservice.ErrTitleTooLong,
	boardservice.ErrInvalidBoardID,
	columnservice.ErrEmptyTitle,
	columnservice.ErrTitleTooLong,
	columnservice.ErrInvalidBoardID,
	columnservice.ErrInvalidColumnID,
	cardservice.ErrEmptyTitle,
	cardservice.ErrTitleTooLong,
	cardservice.ErrInvalidCardID,
	cardservice.ErrInvalidColumnID,
}

// classify maps service errors to remote error codes
func classify(op string, err error) error {
	var re *remote.RemoteError
	if errors.As(err, &re) {
		return re
	}
	for _, target := range notFound {
		if errors.Is(err, target) {
			return &remote.RemoteError{Code: remote.CodeNotFound, Message: err.Error()}
		}
	}
	for _, target := range invalid {
		if errors.Is(err, target) {
			return &remote.RemoteError{Code: remote.CodeValidation, Message: err.Error()}
		}
	}
	slog.Error("operation failed", "op", op, "error", err)
	return &remote.RemoteError{Code: remote.CodeInternal, Message: "internal error"}
}
