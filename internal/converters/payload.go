package converters

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/juanbolano/mini-trello/internal/models"
)

// ErrEmptyPayload is returned when a mutation result carries no entity
var ErrEmptyPayload = errors.New("empty payload")

// BoardPayload is the result of addBoard
type BoardPayload struct {
	Board *BoardDTO `json:"board"`
}

// ColumnPayload is the result of addColumn
type ColumnPayload struct {
	Column *ColumnDTO `json:"column"`
}

// CardPayload is the result of addCard, editCard and updateCardStatus
type CardPayload struct {
	Card *CardDTO `json:"card"`
}

// OKPayload is the result of removeCard and removeColumn
type OKPayload struct {
	OK bool `json:"ok"`
}

// DecodeBoards decodes a boards query result
func DecodeBoards(raw json.RawMessage) ([]models.Board, error) {
	var dtos []BoardDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, fmt.Errorf("decoding boards: %w", err)
	}
	boards := make([]models.Board, len(dtos))
	for i, d := range dtos {
		boards[i] = BoardToModel(d)
	}
	return boards, nil
}

// DecodeColumns decodes a columns query result
func DecodeColumns(raw json.RawMessage) ([]models.Column, error) {
	var dtos []ColumnDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, fmt.Errorf("decoding columns: %w", err)
	}
	columns := make([]models.Column, len(dtos))
	for i, d := range dtos {
		columns[i] = ColumnToModel(d)
	}
	return columns, nil
}

// DecodeCards decodes a cards query result
func DecodeCards(raw json.RawMessage) ([]models.Card, error) {
	var dtos []CardDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, fmt.Errorf("decoding cards: %w", err)
	}
	cards := make([]models.Card, 0, len(dtos))
	for _, d := range dtos {
		card, err := CardToModel(d)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// DecodeBoardPayload decodes an addBoard result
func DecodeBoardPayload(raw json.RawMessage) (models.Board, error) {
	var p BoardPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return models.Board{}, fmt.Errorf("decoding board payload: %w", err)
	}
	if p.Board == nil {
		return models.Board{}, ErrEmptyPayload
	}
	return BoardToModel(*p.Board), nil
}

// DecodeColumnPayload decodes an addColumn result
func DecodeColumnPayload(raw json.RawMessage) (models.Column, error) {
	var p ColumnPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return models.Column{}, fmt.Errorf("decoding column payload: %w", err)
	}
	if p.Column == nil {
		return models.Column{}, ErrEmptyPayload
	}
	return ColumnToModel(*p.Column), nil
}

// DecodeCardPayload decodes a card mutation result
func DecodeCardPayload(raw json.RawMessage) (models.Card, error) {
	var p CardPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return models.Card{}, fmt.Errorf("decoding card payload: %w", err)
	}
	if p.Card == nil {
		return models.Card{}, ErrEmptyPayload
	}
	return CardToModel(*p.Card)
}

// DecodeOK decodes a remove result. A false ok is reported as an error.
func DecodeOK(raw json.RawMessage) error {
	var p OKPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("decoding ok payload: %w", err)
	}
	if !p.OK {
		return errors.New("remote reported ok=false")
	}
	return nil
}
