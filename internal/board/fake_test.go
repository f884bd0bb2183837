package board

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/juanbolano/mini-trello/internal/converters"
	"github.com/juanbolano/mini-trello/internal/models"
	"github.com/juanbolano/mini-trello/internal/remote"
)

// fakeStore is an in-memory RemoteStore. Hooks run outside its lock so tests
// can block a call or fail it.
type fakeStore struct {
	mu      sync.Mutex
	boards  []models.Board
	columns map[string]models.Column
	cards   map[string]models.Card
	calls   map[string]int
	nextID  int
	clock   time.Time

	failQuery  map[string]error
	failMutate map[string]error

	// queryHook runs after the response was computed
	queryHook func(ctx context.Context, name string, args map[string]any) error
	// mutateHook runs before the mutation is applied
	mutateHook func(ctx context.Context, name string, args map[string]any) error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		columns:    make(map[string]models.Column),
		cards:      make(map[string]models.Card),
		calls:      make(map[string]int),
		clock:      time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		failQuery:  make(map[string]error),
		failMutate: make(map[string]error),
	}
}

// seedBoard adds a board with columns named by titles, ids "<boardID>-<index>"
func (f *fakeStore) seedBoard(boardID, title string, columnTitles ...string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.boards = append(f.boards, models.Board{ID: boardID, Title: title})
	ids := make([]string, len(columnTitles))
	for i, columnTitle := range columnTitles {
		id := fmt.Sprintf("%s-%d", boardID, i)
		f.columns[id] = models.Column{ID: id, Title: columnTitle, BoardID: boardID, Order: i}
		ids[i] = id
	}
	return ids
}

func (f *fakeStore) seedCard(id, columnID, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clock = f.clock.Add(time.Second)
	f.cards[id] = models.Card{ID: id, Title: title, ColumnID: columnID, CreatedAt: f.clock}
}

func (f *fakeStore) setCardColumn(id, columnID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	card := f.cards[id]
	card.ColumnID = columnID
	f.cards[id] = card
}

func (f *fakeStore) setCardTitle(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	card := f.cards[id]
	card.Title = title
	f.cards[id] = card
}

func (f *fakeStore) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeStore) setQueryHook(hook func(ctx context.Context, name string, args map[string]any) error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queryHook = hook
}

func (f *fakeStore) setMutateHook(hook func(ctx context.Context, name string, args map[string]any) error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mutateHook = hook
}

func (f *fakeStore) Query(ctx context.Context, name string, args map[string]any) (json.RawMessage, error) {
	f.mu.Lock()
	f.calls[name]++
	if err := f.failQuery[name]; err != nil {
		f.mu.Unlock()
		return nil, err
	}
	var result any
	switch name {
	case remote.OpBoards:
		result = converters.BoardsFromModels(f.boards)
	case remote.OpColumns:
		var columns []models.Column
		for _, col := range f.columns {
			if col.BoardID == args["board"] {
				columns = append(columns, col)
			}
		}
		models.SortColumns(columns)
		result = converters.ColumnsFromModels(columns)
	case remote.OpCards:
		var cards []models.Card
		for _, card := range f.cards {
			if card.ColumnID == args["column"] {
				cards = append(cards, card)
			}
		}
		models.SortCards(cards)
		result = converters.CardsFromModels(cards)
	default:
		f.mu.Unlock()
		return nil, fmt.Errorf("unknown query %q", name)
	}
	hook := f.queryHook
	f.mu.Unlock()

	raw, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	if hook != nil {
		if err := hook(ctx, name, args); err != nil {
			return nil, err
		}
	}
	return raw, nil
}

func (f *fakeStore) Mutate(ctx context.Context, name string, args map[string]any) (json.RawMessage, error) {
	f.mu.Lock()
	f.calls[name]++
	hook := f.mutateHook
	failure := f.failMutate[name]
	f.mu.Unlock()

	if hook != nil {
		if err := hook(ctx, name, args); err != nil {
			return nil, err
		}
	}
	if failure != nil {
		return nil, failure
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	str := func(key string) string {
		s, _ := args[key].(string)
		return s
	}

	var result any
	switch name {
	case remote.OpAddBoard:
		f.nextID++
		b := models.Board{ID: fmt.Sprintf("board-%d", f.nextID), Title: str("title")}
		f.boards = append(f.boards, b)
		dto := converters.BoardFromModel(b)
		result = converters.BoardPayload{Board: &dto}
	case remote.OpAddColumn:
		f.nextID++
		order, _ := args["order"].(int)
		col := models.Column{ID: fmt.Sprintf("column-%d", f.nextID), Title: str("title"), BoardID: str("board"), Order: order}
		f.columns[col.ID] = col
		dto := converters.ColumnFromModel(col)
		result = converters.ColumnPayload{Column: &dto}
	case remote.OpAddCard:
		if _, ok := f.columns[str("column")]; !ok {
			return nil, fmt.Errorf("column %s not found", str("column"))
		}
		f.nextID++
		f.clock = f.clock.Add(time.Second)
		card := models.Card{
			ID:        fmt.Sprintf("card-%d", f.nextID),
			Title:     str("title"),
			Content:   str("content"),
			ColumnID:  str("column"),
			CreatedAt: f.clock,
		}
		f.cards[card.ID] = card
		dto := converters.CardFromModel(card)
		result = converters.CardPayload{Card: &dto}
	case remote.OpEditCard:
		card, ok := f.cards[str("id")]
		if !ok {
			return nil, fmt.Errorf("card %s not found", str("id"))
		}
		card.Title = str("title")
		card.Content = str("content")
		f.cards[card.ID] = card
		dto := converters.CardFromModel(card)
		result = converters.CardPayload{Card: &dto}
	case remote.OpUpdateCardStatus:
		card, ok := f.cards[str("id")]
		if !ok {
			return nil, fmt.Errorf("card %s not found", str("id"))
		}
		card.ColumnID = str("column")
		f.cards[card.ID] = card
		dto := converters.CardFromModel(card)
		result = converters.CardPayload{Card: &dto}
	case remote.OpRemoveCard:
		delete(f.cards, str("id"))
		result = converters.OKPayload{OK: true}
	case remote.OpRemoveColumn:
		delete(f.columns, str("id"))
		for id, card := range f.cards {
			if card.ColumnID == str("id") {
				delete(f.cards, id)
			}
		}
		result = converters.OKPayload{OK: true}
	default:
		return nil, fmt.Errorf("unknown mutation %q", name)
	}
	return json.Marshal(result)
}

// fixture is a session opened on a board with Backlog, Doing and Done columns
// and one card c1 in Backlog.
type fixture struct {
	store   *fakeStore
	session *Session
	backlog string
	doing   string
	done    string
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	store := newFakeStore()
	ids := store.seedBoard("b1", "Sprint", "Backlog", "Doing", "Done")
	store.seedCard("c1", ids[0], "Write docs")

	session := NewSession(store, opts...)
	t.Cleanup(session.Close)

	if _, err := session.Open(context.Background()); err != nil {
		t.Fatalf("Failed to open session: %v", err)
	}
	return &fixture{store: store, session: session, backlog: ids[0], doing: ids[1], done: ids[2]}
}

func cardIDs(cards []models.Card) []string {
	ids := make([]string, len(cards))
	for i, card := range cards {
		ids[i] = card.ID
	}
	return ids
}

func containsCard(cards []models.Card, id string) bool {
	for _, card := range cards {
		if card.ID == id {
			return true
		}
	}
	return false
}

// waitFor receives from ch or fails the test after a generous deadline
func waitFor[T any](t *testing.T, ch <-chan T, what string) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(5 * time.Second):
		t.Fatalf("Timed out waiting for %s", what)
	}
	var zero T
	return zero
}
