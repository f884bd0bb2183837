// Package board keeps a local, ordered view of one kanban board in sync with a
// remote store. Drags are applied optimistically and settled by a single remote
// move; refreshes are pulled on discrete events and never on cache changes.
package board

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/juanbolano/mini-trello/internal/models"
)

// DefaultPendingTimeout bounds how long a move may stay Pending
const DefaultPendingTimeout = 10 * time.Second

// ChangeKind describes what a Change notification is about
type ChangeKind int

const (
	BoardChanged ChangeKind = iota
	ColumnsChanged
	CardsChanged
	TransactionChanged
)

// Change is delivered to OnChange listeners after the cache changed.
type Change struct {
	Kind     ChangeKind
	BoardID  string
	ColumnID string
	CardID   string
	State    TxState
}

// Option configures a Session
type Option func(*Session)

// WithPendingTimeout overrides DefaultPendingTimeout. Non-positive values are ignored.
func WithPendingTimeout(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.pendingTimeout = d
		}
	}
}

// WithLogger sets the logger used by the session
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session is the single cache object for the active board.
//
// mu guards the cache and bookkeeping only. It is never held across a remote
// call, and listeners run after it is released.
type Session struct {
	remote         RemoteStore
	pendingTimeout time.Duration
	logger         *slog.Logger

	mu         sync.Mutex
	board      *models.Board
	coll       *Collection
	generation uint64
	ctx        context.Context
	cancel     context.CancelFunc

	inFlight map[string]*Transaction
	drags    map[string]string
	nextTxID uint64
	seq      map[string]uint64

	listeners    map[int]func(Change)
	nextListener int
}

// NewSession creates a session with no active board
func NewSession(store RemoteStore, opts ...Option) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		remote:         store,
		pendingTimeout: DefaultPendingTimeout,
		logger:         slog.Default(),
		coll:           NewCollection(""),
		ctx:            ctx,
		cancel:         cancel,
		inFlight:       make(map[string]*Transaction),
		drags:          make(map[string]string),
		seq:            make(map[string]uint64),
		listeners:      make(map[int]func(Change)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PendingTimeout returns the bound on a Pending move
func (s *Session) PendingTimeout() time.Duration {
	return s.pendingTimeout
}

// Open lists boards and activates the first one.
func (s *Session) Open(ctx context.Context) (models.Board, error) {
	boards, err := s.ListBoards(ctx)
	if err != nil {
		return models.Board{}, err
	}
	if len(boards) == 0 {
		return models.Board{}, ErrNoBoards
	}
	if err := s.SwitchBoard(ctx, boards[0]); err != nil {
		return boards[0], err
	}
	return boards[0], nil
}

// SwitchBoard makes b the active board and loads its columns and cards.
//
// Outstanding refreshes of the previous board are cancelled and every Pending
// move is marked RolledBack locally. A move already sent to the store may still
// complete there; its result is discarded.
func (s *Session) SwitchBoard(ctx context.Context, b models.Board) error {
	s.mu.Lock()
	s.generation++
	s.cancel()
	s.ctx, s.cancel = context.WithCancel(context.Background())
	previous := s.coll.BoardID()
	var superseded []Change
	for cardID, tx := range s.inFlight {
		tx.State = RolledBack
		tx.Err = ErrSuperseded
		tx.EndedAt = time.Now()
		delete(s.inFlight, cardID)
		superseded = append(superseded, Change{
			Kind:     TransactionChanged,
			BoardID:  previous,
			ColumnID: tx.Source,
			CardID:   cardID,
			State:    RolledBack,
		})
	}
	clear(s.drags)
	active := b
	s.board = &active
	s.coll = NewCollection(b.ID)
	s.mu.Unlock()

	for _, change := range superseded {
		s.notify(change)
	}
	s.logger.Info("switched board", "board_id", b.ID, "title", b.Title)
	s.notify(Change{Kind: BoardChanged, BoardID: b.ID})

	return s.Reload(ctx)
}

// Reload refreshes the active board's columns and then every column's cards.
// A load superseded by a later switch is dropped without error.
func (s *Session) Reload(ctx context.Context) error {
	active, ok := s.ActiveBoard()
	if !ok {
		return ErrNoActiveBoard
	}

	columns, err := s.RefreshColumns(ctx, active.ID)
	if err != nil {
		if isStale(err) {
			return nil
		}
		return err
	}
	return s.refreshAll(ctx, columns)
}

// ActiveBoard returns the active board, if any
func (s *Session) ActiveBoard() (models.Board, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board == nil {
		return models.Board{}, false
	}
	return *s.board, true
}

// CurrentColumns returns a snapshot of the active board's columns in display order
func (s *Session) CurrentColumns() []models.Column {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coll.Columns()
}

// CardsFor returns a snapshot of one column's cards in display order
func (s *Session) CardsFor(columnID string) []models.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coll.CardsFor(columnID)
}

// Card returns the cached card, if present
func (s *Session) Card(cardID string) (models.Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coll.Card(cardID)
}

// Transaction reports the Pending move for cardID, if one exists
func (s *Session) Transaction(cardID string) (Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.inFlight[cardID]
	if !ok {
		return Transaction{}, false
	}
	return *tx, true
}

// PendingCount returns the number of moves currently in flight
func (s *Session) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inFlight)
}

// OnChange registers listener and returns a function that removes it.
// Listeners are called synchronously, outside the session lock.
func (s *Session) OnChange(listener func(Change)) func() {
	s.mu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = listener
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Close cancels outstanding refreshes. The session must not be used afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancel()
}

func (s *Session) notify(change Change) {
	s.mu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	listeners := make([]func(Change), 0, len(ids))
	// registration order
	slices.Sort(ids)
	for _, id := range ids {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(change)
	}
}

// activeLocked returns the active board id and the current generation. Callers hold mu.
func (s *Session) activeLocked() (string, uint64, bool) {
	if s.board == nil {
		return "", s.generation, false
	}
	return s.board.ID, s.generation, true
}

// pinnedLocked reports whether a card is held by a pending move. Callers hold mu.
func (s *Session) pinnedLocked(cardID string) bool {
	_, ok := s.inFlight[cardID]
	return ok
}

// withSessionContext derives a context that is also cancelled by a board switch
func withSessionContext(ctx, session context.Context) (context.Context, context.CancelFunc) {
	callCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(session, cancel)
	return callCtx, func() {
		stop()
		cancel()
	}
}
