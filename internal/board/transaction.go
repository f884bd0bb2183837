package board

import "time"

// TxState is the lifecycle of a drag transaction
type TxState int

const (
	Idle TxState = iota
	Pending
	Committed
	RolledBack
)

func (s TxState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Committed:
		return "committed"
	case RolledBack:
		return "rolled_back"
	default:
		return "unknown"
	}
}

// Transaction is one drag gesture turned into a single remote move.
// Values handed out by Session are snapshots.
type Transaction struct {
	ID        uint64
	CardID    string
	Source    string
	Dest      string
	State     TxState
	Err       error
	StartedAt time.Time
	EndedAt   time.Time
}

// Done reports whether the transaction reached a final state
func (t Transaction) Done() bool {
	return t.State == Committed || t.State == RolledBack
}
