package replay

import (
	"errors"
	"fmt"

	"keeper-ledger/internal/domain"
)

// ErrInvalidMove is returned when a move carries an unknown kind.
var ErrInvalidMove = errors.New("invalid move")

// TradeError reports the move that aborted a replay, with the trade it belongs to.
// Err is the underlying ledger error; errors.Is sees through TradeError to it.
type TradeError struct {
	TradeID     string
	Description string
	MoveIndex   int // 0-based index into Trade.Moves
	Move        domain.Move
	Err         error
}

func (e *TradeError) Error() string {
	return fmt.Sprintf("trade %s (%s) move %d [%s]: %v", e.TradeID, e.Description, e.MoveIndex+1, e.Move, e.Err)
}

func (e *TradeError) Unwrap() error {
	return e.Err
}
