package board

// Outcome records how a game has ended.
type Outcome uint8

const (
	// OutcomeNone is when the game is still in progress.
	OutcomeNone Outcome = iota

	// OutcomeWhiteLost is when White has been checkmated or lost its King.
	OutcomeWhiteLost

	// OutcomeBlackLost is when Black has been checkmated or lost its King.
	OutcomeBlackLost

	// OutcomeDraw is when the side to move cannot move and its King is not in check.
	OutcomeDraw
)

// NewOutcomeLost returns the outcome where side s lost the game.
func NewOutcomeLost(s Side) Outcome {
	if s == SideWhite {
		return OutcomeWhiteLost
	}
	return OutcomeBlackLost
}

func (o Outcome) IsEnded() bool {
	return o != OutcomeNone
}

func (o Outcome) IsDraw() bool {
	return o == OutcomeDraw
}

// Loser returns the losing side. ok is false while running or on a draw.
func (o Outcome) Loser() (Side, bool) {
	switch o {
	case OutcomeWhiteLost:
		return SideWhite, true
	case OutcomeBlackLost:
		return SideBlack, true
	default:
		return SideWhite, false
	}
}

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "Running"
	case OutcomeWhiteLost:
		return "Black wins"
	case OutcomeBlackLost:
		return "White wins"
	case OutcomeDraw:
		return "Stalemate"
	default:
		return ""
	}
}
