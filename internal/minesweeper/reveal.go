package minesweeper

// OutcomeKind classifies the result of a reveal.
type OutcomeKind int

const (
	// OutcomeSafe means a safe cell was revealed.
	OutcomeSafe OutcomeKind = iota
	// OutcomeMine means a mine was revealed; the game is lost.
	OutcomeMine
	// OutcomeAlreadyHandled means the board rejected the reveal
	// (the cell is flagged or already revealed) and nothing changed.
	OutcomeAlreadyHandled
)

// String returns a human-readable name for the kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSafe:
		return "Safe"
	case OutcomeMine:
		return "Mine"
	case OutcomeAlreadyHandled:
		return "AlreadyHandled"
	default:
		return "Unknown"
	}
}

// RevealOutcome is the result of revealing one cell.
type RevealOutcome struct {
	Kind OutcomeKind
	// Count is the neighbor mine count of the target when Kind is OutcomeSafe.
	Count int
	// Revealed lists every cell uncovered by this call: the target first,
	// then cascade cells in the order they were opened.
	Revealed []Position
}

// RevealCell uncovers pos. If it holds Count(0), every covered neighbor is
// uncovered too, and the cascade continues from each newly opened zero cell.
// Counted cells stop the cascade; flagged cells are skipped and stay flagged.
//
// The cascade uses an explicit stack, so board size is the only bound.
// When the board rejects the reveal the outcome is OutcomeAlreadyHandled and
// the returned error wraps ErrInvalidTransition (or ErrOutOfBounds).
func RevealCell(b *Board, pos Position) (RevealOutcome, error) {
	content, err := b.Reveal(pos)
	if err != nil {
		return RevealOutcome{Kind: OutcomeAlreadyHandled}, err
	}

	outcome := RevealOutcome{Revealed: []Position{pos}}
	if content.IsMine() {
		outcome.Kind = OutcomeMine
		outcome.Count = -1
		return outcome, nil
	}

	outcome.Kind = OutcomeSafe
	outcome.Count = content.Count()
	if content.Count() == 0 {
		outcome.Revealed = cascade(b, pos, outcome.Revealed)
	}
	return outcome, nil
}

// cascade opens the zero region around start. Revealed is terminal, so cell
// state doubles as the visited set.
func cascade(b *Board, start Position, revealed []Position) []Position {
	stack := []Position{start}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, n := range b.Neighbors(p) {
			if b.State(n) != Covered {
				continue
			}
			content, err := b.Reveal(n)
			if err != nil {
				continue
			}
			revealed = append(revealed, n)
			if content.Count() == 0 {
				stack = append(stack, n)
			}
		}
	}
	return revealed
}
