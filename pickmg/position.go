package pickmg

import "math/bits"

// AttackersTo returns all pieces of both colors attacking sq, given an
// occupancy that may differ from the board's (for make-move simulations).
func (b *Board) AttackersTo(sq Square, occ uint64) uint64 {
	return (pawnAttacks[Black][sq] & b.pawns[White]) |
		(pawnAttacks[White][sq] & b.pawns[Black]) |
		(knightMoves[sq] & b.typeBB(PieceTypeKnight)) |
		(kingMoves[sq] & b.typeBB(PieceTypeKing)) |
		(RookAttacks(sq, occ) & (b.typeBB(PieceTypeRook) | b.typeBB(PieceTypeQueen))) |
		(BishopAttacks(sq, occ) & (b.typeBB(PieceTypeBishop) | b.typeBB(PieceTypeQueen)))
}

// IsSquareAttacked reports whether sq is attacked by the given color.
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	return b.AttackersTo(sq, b.AllOccupancy())&b.occupancy[by] != 0
}

// Checkers returns the set of enemy pieces giving check to the side to move.
func (b *Board) Checkers() uint64 {
	ksq := b.KingSquare(b.sideToMove)
	if ksq == NoSquare {
		return 0
	}
	return b.AttackersTo(ksq, b.AllOccupancy()) & b.occupancy[b.sideToMove.Other()]
}

// InCheck reports whether the side to move is in check.
func (b *Board) InCheck() bool { return b.Checkers() != 0 }

// sliderBlockers computes the pieces standing alone between sq and an enemy
// slider in the given set: candidates for pins and discovered checks. It also
// returns the sliders doing the pinning.
func (b *Board) sliderBlockers(sliders uint64, sq Square) (blockers, pinners uint64) {
	snipers := ((pseudoRookAttacks[sq] & (b.typeBB(PieceTypeRook) | b.typeBB(PieceTypeQueen))) |
		(pseudoBishopAttacks[sq] & (b.typeBB(PieceTypeBishop) | b.typeBB(PieceTypeQueen)))) & sliders
	occ := b.AllOccupancy() &^ snipers

	for snipers != 0 {
		sniper := popLSB(&snipers)
		between := betweenBB[sq][sniper] & occ
		if between != 0 && !moreThanOne(between) {
			blockers |= between
			if between&b.occupancy[b.pieces[sq].Color()] != 0 {
				pinners |= bb(sniper)
			}
		}
	}
	return blockers, pinners
}

// BlockersForKing returns the pieces (of either color) that block a slider
// attack on the given side's king. Own pieces in this set are pinned.
func (b *Board) BlockersForKing(c Color) uint64 {
	ksq := b.KingSquare(c)
	if ksq == NoSquare {
		return 0
	}
	blockers, _ := b.sliderBlockers(b.occupancy[c.Other()], ksq)
	return blockers
}

// Pinned returns the side's own pieces pinned against its king.
func (b *Board) Pinned(c Color) uint64 {
	return b.BlockersForKing(c) & b.occupancy[c]
}

// CheckSquares returns the squares from which a piece of the given type
// (of the side to move) would give check to the enemy king.
func (b *Board) CheckSquares(pt PieceType) uint64 {
	ksq := b.KingSquare(b.sideToMove.Other())
	if ksq == NoSquare {
		return 0
	}
	occ := b.AllOccupancy()
	switch pt {
	case PieceTypePawn:
		return pawnAttacks[b.sideToMove.Other()][ksq]
	case PieceTypeKnight:
		return knightMoves[ksq]
	case PieceTypeBishop:
		return BishopAttacks(ksq, occ)
	case PieceTypeRook:
		return RookAttacks(ksq, occ)
	case PieceTypeQueen:
		return RookAttacks(ksq, occ) | BishopAttacks(ksq, occ)
	}
	return 0
}

// IsCapture reports whether the move takes an enemy piece (en passant included).
func (b *Board) IsCapture(m Move) bool {
	return b.pieces[m.To()] != NoPiece || m.Flag() == FlagEnPassant
}

// castleRookFromTo gives the rook's movement for a castling move encoded as
// the king's two-square step.
func castleRookFromTo(to Square) (Square, Square) {
	switch to {
	case 6: // g1
		return 7, 5
	case 2: // c1
		return 0, 3
	case 62: // g8
		return 63, 61
	case 58: // c8
		return 56, 59
	}
	return NoSquare, NoSquare
}

// Legal reports whether a pseudo-legal move does not leave the mover's own
// king in check. Moves not produced by the generator give undefined results.
func (b *Board) Legal(m Move) bool {
	us := b.sideToMove
	them := us.Other()
	from := m.From()
	to := m.To()
	ksq := b.KingSquare(us)

	switch m.Flag() {
	case FlagEnPassant:
		// Simulate the capture: both the mover and the captured pawn leave
		// their squares, which can expose the king along either line.
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		occ := b.AllOccupancy()&^bb(from)&^bb(capSq) | bb(to)
		return RookAttacks(ksq, occ)&(b.rooks[them]|b.queens[them]) == 0 &&
			BishopAttacks(ksq, occ)&(b.bishops[them]|b.queens[them]) == 0

	case FlagCastle:
		// The king may not pass through or land on an attacked square.
		step := Square(1)
		if to < from {
			step = -1
		}
		for sq := from + step; ; sq += step {
			if b.AttackersTo(sq, b.AllOccupancy())&b.occupancy[them] != 0 {
				return false
			}
			if sq == to {
				return true
			}
		}
	}

	if from == ksq {
		// King move: destination must not be attacked once the king has left
		// its own square (a slider may attack "through" the old king square).
		return b.AttackersTo(to, b.AllOccupancy()&^bb(from))&b.occupancy[them] == 0
	}

	// Any other move is legal unless the piece is pinned and leaves its line.
	return b.Pinned(us)&bb(from) == 0 || aligned(from, to, ksq)
}

// PseudoLegal reports whether a move obeys piece movement rules and board
// occupancy in the current position. Used to validate moves coming from
// outside the generator (transposition table, killers, counters).
func (b *Board) PseudoLegal(m Move) bool {
	if m == MoveNone {
		return false
	}
	us := b.sideToMove
	from := m.From()
	to := m.To()
	pc := b.pieces[from]

	// Special moves are validated against the generated move list: they are
	// rare and their rules interact with too much state to re-derive here.
	if m.Flag() != FlagNormal {
		var buf [MaxMoves]Move
		var list []Move
		if b.Checkers() != 0 {
			list = Generate(GenEvasions, b, buf[:0])
		} else {
			list = Generate(GenNonEvasions, b, buf[:0])
		}
		for _, gen := range list {
			if gen == m {
				return true
			}
		}
		return false
	}

	if pc == NoPiece || pc.Color() != us {
		return false
	}
	if b.occupancy[us]&bb(to) != 0 {
		return false
	}

	if pc.Type() == PieceTypePawn {
		// A plain move cannot reach the last rank; that needs a promotion flag.
		if bb(to)&(rank1BB|rank8BB) != 0 {
			return false
		}
		occ := b.AllOccupancy()
		ok := pawnAttacks[us][from]&b.occupancy[us.Other()]&bb(to) != 0
		if !ok {
			push := from + 8
			if us == Black {
				push = from - 8
			}
			if to == push && occ&bb(to) == 0 {
				ok = true
			} else if from.RelativeRank(us) == 1 && to == push+(push-from) &&
				occ&bb(push) == 0 && occ&bb(to) == 0 {
				ok = true
			}
		}
		if !ok {
			return false
		}
	} else if AttacksBB(pc.Type(), from, b.AllOccupancy())&bb(to) == 0 {
		return false
	}

	// Under check a pseudo-legal move must be a plausible evasion.
	if checkers := b.Checkers(); checkers != 0 {
		if pc.Type() != PieceTypeKing {
			if moreThanOne(checkers) {
				return false
			}
			checksq := Square(bits.TrailingZeros64(checkers))
			if (betweenBB[b.KingSquare(us)][checksq]|checkers)&bb(to) == 0 {
				return false
			}
		} else if b.AttackersTo(to, b.AllOccupancy()&^bb(from))&b.occupancy[us.Other()] != 0 {
			return false
		}
	}
	return true
}

// GivesCheck reports whether a pseudo-legal move by the side to move checks
// the opponent's king.
func (b *Board) GivesCheck(m Move) bool {
	us := b.sideToMove
	them := us.Other()
	ksq := b.KingSquare(them)
	if ksq == NoSquare {
		return false
	}
	from := m.From()
	to := m.To()

	// Direct check from the destination square.
	pt := b.pieces[from].Type()
	if m.Flag() == FlagPromotion {
		pt = m.PromotionType()
	}
	occAfter := b.AllOccupancy()&^bb(from) | bb(to)
	switch pt {
	case PieceTypePawn:
		if pawnAttacks[us][to]&bb(ksq) != 0 {
			return true
		}
	default:
		if AttacksBB(pt, to, occAfter)&bb(ksq) != 0 {
			return true
		}
	}

	// Discovered check: the mover leaves a line between a friendly slider and
	// the enemy king.
	if b.BlockersForKing(them)&bb(from) != 0 && !aligned(from, to, ksq) {
		return true
	}

	switch m.Flag() {
	case FlagEnPassant:
		// The captured pawn's square opening a line is not covered above.
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		occ := b.AllOccupancy()&^bb(from)&^bb(capSq) | bb(to)
		return RookAttacks(ksq, occ)&(b.rooks[us]|b.queens[us]) != 0 ||
			BishopAttacks(ksq, occ)&(b.bishops[us]|b.queens[us]) != 0

	case FlagCastle:
		rFrom, rTo := castleRookFromTo(to)
		occ := b.AllOccupancy()&^bb(from)&^bb(rFrom) | bb(to) | bb(rTo)
		return RookAttacks(rTo, occ)&bb(ksq) != 0
	}
	return false
}
