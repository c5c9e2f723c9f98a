package pickmg

// SeeValue holds the piece values used by static exchange evaluation,
// indexed by PieceType.
var SeeValue = [7]int32{
	PieceTypePawn:   100,
	PieceTypeKnight: 300,
	PieceTypeBishop: 300,
	PieceTypeRook:   500,
	PieceTypeQueen:  900,
	PieceTypeKing:   5000,
}

// SeeGe statically evaluates the capture sequence triggered by the move and
// reports whether its material outcome is at least the threshold. Castling,
// en passant and promotions are approximated as an even exchange.
func (b *Board) SeeGe(m Move, threshold int32) bool {
	if m.Flag() != FlagNormal {
		return threshold <= 0
	}

	from := m.From()
	to := m.To()

	swap := SeeValue[b.pieces[to].Type()] - threshold
	if swap < 0 {
		return false // capturing for free is not enough
	}

	swap = SeeValue[b.pieces[from].Type()] - swap
	if swap <= 0 {
		return true // opponent recapture cannot drop us below the threshold
	}

	occ := b.AllOccupancy() &^ bb(from) &^ bb(to)
	stm := b.pieces[from].Color()
	attackers := b.AttackersTo(to, occ)
	res := true

	for {
		stm = stm.Other()
		attackers &= occ

		stmAttackers := attackers & b.occupancy[stm]
		if stmAttackers == 0 {
			break
		}

		res = !res

		// Pick the least valuable attacker, add x-ray attackers revealed
		// behind it, and flip the balance.
		if pawns := stmAttackers & b.pawns[stm]; pawns != 0 {
			swap = SeeValue[PieceTypePawn] - swap
			if swap < seeBreak(res) {
				break
			}
			occ ^= lsbBB(pawns)
			attackers |= BishopAttacks(to, occ) & (b.typeBB(PieceTypeBishop) | b.typeBB(PieceTypeQueen))
		} else if knights := stmAttackers & b.knights[stm]; knights != 0 {
			swap = SeeValue[PieceTypeKnight] - swap
			if swap < seeBreak(res) {
				break
			}
			occ ^= lsbBB(knights)
		} else if bishops := stmAttackers & b.bishops[stm]; bishops != 0 {
			swap = SeeValue[PieceTypeBishop] - swap
			if swap < seeBreak(res) {
				break
			}
			occ ^= lsbBB(bishops)
			attackers |= BishopAttacks(to, occ) & (b.typeBB(PieceTypeBishop) | b.typeBB(PieceTypeQueen))
		} else if rooks := stmAttackers & b.rooks[stm]; rooks != 0 {
			swap = SeeValue[PieceTypeRook] - swap
			if swap < seeBreak(res) {
				break
			}
			occ ^= lsbBB(rooks)
			attackers |= RookAttacks(to, occ) & (b.typeBB(PieceTypeRook) | b.typeBB(PieceTypeQueen))
		} else if queens := stmAttackers & b.queens[stm]; queens != 0 {
			swap = SeeValue[PieceTypeQueen] - swap
			if swap < seeBreak(res) {
				break
			}
			occ ^= lsbBB(queens)
			attackers |= (BishopAttacks(to, occ) & (b.typeBB(PieceTypeBishop) | b.typeBB(PieceTypeQueen))) |
				(RookAttacks(to, occ) & (b.typeBB(PieceTypeRook) | b.typeBB(PieceTypeQueen)))
		} else {
			// King takes: only if the opponent has no attackers left,
			// otherwise the king capture would be illegal.
			if attackers&^b.occupancy[stm] != 0 {
				return !res
			}
			return res
		}
	}
	return res
}

// lsbBB isolates the least significant set bit.
func lsbBB(b uint64) uint64 { return b & -b }

// seeBreak is the balance below which the side on the current exchange step
// gives up: 1 when the result bit currently favors the mover, else 0. This
// reproduces the tie behavior of the alternating swap algorithm.
func seeBreak(res bool) int32 {
	if res {
		return 1
	}
	return 0
}

// See returns the full static exchange value of a capture in centipawns,
// derived from SeeGe by binary search over thresholds. Intended for tests
// and diagnostics; hot paths use SeeGe directly.
func (b *Board) See(m Move) int32 {
	lo, hi := int32(-2*SeeValue[PieceTypeQueen]), int32(2*SeeValue[PieceTypeQueen])
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if b.SeeGe(m, mid) {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
