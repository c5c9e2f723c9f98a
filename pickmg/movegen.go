package pickmg

import "math/bits"

// GenType selects which subset of moves Generate produces. The modes are
// mutually exclusive requests, not states.
type GenType int

const (
	// GenCaptures: pseudo-legal captures plus queen promotions. Side to move
	// must not be in check.
	GenCaptures GenType = iota
	// GenQuiets: pseudo-legal non-captures plus underpromotions. Not in check.
	GenQuiets
	// GenQuietChecks: pseudo-legal non-captures that give check, including
	// checking knight underpromotions. Not in check.
	GenQuietChecks
	// GenEvasions: king retreats, checker captures and interpositions. Side
	// to move must be in check.
	GenEvasions
	// GenNonEvasions: all pseudo-legal moves. Not in check.
	GenNonEvasions
	// GenLegal: evasions or non-evasions as appropriate, filtered down to
	// fully legal moves.
	GenLegal
)

// MaxMoves bounds the number of moves in any reachable position.
const MaxMoves = 256

// Generate appends all moves of the requested kind for the side to move into
// dst and returns the extended slice. dst is used as-is; pass list[:0] to
// reuse a buffer.
func Generate(gt GenType, b *Board, dst []Move) []Move {
	switch gt {
	case GenLegal:
		return generateLegal(b, dst)
	case GenEvasions:
		return generateEvasions(b, dst)
	case GenQuietChecks:
		return generateQuietChecks(b, dst)
	}

	us := b.sideToMove
	var target uint64
	switch gt {
	case GenCaptures:
		target = b.occupancy[us.Other()]
	case GenQuiets:
		target = ^b.AllOccupancy()
	case GenNonEvasions:
		target = ^b.occupancy[us]
	}
	return generateAll(b, gt, target, dst)
}

// pawn push deltas per color
func pawnPush(c Color) Square {
	if c == White {
		return 8
	}
	return -8
}

func shiftUp(c Color, b uint64) uint64 {
	if c == White {
		return shiftNorth(b)
	}
	return shiftSouth(b)
}

// "East" here means toward the h-file from the mover's point of view for
// White and toward the a-file for Black, matching the push deltas below.
func shiftUpEast(c Color, b uint64) uint64 {
	if c == White {
		return shiftNorthEast(b)
	}
	return shiftSouthWest(b)
}

func shiftUpWest(c Color, b uint64) uint64 {
	if c == White {
		return shiftNorthWest(b)
	}
	return shiftSouthEast(b)
}

func pawnEastDelta(c Color) Square {
	if c == White {
		return 9
	}
	return -9
}

func pawnWestDelta(c Color) Square {
	if c == White {
		return 7
	}
	return -7
}

// makePromotions appends the promotion choices appropriate to the mode for a
// pawn arriving on 'to' from 'to-delta'.
func makePromotions(gt GenType, moves []Move, from, to, enemyKsq Square) []Move {
	if gt == GenCaptures || gt == GenEvasions || gt == GenNonEvasions {
		moves = append(moves, NewPromotionMove(from, to, PieceTypeQueen))
	}
	if gt == GenQuiets || gt == GenEvasions || gt == GenNonEvasions {
		moves = append(moves,
			NewPromotionMove(from, to, PieceTypeRook),
			NewPromotionMove(from, to, PieceTypeBishop),
			NewPromotionMove(from, to, PieceTypeKnight))
	}
	// The knight is the only underpromotion that can give a direct check not
	// already covered by the queen promotion.
	if gt == GenQuietChecks && knightMoves[to]&bb(enemyKsq) != 0 {
		moves = append(moves, NewPromotionMove(from, to, PieceTypeKnight))
	}
	return moves
}

func generatePawnMoves(b *Board, gt GenType, target uint64, moves []Move) []Move {
	us := b.sideToMove
	them := us.Other()
	ksq := b.KingSquare(them)
	up := pawnPush(us)

	rank7 := rank7BB
	rank3 := rank3BB
	if us == Black {
		rank7 = rank2BB
		rank3 = rank6BB
	}

	pawnsOn7 := b.pawns[us] & rank7
	pawnsNotOn7 := b.pawns[us] &^ rank7

	var enemies uint64
	switch gt {
	case GenEvasions:
		enemies = b.occupancy[them] & target
	case GenCaptures:
		enemies = target
	default:
		enemies = b.occupancy[them]
	}

	var empty uint64

	// Single and double pushes, no promotions.
	if gt != GenCaptures {
		if gt == GenQuiets || gt == GenQuietChecks {
			empty = target
		} else {
			empty = ^b.AllOccupancy()
		}

		b1 := shiftUp(us, pawnsNotOn7) & empty
		b2 := shiftUp(us, b1&rank3) & empty

		if gt == GenEvasions { // only blocking squares
			b1 &= target
			b2 &= target
		}

		if gt == GenQuietChecks {
			b1 &= pawnAttacks[them][ksq]
			b2 &= pawnAttacks[them][ksq]

			// Discovered-check pushes: possible only off the king's file,
			// since captures are not generated in this mode.
			dcCandidates := b.BlockersForKing(them) & pawnsNotOn7
			if dcCandidates != 0 {
				dc1 := shiftUp(us, dcCandidates) & empty &^ (fileABB << ksq.File())
				dc2 := shiftUp(us, dc1&rank3) & empty
				b1 |= dc1
				b2 |= dc2
			}
		}

		for b1 != 0 {
			to := popLSB(&b1)
			moves = append(moves, NewMove(to-up, to))
		}
		for b2 != 0 {
			to := popLSB(&b2)
			moves = append(moves, NewMove(to-up-up, to))
		}
	}

	// Promotions and underpromotions.
	if pawnsOn7 != 0 {
		if gt == GenCaptures {
			empty = ^b.AllOccupancy()
		}
		if gt == GenEvasions {
			empty &= target
		}

		var b1, b2 uint64
		if gt != GenQuietChecks { // promotion captures are not quiet
			b1 = shiftUpEast(us, pawnsOn7) & enemies
			b2 = shiftUpWest(us, pawnsOn7) & enemies
		}
		b3 := shiftUp(us, pawnsOn7) & empty

		for b1 != 0 {
			to := popLSB(&b1)
			moves = makePromotions(gt, moves, to-pawnEastDelta(us), to, ksq)
		}
		for b2 != 0 {
			to := popLSB(&b2)
			moves = makePromotions(gt, moves, to-pawnWestDelta(us), to, ksq)
		}
		for b3 != 0 {
			to := popLSB(&b3)
			moves = makePromotions(gt, moves, to-up, to, ksq)
		}
	}

	// Standard and en-passant captures.
	if gt == GenCaptures || gt == GenEvasions || gt == GenNonEvasions {
		b1 := shiftUpEast(us, pawnsNotOn7) & enemies
		b2 := shiftUpWest(us, pawnsNotOn7) & enemies

		for b1 != 0 {
			to := popLSB(&b1)
			moves = append(moves, NewMove(to-pawnEastDelta(us), to))
		}
		for b2 != 0 {
			to := popLSB(&b2)
			moves = append(moves, NewMove(to-pawnWestDelta(us), to))
		}

		if ep := b.enPassantSquare; ep != NoSquare {
			// An en-passant capture evades check only when the checker is the
			// double-pushed pawn itself (then it sits in the target set);
			// otherwise the check is a discovery and taking en passant cannot
			// resolve it.
			if gt == GenEvasions && target&bb(ep-up) == 0 {
				return moves
			}
			attackers := pawnsNotOn7 & pawnAttacks[them][ep]
			for attackers != 0 {
				from := popLSB(&attackers)
				moves = append(moves, NewFlaggedMove(FlagEnPassant, from, ep))
			}
		}
	}

	return moves
}

func generatePieceMoves(b *Board, pt PieceType, target uint64, checks bool, moves []Move) []Move {
	us := b.sideToMove
	occ := b.AllOccupancy()
	pieces := b.PieceBB(us, pt)

	var checkSqs, ownPinned, enemyBlockers uint64
	if checks {
		checkSqs = b.CheckSquares(pt)
		ownPinned = b.Pinned(us)
		enemyBlockers = b.BlockersForKing(us.Other())
	}

	for pieces != 0 {
		from := popLSB(&pieces)

		if checks {
			// Discovered-check candidates are generated separately, and a
			// piece pinned against its own king cannot legally give check.
			if (enemyBlockers|ownPinned)&bb(from) != 0 {
				continue
			}
			if pt >= PieceTypeBishop && pseudoSliderAttacks(pt, from)&target&checkSqs == 0 {
				continue
			}
		}

		atk := AttacksBB(pt, from, occ) & target
		if checks {
			atk &= checkSqs
		}
		for atk != 0 {
			moves = append(moves, NewMove(from, popLSB(&atk)))
		}
	}
	return moves
}

func pseudoSliderAttacks(pt PieceType, sq Square) uint64 {
	switch pt {
	case PieceTypeBishop:
		return pseudoBishopAttacks[sq]
	case PieceTypeRook:
		return pseudoRookAttacks[sq]
	default:
		return pseudoQueenAttacks[sq]
	}
}

// generateAll produces pawn and piece moves into the target square set, plus
// king moves and castling for the modes that include them.
func generateAll(b *Board, gt GenType, target uint64, moves []Move) []Move {
	checks := gt == GenQuietChecks
	us := b.sideToMove

	moves = generatePawnMoves(b, gt, target, moves)
	for pt := PieceTypeKnight; pt <= PieceTypeQueen; pt++ {
		moves = generatePieceMoves(b, pt, target, checks, moves)
	}

	if gt != GenQuietChecks && gt != GenEvasions {
		ksq := b.KingSquare(us)
		atk := kingMoves[ksq] & target
		for atk != 0 {
			moves = append(moves, NewMove(ksq, popLSB(&atk)))
		}

		if gt != GenCaptures {
			moves = b.appendCastling(us, ksq, moves)
		}
	}
	return moves
}

// appendCastling emits castling moves for which the right is held and the
// path between king and rook is clear. Attacked-square legality is checked
// later by Legal, not here.
func (b *Board) appendCastling(us Color, ksq Square, moves []Move) []Move {
	occ := b.AllOccupancy()

	kingSide, queenSide := CastlingWhiteK, CastlingWhiteQ
	if us == Black {
		kingSide, queenSide = CastlingBlackK, CastlingBlackQ
	}

	if b.castlingRights&kingSide != 0 {
		rookSq := ksq + 3
		if b.pieces[rookSq] == PieceFromType(us, PieceTypeRook) && occ&betweenBB[ksq][rookSq] == 0 {
			moves = append(moves, NewFlaggedMove(FlagCastle, ksq, ksq+2))
		}
	}
	if b.castlingRights&queenSide != 0 {
		rookSq := ksq - 4
		if b.pieces[rookSq] == PieceFromType(us, PieceTypeRook) && occ&betweenBB[ksq][rookSq] == 0 {
			moves = append(moves, NewFlaggedMove(FlagCastle, ksq, ksq-2))
		}
	}
	return moves
}

// generateEvasions produces check evasions: pruned king moves always, and
// checker captures or interpositions under single check.
func generateEvasions(b *Board, moves []Move) []Move {
	us := b.sideToMove
	ksq := b.KingSquare(us)
	checkers := b.Checkers()

	// Squares swept by slider checkers are excluded from king retreats up
	// front: stepping along the check ray would still leave the king
	// attacked, so filtering them here skips known-illegal moves cheaply.
	var sliderAttacks uint64
	sliders := checkers &^ (b.knights[us.Other()] | b.pawns[us.Other()])
	for sliders != 0 {
		checksq := popLSB(&sliders)
		sliderAttacks |= lineBB[checksq][ksq] ^ bb(checksq)
	}

	atk := kingMoves[ksq] &^ b.occupancy[us] &^ sliderAttacks
	for atk != 0 {
		moves = append(moves, NewMove(ksq, popLSB(&atk)))
	}

	if moreThanOne(checkers) {
		return moves // double check: only king moves can help
	}

	checksq := Square(bits.TrailingZeros64(checkers))
	target := betweenBB[checksq][ksq] | bb(checksq)

	moves = generatePawnMoves(b, GenEvasions, target, moves)
	for pt := PieceTypeKnight; pt <= PieceTypeQueen; pt++ {
		moves = generatePieceMoves(b, pt, target, false, moves)
	}
	return moves
}

// generateQuietChecks produces non-capturing moves that give check: first
// moves of discovered-check candidates off their blocking line, then direct
// checks through generateAll.
func generateQuietChecks(b *Board, moves []Move) []Move {
	us := b.sideToMove
	them := us.Other()
	occ := b.AllOccupancy()
	enemyKsq := b.KingSquare(them)

	dc := b.BlockersForKing(them) & b.occupancy[us]
	for dc != 0 {
		from := popLSB(&dc)
		pt := b.pieces[from].Type()
		if pt == PieceTypePawn {
			continue // generated together with the direct checks
		}

		atk := AttacksBB(pt, from, occ) &^ occ
		if pt == PieceTypeKing {
			// Off the line only, or the king blocks its own discovery.
			atk &^= pseudoQueenAttacks[enemyKsq]
		}
		for atk != 0 {
			moves = append(moves, NewMove(from, popLSB(&atk)))
		}
	}

	return generateAll(b, GenQuietChecks, ^occ, moves)
}

// generateLegal produces exactly the legal moves: evasions when in check,
// non-evasions otherwise, with the few move classes that can be illegal by
// construction (pinned piece, king move, en passant) validated individually.
func generateLegal(b *Board, moves []Move) []Move {
	us := b.sideToMove
	ksq := b.KingSquare(us)
	pinned := b.Pinned(us)

	start := len(moves)
	if b.Checkers() != 0 {
		moves = generateEvasions(b, moves)
	} else {
		moves = generateAll(b, GenNonEvasions, ^b.occupancy[us], moves)
	}

	for i := start; i < len(moves); {
		m := moves[i]
		if (pinned&bb(m.From()) != 0 || m.From() == ksq || m.Flag() == FlagEnPassant) && !b.Legal(m) {
			moves[i] = moves[len(moves)-1]
			moves = moves[:len(moves)-1]
		} else {
			i++
		}
	}
	return moves
}
