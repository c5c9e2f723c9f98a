package pickmg

// MoveState holds the minimal state needed to undo a move.
type MoveState struct {
	captured      Piece
	prevCastling  CastlingRights
	prevEnPassant Square
	prevHalfmove  int
	prevZobrist   uint64
}

// Captured returns the piece taken by the move, if any.
func (st MoveState) Captured() Piece { return st.captured }

// castlingRightUpdates maps a square to the rights lost when a piece moves
// from or to it.
var castlingRightUpdates [64]CastlingRights

func init() {
	castlingRightUpdates[0] = CastlingWhiteQ  // a1
	castlingRightUpdates[7] = CastlingWhiteK  // h1
	castlingRightUpdates[4] = CastlingWhiteK | CastlingWhiteQ
	castlingRightUpdates[56] = CastlingBlackQ // a8
	castlingRightUpdates[63] = CastlingBlackK // h8
	castlingRightUpdates[60] = CastlingBlackK | CastlingBlackQ
}

// MakeMove applies a move for the side to move and returns the state needed
// to undo it. The move must be at least pseudo-legal; legality is the
// caller's concern (generate with GenLegal, or filter with Legal).
func (b *Board) MakeMove(m Move) MoveState {
	st := MoveState{
		captured:      NoPiece,
		prevCastling:  b.castlingRights,
		prevEnPassant: b.enPassantSquare,
		prevHalfmove:  b.halfmoveClock,
		prevZobrist:   b.zobristKey,
	}

	us := b.sideToMove
	from := m.From()
	to := m.To()
	moved := b.pieces[from]

	if b.enPassantSquare != NoSquare {
		b.zobristKey ^= zobristEnPassant[b.enPassantSquare.File()]
		b.enPassantSquare = NoSquare
	}

	b.halfmoveClock++
	if moved.Type() == PieceTypePawn {
		b.halfmoveClock = 0
	}

	switch m.Flag() {
	case FlagEnPassant:
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		st.captured = b.removePiece(capSq)
		b.removePiece(from)
		b.addPiece(to, moved)

	case FlagCastle:
		rFrom, rTo := castleRookFromTo(to)
		rook := b.removePiece(rFrom)
		b.removePiece(from)
		b.addPiece(to, moved)
		b.addPiece(rTo, rook)

	case FlagPromotion:
		if b.pieces[to] != NoPiece {
			st.captured = b.removePiece(to)
			b.halfmoveClock = 0
		}
		b.removePiece(from)
		b.addPiece(to, PieceFromType(us, m.PromotionType()))

	default:
		if b.pieces[to] != NoPiece {
			st.captured = b.removePiece(to)
			b.halfmoveClock = 0
		}
		b.removePiece(from)
		b.addPiece(to, moved)

		// Double pawn push sets the en-passant target behind the pawn.
		if moved.Type() == PieceTypePawn && (to-from == 16 || from-to == 16) {
			b.enPassantSquare = (from + to) / 2
			b.zobristKey ^= zobristEnPassant[b.enPassantSquare.File()]
		}
	}

	if rights := castlingRightUpdates[from] | castlingRightUpdates[to]; b.castlingRights&rights != 0 {
		b.zobristKey ^= zobristCastle[b.castlingRights]
		b.castlingRights &^= rights
		b.zobristKey ^= zobristCastle[b.castlingRights]
	}

	if us == Black {
		b.fullmoveNumber++
	}
	b.sideToMove = us.Other()
	b.zobristKey ^= zobristSide

	return st
}

// UnmakeMove restores the position as it was before MakeMove(m).
func (b *Board) UnmakeMove(m Move, st MoveState) {
	us := b.sideToMove.Other() // the side that made the move
	from := m.From()
	to := m.To()

	switch m.Flag() {
	case FlagEnPassant:
		pawn := b.removePiece(to)
		b.addPiece(from, pawn)
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		b.addPiece(capSq, st.captured)

	case FlagCastle:
		rFrom, rTo := castleRookFromTo(to)
		rook := b.removePiece(rTo)
		king := b.removePiece(to)
		b.addPiece(from, king)
		b.addPiece(rFrom, rook)

	case FlagPromotion:
		b.removePiece(to)
		b.addPiece(from, PieceFromType(us, PieceTypePawn))
		b.addPiece(to, st.captured)

	default:
		moved := b.removePiece(to)
		b.addPiece(from, moved)
		b.addPiece(to, st.captured)
	}

	if us == Black {
		b.fullmoveNumber--
	}
	b.sideToMove = us
	b.castlingRights = st.prevCastling
	b.enPassantSquare = st.prevEnPassant
	b.halfmoveClock = st.prevHalfmove
	b.zobristKey = st.prevZobrist
}

// NullState stores the information needed to undo a null move.
type NullState struct {
	prevEnPassant Square
	prevZobrist   uint64
}

// MakeNullMove passes the turn without moving. Must not be called in check.
func (b *Board) MakeNullMove() NullState {
	st := NullState{prevEnPassant: b.enPassantSquare, prevZobrist: b.zobristKey}
	if b.enPassantSquare != NoSquare {
		b.zobristKey ^= zobristEnPassant[b.enPassantSquare.File()]
		b.enPassantSquare = NoSquare
	}
	b.sideToMove = b.sideToMove.Other()
	b.zobristKey ^= zobristSide
	return st
}

// UnmakeNullMove undoes MakeNullMove.
func (b *Board) UnmakeNullMove(st NullState) {
	b.sideToMove = b.sideToMove.Other()
	b.enPassantSquare = st.prevEnPassant
	b.zobristKey = st.prevZobrist
}
