package pickmg

import "math/bits"

// Piece constants for pieces and colors.
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	// Black pieces are encoded as (white piece type | 8) so that
	// - piece & 7 gives the type in [1..6]
	// - piece & 8 != 0 indicates Black
	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// PieceType is a colorless representation of a chess piece.
type PieceType uint8

const (
	PieceTypeNone   PieceType = 0
	PieceTypePawn   PieceType = 1
	PieceTypeKnight PieceType = 2
	PieceTypeBishop PieceType = 3
	PieceTypeRook   PieceType = 4
	PieceTypeQueen  PieceType = 5
	PieceTypeKing   PieceType = 6
)

// Type returns the colorless type of the piece.
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side that owns the piece. NoPiece defaults to White.
func (p Piece) Color() Color {
	if p&8 != 0 {
		return Black
	}
	return White
}

// PieceFromType combines a colorless type with a side.
func PieceFromType(c Color, pt PieceType) Piece {
	if pt == PieceTypeNone {
		return NoPiece
	}
	if c == Black {
		return Piece(pt) | 8
	}
	return Piece(pt)
}

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

// Castling rights bit flags.
type CastlingRights uint8

const (
	CastlingWhiteK CastlingRights = 1 << iota
	CastlingWhiteQ
	CastlingBlackK
	CastlingBlackQ
)

// Board represents the chess board state: piece placement plus the game
// state needed for move generation and legality.
type Board struct {
	// Piece bitboards per type and color (index 0 = white, 1 = black)
	pawns   [2]uint64
	knights [2]uint64
	bishops [2]uint64
	rooks   [2]uint64
	queens  [2]uint64
	kings   [2]uint64

	// Occupancy bitboards for each side
	occupancy [2]uint64

	// Piece placement array for each square
	pieces [64]Piece

	sideToMove      Color
	castlingRights  CastlingRights
	enPassantSquare Square
	halfmoveClock   int
	fullmoveNumber  int
	zobristKey      uint64
}

// SideToMove reports which side is to play.
func (b *Board) SideToMove() Color { return b.sideToMove }

// CastlingRightsMask returns the current castling rights.
func (b *Board) CastlingRightsMask() CastlingRights { return b.castlingRights }

// EnPassantSquare returns the en-passant target square or NoSquare.
func (b *Board) EnPassantSquare() Square { return b.enPassantSquare }

// HalfmoveClock returns the half-move counter for the fifty-move rule.
func (b *Board) HalfmoveClock() int { return b.halfmoveClock }

// FullmoveNumber returns the full move counter.
func (b *Board) FullmoveNumber() int { return b.fullmoveNumber }

// Hash returns the current Zobrist hash key.
func (b *Board) Hash() uint64 { return b.zobristKey }

// PieceAt returns the piece on a square.
func (b *Board) PieceAt(sq Square) Piece { return b.pieces[sq] }

// AllOccupancy returns a bitboard of all occupied squares.
func (b *Board) AllOccupancy() uint64 { return b.occupancy[0] | b.occupancy[1] }

// ColorOccupancy returns the occupancy bitboard for one side.
func (b *Board) ColorOccupancy(c Color) uint64 { return b.occupancy[c] }

// PieceBB returns the bitboard for the given piece type and side.
func (b *Board) PieceBB(c Color, pt PieceType) uint64 {
	switch pt {
	case PieceTypePawn:
		return b.pawns[c]
	case PieceTypeKnight:
		return b.knights[c]
	case PieceTypeBishop:
		return b.bishops[c]
	case PieceTypeRook:
		return b.rooks[c]
	case PieceTypeQueen:
		return b.queens[c]
	case PieceTypeKing:
		return b.kings[c]
	}
	return 0
}

// typeBB returns the combined bitboard of a piece type for both sides.
func (b *Board) typeBB(pt PieceType) uint64 {
	return b.PieceBB(White, pt) | b.PieceBB(Black, pt)
}

// KingSquare returns the square of the given side's king.
func (b *Board) KingSquare(c Color) Square {
	if b.kings[c] == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(b.kings[c]))
}

// pieceBBPtr gives mutable access to the type bitboard for bookkeeping.
func (b *Board) pieceBBPtr(c Color, pt PieceType) *uint64 {
	switch pt {
	case PieceTypePawn:
		return &b.pawns[c]
	case PieceTypeKnight:
		return &b.knights[c]
	case PieceTypeBishop:
		return &b.bishops[c]
	case PieceTypeRook:
		return &b.rooks[c]
	case PieceTypeQueen:
		return &b.queens[c]
	default:
		return &b.kings[c]
	}
}

// addPiece places a piece on an empty square and updates bitboards,
// occupancy and zobrist.
func (b *Board) addPiece(sq Square, p Piece) {
	if p == NoPiece {
		return
	}
	b.pieces[sq] = p
	c := p.Color()
	b.occupancy[c] |= bb(sq)
	*b.pieceBBPtr(c, p.Type()) |= bb(sq)
	b.zobristKey ^= zobristPiece[p][sq]
}

// removePiece removes a piece from a square and updates bitboards,
// occupancy and zobrist.
func (b *Board) removePiece(sq Square) Piece {
	p := b.pieces[sq]
	if p == NoPiece {
		return NoPiece
	}
	c := p.Color()
	b.pieces[sq] = NoPiece
	b.occupancy[c] &^= bb(sq)
	*b.pieceBBPtr(c, p.Type()) &^= bb(sq)
	b.zobristKey ^= zobristPiece[p][sq]
	return p
}

// SetPiece sets a piece on a square, replacing any existing piece.
func (b *Board) SetPiece(sq Square, p Piece) {
	b.removePiece(sq)
	b.addPiece(sq, p)
}

// ClearSquare removes any piece from the given square.
func (b *Board) ClearSquare(sq Square) { _ = b.removePiece(sq) }

// HasLegalMoves reports whether the side to move has any legal move.
func (b *Board) HasLegalMoves() bool {
	var buf [MaxMoves]Move
	return len(Generate(GenLegal, b, buf[:0])) > 0
}

// InCheckmate reports whether the side to move is checkmated.
func (b *Board) InCheckmate() bool {
	return b.Checkers() != 0 && !b.HasLegalMoves()
}

// InStalemate reports whether the side to move is stalemated.
func (b *Board) InStalemate() bool {
	return b.Checkers() == 0 && !b.HasLegalMoves()
}

// Validate checks internal consistency between pieces[], per-piece
// bitboards and occupancy. Returns true if consistent.
func (b *Board) Validate() bool {
	var check Board
	check.enPassantSquare = b.enPassantSquare
	check.castlingRights = b.castlingRights
	for sq := Square(0); sq < 64; sq++ {
		if p := b.pieces[sq]; p != NoPiece {
			check.addPiece(sq, p)
		}
	}
	if check.occupancy != b.occupancy {
		return false
	}
	if check.pawns != b.pawns || check.knights != b.knights || check.bishops != b.bishops ||
		check.rooks != b.rooks || check.queens != b.queens || check.kings != b.kings {
		return false
	}
	return b.zobristKey == b.computeZobrist()
}
