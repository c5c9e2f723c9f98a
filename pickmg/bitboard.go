package pickmg

import "math/bits"

// Square represents a board position (0-63, a1=0, h8=63).
type Square int

const NoSquare Square = -1

// File of a square (0 = a-file).
func (s Square) File() int { return int(s) & 7 }

// Rank of a square (0 = first rank).
func (s Square) Rank() int { return int(s) >> 3 }

// RelativeRank returns the rank as seen from the given side.
func (s Square) RelativeRank(c Color) int {
	if c == White {
		return s.Rank()
	}
	return 7 - s.Rank()
}

// String returns the coordinate name of the square (e.g. "e4").
func (s Square) String() string {
	if s == NoSquare {
		return "-"
	}
	return string([]byte{'a' + byte(s.File()), '1' + byte(s.Rank())})
}

// File masks
const (
	fileABB uint64 = 0x0101010101010101
	fileHBB uint64 = fileABB << 7
)

// Rank masks, indexed by rank
const (
	rank1BB uint64 = 0xFF
	rank2BB uint64 = rank1BB << 8
	rank3BB uint64 = rank1BB << 16
	rank6BB uint64 = rank1BB << 40
	rank7BB uint64 = rank1BB << 48
	rank8BB uint64 = rank1BB << 56
)

// bb returns a bitboard with the given square bit set.
func bb(sq Square) uint64 { return 1 << uint64(sq) }

// popLSB removes and returns the least significant set bit from the mask.
func popLSB(mask *uint64) Square {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return Square(idx)
}

// moreThanOne reports whether the bitboard has at least two bits set.
func moreThanOne(b uint64) bool { return b&(b-1) != 0 }

// shiftNorth/shiftSouth move a whole pawn set one rank; the east/west
// variants mask off wrap-around files.
func shiftNorth(b uint64) uint64     { return b << 8 }
func shiftSouth(b uint64) uint64     { return b >> 8 }
func shiftNorthEast(b uint64) uint64 { return (b &^ fileHBB) << 9 }
func shiftNorthWest(b uint64) uint64 { return (b &^ fileABB) << 7 }
func shiftSouthEast(b uint64) uint64 { return (b &^ fileHBB) >> 7 }
func shiftSouthWest(b uint64) uint64 { return (b &^ fileABB) >> 9 }

// Precomputed attack masks for non-sliding pieces.
var knightMoves [64]uint64
var kingMoves [64]uint64

// Pawn attack masks: pawnAttacks[color][sq] gives the squares a pawn of
// 'color' standing on 'sq' attacks.
var pawnAttacks [2][64]uint64

// Slider attacks on an empty board, used for alignment and sniper tests.
var pseudoRookAttacks [64]uint64
var pseudoBishopAttacks [64]uint64
var pseudoQueenAttacks [64]uint64

// Geometry tables. betweenBB is exclusive of both endpoints; lineBB is the
// full line through two aligned squares including both, zero when unaligned.
var squareDistance [64][64]uint8
var betweenBB [64][64]uint64
var lineBB [64][64]uint64

func init() {
	initLeaperTables()
	initMagics()
	initLineTables()
}

func initLeaperTables() {
	knightOffsets := [8][2]int{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
	kingOffsets := [8][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}

	for sq := 0; sq < 64; sq++ {
		file := sq % 8
		rank := sq / 8

		for _, off := range knightOffsets {
			r, f := rank+off[0], file+off[1]
			if r >= 0 && r < 8 && f >= 0 && f < 8 {
				knightMoves[sq] |= uint64(1) << (r*8 + f)
			}
		}
		for _, off := range kingOffsets {
			r, f := rank+off[0], file+off[1]
			if r >= 0 && r < 8 && f >= 0 && f < 8 {
				kingMoves[sq] |= uint64(1) << (r*8 + f)
			}
		}

		sqBB := uint64(1) << sq
		pawnAttacks[White][sq] = shiftNorthEast(sqBB) | shiftNorthWest(sqBB)
		pawnAttacks[Black][sq] = shiftSouthEast(sqBB) | shiftSouthWest(sqBB)
	}

	for a := Square(0); a < 64; a++ {
		for b := Square(0); b < 64; b++ {
			fd := a.File() - b.File()
			rd := a.Rank() - b.Rank()
			if fd < 0 {
				fd = -fd
			}
			if rd < 0 {
				rd = -rd
			}
			if fd > rd {
				squareDistance[a][b] = uint8(fd)
			} else {
				squareDistance[a][b] = uint8(rd)
			}
		}
	}
}

// initLineTables fills betweenBB and lineBB from empty-board slider attacks,
// so it must run after the magic tables are built.
func initLineTables() {
	for sq := Square(0); sq < 64; sq++ {
		pseudoRookAttacks[sq] = RookAttacks(sq, 0)
		pseudoBishopAttacks[sq] = BishopAttacks(sq, 0)
		pseudoQueenAttacks[sq] = pseudoRookAttacks[sq] | pseudoBishopAttacks[sq]
	}

	for a := Square(0); a < 64; a++ {
		for b := Square(0); b < 64; b++ {
			if a == b {
				continue
			}
			if pseudoRookAttacks[a]&bb(b) != 0 {
				lineBB[a][b] = (pseudoRookAttacks[a] & pseudoRookAttacks[b]) | bb(a) | bb(b)
				betweenBB[a][b] = RookAttacks(a, bb(b)) & RookAttacks(b, bb(a))
			} else if pseudoBishopAttacks[a]&bb(b) != 0 {
				lineBB[a][b] = (pseudoBishopAttacks[a] & pseudoBishopAttacks[b]) | bb(a) | bb(b)
				betweenBB[a][b] = BishopAttacks(a, bb(b)) & BishopAttacks(b, bb(a))
			}
		}
	}
}

// KnightAttacks returns the knight attack set from sq.
func KnightAttacks(sq Square) uint64 { return knightMoves[sq] }

// KingAttacks returns the king attack set from sq.
func KingAttacks(sq Square) uint64 { return kingMoves[sq] }

// PawnAttacks returns the squares a pawn of the given color attacks from sq.
func PawnAttacks(c Color, sq Square) uint64 { return pawnAttacks[c][sq] }

// QueenAttacks returns queen attacks from sq given board occupancy.
func QueenAttacks(sq Square, occ uint64) uint64 {
	return RookAttacks(sq, occ) | BishopAttacks(sq, occ)
}

// AttacksBB returns the attack set of a piece type from sq. Occupancy is
// ignored for non-sliders. Pawns are not handled here; their attacks are
// color-dependent, use PawnAttacks.
func AttacksBB(pt PieceType, sq Square, occ uint64) uint64 {
	switch pt {
	case PieceTypeKnight:
		return knightMoves[sq]
	case PieceTypeBishop:
		return BishopAttacks(sq, occ)
	case PieceTypeRook:
		return RookAttacks(sq, occ)
	case PieceTypeQueen:
		return RookAttacks(sq, occ) | BishopAttacks(sq, occ)
	case PieceTypeKing:
		return kingMoves[sq]
	}
	return 0
}

// Distance returns the Chebyshev distance between two squares.
func Distance(a, b Square) int { return int(squareDistance[a][b]) }

// Between returns the squares strictly between two aligned squares, or zero
// if they do not share a rank, file or diagonal.
func Between(a, b Square) uint64 { return betweenBB[a][b] }

// Line returns the full line through two aligned squares (both included),
// or zero if they are not aligned.
func Line(a, b Square) uint64 { return lineBB[a][b] }

// aligned reports whether three squares lie on a common rank, file or diagonal.
func aligned(a, b, c Square) bool { return lineBB[a][b]&bb(c) != 0 }
