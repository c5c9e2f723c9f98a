package pickmg

// Move encodes a chess move in 16 bits.
//
// Bitfield layout (from LSB):
//
//	bits 0-5   destination square
//	bits 6-11  origin square
//	bits 12-13 promotion piece type, stored as (type - Knight)
//	bits 14-15 special flag: normal / promotion / en passant / castle
//
// Castling is encoded as the king's two-square move. MoveNone (all zero) is
// the "no move" sentinel; it never collides with a real move because a real
// move always has from != to.
type Move uint16

const MoveNone Move = 0

// Special move flags.
type MoveFlag uint16

const (
	FlagNormal    MoveFlag = 0
	FlagPromotion MoveFlag = 1 << 14
	FlagEnPassant MoveFlag = 2 << 14
	FlagCastle    MoveFlag = 3 << 14
)

// NewMove constructs a plain move.
func NewMove(from, to Square) Move {
	return Move(uint16(to) | uint16(from)<<6)
}

// NewFlaggedMove constructs an en-passant or castling move.
func NewFlaggedMove(flag MoveFlag, from, to Square) Move {
	return Move(uint16(to) | uint16(from)<<6 | uint16(flag))
}

// NewPromotionMove constructs a promotion to the given piece type (knight,
// bishop, rook or queen).
func NewPromotionMove(from, to Square, pt PieceType) Move {
	return Move(uint16(to) | uint16(from)<<6 | uint16(pt-PieceTypeKnight)<<12 | uint16(FlagPromotion))
}

// From returns the origin square of the move.
func (m Move) From() Square { return Square(m>>6) & 0x3F }

// To returns the destination square of the move.
func (m Move) To() Square { return Square(m) & 0x3F }

// Flag returns the special move flag.
func (m Move) Flag() MoveFlag { return MoveFlag(m) & (3 << 14) }

// PromotionType returns the promotion piece type. Only meaningful when
// Flag() == FlagPromotion.
func (m Move) PromotionType() PieceType {
	return PieceType(m>>12&3) + PieceTypeKnight
}

// FromTo packs origin and destination into a 12-bit index, used by the
// butterfly history tables.
func (m Move) FromTo() int { return int(m) & 0xFFF }

// String produces the UCI representation of the move (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	if m == MoveNone {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.Flag() == FlagPromotion {
		s += string(" nbrq"[m.PromotionType()-PieceTypeKnight+1])
	}
	return s
}
