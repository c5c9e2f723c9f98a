package engine

import "chess-picker/pickmg"

// PieceValue holds the ordering value of each piece type. These drive
// capture and evasion scoring only; they are deliberately coarse.
var PieceValue = [7]int32{
	pickmg.PieceTypePawn:   100,
	pickmg.PieceTypeKnight: 325,
	pickmg.PieceTypeBishop: 335,
	pickmg.PieceTypeRook:   500,
	pickmg.PieceTypeQueen:  975,
	pickmg.PieceTypeKing:   0,
}

// victimType returns the piece type captured by m, accounting for en passant.
func victimType(b *pickmg.Board, m pickmg.Move) pickmg.PieceType {
	if m.Flag() == pickmg.FlagEnPassant {
		return pickmg.PieceTypePawn
	}
	return b.PieceAt(m.To()).Type()
}
