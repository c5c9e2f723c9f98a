package chesspicker_test

import (
	"testing"

	mg "chess-picker/pickmg"
)

func moveByUCI(t *testing.T, b *mg.Board, uci string) mg.Move {
	t.Helper()
	for _, m := range mg.Generate(mg.GenLegal, b, nil) {
		if m.String() == uci {
			return m
		}
	}
	t.Fatalf("move %s not legal in %s", uci, b.FEN())
	return mg.MoveNone
}

func TestSeeSimpleExchanges(t *testing.T) {
	cases := []struct {
		fen  string
		uci  string
		want int32
	}{
		// Free pawn.
		{"k7/8/3p4/8/8/8/3R4/K7 w - - 0 1", "d2d6", 100},
		// Rook takes a defended pawn and dies for it.
		{"k7/4p3/3p4/8/8/8/3R4/K7 w - - 0 1", "d2d6", -400},
		// Queen takes a defended pawn.
		{"k7/4p3/3p4/8/3Q4/8/8/K7 w - - 0 1", "d4d6", -800},
		// Rook takes rook, nobody recaptures.
		{"k2r4/8/8/8/8/8/8/K2R4 w - - 0 1", "d1d8", 500},
		// RxR with a defender: even trade.
		{"k2r4/4b3/8/8/8/8/8/K2R4 w - - 0 1", "d1d8", 0},
	}
	for _, tc := range cases {
		b := mustBoard(t, tc.fen)
		m := moveByUCI(t, b, tc.uci)
		if got := b.See(m); got != tc.want {
			t.Fatalf("%s %s: see = %d, want %d", tc.fen, tc.uci, got, tc.want)
		}
	}
}

// The classic two-knight exchange: winning a pawn costs the knight.
func TestSeeDeepExchange(t *testing.T) {
	b := mustBoard(t, "1k1r3q/1ppn3p/p4b2/4p3/8/P2N2P1/1PP1R1BP/2K1Q3 w - - 0 1")
	m := moveByUCI(t, b, "d3e5")
	if got := b.See(m); got != mg.SeeValue[mg.PieceTypePawn]-mg.SeeValue[mg.PieceTypeKnight] {
		t.Fatalf("Nxe5 see = %d, want %d", got,
			mg.SeeValue[mg.PieceTypePawn]-mg.SeeValue[mg.PieceTypeKnight])
	}
	if b.SeeGe(m, 0) {
		t.Fatal("losing capture passes a zero threshold")
	}
}

// X-ray attackers must join the exchange once the blocker moves.
func TestSeeXray(t *testing.T) {
	// The front rook takes e5; if the enemy rook recaptures, the rook
	// standing behind on e1 must be seen to win the exchange back.
	b := mustBoard(t, "k3r3/8/8/4p3/8/8/4R3/K3R3 w - - 0 1")
	m := moveByUCI(t, b, "e2e5")
	if got := b.See(m); got != mg.SeeValue[mg.PieceTypePawn] {
		t.Fatalf("Rxe5 see = %d, want %d", got, mg.SeeValue[mg.PieceTypePawn])
	}
}

func TestSeeGeThresholds(t *testing.T) {
	b := mustBoard(t, "k7/8/3p4/8/8/8/3R4/K7 w - - 0 1")
	m := moveByUCI(t, b, "d2d6")
	if !b.SeeGe(m, 100) {
		t.Fatal("free pawn must reach a threshold of its own value")
	}
	if b.SeeGe(m, 101) {
		t.Fatal("free pawn cannot exceed its value")
	}
	if !b.SeeGe(m, -500) {
		t.Fatal("any capture beats a deeply negative threshold")
	}
}

// Special moves are approximated as even exchanges.
func TestSeeSpecialMoves(t *testing.T) {
	b := mustBoard(t, "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1")
	castle := moveByUCI(t, b, "e1g1")
	if !b.SeeGe(castle, 0) {
		t.Fatal("castling must pass a zero threshold")
	}
	if b.SeeGe(castle, 1) {
		t.Fatal("castling cannot pass a positive threshold")
	}
}
