package engine

import (
	"testing"

	"chess-picker/pickmg"
)

func mustBoard(t *testing.T, fen string) *pickmg.Board {
	t.Helper()
	b, err := pickmg.ParseFEN(fen)
	if err != nil {
		t.Fatalf("bad fen %q: %v", fen, err)
	}
	return b
}

// findMove looks up a move by its UCI string among the legal moves.
func findMove(t *testing.T, b *pickmg.Board, uci string) pickmg.Move {
	t.Helper()
	for _, m := range pickmg.Generate(pickmg.GenLegal, b, nil) {
		if m.String() == uci {
			return m
		}
	}
	t.Fatalf("move %s not legal in %s", uci, b.FEN())
	return pickmg.MoveNone
}

func newMainPicker(b *pickmg.Board, tt pickmg.Move, killers [2]pickmg.Move, counter pickmg.Move) *MovePicker {
	var (
		mh  ButterflyHistory
		ch  CaptureHistory
		lph LowPlyHistory
	)
	return NewMovePicker(b, tt, 8, 2, &mh, &ch, nil, &lph, killers, counter)
}

func drain(mp *MovePicker) []pickmg.Move {
	var out []pickmg.Move
	for {
		m := mp.Next(false)
		if m == pickmg.MoveNone {
			return out
		}
		out = append(out, m)
	}
}

// The picker must hand out every pseudo-legal move exactly once, whatever the
// position type.
func TestPickerExhaustive(t *testing.T) {
	fens := []string{
		pickmg.FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
		// in check
		"4k3/8/8/8/8/8/4q3/4K3 w - - 0 1",
		"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3",
	}
	for _, fen := range fens {
		b := mustBoard(t, fen)
		var want []pickmg.Move
		if b.InCheck() {
			want = pickmg.Generate(pickmg.GenEvasions, b, nil)
		} else {
			want = pickmg.Generate(pickmg.GenNonEvasions, b, nil)
		}

		got := drain(newMainPicker(b, pickmg.MoveNone, [2]pickmg.Move{}, pickmg.MoveNone))
		if len(got) != len(want) {
			t.Fatalf("%s: picker yielded %d moves, generator %d", fen, len(got), len(want))
		}
		seen := make(map[pickmg.Move]bool, len(got))
		for _, m := range got {
			if seen[m] {
				t.Fatalf("%s: move %s yielded twice", fen, m)
			}
			seen[m] = true
		}
		for _, m := range want {
			if !seen[m] {
				t.Fatalf("%s: move %s never yielded", fen, m)
			}
		}
	}
}

func TestTTMoveFirstAndOnce(t *testing.T) {
	b := mustBoard(t, pickmg.FENStartPos)
	tt := findMove(t, b, "g1f3")

	got := drain(newMainPicker(b, tt, [2]pickmg.Move{}, pickmg.MoveNone))
	if got[0] != tt {
		t.Fatalf("first move = %s, want tt move %s", got[0], tt)
	}
	for _, m := range got[1:] {
		if m == tt {
			t.Fatalf("tt move %s yielded twice", tt)
		}
	}
}

func TestBogusTTMoveDiscarded(t *testing.T) {
	b := mustBoard(t, pickmg.FENStartPos)
	// a1h8 moves no piece of ours anywhere sensible
	bogus := pickmg.NewMove(0, 63)

	for _, m := range drain(newMainPicker(b, bogus, [2]pickmg.Move{}, pickmg.MoveNone)) {
		if m == bogus {
			t.Fatalf("pseudo-illegal tt move %s was yielded", bogus)
		}
	}
}

// A capture that sheds material must come out after every quiet move.
func TestLosingCaptureComesLast(t *testing.T) {
	// Qxd6 wins a pawn but loses the queen to exd6.
	b := mustBoard(t, "k7/4p3/3p4/8/3Q4/8/8/K7 w - - 0 1")
	losing := findMove(t, b, "d4d6")

	got := drain(newMainPicker(b, pickmg.MoveNone, [2]pickmg.Move{}, pickmg.MoveNone))
	if len(got) == 0 {
		t.Fatal("picker yielded nothing")
	}
	if got[len(got)-1] != losing {
		t.Fatalf("last move = %s, want losing capture %s", got[len(got)-1], losing)
	}
}

// A winning capture must come out before every quiet move.
func TestWinningCaptureFirst(t *testing.T) {
	b := mustBoard(t, "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2")
	capture := findMove(t, b, "e4d5")

	got := drain(newMainPicker(b, pickmg.MoveNone, [2]pickmg.Move{}, pickmg.MoveNone))
	if got[0] != capture {
		t.Fatalf("first move = %s, want capture %s", got[0], capture)
	}
}

// Killers are tried after the captures and before the remaining quiets, and
// are not repeated in the quiet phase.
func TestKillerOrdering(t *testing.T) {
	b := mustBoard(t, pickmg.FENStartPos)
	killer := findMove(t, b, "b1c3")

	got := drain(newMainPicker(b, pickmg.MoveNone, [2]pickmg.Move{killer, pickmg.MoveNone}, pickmg.MoveNone))
	if got[0] != killer {
		t.Fatalf("first move = %s, want killer %s (no captures in startpos)", got[0], killer)
	}
	for _, m := range got[1:] {
		if m == killer {
			t.Fatalf("killer %s yielded twice", killer)
		}
	}
}

// A countermove equal to a killer must not be yielded a second time.
func TestCounterDuplicatingKiller(t *testing.T) {
	b := mustBoard(t, pickmg.FENStartPos)
	km := findMove(t, b, "b1c3")

	got := drain(newMainPicker(b, pickmg.MoveNone, [2]pickmg.Move{km, pickmg.MoveNone}, km))
	count := 0
	for _, m := range got {
		if m == km {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("duplicated refutation yielded %d times, want 1", count)
	}
}

func TestSkipQuietsYieldsOnlyCaptures(t *testing.T) {
	b := mustBoard(t, "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2")
	mp := newMainPicker(b, pickmg.MoveNone, [2]pickmg.Move{}, pickmg.MoveNone)
	for {
		m := mp.Next(true)
		if m == pickmg.MoveNone {
			break
		}
		if !b.IsCapture(m) {
			t.Fatalf("skipQuiets yielded quiet move %s", m)
		}
	}
}

// Histories must steer the quiet ordering.
func TestQuietHistoryOrdering(t *testing.T) {
	b := mustBoard(t, pickmg.FENStartPos)
	good := findMove(t, b, "d2d4")

	var (
		mh  ButterflyHistory
		ch  CaptureHistory
		lph LowPlyHistory
	)
	mh.Update(pickmg.White, good, 4000)
	mp := NewMovePicker(b, pickmg.MoveNone, 8, 2, &mh, &ch, nil, &lph,
		[2]pickmg.Move{}, pickmg.MoveNone)

	if m := mp.Next(false); m != good {
		t.Fatalf("first quiet = %s, want history-boosted %s", m, good)
	}
}

func TestContinuationHistoryOrdering(t *testing.T) {
	b := mustBoard(t, pickmg.FENStartPos)
	good := findMove(t, b, "g1f3")

	var (
		mh   ButterflyHistory
		ch   CaptureHistory
		cont ContinuationHistory
		lph  LowPlyHistory
	)
	slot := cont.Slot(pickmg.BlackPawn, 35) // after ...d5
	slot.Update(pickmg.WhiteKnight, good.To(), 5000)

	mp := NewMovePicker(b, pickmg.MoveNone, 8, 2, &mh, &ch,
		[]*PieceToHistory{slot}, &lph, [2]pickmg.Move{}, pickmg.MoveNone)
	if m := mp.Next(false); m != good {
		t.Fatalf("first quiet = %s, want continuation-boosted %s", m, good)
	}
}

// In check the picker serves evasions, checker captures first.
func TestEvasionPicker(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/8/8/4q3/4K3 w - - 0 1")
	if !b.InCheck() {
		t.Fatal("expected a check position")
	}
	got := drain(newMainPicker(b, pickmg.MoveNone, [2]pickmg.Move{}, pickmg.MoveNone))
	want := pickmg.Generate(pickmg.GenEvasions, b, nil)
	if len(got) != len(want) {
		t.Fatalf("evasion picker yielded %d moves, want %d", len(got), len(want))
	}
	sawQuiet := false
	for _, m := range got {
		if b.IsCapture(m) && sawQuiet {
			t.Fatalf("capture evasion %s after a quiet evasion", m)
		}
		if !b.IsCapture(m) {
			sawQuiet = true
		}
	}
}

func TestQPickerCapturesOnly(t *testing.T) {
	b := mustBoard(t, "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2")
	var (
		mh ButterflyHistory
		ch CaptureHistory
	)
	mp := NewQMovePicker(b, pickmg.MoveNone, -1, pickmg.NoSquare, &mh, &ch)
	n := 0
	for {
		m := mp.Next(false)
		if m == pickmg.MoveNone {
			break
		}
		if !b.IsCapture(m) {
			t.Fatalf("qsearch below check depth yielded quiet %s", m)
		}
		n++
	}
	if n != 1 {
		t.Fatalf("yielded %d captures, want 1 (exd5)", n)
	}
}

func TestQPickerQuietChecksAtDepthZero(t *testing.T) {
	// Ra1-a8 is a quiet rook check.
	b := mustBoard(t, "7k/8/8/8/8/8/8/R3K3 w - - 0 1")
	var (
		mh ButterflyHistory
		ch CaptureHistory
	)
	mp := NewQMovePicker(b, pickmg.MoveNone, DepthQSChecks, pickmg.NoSquare, &mh, &ch)
	check := findMove(t, b, "a1a8")
	found := false
	for {
		m := mp.Next(false)
		if m == pickmg.MoveNone {
			break
		}
		if m == check {
			found = true
		}
	}
	if !found {
		t.Fatalf("quiet check %s missing at depth %d", check, DepthQSChecks)
	}
}

func TestQPickerRecapturesOnly(t *testing.T) {
	// White can take on e5 or on f7; only the f7 capture is a recapture.
	b := mustBoard(t, "r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 0 1")
	var (
		mh ButterflyHistory
		ch CaptureHistory
	)
	recapture := pickmg.Square(53) // f7
	mp := NewQMovePicker(b, pickmg.MoveNone, DepthQSRecaptures-1, recapture, &mh, &ch)
	for {
		m := mp.Next(false)
		if m == pickmg.MoveNone {
			break
		}
		if m.To() != recapture {
			t.Fatalf("recapture-only qsearch yielded %s (to %s)", m, m.To())
		}
	}
}

func TestProbCutPicker(t *testing.T) {
	b := mustBoard(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	var ch CaptureHistory
	const threshold = 200
	mp := NewProbCutPicker(b, pickmg.MoveNone, threshold, &ch)
	for {
		m := mp.Next(false)
		if m == pickmg.MoveNone {
			break
		}
		if !b.IsCapture(m) {
			t.Fatalf("probcut yielded non-capture %s", m)
		}
		if !b.SeeGe(m, threshold) {
			t.Fatalf("probcut yielded %s below the exchange threshold", m)
		}
	}
}

func TestProbCutTTMustPassThreshold(t *testing.T) {
	b := mustBoard(t, "k7/4p3/3p4/8/3Q4/8/8/K7 w - - 0 1")
	losing := findMove(t, b, "d4d6")
	var ch CaptureHistory
	mp := NewProbCutPicker(b, losing, 0, &ch)
	for {
		m := mp.Next(false)
		if m == pickmg.MoveNone {
			break
		}
		if m == losing {
			t.Fatalf("losing capture %s kept as probcut tt move", losing)
		}
	}
}

func TestPartialInsertionSort(t *testing.T) {
	moves := []ExtMove{
		{Move: 1, Score: 10},
		{Move: 2, Score: -500},
		{Move: 3, Score: 300},
		{Move: 4, Score: -50},
		{Move: 5, Score: 40},
	}
	partialInsertionSort(moves, -100)

	// Everything above the limit sorted descending at the front.
	want := []int32{300, 40, 10, -50}
	for i, s := range want {
		if moves[i].Score != s {
			t.Fatalf("pos %d: score %d, want %d", i, moves[i].Score, s)
		}
	}
	if moves[4].Score != -500 {
		t.Fatalf("below-limit move not left at the back")
	}
}

func TestKillerTable(t *testing.T) {
	var k KillerTable
	m1, m2, m3 := pickmg.NewMove(1, 2), pickmg.NewMove(3, 4), pickmg.NewMove(5, 6)

	k.Insert(m1, 3)
	k.Insert(m1, 3) // re-inserting the same move must not duplicate it
	k.Insert(m2, 3)
	if got := k.Get(3); got != [2]pickmg.Move{m2, m1} {
		t.Fatalf("killers = %v, want [%s %s]", got, m2, m1)
	}
	k.Insert(m3, 3)
	if got := k.Get(3); got != [2]pickmg.Move{m3, m2} {
		t.Fatalf("killers = %v, want [%s %s]", got, m3, m2)
	}
	k.Clear()
	if got := k.Get(3); got != [2]pickmg.Move{} {
		t.Fatalf("killers not cleared: %v", got)
	}
}

func TestHistoryGravityBounds(t *testing.T) {
	var h ButterflyHistory
	m := pickmg.NewMove(12, 28)
	for i := 0; i < 1000; i++ {
		h.Update(pickmg.White, m, historyMax)
	}
	if got := h.Get(pickmg.White, m); got > historyMax {
		t.Fatalf("history grew past the cap: %d", got)
	}
	for i := 0; i < 1000; i++ {
		h.Update(pickmg.White, m, -historyMax)
	}
	if got := h.Get(pickmg.White, m); got < -historyMax {
		t.Fatalf("history fell past the cap: %d", got)
	}
}
