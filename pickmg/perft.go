package pickmg

// Perft counts leaf nodes reachable from the position at the given depth.
// Per-depth move buffers are reused to avoid allocations.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	pc := perftCtx{bufs: make([][]Move, depth+1)}
	return perftRec(b, depth, &pc)
}

type perftCtx struct {
	bufs [][]Move
}

func (pc *perftCtx) bufFor(depth int) []Move {
	buf := pc.bufs[depth]
	if buf == nil {
		buf = make([]Move, 0, MaxMoves)
		pc.bufs[depth] = buf
	}
	return buf[:0]
}

func perftRec(b *Board, depth int, pc *perftCtx) uint64 {
	moves := Generate(GenLegal, b, pc.bufFor(depth))
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		st := b.MakeMove(m)
		nodes += perftRec(b, depth-1, pc)
		b.UnmakeMove(m, st)
	}
	return nodes
}

// PerftDivide returns the leaf count below each legal root move. Useful for
// pinpointing generator disagreements.
func PerftDivide(b *Board, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range Generate(GenLegal, b, nil) {
		st := b.MakeMove(m)
		result[m] = Perft(b, depth-1)
		b.UnmakeMove(m, st)
	}
	return result
}
