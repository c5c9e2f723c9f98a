package engine

import (
	"chess-picker/pickmg"
)

// MaxDepth bounds the search ply for killer storage.
const MaxDepth = 128

// KillerTable keeps two quiet moves per ply that recently caused a cutoff.
type KillerTable struct {
	moves [MaxDepth + 1][2]pickmg.Move
}

// Insert records move as the newest killer at the given ply, shifting the
// previous one down. Re-inserting the current first killer is a no-op.
func (k *KillerTable) Insert(move pickmg.Move, ply int) {
	if move != k.moves[ply][0] {
		k.moves[ply][1] = k.moves[ply][0]
		k.moves[ply][0] = move
	}
}

// Get returns the killer pair at the given ply.
func (k *KillerTable) Get(ply int) [2]pickmg.Move {
	return k.moves[ply]
}

// Clear empties the killer table.
func (k *KillerTable) Clear() {
	for ply := 0; ply < MaxDepth+1; ply++ {
		k.moves[ply][0] = pickmg.MoveNone
		k.moves[ply][1] = pickmg.MoveNone
	}
}

// CounterMoveTable maps the previous move (by side and from/to squares) to a
// quiet reply that refuted it.
type CounterMoveTable struct {
	moves [2][64][64]pickmg.Move
}

// Store records move as the counter to prevMove for the given side.
func (c *CounterMoveTable) Store(side pickmg.Color, prevMove, move pickmg.Move) {
	c.moves[side][prevMove.From()][prevMove.To()] = move
}

// Get returns the stored counter to prevMove, or MoveNone.
func (c *CounterMoveTable) Get(side pickmg.Color, prevMove pickmg.Move) pickmg.Move {
	if prevMove == pickmg.MoveNone {
		return pickmg.MoveNone
	}
	return c.moves[side][prevMove.From()][prevMove.To()]
}

// Clear empties the counter move table.
func (c *CounterMoveTable) Clear() {
	for from := 0; from < 64; from++ {
		for to := 0; to < 64; to++ {
			c.moves[0][from][to] = pickmg.MoveNone
			c.moves[1][from][to] = pickmg.MoveNone
		}
	}
}
