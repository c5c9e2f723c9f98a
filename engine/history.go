package engine

import (
	"chess-picker/pickmg"
)

// historyMax caps the magnitude of every history entry. The gravity update
// formula converges entries towards +-historyMax instead of clipping.
const historyMax = 16384

// MaxLowPly is the number of plies near the root that get the extra
// low-ply history term when scoring quiet moves.
const MaxLowPly = 4

func gravity(entry *int32, bonus int32) {
	bonus = Clamp(bonus, -historyMax, historyMax)
	*entry += bonus - *entry*Abs(bonus)/historyMax
}

// ButterflyHistory scores quiet moves by side to move and from/to squares.
type ButterflyHistory struct {
	table [2][64 * 64]int32
}

// Get returns the history score of m for the given side.
func (h *ButterflyHistory) Get(side pickmg.Color, m pickmg.Move) int32 {
	return h.table[side][m.FromTo()]
}

// Update applies a cutoff bonus (or failure malus) to m for the given side.
func (h *ButterflyHistory) Update(side pickmg.Color, m pickmg.Move, bonus int32) {
	gravity(&h.table[side][m.FromTo()], bonus)
}

// Clear empties the table.
func (h *ButterflyHistory) Clear() {
	h.table = [2][64 * 64]int32{}
}

// PieceToHistory scores moves by the moving piece and destination square. It
// is the building block of ContinuationHistory: each slot of the search stack
// holds a pointer to the PieceToHistory addressed by the move made there.
type PieceToHistory struct {
	table [16][64]int32
}

// Get returns the score for piece p landing on to.
func (h *PieceToHistory) Get(p pickmg.Piece, to pickmg.Square) int32 {
	return h.table[p][to]
}

// Update applies bonus to the entry for piece p landing on to.
func (h *PieceToHistory) Update(p pickmg.Piece, to pickmg.Square, bonus int32) {
	gravity(&h.table[p][to], bonus)
}

// Clear empties the table.
func (h *PieceToHistory) Clear() {
	h.table = [16][64]int32{}
}

// ContinuationHistory is the full table of PieceToHistory slots, addressed by
// the piece and destination of an earlier move in the line.
type ContinuationHistory struct {
	table [16][64]PieceToHistory
}

// Slot returns the PieceToHistory conditioned on piece p having just moved
// to square to. The returned pointer stays valid across updates.
func (h *ContinuationHistory) Slot(p pickmg.Piece, to pickmg.Square) *PieceToHistory {
	return &h.table[p][to]
}

// Sentinel returns the slot used when there is no earlier move (root, or
// after a null move). It is address-stable so pointer comparisons work.
func (h *ContinuationHistory) Sentinel() *PieceToHistory {
	return &h.table[pickmg.NoPiece][0]
}

// Clear empties every slot.
func (h *ContinuationHistory) Clear() {
	h.table = [16][64]PieceToHistory{}
}

// CaptureHistory scores captures by moving piece, destination square and the
// type of the captured piece.
type CaptureHistory struct {
	table [16][64][7]int32
}

// Get returns the score for piece p capturing a victim piece type on to.
func (h *CaptureHistory) Get(p pickmg.Piece, to pickmg.Square, victim pickmg.PieceType) int32 {
	return h.table[p][to][victim]
}

// Update applies bonus to the entry for piece p capturing victim on to.
func (h *CaptureHistory) Update(p pickmg.Piece, to pickmg.Square, victim pickmg.PieceType, bonus int32) {
	gravity(&h.table[p][to][victim], bonus)
}

// Clear empties the table.
func (h *CaptureHistory) Clear() {
	h.table = [16][64][7]int32{}
}

// LowPlyHistory gives quiet moves near the root an extra, quickly refreshed
// score keyed on ply and from/to squares.
type LowPlyHistory struct {
	table [MaxLowPly][64 * 64]int32
}

// Get returns the low-ply score of m at the given ply, or zero when the ply
// is out of range.
func (h *LowPlyHistory) Get(ply int, m pickmg.Move) int32 {
	if ply >= MaxLowPly {
		return 0
	}
	return h.table[ply][m.FromTo()]
}

// Update applies bonus to m at the given ply. Out-of-range plies are ignored.
func (h *LowPlyHistory) Update(ply int, m pickmg.Move, bonus int32) {
	if ply >= MaxLowPly {
		return
	}
	gravity(&h.table[ply][m.FromTo()], bonus)
}

// Clear empties the table.
func (h *LowPlyHistory) Clear() {
	h.table = [MaxLowPly][64 * 64]int32{}
}
