package pickmg

import (
	"fmt"
	"math/bits"
	"math/rand"
)

// magicEntry holds the per-square data for the multiply-shift slider lookup:
// the relevance mask, the magic multiplier, the shift and the offset of this
// square's region inside the shared attack table.
type magicEntry struct {
	mask   uint64
	magic  uint64
	shift  uint8
	offset uint32
}

var rookMagics [64]magicEntry
var bishopMagics [64]magicEntry

// Shared attack tables. The sizes are the sums of 1<<popcount(mask) over all
// squares: 102400 rook entries and 5248 bishop entries.
var rookTable [0x19000]uint64
var bishopTable [0x1480]uint64

// magicSeed keeps table construction reproducible run to run.
const magicSeed = 0x1EA5

// maxMagicTries bounds the per-square search. Random sparse candidates find a
// collision-free magic within a few thousand tries in practice; running out
// means the tables would be broken, which is fatal.
const maxMagicTries = 100_000_000

var rookDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
var bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// slidingAttacks ray-traces the attack set of a slider on sq for the given
// occupancy, stopping at (and including) the first blocker in each direction.
func slidingAttacks(sq Square, occ uint64, dirs *[4][2]int) uint64 {
	var attacks uint64
	for _, d := range dirs {
		r, f := sq.Rank()+d[0], sq.File()+d[1]
		for r >= 0 && r < 8 && f >= 0 && f < 8 {
			to := uint64(1) << (r*8 + f)
			attacks |= to
			if occ&to != 0 {
				break
			}
			r += d[0]
			f += d[1]
		}
	}
	return attacks
}

// relevanceMask is the slider attack set on an empty board minus the edge
// squares of each ray: a piece on the board edge blocks nothing beyond it.
func relevanceMask(sq Square, dirs *[4][2]int) uint64 {
	var edges uint64
	edges |= (rank1BB | rank8BB) &^ (rank1BB << (8 * sq.Rank()))
	edges |= (fileABB | fileHBB) &^ (fileABB << sq.File())
	return slidingAttacks(sq, 0, dirs) &^ edges
}

func initMagics() {
	rng := rand.New(rand.NewSource(magicSeed))
	var rookOffset, bishopOffset uint32

	for sq := Square(0); sq < 64; sq++ {
		rookMagics[sq].offset = rookOffset
		rookOffset += findMagic(sq, &rookMagics[sq], &rookDirs, rookTable[rookOffset:], rng)

		bishopMagics[sq].offset = bishopOffset
		bishopOffset += findMagic(sq, &bishopMagics[sq], &bishopDirs, bishopTable[bishopOffset:], rng)
	}
}

// findMagic fills in mask/magic/shift for one square and writes the attack
// sets into the square's region of the shared table. Returns the region size.
func findMagic(sq Square, entry *magicEntry, dirs *[4][2]int, table []uint64, rng *rand.Rand) uint32 {
	mask := relevanceMask(sq, dirs)
	bitCount := bits.OnesCount64(mask)
	size := uint32(1) << bitCount

	entry.mask = mask
	entry.shift = uint8(64 - bitCount)

	// Enumerate every subset of the mask (Carry-Rippler) together with its
	// ray-traced attack set.
	occs := make([]uint64, 0, size)
	refs := make([]uint64, 0, size)
	occ := uint64(0)
	for {
		occs = append(occs, occ)
		refs = append(refs, slidingAttacks(sq, occ, dirs))
		occ = (occ - mask) & mask
		if occ == 0 {
			break
		}
	}

	// Trial candidates until the multiply-shift hash is collision-free over
	// all subsets. Colliding entries with identical attack sets are fine.
	seen := make([]uint32, size)
	for try, epoch := 0, uint32(0); ; try++ {
		if try >= maxMagicTries {
			panic(fmt.Sprintf("pickmg: no magic found for square %s within %d tries", sq, maxMagicTries))
		}

		magic := rng.Uint64() & rng.Uint64() & rng.Uint64()
		if bits.OnesCount64((mask*magic)>>56) < 6 {
			continue // too few high bits, cannot index well
		}

		epoch++
		ok := true
		for i := range occs {
			idx := (occs[i] * magic) >> entry.shift
			if seen[idx] == epoch && table[idx] != refs[i] {
				ok = false
				break
			}
			seen[idx] = epoch
			table[idx] = refs[i]
		}
		if ok {
			entry.magic = magic
			return size
		}
	}
}

func (m *magicEntry) index(occ uint64) uint32 {
	return m.offset + uint32(((occ&m.mask)*m.magic)>>m.shift)
}

// RookAttacks returns rook attacks from sq given board occupancy.
func RookAttacks(sq Square, occ uint64) uint64 {
	return rookTable[rookMagics[sq].index(occ)]
}

// BishopAttacks returns bishop attacks from sq given board occupancy.
func BishopAttacks(sq Square, occ uint64) uint64 {
	return bishopTable[bishopMagics[sq].index(occ)]
}

// RookRelevanceMask exposes the rook relevance mask for a square.
func RookRelevanceMask(sq Square) uint64 { return rookMagics[sq].mask }

// BishopRelevanceMask exposes the bishop relevance mask for a square.
func BishopRelevanceMask(sq Square) uint64 { return bishopMagics[sq].mask }

// MagicConstants returns the found (magic, shift, offset) triple for a square,
// for the rook tables when rook is true. Used by cmd/magics.
func MagicConstants(sq Square, rook bool) (uint64, uint8, uint32) {
	e := &bishopMagics[sq]
	if rook {
		e = &rookMagics[sq]
	}
	return e.magic, e.shift, e.offset
}
