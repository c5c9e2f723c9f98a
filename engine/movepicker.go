package engine

import (
	"chess-picker/pickmg"
)

// ExtMove is a move annotated with an ordering score.
type ExtMove struct {
	Move  pickmg.Move
	Score int32
}

// Quiescence depth thresholds. Depths are <= 0 in quiescence; at
// DepthQSChecks quiet checks are still tried, below DepthQSRecaptures only
// recaptures on the given square are considered.
const (
	DepthQSChecks     = 0
	DepthQSRecaptures = -5
)

// Picker stages. Each constructor picks an entry stage; Next walks forward
// from there, so the variants must stay contiguous and in emission order.
type pickStage uint8

const (
	stageMainTT pickStage = iota
	stageCaptureInit
	stageGoodCapture
	stageRefutation
	stageQuietInit
	stageQuiet
	stageBadCapture

	stageEvasionTT
	stageEvasionInit
	stageEvasion

	stageProbCutTT
	stageProbCutInit
	stageProbCut

	stageQSearchTT
	stageQCaptureInit
	stageQCapture
	stageQCheckInit
	stageQCheck

	stageDone
)

// MovePicker hands out the moves of a position one at a time, most promising
// first, generating each class of move only when the previous classes are
// exhausted. Create one picker per node and call Next until it returns
// MoveNone. Moves are pseudo-legal; the caller still verifies legality.
type MovePicker struct {
	board *pickmg.Board
	stage pickStage

	ttMove      pickmg.Move
	refutations [3]pickmg.Move
	refIndex    int

	depth       int
	ply         int
	threshold   int32
	recaptureSq pickmg.Square

	mainHistory    *ButterflyHistory
	captureHistory *CaptureHistory
	continuations  []*PieceToHistory
	lowPlyHistory  *LowPlyHistory

	moves       []ExtMove
	cur         int
	badCaptures []ExtMove
	badCur      int

	buf [pickmg.MaxMoves]pickmg.Move
}

// NewMovePicker builds a picker for a main-search node. killers and counter
// seed the refutation stage; the continuation slots are consulted in the
// order given when scoring quiet moves. A ttMove that is not pseudo-legal in
// this position is discarded.
func NewMovePicker(b *pickmg.Board, ttMove pickmg.Move, depth, ply int,
	mainHist *ButterflyHistory, captHist *CaptureHistory,
	continuations []*PieceToHistory, lowPly *LowPlyHistory,
	killers [2]pickmg.Move, counter pickmg.Move) *MovePicker {

	mp := &MovePicker{
		board:          b,
		depth:          depth,
		ply:            ply,
		mainHistory:    mainHist,
		captureHistory: captHist,
		continuations:  continuations,
		lowPlyHistory:  lowPly,
		refutations:    [3]pickmg.Move{killers[0], killers[1], counter},
	}
	if b.InCheck() {
		mp.stage = stageEvasionTT
	} else {
		mp.stage = stageMainTT
	}
	if ttMove != pickmg.MoveNone && b.PseudoLegal(ttMove) {
		mp.ttMove = ttMove
	} else {
		mp.stage++
	}
	return mp
}

// NewQMovePicker builds a picker for a quiescence node. At depth
// DepthQSChecks quiet checks follow the captures; below DepthQSRecaptures
// only captures on recaptureSq are produced. A ttMove that does not fit the
// depth's move classes is discarded.
func NewQMovePicker(b *pickmg.Board, ttMove pickmg.Move, depth int,
	recaptureSq pickmg.Square,
	mainHist *ButterflyHistory, captHist *CaptureHistory) *MovePicker {

	mp := &MovePicker{
		board:          b,
		depth:          depth,
		mainHistory:    mainHist,
		captureHistory: captHist,
		recaptureSq:    recaptureSq,
	}
	switch {
	case b.InCheck():
		mp.stage = stageEvasionTT
	default:
		mp.stage = stageQSearchTT
	}
	ok := ttMove != pickmg.MoveNone && b.PseudoLegal(ttMove)
	if ok && !b.InCheck() && depth <= DepthQSRecaptures && ttMove.To() != recaptureSq {
		ok = false
	}
	if ok && !b.InCheck() && depth < DepthQSChecks && !b.IsCapture(ttMove) {
		ok = false
	}
	if ok {
		mp.ttMove = ttMove
	} else {
		mp.stage++
	}
	return mp
}

// NewProbCutPicker builds a picker that produces only captures whose static
// exchange value reaches threshold. The ttMove must itself be such a capture
// or it is discarded.
func NewProbCutPicker(b *pickmg.Board, ttMove pickmg.Move, threshold int32,
	captHist *CaptureHistory) *MovePicker {

	mp := &MovePicker{
		board:          b,
		threshold:      threshold,
		captureHistory: captHist,
		stage:          stageProbCutTT,
	}
	if ttMove != pickmg.MoveNone && b.PseudoLegal(ttMove) &&
		b.IsCapture(ttMove) && b.SeeGe(ttMove, threshold) {
		mp.ttMove = ttMove
	} else {
		mp.stage++
	}
	return mp
}

// Next returns the next most promising move, or MoveNone when the picker is
// exhausted. When skipQuiets is true, quiet moves are suppressed for the
// rest of the node except those whose history score is already known
// positive from an earlier call.
func (mp *MovePicker) Next(skipQuiets bool) pickmg.Move {
	for {
		switch mp.stage {

		case stageMainTT, stageEvasionTT, stageProbCutTT, stageQSearchTT:
			mp.stage++
			return mp.ttMove

		case stageCaptureInit, stageProbCutInit, stageQCaptureInit:
			mp.generate(pickmg.GenCaptures)
			mp.scoreCaptures()
			mp.stage++

		case stageGoodCapture:
			if m := mp.selectBest(mp.goodCaptureFilter); m != pickmg.MoveNone {
				return m
			}
			mp.stage++

		case stageRefutation:
			for mp.refIndex < len(mp.refutations) {
				m := mp.refutations[mp.refIndex]
				mp.refIndex++
				// The countermove may duplicate a killer.
				if mp.refIndex == 3 && (m == mp.refutations[0] || m == mp.refutations[1]) {
					continue
				}
				if m != pickmg.MoveNone && m != mp.ttMove &&
					!mp.board.IsCapture(m) && mp.board.PseudoLegal(m) {
					return m
				}
			}
			mp.stage++

		case stageQuietInit:
			if !skipQuiets {
				mp.generate(pickmg.GenQuiets)
				mp.scoreQuiets()
				partialInsertionSort(mp.moves, -3000*int32(mp.depth))
			}
			mp.stage++

		case stageQuiet:
			for mp.cur < len(mp.moves) {
				em := mp.moves[mp.cur]
				if skipQuiets && em.Score < 0 {
					break
				}
				mp.cur++
				if em.Move != mp.ttMove && !mp.isRefutation(em.Move) {
					return em.Move
				}
			}
			mp.stage++

		case stageBadCapture:
			if mp.badCur < len(mp.badCaptures) {
				m := mp.badCaptures[mp.badCur].Move
				mp.badCur++
				return m
			}
			return pickmg.MoveNone

		case stageEvasionInit:
			mp.generate(pickmg.GenEvasions)
			mp.scoreEvasions()
			mp.stage++

		case stageEvasion:
			return mp.selectBest(nil)

		case stageProbCut:
			return mp.selectBest(mp.probCutFilter)

		case stageQCapture:
			if m := mp.selectBest(mp.qCaptureFilter); m != pickmg.MoveNone {
				return m
			}
			if mp.depth != DepthQSChecks {
				return pickmg.MoveNone
			}
			mp.stage++

		case stageQCheckInit:
			mp.generate(pickmg.GenQuietChecks)
			mp.stage++

		case stageQCheck:
			for mp.cur < len(mp.moves) {
				m := mp.moves[mp.cur].Move
				mp.cur++
				if m != mp.ttMove {
					return m
				}
			}
			return pickmg.MoveNone

		default:
			return pickmg.MoveNone
		}
	}
}

// generate fills mp.moves with the requested move class, resetting the
// cursor. The scratch buffer is shared across stages; each init stage runs
// only after the previous class is fully consumed.
func (mp *MovePicker) generate(gt pickmg.GenType) {
	list := pickmg.Generate(gt, mp.board, mp.buf[:0])
	if cap(mp.moves) < len(list) {
		mp.moves = make([]ExtMove, 0, pickmg.MaxMoves)
	}
	mp.moves = mp.moves[:0]
	for _, m := range list {
		mp.moves = append(mp.moves, ExtMove{Move: m})
	}
	mp.cur = 0
}

// selectBest repeatedly swaps the highest-scored remaining move to the
// front, skips the ttMove, and returns the first move accepted by filter.
// A nil filter accepts everything.
func (mp *MovePicker) selectBest(filter func(*ExtMove) bool) pickmg.Move {
	for mp.cur < len(mp.moves) {
		best := mp.cur
		for i := mp.cur + 1; i < len(mp.moves); i++ {
			if mp.moves[i].Score > mp.moves[best].Score {
				best = i
			}
		}
		mp.moves[mp.cur], mp.moves[best] = mp.moves[best], mp.moves[mp.cur]
		em := &mp.moves[mp.cur]
		mp.cur++
		if em.Move == mp.ttMove {
			continue
		}
		if filter == nil || filter(em) {
			return em.Move
		}
	}
	return pickmg.MoveNone
}

// goodCaptureFilter accepts captures that pass a static exchange check with
// a threshold scaled by the capture's own score, so that well-scored
// captures are allowed to shed a little material. Rejected captures are
// queued for the bad-capture stage in the order they fail.
func (mp *MovePicker) goodCaptureFilter(em *ExtMove) bool {
	if mp.board.SeeGe(em.Move, -em.Score*55/1024) {
		return true
	}
	mp.badCaptures = append(mp.badCaptures, *em)
	return false
}

func (mp *MovePicker) probCutFilter(em *ExtMove) bool {
	return mp.board.SeeGe(em.Move, mp.threshold)
}

// qCaptureFilter restricts deep quiescence to recaptures on the last
// capture square.
func (mp *MovePicker) qCaptureFilter(em *ExtMove) bool {
	return mp.depth > DepthQSRecaptures || em.Move.To() == mp.recaptureSq
}

func (mp *MovePicker) isRefutation(m pickmg.Move) bool {
	return m == mp.refutations[0] || m == mp.refutations[1] || m == mp.refutations[2]
}

// scoreCaptures orders captures by victim value plus capture history of the
// aggressor. Promotion captures score by the captured piece like any other.
func (mp *MovePicker) scoreCaptures() {
	b := mp.board
	for i := range mp.moves {
		m := mp.moves[i].Move
		victim := victimType(b, m)
		score := PieceValue[victim]
		if mp.captureHistory != nil {
			score += mp.captureHistory.Get(b.PieceAt(m.From()), m.To(), victim)
		}
		mp.moves[i].Score = score
	}
}

// scoreQuiets combines butterfly history, the continuation slots supplied at
// construction time, and low-ply history near the root.
func (mp *MovePicker) scoreQuiets() {
	b := mp.board
	us := b.SideToMove()
	for i := range mp.moves {
		m := mp.moves[i].Move
		var score int32
		if mp.mainHistory != nil {
			score = mp.mainHistory.Get(us, m)
		}
		moved := b.PieceAt(m.From())
		for _, cont := range mp.continuations {
			if cont != nil {
				score += cont.Get(moved, m.To())
			}
		}
		if mp.lowPlyHistory != nil && mp.ply < MaxLowPly {
			score += 2 * mp.lowPlyHistory.Get(mp.ply, m)
		}
		mp.moves[i].Score = score
	}
}

// scoreEvasions puts checker captures first, ordered by victim value minus
// attacker type, and ranks the quiet evasions below every capture by
// subtracting a large constant from their history score.
func (mp *MovePicker) scoreEvasions() {
	const quietEvasionOffset = int32(1) << 28
	b := mp.board
	us := b.SideToMove()
	for i := range mp.moves {
		m := mp.moves[i].Move
		if b.IsCapture(m) {
			mp.moves[i].Score = PieceValue[victimType(b, m)] -
				int32(b.PieceAt(m.From()).Type())
			continue
		}
		var score int32
		if mp.mainHistory != nil {
			score = mp.mainHistory.Get(us, m)
		}
		mp.moves[i].Score = score - quietEvasionOffset
	}
}

// partialInsertionSort sorts the moves scoring above limit to the front in
// descending order and leaves the rest where they fall, unsorted. Quiet
// lists are long and mostly below the limit, so this beats a full sort.
func partialInsertionSort(moves []ExtMove, limit int32) {
	sortedEnd := 0
	for i := 0; i < len(moves); i++ {
		if moves[i].Score <= limit {
			continue
		}
		tmp := moves[i]
		moves[i] = moves[sortedEnd]
		j := sortedEnd
		for ; j > 0 && moves[j-1].Score < tmp.Score; j-- {
			moves[j] = moves[j-1]
		}
		moves[j] = tmp
		sortedEnd++
	}
}
