/*
 * corechess - chess move generation core
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package movegen generates legal moves for a position. A Movegen is
// stateful over one generation pass: it snapshots the attacked-by-enemy,
// pinned and checker sets of the position once and reuses them across
// the piece-specific generators invoked during that pass.
package movegen

import (
	"github.com/op/go-logging"

	myLogging "github.com/anvilchess/corechess/internal/logging"
	"github.com/anvilchess/corechess/internal/moveslice"
	"github.com/anvilchess/corechess/internal/position"
	. "github.com/anvilchess/corechess/internal/types"
)

var log *logging.Logger

// Movegen generates legal moves for one Position snapshot at a time.
// Create via NewMoveGen(); the zero value is not usable.
type Movegen struct {
	moves *moveslice.MoveSlice

	us, them        Color
	occupied        Bitboard
	ourPieces       Bitboard
	attackedByEnemy Bitboard
	pinned          Bitboard
	pinRay          [SqLength]Bitboard
	checkers        Bitboard
}

// NewMoveGen creates a new move generator with an internal move buffer
// sized for the largest legal move count any position can have.
func NewMoveGen() *Movegen {
	if log == nil {
		log = myLogging.GetLog()
	}
	return &Movegen{
		moves: moveslice.NewMoveSlice(MaxMoves),
	}
}

// GenerateLegalMoves returns every legal move for the side to move in p.
// The returned slice is owned by mg and reused on the next call.
func (mg *Movegen) GenerateLegalMoves(p *position.Position) *moveslice.MoveSlice {
	mg.moves.Clear()
	mg.prepare(p)

	if mg.checkers != BbZero {
		mg.generateEvasions(p)
		return mg.moves
	}

	mg.generatePawnMoves(p, BbAll)
	mg.generateKnightMoves(p, BbAll)
	mg.generateSliderMoves(p, Bishop, BbAll)
	mg.generateSliderMoves(p, Rook, BbAll)
	mg.generateSliderMoves(p, Queen, BbAll)
	mg.generateKingMoves(p)
	mg.generateCastling(p)
	return mg.moves
}

// prepare snapshots occupancy, the enemy's full attack set (with our king
// removed from occupancy, so sliders see through it), pinned pieces and
// checkers - the caches the rest of a generation pass consults.
func (mg *Movegen) prepare(p *position.Position) {
	mg.us = p.NextPlayer()
	mg.them = mg.us.Flip()
	mg.occupied = p.OccupiedAll()
	mg.ourPieces = p.OccupiedBb(mg.us)
	ourKingSq := p.KingSquare(mg.us)

	occWithoutOurKing := mg.occupied &^ ourKingSq.Bb()
	mg.attackedByEnemy = mg.allAttacks(p, mg.them, occWithoutOurKing)

	mg.pinned, mg.pinRay = mg.computePinned(p, ourKingSq)
	mg.checkers = mg.computeCheckers(p, ourKingSq)
}

// allAttacks returns every square attacked by color by, given occupied.
// Used both for the king's move mask (occupied excludes our own king, so
// a slider's attack is not blocked by the square the king is leaving)
// and, via IsAttacked-style per-square queries, by the castling path
// check below.
func (mg *Movegen) allAttacks(p *position.Position, by Color, occupied Bitboard) Bitboard {
	var attacks Bitboard

	pawns := p.PiecesBb(by, Pawn)
	for bb := pawns; bb != BbZero; {
		sq := bb.PopLsb()
		attacks |= GetPawnAttacks(by, sq)
	}
	knights := p.PiecesBb(by, Knight)
	for bb := knights; bb != BbZero; {
		sq := bb.PopLsb()
		attacks |= GetPseudoAttacks(Knight, sq)
	}
	king := p.PiecesBb(by, King)
	if king != BbZero {
		attacks |= GetPseudoAttacks(King, king.Lsb())
	}
	bishops := p.PiecesBb(by, Bishop) | p.PiecesBb(by, Queen)
	for bb := bishops; bb != BbZero; {
		sq := bb.PopLsb()
		attacks |= GetAttacksBb(Bishop, sq, occupied)
	}
	rooks := p.PiecesBb(by, Rook) | p.PiecesBb(by, Queen)
	for bb := rooks; bb != BbZero; {
		sq := bb.PopLsb()
		attacks |= GetAttacksBb(Rook, sq, occupied)
	}
	return attacks
}

// computePinned finds every one of our pieces standing between our king
// and an aligned enemy slider with nothing else in between, and the ray
// (intermediate squares plus the pinner) each such piece is confined to.
func (mg *Movegen) computePinned(p *position.Position, kingSq Square) (Bitboard, [SqLength]Bitboard) {
	var pinned Bitboard
	var rays [SqLength]Bitboard

	rookSnipers := GetPseudoAttacks(Rook, kingSq) & (p.PiecesBb(mg.them, Rook) | p.PiecesBb(mg.them, Queen))
	bishopSnipers := GetPseudoAttacks(Bishop, kingSq) & (p.PiecesBb(mg.them, Bishop) | p.PiecesBb(mg.them, Queen))

	for snipers := rookSnipers | bishopSnipers; snipers != BbZero; {
		sniperSq := snipers.PopLsb()
		between := Intermediate(kingSq, sniperSq) & mg.occupied
		if between.PopCount() == 1 && (between&mg.ourPieces) != BbZero {
			pinnedSq := between.Lsb()
			pinned |= pinnedSq.Bb()
			rays[pinnedSq] = Intermediate(kingSq, sniperSq) | sniperSq.Bb()
		}
	}
	return pinned, rays
}

// computeCheckers returns every enemy piece currently giving check.
func (mg *Movegen) computeCheckers(p *position.Position, kingSq Square) Bitboard {
	var checkers Bitboard
	checkers |= GetPawnAttacks(mg.us, kingSq) & p.PiecesBb(mg.them, Pawn)
	checkers |= GetPseudoAttacks(Knight, kingSq) & p.PiecesBb(mg.them, Knight)
	checkers |= GetAttacksBb(Bishop, kingSq, mg.occupied) & (p.PiecesBb(mg.them, Bishop) | p.PiecesBb(mg.them, Queen))
	checkers |= GetAttacksBb(Rook, kingSq, mg.occupied) & (p.PiecesBb(mg.them, Rook) | p.PiecesBb(mg.them, Queen))
	return checkers
}

// allowedSquares returns the squares a piece on src may move to, once the
// pin filter is applied: unpinned pieces may go anywhere in target,
// pinned pieces are confined to target intersected with their pin ray.
func (mg *Movegen) allowedSquares(src Square, target Bitboard) Bitboard {
	if mg.pinned.Has(src) {
		return target & mg.pinRay[src]
	}
	return target
}

func (mg *Movegen) generatePawnMoves(p *position.Position, target Bitboard) {
	dir := mg.us.PawnDirection()
	promoRank := mg.us.PromotionRankBb()
	pawns := p.PiecesBb(mg.us, Pawn)

	for bb := pawns; bb != BbZero; {
		src := bb.PopLsb()

		single := src.To(dir)
		if single.IsValid() && !mg.occupied.Has(single) {
			dst := single.Bb() & mg.allowedSquares(src, target)
			if dst != BbZero {
				mg.addPawnMove(src, single, promoRank)
			}
			if src.Bb()&mg.us.PawnBaseRankBb() != BbZero {
				double := single.To(dir)
				if double.IsValid() && !mg.occupied.Has(double) {
					if (double.Bb() & mg.allowedSquares(src, target)) != BbZero {
						mg.moves.PushBack(CreateMove(src, double))
					}
				}
			}
		}

		captures := GetPawnAttacks(mg.us, src) & p.OccupiedBb(mg.them) & mg.allowedSquares(src, target)
		for c := captures; c != BbZero; {
			dst := c.PopLsb()
			mg.addPawnMove(src, dst, promoRank)
		}

		ep := p.GetEnPassantSquare()
		if ep != SqNone && (GetPawnAttacks(mg.us, src)&ep.Bb()) != BbZero {
			capturedSq := ep.To(mg.them.PawnDirection())
			if mg.allowedSquares(src, target)&ep.Bb() == BbZero && target&capturedSq.Bb() == BbZero {
				continue
			}
			if mg.isLegalEnPassant(p, src, ep) {
				mg.moves.PushBack(CreateSpecialMove(src, ep, EnPassant, 0))
			}
		}
	}
}

func (mg *Movegen) addPawnMove(src, dst Square, promoRank Bitboard) {
	if dst.Bb()&promoRank != BbZero {
		mg.moves.PushBack(CreateSpecialMove(src, dst, Promotion, Knight))
		mg.moves.PushBack(CreateSpecialMove(src, dst, Promotion, Bishop))
		mg.moves.PushBack(CreateSpecialMove(src, dst, Promotion, Rook))
		mg.moves.PushBack(CreateSpecialMove(src, dst, Promotion, Queen))
		return
	}
	mg.moves.PushBack(CreateMove(src, dst))
}

// isLegalEnPassant applies the two en passant legality checks beyond the
// ordinary pin filter: a diagonal pin along the capture ray does not
// forbid the capture, but a horizontal discovered check through the
// vacated rank does.
func (mg *Movegen) isLegalEnPassant(p *position.Position, src, ep Square) bool {
	capturedSq := ep.To(mg.them.PawnDirection())
	kingSq := p.KingSquare(mg.us)

	if mg.pinned.Has(src) {
		ray := mg.pinRay[src]
		if ray&ep.Bb() == BbZero {
			return false
		}
	}

	occAfter := (mg.occupied | ep.Bb()) &^ src.Bb() &^ capturedSq.Bb()
	attackers := GetAttacksBb(Rook, kingSq, occAfter) &
		(p.PiecesBb(mg.them, Rook) | p.PiecesBb(mg.them, Queen))
	return attackers == BbZero
}

func (mg *Movegen) generateKnightMoves(p *position.Position, target Bitboard) {
	knights := p.PiecesBb(mg.us, Knight) &^ mg.pinned
	for bb := knights; bb != BbZero; {
		src := bb.PopLsb()
		dsts := GetPseudoAttacks(Knight, src) & target &^ mg.ourPieces
		for d := dsts; d != BbZero; {
			dst := d.PopLsb()
			mg.moves.PushBack(CreateMove(src, dst))
		}
	}
}

func (mg *Movegen) generateSliderMoves(p *position.Position, pt PieceType, target Bitboard) {
	pieces := p.PiecesBb(mg.us, pt)
	for bb := pieces; bb != BbZero; {
		src := bb.PopLsb()
		dsts := GetAttacksBb(pt, src, mg.occupied) & mg.allowedSquares(src, target) &^ mg.ourPieces
		for d := dsts; d != BbZero; {
			dst := d.PopLsb()
			mg.moves.PushBack(CreateMove(src, dst))
		}
	}
}

func (mg *Movegen) generateKingMoves(p *position.Position) {
	kingSq := p.KingSquare(mg.us)
	dsts := GetPseudoAttacks(King, kingSq) &^ mg.ourPieces &^ mg.attackedByEnemy
	for d := dsts; d != BbZero; {
		dst := d.PopLsb()
		mg.moves.PushBack(CreateMove(kingSq, dst))
	}
}

func (mg *Movegen) generateCastling(p *position.Position) {
	rights := p.CastlingRights()

	if mg.us == White {
		if rights.Has(CastlingWhiteOO) && mg.canCastle(kingSideEmpty[White], SqE1, SqF1, SqG1) {
			mg.moves.PushBack(CreateSpecialMove(SqE1, SqG1, Castling, 0))
		}
		if rights.Has(CastlingWhiteOOO) && mg.canCastleQueenside(queenSideEmpty[White], SqE1, SqD1, SqC1) {
			mg.moves.PushBack(CreateSpecialMove(SqE1, SqC1, Castling, 0))
		}
		return
	}
	if rights.Has(CastlingBlackOO) && mg.canCastle(kingSideEmpty[Black], SqE8, SqF8, SqG8) {
		mg.moves.PushBack(CreateSpecialMove(SqE8, SqG8, Castling, 0))
	}
	if rights.Has(CastlingBlackOOO) && mg.canCastleQueenside(queenSideEmpty[Black], SqE8, SqD8, SqC8) {
		mg.moves.PushBack(CreateSpecialMove(SqE8, SqC8, Castling, 0))
	}
}

func (mg *Movegen) canCastle(emptyMask Bitboard, kingSq, through, dest Square) bool {
	if mg.occupied&emptyMask != BbZero {
		return false
	}
	return !mg.attackedByEnemy.Has(kingSq) && !mg.attackedByEnemy.Has(through) && !mg.attackedByEnemy.Has(dest)
}

// canCastleQueenside tests the b-square (folded into emptyMask) only for
// emptiness, never for non-attack - the rook passes over it, the king
// does not, so only the king's start, transit and destination squares
// need to be safe.
func (mg *Movegen) canCastleQueenside(emptyMask Bitboard, kingSq, through, dest Square) bool {
	if mg.occupied&emptyMask != BbZero {
		return false
	}
	return !mg.attackedByEnemy.Has(kingSq) && !mg.attackedByEnemy.Has(through) && !mg.attackedByEnemy.Has(dest)
}

var kingSideEmpty = [ColorLength]Bitboard{
	White: SqF1.Bb() | SqG1.Bb(),
	Black: SqF8.Bb() | SqG8.Bb(),
}

var queenSideEmpty = [ColorLength]Bitboard{
	White: SqB1.Bb() | SqC1.Bb() | SqD1.Bb(),
	Black: SqB8.Bb() | SqC8.Bb() | SqD8.Bb(),
}

// generateEvasions handles the side to move being in check: king moves
// away from every checker's ray (including the squares "behind" the king
// on a slider's attack line), plus, with exactly one checker, captures of
// or interpositions against that checker.
func (mg *Movegen) generateEvasions(p *position.Position) {
	kingSq := p.KingSquare(mg.us)

	kingTarget := GetPseudoAttacks(King, kingSq) &^ mg.ourPieces &^ mg.attackedByEnemy
	for checkers := mg.checkers; checkers != BbZero; {
		checkerSq := checkers.PopLsb()
		if p.GetPiece(checkerSq).TypeOf() == Bishop ||
			p.GetPiece(checkerSq).TypeOf() == Rook ||
			p.GetPiece(checkerSq).TypeOf() == Queen {
			behind := rayBehindKing(kingSq, checkerSq)
			kingTarget &^= behind
		}
	}
	for d := kingTarget; d != BbZero; {
		dst := d.PopLsb()
		mg.moves.PushBack(CreateMove(kingSq, dst))
	}

	if mg.checkers.PopCount() > 1 {
		return
	}

	checkerSq := mg.checkers.Lsb()
	blockTarget := checkerSq.Bb() | Intermediate(kingSq, checkerSq)

	mg.generatePawnMoves(p, blockTarget)
	mg.generateKnightMoves(p, blockTarget)
	mg.generateSliderMoves(p, Bishop, blockTarget)
	mg.generateSliderMoves(p, Rook, blockTarget)
	mg.generateSliderMoves(p, Queen, blockTarget)
}

// rayBehindKing returns the squares beyond the king on the line from
// checkerSq through kingSq - the squares a king stepping "backward"
// along a slider's attack would still be in check on.
func rayBehindKing(kingSq, checkerSq Square) Bitboard {
	for o := N; o <= NW; o++ {
		ray := checkerSq.Ray(o)
		if ray.Has(kingSq) {
			return kingSq.Ray(o) &^ Intermediate(checkerSq, kingSq) &^ checkerSq.Bb()
		}
	}
	return BbZero
}
