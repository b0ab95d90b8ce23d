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

// Package attacks materializes the full per-color, per-piece-type attack
// picture of a position. Unneeded by movegen, which computes attacked
// squares, pinned pieces and checkers directly and narrowly for the side
// to move only; this package exists to cross-check that narrower
// computation independently in tests and to power diagnostic tooling.
package attacks

import (
	"github.com/op/go-logging"

	myLogging "github.com/anvilchess/corechess/internal/logging"
	"github.com/anvilchess/corechess/internal/position"
	. "github.com/anvilchess/corechess/internal/types"
)

var log *logging.Logger

// Attacks stores every attacked/defended square of a position, both
// colors at once.
type Attacks struct {
	// Zobrist is the position key attacks were last computed for, so a
	// repeated Compute on the same position is a no-op.
	Zobrist position.Key
	// From holds, per color and origin square, the squares that piece attacks.
	From [ColorLength][SqLength]Bitboard
	// To holds, per color and target square, the attacking origin squares.
	To [ColorLength][SqLength]Bitboard
	// All is every square attacked by a color, union over all its pieces.
	All [ColorLength]Bitboard
	// Piece is every square attacked by a color's pieces of one type.
	Piece [ColorLength][PtLength]Bitboard
	// Mobility is the count of attacked squares not occupied by the
	// attacker's own pieces, summed over all pieces of a color.
	Mobility [ColorLength]int
	// Pawns is the squares attacked by a color's pawns.
	Pawns [ColorLength]Bitboard
	// PawnsDouble is the squares attacked by two pawns of a color at once.
	PawnsDouble [ColorLength]Bitboard
}

// NewAttacks creates an empty Attacks instance.
func NewAttacks() *Attacks {
	if log == nil {
		log = myLogging.GetLog()
	}
	return &Attacks{}
}

// Compute materializes every square attacked by every piece of p. Safe to
// call repeatedly on an evolving Position: calling it twice on the same
// zobrist key leaves a prior computation untouched.
func (a *Attacks) Compute(p *position.Position) {
	if p.ZobristKey() == a.Zobrist && a.Zobrist != 0 {
		return
	}
	a.Clear()
	a.Zobrist = p.ZobristKey()
	a.nonPawnAttacks(p)
	a.pawnAttacks(p)
}

// Clear resets every field to zero, including the cached zobrist key, so
// a subsequent Compute recomputes unconditionally even for the same
// position.
func (a *Attacks) Clear() {
	a.Zobrist = 0
	for sq := Square(0); sq < SqLength; sq++ {
		a.From[White][sq] = BbZero
		a.From[Black][sq] = BbZero
		a.To[White][sq] = BbZero
		a.To[Black][sq] = BbZero
	}
	for pt := PtNone; pt < PtLength; pt++ {
		a.Piece[White][pt] = BbZero
		a.Piece[Black][pt] = BbZero
	}
	a.All[White] = BbZero
	a.All[Black] = BbZero
	a.Mobility[White] = 0
	a.Mobility[Black] = 0
	a.Pawns[White] = BbZero
	a.Pawns[Black] = BbZero
	a.PawnsDouble[White] = BbZero
	a.PawnsDouble[Black] = BbZero
}

// nonPawnAttacks computes every non-pawn piece's attack set, king included.
func (a *Attacks) nonPawnAttacks(p *position.Position) {
	ptList := [5]PieceType{King, Knight, Bishop, Rook, Queen}
	allPieces := p.OccupiedAll()

	for c := White; c <= Black; c++ {
		myPieces := p.OccupiedBb(c)
		for _, pt := range ptList {
			for pieces := p.PiecesBb(c, pt); pieces != BbZero; {
				psq := pieces.PopLsb()
				atk := GetAttacksBb(pt, psq, allPieces)
				a.From[c][psq] = atk
				a.Piece[c][pt] |= atk
				a.All[c] |= atk
				for tmp := atk; tmp != BbZero; {
					toSq := tmp.PopLsb()
					a.To[c][toSq].PushSquare(psq)
				}
				a.Mobility[c] += (atk &^ myPieces).PopCount()
			}
		}
	}
}

// pawnAttacks computes each color's pawn attack set, and the squares
// attacked twice over (useful for defended-pawn-chain diagnostics).
func (a *Attacks) pawnAttacks(p *position.Position) {
	for c := White; c <= Black; c++ {
		pawns := p.PiecesBb(c, Pawn)
		var single, double Bitboard
		for bb := pawns; bb != BbZero; {
			sq := bb.PopLsb()
			atk := GetPawnAttacks(c, sq)
			double |= single & atk
			single |= atk
		}
		a.Pawns[c] = single
		a.PawnsDouble[c] = double
	}
}

// AttacksTo returns every square occupied by a piece of color attacking
// square, computed by casting rays outward from square as if it held
// each attacker type in turn (a reverse lookup, not a forward generator).
func AttacksTo(p *position.Position, square Square, color Color) Bitboard {
	epAttacks := BbZero
	enPassantSquare := p.GetEnPassantSquare()
	if enPassantSquare != SqNone && enPassantSquare == square {
		pawnSquare := enPassantSquare.To(color.Flip().PawnDirection())
		epAttacker := pawnSquare.NeighbourFilesMask() & pawnSquare.RankOf().Bb() & p.PiecesBb(color, Pawn)
		if epAttacker != BbZero {
			epAttacks |= pawnSquare.Bb()
		}
	}

	occupiedAll := p.OccupiedAll()

	return (GetPawnAttacks(color.Flip(), square) & p.PiecesBb(color, Pawn)) |
		(GetAttacksBb(Knight, square, occupiedAll) & p.PiecesBb(color, Knight)) |
		(GetAttacksBb(King, square, occupiedAll) & p.PiecesBb(color, King)) |
		(GetAttacksBb(Rook, square, occupiedAll) & (p.PiecesBb(color, Rook) | p.PiecesBb(color, Queen))) |
		(GetAttacksBb(Bishop, square, occupiedAll) & (p.PiecesBb(color, Bishop) | p.PiecesBb(color, Queen))) |
		epAttacks
}

// RevealedAttacks returns the sliding attacks on square once a piece has
// been removed from occupied, uncovering attacks that were previously
// blocked. Only sliders need to be considered: only their attacks can be
// revealed by removing a blocker.
func RevealedAttacks(p *position.Position, square Square, occupied Bitboard, color Color) Bitboard {
	return (GetAttacksBb(Rook, square, occupied) & (p.PiecesBb(color, Rook) | p.PiecesBb(color, Queen)) & occupied) |
		(GetAttacksBb(Bishop, square, occupied) & (p.PiecesBb(color, Bishop) | p.PiecesBb(color, Queen)) & occupied)
}
