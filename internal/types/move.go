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

package types

import (
	"fmt"
	"strings"
)

// Move packs a move into a single 16-bit word:
//  bits 0-5:   origin square (0-63)
//  bits 6-11:  destination square (0-63)
//  bits 12-13: move kind (MoveType)
//  bits 14-15: promotion piece type, only meaningful when kind == Promotion
// There is no move-ordering payload: ordering is out of scope for this
// engine, so unlike some table-driven engines Move carries nothing beyond
// what make/unmake and UCI notation need.
type Move uint16

// MoveNone represents the absence of a move.
const MoveNone Move = 0

const (
	fromShift  = 6
	typeShift  = 12
	promoShift = 14
)

// promoTypeToPieceType maps a 2-bit promotion code to a PieceType; only
// Knight, Bishop, Rook and Queen are representable (2 bits, values 0-3).
var promoTypeToPieceType = [4]PieceType{Knight, Bishop, Rook, Queen}
var pieceTypeToPromoType = map[PieceType]uint16{Knight: 0, Bishop: 1, Rook: 2, Queen: 3}

// CreateMove creates a Normal move from from to to.
func CreateMove(from, to Square) Move {
	return Move(uint16(to) | uint16(from)<<fromShift)
}

// CreateSpecialMove creates a move of the given kind. promo is only
// consulted when mt == Promotion.
func CreateSpecialMove(from, to Square, mt MoveType, promo PieceType) Move {
	m := uint16(to) | uint16(from)<<fromShift | uint16(mt)<<typeShift
	if mt == Promotion {
		m |= pieceTypeToPromoType[promo] << promoShift
	}
	return Move(m)
}

// From returns the move's origin square.
func (m Move) From() Square {
	return Square((m >> fromShift) & 0x3f)
}

// To returns the move's destination square.
func (m Move) To() Square {
	return Square(m & 0x3f)
}

// Type returns the move's kind.
func (m Move) Type() MoveType {
	return MoveType((m >> typeShift) & 0x3)
}

// PromotionType returns the piece type a pawn promotes to. Only valid
// when Type() == Promotion.
func (m Move) PromotionType() PieceType {
	return promoTypeToPieceType[(m>>promoShift)&0x3]
}

// IsValid reports whether m encodes a move with distinct, valid squares.
func (m Move) IsValid() bool {
	return m != MoveNone && m.From().IsValid() && m.To().IsValid() && m.From() != m.To()
}

// String returns pure coordinate notation (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	if m == MoveNone {
		return "no move"
	}
	s := m.From().String() + m.To().String()
	if m.Type() == Promotion {
		s += strings.ToLower(m.PromotionType().Char())
	}
	return s
}

// StringBits returns a binary dump of the move word, useful for debugging.
func (m Move) StringBits() string {
	return fmt.Sprintf("%016b", uint16(m))
}
