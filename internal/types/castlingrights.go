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

import "strings"

// CastlingRights is a bitset of the four castling availabilities.
type CastlingRights uint8

// CastlingRights constants.
const (
	CastlingNone     CastlingRights = 0
	CastlingWhiteOO  CastlingRights = 1 << 0
	CastlingWhiteOOO CastlingRights = 1 << 1
	CastlingBlackOO  CastlingRights = 1 << 2
	CastlingBlackOOO CastlingRights = 1 << 3
	CastlingWhite    CastlingRights = CastlingWhiteOO | CastlingWhiteOOO
	CastlingBlack    CastlingRights = CastlingBlackOO | CastlingBlackOOO
	CastlingAny      CastlingRights = CastlingWhite | CastlingBlack

	// CastlingRightsLength is the number of distinct CastlingRights bitsets (2^4).
	CastlingRightsLength = 16
)

// Has reports whether all bits of other are set in cr.
func (cr CastlingRights) Has(other CastlingRights) bool {
	return cr&other == other
}

// Remove clears the given bits from cr and returns the result.
func (cr *CastlingRights) Remove(other CastlingRights) {
	*cr &^= other
}

// Add sets the given bits on cr.
func (cr *CastlingRights) Add(other CastlingRights) {
	*cr |= other
}

// String returns the FEN castling-availability field, "-" when none remain.
func (cr CastlingRights) String() string {
	if cr == CastlingNone {
		return "-"
	}
	var b strings.Builder
	if cr.Has(CastlingWhiteOO) {
		b.WriteByte('K')
	}
	if cr.Has(CastlingWhiteOOO) {
		b.WriteByte('Q')
	}
	if cr.Has(CastlingBlackOO) {
		b.WriteByte('k')
	}
	if cr.Has(CastlingBlackOOO) {
		b.WriteByte('q')
	}
	return b.String()
}

// castleRightsBySquare holds, per square, the castling rights that
// survive a piece moving from or being captured on that square. All
// entries keep every right except the six home squares of the kings and
// rooks, which drop the rights they anchor.
var castleRightsBySquare = [SqLength]CastlingRights{}

func init() {
	for i := range castleRightsBySquare {
		castleRightsBySquare[i] = CastlingAny
	}
	castleRightsBySquare[SqE1] = CastlingAny &^ CastlingWhiteOO &^ CastlingWhiteOOO
	castleRightsBySquare[SqA1] = CastlingAny &^ CastlingWhiteOOO
	castleRightsBySquare[SqH1] = CastlingAny &^ CastlingWhiteOO
	castleRightsBySquare[SqE8] = CastlingAny &^ CastlingBlackOO &^ CastlingBlackOOO
	castleRightsBySquare[SqA8] = CastlingAny &^ CastlingBlackOOO
	castleRightsBySquare[SqH8] = CastlingAny &^ CastlingBlackOO
}

// GetCastlingRights returns the castling rights that remain after a piece
// moves from or is captured on sq, intersected with cr.
func GetCastlingRights(sq Square, cr CastlingRights) CastlingRights {
	return cr & castleRightsBySquare[sq]
}
