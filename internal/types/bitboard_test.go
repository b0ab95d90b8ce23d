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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitboardPushPopSquare(t *testing.T) {
	b := BbZero
	b.PushSquare(SqD4)
	b.PushSquare(SqH8)
	assert.Equal(t, 2, b.PopCount())
	assert.True(t, b.Has(SqD4))
	assert.Equal(t, SqD4, b.Lsb())
	b.PopSquare(SqD4)
	assert.Equal(t, SqH8, b.Lsb())
}

func TestBitboardPopLsb(t *testing.T) {
	b := SqA1.Bb() | SqC5.Bb() | SqH8.Bb()
	assert.Equal(t, SqA1, b.PopLsb())
	assert.Equal(t, SqC5, b.PopLsb())
	assert.Equal(t, SqH8, b.PopLsb())
	assert.Equal(t, SqNone, b.PopLsb())
	assert.Equal(t, BbZero, b)
}

func TestBitboardShift(t *testing.T) {
	assert.Equal(t, SqE5.Bb(), ShiftBitboard(SqE4.Bb(), North))
	assert.Equal(t, SqE3.Bb(), ShiftBitboard(SqE4.Bb(), South))
	assert.Equal(t, SqF4.Bb(), ShiftBitboard(SqE4.Bb(), East))
	assert.Equal(t, SqD4.Bb(), ShiftBitboard(SqE4.Bb(), West))
	// shifts off a file edge vanish instead of wrapping
	assert.Equal(t, BbZero, ShiftBitboard(SqH4.Bb(), East))
	assert.Equal(t, BbZero, ShiftBitboard(SqA4.Bb(), West))
	assert.Equal(t, BbZero, ShiftBitboard(SqA4.Bb(), Southwest))
	assert.Equal(t, BbZero, ShiftBitboard(SqH4.Bb(), Northeast))
	assert.Equal(t, BbZero, ShiftBitboard(SqE8.Bb(), North))
}

func TestQueenAttacksAreRookPlusBishop(t *testing.T) {
	for sq := SqA1; sq <= SqH8; sq++ {
		assert.Equal(t,
			GetAttacksBb(Rook, sq, BbZero)|GetAttacksBb(Bishop, sq, BbZero),
			GetAttacksBb(Queen, sq, BbZero),
			"queen attacks from %s must equal rook|bishop", sq.String())
	}
}

// walkRay recomputes one direction of a sliding attack the slow way,
// stopping on the first occupied square inclusive.
func walkRay(sq Square, d Direction, occupied Bitboard) Bitboard {
	attack := BbZero
	s := sq
	for {
		next := s.To(d)
		if !next.IsValid() {
			return attack
		}
		s = next
		attack.PushSquare(s)
		if occupied.Has(s) {
			return attack
		}
	}
}

func TestSliderAttacksStopAtNearestBlocker(t *testing.T) {
	occupancies := []Bitboard{
		BbZero,
		SqD4.Bb() | SqD6.Bb() | SqG7.Bb() | SqB2.Bb(),
		Rank2_Bb | Rank7_Bb,
		FileA_Bb | FileH_Bb | Rank1_Bb | Rank8_Bb,
		CenterSquares,
	}
	rookDirs := []Direction{North, East, South, West}
	bishopDirs := []Direction{Northeast, Southeast, Southwest, Northwest}

	for _, occ := range occupancies {
		for sq := SqA1; sq <= SqH8; sq++ {
			expected := BbZero
			for _, d := range rookDirs {
				expected |= walkRay(sq, d, occ)
			}
			assert.Equal(t, expected, GetAttacksBb(Rook, sq, occ),
				"rook attacks from %s for occupancy %s", sq.String(), occ.StringGrouped())

			expected = BbZero
			for _, d := range bishopDirs {
				expected |= walkRay(sq, d, occ)
			}
			assert.Equal(t, expected, GetAttacksBb(Bishop, sq, occ),
				"bishop attacks from %s for occupancy %s", sq.String(), occ.StringGrouped())
		}
	}
}

func TestTableInitIsIdempotent(t *testing.T) {
	type sample struct {
		pt  PieceType
		sq  Square
		occ Bitboard
	}
	samples := []sample{
		{Rook, SqA1, BbZero},
		{Rook, SqD4, SqD6.Bb() | SqG4.Bb()},
		{Bishop, SqC1, SqE3.Bb()},
		{Bishop, SqF6, Rank2_Bb},
		{Queen, SqE4, CenterSquares},
		{Knight, SqB1, BbZero},
		{King, SqE1, BbZero},
	}
	before := make([]Bitboard, len(samples))
	for i, s := range samples {
		before[i] = GetAttacksBb(s.pt, s.sq, s.occ)
	}

	initBb()

	for i, s := range samples {
		assert.Equal(t, before[i], GetAttacksBb(s.pt, s.sq, s.occ))
	}
	assert.Equal(t, Intermediate(SqA1, SqH8), Intermediate(SqH8, SqA1))
}

func TestPawnAttacks(t *testing.T) {
	assert.Equal(t, SqD5.Bb()|SqF5.Bb(), GetPawnAttacks(White, SqE4))
	assert.Equal(t, SqD3.Bb()|SqF3.Bb(), GetPawnAttacks(Black, SqE4))
	// edge files attack a single square
	assert.Equal(t, SqB3.Bb(), GetPawnAttacks(White, SqA2))
	assert.Equal(t, SqG6.Bb(), GetPawnAttacks(Black, SqH7))
}

func TestIntermediateAndRay(t *testing.T) {
	assert.Equal(t, SqE4.Bb()|SqE5.Bb()|SqE6.Bb()|SqE7.Bb(), Intermediate(SqE3, SqE8))
	assert.Equal(t, SqB2.Bb()|SqC3.Bb(), Intermediate(SqA1, SqD4))
	// not colinear
	assert.Equal(t, BbZero, Intermediate(SqA1, SqB3))
	// adjacent squares have nothing in between
	assert.Equal(t, BbZero, Intermediate(SqE4, SqE5))

	assert.Equal(t, SqE5.Bb()|SqE6.Bb()|SqE7.Bb()|SqE8.Bb(), SqE4.Ray(N))
	assert.Equal(t, SqF3.Bb()|SqG2.Bb()|SqH1.Bb(), SqE4.Ray(SE))
	assert.Equal(t, BbZero, SqH8.Ray(NE))
}

func TestSquareDistanceValues(t *testing.T) {
	assert.Equal(t, 7, SquareDistance(SqA1, SqH8))
	assert.Equal(t, 1, SquareDistance(SqE4, SqD5))
	assert.Equal(t, 0, SquareDistance(SqE4, SqE4))
}
