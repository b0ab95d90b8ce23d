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

func TestMoveNormal(t *testing.T) {
	m := CreateMove(SqE2, SqE4)
	assert.Equal(t, SqE2, m.From())
	assert.Equal(t, SqE4, m.To())
	assert.Equal(t, Normal, m.Type())
	assert.Equal(t, "e2e4", m.String())
}

func TestMovePromotion(t *testing.T) {
	for _, pt := range []PieceType{Knight, Bishop, Rook, Queen} {
		m := CreateSpecialMove(SqA7, SqA8, Promotion, pt)
		assert.Equal(t, SqA7, m.From())
		assert.Equal(t, SqA8, m.To())
		assert.Equal(t, Promotion, m.Type())
		assert.Equal(t, pt, m.PromotionType())
	}
	assert.Equal(t, "a7a8q", CreateSpecialMove(SqA7, SqA8, Promotion, Queen).String())
}

func TestMoveSpecialKinds(t *testing.T) {
	ep := CreateSpecialMove(SqD4, SqE3, EnPassant, PtNone)
	assert.Equal(t, EnPassant, ep.Type())
	assert.Equal(t, "d4e3", ep.String())

	castle := CreateSpecialMove(SqE1, SqG1, Castling, PtNone)
	assert.Equal(t, Castling, castle.Type())
	assert.Equal(t, SqE1, castle.From())
	assert.Equal(t, SqG1, castle.To())
}

func TestMoveIsValid(t *testing.T) {
	assert.False(t, MoveNone.IsValid())
	assert.True(t, CreateMove(SqE2, SqE4).IsValid())
	assert.False(t, CreateMove(SqE2, SqE2).IsValid())
}
