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

package movegen

import (
	"os"
	"path"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anvilchess/corechess/internal/config"
	"github.com/anvilchess/corechess/internal/position"
	. "github.com/anvilchess/corechess/internal/types"
)

func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "../..")
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}

func TestMain(m *testing.M) {
	config.Setup()
	os.Exit(m.Run())
}

func genFen(t *testing.T, fen string) (*Movegen, *position.Position) {
	t.Helper()
	p, err := position.NewPositionFen(fen)
	require.NoError(t, err)
	return NewMoveGen(), p
}

func TestStartPositionMoveCount(t *testing.T) {
	mg, p := genFen(t, position.StartFen)
	moves := mg.GenerateLegalMoves(p)
	assert.Equal(t, 20, moves.Len())
}

func TestPinnedPieceCannotMoveOffRay(t *testing.T) {
	// white rook on e1 pins the black... reversed: black pinned knight on e7
	// cannot move off the e-file, the king on e8 being behind it.
	mg, p := genFen(t, "4k3/4n3/8/8/8/8/8/4R2K b - - 0 1")
	moves := mg.GenerateLegalMoves(p)
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		assert.NotEqual(t, SqE7, m.From(), "pinned knight must not move at all (no legal off-ray knight move exists)")
	}
}

func TestPinnedRookMayOnlySlideAlongPinRay(t *testing.T) {
	// white rook on e2 is pinned to the white king on e1 by the black
	// rook on e8: it may only move within the e-file.
	mg, p := genFen(t, "4r2k/8/8/8/8/8/4R3/4K3 w - - 0 1")
	moves := mg.GenerateLegalMoves(p)
	sawRookMove := false
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.From() == SqE2 {
			sawRookMove = true
			assert.Equal(t, SqE2.FileOf(), m.To().FileOf())
		}
	}
	assert.True(t, sawRookMove)
}

func TestCheckEvasionLoneKingStepsOffAttackedSquares(t *testing.T) {
	// black rook on e8 checks the lone white king on e1 along the e-file;
	// with no piece to capture or block with, every legal move is a king
	// step to a square the rook does not attack.
	mg, p := genFen(t, "4r2k/8/8/8/8/8/8/4K3 w - - 0 1")
	moves := mg.GenerateLegalMoves(p)
	assert.NotZero(t, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		assert.Equal(t, SqE1, m.From())
		assert.False(t, p.IsAttacked(m.To(), Black), "every evasion must land on a square not attacked by the checker")
	}
}

func TestDoubleCheckOnlyKingMayMove(t *testing.T) {
	// constructed double-check: black rook on e8 and black bishop on h4
	// both give check to the white king on e1.
	mg, p := genFen(t, "4r2k/8/8/8/7b/8/8/4K3 w - - 0 1")
	moves := mg.GenerateLegalMoves(p)
	for i := 0; i < moves.Len(); i++ {
		assert.Equal(t, SqE1, moves.At(i).From())
	}
}

func TestEnPassantCaptureIsGenerated(t *testing.T) {
	// black just played ...e7-e5; the white pawn on d5 may capture it
	// en passant, landing on e6.
	mg, p := genFen(t, "8/8/8/2kPp3/8/8/8/4K3 w - e6 0 2")
	moves := mg.GenerateLegalMoves(p)
	found := false
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.Type() == EnPassant {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCastlingUnavailableWhenTraversalSquareAttacked(t *testing.T) {
	// black rook on d8 rakes the open d-file down to d1, the queenside
	// king-traversal square, so O-O-O must not be offered.
	p, err := position.NewPositionFen("3r3k/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	require.NoError(t, err)
	mg := NewMoveGen()
	moves := mg.GenerateLegalMoves(p)
	queenside, kingside := false, false
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.Type() == Castling && m.To() == SqC1 {
			queenside = true
		}
		if m.Type() == Castling && m.To() == SqG1 {
			kingside = true
		}
	}
	assert.False(t, queenside, "queenside castle must be blocked: d1 is attacked")
	assert.True(t, kingside, "kingside castle is unaffected by the d-file attack")
}

func TestCastlingAvailableWhenPathClearAndSafe(t *testing.T) {
	mg, p := genFen(t, "4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	moves := mg.GenerateLegalMoves(p)
	kingside, queenside := false, false
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.Type() == Castling && m.To() == SqG1 {
			kingside = true
		}
		if m.Type() == Castling && m.To() == SqC1 {
			queenside = true
		}
	}
	assert.True(t, kingside)
	assert.True(t, queenside)
}

func TestPromotionGeneratesAllFourPieceTypes(t *testing.T) {
	mg, p := genFen(t, "8/P6k/8/8/8/8/8/4K3 w - - 0 1")
	moves := mg.GenerateLegalMoves(p)
	seen := map[PieceType]bool{}
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.Type() == Promotion {
			seen[m.PromotionType()] = true
		}
	}
	assert.True(t, seen[Knight])
	assert.True(t, seen[Bishop])
	assert.True(t, seen[Rook])
	assert.True(t, seen[Queen])
}

func TestGeneratedMovesAreLegalDistinctAndUndoable(t *testing.T) {
	fens := []string{
		position.StartFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range fens {
		mg, p := genFen(t, fen)
		us := p.NextPlayer()
		moves := mg.GenerateLegalMoves(p)

		seen := map[Move]bool{}
		for i := 0; i < moves.Len(); i++ {
			m := moves.At(i)
			assert.False(t, seen[m], "duplicate move %s in %s", m.String(), fen)
			seen[m] = true

			p.DoMove(m)
			assert.False(t, p.IsAttacked(p.KingSquare(us), us.Flip()),
				"move %s leaves own king in check in %s", m.String(), fen)
			p.UndoMove()
		}
		assert.Equal(t, fen, p.StringFen(), "make/unmake must restore the position")
	}
}

func TestGeneratedMovesAreReusedAcrossCalls(t *testing.T) {
	mg, p := genFen(t, position.StartFen)
	first := mg.GenerateLegalMoves(p)
	assert.Equal(t, 20, first.Len())
	p.DoMove(CreateMove(SqE2, SqE4))
	second := mg.GenerateLegalMoves(p)
	assert.Equal(t, 20, second.Len())
}
