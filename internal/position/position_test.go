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

package position

import (
	"os"
	"path"
	"runtime"
	"testing"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anvilchess/corechess/internal/config"
	myLogging "github.com/anvilchess/corechess/internal/logging"
	. "github.com/anvilchess/corechess/internal/types"
)

var logTest *logging.Logger

// make tests run in the module's root directory
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
	logTest = myLogging.GetTestLog()
	os.Exit(m.Run())
}

func TestPositionCreation(t *testing.T) {
	p, err := NewPositionFen(StartFen)
	require.NoError(t, err)
	assert.Equal(t, SqA1.Bb()|SqH1.Bb()|SqA8.Bb()|SqH8.Bb(), p.piecesBb[White][Rook]|p.piecesBb[Black][Rook])
	assert.Equal(t, SqB1.Bb()|SqG1.Bb()|SqB8.Bb()|SqG8.Bb(), p.piecesBb[White][Knight]|p.piecesBb[Black][Knight])
	assert.Equal(t, SqC1.Bb()|SqF1.Bb()|SqC8.Bb()|SqF8.Bb(), p.piecesBb[White][Bishop]|p.piecesBb[Black][Bishop])
	assert.Equal(t, SqD1.Bb()|SqD8.Bb(), p.piecesBb[White][Queen]|p.piecesBb[Black][Queen])
	assert.Equal(t, SqE1.Bb()|SqE8.Bb(), p.piecesBb[White][King]|p.piecesBb[Black][King])
	assert.Equal(t, Rank2_Bb|Rank7_Bb, p.piecesBb[White][Pawn]|p.piecesBb[Black][Pawn])
	assert.Equal(t, White, p.nextPlayer)
	assert.Equal(t, CastlingAny, p.castlingRights)
	assert.Equal(t, SqNone, p.enPassantSquare)
}

func TestPositionCreationRejectsMalformedFen(t *testing.T) {
	_, err := NewPositionFen("not a fen at all")
	assert.Error(t, err)
}

func TestPositionEquality(t *testing.T) {
	p1, err := NewPositionFen(StartFen)
	require.NoError(t, err)
	p2, err := NewPositionFen(StartFen)
	require.NoError(t, err)
	assert.Equal(t, p1.ZobristKey(), p2.ZobristKey())

	p3, err := NewPositionFen("r3k2r/1ppn3p/2q1q1n1/4P3/2q1Pp2/6R1/pbp2PPP/1R4K1 b kq e3 0 14")
	require.NoError(t, err)
	assert.NotEqual(t, p1.ZobristKey(), p3.ZobristKey())
}

func TestPositionDoUndoMoveRestoresZobrist(t *testing.T) {
	p, err := NewPositionFen(StartFen)
	require.NoError(t, err)
	startKey := p.ZobristKey()

	moves := []Move{
		CreateMove(SqE2, SqE4),
		CreateMove(SqD7, SqD5),
		CreateMove(SqE4, SqD5),
		CreateMove(SqD8, SqD5),
		CreateMove(SqB1, SqC3),
	}
	for _, m := range moves {
		p.DoMove(m)
	}
	assert.NotEqual(t, startKey, p.ZobristKey())
	for range moves {
		p.UndoMove()
	}
	assert.Equal(t, startKey, p.ZobristKey())
}

func TestPositionDoMoveCastling(t *testing.T) {
	fen := "r3k2r/pppqbppp/2np1n2/1B2p3/1b2P3/2NP1N2/PPPQ1PPP/R3K2R b KQkq - 0 8"
	p, err := NewPositionFen(fen)
	require.NoError(t, err)

	p.DoMove(CreateSpecialMove(SqE8, SqC8, Castling, PtNone))
	assert.Equal(t, SqC8, p.KingSquare(Black))
	assert.Equal(t, BlackRook, p.GetPiece(SqD8))
	assert.Equal(t, PieceNone, p.GetPiece(SqA8))
	assert.False(t, p.CastlingRights().Has(CastlingBlackOOO))
	assert.False(t, p.CastlingRights().Has(CastlingBlackOO))

	p.UndoMove()
	assert.Equal(t, SqE8, p.KingSquare(Black))
	assert.True(t, p.CastlingRights().Has(CastlingBlackOOO))
}

func TestPositionDoMoveEnPassant(t *testing.T) {
	fen := "4k3/8/8/8/3pP3/8/8/4K3 b - e3 0 1"
	p, err := NewPositionFen(fen)
	require.NoError(t, err)

	p.DoMove(CreateSpecialMove(SqD4, SqE3, EnPassant, PtNone))
	assert.Equal(t, PieceNone, p.GetPiece(SqE4))
	assert.Equal(t, PieceNone, p.GetPiece(SqD4))

	p.UndoMove()
	assert.Equal(t, WhitePawn, p.GetPiece(SqE4))
	assert.Equal(t, BlackPawn, p.GetPiece(SqD4))
}

func TestPositionDoMovePromotion(t *testing.T) {
	fen := "4k3/8/8/8/8/8/p7/4K3 b - - 0 1"
	p, err := NewPositionFen(fen)
	require.NoError(t, err)

	p.DoMove(CreateSpecialMove(SqA2, SqA1, Promotion, Queen))
	assert.Equal(t, BlackQueen, p.GetPiece(SqA1))

	p.UndoMove()
	assert.Equal(t, BlackPawn, p.GetPiece(SqA2))
	assert.Equal(t, PieceNone, p.GetPiece(SqA1))
}

func TestPositionIsAttacked(t *testing.T) {
	fen := "rnbqkbnr/pppppppp/8/8/8/4P3/PPPP1PPP/RNBQKBNR b KQkq - 0 1"
	p, err := NewPositionFen(fen)
	require.NoError(t, err)
	assert.True(t, p.IsAttacked(SqF2, White))
	assert.False(t, p.IsAttacked(SqF7, White))
}

func TestPositionHasCheck(t *testing.T) {
	p, err := NewPositionFen("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)
	assert.True(t, p.HasCheck())

	p2, err := NewPositionFen(StartFen)
	require.NoError(t, err)
	assert.False(t, p2.HasCheck())
}

func TestPositionGivesCheck(t *testing.T) {
	p, err := NewPositionFen("6k1/8/8/8/8/8/R7/6K1 w - - 0 1")
	require.NoError(t, err)
	assert.True(t, p.GivesCheck(CreateMove(SqA2, SqA8)))
	assert.False(t, p.GivesCheck(CreateMove(SqA2, SqA7)))
}

func TestPositionHasInsufficientMaterial(t *testing.T) {
	p, err := NewPositionFen("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.True(t, p.HasInsufficientMaterial())

	p2, err := NewPositionFen(StartFen)
	require.NoError(t, err)
	assert.False(t, p2.HasInsufficientMaterial())
}

func TestPositionStringFenRoundTrips(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	p, err := NewPositionFen(fen)
	require.NoError(t, err)
	assert.Equal(t, fen, p.StringFen())
}

func TestPositionCheckRepetitions(t *testing.T) {
	p, err := NewPositionFen(StartFen)
	require.NoError(t, err)

	shuffle := []Move{
		CreateMove(SqB1, SqC3), CreateMove(SqB8, SqC6),
		CreateMove(SqC3, SqB1), CreateMove(SqC6, SqB8),
		CreateMove(SqB1, SqC3), CreateMove(SqB8, SqC6),
		CreateMove(SqC3, SqB1), CreateMove(SqC6, SqB8),
	}
	for _, m := range shuffle {
		p.DoMove(m)
	}
	assert.True(t, p.CheckRepetitions(2))
	assert.False(t, p.CheckRepetitions(3))
}
