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

package attacks

import (
	"os"
	"path"
	"runtime"
	"testing"

	logging2 "github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anvilchess/corechess/internal/config"
	"github.com/anvilchess/corechess/internal/logging"
	"github.com/anvilchess/corechess/internal/position"
	. "github.com/anvilchess/corechess/internal/types"
)

var logTest *logging2.Logger

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
	logTest = logging.GetTestLog()
	os.Exit(m.Run())
}

func mustPosition(t *testing.T, fen string) *position.Position {
	t.Helper()
	p, err := position.NewPositionFen(fen)
	require.NoError(t, err)
	return p
}

func TestAttacksCompute(t *testing.T) {
	p := mustPosition(t, "r1b1k2r/pppp1ppp/2n2n2/1Bb1p2q/4P3/2NP1N2/1PP2PPP/R1BQK2R w KQkq -")
	a := NewAttacks()
	a.Compute(p)
	assert.Equal(t, p.ZobristKey(), a.Zobrist)
	assert.EqualValues(t, SqF1.Bb()|SqG1.Bb(), a.From[White][SqH1]&^p.OccupiedBb(White))
	assert.EqualValues(t, SqD8.Bb()|SqE7.Bb()|SqF8.Bb(), a.From[Black][SqE8]&^p.OccupiedBb(Black))
	assert.EqualValues(t, SqC6.Bb()|SqH5.Bb(), a.To[Black][SqE5]&p.OccupiedBb(Black))
}

func TestAttacksComputeIsIdempotentPerZobristKey(t *testing.T) {
	p := mustPosition(t, position.StartFen)
	a := NewAttacks()
	a.Compute(p)
	first := a.All[White]
	a.Compute(p)
	assert.Equal(t, first, a.All[White])
}

func TestCompareWithLoopGeneratedAttacks(t *testing.T) {
	p := mustPosition(t, "r1b1k2r/pppp1ppp/2n2n2/1Bb1p2q/4P3/2NP1N2/1PP2PPP/R1BQK2R w KQkq -")
	a := NewAttacks()
	a.nonPawnAttacks(p)
	for sq := SqA1; sq <= SqH8; sq++ {
		if p.GetPiece(sq) == PieceNone || p.GetPiece(sq).TypeOf() == Pawn {
			continue
		}
		c := p.GetPiece(sq).ColorOf()
		pt := p.GetPiece(sq).TypeOf()
		assert.EqualValues(t, a.From[c][sq], buildAttacks(p, pt, sq))
	}
}

func TestAttacksTo(t *testing.T) {
	p := mustPosition(t, "2brr1k1/1pq1b1p1/p1np1p1p/P1p1p2n/1PNPPP2/2P1BNP1/4Q1BP/R2R2K1 w - -")

	cases := []struct {
		sq     Square
		by     Color
		expect Bitboard
	}{
		{SqE5, White, 740294656},
		{SqF1, White, 20552},
		{SqD4, White, 3407880},
		{SqD4, Black, 4483945857024},
		{SqD6, Black, 582090251837636608},
		{SqF8, Black, 5769111122661605376},
	}
	for _, c := range cases {
		got := AttacksTo(p, c.sq, c.by)
		logTest.Debug("\n", got.StringBoard())
		assert.EqualValues(t, c.expect, got)
	}
}

func TestRevealedAttacks(t *testing.T) {
	p := mustPosition(t, "1k1r3q/1ppn3p/p4b2/4p3/8/P2N2P1/1PP1R1BP/2K1Q3 w - -")
	occ := p.OccupiedAll()
	sq := SqE5

	direct := AttacksTo(p, sq, White) | AttacksTo(p, sq, Black)
	assert.EqualValues(t, 2286984186302464, direct)

	// removing the bishop on f6 uncovers a battery behind it
	direct.PopSquare(SqF6)
	occ.PopSquare(SqF6)
	direct |= RevealedAttacks(p, sq, occ, White) | RevealedAttacks(p, sq, occ, Black)
	assert.EqualValues(t, Bitboard(9225623836668989440), direct)

	// and removing the rook on e2 uncovers a second one
	direct.PopSquare(SqE2)
	occ.PopSquare(SqE2)
	direct |= RevealedAttacks(p, sq, occ, White) | RevealedAttacks(p, sq, occ, Black)
	assert.EqualValues(t, Bitboard(9225623836668985360), direct)
}

// buildAttacks recomputes one square's attack set by casting rays and
// checking for blockers, independent of the magic-bitboard lookup path,
// to cross-check attacks.go against a second, slower implementation.
func buildAttacks(p *position.Position, pt PieceType, sq Square) Bitboard {
	occupiedAll := p.OccupiedAll()
	attacks := BbZero
	pseudoTo := GetPseudoAttacks(pt, sq)
	if pt < Bishop { // king, knight: no blockers to consider
		attacks = pseudoTo
	} else {
		for tmp := pseudoTo; tmp != BbZero; {
			to := tmp.PopLsb()
			if Intermediate(sq, to)&occupiedAll == 0 {
				attacks.PushSquare(to)
			}
		}
	}
	return attacks
}

func BenchmarkAttacksCompute(b *testing.B) {
	p, err := position.NewPositionFen("r1b1k2r/pppp1ppp/2n2n2/1Bb1p2q/4P3/2NP1N2/1PP2PPP/R1BQK2R w KQkq -")
	if err != nil {
		b.Fatal(err)
	}
	a := NewAttacks()
	for i := 0; i < b.N; i++ {
		a.Clear()
		a.Compute(p)
	}
}
