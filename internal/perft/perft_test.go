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

package perft

import (
	"bytes"
	"os"
	"path"
	"runtime"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anvilchess/corechess/internal/position"
)

func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "../..")
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}

func TestPerftDepth1EqualsLegalMoveCount(t *testing.T) {
	p, err := position.NewPositionFen(position.StartFen)
	require.NoError(t, err)
	assert.EqualValues(t, 20, Perft(p, 1))
}

func TestPerftStartPositionShallow(t *testing.T) {
	p, err := position.NewPositionFen(position.StartFen)
	require.NoError(t, err)
	assert.EqualValues(t, 400, Perft(p, 2))
	assert.EqualValues(t, 8902, Perft(p, 3))
}

func TestPerftStartPositionDeep(t *testing.T) {
	if testing.Short() {
		t.Skip("perft at depth 6 is slow; skipped in -short mode")
	}
	p, err := position.NewPositionFen(position.StartFen)
	require.NoError(t, err)
	assert.EqualValues(t, 119060324, Perft(p, 6))
}

func TestPerftLeavesPositionUnchanged(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	p, err := position.NewPositionFen(fen)
	require.NoError(t, err)
	Perft(p, 3)
	assert.Equal(t, fen, p.StringFen())
}

func TestDivideSumsToPerft(t *testing.T) {
	p, err := position.NewPositionFen(position.StartFen)
	require.NoError(t, err)
	lines := Divide(p, 3)

	var total uint64
	for _, l := range lines {
		total += l.Nodes
	}
	assert.EqualValues(t, 20, len(lines))
	assert.EqualValues(t, Perft(p, 3), total)
}

func TestDivideLeavesPositionUnchanged(t *testing.T) {
	fen := "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	p, err := position.NewPositionFen(fen)
	require.NoError(t, err)
	lines := Divide(p, 2)
	require.NotEmpty(t, lines)
	assert.Equal(t, fen, p.StringFen())
}

func TestRunBenchmarkSuitePasses(t *testing.T) {
	if testing.Short() {
		t.Skip("full benchmark suite is slow; skipped in -short mode")
	}
	var buf bytes.Buffer
	ok := RunBenchmarkSuite(&buf)
	if !ok {
		t.Log(spew.Sdump(buf.String()))
	}
	assert.True(t, ok)
}
