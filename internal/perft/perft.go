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

// Package perft counts leaf positions reached from a starting position at
// a fixed depth, the standard move-generator correctness benchmark.
package perft

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/anvilchess/corechess/internal/movegen"
	"github.com/anvilchess/corechess/internal/position"
	. "github.com/anvilchess/corechess/internal/types"
	"github.com/anvilchess/corechess/internal/util"
)

var out = message.NewPrinter(language.German)

// Perft returns the number of leaf positions reachable from p in exactly
// depth plies. At depth 1 it is the legal move count; at depth > 1 it is
// the sum of Perft(depth-1) after each legal move, make/unmake paired.
func Perft(p *position.Position, depth int) uint64 {
	if depth < 1 {
		return 1
	}
	// one generator per ply - a generator's move list is reused across
	// calls, so the list a ply iterates must not be regenerated by the
	// recursion below it
	mgList := make([]*movegen.Movegen, depth)
	for i := range mgList {
		mgList[i] = movegen.NewMoveGen()
	}
	return perft(mgList, p, depth)
}

func perft(mgList []*movegen.Movegen, p *position.Position, depth int) uint64 {
	moves := mgList[depth-1].GenerateLegalMoves(p)
	if depth == 1 {
		return uint64(moves.Len())
	}
	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		p.DoMove(moves.At(i))
		nodes += perft(mgList, p, depth-1)
		p.UndoMove()
	}
	return nodes
}

// DivideLine is one root move's subtree node count, as returned by Divide.
type DivideLine struct {
	Move  Move
	Nodes uint64
}

// Divide runs Perft(depth-1) independently after each of p's root legal
// moves, fanning the per-move subtree counts out across one goroutine per
// root move (bounded by GOMAXPROCS), each walking its own cloned Position.
func Divide(p *position.Position, depth int) []DivideLine {
	mg := movegen.NewMoveGen()
	roots := mg.GenerateLegalMoves(p).Clone()

	lines := make([]DivideLine, roots.Len())
	g, _ := errgroup.WithContext(context.Background())
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	fen := p.StringFen()

	for i := 0; i < roots.Len(); i++ {
		i := i
		m := roots.At(i)
		g.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()

			clone, err := position.NewPositionFen(fen)
			if err != nil {
				return err
			}
			clone.DoMove(m)
			nodes := uint64(1)
			if depth > 1 {
				nodes = Perft(clone, depth-1)
			}
			lines[i] = DivideLine{Move: m, Nodes: nodes}
			return nil
		})
	}
	_ = g.Wait()
	return lines
}

// benchmark is one of the canonical positions checked by RunBenchmarkSuite.
type benchmark struct {
	fen      string
	depth    int
	expected uint64
}

var benchmarks = []benchmark{
	{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 6, 119060324},
	{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 5, 193690690},
	{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 7, 178633661},
	{"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 5, 15833292},
	{"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 5, 89941194},
	{"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", 6, 6923051137},
}

// RunBenchmarkSuite runs every canonical benchmark position, writes a
// PASS/FAIL report to w for each, and returns whether all of them matched.
func RunBenchmarkSuite(w io.Writer) bool {
	allPass := true
	for i, b := range benchmarks {
		p, err := position.NewPositionFen(b.fen)
		if err != nil {
			fmt.Fprintf(w, "#%d FAIL: could not parse FEN %q: %v\n", i+1, b.fen, err)
			allPass = false
			continue
		}
		start := time.Now()
		nodes := Perft(p, b.depth)
		elapsed := time.Since(start)

		if nodes == b.expected {
			out.Fprintf(w, "#%d PASS depth %d: %d nodes in %s (%d nps)\n",
				i+1, b.depth, nodes, elapsed, util.Nps(nodes, elapsed))
		} else {
			out.Fprintf(w, "#%d FAIL depth %d: got %d nodes, expected %d (%s)\n",
				i+1, b.depth, nodes, b.expected, elapsed)
			allPass = false
		}
	}
	return allPass
}
