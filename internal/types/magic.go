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

// Magic holds the fancy magic bitboard data for a single square: the
// relevant-occupancy mask, the fixed multiplier, the perfect-hash shift
// and the slice of this square's region of the shared attack table.
type Magic struct {
	Mask    Bitboard
	Magic   Bitboard
	Attacks []Bitboard
	Shift   uint
}

// index computes the perfect-hash index of occupied into m.Attacks.
func (m *Magic) index(occupied Bitboard) uint {
	occ := occupied & m.Mask
	occ *= m.Magic
	occ >>= m.Shift
	return uint(occ)
}

// attacks looks up the sliding attack set for the given occupancy.
func (m *Magic) attacks(occupied Bitboard) Bitboard {
	return m.Attacks[m.index(occupied)]
}

// initMagicBitboards builds the rook and bishop attack tables using the
// fixed rookMagicNumbers/bishopMagicNumbers multipliers. Unlike an
// engine that searches for its own magics at startup, the multipliers
// here are known-good published constants, so table construction is a
// single deterministic pass per square: enumerate every subset of the
// square's relevant-occupancy mask via the Carry-Rippler trick and
// store its true sliding attack at the multiplier's hashed index.
func initMagicBitboards() {
	rookDirections := []Direction{North, East, South, West}
	bishopDirections := []Direction{Northeast, Southeast, Southwest, Northwest}

	rookTable = make([]Bitboard, 0x19000)
	bishopTable = make([]Bitboard, 0x1480)

	buildMagics(rookTable, &rookMagics, rookDirections, &rookMagicNumbers)
	buildMagics(bishopTable, &bishopMagics, bishopDirections, &bishopMagicNumbers)
}

func buildMagics(table []Bitboard, magics *[SqLength]Magic, directions []Direction, magicNumbers *[SqLength]uint64) {
	var edges, b Bitboard
	size := 0

	for sq := SqA1; sq <= SqH8; sq++ {
		// Board edges never block and are never occupied by the square's
		// own relevant occupancy, so they are excluded from the mask.
		edges = ((Rank1_Bb | Rank8_Bb) &^ sq.RankOf().Bb()) | ((FileA_Bb | FileH_Bb) &^ sq.FileOf().Bb())

		m := &magics[sq]
		m.Mask = slidingAttack(directions, sq, BbZero) &^ edges
		m.Shift = uint(64 - m.Mask.PopCount())
		m.Magic = Bitboard(magicNumbers[sq])

		if sq == SqA1 {
			m.Attacks = table
		} else {
			m.Attacks = magics[sq-1].Attacks[size:]
		}

		// Carry-Rippler: enumerate every subset of Mask and place the
		// true sliding attack for that occupancy at its hashed index.
		// https://www.chessprogramming.org/Traversing_Subsets_of_a_Set
		b = 0
		size = 0
		for {
			idx := m.index(b)
			m.Attacks[idx] = slidingAttack(directions, sq, b)
			size++
			b = (b - m.Mask) & m.Mask
			if b == 0 {
				break
			}
		}
	}
}

// slidingAttack computes the sliding attack set for a piece moving along
// directions from sq given board occupancy. Only used during
// precomputation (pseudo attacks and magic table construction); move
// generation always goes through the magic-indexed GetAttacksBb instead.
func slidingAttack(directions []Direction, sq Square, occupied Bitboard) Bitboard {
	attack := BbZero
	for i := 0; i < len(directions); i++ {
		s := sq
		for {
			next := s.To(directions[i])
			if !next.IsValid() {
				break
			}
			s = next
			attack.PushSquare(s)
			if occupied.Has(s) {
				break
			}
		}
	}
	return attack
}
