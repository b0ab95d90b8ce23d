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

// Package position represents data structures and functions for a chess
// board and its position.
// It uses an 8x8 piece board and bitboards, a stack for undo moves, zobrist
// keys for repetition detection, and material/positional value counters.
//
// Create a new instance with NewPosition(...) with no parameters to get the
// chess start position.
package position

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/op/go-logging"

	"github.com/anvilchess/corechess/internal/assert"
	myLogging "github.com/anvilchess/corechess/internal/logging"
	. "github.com/anvilchess/corechess/internal/types"
)

var log *logging.Logger

var initialized = false

func init() {
	if !initialized {
		initZobrist()
		initialized = true
	}
}

// StartFen is the fen of the standard chess starting position.
const StartFen string = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// historyState holds everything needed to undo one DoMove call.
type historyState struct {
	zobristKey      Key
	move            Move
	fromPiece       Piece
	capturedPiece   Piece
	castlingRights  CastlingRights
	enpassantSquare Square
	halfMoveClock   int
	hasCheckFlag    int
}

const maxHistory int = MaxMoves

const (
	flagTBD   int = 0
	flagFalse int = 1
	flagTrue  int = 2
)

// Position represents the state of a chess board and all information
// needed to make and unmake moves and to query it (pieces, castling
// rights, en passant square, move counters, the cached check flag and the
// zobrist key). The zero value is not a valid Position; use NewPosition or
// NewPositionFen.
type Position struct {
	zobristKey      Key
	board           [SqLength]Piece
	castlingRights  CastlingRights
	enPassantSquare Square
	halfMoveClock   int
	nextPlayer      Color
	kingSquare      [ColorLength]Square

	nextHalfMoveNumber int

	piecesBb   [ColorLength][PtLength]Bitboard
	occupiedBb [ColorLength]Bitboard

	historyCounter int
	history        [maxHistory]historyState

	material        [ColorLength]Value
	materialNonPawn [ColorLength]Value
	psqMidValue     [ColorLength]Value
	psqEndValue     [ColorLength]Value
	gamePhase       int

	// hasCheckFlag caches whether the next player is in check on the
	// current position (flagTBD/flagFalse/flagTrue); invalidated by
	// every DoMove/UndoMove.
	hasCheckFlag int
}

// NewPosition creates a new position. Without arguments the standard
// starting position is returned. With one fen string argument a position
// representing this fen is returned.
func NewPosition(fen ...string) *Position {
	if len(fen) == 0 {
		p, _ := NewPositionFen(StartFen)
		return p
	}
	p, _ := NewPositionFen(fen[0])
	return p
}

// NewPositionFen creates a new position parsed from the given fen. An
// error is returned (and a zero Position) if the fen is structurally
// malformed or does not hold exactly one king per color; no attempt is
// made to reject positions that are structurally valid but
// chess-illegal (e.g. a pawn on rank 1, the side not to move in check).
func NewPositionFen(fen string) (*Position, error) {
	if log == nil {
		log = myLogging.GetLog()
	}
	p := &Position{}
	if err := p.SetupFen(fen); err != nil {
		log.Errorf("fen for position setup not valid and position can't be created: %s", err)
		return &Position{}, err
	}
	return p, nil
}

// DoMove makes the given move on the position. It does not check if the
// move is legal or even pseudo legal for the position - the caller must
// only ever pass moves produced by the generator for this exact
// position. Checking legality requires IsLegalMove.
func (p *Position) DoMove(m Move) {
	fromSq := m.From()
	fromPc := p.board[fromSq]
	myColor := p.nextPlayer
	toSq := m.To()
	targetPc := p.board[toSq]

	if assert.DEBUG {
		assert.Assert(m != MoveNone, "Position DoMove: move is MoveNone")
		assert.Assert(fromPc != PieceNone, "Position DoMove: no piece on from square %s", fromSq.String())
		assert.Assert(fromPc.ColorOf() == myColor, "Position DoMove: piece on from square does not belong to next player")
	}

	// save state for undo - reuse the slot in place instead of allocating
	tmpHistoryCounter := p.historyCounter
	p.history[tmpHistoryCounter].zobristKey = p.zobristKey
	p.history[tmpHistoryCounter].move = m
	p.history[tmpHistoryCounter].fromPiece = fromPc
	p.history[tmpHistoryCounter].capturedPiece = targetPc
	p.history[tmpHistoryCounter].castlingRights = p.castlingRights
	p.history[tmpHistoryCounter].enpassantSquare = p.enPassantSquare
	p.history[tmpHistoryCounter].halfMoveClock = p.halfMoveClock
	p.history[tmpHistoryCounter].hasCheckFlag = p.hasCheckFlag
	p.historyCounter++

	switch m.Type() {
	case Normal:
		p.doNormalMove(fromSq, toSq, targetPc, fromPc, myColor)
	case Promotion:
		p.doPromotionMove(m, fromPc, myColor, toSq, targetPc, fromSq)
	case EnPassant:
		p.doEnPassantMove(toSq, myColor, fromPc, fromSq)
	case Castling:
		p.doCastlingMove(fromPc, myColor, toSq, fromSq)
	}

	p.hasCheckFlag = flagTBD
	p.nextHalfMoveNumber++
	p.nextPlayer = p.nextPlayer.Flip()
	p.zobristKey ^= zobristBase.nextPlayer
}

// UndoMove reverses the effect of the last DoMove call. Calling it
// without a matching prior DoMove is undefined.
func (p *Position) UndoMove() {
	if assert.DEBUG {
		assert.Assert(p.historyCounter > 0, "Position UndoMove: no move to undo")
	}

	p.historyCounter--
	p.nextHalfMoveNumber--
	p.nextPlayer = p.nextPlayer.Flip()
	tmpHistoryCounter := p.historyCounter
	move := p.history[tmpHistoryCounter].move

	switch move.Type() {
	case Normal:
		p.movePiece(move.To(), move.From())
		if p.history[tmpHistoryCounter].capturedPiece != PieceNone {
			p.putPiece(p.history[tmpHistoryCounter].capturedPiece, move.To())
		}
	case Promotion:
		p.removePiece(move.To())
		p.putPiece(MakePiece(p.nextPlayer, Pawn), move.From())
		if p.history[tmpHistoryCounter].capturedPiece != PieceNone {
			p.putPiece(p.history[tmpHistoryCounter].capturedPiece, move.To())
		}
	case EnPassant:
		// zobrist is restored wholesale from history below
		p.movePiece(move.To(), move.From())
		p.putPiece(MakePiece(p.nextPlayer.Flip(), Pawn), move.To().To(p.nextPlayer.Flip().PawnDirection()))
	case Castling:
		p.movePiece(move.To(), move.From()) // king
		switch move.To() {
		case SqG1:
			p.movePiece(SqF1, SqH1) // rook
		case SqC1:
			p.movePiece(SqD1, SqA1) // rook
		case SqG8:
			p.movePiece(SqF8, SqH8) // rook
		case SqC8:
			p.movePiece(SqD8, SqA8) // rook
		default:
			panic("Position UndoMove: invalid castle move")
		}
	}

	p.castlingRights = p.history[tmpHistoryCounter].castlingRights
	p.enPassantSquare = p.history[tmpHistoryCounter].enpassantSquare
	p.halfMoveClock = p.history[tmpHistoryCounter].halfMoveClock
	p.hasCheckFlag = p.history[tmpHistoryCounter].hasCheckFlag
	p.zobristKey = p.history[tmpHistoryCounter].zobristKey
}

// IsAttacked checks if the given square is attacked by a piece of the
// given color. Used by IsLegalMove/HasCheck; the move generator computes
// its own attack, pin and checker sets and does not call it.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	// non sliding
	if (GetPawnAttacks(by.Flip(), sq)&p.piecesBb[by][Pawn] != 0) ||
		(GetPseudoAttacks(Knight, sq)&p.piecesBb[by][Knight] != 0) ||
		(GetPseudoAttacks(King, sq)&p.piecesBb[by][King] != 0) {
		return true
	}

	// sliding - reverse attack from sq with each slider type; if it
	// reaches a piece of that type it could also reach sq
	occupied := p.OccupiedAll()
	if GetAttacksBb(Bishop, sq, occupied)&p.piecesBb[by][Bishop] != 0 ||
		GetAttacksBb(Rook, sq, occupied)&p.piecesBb[by][Rook] != 0 ||
		GetAttacksBb(Queen, sq, occupied)&p.piecesBb[by][Queen] != 0 {
		return true
	}

	// en passant - the pawn that just double-pushed counts as attacked on
	// the square it stands on when an enemy pawn can take it en passant
	if p.enPassantSquare != SqNone {
		pawnSq := p.enPassantSquare.To(by.Flip().PawnDirection())
		if pawnSq == sq && p.board[pawnSq] == MakePiece(by.Flip(), Pawn) {
			return sq.NeighbourFilesMask()&sq.RankOf().Bb()&p.piecesBb[by][Pawn] != BbZero
		}
	}
	return false
}

// IsLegalMove tests a move if it is legal on the current position.
// Basically tests if the king would be left in check after the move or
// if the king crosses an attacked square during castling.
func (p *Position) IsLegalMove(move Move) bool {
	if move.Type() == Castling {
		if p.IsAttacked(move.From(), p.nextPlayer.Flip()) {
			return false
		}
		switch move.To() {
		case SqG1:
			if p.IsAttacked(SqF1, p.nextPlayer.Flip()) {
				return false
			}
		case SqC1:
			if p.IsAttacked(SqD1, p.nextPlayer.Flip()) {
				return false
			}
		case SqG8:
			if p.IsAttacked(SqF8, p.nextPlayer.Flip()) {
				return false
			}
		case SqC8:
			if p.IsAttacked(SqD8, p.nextPlayer.Flip()) {
				return false
			}
		}
	}
	p.DoMove(move)
	legal := !p.IsAttacked(p.kingSquare[p.nextPlayer.Flip()], p.nextPlayer)
	p.UndoMove()
	return legal
}

// HasCheck returns true if the next player is in check. Cached for the
// current position, so repeated calls are cheap.
func (p *Position) HasCheck() bool {
	if p.hasCheckFlag != flagTBD {
		return p.hasCheckFlag == flagTrue
	}
	check := p.IsAttacked(p.kingSquare[p.nextPlayer], p.nextPlayer.Flip())
	if check {
		p.hasCheckFlag = flagTrue
	} else {
		p.hasCheckFlag = flagFalse
	}
	return check
}

// IsCapturingMove determines if a move on this position is a capturing
// move, including en passant.
func (p *Position) IsCapturingMove(move Move) bool {
	return p.occupiedBb[p.nextPlayer.Flip()].Has(move.To()) || move.Type() == EnPassant
}

// CheckRepetitions reports whether the current position has occurred
// reps times before in the game's history (a 3-fold repetition claim
// checks CheckRepetitions(2)).
func (p *Position) CheckRepetitions(reps int) bool {
	counter := 0
	i := p.historyCounter - 2
	lastHalfMove := p.halfMoveClock
	for i >= 0 {
		// once the half move clock was reset the position can't recur further back
		if p.history[i].halfMoveClock >= lastHalfMove {
			break
		}
		lastHalfMove = p.history[i].halfMoveClock
		if p.zobristKey == p.history[i].zobristKey {
			counter++
		}
		if counter >= reps {
			return true
		}
		i -= 2
	}
	return false
}

// HasInsufficientMaterial returns true if no side has enough material
// to force a mate (does not rule out a helpmate where the opponent
// would need to cooperate).
func (p *Position) HasInsufficientMaterial() bool {
	if p.material[White]+p.material[Black] == 0 {
		return true
	}
	if p.piecesBb[White][Pawn].PopCount() == 0 && p.piecesBb[Black][Pawn].PopCount() == 0 {
		if p.materialNonPawn[White] < 400 && p.materialNonPawn[Black] < 400 {
			return true
		}
		if (p.materialNonPawn[White] == 2*Knight.ValueOf() && p.materialNonPawn[Black] <= Bishop.ValueOf()) ||
			(p.materialNonPawn[Black] == 2*Knight.ValueOf() && p.materialNonPawn[White] <= Bishop.ValueOf()) {
			return true
		}
		if (p.materialNonPawn[White] == 2*Bishop.ValueOf() && p.materialNonPawn[Black] == Bishop.ValueOf()) ||
			(p.materialNonPawn[Black] == 2*Bishop.ValueOf() && p.materialNonPawn[White] == Bishop.ValueOf()) {
			return true
		}
		if p.materialNonPawn[White] == 2*Bishop.ValueOf() || p.materialNonPawn[Black] == 2*Bishop.ValueOf() {
			return false
		}
		if (p.materialNonPawn[White] < 2*Bishop.ValueOf() && p.materialNonPawn[Black] <= Bishop.ValueOf()) ||
			(p.materialNonPawn[White] <= Bishop.ValueOf() && p.materialNonPawn[Black] < 2*Bishop.ValueOf()) {
			return true
		}
	}
	return false
}

// GivesCheck determines if the given move will give check to the
// opponent of NextPlayer().
func (p *Position) GivesCheck(move Move) bool {
	us := p.nextPlayer
	them := us.Flip()
	kingSq := p.kingSquare[them]

	fromSq := move.From()
	toSq := move.To()
	fromPt := p.board[fromSq].TypeOf()
	epTargetSq := SqNone
	moveType := move.Type()
	// squares our moving pieces leave; a slider there can't reveal check
	leftBb := fromSq.Bb()

	switch moveType {
	case Promotion:
		fromPt = move.PromotionType()
	case Castling:
		// castling can only give check via the rook; king can't give check itself
		fromPt = Rook
		switch toSq {
		case SqG1:
			toSq = SqF1
			leftBb |= SqH1.Bb()
		case SqC1:
			toSq = SqD1
			leftBb |= SqA1.Bb()
		case SqG8:
			toSq = SqF8
			leftBb |= SqH8.Bb()
		case SqC8:
			toSq = SqD8
			leftBb |= SqA8.Bb()
		}
	case EnPassant:
		epTargetSq = toSq.To(them.PawnDirection())
	}

	boardAfterMove := p.OccupiedAll()
	boardAfterMove.PopSquare(fromSq)
	boardAfterMove.PushSquare(toSq)
	if moveType == EnPassant {
		boardAfterMove.PopSquare(epTargetSq)
	}

	// direct check
	switch fromPt {
	case Pawn:
		if GetPawnAttacks(us, toSq).Has(kingSq) {
			return true
		}
	case King:
		// a king can never give check
	default:
		if GetAttacksBb(fromPt, toSq, boardAfterMove).Has(kingSq) {
			return true
		}
	}

	// revealed check - only sliders can be revealed; knight/pawn attacks can't
	switch {
	case GetAttacksBb(Bishop, kingSq, boardAfterMove)&p.piecesBb[us][Bishop]&^leftBb != 0:
		return true
	case GetAttacksBb(Rook, kingSq, boardAfterMove)&p.piecesBb[us][Rook]&^leftBb != 0:
		return true
	case GetAttacksBb(Queen, kingSq, boardAfterMove)&p.piecesBb[us][Queen]&^leftBb != 0:
		return true
	}

	return false
}

// String returns a multi-line representation of the position: the fen,
// an 8x8 board matrix, and the material/positional value counters.
func (p *Position) String() string {
	var os strings.Builder
	os.WriteString(p.StringFen())
	os.WriteString("\n")
	os.WriteString(p.StringBoard())
	os.WriteString("\n")
	os.WriteString(fmt.Sprintf("Next Player    : %s\n", p.nextPlayer.String()))
	os.WriteString(fmt.Sprintf("Game Phase     : %d\n", p.gamePhase))
	os.WriteString(fmt.Sprintf("Material White : %d\n", p.material[White]))
	os.WriteString(fmt.Sprintf("Material Black : %d\n", p.material[Black]))
	os.WriteString(fmt.Sprintf("Pos value White: %d/%d\n", p.psqMidValue[White], p.psqEndValue[White]))
	os.WriteString(fmt.Sprintf("Pos value Black: %d/%d\n", p.psqMidValue[Black], p.psqEndValue[Black]))
	return os.String()
}

// StringBoard returns a visual matrix of the board and pieces.
func (p *Position) StringBoard() string {
	var os strings.Builder
	os.WriteString("+---+---+---+---+---+---+---+---+\n")
	for r := Rank1; r <= Rank8; r++ {
		for f := FileA; f <= FileH; f++ {
			os.WriteString("| ")
			os.WriteString(p.board[SquareOf(f, Rank8-r)].Char())
			os.WriteString(" ")
		}
		os.WriteString("|\n+---+---+---+---+---+---+---+---+\n")
	}
	return os.String()
}

// //////////////////////////////////////////////////////////
// Private
// //////////////////////////////////////////////////////////

func (p *Position) doNormalMove(fromSq Square, toSq Square, targetPc Piece, fromPc Piece, myColor Color) {
	if p.castlingRights != CastlingNone {
		p.updateCastlingRights(fromSq, toSq)
	}
	p.clearEnPassant()
	if targetPc != PieceNone {
		p.removePiece(toSq)
		p.halfMoveClock = 0
	} else if fromPc.TypeOf() == Pawn {
		p.halfMoveClock = 0
		// a double push only creates an en passant square when an enemy
		// pawn stands on an adjacent file and could actually capture
		if SquareDistance(fromSq, toSq) == 2 &&
			p.piecesBb[myColor.Flip()][Pawn]&toSq.NeighbourFilesMask()&toSq.RankOf().Bb() != BbZero {
			p.enPassantSquare = toSq.To(myColor.Flip().PawnDirection())
			p.zobristKey ^= zobristBase.enPassantFile[p.enPassantSquare.FileOf()]
		}
	} else {
		p.halfMoveClock++
	}
	p.movePiece(fromSq, toSq)
}

func (p *Position) doCastlingMove(fromPc Piece, myColor Color, toSq Square, fromSq Square) {
	if assert.DEBUG {
		assert.Assert(fromPc == MakePiece(myColor, King), "Position DoMove: move type castling but from piece not king")
		assert.Assert(fromSq.FileOf() == FileE, "Position DoMove: move type castling but king not on e-file")
		rookFrom := map[Square]Square{SqG1: SqH1, SqC1: SqA1, SqG8: SqH8, SqC8: SqA8}[toSq]
		assert.Assert(p.board[rookFrom] == MakePiece(myColor, Rook), "Position DoMove: move type castling but no own rook on %s", rookFrom.String())
	}
	switch toSq {
	case SqG1:
		p.movePiece(fromSq, toSq) // king
		p.movePiece(SqH1, SqF1)   // rook
		p.swapCastlingRights(CastlingWhite)
	case SqC1:
		p.movePiece(fromSq, toSq)
		p.movePiece(SqA1, SqD1)
		p.swapCastlingRights(CastlingWhite)
	case SqG8:
		p.movePiece(fromSq, toSq)
		p.movePiece(SqH8, SqF8)
		p.swapCastlingRights(CastlingBlack)
	case SqC8:
		p.movePiece(fromSq, toSq)
		p.movePiece(SqA8, SqD8)
		p.swapCastlingRights(CastlingBlack)
	default:
		panic("Position DoMove: invalid castle move")
	}
	p.clearEnPassant()
	p.halfMoveClock++
}

func (p *Position) doEnPassantMove(toSq Square, myColor Color, fromPc Piece, fromSq Square) {
	capSq := toSq.To(myColor.Flip().PawnDirection())
	if assert.DEBUG {
		assert.Assert(fromPc == MakePiece(myColor, Pawn), "Position DoMove: move type en passant but from piece not pawn")
		assert.Assert(p.enPassantSquare != SqNone, "Position DoMove: en passant move without en passant square set")
		assert.Assert(p.board[capSq] == MakePiece(myColor.Flip(), Pawn), "Position DoMove: en passant capture square has no enemy pawn")
	}
	p.removePiece(capSq)
	p.movePiece(fromSq, toSq)
	p.clearEnPassant()
	p.halfMoveClock = 0
}

func (p *Position) doPromotionMove(m Move, fromPc Piece, myColor Color, toSq Square, targetPc Piece, fromSq Square) {
	if assert.DEBUG {
		assert.Assert(fromPc == MakePiece(myColor, Pawn), "Position DoMove: move type promotion but from piece not pawn")
		assert.Assert(myColor.PromotionRankBb().Has(toSq), "Position DoMove: promotion move but wrong rank")
	}
	if targetPc != PieceNone {
		p.removePiece(toSq)
	}
	if p.castlingRights != CastlingNone {
		p.updateCastlingRights(fromSq, toSq)
	}
	p.removePiece(fromSq)
	p.putPiece(MakePiece(myColor, m.PromotionType()), toSq)
	p.clearEnPassant()
	p.halfMoveClock = 0
}

// updateCastlingRights clears whichever castling rights a move touching
// fromSq/toSq invalidates (a king or rook moving off, or a rook being
// captured on, its home square).
func (p *Position) updateCastlingRights(fromSq, toSq Square) {
	cr := GetCastlingRights(fromSq, p.castlingRights)
	cr = GetCastlingRights(toSq, cr)
	if cr != p.castlingRights {
		p.zobristKey ^= zobristBase.castlingRights[p.castlingRights]
		p.castlingRights = cr
		p.zobristKey ^= zobristBase.castlingRights[p.castlingRights]
	}
}

func (p *Position) swapCastlingRights(side CastlingRights) {
	p.zobristKey ^= zobristBase.castlingRights[p.castlingRights]
	p.castlingRights.Remove(side)
	p.zobristKey ^= zobristBase.castlingRights[p.castlingRights]
}

func (p *Position) movePiece(fromSq Square, toSq Square) {
	p.putPiece(p.removePiece(fromSq), toSq)
}

func (p *Position) putPiece(piece Piece, square Square) {
	color := piece.ColorOf()
	pieceType := piece.TypeOf()

	if assert.DEBUG {
		assert.Assert(p.board[square] == PieceNone, "tried to put a piece on an occupied square: %s", square.String())
		assert.Assert(!p.piecesBb[color][pieceType].Has(square), "tried to set a bit on piecesBb that is already set: %s", square.String())
		assert.Assert(!p.occupiedBb[color].Has(square), "tried to set a bit on occupiedBb that is already set: %s", square.String())
	}

	p.board[square] = piece
	if pieceType == King {
		p.kingSquare[color] = square
	}
	p.piecesBb[color][pieceType].PushSquare(square)
	p.occupiedBb[color].PushSquare(square)
	p.zobristKey ^= zobristBase.pieces[piece][square]

	p.gamePhase += pieceType.GamePhaseValue()
	if p.gamePhase > GamePhaseMax {
		p.gamePhase = GamePhaseMax
	}
	p.material[color] += pieceType.ValueOf()
	if pieceType > Pawn {
		p.materialNonPawn[color] += pieceType.ValueOf()
	}
	p.psqMidValue[color] += PosMidValue(piece, square)
	p.psqEndValue[color] += PosEndValue(piece, square)
}

func (p *Position) removePiece(square Square) Piece {
	removed := p.board[square]
	color := removed.ColorOf()
	pieceType := removed.TypeOf()

	if assert.DEBUG {
		assert.Assert(p.board[square] != PieceNone, "tried to remove a piece from an empty square: %s", square.String())
		assert.Assert(p.piecesBb[color][pieceType].Has(square), "tried to clear a bit from piecesBb that isn't set: %s", square.String())
		assert.Assert(p.occupiedBb[color].Has(square), "tried to clear a bit from occupiedBb that isn't set: %s", square.String())
	}

	p.board[square] = PieceNone
	p.piecesBb[color][pieceType].PopSquare(square)
	p.occupiedBb[color].PopSquare(square)
	p.zobristKey ^= zobristBase.pieces[removed][square]

	p.gamePhase -= pieceType.GamePhaseValue()
	if p.gamePhase < 0 {
		p.gamePhase = 0
	}
	p.material[color] -= pieceType.ValueOf()
	if pieceType > Pawn {
		p.materialNonPawn[color] -= pieceType.ValueOf()
	}
	p.psqMidValue[color] -= PosMidValue(removed, square)
	p.psqEndValue[color] -= PosEndValue(removed, square)
	return removed
}

func (p *Position) clearEnPassant() {
	if p.enPassantSquare != SqNone {
		p.zobristKey ^= zobristBase.enPassantFile[p.enPassantSquare.FileOf()]
		p.enPassantSquare = SqNone
	}
}

// regexFenPos matches the piece-placement field of a fen.
var regexFenPos = regexp.MustCompile("[0-8pPnNbBrRqQkK/]+")

// regexWorB matches the side-to-move field of a fen.
var regexWorB = regexp.MustCompile("^[wb]$")

// regexCastlingRights matches the castling-availability field of a fen.
var regexCastlingRights = regexp.MustCompile("^(K?Q?k?q?|-)$")

// regexEnPassant matches the en passant field of a fen.
var regexEnPassant = regexp.MustCompile("^([a-h][1-8]|-)$")

// SetupFen (re)initializes the position from the given fen. Only the
// piece-placement field is mandatory; all trailing fields fall back to
// defaults (white to move, no castling rights, no en passant, clocks at
// their initial values) matching the FEN spec. A malformed fen returns
// an error and leaves p unusable - the caller should discard it.
func (p *Position) SetupFen(fen string) error {
	*p = Position{}

	fen = strings.TrimSpace(fen)
	fenParts := strings.Split(fen, " ")
	if len(fenParts) == 0 || fenParts[0] == "" {
		return errors.New("fen must not be empty")
	}
	if !regexFenPos.MatchString(fenParts[0]) {
		return errors.New("fen position contains invalid characters")
	}

	// fen starts at a8 and runs towards h8, "/" drops to file a of the
	// next lower rank
	currentSquare := SqA8
	for _, c := range fenParts[0] {
		if number, e := strconv.Atoi(string(c)); e == nil {
			currentSquare = Square(int(currentSquare) + number*int(East))
		} else if c == '/' {
			currentSquare = currentSquare.To(South).To(South)
		} else {
			piece := PieceFromChar(string(c))
			if piece == PieceNone {
				return fmt.Errorf("invalid piece character: %s", string(c))
			}
			p.putPiece(piece, currentSquare)
			currentSquare++
		}
	}
	if currentSquare != SqA2 {
		return errors.New("fen position did not resolve to 64 squares")
	}
	if p.piecesBb[White][King].PopCount() != 1 || p.piecesBb[Black][King].PopCount() != 1 {
		return errors.New("fen position must have exactly one king per color")
	}

	p.nextHalfMoveNumber = 1
	p.enPassantSquare = SqNone

	if len(fenParts) >= 2 {
		if !regexWorB.MatchString(fenParts[1]) {
			return errors.New("fen next player contains invalid characters")
		}
		if fenParts[1] == "b" {
			p.nextPlayer = Black
			p.zobristKey ^= zobristBase.nextPlayer
			p.nextHalfMoveNumber++
		}
	}

	if len(fenParts) >= 3 {
		if !regexCastlingRights.MatchString(fenParts[2]) {
			return errors.New("fen castling rights contains invalid characters")
		}
		if fenParts[2] != "-" {
			for _, c := range fenParts[2] {
				switch c {
				case 'K':
					p.castlingRights.Add(CastlingWhiteOO)
				case 'Q':
					p.castlingRights.Add(CastlingWhiteOOO)
				case 'k':
					p.castlingRights.Add(CastlingBlackOO)
				case 'q':
					p.castlingRights.Add(CastlingBlackOOO)
				}
			}
		}
		p.zobristKey ^= zobristBase.castlingRights[p.castlingRights]
	}

	if len(fenParts) >= 4 {
		if !regexEnPassant.MatchString(fenParts[3]) {
			return errors.New("fen en passant square contains invalid characters")
		}
		if fenParts[3] != "-" {
			p.enPassantSquare = MakeSquare(fenParts[3])
		}
	}

	if len(fenParts) >= 5 {
		number, e := strconv.Atoi(fenParts[4])
		if e != nil {
			return e
		}
		p.halfMoveClock = number
	}

	if len(fenParts) >= 6 {
		moveNumber, e := strconv.Atoi(fenParts[5])
		if e != nil {
			return e
		}
		if moveNumber == 0 {
			moveNumber = 1
		}
		p.nextHalfMoveNumber = 2*moveNumber - (1 - int(p.nextPlayer))
	}

	return nil
}

// StringFen returns the fen of the current position.
func (p *Position) StringFen() string {
	var fen strings.Builder
	for r := Rank1; r <= Rank8; r++ {
		emptySquares := 0
		for f := FileA; f <= FileH; f++ {
			pc := p.board[SquareOf(f, Rank8-r)]
			if pc == PieceNone {
				emptySquares++
				continue
			}
			if emptySquares > 0 {
				fen.WriteString(strconv.Itoa(emptySquares))
				emptySquares = 0
			}
			fen.WriteString(pc.String())
		}
		if emptySquares > 0 {
			fen.WriteString(strconv.Itoa(emptySquares))
		}
		if r < Rank8 {
			fen.WriteString("/")
		}
	}
	fen.WriteString(" ")
	fen.WriteString(p.nextPlayer.String())
	fen.WriteString(" ")
	fen.WriteString(p.castlingRights.String())
	fen.WriteString(" ")
	fen.WriteString(p.enPassantSquare.String())
	fen.WriteString(" ")
	fen.WriteString(strconv.Itoa(p.halfMoveClock))
	fen.WriteString(" ")
	fen.WriteString(strconv.Itoa((p.nextHalfMoveNumber + 1) / 2))
	return fen.String()
}

// //////////////////////////////////////////////////////
// Getters
// //////////////////////////////////////////////////////

// ZobristKey returns the current zobrist key for this position.
func (p *Position) ZobristKey() Key {
	return p.zobristKey
}

// NextPlayer returns the color to move.
func (p *Position) NextPlayer() Color {
	return p.nextPlayer
}

// GetPiece returns the piece on the given square, or PieceNone if empty.
func (p *Position) GetPiece(sq Square) Piece {
	return p.board[sq]
}

// PiecesBb returns the bitboard for the given piece type of the given color.
func (p *Position) PiecesBb(c Color, pt PieceType) Bitboard {
	return p.piecesBb[c][pt]
}

// OccupiedAll returns a bitboard of all pieces currently on the board.
func (p *Position) OccupiedAll() Bitboard {
	return p.occupiedBb[White] | p.occupiedBb[Black]
}

// OccupiedBb returns a bitboard of all pieces of color c.
func (p *Position) OccupiedBb(c Color) Bitboard {
	return p.occupiedBb[c]
}

// GamePhase returns the current game phase value; GamePhaseMax (24) at
// the start of the game, decreasing towards 0 as officers come off.
func (p *Position) GamePhase() int {
	return p.gamePhase
}

// GamePhaseFactor returns the ratio of the current game phase to GamePhaseMax.
func (p *Position) GamePhaseFactor() float64 {
	return float64(p.gamePhase) / GamePhaseMax
}

// GetEnPassantSquare returns the en passant square, or SqNone if not set.
func (p *Position) GetEnPassantSquare() Square {
	return p.enPassantSquare
}

// CastlingRights returns the castling rights of the position.
func (p *Position) CastlingRights() CastlingRights {
	return p.castlingRights
}

// KingSquare returns the current square of the king of color c.
func (p *Position) KingSquare(c Color) Square {
	return p.kingSquare[c]
}

// HalfMoveClock returns the position's half move clock.
func (p *Position) HalfMoveClock() int {
	return p.halfMoveClock
}

// Material returns the material value for the given color.
func (p *Position) Material(c Color) Value {
	return p.material[c]
}

// MaterialNonPawn returns the non-pawn material value for the given color.
func (p *Position) MaterialNonPawn(c Color) Value {
	return p.materialNonPawn[c]
}

// PsqMidValue returns the positional value for the given color in the
// middle game. Best combined with GamePhaseFactor.
func (p *Position) PsqMidValue(c Color) Value {
	return p.psqMidValue[c]
}

// PsqEndValue returns the positional value for the given color in the
// end game. Best combined with GamePhaseFactor.
func (p *Position) PsqEndValue(c Color) Value {
	return p.psqEndValue[c]
}

// LastMove returns the last move made, or MoveNone if no move has been made.
func (p *Position) LastMove() Move {
	if p.historyCounter <= 0 {
		return MoveNone
	}
	return p.history[p.historyCounter-1].move
}

// LastCapturedPiece returns the piece captured by the last move, or
// PieceNone if the last move was not a capture or there is no history.
func (p *Position) LastCapturedPiece() Piece {
	if p.historyCounter <= 0 {
		return PieceNone
	}
	return p.history[p.historyCounter-1].capturedPiece
}

// WasCapturingMove returns true if the last move was a capturing move.
func (p *Position) WasCapturingMove() bool {
	return p.LastCapturedPiece() != PieceNone
}
