// Command chessterm plays against the computer in a terminal.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/benbeisheim/chess-arena/internal/chess"
	"github.com/benbeisheim/chess-arena/internal/engine"
	"github.com/benbeisheim/chess-arena/internal/setup"
)

var (
	lightSquare = tcell.NewRGBColor(0xf0, 0xd9, 0xb5)
	darkSquare  = tcell.NewRGBColor(0xb5, 0x88, 0x63)
	lastSquare  = tcell.NewRGBColor(0xf6, 0xf6, 0x69)
	checkSquare = tcell.NewRGBColor(0xe0, 0x66, 0x66)
)

var promotionKeys = map[rune]chess.PieceType{
	'q': chess.Queen,
	'r': chess.Rook,
	'b': chess.Bishop,
	'n': chess.Knight,
}

type ui struct {
	screen  tcell.Screen
	sess    *session
	input   []rune
	status  string
	pending *chess.Move
}

func main() {
	difficulty := flag.Int("difficulty", int(engine.Medium), "computer strength, 1 (random) to 5 (expert)")
	black := flag.Bool("black", false, "play the black pieces")
	fen := flag.String("fen", setup.StartFEN, "starting position")
	flag.Parse()

	human := chess.White
	if *black {
		human = chess.Black
	}
	sess, err := newSession(*fen, human, engine.Difficulty(*difficulty), engine.NewSearcher())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer screen.Fini()

	u := &ui{screen: screen, sess: sess, status: "type a move such as e2e4, Ctrl-C quits"}
	u.reply()
	u.run()
}

func (u *ui) run() {
	for {
		u.draw()
		switch ev := u.screen.PollEvent().(type) {
		case *tcell.EventResize:
			u.screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC {
				return
			}
			if u.pending != nil {
				u.choosePromotion(ev)
				continue
			}
			u.edit(ev)
		}
	}
}

func (u *ui) edit(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		u.submit(strings.TrimSpace(string(u.input)))
		u.input = u.input[:0]
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(u.input) > 0 {
			u.input = u.input[:len(u.input)-1]
		}
	case tcell.KeyEscape:
		u.input = u.input[:0]
	case tcell.KeyRune:
		if len(u.input) < 5 {
			u.input = append(u.input, ev.Rune())
		}
	}
}

func (u *ui) submit(text string) {
	m, err := chess.ParseMove(text)
	if err != nil {
		u.status = err.Error()
		return
	}
	if u.sess.humanToMove() && u.sess.needsPromotion(m) {
		u.pending = &m
		u.status = "promote to q, r, b or n (Esc cancels)"
		return
	}
	u.playHuman(m, nil)
}

func (u *ui) choosePromotion(ev *tcell.EventKey) {
	m := *u.pending
	if ev.Key() == tcell.KeyEscape {
		u.pending = nil
		u.status = "promotion cancelled, move not played"
		return
	}
	t, ok := promotionKeys[ev.Rune()]
	if !ok {
		return
	}
	u.pending = nil
	u.playHuman(m, engine.Promote(t))
}

func (u *ui) playHuman(m chess.Move, choose engine.PromotionChooser) {
	if err := u.sess.play(m, choose); err != nil {
		u.status = err.Error()
		return
	}
	u.status = "you played " + m.String()
	u.reply()
}

// reply lets the computer move if it is its turn.
func (u *ui) reply() {
	if u.sess.outcome.Over() || u.sess.humanToMove() {
		return
	}
	u.status = "thinking (" + u.sess.difficulty.String() + ")..."
	u.draw()
	if m, ok := u.sess.computerMove(); ok {
		u.status = fmt.Sprintf("computer played %s (%d)", m, m.Score)
	}
}

func (u *ui) draw() {
	s := u.screen
	s.Clear()

	var checked *chess.Square
	if engine.InCheck(u.sess.pos, u.sess.toMove) {
		if sq, ok := u.sess.pos.FindKing(u.sess.toMove); ok {
			checked = &sq
		}
	}

	flip := u.sess.human == chess.Black
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			row, col := i, j
			if flip {
				row, col = 7-i, 7-j
			}
			sq := chess.Square{Row: row, Col: col}
			bg := lightSquare
			if (row+col)%2 == 1 {
				bg = darkSquare
			}
			if last := u.sess.last; last != nil && (last.From() == sq || last.To() == sq) {
				bg = lastSquare
			}
			if checked != nil && *checked == sq {
				bg = checkSquare
			}
			style := tcell.StyleDefault.Background(bg).Foreground(tcell.ColorBlack)
			glyph := ' '
			if p, ok := u.sess.pos.Get(row, col); ok {
				glyph = []rune(p.Glyph())[0]
			}
			x, y := 2+j*3, 1+i
			s.SetContent(x, y, ' ', nil, style)
			s.SetContent(x+1, y, glyph, nil, style)
			s.SetContent(x+2, y, ' ', nil, style)
		}
		rank := '8' - rune(i)
		if flip {
			rank = '1' + rune(i)
		}
		s.SetContent(0, 1+i, rank, nil, tcell.StyleDefault)
	}
	for j := 0; j < 8; j++ {
		file := 'a' + rune(j)
		if flip {
			file = 'h' - rune(j)
		}
		s.SetContent(3+j*3, 9, file, nil, tcell.StyleDefault)
	}

	u.print(28, 1, fmt.Sprintf("%s to move, %s vs %s", u.sess.toMove, u.sess.human, u.sess.difficulty))
	if u.sess.outcome.Over() {
		u.print(28, 2, "game over: "+u.sess.outcome.String())
	}
	u.print(28, 4, strings.Join(tail(u.sess.history, 8), " "))
	u.print(0, 11, u.status)
	u.print(0, 12, "> "+string(u.input))
	s.ShowCursor(2+len(u.input), 12)
	s.Show()
}

func (u *ui) print(x, y int, text string) {
	for _, r := range text {
		u.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
		x++
	}
}

func tail(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
