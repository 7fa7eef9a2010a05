package main

import (
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/vancomm/minesweeper/internal/bounded"
	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/logging"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/session"
)

var (
	flagColor     = color.RGBA{0xd0, 0x30, 0x30, 0xff}
	mineColor     = color.RGBA{0x20, 0x20, 0x20, 0xff}
	explodedColor = color.RGBA{0xe0, 0x20, 0x20, 0xff}
	digitColors   = []color.Color{
		color.RGBA{0xa0, 0xa0, 0xa0, 0xff},
		color.RGBA{0x19, 0x76, 0xd2, 0xff},
		color.RGBA{0x38, 0x8e, 0x3c, 0xff},
		color.RGBA{0xd3, 0x2f, 0x2f, 0xff},
		color.RGBA{0x7b, 0x1f, 0xa2, 0xff},
		color.RGBA{0xff, 0x8f, 0x00, 0xff},
		color.RGBA{0x00, 0x97, 0xa7, 0xff},
		color.RGBA{0x42, 0x42, 0x42, 0xff},
		color.RGBA{0x9e, 0x9e, 0x9e, 0xff},
	}
)

// screenSurface draws visual descriptors onto the ebiten frame.
type screenSurface struct {
	screen *ebiten.Image
	face   font.Face
}

func (s *screenSurface) DrawCell(v mines.Visual) {
	x, y, size := float32(v.Origin.X), float32(v.Origin.Y), float32(v.Size)
	vector.DrawFilledRect(s.screen, x, y, size, size, v.Fill, false)

	var (
		glyph string
		clr   color.Color
	)
	switch v.Glyph {
	case mines.GlyphFlag:
		glyph, clr = "F", flagColor
	case mines.GlyphMine:
		glyph, clr = "*", mineColor
	case mines.GlyphExplodedMine:
		vector.DrawFilledRect(s.screen, x, y, size, size, explodedColor, false)
		glyph, clr = "*", bounded.Black
	case mines.GlyphDigit:
		if v.Digit == 0 {
			return
		}
		glyph, clr = v.Digit.String(), digitColors[v.Digit]
	default:
		return
	}

	b := text.BoundString(s.face, glyph)
	tx := v.Origin.X + (v.Size-b.Dx())/2
	ty := v.Origin.Y + (v.Size+b.Dy())/2
	text.Draw(s.screen, glyph, s.face, tx, ty, clr)
}

type game struct {
	session *session.Session
	surface *screenSurface
}

func (g *game) Update() error {
	var button session.Button
	switch {
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		button = session.Primary
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight):
		button = session.Secondary
	default:
		return nil
	}

	p, err := mines.NewPoint(ebiten.CursorPosition())
	if err != nil {
		return nil
	}
	g.session.Click(p, button)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(bounded.White)
	g.surface.screen = screen
	g.session.Draw()
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := g.session.ScreenSize()
	return size, size
}

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log, err := logging.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	mines.Log = log

	surface := &screenSurface{face: basicfont.Face7x13}
	s, err := session.New(cfg.Game.Session(), mines.NewRand(cfg.Game.Seed), surface, log)
	if err != nil {
		log.Fatal("unable to start game: ", err)
	}

	size := s.ScreenSize()
	ebiten.SetWindowSize(size, size)
	ebiten.SetWindowTitle("Minesweeper")

	if err := ebiten.RunGame(&game{session: s, surface: surface}); err != nil {
		log.Fatal(err)
	}
}
