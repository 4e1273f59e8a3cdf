package main

import (
	"image/color"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/spf13/cobra"
	"golang.org/x/image/font/basicfont"

	"gostack/pkg/config"
	"gostack/pkg/utils"
)

const (
	cellWidth  = 7
	cellHeight = 13
	blinkTicks = 30
)

type Game struct {
	console *console
	face    text.Face
	width   int
	height  int
	ticks   int
}

// repeating reports a key press on the first tick and then at a steady rate
// while the key stays held.
func repeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d >= 30 && d%3 == 0)
}

func (g *Game) Update() error {
	for _, r := range ebiten.AppendInputChars(nil) {
		g.console.typeRune(r)
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter):
		g.console.submit()
	case repeating(ebiten.KeyBackspace):
		g.console.backspace()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		g.console.historyPrev()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		g.console.historyNext()
	}
	if g.console.done {
		return ebiten.Termination
	}
	g.ticks++
	return nil
}

func (g *Game) cells() (cols, rows int) {
	return max(g.width/cellWidth, 1), max(g.height/cellHeight, 1)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	cols, rows := g.cells()
	for i, row := range g.console.view(cols, rows) {
		g.drawAt(screen, row, 0, i)
	}
	if (g.ticks/blinkTicks)%2 == 0 {
		x, y := g.console.cursor(cols, rows)
		g.drawAt(screen, "_", x, y)
	}
}

func (g *Game) drawAt(screen *ebiten.Image, s string, col, row int) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(col*cellWidth), float64(row*cellHeight))
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, s, g.face, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func newDesktopCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "gostack-desktop [file]",
		Short: "Interactive stack language console in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			level := slog.LevelWarn
			if cfg.Trace {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			c := newConsole(cfg, logger)
			if len(args) == 1 {
				src, _, err := utils.ReadSource(args[0])
				if err != nil {
					return err
				}
				c.load(args[0], src)
			}

			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
			ebiten.SetWindowSize(cfg.Desktop.Width, cfg.Desktop.Height)
			ebiten.SetWindowTitle(cfg.Desktop.Title)

			game := &Game{
				console: c,
				face:    text.NewGoXFace(basicfont.Face7x13),
				width:   cfg.Desktop.Width,
				height:  cfg.Desktop.Height,
			}
			return ebiten.RunGame(game)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file (default ~/"+config.DefaultFileName+" if present)")
	return cmd
}

func main() {
	if err := newDesktopCmd().Execute(); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}
