package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Mshel/typejumper/internal/game"
)

// One terminal cell covers cellWidth x cellHeight pixels of game space.
const (
	cellWidth  = 10.0
	cellHeight = 18.0
)

var (
	tilePalette = [game.PaletteSize]lipgloss.Color{
		"33", "39", "44", "69", "99", "135", "170", "176", "203", "208", "113", "149",
	}
	jumpableBorder = lipgloss.Color("220")
	riderColor     = lipgloss.Color("231")

	riderSprite = [][]rune{
		[]rune(" ▄█▄ "),
		[]rune("▐███▌"),
		[]rune(" ▘ ▝ "),
	}

	fadeShades = []rune{'░', '▒', '▓'}
)

const voidKey = "void"

type cell struct {
	ch  rune
	key string
}

// board rasterises a frame onto a character grid. Styles are cached by
// key so that runs of equal cells render as one styled span.
type board struct {
	cols, rows int
	cells      [][]cell
	styles     *Styles
	cache      map[string]lipgloss.Style
}

func BoardSize(vp game.Viewport) (cols, rows int) {
	return int(math.Ceil(vp.Width / cellWidth)), int(math.Ceil(vp.Height / cellHeight))
}

func newBoard(cols, rows int, styles *Styles) *board {
	b := &board{
		cols:   cols,
		rows:   rows,
		cells:  make([][]cell, rows),
		styles: styles,
		cache: map[string]lipgloss.Style{
			voidKey: styles.NewStyle().Background(voidColor),
		},
	}
	for r := range b.cells {
		b.cells[r] = make([]cell, cols)
		for c := range b.cells[r] {
			b.cells[r][c] = cell{ch: ' ', key: voidKey}
		}
	}
	return b
}

// renderFrame draws the tiles, then the rider, then an optional banner
// centred on top of everything.
func renderFrame(frame game.Frame, styles *Styles, banner []string) string {
	cols, rows := BoardSize(game.Viewport{Width: frame.Width, Height: frame.Height})
	b := newBoard(cols, rows, styles)
	for _, tile := range frame.Tiles {
		b.drawTile(tile)
	}
	b.drawRider(frame.Rider)
	if len(banner) > 0 {
		b.drawBanner(banner)
	}
	return b.String()
}

func (b *board) set(row, col int, ch rune, key string) {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return
	}
	b.cells[row][col] = cell{ch: ch, key: key}
}

func (b *board) style(key string, build func(lipgloss.Style) lipgloss.Style) string {
	if _, ok := b.cache[key]; !ok {
		b.cache[key] = build(b.styles.NewStyle())
	}
	return key
}

func (b *board) drawTile(tile game.TileView) {
	left := int(math.Round(tile.X / cellWidth))
	top := int(math.Round(tile.Y / cellHeight))
	width := max(1, int(math.Round(tile.Size/cellWidth)))
	height := max(1, int(math.Round(tile.Size/cellHeight)))

	color := tilePalette[paletteIndex(tile.Palette)]
	colorKey := string(color)

	fill := ' '
	var fillKey, letterKey string
	if tile.Opacity < 1 {
		fill = fadeShades[min(len(fadeShades)-1, int(tile.Opacity*float64(len(fadeShades))))]
		fillKey = b.style("fade:"+colorKey, func(s lipgloss.Style) lipgloss.Style {
			return s.Foreground(color).Background(voidColor)
		})
		letterKey = b.style("fadeletter:"+colorKey, func(s lipgloss.Style) lipgloss.Style {
			return s.Foreground(color).Background(voidColor).Faint(true)
		})
	} else {
		fillKey = b.style("tile:"+colorKey, func(s lipgloss.Style) lipgloss.Style {
			return s.Background(color)
		})
		letterKey = b.style("letter:"+colorKey, func(s lipgloss.Style) lipgloss.Style {
			return s.Background(color).Foreground(lipgloss.Color("0")).Bold(true)
		})
	}

	for r := top; r < top+height; r++ {
		for c := left; c < left+width; c++ {
			b.set(r, c, fill, fillKey)
		}
	}
	if tile.Jumpable && tile.Opacity >= 1 && width > 1 && height > 1 {
		b.drawBorder(top, left, width, height, b.style("edge:"+colorKey, func(s lipgloss.Style) lipgloss.Style {
			return s.Background(color).Foreground(jumpableBorder).Bold(true)
		}))
	}

	letter := []rune(tile.Letter)
	if len(letter) > 0 {
		b.set(top+height/2, left+width/2, letter[0], letterKey)
	}
}

func (b *board) drawBorder(top, left, width, height int, key string) {
	right, bottom := left+width-1, top+height-1
	for c := left + 1; c < right; c++ {
		b.set(top, c, '─', key)
		b.set(bottom, c, '─', key)
	}
	for r := top + 1; r < bottom; r++ {
		b.set(r, left, '│', key)
		b.set(r, right, '│', key)
	}
	b.set(top, left, '╭', key)
	b.set(top, right, '╮', key)
	b.set(bottom, left, '╰', key)
	b.set(bottom, right, '╯', key)
}

func (b *board) drawRider(rider game.RiderView) {
	left := int(math.Round(rider.X / cellWidth))
	top := int(math.Round(rider.Y / cellHeight))
	width := max(1, int(math.Round(rider.Size/cellWidth)))
	height := max(1, int(math.Round(rider.Size/cellHeight)))

	key := b.style("rider", func(s lipgloss.Style) lipgloss.Style {
		return s.Foreground(riderColor).Background(voidColor).Bold(true)
	})
	for r := 0; r < height; r++ {
		line := riderSprite[r*len(riderSprite)/height]
		for c := 0; c < width; c++ {
			ch := line[c*len(line)/width]
			if ch == ' ' {
				continue
			}
			b.set(top+r, left+c, ch, key)
		}
	}
}

func (b *board) drawBanner(lines []string) {
	inner := 0
	for _, line := range lines {
		inner = max(inner, len([]rune(line)))
	}
	width, height := inner+4, len(lines)+2
	left := (b.cols - width) / 2
	top := (b.rows - height) / 2

	key := b.style("banner", func(s lipgloss.Style) lipgloss.Style {
		return s.Background(lipgloss.Color("235")).Foreground(accentColor).Bold(true)
	})
	for r := top; r < top+height; r++ {
		for c := left; c < left+width; c++ {
			b.set(r, c, ' ', key)
		}
	}
	b.drawBorder(top, left, width, height, key)
	for i, line := range lines {
		runes := []rune(line)
		start := left + (width-len(runes))/2
		for j, ch := range runes {
			b.set(top+1+i, start+j, ch, key)
		}
	}
}

func (b *board) String() string {
	var sb strings.Builder
	var run []rune
	for r, row := range b.cells {
		runKey := ""
		run = run[:0]
		for _, c := range row {
			if c.key != runKey && len(run) > 0 {
				sb.WriteString(b.cache[runKey].Render(string(run)))
				run = run[:0]
			}
			runKey = c.key
			run = append(run, c.ch)
		}
		if len(run) > 0 {
			sb.WriteString(b.cache[runKey].Render(string(run)))
		}
		if r < len(b.cells)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func paletteIndex(i int) int {
	i %= game.PaletteSize
	if i < 0 {
		i += game.PaletteSize
	}
	return i
}
