package minesweeper

import (
	"fmt"

	"github.com/aestallon/minesweeper/internal/core"
)

const (
	cellWidth = 3 // " 3 " or "[3]" with the cursor
	hudHeight = 3
	helpLines = 2
)

const helpText = "arrows/hjkl move  space reveal  f flag  r new  b menu  q quit"

// MinScreenSize returns the smallest screen that fits the board and HUD.
func MinScreenSize(cfg GameConfig) (w, h int) {
	w = max(cfg.Cols()*cellWidth+2, len(helpText))
	h = hudHeight + cfg.Rows() + 2 + helpLines
	return w, h
}

// Render draws the HUD, the board and the status line.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	w, h := dst.Width(), dst.Height()
	minW, minH := MinScreenSize(g.cfg)
	if w < minW || h < minH {
		g.renderTooSmall(dst, minW, minH)
		return
	}

	// Centered horizontally; the HUD is pinned to the top rows.
	boardW := g.cfg.Cols()*cellWidth + 2
	boardH := g.cfg.Rows() + 2
	box := dst.Bounds().Centered(boardW, boardH)
	box.Y = hudHeight

	hud := dst.Bounds().Centered(max(boardW, 40), hudHeight)
	hud.Y = 0
	g.renderHUD(dst, hud)
	dst.DrawBox(box)
	g.renderBoard(dst, box.X+1, box.Y+1)
	g.renderFooter(dst, box.Bottom())
}

func (g *Game) renderTooSmall(dst *core.Screen, minW, minH int) {
	y := dst.Height() / 2
	dst.DrawTextCenteredColor(y-1, "Window too small", core.ColorYellow)
	dst.DrawTextCentered(y, fmt.Sprintf("Need %dx%d, have %dx%d", minW, minH, dst.Width(), dst.Height()))
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

func (g *Game) renderHUD(dst *core.Screen, area core.Rect) {
	dst.DrawTextCenteredColor(0, "MINESWEEPER", core.ColorBrightCyan)

	left := fmt.Sprintf("%s  %s", g.player, g.cfg)
	dst.DrawText(area.X, 1, left)

	mines := fmt.Sprintf("Mines: %d", g.session.MinesRemaining())
	timer := fmt.Sprintf("Time: %ds", int(g.session.Elapsed().Seconds()))
	right := mines + "  " + timer
	dst.DrawText(area.Right()-len(right), 2, right)

	status, color := "Playing", core.ColorDefault
	switch g.session.Status() {
	case Won:
		status, color = "YOU WIN", core.ColorBrightGreen
	case Lost:
		status, color = "GAME OVER", core.ColorBrightRed
	}
	dst.DrawTextColor(area.X, 2, status, color)
}

func (g *Game) renderBoard(dst *core.Screen, x0, y0 int) {
	detonated, lost := g.session.Detonated()

	for r := 0; r < g.cfg.Rows(); r++ {
		for c := 0; c < g.cfg.Cols(); c++ {
			p := Pos(r, c)
			view, _ := g.session.CellView(p)
			glyph, color := cellGlyph(view)
			if lost && p == detonated {
				glyph, color = 'X', core.ColorBrightRed
			}

			x := x0 + c*cellWidth
			y := y0 + r
			dst.SetColor(x+1, y, glyph, color)
			if p == g.cursor && !g.session.Status().Terminal() {
				dst.SetColor(x, y, '[', core.ColorBrightYellow)
				dst.SetColor(x+2, y, ']', core.ColorBrightYellow)
			}
		}
	}
}

func cellGlyph(v CellView) (rune, core.Color) {
	switch v.State {
	case Flagged:
		return 'F', core.ColorOrange
	case Covered:
		return '·', core.ColorGray
	}
	if v.Content.IsMine() {
		return '*', core.ColorRed
	}
	if v.Content.Count() == 0 {
		return ' ', core.ColorDefault
	}
	return v.Content.Rune(), core.CountColor(v.Content.Count())
}

func (g *Game) renderFooter(dst *core.Screen, y int) {
	if g.message != "" {
		color := core.ColorYellow
		switch g.session.Status() {
		case Won:
			color = core.ColorBrightGreen
		case Lost:
			color = core.ColorBrightRed
		}
		dst.DrawTextCenteredColor(y, g.message, color)
	}
	dst.DrawTextCenteredColor(y+1, helpText, core.ColorGray)
}
