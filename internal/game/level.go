package game

import (
	"github.com/vovakirdan/tui-breaker/internal/config"
	"github.com/vovakirdan/tui-breaker/internal/core"
)

// BuildBlocks produces the block grid for a level: a fixed rows x cols grid,
// centered horizontally, starting at a fixed vertical offset with uniform
// cell size and padding. Same level number always yields the same layout.
//
// Block health is min(level, max_health), so higher levels create tougher
// blocks up to the cap. Colors cycle through the palette by row.
func BuildBlocks(level int, cfg config.Blocks) []*Block {
	if level < 1 {
		level = 1
	}

	health := core.Min(level, cfg.MaxHealth)

	gridW := float64(cfg.Cols)*cfg.Width + float64(cfg.Cols-1)*cfg.Padding
	offsetX := (FieldWidth - gridW) / 2

	blocks := make([]*Block, 0, cfg.Rows*cfg.Cols)
	for row := 0; row < cfg.Rows; row++ {
		y := cfg.TopOffset + float64(row)*(cfg.Height+cfg.Padding)
		color := blockPalette[row%len(blockPalette)]
		for col := 0; col < cfg.Cols; col++ {
			blocks = append(blocks, &Block{
				X:      offsetX + float64(col)*(cfg.Width+cfg.Padding),
				Y:      y,
				W:      cfg.Width,
				H:      cfg.Height,
				Health: health,
				Color:  color,
			})
		}
	}
	return blocks
}
