package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func TestFormatBoard(t *testing.T) {
	s := core.Snapshot{Values: [][]int{
		{0, 1, 2},
		{3, -1, 4},
	}}
	assert.Equal(t, "0 1 2\n3 . 4\n", formatBoard(s))
}

func TestAutoplayCommandsRegistered(t *testing.T) {
	for _, name := range []string{"autoplay", "bench"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if assert.NoError(t, err, name) {
			assert.Equal(t, name, cmd.Name())
		}
	}
}
