package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/milk9111/horde/levels"
	"github.com/milk9111/horde/navigation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCorridor(t *testing.T) {
	lvl, err := levels.Load("corridor")
	require.NoError(t, err)

	f, err := build(navigation.DefaultConfig(), lvl)
	require.NoError(t, err)
	assert.Equal(t, navigation.Dims{W: 80, H: 40}, f.Dims())
	assert.Equal(t, []navigation.GridPos{{X: 76, Y: 20}}, f.Sources())
	assert.Positive(t, f.Stats().Blocked)
}

func TestBuildDefaultsToCenter(t *testing.T) {
	lvl, err := levels.Parse([]byte("name: open\nwidth: 50\nheight: 30\n"))
	require.NoError(t, err)

	f, err := build(navigation.DefaultConfig(), lvl)
	require.NoError(t, err)
	assert.Equal(t, []navigation.GridPos{{X: 5, Y: 3}}, f.Sources())
}

func TestWriteGrids(t *testing.T) {
	lvl, err := levels.Parse([]byte("name: tiny\nwidth: 15\nheight: 10\ngoals:\n  - {x: 2, y: 2}\n"))
	require.NoError(t, err)
	f, err := build(navigation.DefaultConfig(), lvl)
	require.NoError(t, err)

	var costs bytes.Buffer
	writeCosts(&costs, f)
	rows := strings.Split(strings.TrimRight(costs.String(), "\n"), "\n")
	require.Len(t, rows, 2)
	assert.Equal(t, "   0   1   2", rows[0])

	var flow bytes.Buffer
	writeFlow(&flow, f)
	rows = strings.Split(strings.TrimRight(flow.String(), "\n"), "\n")
	require.Len(t, rows, 2)
	// sources are never stepped onto, so their neighbors steer around them
	assert.Equal(t, "G/<", rows[0])
	assert.Equal(t, "/", rows[1][:1])
}

func TestArrow(t *testing.T) {
	assert.Equal(t, ".", arrow(0, 0))
	assert.Equal(t, ">", arrow(1, 0))
	assert.Equal(t, "^", arrow(0, -1))
	assert.Equal(t, "\\", arrow(0.7, 0.7))
	assert.Equal(t, "/", arrow(-0.7, 0.7))
}

func TestCheckShow(t *testing.T) {
	for _, show := range []string{"cost", "flow", "both", "stats"} {
		assert.NoError(t, checkShow(show), show)
	}
	assert.ErrorIs(t, checkShow("heat"), errUnknownShow)
	assert.ErrorIs(t, checkShow(""), errUnknownShow)
}
