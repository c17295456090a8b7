package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestGridClamp(t *testing.T) {
	g := NewGrid(DefaultRows, DefaultCols)

	tests := []struct {
		in, want Position
	}{
		{Position{-1, 0}, Position{0, 0}},
		{Position{0, -1}, Position{0, 0}},
		{Position{DefaultRows, 3}, Position{DefaultRows - 1, 3}},
		{Position{4, DefaultCols}, Position{4, DefaultCols - 1}},
		{Position{5, 5}, Position{5, 5}},
	}

	for _, test := range tests {
		require.Equal(t, test.want, g.Clamp(test.in))
	}
}

func TestRebuildPrecedence(t *testing.T) {
	c := DefaultConfig()
	c.Rows, c.Cols = 2, 3
	g, err := New(c, 0)
	require.NoError(t, err)

	// Every entity shares (0, 0) with the one drawn before it
	require.NoError(t, g.Load(Layout{
		Player:  Position{0, 0},
		Enemies: []Position{{0, 0}, {0, 1}},
		Fruit:   []Position{{0, 1}, {0, 2}},
		Blocks:  []Position{{0, 2}},
	}))

	want := [][]int{
		{int(Enemy), int(Fruit), int(Block)},
		{int(Empty), int(Empty), int(Empty)},
	}
	if diff := cmp.Diff(want, g.Snapshot().Grid.Values()); diff != "" {
		t.Errorf("unexpected board (-want +got):\n%s", diff)
	}
}

func TestGridCloneIndependent(t *testing.T) {
	g := NewGrid(2, 2)
	clone := g.Clone()
	clone.set(Position{1, 1}, Fruit)

	require.Equal(t, Empty, g.At(Position{1, 1}))
	require.Equal(t, 1, clone.Count(Fruit))
}

func TestGridString(t *testing.T) {
	g := NewGrid(2, 3)
	g.set(Position{0, 0}, Player)
	g.set(Position{0, 2}, Enemy)
	g.set(Position{1, 1}, Block)

	require.Equal(t, "P.E\n.#.\n", g.String())
	require.Equal(t, []float64{1, 0, 2, 0, 4, 0}, g.Flat())
}

func TestGridAtPanicsOffBoard(t *testing.T) {
	g := NewGrid(2, 2)
	require.Panics(t, func() { g.At(Position{2, 0}) })
}
