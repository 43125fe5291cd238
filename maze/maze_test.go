package maze

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generatedSizes = []struct {
	width, height int
}{
	{5, 5}, {7, 7}, {11, 11}, {21, 21}, {7, 13}, {15, 9}, {51, 51},
}

// forEachGenerated runs fn against mazes of several sizes and seeds.
func forEachGenerated(t *testing.T, fn func(t *testing.T, g *Grid)) {
	for _, size := range generatedSizes {
		for seed := int64(1); seed <= 8; seed++ {
			t.Run(fmt.Sprintf("%dx%d/seed_%d", size.width, size.height, seed), func(t *testing.T) {
				g, err := New(size.width, size.height, seed)
				require.NoError(t, err)
				fn(t, g)
			})
		}
	}
}

func TestGenerateConnectivity(t *testing.T) {
	forEachGenerated(t, func(t *testing.T, g *Grid) {
		seen := map[Position]bool{g.Start: true}
		queue := []Position{g.Start}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, dir := range Directions {
				next := cur.Step(dir, 1)
				if g.IsPassage(next) && !seen[next] {
					seen[next] = true
					queue = append(queue, next)
				}
			}
		}

		for y, row := range g.Cells {
			for x, cell := range row {
				if !cell.IsWall {
					assert.True(t, seen[Position{X: x, Y: y}], "passage (%d,%d) unreachable from start", x, y)
				}
			}
		}
	})
}

func TestGenerateAcyclic(t *testing.T) {
	forEachGenerated(t, func(t *testing.T, g *Grid) {
		nodes, edges := 0, 0
		for y, row := range g.Cells {
			for x, cell := range row {
				if cell.IsWall {
					continue
				}
				nodes++
				pos := Position{X: x, Y: y}
				if g.IsPassage(pos.Step(Right, 1)) {
					edges++
				}
				if g.IsPassage(pos.Step(Down, 1)) {
					edges++
				}
			}
		}
		assert.Equal(t, edges+1, nodes)
	})
}

func TestGenerateBorderIsWall(t *testing.T) {
	forEachGenerated(t, func(t *testing.T, g *Grid) {
		for y, row := range g.Cells {
			for x, cell := range row {
				if x == 0 || x == g.Width-1 || y == 0 || y == g.Height-1 {
					assert.True(t, cell.IsWall, "border cell (%d,%d) carved", x, y)
				}
			}
		}
	})
}

func TestGenerateSingleFinish(t *testing.T) {
	forEachGenerated(t, func(t *testing.T, g *Grid) {
		finishes := 0
		for _, row := range g.Cells {
			for _, cell := range row {
				if cell.IsFinish {
					finishes++
					assert.False(t, cell.IsWall)
					assert.Equal(t, g.Finish, Position{X: cell.X, Y: cell.Y})
				}
			}
		}
		assert.Equal(t, 1, finishes)
		assert.Equal(t, Position{X: g.Width - 2, Y: g.Height - 2}, g.Finish)
		assert.True(t, g.IsPassage(g.Start))
	})
}

func TestGenerateDeterministic(t *testing.T) {
	for _, seed := range []int64{0, 7, 42, 1 << 40} {
		a, err := New(21, 15, seed)
		require.NoError(t, err)
		b, err := New(21, 15, seed)
		require.NoError(t, err)
		assert.Equal(t, a.Layout(), b.Layout())
		assert.Equal(t, seed, a.Seed)
	}

	a, err := New(21, 21, 1)
	require.NoError(t, err)
	b, err := New(21, 21, 2)
	require.NoError(t, err)
	assert.NotEqual(t, a.Layout(), b.Layout())
}

func TestGenerateInvalidDimensions(t *testing.T) {
	cases := []struct {
		name          string
		width, height int
	}{
		{"even width", 6, 7},
		{"even height", 7, 8},
		{"too small", 3, 3},
		{"negative", -5, 5},
		{"too large", 53, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := Generate(tc.width, tc.height, NewRandomizer(1))
			assert.Nil(t, g)
			assert.ErrorIs(t, err, ErrInvalidDimensions)
		})
	}
}

func TestFromLayout(t *testing.T) {
	layout := [][]int{
		{1, 1, 1, 1, 1, 1, 1},
		{1, 0, 0, 0, 0, 0, 1},
		{1, 0, 1, 1, 1, 0, 1},
		{1, 0, 0, 0, 0, 0, 1},
		{1, 0, 1, 0, 1, 2, 1},
		{1, 0, 0, 0, 0, 0, 1},
		{1, 1, 1, 1, 1, 1, 1},
	}

	t.Run("round trip", func(t *testing.T) {
		g, err := FromLayout(layout)
		require.NoError(t, err)
		assert.Equal(t, Position{X: 5, Y: 4}, g.Finish)
		assert.True(t, g.IsFinish(Position{X: 5, Y: 4}))
		assert.True(t, g.IsPassage(Position{X: 1, Y: 1}))
		assert.False(t, g.IsPassage(Position{X: 2, Y: 2}))
		assert.Equal(t, layout, g.Layout())
		assert.Zero(t, g.Seed)
	})

	t.Run("no finish", func(t *testing.T) {
		bad := [][]int{
			{1, 1, 1, 1, 1},
			{1, 0, 0, 0, 1},
			{1, 0, 1, 0, 1},
			{1, 0, 0, 0, 1},
			{1, 1, 1, 1, 1},
		}
		_, err := FromLayout(bad)
		assert.ErrorIs(t, err, ErrInvalidLayout)
	})

	t.Run("walled start", func(t *testing.T) {
		bad := [][]int{
			{1, 1, 1, 1, 1},
			{1, 1, 0, 0, 1},
			{1, 0, 1, 0, 1},
			{1, 0, 0, 2, 1},
			{1, 1, 1, 1, 1},
		}
		_, err := FromLayout(bad)
		assert.ErrorIs(t, err, ErrInvalidLayout)
	})

	t.Run("ragged rows", func(t *testing.T) {
		bad := [][]int{
			{1, 1, 1, 1, 1},
			{1, 0, 0, 0, 1},
			{1, 0, 1, 0},
			{1, 0, 0, 2, 1},
			{1, 1, 1, 1, 1},
		}
		_, err := FromLayout(bad)
		assert.ErrorIs(t, err, ErrInvalidLayout)
	})

	t.Run("even dimensions", func(t *testing.T) {
		_, err := FromLayout([][]int{{1, 1}, {1, 1}})
		assert.ErrorIs(t, err, ErrInvalidDimensions)
	})
}

func TestGridString(t *testing.T) {
	g, err := FromLayout([][]int{
		{1, 1, 1, 1, 1},
		{1, 0, 0, 0, 1},
		{1, 1, 1, 0, 1},
		{1, 2, 0, 0, 1},
		{1, 1, 1, 1, 1},
	})
	require.NoError(t, err)

	want := "#####\n" +
		"#S..#\n" +
		"###.#\n" +
		"#F..#\n" +
		"#####\n"
	assert.Equal(t, want, g.String())
}

func TestDirectionTurns(t *testing.T) {
	d := Up
	for _, want := range []Direction{Left, Down, Right, Up} {
		d = d.TurnLeft()
		assert.Equal(t, want, d)
	}
	for _, want := range []Direction{Right, Down, Left, Up} {
		d = d.TurnRight()
		assert.Equal(t, want, d)
	}
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection(" right ")
	require.NoError(t, err)
	assert.Equal(t, Right, d)

	_, err = ParseDirection("north")
	assert.ErrorIs(t, err, ErrUnknownDirection)

	var decoded Direction
	require.NoError(t, decoded.UnmarshalText([]byte("DOWN")))
	assert.Equal(t, Down, decoded)

	_, err = Direction(9).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownDirection)
}

type scriptedRandomizer struct {
	calls []int
}

func (s *scriptedRandomizer) Intn(n int) int {
	s.calls = append(s.calls, n)
	return 0
}

func TestShuffle(t *testing.T) {
	t.Run("fisher yates draws", func(t *testing.T) {
		r := &scriptedRandomizer{}
		items := []int{0, 1, 2, 3}
		Shuffle(r, len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
		assert.Equal(t, []int{4, 3, 2}, r.calls)
		assert.ElementsMatch(t, []int{0, 1, 2, 3}, items)
	})

	t.Run("roughly uniform", func(t *testing.T) {
		r := NewRandomizer(99)
		counts := map[[3]int]int{}
		const rounds = 6000
		for i := 0; i < rounds; i++ {
			items := [3]int{0, 1, 2}
			Shuffle(r, 3, func(i, j int) { items[i], items[j] = items[j], items[i] })
			counts[items]++
		}
		require.Len(t, counts, 6)
		for perm, c := range counts {
			assert.InDelta(t, rounds/6, c, rounds/6*0.2, "permutation %v", perm)
		}
	})
}
