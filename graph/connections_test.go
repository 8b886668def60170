package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPairNormalises(t *testing.T) {
	assert.Equal(t, Pair{I: 1, J: 4}, NewPair(4, 1))
	assert.Equal(t, Pair{I: 1, J: 4}, NewPair(1, 4))
}

func TestConnectionsDropsInvalidAndDuplicatePairs(t *testing.T) {
	c := newConnections(3, []Pair{{0, 1}, {1, 0}, {2, 2}, {1, 5}, {-1, 0}, {2, 1}})

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 2, c.Count())
	assert.Equal(t, []Pair{{0, 1}, {1, 2}}, c.Pairs())
}

func TestConnectionsQueries(t *testing.T) {
	c := newConnections(4, []Pair{{2, 0}, {0, 3}, {1, 2}})

	assert.True(t, c.Connected(0, 2))
	assert.True(t, c.Connected(2, 0))
	assert.False(t, c.Connected(1, 3))
	assert.False(t, c.Connected(2, 2))
	assert.False(t, c.Connected(0, 9))
	assert.False(t, c.Connected(-1, 0))

	assert.Equal(t, 2, c.Degree(0))
	assert.Equal(t, 2, c.Degree(2))
	assert.Equal(t, 0, c.Degree(7))
	assert.Equal(t, []int{2, 3}, c.Neighbors(0))
	assert.Equal(t, []int{0, 1}, c.Neighbors(2))
	assert.Nil(t, c.Neighbors(5))
}

func TestConnectionsMatrixIsSymmetric(t *testing.T) {
	c := newConnections(3, []Pair{{0, 2}})
	m := c.Matrix()

	assert.Equal(t, [][]bool{
		{false, false, true},
		{false, false, false},
		{true, false, false},
	}, m)

	m[0][1] = true
	assert.False(t, c.Connected(0, 1), "matrix must be a copy")
}

func TestPairsReturnsCopy(t *testing.T) {
	c := newConnections(2, []Pair{{0, 1}})
	pairs := c.Pairs()
	pairs[0] = Pair{I: 5, J: 6}
	assert.Equal(t, []Pair{{0, 1}}, c.Pairs())
}

func TestDegreeAndNeighborsMatchMatrixOnCompleteGraph(t *testing.T) {
	const n = 300
	var pairs []Pair
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, Pair{I: j, J: i})
		}
	}
	c := newConnections(n, pairs)
	m := c.Matrix()

	for i := 0; i < n; i++ {
		row := 0
		for _, v := range m[i] {
			if v {
				row++
			}
		}
		assert.Equal(t, row, c.Degree(i))
		assert.Len(t, c.Neighbors(i), n-1)
	}
	assert.Equal(t, []int{0, 1, 3}, c.Neighbors(2)[:3])
}

func TestNeighborsReturnsCopy(t *testing.T) {
	c := newConnections(3, []Pair{{0, 1}, {0, 2}})
	nb := c.Neighbors(0)
	nb[0] = 9
	assert.Equal(t, []int{1, 2}, c.Neighbors(0))
	assert.Equal(t, []int{0}, c.Neighbors(1))
	assert.Equal(t, 0, c.Degree(-1))
}
