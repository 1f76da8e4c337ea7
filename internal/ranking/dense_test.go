package ranking

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	name    string
	euroSum float64
	count   int
	quote   *float64
	rank    int
}

func setRank(r *row, rank int) { r.rank = rank }

func ranks(rows []row) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.rank
	}
	return out
}

func names(rows []row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.name
	}
	return out
}

func TestDense_TiesShareRankWithoutGap(t *testing.T) {
	rows := []row{
		{name: "c", euroSum: 4.5},
		{name: "a", euroSum: 7},
		{name: "b", euroSum: 7},
		{name: "d", euroSum: 1},
	}

	Dense(rows, setRank, Float(func(r row) float64 { return r.euroSum }, Desc))

	assert.Equal(t, []string{"a", "b", "c", "d"}, names(rows))
	assert.Equal(t, []int{1, 1, 2, 3}, ranks(rows))
}

func TestDense_MultipleKeys(t *testing.T) {
	rows := []row{
		{name: "a", count: 3, euroSum: 1},
		{name: "b", count: 3, euroSum: 2},
		{name: "c", count: 3, euroSum: 2},
		{name: "d", count: 5, euroSum: 0},
	}

	Dense(rows, setRank,
		Int(func(r row) int { return r.count }, Desc),
		Float(func(r row) float64 { return r.euroSum }, Asc),
	)

	assert.Equal(t, []string{"d", "a", "b", "c"}, names(rows))
	assert.Equal(t, []int{1, 2, 3, 3}, ranks(rows))
}

func TestDense_OptionalValuesSortLast(t *testing.T) {
	half := 0.5
	one := 1.0
	rows := []row{
		{name: "none"},
		{name: "half", quote: &half},
		{name: "none2"},
		{name: "one", quote: &one},
	}

	Dense(rows, setRank, OptionalFloat(func(r row) *float64 { return r.quote }, Desc))
	assert.Equal(t, []string{"one", "half", "none", "none2"}, names(rows))
	assert.Equal(t, []int{1, 2, 3, 3}, ranks(rows))

	Dense(rows, setRank, OptionalFloat(func(r row) *float64 { return r.quote }, Asc))
	assert.Equal(t, []string{"half", "one", "none", "none2"}, names(rows))
}

func TestDense_Empty(t *testing.T) {
	var rows []row
	Dense(rows, setRank, Int(func(r row) int { return r.count }, Desc))
	assert.Empty(t, rows)
}

func TestDense_AdjacentPairProperty(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	keys := []Key[row]{
		Int(func(r row) int { return r.count }, Desc),
		Float(func(r row) float64 { return r.euroSum }, Asc),
	}

	for iteration := 0; iteration < 50; iteration++ {
		rows := make([]row, rnd.Intn(30)+1)
		for i := range rows {
			rows[i] = row{count: rnd.Intn(4), euroSum: float64(rnd.Intn(3))}
		}

		Dense(rows, setRank, keys...)

		require.Equal(t, 1, rows[0].rank)
		for i := 1; i < len(rows); i++ {
			prev, cur := rows[i-1], rows[i]
			if Compare(prev, cur, keys...) == 0 {
				assert.Equal(t, prev.rank, cur.rank)
			} else {
				assert.Equal(t, prev.rank+1, cur.rank)
			}
		}
	}
}
