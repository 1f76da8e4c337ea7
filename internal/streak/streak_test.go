package streak

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMax(t *testing.T) {
	full := []string{"r1", "r2", "r3", "r4", "r5", "r6", "r7"}

	tests := []struct {
		name   string
		subset []string
		want   []string
	}{
		{name: "empty subset", subset: nil, want: []string{}},
		{name: "single", subset: []string{"r4"}, want: []string{"r4"}},
		{name: "whole sequence", subset: full, want: full},
		{name: "gap resets run", subset: []string{"r1", "r2", "r4", "r5", "r6"}, want: []string{"r4", "r5", "r6"}},
		{name: "oldest record wins ties", subset: []string{"r1", "r2", "r4", "r6", "r7"}, want: []string{"r1", "r2"}},
		{name: "trailing run", subset: []string{"r2", "r5", "r6", "r7"}, want: []string{"r5", "r6", "r7"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Max(full, tt.subset)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMax_EmptyInputs(t *testing.T) {
	got, err := Max[int](nil, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMax_ResultIsContiguous(t *testing.T) {
	full := []int{10, 20, 30, 40, 50, 60}
	got, err := Max(full, []int{10, 30, 40, 60})
	require.NoError(t, err)
	require.Equal(t, []int{30, 40}, got)

	pos := map[int]int{}
	for i, v := range full {
		pos[v] = i
	}
	for i := 1; i < len(got); i++ {
		assert.Equal(t, pos[got[i-1]]+1, pos[got[i]])
	}
}

func TestMax_MissingElement(t *testing.T) {
	_, err := Max([]string{"a", "b"}, []string{"a", "x"})
	assert.ErrorIs(t, err, ErrNotInSequence)
}

func TestCurrent(t *testing.T) {
	full := []string{"r1", "r2", "r3", "r4", "r5"}

	assert.Equal(t, 0, Current(full, nil))
	assert.Equal(t, 0, Current(nil, []string{"r1"}))
	assert.Equal(t, 2, Current(full, []string{"r1", "r4", "r5"}))
	assert.Equal(t, 0, Current(full, []string{"r1", "r2", "r3", "r4"}))
	assert.Equal(t, 5, Current(full, full))
	assert.Equal(t, 1, Current(full, []string{"r2", "r3", "r5"}))
}
