package parallel

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := 1000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	assert.Equal(t, int64(n), counter)
}

func TestFor_VisitsEveryIndexOnce(t *testing.T) {
	cfg := Config{Workers: 3, MinWork: 2}

	seen := make([]int32, 10)
	For(len(seen), func(i int) {
		atomic.AddInt32(&seen[i], 1)
	}, cfg)

	for i, v := range seen {
		assert.Equal(t, int32(1), v, "index %d", i)
	}
}

func TestFor_Sequential(t *testing.T) {
	var order []int
	For(5, func(i int) {
		order = append(order, i)
	}, Sequential())

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestRun(t *testing.T) {
	var a, b int32
	err := Run(
		func() error { atomic.StoreInt32(&a, 1); return nil },
		func() error { atomic.StoreInt32(&b, 2); return nil },
	)
	require.NoError(t, err)
	assert.Equal(t, int32(1), a)
	assert.Equal(t, int32(2), b)
}

func TestRun_FirstErrorByPosition(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")

	for i := 0; i < 20; i++ {
		err := Run(
			func() error { return errA },
			func() error { return errB },
		)
		require.ErrorIs(t, err, errA)
	}

	err := Run(
		func() error { return nil },
		func() error { return errB },
	)
	require.ErrorIs(t, err, errB)
}
