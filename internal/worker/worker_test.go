package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirdweb-dev/walletbridge/internal/common"
)

type fakePreloader struct {
	address common.Address
	count   int
	err     error
	limit   int
}

func (f *fakePreloader) Address() common.Address {
	return f.address
}

func (f *fakePreloader) Preload(ctx context.Context, limit int) (int, error) {
	f.limit = limit
	return f.count, f.err
}

func TestWorker_RunKeepsTargetOrder(t *testing.T) {
	failing := errors.New("provider gone")
	targets := []*fakePreloader{
		{address: common.NewAddress("0:1"), count: 3},
		{address: common.NewAddress("0:2"), err: failing},
		{address: common.NewAddress("0:3"), count: 0},
	}
	preloaders := make([]Preloader, len(targets))
	for i, target := range targets {
		preloaders[i] = target
	}

	results := NewWorker(25).Run(context.Background(), preloaders)
	require.Len(t, results, 3)

	assert.Equal(t, common.NewAddress("0:1"), results[0].Address)
	assert.Equal(t, 3, results[0].Count)
	assert.NoError(t, results[0].Error)

	assert.Equal(t, common.NewAddress("0:2"), results[1].Address)
	assert.ErrorIs(t, results[1].Error, failing)

	assert.Equal(t, 0, results[2].Count)
	assert.NoError(t, results[2].Error)

	for _, target := range targets {
		assert.Equal(t, 25, target.limit)
	}
}

func TestWorker_RunWithoutTargets(t *testing.T) {
	assert.Empty(t, NewWorker(10).Run(context.Background(), nil))
}
