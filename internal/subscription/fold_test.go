package subscription

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thirdweb-dev/walletbridge/internal/provider"
)

var (
	none         = provider.ContractUpdatesSubscription{}
	stateOnly    = provider.ContractUpdatesSubscription{State: true}
	txOnly       = provider.ContractUpdatesSubscription{Transactions: true}
	stateAndTxns = provider.ContractUpdatesSubscription{State: true, Transactions: true}
)

func orReduce(all []provider.ContractUpdatesSubscription) provider.ContractUpdatesSubscription {
	var result provider.ContractUpdatesSubscription
	for _, item := range all {
		result.State = result.State || item.State
		result.Transactions = result.Transactions || item.Transactions
	}
	return result
}

func TestFold_WithoutExcept(t *testing.T) {
	before, after := Fold([]provider.ContractUpdatesSubscription{stateOnly, txOnly}, nil)
	assert.Equal(t, stateAndTxns, before)
	assert.Equal(t, before, after)

	before, after = Fold(nil, nil)
	assert.Equal(t, none, before)
	assert.Equal(t, none, after)
}

func TestFold_ExceptAtEveryPosition(t *testing.T) {
	sets := [][]provider.ContractUpdatesSubscription{
		{stateOnly, txOnly, stateOnly},
		{txOnly, stateOnly},
		{stateAndTxns, stateOnly, txOnly},
		{stateOnly},
	}
	for _, set := range sets {
		for i := range set {
			all := append([]provider.ContractUpdatesSubscription(nil), set...)
			rest := append(append([]provider.ContractUpdatesSubscription(nil), set[:i]...), set[i+1:]...)

			before, after := Fold(all, &all[i])
			assert.Equal(t, orReduce(set), before)
			assert.Equal(t, orReduce(rest), after, "set %v except %d", set, i)
		}
	}
}

func TestFold_ExceptIsMatchedByIdentity(t *testing.T) {
	all := []provider.ContractUpdatesSubscription{stateOnly, stateOnly}
	outside := stateOnly

	_, after := Fold(all, &outside)
	assert.Equal(t, stateOnly, after)

	_, after = Fold(all, &all[1])
	assert.Equal(t, stateOnly, after)
}

func TestFold_ShortCircuitKeepsBeforeComplete(t *testing.T) {
	all := []provider.ContractUpdatesSubscription{stateAndTxns, none, stateOnly}
	before, after := Fold(all, &all[2])
	assert.Equal(t, stateAndTxns, before)
	assert.Equal(t, stateAndTxns, after)
}

func TestFold_Monotonic(t *testing.T) {
	base := []provider.ContractUpdatesSubscription{stateOnly}
	for _, added := range []provider.ContractUpdatesSubscription{none, stateOnly, txOnly, stateAndTxns} {
		_, without := Fold(base, nil)
		_, with := Fold(append(append([]provider.ContractUpdatesSubscription(nil), base...), added), nil)

		assert.True(t, with.State || !without.State)
		assert.True(t, with.Transactions || !without.Transactions)
	}
}

func TestFoldEntries(t *testing.T) {
	entries := []contractEntry{{id: 1, flags: stateOnly}, {id: 2, flags: txOnly}}

	with, without := foldEntries(entries, 2)
	assert.Equal(t, stateAndTxns, with)
	assert.Equal(t, stateOnly, without)

	with, without = foldEntries(entries, 42)
	assert.Equal(t, with, without)
}
