package subscription

import (
	"github.com/thirdweb-dev/walletbridge/internal/provider"
)

// Fold OR-reduces the interest of every listener on one address. before
// covers all entries, after skips the entry except points to. Without except
// both results are equal.
func Fold(all []provider.ContractUpdatesSubscription, except *provider.ContractUpdatesSubscription) (before, after provider.ContractUpdatesSubscription) {
	for i := range all {
		item := &all[i]
		before.State = before.State || item.State
		before.Transactions = before.Transactions || item.Transactions

		if item == except {
			continue
		}
		if after.State && after.Transactions {
			continue
		}
		after.State = after.State || item.State
		after.Transactions = after.Transactions || item.Transactions
	}
	if except == nil {
		after = before
	}
	return before, after
}

type contractEntry struct {
	id    int
	flags provider.ContractUpdatesSubscription
}

// foldEntries folds the entries of one address, excluding the entry with exceptID.
func foldEntries(entries []contractEntry, exceptID int) (withEntry, withoutEntry provider.ContractUpdatesSubscription) {
	all := make([]provider.ContractUpdatesSubscription, len(entries))
	var except *provider.ContractUpdatesSubscription
	for i, entry := range entries {
		all[i] = entry.flags
		if entry.id == exceptID {
			except = &all[i]
		}
	}
	return Fold(all, except)
}
