package common

import (
	"slices"
)

type AccountStatus string

const (
	AccountStatusUninit   AccountStatus = "uninit"
	AccountStatusFrozen   AccountStatus = "frozen"
	AccountStatusActive   AccountStatus = "active"
	AccountStatusNonexist AccountStatus = "nonexist"
)

type TransactionID struct {
	Lt   string `json:"lt"`
	Hash string `json:"hash"`
}

type Message struct {
	Src      *Address `json:"src,omitempty"`
	Dst      *Address `json:"dst,omitempty"`
	Value    string   `json:"value"`
	Bounce   bool     `json:"bounce"`
	Bounced  bool     `json:"bounced"`
	Body     *string  `json:"body,omitempty"`
	BodyHash *string  `json:"bodyHash,omitempty"`
}

type Transaction struct {
	ID                TransactionID  `json:"id"`
	PrevTransactionID *TransactionID `json:"prevTransactionId,omitempty"`
	CreatedAt         uint32         `json:"createdAt"`
	Aborted           bool           `json:"aborted"`
	ExitCode          *int32         `json:"exitCode,omitempty"`
	OrigStatus        AccountStatus  `json:"origStatus"`
	EndStatus         AccountStatus  `json:"endStatus"`
	TotalFees         string         `json:"totalFees"`
	InMessage         Message        `json:"inMessage"`
	OutMessages       []Message      `json:"outMessages"`
}

type BatchType string

const (
	BatchTypeOld BatchType = "old"
	BatchTypeNew BatchType = "new"
)

// TransactionsBatchInfo describes where a batch sits relative to already known history.
type TransactionsBatchInfo struct {
	MinLt     string    `json:"minLt"`
	MaxLt     string    `json:"maxLt"`
	BatchType BatchType `json:"batchType"`
}

// CompareLt orders two logical time keys. Keys are opaque canonical strings:
// a longer key is later, keys of equal length compare lexicographically.
func CompareLt(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// MergeTransactions merges a batch into a history sorted by descending logical time.
// Old batches are appended, new batches are spliced in before the first known
// transaction older than info.MaxLt. Duplicates are never removed.
// Like append, the returned slice must be used in place of known.
func MergeTransactions(known []Transaction, incoming []Transaction, info TransactionsBatchInfo) []Transaction {
	if info.BatchType == BatchTypeOld {
		return append(known, incoming...)
	}

	if len(known) == 0 {
		return append(known, incoming...)
	}

	i := 0
	for i < len(known) && CompareLt(known[i].ID.Lt, info.MaxLt) >= 0 {
		i++
	}
	return slices.Insert(known, i, incoming...)
}
