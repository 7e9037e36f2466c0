package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	config "github.com/thirdweb-dev/walletbridge/configs"
	"github.com/thirdweb-dev/walletbridge/internal/common"
)

var (
	walletA = common.NewAddress("0:aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	walletB = common.NewAddress("0:bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
)

func history(lts ...string) []common.Transaction {
	txs := make([]common.Transaction, 0, len(lts))
	for _, lt := range lts {
		txs = append(txs, common.Transaction{
			ID:        common.TransactionID{Lt: lt, Hash: "hash-" + lt},
			CreatedAt: 1700000000,
			TotalFees: "1000",
			InMessage: common.Message{Dst: &walletA, Value: "1"},
		})
	}
	return txs
}

// exerciseConnector runs the behaviour every connector shares.
func exerciseConnector(t *testing.T, conn ITransactionStorage) {
	t.Helper()

	txs, err := conn.GetTransactions(walletA)
	require.NoError(t, err)
	assert.Empty(t, txs)
	assert.NotNil(t, txs)

	require.NoError(t, conn.SaveTransactions(walletA, history("30", "20", "10")))
	require.NoError(t, conn.SaveTransactions(walletB, history("7")))

	txs, err = conn.GetTransactions(walletA)
	require.NoError(t, err)
	assert.Equal(t, history("30", "20", "10"), txs)

	// saving replaces the whole history
	require.NoError(t, conn.SaveTransactions(walletA, history("40", "30")))
	txs, err = conn.GetTransactions(walletA)
	require.NoError(t, err)
	assert.Equal(t, history("40", "30"), txs)

	txs, err = conn.GetTransactions(walletB)
	require.NoError(t, err)
	assert.Equal(t, history("7"), txs)
}

func TestMemoryConnector(t *testing.T) {
	conn, err := NewMemoryConnector(&config.MemoryConfig{})
	require.NoError(t, err)
	defer conn.Close()

	exerciseConnector(t, conn)
}

func TestMemoryConnector_CopiesOnReadAndWrite(t *testing.T) {
	conn, err := NewMemoryConnector(&config.MemoryConfig{})
	require.NoError(t, err)

	saved := history("2", "1")
	require.NoError(t, conn.SaveTransactions(walletA, saved))
	saved[0].ID.Lt = "99"

	loaded, err := conn.GetTransactions(walletA)
	require.NoError(t, err)
	assert.Equal(t, "2", loaded[0].ID.Lt)

	loaded[1].ID.Lt = "98"
	again, err := conn.GetTransactions(walletA)
	require.NoError(t, err)
	assert.Equal(t, "1", again[1].ID.Lt)
}

func TestMemoryConnector_EvictsLeastRecentlyUsed(t *testing.T) {
	conn, err := NewMemoryConnector(&config.MemoryConfig{MaxItems: 1})
	require.NoError(t, err)

	require.NoError(t, conn.SaveTransactions(walletA, history("1")))
	require.NoError(t, conn.SaveTransactions(walletB, history("2")))

	txs, err := conn.GetTransactions(walletA)
	require.NoError(t, err)
	assert.Empty(t, txs)

	txs, err = conn.GetTransactions(walletB)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestBadgerConnector(t *testing.T) {
	conn, err := NewBadgerConnector(&config.BadgerConfig{Path: t.TempDir()})
	require.NoError(t, err)
	defer conn.Close()

	exerciseConnector(t, conn)
}

func TestBadgerConnector_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	conn, err := NewBadgerConnector(&config.BadgerConfig{Path: dir})
	require.NoError(t, err)
	require.NoError(t, conn.SaveTransactions(walletA, history("5", "4")))
	require.NoError(t, conn.Close())
	require.NoError(t, conn.Close())

	conn, err = NewBadgerConnector(&config.BadgerConfig{Path: dir})
	require.NoError(t, err)
	defer conn.Close()

	txs, err := conn.GetTransactions(walletA)
	require.NoError(t, err)
	assert.Equal(t, history("5", "4"), txs)
}

func TestPebbleConnector(t *testing.T) {
	conn, err := NewPebbleConnector(&config.PebbleConfig{Path: t.TempDir()})
	require.NoError(t, err)
	defer conn.Close()

	exerciseConnector(t, conn)
}

func TestNewConnector(t *testing.T) {
	conn, err := NewConnector(&config.StorageConfig{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryConnector{}, conn)
	conn.Close()

	conn, err = NewConnector(&config.StorageConfig{
		Type:   string(config.StorageTypePebble),
		Pebble: &config.PebbleConfig{Path: t.TempDir()},
	})
	require.NoError(t, err)
	assert.IsType(t, &PebbleConnector{}, conn)
	conn.Close()

	_, err = NewConnector(&config.StorageConfig{Type: string(config.StorageTypeBadger)})
	assert.ErrorContains(t, err, "not configured")

	_, err = NewConnector(&config.StorageConfig{Type: string(config.StorageTypeRedis)})
	assert.ErrorContains(t, err, "not configured")

	_, err = NewConnector(&config.StorageConfig{Type: "clickhouse"})
	assert.ErrorContains(t, err, "unknown storage type")
}
