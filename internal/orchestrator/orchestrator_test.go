package orchestrator

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	config "github.com/thirdweb-dev/walletbridge/configs"
	"github.com/thirdweb-dev/walletbridge/internal/common"
	"github.com/thirdweb-dev/walletbridge/internal/metrics"
	"github.com/thirdweb-dev/walletbridge/internal/provider"
	"github.com/thirdweb-dev/walletbridge/test/mocks"
)

func withConfig(t *testing.T, cfg config.Config) {
	original := config.Cfg
	config.Cfg = cfg
	t.Cleanup(func() { config.Cfg = original })
}

func value(t *testing.T, m prometheus.Metric) float64 {
	var out dto.Metric
	require.NoError(t, m.Write(&out))
	if out.Gauge != nil {
		return out.Gauge.GetValue()
	}
	return out.Counter.GetValue()
}

func TestNewOrchestrator_ValidatesWatchConfig(t *testing.T) {
	withConfig(t, config.Config{Watch: config.WatchConfig{Addresses: []string{"0:1"}}})
	_, err := NewOrchestrator(provider.NewContext(), nil)
	assert.ErrorContains(t, err, "neither state nor transactions")

	withConfig(t, config.Config{Watch: config.WatchConfig{Addresses: []string{""}, State: true}})
	_, err = NewOrchestrator(provider.NewContext(), nil)
	assert.ErrorContains(t, err, "empty address")

	withConfig(t, config.Config{Watch: config.WatchConfig{Addresses: []string{"0:1", "0:2", "0:1"}, Transactions: true}})
	o, err := NewOrchestrator(provider.NewContext(), nil)
	require.NoError(t, err)
	assert.Equal(t, []common.Address{common.NewAddress("0:1"), common.NewAddress("0:2")}, o.addresses)
}

func TestProviderTracker_ExportsSubscriptionCount(t *testing.T) {
	p := mocks.NewMockProvider(t)
	polled := make(chan struct{}, 1)
	p.On("Request", mock.Anything, "getProviderState", nil, mock.Anything).
		Return(func(_ context.Context, _ string, _ any, result any) error {
			err := json.Unmarshal([]byte(`{"subscriptions": {"0:1": {"state": true}, "0:2": {"transactions": true}}}`), result)
			select {
			case polled <- struct{}{}:
			default:
			}
			return err
		})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		NewProviderTracker(provider.NewApi(provider.NewReadyContext(p)), 3600000).Start(ctx)
	}()

	select {
	case <-polled:
	case <-time.After(5 * time.Second):
		t.Fatal("provider state was never polled")
	}
	cancel()
	<-done

	assert.Equal(t, float64(2), value(t, metrics.ProviderSubscriptions))
}

func TestRecordState(t *testing.T) {
	address := common.NewAddress("0:feed")

	recordState(provider.ContractStateChangedEvent{
		Address: address,
		State:   provider.ContractState{Balance: "1500", IsDeployed: true},
	})
	recordState(provider.ContractStateChangedEvent{
		Address: address,
		State:   provider.ContractState{Balance: "not a number"},
	})

	assert.Equal(t, float64(2), value(t, metrics.ContractStateChanges.WithLabelValues(address.String())))
	assert.Equal(t, float64(1500), value(t, metrics.ContractBalance.WithLabelValues(address.String())))
}
