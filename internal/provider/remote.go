package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	gethRpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const DefaultNamespace = "provider"

// go-ethereum reserves <namespace>_subscribe and <namespace>_unsubscribe for
// notification streams, so the contract level calls travel under other names.
var reservedMethods = map[string]string{
	string(MethodSubscribe):   "subscribeContract",
	string(MethodUnsubscribe): "unsubscribeContract",
}

type RemoteOptions struct {
	Namespace        string
	HandshakeTimeout time.Duration
}

// RemoteProvider reaches a wallet provider over JSON-RPC. Events arrive as
// <namespace>_subscription notifications, one stream per event name.
type RemoteProvider struct {
	client    *gethRpc.Client
	namespace string

	mu            sync.Mutex
	subscriptions []*gethRpc.ClientSubscription
	wg            sync.WaitGroup
}

func DialRemote(ctx context.Context, url string, opts RemoteOptions) (*RemoteProvider, error) {
	if url == "" {
		return nil, fmt.Errorf("provider url is not set")
	}
	handshakeTimeout := opts.HandshakeTimeout
	if handshakeTimeout <= 0 {
		handshakeTimeout = 10 * time.Second
	}
	dialer := websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
	}
	log.Debug().Str("url", url).Msg("Dialing remote provider")
	client, err := gethRpc.DialOptions(ctx, url, gethRpc.WithWebsocketDialer(dialer))
	if err != nil {
		return nil, fmt.Errorf("failed to dial provider: %w", err)
	}
	return NewRemoteProvider(client, opts.Namespace), nil
}

func NewRemoteProvider(client *gethRpc.Client, namespace string) *RemoteProvider {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &RemoteProvider{
		client:    client,
		namespace: namespace,
	}
}

func (r *RemoteProvider) wireMethod(method string) string {
	if renamed, ok := reservedMethods[method]; ok {
		method = renamed
	}
	return r.namespace + "_" + method
}

func (r *RemoteProvider) Request(ctx context.Context, method string, params any, result any) error {
	var args []interface{}
	if params != nil {
		args = append(args, params)
	}
	return r.client.CallContext(ctx, result, r.wireMethod(method), args...)
}

func (r *RemoteProvider) AddListener(ctx context.Context, event EventName, listener func(json.RawMessage)) error {
	ch := make(chan json.RawMessage, 16)
	sub, err := r.client.Subscribe(ctx, r.namespace, ch, string(event))
	if err != nil {
		return fmt.Errorf("failed to listen for %s: %w", event, err)
	}

	r.mu.Lock()
	r.subscriptions = append(r.subscriptions, sub)
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		for {
			select {
			case raw := <-ch:
				listener(raw)
			case err, ok := <-sub.Err():
				if ok && err != nil {
					log.Error().Err(err).Str("event", string(event)).Msg("Provider event stream failed")
				}
				return
			}
		}
	}()
	return nil
}

func (r *RemoteProvider) Close() {
	r.mu.Lock()
	subscriptions := r.subscriptions
	r.subscriptions = nil
	r.mu.Unlock()

	for _, sub := range subscriptions {
		sub.Unsubscribe()
	}
	r.wg.Wait()
	r.client.Close()
}

// ConnectRemote dials the provider in the background. The returned context
// becomes ready once the dial succeeds, or never-ready when it fails or
// readyTimeout elapses first.
func ConnectRemote(ctx context.Context, url string, opts RemoteOptions, readyTimeout time.Duration) *Context {
	if readyTimeout <= 0 {
		readyTimeout = 30 * time.Second
	}
	pc := NewContext()
	pc.Await()

	go func() {
		dialCtx, cancel := context.WithTimeout(ctx, readyTimeout)
		defer cancel()

		p, err := DialRemote(dialCtx, url, opts)
		if err != nil {
			log.Error().Err(err).Str("url", url).Msg("Failed to connect to provider")
			pc.ContentLoaded()
			return
		}
		log.Info().Str("url", url).Msg("Connected to provider")
		pc.Initialized(p)
	}()
	return pc
}
