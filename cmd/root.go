package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	configs "github.com/thirdweb-dev/walletbridge/configs"
	customLogger "github.com/thirdweb-dev/walletbridge/internal/log"
)

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "walletbridge",
		Short: "Bridge a wallet provider to contract subscriptions and history",
		Long:  "walletbridge connects to a wallet provider, keeps the minimal set of contract subscriptions for the watched addresses and serves their transaction history.",
		Run: func(cmd *cobra.Command, args []string) {
			RunWatch(cmd, args)
		},
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/config.yml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level to use for the application")
	rootCmd.PersistentFlags().Bool("log-prettify", false, "Whether to prettify the log output")
	rootCmd.PersistentFlags().String("provider-url", "", "Websocket url of the wallet provider")
	rootCmd.PersistentFlags().Int("provider-ready-timeout", 30000, "Milliseconds to wait for the provider before giving up")
	rootCmd.PersistentFlags().Int("provider-handshake-timeout", 10000, "Milliseconds allowed for the websocket handshake")
	rootCmd.PersistentFlags().Int("provider-state-poll-interval", 60000, "Milliseconds between provider state polls")
	rootCmd.PersistentFlags().String("storage-type", "memory", "History storage: memory, badger, pebble or redis")
	rootCmd.PersistentFlags().Int("storage-memory-maxItems", 1000, "Max addresses kept by memory storage")
	rootCmd.PersistentFlags().String("storage-badger-path", "", "Directory of the badger history storage")
	rootCmd.PersistentFlags().String("storage-pebble-path", "", "Directory of the pebble history storage")
	rootCmd.PersistentFlags().String("storage-redis-addr", "", "Redis address for history storage")
	rootCmd.PersistentFlags().String("storage-redis-password", "", "Redis password for history storage")
	rootCmd.PersistentFlags().Int("storage-redis-db", 0, "Redis database for history storage")
	rootCmd.PersistentFlags().Int("storage-redis-poolSize", 0, "Redis connection pool size")
	rootCmd.PersistentFlags().String("api-host", "", "Host the API server binds to")
	rootCmd.PersistentFlags().Int("api-port", 3000, "Port the API server listens on")
	rootCmd.PersistentFlags().String("api-basicAuth-username", "", "Basic auth username for the API, empty disables auth")
	rootCmd.PersistentFlags().String("api-basicAuth-password", "", "Basic auth password for the API")
	rootCmd.PersistentFlags().StringSlice("watch-addresses", nil, "Addresses to watch")
	rootCmd.PersistentFlags().Bool("watch-state", false, "Track contract state changes of watched addresses")
	rootCmd.PersistentFlags().Bool("watch-transactions", true, "Track transactions of watched addresses")
	rootCmd.PersistentFlags().Int("watch-preload-limit", 0, "How many past transactions to preload per address")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.prettify", rootCmd.PersistentFlags().Lookup("log-prettify"))
	viper.BindPFlag("provider.url", rootCmd.PersistentFlags().Lookup("provider-url"))
	viper.BindPFlag("provider.readyTimeout", rootCmd.PersistentFlags().Lookup("provider-ready-timeout"))
	viper.BindPFlag("provider.handshakeTimeout", rootCmd.PersistentFlags().Lookup("provider-handshake-timeout"))
	viper.BindPFlag("provider.statePollInterval", rootCmd.PersistentFlags().Lookup("provider-state-poll-interval"))
	viper.BindPFlag("storage.type", rootCmd.PersistentFlags().Lookup("storage-type"))
	viper.BindPFlag("storage.memory.maxItems", rootCmd.PersistentFlags().Lookup("storage-memory-maxItems"))
	viper.BindPFlag("storage.badger.path", rootCmd.PersistentFlags().Lookup("storage-badger-path"))
	viper.BindPFlag("storage.pebble.path", rootCmd.PersistentFlags().Lookup("storage-pebble-path"))
	viper.BindPFlag("storage.redis.addr", rootCmd.PersistentFlags().Lookup("storage-redis-addr"))
	viper.BindPFlag("storage.redis.password", rootCmd.PersistentFlags().Lookup("storage-redis-password"))
	viper.BindPFlag("storage.redis.db", rootCmd.PersistentFlags().Lookup("storage-redis-db"))
	viper.BindPFlag("storage.redis.poolSize", rootCmd.PersistentFlags().Lookup("storage-redis-poolSize"))
	viper.BindPFlag("api.host", rootCmd.PersistentFlags().Lookup("api-host"))
	viper.BindPFlag("api.port", rootCmd.PersistentFlags().Lookup("api-port"))
	viper.BindPFlag("api.basicAuth.username", rootCmd.PersistentFlags().Lookup("api-basicAuth-username"))
	viper.BindPFlag("api.basicAuth.password", rootCmd.PersistentFlags().Lookup("api-basicAuth-password"))
	viper.BindPFlag("watch.addresses", rootCmd.PersistentFlags().Lookup("watch-addresses"))
	viper.BindPFlag("watch.state", rootCmd.PersistentFlags().Lookup("watch-state"))
	viper.BindPFlag("watch.transactions", rootCmd.PersistentFlags().Lookup("watch-transactions"))
	viper.BindPFlag("watch.preloadLimit", rootCmd.PersistentFlags().Lookup("watch-preload-limit"))
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(abiCmd)
}

func initConfig() {
	configs.LoadConfig(cfgFile)
	customLogger.InitLogger()
}
