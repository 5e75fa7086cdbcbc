package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "TOYSTORE_CONFIG_FILE"

type consumers struct {
	EventsSaverGroup string `mapstructure:"events_saver_group"`
}

type topics struct {
	FavoriteEvents      string `mapstructure:"favorite_events"`
	FavoriteCountsTable string `mapstructure:"favorite_counts_table"`
}

type broker struct {
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	Topics             topics    `mapstructure:"topics"`
	Consumers          consumers `mapstructure:"consumers"`
}

type Config struct {
	LogLevel        slog.Level `mapstructure:"log_level"`
	HTTPServerAddr  string     `mapstructure:"http_server_addr"`
	CatalogPath     string     `mapstructure:"catalog_path"`
	FavoritesDBPath string     `mapstructure:"favorites_db_path"`
	SQLDB           string     `mapstructure:"sql_db"`
	AuthSecret      string     `mapstructure:"auth_secret"`
	Broker          broker     `mapstructure:"broker"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	template := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	CatalogPath=%q
	FavoritesDBPath=%q
	SQLDB=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		FavoriteEvents=%q
		FavoriteCountsTable=%q
	Consumers:
		EventsSaverGroup=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(template, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.CatalogPath,
		c.FavoritesDBPath,
		c.SQLDB,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.FavoriteEvents,
		c.Broker.Topics.FavoriteCountsTable,
		c.Broker.Consumers.EventsSaverGroup,
	)
}
