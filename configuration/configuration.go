package configuration

import (
	"os"
	"sync"
	"user-directory/database"
)

const EnvConfigFile = "CONFIG_FILE"

type Configuration struct {
	Server   Server   `yaml:"server"`
	Database Database `yaml:"database"`
	Kafka    Kafka    `yaml:"kafka"`
	Tracing  Tracing  `yaml:"tracing"`
}

type Server struct {
	Address string `yaml:"address" env:"SERVER_ADDRESS"`
	Prefix  string `yaml:"prefix" env:"SERVER_PREFIX"`
}

type Database struct {
	Driver string `yaml:"driver" env:"DB_DRIVER"`
	DSN    string `yaml:"dsn" env:"DB_DSN"`
	Debug  bool   `yaml:"debug" env:"DB_DEBUG"`
}

type Kafka struct {
	Brokers            []string `yaml:"brokers" env:"BOOTSTRAP_SERVERS" envSeparator:","`
	ConsumerGroupId    string   `yaml:"consumerGroupId" env:"KAFKA_CONSUMER_GROUP_ID"`
	CommandCreateTopic string   `yaml:"commandCreateTopic" env:"COMMAND_TOPIC_CREATE_ACCOUNT"`
	EventStatusTopic   string   `yaml:"eventStatusTopic" env:"EVENT_TOPIC_ACCOUNT_STATUS"`
}

type Tracing struct {
	Endpoint string `yaml:"endpoint" env:"TRACE_ENDPOINT"`
}

func (k Kafka) Enabled() bool {
	return len(k.Brokers) > 0
}

func Default() Configuration {
	return Configuration{
		Server: Server{
			Address: ":8080",
			Prefix:  "/",
		},
		Database: Database{
			Driver: database.DriverSqlite,
			DSN:    "file:user-directory.db?cache=shared",
		},
		Kafka: Kafka{
			ConsumerGroupId:    "User Directory Service",
			CommandCreateTopic: "COMMAND_TOPIC_CREATE_ACCOUNT",
			EventStatusTopic:   "EVENT_TOPIC_ACCOUNT_STATUS",
		},
	}
}

var config *Configuration
var configErr error
var once sync.Once

func Get() (*Configuration, error) {
	once.Do(func() {
		path, ok := os.LookupEnv(EnvConfigFile)
		if !ok {
			path = "config.yaml"
		}
		config, configErr = Load(path)
	})
	return config, configErr
}
