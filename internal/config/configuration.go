package config

import (
	"gopkg.in/yaml.v3"
	"os"
	"time"
)

const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendBolt     = "bolt"
	BackendMongo    = "mongo"
	BackendMemory   = "memory"
)

type Configuration struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
}

type ServerConfig struct {
	Port          int           `yaml:"port"`
	Concurrency   int           `yaml:"concurrency"`
	RequestConfig RequestConfig `yaml:"request"`
	LogConfig     LogConfig     `yaml:"log"`
	CleanConfig   CleanConfig   `yaml:"clean"`
}

type RequestConfig struct {
	// SizeLimit is the maximum request body size in MiB.
	SizeLimit int `yaml:"sizeLimit"`
}

type LogConfig struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
	Output  string `yaml:"output"`
	LogPath string `yaml:"logPath"`
}

type CleanConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Schedule  string        `yaml:"schedule"`
	Retention time.Duration `yaml:"retention"`
}

type DatabaseConfig struct {
	Backend string      `yaml:"backend"`
	Path    string      `yaml:"path"`
	Mongo   MongoConfig `yaml:"mongo"`
}

type MongoConfig struct {
	URL      string        `yaml:"url"`
	Database string        `yaml:"database"`
	Timeout  time.Duration `yaml:"timeout"`

	Auth struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"auth"`
}

func LoadConfiguration(configurationFilePath string) (*Configuration, error) {
	data, err := os.ReadFile(configurationFilePath)
	if err != nil {
		return nil, err
	}
	var config Configuration
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Configuration) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Concurrency == 0 {
		c.Server.Concurrency = 256
	}
	if c.Server.RequestConfig.SizeLimit == 0 {
		c.Server.RequestConfig.SizeLimit = 4
	}
	if c.Server.LogConfig.Level == "" {
		c.Server.LogConfig.Level = "info"
	}
	if c.Server.LogConfig.Format == "" {
		c.Server.LogConfig.Format = "text"
	}
	if c.Server.LogConfig.Output == "" {
		c.Server.LogConfig.Output = "stdout"
	}
	if c.Server.CleanConfig.Schedule == "" {
		c.Server.CleanConfig.Schedule = "@daily"
	}
	if c.Server.CleanConfig.Retention == 0 {
		c.Server.CleanConfig.Retention = 30 * 24 * time.Hour
	}
	if c.Database.Backend == "" {
		c.Database.Backend = BackendPostgres
	}
	switch c.Database.Backend {
	case BackendSQLite:
		if c.Database.Path == "" {
			c.Database.Path = "campus.db"
		}
	case BackendBolt:
		if c.Database.Path == "" {
			c.Database.Path = "campus.bolt"
		}
	case BackendMongo:
		if c.Database.Mongo.Database == "" {
			c.Database.Mongo.Database = "campus"
		}
		if c.Database.Mongo.Timeout == 0 {
			c.Database.Mongo.Timeout = 10 * time.Second
		}
	}
}
