package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type AppConf struct {
	Env             string `mapstructure:"env"`
	Port            int    `mapstructure:"port"`
	ShutdownSeconds int    `mapstructure:"shutdown_seconds"`
	RatePerMinute   int    `mapstructure:"rate_limit_per_min"`
}

type MongoConf struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type AWSConf struct {
	Region string `mapstructure:"region"`
	Bucket string `mapstructure:"bucket"`
}

type S3Conf struct {
	PresignTTL int `mapstructure:"presign_ttl_seconds"`
}

type RedisConf struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConf struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type JWTConf struct {
	PublicKeyPath string `mapstructure:"public_key_path"`
}

type Config struct {
	App   AppConf   `mapstructure:"app"`
	Mongo MongoConf `mapstructure:"mongodb"`
	AWS   AWSConf   `mapstructure:"aws"`
	S3    S3Conf    `mapstructure:"s3"`
	Redis RedisConf `mapstructure:"redis"`
	Kafka KafkaConf `mapstructure:"kafka"`
	JWT   JWTConf   `mapstructure:"jwt"`

	// derived
	ShutdownTimeout time.Duration
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.App.Port == 0 {
		cfg.App.Port = 8084
	}
	if cfg.App.ShutdownSeconds == 0 {
		cfg.App.ShutdownSeconds = 15
	}
	if cfg.App.RatePerMinute == 0 {
		cfg.App.RatePerMinute = 300
	}
	if cfg.S3.PresignTTL == 0 {
		cfg.S3.PresignTTL = 600
	}
	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSeconds) * time.Second

	if cfg.Mongo.URI == "" {
		return nil, errors.New("mongodb.uri missing")
	}
	if cfg.Mongo.Database == "" {
		return nil, errors.New("mongodb.database missing")
	}
	if cfg.JWT.PublicKeyPath == "" {
		return nil, errors.New("jwt.public_key_path missing")
	}
	return &cfg, nil
}
