package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

func init() {
	ServiceConfig = Load()
}

var ServiceConfig *Config

type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	MongoDB  MongoDBConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Consul   ConsulConfig
}

type ServerConfig struct {
	Port           string
	ServiceName    string
	ServiceAddress string
	ServiceID      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	Host           string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type ConsulConfig struct {
	ConsulAddress string
}

type MongoDBConfig struct {
	URI      string
	Database string
	PoolSize uint64
	Timeout  time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	URI      string
	Exchange string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "9300"),
			ServiceName:    getEnv("TALENT_SERVICE_NAME", "talent-service"),
			ServiceAddress: getEnv("TALENT_SERVICE_ADDRESS", "talent-service"),
			ServiceID:      getEnv("TALENT_SERVICE_NAME", "talent-service") + "-" + getEnv("HOSTNAME", "talent"),
			ReadTimeout:    getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getEnvAsDuration("WRITE_TIMEOUT", 15*time.Second),
			Host:           getEnv("HOST", "0.0.0.0"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  getEnvAsDuration("TOKEN_TTL", 4*time.Hour),
		},
		Consul: ConsulConfig{
			ConsulAddress: getEnv("CONSUL_ADDR", "consul-server:8500"),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "talent_service"),
			PoolSize: getEnvAsUint64("MONGODB_POOL_SIZE", 100),
			Timeout:  getEnvAsDuration("MONGODB_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		RabbitMQ: RabbitMQConfig{
			URI:      getEnv("RABBITMQ_URI", ""),
			Exchange: getEnv("RABBITMQ_EXCHANGE", "talent.events"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			log.Printf("error retrieving int env var %s: %s", key, err)
			return defaultValue
		}
		return intVal
	}
	return defaultValue
}

func getEnvAsUint64(key string, defaultValue uint64) uint64 {
	if value, exists := os.LookupEnv(key); exists {
		uintVal, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			log.Printf("error retrieving uint env var %s: %s", key, err)
			return defaultValue
		}
		return uintVal
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		duration, err := time.ParseDuration(value)
		if err != nil {
			log.Printf("error retrieving duration env var %s: %s", key, err)
			return defaultValue
		}
		return duration
	}
	return defaultValue
}
