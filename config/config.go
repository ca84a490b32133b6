package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env string `toml:"env"`

	ApiServer ServerConfigs   `toml:"api_server"`
	Database  DatabaseConfigs `toml:"database"`
	Redis     RedisConfigs    `toml:"redis"`
	Chain     ChainConfigs    `toml:"chain"`
	Nonce     NonceConfigs    `toml:"nonce"`
	Lottery   LotteryConfigs  `toml:"lottery"`
}

type ServerConfigs struct {
	Host           string   `toml:"host"`
	Port           string   `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

// ChainConfigs binds every challenge message to one domain and chain, so a
// signature for this deployment cannot be replayed against another.
type ChainConfigs struct {
	Domain  string `toml:"domain"`
	ChainID int64  `toml:"chain_id"`
}

type NonceConfigs struct {
	Expiration time.Duration `toml:"expiration"`
}

type LotteryConfigs struct {
	UnlockTickets uint `toml:"unlock_tickets"`
}

// Load builds the configuration from environment variables, optionally
// overlaid by a TOML file given in CONFIG_FILE.
func Load() (Configs, error) {
	cfg := Configs{
		Env: getEnv("ENV", "dev"),
		ApiServer: ServerConfigs{
			Host: getEnv("API_HOST", "localhost"),
			Port: getEnv("API_PORT", "8080"),
			AllowedOrigins: []string{
				getEnv("WEB_ORIGIN", "http://localhost:5173"),
				"http://localhost:3000",
			},
		},
		Database: DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "wechest"),
			User:     getEnv("MYSQL_USER", "wechest"),
			Password: getEnv("MYSQL_PASSWORD", ""),
		},
		Redis: RedisConfigs{
			Addr: getEnv("REDIS_ADDR", ""),
		},
		Chain: ChainConfigs{
			Domain:  getEnv("CHAIN_DOMAIN", "wechest.xyz"),
			ChainID: getEnvInt64("CHAIN_ID", 10143),
		},
		Nonce: NonceConfigs{
			Expiration: 5 * time.Minute,
		},
		Lottery: LotteryConfigs{
			UnlockTickets: 3,
		},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, err
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}

	return n
}
