package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
	"github.com/dmitrijs2005/gophauth/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept
// "15m"-style strings or integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP string          `json:"endpoint_addr_http"`
	EndpointAddrGRPC string          `json:"endpoint_addr_grpc"`
	DatabaseDriver   string          `json:"database_driver"`
	DatabaseDSN      string          `json:"database_dsn"`
	SecretKey        string          `json:"secret_key"`
	TokenTTL         *timex.Duration `json:"token_ttl"`
	HashAlgorithm    string          `json:"hash_algorithm"`
	BcryptCost       int             `json:"bcrypt_cost"`
	Argon2Time       uint32          `json:"argon2_time"`
	Argon2MemoryKiB  uint32          `json:"argon2_memory_kib"`
	Argon2Threads    uint8           `json:"argon2_threads"`
	StrictTokenCheck *bool           `json:"strict_token_check"`
	LogLevel         string          `json:"log_level"`
}

// parseJSON loads the file named by -c/-config in args, if any. Only keys
// present in the file override config.
func parseJSON(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.HashAlgorithm, c.HashAlgorithm)
	setString(&config.LogLevel, c.LogLevel)

	if c.TokenTTL != nil {
		config.TokenTTL = c.TokenTTL.Duration
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.Argon2Time != 0 {
		config.Argon2Time = c.Argon2Time
	}
	if c.Argon2MemoryKiB != 0 {
		config.Argon2MemoryKiB = c.Argon2MemoryKiB
	}
	if c.Argon2Threads != 0 {
		config.Argon2Threads = c.Argon2Threads
	}
	if c.StrictTokenCheck != nil {
		config.StrictTokenCheck = *c.StrictTokenCheck
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
