package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-staking-api/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// ChainConfig holds the EVM node configuration
type ChainConfig struct {
	RPCURL              string        `mapstructure:"rpc_url"`
	ChainID             domain.Chain  `mapstructure:"chain_id"`
	ReceiptPollInterval time.Duration `mapstructure:"receipt_poll_interval"`
}

// ContractsConfig holds the staking and NFT contract addresses
type ContractsConfig struct {
	StakingAddress string `mapstructure:"staking_address"`
	NFTAddress     string `mapstructure:"nft_address"`
}

// ExplorerConfig holds the block explorer (Etherscan-compatible) API configuration
type ExplorerConfig struct {
	APIURL       string        `mapstructure:"api_url"`
	APIKey       string        `mapstructure:"api_key"`
	ChainID      uint64        `mapstructure:"chain_id"` // sent as chainid when non-zero (Etherscan v2 multichain API)
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxRetryTime time.Duration `mapstructure:"max_retry_time"` // total backoff budget for 429 responses, 0 disables retries
	RateLimit    float64       `mapstructure:"rate_limit"`     // requests per second, 0 disables pacing
}

// SignerConfig holds the key used for staking write passthroughs
type SignerConfig struct {
	PrivateKey string `mapstructure:"private_key"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig    `mapstructure:"server"`
	Chain      ChainConfig     `mapstructure:"chain"`
	Contracts  ContractsConfig `mapstructure:"contracts"`
	Explorer   ExplorerConfig  `mapstructure:"explorer"`
	Signer     SignerConfig    `mapstructure:"signer"`
	Auth       AuthConfig      `mapstructure:"auth"`
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("chain.chain_id", string(domain.ChainBSCTestnet))
	v.SetDefault("chain.receipt_poll_interval", "2s")
	v.SetDefault("explorer.api_url", "https://api-testnet.bscscan.com/api")
	v.SetDefault("explorer.timeout", "30s")
	v.SetDefault("explorer.max_retry_time", "0s")
	v.SetDefault("explorer.rate_limit", 5)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate checks the fields the API cannot run without
func (c *APIConfig) Validate() error {
	if c.Chain.RPCURL == "" {
		return errors.New("chain.rpc_url is required")
	}
	if !domain.IsValidChain(c.Chain.ChainID) {
		return fmt.Errorf("chain.chain_id is invalid: %q", c.Chain.ChainID)
	}
	if !common.IsHexAddress(c.Contracts.StakingAddress) {
		return fmt.Errorf("contracts.staking_address is invalid: %q", c.Contracts.StakingAddress)
	}
	if !common.IsHexAddress(c.Contracts.NFTAddress) {
		return fmt.Errorf("contracts.nft_address is invalid: %q", c.Contracts.NFTAddress)
	}
	if c.Explorer.APIURL == "" {
		return errors.New("explorer.api_url is required")
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("FF_STAKING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Chain
		"chain.rpc_url",
		"chain.chain_id",
		"chain.receipt_poll_interval",
		// Contracts
		"contracts.staking_address",
		"contracts.nft_address",
		// Explorer
		"explorer.api_url",
		"explorer.api_key",
		"explorer.chain_id",
		"explorer.timeout",
		"explorer.max_retry_time",
		"explorer.rate_limit",
		// Signer
		"signer.private_key",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		_ = godotenv.Overload(filepath.Join(envPath, envFile)) // later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}
