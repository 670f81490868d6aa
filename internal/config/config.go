package config

import (
	"crypto"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/golang-jwt/jwt/v4"
)

const jwtSigningAlgorithmEd25519 = "EdDSA"

type ServerCfg struct {
	Port            int           `env:"SERVER_PORT" envDefault:"3000"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type PostgresCfg struct {
	User        string `env:"POSTGRES_USER"`
	Password    string `env:"POSTGRES_PASSWORD"`
	Host        string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port        int    `env:"POSTGRES_PORT" envDefault:"5432"`
	Database    string `env:"POSTGRES_DB"`
	SslMode     string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	PoolMaxConn int    `env:"POSTGRES_POOL_MAX_CONN" envDefault:"100"`
}

type RedisCfg struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type JwtCfg struct {
	Issuer        string        `env:"AUTH_JWT_ISSUER" envDefault:"salescrm-api"`
	TimeToLive    time.Duration `env:"AUTH_JWT_TIME_TO_LIVE" envDefault:"10m"`
	SigningMethod jwt.SigningMethod
	PrivateKey    crypto.PrivateKey
	PublicKey     crypto.PublicKey
}

type RefreshTokenCfg struct {
	MaxCount   int           `env:"AUTH_REFRESH_TOKEN_MAX_COUNT" envDefault:"5"`
	TimeToLive time.Duration `env:"AUTH_REFRESH_TOKEN_TIME_TO_LIVE" envDefault:"720h"`
}

type AuthCfg struct {
	JwtCfg          JwtCfg
	RefreshTokenCfg RefreshTokenCfg
}

type JobCfg struct {
	RecycleSweepInterval time.Duration `env:"POOL_RECYCLE_SWEEP_INTERVAL" envDefault:"1h"`
}

type Config struct {
	ServerCfg   ServerCfg
	PostgresCfg PostgresCfg
	RedisCfg    RedisCfg
	AuthCfg     AuthCfg
	JobCfg      JobCfg
}

// Build parses configuration from environment variables and loads the
// Ed25519 key pair used for signing and verifying access tokens.
func Build() (Config, error) {
	var cfg Config
	opts := env.Options{RequiredIfNoDef: true}

	if err := env.Parse(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("failed to parse environment variables - %w", err)
	}

	cfg.AuthCfg.JwtCfg.SigningMethod = jwt.GetSigningMethod(jwtSigningAlgorithmEd25519)

	privateKeyBytes, err := os.ReadFile(os.Getenv("AUTH_JWT_PRIVATE_KEY_FILE"))
	if err != nil {
		return cfg, fmt.Errorf("failed to read private key file for jwt - %w", err)
	}

	privateKey, err := jwt.ParseEdPrivateKeyFromPEM(privateKeyBytes)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse private key for jwt - %w", err)
	}
	cfg.AuthCfg.JwtCfg.PrivateKey = privateKey

	publicKeyBytes, err := os.ReadFile(os.Getenv("AUTH_JWT_PUBLIC_KEY_FILE"))
	if err != nil {
		return cfg, fmt.Errorf("failed to read public key file for jwt - %w", err)
	}

	publicKey, err := jwt.ParseEdPublicKeyFromPEM(publicKeyBytes)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse public key for jwt - %w", err)
	}
	cfg.AuthCfg.JwtCfg.PublicKey = publicKey

	return cfg, nil
}
