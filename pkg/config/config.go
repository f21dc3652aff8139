package config

import (
	"time"

	"github.com/shopspring/decimal"
)

type DB struct {
	Url             string        `envconfig:"URL"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"25"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"1h"`
	AutoMigrate     bool          `envconfig:"AUTO_MIGRATE" default:"true"`
}

// Redis backs the rate limiter when URL is set; otherwise limiter state is in memory.
type Redis struct {
	URL       string `envconfig:"URL"`
	KeyPrefix string `envconfig:"KEY_PREFIX" default:"bankaccount:"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Cors struct {
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:4200"`
	AllowedMethods string `envconfig:"ALLOWED_METHODS" default:"GET,POST,PUT,DELETE,OPTIONS"`
	MaxAge         int    `envconfig:"MAX_AGE" default:"3600"`
}

// Kafka publishing is disabled when Brokers is empty.
type Kafka struct {
	Brokers []string `envconfig:"BROKERS"`
	Topic   string   `envconfig:"TOPIC" default:"bank-account.transactions"`
}

type Ledger struct {
	StatementWindow            time.Duration   `envconfig:"STATEMENT_WINDOW" default:"720h"`
	DefaultSavingsDepositLimit decimal.Decimal `envconfig:"DEFAULT_SAVINGS_DEPOSIT_LIMIT" default:"22950"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[bankaccount]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	Redis     *Redis     `envconfig:"REDIS"`
	Cors      *Cors      `envconfig:"CORS"`
	Kafka     *Kafka     `envconfig:"KAFKA"`
	Ledger    *Ledger    `envconfig:"LEDGER"`
}
