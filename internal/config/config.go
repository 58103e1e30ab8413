package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Extractor ExtractorConfig `yaml:"extractor"`
	Rates     RatesConfig     `yaml:"rates"`
	Store     StoreConfig     `yaml:"store"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Server    ServerConfig    `yaml:"server"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrationsDir   string        `yaml:"migrations_dir"     env:"DATABASE_MIGRATIONS_DIR"     env-default:"./migrations"`
}

// ServerConfig holds the probe endpoint of long-running commands.
// An empty HealthAddr disables it.
type ServerConfig struct {
	HealthAddr      string        `yaml:"health_addr"      env:"SERVER_HEALTH_ADDR"      env-default:":8081"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"15s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// KafkaConfig holds the inbound stream and dead-letter settings.
type KafkaConfig struct {
	Brokers   []string      `yaml:"brokers"    env:"KAFKA_BROKERS"    env-separator:"," env-default:"localhost:9092"`
	Topic     string        `yaml:"topic"      env:"KAFKA_TOPIC"      env-default:"vacancy.messages"`
	GroupID   string        `yaml:"group_id"   env:"KAFKA_GROUP_ID"   env-default:"vacancy-normalizer"`
	DLQTopic  string        `yaml:"dlq_topic"  env:"KAFKA_DLQ_TOPIC"  env-default:"vacancy.messages.dlq"`
	BatchSize int           `yaml:"batch_size" env:"KAFKA_BATCH_SIZE" env-default:"16"`
	BatchWait time.Duration `yaml:"batch_wait" env:"KAFKA_BATCH_WAIT" env-default:"250ms"`
	MinBytes  int           `yaml:"min_bytes"  env:"KAFKA_MIN_BYTES"  env-default:"1"`
	MaxBytes  int           `yaml:"max_bytes"  env:"KAFKA_MAX_BYTES"  env-default:"10485760"`
}

// ExtractorConfig holds the LLM extraction client settings.
type ExtractorConfig struct {
	APIKey    string        `yaml:"-"          env:"ANTHROPIC_API_KEY"`
	Model     string        `yaml:"model"      env:"EXTRACTOR_MODEL"      env-default:"claude-opus-4-6"`
	MaxTokens int64         `yaml:"max_tokens" env:"EXTRACTOR_MAX_TOKENS" env-default:"1024"`
	RPS       float64       `yaml:"rps"        env:"EXTRACTOR_RPS"        env-default:"2"`
	Burst     int           `yaml:"burst"      env:"EXTRACTOR_BURST"      env-default:"2"`
	Timeout   time.Duration `yaml:"timeout"    env:"EXTRACTOR_TIMEOUT"    env-default:"60s"`
}

// RatesConfig holds the exchange-rate source settings.
type RatesConfig struct {
	BaseURL      string        `yaml:"base_url"      env:"RATES_BASE_URL"      env-default:"https://cbu.uz"`
	Timeout      time.Duration `yaml:"timeout"       env:"RATES_TIMEOUT"       env-default:"10s"`
	Attempts     int           `yaml:"attempts"      env:"RATES_ATTEMPTS"      env-default:"3"`
	Backoff      time.Duration `yaml:"backoff"       env:"RATES_BACKOFF"       env-default:"500ms"`
	CacheSize    int           `yaml:"cache_size"    env:"RATES_CACHE_SIZE"    env-default:"64"`
	SyncSchedule time.Duration `yaml:"sync_schedule" env:"RATES_SYNC_SCHEDULE" env-default:"24h"`
}

// StoreConfig holds the reconnect-and-retry budget for store operations.
type StoreConfig struct {
	RetryAttempts int           `yaml:"retry_attempts" env:"STORE_RETRY_ATTEMPTS" env-default:"3"`
	RetryBackoff  time.Duration `yaml:"retry_backoff"  env:"STORE_RETRY_BACKOFF"  env-default:"2s"`
}

// PipelineConfig holds normalization thresholds and message handling knobs.
type PipelineConfig struct {
	Channels            []string `yaml:"channels"               env:"PIPELINE_CHANNELS"               env-separator:","`
	Workers             int      `yaml:"workers"                env:"PIPELINE_WORKERS"                env-default:"4"`
	DuplicateWindowDays int      `yaml:"duplicate_window_days"  env:"PIPELINE_DUPLICATE_WINDOW_DAYS"  env-default:"30"`
	DedupFailOpen       bool     `yaml:"dedup_fail_open"        env:"PIPELINE_DEDUP_FAIL_OPEN"        env-default:"false"`
	MinPlausibleSalary  int64    `yaml:"min_plausible_salary"   env:"PIPELINE_MIN_PLAUSIBLE_SALARY"   env-default:"50"`
	LocalBaseUnits      int64    `yaml:"local_base_units"       env:"PIPELINE_LOCAL_BASE_UNITS"       env-default:"50000"`
	SkipClassify        bool     `yaml:"skip_classify"          env:"PIPELINE_SKIP_CLASSIFY"          env-default:"false"`
	MaxConflictRetries  int      `yaml:"max_conflict_retries"   env:"PIPELINE_MAX_CONFLICT_RETRIES"   env-default:"3"`

	ProcessTimeout time.Duration `yaml:"process_timeout" env:"PIPELINE_PROCESS_TIMEOUT" env-default:"2m"`

	// BoilerplateMarkers and RequiredPrefixes are keyed by source and only
	// come from YAML. Nil means built-in defaults.
	BoilerplateMarkers map[string]string `yaml:"boilerplate_markers"`
	RequiredPrefixes   map[string]string `yaml:"required_prefixes"`
}

// DuplicateWindow returns the trailing duplicate window.
func (p PipelineConfig) DuplicateWindow() time.Duration {
	return time.Duration(p.DuplicateWindowDays) * 24 * time.Hour
}
