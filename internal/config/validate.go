package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Pipeline.validate(); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	if err := c.Store.validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := c.Rates.validate(); err != nil {
		return fmt.Errorf("rates: %w", err)
	}
	if c.Kafka.BatchSize <= 0 {
		return fmt.Errorf("kafka: batch_size must be > 0 (got %d)", c.Kafka.BatchSize)
	}
	return nil
}

// ValidateIngest checks the settings only the stream consumer needs.
func (c *Config) ValidateIngest() error {
	if c.Extractor.APIKey == "" {
		return errors.New("extractor: ANTHROPIC_API_KEY is required")
	}
	if len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "" || c.Kafka.GroupID == "" {
		return errors.New("kafka: brokers, topic and group_id are required")
	}
	if len(c.Pipeline.Channels) == 0 {
		return errors.New("pipeline: at least one channel is required")
	}
	return nil
}

func (p *PipelineConfig) validate() error {
	if p.Workers <= 0 {
		return fmt.Errorf("workers must be > 0 (got %d)", p.Workers)
	}
	if p.DuplicateWindowDays < 0 {
		return fmt.Errorf("duplicate_window_days must be >= 0 (got %d)", p.DuplicateWindowDays)
	}
	if p.MinPlausibleSalary < 0 {
		return fmt.Errorf("min_plausible_salary must be >= 0 (got %d)", p.MinPlausibleSalary)
	}
	if p.LocalBaseUnits <= p.MinPlausibleSalary {
		return fmt.Errorf("local_base_units (%d) must exceed min_plausible_salary (%d)", p.LocalBaseUnits, p.MinPlausibleSalary)
	}
	if p.MaxConflictRetries <= 0 {
		return fmt.Errorf("max_conflict_retries must be > 0 (got %d)", p.MaxConflictRetries)
	}
	return nil
}

func (s *StoreConfig) validate() error {
	if s.RetryAttempts < 0 {
		return fmt.Errorf("retry_attempts must be >= 0 (got %d)", s.RetryAttempts)
	}
	if s.RetryBackoff <= 0 {
		return fmt.Errorf("retry_backoff must be > 0 (got %v)", s.RetryBackoff)
	}
	return nil
}

func (r *RatesConfig) validate() error {
	u, err := url.Parse(r.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url %q is not an absolute URL", r.BaseURL)
	}
	if r.Attempts <= 0 {
		return fmt.Errorf("attempts must be > 0 (got %d)", r.Attempts)
	}
	if r.Backoff <= 0 {
		return fmt.Errorf("backoff must be > 0 (got %v)", r.Backoff)
	}
	if r.CacheSize <= 0 {
		return fmt.Errorf("cache_size must be > 0 (got %d)", r.CacheSize)
	}
	return nil
}
