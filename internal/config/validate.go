package config

import (
	"errors"
	"fmt"
)

func (c *Config) Validate() error {
	// Database config
	if c.Database.Primary.DSN == "" {
		return errors.New("database.primary.dsn is required")
	}

	// Redis config
	if c.Redis.Address == "" {
		return errors.New("redis.address is required")
	}

	// Worker config
	if c.Worker.Concurrency <= 0 {
		return errors.New("worker.concurrency must be a positive integer")
	}
	if len(c.Worker.Queues) == 0 {
		return errors.New("worker.queues must define at least one queue")
	}
	for name, priority := range c.Worker.Queues {
		if name == "" {
			return errors.New("worker.queues contains an empty queue name")
		}
		if priority <= 0 {
			return fmt.Errorf("worker.queues priority for queue '%s' must be positive", name)
		}
	}

	// Server config
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}

	// Categorization config
	cat := c.Categorization
	if cat.VisibilityThreshold <= 0 || cat.VisibilityThreshold >= 1 {
		return fmt.Errorf("categorization.visibility_threshold (%.2f) must be in (0, 1)", cat.VisibilityThreshold)
	}
	if cat.AutoAssignThreshold <= 0 || cat.AutoAssignThreshold >= 1 {
		return fmt.Errorf("categorization.auto_assign_threshold (%.2f) must be in (0, 1)", cat.AutoAssignThreshold)
	}
	if cat.AutoAssignThreshold < cat.VisibilityThreshold {
		return errors.New("categorization.auto_assign_threshold must not be below visibility_threshold")
	}
	if cat.ReviewSuggestions <= 0 {
		return errors.New("categorization.review_suggestions must be a positive integer")
	}
	if cat.HistorySize <= 0 {
		return errors.New("categorization.history_size must be a positive integer")
	}
	if cat.BatchLimit < 0 {
		return errors.New("categorization.batch_limit must not be negative")
	}

	// Log config
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format '%s' must be 'text' or 'json'", c.Log.Format)
	}

	return nil
}
