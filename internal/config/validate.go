package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validatePlan(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.Database == "" {
		return errors.New("paths.database must be set")
	}
	if c.Paths.ReportDir == "" {
		return errors.New("paths.report_dir must be set")
	}
	return nil
}

func (c *Config) validateMatching() error {
	for name, value := range map[string]float64{
		"matching.accept_threshold": c.Matching.AcceptThreshold,
		"matching.plan_threshold":   c.Matching.PlanThreshold,
		"matching.review_floor":     c.Matching.ReviewFloor,
	} {
		if value <= 0 || value > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %v", name, value)
		}
	}
	if c.Matching.ReviewFloor >= c.Matching.AcceptThreshold {
		return errors.New("matching.review_floor must be below matching.accept_threshold")
	}
	if c.Matching.BatchSize <= 0 {
		return errors.New("matching.batch_size must be positive")
	}
	return nil
}

func (c *Config) validatePlan() error {
	if c.Plan.OwnerID <= 0 {
		return errors.New("plan.owner_id must be positive")
	}
	switch c.Plan.Visibility {
	case "private", "public", "school":
		return nil
	default:
		return fmt.Errorf("plan.visibility must be private, public, or school, got %q", c.Plan.Visibility)
	}
}
