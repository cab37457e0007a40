package config

const (
	defaultDatabasePath    = "~/.local/share/relink/records.db"
	defaultLogDir          = "~/.local/share/relink/logs"
	defaultReportDir       = "~/.local/share/relink/reports"
	defaultPlanDir         = "~/.local/share/relink/plans"
	defaultAcceptThreshold = 0.80
	defaultPlanThreshold   = 0.85
	defaultReviewFloor     = 0.5
	defaultBatchSize       = 10
	defaultPlanOwnerID     = 1
	defaultPlanVisibility  = "private"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Database:  defaultDatabasePath,
			LogDir:    defaultLogDir,
			ReportDir: defaultReportDir,
			PlanDir:   defaultPlanDir,
		},
		Matching: Matching{
			AcceptThreshold: defaultAcceptThreshold,
			PlanThreshold:   defaultPlanThreshold,
			ReviewFloor:     defaultReviewFloor,
			BatchSize:       defaultBatchSize,
		},
		Plan: Plan{
			OwnerID:    defaultPlanOwnerID,
			Visibility: defaultPlanVisibility,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
