// internal/workers/remedy/generate-clarification-questions/config.go
package generatequestions

import "remedypedia/internal/common/config"

type Config struct {
	Enabled     bool
	Model       string
	Temperature float64
	MaxTokens   int
}

func LoadConfig(appCfg *config.Config) *Config {
	if appCfg == nil {
		appCfg = &config.Config{}
	}
	op := config.GetOperationConfig(appCfg, TaskType)
	return &Config{
		Enabled:     op.Enabled,
		Model:       op.Model,
		Temperature: op.Temperature,
		MaxTokens:   op.MaxTokens,
	}
}
