package config

// Config represents the complete configuration structure
type Config struct {
	IMDb    IMDbConfig    `mapstructure:"imdb"`
	Quiz    QuizConfig    `mapstructure:"quiz"`
	Stats   StatsConfig   `mapstructure:"stats"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// IMDbConfig holds the catalog endpoint details
type IMDbConfig struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
}

// QuizConfig holds round and question-generation settings
type QuizConfig struct {
	QuestionsPerRound int    `mapstructure:"questions_per_round"`
	HonestAnswers     bool   `mapstructure:"honest_answers"`
	Filter            string `mapstructure:"filter"`
}

// StatsConfig holds the statistics database location
type StatsConfig struct {
	Database string `mapstructure:"database"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
