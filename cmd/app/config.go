package main

import "github.com/spf13/viper"

type Config struct {
	Port        string `mapstructure:"PORT"`
	Environment string `mapstructure:"ENVIRONMENT"`
	Version     string `mapstructure:"VERSION"`

	// FrontendOrigin is the single origin allowed to make credentialed
	// cross-origin requests.
	FrontendOrigin string `mapstructure:"FRONTEND_ORIGIN"`

	DBHost     string `mapstructure:"POSTGRES_HOST"`
	DBPort     string `mapstructure:"POSTGRES_PORT"`
	DBUser     string `mapstructure:"POSTGRES_USER"`
	DBPassword string `mapstructure:"POSTGRES_PASSWORD"`
	DBName     string `mapstructure:"POSTGRES_DB"`

	// RedisAddr selects the Redis session store when set; sessions live in
	// process memory otherwise.
	RedisAddr string `mapstructure:"REDIS_ADDR"`

	UploadDir string `mapstructure:"UPLOAD_DIR"`

	MediaCloudName string `mapstructure:"MEDIA_CLOUD_NAME"`
	MediaAPIKey    string `mapstructure:"MEDIA_API_KEY"`
	MediaAPISecret string `mapstructure:"MEDIA_API_SECRET"`
}

func loadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.UploadDir == "" {
		config.UploadDir = "uploads"
	}

	return &config, nil
}
