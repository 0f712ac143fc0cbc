package config

import "os"

// Config holds the service's environment-driven settings
type Config struct {
	MongoURI  string
	MongoDB   string
	RedisAddr string
	Port      string
	JWTSecret string
	// QuizTimezone is the reference zone for quiz timestamps sent without
	// zone information.
	QuizTimezone string
}

// Load reads configuration from the environment
func Load() *Config {
	return &Config{
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      getEnv("MONGO_DB", "quintz"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		Port:         getEnv("PORT", "5001"),
		JWTSecret:    getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
		QuizTimezone: getEnv("QUIZ_TZ", "Asia/Kolkata"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
