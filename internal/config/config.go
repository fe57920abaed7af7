// ABOUTME: Configuration loader for the hwVisualiser tool
// ABOUTME: Loads settings from a .env file and environment variables with defaults

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Serve mode
	Port     string
	CacheTTL int // seconds, hierarchy parse cache

	// Diagram generation
	MaxAppsPerGroup  int // component cap per application group
	MaxUnmatchedApps int // component cap inside the unmatched bucket

	// External renderer
	JavaBin       string
	PlantUMLJar   string // empty means use the plantuml binary on PATH
	PlantUMLBin   string
	RenderTimeout int // seconds
}

// Load reads configuration from the environment, first merging in a .env
// file when one exists (a missing file is not an error).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("HWVIZ_PORT", "8080"),
		CacheTTL: getEnvInt("HWVIZ_CACHE_TTL", 30),

		MaxAppsPerGroup:  getEnvInt("HWVIZ_MAX_APPS_PER_GROUP", 10),
		MaxUnmatchedApps: getEnvInt("HWVIZ_MAX_UNMATCHED_APPS", 5),

		JavaBin:       getEnv("HWVIZ_JAVA_BIN", "java"),
		PlantUMLJar:   os.Getenv("HWVIZ_PLANTUML_JAR"),
		PlantUMLBin:   getEnv("HWVIZ_PLANTUML_BIN", "plantuml"),
		RenderTimeout: getEnvInt("HWVIZ_RENDER_TIMEOUT", 120),
	}

	for _, v := range []struct {
		name  string
		value int
	}{
		{"HWVIZ_CACHE_TTL", cfg.CacheTTL},
		{"HWVIZ_MAX_APPS_PER_GROUP", cfg.MaxAppsPerGroup},
		{"HWVIZ_MAX_UNMATCHED_APPS", cfg.MaxUnmatchedApps},
		{"HWVIZ_RENDER_TIMEOUT", cfg.RenderTimeout},
	} {
		if v.value < 1 || v.value > 100000 {
			return nil, fmt.Errorf("%s must be between 1 and 100000, got %d", v.name, v.value)
		}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
