package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	LLM         LLMConfig
	Embedding   EmbeddingConfig
	VectorStore VectorStoreConfig `mapstructure:"vector_store"`
	Chunking    ChunkingConfig
	Store       StoreConfig
	Server      ServerConfig
	Log         LogConfig
}

// LLMConfig holds the generation backend configuration
type LLMConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// EmbeddingConfig holds the embedding backend configuration
type EmbeddingConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// VectorStoreConfig holds the Qdrant connection details
type VectorStoreConfig struct {
	URL            string `mapstructure:"url"`
	APIKey         string `mapstructure:"api_key"`
	Collection     string `mapstructure:"collection"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// ChunkingConfig controls how documents are split before embedding
type ChunkingConfig struct {
	ChunkSize    int `mapstructure:"chunk_size"`
	ChunkOverlap int `mapstructure:"chunk_overlap"`
}

// StoreConfig holds the conversation database configuration. Path is
// the sqlite file used by the API server; APIURL is where the chat
// client reaches that server.
type StoreConfig struct {
	Path   string `mapstructure:"path"`
	APIURL string `mapstructure:"api_url"`
}

// ServerConfig holds the server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// LogConfig holds the logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Timeout returns the bound applied to generation calls.
func (c LLMConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Timeout returns the bound applied to embedding calls.
func (c EmbeddingConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Timeout returns the bound applied to vector store calls.
func (c VectorStoreConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load loads the configuration from config.yaml in the working
// directory, or from the file named by CONFIG_PATH. A .env file is
// loaded first so credentials can live outside the config file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetDefault("llm.base_url", "https://api.openai.com/v1")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("embedding.base_url", "https://api.openai.com/v1")
	v.SetDefault("embedding.model", "text-embedding-3-small")
	v.SetDefault("vector_store.url", "http://localhost:6333")
	v.SetDefault("vector_store.collection", "student_code_collection")
	v.SetDefault("chunking.chunk_size", 1000)
	v.SetDefault("chunking.chunk_overlap", 200)
	v.SetDefault("store.path", "chat_history.db")
	v.SetDefault("store.api_url", "http://localhost:5000")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "5000")
	v.SetDefault("log.level", "info")

	_ = v.BindEnv("llm.api_key", "LLM_API_KEY")
	_ = v.BindEnv("embedding.api_key", "EMBEDDING_API_KEY")
	_ = v.BindEnv("vector_store.api_key", "QDRANT_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.Embedding.APIKey == "" {
		config.Embedding.APIKey = config.LLM.APIKey
	}

	return &config, nil
}

// ValidateLLM reports whether the generation backend is usable. A
// missing credential is fatal at startup rather than at first call.
func (c *Config) ValidateLLM() error {
	if c.LLM.APIKey == "" {
		return errors.New("missing LLM API key: set llm.api_key or LLM_API_KEY")
	}
	return nil
}

// ValidateEmbedding reports whether the embedding backend is usable.
func (c *Config) ValidateEmbedding() error {
	if c.Embedding.APIKey == "" {
		return errors.New("missing embedding API key: set embedding.api_key or EMBEDDING_API_KEY")
	}
	return nil
}
