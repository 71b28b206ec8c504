package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Init binds environment variables, an optional .env file, and the root
// command's flags into viper. Call once before reading any config value.
func Init(root *cobra.Command) {
	viper.AutomaticEnv()
	_ = godotenv.Load()
	if root != nil {
		_ = viper.BindPFlags(root.Flags())
	}
	setDefaults()
}

func setDefaults() {
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyTextModel, "gpt-4")
	viper.SetDefault(KeyMaxTokens, 2000)
	viper.SetDefault(KeyTemperature, 0.7)
	viper.SetDefault(KeyLLMCallTimeout, 2*time.Minute)
	viper.SetDefault(KeyImageModel, "dall-e-3")
	viper.SetDefault(KeyImageSize, "1024x1024")
	viper.SetDefault(KeyImageDir, "images")
	viper.SetDefault(KeyDownloadTimeout, 30*time.Second)
	viper.SetDefault(KeySearchEndpoint, "https://api.search.brave.com/res/v1/web/search")
	viper.SetDefault(KeySearchCount, 5)
}

// MissingKeyError reports a required configuration value that was not set.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("required configuration %q is not set (set the %s environment variable)",
		e.Key, strings.ToUpper(e.Key))
}

// Validate checks the values the tool cannot run without.
func Validate() error {
	if OpenAIAPIKey() == "" {
		return &MissingKeyError{Key: KeyOpenAIAPIKey}
	}
	return nil
}

func OpenAIAPIKey() string           { return viper.GetString(KeyOpenAIAPIKey) }
func GitHubToken() string            { return viper.GetString(KeyGitHubToken) }
func LogLevel() string               { return viper.GetString(KeyLogLevel) }
func TextModel() string              { return viper.GetString(KeyTextModel) }
func MaxTokens() int                 { return viper.GetInt(KeyMaxTokens) }
func Temperature() float64           { return viper.GetFloat64(KeyTemperature) }
func LLMCallTimeout() time.Duration  { return viper.GetDuration(KeyLLMCallTimeout) }
func ImageModel() string             { return viper.GetString(KeyImageModel) }
func ImageSize() string              { return viper.GetString(KeyImageSize) }
func ImageDir() string               { return viper.GetString(KeyImageDir) }
func DownloadTimeout() time.Duration { return viper.GetDuration(KeyDownloadTimeout) }
func SearchAPIKey() string           { return viper.GetString(KeySearchAPIKey) }
func SearchEndpoint() string         { return viper.GetString(KeySearchEndpoint) }
func SearchResultCount() int         { return viper.GetInt(KeySearchCount) }
