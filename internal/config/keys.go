package config

const (
	KeyOpenAIAPIKey    = "openai_api_key"
	KeyGitHubToken     = "github_token"
	KeyLogLevel        = "log_level"
	KeyTextModel       = "openai_model"
	KeyMaxTokens       = "openai_max_tokens"
	KeyTemperature     = "openai_temperature"
	KeyLLMCallTimeout  = "llm_call_timeout"
	KeyImageModel      = "image_model"
	KeyImageSize       = "image_size"
	KeyImageDir        = "image_dir"
	KeyDownloadTimeout = "image_download_timeout"
	KeySearchAPIKey    = "search_api_key"
	KeySearchEndpoint  = "search_api_url"
	KeySearchCount     = "search_result_count"
)
