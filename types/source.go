package types

const DefaultAuthHeader = "Authorization"

type SourceConfig struct {
	URL        string
	APIKey     string
	AuthHeader string
}

func (config SourceConfig) AuthHeaderName() string {
	if config.AuthHeader == "" {
		return DefaultAuthHeader
	}
	return config.AuthHeader
}
