package errorsx

// ReasonCode is a short machine-readable error reason.
type ReasonCode string

const (
	ReasonUnknown ReasonCode = "unknown"

	ReasonConfig ReasonCode = "config"

	ReasonWeatherCredential ReasonCode = "weather_credential"
	ReasonWeatherHTTP       ReasonCode = "weather_http"
	ReasonWeatherTransport  ReasonCode = "weather_transport"
	ReasonWeatherDecode     ReasonCode = "weather_decode"

	ReasonSearchHTTP      ReasonCode = "search_http"
	ReasonSearchTransport ReasonCode = "search_transport"
	ReasonSearchParse     ReasonCode = "search_parse"

	ReasonLLMGenerate ReasonCode = "llm_generate"
	ReasonLLMLoop     ReasonCode = "llm_loop"
)
