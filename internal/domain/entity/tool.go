package entity

type ToolName string

const (
	ToolGetWeather        ToolName = "get_weather"
	ToolSearchAttractions ToolName = "search_attractions"
)

func (t ToolName) String() string {
	return string(t)
}
