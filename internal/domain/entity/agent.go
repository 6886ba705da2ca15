package entity

import "time"

type AgentMode string

const (
	// AgentModePipeline always runs every tool, then asks the model to write the answer.
	AgentModePipeline AgentMode = "pipeline"
	// AgentModeAgent lets the model choose which tools to call.
	AgentModeAgent AgentMode = "agent"
)

func (m AgentMode) Valid() bool {
	return m == AgentModePipeline || m == AgentModeAgent
}

// AgentResponse is the structured result of one run, dumped to disk as JSON.
type AgentResponse struct {
	RunID             string       `json:"run_id"`
	Mode              AgentMode    `json:"mode"`
	Destination       string       `json:"destination"`
	Input             string       `json:"input"`
	Output            string       `json:"output"`
	IntermediateSteps []ToolResult `json:"intermediate_steps"`
	Iterations        int          `json:"iterations"`
	StartedAt         time.Time    `json:"started_at"`
	FinishedAt        time.Time    `json:"finished_at"`
}

// Called reports whether the trace contains at least one invocation of name.
func (r *AgentResponse) Called(name ToolName) bool {
	for _, step := range r.IntermediateSteps {
		if step.Tool == name {
			return true
		}
	}
	return false
}
