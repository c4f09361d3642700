// pkg/registry/schema.go
package registry

// ActivityRegistry is the catalogue of BPMN service tasks the fanclub
// workers implement, written to configs/activity-registry.json for
// process modellers.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

type Activity struct {
	ID           string      `json:"id"`
	DisplayName  string      `json:"displayName"`
	Description  string      `json:"description"`
	Category     string      `json:"category"` // listener | artist | communication
	Version      string      `json:"version"`
	TaskType     string      `json:"taskType"`
	InputSchema  interface{} `json:"inputSchema"`
	OutputSchema interface{} `json:"outputSchema"`
	ErrorCodes   []string    `json:"errorCodes"`
	Timeout      string      `json:"timeout"`
	Retries      int         `json:"retries"`
	Tags         []string    `json:"tags"`
}
