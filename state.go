package tuidrive

// Status is the lifecycle state of an instance as shown on screen.
type Status int

const (
	StatusUnknown Status = iota
	StatusRunning
	StatusReady
	StatusPaused
	StatusStopped
)

var statusNames = map[Status]string{
	StatusUnknown: "unknown",
	StatusRunning: "running",
	StatusReady:   "ready",
	StatusPaused:  "paused",
	StatusStopped: "stopped",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// ActiveTab identifies the tab selected in the content pane.
type ActiveTab string

const (
	TabPreview ActiveTab = "preview"
	TabDiff    ActiveTab = "diff"
	TabConsole ActiveTab = "console"
)

// GitStats holds the added/removed line counts shown next to an instance.
type GitStats struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

// InstanceInfo describes one entry of the instance list panel.
//
// Index is assigned in row-scan order starting at 0. It is stable only while
// the underlying list is unchanged between two captures; it is not a
// persistent identifier.
type InstanceInfo struct {
	Index   int      `json:"index"`
	Name    string   `json:"name"`
	Status  Status   `json:"status"`
	Project string   `json:"project,omitempty"`
	Branch  string   `json:"branch"`
	Stats   GitStats `json:"git_stats"`
}

// ScreenState is the structured view reconstructed from one screen snapshot.
// It is recomputed on demand, never cached across calls, and carries no
// hidden state.
type ScreenState struct {
	Instances    []InstanceInfo `json:"instances"`
	Selected     int            `json:"selected_instance"`
	Tab          ActiveTab      `json:"current_tab"`
	TabContent   string         `json:"tab_content"`
	MenuItems    []string       `json:"menu_items"`
	ErrorMessage string         `json:"error_message,omitempty"`
}
