package replay

// Report is the outcome of a scenario run
type Report struct {
	RunID     string           `json:"runId"`
	Scenario  string           `json:"scenario,omitempty"`
	Steps     int              `json:"steps"`
	Viewports []ViewportReport `json:"viewports"`
	Groups    []GroupReport    `json:"groups"`
	Failures  []LoadFailure    `json:"failures,omitempty"`
}

// ViewportReport is the final state of one viewport
type ViewportReport struct {
	ID       string `json:"id"`
	Enabled  bool   `json:"enabled"`
	Index    int    `json:"index"`
	ImageID  string `json:"imageId,omitempty"`
	Displays int    `json:"displays"`
}

// GroupReport is the final state of one synchronizer
type GroupReport struct {
	Name      string   `json:"name"`
	Enabled   bool     `json:"enabled"`
	Sources   []string `json:"sources"`
	Targets   []string `json:"targets"`
	Distances int      `json:"distances"`
}

// LoadFailure is an image load reported through the error hook
type LoadFailure struct {
	Viewport string `json:"viewport"`
	ImageID  string `json:"imageId"`
	Error    string `json:"error"`
}

// Viewport returns the report of the viewport with the given id
func (r *Report) Viewport(id string) (ViewportReport, bool) {
	for _, vp := range r.Viewports {
		if vp.ID == id {
			return vp, true
		}
	}
	return ViewportReport{}, false
}

// Group returns the report of the group with the given name
func (r *Report) Group(name string) (GroupReport, bool) {
	for _, g := range r.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return GroupReport{}, false
}
