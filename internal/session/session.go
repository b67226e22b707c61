// pattern: Functional Core

package session

import (
	"gitship/internal/probe"
)

// State identifies the last completed transition of the publish
// workflow. States are ordered; a session at a later state implies all
// earlier transitions are satisfied.
type State string

const (
	StateStart            State = "start"
	StateIdentityChecked  State = "identity_checked"
	StateRepoInitialized  State = "repo_initialized"
	StateRemoteLinked     State = "remote_linked"
	StateCommitted        State = "committed"
	StatePushed           State = "pushed"
	StateHistoryExtracted State = "history_extracted"
	StateVisualized       State = "visualized"
	StateDone             State = "done"
)

// stateOrder maps each state to its position in the workflow.
var stateOrder = map[State]int{
	StateStart:            0,
	StateIdentityChecked:  1,
	StateRepoInitialized:  2,
	StateRemoteLinked:     3,
	StateCommitted:        4,
	StatePushed:           5,
	StateHistoryExtracted: 6,
	StateVisualized:       7,
	StateDone:             8,
}

// Reached reports whether s is at or past other in workflow order.
// Unknown states compare as StateStart.
func (s State) Reached(other State) bool {
	return stateOrder[s] >= stateOrder[other]
}

// Session is the durable record of one working tree's publish intent.
// It is loaded at the start of every run and persisted after each
// transition that makes a durable decision.
type Session struct {
	ProjectPath       string              `yaml:"project_path"`
	RepoName          string              `yaml:"repo_name"`
	DefaultBranch     string              `yaml:"default_branch"`
	RemoteName        string              `yaml:"remote_name"`
	LastCommitMessage string              `yaml:"last_commit_message"`
	PushedBranch      string              `yaml:"pushed_branch"`
	State             State               `yaml:"state"`
	Capabilities      probe.CapabilitySet `yaml:"capabilities"`
}

// Empty returns a fresh Session with defaults applied.
func Empty() Session {
	return Session{
		DefaultBranch: "main",
		RemoteName:    "origin",
		State:         StateStart,
	}
}

// applyDefaults fills in zero fields after a load, so sessions written
// by older versions (or hand-edited) still validate.
func (s *Session) applyDefaults() {
	if s.DefaultBranch == "" {
		s.DefaultBranch = "main"
	}
	if s.RemoteName == "" {
		s.RemoteName = "origin"
	}
	if s.State == "" {
		s.State = StateStart
	}
}
