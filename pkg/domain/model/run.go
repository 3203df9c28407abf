package model

import (
	"path/filepath"
	"strings"
)

const (
	// DefaultTemplateName is used until a run provides a job template name
	DefaultTemplateName = "Ansible Job"

	// TemplateNameVar is the play variable holding the job template name
	TemplateNameVar = "tower_job_template_name"
)

// RunContext is the flat view of a play that the host runtime hands to the
// play start hook.
type RunContext struct {
	TemplateName string   `json:"template_name,omitempty"`
	PlaybookName string   `json:"playbook_name,omitempty"`
	HostListPath string   `json:"host_list,omitempty"`
	SkipTags     []string `json:"skip_tags,omitempty"`
}

// NewRunContext builds a RunContext from the raw shapes a host runtime
// usually has at hand: the play variables and the playbook file path.
func NewRunContext(vars map[string]any, playbookFile, hostList string, skipTags []string) RunContext {
	run := RunContext{
		PlaybookName: PlaybookBaseName(playbookFile),
		HostListPath: hostList,
		SkipTags:     skipTags,
	}

	if name, ok := vars[TemplateNameVar].(string); ok {
		run.TemplateName = name
	}

	return run
}

// PlaybookBaseName returns the file name of path without its extension
func PlaybookBaseName(path string) string {
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// InventoryName returns the base name of the host list path after resolving
// symlinks. Unresolvable paths fall back to their lexical base name.
func InventoryName(hostList string) string {
	if hostList == "" {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(hostList); err == nil {
		hostList = resolved
	}
	return filepath.Base(hostList)
}

// RunIdentity is what the sink remembers about the current run
type RunIdentity struct {
	TemplateName string
	PlaybookName string
	Inventory    string
	SkipTags     []string
}
