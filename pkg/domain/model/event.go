package model

// CallbackEvent is the name of a host runtime callback
type CallbackEvent string

const (
	EventOnAny                      CallbackEvent = "on_any"
	EventRunnerOnFailed             CallbackEvent = "runner_on_failed"
	EventRunnerOnOK                 CallbackEvent = "runner_on_ok"
	EventRunnerOnSkipped            CallbackEvent = "runner_on_skipped"
	EventRunnerOnUnreachable        CallbackEvent = "runner_on_unreachable"
	EventRunnerOnNoHosts            CallbackEvent = "runner_on_no_hosts"
	EventRunnerOnAsyncPoll          CallbackEvent = "runner_on_async_poll"
	EventRunnerOnAsyncOK            CallbackEvent = "runner_on_async_ok"
	EventRunnerOnAsyncFailed        CallbackEvent = "runner_on_async_failed"
	EventPlaybookOnStart            CallbackEvent = "playbook_on_start"
	EventPlaybookOnNotify           CallbackEvent = "playbook_on_notify"
	EventPlaybookOnNoHostsMatched   CallbackEvent = "playbook_on_no_hosts_matched"
	EventPlaybookOnNoHostsRemaining CallbackEvent = "playbook_on_no_hosts_remaining"
	EventPlaybookOnTaskStart        CallbackEvent = "playbook_on_task_start"
	EventPlaybookOnVarsPrompt       CallbackEvent = "playbook_on_vars_prompt"
	EventPlaybookOnSetup            CallbackEvent = "playbook_on_setup"
	EventPlaybookOnImportForHost    CallbackEvent = "playbook_on_import_for_host"
	EventPlaybookOnNotImportForHost CallbackEvent = "playbook_on_not_import_for_host"
	EventPlaybookOnPlayStart        CallbackEvent = "playbook_on_play_start"
	EventPlaybookOnStats            CallbackEvent = "playbook_on_stats"
)

// TaskResult is the raw module result reported for a host
type TaskResult map[string]any

// VarsPrompt describes an interactive variable prompt
type VarsPrompt struct {
	VarName  string `json:"varname"`
	Private  bool   `json:"private"`
	Prompt   string `json:"prompt,omitempty"`
	Encrypt  string `json:"encrypt,omitempty"`
	Confirm  bool   `json:"confirm,omitempty"`
	SaltSize int    `json:"salt_size,omitempty"`
	Salt     string `json:"salt,omitempty"`
	Default  string `json:"default,omitempty"`
}
