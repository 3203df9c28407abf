package model

import (
	"sort"
	"strconv"
)

// HostSummary holds the outcome counters of one host
type HostSummary struct {
	OK          int `json:"ok"`
	Changed     int `json:"changed"`
	Unreachable int `json:"unreachable"`
	Failures    int `json:"failures"`
}

// Failed reports whether the host had any failure or was unreachable
func (s HostSummary) Failed() bool {
	return s.Failures > 0 || s.Unreachable > 0
}

// Stats maps a host identifier to its summary. It is computed by the host
// runtime; the adapter only tabulates it.
type Stats map[string]HostSummary

// Hosts returns the processed hosts in lexicographic order
func (s Stats) Hosts() []string {
	hosts := make([]string, 0, len(s))
	for host := range s {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)
	return hosts
}

// Summarize returns the counters of host, zero if the host is unknown
func (s Stats) Summarize(host string) HostSummary {
	return s[host]
}

// Status returns RunStatusFailure if any host failed or was unreachable
func (s Stats) Status() RunStatus {
	for _, summary := range s {
		if summary.Failed() {
			return RunStatusFailure
		}
	}
	return RunStatusSuccess
}

// SummaryHeader is the column header of the summary table
var SummaryHeader = []string{"Host", "Ok", "Changed", "Unreachable", "Failures"}

// Rows returns one table row per host, sorted by host
func (s Stats) Rows() [][]string {
	hosts := s.Hosts()
	rows := make([][]string, 0, len(hosts))
	for _, host := range hosts {
		summary := s.Summarize(host)
		rows = append(rows, []string{
			host,
			strconv.Itoa(summary.OK),
			strconv.Itoa(summary.Changed),
			strconv.Itoa(summary.Unreachable),
			strconv.Itoa(summary.Failures),
		})
	}
	return rows
}

type RunStatus string

const (
	RunStatusSuccess RunStatus = "success"
	RunStatusFailure RunStatus = "failure"
)

// Color is the colour associated with the status. It is not part of the
// transmitted payload.
func (s RunStatus) Color() string {
	if s == RunStatusFailure {
		return "red"
	}
	return "green"
}
