package domain

import "fmt"

// DurationRecord is the time a task spent in "In Progress", summed over
// closed intervals.
type DurationRecord struct {
	ID            string `json:"id"`
	Task          string `json:"task"`
	Problem       string `json:"problem"`
	Result        string `json:"result"`
	TotalDuration int64  `json:"totalDuration"` // milliseconds
}

// Formatted renders the total as HH:MM:SS.
func (r DurationRecord) Formatted() string {
	return FormatDuration(r.TotalDuration)
}

// FormatDuration renders milliseconds as HH:MM:SS using integer division.
// Hours are not wrapped at 24. Negative totals keep a leading minus sign.
func FormatDuration(ms int64) string {
	sign := ""
	if ms < 0 {
		sign = "-"
		ms = -ms
	}
	totalSeconds := ms / 1000
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, hours, minutes, seconds)
}

// DigestGroup lists the distinct task titles worked on under one problem.
type DigestGroup struct {
	Problem string   `json:"problem"`
	Titles  []string `json:"titles"`
}

// BoardTask is the current state of one task as placed on the board.
type BoardTask struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Problem string `json:"problem"`
	Result  string `json:"result"`
	Since   string `json:"since"`
}

// BoardColumn holds the tasks currently in one column.
type BoardColumn struct {
	Column Column      `json:"column"`
	Tasks  []BoardTask `json:"tasks"`
}
