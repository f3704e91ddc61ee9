package studyplan

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/heartmarshall/studyplanner-backend/internal/domain"
)

var (
	codeFence   = regexp.MustCompile("(?i)```(?:json)?[ \t]*\r?\n?")
	bulletStart = regexp.MustCompile(`^(?:[-*•]|\d+[.)])\s+`)
)

// PlanFormatError reports model output that is not a non-empty JSON array
// of strings. Cleaned holds the text after fence and bracket trimming; it is
// for logs only and is not part of Error().
type PlanFormatError struct {
	Cleaned string
	Err     error
}

func (e *PlanFormatError) Error() string {
	return "parse plan tasks: " + e.Err.Error()
}

func (e *PlanFormatError) Unwrap() []error {
	return []error{domain.ErrAIFormat, e.Err}
}

// ParsePlanTasks extracts the task list from raw model output. Code fences
// and any prose outside the outermost brackets are discarded.
func ParsePlanTasks(raw string) ([]string, error) {
	cleaned := strings.TrimSpace(codeFence.ReplaceAllString(raw, ""))

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end < start {
		return nil, &PlanFormatError{Cleaned: cleaned, Err: errors.New("no JSON array found")}
	}
	cleaned = cleaned[start : end+1]

	var tasks []string
	if err := json.Unmarshal([]byte(cleaned), &tasks); err != nil {
		return nil, &PlanFormatError{Cleaned: cleaned, Err: err}
	}
	if len(tasks) == 0 {
		return nil, &PlanFormatError{Cleaned: cleaned, Err: errors.New("empty task list")}
	}
	return tasks, nil
}

// CleanDetailText strips emphasis markers and leading bullets from model
// prose. It never fails.
func CleanDetailText(raw string) string {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		body := bulletStart.ReplaceAllString(line[indent:], "")
		body = strings.ReplaceAll(body, "**", "")
		body = strings.ReplaceAll(body, "*", "")
		// line[indent:] started with text, so leading blanks come from removed markers.
		lines[i] = line[:indent] + strings.TrimLeft(body, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// cleanTaskLabel normalises one task string for display and storage.
func cleanTaskLabel(task string) string {
	return strings.TrimSpace(strings.ReplaceAll(task, "**", ""))
}
