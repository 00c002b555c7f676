package telemetry

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// LogReporter writes one line per event, either as prose or as a JSON object.
type LogReporter struct {
	logger *log.Logger
	format string
}

func NewLogReporter(logger *log.Logger, format string) *LogReporter {
	if logger == nil {
		logger = log.Default()
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if format != FormatJSON {
		format = FormatText
	}
	return &LogReporter{logger: logger, format: format}
}

func (r *LogReporter) Report(e Event) {
	if r.format == FormatJSON {
		ts := e.Timestamp
		if ts.IsZero() {
			ts = time.Now()
		}
		payload := map[string]any{
			"ts":    ts.UTC().Format(time.RFC3339Nano),
			"event": string(e.Type),
			"day":   e.Day,
			"alive": e.Alive,
			"pot":   e.Pot,
		}
		if e.Hunter != NoHunter {
			payload["hunter"] = e.Hunter
		}
		if e.Count != 0 {
			payload["count"] = e.Count
		}
		if e.Reason != "" {
			payload["reason"] = e.Reason
		}
		logJSON(r.logger, payload)
		return
	}
	r.logger.Print(Line(e))
}

// Line renders an event the way the tribe chronicle reads aloud.
func Line(e Event) string {
	switch e.Type {
	case EventSimulationStarted:
		return fmt.Sprintf("The tribe of %d hunters sets out for %d days", e.Alive, e.Count)
	case EventDayStarted:
		return fmt.Sprintf("===== Day %d begins. Hunters alive: %d =====", e.Day, e.Alive)
	case EventHuntersDispatched:
		return fmt.Sprintf("Day %d: the cook sends %d hunters out", e.Day, e.Count)
	case EventHuntSucceeded:
		return fmt.Sprintf("Day %d: hunter %d brought back meat. The pot now holds %d pieces", e.Day, e.Hunter, e.Pot)
	case EventHuntFailed:
		return fmt.Sprintf("Day %d: hunter %d came back empty-handed", e.Day, e.Hunter)
	case EventHuntersReturned:
		return fmt.Sprintf("Day %d: all hunters are back. The pot holds %d pieces", e.Day, e.Pot)
	case EventCookAte:
		return fmt.Sprintf("Day %d: the cook took a portion. %d pieces left", e.Day, e.Pot)
	case EventCookHungry:
		return fmt.Sprintf("Day %d: the cook went hungry!", e.Day)
	case EventDinnerServed:
		return fmt.Sprintf("Day %d: after dinner %d pieces remain in the pot", e.Day, e.Pot)
	case EventStarvation:
		return fmt.Sprintf("Day %d: not enough meat for %d hunters, the cook is angry...", e.Day, e.Count)
	case EventHunterEliminated:
		return fmt.Sprintf("Day %d: the cook butchers unlucky hunter %d. Hunters alive: %d", e.Day, e.Hunter, e.Alive)
	case EventDayEnded:
		return fmt.Sprintf("===== Day %d ends. Hunters alive: %d =====", e.Day, e.Alive)
	case EventHunterFed:
		return fmt.Sprintf("Day %d: hunter %d ate and will hunt normally tomorrow", e.Day, e.Hunter)
	case EventHunterHungry:
		return fmt.Sprintf("Day %d: hunter %d stayed hungry and is sure to fail tomorrow", e.Day, e.Hunter)
	case EventHunterExited:
		if e.Reason == "eliminated" {
			return fmt.Sprintf("Day %d: hunter %d was butchered by the cook. Rest in peace", e.Day, e.Hunter)
		}
		return fmt.Sprintf("Day %d: hunter %d goes home (%s)", e.Day, e.Hunter, e.Reason)
	case EventExtinction:
		return fmt.Sprintf("Day %d: no hunters are left, the tribe has died out", e.Day)
	case EventSimulationEnded:
		return fmt.Sprintf("The cook ends the simulation after %d days (%s). Hunters alive: %d", e.Day, e.Reason, e.Alive)
	default:
		return fmt.Sprintf("Day %d: %s", e.Day, e.Type)
	}
}

func logJSON(logger *log.Logger, payload map[string]any) {
	if logger == nil {
		return
	}
	b, err := json.Marshal(payload)
	if err != nil {
		logger.Printf(`{"level":"error","msg":"log_marshal_failed","error":%q}`, err.Error())
		return
	}
	logger.Print(string(b))
}
