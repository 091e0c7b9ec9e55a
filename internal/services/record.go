package services

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"courtbook/internal/domain"
)

// fieldProbe reads one candidate location of a raw lesson record. It returns
// false when the record does not carry the field at all (absent or JSON
// null); a present-but-unusable value still counts as defined.
type fieldProbe func(rec domain.LessonRecord) (any, bool)

// key probes a top-level field.
func key(name string) fieldProbe {
	return func(rec domain.LessonRecord) (any, bool) {
		v, ok := rec[name]
		if !ok || v == nil {
			return nil, false
		}
		return v, true
	}
}

// nested probes a field of an embedded object.
func nested(outer, inner string) fieldProbe {
	return func(rec domain.LessonRecord) (any, bool) {
		obj, ok := rec[outer].(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok := obj[inner]
		if !ok || v == nil {
			return nil, false
		}
		return v, true
	}
}

// probeString tries each probe in order and returns the first non-blank
// string, trimmed. Blank and non-string values fall through to the next
// probe.
func probeString(rec domain.LessonRecord, probes []fieldProbe) (string, bool) {
	for _, probe := range probes {
		v, ok := probe(rec)
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			return s, true
		}
	}
	return "", false
}

// probeNumber takes the first defined value among the probes and coerces it
// to a float. A defined value that fails coercion yields zero; later probes
// are not consulted, so precedence stays with the field that was present.
func probeNumber(rec domain.LessonRecord, probes []fieldProbe) float64 {
	for _, probe := range probes {
		v, ok := probe(rec)
		if !ok {
			continue
		}
		f, ok := coerceNumber(v)
		if !ok {
			return 0
		}
		return f
	}
	return 0
}

// probeTime parses the first defined value among the probes as an instant.
// Unparseable input yields the zero time; the formatters downstream render
// that as an empty field rather than an error.
func probeTime(rec domain.LessonRecord, probes []fieldProbe, loc *time.Location) time.Time {
	for _, probe := range probes {
		v, ok := probe(rec)
		if !ok {
			continue
		}
		return parseInstant(v, loc)
	}
	return time.Time{}
}

func coerceNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// naiveLayouts are timestamp layouts without a zone designator; they are
// interpreted in the service's configured location.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseInstant converts the timestamp encodings seen in the wild to a
// time.Time: RFC 3339 strings, a few naive layouts, and epoch seconds or
// milliseconds. Unusable input comes back as the zero time.
func parseInstant(v any, loc *time.Location) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}
		}
		if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return ts
		}
		if ts, err := time.Parse(time.RFC3339, s); err == nil {
			return ts
		}
		for _, layout := range naiveLayouts {
			if ts, err := time.ParseInLocation(layout, s, loc); err == nil {
				return ts
			}
		}
		return time.Time{}
	case float64, int, int64, json.Number:
		f, ok := coerceNumber(v)
		if !ok || f <= 0 {
			return time.Time{}
		}
		// Values this large can only be epoch milliseconds.
		if f >= 1e12 {
			return time.UnixMilli(int64(f)).In(loc)
		}
		return time.Unix(int64(f), 0).In(loc)
	default:
		return time.Time{}
	}
}

// truthy mirrors the loose boolean signals raw records carry: real booleans,
// non-zero numbers, and a few affirmative strings.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "1":
			return true
		}
		return false
	default:
		return false
	}
}
