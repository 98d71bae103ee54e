package logtail

import (
	"strconv"
	"strings"
)

// Field is one key=value pair after the message.
type Field struct {
	Key   string
	Value string
}

// Entry is a parsed log line.
type Entry struct {
	Time    string
	Level   string
	Message string
	Fields  []Field
}

// Parse splits a logrus text line. Lines without a level are returned with
// the whole line as the message.
func Parse(line string) Entry {
	pairs, ok := splitPairs(line)
	if !ok {
		return Entry{Message: line}
	}

	var e Entry
	for _, p := range pairs {
		switch p.Key {
		case "time":
			e.Time = p.Value
		case "level":
			e.Level = p.Value
		case "msg":
			e.Message = p.Value
		default:
			e.Fields = append(e.Fields, p)
		}
	}
	if e.Level == "" {
		return Entry{Message: line}
	}
	return e
}

// splitPairs tokenizes key=value pairs where values may be double-quoted
// with Go escaping.
func splitPairs(line string) ([]Field, bool) {
	var out []Field
	rest := strings.TrimSpace(line)
	for rest != "" {
		eq := strings.IndexByte(rest, '=')
		if eq <= 0 || strings.ContainsAny(rest[:eq], " \t\"") {
			return nil, false
		}
		key := rest[:eq]
		rest = rest[eq+1:]

		var value string
		if strings.HasPrefix(rest, `"`) {
			quoted, err := strconv.QuotedPrefix(rest)
			if err != nil {
				return nil, false
			}
			value, err = strconv.Unquote(quoted)
			if err != nil {
				return nil, false
			}
			rest = rest[len(quoted):]
		} else {
			end := strings.IndexByte(rest, ' ')
			if end < 0 {
				end = len(rest)
			}
			value = rest[:end]
			rest = rest[end:]
		}
		out = append(out, Field{Key: key, Value: value})
		rest = strings.TrimLeft(rest, " ")
	}
	return out, len(out) > 0
}
