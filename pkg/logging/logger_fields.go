package logging

import (
	"fmt"
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Component names the package or subsystem emitting the entry
func Component(name string) Field {
	return String("component", name)
}

func Operation(op string) Field {
	return String("operation", op)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

func Path(p string) Field {
	return String("path", p)
}

// Domain fields

// RunID tags every entry of one fingering run
func RunID(id string) Field {
	return String("run_id", id)
}

// NodeID is a solver node, which is also the note's onset position
func NodeID(id int) Field {
	return Int("node_id", id)
}

// Note records a pitch such as "C#4"
func Note(n fmt.Stringer) Field {
	return String("note", n.String())
}

func Tick(t int64) Field {
	return Int64("tick", t)
}

// Layout names the instrument layout in use
func Layout(name string) Field {
	return String("layout", name)
}
