// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"errors"
	"fmt"
	"runtime/debug"
)

const (
	// TimestampKey holds the ISO-8601 UTC time of a record.
	TimestampKey = "timestamp"
	// LevelKey holds the lowercase level name of a record.
	LevelKey = "level"
	// MessageKey holds the message of a record in JSON output.
	MessageKey = "event"

	// StackInfoKey requests the current stack to be rendered when set to true.
	StackInfoKey = "stack_info"
	// StackKey holds the rendered stack.
	StackKey = "stack"
	// ExcInfoKey carries an error to be formatted.
	ExcInfoKey = "exc_info"
	// ExceptionKey holds the formatted error.
	ExceptionKey = "exception"

	// TimestampFormat is ISO-8601 with microseconds, always rendered in UTC.
	TimestampFormat = "2006-01-02T15:04:05.000000Z07:00"
)

var (
	// ErrInvalidProcessors reports a processor chain that cannot be rendered.
	ErrInvalidProcessors = errors.New("invalid processor chain")
)

// Processor is a stage of the chain a record goes through before rendering.
type Processor string

const (
	MergeContextVars  Processor = "merge_contextvars"
	AddLogLevel       Processor = "add_log_level"
	TimeStamper       Processor = "timestamper"
	StackInfoRenderer Processor = "stack_info_renderer"
	FormatExcInfo     Processor = "format_exc_info"
	ConsoleRenderer   Processor = "console_renderer"
	JSONRenderer      Processor = "json_renderer"
)

// DefaultProcessors returns the chain used by New when none is given.
func DefaultProcessors() []Processor {
	return []Processor{
		MergeContextVars,
		AddLogLevel,
		TimeStamper,
		StackInfoRenderer,
		FormatExcInfo,
		ConsoleRenderer,
	}
}

// JSONProcessors returns the default chain with a JSON renderer in place of the console one.
func JSONProcessors() []Processor {
	processors := DefaultProcessors()
	processors[len(processors)-1] = JSONRenderer
	return processors
}

// pipeline is the compiled form of a processor chain read by backends.
type pipeline struct {
	mergeBound bool
	addLevel   bool
	timestamp  bool
	stackInfo  bool
	excInfo    bool
	json       bool
}

func compile(processors []Processor) (pipeline, error) {
	var p pipeline
	renderers := 0
	for _, processor := range processors {
		switch processor {
		case MergeContextVars:
			p.mergeBound = true
		case AddLogLevel:
			p.addLevel = true
		case TimeStamper:
			p.timestamp = true
		case StackInfoRenderer:
			p.stackInfo = true
		case FormatExcInfo:
			p.excInfo = true
		case ConsoleRenderer:
			renderers++
		case JSONRenderer:
			p.json = true
			renderers++
		default:
			return pipeline{}, fmt.Errorf("%w: unknown processor %q", ErrInvalidProcessors, processor)
		}
	}

	if renderers != 1 {
		return pipeline{}, fmt.Errorf("%w: exactly one renderer is required, found %d", ErrInvalidProcessors, renderers)
	}
	return p, nil
}

// process applies the stages that rewrite fields. Level, timestamp and rendering
// are encoder settings and stay with the backend.
func (p pipeline) process(fields Fields) Fields {
	if p.stackInfo {
		if value, ok := fields.Get(StackInfoKey); ok {
			if enabled, _ := value.(bool); enabled {
				fields = fields.Replace(StackInfoKey, StackKey, string(debug.Stack()))
			} else {
				fields = fields.Delete(StackInfoKey)
			}
		}
	}

	if p.excInfo {
		if value, ok := fields.Get(ExcInfoKey); ok {
			if err, isErr := value.(error); isErr && err != nil {
				fields = fields.Replace(ExcInfoKey, ExceptionKey, fmt.Sprintf("%+v", err))
			} else {
				fields = fields.Delete(ExcInfoKey)
			}
		}
	}

	return fields
}
