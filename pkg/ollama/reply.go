package ollama

import "strings"

const nanosPerSecond = 1e9

// FormattedReply is the flat, unit-normalized form of a generate reply.
// Duration and EvalDuration are seconds; LoadDuration is carried through
// as raw nanoseconds. Fields keep their sentinel defaults when the reply
// never populated them.
type FormattedReply struct {
	Response     string
	Done         bool
	DoneReason   string
	Duration     float64
	EvalDuration float64
	LoadDuration float64
}

// NewFormattedReply returns a FormattedReply with sentinel defaults:
// "unknown" termination, -1 durations, placeholder response text.
func NewFormattedReply() FormattedReply {
	return FormattedReply{
		Response:     "NO RESPONSE",
		Done:         false,
		DoneReason:   "unknown",
		Duration:     -1,
		EvalDuration: -1,
		LoadDuration: -1,
	}
}

// Decompose flattens a generate reply. The response text has every
// literal '/' removed.
func Decompose(reply *Reply) FormattedReply {
	f := NewFormattedReply()
	if reply == nil {
		return f
	}
	f.Done = reply.Done
	if reply.DoneReason != "" {
		f.DoneReason = reply.DoneReason
	}
	if reply.TotalDuration > 0 {
		f.Duration = float64(reply.TotalDuration) / nanosPerSecond
	}
	if reply.PromptEvalDuration > 0 {
		f.EvalDuration = float64(reply.PromptEvalDuration) / nanosPerSecond
	}
	if reply.LoadDuration > 0 {
		f.LoadDuration = float64(reply.LoadDuration)
	}
	if reply.Response != "" {
		f.Response = strings.Replace(reply.Response, "/", "", -1)
	}
	return f
}
