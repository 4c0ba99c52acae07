package screen

// Phase is the lifecycle position of a screen.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseLoading    Phase = "loading"
	PhaseReady      Phase = "ready"
	PhaseFailed     Phase = "failed"
	PhaseSubmitting Phase = "submitting"
)

// Snapshot is what a view renders. Version grows with every state change so
// views receiving snapshots from several goroutines can drop older ones.
type Snapshot[T any] struct {
	Phase   Phase
	Data    T
	Err     string
	Notice  string
	Version uint64
}

// Busy reports whether a round-trip is in flight.
func (s Snapshot[T]) Busy() bool {
	return s.Phase == PhaseLoading || s.Phase == PhaseSubmitting
}

type eventKind int

const (
	loadStarted eventKind = iota
	loadSucceeded
	loadFailed
	submitStarted
	submitSucceeded
	submitFailed
	edited
)

type event[T any] struct {
	kind   eventKind
	apply  func(T) T
	err    error
	notice string
}

// reduce applies one controller event to a snapshot.
func reduce[T any](state Snapshot[T], ev event[T]) Snapshot[T] {
	switch ev.kind {
	case loadStarted:
		state.Phase = PhaseLoading
		state.Err = ""
		state.Notice = ""
	case loadSucceeded:
		state.Data = applyTo(state.Data, ev.apply)
		state.Phase = PhaseReady
		state.Err = ""
	case loadFailed:
		var zero T
		state.Data = zero
		state.Phase = PhaseFailed
		state.Err = errorText(ev.err)
	case submitStarted:
		state.Phase = PhaseSubmitting
		state.Err = ""
		state.Notice = ""
	case submitSucceeded:
		state.Data = applyTo(state.Data, ev.apply)
		state.Phase = PhaseReady
		state.Notice = ev.notice
	case submitFailed:
		state.Phase = PhaseFailed
		state.Err = errorText(ev.err)
	case edited:
		state.Data = applyTo(state.Data, ev.apply)
	}
	state.Version++
	return state
}

func applyTo[T any](data T, apply func(T) T) T {
	if apply == nil {
		return data
	}
	return apply(data)
}

func errorText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
