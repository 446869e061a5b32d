package reasoning

import "strings"

// Markers delimiting a reasoning span inside the generation stream.
// Everything between them is withheld from the visible answer.
const (
	StartMarker = "<|thought_start|>"
	EndMarker   = "<|thought_end|>"
)

type EventKind int

const (
	// EventVisible carries answer text that should reach the client
	// immediately, one event per processed fragment.
	EventVisible EventKind = iota
	// EventReasoning carries a completed reasoning span, emitted as a
	// single batch when the end marker arrives.
	EventReasoning
)

type Event struct {
	Kind EventKind
	Text string
}

type scanState int

const (
	stateVisible scanState = iota
	stateReasoning
)

// Scanner splits a generation stream into visible and reasoning events.
//
// Fragment boundaries are backend-defined and arbitrary: a marker may be
// split across fragments or a fragment may contain several markers. The
// scanner therefore works over a carry buffer instead of matching per
// fragment. Invariant: Cleaned() equals the concatenation of every
// EventVisible emitted, regardless of how the stream was fragmented.
type Scanner struct {
	state    scanState
	carry    string          // undecided tail, at most len(marker)-1 bytes
	thinking strings.Builder // reasoning accumulated for the open span
	cleaned  strings.Builder
}

func NewScanner() *Scanner {
	return &Scanner{}
}

// Feed consumes one stream fragment and returns the events it completes.
func (s *Scanner) Feed(fragment string) []Event {
	if fragment == "" {
		return nil
	}

	buf := s.carry + fragment
	s.carry = ""

	var events []Event
	for buf != "" {
		switch s.state {
		case stateVisible:
			if i := strings.Index(buf, StartMarker); i >= 0 {
				if i > 0 {
					events = s.emitVisible(events, buf[:i])
				}
				buf = buf[i+len(StartMarker):]
				s.state = stateReasoning
				continue
			}
			emit, hold := splitMarkerPrefix(buf, StartMarker)
			if emit != "" {
				events = s.emitVisible(events, emit)
			}
			s.carry = hold
			return events

		case stateReasoning:
			if i := strings.Index(buf, EndMarker); i >= 0 {
				s.thinking.WriteString(buf[:i])
				if s.thinking.Len() > 0 {
					events = append(events, Event{Kind: EventReasoning, Text: s.thinking.String()})
				}
				s.thinking.Reset()
				buf = buf[i+len(EndMarker):]
				s.state = stateVisible
				continue
			}
			keep, hold := splitMarkerPrefix(buf, EndMarker)
			s.thinking.WriteString(keep)
			s.carry = hold
			return events
		}
	}
	return events
}

// Finish flushes the scanner at end of stream.
//
// A held-back partial marker in the visible state turns out to be plain
// text and is emitted. An open reasoning span (start marker never closed)
// is discarded wholesale: truncated generations must not leak half a
// thought into the visible answer.
func (s *Scanner) Finish() []Event {
	var events []Event
	switch s.state {
	case stateVisible:
		if s.carry != "" {
			events = s.emitVisible(events, s.carry)
		}
	case stateReasoning:
		s.thinking.Reset()
	}
	s.carry = ""
	return events
}

// Cleaned returns the full stream with every marker-delimited reasoning
// span removed. Used as the persisted assistant message content.
func (s *Scanner) Cleaned() string {
	return s.cleaned.String()
}

func (s *Scanner) emitVisible(events []Event, text string) []Event {
	s.cleaned.WriteString(text)
	return append(events, Event{Kind: EventVisible, Text: text})
}

// splitMarkerPrefix splits buf so that the returned hold is the longest
// suffix of buf that is a proper prefix of marker. The emit part can be
// classified now; the hold part may complete into the marker on the next
// fragment.
func splitMarkerPrefix(buf, marker string) (emit, hold string) {
	max := len(marker) - 1
	if max > len(buf) {
		max = len(buf)
	}
	for k := max; k > 0; k-- {
		if strings.HasPrefix(marker, buf[len(buf)-k:]) {
			return buf[:len(buf)-k], buf[len(buf)-k:]
		}
	}
	return buf, ""
}
