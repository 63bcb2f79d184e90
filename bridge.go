package vkdebug

import (
	"github.com/rs/zerolog"
)

// SelfTestMessageID is the message id a bridge built WithSelfTestAbort asks
// the platform to abort on. It is only used to test the bridge itself.
const SelfTestMessageID = "vkdebug-self-test"

// LevelFor maps a severity onto a log level. The thresholds are compared from
// the most severe down so values between the known bits fall into the lower
// bucket.
func LevelFor(s Severity) zerolog.Level {
	switch {
	case s >= SeverityError:
		return zerolog.ErrorLevel
	case s >= SeverityWarning:
		return zerolog.WarnLevel
	case s >= SeverityInfo:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// Bridge forwards diagnostic events to a zerolog logger. It keeps no state
// besides the logger, so the platform may call it from any thread.
type Bridge struct {
	log           zerolog.Logger
	selfTestAbort bool
}

// BridgeOption configures a Bridge
type BridgeOption func(*Bridge)

// WithSelfTestAbort makes the bridge return true for events carrying
// SelfTestMessageID.
func WithSelfTestAbort() BridgeOption {
	return func(b *Bridge) {
		b.selfTestAbort = true
	}
}

// NewBridge creates a bridge which writes to log
func NewBridge(log zerolog.Logger, opts ...BridgeOption) *Bridge {
	b := &Bridge{log: log.With().Str("component", "validation").Logger()}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Handle logs ev and reports whether the call which triggered it should be
// aborted. That is false for everything but a self test.
func (b *Bridge) Handle(ev *Event) (abort bool) {
	if ev == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			b.log.Error().Interface("panic", r).Msg("failed to log validation message")
			abort = false
		}
	}()

	rec := ev.Own()
	b.write(rec)

	return b.selfTestAbort && rec.MessageIDName == SelfTestMessageID
}

func (b *Bridge) write(rec Record) {
	e := b.log.WithLevel(LevelFor(rec.Severity))
	if e == nil {
		return
	}
	e = e.Str("types", rec.Types.String()).
		Str("severity", rec.Severity.String())
	if rec.MessageIDName != "" {
		e = e.Str("message_id", rec.MessageIDName)
	}
	if rec.MessageIDNumber != 0 {
		e = e.Int32("message_id_number", rec.MessageIDNumber)
	}
	if len(rec.Objects) > 0 {
		objects := make([]string, len(rec.Objects))
		for i, o := range rec.Objects {
			objects[i] = o.String()
		}
		e = e.Strs("objects", objects)
	}
	e.Msgf("(%s) %s", rec.Types, rec.Message)
}

// Callback returns Handle as a Callback for a DebugDescriptor
func (b *Bridge) Callback() Callback {
	return func(ev *Event, _ interface{}) bool {
		return b.Handle(ev)
	}
}
