package call

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Broadcaster delivers a lifecycle event to connected observers. The
// WebSocket hub implements it for dashboards; an MQTT adapter mirrors
// events to integration topics. Implementations must not block: a slow
// observer is the broadcaster's problem, never the caller's.
type Broadcaster interface {
	Broadcast(event string, payload any)
}

// BadgeDirectory is the roster lookup used to authorise badge-verified
// closures. FindEnabledByBadge returns (nil, nil) when no enabled badge
// matches; an unknown or disabled badge is a negative result, not an
// error.
type BadgeDirectory interface {
	FindEnabledByBadge(ctx context.Context, badge string) (*NurseRef, error)
	RecordAttendance(ctx context.Context, badge string) error
}

// Recorder appends call records to the audit store.
type Recorder interface {
	Insert(ctx context.Context, rec *Record) error
}

// Telemetry receives call lifecycle measurements. Implementations must
// be non-blocking; the InfluxDB client satisfies this with batched
// asynchronous writes.
type Telemetry interface {
	WriteCallEvent(leito, criticality, event string, openCalls int)
	WriteCallDuration(leito, criticality string, seconds float64)
}

// Service coordinates the call lifecycle: it validates intake and
// closure requests, mutates the tracker, and fans events out to every
// registered broadcaster. Both the HTTP handlers and the MQTT consumer
// feed into it, so the two transports share one set of semantics.
//
// For a given request the tracker mutation and the broadcast form one
// synchronous unit: the broadcast has happened before the operation
// returns.
type Service struct {
	tracker      *Tracker
	directory    BadgeDirectory
	recorder     Recorder
	broadcasters []Broadcaster
	telemetry    Telemetry
	logger       Logger
}

// NewService creates a call service. The directory and recorder may be
// nil in tests; broadcasters are attached with AddBroadcaster.
func NewService(tracker *Tracker, directory BadgeDirectory, recorder Recorder) *Service {
	return &Service{
		tracker:   tracker,
		directory: directory,
		recorder:  recorder,
		logger:    noopLogger{},
	}
}

// SetLogger sets the logger for the service.
func (s *Service) SetLogger(logger Logger) {
	s.logger = logger
}

// SetTelemetry attaches an optional telemetry sink.
func (s *Service) SetTelemetry(t Telemetry) {
	s.telemetry = t
}

// AddBroadcaster registers an event sink. Must be called during wiring,
// before the server starts accepting requests.
func (s *Service) AddBroadcaster(b Broadcaster) {
	s.broadcasters = append(s.broadcasters, b)
}

// Open handles an intake request from a bedside device.
//
// Validation happens before any state change: an invalid criticality or
// missing bed rejects the request with zero side effects. On success the
// tracker entry is inserted (or replaced, for a re-intake on the same
// bed) and nova-chamada is broadcast to all observers before returning.
func (s *Service) Open(ctx context.Context, bed Bed, criticality Criticality) (OpenCall, error) {
	if err := ValidateCriticality(criticality); err != nil {
		return OpenCall{}, err
	}
	bed.Leito = strings.TrimSpace(bed.Leito)
	if err := ValidateLeito(bed.Leito); err != nil {
		return OpenCall{}, err
	}

	oc := s.tracker.Upsert(bed, criticality)
	s.broadcast(EventCallOpened, oc)

	s.logger.Info("call opened",
		"leito", bed.Leito,
		"criticidade", string(criticality),
		"open_calls", s.tracker.Count(),
	)

	if s.telemetry != nil {
		s.telemetry.WriteCallEvent(bed.Leito, string(criticality), EventCallOpened, s.tracker.Count())
	}

	return oc, nil
}

// CloseDirect closes the call for a bed without badge verification
// (wall-mounted cancel buttons, dashboard actions). Closing a bed with
// no open call is a successful no-op; the chamada-finalizada event is
// broadcast either way so dashboards that missed the open still clear.
func (s *Service) CloseDirect(ctx context.Context, leito string) error {
	leito = strings.TrimSpace(leito)
	if err := ValidateLeito(leito); err != nil {
		return err
	}

	prior, existed := s.tracker.Remove(leito)
	s.broadcast(EventCallClosed, ClosedEvent{Leito: leito})

	s.logger.Info("call closed",
		"leito", leito,
		"existed", existed,
		"open_calls", s.tracker.Count(),
	)

	s.recordClosureTelemetry(leito, prior, existed)
	return nil
}

// CloseWithBadge closes the call for a bed after verifying that the
// scanned badge belongs to a nurse whose badge is enabled.
//
// The bed identifier must accompany the scan: it comes from the device
// performing the scan, so the closure targets that device's bed. An
// unknown or disabled badge returns (nil, nil) with no broadcast and no
// state change. A directory failure returns ErrLookupFailed and leaves the
// tracker untouched.
func (s *Service) CloseWithBadge(ctx context.Context, badge, leito string) (*NurseRef, error) {
	leito = strings.TrimSpace(leito)
	if err := ValidateLeito(leito); err != nil {
		return nil, err
	}

	nurse, err := s.directory.FindEnabledByBadge(ctx, badge)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	if nurse == nil {
		s.logger.Debug("badge rejected", "nfc", badge, "leito", leito)
		return nil, nil
	}

	prior, existed := s.tracker.Remove(leito)
	s.broadcast(EventCallClosed, ClosedEvent{Leito: leito})

	s.logger.Info("call closed by badge",
		"leito", leito,
		"nfc", nurse.Badge,
		"existed", existed,
		"open_calls", s.tracker.Count(),
	)

	// Audit record and attendance counter are best-effort: a store
	// failure must not undo a closure that observers already saw.
	if existed && s.recorder != nil {
		rec := s.buildClosureRecord(nurse, prior)
		if err := s.recorder.Insert(ctx, rec); err != nil {
			s.logger.Error("call record write failed", "leito", leito, "error", err)
		}
	}
	if err := s.directory.RecordAttendance(ctx, nurse.Badge); err != nil {
		s.logger.Warn("attendance update failed", "nfc", nurse.Badge, "error", err)
	}

	s.recordClosureTelemetry(leito, prior, existed)
	return nurse, nil
}

// OpenCalls returns a snapshot of all currently open calls.
func (s *Service) OpenCalls() []OpenCall {
	return s.tracker.ListOpen()
}

// buildClosureRecord constructs the audit row for a badge-verified closure.
func (s *Service) buildClosureRecord(nurse *NurseRef, prior OpenCall) *Record {
	now := time.Now().UTC()
	return &Record{
		Responsible: nurse.Name,
		Criticality: string(prior.Criticality),
		StartedAt:   prior.CreatedAt.Format(time.RFC3339),
		EndedAt:     now.Format(time.RFC3339),
		NurseBadge:  nurse.Badge,
		RecordedAt:  now.Format(time.RFC3339),
	}
}

// recordClosureTelemetry emits the closed event and, when a call was
// actually open, its duration.
func (s *Service) recordClosureTelemetry(leito string, prior OpenCall, existed bool) {
	if s.telemetry == nil {
		return
	}
	s.telemetry.WriteCallEvent(leito, string(prior.Criticality), EventCallClosed, s.tracker.Count())
	if existed {
		s.telemetry.WriteCallDuration(leito, string(prior.Criticality),
			time.Since(prior.CreatedAt).Seconds())
	}
}

// broadcast fans an event out to every registered sink.
func (s *Service) broadcast(event string, payload any) {
	for _, b := range s.broadcasters {
		b.Broadcast(event, payload)
	}
}
