// Package call implements the nurse-call lifecycle: the in-memory
// tracker of open calls per bed, the intake and closure operations, and
// the fan-out of lifecycle events to connected dashboards.
//
// A bed has at most one open call at a time. Intake inserts or replaces
// the bed's entry and emits a nova-chamada event; closure removes it and
// emits chamada-finalizada. Closure is idempotent: closing a bed with no
// open call is a successful no-op. Dashboards that connect late converge
// via the open-call snapshot rather than event replay.
package call
