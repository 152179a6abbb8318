// Package roster manages the nursing staff directory: nurse records,
// badge enablement, and the attendance counters the call core updates
// on badge-verified closures.
//
// Badge state is the only authorisation gate in the system. A badge is
// either habilitado or desabilitado; only enabled badges may close
// calls. The roster never holds call state; the call package consumes
// it through a narrow lookup interface.
package roster
