// Package execs launches external commands, as defined by configuration.
//
// Commands run with the caller's standard streams, so interactive programs
// (editors, pagers, viewers) work as if they had been started directly.
// A launch blocks until the child exits.
package execs
