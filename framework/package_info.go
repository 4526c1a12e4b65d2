// Package framework contains shared infrastructure for the validation client
// that is not specific to any one workflow phase. The base package contains
// the Logger abstraction used by the catalog client, the data stores, and the
// offline workflow.
//
// Components take a Logger rather than writing to standard output directly,
// so that library callers can capture or silence client chatter. Passing nil
// (or NullLogger()) disables output; the standard library's *log.Logger
// satisfies the interface as-is.
package framework
