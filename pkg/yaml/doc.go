// Package yaml wraps [github.com/goccy/go-yaml] with the decoding, encoding,
// error reporting and validation behavior used for nepo configuration.
//
// Errors produced here are [*Error] values that know where in the source
// document they occurred, and render the offending lines when printed.
package yaml
