// Package config loads the nepo configuration file.
//
// The file is a YAML mapping from association name to
// [association.Config]. The order of names in the file is significant: later
// associations take priority over earlier ones, and the first one is the
// fallback. [Loader] therefore decodes the document from its AST rather than
// into a Go map, and [Config] keeps the entries in document order.
package config
