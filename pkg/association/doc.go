// Package association decides which configured association should open a set
// of files.
//
// An [Association] is built once from its [Config] and never changes. It
// filters candidate paths by mode and file extension, then applies its
// [Policy] to decide whether enough of the candidates matched. [Resolve]
// evaluates a list of associations in reverse configuration order, falling
// back to the first configured association when nothing else matches.
package association
