// Package storage reads and writes the YAML holiday file that connects the
// extraction and rendering commands.
//
// A holiday file maps event names to {Start, End} dates and carries the reserved
// "Classes Begin" and "Classes End" entries. Relative file names resolve inside the
// storage data directory, which defaults to the working directory.
package storage
