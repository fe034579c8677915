// Package assets holds data compiled into the binary.
package assets

import _ "embed"

// WordList is the default vocabulary, one word per line. It is used to build a
// score table in memory when no table file or word file is configured.
//
//go:embed words.txt
var WordList string
