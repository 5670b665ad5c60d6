package editor

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// IDGenerator produces opaque question identifiers.
type IDGenerator interface {
	NewID() string
}

type IDGeneratorFunc func() string

func (f IDGeneratorFunc) NewID() string {
	return f()
}

const idLength = 12

// RandomIDs returns the default generator: random, short, URL safe.
func RandomIDs() IDGenerator {
	return IDGeneratorFunc(func() string {
		return strings.ReplaceAll(uuid.NewString(), "-", "")[:idLength]
	})
}

// SequentialIDs yields prefix-1, prefix-2, ... and is meant for tests and
// reproducible CLI output.
func SequentialIDs(prefix string) IDGenerator {
	n := 0
	return IDGeneratorFunc(func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	})
}
