package shortener

import (
	"fmt"
	"math/rand"

	"github.com/jaevor/go-nanoid"
	"github.com/serroba/shorturl-service/internal/base62"
)

// CodeGenerator generates short codes.
type CodeGenerator func() string

// Generator names accepted by NewCodeGenerator.
const (
	GeneratorBase62 = "base62"
	GeneratorNanoid = "nanoid"
)

// NewBase62Generator returns a generator that base62-encodes a uniformly random
// uint32 drawn from source. Codes are 1 to 6 characters long and may collide.
func NewBase62Generator(source func() uint32) CodeGenerator {
	if source == nil {
		source = rand.Uint32
	}

	return func() string {
		return base62.Encode(uint64(source()))
	}
}

// NewNanoidGenerator returns a generator of fixed-length nanoid codes.
func NewNanoidGenerator(length int) (CodeGenerator, error) {
	gen, err := nanoid.Standard(length)
	if err != nil {
		return nil, fmt.Errorf("nanoid generator: %w", err)
	}

	return gen, nil
}

// NewCodeGenerator builds the generator selected by name.
func NewCodeGenerator(name string, length int) (CodeGenerator, error) {
	switch name {
	case "", GeneratorBase62:
		return NewBase62Generator(nil), nil
	case GeneratorNanoid:
		return NewNanoidGenerator(length)
	default:
		return nil, fmt.Errorf("unknown code generator %q", name)
	}
}
