package random

import (
	"fmt"

	"github.com/tuneinsight/ntru/utils"
)

var registry = map[string]Generator{
	System.Name():     System,
	DevURandom.Name(): DevURandom,
	DevRandom.Name():  DevRandom,
	Blake2b.Name():    Blake2b,
	HMACDRBG.Name():   HMACDRBG,
	ChaCha20.Name():   ChaCha20,
}

// ByName returns the provider of the given name.
func ByName(name string) (Generator, error) {
	if gen, ok := registry[name]; ok {
		return gen, nil
	}
	return nil, fmt.Errorf("unknown randomness provider %q (available: %v)", name, Names())
}

// Names returns the sorted names of the registered providers.
func Names() []string {
	return utils.GetSortedKeys(registry)
}
