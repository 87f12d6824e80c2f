/*package property contains quantities which can be calculated for a single
halo from its catalogue entries. Properties are looked up by name with
Lookup.*/
package property

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/adam-broussard/SoundNebula/catalog"
)

var ErrUnknownProperty = errors.New("property: unknown property")

// Property is a scalar calculated from a halo.
type Property interface {
	Name() string
	Calculate(h catalog.Halo) (float64, error)
}

// registry maps property names to constructors. Constructors take the name
// of the catalogue property holding halo centers.
var registry = map[string]func(centerProperty string) Property{
	"distance": func(c string) Property { return Distance{CenterProperty: c} },
}

// Lookup returns the property with the given name. centerProperty is the
// catalogue property that holds halo centers; if empty, DefaultCenter is
// used.
func Lookup(name, centerProperty string) (Property, error) {
	if centerProperty == "" {
		centerProperty = DefaultCenter
	}
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %s)",
			ErrUnknownProperty, name, strings.Join(Names(), ", "))
	}
	return f(centerProperty), nil
}

// Names returns the sorted names of every known property.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
