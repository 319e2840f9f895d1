package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultHeartRate is used for cases that do not declare a heart rate.
const DefaultHeartRate = 130.0

// ErrUnknownCase is returned by Get for ids not present in the catalog.
var ErrUnknownCase = errors.New("catalog: unknown case")

//go:embed cases.yaml
var builtinYAML []byte

// View identifies an anatomic imaging plane.
type View string

// Supported views.
const (
	ViewPLAX View = "PLAX" // parasternal long axis
	ViewPSAX View = "PSAX" // parasternal short axis
	ViewA4C  View = "A4C"  // apical four chamber
)

// Views lists the supported views in display order.
func Views() []View {
	return []View{ViewPLAX, ViewPSAX, ViewA4C}
}

// Known reports whether v is one of the supported views.
func (v View) Known() bool {
	switch v {
	case ViewPLAX, ViewPSAX, ViewA4C:
		return true
	}
	return false
}

// FlowType selects the jet path drawn for a flow.
type FlowType string

// Flow types.
const (
	FlowVSD     FlowType = "VSD"
	FlowPDA     FlowType = "PDA"
	FlowRVOTObs FlowType = "RVOT_OBS"
	FlowCoarc   FlowType = "COARC"
)

// ColorDirection selects the colour family of a jet.
type ColorDirection string

// Colour directions. Toward the probe is blue, away is red.
const (
	TowardProbe   ColorDirection = "towardProbe"
	AwayFromProbe ColorDirection = "awayFromProbe"
	Bidirectional ColorDirection = "bidirectional"
)

// Flow describes one jet visualisation scoped to a single view.
type Flow struct {
	View      View           `yaml:"view"`
	Type      FlowType       `yaml:"type"`
	Strength  float64        `yaml:"strength"`
	Direction ColorDirection `yaml:"colorDirection"`
}

// Case is an immutable teaching scenario.
type Case struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	HeartRateBPM float64 `yaml:"heartRateBpm"`
	Description  string  `yaml:"description"`
	Flows        []Flow  `yaml:"flows"`
}

// HeartRate returns the case heart rate, or DefaultHeartRate when unset.
// A nil case also yields the default.
func (c *Case) HeartRate() float64 {
	if c == nil || c.HeartRateBPM <= 0 {
		return DefaultHeartRate
	}
	return c.HeartRateBPM
}

// FlowsFor returns the flows scoped to view, in catalog order.
func (c *Case) FlowsFor(view View) []Flow {
	if c == nil {
		return nil
	}
	var out []Flow
	for _, f := range c.Flows {
		if f.View == view {
			out = append(out, f)
		}
	}
	return out
}

// Catalog is an ordered, read-only list of cases.
type Catalog struct {
	cases []Case
	index map[string]int
}

// Parse decodes a YAML case list.
func Parse(data []byte) (*Catalog, error) {
	return Load(bytes.NewReader(data))
}

// Load decodes a YAML case list from r.
func Load(r io.Reader) (*Catalog, error) {
	var cases []Case
	if err := yaml.NewDecoder(r).Decode(&cases); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	if len(cases) == 0 {
		return nil, errors.New("catalog: no cases")
	}

	c := &Catalog{cases: cases, index: make(map[string]int, len(cases))}
	for i := range cases {
		cs := &cases[i]
		cs.ID = strings.TrimSpace(cs.ID)
		if cs.ID == "" {
			return nil, fmt.Errorf("catalog: case %d has no id", i)
		}
		if _, dup := c.index[cs.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate case id %q", cs.ID)
		}
		for j, f := range cs.Flows {
			if err := validateFlow(f); err != nil {
				return nil, fmt.Errorf("catalog: case %q flow %d: %w", cs.ID, j, err)
			}
		}
		c.index[cs.ID] = i
	}
	return c, nil
}

func validateFlow(f Flow) error {
	switch f.Type {
	case FlowVSD, FlowPDA, FlowRVOTObs, FlowCoarc:
	default:
		return fmt.Errorf("unknown flow type %q", f.Type)
	}
	switch f.Direction {
	case TowardProbe, AwayFromProbe, Bidirectional:
	default:
		return fmt.Errorf("unknown colour direction %q", f.Direction)
	}
	if f.Strength < 0 || f.Strength > 1 {
		return fmt.Errorf("strength %v outside [0,1]", f.Strength)
	}
	return nil
}

// Builtin returns the embedded teaching catalog.
func Builtin() *Catalog {
	c, err := Parse(builtinYAML)
	if err != nil {
		panic(err) // embedded data is fixed at build time
	}
	return c
}

// Cases returns the cases in catalog order. The slice must not be modified.
func (c *Catalog) Cases() []Case {
	return c.cases
}

// Len returns the number of cases.
func (c *Catalog) Len() int {
	return len(c.cases)
}

// Default returns the first case.
func (c *Catalog) Default() *Case {
	return &c.cases[0]
}

// Lookup returns the case with the given id.
func (c *Catalog) Lookup(id string) (*Case, bool) {
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return &c.cases[i], true
}

// Get is like Lookup but returns an error wrapping ErrUnknownCase on a miss.
func (c *Catalog) Get(id string) (*Case, error) {
	cs, ok := c.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCase, id)
	}
	return cs, nil
}
