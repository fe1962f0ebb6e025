package options

import (
	"fmt"
	"math/bits"

	"github.com/hasbyte1/argon2-cli/hashing"
)

// Option names as they appear on the command line (without the dash).
const (
	OptSalt        = "salt"
	OptArgon2i     = "i"
	OptArgon2d     = "d"
	OptArgon2id    = "id"
	OptTimeCost    = "t"
	OptMemoryExp   = "m"
	OptMemoryAbs   = "k"
	OptParallelism = "p"
	OptHashLength  = "l"
	OptEncoded     = "e"
	OptRaw         = "r"
	OptVersion     = "v"
)

// OptionKind describes the kind of value an option takes.
type OptionKind int

const (
	// FlagKind is a boolean switch.
	FlagKind OptionKind = iota
	// IntegerKind takes a decimal integer.
	IntegerKind
	// EnumKind takes one of a fixed list of strings.
	EnumKind
	// ChoiceKind is a switch that selects one member of a mutual-exclusion group.
	ChoiceKind
	// PositionalKind is a free-text positional argument.
	PositionalKind
)

// Group identifies a mutual-exclusion group. At most one option of a group
// may be set.
type Group string

const (
	// NoGroup marks an option that belongs to no group.
	NoGroup Group = ""
	// GroupVariant holds -i, -d and -id.
	GroupVariant Group = "type"
	// GroupMemory holds -m and -k.
	GroupMemory Group = "memoryCost"
	// GroupOutput holds -e and -r.
	GroupOutput Group = "output"
)

// OptionSpec is the static description of one option.
type OptionSpec struct {
	// Name is the flag name without its dash, e.g. "t".
	Name string
	// Field is the name error messages use, e.g. "timeCost".
	Field string
	Kind  OptionKind
	// Default is the textual default shown in usage. Empty for switches.
	Default string
	// Bounds are inclusive and only meaningful when Bounded is true.
	Bounds  hashing.Range
	Bounded bool
	// Choices lists accepted values of an EnumKind option.
	Choices []string
	Group   Group
	Metavar string
	Usage   string
}

// Schema is the immutable set of options the resolver validates against.
type Schema struct {
	specs  []OptionSpec
	byName map[string]int
}

// NewSchema declares every option with defaults and bounds taken from cfg.
func NewSchema(cfg Config) *Schema {
	l := cfg.Limits
	specs := []OptionSpec{
		{Name: OptSalt, Field: "salt", Kind: PositionalKind, Metavar: "salt",
			Usage: "Salt text (a random salt is generated when omitted)"},

		{Name: OptArgon2i, Field: "type", Kind: ChoiceKind, Group: GroupVariant,
			Usage: "Use Argon2i (this is the default)"},
		{Name: OptArgon2d, Field: "type", Kind: ChoiceKind, Group: GroupVariant,
			Usage: "Use Argon2d instead of Argon2i"},
		{Name: OptArgon2id, Field: "type", Kind: ChoiceKind, Group: GroupVariant,
			Usage: "Use Argon2id instead of Argon2i"},

		{Name: OptTimeCost, Field: "timeCost", Kind: IntegerKind, Metavar: "N",
			Default: fmt.Sprint(cfg.TimeCost), Bounds: l.TimeCost, Bounded: true,
			Usage: fmt.Sprintf("Sets the number of iterations to N (default %d)", cfg.TimeCost)},

		{Name: OptMemoryExp, Field: "memoryCost", Kind: IntegerKind, Group: GroupMemory, Metavar: "N",
			Default: fmt.Sprint(log2(cfg.MemoryCost)),
			Usage:   fmt.Sprintf("Sets the memory usage to 2^N KiB (default %d)", log2(cfg.MemoryCost))},
		{Name: OptMemoryAbs, Field: "memoryCost", Kind: IntegerKind, Group: GroupMemory, Metavar: "N",
			Default: fmt.Sprint(cfg.MemoryCost), Bounds: l.MemoryCost, Bounded: true,
			Usage: fmt.Sprintf("Sets the memory usage to N KiB (default %d)", cfg.MemoryCost)},

		{Name: OptParallelism, Field: "parallelism", Kind: IntegerKind, Metavar: "N",
			Default: fmt.Sprint(cfg.Parallelism), Bounds: l.Parallelism, Bounded: true,
			Usage: fmt.Sprintf("Sets parallelism to N threads (default %d)", cfg.Parallelism)},
		{Name: OptHashLength, Field: "hashLength", Kind: IntegerKind, Metavar: "N",
			Default: fmt.Sprint(cfg.HashLength), Bounds: l.HashLength, Bounded: true,
			Usage: fmt.Sprintf("Sets hash output length to N bytes (default %d)", cfg.HashLength)},

		{Name: OptEncoded, Field: "output", Kind: ChoiceKind, Group: GroupOutput,
			Usage: "Output only encoded hash"},
		{Name: OptRaw, Field: "output", Kind: ChoiceKind, Group: GroupOutput,
			Usage: "Output only the raw bytes of the hash"},

		{Name: OptVersion, Field: "version", Kind: EnumKind, Metavar: "(10|13)",
			Default: versionTag(cfg.Version), Choices: []string{"10", "13"},
			Usage: fmt.Sprintf("Argon2 version (defaults to the most recent version, currently %s)",
				versionTag(hashing.DefaultVersion))},
	}

	s := &Schema{specs: specs, byName: make(map[string]int, len(specs))}
	for i, spec := range specs {
		s.byName[spec.Name] = i
	}
	return s
}

// Options returns every option in declaration order.
func (s *Schema) Options() []OptionSpec {
	out := make([]OptionSpec, len(s.specs))
	copy(out, s.specs)
	return out
}

// Lookup returns the option with the given name.
func (s *Schema) Lookup(name string) (OptionSpec, bool) {
	i, ok := s.byName[name]
	if !ok {
		return OptionSpec{}, false
	}
	return s.specs[i], true
}

// Members returns the options of group g in declaration order.
func (s *Schema) Members(g Group) []OptionSpec {
	var out []OptionSpec
	for _, spec := range s.specs {
		if g != NoGroup && spec.Group == g {
			out = append(out, spec)
		}
	}
	return out
}

// Groups returns the mutual-exclusion groups in declaration order.
func (s *Schema) Groups() []Group {
	var out []Group
	seen := make(map[Group]bool)
	for _, spec := range s.specs {
		if spec.Group != NoGroup && !seen[spec.Group] {
			seen[spec.Group] = true
			out = append(out, spec.Group)
		}
	}
	return out
}

// versionTag renders a version the way -v accepts it: 0x13 is "13".
func versionTag(v hashing.Version) string {
	return fmt.Sprintf("%x", uint32(v))
}

func log2(n uint32) int {
	return bits.Len32(n) - 1
}
