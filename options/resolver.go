package options

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/hasbyte1/argon2-cli/hashing"
)

// maxExponent is the largest -m value whose power of two still fits in the
// int64 the resolver computes with.
const maxExponent = 62

// Resolver turns raw command-line values into a [HashRequest].
//
// # Thread safety
//
// Resolver is immutable after construction and safe for concurrent use.
type Resolver struct {
	cfg    Config
	schema *Schema
}

// NewResolver returns a Resolver whose defaults and bounds come from cfg.
func NewResolver(cfg Config) *Resolver {
	return &Resolver{cfg: cfg, schema: NewSchema(cfg)}
}

// Schema returns the schema the resolver validates against.
func (r *Resolver) Schema() *Schema { return r.schema }

// Resolve applies defaulting, precedence and range rules to raw.
// Every failure is a [*ValidationError].
func (r *Resolver) Resolve(raw RawArgs) (HashRequest, error) {
	for name := range raw {
		if _, ok := r.schema.Lookup(name); !ok {
			return HashRequest{}, &ValidationError{
				Field:   name,
				Kind:    UnknownOption,
				Message: fmt.Sprintf("Invalid option: -%s is not recognised", name),
			}
		}
	}
	for _, g := range r.schema.Groups() {
		if err := r.exclusive(g, raw); err != nil {
			return HashRequest{}, err
		}
	}

	req := HashRequest{
		Variant:    r.variant(raw),
		SaltLength: r.cfg.SaltLength,
		Output:     r.output(raw),
	}

	var err error
	if req.TimeCost, err = r.integer(OptTimeCost, raw, r.cfg.TimeCost); err != nil {
		return HashRequest{}, err
	}
	if req.MemoryCost, req.MemorySource, err = r.memory(raw); err != nil {
		return HashRequest{}, err
	}
	if req.Parallelism, err = r.integer(OptParallelism, raw, r.cfg.Parallelism); err != nil {
		return HashRequest{}, err
	}
	if req.HashLength, err = r.integer(OptHashLength, raw, r.cfg.HashLength); err != nil {
		return HashRequest{}, err
	}
	if req.Version, err = r.version(raw); err != nil {
		return HashRequest{}, err
	}
	if salt, ok := raw[OptSalt]; ok {
		req.Salt = []byte(salt)
	}
	return req, nil
}

// exclusive rejects raw when more than one member of g is set.
func (r *Resolver) exclusive(g Group, raw RawArgs) error {
	var set []string
	var field string
	for _, spec := range r.schema.Members(g) {
		if _, ok := raw[spec.Name]; ok {
			set = append(set, spec.Name)
			field = spec.Field
		}
	}
	if len(set) > 1 {
		return conflict(field, set)
	}
	return nil
}

func (r *Resolver) variant(raw RawArgs) hashing.Variant {
	switch {
	case isSet(raw, OptArgon2d):
		return hashing.Argon2d
	case isSet(raw, OptArgon2id):
		return hashing.Argon2id
	case isSet(raw, OptArgon2i):
		return hashing.Argon2i
	default:
		return r.cfg.Variant
	}
}

func (r *Resolver) output(raw RawArgs) OutputMode {
	switch {
	case isSet(raw, OptEncoded):
		return OutputEncoded
	case isSet(raw, OptRaw):
		return OutputRaw
	default:
		return r.cfg.Output
	}
}

// integer parses option name, falling back to def when it is absent.
func (r *Resolver) integer(name string, raw RawArgs, def uint32) (uint32, error) {
	spec, _ := r.schema.Lookup(name)
	text, ok := raw[name]
	if !ok {
		return def, nil
	}
	n, err := parseInt(spec.Field, text)
	if err != nil {
		return 0, err
	}
	return checkBounds(spec.Field, text, n, spec.Bounds)
}

// memory resolves the memory cost. An absolute value wins over an exponent,
// an exponent wins over the default. Every path is checked against the
// absolute KiB bounds.
func (r *Resolver) memory(raw RawArgs) (uint32, MemorySource, error) {
	abs, _ := r.schema.Lookup(OptMemoryAbs)
	bounds := abs.Bounds

	if text, ok := raw[OptMemoryAbs]; ok {
		n, err := parseInt(abs.Field, text)
		if err != nil {
			return 0, 0, err
		}
		kib, err := checkBounds(abs.Field, text, n, bounds)
		return kib, MemoryFromAbsolute, err
	}

	if text, ok := raw[OptMemoryExp]; ok {
		exp, err := parseInt(abs.Field, text)
		if err != nil {
			return 0, 0, err
		}
		if exp < 0 || exp > maxExponent {
			return 0, 0, outOfRange(abs.Field, "2^"+text, bounds.Min, bounds.Max)
		}
		n := int64(1) << exp
		kib, err := checkBounds(abs.Field, strconv.FormatInt(n, 10), n, bounds)
		return kib, MemoryFromExponent, err
	}

	kib, err := checkBounds(abs.Field, fmt.Sprint(r.cfg.MemoryCost), int64(r.cfg.MemoryCost), bounds)
	return kib, MemoryFromDefault, err
}

func (r *Resolver) version(raw RawArgs) (hashing.Version, error) {
	text, ok := raw[OptVersion]
	if !ok {
		return r.cfg.Version, nil
	}
	spec, _ := r.schema.Lookup(OptVersion)
	switch text {
	case "10":
		return hashing.Version10, nil
	case "13":
		return hashing.Version13, nil
	default:
		return 0, invalidChoice(spec.Field, text, spec.Choices)
	}
}

func isSet(raw RawArgs, name string) bool {
	_, ok := raw[name]
	return ok
}

// parseInt reads a base-10 integer. A numeric value too large for int64 is
// a range error rather than a parse error.
func parseInt(field, text string) (int64, error) {
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return n, nil
		}
		return 0, notInteger(field, text)
	}
	return n, nil
}

func checkBounds(field, text string, n int64, b hashing.Range) (uint32, error) {
	if n < 0 || !b.Contains(uint64(n)) {
		return 0, outOfRange(field, text, b.Min, b.Max)
	}
	return uint32(n), nil
}
