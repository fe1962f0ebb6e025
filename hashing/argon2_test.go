package hashing_test

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/hasbyte1/argon2-cli/hashing"
)

// fastParams returns minimal Argon2 parameters for unit tests.
// These are intentionally weak. Do NOT use in production.
func fastParams(variant hashing.Variant) hashing.Params {
	return hashing.Params{
		Variant:     variant,
		Version:     hashing.Version13,
		TimeCost:    1,
		MemoryCost:  1024,
		Parallelism: 2,
		HashLength:  16,
		SaltLength:  8,
	}
}

func mustHash(t *testing.T, h *hashing.Argon2, password string, p hashing.Params) hashing.Result {
	t.Helper()
	res, err := h.Hash([]byte(password), p)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	return res
}

// ──────────────────────────────────────────────────────────────────────────────
// Known answers
// ──────────────────────────────────────────────────────────────────────────────

func TestArgon2_Hash_DefaultFixtures(t *testing.T) {
	tests := []struct {
		variant hashing.Variant
		want    string
	}{
		{hashing.Argon2i, "$argon2i$v=19$m=4096,t=3,p=1$c29tZXNhbHQ$iWh06vD8Fy27wf9npn6FXWiCX4K6pW6Ue1Bnzz07Z8A"},
		{hashing.Argon2d, "$argon2d$v=19$m=4096,t=3,p=1$c29tZXNhbHQ$2+JCoQtY/2x5F0VB9pEVP3xBNguWP1T25Ui0PtZuk8o"},
	}
	h := hashing.NewArgon2()
	for _, tt := range tests {
		t.Run(tt.variant.String(), func(t *testing.T) {
			p := hashing.DefaultParams()
			p.Variant = tt.variant
			p.Salt = []byte("somesalt")
			res := mustHash(t, h, "password", p)
			if res.Encoded != tt.want {
				t.Errorf("Encoded = %q, want %q", res.Encoded, tt.want)
			}
		})
	}
}

func TestArgon2_Hash_ReferenceVectors(t *testing.T) {
	// Argon2i, t=2, m=2^16, p=1, password "password", salt "somesalt".
	tests := []struct {
		name    string
		version hashing.Version
		want    string
	}{
		{"v10", hashing.Version10, "f6c4db4a54e2a370627aff3db6176b94a2a209a62c8e36152711802f7b30c694"},
		{"v13", hashing.Version13, "c1628832147d9720c5bd1cfd61367078729f6dfb6f8fea9ff98158e0d7816ed0"},
	}
	h := hashing.NewArgon2()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := hashing.DefaultParams()
			p.Version = tt.version
			p.TimeCost = 2
			p.MemoryCost = 1 << 16
			p.Salt = []byte("somesalt")
			res := mustHash(t, h, "password", p)
			if got := hex.EncodeToString(res.Raw); got != tt.want {
				t.Errorf("Raw = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestArgon2_Hash_RawMatchesEncodedDigest(t *testing.T) {
	h := hashing.NewArgon2()
	p := fastParams(hashing.Argon2id)
	p.Salt = []byte("somesalt")
	res := mustHash(t, h, "password", p)

	info, err := h.Info(res.Encoded)
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if hex.EncodeToString(info.Hash) != hex.EncodeToString(res.Raw) {
		t.Errorf("encoded digest %x differs from raw %x", info.Hash, res.Raw)
	}
	if len(res.Raw) != int(p.HashLength) {
		t.Errorf("len(Raw) = %d, want %d", len(res.Raw), p.HashLength)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Salt handling
// ──────────────────────────────────────────────────────────────────────────────

func TestArgon2_Hash_GeneratedSalt(t *testing.T) {
	h := hashing.NewArgon2()
	p := fastParams(hashing.Argon2i)
	p.SaltLength = hashing.DefaultSaltLength

	r1 := mustHash(t, h, "same", p)
	r2 := mustHash(t, h, "same", p)
	if r1.Encoded == r2.Encoded {
		t.Error("two Hash calls without a salt must produce different hashes")
	}

	parts := strings.Split(r1.Encoded, "$")
	if len(parts) != 6 {
		t.Fatalf("encoded %q has %d segments", r1.Encoded, len(parts)-1)
	}
	if len(parts[4]) != 22 {
		t.Errorf("salt segment %q has %d characters, want 22", parts[4], len(parts[4]))
	}
	if len(r1.Salt) != int(hashing.DefaultSaltLength) {
		t.Errorf("len(Salt) = %d, want %d", len(r1.Salt), hashing.DefaultSaltLength)
	}
}

func TestArgon2_Hash_ExplicitSaltIsDeterministic(t *testing.T) {
	h := hashing.NewArgon2()
	p := fastParams(hashing.Argon2d)
	p.Salt = []byte("0123456789abcdef")
	r1 := mustHash(t, h, "pw", p)
	r2 := mustHash(t, h, "pw", p)
	if r1.Encoded != r2.Encoded {
		t.Errorf("same inputs gave %q and %q", r1.Encoded, r2.Encoded)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Validation
// ──────────────────────────────────────────────────────────────────────────────

func TestArgon2_Hash_InvalidOptions(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*hashing.Params)
		field   string
		message string
	}{
		{"time=0", func(p *hashing.Params) { p.TimeCost = 0 }, "timeCost", "Invalid timeCost: 0 must be between 1 and 4294967295"},
		{"memory<1024", func(p *hashing.Params) { p.MemoryCost = 1023 }, "memoryCost", "Invalid memoryCost: 1023 must be between 1024 and 4294967295"},
		{"threads=0", func(p *hashing.Params) { p.Parallelism = 0 }, "parallelism", "Invalid parallelism: 0 must be between 1 and 16777215"},
		{"threads too high", func(p *hashing.Params) { p.Parallelism = 1 << 24 }, "parallelism", "Invalid parallelism: 16777216 must be between 1 and 16777215"},
		{"memory<8*threads", func(p *hashing.Params) { p.Parallelism = 200 }, "memoryCost", "Invalid memoryCost: 1024 must be at least 8 times parallelism (1600)"},
		{"hashLength<4", func(p *hashing.Params) { p.HashLength = 3 }, "hashLength", "Invalid hashLength: 3 must be between 4 and 4294967295"},
		{"short salt", func(p *hashing.Params) { p.Salt = []byte("short") }, "saltLength", "Invalid saltLength: 5 must be between 8 and 4294967295"},
		{"empty salt", func(p *hashing.Params) { p.Salt = []byte{} }, "saltLength", "Invalid saltLength: 0 must be between 8 and 4294967295"},
		{"variant", func(p *hashing.Params) { p.Variant = 7 }, "type", "Invalid type: 7 must be one of argon2d, argon2i, argon2id"},
		{"version", func(p *hashing.Params) { p.Version = 0x12 }, "version", "Invalid version: 12 must be one of 10, 13"},
	}
	h := hashing.NewArgon2()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := fastParams(hashing.Argon2i)
			tt.mutate(&p)
			_, err := h.Hash([]byte("pw"), p)
			if !errors.Is(err, hashing.ErrInvalidOption) {
				t.Fatalf("expected ErrInvalidOption, got %v", err)
			}
			var optErr *hashing.OptionError
			if !errors.As(err, &optErr) {
				t.Fatalf("expected *OptionError, got %T", err)
			}
			if optErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", optErr.Field, tt.field)
			}
			if err.Error() != tt.message {
				t.Errorf("message = %q, want %q", err.Error(), tt.message)
			}
		})
	}
}

func TestDefaultParams(t *testing.T) {
	p := hashing.DefaultParams()
	if p.Variant != hashing.Argon2i {
		t.Errorf("Variant = %v, want argon2i", p.Variant)
	}
	if p.Version != hashing.Version13 {
		t.Errorf("Version = %#x, want 0x13", uint32(p.Version))
	}
	if p.TimeCost != 3 || p.MemoryCost != 4096 || p.Parallelism != 1 || p.HashLength != 32 {
		t.Errorf("costs = t=%d m=%d p=%d l=%d, want 3/4096/1/32",
			p.TimeCost, p.MemoryCost, p.Parallelism, p.HashLength)
	}
	if p.Salt != nil {
		t.Errorf("Salt = %q, want nil", p.Salt)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Verify / Info
// ──────────────────────────────────────────────────────────────────────────────

func TestArgon2_Verify_AllVariantsAndVersions(t *testing.T) {
	h := hashing.NewArgon2()
	for _, v := range []hashing.Variant{hashing.Argon2d, hashing.Argon2i, hashing.Argon2id} {
		for _, ver := range []hashing.Version{hashing.Version10, hashing.Version13} {
			p := fastParams(v)
			p.Version = ver
			res := mustHash(t, h, "secret", p)

			ok, err := h.Verify(res.Encoded, []byte("secret"))
			if err != nil || !ok {
				t.Errorf("%s v=%d: Verify correct password: ok=%v err=%v", v, ver, ok, err)
			}
			ok, err = h.Verify(res.Encoded, []byte("wrong"))
			if err != nil || ok {
				t.Errorf("%s v=%d: Verify wrong password: ok=%v err=%v", v, ver, ok, err)
			}
		}
	}
}

func TestArgon2_Verify_EmptyPassword(t *testing.T) {
	h := hashing.NewArgon2()
	res := mustHash(t, h, "", fastParams(hashing.Argon2i))
	ok, err := h.Verify(res.Encoded, nil)
	if err != nil || !ok {
		t.Fatalf("empty password round-trip: ok=%v err=%v", ok, err)
	}
}

func TestArgon2_Verify_InvalidHash(t *testing.T) {
	inputs := []string{
		"not-a-hash",
		"$argon2x$v=19$m=4096,t=3,p=1$c29tZXNhbHQ$iWh06vD8Fy27wf9npn6FXWiCX4K6pW6Ue1Bnzz07Z8A",
		"$argon2i$v=18$m=4096,t=3,p=1$c29tZXNhbHQ$iWh06vD8Fy27wf9npn6FXWiCX4K6pW6Ue1Bnzz07Z8A",
		"$argon2i$v=19$m=4096,t=0,p=1$c29tZXNhbHQ$iWh06vD8Fy27wf9npn6FXWiCX4K6pW6Ue1Bnzz07Z8A",
		"$argon2i$v=19$m=4096,t=3$c29tZXNhbHQ$iWh06vD8Fy27wf9npn6FXWiCX4K6pW6Ue1Bnzz07Z8A",
		"$argon2i$v=19$m=4096,t=3,p=1$!!!$iWh06vD8Fy27wf9npn6FXWiCX4K6pW6Ue1Bnzz07Z8A",
		"$argon2i$v=19$m=4096,t=3,p=1$c29tZXNhbHQ$",
	}
	h := hashing.NewArgon2()
	for _, in := range inputs {
		if _, err := h.Verify(in, []byte("password")); !errors.Is(err, hashing.ErrInvalidHash) {
			t.Errorf("Verify(%q): expected ErrInvalidHash, got %v", in, err)
		}
	}
}

func TestArgon2_Verify_LegacyEncodingWithoutVersion(t *testing.T) {
	h := hashing.NewArgon2()
	p := fastParams(hashing.Argon2i)
	p.Version = hashing.Version10
	res := mustHash(t, h, "pw", p)

	legacy := strings.Replace(res.Encoded, "$v=16", "", 1)
	ok, err := h.Verify(legacy, []byte("pw"))
	if err != nil || !ok {
		t.Fatalf("Verify(%q): ok=%v err=%v", legacy, ok, err)
	}
}

func TestArgon2_Info(t *testing.T) {
	h := hashing.NewArgon2()
	p := fastParams(hashing.Argon2id)
	p.Salt = []byte("somesalt")
	res := mustHash(t, h, "pw", p)

	info, err := h.Info(res.Encoded)
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.Variant != hashing.Argon2id {
		t.Errorf("Variant = %v, want argon2id", info.Variant)
	}
	if info.Version != hashing.Version13 {
		t.Errorf("Version = %d, want 19", info.Version)
	}
	if info.MemoryCost != p.MemoryCost || info.TimeCost != p.TimeCost || info.Parallelism != p.Parallelism {
		t.Errorf("costs = m=%d t=%d p=%d, want m=%d t=%d p=%d",
			info.MemoryCost, info.TimeCost, info.Parallelism, p.MemoryCost, p.TimeCost, p.Parallelism)
	}
	if string(info.Salt) != "somesalt" {
		t.Errorf("Salt = %q, want somesalt", info.Salt)
	}
}

func TestArgon2_SatisfiesHasherInterface(t *testing.T) {
	var _ hashing.Hasher = hashing.NewArgon2()
}

func TestDetectVariant(t *testing.T) {
	tests := []struct {
		in   string
		want hashing.Variant
		ok   bool
	}{
		{"$argon2d$v=19$...", hashing.Argon2d, true},
		{"$argon2i$v=19$...", hashing.Argon2i, true},
		{"$argon2id$v=19$...", hashing.Argon2id, true},
		{"$2y$10$...", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := hashing.DetectVariant(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("DetectVariant(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestVariant_Names(t *testing.T) {
	tests := []struct {
		v        hashing.Variant
		id, name string
	}{
		{hashing.Argon2d, "argon2d", "Argon2d"},
		{hashing.Argon2i, "argon2i", "Argon2i"},
		{hashing.Argon2id, "argon2id", "Argon2id"},
	}
	for _, tt := range tests {
		if tt.v.String() != tt.id || tt.v.Name() != tt.name {
			t.Errorf("Variant(%d) = %q/%q, want %q/%q", int(tt.v), tt.v.String(), tt.v.Name(), tt.id, tt.name)
		}
	}
}
