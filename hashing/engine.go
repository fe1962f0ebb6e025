// Portions copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file of golang.org/x/crypto.

package hashing

import (
	"encoding/binary"
	"hash"
	"math/bits"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// ──────────────────────────────────────────────────────────────────────────────
// Block engine
// ──────────────────────────────────────────────────────────────────────────────
//
// The engine implements the memory-filling core of Argon2 for every variant and
// both revisions. It follows the same structure as golang.org/x/crypto/argon2:
// H0 is derived with BLAKE2b, the first two blocks of each lane are expanded
// from it, the lanes are filled slice by slice, and the final blocks of all
// lanes are folded into the digest.
//
// Derived from golang.org/x/crypto/argon2 (argon2.go, blake2b.go, blamka_generic.go).
// Changes: argon2d, revision 0x10 (blocks overwritten instead of XOR-ed) and
// more than 255 lanes.

const (
	blockLength = 128 // 64-bit words per 1 KiB block
	syncPoints  = 4   // slices per pass
)

type block [blockLength]uint64

// engineKey computes the raw Argon2 digest.
// Callers must have validated time >= 1, threads >= 1 and memory >= 8*threads.
func engineKey(variant Variant, version Version, password, salt []byte, time, memory, threads, keyLen uint32) []byte {
	h0 := initHash(password, salt, time, memory, threads, keyLen, variant, version)

	// Round memory down to a whole number of segments.
	memory = memory / (syncPoints * threads) * (syncPoints * threads)
	if memory < 2*syncPoints*threads {
		memory = 2 * syncPoints * threads
	}

	B := initBlocks(&h0, memory, threads)
	processBlocks(B, time, memory, threads, variant, version)
	return extractKey(B, memory, threads, keyLen)
}

func initHash(password, salt []byte, time, memory, threads, keyLen uint32, variant Variant, version Version) [blake2b.Size + 8]byte {
	var (
		h0     [blake2b.Size + 8]byte
		params [24]byte
		tmp    [4]byte
	)

	b2, _ := blake2b.New512(nil)
	binary.LittleEndian.PutUint32(params[0:4], threads)
	binary.LittleEndian.PutUint32(params[4:8], keyLen)
	binary.LittleEndian.PutUint32(params[8:12], memory)
	binary.LittleEndian.PutUint32(params[12:16], time)
	binary.LittleEndian.PutUint32(params[16:20], uint32(version))
	binary.LittleEndian.PutUint32(params[20:24], uint32(variant))
	b2.Write(params[:])

	// password, salt, secret (unused), associated data (unused)
	for _, field := range [][]byte{password, salt, nil, nil} {
		binary.LittleEndian.PutUint32(tmp[:], uint32(len(field)))
		b2.Write(tmp[:])
		b2.Write(field)
	}
	b2.Sum(h0[:0])
	return h0
}

func initBlocks(h0 *[blake2b.Size + 8]byte, memory, threads uint32) []block {
	var block0 [1024]byte
	B := make([]block, memory)
	laneLen := memory / threads
	for lane := uint32(0); lane < threads; lane++ {
		j := lane * laneLen
		binary.LittleEndian.PutUint32(h0[blake2b.Size+4:], lane)
		for i := uint32(0); i < 2; i++ {
			binary.LittleEndian.PutUint32(h0[blake2b.Size:], i)
			blake2bHash(block0[:], h0[:])
			for k := range B[j+i] {
				B[j+i][k] = binary.LittleEndian.Uint64(block0[k*8:])
			}
		}
	}
	return B
}

func processBlocks(B []block, time, memory, threads uint32, variant Variant, version Version) {
	laneLen := memory / threads
	segLen := laneLen / syncPoints

	processSegment := func(n, slice, lane uint32, wg *sync.WaitGroup) {
		defer wg.Done()

		var addresses, in, zero block
		independent := variant == Argon2i || (variant == Argon2id && n == 0 && slice < syncPoints/2)
		if independent {
			in[0] = uint64(n)
			in[1] = uint64(lane)
			in[2] = uint64(slice)
			in[3] = uint64(memory)
			in[4] = uint64(time)
			in[5] = uint64(variant)
		}

		index := uint32(0)
		if n == 0 && slice == 0 {
			index = 2 // the first two blocks come from initBlocks
			if independent {
				nextAddresses(&addresses, &in, &zero)
			}
		}

		offset := lane*laneLen + slice*segLen + index
		var random uint64
		for index < segLen {
			prev := offset - 1
			if index == 0 && slice == 0 {
				prev += laneLen // last block in lane
			}
			if independent {
				if index%blockLength == 0 {
					nextAddresses(&addresses, &in, &zero)
				}
				random = addresses[index%blockLength]
			} else {
				random = B[prev][0]
			}
			ref := indexAlpha(random, laneLen, segLen, threads, n, slice, lane, index)
			if version == Version10 {
				processBlock(&B[offset], &B[prev], &B[ref])
			} else {
				processBlockXOR(&B[offset], &B[prev], &B[ref])
			}
			index, offset = index+1, offset+1
		}
	}

	for n := uint32(0); n < time; n++ {
		for slice := uint32(0); slice < syncPoints; slice++ {
			var wg sync.WaitGroup
			for lane := uint32(0); lane < threads; lane++ {
				wg.Add(1)
				go processSegment(n, slice, lane, &wg)
			}
			wg.Wait()
		}
	}
}

// nextAddresses bumps the counter in the input block and derives the next
// block of pseudo-random reference positions for data-independent addressing.
func nextAddresses(addresses, in, zero *block) {
	in[6]++
	processBlock(addresses, in, zero)
	processBlock(addresses, addresses, zero)
}

func extractKey(B []block, memory, threads, keyLen uint32) []byte {
	laneLen := memory / threads
	for lane := uint32(0); lane < threads-1; lane++ {
		for i, v := range B[lane*laneLen+laneLen-1] {
			B[memory-1][i] ^= v
		}
	}

	var buf [1024]byte
	for i, v := range B[memory-1] {
		binary.LittleEndian.PutUint64(buf[i*8:], v)
	}
	key := make([]byte, keyLen)
	blake2bHash(key, buf[:])
	return key
}

// indexAlpha maps a pseudo-random value to the absolute index of the
// reference block, restricted to blocks that are already finished.
func indexAlpha(rand uint64, laneLen, segLen, threads, n, slice, lane, index uint32) uint32 {
	refLane := uint32(rand>>32) % threads
	if n == 0 && slice == 0 {
		refLane = lane
	}
	m, s := 3*segLen, ((slice+1)%syncPoints)*segLen
	if lane == refLane {
		m += index
	}
	if n == 0 {
		m, s = slice*segLen, 0
		if slice == 0 || lane == refLane {
			m += index
		}
	}
	if index == 0 || lane == refLane {
		m--
	}
	return phi(rand, uint64(m), uint64(s), refLane, laneLen)
}

func phi(rand, m, s uint64, lane, laneLen uint32) uint32 {
	p := rand & 0xFFFFFFFF
	p = (p * p) >> 32
	p = (p * m) >> 32
	return lane*laneLen + uint32((s+m-(p+1))%uint64(laneLen))
}

// blake2bHash is the variable-length hash function H' used to expand H0
// into blocks and to compress the final block into the digest.
func blake2bHash(out []byte, in []byte) {
	var b2 hash.Hash
	if n := len(out); n < blake2b.Size {
		b2, _ = blake2b.New(n, nil)
	} else {
		b2, _ = blake2b.New512(nil)
	}

	var buffer [blake2b.Size]byte
	binary.LittleEndian.PutUint32(buffer[:4], uint32(len(out)))
	b2.Write(buffer[:4])
	b2.Write(in)

	if len(out) <= blake2b.Size {
		b2.Sum(out[:0])
		return
	}

	outLen := len(out)
	b2.Sum(buffer[:0])
	b2.Reset()
	copy(out, buffer[:32])
	out = out[32:]
	for len(out) > blake2b.Size {
		b2.Write(buffer[:])
		b2.Sum(buffer[:0])
		copy(out, buffer[:32])
		out = out[32:]
		b2.Reset()
	}

	if outLen%blake2b.Size > 0 {
		r := ((outLen + 31) / 32) - 2
		b2, _ = blake2b.New(outLen-32*r, nil)
	}
	b2.Write(buffer[:])
	b2.Sum(out[:0])
}

// ──────────────────────────────────────────────────────────────────────────────
// Compression function G
// ──────────────────────────────────────────────────────────────────────────────

// rows and cols hold the word indices each BlaMka round operates on: first
// the eight 16-word rows, then the eight interleaved column pairs.
var rows, cols [8][16]int

func init() {
	for r := 0; r < 8; r++ {
		for i := 0; i < 16; i++ {
			rows[r][i] = 16*r + i
			cols[r][i] = 2*r + 16*(i/2) + i%2
		}
	}
}

func processBlock(out, in1, in2 *block)    { processBlockGeneric(out, in1, in2, false) }
func processBlockXOR(out, in1, in2 *block) { processBlockGeneric(out, in1, in2, true) }

func processBlockGeneric(out, in1, in2 *block, xor bool) {
	var t block
	for i := range t {
		t[i] = in1[i] ^ in2[i]
	}
	for r := range rows {
		blamkaRound(&t, &rows[r])
	}
	for r := range cols {
		blamkaRound(&t, &cols[r])
	}
	if xor {
		for i := range t {
			out[i] ^= in1[i] ^ in2[i] ^ t[i]
		}
	} else {
		for i := range t {
			out[i] = in1[i] ^ in2[i] ^ t[i]
		}
	}
}

func blamkaRound(t *block, idx *[16]int) {
	var v [16]uint64
	for i, j := range idx {
		v[i] = t[j]
	}
	g(&v[0], &v[4], &v[8], &v[12])
	g(&v[1], &v[5], &v[9], &v[13])
	g(&v[2], &v[6], &v[10], &v[14])
	g(&v[3], &v[7], &v[11], &v[15])
	g(&v[0], &v[5], &v[10], &v[15])
	g(&v[1], &v[6], &v[11], &v[12])
	g(&v[2], &v[7], &v[8], &v[13])
	g(&v[3], &v[4], &v[9], &v[14])
	for i, j := range idx {
		t[j] = v[i]
	}
}

func g(a, b, c, d *uint64) {
	*a = fBlaMka(*a, *b)
	*d = bits.RotateLeft64(*d^*a, -32)
	*c = fBlaMka(*c, *d)
	*b = bits.RotateLeft64(*b^*c, -24)
	*a = fBlaMka(*a, *b)
	*d = bits.RotateLeft64(*d^*a, -16)
	*c = fBlaMka(*c, *d)
	*b = bits.RotateLeft64(*b^*c, -63)
}

func fBlaMka(x, y uint64) uint64 {
	return x + y + 2*uint64(uint32(x))*uint64(uint32(y))
}
