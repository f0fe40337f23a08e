package common

// Source is the random source threaded through the simulation. Every random
// decision (layouts, dives, firing, power-up drops) is drawn from one Source
// owned by the game so a seed reproduces a whole session.
type Source interface {
	// Random returns a float64 in [0, 1).
	Random() float64
	// RandomInt returns an int in [min, max).
	RandomInt(min, max int) int
	// RandomFloat returns a float64 in [min, max).
	RandomFloat(min, max float64) float64
}

var _ Source = (*SeededRNG)(nil)

const twoTo32 = 1 << 32

// SeededRNG is a Mulberry32 generator. Two generators built from the same
// seed yield the same sequence.
type SeededRNG struct {
	state uint32
	seed  uint32
}

// NewSeededRNG returns a generator positioned at the start of seed's
// sequence.
func NewSeededRNG(seed uint32) *SeededRNG {
	return &SeededRNG{state: seed, seed: seed}
}

// SetSeed switches to seed and rewinds.
func (r *SeededRNG) SetSeed(seed uint32) {
	r.state, r.seed = seed, seed
}

// Seed returns the seed the generator was last reset to.
func (r *SeededRNG) Seed() uint32 {
	return r.seed
}

// Reset rewinds to the start of the sequence.
func (r *SeededRNG) Reset() {
	r.state = r.seed
}

// Random implements Source.
func (r *SeededRNG) Random() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / twoTo32
}

// RandomInt implements Source. An empty range returns min.
func (r *SeededRNG) RandomInt(min, max int) int {
	if max <= min {
		return min
	}
	return int(r.Random()*float64(max-min)) + min
}

// RandomFloat implements Source.
func (r *SeededRNG) RandomFloat(min, max float64) float64 {
	return r.Random()*(max-min) + min
}

// Shuffle permutes n elements with a uniform Fisher-Yates pass driven by src.
func Shuffle(src Source, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := src.RandomInt(0, i+1)
		swap(i, j)
	}
}

// LevelSeed mixes n into base with a murmur3 finalizer. Layouts use it to
// derive per-wave and per-cell values.
func LevelSeed(base uint32, n int) uint32 {
	h := base ^ (uint32(n) * 2654435761)
	h = (h ^ (h >> 16)) * 0x85ebca6b
	h = (h ^ (h >> 13)) * 0xc2b2ae35
	return h ^ (h >> 16)
}

// HashUnit maps (seed, index) onto [0, 1) without consuming generator state.
func HashUnit(seed uint32, index int) float64 {
	return float64(LevelSeed(seed, index)) / twoTo32
}
