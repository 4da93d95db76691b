package puzzle

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"
)

func TestShufflePermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for n := 0; n <= 20; n++ {
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}
		got := Shuffle(items, rng)

		for i, v := range items {
			if v != i {
				t.Fatalf("n=%d: input modified at %d: %v", n, i, items)
			}
		}
		if len(got) != n {
			t.Fatalf("n=%d: shuffled length %d", n, len(got))
		}
		sorted := append([]int(nil), got...)
		sort.Ints(sorted)
		for i, v := range sorted {
			if v != i {
				t.Fatalf("n=%d: %v is not a permutation", n, got)
			}
		}
	}
}

func TestShuffleReturnsNewSlice(t *testing.T) {
	items := []int{1, 2, 3}
	got := Shuffle(items, identity{})
	got[0] = 99
	if items[0] != 1 {
		t.Fatal("shuffle result aliases the input")
	}
}

func TestShuffleUniform(t *testing.T) {
	const trials = 60000
	rng := rand.New(rand.NewSource(2024))
	counts := map[string]int{}
	items := []int{0, 1, 2}
	for i := 0; i < trials; i++ {
		counts[fmt.Sprint(Shuffle(items, rng))]++
	}
	if len(counts) != 6 {
		t.Fatalf("expected all 6 orderings, saw %d: %v", len(counts), counts)
	}

	expected := float64(trials) / 6
	chi2 := 0.0
	for _, c := range counts {
		d := float64(c) - expected
		chi2 += d * d / expected
	}
	// 5 degrees of freedom, p = 0.001
	if chi2 > 20.52 {
		t.Fatalf("chi-square %.2f too large, counts %v", chi2, counts)
	}
}

type recordingRand struct {
	calls []int
}

func (r *recordingRand) Intn(n int) int {
	r.calls = append(r.calls, n)
	return 0
}

// Each draw for position i must cover [0, i].
func TestShuffleDrawRange(t *testing.T) {
	r := &recordingRand{}
	Shuffle([]int{0, 1, 2, 3, 4}, r)
	want := []int{5, 4, 3, 2}
	if fmt.Sprint(r.calls) != fmt.Sprint(want) {
		t.Fatalf("Intn called with %v, want %v", r.calls, want)
	}
}

func TestShufflerSeedReproducible(t *testing.T) {
	a := Shuffle([]int{0, 1, 2, 3, 4, 5, 6, 7}, NewShuffler(99))
	b := Shuffle([]int{0, 1, 2, 3, 4, 5, 6, 7}, NewShuffler(99))
	if fmt.Sprint(a) != fmt.Sprint(b) {
		t.Fatalf("same seed gave %v and %v", a, b)
	}
	if NewShuffler(99).Seed() != 99 {
		t.Fatal("seed not kept")
	}
	if NewShuffler(0).Seed() == 0 {
		t.Fatal("zero seed should be replaced")
	}
}
