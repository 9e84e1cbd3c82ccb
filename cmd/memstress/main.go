// Command memstress drives an Arena through a mix of allocation sizes
// and reports heap utilization, in the spirit of the teacher's own
// tools/pools command that reported pool-size utilization for the
// slab allocator this package replaced.
package main

import "fmt"
import "flag"
import "math/rand"
import "unsafe"

import "github.com/dustin/go-humanize"

import "github.com/bnclabs/segmalloc/malloc"

var options struct {
	reserve  int64
	minblock int
	maxblock int
	n        int
	seed     int64
}

func argParse() {
	flag.Int64Var(&options.reserve, "reserve", 64*1024*1024,
		"bytes to reserve for the arena")
	flag.IntVar(&options.minblock, "minblock", 16,
		"minimum request size")
	flag.IntVar(&options.maxblock, "maxblock", 4096,
		"maximum request size")
	flag.IntVar(&options.n, "n", 10000,
		"number of allocations to perform")
	flag.Int64Var(&options.seed, "seed", 1,
		"random seed")
	flag.Parse()
}

func main() {
	argParse()
	stress()
}

func stress() {
	rng := rand.New(rand.NewSource(options.seed))
	a := malloc.NewArena(malloc.Options{
		Reserve:     options.reserve,
		Diagnostics: malloc.NewDiagnostics(),
	})

	live := make([]unsafe.Pointer, 0, options.n)
	spread := options.maxblock - options.minblock + 1
	if spread <= 0 {
		spread = 1
	}

	for i := 0; i < options.n; i++ {
		n := int64(options.minblock + rng.Intn(spread))
		ptr, err := a.Malloc(n)
		if err != nil {
			fmt.Println("malloc failed:", err)
			break
		}
		live = append(live, ptr)

		if len(live) > 1 && rng.Intn(3) == 0 {
			j := rng.Intn(len(live))
			a.Free(live[j])
			live[j] = live[len(live)-1]
			live = live[:len(live)-1]
		}
	}

	for _, ptr := range live {
		a.Free(ptr)
	}

	report(a)
}

func report(a *malloc.Arena) {
	stats := a.Stats()
	fmt.Printf("heap     %s\n", humanize.Bytes(uint64(stats.Heap)))
	fmt.Printf("alloc    %s\n", humanize.Bytes(uint64(stats.Alloc)))
	fmt.Printf("overhead %s\n", humanize.Bytes(uint64(stats.Overhead)))
	fmt.Printf("capacity %s\n", humanize.Bytes(uint64(stats.Capacity)))
	if stats.Heap > 0 {
		util := float64(stats.Alloc) / float64(stats.Heap)
		fmt.Printf("utilization %.4f\n", util)
	}
}
