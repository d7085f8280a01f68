// Command lddreach computes a state-space reachability fixpoint over a
// Sylvan-format model: repeatedly apply every transition's relational
// product and union the result into the reached set until nothing new is
// found, then report the final cardinality.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sdzldd/ldd"
	"github.com/sdzldd/ldd/internal/sylvan"
	"github.com/sdzldd/ldd/metrics/prom"
)

func main() {
	model := flag.String("model", "", "path to a Sylvan-format LDD dump")
	metricsAddr := flag.String("metrics-addr", "", "if set, serve Prometheus metrics (and pprof) on this address")
	quiet := flag.Bool("quiet", false, "suppress per-iteration progress logging")
	flag.Parse()

	if *model == "" {
		fmt.Fprintln(os.Stderr, "lddreach: -model is required")
		os.Exit(1)
	}

	var opts []ldd.Option
	if *metricsAddr != "" {
		sink := prom.New(nil, "lddreach", "store", nil)
		opts = append(opts, ldd.Metrics(sink))
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.Handle("/debug/pprof/", http.DefaultServeMux) // net/http/pprof registers on the default mux
		go func() {
			log.Printf("lddreach: serving metrics on %s", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				log.Printf("lddreach: metrics server: %v", err)
			}
		}()
	}

	store := ldd.New(opts...)
	store.EnablePerformanceMetrics(true)

	m, err := sylvan.Load(store, *model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lddreach: %v\n", err)
		os.Exit(1)
	}

	n := reach(store, m, *quiet)
	fmt.Printf("%d\n", n)
}

// reach runs the standard symbolic BFS fixpoint: todo holds the states
// discovered in the previous round; each round images todo through every
// transition, folds the images into the reached set, and derives the next
// round's todo as whatever is genuinely new.
func reach(store *ldd.Store, m *sylvan.Model, quiet bool) uint64 {
	states := m.InitialState.Clone()
	todo := m.InitialState.Clone()
	defer todo.Release()

	round := 0
	for {
		next := store.EmptySet()
		for _, t := range m.Transitions {
			img := store.RelationalProduct(todo, t.Relation, t.Meta)
			merged := store.Union(next, img)
			img.Release()
			next.Release()
			next = merged
		}

		fresh := store.Minus(next, states)
		next.Release()

		if store.Len(fresh) == 0 {
			fresh.Release()
			break
		}

		merged := store.Union(states, fresh)
		states.Release()
		states = merged

		todo.Release()
		todo = fresh

		round++
		if !quiet {
			log.Printf("lddreach: round %d, reached %d states", round, store.Len(states))
		}
	}

	total := store.Len(states)
	states.Release()
	return total
}
