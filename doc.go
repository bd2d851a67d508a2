/*
Package cpuscale measures how CPU-bound and memory-bound workloads scale with
the number of concurrently running worker threads.

A [Sweep] runs one experiment per thread count from 1 up to its maximum,
keeping the total amount of work constant: each of the threads of an
experiment gets an equal share of it, see [PerThreadWork]. A [Runner] carries
out a single experiment: it starts its timer, launches fresh worker threads,
binds each of them to a distinct processor using an [affinity.Binder], runs the
workload kernel, and stops the timer after all workers have finished. Results
are handed to a [Reporter] as soon as they become available.

Binding takes place inside the timed window, as the timer starts before the
workers get launched. This is a known measurement artifact.
*/
package cpuscale
