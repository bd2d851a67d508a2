/*
Package workload provides the kernels whose execution cost gets measured: a
CPU-bound prime counter and two memory-bound scans of a shared square [Matrix],
one in row-major and one in column-major order.

Kernels are plain functions of a work count. Their results are measurement
byproducts only; what matters is that their cost scales with the work count
and that they are safe to run concurrently on the same, never mutated,
[Matrix].
*/
package workload
