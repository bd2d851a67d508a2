/*
Package cpus represents logical CPUs in the two forms the Linux kernel uses for
them, and pins OS-level threads to individual CPUs.

  - [List] stores CPU numbers as ranges, such as 0-3,8 – this is the textual
    format found in sysfs files like “/sys/devices/system/cpu/online”.
  - [Set] stores CPU numbers as bits in a mask, as passed to and returned by
    the sched_setaffinity(2) and sched_getaffinity(2) syscalls.

[List.Set] and [Set.List] convert between both forms. On Linux, [Affinity] and
[SetAffinity] query and change the CPU affinity of a task, and [Online] returns
the CPUs the kernel currently considers online.
*/
package cpus
