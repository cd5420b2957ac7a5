// Package frontier implements the open set of a best-first search: a priority
// queue of (priority, node) entries with lazy deletion.
//
// Contract shared by every Queue:
//
//   - Push inserts unconditionally. There is no decrease-key and no duplicate
//     suppression; a node may sit in the queue several times with different
//     priorities. Callers discard the stale copies when they pop them.
//   - Pop removes the entry with the globally smallest priority. Equal
//     priorities are ordered by the smaller node ID, so the result never
//     depends on insertion order.
//   - Pop on an empty queue returns ok == false. That is the normal way a
//     search loop ends, not an error.
//
// Implementations:
//
//   - Heap: binary min-heap on container/heap, O(log n) Push and Pop. This is
//     the production queue and copes with millions of entries.
//   - List: unsorted slice with a linear scan on Pop, O(n). Only suitable for
//     tiny inputs; kept as a reference oracle for tests and benchmarks.
package frontier
