// Package tract canonicalizes local-ancestry tracts.
//
// Ancestry tracing tools emit one record per (sample, interval, population)
// claim. Records arrive in no particular order, interleaved across samples
// and typically fragmented at recombination breakpoints that do not change
// the assigned population. Squash groups the records per sample, validates
// that no two claims for one sample overlap, and merges every run of
// back-to-back same-population records into a single maximal segment.
//
// The package also provides span and population filtering, a position index
// over squashed segments, and the coverage summaries used to plot ancestry
// composition along a sequence.
package tract
