/*
Package mask converts between rhythm annotations and the dense per-sample
masks consumed by segmentation-style training loops.

A mask is a []byte with one class ID per signal sample.  FromRhythms
renders a RhythmUnion into a mask, ToIntervals recovers the disjoint
regions of one class, and Weights builds a per-sample loss-weight vector
boosted around critical points.  Masks can be cached on any
grailbio/base/file-supported storage system as snappy-compressed,
checksummed snapshot files.
*/
package mask
