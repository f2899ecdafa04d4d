/*
Package split partitions a set of ECG record IDs into train and test
subsets deterministically: a record's side depends only on its ID and the
split parameters, never on the order or composition of the input.  Records
can therefore be added to a corpus later without reshuffling earlier
assignments.
*/
package split
