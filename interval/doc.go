/*Package interval implements half-open interval algebra for ECG annotation
  and masking code: validated [start, end) intervals, canonical disjoint
  interval sets (union, intersection, complement), and covering selection
  (maximum-cardinality and maximum-weight disjoint subsets, budgeted
  coverage of a target region).
  All operations are pure functions over their inputs; results are freshly
  allocated, so concurrent use from parallel data-loading workers needs no
  locking.
  The generic Interval/Set types accept both integer sample indices and
  real-valued time coordinates.  A separate endpoint-slice representation
  (SamplePos, UnionScanner) is provided for the integer case, since dense
  per-sample mask generation is cheaper over a flat sorted endpoint
  sequence.
*/
package interval
