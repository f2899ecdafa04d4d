/*Package annotation loads rhythm annotations for ECG records and answers
  per-sample membership queries against them.
  (Note the 'union'.  Overlapping regions of the same label are merged, not
  tracked separately; beat-level point annotations are out of scope here.)
  The on-disk form is a plain text stream, one region per line:
  LABEL START END, whitespace-separated half-open sample coordinates sorted
  by START.  Gzip input is detected by file extension.
*/
package annotation
