/*
Package metrics evaluates beat detectors, waveform delineators, and rhythm
classifiers against reference annotations.

Beat-detection scoring follows the CPSC-2019 challenge convention: peaks
within 0.3 s of either record border are ignored, and a detection matches
a reference peak when they are within the tolerance of each other.
Delineation scoring matches predicted waveform intervals to reference
intervals by largest overlap.
*/
package metrics
