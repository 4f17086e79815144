// Package chunking partitions one case's transcript into two-party
// advocate/justice exchanges ("chunks") and computes the per-chunk features
// used in the interruption analysis.
//
// It runs in two passes. [Detector] scans the case's utterances once and
// emits the IDs of the utterances that close an exchange. [Extractor] walks
// consecutive pairs of those IDs, validates the exchange in between and
// emits a [Record] for each one that survives.
package chunking
