// Package transcript holds the oral-argument transcript model shared by the
// chunking pipeline: utterances, their positional identifiers, and the
// read-only corpus view the pipeline walks.
//
// Utterance IDs follow the ConvoKit Supreme Court corpus layout
// "<conversation>__<section>_<seq>", e.g. "24929__0_000". Section counts the
// advocate segments of one argument; seq is a zero-padded position inside
// the section.
package transcript
