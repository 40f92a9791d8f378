// Package bootstrap draws resamples of a judge's documents and writes each
// one as a flat, whitespace-joined token file.
//
// A resample draws len(docs) documents uniformly with replacement, so it
// always holds exactly as many documents as its input. Every judge gets its
// own random stream derived from the run seed and the judge name; a judge's
// samples therefore do not depend on which other judges ran before it.
package bootstrap
