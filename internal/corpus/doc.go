// Package corpus turns a judge's folder of raw opinion files into the
// tokenized documents the bootstrap step resamples.
//
// Processing happens in two passes that mirror the diagnostics the pipeline
// reports: CleanJudge reads every file, splits it into sentences and cleans
// them; TokenizeDocuments tokenizes the cleaned sentences and keeps only
// vocabulary tokens. Neither pass ever yields an empty sentence or document.
package corpus
