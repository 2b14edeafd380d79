// Package normalisers provides text extraction and canonicalisation for
// ingested documents. Extractors pull per-page text out of raw bytes;
// the normalisation pipeline folds the text into a canonical form so
// that byte-identical content always hashes and chunks identically.
//
// Extractors are registered with the Registry at startup and selected
// by content sniffing.
package normalisers
