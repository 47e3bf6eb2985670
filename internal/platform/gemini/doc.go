// Package gemini implements the generation.Generator interface using
// Google's Gemini API. It owns prompt construction, context truncation,
// response parsing, and the mapping of API failures onto the generation
// package's error taxonomy.
package gemini
