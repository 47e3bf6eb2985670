// Package generation provides the interface and orchestration for
// generating flashcard candidates from course text with an external
// AI/LLM service. It abstracts the details of the LLM integration,
// allowing the application to turn assignment descriptions and page
// content into flashcards without coupling to a specific provider.
package generation
