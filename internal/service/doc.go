// Package service contains the application-specific use cases and
// business logic. It orchestrates interactions between domain objects
// and the store to fulfill application features.
//
// Services receive dependencies through constructor injection and
// expose narrow interfaces to the delivery mechanisms. Every logical
// operation that changes state runs inside a single store.Mutate call,
// so creates, card additions, reviews, and deletes are all-or-nothing.
package service
