// Package mocks provides mock implementations of application interfaces
// for use in tests.
package mocks
