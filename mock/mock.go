// Package mock provides mock implementations of the helpdesk interfaces
// for testing.
package mock
