// Package serializer holds the transaction serializer slot of a chain descriptor and the generic
// go-ethereum encoding used when a chain does not register one.
package serializer
