// Package errors provides structured error types for the wirekit resolution
// engine. It implements machine-readable error codes and cause wrapping so
// embedding applications can branch on why a resolution failed.
package errors
