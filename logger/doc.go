// Package logger provides structured logging for wirekit built on zerolog.
//
// The resolution engine logs registration and resolution events through a
// component-tagged logger. Embedding applications can replace the global
// logger or silence it entirely via configuration.
package logger
