// Package converters provides implementations of the Converter interface
// for the five supported XML schemas, plus root-tag format detection and
// the registry that dispatches on the detected type.
//
// Converters are registered with the Registry at startup.
package converters
