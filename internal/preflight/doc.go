// Package preflight provides readiness checks for the binaries, directories,
// and translation services that subtrans depends on.
//
// The CLI "subtrans deps" command runs these checks and renders each Result
// as a status line. Checks never return errors; failures are reported through
// Result.Detail so every check runs even when an earlier one failed.
package preflight
