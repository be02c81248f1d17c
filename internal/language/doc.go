// Package language provides language code normalization, validation, and
// display names for the --source/--target flags and the config file.
//
// Short user inputs ("english", "eng") are mapped through a small built-in
// table; region-qualified tags are canonicalized and validated with
// golang.org/x/text/language.
package language
