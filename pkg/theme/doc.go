// Package theme holds the styling configuration of text-rendering nodes:
// the console log categories and the code highlighting themes.
//
// Both theme types are comparable values so they can be part of memo cache
// keys.
package theme
