// Package main provides the entry point for the cgmlstget CLI.
//
// cgmlstget is a command-line client for the cgMLST.org genotyping
// scheme registry. It lists published typing schemes, reports when a
// named scheme last changed, and downloads and unpacks a scheme's
// allele archive.
//
// Usage:
//
//	cgmlstget list
//	cgmlstget last-change <scheme-id>
//	cgmlstget download <scheme-id>
//
// See --help for all available options.
package main

// main is the entry point for cgmlstget.
func main() {
	Execute()
}
