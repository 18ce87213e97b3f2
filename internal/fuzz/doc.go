// Package fuzztests holds Go fuzz harnesses for the parsers that see user
// input: repository URLs, workspace member entries, Cargo.toml syntax
// errors and changelogs. Every harness checks that the input never panics
// and that any error it produces renders into a well-formed diagnostic.
//
// Run one with: go test ./internal/fuzz -run=^$ -fuzz=FuzzRepoURL
package fuzztests
