// Package fileheader prepends comment headers to generated text files and
// reads them back. Each file kind has its own comment Style. Headers are
// enclosed in marker lines, so applying a header again replaces only the
// previously applied block and the file's own comments stay untouched.
package fileheader
