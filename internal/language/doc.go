// Package language validates and maps ISO 639-2 language codes.
//
// The codeset is embedded at build time and indexed once at init, so every
// lookup is a pure in-memory operation. Both bibliographic ("ger") and
// terminologic ("deu") forms are accepted as valid codes, matching what
// mkvmerge accepts for --language.
//
// IETF BCP 47 tags reported by mkvmerge (language_ietf) are canonicalised
// with golang.org/x/text/language and mapped back onto the ISO 639-2 table.
package language
