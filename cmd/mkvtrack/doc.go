// Package main hosts the mkvtrack CLI entrypoint and command graph.
//
// Commands build track descriptors from files on disk, list mkvmerge track
// inventories, browse the ISO 639-2 language table, and scaffold
// configuration. Configuration resolution and logger setup live in
// commandContext so subcommands only translate flags into descriptor options.
package main
