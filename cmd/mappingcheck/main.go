package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/suparena/reactivestore"
	"github.com/suparena/reactivestore/registry"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
)

func main() {
	flag.Parse()

	// Handle version flag
	if *versionFlag || *vFlag {
		info := reactivestore.GetVersionInfo()
		fmt.Printf("ReactiveStore mappingcheck version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: mappingcheck [-version] <mapping-file.yaml>...")
		os.Exit(2)
	}

	exitCode := 0
	for _, path := range flag.Args() {
		mappings, err := registry.LoadMappings(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			exitCode = 1
			continue
		}
		for _, name := range registry.MappingNames(mappings) {
			m := mappings[name]
			versioned := "unversioned"
			if m.VersionField != "" {
				versioned = "versioned by " + m.VersionField
			}
			fmt.Printf("%s: entity %q, id %s, %d properties, %s\n",
				path, name, m.IDField, len(m.Properties), versioned)
		}
	}
	os.Exit(exitCode)
}
