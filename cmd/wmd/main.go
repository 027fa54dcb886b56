package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	get "github.com/hashicorp/go-getter"
)

// wmd fetches a shared world save (the maps/ tree plus meta.json) from any
// go-getter source — git, http archive, s3 — into the local save root.
func main() {
	var (
		src   = flag.String("src", "", "world source url (git::, http, s3, file)")
		out   = flag.String("o", "./saves", "save root path")
		world = flag.String("world", "world", "name to store the world under")
		force = flag.Bool("force", false, "replace an existing world of the same name")
	)
	flag.Parse()

	if *src == "" {
		log.Fatal("world source url required")
	}

	path := filepath.Join(*out, *world)

	if _, err := os.Stat(path); err == nil {
		if !*force {
			log.Fatalf("world %s already exists at %s (use -force to replace)", *world, path)
		}
		if err := os.RemoveAll(path); err != nil {
			log.Fatal(err)
		}
	}

	log.Printf("start downloading world %s", path)

	if err := get.Get(path, *src); err != nil {
		log.Fatal(err)
	}

	log.Printf("done downloading world %s", path)
}
