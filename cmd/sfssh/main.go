// Command sfssh is an interactive shell over a single SimpleFS disk image:
// sfssh <diskfile> <nblocks> opens (creating, if absent, a correctly sized
// image) and drops into a REPL of format/mount/debug/create/remove/stat
// and copy-in/copy-out commands.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/simplefs/simplefs/disk"
	fsys "github.com/simplefs/simplefs/filesystem/simplefs"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <diskfile> <nblocks>\n", os.Args[0])
	}
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		flag.Usage()
		os.Exit(1)
	}
	path := args[0]
	blocks, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || blocks <= 0 {
		log.Fatalf("invalid block count %q", args[1])
	}

	d, err := openOrCreate(path, blocks)
	if err != nil {
		log.Fatalf("cannot open %s: %v", path, err)
	}
	defer func() { _ = d.Close() }()

	sh := &shell{
		d:  d,
		fs: fsys.New(d),
	}
	sh.run(os.Stdin, os.Stdout)
}

func openOrCreate(path string, blocks int64) (*disk.Disk, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return disk.Create(path, blocks)
	}
	return disk.Open(path, blocks)
}
