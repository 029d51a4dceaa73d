package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/simplefs/simplefs/disk"
	fsys "github.com/simplefs/simplefs/filesystem/simplefs"
	"github.com/simplefs/simplefs/snapshot"
	times "gopkg.in/djherbis/times.v1"
)

// bufSize is BUFSIZ*4 from the classic shell's copy loop; it happens to
// equal one SimpleFS block, which keeps copyin/copyout's chunking aligned
// with the underlying block I/O without depending on it.
const bufSize = 4 * 1024

type shell struct {
	d  *disk.Disk
	fs *fsys.FileSystem
}

func (sh *shell) run(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "sfssh> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			if !sh.dispatch(line, out) {
				return
			}
		}
		fmt.Fprint(out, "sfssh> ")
	}
}

// dispatch runs one command and reports whether the session should keep
// going; it returns false only for quit/exit, once the disk has been
// closed.
func (sh *shell) dispatch(line string, out io.Writer) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "format":
		if err := sh.fs.Format(); err != nil {
			fmt.Fprintf(out, "format failed: %v\n", err)
		}
	case "mount":
		if err := sh.fs.Mount(); err != nil {
			fmt.Fprintf(out, "mount failed: %v\n", err)
		}
	case "debug":
		if len(args) == 1 && args[0] == "--fragmentation" {
			if err := sh.fs.Fragmentation(out); err != nil {
				fmt.Fprintf(out, "debug --fragmentation failed: %v\n", err)
			}
			return true
		}
		if len(args) == 2 && args[0] == "--hex" {
			block, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				fmt.Fprintf(out, "invalid block number %q\n", args[1])
				return true
			}
			if err := sh.fs.HexDump(out, block); err != nil {
				fmt.Fprintf(out, "debug --hex failed: %v\n", err)
			}
			return true
		}
		if err := sh.fs.Debug(out); err != nil {
			fmt.Fprintf(out, "debug failed: %v\n", err)
		}
	case "create":
		n := sh.fs.Create()
		fmt.Fprintf(out, "created inode %d\n", n)
	case "remove":
		n, err := parseInode(args, out)
		if err != nil {
			return true
		}
		fmt.Fprintf(out, "remove: %v\n", sh.fs.Remove(n))
	case "stat":
		n, err := parseInode(args, out)
		if err != nil {
			return true
		}
		fmt.Fprintf(out, "inode %d size: %d bytes\n", n, sh.fs.Stat(n))
	case "cat":
		n, err := parseInode(args, out)
		if err != nil {
			return true
		}
		sh.cat(n, out)
	case "copyin":
		if len(args) != 2 {
			fmt.Fprintln(out, "usage: copyin <file> <inode>")
			return true
		}
		sh.copyin(args[0], args[1], out)
	case "copyout":
		if len(args) != 2 {
			fmt.Fprintln(out, "usage: copyout <inode> <file>")
			return true
		}
		sh.copyout(args[0], args[1], out)
	case "imageinfo":
		sh.imageinfo(out)
	case "snapshot":
		sh.snapshot(args, out)
	case "help":
		printHelp(out)
	case "quit", "exit":
		if err := sh.fs.Close(); err != nil {
			fmt.Fprintf(out, "close failed: %v\n", err)
		}
		return false
	default:
		fmt.Fprintf(out, "unknown command %q; try 'help'\n", cmd)
	}
	return true
}

func parseInode(args []string, out io.Writer) (int64, error) {
	if len(args) != 1 {
		fmt.Fprintln(out, "usage: <cmd> <inode>")
		return 0, fmt.Errorf("missing inode argument")
	}
	n, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(out, "invalid inode number %q\n", args[0])
		return 0, err
	}
	return n, nil
}

func (sh *shell) cat(n int64, out io.Writer) {
	size := sh.fs.Stat(n)
	if size < 0 {
		fmt.Fprintln(out, "cat: no such inode")
		return
	}
	buf := make([]byte, bufSize)
	var offset int64
	for offset < size {
		got := sh.fs.Read(n, buf, bufSize, offset)
		if got <= 0 {
			break
		}
		_, _ = out.Write(buf[:got])
		offset += int64(got)
	}
}

func (sh *shell) copyin(path, inodeArg string, out io.Writer) {
	n, err := strconv.ParseInt(inodeArg, 10, 64)
	if err != nil {
		fmt.Fprintf(out, "invalid inode number %q\n", inodeArg)
		return
	}
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(out, "copyin: %v\n", err)
		return
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, bufSize)
	var offset int64
	for {
		got, rerr := f.Read(buf)
		if got > 0 {
			written := sh.fs.Write(n, buf, got, offset)
			if written < 0 {
				fmt.Fprintln(out, "copyin: write failed")
				return
			}
			offset += int64(written)
			if written < got {
				fmt.Fprintln(out, "copyin: disk full, stopped early")
				return
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			fmt.Fprintf(out, "copyin: %v\n", rerr)
			return
		}
	}
	fmt.Fprintf(out, "copied %d bytes into inode %d\n", offset, n)
}

func (sh *shell) copyout(inodeArg, path string, out io.Writer) {
	n, err := strconv.ParseInt(inodeArg, 10, 64)
	if err != nil {
		fmt.Fprintf(out, "invalid inode number %q\n", inodeArg)
		return
	}
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(out, "copyout: %v\n", err)
		return
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, bufSize)
	var offset int64
	for {
		got := sh.fs.Read(n, buf, bufSize, offset)
		if got <= 0 {
			break
		}
		if _, err := f.Write(buf[:got]); err != nil {
			fmt.Fprintf(out, "copyout: %v\n", err)
			return
		}
		offset += int64(got)
	}
	fmt.Fprintf(out, "copied %d bytes from inode %d\n", offset, n)
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, `commands:
  format
  mount
  debug [--fragmentation | --hex <block>]
  create
  remove <inode>
  stat <inode>
  cat <inode>
  copyin <file> <inode>
  copyout <inode> <file>
  imageinfo
  snapshot export|import <path> [xz|lz4]
  help
  quit / exit`)
}

func (sh *shell) imageinfo(out io.Writer) {
	info, err := times.Stat(sh.d.Path())
	if err != nil {
		fmt.Fprintf(out, "imageinfo: %v\n", err)
		return
	}
	fmt.Fprintf(out, "path: %s\n", sh.d.Path())
	fmt.Fprintf(out, "blocks: %d\n", sh.d.Blocks)
	fmt.Fprintf(out, "reads: %d  writes: %d\n", sh.d.Reads.Load(), sh.d.Writes.Load())
	fmt.Fprintf(out, "modified: %s\n", info.ModTime())
	if info.HasChangeTime() {
		fmt.Fprintf(out, "changed: %s\n", info.ChangeTime())
	}
}

func (sh *shell) snapshot(args []string, out io.Writer) {
	if len(args) < 2 {
		fmt.Fprintln(out, "usage: snapshot export|import <path> [xz|lz4]")
		return
	}
	format := snapshot.XZ
	if len(args) >= 3 && args[2] == "lz4" {
		format = snapshot.LZ4
	}

	switch args[0] {
	case "export":
		n, err := snapshot.Export(sh.d.Path(), args[1], format)
		if err != nil {
			fmt.Fprintf(out, "snapshot export failed: %v\n", err)
			return
		}
		fmt.Fprintf(out, "exported %d bytes to %s\n", n, args[1])
	case "import":
		n, err := snapshot.Import(args[1], sh.d.Path(), format)
		if err != nil {
			fmt.Fprintf(out, "snapshot import failed: %v\n", err)
			return
		}
		fmt.Fprintf(out, "imported %d bytes from %s\n", n, args[1])
	default:
		fmt.Fprintln(out, "usage: snapshot export|import <path> [xz|lz4]")
	}
}
