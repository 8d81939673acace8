// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	vect "github.com/facebookincubator/go-vect"
	"github.com/facebookincubator/go-vect/snapshot"

	"github.com/urfave/cli/v2"
)

var logger = vect.NewTextLogger(os.Stderr, slog.LevelInfo)

func main() {
	app := &cli.App{
		Name:  "vect",
		Usage: "build and inspect vector snapshots of fixed width integers",
		Commands: []*cli.Command{
			{
				Name:  "compile",
				Usage: "compile a list of integers into a vector snapshot",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"out", "o"},
						Value:   "vect.bin",
						Usage:   "name of the file to write the snapshot to",
					},
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"in", "i"},
						Usage:   "file to read from (default is stdin)",
					},
					&cli.UintFlag{
						Name:    "width",
						Aliases: []string{"w"},
						Value:   8,
						Usage:   "bytes per integer: 1, 2, 4 or 8",
					},
					&cli.StringFlag{
						Name:    "codec",
						Aliases: []string{"c"},
						Value:   "none",
						Usage:   "payload compression: none, lz4 or zstd",
					},
				},
				Action: func(c *cli.Context) error {
					output := c.String("output")
					if _, err := os.Stat(output); !os.IsNotExist(err) {
						return fmt.Errorf("refusing to over-write existing file: %s", output)
					}
					if c.NArg() > 0 {
						return fmt.Errorf("unexpected command line arguments: %q", c.Args().Slice())
					}
					width := c.Uint("width")
					if !validWidth(width) {
						return fmt.Errorf("unsupported width %d", width)
					}
					codec, err := snapshot.ParseCodec(c.String("codec"))
					if err != nil {
						return err
					}

					var reader io.Reader
					if c.IsSet("input") {
						f, err := os.Open(c.String("input"))
						if err != nil {
							return err
						}
						reader = f
						defer f.Close()
					} else {
						reader = os.Stdin
					}

					v := vect.NewWithConfig(vect.Config{Stride: width, Logger: logger})
					defer v.Release()
					start := time.Now()
					if err := compile(v, reader); err != nil {
						return err
					}
					if err := v.ShrinkToFit(); err != nil {
						return err
					}
					logger.Info("built in memory vector",
						"elements", v.Len(),
						"elapsed", time.Since(start),
					)
					o, e := os.Create(output)
					if e != nil {
						return fmt.Errorf("error opening %s: %w", output, e)
					}
					n, err := writeSnapshot(o, v, codec)
					if err != nil {
						return fmt.Errorf("error writing snapshot: %w", err)
					}
					logger.Info("wrote snapshot", "bytes", n, "path", output)
					return nil
				},
			},
			{
				Name:      "at",
				Usage:     "print elements of a vector snapshot by index",
				ArgsUsage: "INDEX...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"in", "i"},
						Usage:   "file containing the snapshot",
					},
				},
				Action: func(c *cli.Context) error {
					r, closer, err := open(c.String("input"))
					if err != nil {
						return fmt.Errorf("at: can't read input file: %w", err)
					}
					defer closer()
					for _, arg := range c.Args().Slice() {
						ix, err := strconv.ParseUint(arg, 10, 64)
						if err != nil {
							return fmt.Errorf("at: bad index %q: %w", arg, err)
						}
						val := r.At(uint(ix))
						if val == nil {
							fmt.Printf("[%d] empty\n", ix)
							continue
						}
						fmt.Printf("[%d] %d\n", ix, decodeInt(val))
					}
					return nil
				},
			},
			{
				Name:  "describe",
				Usage: "read the header from a vector snapshot and describe it",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"in", "i"},
						Usage:   "file containing the snapshot",
					},
				},
				Action: func(c *cli.Context) error {
					h, err := snapshot.ReadHeaderFromPath(c.String("input"))
					if err != nil {
						return fmt.Errorf("describe: can't read input file: %w", err)
					}
					fmt.Printf("Vector snapshot version %d\n", h.Version)
					fmt.Printf("%d elements, %s payload of %d bytes, checksum %016x\n",
						h.Length, h.Codec, h.PayloadSize, h.Checksum)
					cfg := vect.Config{InitialCapacity: uint(h.Length), Stride: uint(h.Stride)}
					cfg.ExplainIndent("  ")
					return nil
				},
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

// open prefers reading in place and falls back to loading compressed
// snapshots into memory.
func open(path string) (vect.Reader, func(), error) {
	d, err := snapshot.OpenReadOnlyFromPath(path)
	if err == nil {
		return d, func() { d.Close() }, nil
	}
	v, _, err := snapshot.ReadFromPath(path, vect.Config{Logger: logger})
	if err != nil {
		return nil, nil, err
	}
	return v, v.Release, nil
}

func compile(v *vect.Vector, r io.Reader) error {
	rdr := bufio.NewReader(r)
	val := make([]byte, v.Stride())
	for line := 1; ; line++ {
		l, _, err := rdr.ReadLine()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		s := strings.TrimSpace(string(l))
		if s == "" {
			continue
		}
		x, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		encodeInt(val, x)
		if err := v.PushBack(val); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
}

// writeSnapshot writes v to w and closes it.  A failed close is reported
// since buffered file data may not have reached the disk.
func writeSnapshot(w io.WriteCloser, v *vect.Vector, codec snapshot.Codec) (int64, error) {
	n, err := snapshot.Write(w, v, codec)
	if cerr := w.Close(); err == nil && cerr != nil {
		return n, fmt.Errorf("close: %w", cerr)
	}
	return n, err
}

func validWidth(w uint) bool {
	return w == 1 || w == 2 || w == 4 || w == 8
}

// encodeInt stores the low len(buf) bytes of x little endian.
func encodeInt(buf []byte, x int64) {
	switch len(buf) {
	case 1:
		buf[0] = byte(x)
	case 2:
		binary.LittleEndian.PutUint16(buf, uint16(x))
	case 4:
		binary.LittleEndian.PutUint32(buf, uint32(x))
	case 8:
		binary.LittleEndian.PutUint64(buf, uint64(x))
	}
}

// decodeInt sign extends a little endian integer of len(buf) bytes.
func decodeInt(buf []byte) int64 {
	switch len(buf) {
	case 1:
		return int64(int8(buf[0]))
	case 2:
		return int64(int16(binary.LittleEndian.Uint16(buf)))
	case 4:
		return int64(int32(binary.LittleEndian.Uint32(buf)))
	case 8:
		return int64(binary.LittleEndian.Uint64(buf))
	}
	return 0
}
