// Package main provides the host-side decoder for restream's delta stream.
//
// It reads diff bytes from stdin, reverses the delta encoding and writes
// the plaintext stream to stdout, typically between a decompressor and a
// video player:
//
//	ssh remarkable restream | lz4 -d | unxor -b 328536 | ffplay ...
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/user/restream/pkg/stream"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "unxor",
		Usage:   "Decode a delta-encoded stream from stdin to stdout",
		Version: version,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:     "block-size",
				Aliases:  []string{"b"},
				Required: true,
				Usage:    "Block size in bytes; must match the encoder exactly",
			},
			&cli.IntFlag{
				Name:  "buffer-size",
				Value: 4 << 20,
				Usage: "Read buffer size in bytes",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "unxor: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	bufferSize := c.Int("buffer-size")
	if bufferSize < 1 {
		return fmt.Errorf("invalid buffer size %d", bufferSize)
	}

	decoder, err := stream.NewUnxor(os.Stdin, c.Int("block-size"))
	if err != nil {
		return err
	}

	buf := make([]byte, bufferSize)
	for {
		n, rerr := decoder.Read(buf)
		if n > 0 {
			if _, werr := os.Stdout.Write(buf[:n]); werr != nil {
				return fmt.Errorf("write decoded stream: %w", werr)
			}
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				return nil
			}
			if errors.Is(rerr, io.ErrUnexpectedEOF) {
				// The producer stopped mid-buffer. Everything decodable
				// has been flushed, so this is a normal shutdown.
				fmt.Fprintln(os.Stderr, "unxor: stream ended mid-buffer")
				return nil
			}
			return fmt.Errorf("read diff stream: %w", rerr)
		}
	}
}
