//go:build !tinygo

// Command mkstore writes a settings flash image for the host simulator, or
// dumps the settings stored in one.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"watchface/face/persist"
	"watchface/face/reading"
	"watchface/face/watchface"
	"watchface/hal"
)

const (
	defaultStorePath = "watchface.flash"
	defaultStoreSize = 64 * 1024
)

type options struct {
	out        string
	size       uint32
	inverted   bool
	reading    string
	readingAge time.Duration
	now        time.Time
}

func main() {
	var opts options
	var size uint
	var dump bool
	flag.StringVar(&opts.out, "out", defaultStorePath, "Flash image path.")
	flag.UintVar(&size, "size", defaultStoreSize, "Flash image size (bytes).")
	flag.BoolVar(&opts.inverted, "inverted", false, "Store the inverted style.")
	flag.StringVar(&opts.reading, "reading", "", "Store a temperature reading, e.g. +21C.")
	flag.DurationVar(&opts.readingAge, "reading-age", 0, "How old the stored reading is.")
	flag.BoolVar(&dump, "dump", false, "Print the settings in -out instead of writing it.")
	flag.Parse()

	opts.size = uint32(size)
	opts.now = time.Now()

	var err error
	if dump {
		err = runDump(os.Stdout, opts.out)
	} else {
		err = run(opts)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	ff, err := hal.CreateFileFlash(opts.out, opts.size)
	if err != nil {
		return err
	}
	defer func() { _ = ff.Close() }()

	st, err := persist.Open(ff)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = st.Close() }()
	if !st.Persistent() {
		return fmt.Errorf("store: image of %d bytes cannot hold a settings volume", opts.size)
	}

	if err := st.WriteBool(watchface.KeyStyle, opts.inverted); err != nil {
		return fmt.Errorf("write style: %w", err)
	}
	if opts.reading != "" {
		if err := st.WriteString(reading.KeyValue, opts.reading); err != nil {
			return fmt.Errorf("write reading: %w", err)
		}
		ts := opts.now.Add(-opts.readingAge).Unix()
		if err := st.WriteInt(reading.KeyTimestamp, ts); err != nil {
			return fmt.Errorf("write reading timestamp: %w", err)
		}
	}
	return st.Close()
}

func runDump(w io.Writer, path string) error {
	ff, err := hal.OpenFileFlash(path)
	if err != nil {
		return err
	}
	defer func() { _ = ff.Close() }()

	st, err := persist.Open(ff)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = st.Close() }()
	fmt.Fprintf(w, "inverted: %v\n", st.ReadBool(watchface.KeyStyle))
	if !st.Exists(reading.KeyValue) {
		fmt.Fprintln(w, "reading: none")
		return nil
	}
	ts := st.ReadInt(reading.KeyTimestamp)
	fmt.Fprintf(w, "reading: %q at %s\n", st.ReadString(reading.KeyValue), time.Unix(ts, 0).UTC().Format(time.RFC3339))
	return nil
}
