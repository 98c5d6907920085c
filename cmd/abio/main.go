package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/abio"
)

func main() {
	var (
		file        = flag.String("file", "", "Path to the binary file to decode")
		typeName    = flag.String("type", "u32", "Value type: "+typeList())
		offset      = flag.Int("offset", 0, "Byte offset of the first value")
		count       = flag.Int("count", 1, "Number of consecutive values")
		endianStr   = flag.String("endian", "", "Byte order: native, little or big")
		limit       = flag.Int("limit", -1, "Maximum total bytes decoded, count times type size (0 = unbounded)")
		configPath  = flag.String("config", "", "TOML or YAML file with codec defaults")
		capture     = flag.Bool("pcap", false, "Treat the file as a pcap capture and decode each UDP payload")
		port        = flag.Int("port", 0, "With -pcap, only decode datagrams sent to this port")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive inspector with TUI")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Usage: abio -file <data.bin> [-type u32] [-offset n] [-count n] [-endian big] [-limit n]")
		fmt.Fprintln(os.Stderr, "       abio -file <data.bin> -config codec.toml")
		fmt.Fprintln(os.Stderr, "       abio -file <capture.pcap> -pcap [-port n] -type u16")
		fmt.Fprintln(os.Stderr, "       abio -file <data.bin> -i  (interactive mode)")
		os.Exit(1)
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	abio.SetLogger(logger)

	cfg := defaultConfig()
	if *configPath != "" {
		if cfg, err = loadConfig(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["endian"] {
		cfg.Endian = *endianStr
	}
	if set["limit"] {
		cfg.Limit = *limit
	}
	if set["type"] || cfg.Type == "" {
		cfg.Type = *typeName
	}

	codec, err := cfg.codec()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *capture {
		f, err := os.Open(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: open file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := runCapture(os.Stdout, logger, f, *port, cfg.Type, *offset, *count, codec); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: read file: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("loaded input",
		zap.String("file", *file),
		zap.Int("bytes", len(data)),
		zap.Stringer("codec", codec))

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*file, data, codec); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(os.Stdout, data, cfg.Type, *offset, *count, codec); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func run(w io.Writer, data []byte, typeName string, offset, count int, codec abio.Codec) error {
	dec, ok := lookupType(typeName)
	if !ok {
		return fmt.Errorf("unknown type %q (want one of %s)", typeName, typeList())
	}

	values, consumed, err := dec.decode(abio.NewSource(data), offset, count, codec)
	if err != nil {
		return fmt.Errorf("decode %s at %d: %w", typeName, offset, err)
	}

	fmt.Fprintf(w, "%s x%d at offset %d (%s, limit %s)\n", typeName, count, offset, codec.Endian(), codec.Limit())
	pos := offset
	for _, v := range values {
		fmt.Fprintf(w, "  %08x: %s\n", pos, v)
		pos += dec.size()
	}
	fmt.Fprintf(w, "consumed %d bytes\n", consumed)
	return nil
}
