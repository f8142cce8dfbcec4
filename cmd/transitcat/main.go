// Command transitcat builds and queries a transit catalogue from JSON
// request documents: make_base reads base_requests and writes a
// serialized base; process_requests reads stat_requests against a
// serialized base and writes JSON responses.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/d-ulitin/transitcat/appconfig"
	"github.com/d-ulitin/transitcat/applog"
	"github.com/d-ulitin/transitcat/core"
	"github.com/d-ulitin/transitcat/requestio"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: transitcat <make_base|process_requests> [-config file] [input]")
		os.Exit(1)
	}
	subcommand := os.Args[1]
	args := os.Args[2:]

	var err error
	switch subcommand {
	case "make_base":
		err = runMakeBase(args)
	case "process_requests":
		err = runProcessRequests(args)
	default:
		fmt.Fprintf(os.Stderr, "transitcat: unknown subcommand %q\n", subcommand)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "transitcat:", err)
		os.Exit(1)
	}
}

func openInput(fs *flag.FlagSet) (*os.File, error) {
	if fs.NArg() == 0 {
		return os.Stdin, nil
	}
	return os.Open(fs.Arg(0))
}

func runMakeBase(args []string) error {
	fs := flag.NewFlagSet("make_base", flag.ExitOnError)
	configPath := fs.String("config", "", "path to a YAML config file")
	fs.Parse(args)

	cfg, err := appconfig.Load(*configPath)
	if err != nil {
		return err
	}
	log := applog.New(os.Stderr, cfg.LogLevel)

	in, err := openInput(fs)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	if in != os.Stdin {
		defer in.Close()
	}

	doc, err := requestio.ReadMakeBase(in)
	if err != nil {
		return err
	}

	c, err := requestio.BuildBase(doc)
	if err != nil {
		return err
	}
	log.Info("base built", "file", doc.SerializationSettings.File)

	out, err := os.Create(doc.SerializationSettings.File)
	if err != nil {
		return fmt.Errorf("creating base file: %w", err)
	}
	defer out.Close()

	if err := c.Serialize(out, doc.RenderSettings.ToSettings()); err != nil {
		return err
	}
	return nil
}

func runProcessRequests(args []string) error {
	fs := flag.NewFlagSet("process_requests", flag.ExitOnError)
	configPath := fs.String("config", "", "path to a YAML config file")
	fs.Parse(args)

	cfg, err := appconfig.Load(*configPath)
	if err != nil {
		return err
	}
	log := applog.New(os.Stderr, cfg.LogLevel)

	in, err := openInput(fs)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	if in != os.Stdin {
		defer in.Close()
	}

	doc, err := requestio.ReadProcessRequests(in)
	if err != nil {
		return err
	}

	baseFile := doc.SerializationSettings.File
	if baseFile == "" {
		baseFile = cfg.DefaultBaseFile
	}
	baseIn, err := os.Open(baseFile)
	if err != nil {
		return fmt.Errorf("opening base file: %w", err)
	}
	defer baseIn.Close()

	c, renderSettings, err := core.Deserialize(baseIn, log)
	if err != nil {
		return err
	}

	responses, err := requestio.Answer(c, renderSettings, doc)
	if err != nil {
		return err
	}
	return requestio.WriteResponses(os.Stdout, responses)
}
