package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/pkg/errors"
	"github.com/reqwire/reqwire/pkg/cmd"
	"github.com/reqwire/reqwire/pkg/config"
	"github.com/reqwire/reqwire/pkg/data"
	"github.com/reqwire/reqwire/pkg/humanize"
	"github.com/reqwire/reqwire/pkg/index"
	"github.com/reqwire/reqwire/pkg/lint"
	"github.com/reqwire/reqwire/pkg/ops"
	"github.com/reqwire/reqwire/pkg/status"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

func main() {
	fs := pflag.NewFlagSet("reqwire", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)

	logLevel := fs.String("log-level", "", "set the logging level (trace, debug, info, warn, error)")

	if err := fs.Parse(os.Args[1:]); err != nil && err != pflag.ErrHelp {
		log.Fatalln(err)
	}

	if *logLevel != "" {
		hclog.L().SetLevel(hclog.LevelFromString(*logLevel))
	}

	c := cli.NewCLI("reqwire", "0.1.0")
	c.Args = stripGlobalFlags(os.Args[1:])
	c.Commands = map[string]cli.CommandFactory{
		"setup": func() (cli.Command, error) {
			return cmd.New(
				"setup",
				"perform any user setup",
				setupF,
			), nil
		},
		"check": func() (cli.Command, error) {
			return cmd.New(
				"check",
				"Check a manifest for well-formedness problems",
				checkF,
			), nil
		},
		"list": func() (cli.Command, error) {
			return cmd.New(
				"list",
				"List the dependencies a manifest declares",
				listF,
			), nil
		},
		"fmt": func() (cli.Command, error) {
			return cmd.New(
				"fmt",
				"Render a manifest in canonical form",
				fmtF,
			), nil
		},
		"add": func() (cli.Command, error) {
			return cmd.New(
				"add",
				"Add or update a dependency directive",
				addF,
			), nil
		},
		"remove": func() (cli.Command, error) {
			return cmd.New(
				"remove",
				"Remove a dependency directive",
				removeF,
			), nil
		},
		"lock": func() (cli.Command, error) {
			return cmd.New(
				"lock",
				"Pin every requirement to an exact index release",
				lockF,
			), nil
		},
		"outdated": func() (cli.Command, error) {
			return cmd.New(
				"outdated",
				"Compare declared versions against the index",
				outdatedF,
			), nil
		},
		"verify": func() (cli.Command, error) {
			return cmd.New(
				"verify",
				"Verify recorded integrity sums",
				verifyF,
			), nil
		},
		"history": func() (cli.Command, error) {
			return cmd.New(
				"history",
				"Show the git history of the manifest",
				historyF,
			), nil
		},
		"env": func() (cli.Command, error) {
			return cmd.New(
				"env",
				"Output various environment information",
				envF,
			), nil
		},
		"debug": func() (cli.Command, error) {
			return cmd.New(
				"debug",
				"Dump the parsed form of a manifest",
				debugF,
			), nil
		},
	}

	exitStatus, err := c.Run()
	if err != nil {
		log.Println(err)
	}

	os.Exit(exitStatus)
}

func setupF(ctx context.Context, opts struct{}) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return errors.Wrapf(err, "Unable to create or load configuration directory")
	}

	fmt.Printf("Config Dir: %s\n", cfg.ConfigDir())
	fmt.Printf("Manifest Name: %s\n", cfg.ManifestName)
	fmt.Printf("Index URL: %s\n", cfg.IndexURL)
	fmt.Printf("Cache Dir: %s\n", cfg.CacheDir)
	fmt.Printf("Machine Id: %s\n", config.MachineID())

	return nil
}

func checkF(ctx context.Context, opts struct {
	Strict bool `short:"s" long:"strict" description:"warn about version floors that a lock would pin"`

	Pos struct {
		Path string `positional-arg-name:"path"`
	} `positional-args:"yes"`
}) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	mc := ops.ManifestCheck{Strict: opts.Strict}

	path, diags, err := mc.Check(ctx, cfg, opts.Pos.Path)
	if err != nil {
		return err
	}

	printer := status.NewPrinter(os.Stdout)

	for _, d := range diags {
		printer.Diagnostic(path, d)
	}

	printer.Summary(path, diags)

	if lint.HasErrors(diags) {
		return errors.Errorf("manifest %s is not well formed", path)
	}

	return nil
}

func listF(ctx context.Context, opts struct {
	Output string `short:"o" long:"output" default:"table" description:"output format: table, json, or yaml"`

	Pos struct {
		Path string `positional-arg-name:"path"`
	} `positional-args:"yes"`
}) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	var ml ops.ManifestLoad

	m, _, err := ml.Load(ctx, cfg, opts.Pos.Path)
	if err != nil {
		return err
	}

	type entry struct {
		Name       string `json:"name" yaml:"name"`
		Comparator string `json:"comparator" yaml:"comparator"`
		Version    string `json:"version" yaml:"version"`
		Comment    string `json:"comment,omitempty" yaml:"comment,omitempty"`
	}

	var entries []entry

	for _, dep := range m.Dependencies() {
		entries = append(entries, entry{
			Name:       dep.Name,
			Comparator: string(dep.Comparator),
			Version:    dep.Version,
			Comment:    dep.Comment,
		})
	}

	switch opts.Output {
	case "json":
		out, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}

		fmt.Println(string(out))
	case "yaml":
		out, err := yaml.Marshal(entries)
		if err != nil {
			return err
		}

		fmt.Print(string(out))
	case "table":
		tw := tabwriter.NewWriter(os.Stdout, 4, 2, 1, ' ', 0)
		defer tw.Flush()

		fmt.Fprintf(tw, "NAME\tREQUIREMENT\tPURPOSE\n")

		for _, dep := range m.Dependencies() {
			fmt.Fprintf(tw, "%s\t%s%s\t%s\n", dep.Name, dep.Comparator, dep.Version, dep.Comment)
		}
	default:
		return errors.Errorf("unknown output format: %s", opts.Output)
	}

	return nil
}

func fmtF(ctx context.Context, opts struct {
	Write bool `short:"w" long:"write" description:"rewrite the manifest instead of printing it"`

	Pos struct {
		Path string `positional-arg-name:"path"`
	} `positional-args:"yes"`
}) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	path := opts.Pos.Path
	if path == "" {
		path = cfg.ManifestName
	}

	var mf ops.ManifestFmt

	changed, formatted, err := mf.Fmt(ctx, path)
	if err != nil {
		return err
	}

	if !opts.Write {
		fmt.Print(string(formatted))
		return nil
	}

	if !changed {
		return nil
	}

	err = mf.Write(path, formatted)
	if err != nil {
		return err
	}

	fmt.Printf("Rewrote %s\n", path)

	return nil
}

func addF(ctx context.Context, opts struct {
	File    string `short:"f" long:"file" description:"manifest to edit"`
	Section string `short:"S" long:"section" description:"add to the section whose header mentions this"`

	Pos struct {
		Spec string `positional-arg-name:"directive" required:"yes"`
	} `positional-args:"yes"`
}) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	path := opts.File
	if path == "" {
		path = cfg.ManifestName
	}

	var da ops.DepAdd

	_, err = da.Add(ctx, path, opts.Pos.Spec, opts.Section)
	return err
}

func removeF(ctx context.Context, opts struct {
	File string `short:"f" long:"file" description:"manifest to edit"`

	Pos struct {
		Name string `positional-arg-name:"name" required:"yes"`
	} `positional-args:"yes"`
}) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	path := opts.File
	if path == "" {
		path = cfg.ManifestName
	}

	var dr ops.DepRemove

	removed, err := dr.Remove(ctx, path, opts.Pos.Name)
	if err != nil {
		return err
	}

	if !removed {
		return errors.Errorf("no dependency named %s in %s", opts.Pos.Name, path)
	}

	return nil
}

func lockF(ctx context.Context, opts struct {
	File   string `short:"f" long:"file" description:"manifest to resolve"`
	Output string `short:"o" long:"output" description:"lock file to write"`
	NoSum  bool   `long:"no-sum" description:"skip refreshing integrity sums"`
}) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	var ml ops.ManifestLoad

	m, path, err := ml.Load(ctx, cfg, opts.File)
	if err != nil {
		return err
	}

	lr := ops.LockResolve{
		Client: index.NewClient(cfg.IndexURL, cfg.IndexCacheDir()),
	}

	lf, err := lr.Resolve(ctx, m)
	if err != nil {
		return err
	}

	lockPath := opts.Output
	if lockPath == "" {
		lockPath = cfg.LockName
	}

	var lw ops.LockWrite

	err = lw.Write(ctx, lf, lockPath)
	if err != nil {
		return err
	}

	fmt.Printf("Pinned %d package(s) into %s\n", len(lf.Resolved), lockPath)

	if opts.NoSum || remote(opts.File) {
		return nil
	}

	var su ops.SumUpdate

	return su.Update(ctx, cfg.SumName, []string{path, lockPath})
}

func outdatedF(ctx context.Context, opts struct {
	File string `short:"f" long:"file" description:"manifest to inspect"`

	Pos struct {
		Path string `positional-arg-name:"path"`
	} `positional-args:"yes"`
}) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	ref := opts.File
	if ref == "" {
		ref = opts.Pos.Path
	}

	var ml ops.ManifestLoad

	m, _, err := ml.Load(ctx, cfg, ref)
	if err != nil {
		return err
	}

	var lock *data.LockFile

	if _, serr := os.Stat(cfg.LockName); serr == nil {
		var lr ops.LockRead

		lock, err = lr.Read(cfg.LockName)
		if err != nil {
			return err
		}
	}

	od := ops.Outdated{
		Client: index.NewClient(cfg.IndexURL, cfg.IndexCacheDir()),
	}

	report, err := od.Report(ctx, m, lock)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 4, 2, 1, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "NAME\tCURRENT\tLATEST\tSIZE\tCOMPATIBLE\n")

	for _, ent := range report {
		compat := "yes"
		if !ent.Satisfied {
			compat = "no"
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			ent.Name, ent.Current, ent.Latest, humanize.Format(ent.Size), compat)
	}

	return nil
}

func verifyF(ctx context.Context, opts struct {
	Files []string `short:"f" long:"file" description:"file to verify, repeatable"`
}) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	files := opts.Files

	if len(files) == 0 {
		for _, name := range []string{cfg.ManifestName, cfg.LockName} {
			if _, err := os.Stat(name); err == nil {
				files = append(files, name)
			}
		}
	}

	if len(files) == 0 {
		return errors.Errorf("nothing to verify")
	}

	var sv ops.SumVerify

	bad, err := sv.Verify(ctx, cfg.SumName, files)
	if err != nil {
		return err
	}

	if len(bad) > 0 {
		return errors.Errorf("integrity check failed for: %v", bad)
	}

	fmt.Printf("Verified %d file(s)\n", len(files))

	return nil
}

func historyF(ctx context.Context, opts struct {
	Pos struct {
		Path string `positional-arg-name:"path"`
	} `positional-args:"yes"`
}) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	path := opts.Pos.Path
	if path == "" {
		path = cfg.ManifestName
	}

	var mh ops.ManifestHistory

	id, entries, err := mh.Entries(ctx, path)
	if err != nil {
		return err
	}

	fmt.Printf("History of %s in %s:\n", path, id)

	tw := tabwriter.NewWriter(os.Stdout, 4, 2, 1, ' ', 0)
	defer tw.Flush()

	for _, ent := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			ent.Hash, ent.When.Format("2006-01-02"), ent.Author, ent.Summary)
	}

	return nil
}

func envF(ctx context.Context, opts struct{}) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	osName, osVersion, arch := config.Platform()

	fmt.Printf("os: %s\nos-version: %s\narch: %s\n", osName, osVersion, arch)
	fmt.Printf("machine-id: %s\n", config.MachineID())
	fmt.Printf("manifest: %s\nlock: %s\nsums: %s\n", cfg.ManifestName, cfg.LockName, cfg.SumName)
	fmt.Printf("index-url: %s\ncache-dir: %s\n", cfg.IndexURL, cfg.CacheDir)

	return nil
}

func debugF(ctx context.Context, opts struct {
	Pos struct {
		Path string `positional-arg-name:"path"`
	} `positional-args:"yes"`
}) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	var ml ops.ManifestLoad

	m, _, err := ml.Load(ctx, cfg, opts.Pos.Path)
	if err != nil {
		return err
	}

	spew.Dump(m)

	return nil
}

func remote(path string) bool {
	return strings.Contains(path, "://")
}

// stripGlobalFlags removes flags main handles itself, so the per
// command parsers never see them.
func stripGlobalFlags(args []string) []string {
	var out []string

	for i := 0; i < len(args); i++ {
		if args[i] == "--log-level" {
			i++
			continue
		}

		if strings.HasPrefix(args[i], "--log-level=") {
			continue
		}

		out = append(out, args[i])
	}

	return out
}
