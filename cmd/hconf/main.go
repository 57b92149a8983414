// Command hconf edits hierarchical config files such as hyprland.conf.
//
// Without a mode flag it opens the interactive editor. The -fmt, -check and
// -export flags process the file once and exit.
//
// Logs are written by glog to files in -log_dir (default: the system
// temporary directory), never to the terminal the editor draws on.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/KimNorgaard/go-hconf"
	hconferrors "github.com/KimNorgaard/go-hconf/errors"
	"github.com/KimNorgaard/go-hconf/internal/editor"
	"github.com/KimNorgaard/go-hconf/internal/export"
	"github.com/KimNorgaard/go-hconf/internal/settings"
	"github.com/KimNorgaard/go-hconf/internal/store"
	"github.com/KimNorgaard/go-hconf/internal/tui"
	"github.com/KimNorgaard/go-hconf/internal/watcher"
)

var (
	configPath   = flag.String("config", "", "config file to edit (default from settings)")
	settingsPath = flag.String("settings", settings.DefaultPath(), "editor settings file")
	formatFlag   = flag.Bool("fmt", false, "print the config in canonical form and exit")
	checkFlag    = flag.Bool("check", false, "report lines the parser skipped or repaired and exit")
	exportFlag   = flag.String("export", "", "print the config in another format (yaml) and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [config file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	code := run()
	glog.Flush()
	os.Exit(code)
}

func run() int {
	cfg, err := settings.Load(*settingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hconf: %v\n", err)
		return 2
	}

	path := cfg.ConfigPath
	if *configPath != "" {
		path = settings.ExpandPath(*configPath)
	}
	if flag.NArg() > 0 {
		path = settings.ExpandPath(flag.Arg(0))
	}

	var storeOpts []store.Option
	if cfg.Backup {
		storeOpts = append(storeOpts, store.WithBackup())
	}
	st := store.New(storeOpts...)
	opts := writeOptions(cfg)

	if *formatFlag || *checkFlag || *exportFlag != "" {
		text, err := st.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hconf: %v\n", err)
			return 1
		}
		switch {
		case *checkFlag:
			return check(os.Stdout, path, text)
		case *exportFlag != "":
			err = exportTo(os.Stdout, *exportFlag, text)
		default:
			err = format(os.Stdout, text, opts...)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "hconf: %v\n", err)
			return 1
		}
		return 0
	}

	if err := interactive(path, st, cfg, opts); err != nil {
		fmt.Fprintf(os.Stderr, "hconf: %v\n", err)
		return 1
	}
	return 0
}

func writeOptions(cfg *settings.Settings) []hconf.Option {
	if cfg.Tabs {
		return []hconf.Option{hconf.IndentTabs()}
	}
	return []hconf.Option{hconf.Indent(cfg.Indent)}
}

func interactive(path string, st *store.Store, cfg *settings.Settings, opts []hconf.Option) error {
	session := editor.New(path, st, opts...)

	var modelOpts []tui.Option
	if cfg.Watch {
		w, err := watcher.New(path)
		if err != nil {
			glog.Warningf("not watching %s: %v", path, err)
		} else {
			defer w.Close()
			modelOpts = append(modelOpts, tui.WithChanges(w.Events()))
		}
	}

	p := tea.NewProgram(tui.New(session, modelOpts...), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "run editor")
	}
	return nil
}

func format(w io.Writer, text string, opts ...hconf.Option) error {
	out, err := hconf.Format([]byte(text), opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// check prints one line per diagnostic and returns the exit code.
func check(w io.Writer, path, text string) int {
	err := hconf.Check([]byte(text))
	if err == nil {
		return 0
	}
	perrs, ok := err.(hconferrors.ParseErrors)
	if !ok {
		fmt.Fprintf(w, "%s: %v\n", path, err)
		return 1
	}
	for _, e := range perrs {
		fmt.Fprintf(w, "%s:%d: %s\n", path, e.Line, e.Message)
	}
	return 1
}

func exportTo(w io.Writer, kind, text string) error {
	switch kind {
	case "yaml", "yml":
		out, err := export.YAML(hconf.Parse([]byte(text)))
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		return errors.Errorf("unknown export format %q", kind)
	}
}
