package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/browser"
	"github.com/tdewolff/argp"

	"github.com/tdewolff/figure"
	_ "github.com/tdewolff/figure/renderers/window"
)

type Render struct {
	Output  string  `short:"o" default:"." desc:"Output directory"`
	Format  string  `short:"f" default:"png" desc:"Image format"`
	Width   float64 `short:"W" default:"640" desc:"Width in logical pixels"`
	Height  float64 `short:"H" default:"480" desc:"Height in logical pixels"`
	DPI     float64 `default:"0" desc:"Resolution, zero uses the style sheet"`
	Style   string  `short:"s" desc:"Style sheet in TOML or YAML format"`
	Open    bool    `desc:"Open the images in the browser"`
	Verbose bool    `short:"v" desc:"Verbose logging"`
	Name    string  `index:"0" desc:"Demo name, or all"`
}

type Show struct {
	Width  float64 `short:"W" default:"640" desc:"Width in logical pixels"`
	Height float64 `short:"H" default:"480" desc:"Height in logical pixels"`
	Style  string  `short:"s" desc:"Style sheet in TOML or YAML format"`
	Name   string  `index:"0" desc:"Demo name"`
}

type List struct{}

func main() {
	root := argp.NewCmd(&Render{}, "Render demo figures to image files")
	root.AddCmd(&Show{}, "show", "Show a demo figure in a window")
	root.AddCmd(&List{}, "list", "List the demo figures")
	root.Parse()
	root.PrintHelp()
}

func names() []string {
	list := make([]string, 0, len(demos))
	for name := range demos {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}

func loadStyle(path string) (*figure.Config, error) {
	if path == "" {
		return figure.DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return figure.LoadConfig(f, strings.TrimPrefix(filepath.Ext(path), "."))
}

func build(name string, w, h float64, cfg *figure.Config) (*figure.Figure, error) {
	demo, ok := demos[name]
	if !ok {
		return nil, fmt.Errorf("unknown demo %q, see list", name)
	}
	fig := figure.New(figure.Size(w, h), figure.WithConfig(cfg))
	if err := demo(fig); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return fig, nil
}

func (cmd *Render) Run() error {
	level := slog.LevelWarn
	if cmd.Verbose {
		level = slog.LevelDebug
	}
	figure.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := loadStyle(cmd.Style)
	if err != nil {
		return err
	}
	list := []string{cmd.Name}
	if cmd.Name == "" || cmd.Name == "all" {
		list = names()
	}
	if err := os.MkdirAll(cmd.Output, 0o755); err != nil {
		return err
	}
	for _, name := range list {
		fig, err := build(name, cmd.Width, cmd.Height, cfg)
		if err != nil {
			return err
		}
		path := filepath.Join(cmd.Output, name+"."+cmd.Format)
		if err := fig.Save(path, cmd.DPI); err != nil {
			return err
		}
		fig.Close()
		fmt.Println(path)
		if cmd.Open {
			if err := browser.OpenFile(path); err != nil {
				return err
			}
		}
	}
	return nil
}

func (cmd *Show) Run() error {
	if cmd.Name == "" {
		return argp.ShowUsage
	}
	cfg, err := loadStyle(cmd.Style)
	if err != nil {
		return err
	}
	fig, err := build(cmd.Name, cmd.Width, cmd.Height, cfg)
	if err != nil {
		return err
	}
	return fig.Show()
}

func (cmd *List) Run() error {
	for _, name := range names() {
		fmt.Println(name)
	}
	return nil
}
