package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"

	"github.com/statementcore/corebank/internal/api"
	"github.com/statementcore/corebank/internal/batch"
	"github.com/statementcore/corebank/internal/config"
	"github.com/statementcore/corebank/internal/configstore"
	"github.com/statementcore/corebank/internal/extractor"
	"github.com/statementcore/corebank/internal/format"
	"github.com/statementcore/corebank/internal/layout"
	"github.com/statementcore/corebank/internal/postprocess"
	"github.com/statementcore/corebank/internal/statement"
	"github.com/statementcore/corebank/internal/writer"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D787", Dark: "#00D787"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"})
)

func printSuccess(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", successStyle.Render("✓"), fmt.Sprintf(format, args...))
}

func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errorStyle.Render("✗"), fmt.Sprintf(format, args...))
}

func printInfo(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", infoStyle.Render("→"), fmt.Sprintf(format, args...))
}

// loadEngine builds the config.Registry/format.Registry/statement.Driver
// triple every command needs, from the declarative JSON records under
// configsDir.
func loadEngine(configsDir string) (*config.Registry, *format.Registry, *statement.Driver, error) {
	formats := format.NewRegistry()
	configs := config.NewRegistry()
	if err := configstore.LoadDir(configsDir, configs, formats); err != nil {
		return nil, nil, nil, err
	}
	driver := statement.NewDriver(configs, formats, postprocess.Process)
	return configs, formats, driver, nil
}

func defaultLayoutParams(cfg config.Config) layout.Params {
	p := layout.Params{YBin: cfg.LayoutYBin, XGap: cfg.LayoutXGap}
	if p.YBin <= 0 {
		p.YBin = 2.0
	}
	if p.XGap <= 0 {
		p.XGap = 1.5
	}
	return p
}

type ConvertCmd struct {
	Input  string `arg:"" help:"Input PDF file."`
	Output string `help:"Output file path (defaults to input filename with the target extension)."`
	Format string `help:"Output format: csv, xlsx, or layout-text." default:"csv" enum:"csv,xlsx,layout-text"`
	Header bool   `help:"Include account metadata header rows." default:"true"`
}

func (c *ConvertCmd) Run(globals *Globals) error {
	if c.Format == "layout-text" {
		return c.runLayoutText()
	}

	_, _, driver, err := loadEngine(globals.Configs)
	if err != nil {
		return err
	}

	data, err := batch.Convert(driver, c.Input, layout.Params{YBin: 2.0, XGap: 1.5})
	if err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("no configured statement type produced an error-free extraction of %s", c.Input)
	}

	outPath := c.Output
	if outPath == "" {
		base := strings.TrimSuffix(c.Input, filepath.Ext(c.Input))
		outPath = base + "." + c.Format
	}

	switch c.Format {
	case "xlsx":
		w := &writer.XLSXWriter{}
		if err := w.WriteToFile(outPath, data); err != nil {
			return err
		}
	default:
		w := &writer.CSVWriter{IncludeHeader: c.Header}
		if err := w.WriteToFile(outPath, data); err != nil {
			return err
		}
	}

	printSuccess("matched %s, wrote %d transaction(s) to %s", data.ConfigKey, len(data.Transactions), outPath)
	if !data.ErrorFree() {
		for _, e := range data.Errors {
			printError("%s: %s", e.Kind, e.Message)
		}
	}
	return nil
}

// runLayoutText dumps C2's normalized fragment stream directly,
// bypassing config matching entirely — useful for inspecting why a
// config failed to match or a table failed to assemble.
func (c *ConvertCmd) runLayoutText() error {
	rawPages, err := extractor.ExtractFragments(c.Input)
	if err != nil {
		return err
	}
	doc := layout.Normalize(rawPages, layout.Params{YBin: 2.0, XGap: 1.5})

	outPath := c.Output
	if outPath == "" {
		base := strings.TrimSuffix(c.Input, filepath.Ext(c.Input))
		outPath = base + ".layout.txt"
	}

	w := &writer.LayoutTextWriter{}
	if err := w.WriteToFile(outPath, doc); err != nil {
		return err
	}

	printSuccess("wrote %d fragment(s) to %s", len(doc), outPath)
	return nil
}

type BatchCmd struct {
	Dir     string `arg:"" help:"Directory of PDF statements to convert."`
	Workers int    `help:"Number of concurrent workers." default:"4"`
}

func (c *BatchCmd) Run(globals *Globals) error {
	_, _, driver, err := loadEngine(globals.Configs)
	if err != nil {
		return err
	}

	report, err := batch.Run(driver, c.Dir, layout.Params{YBin: 2.0, XGap: 1.5}, c.Workers)
	if err != nil {
		return err
	}

	for _, res := range report.Results {
		if res.Err != nil {
			printError("%s: %v", res.Path, res.Err)
			continue
		}
		if res.Data == nil || !res.Data.ErrorFree() {
			printError("%s: no error-free extraction", res.Path)
			continue
		}
		printSuccess("%s: %s (%d transactions)", res.Path, res.Data.ConfigKey, len(res.Data.Transactions))
	}
	printInfo("%d succeeded, %d failed", len(report.Succeeded()), len(report.Failed()))
	return nil
}

type WatchCmd struct {
	Dir string `arg:"" help:"Directory to watch for new PDF statements."`
}

func (c *WatchCmd) Run(globals *Globals) error {
	_, _, driver, err := loadEngine(globals.Configs)
	if err != nil {
		return err
	}

	printInfo("watching %s for new PDF statements (Ctrl+C to stop)", c.Dir)
	stop := make(chan struct{})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		printInfo("shutting down watcher")
		close(stop)
	}()

	return batch.Watch(driver, c.Dir, layout.Params{YBin: 2.0, XGap: 1.5}, func(res batch.Result) {
		if res.Err != nil {
			printError("%s: %v", res.Path, res.Err)
			return
		}
		printSuccess("%s: %s (%d transactions)", res.Path, res.Data.ConfigKey, len(res.Data.Transactions))
	}, stop)
}

type ScheduleCmd struct {
	Dir     string `arg:"" help:"Directory to sweep on schedule."`
	Cron    string `help:"Five-field cron expression." default:"0 * * * *"`
	Workers int    `help:"Number of concurrent workers per sweep." default:"4"`
}

func (c *ScheduleCmd) Run(globals *Globals) error {
	_, _, driver, err := loadEngine(globals.Configs)
	if err != nil {
		return err
	}

	sched, err := batch.NewScheduler(driver, c.Dir, c.Cron, layout.Params{YBin: 2.0, XGap: 1.5}, c.Workers, func(report *batch.Report, err error) {
		if err != nil {
			printError("sweep failed: %v", err)
			return
		}
		printInfo("sweep complete: %d succeeded, %d failed", len(report.Succeeded()), len(report.Failed()))
	})
	if err != nil {
		return err
	}

	printInfo("scheduled sweep of %s on %q", c.Dir, c.Cron)
	sched.Start()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	printInfo("shutting down scheduler")
	sched.Stop()
	return nil
}

type ConfigsValidateCmd struct{}

func (c *ConfigsValidateCmd) Run(globals *Globals) error {
	configs, _, _, err := loadEngine(globals.Configs)
	if err != nil {
		return err
	}
	printSuccess("%d config(s) loaded and valid from %s", len(configs.Keys()), globals.Configs)
	return nil
}

type ConfigsListCmd struct{}

func (c *ConfigsListCmd) Run(globals *Globals) error {
	configs, _, _, err := loadEngine(globals.Configs)
	if err != nil {
		return err
	}
	for _, key := range configs.Keys() {
		cfg, _ := configs.Get(key)
		fmt.Printf("%-36s %s\n", key, cfg.AccountType)
	}
	return nil
}

type ConfigsCmd struct {
	Validate ConfigsValidateCmd `cmd:"" help:"Load and validate every config under --configs."`
	List     ConfigsListCmd     `cmd:"" help:"List registered config keys and their account type."`
}

type ServeCmd struct {
	Port   string `help:"Port to listen on." default:"8080"`
	Static string `help:"Path to a static UI build directory to serve alongside the API."`
}

func (c *ServeCmd) Run(globals *Globals) error {
	configs, formats, driver, err := loadEngine(globals.Configs)
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		AppName:   "Statement Core v" + version,
		BodyLimit: 32 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))

	server := &api.Server{Driver: driver, Configs: configs, Formats: formats, Version: version}
	server.RegisterRoutes(app)

	if c.Static != "" {
		app.Static("/", c.Static, fiber.Static{Index: "index.html"})
	}

	if !extractor.IsOCRAvailable() {
		printInfo("pdftoppm/tesseract not found on PATH — scanned/image-only statements will fail extraction")
	}
	printInfo("serving on http://localhost:%s (%d configs loaded)", c.Port, len(configs.Keys()))
	return app.Listen(":" + c.Port)
}
