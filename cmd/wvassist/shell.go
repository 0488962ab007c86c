// This file implements the interactive assistant loop.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wvassist/internal/config"
	"wvassist/internal/generation"
	"wvassist/internal/logging"
	"wvassist/internal/store"
	"wvassist/internal/wizyvision"
)

// shellStyles holds the lipgloss styles for the interactive loop.
type shellStyles struct {
	banner  lipgloss.Style
	prompt  lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	info    lipgloss.Style
	dim     lipgloss.Style
}

func newShellStyles() shellStyles {
	return shellStyles{
		banner:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		prompt:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		failure: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		info:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// starterTemplates are example requests shown by the templates command.
var starterTemplates = []struct {
	name    string
	request string
}{
	{"inspection", "equipment inspection app with photo checklist, severity dropdown, inspector assignment and GPS location"},
	{"maintenance", "maintenance work order tracker with due date, priority dropdown, resolved toggle and technician sign-off"},
	{"audit", "site safety audit form with findings paragraph, auditor list, compliance checkbox items and audit date"},
	{"incident", "incident report app with description, reporter, witnesses list, incident location and severity rating"},
}

// runShell starts the interactive assistant. It owns stdin until the user
// exits.
func runShell() error {
	styles := newShellStyles()
	ctx := context.Background()

	path := cfgPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if modelFlag != "" {
		cfg.LLM.Model = modelFlag
	}
	if maxAttempts > 0 {
		cfg.Generation.MaxAttempts = maxAttempts
	}
	if outputDir != "" {
		cfg.Output.Directory = outputDir
	}
	if verbose {
		cfg.Logging.DebugMode = true
	}

	if cfg.Logging.DebugMode {
		if err := logging.Initialize(".", logging.Settings{
			DebugMode:  cfg.Logging.DebugMode,
			Level:      cfg.Logging.Level,
			Categories: cfg.Logging.Categories,
		}); err != nil {
			fmt.Println(styles.dim.Render("file logging unavailable: " + err.Error()))
		}
	}
	defer logging.CloseAll()

	gen, err := buildGenerator(ctx, cfg)
	if err != nil {
		return err
	}
	saver := store.NewSaver(cfg.Output.Directory)

	fmt.Println(styles.banner.Render("WizyVision Schema Assistant"))
	fmt.Println(styles.dim.Render("Describe the app you want to build, or type 'help' for commands."))
	fmt.Println()
	logging.Session("interactive session started, model=%s", cfg.LLM.Model)

	reader := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(styles.prompt.Render("wvassist> "))
		if !reader.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(reader.Text())
		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case "exit", "quit":
			fmt.Println(styles.dim.Render("bye"))
			logging.Session("interactive session ended")
			return nil
		case "help":
			printHelp(styles)
			continue
		case "example":
			printDocument(styles, wizyvision.ExampleDocument())
			continue
		case "predefined":
			printDocument(styles, wizyvision.PredefinedDocument())
			continue
		case "templates":
			printTemplates(styles)
			continue
		case "types":
			_ = runTypes(nil, nil)
			continue
		}

		if name, ok := strings.CutPrefix(line, "template "); ok {
			request, found := lookupTemplate(strings.TrimSpace(name))
			if !found {
				fmt.Println(styles.failure.Render("unknown template: " + name))
				continue
			}
			line = request
			fmt.Println(styles.dim.Render("request: " + line))
		}

		handleRequest(ctx, styles, gen, saver, reader, line)
	}
	return nil
}

// handleRequest runs one generation round and offers to save the result.
func handleRequest(ctx context.Context, styles shellStyles, gen *generation.Generator, saver *store.Saver, reader *bufio.Scanner, request string) {
	fmt.Println(styles.info.Render("Generating schema..."))
	logging.Session("request: %s", request)

	doc, status, err := gen.Generate(ctx, request)
	if err != nil {
		fmt.Println(styles.failure.Render(status))
		return
	}
	fmt.Println(styles.success.Render(status))

	printDocument(styles, doc)

	fmt.Print(styles.prompt.Render("Save this schema? [y/N] "))
	if !reader.Scan() {
		return
	}
	answer := strings.ToLower(strings.TrimSpace(reader.Text()))
	if answer != "y" && answer != "yes" {
		return
	}

	fmt.Print(styles.prompt.Render(fmt.Sprintf("Filename [%s]: ", saver.DefaultFilename())))
	filename := ""
	if reader.Scan() {
		filename = strings.TrimSpace(reader.Text())
	}
	path, err := saver.Save(doc, filename)
	if err != nil {
		fmt.Println(styles.failure.Render("save failed: " + err.Error()))
		return
	}
	fmt.Println(styles.success.Render("Saved to " + path))
	logging.Session("saved schema to %s", path)
}

func printDocument(styles shellStyles, doc wizyvision.Document) {
	data, err := doc.MarshalIndent()
	if err != nil {
		fmt.Println(styles.failure.Render("encoding failed: " + err.Error()))
		return
	}
	fmt.Println(string(data))
}

func printHelp(styles shellStyles) {
	fmt.Println(styles.info.Render("Commands:"))
	fmt.Println("  help              Show this help")
	fmt.Println("  types             List supported field types")
	fmt.Println("  example           Show a complete example schema")
	fmt.Println("  predefined        Show the predefined structural fields")
	fmt.Println("  templates         List predefined field templates and starter requests")
	fmt.Println("  template <name>   Generate from a starter template")
	fmt.Println("  exit, quit        Leave the assistant")
	fmt.Println()
	fmt.Println(styles.dim.Render("Anything else is treated as an app description to generate."))
}

func printTemplates(styles shellStyles) {
	fmt.Print(renderTemplates(styles))
}

// renderTemplates lists the predefined field templates first, then the
// starter requests usable via template <name>.
func renderTemplates(styles shellStyles) string {
	var b strings.Builder
	b.WriteString(styles.info.Render("Predefined field templates:") + "\n")
	for _, name := range wizyvision.PredefinedFieldNames {
		field, ok := wizyvision.PredefinedField(name)
		if !ok {
			continue
		}
		wvType, _ := field["x-wv-type"].(string)
		desc, _ := field["description"].(string)
		fmt.Fprintf(&b, "  %-12s %-10s %s\n", name, wvType, desc)
	}
	b.WriteString("\n" + styles.info.Render("Starter requests (use: template <name>):") + "\n")
	for _, t := range starterTemplates {
		fmt.Fprintf(&b, "  %-12s %s\n", t.name, t.request)
	}
	return b.String()
}

func lookupTemplate(name string) (string, bool) {
	for _, t := range starterTemplates {
		if t.name == name {
			return t.request, true
		}
	}
	return "", false
}
