package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	editor "github.com/goliatone/go-cms-editor"
)

// importer is the slice of the editor module used by the command.
type importer interface {
	ImportMarkdownPost(ctx context.Context, cmd editor.ImportMarkdownPostCommand) error
	Close() error
}

var moduleBuilder = func(ctx context.Context, cfg editor.Config) (importer, error) {
	return editor.New(ctx, cfg)
}

func main() {
	if err := runImport(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("markdown import: %v", err)
	}
}

func runImport(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("markdown-import", flag.ExitOnError)
	directory := fs.String("directory", "content", "Directory walked for *.md files")
	locale := fs.String("locale", "", "Locale used when a document has no locale front matter")
	locales := fs.String("locales", "en", "Comma separated list of known locales")
	dsn := fs.String("dsn", "", "SQLite or Postgres DSN; empty keeps posts in memory")
	dialect := fs.String("dialect", "sqlite", "Database dialect used with -dsn")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := editor.DefaultConfig()
	cfg.Locales = nil
	for _, code := range strings.Split(*locales, ",") {
		if code = strings.TrimSpace(code); code != "" {
			cfg.Locales = append(cfg.Locales, editor.LocaleConfig{Code: code})
		}
	}
	if len(cfg.Locales) > 0 {
		cfg.DefaultLocale = cfg.Locales[0].Code
	}
	cfg.Features.MarkdownImport = true
	cfg.Features.Commands = true
	if strings.TrimSpace(*dsn) != "" {
		cfg.Storage.Provider = editor.StorageBun
		cfg.Storage.DSN = *dsn
		cfg.Storage.Dialect = *dialect
		cfg.Storage.Migrate = true
	}

	ctx := context.Background()
	module, err := moduleBuilder(ctx, cfg)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	files, err := markdownFiles(*directory)
	if err != nil {
		return err
	}
	for _, path := range files {
		source, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		cmd := editor.ImportMarkdownPostCommand{Source: source, Locale: *locale}
		if err := module.ImportMarkdownPost(ctx, cmd); err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}
		fmt.Fprintf(out, "imported %s\n", path)
	}
	fmt.Fprintf(out, "markdown import finished: %d documents\n", len(files))
	return nil
}

func markdownFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".md") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
