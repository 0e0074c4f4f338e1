// Command snipshare is the CLI for creating and sharing code snippets.
//
// A snippet is one or more files stored as a single JSON document on a
// remote blob service; the blob id is the share handle. A local index of
// recently created snippets lives in sqlite under the user's config dir.
//
// Usage:
//
//	snipshare create -title "hello" [-desc "..."] file.go [more files...]
//	snipshare get <blob-id>
//	snipshare update <blob-id> [-title "..."] [-desc "..."] [files...]
//	snipshare delete <blob-id>
//	snipshare recent [-limit 20]
//	snipshare clear
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/snipshare/internal/apperror"
	"github.com/sakif/snipshare/internal/blob"
	"github.com/sakif/snipshare/internal/config"
	"github.com/sakif/snipshare/internal/model"
	"github.com/sakif/snipshare/internal/repository/sqlite"
	"github.com/sakif/snipshare/internal/service"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := config.Load()

	// The CLI keeps logs quiet by default; SNIPSHARE_DEBUG=1 turns on the
	// service layer's structured logging on stderr.
	level := slog.LevelError
	if os.Getenv("SNIPSHARE_DEBUG") != "" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o700); err != nil {
		fatal(fmt.Errorf("creating config directory: %w", err))
	}
	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		fatal(err)
	}
	defer db.Close()

	client := blob.NewClient(cfg.BlobURL, &http.Client{Timeout: 30 * time.Second})
	svc := service.NewSnippetService(client, db, logger)

	ctx := context.Background()

	switch os.Args[1] {
	case "create":
		err = runCreate(ctx, svc, os.Args[2:])
	case "get":
		err = runGet(ctx, svc, os.Args[2:])
	case "update":
		err = runUpdate(ctx, svc, os.Args[2:])
	case "delete":
		err = runDelete(ctx, svc, os.Args[2:])
	case "recent":
		err = runRecent(ctx, svc, os.Args[2:])
	case "clear":
		err = svc.ClearRecent(ctx)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		fatal(err)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `snipshare — share code snippets through a blob service

commands:
  create   -title T [-desc D] <file>...   create and share a snippet
  get      <blob-id> [-json]              fetch a snippet
  update   <blob-id> [-title T] [-desc D] [-refresh] [<file>...]
  delete   <blob-id>                      delete the remote snippet
  recent   [-limit N]                     list recently created snippets
  clear                                   empty the local recent list

environment:
  SNIPSHARE_BLOB_URL   blob service base URL (default https://blobse.us.to)
  SNIPSHARE_DB_PATH    local index location
  SNIPSHARE_DEBUG      set to enable debug logging
`)
}

// fatal prints the error and exits non-zero. AppError messages are already
// human-readable, so no per-class formatting is needed here.
func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func runCreate(ctx context.Context, svc *service.SnippetService, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	title := fs.String("title", "", "snippet title (required)")
	desc := fs.String("desc", "", "snippet description")
	fs.Parse(args)

	if fs.NArg() == 0 {
		return apperror.ValidationFailed("files", "at least one file argument is required")
	}

	files, err := readFiles(fs.Args())
	if err != nil {
		return err
	}

	snippet, err := svc.Create(ctx, model.CreateRequest{
		Title:       *title,
		Description: *desc,
		Files:       files,
	})
	if err != nil {
		return err
	}

	fmt.Printf("created %q\n", snippet.Title)
	fmt.Printf("blob id: %s\n", snippet.BlobID)
	return nil
}

func runGet(ctx context.Context, svc *service.SnippetService, args []string) error {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "print the raw snippet document")
	blobID, err := popID(fs, args)
	if err != nil {
		return err
	}

	snippet, err := svc.Get(ctx, blobID)
	if err != nil {
		return err
	}

	if *asJSON {
		out, err := json.MarshalIndent(snippet, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	printSnippet(snippet)
	return nil
}

func runUpdate(ctx context.Context, svc *service.SnippetService, args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	title := fs.String("title", "", "new title")
	desc := fs.String("desc", "", "new description")
	refresh := fs.Bool("refresh", false, "also refresh the local recent entry")
	blobID, err := popID(fs, args)
	if err != nil {
		return err
	}

	var req model.UpdateRequest
	// Only flags the user actually passed become part of the partial
	// update; an unset flag means "keep the stored value".
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			req.Title = title
		case "desc":
			req.Description = desc
		}
	})

	if fs.NArg() > 0 {
		newFiles, err := readFiles(fs.Args())
		if err != nil {
			return err
		}
		req.Files = make([]model.CodeFile, 0, len(newFiles))
		for _, f := range newFiles {
			req.Files = append(req.Files, model.CodeFile{
				ID:       xid.New().String(),
				Name:     f.Name,
				Content:  f.Content,
				Language: f.Language,
			})
		}
	}

	snippet, err := svc.Update(ctx, blobID, req)
	if err != nil {
		return err
	}

	if *refresh {
		if err := svc.RefreshRecent(ctx, blobID); err != nil {
			return err
		}
	}

	fmt.Printf("updated %q (blob id %s)\n", snippet.Title, snippet.BlobID)
	return nil
}

func runDelete(ctx context.Context, svc *service.SnippetService, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	blobID, err := popID(fs, args)
	if err != nil {
		return err
	}

	if err := svc.Delete(ctx, blobID); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", blobID)
	return nil
}

func runRecent(ctx context.Context, svc *service.SnippetService, args []string) error {
	fs := flag.NewFlagSet("recent", flag.ExitOnError)
	limit := fs.Int("limit", 20, "maximum entries to show")
	fs.Parse(args)

	summaries, err := svc.Recent(ctx, *limit)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Println("no recent snippets")
		return nil
	}
	for _, s := range summaries {
		fmt.Printf("%s  %s  %s\n",
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			s.BlobID,
			s.Title,
		)
	}
	return nil
}

// popID takes the first positional argument as the blob id and parses the
// remaining flags. Commands accept "cmd <blob-id> [flags...]".
func popID(fs *flag.FlagSet, args []string) (string, error) {
	if len(args) == 0 {
		return "", apperror.ValidationFailed("blobId", "blob id argument is required")
	}
	if err := fs.Parse(args[1:]); err != nil {
		return "", err
	}
	return args[0], nil
}

// readFiles loads the named files from disk, tagging each with a language
// guessed from its extension.
func readFiles(paths []string) ([]model.NewFile, error) {
	files := make([]model.NewFile, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		name := filepath.Base(path)
		files = append(files, model.NewFile{
			Name:     name,
			Content:  string(content),
			Language: model.DetectLanguage(name),
		})
	}
	return files, nil
}

func printSnippet(s *model.Snippet) {
	fmt.Printf("%s\n", s.Title)
	if s.Description != "" {
		fmt.Printf("%s\n", s.Description)
	}
	fmt.Printf("created %s, updated %s\n\n",
		s.CreatedAt.Local().Format(time.RFC822),
		s.UpdatedAt.Local().Format(time.RFC822),
	)
	for _, f := range s.Files {
		fmt.Printf("--- %s (%s)\n", f.Name, model.LanguageDisplayName(f.Language))
		fmt.Println(f.Content)
	}
}
