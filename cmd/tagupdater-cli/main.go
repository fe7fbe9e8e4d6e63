package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/dataset"
	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/model"
	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/updater"
)

// stringList collects a repeatable flag value.
type stringList []string

func (s *stringList) String() string { return fmt.Sprint(*s) }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	var tags stringList
	exportPath := flag.String("export", "", "TikTok export file (csv or xlsx, local path or URL)")
	outPath := flag.String("out", "", "output file for the updated export (default derives from the input format)")
	workers := flag.Int("workers", 0, "processing workers (0 = default)")
	flag.Var(&tags, "tag", "DCM tag file, repeatable; search priority follows flag order")
	flag.Parse()

	if *exportPath == "" || len(tags) == 0 {
		fmt.Fprintln(os.Stderr, "usage: tagupdater-cli -export <file> -tag <file> [-tag <file> ...] [-out <file>]")
		os.Exit(2)
	}

	ctx := context.Background()

	ads, err := dataset.LoadAdExport(ctx, model.Source{URL: *exportPath})
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("📄 Export loaded: %d rows from %s\n", len(ads), *exportPath)

	tagFiles := make([]model.TagFile, 0, len(tags))
	for i, path := range tags {
		tagFile, err := dataset.LoadTagFile(ctx, model.Source{URL: path})
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("📄 Tag file %d loaded: %d rows from %s\n", i+1, len(tagFile.Records), path)
		tagFiles = append(tagFiles, tagFile)
	}

	result := updater.ProcessAll(ads, tagFiles, *workers)
	for _, line := range result.LogLines {
		fmt.Println(line)
	}

	out := *outPath
	if out == "" {
		if ext := dataset.DefaultOutputExt(*exportPath); ext == ".xlsx" {
			out = "updated_tiktok_export.xlsx"
		} else {
			out = "updated_tiktok_export.csv"
		}
	}
	if err := dataset.WriteAdExport(out, result.Records); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("💾 Updated export written: %s\n", out)
}
