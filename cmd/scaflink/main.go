// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// scaflink builds scaffolds from a directory of whole-genome PAF alignment
// files. It finds anchor clusters in the high-confidence alignments,
// resolves orientation, filters repeat signatures, reframes coordinates,
// verifies coverage, and emits an ordered, oriented contig chain per
// cluster.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kortschak/scaflink"
	"github.com/kortschak/scaflink/internal/pafio"
	"github.com/kortschak/scaflink/internal/pipeline"
	"github.com/kortschak/scaflink/internal/scaffio"
)

func main() {
	nbMatch := flag.Int("nbmatch", -1, "specify the minimum NbMatch for the high-confidence split (required)")
	idSeq := flag.Float64("idseq", -1, "specify the minimum sequence identity, in [0,1], for the high-confidence split (required)")
	display := flag.Bool("display", false, "specify to print a per-cluster diagnostic trace")
	workers := flag.Int("workers", 1, "specify the number of pipeline workers")
	format := flag.String("format", "tsv", "specify output format: csv, tsv or gff")
	out := flag.String("out", "", "specify output file (default stdout)")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %[1]s:
  $ %[1]s [options] <paf-directory> >scaffolds.tsv

Options:
`, os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	dir := flag.Arg(0)

	cfg := scaflink.Config{NbMatchMin: *nbMatch, IdSeqMin: *idSeq, Display: *display, Workers: *workers}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	var comma rune
	if *format != "gff" {
		var err error
		comma, err = delimiter(*format)
		if err != nil {
			log.Fatal(err)
		}
	}

	log.Println(os.Args)

	records, err := pafio.Load(dir)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("loaded %d records from %s", len(records), dir)

	d := &pipeline.Driver{Config: cfg, Logger: log.New(os.Stderr, "", log.LstdFlags)}
	scaffolds := d.Run(records)
	log.Printf("built %d scaffold(s)", len(scaffolds))

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		w = f
	}

	if *format == "gff" {
		err = scaffio.WriteGFF(w, scaffolds)
	} else {
		err = scaffio.Write(w, scaffolds, comma)
	}
	if err != nil {
		log.Fatalf("failed to write scaffolds: %v", err)
	}
}

func delimiter(format string) (rune, error) {
	switch format {
	case "csv":
		return ',', nil
	case "tsv", "":
		return '\t', nil
	default:
		return 0, &scaflink.ConfigError{Field: "format", Reason: fmt.Sprintf("unknown format %q, want csv or tsv", format)}
	}
}
