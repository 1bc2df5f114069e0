// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scaflink builds scaffolds — ordered, oriented chains of contigs —
// from pairwise whole-genome PAF alignments. The algorithm lives in the
// internal packages; this package holds the configuration type and error
// kind shared between the CLI and the driver.
package scaflink

import "fmt"

// ConfigError reports an invalid configuration value supplied on the
// command line (§7): a negative --nbmatch or --workers, an --idseq outside
// [0,1], or an unknown --format.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("scaflink: invalid %s: %s", e.Field, e.Reason)
}

// Config holds the validated run parameters (§6.2).
type Config struct {
	NbMatchMin int
	IdSeqMin   float64
	Display    bool
	Workers    int
}

// Validate checks NbMatchMin, IdSeqMin and Workers; the output format is
// checked by the CLI.
func (c Config) Validate() error {
	if c.NbMatchMin < 0 {
		return &ConfigError{Field: "nbmatch", Reason: "must be non-negative"}
	}
	if c.IdSeqMin < 0 || c.IdSeqMin > 1 {
		return &ConfigError{Field: "idseq", Reason: "must be in [0,1]"}
	}
	if c.Workers < 0 {
		return &ConfigError{Field: "workers", Reason: "must be non-negative"}
	}
	return nil
}
