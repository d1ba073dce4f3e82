// Package cli implements the command-line interface for termcal.
//
// The cli package provides the Cobra-based commands that connect the two
// pipelines through the holiday file: fetch and list scrape the registrar's
// academic calendar, while render, schedule and exam work offline from a
// saved holiday file. Configuration comes from a YAML file with flags taking
// precedence.
package cli
