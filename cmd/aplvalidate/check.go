package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	core "github.com/legacy3/wowlab-sub000/sim/core"
	"github.com/legacy3/wowlab-sub000/sim/core/examplespec"
	"github.com/legacy3/wowlab-sub000/sim/core/rotation"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Args:  cobra.ExactArgs(1),
	Short: "Parse, fold and validate a rotation JSON file",
	RunE:  runCheck,
}

// validationResult is the JSON shape aplvalidate prints. Callers
// (CI, editor tooling) should treat a non-empty Errors as exit-nonzero,
// already enforced by runCheck's own return value.
type validationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading rotation file: %w", err)
	}

	cfg, err := examplespec.BuildConfig(time.Minute, 1)
	if err != nil {
		return fmt.Errorf("building example name table: %w", err)
	}

	prog, parseErr := rotation.NewProgram(data, examplespec.Names())
	result := validationResult{Valid: true}

	if parseErr != nil {
		result.Valid = false
		result.Errors = append(result.Errors, parseErr.Error())
		return printResult(result)
	}

	spellIds := make(map[core.SpellId]bool, len(cfg.Spells))
	for _, s := range cfg.Spells {
		spellIds[s.Id] = true
	}
	auraIds := make(map[core.AuraId]bool, len(cfg.Auras))
	for _, a := range cfg.Auras {
		auraIds[a.Id] = true
	}

	warnings, errs := prog.Validate(spellIds, auraIds)
	result.Warnings = warnings
	for _, e := range errs {
		result.Errors = append(result.Errors, e.Error())
	}
	result.Valid = len(errs) == 0

	return printResult(result)
}

func printResult(result validationResult) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return err
	}
	if !result.Valid {
		return fmt.Errorf("rotation failed validation")
	}
	return nil
}
