package main

import (
	"renamer/pkg/types"

	"github.com/spf13/cobra"
)

// transformFlags are shared by preview and apply
type transformFlags struct {
	pattern         string
	replacement     string
	regex           bool
	caseInsensitive bool
}

func (f *transformFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.pattern, "pattern", "p", "", "text or regular expression to find")
	cmd.Flags().StringVarP(&f.replacement, "replacement", "r", "", "replacement text ($1 or ${name} for regex groups)")
	cmd.Flags().BoolVar(&f.regex, "regex", false, "treat the pattern as a regular expression")
	cmd.Flags().BoolVarP(&f.caseInsensitive, "ignore-case", "i", false, "match case-insensitively")
	cmd.MarkFlagRequired("pattern")
}

// spec builds the transform, taking toggles not given on the command line
// from the config defaults
func (f *transformFlags) spec(cmd *cobra.Command) types.TransformSpec {
	spec := types.TransformSpec{
		Pattern:         f.pattern,
		Replacement:     f.replacement,
		IsRegex:         f.regex,
		CaseInsensitive: f.caseInsensitive,
	}
	if !cmd.Flags().Changed("regex") {
		spec.IsRegex = cfg.Defaults.Regex
	}
	if !cmd.Flags().Changed("ignore-case") {
		spec.CaseInsensitive = cfg.Defaults.CaseInsensitive
	}
	return spec
}
