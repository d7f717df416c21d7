package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"arkc/internal/diagfmt"
	"arkc/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.ark",
		Short: "Tokenize an Ark source file",
		Long:  `Tokenize breaks an Ark source file down into its tokens`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	s, err := loadSettings(cmd, filePath)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(filePath, s.driverOptions())
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим токены в выбранном формате
	out := cmd.OutOrStdout()
	if format == "json" {
		err = diagfmt.FormatTokensJSON(out, result.Tokens)
	} else {
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	}
	if err != nil {
		return err
	}

	// Диагностика уходит в stderr
	if s.timings {
		driver.AppendTimings(result.Bag, "tokenize", filePath, s.timer)
	}
	if err := s.printDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet); err != nil {
		return err
	}
	return failIfErrors(filePath, result.Bag.HasErrors())
}
