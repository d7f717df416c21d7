package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"arkc/internal/diagfmt"
	"arkc/internal/driver"
	"arkc/internal/format"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.ark",
		Short: "Parse an Ark source file and print its syntax tree",
		Long:  `Parse builds the syntax tree of an Ark source file and prints it as a tree, JSON, YAML or canonical source`,
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|yaml|source)")
	cmd.Flags().Bool("tabs", false, "indent with tabs in source format")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) (err error) {
	filePath := args[0]

	outFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch outFormat {
	case "pretty", "json", "yaml", "source":
	default:
		return fmt.Errorf("unknown format: %s", outFormat)
	}
	tabs, err := cmd.Flags().GetBool("tabs")
	if err != nil {
		return fmt.Errorf("failed to get tabs flag: %w", err)
	}
	s, err := loadSettings(cmd, filePath)
	if err != nil {
		return err
	}

	result, err := driver.Parse(cmd.Context(), filePath, s.driverOptions())
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	defer func() {
		if cerr := result.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	// Дерево печатаем даже при ошибках: восстановленные узлы полезны
	out := cmd.OutOrStdout()
	file := result.File()
	switch outFormat {
	case "json":
		err = diagfmt.FormatASTJSON(out, file)
	case "yaml":
		err = diagfmt.FormatASTYAML(out, file)
	case "source":
		_, err = out.Write(format.FormatFile(file, format.Options{UseTabs: tabs}))
	default:
		err = diagfmt.FormatASTPretty(out, file, result.FileSet)
	}
	if err != nil {
		return err
	}

	bag := result.Bag()
	if s.timings {
		driver.AppendTimings(bag, "parse", filePath, s.timer)
	}
	if err := s.printDiagnostics(cmd.ErrOrStderr(), bag, result.FileSet); err != nil {
		return err
	}
	return failIfErrors(filePath, result.Failed())
}
