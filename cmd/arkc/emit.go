package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"arkc/internal/backend/llvm"
	"arkc/internal/driver"
)

func newEmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emit [flags] file.ark",
		Short: "Emit LLVM IR declarations for an Ark source file",
		Long:  `Emit parses an Ark source file and prints the module-level declarations as textual LLVM IR`,
		Args:  cobra.ExactArgs(1),
		RunE:  runEmit,
	}
	cmd.Flags().StringP("output", "o", "", "write IR to this file instead of stdout")
	cmd.Flags().String("triple", llvm.DefaultTriple, "target triple")
	return cmd
}

func runEmit(cmd *cobra.Command, args []string) (err error) {
	filePath := args[0]

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	triple, err := cmd.Flags().GetString("triple")
	if err != nil {
		return fmt.Errorf("failed to get triple flag: %w", err)
	}
	s, err := loadSettings(cmd, filePath)
	if err != nil {
		return err
	}

	opts := s.driverOptions()
	opts.Backend = llvm.New(triple)
	ir, result, emitErr := driver.Emit(cmd.Context(), filePath, opts)
	if result != nil {
		defer func() {
			if cerr := result.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		bag := result.Bag()
		if s.timings {
			driver.AppendTimings(bag, "emit", filePath, s.timer)
		}
		if perr := s.printDiagnostics(cmd.ErrOrStderr(), bag, result.FileSet); perr != nil {
			return perr
		}
	}
	if emitErr != nil {
		return emitErr
	}

	if output == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), ir)
		return err
	}
	if err := os.WriteFile(output, []byte(ir), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	if !s.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", output)
	}
	return nil
}
