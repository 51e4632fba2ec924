package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd(s *session) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all bikes and records as JSON",
		Args:  cobra.NoArgs,
		RunE: logged(func(cmd *cobra.Command, _ []string) error {
			data, err := s.svc.Export()
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			cmd.Printf("Exported to %s\n", output)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newImportCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Replace all bikes and records with the contents of a JSON file",
		Long: `Replace all bikes and records with the contents of a JSON export.

The import is validated first; nothing changes unless it is valid. Existing
data is overwritten, not merged. Reads stdin when no file or "-" is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: logged(func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if len(args) == 0 || args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read import: %w", err)
			}

			if err := s.svc.Import(cmd.Context(), data); err != nil {
				return err
			}
			state := s.svc.State()
			cmd.Printf("Imported %d bikes and %d service records\n", len(state.Bikes), len(state.ServiceRecords))
			return nil
		}),
	}
}
