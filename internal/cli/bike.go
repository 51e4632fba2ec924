package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newBikeCmd(s *session) *cobra.Command {
	bikeCmd := &cobra.Command{
		Use:   "bike",
		Short: "Manage bikes",
	}

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a bike and select it",
		Args:  cobra.MinimumNArgs(1),
		RunE: logged(func(cmd *cobra.Command, args []string) error {
			bike, err := s.svc.AddBike(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			cmd.Printf("Added bike %q (%s)\n", bike.Name, bike.ID)
			return nil
		}),
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List bikes; the selected bike is marked with *",
		Args:  cobra.NoArgs,
		RunE: logged(func(cmd *cobra.Command, _ []string) error {
			state := s.svc.State()
			if len(state.Bikes) == 0 {
				cmd.Println("No bikes. Add one with 'cycles bike add <name>'.")
				return nil
			}
			counts := make(map[string]int)
			for _, r := range state.ServiceRecords {
				counts[r.BikeID]++
			}
			for _, b := range state.Bikes {
				marker := " "
				if b.ID == state.SelectedBikeID {
					marker = "*"
				}
				cmd.Printf("%s %s  %s (%d records)\n", marker, b.ID, b.Name, counts[b.ID])
			}
			return nil
		}),
	}

	selectCmd := &cobra.Command{
		Use:   "select <id>",
		Short: "Select the bike whose records are shown and added",
		Args:  cobra.ExactArgs(1),
		RunE: logged(func(cmd *cobra.Command, args []string) error {
			bike, ok := s.svc.State().Bike(args[0])
			if !ok {
				return fmt.Errorf("unknown bike %q", args[0])
			}
			if err := s.svc.SelectBike(cmd.Context(), bike.ID); err != nil {
				return err
			}
			cmd.Printf("Selected %q\n", bike.Name)
			return nil
		}),
	}

	bikeCmd.AddCommand(addCmd, listCmd, selectCmd)
	return bikeCmd
}
