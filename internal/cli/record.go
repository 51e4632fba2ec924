package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/allenwsellars/Cycles/internal/month"
	"github.com/allenwsellars/Cycles/internal/tracker"
)

func newRecordCmd(s *session) *cobra.Command {
	recordCmd := &cobra.Command{
		Use:     "record",
		Aliases: []string{"records"},
		Short:   "Manage service records of the selected bike",
	}

	recordCmd.AddCommand(
		newRecordListCmd(s),
		newRecordAddCmd(s),
		newRecordEditCmd(s),
		newRecordDeleteCmd(s),
	)
	return recordCmd
}

func newRecordListCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List records of the selected bike, most recent first",
		Args:  cobra.NoArgs,
		RunE: logged(func(cmd *cobra.Command, _ []string) error {
			state := s.svc.State()
			bike, ok := state.Bike(state.SelectedBikeID)
			if !ok {
				cmd.Println("No bike selected.")
				return nil
			}
			records := s.svc.Records()
			cmd.Printf("%s: %d records\n", bike.Name, len(records))
			if len(records) == 0 {
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MONTH\tSERVICE\tNOTES\tID")
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Date, r.ServiceType, r.Notes, r.ID)
			}
			return w.Flush()
		}),
	}
}

func newRecordAddCmd(s *session) *cobra.Command {
	var form tracker.RecordForm

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a service record to the selected bike",
		Args:  cobra.NoArgs,
		RunE: logged(func(cmd *cobra.Command, _ []string) error {
			s.svc.StartAddRecord()
			rec, err := s.svc.SaveRecord(cmd.Context(), form)
			if err != nil {
				return err
			}
			cmd.Printf("Added %s record for %s (%s)\n", rec.ServiceType, rec.Date, rec.ID)
			return nil
		}),
	}

	cmd.Flags().StringVar(&form.DateMonth, "month", month.Current(time.Now()), "month of the service, YYYY-MM")
	cmd.Flags().StringVar(&form.ServiceType, "type", "", "service performed (e.g. \"Tune-up\")")
	cmd.Flags().StringVar(&form.Notes, "notes", "", "optional notes")
	return cmd
}

func newRecordEditCmd(s *session) *cobra.Command {
	var form tracker.RecordForm

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the month, type or notes of a record",
		Long: `Change a service record. Only the given flags are changed; the record keeps
its ID and bike.`,
		Args: cobra.ExactArgs(1),
		RunE: logged(func(cmd *cobra.Command, args []string) error {
			current, err := s.svc.StartEditRecord(args[0])
			if err != nil {
				return err
			}
			next := current.Form
			if cmd.Flags().Changed("month") {
				next.DateMonth = form.DateMonth
			}
			if cmd.Flags().Changed("type") {
				next.ServiceType = form.ServiceType
			}
			if cmd.Flags().Changed("notes") {
				next.Notes = form.Notes
			}

			rec, err := s.svc.SaveRecord(cmd.Context(), next)
			if err != nil {
				return err
			}
			cmd.Printf("Updated %s: %s %s\n", rec.ID, rec.Date, rec.ServiceType)
			return nil
		}),
	}

	cmd.Flags().StringVar(&form.DateMonth, "month", "", "month of the service, YYYY-MM")
	cmd.Flags().StringVar(&form.ServiceType, "type", "", "service performed")
	cmd.Flags().StringVar(&form.Notes, "notes", "", "notes (empty to clear)")
	return cmd
}

func newRecordDeleteCmd(s *session) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a service record (cannot be undone)",
		Args:  cobra.ExactArgs(1),
		RunE: logged(func(cmd *cobra.Command, args []string) error {
			c, err := confirmerFor(cmd, yes)
			if err != nil {
				return err
			}
			if err := s.svc.DeleteRecord(cmd.Context(), args[0], c); err != nil {
				return err
			}
			cmd.Printf("Deleted %s\n", args[0])
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}
