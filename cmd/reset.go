package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frontendschool-official/interview-engine/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all round sessions and simulation progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("refusing to delete data without --yes")
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		sessions, err := s.PurgeCollection(cmd.Context(), store.CollectionSessions)
		if err != nil {
			return err
		}
		progress, err := s.PurgeCollection(cmd.Context(), store.CollectionProgress)
		if err != nil {
			return err
		}

		fmt.Printf("Deleted %d round sessions and %d progress records.\n", sessions, progress)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
