package commands

import (
	"context"
	"errors"
	"sort"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

func withMaintenance(cmd *cobra.Command, rt runtime, fn func(context.Context, Maintenance) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	m, closeFn, err := rt.openMaintenance(ctx)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(ctx, m)
}

func newSeedCmd(rt runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo categories, users, technicians, services and reviews",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMaintenance(cmd, rt, func(ctx context.Context, m Maintenance) error {
				res, err := m.Seed(ctx)
				if err != nil {
					return oops.Code("SEED_FAILED").Wrap(err)
				}
				if res.Skipped {
					cmd.Println("Technicians already present, nothing seeded")
					return nil
				}
				cmd.Printf("Seeded %d categories, %d users, %d technicians, %d services, %d reviews\n",
					res.Categories, res.Users, res.Technicians, res.Services, res.Reviews)
				return nil
			})
		},
	}
}

func newCleanCmd(rt runtime) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete every row from every table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return oops.Code("CONFIRMATION_REQUIRED").Errorf("clean deletes all data; pass --yes to confirm")
			}
			return withMaintenance(cmd, rt, func(ctx context.Context, m Maintenance) error {
				if err := m.Clean(ctx); err != nil {
					return oops.Code("CLEAN_FAILED").Wrap(err)
				}
				cmd.Println("Database cleaned")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deleting all data")
	return cmd
}

func newCheckCmd(rt runtime) *cobra.Command {
	var sample int
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Print table counts and a sample of users and technicians",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMaintenance(cmd, rt, func(ctx context.Context, m Maintenance) error {
				report, err := m.Check(ctx, sample)
				if err != nil {
					return oops.Code("CHECK_FAILED").Wrap(err)
				}
				for _, c := range report.Counts {
					cmd.Printf("%-12s %d\n", c.Table, c.Count)
				}
				cmd.Println("Technicians:")
				for _, t := range report.Technicians {
					cmd.Printf("  #%d user=%d category=%d whatsapp=%q\n", t.ID, t.UserID, t.CategoryID, t.WhatsApp)
				}
				cmd.Println("Users:")
				for _, u := range report.Users {
					cmd.Printf("  #%d %s <%s> %s\n", u.ID, u.Name, u.Email, u.Role)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&sample, "sample", 5, "number of users and technicians to list")
	return cmd
}

func newBackfillCmd(rt runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "backfill",
		Short: "Create the default technician profile for tech users that lack one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMaintenance(cmd, rt, func(ctx context.Context, m Maintenance) error {
				res, err := m.Backfill(ctx)
				if err != nil {
					return oops.Code("BACKFILL_FAILED").Wrap(err)
				}
				cmd.Printf("Created %d technician profiles\n", len(res.Created))
				if len(res.Failed) == 0 {
					return nil
				}

				ids := make([]int, 0, len(res.Failed))
				for id := range res.Failed {
					ids = append(ids, id)
				}
				sort.Ints(ids)
				errs := make([]error, 0, len(ids))
				for _, id := range ids {
					cmd.PrintErrf("  user %d: %v\n", id, res.Failed[id])
					errs = append(errs, res.Failed[id])
				}
				return oops.Code("BACKFILL_PARTIAL").
					With("failed", len(ids)).
					Wrap(errors.Join(errs...))
			})
		},
	}
}
