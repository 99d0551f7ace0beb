package main

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DInduwara/Flood-management-system/internal/campfile"
	"github.com/DInduwara/Flood-management-system/models"
)

func campsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "camps",
		Short: "Maintain the relief camp directory",
	}
	cmd.AddCommand(campsAddCmd(app), campsToggleCmd(app, "activate", true), campsToggleCmd(app, "deactivate", false), campsImportCmd(app), campsListCmd(app))
	return cmd
}

func campsAddCmd(app *App) *cobra.Command {
	var entry campfile.Entry
	var capacity, occupancy int
	var needs string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a relief camp",
		RunE: func(cmd *cobra.Command, args []string) error {
			intake, d, err := app.openIntake()
			if err != nil {
				return err
			}
			defer app.closeDB(d)

			if cmd.Flags().Changed("capacity") {
				entry.Capacity = &capacity
			}
			if cmd.Flags().Changed("occupancy") {
				entry.CurrentOccupancy = &occupancy
			}
			entry.Needs = campfile.Needs{needs}
			camp, err := intake.CreateReliefCamp(app.ctx, entry.Payload())
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(app.out, "Created camp %d (%s, %s)\n", camp.ID, camp.Name, camp.District)
			return nil
		},
	}
	cmd.Flags().StringVar(&entry.Name, "name", "", "Camp name")
	cmd.Flags().StringVar(&entry.District, "district", "", "District")
	cmd.Flags().StringVar(&entry.LocationDescription, "location", "", "Where the camp is")
	cmd.Flags().IntVar(&capacity, "capacity", 0, "Number of people the camp can hold")
	cmd.Flags().IntVar(&occupancy, "occupancy", 0, "People currently in the camp")
	cmd.Flags().StringVar(&needs, "needs", "", "Comma-separated list of needs")
	return cmd
}

func campsToggleCmd(app *App, use string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: fmt.Sprintf("Mark a camp as %sd", use),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid camp id %q", args[0])
			}
			intake, d, err := app.openIntake()
			if err != nil {
				return err
			}
			defer app.closeDB(d)
			camp, err := intake.SetReliefCampActive(app.ctx, id, active)
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(app.out, "Camp %d is_active=%t\n", camp.ID, camp.IsActive)
			return nil
		},
	}
}

func campsImportCmd(app *App) *cobra.Command {
	var keepGoing bool
	cmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Create camps from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := campfile.Load(args[0])
			if err != nil {
				return err
			}
			intake, d, err := app.openIntake()
			if err != nil {
				return err
			}
			defer app.closeDB(d)

			created, failed := 0, 0
			for i, e := range f.Camps {
				camp, err := intake.CreateReliefCamp(app.ctx, e.Payload())
				if err != nil {
					failed++
					fmt.Fprintf(app.out, "camps[%d] %q: %v\n", i, e.Name, describe(err))
					if !keepGoing {
						return fmt.Errorf("import stopped at camps[%d]", i)
					}
					continue
				}
				created++
				app.logger.Debug("camp imported", zap.Int64("id", camp.ID), zap.String("name", camp.Name))
			}
			fmt.Fprintf(app.out, "Imported %d camps", created)
			if failed > 0 {
				fmt.Fprintf(app.out, ", %d failed", failed)
			}
			fmt.Fprintln(app.out)
			if failed > 0 {
				return fmt.Errorf("%d camps failed validation", failed)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "Continue past invalid entries")
	return cmd
}

func campsListCmd(app *App) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List relief camps",
		RunE: func(cmd *cobra.Command, args []string) error {
			intake, d, err := app.openIntake()
			if err != nil {
				return err
			}
			defer app.closeDB(d)

			var camps []models.ReliefCamp
			if all {
				camps, err = intake.ListAllReliefCamps(app.ctx)
			} else {
				camps, err = intake.ListReliefCamps(app.ctx)
			}
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDISTRICT\tNAME\tOCCUPANCY\tACTIVE\tNEEDS")
			for _, c := range camps {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d/%d\t%t\t%s\n", c.ID, c.District, c.Name, c.CurrentOccupancy, c.Capacity, c.IsActive, c.Needs)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Include inactive camps")
	return cmd
}

// describe flattens a validation error into one line for terminal output.
func describe(err error) error {
	var ve *models.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	msg := ""
	for _, f := range ve.FieldNames() {
		for _, m := range ve.Fields[f] {
			if msg != "" {
				msg += "; "
			}
			msg += f + ": " + m
		}
	}
	return errors.New(msg)
}
