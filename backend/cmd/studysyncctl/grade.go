package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"studysync/backend/internal/analytics"
	"studysync/backend/internal/gateway"
	"studysync/backend/internal/grade"
)

var gradeCmd = &cobra.Command{
	Use:   "grade <percentage>",
	Short: "Show the letter grade and grade points for a percentage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pct, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("percentage must be a number: %w", err)
		}

		if remoteAddr == "" {
			letter, err := grade.ValidateLetterGrade(pct)
			if err != nil {
				return err
			}
			points, err := grade.ValidateGradePoints(pct)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.1f%%  %s  %.1f\n", pct, letter, points)
			return nil
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()
		return withRemote(func(client *analytics.Client) error {
			letter, err := client.LetterGrade(ctx, pct)
			if err != nil {
				return err
			}
			points, err := client.GradePoints(ctx, pct)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.1f%%  %s  %.1f\n", pct, letter, points)
			return nil
		})
	},
}

var gpaCmd = &cobra.Command{
	Use:   "gpa",
	Short: "Print the credit-weighted overall GPA",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		if remoteAddr != "" {
			return withRemote(func(client *analytics.Client) error {
				gpa, err := client.OverallGPA(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), gpa)
				return nil
			})
		}
		return withServices(ctx, func(ctx context.Context, svcs *gateway.Services) error {
			gpa, err := svcs.Analytics.OverallGPA(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), gpa)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(gpaCmd)
}
