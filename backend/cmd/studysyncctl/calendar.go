package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"

	"studysync/backend/internal/analytics"
	"studysync/backend/internal/gateway"
)

var (
	calendarMonth string
	calendarView  string
)

var errRemoteView = errors.New("--view is not supported with --addr; the remote calendar is month only")

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Print a month (or week) of assignments",
	Long: `Prints a Sunday-first grid with the number of assignments due each day,
followed by the month's totals. --month takes YYYY-MM and defaults to now.
With --addr the remote service returns the month view only, so --view must
be left at "month".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		ref := now
		if calendarMonth != "" {
			parsed, err := time.ParseInLocation("2006-01", calendarMonth, now.Location())
			if err != nil {
				return fmt.Errorf("month must be formatted YYYY-MM: %w", err)
			}
			if parsed.Year() != now.Year() || parsed.Month() != now.Month() {
				ref = parsed
			}
		}

		if remoteAddr != "" && calendarView != analytics.ViewMonth {
			return errRemoteView
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		if remoteAddr != "" {
			return withRemote(func(client *analytics.Client) error {
				view, err := client.CalendarMonth(ctx, ref)
				if err != nil {
					return err
				}
				out, err := protojson.MarshalOptions{Multiline: true}.Marshal(view)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			})
		}
		return withServices(ctx, func(ctx context.Context, svcs *gateway.Services) error {
			view, err := svcs.Analytics.CalendarMonth(ctx, ref, now, calendarView)
			if err != nil {
				return err
			}
			renderCalendar(cmd.OutOrStdout(), view)
			return nil
		})
	},
}

func init() {
	calendarCmd.Flags().StringVar(&calendarMonth, "month", "", "month to show (YYYY-MM)")
	calendarCmd.Flags().StringVar(&calendarView, "view", analytics.ViewMonth, "month or week")
	rootCmd.AddCommand(calendarCmd)
}

// renderCalendar writes one cell per day: the day of month, a * for today,
// and the count of assignments due in brackets. Days outside the month get a
// leading dot.
func renderCalendar(w io.Writer, view *analytics.CalendarView) {
	fmt.Fprintf(w, "%s (%s)\n", view.Month, view.View)
	var header strings.Builder
	for _, name := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		header.WriteString(fmt.Sprintf("%-7s", name))
	}
	fmt.Fprintln(w, strings.TrimRight(header.String(), " "))

	var row strings.Builder
	for i, day := range view.Days {
		cell := fmt.Sprintf("%3d", day.Date.Day())
		if !day.InMonth {
			cell = fmt.Sprintf("%3s", fmt.Sprintf(".%d", day.Date.Day()))
		}
		mark := " "
		if day.Today {
			mark = "*"
		}
		count := "   "
		if n := len(day.Assignments); n > 0 {
			count = fmt.Sprintf("[%d]", n)
		}
		row.WriteString(cell + mark + count)
		if i%7 == 6 {
			fmt.Fprintln(w, strings.TrimRight(row.String(), " "))
			row.Reset()
		}
	}
	if row.Len() > 0 {
		fmt.Fprintln(w, strings.TrimRight(row.String(), " "))
	}
	fmt.Fprintf(w, "total %d  completed %d  pending %d\n",
		view.Stats.Total, view.Stats.Completed, view.Stats.Pending)
}
