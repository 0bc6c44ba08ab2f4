package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"studysync/backend/internal/gateway"
	"studysync/backend/internal/pipeline"
	"studysync/backend/internal/report"
	"studysync/backend/internal/shared"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:       "export <students|faculty|grades>",
	Short:     "Export a roster or the grade report as CSV",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"students", "faculty", "grades"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		var w io.Writer = cmd.OutOrStdout()
		if exportOut != "" && exportOut != "-" {
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("create %s: %w", exportOut, err)
			}
			defer f.Close()
			w = f
		}

		return withServices(ctx, func(ctx context.Context, svcs *gateway.Services) error {
			switch args[0] {
			case "students":
				students, err := svcs.Admin.ListStudents(ctx, pipeline.StudentFilter{}, pipeline.SortByName)
				if err != nil {
					return err
				}
				return report.WriteStudents(w, students)
			case "faculty":
				faculty, err := svcs.Admin.ListFaculty(ctx, pipeline.FacultyFilter{})
				if err != nil {
					return err
				}
				return report.WriteFaculty(w, faculty)
			default:
				summaries, err := svcs.Courses.ListCourses(ctx, pipeline.CourseFilter{})
				if err != nil {
					return err
				}
				courses := make([]shared.Course, 0, len(summaries))
				for _, s := range summaries {
					courses = append(courses, s.Course)
				}
				return report.WriteGradeReport(w, courses)
			}
		})
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
