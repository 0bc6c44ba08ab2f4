package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studysync/backend/internal/shared"
)

func TestWriteStudents(t *testing.T) {
	var buf bytes.Buffer
	err := WriteStudents(&buf, []shared.Student{
		{ID: 1, Name: "Ada, Countess", Email: "ada@uni.edu", CGPA: 3.9, SubjectsEnrolled: []string{"Math", "Logic"}},
		{ID: 2, Name: "Alan"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "id,name,email,"))
	assert.Contains(t, lines[1], `"Ada, Countess"`)
	assert.Contains(t, lines[1], "Math; Logic")

	var back []*StudentRow
	require.NoError(t, gocsv.UnmarshalString(buf.String(), &back))
	require.Len(t, back, 2)
	assert.Equal(t, 3.9, back[0].CGPA)
}

func TestWriteFaculty(t *testing.T) {
	var buf bytes.Buffer
	err := WriteFaculty(&buf, []shared.Faculty{
		{ID: 7, Name: "Marie", Department: "Science", DateOfJoining: time.Date(2015, 9, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 8, Name: "Pierre"},
	})
	require.NoError(t, err)

	var back []*FacultyRow
	require.NoError(t, gocsv.UnmarshalString(buf.String(), &back))
	require.Len(t, back, 2)
	assert.Equal(t, "2015-09-01", back[0].JoinedOn)
	assert.Empty(t, back[1].JoinedOn)
}

func TestWriteGradeReport(t *testing.T) {
	var buf bytes.Buffer
	err := WriteGradeReport(&buf, []shared.Course{
		{ID: 1, Code: "A", Name: "Algebra", Credits: 3, CurrentGrade: 90},
		{ID: 2, Code: "B", Name: "Biology", Credits: 4, CurrentGrade: 80},
	})
	require.NoError(t, err)

	var rows []*GradeRow
	require.NoError(t, gocsv.UnmarshalString(buf.String(), &rows))
	require.Len(t, rows, 3)

	assert.Equal(t, "A-", rows[0].LetterGrade)
	assert.Equal(t, 3.3, rows[0].GradePoints)
	assert.Equal(t, "B-", rows[1].LetterGrade)

	total := rows[2]
	assert.Equal(t, "Overall", total.Name)
	assert.Equal(t, 7, total.Credits)
	assert.Equal(t, 85.0, total.CurrentGrade)
	assert.Equal(t, 2.73, total.GradePoints)
}
