// Package catalog is the read-only client for the catalog/roster service:
// courses, units, exercises, their member questions and passages, and the
// assessments built from them.
package catalog

// AssessmentKind distinguishes the four test document shapes the pipeline
// assembles.
type AssessmentKind string

const (
	KindCourseChallenge AssessmentKind = "course_challenge"
	KindUnitTest        AssessmentKind = "unit_test"
	KindQuiz            AssessmentKind = "quiz"
	KindExerciseTest    AssessmentKind = "exercise_test"
)

// Course is the root of the content hierarchy for one pipeline run.
type Course struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Units []Unit `json:"units"`
}

// Unit groups exercises and passages inside a course.
type Unit struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	ExerciseIDs []string `json:"exercise_ids"`
	PassageIDs  []string `json:"passage_ids"`
}

// Exercise is a pool of canonical questions sharing a topic.
type Exercise struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	UnitID string `json:"unit_id"`
}

// Question is one canonical authored item. Immutable for the duration of
// a pipeline run.
type Question struct {
	ID         string `json:"id"`
	XML        string `json:"xml"`
	ExerciseID string `json:"exercise_id"`
	UnitID     string `json:"unit_id"`

	// Category is the problem-type tag used for section bucketing.
	Category string `json:"category"`
}

// Passage is a canonical reading passage.
type Passage struct {
	ID     string `json:"id"`
	XML    string `json:"xml"`
	UnitID string `json:"unit_id"`
	Title  string `json:"title"`
}

// Assessment describes one test to assemble and which exercises feed it.
type Assessment struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Kind        AssessmentKind `json:"kind"`
	UnitID      string         `json:"unit_id"`
	ExerciseIDs []string       `json:"exercise_ids"`
}
