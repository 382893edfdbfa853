package model

// Question is one flashcard: a question, its answer and whether the user
// marked it completed. ID is the stable identity used by every store.
type Question struct {
	ID        int    `json:"id" yaml:"id" db:"id" validate:"gt=0"`
	Question  string `json:"question" yaml:"question" db:"question" validate:"required"`
	Answer    string `json:"answer" yaml:"answer" db:"answer" validate:"required"`
	Completed bool   `json:"completed" yaml:"completed,omitempty" db:"completed"`
}

// CountCompleted returns how many questions have Completed set.
func CountCompleted(qs []Question) int {
	n := 0
	for _, q := range qs {
		if q.Completed {
			n++
		}
	}
	return n
}
