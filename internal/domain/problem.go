package domain

// Problem is a named situation with the result expected from working on it.
// Problems are unique by name.
type Problem struct {
	Problem        string `json:"problem"`
	ExpectedResult string `json:"expectedResult"`
}

// NewProblem creates a Problem.
func NewProblem(name, expectedResult string) Problem {
	return Problem{Problem: name, ExpectedResult: expectedResult}
}

// String returns the problem name for display purposes.
func (p Problem) String() string {
	return p.Problem
}
